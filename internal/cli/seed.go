package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/techmarket/internal/db"
	"github.com/example/techmarket/internal/wire"
)

// SeedCmd returns the fixture seeding command.
func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load development fixtures into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := db.SeedFixtures(wire.DB()); err != nil {
				return fmt.Errorf("failed to seed fixtures: %w", err)
			}
			fmt.Println("✓ Seeded development fixtures")
			return nil
		},
	}
}
