package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/techmarket/internal/cli"
	"github.com/example/techmarket/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "techmarket",
		Short:   "techmarket - marketplace for robotics repair missions",
		Version: version.String(),
		Long: `techmarket connects clients with robotics technicians. Clients submit
mission requests; technicians accept or decline; acceptance unlocks contact
details and a message thread between the two parties.`,
	}

	rootCmd.AddCommand(cli.MissionCmd())
	rootCmd.AddCommand(cli.MessageCmd())
	rootCmd.AddCommand(cli.ProfileCmd())
	rootCmd.AddCommand(cli.TechnicianCmd())
	rootCmd.AddCommand(cli.SkillCmd())
	rootCmd.AddCommand(cli.BrandCmd())
	rootCmd.AddCommand(cli.ServeCmd())
	rootCmd.AddCommand(cli.SeedCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
