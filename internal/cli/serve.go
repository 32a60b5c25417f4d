package cli

import (
	"fmt"
	"log"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/example/techmarket/internal/api"
	"github.com/example/techmarket/internal/wire"
)

// ServeCmd returns the HTTP server command.
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			addr, _ := cmd.Flags().GetString("addr")
			if addr == "" {
				addr = wire.Config().ListenAddr
			}

			router := api.NewRouter(api.Dependencies{
				Missions: wire.MissionService(),
				Messages: wire.MessageService(),
				Profiles: wire.ProfileService(),
				Catalog:  wire.CatalogService(),
				Identity: wire.IdentityProvider(),
			})

			log.Printf("listening on %s", addr)
			if err := http.ListenAndServe(addr, router); err != nil {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("addr", "", "listen address (overrides config)")
	return cmd
}
