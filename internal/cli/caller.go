// Package cli implements the command-line interface. Commands are thin:
// they parse flags, resolve the acting principal, and delegate to the
// application services.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/techmarket/internal/core/principal"
)

// registerCallerFlags adds the flags every principal-scoped command takes.
func registerCallerFlags(cmd *cobra.Command) {
	cmd.Flags().String("as", "", "act as this profile ID")
	cmd.Flags().String("guest-token", "", "act as the guest holding this token")
}

// resolveCaller builds the acting principal from the caller flags. Exactly
// one of --as or --guest-token must be given.
func resolveCaller(cmd *cobra.Command) (principal.Principal, error) {
	profileID, _ := cmd.Flags().GetString("as")
	guestToken, _ := cmd.Flags().GetString("guest-token")

	switch {
	case profileID != "" && guestToken != "":
		return principal.Principal{}, fmt.Errorf("--as and --guest-token are mutually exclusive")
	case profileID != "":
		return principal.Account(profileID), nil
	case guestToken != "":
		return principal.Guest(guestToken, "", ""), nil
	}
	return principal.Principal{}, fmt.Errorf("specify the caller with --as <profile-id> or --guest-token <token>")
}
