package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/techmarket/internal/core/principal"
	"github.com/example/techmarket/internal/ports/primary"
	"github.com/example/techmarket/internal/wire"
)

// MissionCmd returns the mission command group.
func MissionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mission",
		Short: "Manage mission requests",
		Long:  "Submit, list, and drive mission requests through their lifecycle",
	}

	cmd.AddCommand(missionSubmitCmd())
	cmd.AddCommand(missionListCmd())
	cmd.AddCommand(missionShowCmd())
	cmd.AddCommand(missionRespondCmd())
	cmd.AddCommand(missionCompleteCmd())
	cmd.AddCommand(missionContactCmd())
	return cmd
}

func missionSubmitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "submit [title]",
		Short: "Submit a mission request to a technician",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			technicianID, _ := cmd.Flags().GetString("technician")
			description, _ := cmd.Flags().GetString("description")
			requestedFor, _ := cmd.Flags().GetString("requested-for")
			guestName, _ := cmd.Flags().GetString("guest-name")
			guestEmail, _ := cmd.Flags().GetString("guest-email")

			var caller principal.Principal
			if profileID, _ := cmd.Flags().GetString("as"); profileID != "" {
				caller = principal.Account(profileID)
			} else {
				// No profile: submit as a guest. A fresh token is
				// minted and printed for later commands.
				token, _ := cmd.Flags().GetString("guest-token")
				caller = principal.Guest(token, guestName, guestEmail)
			}

			resp, err := wire.MissionService().Submit(cmd.Context(), primary.SubmitMissionRequest{
				Caller:       caller,
				TechnicianID: technicianID,
				Title:        args[0],
				Description:  description,
				RequestedFor: requestedFor,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Submitted mission %s: %s\n", resp.MissionID, resp.Mission.Title)
			if resp.GuestToken != "" {
				fmt.Printf("  Guest token: %s\n", color.New(color.FgYellow).Sprint(resp.GuestToken))
				fmt.Println("  Keep it: it identifies you on every later command.")
			}
			return nil
		},
	}

	registerCallerFlags(cmd)
	cmd.Flags().String("technician", "", "target technician profile ID (required)")
	cmd.Flags().String("description", "", "mission description")
	cmd.Flags().String("requested-for", "", "desired date/time (RFC3339)")
	cmd.Flags().String("guest-name", "", "your name when submitting as a guest")
	cmd.Flags().String("guest-email", "", "your email when submitting as a guest")
	_ = cmd.MarkFlagRequired("technician")
	return cmd
}

func missionListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your missions",
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}
			role, _ := cmd.Flags().GetString("role")
			status, _ := cmd.Flags().GetString("status")
			limit, _ := cmd.Flags().GetInt("limit")

			missions, err := wire.MissionService().List(cmd.Context(), primary.ListMissionsRequest{
				Caller: caller,
				Role:   role,
				Status: status,
				Limit:  limit,
			})
			if err != nil {
				return err
			}

			if len(missions) == 0 {
				fmt.Println("No missions found")
				return nil
			}

			fmt.Printf("\n%-10s %-10s %-10s %s\n", "ID", "STATUS", "TECH", "TITLE")
			fmt.Println("────────────────────────────────────────────────────────────────")
			for _, m := range missions {
				fmt.Printf("%-10s %-10s %-10s %s\n", m.ID, colorizeStatus(m.Status), m.TechnicianID, m.Title)
			}
			fmt.Println()
			return nil
		},
	}

	registerCallerFlags(cmd)
	cmd.Flags().String("role", "client", "which side to list: client or technician")
	cmd.Flags().String("status", "", "filter by status")
	cmd.Flags().Int("limit", 0, "maximum number of missions")
	return cmd
}

func missionShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [mission-id]",
		Short: "Show mission details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}

			mission, err := wire.MissionService().Get(cmd.Context(), caller, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nMission: %s\n", mission.ID)
			fmt.Printf("Title:   %s\n", mission.Title)
			fmt.Printf("Status:  %s\n", colorizeStatus(mission.Status))
			if mission.Description != "" {
				fmt.Printf("Description: %s\n", mission.Description)
			}
			if mission.RequestedFor != "" {
				fmt.Printf("Requested for: %s\n", mission.RequestedFor)
			}
			fmt.Printf("Client:     %s\n", mission.ClientRef)
			fmt.Printf("Technician: %s\n", mission.TechnicianID)
			fmt.Printf("Created:    %s\n", mission.CreatedAt)
			if mission.AcceptedAt != "" {
				fmt.Printf("Accepted:   %s\n", mission.AcceptedAt)
			}
			fmt.Println()
			return nil
		},
	}

	registerCallerFlags(cmd)
	return cmd
}

func missionRespondCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "respond [mission-id] [accept|decline]",
		Short: "Accept or decline a pending mission",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}

			mission, err := wire.MissionService().Respond(cmd.Context(), primary.RespondRequest{
				Caller:    caller,
				MissionID: args[0],
				Decision:  args[1],
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Mission %s is now %s\n", mission.ID, colorizeStatus(mission.Status))
			return nil
		},
	}

	registerCallerFlags(cmd)
	return cmd
}

func missionCompleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "complete [mission-id]",
		Short: "Mark an accepted mission completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}

			mission, err := wire.MissionService().Complete(cmd.Context(), caller, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("✓ Mission %s is now %s\n", mission.ID, colorizeStatus(mission.Status))
			return nil
		},
	}

	registerCallerFlags(cmd)
	return cmd
}

func missionContactCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact [mission-id]",
		Short: "Show the counterparty's contact details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}

			card, err := wire.MissionService().ContactDetails(cmd.Context(), caller, args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nName:  %s\n", card.Name)
			fmt.Printf("Email: %s\n", card.Email)
			if card.Phone != "" {
				fmt.Printf("Phone: %s\n", card.Phone)
			}
			if card.ProfileURL != "" {
				fmt.Printf("URL:   %s\n", card.ProfileURL)
			}
			fmt.Println()
			return nil
		},
	}

	registerCallerFlags(cmd)
	return cmd
}

func colorizeStatus(status string) string {
	switch status {
	case "pending":
		return color.New(color.FgYellow).Sprint(status)
	case "accepted":
		return color.New(color.FgCyan).Sprint(status)
	case "completed":
		return color.New(color.FgGreen).Sprint(status)
	case "declined":
		return color.New(color.FgRed).Sprint(status)
	}
	return status
}
