package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/example/techmarket/internal/ports/primary"
	"github.com/example/techmarket/internal/wire"
)

// ProfileCmd returns the profile command group.
func ProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Manage client and technician profiles",
	}

	cmd.AddCommand(profileCreateCmd())
	cmd.AddCommand(profileShowCmd())
	cmd.AddCommand(profileUpdateCmd())
	return cmd
}

func profileCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			role, _ := cmd.Flags().GetString("role")
			firstName, _ := cmd.Flags().GetString("first-name")
			lastName, _ := cmd.Flags().GetString("last-name")
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			profileURL, _ := cmd.Flags().GetString("url")
			rate, _ := cmd.Flags().GetFloat64("rate")
			bio, _ := cmd.Flags().GetString("bio")

			profile, err := wire.ProfileService().Create(cmd.Context(), primary.CreateProfileRequest{
				Role:       role,
				FirstName:  firstName,
				LastName:   lastName,
				Email:      email,
				Phone:      phone,
				ProfileURL: profileURL,
				Rate:       rate,
				Bio:        bio,
			})
			if err != nil {
				return err
			}

			fmt.Printf("✓ Created %s profile %s: %s %s\n", profile.Role, profile.ID, profile.FirstName, profile.LastName)
			return nil
		},
	}

	cmd.Flags().String("role", "", "profile role: client or technician (required)")
	cmd.Flags().String("first-name", "", "first name (required)")
	cmd.Flags().String("last-name", "", "last name (required)")
	cmd.Flags().String("email", "", "contact email (required)")
	cmd.Flags().String("phone", "", "contact phone")
	cmd.Flags().String("url", "", "profile URL")
	cmd.Flags().Float64("rate", 0, "hourly rate (technicians)")
	cmd.Flags().String("bio", "", "short bio")
	_ = cmd.MarkFlagRequired("role")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func profileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [profile-id]",
		Short: "Show profile details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := wire.ProfileService().Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			fmt.Printf("\nProfile: %s (%s)\n", profile.ID, profile.Role)
			fmt.Printf("Name:  %s %s\n", profile.FirstName, profile.LastName)
			fmt.Printf("Email: %s\n", profile.Email)
			if profile.Phone != "" {
				fmt.Printf("Phone: %s\n", profile.Phone)
			}
			if profile.Rate > 0 {
				fmt.Printf("Rate:  %.2f/h\n", profile.Rate)
			}
			if profile.Bio != "" {
				fmt.Printf("Bio:   %s\n", profile.Bio)
			}
			if len(profile.Skills) > 0 {
				fmt.Printf("Skills: %s\n", strings.Join(profile.Skills, ", "))
			}
			if len(profile.Brands) > 0 {
				fmt.Printf("Brands: %s\n", strings.Join(profile.Brands, ", "))
			}
			fmt.Println()
			return nil
		},
	}
}

func profileUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update [profile-id]",
		Short: "Update your own profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}

			req := primary.UpdateProfileRequest{Caller: caller, ProfileID: args[0]}
			if cmd.Flags().Changed("first-name") {
				v, _ := cmd.Flags().GetString("first-name")
				req.FirstName = &v
			}
			if cmd.Flags().Changed("last-name") {
				v, _ := cmd.Flags().GetString("last-name")
				req.LastName = &v
			}
			if cmd.Flags().Changed("email") {
				v, _ := cmd.Flags().GetString("email")
				req.Email = &v
			}
			if cmd.Flags().Changed("phone") {
				v, _ := cmd.Flags().GetString("phone")
				req.Phone = &v
			}
			if cmd.Flags().Changed("url") {
				v, _ := cmd.Flags().GetString("url")
				req.ProfileURL = &v
			}
			if cmd.Flags().Changed("rate") {
				v, _ := cmd.Flags().GetFloat64("rate")
				req.Rate = &v
			}
			if cmd.Flags().Changed("bio") {
				v, _ := cmd.Flags().GetString("bio")
				req.Bio = &v
			}

			profile, err := wire.ProfileService().Update(cmd.Context(), req)
			if err != nil {
				return err
			}

			fmt.Printf("✓ Updated profile %s\n", profile.ID)
			return nil
		},
	}

	registerCallerFlags(cmd)
	cmd.Flags().String("first-name", "", "first name")
	cmd.Flags().String("last-name", "", "last name")
	cmd.Flags().String("email", "", "contact email")
	cmd.Flags().String("phone", "", "contact phone")
	cmd.Flags().String("url", "", "profile URL")
	cmd.Flags().Float64("rate", 0, "hourly rate")
	cmd.Flags().String("bio", "", "short bio")
	return cmd
}

// TechnicianCmd returns the technician catalog command group.
func TechnicianCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "technician",
		Short: "Browse the technician catalog",
	}

	search := &cobra.Command{
		Use:   "search",
		Short: "Search technicians by name, skill, or brand",
		RunE: func(cmd *cobra.Command, args []string) error {
			nameQuery, _ := cmd.Flags().GetString("name")
			skill, _ := cmd.Flags().GetString("skill")
			brand, _ := cmd.Flags().GetString("brand")
			limit, _ := cmd.Flags().GetInt("limit")

			profiles, err := wire.ProfileService().SearchTechnicians(cmd.Context(), primary.TechnicianSearchRequest{
				NameQuery: nameQuery,
				Skill:     skill,
				Brand:     brand,
				Limit:     limit,
			})
			if err != nil {
				return err
			}

			if len(profiles) == 0 {
				fmt.Println("No technicians found")
				return nil
			}

			fmt.Printf("\n%-10s %-22s %-10s %s\n", "ID", "NAME", "RATE", "SKILLS")
			fmt.Println("────────────────────────────────────────────────────────────────")
			for _, p := range profiles {
				name := p.FirstName + " " + p.LastName
				fmt.Printf("%-10s %-22s %-10.2f %s\n", p.ID, name, p.Rate, strings.Join(p.Skills, ", "))
			}
			fmt.Println()
			return nil
		},
	}
	search.Flags().String("name", "", "name substring")
	search.Flags().String("skill", "", "required skill")
	search.Flags().String("brand", "", "required brand")
	search.Flags().Int("limit", 0, "maximum number of results")

	cmd.AddCommand(search)
	return cmd
}

// SkillCmd returns the skill tag command group.
func SkillCmd() *cobra.Command {
	return tagCmd("skill")
}

// BrandCmd returns the brand tag command group.
func BrandCmd() *cobra.Command {
	return tagCmd("brand")
}

func tagCmd(kind string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   kind,
		Short: fmt.Sprintf("Manage %s tags on your technician profile", kind),
	}

	addCmd := &cobra.Command{
		Use:   "add [profile-id] [name]",
		Short: fmt.Sprintf("Link a %s to your profile", kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}
			add := wire.CatalogService().AddSkill
			if kind == "brand" {
				add = wire.CatalogService().AddBrand
			}
			tag, err := add(cmd.Context(), primary.TagRequest{
				Caller:    caller,
				ProfileID: args[0],
				Name:      args[1],
			})
			if err != nil {
				return err
			}
			fmt.Printf("✓ Linked %s %s\n", kind, color.New(color.FgGreen).Sprint(tag.Name))
			return nil
		},
	}
	registerCallerFlags(addCmd)

	removeCmd := &cobra.Command{
		Use:   "remove [profile-id] [name]",
		Short: fmt.Sprintf("Unlink a %s from your profile", kind),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			caller, err := resolveCaller(cmd)
			if err != nil {
				return err
			}
			remove := wire.CatalogService().RemoveSkill
			if kind == "brand" {
				remove = wire.CatalogService().RemoveBrand
			}
			if err := remove(cmd.Context(), primary.TagRequest{
				Caller:    caller,
				ProfileID: args[0],
				Name:      args[1],
			}); err != nil {
				return err
			}
			fmt.Printf("✓ Unlinked %s %s\n", kind, args[1])
			return nil
		},
	}
	registerCallerFlags(removeCmd)

	cmd.AddCommand(addCmd)
	cmd.AddCommand(removeCmd)
	return cmd
}
