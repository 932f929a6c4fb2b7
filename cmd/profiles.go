package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mzdunek/monitorwatcher/internal/ddc"
	"github.com/mzdunek/monitorwatcher/internal/display"
	"github.com/mzdunek/monitorwatcher/internal/profiles"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage stored profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		store, err := openProfileStore(cfg)
		if err != nil {
			return err
		}

		all := store.List()
		if len(all) == 0 {
			cmd.Println("No profiles stored yet, see `" + BinaryName + " profiles create`")
			return nil
		}
		for _, profile := range all {
			line := fmt.Sprintf("%s (%d monitors)", profile.Name, len(profile.Monitors))
			if profile.Description != "" {
				line += " - " + profile.Description
			}
			cmd.Println(line)
		}
		return nil
	},
}

var profilesShowCmd = &cobra.Command{
	Use:   "show <profile>",
	Short: "Show one profile's assignments in application order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		store, err := openProfileStore(cfg)
		if err != nil {
			return err
		}
		profile, err := store.Get(args[0])
		if err != nil {
			return err
		}

		cmd.Println(profile.Name)
		if profile.Description != "" {
			cmd.Println("  " + profile.Description)
		}
		for i, assignment := range profile.Monitors {
			code := "?"
			if c, ok := ddc.InputCode(assignment.Input); ok {
				code = fmt.Sprintf("0x%02x", c)
			}
			cmd.Printf("  %d. display %s -> %s (vcp %s)\n", i+1, assignment.Display,
				strings.ToUpper(assignment.Input), code)
		}
		return nil
	},
}

var profilesDeleteCmd = &cobra.Command{
	Use:   "delete <profile>",
	Short: "Delete a stored profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		store, err := openProfileStore(cfg)
		if err != nil {
			return err
		}
		if err := store.Delete(args[0]); err != nil {
			return err
		}
		logrus.WithField("profile", args[0]).Info("Profile deleted")
		return nil
	},
}

var profilesCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a profile interactively",
	Long:  `Walk through an interactive wizard: name the profile, then assign an input to each detected display. Assignment order is preserved and becomes the application order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		store, err := openProfileStore(cfg)
		if err != nil {
			return err
		}
		controller, err := newController(ctx, dryRun)
		if err != nil {
			return err
		}

		listing, err := controller.ListDisplays(ctx, false)
		if err != nil {
			return fmt.Errorf("cant list displays: %w", err)
		}
		displayIDs := display.ExtractDisplayIDs(listing)
		if len(displayIDs) == 0 {
			return fmt.Errorf("no displays detected, cant build a profile")
		}
		cmd.Println(listing)

		var name, description string
		if err := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Profile name").
				Value(&name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("profile name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Description").
				Description("Optional, shown in listings.").
				Value(&description),
		)).Run(); err != nil {
			return err
		}

		inputOptions := make([]huh.Option[string], 0, len(ddc.InputNames())+1)
		inputOptions = append(inputOptions, huh.NewOption("(skip this display)", ""))
		for _, input := range ddc.InputNames() {
			inputOptions = append(inputOptions, huh.NewOption(strings.ToUpper(input), input))
		}

		var assignments profiles.Assignments
		for _, id := range displayIDs {
			var input string
			if err := huh.NewForm(huh.NewGroup(
				huh.NewSelect[string]().
					Title(fmt.Sprintf("Input for display %s", id)).
					Options(inputOptions...).
					Value(&input),
			)).Run(); err != nil {
				return err
			}
			if input == "" {
				continue
			}
			assignments = append(assignments, profiles.Assignment{Display: id, Input: input})
		}

		if len(assignments) == 0 {
			return fmt.Errorf("no assignments selected, profile not saved")
		}

		if err := store.Save(strings.TrimSpace(name), strings.TrimSpace(description), assignments); err != nil {
			return fmt.Errorf("cant save profile: %w", err)
		}
		logrus.WithFields(logrus.Fields{
			"profile":  name,
			"monitors": len(assignments),
		}).Info("Profile saved")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesShowCmd)
	profilesCmd.AddCommand(profilesDeleteCmd)
	profilesCmd.AddCommand(profilesCreateCmd)

	profilesCreateCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Use an in-memory display controller instead of real hardware",
	)
}
