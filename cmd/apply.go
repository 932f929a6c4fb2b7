package cmd

import (
	"fmt"

	"github.com/mzdunek/monitorwatcher/internal/display"
	"github.com/mzdunek/monitorwatcher/internal/notifications"
	"github.com/mzdunek/monitorwatcher/internal/switcher"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply <profile>",
	Short: "Apply a stored profile",
	Long:  `Apply a stored profile: walk its display assignments in order and switch each display to the configured input. Displays already on the right input are skipped.`,
	Args:  cobra.ExactArgs(1),
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
		profile, err := store.Get(args[0])
		if err != nil {
			return err
		}

		controller, err := newController(ctx, dryRun)
		if err != nil {
			return err
		}

		applicator := switcher.NewApplicator(cfg, controller)
		if err := applicator.Apply(ctx, profile); err != nil {
			return fmt.Errorf("cant apply profile %s: %w", profile.Name, err)
		}

		if mock, ok := controller.(*display.Mock); ok {
			logrus.WithField("state", mock.StateSummary()).Info("Dry run final state")
		}

		notifier := notifications.NewService(cfg)
		if err := notifier.NotifyProfileApplied(profile.Name); err != nil {
			logrus.WithError(err).Debug("Cant send notification")
		}

		logrus.WithField("profile", profile.Name).Info("Profile applied")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(applyCmd)
	applyCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Use an in-memory display controller instead of real hardware",
	)
}
