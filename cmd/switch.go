package cmd

import (
	"fmt"
	"strings"

	"github.com/mzdunek/monitorwatcher/internal/ddc"
	"github.com/mzdunek/monitorwatcher/internal/switcher"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:   "switch <display> <input>",
	Short: "Switch a single display to an input",
	Long:  "Switch one display to the given input without touching any profile. Known inputs: " + strings.ToUpper(strings.Join(ddc.InputNames(), ", ")) + ".",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		controller, err := newController(ctx, dryRun)
		if err != nil {
			return err
		}

		applicator := switcher.NewApplicator(cfg, controller)
		if err := applicator.Switch(ctx, args[0], args[1]); err != nil {
			return fmt.Errorf("cant switch display %s to %s: %w", args[0], args[1], err)
		}

		logrus.WithFields(logrus.Fields{
			"display": args[0],
			"input":   strings.ToUpper(args[1]),
		}).Info("Input switched")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(switchCmd)
	switchCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Use an in-memory display controller instead of real hardware",
	)
}
