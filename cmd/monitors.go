package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var detailedListing bool

var monitorsCmd = &cobra.Command{
	Use:   "monitors",
	Short: "List connected displays",
	Long:  `List the displays the DDC backend can see, with the IDs used in profiles.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		controller, err := newController(ctx, dryRun)
		if err != nil {
			return err
		}

		listing, err := controller.ListDisplays(ctx, detailedListing)
		if err != nil {
			return fmt.Errorf("cant list displays: %w", err)
		}

		cmd.Println(listing)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(monitorsCmd)
	monitorsCmd.Flags().BoolVar(&detailedListing, "detailed", false, "Show full display details")
	monitorsCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Use an in-memory display controller instead of real hardware",
	)
}
