package cmd

import (
	"context"
	"fmt"

	"github.com/mzdunek/monitorwatcher/internal/app"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	dryRun               bool
	disableAutoHotReload bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the USB watcher daemon",
	Long:  `Run the daemon that watches for the configured USB device and applies the configured monitor profile when it is plugged in. Config files are hot reloaded while the daemon runs; SIGUSR1 forces a reload.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		logrus.WithField("version", Version).Debug("Starting MonitorWatcher")
		ctx, cancel := context.WithCancelCause(context.Background())
		application, err := app.NewApplication(ctx, cancel, &configPath, &dryRun, &disableAutoHotReload)
		if err != nil {
			return fmt.Errorf("cant create application: %w", err)
		}

		return application.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Use an in-memory display controller instead of real hardware",
	)
	runCmd.Flags().BoolVar(
		&disableAutoHotReload,
		"disable-auto-hot-reload",
		false,
		"Disable automatic hot reload (no file watchers)",
	)
}
