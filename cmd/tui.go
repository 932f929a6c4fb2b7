package cmd

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/mzdunek/monitorwatcher/internal/switcher"
	"github.com/mzdunek/monitorwatcher/internal/tui"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var runningUnderTest bool

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive profile switcher",
	Long:  `Launch a terminal UI to browse stored profiles, preview their assignments against the detected displays, and apply one.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if debug {
			f, err := tea.LogToFile("debug.log", "debug")
			if err != nil {
				fmt.Println("fatal:", err)
				os.Exit(1)
			}
			logrus.SetOutput(f)
			defer f.Close()
		} else {
			// disable logging completely for tui unless run in the debug mode
			logrus.SetLevel(logrus.PanicLevel)
		}

		if runningUnderTest {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()

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

		model := tui.NewModel(ctx, store, switcher.NewApplicator(cfg, controller), controller)
		if _, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run(); err != nil {
			return fmt.Errorf("tui failed: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().BoolVar(
		&dryRun,
		"dry-run",
		false,
		"Use an in-memory display controller instead of real hardware",
	)
	tuiCmd.Flags().BoolVar(&runningUnderTest, "running-under-test", false,
		"Use test settings such as no styling etc.")
}
