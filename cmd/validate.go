package cmd

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/mzdunek/monitorwatcher/internal/errs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate all config files",
	Long:  `Validate the settings file, the profiles store and the usb config for syntax errors and logical consistency.`,
	Run: func(cmd *cobra.Command, args []string) {
		logrus.WithField("config_path", configPath).Debug("Validating configuration")

		cfg, err := loadSettings()
		if err != nil {
			printIndented(err)
			logrus.Fatal("Settings validation failed")
			return
		}

		if _, err := openProfileStore(cfg); err != nil {
			printIndented(err)
			logrus.Fatal("Profiles validation failed")
			return
		}

		usbConfig, err := openUSBConfig(cfg)
		if err != nil {
			printIndented(err)
			logrus.Fatal("USB config validation failed")
			return
		}
		if _, err := usbConfig.Get(); err != nil && !errors.Is(err, errs.ErrNotConfigured) {
			printIndented(err)
			logrus.Fatal("USB config validation failed")
			return
		}

		logrus.Info("Configuration is valid")
	},
}

func printIndented(err error) {
	parts := strings.Split(err.Error(), ": ")
	indent := 0
	for _, part := range parts {
		fmt.Fprintf(flag.CommandLine.Output(), "%s%s\n", strings.Repeat(" ", indent), part)
		indent += 2
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
