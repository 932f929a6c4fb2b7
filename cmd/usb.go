package cmd

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/mzdunek/monitorwatcher/internal/autoswitch"
	"github.com/mzdunek/monitorwatcher/internal/usb"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var usbCmd = &cobra.Command{
	Use:   "usb",
	Short: "Manage USB auto-switching",
}

var usbDevicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List connected USB devices",
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := usb.NewBackend().EnumerateDevices(cmd.Context())
		if err != nil {
			return fmt.Errorf("cant enumerate usb devices: %w", err)
		}

		for _, device := range devices {
			cmd.Printf("%s:%s  %s\n", device.VendorID, device.ProductID, device.Name)
		}
		return nil
	},
}

var usbConfigureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Pick the trigger device and profile interactively",
	Long:  `Pick one of the currently connected USB devices and one of the stored profiles. When the daemon sees the device get plugged in, it applies the profile.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		profileStore, err := openProfileStore(cfg)
		if err != nil {
			return err
		}
		usbConfig, err := openUSBConfig(cfg)
		if err != nil {
			return err
		}

		profileNames := profileStore.Names()
		if len(profileNames) == 0 {
			return fmt.Errorf("no profiles stored yet, see `%s profiles create`", BinaryName)
		}

		devices, err := usb.NewBackend().EnumerateDevices(ctx)
		if err != nil {
			return fmt.Errorf("cant enumerate usb devices: %w", err)
		}
		if len(devices) == 0 {
			return fmt.Errorf("no usb devices detected")
		}

		deviceOptions := make([]huh.Option[int], len(devices))
		for i, device := range devices {
			deviceOptions[i] = huh.NewOption(
				fmt.Sprintf("%s (%s:%s)", device.Name, device.VendorID, device.ProductID), i)
		}
		profileOptions := make([]huh.Option[string], len(profileNames))
		for i, name := range profileNames {
			profileOptions[i] = huh.NewOption(name, name)
		}

		var deviceIndex int
		var profileName string
		enabled := true
		if err := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[int]().
					Title("Trigger device").
					Description("Plug the device in first if it is not listed.").
					Options(deviceOptions...).
					Value(&deviceIndex),
			),
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Profile to apply").
					Options(profileOptions...).
					Value(&profileName),
				huh.NewConfirm().
					Title("Enable auto-switching now?").
					Value(&enabled),
			),
		).Run(); err != nil {
			return err
		}

		device := devices[deviceIndex]
		if err := usbConfig.Save(autoswitch.Config{
			Enabled:    enabled,
			VendorID:   device.VendorID,
			ProductID:  device.ProductID,
			DeviceName: device.Name,
			Profile:    profileName,
		}); err != nil {
			return fmt.Errorf("cant save usb config: %w", err)
		}

		logrus.WithFields(logrus.Fields{
			"device":  device.VendorID + ":" + device.ProductID,
			"profile": profileName,
			"enabled": enabled,
		}).Info("USB auto-switching configured")
		return nil
	},
}

var usbShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current auto-switch configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		usbConfig, err := openUSBConfig(cfg)
		if err != nil {
			return err
		}

		current, err := usbConfig.Get()
		if err != nil {
			return err
		}

		state := "disabled"
		if current.Enabled {
			state = "enabled"
		}
		name := current.DeviceName
		if name == "" {
			name = "(unnamed device)"
		}
		cmd.Printf("%s: %s %s:%s -> profile %s\n", state, name,
			current.VendorID, current.ProductID, current.Profile)
		return nil
	},
}

func newUSBToggleCmd(use, short string, enabled bool) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings()
			if err != nil {
				return err
			}
			usbConfig, err := openUSBConfig(cfg)
			if err != nil {
				return err
			}
			if err := usbConfig.SetEnabled(enabled); err != nil {
				return err
			}
			logrus.WithField("enabled", enabled).Info("USB auto-switching toggled")
			return nil
		},
	}
}

func init() {
	rootCmd.AddCommand(usbCmd)
	usbCmd.AddCommand(usbDevicesCmd)
	usbCmd.AddCommand(usbConfigureCmd)
	usbCmd.AddCommand(usbShowCmd)
	usbCmd.AddCommand(newUSBToggleCmd("enable", "Enable auto-switching", true))
	usbCmd.AddCommand(newUSBToggleCmd("disable", "Disable auto-switching", false))
}
