package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/mzdunek/monitorwatcher/internal/autoswitch"
	"github.com/mzdunek/monitorwatcher/internal/config"
	"github.com/mzdunek/monitorwatcher/internal/display"
	"github.com/mzdunek/monitorwatcher/internal/profiles"
)

func loadSettings() (*config.Config, error) {
	cfg, err := config.NewConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("cant load settings: %w", err)
	}
	return cfg, nil
}

func openProfileStore(cfg *config.Config) (*profiles.Store, error) {
	store, err := profiles.NewStore(os.ExpandEnv(*cfg.Get().General.ProfilesFile))
	if err != nil {
		return nil, fmt.Errorf("cant open profile store: %w", err)
	}
	return store, nil
}

func openUSBConfig(cfg *config.Config) (*autoswitch.Store, error) {
	store, err := autoswitch.NewStore(os.ExpandEnv(*cfg.Get().General.USBConfigFile))
	if err != nil {
		return nil, fmt.Errorf("cant open usb config: %w", err)
	}
	return store, nil
}

func newController(ctx context.Context, dryRun bool) (display.Controller, error) {
	controller, err := display.New(ctx, dryRun)
	if err != nil {
		return nil, fmt.Errorf("cant init display controller: %w", err)
	}
	return controller, nil
}
