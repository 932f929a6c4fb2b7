// Package app provides an application runner.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/mzdunek/monitorwatcher/internal/autoswitch"
	"github.com/mzdunek/monitorwatcher/internal/config"
	"github.com/mzdunek/monitorwatcher/internal/display"
	"github.com/mzdunek/monitorwatcher/internal/filewatcher"
	"github.com/mzdunek/monitorwatcher/internal/notifications"
	"github.com/mzdunek/monitorwatcher/internal/profiles"
	"github.com/mzdunek/monitorwatcher/internal/reloader"
	"github.com/mzdunek/monitorwatcher/internal/signal"
	"github.com/mzdunek/monitorwatcher/internal/switcher"
	"github.com/mzdunek/monitorwatcher/internal/usb"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Application wires the daemon: the USB presence monitor applying
// profiles, the filewatcher driving hot reloads, and the signal handler.
type Application struct {
	cfg           *config.Config
	profiles      *profiles.Store
	usbConfig     *autoswitch.Store
	controller    display.Controller
	applicator    *switcher.Applicator
	notifications *notifications.Service
	autoswitch    *autoswitch.Service
	fswatcher     *filewatcher.Service
	reloader      *reloader.Service
	signal        *signal.Handler
}

func NewApplication(ctx context.Context, cancel context.CancelCauseFunc,
	configPath *string, dryRun, disableAutoHotReload *bool,
) (*Application, error) {
	cfg, err := config.NewConfig(*configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	controller, err := display.New(ctx, *dryRun)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize display controller: %w", err)
	}

	profileStore, err := profiles.NewStore(os.ExpandEnv(*cfg.Get().General.ProfilesFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open profile store: %w", err)
	}

	usbConfig, err := autoswitch.NewStore(os.ExpandEnv(*cfg.Get().General.USBConfigFile))
	if err != nil {
		return nil, fmt.Errorf("failed to open usb config: %w", err)
	}

	applicator := switcher.NewApplicator(cfg, controller)
	notifier := notifications.NewService(cfg)
	autoswitchService := autoswitch.NewService(cfg, usbConfig, profileStore,
		applicator, notifier, usb.NewBackend())

	fswatcher := filewatcher.NewService(cfg, disableAutoHotReload)
	reloaderService := reloader.NewService(cfg, fswatcher, profileStore,
		autoswitchService, *disableAutoHotReload)
	signalHandler := signal.NewHandler(ctx, cancel)

	return &Application{
		cfg:           cfg,
		profiles:      profileStore,
		usbConfig:     usbConfig,
		controller:    controller,
		applicator:    applicator,
		notifications: notifier,
		autoswitch:    autoswitchService,
		fswatcher:     fswatcher,
		reloader:      reloaderService,
		signal:        signalHandler,
	}, nil
}

func (a *Application) Run(ctx context.Context) error {
	a.signal.Start(a.reloader)
	defer a.signal.Stop()

	eg, ctx := errgroup.WithContext(ctx)

	backgroundGoroutines := []struct {
		Fun  func(context.Context) error
		Name string
	}{
		{Fun: a.fswatcher.Run, Name: "filewatcher"},
		{Fun: a.reloader.Run, Name: "reloader"},
		{Fun: a.autoswitch.Run, Name: "autoswitch"},
	}
	for _, bg := range backgroundGoroutines {
		bg := bg
		eg.Go(func() error {
			fields := logrus.Fields{"name": bg.Name}
			logrus.WithFields(fields).Debug("Starting")
			if err := bg.Fun(ctx); err != nil {
				logrus.WithFields(fields).WithError(err).Errorf("Service failed %s", bg.Name)
				return fmt.Errorf("%s failed: %w", bg.Name, err)
			}
			logrus.WithFields(fields).Debug("Finished")
			return nil
		})
	}

	eg.Go(func() error {
		<-ctx.Done()
		logrus.Debug("Context cancelled, shutting down")
		return context.Cause(ctx)
	})

	if err := eg.Wait(); err != nil {
		return fmt.Errorf("main eg failed: %w", err)
	}

	logrus.Info("Shutdown complete")
	return nil
}
