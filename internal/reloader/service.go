// Package reloader provides a service that listens to file change
// notifications and issues an application-wide reload
package reloader

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mzdunek/monitorwatcher/internal/config"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type IProfileStore interface {
	Reload() error
	Relocate(path string) error
}

type IAutoSwitch interface {
	Reload(context.Context) error
	Relocate(path string) error
}

type IFilewatcher interface {
	Update() error
	Listen() <-chan interface{}
}

type Service struct {
	cfg                  *config.Config
	filewatcher          IFilewatcher
	profiles             IProfileStore
	autoswitch           IAutoSwitch
	disableAutoHotReload *bool
}

func NewService(cfg *config.Config, filewatcher IFilewatcher, profileStore IProfileStore,
	autoswitchService IAutoSwitch, disableAutoHotReload bool,
) *Service {
	return &Service{
		cfg,
		filewatcher,
		profileStore,
		autoswitchService,
		&disableAutoHotReload,
	}
}

func (s *Service) Handle(ctx context.Context) error {
	return s.Reload(ctx)
}

func (s *Service) Reload(ctx context.Context) error {
	updates := []struct {
		Fun  func() error
		Name string
		Err  string
	}{
		{Fun: s.cfg.Reload, Name: "settings reload", Err: "cant reload settings"},
		{Fun: s.relocateStores, Name: "relocate stores", Err: "cant relocate stores"},
		{Fun: s.filewatcher.Update, Name: "update filewatcher", Err: "cant update filewatcher"},
		{Fun: s.profiles.Reload, Name: "profiles reload", Err: "cant reload profiles"},
		{
			Fun:  func() error { return s.autoswitch.Reload(ctx) },
			Name: "autoswitch reload", Err: "cant reload autoswitch",
		},
	}

	for _, update := range updates {
		logrus.Debug("Executing " + update.Name)
		if err := update.Fun(); err != nil {
			return fmt.Errorf("%s: %w", update.Err, err)
		}
	}

	return nil
}

// relocateStores re-points the JSON stores when a settings reload moved
// profiles_file or usb_config_file; otherwise they would keep reading the
// construction-time paths.
func (s *Service) relocateStores() error {
	general := s.cfg.Get().General
	if err := s.profiles.Relocate(os.ExpandEnv(*general.ProfilesFile)); err != nil {
		return err
	}
	return s.autoswitch.Relocate(os.ExpandEnv(*general.USBConfigFile))
}

func (s *Service) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		logrus.Debug("Context cancelled for reloader, shutting down")
		return context.Cause(ctx)
	})

	if s.disableAutoHotReload != nil && *s.disableAutoHotReload {
		logrus.Info("Disabling reloader, no files will be watched")
		return eg.Wait()
	}

	watcherEventsChannel := s.filewatcher.Listen()

	eg.Go(func() error {
		logrus.Debug("Reloader event processor starting")
		for {
			select {
			case _, ok := <-watcherEventsChannel:
				if !ok {
					return errors.New("watcher event channel closed")
				}
				logrus.Debug("Watcher event received")
				if err := s.Reload(ctx); err != nil {
					return fmt.Errorf("cant reload configuration: %w", err)
				}

			case <-ctx.Done():
				logrus.Debug("Reloader event processor context cancelled, shutting down")
				return context.Cause(ctx)

			}
		}
	})

	return eg.Wait()
}
