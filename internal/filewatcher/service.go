// Package filewatcher provides a service that watches the config files and
// issues a debounced event with changes
package filewatcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mzdunek/monitorwatcher/internal/config"
	"github.com/mzdunek/monitorwatcher/internal/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const debounceDelay = 250 * time.Millisecond

// Service watches the directories holding the settings file, the profiles
// file and the usb config file. Watching directories instead of files
// survives editors that replace files on save.
type Service struct {
	cfg                  *config.Config
	stateMu              sync.RWMutex
	watchedPaths         map[string]bool
	events               chan interface{}
	watcher              *fsnotify.Watcher
	disableAutoHotReload *bool
	debouncer            *utils.Debouncer
}

func NewService(cfg *config.Config, disableAutoHotReload *bool) *Service {
	return &Service{
		cfg: cfg, stateMu: sync.RWMutex{}, watchedPaths: make(map[string]bool),
		events:               make(chan interface{}, 1),
		disableAutoHotReload: disableAutoHotReload,
		debouncer:            utils.NewDebouncer(),
	}
}

// Update reconciles the watch list with the currently configured file
// locations. Safe to call after a settings reload moves them.
func (s *Service) Update() error {
	logrus.Debug("Updating watcher")

	if s.disableAutoHotReload != nil && *s.disableAutoHotReload {
		logrus.Info("Hot reload disabled, not updating filewatcher")
		return nil
	}

	if s.watcher == nil {
		return errors.New("no watcher assigned")
	}

	s.stateMu.Lock()
	defer s.stateMu.Unlock()

	wanted := s.wantedDirs()
	if s.allTracked(wanted) {
		logrus.Debug("All paths are tracked already, no update needed")
		return nil
	}

	if err := s.removeCurrentlyTrackedPaths(); err != nil {
		return fmt.Errorf("cant remove currently tracked paths: %w", err)
	}

	if err := s.addWatchedPaths(wanted); err != nil {
		return fmt.Errorf("cant add new tracked paths: %w", err)
	}

	logrus.Debug("Watcher update done")

	return nil
}

func (s *Service) wantedDirs() []string {
	raw := s.cfg.Get()
	candidates := []string{
		filepath.Dir(os.ExpandEnv(s.cfg.Path())),
		filepath.Dir(os.ExpandEnv(*raw.General.ProfilesFile)),
		filepath.Dir(os.ExpandEnv(*raw.General.USBConfigFile)),
	}
	var dirs []string
	seen := map[string]bool{}
	for _, dir := range candidates {
		if seen[dir] {
			continue
		}
		seen[dir] = true
		dirs = append(dirs, dir)
	}
	return dirs
}

func (s *Service) allTracked(wanted []string) bool {
	if len(wanted) != len(s.watchedPaths) {
		return false
	}
	for _, dir := range wanted {
		if _, ok := s.watchedPaths[dir]; !ok {
			return false
		}
	}
	return true
}

func (s *Service) addWatchedPaths(wanted []string) error {
	logrus.Debug("(Re)adding new tracked paths")
	for _, dir := range wanted {
		if _, ok := s.watchedPaths[dir]; ok {
			continue
		}
		if err := s.watcher.Add(dir); err != nil {
			return fmt.Errorf("cant add %s to watcher: %w", dir, err)
		}
		s.watchedPaths[dir] = true
		logrus.WithFields(logrus.Fields{"path": dir}).Debug("Added watched path")
	}
	return nil
}

func (s *Service) removeCurrentlyTrackedPaths() error {
	logrus.Debug("Removing currently tracked paths")
	for path := range s.watchedPaths {
		if err := s.watcher.Remove(path); err != nil &&
			errors.Is(err, fsnotify.ErrNonExistentWatch) {
			return fmt.Errorf("cant remove %s from watcher: %w", path, err)
		}
		delete(s.watchedPaths, path)
		logrus.WithFields(logrus.Fields{"path": path}).Debug("Removed watched path")
	}
	return nil
}

func (s *Service) Listen() <-chan interface{} {
	return s.events
}

func (s *Service) Run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		logrus.Debug("Context cancelled for filewatcher, shutting down")
		return context.Cause(ctx)
	})

	if s.disableAutoHotReload != nil && *s.disableAutoHotReload {
		logrus.Info("Disabling filewatcher")
		if err := eg.Wait(); err != nil {
			return fmt.Errorf("bg tasks failed in filewatcher: %w", err)
		}
		return nil
	}

	logrus.Debug("starting watcher")
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("cant create watcher: %w", err)
	}
	s.watcher = watcher

	eg.Go(func() error {
		return s.debouncer.Run(ctx)
	})

	eg.Go(func() error {
		<-ctx.Done()
		s.debouncer.Cancel()
		logrus.Debug("Context cancelled, shutting watcher down")
		if err := watcher.Close(); err != nil {
			logrus.WithError(err).Error("Cant close watcher on exit")
		}
		return context.Cause(ctx)
	})

	eg.Go(func() error {
		logrus.Debug("Initialized watcher")
		if err := s.runServiceLoop(ctx, watcher); err != nil {
			return fmt.Errorf("cant run service loop: %w", err)
		}
		logrus.Debug("Exiting watcher")
		return nil
	})

	if err := s.Update(); err != nil {
		return fmt.Errorf("cant initialize watcher: %w", err)
	}

	return eg.Wait()
}

func (s *Service) runServiceLoop(ctx context.Context, watcher *fsnotify.Watcher) error {
	logrus.Debug("Starting filewatcher goroutine")
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher channel is closed")
			}

			logrus.WithFields(logrus.Fields{
				"name":      event.Name,
				"operation": event.Op,
			}).Debug("Received filewatcher event")

			s.debouncer.Do(ctx, debounceDelay, s.updateProcessor)
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher error channel is closed")
			}
			if err != nil {
				return fmt.Errorf("watcher error received: %w", err)
			}
		case <-ctx.Done():
			logrus.Debug("Context cancelled, shutting fswatcher down")
			return context.Cause(ctx)
		}
	}
}

func (s *Service) updateProcessor(ctx context.Context) error {
	select {
	case <-ctx.Done():
		logrus.Debug("Config update processor context cancelled, shutting down")
		return context.Cause(ctx)
	default:
		logrus.Debug("Sending update event")
		s.events <- true
		return nil
	}
}
