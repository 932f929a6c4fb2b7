package autoswitch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/mzdunek/monitorwatcher/internal/config"
	"github.com/mzdunek/monitorwatcher/internal/errs"
	"github.com/mzdunek/monitorwatcher/internal/notifications"
	"github.com/mzdunek/monitorwatcher/internal/profiles"
	"github.com/mzdunek/monitorwatcher/internal/switcher"
	"github.com/mzdunek/monitorwatcher/internal/usb"
	"github.com/sirupsen/logrus"
)

// Service runs the USB presence monitor and applies the configured
// profile when the configured device appears. It owns the monitor's
// lifecycle: the monitor runs exactly when auto-switching is enabled and
// configured, and sync reconciles that after every config change.
type Service struct {
	cfg        *config.Config
	store      *Store
	profiles   *profiles.Store
	applicator *switcher.Applicator
	notifier   *notifications.Service
	monitor    *usb.Monitor

	mu     sync.Mutex
	runCtx context.Context
}

func NewService(cfg *config.Config, store *Store, profileStore *profiles.Store,
	applicator *switcher.Applicator, notifier *notifications.Service, backend usb.Backend,
) *Service {
	service := &Service{
		cfg:        cfg,
		store:      store,
		profiles:   profileStore,
		applicator: applicator,
		notifier:   notifier,
	}
	service.monitor = usb.NewMonitor(backend, service.onConnect,
		cfg.Get().USB.PollInterval(), cfg.Get().USB.StopTimeout())
	return service
}

// Run reconciles the monitor with the stored configuration and blocks
// until the context is cancelled, then stops the monitor.
func (s *Service) Run(ctx context.Context) error {
	s.mu.Lock()
	s.runCtx = ctx
	s.mu.Unlock()

	if err := s.sync(); err != nil {
		return err
	}

	<-ctx.Done()
	s.monitor.Stop()
	return fmt.Errorf("autoswitch service stopped: %w", ctx.Err())
}

// Relocate points the config store at a different file, used when a
// settings reload moves usb_config_file. The monitor is reconciled by the
// Reload that follows.
func (s *Service) Relocate(path string) error {
	return s.store.Relocate(path)
}

// Reload re-reads the stored configuration and reconciles the monitor,
// starting or stopping it as needed.
func (s *Service) Reload(ctx context.Context) error {
	if err := s.store.Reload(); err != nil {
		return fmt.Errorf("cant reload usb config: %w", err)
	}
	return s.sync()
}

func (s *Service) sync() error {
	cfg, err := s.store.Get()
	if errors.Is(err, errs.ErrNotConfigured) {
		logrus.Debug("No usb device configured, monitor stays idle")
		s.monitor.ClearTarget()
		s.monitor.Stop()
		return nil
	}
	if err != nil {
		return err
	}

	if !cfg.Enabled {
		logrus.Debug("Auto-switching disabled, stopping monitor")
		s.monitor.Stop()
		return nil
	}

	s.monitor.SetTarget(cfg.VendorID, cfg.ProductID)
	s.monitor.Start()
	return nil
}

func (s *Service) onConnect(vendorID, productID string) {
	cfg, err := s.store.Get()
	if err != nil {
		logrus.WithError(err).Warn("Device connected but no usb config present")
		return
	}

	log := logrus.WithFields(logrus.Fields{
		"device":  vendorID + ":" + productID,
		"profile": cfg.Profile,
	})
	log.Info("Configured device connected, applying profile")

	if err := s.notifier.NotifyDeviceConnected(deviceLabel(cfg), cfg.Profile); err != nil {
		log.WithError(err).Debug("Cant send connect notification")
	}

	profile, err := s.profiles.Get(cfg.Profile)
	if err != nil {
		log.WithError(err).Error("Configured profile missing, not applying")
		return
	}

	s.mu.Lock()
	ctx := s.runCtx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := s.applicator.Apply(ctx, profile); err != nil {
		log.WithError(err).Error("Profile application failed")
		if notifyErr := s.notifier.NotifyProfileFailed(cfg.Profile, err); notifyErr != nil {
			log.WithError(notifyErr).Debug("Cant send failure notification")
		}
		return
	}

	if err := s.notifier.NotifyProfileApplied(cfg.Profile); err != nil {
		log.WithError(err).Debug("Cant send applied notification")
	}
}

func deviceLabel(cfg Config) string {
	if cfg.DeviceName != "" {
		return cfg.DeviceName
	}
	return cfg.VendorID + ":" + cfg.ProductID
}
