// Package autoswitch connects the USB presence monitor to the profile
// applicator: when the configured device is plugged in, the configured
// profile is applied.
package autoswitch

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/mzdunek/monitorwatcher/internal/errs"
)

// Config is the persisted auto-switch configuration, stored as
// usb_config.json next to the profiles file.
type Config struct {
	Enabled    bool   `json:"enabled"`
	VendorID   string `json:"vendor_id"`
	ProductID  string `json:"product_id"`
	DeviceName string `json:"device_name,omitempty"`
	Profile    string `json:"profile"`
}

func (c *Config) Validate() error {
	if c.VendorID == "" || c.ProductID == "" {
		return fmt.Errorf("vendor_id and product_id are required")
	}
	if c.Profile == "" {
		return fmt.Errorf("profile is required")
	}
	return nil
}

// Store persists the auto-switch configuration. A missing file means
// auto-switching has never been configured.
type Store struct {
	path string

	mu  sync.RWMutex
	cfg *Config
}

func NewStore(path string) (*Store, error) {
	store := &Store{path: path}
	if err := store.Reload(); err != nil {
		return nil, err
	}
	return store, nil
}

func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

// Relocate points the store at a different file and loads it, used when a
// settings reload moves usb_config_file. A missing new file simply means
// not configured.
func (s *Store) Relocate(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.path == path {
		return nil
	}
	s.path = path
	return s.reloadLocked()
}

func (s *Store) reloadLocked() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		s.cfg = nil
		return nil
	}
	if err != nil {
		return fmt.Errorf("cant read usb config %s: %w", s.path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("cant parse usb config %s: %w", s.path, err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid usb config %s: %w", s.path, err)
	}
	s.cfg = &cfg
	return nil
}

// Get returns a copy of the configuration, or errs.ErrNotConfigured when
// no device has been configured yet.
func (s *Store) Get() (Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return Config{}, errs.ErrNotConfigured
	}
	return *s.cfg, nil
}

func (s *Store) Save(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
	return s.persistLocked()
}

// SetEnabled toggles auto-switching without touching the device or
// profile selection.
func (s *Store) SetEnabled(enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg == nil {
		return errs.ErrNotConfigured
	}
	s.cfg.Enabled = enabled
	return s.persistLocked()
}

func (s *Store) Path() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.path
}

func (s *Store) persistLocked() error {
	data, err := json.MarshalIndent(s.cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cant marshal usb config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("cant create config directory: %w", err)
	}
	if err := os.WriteFile(s.path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("cant write usb config %s: %w", s.path, err)
	}
	return nil
}
