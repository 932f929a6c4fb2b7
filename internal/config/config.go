// Package config handles loading and validation of the TOML settings file.
// The settings file is optional; a missing file yields pure defaults.
// Profile data itself lives in a separate JSON store, see internal/profiles.
package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/mzdunek/monitorwatcher/internal/utils"
	"github.com/sirupsen/logrus"
)

const (
	defaultProfilesFile  = "$HOME/.config/monitor-watcher/profiles.json"
	defaultUSBConfigFile = "$HOME/.config/monitor-watcher/usb_config.json"
	defaultApplyDelayMs  = 500
	defaultPollMs        = 2000
	defaultStopTimeoutMs = 2000
	defaultNotifyMs      = 5000
)

type RawConfig struct {
	General       *GeneralSection       `toml:"general"`
	Apply         *ApplySection         `toml:"apply"`
	USB           *USBSection           `toml:"usb"`
	Notifications *NotificationsSection `toml:"notifications"`
}

type GeneralSection struct {
	ProfilesFile  *string `toml:"profiles_file"`
	USBConfigFile *string `toml:"usb_config_file"`
}

type ApplySection struct {
	// DelayMs is the pause between consecutive hardware input switches.
	// Rapid DDC writes are unreliable against real displays.
	DelayMs *int `toml:"delay_ms"`
}

func (a *ApplySection) Delay() time.Duration {
	return time.Duration(*a.DelayMs) * time.Millisecond
}

type USBSection struct {
	PollIntervalMs *int `toml:"poll_interval_ms"`
	StopTimeoutMs  *int `toml:"stop_timeout_ms"`
}

func (u *USBSection) PollInterval() time.Duration {
	return time.Duration(*u.PollIntervalMs) * time.Millisecond
}

func (u *USBSection) StopTimeout() time.Duration {
	return time.Duration(*u.StopTimeoutMs) * time.Millisecond
}

type NotificationsSection struct {
	Disabled  *bool  `toml:"disabled"`
	TimeoutMs *int32 `toml:"timeout_ms"`
}

// Config wraps RawConfig with a lock so the daemon can hot reload settings.
type Config struct {
	configPath string
	mu         sync.RWMutex
	raw        *RawConfig
}

func NewConfig(configPath string) (*Config, error) {
	cfg := &Config{configPath: configPath}
	if err := cfg.Reload(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Path returns the settings file location; the file may not exist.
func (c *Config) Path() string {
	return c.configPath
}

func (c *Config) Get() *RawConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.raw
}

func (c *Config) Reload() error {
	raw, err := load(c.configPath)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.raw = raw
	c.mu.Unlock()
	return nil
}

func load(configPath string) (*RawConfig, error) {
	configPath = os.ExpandEnv(configPath)

	var raw RawConfig
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		logrus.WithField("config_path", configPath).Debug("No settings file, using defaults")
	} else if _, err := toml.DecodeFile(configPath, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode TOML: %w", err)
	}

	raw.applyDefaults()
	if err := raw.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &raw, nil
}

func (r *RawConfig) applyDefaults() {
	if r.General == nil {
		r.General = &GeneralSection{}
	}
	if r.General.ProfilesFile == nil {
		r.General.ProfilesFile = utils.StringPtr(os.ExpandEnv(defaultProfilesFile))
	}
	if r.General.USBConfigFile == nil {
		r.General.USBConfigFile = utils.StringPtr(os.ExpandEnv(defaultUSBConfigFile))
	}
	if r.Apply == nil {
		r.Apply = &ApplySection{}
	}
	if r.Apply.DelayMs == nil {
		r.Apply.DelayMs = utils.IntPtr(defaultApplyDelayMs)
	}
	if r.USB == nil {
		r.USB = &USBSection{}
	}
	if r.USB.PollIntervalMs == nil {
		r.USB.PollIntervalMs = utils.IntPtr(defaultPollMs)
	}
	if r.USB.StopTimeoutMs == nil {
		r.USB.StopTimeoutMs = utils.IntPtr(defaultStopTimeoutMs)
	}
	if r.Notifications == nil {
		r.Notifications = &NotificationsSection{}
	}
	if r.Notifications.Disabled == nil {
		r.Notifications.Disabled = utils.BoolPtr(false)
	}
	if r.Notifications.TimeoutMs == nil {
		r.Notifications.TimeoutMs = utils.JustPtr(int32(defaultNotifyMs))
	}
}

func (r *RawConfig) Validate() error {
	if err := r.General.Validate(); err != nil {
		return fmt.Errorf("general section: %w", err)
	}
	if err := r.Apply.Validate(); err != nil {
		return fmt.Errorf("apply section: %w", err)
	}
	if err := r.USB.Validate(); err != nil {
		return fmt.Errorf("usb section: %w", err)
	}
	if err := r.Notifications.Validate(); err != nil {
		return fmt.Errorf("notifications section: %w", err)
	}
	return nil
}

func (g *GeneralSection) Validate() error {
	if *g.ProfilesFile == "" {
		return errors.New("profiles_file cant be empty")
	}
	if *g.USBConfigFile == "" {
		return errors.New("usb_config_file cant be empty")
	}
	return nil
}

func (a *ApplySection) Validate() error {
	if *a.DelayMs < 0 {
		return errors.New("delay_ms cant be negative")
	}
	return nil
}

func (u *USBSection) Validate() error {
	if *u.PollIntervalMs <= 0 {
		return errors.New("poll_interval_ms must be positive")
	}
	if *u.StopTimeoutMs < 0 {
		return errors.New("stop_timeout_ms cant be negative")
	}
	return nil
}

func (n *NotificationsSection) Validate() error {
	if *n.TimeoutMs < 0 {
		return errors.New("timeout_ms cant be negative")
	}
	return nil
}
