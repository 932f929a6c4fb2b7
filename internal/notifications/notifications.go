// Package notifications provides desktop notifications through dbus
package notifications

import (
	"fmt"

	"github.com/TheCreeper/go-notify"
	"github.com/mzdunek/monitorwatcher/internal/config"
	"github.com/sirupsen/logrus"
)

type Service struct {
	config *config.Config
	hints  map[string]interface{}
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
		hints: map[string]interface{}{
			"synchronous":       "monitorwatcher",
			"x-dunst-stack-tag": "monitorwatcher",
		},
	}
}

func (s *Service) NotifyProfileApplied(profileName string) error {
	return s.send("Monitor profile `"+profileName+"` applied",
		"Display inputs switched")
}

func (s *Service) NotifyDeviceConnected(deviceName, profileName string) error {
	return s.send(deviceName+" connected",
		"Applying monitor profile `"+profileName+"`")
}

func (s *Service) NotifyProfileFailed(profileName string, applyErr error) error {
	return s.send("Monitor profile `"+profileName+"` failed",
		applyErr.Error())
}

func (s *Service) send(summary, body string) error {
	if *s.config.Get().Notifications.Disabled {
		logrus.Debug("notifications are not enabled, not sending")
		return nil
	}

	ntf := notify.NewNotification(summary, body)
	ntf.Timeout = *s.config.Get().Notifications.TimeoutMs
	ntf.Hints = s.hints

	if _, err := ntf.Show(); err != nil {
		return fmt.Errorf("cant send notification %q: %w", summary, err)
	}
	return nil
}
