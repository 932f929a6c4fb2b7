package usb

import (
	"runtime"

	"github.com/sirupsen/logrus"
)

// NewBackend picks the enumeration backend for the current platform.
func NewBackend() Backend {
	switch runtime.GOOS {
	case "darwin":
		logrus.Debug("Using system_profiler USB backend")
		return NewSystemProfilerBackend()
	default:
		logrus.Debug("Using lsusb USB backend")
		return NewLsusbBackend()
	}
}
