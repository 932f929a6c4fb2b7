package display

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
)

// New picks the controller for the current platform. The decision is made
// once here; nothing downstream branches on the platform again.
func New(ctx context.Context, dryRun bool) (Controller, error) {
	if dryRun {
		return NewMock(), nil
	}

	switch runtime.GOOS {
	case "darwin":
		logrus.Debug("Using m1ddc display controller")
		ctrl, err := NewM1DDC(ctx)
		if err != nil {
			return nil, fmt.Errorf("cant init m1ddc controller: %w", err)
		}
		return ctrl, nil
	case "linux":
		logrus.Debug("Using ddcutil display controller")
		ctrl, err := NewDDCUtil(ctx)
		if err != nil {
			return nil, fmt.Errorf("cant init ddcutil controller: %w", err)
		}
		return ctrl, nil
	default:
		return nil, fmt.Errorf("unsupported platform %q, supported: darwin, linux", runtime.GOOS)
	}
}
