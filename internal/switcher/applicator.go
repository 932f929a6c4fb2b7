// Package switcher applies monitor profiles: it diffs the desired input
// state against what the displays report and issues the minimal set of
// hardware commands, in profile order.
package switcher

import (
	"context"
	"fmt"
	"time"

	"github.com/mzdunek/monitorwatcher/internal/config"
	"github.com/mzdunek/monitorwatcher/internal/ddc"
	"github.com/mzdunek/monitorwatcher/internal/display"
	"github.com/mzdunek/monitorwatcher/internal/errs"
	"github.com/mzdunek/monitorwatcher/internal/profiles"
	"github.com/sirupsen/logrus"
)

type Applicator struct {
	cfg        *config.Config
	controller display.Controller
}

func NewApplicator(cfg *config.Config, controller display.Controller) *Applicator {
	return &Applicator{cfg: cfg, controller: controller}
}

// Apply walks the profile's monitor entries in insertion order. Unknown
// input names are skipped with a warning; a hardware command failure aborts
// the remaining entries (a partial application is the documented behavior).
// Entries whose display already reports the desired input are skipped
// without touching the bus. Only actual hardware writes are followed by
// the inter-operation delay; a skip generates no bus traffic.
func (a *Applicator) Apply(ctx context.Context, profile *profiles.Profile) error {
	if len(profile.Monitors) == 0 {
		return fmt.Errorf("profile %q: %w", profile.Name, errs.ErrEmptyProfile)
	}

	logrus.WithFields(logrus.Fields{
		"profile":     profile.Name,
		"description": profile.Description,
	}).Info("Applying profile")

	delay := a.cfg.Get().Apply.Delay()
	for i, assignment := range profile.Monitors {
		fields := logrus.Fields{
			"display": assignment.Display,
			"input":   assignment.Input,
		}

		code, ok := ddc.InputCode(assignment.Input)
		if !ok {
			logrus.WithFields(fields).Warn("Unknown input name, skipping entry")
			continue
		}
		fields["code"] = code

		current, err := a.controller.GetInput(ctx, assignment.Display)
		if err == nil && current == code {
			logrus.WithFields(fields).Info("Display already on desired input, skipping")
			continue
		}
		if err != nil {
			logrus.WithFields(fields).WithError(err).Debug("Current input unknown, proceeding with set")
		}

		logrus.WithFields(fields).Info("Switching display input")
		if err := a.controller.SetInput(ctx, assignment.Display, code); err != nil {
			return fmt.Errorf("cant switch display %s to %s: %w", assignment.Display, assignment.Input, err)
		}

		if i < len(profile.Monitors)-1 {
			if err := sleepCtx(ctx, delay); err != nil {
				return fmt.Errorf("apply interrupted: %w", err)
			}
		}
	}

	logrus.WithField("profile", profile.Name).Info("Profile applied")
	return nil
}

// Switch performs a one-off input switch for a single display. Unlike
// Apply, an unknown input name here is an error the caller sees.
func (a *Applicator) Switch(ctx context.Context, displayID, inputName string) error {
	code, ok := ddc.InputCode(inputName)
	if !ok {
		return fmt.Errorf("input %q: %w", inputName, errs.ErrUnknownInput)
	}
	logrus.WithFields(logrus.Fields{
		"display": displayID,
		"input":   inputName,
		"code":    code,
	}).Info("Switching display input")
	if err := a.controller.SetInput(ctx, displayID, code); err != nil {
		return fmt.Errorf("cant switch display %s to %s: %w", displayID, inputName, err)
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
