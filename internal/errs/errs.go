// Package errs provides common errors thrown in the app that are expected to be caught upstream
package errs

import "errors"

var (
	// ErrEmptyProfile is returned when a profile has no monitor entries;
	// nothing is sent to the hardware in that case.
	ErrEmptyProfile = errors.New("profile has no monitor configuration")

	// ErrProfileNotFound is returned by the profile store for unknown names.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrUnknownInput is returned for input names outside the fixed table.
	ErrUnknownInput = errors.New("unknown input name")

	// ErrNotConfigured is returned when the USB auto-switch config is absent.
	ErrNotConfigured = errors.New("usb auto-switch not configured")

	// ErrInputStateUnknown means the controller could not read the current
	// input for a display. The applicator treats it as "not equal to desired".
	ErrInputStateUnknown = errors.New("current input state unknown")
)
