// Package display provides controllers for switching monitor inputs over
// DDC/CI. Each controller wraps a platform command-line tool; the choice of
// tool is made once at construction time and callers only see the
// Controller capability.
package display

import (
	"context"
	"fmt"
	"regexp"
)

// Controller is the capability consumed by the profile applicator and the
// CLI. Displays are addressed by an opaque identifier, usually the index
// reported by ListDisplays.
type Controller interface {
	ListDisplays(ctx context.Context, detailed bool) (string, error)
	// GetInput reports the current input code for a display. When the
	// current state cannot be determined the error wraps
	// errs.ErrInputStateUnknown.
	GetInput(ctx context.Context, display string) (int, error)
	SetInput(ctx context.Context, display string, inputCode int) error
	GetLuminance(ctx context.Context, display string) (string, error)
	SetLuminance(ctx context.Context, display string, value int) error
}

// CommandError is a hardware command failure: the underlying tool was
// unreachable, rejected the command, or timed out. It aborts the remaining
// entries of a profile application.
type CommandError struct {
	Display string
	Command string
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("hardware command failed for display %s: `%s`: %v", e.Display, e.Command, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

var displayIndexRe = regexp.MustCompile(`\[(\d+)\]`)

// ExtractDisplayIDs pulls the bracketed display indices out of a
// ListDisplays listing. Used by the profile creation wizard only; the core
// never parses the listing.
func ExtractDisplayIDs(listing string) []string {
	matches := displayIndexRe.FindAllStringSubmatch(listing, -1)
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		ids = append(ids, m[1])
	}
	return ids
}
