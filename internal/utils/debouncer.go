package utils

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

type debounceRequest struct {
	delay time.Duration
	fn    func(context.Context) error
}

// Debouncer coalesces bursts of Do calls into a single execution of the
// most recently scheduled function. All state is owned by the Run goroutine.
type Debouncer struct {
	requests chan debounceRequest
	cancels  chan struct{}
}

func NewDebouncer() *Debouncer {
	return &Debouncer{
		requests: make(chan debounceRequest, 1),
		cancels:  make(chan struct{}, 1),
	}
}

// Do schedules fn to run after delay, replacing any pending schedule.
func (d *Debouncer) Do(ctx context.Context, delay time.Duration, fn func(context.Context) error) {
	select {
	case d.requests <- debounceRequest{delay: delay, fn: fn}:
	case <-ctx.Done():
		logrus.Debug("Debouncer request dropped, context done")
	}
}

// Cancel drops the pending schedule, if any.
func (d *Debouncer) Cancel() {
	select {
	case d.cancels <- struct{}{}:
	default:
	}
}

func (d *Debouncer) Run(ctx context.Context) error {
	timer := time.NewTimer(time.Hour)
	stopTimer := func() {
		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
	}
	stopTimer()

	var pending func(context.Context) error
	for {
		select {
		case req := <-d.requests:
			stopTimer()
			pending = req.fn
			timer.Reset(req.delay)
		case <-d.cancels:
			stopTimer()
			pending = nil
		case <-timer.C:
			if pending == nil {
				continue
			}
			fn := pending
			pending = nil
			if err := fn(ctx); err != nil {
				logrus.WithError(err).Error("Debounced function failed")
			}
		case <-ctx.Done():
			stopTimer()
			return fmt.Errorf("debouncer stopped: %w", ctx.Err())
		}
	}
}
