package usb

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// ConnectFunc is invoked synchronously from the poll goroutine when the
// target device transitions from absent to present. A slow callback delays
// the next tick; a panicking callback is logged and swallowed, it can never
// take the monitor down.
type ConnectFunc func(vendorID, productID string)

// Monitor is an Idle/Running state machine. While Running a background
// goroutine snapshots the backend at a fixed interval and compares
// consecutive snapshots; only a transition into presence fires the
// callback (edge-triggering). A device already connected when monitoring
// starts does not fire until it is unplugged and replugged.
type Monitor struct {
	backend     Backend
	onConnect   ConnectFunc
	interval    time.Duration
	stopTimeout time.Duration

	// mu guards the fields below; they are touched both by the poll
	// goroutine and by Start/Stop/SetTarget callers.
	mu      sync.Mutex
	running bool
	target  *DeviceID
	cancel  context.CancelFunc
	done    chan struct{}
}

func NewMonitor(backend Backend, onConnect ConnectFunc, interval, stopTimeout time.Duration) *Monitor {
	return &Monitor{
		backend:     backend,
		onConnect:   onConnect,
		interval:    interval,
		stopTimeout: stopTimeout,
	}
}

// SetTarget changes the monitored device. Valid in either state; takes
// effect on the next poll tick and does not itself start monitoring.
func (m *Monitor) SetTarget(vendorID, productID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = &DeviceID{VendorID: vendorID, ProductID: productID}
	logrus.WithField("target", m.target.String()).Debug("USB monitor target set")
}

// ClearTarget drops the monitored device; subsequent ticks fire nothing.
func (m *Monitor) ClearTarget() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.target = nil
}

// Running reports whether the poll loop is active.
func (m *Monitor) Running() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Start transitions Idle -> Running. Starting a running monitor is a
// logged no-op. The first snapshot taken by the loop becomes the baseline
// and is never compared for edges.
func (m *Monitor) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.running {
		logrus.Debug("USB monitor already running, ignoring start request")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.running = true
	m.cancel = cancel
	m.done = make(chan struct{})

	target := "none"
	if m.target != nil {
		target = m.target.String()
	}
	logrus.WithField("target", target).Info("USB monitor starting")

	go m.loop(ctx, m.done)
}

// Stop transitions Running -> Idle. Stopping an idle monitor is a logged
// no-op. The poll goroutine is awaited with a bounded timeout; if it is
// stuck inside a backend call we proceed anyway rather than block the
// caller.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		logrus.Debug("USB monitor not running, ignoring stop request")
		return
	}
	m.running = false
	m.cancel()
	done := m.done
	m.cancel = nil
	m.done = nil
	m.mu.Unlock()

	select {
	case <-done:
		logrus.Info("USB monitor stopped")
	case <-time.After(m.stopTimeout):
		logrus.Warn("USB monitor did not stop in time, proceeding anyway")
	}
}

func (m *Monitor) currentTarget() *DeviceID {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.target == nil {
		return nil
	}
	id := *m.target
	return &id
}

// loop owns the previous snapshot; nothing outside the goroutine reads it.
func (m *Monitor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	var previous snapshot
	baselined := false
	if devices, err := m.backend.EnumerateDevices(ctx); err != nil {
		logrus.WithError(err).Warn("Cant take baseline USB snapshot, will retry on next tick")
	} else {
		previous = snapshotOf(devices)
		baselined = true
		logrus.WithField("device_count", len(previous)).Debug("USB monitor baseline snapshot taken")
	}

	for {
		select {
		case <-ctx.Done():
			logrus.Debug("USB monitor loop cancelled")
			return
		case <-time.After(m.interval):
		}

		devices, err := m.backend.EnumerateDevices(ctx)
		if err != nil {
			// Transient backend failure: keep the last good snapshot as
			// baseline and keep polling.
			logrus.WithError(err).Warn("USB enumeration failed, skipping tick")
			continue
		}
		current := snapshotOf(devices)

		if !baselined {
			previous = current
			baselined = true
			continue
		}

		if target := m.currentTarget(); target != nil {
			if _, ok := current.appeared(previous)[*target]; ok {
				logrus.WithField("target", target.String()).Info("Target USB device connected")
				m.fire(target.VendorID, target.ProductID)
			}
		}

		previous = current
	}
}

func (m *Monitor) fire(vendorID, productID string) {
	defer func() {
		if r := recover(); r != nil {
			logrus.WithField("panic", r).Error("USB connect callback panicked, monitor keeps running")
		}
	}()
	if m.onConnect != nil {
		m.onConnect(vendorID, productID)
	}
}
