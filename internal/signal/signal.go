// Package signal provides signal handling functionality.
package signal

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	sigChan     chan os.Signal
	ctx         context.Context
	cancelCause context.CancelCauseFunc
}

// Reloader handles SIGUSR1 by re-reading all configuration from disk.
type Reloader interface {
	Handle(context.Context) error
}

func NewHandler(ctx context.Context, cancelCause context.CancelCauseFunc) *Handler {
	return &Handler{
		sigChan:     make(chan os.Signal, 1),
		ctx:         ctx,
		cancelCause: cancelCause,
	}
}

func (h *Handler) Start(reloader Reloader) {
	signal.Notify(h.sigChan, syscall.SIGUSR1, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)
	logrus.Debug("Signal notifications registered for SIGUSR1, SIGTERM, SIGINT, SIGHUP")

	go h.handleSignals(reloader)
	logrus.Debug("Signal handler goroutine launched")
}

func (h *Handler) Stop() {
	h.cancelCause(context.Canceled)
	signal.Stop(h.sigChan)
	close(h.sigChan)
}

func (h *Handler) handleSignals(reloader Reloader) {
	logrus.Debug("Signal handler goroutine started")
	for {
		select {
		case sig := <-h.sigChan:
			logrus.WithField("signal", sig).Debug("Signal received")
			switch sig {
			case syscall.SIGUSR1:
				logrus.Info("Received SIGUSR1, triggering manual reload")
				if err := reloader.Handle(h.ctx); err != nil {
					logrus.WithError(err).Error("Manual reload failed, service will keep running")
				} else {
					logrus.Info("Manual reload completed successfully")
				}
			case syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP:
				logrus.WithField("signal", sig).Info("Received termination signal, shutting down gracefully")
				h.cancelCause(context.Canceled)
				return
			}
		case <-h.ctx.Done():
			logrus.Debug("Signal handler context done, exiting")
			return
		}
	}
}
