// Package jobs holds the background workers that advance policy state
// outside of request handling.
package jobs

import (
	"context"
	"log/slog"
	"time"
)

// Worker is a background job that polls for work until its context ends.
type Worker interface {
	Start(ctx context.Context)
	Name() string
}

// BaseWorker provides the shared polling loop.
type BaseWorker struct {
	name     string
	interval time.Duration
	log      *slog.Logger
}

func NewBaseWorker(name string, interval time.Duration, log *slog.Logger) BaseWorker {
	if interval <= 0 {
		interval = time.Minute
	}
	return BaseWorker{
		name:     name,
		interval: interval,
		log:      log.With("worker", name),
	}
}

// Poll runs work immediately, then on every tick until ctx is cancelled.
// A failing sweep is logged and retried on the next tick.
func (w *BaseWorker) Poll(ctx context.Context, work func(context.Context) error) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.log.Info("worker started", "interval", w.interval)

	if err := work(ctx); err != nil {
		w.log.Error("worker sweep failed", "err", err)
	}

	for {
		select {
		case <-ctx.Done():
			w.log.Info("worker stopping")
			return
		case <-ticker.C:
			if err := work(ctx); err != nil {
				w.log.Error("worker sweep failed", "err", err)
			}
		}
	}
}
