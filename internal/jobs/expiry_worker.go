package jobs

import (
	"context"
	"log/slog"
	"time"

	"github.com/MrKriegler/go-autoquote/internal/core"
	"github.com/MrKriegler/go-autoquote/internal/platform/ids"
)

// ExpiryWorker sweeps quoted records past their expiration date into the
// expired status. Expiry is lazy between sweeps: IsQuoteExpired guards reads,
// this worker makes the stored status catch up.
type ExpiryWorker struct {
	BaseWorker
	policies  core.PolicyRepo
	events    core.EventRepo
	batchSize int
	clock     func() time.Time
}

func NewExpiryWorker(
	policies core.PolicyRepo,
	events core.EventRepo,
	interval time.Duration,
	batchSize int,
	log *slog.Logger,
) *ExpiryWorker {
	return &ExpiryWorker{
		BaseWorker: NewBaseWorker("quote-expiry", interval, log),
		policies:   policies,
		events:     events,
		batchSize:  batchSize,
		clock:      time.Now,
	}
}

// Start begins the worker polling loop.
func (w *ExpiryWorker) Start(ctx context.Context) {
	w.Poll(ctx, w.expireQuotes)
}

// Name returns the worker name.
func (w *ExpiryWorker) Name() string {
	return w.name
}

func (w *ExpiryWorker) expireQuotes(ctx context.Context) error {
	quotes, err := w.policies.FindByStatus(ctx, core.PolicyStatusQuoted, w.batchSize)
	if err != nil {
		return err
	}

	now := w.clock()
	expired := 0
	for _, p := range quotes {
		if !p.IsQuoteExpired(now) {
			continue
		}

		// Conditional on the status still being quoted: a concurrent bind
		// wins the race and the sweep just moves on.
		if err := w.policies.UpdateStatusFrom(ctx, p.ID, core.PolicyStatusQuoted, core.PolicyStatusExpired, now); err != nil {
			w.log.Warn("failed to expire quote",
				"policy_id", p.ID, "reference", p.Reference, "err", err)
			continue
		}
		expired++

		if err := w.events.Append(ctx, core.Event{
			ID:             ids.New(),
			PolicyID:       p.ID,
			PreviousStatus: core.PolicyStatusQuoted,
			NewStatus:      core.PolicyStatusExpired,
			Reason:         "quote validity window elapsed",
			CreatedAt:      now,
		}); err != nil {
			w.log.Warn("failed to append expiry event",
				"policy_id", p.ID, "reference", p.Reference, "err", err)
		}
	}

	if expired > 0 {
		w.log.Info("expired stale quotes", "count", expired)
	}
	return nil
}
