// Package notify is the mock notification sender. It logs instead of
// emailing; callers treat it as fire-and-forget.
package notify

import (
	"context"
	"log/slog"

	"github.com/MrKriegler/go-autoquote/internal/core"
)

type LogNotifier struct {
	log *slog.Logger
}

func NewLogNotifier(log *slog.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

var _ core.Notifier = (*LogNotifier)(nil)

func (n *LogNotifier) NotifyBound(ctx context.Context, policy core.Policy, payment core.PaymentResult) error {
	n.log.InfoContext(ctx, "policy bound confirmation",
		"reference", policy.Reference,
		"email", policy.Snapshot.Driver.Email,
		"amount", payment.Amount,
		"last4", payment.Last4)
	return nil
}

func (n *LogNotifier) NotifyActivated(ctx context.Context, policy core.Policy) error {
	n.log.InfoContext(ctx, "policy activation notice",
		"reference", policy.Reference,
		"email", policy.Snapshot.Driver.Email)
	return nil
}
