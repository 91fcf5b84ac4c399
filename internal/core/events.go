package core

import (
	"context"
	"time"
)

// Event is one append-only status transition log entry. Never mutated or
// deleted.
type Event struct {
	ID             string       `json:"id"`
	PolicyID       string       `json:"policy_id"`
	PreviousStatus PolicyStatus `json:"previous_status"`
	NewStatus      PolicyStatus `json:"new_status"`
	Reason         string       `json:"reason"`
	CreatedAt      time.Time    `json:"created_at"`
}

type EventRepo interface {
	Append(ctx context.Context, e Event) error
	ListByPolicyID(ctx context.Context, policyID string) ([]Event, error)
}

// Notifier sends fire-and-forget confirmations. Errors are logged by the
// caller and never propagated.
type Notifier interface {
	NotifyBound(ctx context.Context, policy Policy, payment PaymentResult) error
	NotifyActivated(ctx context.Context, policy Policy) error
}
