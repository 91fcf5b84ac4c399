package core

import (
	"context"
	"fmt"
	"time"
)

type PolicyStatus string

const (
	PolicyStatusIncomplete PolicyStatus = "incomplete"
	PolicyStatusQuoted     PolicyStatus = "quoted"
	PolicyStatusBinding    PolicyStatus = "binding"
	PolicyStatusBound      PolicyStatus = "bound"
	PolicyStatusInForce    PolicyStatus = "in_force"
	PolicyStatusCancelled  PolicyStatus = "cancelled"
	PolicyStatusExpired    PolicyStatus = "expired"
)

const (
	// QuoteValidityDays is how long a finalized quote remains bindable.
	QuoteValidityDays = 30

	// PolicyTermMonths is the coverage term started at bind.
	PolicyTermMonths = 6
)

// Policy is one quote/policy record. It exclusively owns its current
// QuoteSnapshot, which is replaced wholesale on each update.
type Policy struct {
	ID             string        `json:"id"`
	Reference      string        `json:"reference"` // human-facing code, e.g. AQ7GK2M9XP
	Status         PolicyStatus  `json:"status"`
	Snapshot       QuoteSnapshot `json:"snapshot"`
	EffectiveDate  *time.Time    `json:"effective_date,omitempty"`
	ExpirationDate *time.Time    `json:"expiration_date,omitempty"` // quote expiry until bind, then policy term end
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

type PolicyRepo interface {
	Create(ctx context.Context, p Policy) error
	Get(ctx context.Context, id string) (Policy, error)
	GetByReference(ctx context.Context, reference string) (Policy, error)
	Update(ctx context.Context, p Policy) error
	// UpdateStatusFrom flips the status only if the stored status equals
	// from; otherwise it returns ErrConflict. This is the guard that
	// serializes concurrent bind attempts.
	UpdateStatusFrom(ctx context.Context, id string, from, to PolicyStatus, updatedAt time.Time) error
	FindByStatus(ctx context.Context, status PolicyStatus, limit int) ([]Policy, error)
}

// CanTransitionTo is the single authority on transition legality.
func (s PolicyStatus) CanTransitionTo(next PolicyStatus) bool {
	transitions := map[PolicyStatus][]PolicyStatus{
		PolicyStatusIncomplete: {PolicyStatusQuoted},
		PolicyStatusQuoted:     {PolicyStatusBinding, PolicyStatusExpired, PolicyStatusCancelled},
		PolicyStatusBinding:    {PolicyStatusBound, PolicyStatusQuoted},
		PolicyStatusBound:      {PolicyStatusInForce, PolicyStatusCancelled},
		PolicyStatusInForce:    {PolicyStatusCancelled, PolicyStatusExpired},
	}
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsQuoteExpired reports whether a not-yet-bound quote has passed its
// expiration stamp. Advisory until the expiry worker acts on it.
func (p Policy) IsQuoteExpired(now time.Time) bool {
	return p.Status == PolicyStatusQuoted &&
		p.ExpirationDate != nil &&
		now.After(*p.ExpirationDate)
}

var (
	ErrPolicyNotFound = fmt.Errorf("%w: policy not found", ErrNotFound)
	ErrPolicyExists   = fmt.Errorf("%w: policy reference already in use", ErrConflict)
)
