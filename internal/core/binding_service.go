package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrKriegler/go-autoquote/internal/platform/ids"
)

// BindingService drives the quote/policy state machine:
// quoted -> binding -> bound -> in_force, with a revert to quoted when the
// payment attempt is declined.
type BindingService interface {
	// Bind converts a quoted record into a bound policy: guard the status,
	// persist binding, attempt payment, then commit bound or revert.
	Bind(ctx context.Context, reference string, method PaymentMethod, details PaymentDetails) (BindResult, error)

	// Activate moves a bound policy in force on effective-date arrival.
	Activate(ctx context.Context, reference string) (Policy, error)
}

type BindResult struct {
	Policy  Policy  `json:"policy"`
	Payment Payment `json:"payment"`
}

type bindingService struct {
	policies  PolicyRepo
	payments  PaymentRepo
	documents DocumentRepo
	events    EventRepo
	processor PaymentProcessor
	docgen    DocumentGenerator
	notifier  Notifier
	log       *slog.Logger
	clock     func() time.Time
}

func NewBindingService(
	policies PolicyRepo,
	payments PaymentRepo,
	documents DocumentRepo,
	events EventRepo,
	processor PaymentProcessor,
	docgen DocumentGenerator,
	notifier Notifier,
	log *slog.Logger,
) BindingService {
	return &bindingService{
		policies:  policies,
		payments:  payments,
		documents: documents,
		events:    events,
		processor: processor,
		docgen:    docgen,
		notifier:  notifier,
		log:       log,
		clock:     time.Now,
	}
}

func (s *bindingService) Bind(ctx context.Context, reference string, method PaymentMethod, details PaymentDetails) (BindResult, error) {
	// 1) load and guard before any write
	p, err := s.policies.GetByReference(ctx, reference)
	if err != nil {
		return BindResult{}, err
	}
	if p.Status != PolicyStatusQuoted {
		return BindResult{}, fmt.Errorf("%w: cannot bind quote in status %q", ErrConflict, p.Status)
	}

	// 2) persist binding before the payment attempt so a crash mid-payment
	// leaves an auditable state. The conditional write doubles as the
	// serialization point for concurrent bind attempts.
	now := s.clock()
	if err := s.policies.UpdateStatusFrom(ctx, p.ID, PolicyStatusQuoted, PolicyStatusBinding, now); err != nil {
		if errors.Is(err, ErrConflict) {
			return BindResult{}, fmt.Errorf("%w: quote %s is no longer in quoted status", ErrConflict, reference)
		}
		return BindResult{}, err
	}

	// 3) single deterministic payment attempt
	result, err := s.processor.Attempt(ctx, method, details, p.Snapshot.Premium.Total)
	if err != nil {
		// compensating revert; the decline reason is the binding failure
		now = s.clock()
		if revertErr := s.policies.UpdateStatusFrom(ctx, p.ID, PolicyStatusBinding, PolicyStatusQuoted, now); revertErr != nil {
			s.log.ErrorContext(ctx, "failed to revert binding status after payment failure",
				"policy_id", p.ID, "reference", reference, "err", revertErr)
		}
		return BindResult{}, err
	}

	// 4) commit bound with the coverage term dates
	now = s.clock()
	p.Status = PolicyStatusBound
	effective := now
	expiration := now.AddDate(0, PolicyTermMonths, 0)
	p.EffectiveDate = &effective
	p.ExpirationDate = &expiration
	p.UpdatedAt = now
	if err := s.policies.Update(ctx, p); err != nil {
		return BindResult{}, fmt.Errorf("persist bound policy: %w", err)
	}

	// 5) record the payment (tokenized details only)
	payment := Payment{
		ID:            ids.New(),
		PolicyID:      p.ID,
		Method:        result.Method,
		Last4:         result.Last4,
		CardBrand:     result.CardBrand,
		AccountType:   result.AccountType,
		TransactionID: result.TransactionID,
		Amount:        result.Amount,
		CreatedAt:     now,
	}
	s.bestEffort(ctx, "persist payment record", func() error {
		return s.payments.Create(ctx, payment)
	})

	// 6) post-bound side effects never fail the bind once bound is committed
	s.bestEffort(ctx, "append bound event", func() error {
		return s.events.Append(ctx, Event{
			ID:             ids.New(),
			PolicyID:       p.ID,
			PreviousStatus: PolicyStatusQuoted,
			NewStatus:      PolicyStatusBound,
			Reason:         "payment accepted",
			CreatedAt:      now,
		})
	})
	s.bestEffort(ctx, "generate policy documents", func() error {
		docs, err := s.docgen.Generate(ctx, p.ID, p.Reference)
		if err != nil {
			return err
		}
		for _, d := range docs {
			if err := s.documents.Create(ctx, d); err != nil {
				return fmt.Errorf("persist document %s: %w", d.Type, err)
			}
		}
		return nil
	})
	s.bestEffort(ctx, "send bound notification", func() error {
		return s.notifier.NotifyBound(ctx, p, result)
	})

	s.log.InfoContext(ctx, "policy bound",
		"policy_id", p.ID, "reference", p.Reference, "transaction_id", result.TransactionID)

	return BindResult{Policy: p, Payment: payment}, nil
}

func (s *bindingService) Activate(ctx context.Context, reference string) (Policy, error) {
	p, err := s.policies.GetByReference(ctx, reference)
	if err != nil {
		return Policy{}, err
	}
	if p.Status != PolicyStatusBound {
		return Policy{}, fmt.Errorf("%w: cannot activate policy in status %q", ErrConflict, p.Status)
	}

	now := s.clock()
	if err := s.policies.UpdateStatusFrom(ctx, p.ID, PolicyStatusBound, PolicyStatusInForce, now); err != nil {
		if errors.Is(err, ErrConflict) {
			return Policy{}, fmt.Errorf("%w: policy %s is no longer in bound status", ErrConflict, reference)
		}
		return Policy{}, err
	}
	p.Status = PolicyStatusInForce
	p.UpdatedAt = now

	s.bestEffort(ctx, "append activation event", func() error {
		return s.events.Append(ctx, Event{
			ID:             ids.New(),
			PolicyID:       p.ID,
			PreviousStatus: PolicyStatusBound,
			NewStatus:      PolicyStatusInForce,
			Reason:         "effective date reached",
			CreatedAt:      now,
		})
	})
	s.bestEffort(ctx, "send activation notification", func() error {
		return s.notifier.NotifyActivated(ctx, p)
	})

	s.log.InfoContext(ctx, "policy activated", "policy_id", p.ID, "reference", p.Reference)

	return p, nil
}

// bestEffort runs a post-commit side effect, logging and swallowing its
// error. The guarded status writes stay structurally separate from these.
func (s *bindingService) bestEffort(ctx context.Context, task string, fn func() error) {
	if err := fn(); err != nil {
		s.log.WarnContext(ctx, "best-effort task failed", "task", task, "err", err)
	}
}
