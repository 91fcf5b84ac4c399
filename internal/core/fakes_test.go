package core

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// memPolicyRepo is the in-memory PolicyRepo used across service tests.
type memPolicyRepo struct {
	mu       sync.Mutex
	byID     map[string]Policy
	failNext error
}

func newMemPolicyRepo() *memPolicyRepo {
	return &memPolicyRepo{byID: make(map[string]Policy)}
}

func (r *memPolicyRepo) Create(_ context.Context, p Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	for _, existing := range r.byID {
		if existing.Reference == p.Reference {
			return ErrPolicyExists
		}
	}
	r.byID[p.ID] = p
	return nil
}

func (r *memPolicyRepo) Get(_ context.Context, id string) (Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return Policy{}, ErrPolicyNotFound
	}
	return p, nil
}

func (r *memPolicyRepo) GetByReference(_ context.Context, reference string) (Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.Reference == reference {
			return p, nil
		}
	}
	return Policy{}, ErrPolicyNotFound
}

func (r *memPolicyRepo) Update(_ context.Context, p Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	if _, ok := r.byID[p.ID]; !ok {
		return ErrPolicyNotFound
	}
	r.byID[p.ID] = p
	return nil
}

func (r *memPolicyRepo) UpdateStatusFrom(_ context.Context, id string, from, to PolicyStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.takeFailure(); err != nil {
		return err
	}
	p, ok := r.byID[id]
	if !ok {
		return ErrPolicyNotFound
	}
	if p.Status != from {
		return fmt.Errorf("%w: status is %q, want %q", ErrConflict, p.Status, from)
	}
	p.Status = to
	p.UpdatedAt = updatedAt
	r.byID[id] = p
	return nil
}

func (r *memPolicyRepo) FindByStatus(_ context.Context, status PolicyStatus, limit int) ([]Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Policy
	for _, p := range r.byID {
		if p.Status == status {
			out = append(out, p)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// takeFailure consumes a one-shot injected failure.
func (r *memPolicyRepo) takeFailure() error {
	err := r.failNext
	r.failNext = nil
	return err
}

type memPaymentRepo struct {
	mu       sync.Mutex
	payments []Payment
	failNext error
}

func (r *memPaymentRepo) Create(_ context.Context, p Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failNext; err != nil {
		r.failNext = nil
		return err
	}
	r.payments = append(r.payments, p)
	return nil
}

func (r *memPaymentRepo) ListByPolicyID(_ context.Context, policyID string) ([]Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Payment
	for _, p := range r.payments {
		if p.PolicyID == policyID {
			out = append(out, p)
		}
	}
	return out, nil
}

type memDocumentRepo struct {
	mu   sync.Mutex
	docs []Document
}

func (r *memDocumentRepo) Create(_ context.Context, d Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, d)
	return nil
}

func (r *memDocumentRepo) ListByPolicyID(_ context.Context, policyID string) ([]Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Document
	for _, d := range r.docs {
		if d.PolicyID == policyID {
			out = append(out, d)
		}
	}
	return out, nil
}

type memEventRepo struct {
	mu     sync.Mutex
	events []Event
}

func (r *memEventRepo) Append(_ context.Context, e Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *memEventRepo) ListByPolicyID(_ context.Context, policyID string) ([]Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.PolicyID == policyID {
			out = append(out, e)
		}
	}
	return out, nil
}

// stubProcessor returns a canned result or error for every attempt.
type stubProcessor struct {
	result   PaymentResult
	err      error
	attempts int
}

func (p *stubProcessor) Attempt(_ context.Context, method PaymentMethod, _ PaymentDetails, amount int64) (PaymentResult, error) {
	p.attempts++
	if p.err != nil {
		return PaymentResult{}, p.err
	}
	res := p.result
	res.Method = method
	res.Amount = amount
	return res, nil
}

// stubDocGen returns two fixed documents for the given policy.
type stubDocGen struct {
	err error
}

func (g *stubDocGen) Generate(_ context.Context, policyID, policyReference string) ([]Document, error) {
	if g.err != nil {
		return nil, g.err
	}
	return []Document{
		{ID: "doc-1", PolicyID: policyID, PolicyReference: policyReference, Type: DocumentTypeDeclarations, Name: "Declarations Page - " + policyReference},
		{ID: "doc-2", PolicyID: policyID, PolicyReference: policyReference, Type: DocumentTypeIDCard, Name: "Insurance ID Card - " + policyReference},
	}, nil
}

// recordingNotifier counts notifications for assertion.
type recordingNotifier struct {
	bound     int
	activated int
}

func (n *recordingNotifier) NotifyBound(context.Context, Policy, PaymentResult) error {
	n.bound++
	return nil
}

func (n *recordingNotifier) NotifyActivated(context.Context, Policy) error {
	n.activated++
	return nil
}
