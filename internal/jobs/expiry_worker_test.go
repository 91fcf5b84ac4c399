package jobs

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrKriegler/go-autoquote/internal/core"
)

type fakePolicyRepo struct {
	mu   sync.Mutex
	byID map[string]core.Policy

	// staleFinds, when set, is returned by FindByStatus instead of live
	// data, simulating a read that raced a concurrent status change.
	staleFinds []core.Policy
}

func newFakePolicyRepo(policies ...core.Policy) *fakePolicyRepo {
	r := &fakePolicyRepo{byID: make(map[string]core.Policy)}
	for _, p := range policies {
		r.byID[p.ID] = p
	}
	return r
}

func (r *fakePolicyRepo) Create(_ context.Context, p core.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}

func (r *fakePolicyRepo) Get(_ context.Context, id string) (core.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return core.Policy{}, core.ErrPolicyNotFound
	}
	return p, nil
}

func (r *fakePolicyRepo) GetByReference(_ context.Context, reference string) (core.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.byID {
		if p.Reference == reference {
			return p, nil
		}
	}
	return core.Policy{}, core.ErrPolicyNotFound
}

func (r *fakePolicyRepo) Update(_ context.Context, p core.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[p.ID] = p
	return nil
}

func (r *fakePolicyRepo) UpdateStatusFrom(_ context.Context, id string, from, to core.PolicyStatus, updatedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.byID[id]
	if !ok {
		return core.ErrPolicyNotFound
	}
	if p.Status != from {
		return core.ErrConflict
	}
	p.Status = to
	p.UpdatedAt = updatedAt
	r.byID[id] = p
	return nil
}

func (r *fakePolicyRepo) FindByStatus(_ context.Context, status core.PolicyStatus, limit int) ([]core.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.staleFinds != nil {
		return r.staleFinds, nil
	}
	var out []core.Policy
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

type fakeEventRepo struct {
	mu     sync.Mutex
	events []core.Event
}

func (r *fakeEventRepo) Append(_ context.Context, e core.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return nil
}

func (r *fakeEventRepo) ListByPolicyID(_ context.Context, policyID string) ([]core.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []core.Event
	for _, e := range r.events {
		if e.PolicyID == policyID {
			out = append(out, e)
		}
	}
	return out, nil
}

func quotedPolicy(id string, expires time.Time) core.Policy {
	return core.Policy{
		ID:             id,
		Reference:      "AQ" + id,
		Status:         core.PolicyStatusQuoted,
		ExpirationDate: &expires,
	}
}

func TestExpiryWorker_ExpiresStaleQuotes(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	repo := newFakePolicyRepo(
		quotedPolicy("stale", now.Add(-time.Hour)),
		quotedPolicy("fresh", now.Add(time.Hour)),
	)
	events := &fakeEventRepo{}

	w := NewExpiryWorker(repo, events, time.Minute, 25, slog.New(slog.NewTextHandler(io.Discard, nil)))
	w.clock = func() time.Time { return now }

	require.NoError(t, w.expireQuotes(context.Background()))

	stale, err := repo.Get(context.Background(), "stale")
	require.NoError(t, err)
	assert.Equal(t, core.PolicyStatusExpired, stale.Status)

	fresh, err := repo.Get(context.Background(), "fresh")
	require.NoError(t, err)
	assert.Equal(t, core.PolicyStatusQuoted, fresh.Status)

	logged, err := events.ListByPolicyID(context.Background(), "stale")
	require.NoError(t, err)
	require.Len(t, logged, 1)
	assert.Equal(t, core.PolicyStatusQuoted, logged[0].PreviousStatus)
	assert.Equal(t, core.PolicyStatusExpired, logged[0].NewStatus)
}

func TestExpiryWorker_SkipsNonQuotedAndUnstamped(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	bound := quotedPolicy("bound", past)
	bound.Status = core.PolicyStatusBound
	unstamped := core.Policy{ID: "unstamped", Status: core.PolicyStatusQuoted}

	repo := newFakePolicyRepo(bound, unstamped)
	events := &fakeEventRepo{}

	w := NewExpiryWorker(repo, events, time.Minute, 25, slog.New(slog.NewTextHandler(io.Discard, nil)))
	w.clock = func() time.Time { return now }

	require.NoError(t, w.expireQuotes(context.Background()))

	for _, id := range []string{"bound", "unstamped"} {
		p, err := repo.Get(context.Background(), id)
		require.NoError(t, err)
		assert.NotEqual(t, core.PolicyStatusExpired, p.Status)
	}
	assert.Empty(t, events.events)
}

func TestExpiryWorker_ConcurrentBindWins(t *testing.T) {
	now := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)

	// The sweep sees a stale quoted record, but by write time another
	// actor has already flipped it.
	p := quotedPolicy("racy", now.Add(-time.Hour))
	repo := newFakePolicyRepo(p)
	events := &fakeEventRepo{}

	w := NewExpiryWorker(repo, events, time.Minute, 25, slog.New(slog.NewTextHandler(io.Discard, nil)))
	w.clock = func() time.Time { return now }

	flipped := p
	flipped.Status = core.PolicyStatusBinding
	require.NoError(t, repo.Update(context.Background(), flipped))
	repo.staleFinds = []core.Policy{p}

	require.NoError(t, w.expireQuotes(context.Background()))

	stored, err := repo.Get(context.Background(), "racy")
	require.NoError(t, err)
	assert.Equal(t, core.PolicyStatusBinding, stored.Status)
	assert.Empty(t, events.events)
}
