package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrKriegler/go-autoquote/internal/platform/ids"
)

// QuoteService assembles quote snapshots progressively: drivers, vehicles
// and coverage arrive over separate calls, and every update replaces its
// whole section and reprices the snapshot.
type QuoteService interface {
	Create(ctx context.Context, in QuoteInput) (Policy, error)
	Get(ctx context.Context, reference string) (Policy, error)
	ReplaceDrivers(ctx context.Context, reference string, primary Driver, additional []Driver) (Policy, error)
	ReplaceVehicles(ctx context.Context, reference string, vehicles []Vehicle) (Policy, error)
	FinalizeCoverage(ctx context.Context, reference string, cov CoverageSelection) (Policy, error)
}

type QuoteInput struct {
	Driver            Driver             `json:"driver"`
	AdditionalDrivers []Driver           `json:"additional_drivers,omitempty"`
	Vehicles          []Vehicle          `json:"vehicles,omitempty"`
	Address           Address            `json:"address"`
	Coverages         *CoverageSelection `json:"coverages,omitempty"`
}

func (in QuoteInput) Validate() error {
	if err := in.Driver.Validate(); err != nil {
		return fmt.Errorf("primary driver: %w", err)
	}
	for i, d := range in.AdditionalDrivers {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("additional driver %d: %w", i, err)
		}
	}
	for i, v := range in.Vehicles {
		if err := v.Validate(); err != nil {
			return fmt.Errorf("vehicle %d: %w", i, err)
		}
	}
	return nil
}

type quoteService struct {
	policies PolicyRepo
	log      *slog.Logger
	clock    func() time.Time
}

func NewQuoteService(policies PolicyRepo, log *slog.Logger) QuoteService {
	return &quoteService{
		policies: policies,
		log:      log,
		clock:    time.Now,
	}
}

func (s *quoteService) Create(ctx context.Context, in QuoteInput) (Policy, error) {
	// 1) validate inputs
	if err := in.Validate(); err != nil {
		return Policy{}, err
	}

	now := s.clock()
	reference := ids.NewReference()

	// 2) assemble snapshot v1
	in.Driver.IsPrimary = true
	additional, removed := DedupeAdditionalDrivers(in.Driver.Email, in.AdditionalDrivers)
	if removed > 0 {
		s.log.WarnContext(ctx, "dropped additional drivers matching primary email",
			"reference", reference, "removed", removed)
	}

	snap := QuoteSnapshot{
		Driver:            in.Driver,
		AdditionalDrivers: additional,
		Address:           in.Address,
		Coverages:         in.Coverages,
		Meta: SnapshotMeta{
			QuoteRef:  reference,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	snap.SetVehicles(in.Vehicles)

	// 3) price
	premium, err := ComputePremium(snap, now, RatingProgressive)
	if err != nil {
		return Policy{}, err
	}
	snap.Premium = premium

	// 4) complete input (vehicles + coverage) starts at quoted, else incomplete
	status := PolicyStatusIncomplete
	p := Policy{
		ID:        ids.New(),
		Reference: reference,
		Snapshot:  snap,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if len(in.Vehicles) > 0 && in.Coverages != nil {
		status = PolicyStatusQuoted
		finalized := now
		p.Snapshot.Meta.FinalizedAt = &finalized
		expires := now.AddDate(0, 0, QuoteValidityDays)
		p.ExpirationDate = &expires
	}
	p.Status = status

	// 5) persist
	if err := s.policies.Create(ctx, p); err != nil {
		return Policy{}, err
	}
	return p, nil
}

func (s *quoteService) Get(ctx context.Context, reference string) (Policy, error) {
	if reference == "" {
		return Policy{}, fmt.Errorf("%w: missing quote reference", ErrValidation)
	}
	return s.policies.GetByReference(ctx, reference)
}

func (s *quoteService) ReplaceDrivers(ctx context.Context, reference string, primary Driver, additional []Driver) (Policy, error) {
	if err := primary.Validate(); err != nil {
		return Policy{}, fmt.Errorf("primary driver: %w", err)
	}
	for i, d := range additional {
		if err := d.Validate(); err != nil {
			return Policy{}, fmt.Errorf("additional driver %d: %w", i, err)
		}
	}

	return s.applyUpdate(ctx, reference, func(snap *QuoteSnapshot) error {
		primary.IsPrimary = true
		kept, removed := DedupeAdditionalDrivers(primary.Email, additional)
		if removed > 0 {
			s.log.WarnContext(ctx, "dropped additional drivers matching primary email",
				"reference", reference, "removed", removed)
		}
		snap.Driver = primary
		snap.AdditionalDrivers = kept
		return nil
	})
}

func (s *quoteService) ReplaceVehicles(ctx context.Context, reference string, vehicles []Vehicle) (Policy, error) {
	for i, v := range vehicles {
		if err := v.Validate(); err != nil {
			return Policy{}, fmt.Errorf("vehicle %d: %w", i, err)
		}
	}

	return s.applyUpdate(ctx, reference, func(snap *QuoteSnapshot) error {
		snap.SetVehicles(vehicles)
		return nil
	})
}

// FinalizeCoverage stores the coverage selection, reprices, and moves an
// incomplete quote to quoted with a fresh 30-day expiration. The finalizing
// path insists on vehicle data: a quote with no vehicles cannot be priced
// for binding.
func (s *quoteService) FinalizeCoverage(ctx context.Context, reference string, cov CoverageSelection) (Policy, error) {
	// 1) load
	p, err := s.policies.GetByReference(ctx, reference)
	if err != nil {
		return Policy{}, err
	}

	// 2) only pre-bind quotes can change
	if p.Status != PolicyStatusIncomplete && p.Status != PolicyStatusQuoted {
		return Policy{}, fmt.Errorf("%w: cannot finalize coverage in status %q", ErrInvalidState, p.Status)
	}
	if len(p.Snapshot.Vehicles) == 0 {
		return Policy{}, fmt.Errorf("%w: at least one vehicle is required before finalizing coverage", ErrValidation)
	}

	// 3) replace section and reprice
	now := s.clock()
	p.Snapshot.Coverages = &cov
	premium, err := ComputePremium(p.Snapshot, now, RatingProgressive)
	if err != nil {
		return Policy{}, err
	}
	p.Snapshot.Premium = premium

	// 4) stamp finalization and quote expiry
	finalized := now
	p.Snapshot.Meta.FinalizedAt = &finalized
	p.Snapshot.Meta.UpdatedAt = now
	p.Snapshot.Meta.Version++
	expires := now.AddDate(0, 0, QuoteValidityDays)
	p.ExpirationDate = &expires
	p.UpdatedAt = now

	if p.Status == PolicyStatusIncomplete {
		p.Status = PolicyStatusQuoted
	}

	// 5) persist
	if err := s.policies.Update(ctx, p); err != nil {
		return Policy{}, err
	}
	return p, nil
}

// applyUpdate loads the record, lets mutate replace one snapshot section,
// reprices progressively, bumps the version, and persists the whole record.
func (s *quoteService) applyUpdate(ctx context.Context, reference string, mutate func(*QuoteSnapshot) error) (Policy, error) {
	p, err := s.policies.GetByReference(ctx, reference)
	if err != nil {
		return Policy{}, err
	}

	if p.Status != PolicyStatusIncomplete && p.Status != PolicyStatusQuoted {
		return Policy{}, fmt.Errorf("%w: cannot update quote in status %q", ErrInvalidState, p.Status)
	}

	if err := mutate(&p.Snapshot); err != nil {
		return Policy{}, err
	}

	now := s.clock()
	premium, err := ComputePremium(p.Snapshot, now, RatingProgressive)
	if err != nil {
		return Policy{}, err
	}
	p.Snapshot.Premium = premium
	p.Snapshot.Meta.UpdatedAt = now
	p.Snapshot.Meta.Version++
	p.UpdatedAt = now

	if err := s.policies.Update(ctx, p); err != nil {
		return Policy{}, err
	}
	return p, nil
}
