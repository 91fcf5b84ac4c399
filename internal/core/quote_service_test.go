package core

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var serviceNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestQuoteService(repo *memPolicyRepo) *quoteService {
	return &quoteService{
		policies: repo,
		log:      testLogger(),
		clock:    func() time.Time { return serviceNow },
	}
}

func completeInput() QuoteInput {
	return QuoteInput{
		Driver: Driver{
			FirstName:   "Maria",
			LastName:    "Santos",
			Email:       "maria.santos@example.com",
			DateOfBirth: "1986-06-01",
		},
		Vehicles: []Vehicle{{Year: 2022, Make: "Toyota", Model: "RAV4"}},
		Address:  Address{Street: "14 Harbor Lane", City: "Portland", State: "OR", Zip: "97202"},
		Coverages: &CoverageSelection{
			BodilyInjury:   "100/300",
			PropertyDamage: 50000,
		},
	}
}

func TestQuoteServiceCreate_CompleteInputStartsQuoted(t *testing.T) {
	repo := newMemPolicyRepo()
	svc := newTestQuoteService(repo)

	p, err := svc.Create(context.Background(), completeInput())
	require.NoError(t, err)

	assert.Equal(t, PolicyStatusQuoted, p.Status)
	assert.NotEmpty(t, p.ID)
	assert.Regexp(t, `^AQ[A-Z2-9]{8}$`, p.Reference)
	assert.Equal(t, 1, p.Snapshot.Meta.Version)
	assert.True(t, p.Snapshot.Driver.IsPrimary)
	assert.Positive(t, p.Snapshot.Premium.Total)
	require.NotNil(t, p.Snapshot.Meta.FinalizedAt)
	require.NotNil(t, p.ExpirationDate)
	assert.Equal(t, serviceNow.AddDate(0, 0, QuoteValidityDays), *p.ExpirationDate)

	stored, err := repo.GetByReference(context.Background(), p.Reference)
	require.NoError(t, err)
	assert.Equal(t, p, stored)
}

func TestQuoteServiceCreate_PartialInputStartsIncomplete(t *testing.T) {
	repo := newMemPolicyRepo()
	svc := newTestQuoteService(repo)

	in := completeInput()
	in.Vehicles = nil
	in.Coverages = nil

	p, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, PolicyStatusIncomplete, p.Status)
	assert.Nil(t, p.Snapshot.Meta.FinalizedAt)
	assert.Nil(t, p.ExpirationDate)
	// Still priced: progressive rating tolerates missing sections.
	assert.Equal(t, int64(1000), p.Snapshot.Premium.Total)
}

func TestQuoteServiceCreate_DropsDuplicateAdditionalDrivers(t *testing.T) {
	repo := newMemPolicyRepo()
	svc := newTestQuoteService(repo)

	in := completeInput()
	in.AdditionalDrivers = []Driver{
		{FirstName: "Dup", LastName: "Santos", Email: "MARIA.SANTOS@example.com", DateOfBirth: "1986-06-01"},
		{FirstName: "Kept", LastName: "Lee", Email: "kept@example.com", DateOfBirth: "1990-01-01"},
	}

	p, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, p.Snapshot.AdditionalDrivers, 1)
	assert.Equal(t, "Kept", p.Snapshot.AdditionalDrivers[0].FirstName)
}

func TestQuoteServiceCreate_InvalidDriver(t *testing.T) {
	repo := newMemPolicyRepo()
	svc := newTestQuoteService(repo)

	in := completeInput()
	in.Driver.Email = "nope"

	_, err := svc.Create(context.Background(), in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Empty(t, repo.byID)
}

func TestQuoteServiceGet(t *testing.T) {
	repo := newMemPolicyRepo()
	svc := newTestQuoteService(repo)

	created, err := svc.Create(context.Background(), completeInput())
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.Reference)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = svc.Get(context.Background(), "AQNOPENOPE")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestQuoteServiceReplaceVehicles_RepricesAndBumpsVersion(t *testing.T) {
	repo := newMemPolicyRepo()
	svc := newTestQuoteService(repo)

	created, err := svc.Create(context.Background(), completeInput())
	require.NoError(t, err)
	originalTotal := created.Snapshot.Premium.Total

	updated, err := svc.ReplaceVehicles(context.Background(), created.Reference, []Vehicle{
		{Year: 2012, Make: "Subaru", Model: "Outback"},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, updated.Snapshot.Meta.Version)
	assert.NotEqual(t, originalTotal, updated.Snapshot.Premium.Total)
	require.NotNil(t, updated.Snapshot.Vehicle)
	assert.Equal(t, "Outback", updated.Snapshot.Vehicle.Model)
}

func TestQuoteServiceReplaceDrivers_ReplacesWholeSection(t *testing.T) {
	repo := newMemPolicyRepo()
	svc := newTestQuoteService(repo)

	in := completeInput()
	in.AdditionalDrivers = []Driver{
		{FirstName: "Old", LastName: "Driver", Email: "old@example.com", DateOfBirth: "1990-01-01"},
	}
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	newPrimary := Driver{
		FirstName: "James", LastName: "Okafor",
		Email: "james.okafor@example.com", DateOfBirth: "1975-11-30",
	}
	updated, err := svc.ReplaceDrivers(context.Background(), created.Reference, newPrimary, nil)
	require.NoError(t, err)

	assert.Equal(t, "James", updated.Snapshot.Driver.FirstName)
	assert.True(t, updated.Snapshot.Driver.IsPrimary)
	assert.Empty(t, updated.Snapshot.AdditionalDrivers, "old additional drivers do not survive the replace")
	assert.Equal(t, 2, updated.Snapshot.Meta.Version)
}

func TestQuoteServiceUpdate_RejectedAfterBind(t *testing.T) {
	repo := newMemPolicyRepo()
	svc := newTestQuoteService(repo)

	created, err := svc.Create(context.Background(), completeInput())
	require.NoError(t, err)

	bound := created
	bound.Status = PolicyStatusBound
	require.NoError(t, repo.Update(context.Background(), bound))

	_, err = svc.ReplaceVehicles(context.Background(), created.Reference, []Vehicle{
		{Year: 2020, Make: "Honda", Model: "Civic"},
	})
	assert.ErrorIs(t, err, ErrInvalidState)

	_, err = svc.FinalizeCoverage(context.Background(), created.Reference, CoverageSelection{BodilyInjury: "25/50"})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestQuoteServiceFinalizeCoverage_MovesIncompleteToQuoted(t *testing.T) {
	repo := newMemPolicyRepo()
	svc := newTestQuoteService(repo)

	in := completeInput()
	in.Coverages = nil
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.Equal(t, PolicyStatusIncomplete, created.Status)

	finalized, err := svc.FinalizeCoverage(context.Background(), created.Reference, CoverageSelection{
		BodilyInjury:   "250/500",
		PropertyDamage: 100000,
	})
	require.NoError(t, err)

	assert.Equal(t, PolicyStatusQuoted, finalized.Status)
	assert.Equal(t, 2, finalized.Snapshot.Meta.Version)
	require.NotNil(t, finalized.Snapshot.Meta.FinalizedAt)
	require.NotNil(t, finalized.ExpirationDate)
	assert.Equal(t, serviceNow.AddDate(0, 0, QuoteValidityDays), *finalized.ExpirationDate)
}

func TestQuoteServiceFinalizeCoverage_RequiresVehicles(t *testing.T) {
	repo := newMemPolicyRepo()
	svc := newTestQuoteService(repo)

	in := completeInput()
	in.Vehicles = nil
	in.Coverages = nil
	created, err := svc.Create(context.Background(), in)
	require.NoError(t, err)

	_, err = svc.FinalizeCoverage(context.Background(), created.Reference, CoverageSelection{BodilyInjury: "25/50"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestQuoteServiceFinalizeCoverage_RefreshesExpiryOnRequote(t *testing.T) {
	repo := newMemPolicyRepo()
	svc := newTestQuoteService(repo)

	created, err := svc.Create(context.Background(), completeInput())
	require.NoError(t, err)

	later := serviceNow.AddDate(0, 0, 10)
	svc.clock = func() time.Time { return later }

	finalized, err := svc.FinalizeCoverage(context.Background(), created.Reference, CoverageSelection{
		BodilyInjury:   "50/100",
		PropertyDamage: 25000,
	})
	require.NoError(t, err)
	require.NotNil(t, finalized.ExpirationDate)
	assert.Equal(t, later.AddDate(0, 0, QuoteValidityDays), *finalized.ExpirationDate)
}
