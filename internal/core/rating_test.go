package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ratingNow = time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)

func baseSnapshot() QuoteSnapshot {
	return QuoteSnapshot{
		Driver: Driver{
			FirstName:   "Maria",
			LastName:    "Santos",
			Email:       "maria.santos@example.com",
			DateOfBirth: "1986-06-01", // age 39 at ratingNow
			IsPrimary:   true,
		},
	}
}

func TestComputePremium_BaseCase(t *testing.T) {
	// Adult driver, no vehicles, no coverage: every factor is 1.0.
	p, err := ComputePremium(baseSnapshot(), ratingNow, RatingProgressive)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), p.Total)
	assert.Equal(t, int64(83), p.Monthly)
	assert.Equal(t, int64(500), p.SixMonth)
}

func TestComputePremium_MissingDateOfBirth(t *testing.T) {
	s := baseSnapshot()
	s.Driver.DateOfBirth = ""
	_, err := ComputePremium(s, ratingNow, RatingProgressive)
	require.ErrorIs(t, err, ErrValidation)
}

func TestComputePremium_LegacyRequiresVehicle(t *testing.T) {
	_, err := ComputePremium(baseSnapshot(), ratingNow, RatingLegacy)
	require.ErrorIs(t, err, ErrValidation)
}

func TestComputePremium_DriverAgeFactor(t *testing.T) {
	tests := []struct {
		name string
		dob  string
		want int64
	}{
		{"young driver surcharge", "2004-06-01", 1800}, // age 21 -> 1.8
		{"adult driver", "1986-06-01", 1000},           // age 39 -> 1.0
		{"senior driver surcharge", "1955-06-01", 1200}, // age 70 -> 1.2
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSnapshot()
			s.Driver.DateOfBirth = tt.dob
			p, err := ComputePremium(s, ratingNow, RatingProgressive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Total)
		})
	}
}

func TestComputePremium_VehicleAgeFactor(t *testing.T) {
	tests := []struct {
		name string
		year int
		want int64
	}{
		{"new vehicle", 2024, 1300}, // age 2 -> 1.3
		{"mid-age vehicle", 2020, 1000}, // age 6 -> 1.0
		{"old vehicle", 2015, 900},  // age 11 -> 0.9
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := baseSnapshot()
			s.SetVehicles([]Vehicle{{Year: tt.year, Make: "Honda", Model: "Civic"}})
			p, err := ComputePremium(s, ratingNow, RatingProgressive)
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Total)
		})
	}
}

func TestComputePremium_MultiVehicleDiscount(t *testing.T) {
	s := baseSnapshot()
	s.SetVehicles([]Vehicle{
		{Year: 2015, Make: "Subaru", Model: "Outback"},
		{Year: 2023, Make: "Honda", Model: "Civic"},
		{Year: 2021, Make: "Toyota", Model: "Corolla"},
	})

	// Only the first vehicle's age factor applies (0.9), then two extra
	// vehicles discount it: max(0.75, 0.9-0.05*2) = 0.80.
	p, err := ComputePremium(s, ratingNow, RatingProgressive)
	require.NoError(t, err)
	assert.Equal(t, int64(720), p.Total)
}

func TestComputePremium_MultiVehicleDiscountFloor(t *testing.T) {
	s := baseSnapshot()
	vehicles := make([]Vehicle, 6)
	for i := range vehicles {
		vehicles[i] = Vehicle{Year: 2020, Make: "Ford", Model: "Focus"}
	}
	s.SetVehicles(vehicles)

	// Five extra vehicles would compute 0.9-0.25 = 0.65; floored at 0.75.
	p, err := ComputePremium(s, ratingNow, RatingProgressive)
	require.NoError(t, err)
	assert.Equal(t, int64(750), p.Total)
}

func TestComputePremium_LegacyIgnoresMultiVehicleDiscount(t *testing.T) {
	s := baseSnapshot()
	s.SetVehicles([]Vehicle{
		{Year: 2020, Make: "Honda", Model: "Accord"},
		{Year: 2020, Make: "Honda", Model: "Civic"},
	})

	p, err := ComputePremium(s, ratingNow, RatingLegacy)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), p.Total)
}

func TestComputePremium_AdditionalDriversFactor(t *testing.T) {
	s := baseSnapshot()
	s.AdditionalDrivers = []Driver{
		{FirstName: "A", LastName: "B", Email: "a@example.com", DateOfBirth: "1990-01-01"},
		{FirstName: "C", LastName: "D", Email: "c@example.com", DateOfBirth: "1991-01-01"},
	}

	// 1 + 0.15*2 = 1.30
	p, err := ComputePremium(s, ratingNow, RatingProgressive)
	require.NoError(t, err)
	assert.Equal(t, int64(1300), p.Total)
}

func TestCoverageFactor_Surcharges(t *testing.T) {
	tests := []struct {
		name string
		cov  CoverageSelection
		want float64
	}{
		{"bodily injury 25/50", CoverageSelection{BodilyInjury: "25/50"}, 1.05},
		{"bodily injury 50/100", CoverageSelection{BodilyInjury: "50/100"}, 1.10},
		{"bodily injury 100/300", CoverageSelection{BodilyInjury: "100/300"}, 1.15},
		{"bodily injury 250/500", CoverageSelection{BodilyInjury: "250/500"}, 1.25},
		{"bodily injury unknown tier", CoverageSelection{BodilyInjury: "500/500"}, 1.15},
		{"property damage 25k", CoverageSelection{PropertyDamage: 25000}, 1.03},
		{"property damage 50k", CoverageSelection{PropertyDamage: 50000}, 1.05},
		{"property damage 100k", CoverageSelection{PropertyDamage: 100000}, 1.08},
		{"collision 250", CoverageSelection{Collision: &DeductibleOption{Deductible: 250}}, 1.35},
		{"collision 2500", CoverageSelection{Collision: &DeductibleOption{Deductible: 2500}}, 1.20},
		{"comprehensive 250", CoverageSelection{Comprehensive: &DeductibleOption{Deductible: 250}}, 1.25},
		{"comprehensive 2500", CoverageSelection{Comprehensive: &DeductibleOption{Deductible: 2500}}, 1.10},
		{"uninsured motorist", CoverageSelection{UninsuredMotorist: true}, 1.10},
		{"roadside assistance", CoverageSelection{RoadsideAssistance: true}, 1.05},
		{"rental 30", CoverageSelection{RentalReimbursement: &RentalOption{DailyLimit: 30}}, 1.03},
		{"rental 75", CoverageSelection{RentalReimbursement: &RentalOption{DailyLimit: 75}}, 1.07},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cov := tt.cov
			// Zero-valued string/int fields still hit their default tiers,
			// so pin the unselected limits to the cheapest known tiers and
			// subtract them out of the expectation.
			base := 0.0
			if cov.BodilyInjury == "" {
				cov.BodilyInjury = "25/50"
				base += 0.05
			}
			if cov.PropertyDamage == 0 {
				cov.PropertyDamage = 25000
				base += 0.03
			}
			got := coverageFactor(&cov)
			assert.InDelta(t, tt.want+base, got, 1e-9)
		})
	}
}

func TestCoverageFactor_NilSelection(t *testing.T) {
	assert.Equal(t, 1.0, coverageFactor(nil))
}

func TestComputePremium_FullStack(t *testing.T) {
	s := baseSnapshot()
	s.SetVehicles([]Vehicle{{Year: 2024, Make: "Toyota", Model: "RAV4"}})
	s.Coverages = &CoverageSelection{
		BodilyInjury:        "100/300",
		PropertyDamage:      50000,
		Collision:           &DeductibleOption{Deductible: 500},
		Comprehensive:       &DeductibleOption{Deductible: 500},
		UninsuredMotorist:   true,
		RoadsideAssistance:  true,
		RentalReimbursement: &RentalOption{DailyLimit: 50},
	}

	// 1000 * 1.3 (vehicle) * 1.0 (driver) * 1.0 (no extras)
	//   * (1 + .15 + .05 + .30 + .20 + .10 + .05 + .05) = 2470
	p, err := ComputePremium(s, ratingNow, RatingProgressive)
	require.NoError(t, err)
	assert.Equal(t, int64(2470), p.Total)
	assert.Equal(t, int64(206), p.Monthly)
	assert.Equal(t, int64(1235), p.SixMonth)
}

func TestDriverAge(t *testing.T) {
	dob := time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 35, DriverAge(dob, ratingNow))

	// Well before the birthday the age has not incremented yet.
	assert.Equal(t, 34, DriverAge(dob, time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)))
}
