package core

import (
	"fmt"
	"math"
	"time"
)

// RatingMode selects between the two premium formulas. The progressive mode
// is used while a quote is still being assembled: it tolerates a missing
// vehicle list and stacks a multi-vehicle discount. The legacy mode is the
// older single-vehicle formula: it requires at least one vehicle and ignores
// multi-vehicle discounting.
type RatingMode int

const (
	RatingProgressive RatingMode = iota
	RatingLegacy
)

// BasePremium is the starting amount before any factor is applied.
const BasePremium = 1000.0

// ComputePremium prices a snapshot. Pure: reads only the snapshot and the
// supplied clock time, performs no I/O.
func ComputePremium(s QuoteSnapshot, now time.Time, mode RatingMode) (Premium, error) {
	dob, err := time.Parse("2006-01-02", s.Driver.DateOfBirth)
	if err != nil {
		return Premium{}, fmt.Errorf("%w: primary driver date of birth is required for rating", ErrValidation)
	}
	if mode == RatingLegacy && len(s.Vehicles) == 0 {
		return Premium{}, fmt.Errorf("%w: at least one vehicle is required", ErrValidation)
	}

	amount := BasePremium
	amount *= vehicleFactor(s.Vehicles, now, mode)
	amount *= driverFactor(DriverAge(dob, now))
	amount *= additionalDriversFactor(len(s.AdditionalDrivers))
	amount *= coverageFactor(s.Coverages)

	total := int64(math.Round(amount))
	return Premium{
		Total:    total,
		Monthly:  int64(math.Round(float64(total) / 12.0)),
		SixMonth: int64(math.Round(float64(total) / 2.0)),
	}, nil
}

// DriverAge is the floor of elapsed years between dob and now, using
// 365.25-day years.
func DriverAge(dob, now time.Time) int {
	return int(now.Sub(dob).Hours() / 24 / 365.25)
}

func vehicleFactor(vehicles []Vehicle, now time.Time, mode RatingMode) float64 {
	if len(vehicles) == 0 {
		return 1.0
	}

	factor := vehicleAgeFactor(now.Year() - vehicles[0].Year)

	if mode == RatingProgressive && len(vehicles) > 1 {
		factor *= multiVehicleDiscount(len(vehicles) - 1)
	}
	return factor
}

func vehicleAgeFactor(age int) float64 {
	switch {
	case age <= 3:
		return 1.3
	case age <= 7:
		return 1.0
	default:
		return 0.9
	}
}

func multiVehicleDiscount(extra int) float64 {
	return math.Max(0.75, 0.9-0.05*float64(extra))
}

func driverFactor(age int) float64 {
	switch {
	case age < 25:
		return 1.8
	case age <= 64:
		return 1.0
	default:
		return 1.2
	}
}

func additionalDriversFactor(count int) float64 {
	return 1.0 + 0.15*float64(count)
}

// coverageFactor starts at 1.0 and accumulates additive surcharges per
// selected option. A nil selection (earliest quoting stage) keeps 1.0.
func coverageFactor(c *CoverageSelection) float64 {
	if c == nil {
		return 1.0
	}

	factor := 1.0
	factor += bodilyInjurySurcharge(c.BodilyInjury)
	factor += propertyDamageSurcharge(c.PropertyDamage)
	if c.Collision != nil {
		factor += collisionSurcharge(c.Collision.Deductible)
	}
	if c.Comprehensive != nil {
		factor += comprehensiveSurcharge(c.Comprehensive.Deductible)
	}
	if c.UninsuredMotorist {
		factor += 0.10
	}
	if c.RoadsideAssistance {
		factor += 0.05
	}
	if c.RentalReimbursement != nil {
		factor += rentalSurcharge(c.RentalReimbursement.DailyLimit)
	}
	return factor
}

func bodilyInjurySurcharge(limit string) float64 {
	switch limit {
	case "25/50":
		return 0.05
	case "50/100":
		return 0.10
	case "100/300":
		return 0.15
	case "250/500":
		return 0.25
	default:
		return 0.15
	}
}

func propertyDamageSurcharge(limit int64) float64 {
	switch limit {
	case 25000:
		return 0.03
	case 50000:
		return 0.05
	case 100000:
		return 0.08
	default:
		return 0.05
	}
}

func collisionSurcharge(deductible int) float64 {
	switch deductible {
	case 250:
		return 0.35
	case 500:
		return 0.30
	case 1000:
		return 0.25
	case 2500:
		return 0.20
	default:
		return 0.30
	}
}

func comprehensiveSurcharge(deductible int) float64 {
	switch deductible {
	case 250:
		return 0.25
	case 500:
		return 0.20
	case 1000:
		return 0.15
	case 2500:
		return 0.10
	default:
		return 0.20
	}
}

func rentalSurcharge(dailyLimit int) float64 {
	switch dailyLimit {
	case 30:
		return 0.03
	case 50:
		return 0.05
	case 75:
		return 0.07
	default:
		return 0.05
	}
}
