package core

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Driver holds the rating-relevant details for one driver on the quote.
type Driver struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	DateOfBirth   string `json:"date_of_birth"` // YYYY-MM-DD format
	LicenseNumber string `json:"license_number,omitempty"`
	IsPrimary     bool   `json:"is_primary"`
}

type Vehicle struct {
	Year  int    `json:"year"` // model year
	Make  string `json:"make"`
	Model string `json:"model"`
	VIN   string `json:"vin,omitempty"`
}

type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"` // US state code
	Zip    string `json:"zip"`
}

// DeductibleOption is a coverage with a dollar deductible (collision, comprehensive).
type DeductibleOption struct {
	Deductible int `json:"deductible"`
}

// RentalOption is rental reimbursement with a daily dollar limit.
type RentalOption struct {
	DailyLimit int `json:"daily_limit"`
}

// CoverageSelection captures the options picked during quoting. Nil pointers
// mean the option was not selected.
type CoverageSelection struct {
	BodilyInjury        string            `json:"bodily_injury"`   // limit pair, e.g. "100/300"
	PropertyDamage      int64             `json:"property_damage"` // per-accident limit in dollars
	Collision           *DeductibleOption `json:"collision,omitempty"`
	Comprehensive       *DeductibleOption `json:"comprehensive,omitempty"`
	UninsuredMotorist   bool              `json:"uninsured_motorist"`
	RoadsideAssistance  bool              `json:"roadside_assistance"`
	RentalReimbursement *RentalOption     `json:"rental_reimbursement,omitempty"`
}

// Premium holds the computed amounts in whole currency units.
type Premium struct {
	Total    int64 `json:"total"`
	Monthly  int64 `json:"monthly"`
	SixMonth int64 `json:"six_month"`
}

// SnapshotMeta carries versioning metadata for a snapshot.
type SnapshotMeta struct {
	QuoteRef    string     `json:"quote_ref"`
	Version     int        `json:"version"` // monotonically assigned per update
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	FinalizedAt *time.Time `json:"finalized_at,omitempty"`
}

// QuoteSnapshot is the denormalized, versioned document holding all quote
// inputs and outputs. Updates replace whole sections; the premium is always
// recomputed by the rating engine before the snapshot is persisted.
type QuoteSnapshot struct {
	Driver            Driver             `json:"driver"`
	AdditionalDrivers []Driver           `json:"additional_drivers"`
	Vehicles          []Vehicle          `json:"vehicles"`
	Vehicle           *Vehicle           `json:"vehicle,omitempty"` // legacy single-vehicle mirror of Vehicles[0]
	Address           Address            `json:"address"`
	Coverages         *CoverageSelection `json:"coverages,omitempty"`
	Premium           Premium            `json:"premium"`
	Meta              SnapshotMeta       `json:"meta"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func (d Driver) Validate() error {
	if d.FirstName == "" {
		return fmt.Errorf("%w: first name is required", ErrValidation)
	}
	if d.LastName == "" {
		return fmt.Errorf("%w: last name is required", ErrValidation)
	}
	if d.Email == "" {
		return fmt.Errorf("%w: email is required", ErrValidation)
	}
	if !emailRegex.MatchString(d.Email) {
		return fmt.Errorf("%w: invalid email format", ErrValidation)
	}
	if d.DateOfBirth == "" {
		return fmt.Errorf("%w: date of birth is required", ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", d.DateOfBirth); err != nil {
		return fmt.Errorf("%w: date of birth must be YYYY-MM-DD", ErrValidation)
	}
	return nil
}

func (v Vehicle) Validate() error {
	if v.Year < 1900 || v.Year > time.Now().Year()+1 {
		return fmt.Errorf("%w: implausible vehicle year %d", ErrValidation, v.Year)
	}
	if v.Make == "" {
		return fmt.Errorf("%w: vehicle make is required", ErrValidation)
	}
	if v.Model == "" {
		return fmt.Errorf("%w: vehicle model is required", ErrValidation)
	}
	return nil
}

// DedupeAdditionalDrivers drops any additional driver whose email matches the
// primary driver's (case-insensitive) and clears stray IsPrimary flags.
// Returns the filtered list and how many entries were removed.
func DedupeAdditionalDrivers(primaryEmail string, drivers []Driver) ([]Driver, int) {
	primary := strings.ToLower(strings.TrimSpace(primaryEmail))
	kept := make([]Driver, 0, len(drivers))
	removed := 0
	for _, d := range drivers {
		if strings.ToLower(strings.TrimSpace(d.Email)) == primary {
			removed++
			continue
		}
		d.IsPrimary = false
		kept = append(kept, d)
	}
	return kept, removed
}

// SetVehicles replaces the vehicle section and keeps the legacy single-vehicle
// field mirroring the first entry.
func (s *QuoteSnapshot) SetVehicles(vehicles []Vehicle) {
	s.Vehicles = vehicles
	if len(vehicles) > 0 {
		first := vehicles[0]
		s.Vehicle = &first
	} else {
		s.Vehicle = nil
	}
}
