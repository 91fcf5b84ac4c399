package mongo

import (
	"time"

	"github.com/MrKriegler/go-autoquote/internal/core"
)

const (
	ColPolicies  = "policies"
	ColPayments  = "payments"
	ColDocuments = "documents"
	ColEvents    = "events"
)

type DriverDoc struct {
	FirstName     string `bson:"first_name"`
	LastName      string `bson:"last_name"`
	Email         string `bson:"email"`
	DateOfBirth   string `bson:"date_of_birth"`
	LicenseNumber string `bson:"license_number,omitempty"`
	IsPrimary     bool   `bson:"is_primary"`
}

type VehicleDoc struct {
	Year  int    `bson:"year"`
	Make  string `bson:"make"`
	Model string `bson:"model"`
	VIN   string `bson:"vin,omitempty"`
}

type AddressDoc struct {
	Street string `bson:"street"`
	City   string `bson:"city"`
	State  string `bson:"state"`
	Zip    string `bson:"zip"`
}

type CoverageDoc struct {
	BodilyInjury        string `bson:"bodily_injury"`
	PropertyDamage      int64  `bson:"property_damage"`
	CollisionDeductible *int   `bson:"collision_deductible,omitempty"`
	ComprehensiveDed    *int   `bson:"comprehensive_deductible,omitempty"`
	UninsuredMotorist   bool   `bson:"uninsured_motorist"`
	RoadsideAssistance  bool   `bson:"roadside_assistance"`
	RentalDailyLimit    *int   `bson:"rental_daily_limit,omitempty"`
}

type SnapshotDoc struct {
	Driver            DriverDoc    `bson:"driver"`
	AdditionalDrivers []DriverDoc  `bson:"additional_drivers"`
	Vehicles          []VehicleDoc `bson:"vehicles"`
	Address           AddressDoc   `bson:"address"`
	Coverages         *CoverageDoc `bson:"coverages,omitempty"`
	PremiumTotal      int64        `bson:"premium_total"`
	PremiumMonthly    int64        `bson:"premium_monthly"`
	PremiumSixMonth   int64        `bson:"premium_six_month"`
	Version           int          `bson:"version"`
	CreatedAt         time.Time    `bson:"created_at"`
	UpdatedAt         time.Time    `bson:"updated_at"`
	FinalizedAt       *time.Time   `bson:"finalized_at,omitempty"`
}

type PolicyDoc struct {
	ID             string      `bson:"_id"`
	Reference      string      `bson:"reference"` // unique index
	Status         string      `bson:"status"`
	Snapshot       SnapshotDoc `bson:"snapshot"`
	EffectiveDate  *time.Time  `bson:"effective_date,omitempty"`
	ExpirationDate *time.Time  `bson:"expiration_date,omitempty"`
	CreatedAt      time.Time   `bson:"created_at"`
	UpdatedAt      time.Time   `bson:"updated_at"`
}

type PaymentDoc struct {
	ID            string    `bson:"_id"`
	PolicyID      string    `bson:"policy_id"`
	Method        string    `bson:"method"`
	Last4         string    `bson:"last4"`
	CardBrand     string    `bson:"card_brand,omitempty"`
	AccountType   string    `bson:"account_type,omitempty"`
	TransactionID string    `bson:"transaction_id"`
	Amount        int64     `bson:"amount"`
	CreatedAt     time.Time `bson:"created_at"`
}

type DocumentDoc struct {
	ID              string    `bson:"_id"`
	PolicyID        string    `bson:"policy_id"`
	PolicyReference string    `bson:"policy_reference"`
	Type            string    `bson:"type"`
	Name            string    `bson:"name"`
	CreatedAt       time.Time `bson:"created_at"`
}

type EventDoc struct {
	ID             string    `bson:"_id"`
	PolicyID       string    `bson:"policy_id"`
	PreviousStatus string    `bson:"previous_status"`
	NewStatus      string    `bson:"new_status"`
	Reason         string    `bson:"reason"`
	CreatedAt      time.Time `bson:"created_at"`
}

func toDriverDoc(d core.Driver) DriverDoc {
	return DriverDoc{
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		DateOfBirth:   d.DateOfBirth,
		LicenseNumber: d.LicenseNumber,
		IsPrimary:     d.IsPrimary,
	}
}

func fromDriverDoc(d DriverDoc) core.Driver {
	return core.Driver{
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		DateOfBirth:   d.DateOfBirth,
		LicenseNumber: d.LicenseNumber,
		IsPrimary:     d.IsPrimary,
	}
}

func toSnapshotDoc(s core.QuoteSnapshot) SnapshotDoc {
	doc := SnapshotDoc{
		Driver:          toDriverDoc(s.Driver),
		PremiumTotal:    s.Premium.Total,
		PremiumMonthly:  s.Premium.Monthly,
		PremiumSixMonth: s.Premium.SixMonth,
		Version:         s.Meta.Version,
		CreatedAt:       s.Meta.CreatedAt,
		UpdatedAt:       s.Meta.UpdatedAt,
		FinalizedAt:     s.Meta.FinalizedAt,
		Address: AddressDoc{
			Street: s.Address.Street,
			City:   s.Address.City,
			State:  s.Address.State,
			Zip:    s.Address.Zip,
		},
	}
	doc.AdditionalDrivers = make([]DriverDoc, len(s.AdditionalDrivers))
	for i, d := range s.AdditionalDrivers {
		doc.AdditionalDrivers[i] = toDriverDoc(d)
	}
	doc.Vehicles = make([]VehicleDoc, len(s.Vehicles))
	for i, v := range s.Vehicles {
		doc.Vehicles[i] = VehicleDoc{Year: v.Year, Make: v.Make, Model: v.Model, VIN: v.VIN}
	}
	if c := s.Coverages; c != nil {
		cov := &CoverageDoc{
			BodilyInjury:       c.BodilyInjury,
			PropertyDamage:     c.PropertyDamage,
			UninsuredMotorist:  c.UninsuredMotorist,
			RoadsideAssistance: c.RoadsideAssistance,
		}
		if c.Collision != nil {
			d := c.Collision.Deductible
			cov.CollisionDeductible = &d
		}
		if c.Comprehensive != nil {
			d := c.Comprehensive.Deductible
			cov.ComprehensiveDed = &d
		}
		if c.RentalReimbursement != nil {
			l := c.RentalReimbursement.DailyLimit
			cov.RentalDailyLimit = &l
		}
		doc.Coverages = cov
	}
	return doc
}

func fromSnapshotDoc(d SnapshotDoc, reference string) core.QuoteSnapshot {
	snap := core.QuoteSnapshot{
		Driver: fromDriverDoc(d.Driver),
		Address: core.Address{
			Street: d.Address.Street,
			City:   d.Address.City,
			State:  d.Address.State,
			Zip:    d.Address.Zip,
		},
		Premium: core.Premium{
			Total:    d.PremiumTotal,
			Monthly:  d.PremiumMonthly,
			SixMonth: d.PremiumSixMonth,
		},
		Meta: core.SnapshotMeta{
			QuoteRef:    reference,
			Version:     d.Version,
			CreatedAt:   d.CreatedAt,
			UpdatedAt:   d.UpdatedAt,
			FinalizedAt: d.FinalizedAt,
		},
	}
	snap.AdditionalDrivers = make([]core.Driver, len(d.AdditionalDrivers))
	for i, dr := range d.AdditionalDrivers {
		snap.AdditionalDrivers[i] = fromDriverDoc(dr)
	}
	vehicles := make([]core.Vehicle, len(d.Vehicles))
	for i, v := range d.Vehicles {
		vehicles[i] = core.Vehicle{Year: v.Year, Make: v.Make, Model: v.Model, VIN: v.VIN}
	}
	snap.SetVehicles(vehicles)
	if c := d.Coverages; c != nil {
		cov := &core.CoverageSelection{
			BodilyInjury:       c.BodilyInjury,
			PropertyDamage:     c.PropertyDamage,
			UninsuredMotorist:  c.UninsuredMotorist,
			RoadsideAssistance: c.RoadsideAssistance,
		}
		if c.CollisionDeductible != nil {
			cov.Collision = &core.DeductibleOption{Deductible: *c.CollisionDeductible}
		}
		if c.ComprehensiveDed != nil {
			cov.Comprehensive = &core.DeductibleOption{Deductible: *c.ComprehensiveDed}
		}
		if c.RentalDailyLimit != nil {
			cov.RentalReimbursement = &core.RentalOption{DailyLimit: *c.RentalDailyLimit}
		}
		snap.Coverages = cov
	}
	return snap
}

func toPolicyDoc(p core.Policy) PolicyDoc {
	return PolicyDoc{
		ID:             p.ID,
		Reference:      p.Reference,
		Status:         string(p.Status),
		Snapshot:       toSnapshotDoc(p.Snapshot),
		EffectiveDate:  p.EffectiveDate,
		ExpirationDate: p.ExpirationDate,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func fromPolicyDoc(d PolicyDoc) core.Policy {
	return core.Policy{
		ID:             d.ID,
		Reference:      d.Reference,
		Status:         core.PolicyStatus(d.Status),
		Snapshot:       fromSnapshotDoc(d.Snapshot, d.Reference),
		EffectiveDate:  d.EffectiveDate,
		ExpirationDate: d.ExpirationDate,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

func toPaymentDoc(p core.Payment) PaymentDoc {
	return PaymentDoc{
		ID:            p.ID,
		PolicyID:      p.PolicyID,
		Method:        string(p.Method),
		Last4:         p.Last4,
		CardBrand:     p.CardBrand,
		AccountType:   p.AccountType,
		TransactionID: p.TransactionID,
		Amount:        p.Amount,
		CreatedAt:     p.CreatedAt,
	}
}

func fromPaymentDoc(d PaymentDoc) core.Payment {
	return core.Payment{
		ID:            d.ID,
		PolicyID:      d.PolicyID,
		Method:        core.PaymentMethod(d.Method),
		Last4:         d.Last4,
		CardBrand:     d.CardBrand,
		AccountType:   d.AccountType,
		TransactionID: d.TransactionID,
		Amount:        d.Amount,
		CreatedAt:     d.CreatedAt,
	}
}

func toDocumentDoc(d core.Document) DocumentDoc {
	return DocumentDoc{
		ID:              d.ID,
		PolicyID:        d.PolicyID,
		PolicyReference: d.PolicyReference,
		Type:            string(d.Type),
		Name:            d.Name,
		CreatedAt:       d.CreatedAt,
	}
}

func fromDocumentDoc(d DocumentDoc) core.Document {
	return core.Document{
		ID:              d.ID,
		PolicyID:        d.PolicyID,
		PolicyReference: d.PolicyReference,
		Type:            core.DocumentType(d.Type),
		Name:            d.Name,
		CreatedAt:       d.CreatedAt,
	}
}

func toEventDoc(e core.Event) EventDoc {
	return EventDoc{
		ID:             e.ID,
		PolicyID:       e.PolicyID,
		PreviousStatus: string(e.PreviousStatus),
		NewStatus:      string(e.NewStatus),
		Reason:         e.Reason,
		CreatedAt:      e.CreatedAt,
	}
}

func fromEventDoc(d EventDoc) core.Event {
	return core.Event{
		ID:             d.ID,
		PolicyID:       d.PolicyID,
		PreviousStatus: core.PolicyStatus(d.PreviousStatus),
		NewStatus:      core.PolicyStatus(d.NewStatus),
		Reason:         d.Reason,
		CreatedAt:      d.CreatedAt,
	}
}
