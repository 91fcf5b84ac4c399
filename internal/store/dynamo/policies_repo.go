package dynamo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/MrKriegler/go-autoquote/internal/core"
)

type DriverItem struct {
	FirstName     string `dynamodbav:"first_name"`
	LastName      string `dynamodbav:"last_name"`
	Email         string `dynamodbav:"email"`
	DateOfBirth   string `dynamodbav:"date_of_birth"`
	LicenseNumber string `dynamodbav:"license_number,omitempty"`
	IsPrimary     bool   `dynamodbav:"is_primary"`
}

type VehicleItem struct {
	Year  int    `dynamodbav:"year"`
	Make  string `dynamodbav:"make"`
	Model string `dynamodbav:"model"`
	VIN   string `dynamodbav:"vin,omitempty"`
}

type AddressItem struct {
	Street string `dynamodbav:"street"`
	City   string `dynamodbav:"city"`
	State  string `dynamodbav:"state"`
	Zip    string `dynamodbav:"zip"`
}

type CoverageItem struct {
	BodilyInjury        string `dynamodbav:"bodily_injury"`
	PropertyDamage      int64  `dynamodbav:"property_damage"`
	CollisionDeductible *int   `dynamodbav:"collision_deductible,omitempty"`
	ComprehensiveDed    *int   `dynamodbav:"comprehensive_deductible,omitempty"`
	UninsuredMotorist   bool   `dynamodbav:"uninsured_motorist"`
	RoadsideAssistance  bool   `dynamodbav:"roadside_assistance"`
	RentalDailyLimit    *int   `dynamodbav:"rental_daily_limit,omitempty"`
}

type SnapshotItem struct {
	Driver            DriverItem    `dynamodbav:"driver"`
	AdditionalDrivers []DriverItem  `dynamodbav:"additional_drivers"`
	Vehicles          []VehicleItem `dynamodbav:"vehicles"`
	Address           AddressItem   `dynamodbav:"address"`
	Coverages         *CoverageItem `dynamodbav:"coverages,omitempty"`
	PremiumTotal      int64         `dynamodbav:"premium_total"`
	PremiumMonthly    int64         `dynamodbav:"premium_monthly"`
	PremiumSixMonth   int64         `dynamodbav:"premium_six_month"`
	Version           int           `dynamodbav:"version"`
	CreatedAt         string        `dynamodbav:"created_at"`
	UpdatedAt         string        `dynamodbav:"updated_at"`
	FinalizedAt       string        `dynamodbav:"finalized_at,omitempty"`
}

type PolicyItem struct {
	ID             string       `dynamodbav:"id"`
	Reference      string       `dynamodbav:"reference"`
	Status         string       `dynamodbav:"status"`
	Snapshot       SnapshotItem `dynamodbav:"snapshot"`
	EffectiveDate  string       `dynamodbav:"effective_date,omitempty"`
	ExpirationDate string       `dynamodbav:"expiration_date,omitempty"`
	CreatedAt      string       `dynamodbav:"created_at"`
	UpdatedAt      string       `dynamodbav:"updated_at"`
}

func driverItemFromCore(d core.Driver) DriverItem {
	return DriverItem{
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Email:         d.Email,
		DateOfBirth:   d.DateOfBirth,
		LicenseNumber: d.LicenseNumber,
		IsPrimary:     d.IsPrimary,
	}
}

func (i DriverItem) toCore() core.Driver {
	return core.Driver{
		FirstName:     i.FirstName,
		LastName:      i.LastName,
		Email:         i.Email,
		DateOfBirth:   i.DateOfBirth,
		LicenseNumber: i.LicenseNumber,
		IsPrimary:     i.IsPrimary,
	}
}

func snapshotItemFromCore(s core.QuoteSnapshot) SnapshotItem {
	item := SnapshotItem{
		Driver:          driverItemFromCore(s.Driver),
		PremiumTotal:    s.Premium.Total,
		PremiumMonthly:  s.Premium.Monthly,
		PremiumSixMonth: s.Premium.SixMonth,
		Version:         s.Meta.Version,
		CreatedAt:       s.Meta.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       s.Meta.UpdatedAt.Format(time.RFC3339),
		Address: AddressItem{
			Street: s.Address.Street,
			City:   s.Address.City,
			State:  s.Address.State,
			Zip:    s.Address.Zip,
		},
	}
	if s.Meta.FinalizedAt != nil {
		item.FinalizedAt = s.Meta.FinalizedAt.Format(time.RFC3339)
	}
	item.AdditionalDrivers = make([]DriverItem, len(s.AdditionalDrivers))
	for i, d := range s.AdditionalDrivers {
		item.AdditionalDrivers[i] = driverItemFromCore(d)
	}
	item.Vehicles = make([]VehicleItem, len(s.Vehicles))
	for i, v := range s.Vehicles {
		item.Vehicles[i] = VehicleItem{Year: v.Year, Make: v.Make, Model: v.Model, VIN: v.VIN}
	}
	if c := s.Coverages; c != nil {
		cov := &CoverageItem{
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
		item.Coverages = cov
	}
	return item
}

func (i SnapshotItem) toCore(reference string) core.QuoteSnapshot {
	createdAt, _ := time.Parse(time.RFC3339, i.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, i.UpdatedAt)
	snap := core.QuoteSnapshot{
		Driver: i.Driver.toCore(),
		Address: core.Address{
			Street: i.Address.Street,
			City:   i.Address.City,
			State:  i.Address.State,
			Zip:    i.Address.Zip,
		},
		Premium: core.Premium{
			Total:    i.PremiumTotal,
			Monthly:  i.PremiumMonthly,
			SixMonth: i.PremiumSixMonth,
		},
		Meta: core.SnapshotMeta{
			QuoteRef:  reference,
			Version:   i.Version,
			CreatedAt: createdAt,
			UpdatedAt: updatedAt,
		},
	}
	if i.FinalizedAt != "" {
		finalized, _ := time.Parse(time.RFC3339, i.FinalizedAt)
		snap.Meta.FinalizedAt = &finalized
	}
	snap.AdditionalDrivers = make([]core.Driver, len(i.AdditionalDrivers))
	for n, d := range i.AdditionalDrivers {
		snap.AdditionalDrivers[n] = d.toCore()
	}
	vehicles := make([]core.Vehicle, len(i.Vehicles))
	for n, v := range i.Vehicles {
		vehicles[n] = core.Vehicle{Year: v.Year, Make: v.Make, Model: v.Model, VIN: v.VIN}
	}
	snap.SetVehicles(vehicles)
	if c := i.Coverages; c != nil {
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

func policyItemFromCore(p core.Policy) PolicyItem {
	item := PolicyItem{
		ID:        p.ID,
		Reference: p.Reference,
		Status:    string(p.Status),
		Snapshot:  snapshotItemFromCore(p.Snapshot),
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if p.EffectiveDate != nil {
		item.EffectiveDate = p.EffectiveDate.Format(time.RFC3339)
	}
	if p.ExpirationDate != nil {
		item.ExpirationDate = p.ExpirationDate.Format(time.RFC3339)
	}
	return item
}

func (i PolicyItem) ToCore() core.Policy {
	createdAt, _ := time.Parse(time.RFC3339, i.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339, i.UpdatedAt)
	p := core.Policy{
		ID:        i.ID,
		Reference: i.Reference,
		Status:    core.PolicyStatus(i.Status),
		Snapshot:  i.Snapshot.toCore(i.Reference),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if i.EffectiveDate != "" {
		effective, _ := time.Parse(time.RFC3339, i.EffectiveDate)
		p.EffectiveDate = &effective
	}
	if i.ExpirationDate != "" {
		expiration, _ := time.Parse(time.RFC3339, i.ExpirationDate)
		p.ExpirationDate = &expiration
	}
	return p
}

type PolicyRepo struct {
	client *dynamodb.Client
}

func NewPolicyRepo(client *dynamodb.Client) *PolicyRepo {
	return &PolicyRepo{client: client}
}

func (r *PolicyRepo) Create(ctx context.Context, p core.Policy) error {
	item := policyItemFromCore(p)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("policies.marshal: %w", err)
	}

	cond := expression.AttributeNotExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("policies.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TablePolicies),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrPolicyExists
		}
		return fmt.Errorf("policies.putItem: %w", err)
	}

	return nil
}

func (r *PolicyRepo) Get(ctx context.Context, id string) (core.Policy, error) {
	out, err := r.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(TablePolicies),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return core.Policy{}, fmt.Errorf("policies.getItem: %w", err)
	}

	if out.Item == nil {
		return core.Policy{}, core.ErrPolicyNotFound
	}

	var item PolicyItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return core.Policy{}, fmt.Errorf("policies.unmarshal: %w", err)
	}

	return item.ToCore(), nil
}

func (r *PolicyRepo) GetByReference(ctx context.Context, reference string) (core.Policy, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TablePolicies),
		IndexName:              aws.String(GSIPoliciesReference),
		KeyConditionExpression: aws.String("#reference = :reference"),
		ExpressionAttributeNames: map[string]string{
			"#reference": "reference",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":reference": &types.AttributeValueMemberS{Value: reference},
		},
		Limit: aws.Int32(1),
	})
	if err != nil {
		return core.Policy{}, fmt.Errorf("policies.query: %w", err)
	}

	if len(out.Items) == 0 {
		return core.Policy{}, core.ErrPolicyNotFound
	}

	var item PolicyItem
	if err := attributevalue.UnmarshalMap(out.Items[0], &item); err != nil {
		return core.Policy{}, fmt.Errorf("policies.unmarshal: %w", err)
	}

	return item.ToCore(), nil
}

func (r *PolicyRepo) Update(ctx context.Context, p core.Policy) error {
	item := policyItemFromCore(p)
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return fmt.Errorf("policies.marshal: %w", err)
	}

	cond := expression.AttributeExists(expression.Name("id"))
	expr, err := expression.NewBuilder().WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("policies.buildExpr: %w", err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:                 aws.String(TablePolicies),
		Item:                      av,
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrPolicyNotFound
		}
		return fmt.Errorf("policies.putItem: %w", err)
	}

	return nil
}

// UpdateStatusFrom is the compare-and-swap status write: the flip only lands
// when the stored status still equals from.
func (r *PolicyRepo) UpdateStatusFrom(ctx context.Context, id string, from, to core.PolicyStatus, updatedAt time.Time) error {
	update := expression.Set(
		expression.Name("status"), expression.Value(string(to)),
	).Set(
		expression.Name("updated_at"), expression.Value(updatedAt.Format(time.RFC3339)),
	)
	cond := expression.AttributeExists(expression.Name("id")).
		And(expression.Equal(expression.Name("status"), expression.Value(string(from))))
	expr, err := expression.NewBuilder().WithUpdate(update).WithCondition(cond).Build()
	if err != nil {
		return fmt.Errorf("policies.buildExpr: %w", err)
	}

	_, err = r.client.UpdateItem(ctx, &dynamodb.UpdateItemInput{
		TableName: aws.String(TablePolicies),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		UpdateExpression:          expr.Update(),
		ConditionExpression:       expr.Condition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		var ccf *types.ConditionalCheckFailedException
		if errors.As(err, &ccf) {
			return core.ErrConflict
		}
		return fmt.Errorf("policies.updateItem: %w", err)
	}

	return nil
}

func (r *PolicyRepo) FindByStatus(ctx context.Context, status core.PolicyStatus, limit int) ([]core.Policy, error) {
	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(TablePolicies),
		IndexName:              aws.String(GSIPoliciesStatus),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
		Limit: aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, fmt.Errorf("policies.query: %w", err)
	}

	var items []PolicyItem
	if err := attributevalue.UnmarshalListOfMaps(out.Items, &items); err != nil {
		return nil, fmt.Errorf("policies.unmarshal: %w", err)
	}

	policies := make([]core.Policy, len(items))
	for i, item := range items {
		policies[i] = item.ToCore()
	}
	return policies, nil
}
