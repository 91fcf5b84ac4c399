package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	mongodrv "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MrKriegler/go-autoquote/internal/core"
)

type PolicyRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewPolicyRepo(db *mongodrv.Database, opTimeout time.Duration) *PolicyRepoMongo {
	return &PolicyRepoMongo{
		coll:      db.Collection(ColPolicies),
		opTimeout: opTimeout,
	}
}

func (repo *PolicyRepoMongo) Create(ctx context.Context, p core.Policy) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, toPolicyDoc(p))
	if err != nil {
		// map dup key (id or reference) -> conflict
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.ErrPolicyExists
				}
			}
		}
		return fmt.Errorf("policies.insert: %w", err)
	}
	return nil
}

func (repo *PolicyRepoMongo) Get(ctx context.Context, id string) (core.Policy, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	var doc PolicyDoc
	err := repo.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Policy{}, core.ErrPolicyNotFound
		}
		return core.Policy{}, fmt.Errorf("policies.findOne: %w", err)
	}
	return fromPolicyDoc(doc), nil
}

func (repo *PolicyRepoMongo) GetByReference(ctx context.Context, reference string) (core.Policy, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	var doc PolicyDoc
	err := repo.coll.FindOne(ctx, bson.M{"reference": reference}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongodrv.ErrNoDocuments) {
			return core.Policy{}, core.ErrPolicyNotFound
		}
		return core.Policy{}, fmt.Errorf("policies.findOne: %w", err)
	}
	return fromPolicyDoc(doc), nil
}

func (repo *PolicyRepoMongo) Update(ctx context.Context, p core.Policy) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	result, err := repo.coll.ReplaceOne(ctx, bson.M{"_id": p.ID}, toPolicyDoc(p))
	if err != nil {
		return fmt.Errorf("policies.replace: %w", err)
	}
	if result.MatchedCount == 0 {
		return core.ErrPolicyNotFound
	}
	return nil
}

// UpdateStatusFrom filters on the expected current status so the flip is a
// compare-and-swap: a concurrent writer that got there first leaves nothing
// to match.
func (repo *PolicyRepoMongo) UpdateStatusFrom(ctx context.Context, id string, from, to core.PolicyStatus, updatedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":     string(to),
			"updated_at": updatedAt,
		},
	}

	result, err := repo.coll.UpdateOne(ctx, bson.M{"_id": id, "status": string(from)}, update)
	if err != nil {
		return fmt.Errorf("policies.updateStatus: %w", err)
	}
	if result.MatchedCount == 0 {
		return core.ErrConflict
	}
	return nil
}

func (repo *PolicyRepoMongo) FindByStatus(ctx context.Context, status core.PolicyStatus, limit int) ([]core.Policy, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	filter := bson.M{"status": string(status)}
	opts := options.Find().SetLimit(int64(limit)).SetSort(bson.D{{Key: "created_at", Value: 1}})

	cursor, err := repo.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("policies.find: %w", err)
	}
	defer cursor.Close(ctx)

	var policies []core.Policy
	for cursor.Next(ctx) {
		var doc PolicyDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("policies.decode: %w", err)
		}
		policies = append(policies, fromPolicyDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("policies.cursor: %w", err)
	}
	return policies, nil
}
