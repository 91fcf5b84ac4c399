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

type PaymentRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewPaymentRepo(db *mongodrv.Database, opTimeout time.Duration) *PaymentRepoMongo {
	return &PaymentRepoMongo{
		coll:      db.Collection(ColPayments),
		opTimeout: opTimeout,
	}
}

func (repo *PaymentRepoMongo) Create(ctx context.Context, p core.Payment) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, toPaymentDoc(p))
	if err != nil {
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.ErrConflict
				}
			}
		}
		return fmt.Errorf("payments.insert: %w", err)
	}
	return nil
}

func (repo *PaymentRepoMongo) ListByPolicyID(ctx context.Context, policyID string) ([]core.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"policy_id": policyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("payments.find: %w", err)
	}
	defer cursor.Close(ctx)

	var payments []core.Payment
	for cursor.Next(ctx) {
		var doc PaymentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("payments.decode: %w", err)
		}
		payments = append(payments, fromPaymentDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("payments.cursor: %w", err)
	}
	return payments, nil
}
