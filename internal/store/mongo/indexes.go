package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := ensurePoliciesIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure policies indexes: %w", err)
	}
	if err := ensurePaymentsIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure payments indexes: %w", err)
	}
	if err := ensureDocumentsIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure documents indexes: %w", err)
	}
	if err := ensureEventsIndexes(ctx, db); err != nil {
		return fmt.Errorf("ensure events indexes: %w", err)
	}
	return nil
}

func ensurePoliciesIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(ColPolicies)
	models := []mongo.IndexModel{
		newIndex("reference", 1, "policies_reference_unique", true),
		newIndex("status", 1, "policies_status", false),
		newIndex("expiration_date", 1, "policies_expiration_date", false),
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func ensurePaymentsIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(ColPayments)
	models := []mongo.IndexModel{
		newIndex("policy_id", 1, "payments_policy_id", false),
		newIndex("transaction_id", 1, "payments_transaction_id_unique", true),
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func ensureDocumentsIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(ColDocuments)
	models := []mongo.IndexModel{
		newIndex("policy_id", 1, "documents_policy_id", false),
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func ensureEventsIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(ColEvents)
	models := []mongo.IndexModel{
		newIndex("policy_id", 1, "events_policy_id", false),
		newIndex("created_at", 1, "events_created_at", false),
	}
	_, err := coll.Indexes().CreateMany(ctx, models)
	return err
}

func newIndex(field string, asc int32, name string, unique bool) mongo.IndexModel {
	opts := options.Index().SetName(name)
	if unique {
		opts = opts.SetUnique(true)
	}
	return mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: asc}},
		Options: opts,
	}
}
