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

type EventRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewEventRepo(db *mongodrv.Database, opTimeout time.Duration) *EventRepoMongo {
	return &EventRepoMongo{
		coll:      db.Collection(ColEvents),
		opTimeout: opTimeout,
	}
}

// Append inserts a log entry; there is no update path on this collection.
func (repo *EventRepoMongo) Append(ctx context.Context, e core.Event) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, toEventDoc(e))
	if err != nil {
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.ErrConflict
				}
			}
		}
		return fmt.Errorf("events.insert: %w", err)
	}
	return nil
}

func (repo *EventRepoMongo) ListByPolicyID(ctx context.Context, policyID string) ([]core.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"policy_id": policyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("events.find: %w", err)
	}
	defer cursor.Close(ctx)

	var events []core.Event
	for cursor.Next(ctx) {
		var doc EventDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("events.decode: %w", err)
		}
		events = append(events, fromEventDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("events.cursor: %w", err)
	}
	return events, nil
}
