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

type DocumentRepoMongo struct {
	coll      *mongodrv.Collection
	opTimeout time.Duration
}

func NewDocumentRepo(db *mongodrv.Database, opTimeout time.Duration) *DocumentRepoMongo {
	return &DocumentRepoMongo{
		coll:      db.Collection(ColDocuments),
		opTimeout: opTimeout,
	}
}

func (repo *DocumentRepoMongo) Create(ctx context.Context, d core.Document) error {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	_, err := repo.coll.InsertOne(ctx, toDocumentDoc(d))
	if err != nil {
		var we mongodrv.WriteException
		if errors.As(err, &we) {
			for _, e := range we.WriteErrors {
				if e.Code == 11000 {
					return core.ErrConflict
				}
			}
		}
		return fmt.Errorf("documents.insert: %w", err)
	}
	return nil
}

func (repo *DocumentRepoMongo) ListByPolicyID(ctx context.Context, policyID string) ([]core.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, repo.opTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := repo.coll.Find(ctx, bson.M{"policy_id": policyID}, opts)
	if err != nil {
		return nil, fmt.Errorf("documents.find: %w", err)
	}
	defer cursor.Close(ctx)

	var documents []core.Document
	for cursor.Next(ctx) {
		var doc DocumentDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("documents.decode: %w", err)
		}
		documents = append(documents, fromDocumentDoc(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("documents.cursor: %w", err)
	}
	return documents, nil
}
