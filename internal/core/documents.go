package core

import (
	"context"
	"time"
)

type DocumentType string

const (
	DocumentTypeDeclarations DocumentType = "declarations"
	DocumentTypeIDCard       DocumentType = "id_card"
)

// Document is one generated policy artifact. Created only after BOUND.
type Document struct {
	ID              string       `json:"id"`
	PolicyID        string       `json:"policy_id"`
	PolicyReference string       `json:"policy_reference"`
	Type            DocumentType `json:"type"`
	Name            string       `json:"name"`
	CreatedAt       time.Time    `json:"created_at"`
}

type DocumentRepo interface {
	Create(ctx context.Context, d Document) error
	ListByPolicyID(ctx context.Context, policyID string) ([]Document, error)
}

// DocumentGenerator produces the post-bind artifacts (declarations page and
// ID card). Errors never block the BOUND transition.
type DocumentGenerator interface {
	Generate(ctx context.Context, policyID, policyReference string) ([]Document, error)
}
