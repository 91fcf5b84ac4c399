// Package docgen is the stub document generator invoked after a successful
// bind. It produces document records without rendering actual files.
package docgen

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrKriegler/go-autoquote/internal/core"
	"github.com/MrKriegler/go-autoquote/internal/platform/ids"
)

type Generator struct {
	log   *slog.Logger
	clock func() time.Time
}

func New(log *slog.Logger) *Generator {
	return &Generator{log: log, clock: time.Now}
}

var _ core.DocumentGenerator = (*Generator)(nil)

// Generate returns the declarations page and ID card records for a freshly
// bound policy.
func (g *Generator) Generate(ctx context.Context, policyID, policyReference string) ([]core.Document, error) {
	now := g.clock()
	docs := []core.Document{
		{
			ID:              ids.New(),
			PolicyID:        policyID,
			PolicyReference: policyReference,
			Type:            core.DocumentTypeDeclarations,
			Name:            fmt.Sprintf("Declarations Page - %s", policyReference),
			CreatedAt:       now,
		},
		{
			ID:              ids.New(),
			PolicyID:        policyID,
			PolicyReference: policyReference,
			Type:            core.DocumentTypeIDCard,
			Name:            fmt.Sprintf("Insurance ID Card - %s", policyReference),
			CreatedAt:       now,
		},
	}

	g.log.InfoContext(ctx, "generated policy documents",
		"policy_id", policyID, "reference", policyReference, "count", len(docs))
	return docs, nil
}
