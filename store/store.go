// Package store persists the shopping document. Implementations share one
// contract: Load returns ErrNotFound when no document was ever saved, and
// Save overwrites the full document.
package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m3rciful/shoplistbot/logger"
	"github.com/m3rciful/shoplistbot/shoplist"
)

// ErrNotFound reports that no document has been persisted yet.
var ErrNotFound = errors.New("store: document not found")

// Store loads and saves the single shopping document.
type Store interface {
	Load(ctx context.Context) (*shoplist.Document, error)
	Save(ctx context.Context, doc *shoplist.Document) error
}

// LoadOrDefault loads the persisted document, falling back to the empty
// document on any failure. A missing or damaged store never fails startup;
// it is logged as a warning and forgotten.
func LoadOrDefault(ctx context.Context, s Store) *shoplist.Document {
	doc, err := s.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			logger.Warn(ctx, "store", "load.missing")
		} else {
			logger.Warn(ctx, "store", "load.damaged",
				slog.String("err", logger.SanitizeLimit(err.Error(), 256)),
			)
		}
		return shoplist.NewDocument()
	}
	doc.Normalize()
	logger.Info(ctx, "store", "load.ok",
		slog.Int("items", len(doc.Items)),
		slog.Int("recipes", len(doc.Recipes)),
	)
	return doc
}
