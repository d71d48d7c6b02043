package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/m3rciful/shoplistbot/shoplist"
)

// documentID is the fixed primary key of the single persisted document.
const documentID = 1

// Compile-time interface check.
var _ Store = (*PostgresStore)(nil)

// PostgresStore keeps the document as a single JSONB row. The schema is
// applied by the migrations in ./migrations.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgres builds a store over an open connection pool.
func NewPostgres(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Load fetches and decodes the document row.
func (p *PostgresStore) Load(ctx context.Context) (*shoplist.Document, error) {
	var payload []byte
	err := p.db.GetContext(ctx, &payload,
		`SELECT payload FROM shopping_document WHERE id = $1`, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: row %d", ErrNotFound, documentID)
		}
		return nil, fmt.Errorf("select document: %w", err)
	}
	var doc shoplist.Document
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	doc.Normalize()
	return &doc, nil
}

// Save upserts the full document into its row.
func (p *PostgresStore) Save(ctx context.Context, doc *shoplist.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	_, err = p.db.ExecContext(ctx,
		`INSERT INTO shopping_document (id, payload, updated_at)
		 VALUES ($1, $2, now())
		 ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		documentID, payload)
	if err != nil {
		return fmt.Errorf("upsert document: %w", err)
	}
	return nil
}
