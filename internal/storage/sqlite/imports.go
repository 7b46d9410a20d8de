// ABOUTME: Import audit storage operations for SQLite
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harper/talk-recommender/internal/models"
)

// timeFormat is fixed-width so stored timestamps sort lexically
const timeFormat = "2006-01-02T15:04:05.000000000Z07:00"

// ImportStore handles import audit rows
type ImportStore struct {
	db *DB
}

// NewImportStore creates a new ImportStore
func NewImportStore(db *DB) *ImportStore {
	return &ImportStore{db: db}
}

func (s *ImportStore) record(ctx context.Context, tx *sql.Tx, rec *models.ImportRecord) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO imports (id, kind, source, row_count, imported_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.ID, rec.Kind, nullString(rec.Source), rec.Rows, rec.ImportedAt.UTC().Format(timeFormat))
	if err != nil {
		return fmt.Errorf("failed to record import: %w", err)
	}
	return nil
}

// Last returns the most recent import of kind, or nil when there is none
func (s *ImportStore) Last(ctx context.Context, kind string) (*models.ImportRecord, error) {
	var (
		rec        models.ImportRecord
		source     sql.NullString
		importedAt string
	)
	err := s.db.QueryRow(ctx, `
		SELECT id, kind, source, row_count, imported_at
		FROM imports
		WHERE kind = ?
		ORDER BY imported_at DESC, rowid DESC
		LIMIT 1
	`, kind).Scan(&rec.ID, &rec.Kind, &source, &rec.Rows, &importedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query imports: %w", err)
	}

	rec.Source = source.String
	rec.ImportedAt, err = time.Parse(timeFormat, importedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse import time: %w", err)
	}
	return &rec, nil
}
