// ABOUTME: Transcript storage operations for SQLite
// ABOUTME: Replaces and reads the corpus documents in position order
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harper/talk-recommender/internal/models"
)

// TranscriptStore handles transcript persistence
type TranscriptStore struct {
	db *DB
}

// NewTranscriptStore creates a new TranscriptStore
func NewTranscriptStore(db *DB) *TranscriptStore {
	return &TranscriptStore{db: db}
}

// replace swaps the whole table for docs inside tx
func (s *TranscriptStore) replace(ctx context.Context, tx *sql.Tx, docs []models.RawDocument) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM transcripts`); err != nil {
		return fmt.Errorf("failed to clear transcripts: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO transcripts (position, raw_key, body) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, doc := range docs {
		if _, err := stmt.ExecContext(ctx, i, doc.RawKey, doc.Text); err != nil {
			return fmt.Errorf("failed to insert transcript %d: %w", i, err)
		}
	}
	return nil
}

// List returns every stored document in position order
func (s *TranscriptStore) List(ctx context.Context) ([]models.RawDocument, error) {
	rows, err := s.db.Query(ctx, `SELECT raw_key, body FROM transcripts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	docs := []models.RawDocument{}
	for rows.Next() {
		var doc models.RawDocument
		if err := rows.Scan(&doc.RawKey, &doc.Text); err != nil {
			return nil, fmt.Errorf("failed to scan transcript: %w", err)
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// Count returns the number of stored transcripts
func (s *TranscriptStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM transcripts`).Scan(&n)
	return n, err
}
