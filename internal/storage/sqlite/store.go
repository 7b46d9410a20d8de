// ABOUTME: Corpus store wrapping the transcript, talk and import tables
// ABOUTME: Implements the corpus Source interface over a SQLite database
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/talk-recommender/internal/models"
)

// Store is the SQLite-backed corpus store
type Store struct {
	db          *DB
	transcripts *TranscriptStore
	talks       *TalkStore
	imports     *ImportStore
}

// Counts summarizes the stored corpus
type Counts struct {
	Transcripts int `json:"transcripts"`
	Talks       int `json:"talks"`
}

// NewStore initializes a store at the default path
func NewStore() (*Store, error) {
	return NewStoreWithPath(DefaultDBPath())
}

// NewStoreWithPath initializes a store with a custom database path
func NewStoreWithPath(dbPath string) (*Store, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return newStore(db), nil
}

// NewStoreInMemory creates an in-memory store (for testing)
func NewStoreInMemory() (*Store, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	return newStore(db), nil
}

func newStore(db *DB) *Store {
	return &Store{
		db:          db,
		transcripts: NewTranscriptStore(db),
		talks:       NewTalkStore(db),
		imports:     NewImportStore(db),
	}
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database
func (s *Store) DB() *DB {
	return s.db
}

// ReplaceTranscripts atomically replaces every stored transcript with docs
// and records the import. source names where the rows came from.
func (s *Store) ReplaceTranscripts(ctx context.Context, docs []models.RawDocument, source string) (*models.ImportRecord, error) {
	rec := newImport(models.ImportTranscripts, source, len(docs))
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.transcripts.replace(ctx, tx, docs); err != nil {
			return err
		}
		return s.imports.record(ctx, tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// ReplaceMetadata atomically replaces every stored talk with talks and records the import
func (s *Store) ReplaceMetadata(ctx context.Context, talks []models.TalkMetadata, source string) (*models.ImportRecord, error) {
	rec := newImport(models.ImportMetadata, source, len(talks))
	err := s.db.WithTx(ctx, func(tx *sql.Tx) error {
		if err := s.talks.replace(ctx, tx, talks); err != nil {
			return err
		}
		return s.imports.record(ctx, tx, rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func newImport(kind, source string, rows int) *models.ImportRecord {
	return &models.ImportRecord{
		ID:         uuid.New().String(),
		Kind:       kind,
		Source:     source,
		Rows:       rows,
		ImportedAt: time.Now().UTC(),
	}
}

// Documents returns the stored transcripts in corpus order
func (s *Store) Documents(ctx context.Context) ([]models.RawDocument, error) {
	return s.transcripts.List(ctx)
}

// Metadata returns the stored talk metadata in file order
func (s *Store) Metadata(ctx context.Context) ([]models.TalkMetadata, error) {
	return s.talks.List(ctx)
}

// Counts returns row counts for the corpus tables
func (s *Store) Counts(ctx context.Context) (Counts, error) {
	var c Counts
	var err error
	if c.Transcripts, err = s.transcripts.Count(ctx); err != nil {
		return Counts{}, fmt.Errorf("failed to count transcripts: %w", err)
	}
	if c.Talks, err = s.talks.Count(ctx); err != nil {
		return Counts{}, fmt.Errorf("failed to count talks: %w", err)
	}
	return c, nil
}

// LastImport returns the most recent import of kind, or nil
func (s *Store) LastImport(ctx context.Context, kind string) (*models.ImportRecord, error) {
	return s.imports.Last(ctx, kind)
}
