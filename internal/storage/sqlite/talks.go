// ABOUTME: Talk metadata storage operations for SQLite
// ABOUTME: Replaces and reads metadata rows in file order
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/harper/talk-recommender/internal/models"
)

// TalkStore handles talk metadata persistence
type TalkStore struct {
	db *DB
}

// NewTalkStore creates a new TalkStore
func NewTalkStore(db *DB) *TalkStore {
	return &TalkStore{db: db}
}

func (s *TalkStore) replace(ctx context.Context, tx *sql.Tx, talks []models.TalkMetadata) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM talks`); err != nil {
		return fmt.Errorf("failed to clear talks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO talks (position, key, title, name, main_speaker, event, description, url,
			comments, views, duration, languages, num_speaker)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, t := range talks {
		if _, err := stmt.ExecContext(ctx, i, t.Key, t.Title, nullString(t.Name), nullString(t.MainSpeaker),
			nullString(t.Event), nullString(t.Description), nullString(t.URL),
			t.Comments, t.Views, t.Duration, t.Languages, t.NumSpeaker); err != nil {
			return fmt.Errorf("failed to insert talk %q: %w", t.Title, err)
		}
	}
	return nil
}

// List returns every stored talk in file order
func (s *TalkStore) List(ctx context.Context) ([]models.TalkMetadata, error) {
	rows, err := s.db.Query(ctx, `
		SELECT key, title, name, main_speaker, event, description, url,
			comments, views, duration, languages, num_speaker
		FROM talks
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query talks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	talks := []models.TalkMetadata{}
	for rows.Next() {
		var (
			t                                          models.TalkMetadata
			name, speaker, event, description, talkURL sql.NullString
		)
		if err := rows.Scan(&t.Key, &t.Title, &name, &speaker, &event, &description, &talkURL,
			&t.Comments, &t.Views, &t.Duration, &t.Languages, &t.NumSpeaker); err != nil {
			return nil, fmt.Errorf("failed to scan talk: %w", err)
		}
		t.Name = name.String
		t.MainSpeaker = speaker.String
		t.Event = event.String
		t.Description = description.String
		t.URL = talkURL.String
		talks = append(talks, t)
	}
	return talks, rows.Err()
}

// Count returns the number of stored talks
func (s *TalkStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRow(ctx, `SELECT COUNT(*) FROM talks`).Scan(&n)
	return n, err
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
