// ABOUTME: Corpus source abstraction shared by the CSV files and the SQLite store
// ABOUTME: Commands and the MCP server read documents and metadata through Source
package storage

import (
	"context"
	"errors"
	"os"

	"github.com/harper/talk-recommender/internal/models"
)

// Source supplies the corpus documents and optional talk metadata
type Source interface {
	Documents(ctx context.Context) ([]models.RawDocument, error)
	Metadata(ctx context.Context) ([]models.TalkMetadata, error)
}

// CSVSource reads the corpus from a transcripts file and an optional metadata file
type CSVSource struct {
	TranscriptsPath string
	MetadataPath    string
}

// NewCSVSource creates a CSV-backed source
func NewCSVSource(transcripts, metadata string) *CSVSource {
	return &CSVSource{TranscriptsPath: transcripts, MetadataPath: metadata}
}

// Documents loads the transcripts file
func (s *CSVSource) Documents(ctx context.Context) ([]models.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return OpenTranscripts(s.TranscriptsPath)
}

// Metadata loads the metadata file; a missing or unset file yields no rows
func (s *CSVSource) Metadata(ctx context.Context) ([]models.TalkMetadata, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.MetadataPath == "" {
		return nil, nil
	}
	if _, err := os.Stat(s.MetadataPath); errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	return OpenMetadata(s.MetadataPath)
}
