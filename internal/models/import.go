// ABOUTME: Import audit record written whenever the corpus store is replaced
package models

import "time"

// Import kinds
const (
	ImportTranscripts = "transcripts"
	ImportMetadata    = "metadata"
)

// ImportRecord describes one completed import into the corpus store
type ImportRecord struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Source     string    `json:"source,omitempty"`
	Rows       int       `json:"rows"`
	ImportedAt time.Time `json:"imported_at"`
}
