// ABOUTME: Document models for the talk corpus
// ABOUTME: RawDocument is loader output; Document is the frozen, indexed corpus entry
package models

// RawDocument is one (raw_key, text) pair supplied by a corpus loader
type RawDocument struct {
	RawKey string `json:"raw_key"`
	Text   string `json:"text"`
}

// Document is a corpus entry after key normalization.
// Position is the row/column address into the vector and similarity matrices.
type Document struct {
	Position     int    `json:"position"`
	RawKey       string `json:"raw_key"`
	CanonicalKey string `json:"canonical_key"`
	Text         string `json:"-"`
}
