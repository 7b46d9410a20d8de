// ABOUTME: Corpus loading from any Source into a built recommendation index
package storage

import (
	"context"
	"fmt"

	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/models"
)

// Corpus is a built index together with the talk metadata loaded beside it
type Corpus struct {
	Index    *core.Index
	Metadata []models.TalkMetadata
}

// LoadCorpus reads documents and metadata from src and builds an index.
// Metadata failures are returned; an absent metadata file is not a failure.
func LoadCorpus(ctx context.Context, src Source, opts core.BuildOptions) (*Corpus, error) {
	docs, err := src.Documents(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading documents: %w", err)
	}

	meta, err := src.Metadata(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading metadata: %w", err)
	}

	idx, err := core.Build(docs, opts)
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}

	return &Corpus{Index: idx, Metadata: meta}, nil
}
