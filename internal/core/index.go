// ABOUTME: Immutable index bundle holding documents, vocabulary, vectors and similarity matrix
// ABOUTME: Build runs the whole pipeline once; nothing in an Index is mutated afterwards
package core

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harper/talk-recommender/internal/models"
)

// DuplicatePolicy decides what Build does with documents sharing a canonical key
type DuplicatePolicy string

const (
	// DuplicateReject fails the build with a DuplicateKeyError
	DuplicateReject DuplicatePolicy = "reject"
	// DuplicateKeepFirst keeps the first document and logs a warning for each dropped one
	DuplicateKeepFirst DuplicatePolicy = "keep-first"
)

// ParseDuplicatePolicy parses a policy name, accepting "" as DuplicateReject
func ParseDuplicatePolicy(s string) (DuplicatePolicy, error) {
	switch DuplicatePolicy(strings.ToLower(strings.TrimSpace(s))) {
	case "", DuplicateReject:
		return DuplicateReject, nil
	case DuplicateKeepFirst:
		return DuplicateKeepFirst, nil
	default:
		return "", fmt.Errorf("unknown duplicate policy %q (want reject or keep-first)", s)
	}
}

// BuildOptions configures Build
type BuildOptions struct {
	Duplicates DuplicatePolicy
	Logger     *slog.Logger
}

func (o BuildOptions) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// Index is a complete, read-only recommendation index over one corpus.
// It is safe for concurrent use by any number of readers.
type Index struct {
	id            string
	builtAt       time.Time
	buildDuration time.Duration

	docs    []models.Document
	byKey   map[string]int
	vocab   *Vocabulary
	vectors []DocumentVector
	sim     *SimilarityMatrix
}

// IndexStats summarizes an index for diagnostics
type IndexStats struct {
	ID            string        `json:"id"`
	Documents     int           `json:"documents"`
	Vocabulary    int           `json:"vocabulary"`
	ZeroVectors   int           `json:"zero_vectors"`
	MatchingPairs int           `json:"matching_pairs"`
	BuiltAt       time.Time     `json:"built_at"`
	BuildDuration time.Duration `json:"build_duration"`
}

// Build normalizes keys, indexes the texts and computes the similarity matrix.
// Positions are assigned in input order after duplicate handling.
func Build(raw []models.RawDocument, opts BuildOptions) (*Index, error) {
	if len(raw) == 0 {
		return nil, ErrEmptyCorpus
	}
	log := opts.logger()
	policy := opts.Duplicates
	if policy == "" {
		policy = DuplicateReject
	}

	start := time.Now()

	docs, byKey, err := freezeDocuments(raw, policy, log)
	if err != nil {
		return nil, err
	}

	texts := make([]string, len(docs))
	for i, doc := range docs {
		texts[i] = doc.Text
	}

	vocab, vectors, err := BuildIndex(texts)
	if err != nil {
		return nil, fmt.Errorf("building vectors: %w", err)
	}
	log.Debug("vectors built", "documents", len(docs), "vocabulary", vocab.Len())

	sim := BuildSimilarity(vectors)

	idx := &Index{
		id:            uuid.New().String(),
		builtAt:       time.Now(),
		buildDuration: time.Since(start),
		docs:          docs,
		byKey:         byKey,
		vocab:         vocab,
		vectors:       vectors,
		sim:           sim,
	}
	log.Info("index built",
		"id", idx.id,
		"documents", len(docs),
		"vocabulary", vocab.Len(),
		"duration", idx.buildDuration)

	return idx, nil
}

func freezeDocuments(raw []models.RawDocument, policy DuplicatePolicy, log *slog.Logger) ([]models.Document, map[string]int, error) {
	docs := make([]models.Document, 0, len(raw))
	byKey := make(map[string]int, len(raw))
	firstSeen := make(map[string]int, len(raw))

	for i, r := range raw {
		key := Normalize(r.RawKey)
		if first, dup := firstSeen[key]; dup {
			if policy == DuplicateReject {
				return nil, nil, &DuplicateKeyError{Key: key, Positions: duplicatePositions(raw, key, first)}
			}
			log.Warn("dropping document with duplicate key", "key", key, "position", i, "kept_position", first)
			continue
		}
		firstSeen[key] = i
		byKey[key] = len(docs)
		docs = append(docs, models.Document{
			Position:     len(docs),
			RawKey:       r.RawKey,
			CanonicalKey: key,
			Text:         r.Text,
		})
	}

	return docs, byKey, nil
}

func duplicatePositions(raw []models.RawDocument, key string, first int) []int {
	positions := []int{first}
	for i := first + 1; i < len(raw); i++ {
		if Normalize(raw[i].RawKey) == key {
			positions = append(positions, i)
		}
	}
	return positions
}

// ID returns the unique identifier assigned at build time
func (idx *Index) ID() string { return idx.id }

// Len returns the number of indexed documents
func (idx *Index) Len() int { return len(idx.docs) }

// Vocabulary returns the read-only vocabulary
func (idx *Index) Vocabulary() *Vocabulary { return idx.vocab }

// Vector returns the document vector at position
func (idx *Index) Vector(position int) DocumentVector { return idx.vectors[position] }

// Similarity returns the read-only similarity matrix
func (idx *Index) Similarity() *SimilarityMatrix { return idx.sim }

// Document returns the document at position
func (idx *Index) Document(position int) models.Document { return idx.docs[position] }

// Lookup finds a document by raw or canonical key
func (idx *Index) Lookup(key string) (models.Document, bool) {
	pos, ok := idx.byKey[Normalize(key)]
	if !ok {
		return models.Document{}, false
	}
	return idx.docs[pos], true
}

// Stats reports index dimensions and build timing
func (idx *Index) Stats() IndexStats {
	stats := IndexStats{
		ID:            idx.id,
		Documents:     len(idx.docs),
		Vocabulary:    idx.vocab.Len(),
		BuiltAt:       idx.builtAt,
		BuildDuration: idx.buildDuration,
	}
	for _, v := range idx.vectors {
		if v.IsZero() {
			stats.ZeroVectors++
		}
	}
	for i := 0; i < idx.sim.n; i++ {
		for j := i + 1; j < idx.sim.n; j++ {
			if idx.sim.At(i, j) > 0 {
				stats.MatchingPairs++
			}
		}
	}
	return stats
}
