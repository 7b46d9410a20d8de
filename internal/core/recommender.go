// ABOUTME: Recommendation queries against a built index
// ABOUTME: Ranks by descending similarity, breaks ties by position, never returns the query itself
package core

import (
	"cmp"
	"slices"

	"github.com/harper/talk-recommender/internal/models"
)

// Recommend returns the canonical keys of the n talks most similar to key.
// Unknown keys yield an empty slice and a *KeyNotFoundError; negative n
// yields an *InvalidArgumentError.
func (idx *Index) Recommend(key string, n int) ([]string, error) {
	recs, err := idx.RecommendScored(key, n)
	return models.Keys(recs), err
}

// RecommendScored is Recommend with scores, positions and display names
func (idx *Index) RecommendScored(key string, n int) ([]models.Recommendation, error) {
	if n < 0 {
		return []models.Recommendation{}, &InvalidArgumentError{Name: "n", Value: n}
	}

	canonical := Normalize(key)
	query, ok := idx.byKey[canonical]
	if !ok {
		return []models.Recommendation{}, &KeyNotFoundError{Key: key, Canonical: canonical}
	}

	limit := min(n, len(idx.docs)-1)
	if limit <= 0 {
		return []models.Recommendation{}, nil
	}

	scores := idx.sim.row(query)
	candidates := make([]int, 0, len(idx.docs)-1)
	for pos := range idx.docs {
		if pos != query {
			candidates = append(candidates, pos)
		}
	}
	slices.SortFunc(candidates, func(a, b int) int {
		if c := cmp.Compare(scores[b], scores[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	recs := make([]models.Recommendation, limit)
	for rank, pos := range candidates[:limit] {
		doc := idx.docs[pos]
		recs[rank] = models.Recommendation{
			Rank:        rank + 1,
			Key:         doc.CanonicalKey,
			DisplayName: DisplayName(doc.CanonicalKey),
			Position:    pos,
			Score:       scores[pos],
		}
	}
	return recs, nil
}

// KnownKeys returns every canonical key in ascending order
func (idx *Index) KnownKeys() []string {
	keys := make([]string, 0, len(idx.docs))
	for _, doc := range idx.docs {
		keys = append(keys, doc.CanonicalKey)
	}
	slices.Sort(keys)
	return keys
}
