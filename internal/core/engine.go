// ABOUTME: Engine publishes the current index and swaps in rebuilt ones atomically
// ABOUTME: Readers never lock; a failed rebuild leaves the previous index serving
package core

import (
	"sync/atomic"

	"github.com/harper/talk-recommender/internal/models"
)

// Engine holds the index currently used to answer queries
type Engine struct {
	current atomic.Pointer[Index]
}

// NewEngine creates an engine serving idx (which may be nil until the first Swap)
func NewEngine(idx *Index) *Engine {
	e := &Engine{}
	if idx != nil {
		e.current.Store(idx)
	}
	return e
}

// Current returns the index being served, or nil
func (e *Engine) Current() *Index {
	return e.current.Load()
}

// Swap installs idx and returns the index it replaced
func (e *Engine) Swap(idx *Index) *Index {
	return e.current.Swap(idx)
}

// Rebuild builds a complete new index from docs and swaps it in on success
func (e *Engine) Rebuild(docs []models.RawDocument, opts BuildOptions) (*Index, error) {
	idx, err := Build(docs, opts)
	if err != nil {
		return nil, err
	}
	e.Swap(idx)
	return idx, nil
}

// Recommend queries the current index
func (e *Engine) Recommend(key string, n int) ([]string, error) {
	idx := e.Current()
	if idx == nil {
		return []string{}, ErrIndexNotReady
	}
	return idx.Recommend(key, n)
}

// RecommendScored queries the current index with scores
func (e *Engine) RecommendScored(key string, n int) ([]models.Recommendation, error) {
	idx := e.Current()
	if idx == nil {
		return []models.Recommendation{}, ErrIndexNotReady
	}
	return idx.RecommendScored(key, n)
}

// KnownKeys lists the keys of the current index
func (e *Engine) KnownKeys() []string {
	idx := e.Current()
	if idx == nil {
		return []string{}
	}
	return idx.KnownKeys()
}
