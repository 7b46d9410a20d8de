// ABOUTME: Tests for atomic index publication in Engine
package core

import (
	"sync"
	"testing"

	"github.com/harper/talk-recommender/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEngine_NotReady(t *testing.T) {
	e := NewEngine(nil)
	assert.Nil(t, e.Current())

	got, err := e.Recommend("A", 1)
	assert.ErrorIs(t, err, ErrIndexNotReady)
	assert.Empty(t, got)
	assert.Empty(t, e.KnownKeys())
}

func TestEngine_Rebuild(t *testing.T) {
	first := buildTestIndex(t, abcCorpus())
	e := NewEngine(first)

	got, err := e.Recommend("A", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, got)

	next, err := e.Rebuild([]models.RawDocument{
		{RawKey: "A", Text: "lorem ipsum"},
		{RawKey: "B", Text: "quick fox"},
		{RawKey: "D", Text: "lorem ipsum dolor"},
	}, BuildOptions{})
	require.NoError(t, err)
	assert.Same(t, next, e.Current())

	got, err = e.Recommend("A", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"D"}, got)

	// the replaced index is untouched
	old, err := first.Recommend("A", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"B"}, old)
}

func TestEngine_FailedRebuildKeepsServing(t *testing.T) {
	first := buildTestIndex(t, abcCorpus())
	e := NewEngine(first)

	_, err := e.Rebuild(nil, BuildOptions{})
	require.ErrorIs(t, err, ErrEmptyCorpus)
	assert.Same(t, first, e.Current())
}

func TestEngine_ConcurrentSwap(t *testing.T) {
	a := buildTestIndex(t, abcCorpus())
	b := buildTestIndex(t, talkCorpus())
	e := NewEngine(a)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				idx := e.Current()
				keys := idx.KnownKeys()
				_, err := idx.Recommend(keys[0], 2)
				assert.NoError(t, err)
			}
		}()
		go func(i int) {
			defer wg.Done()
			if i%2 == 0 {
				e.Swap(b)
			} else {
				e.Swap(a)
			}
		}(i)
	}
	wg.Wait()
}
