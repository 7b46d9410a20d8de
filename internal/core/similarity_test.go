// ABOUTME: Tests for the pairwise cosine similarity matrix
// ABOUTME: Verifies exact symmetry, diagonal semantics, and agreement with sparse dot products
package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCorpus() []string {
	return []string{
		"robots will learn to walk and robots will learn to talk",
		"learning machines walk the walk",
		"ocean tides follow the moon",
		"the and of",
		"moon landing footage and ocean waves",
		"robots robots robots",
		"",
	}
}

func TestBuildSimilarity_Symmetric(t *testing.T) {
	_, vectors, err := BuildIndex(testCorpus())
	require.NoError(t, err)
	m := BuildSimilarity(vectors)

	require.Equal(t, len(vectors), m.Size())
	for i := 0; i < m.Size(); i++ {
		for j := 0; j < m.Size(); j++ {
			assert.Equal(t, m.At(i, j), m.At(j, i), "M[%d][%d]", i, j)
		}
	}
}

func TestBuildSimilarity_Diagonal(t *testing.T) {
	_, vectors, err := BuildIndex(testCorpus())
	require.NoError(t, err)
	m := BuildSimilarity(vectors)

	for i, v := range vectors {
		if v.IsZero() {
			assert.Equal(t, 0.0, m.At(i, i), "zero vector %d", i)
			continue
		}
		assert.InDelta(t, 1.0, m.At(i, i), 1e-9, "vector %d", i)
	}
}

func TestBuildSimilarity_MatchesDot(t *testing.T) {
	_, vectors, err := BuildIndex(testCorpus())
	require.NoError(t, err)
	m := BuildSimilarity(vectors)

	for i := range vectors {
		for j := i + 1; j < len(vectors); j++ {
			got := m.At(i, j)
			assert.InDelta(t, vectors[i].Dot(vectors[j]), got, 1e-12)
			assert.GreaterOrEqual(t, got, 0.0)
			assert.LessOrEqual(t, got, 1.0+1e-12)
		}
	}
}

func TestBuildSimilarity_ZeroRowsAndColumns(t *testing.T) {
	_, vectors, err := BuildIndex(testCorpus())
	require.NoError(t, err)
	m := BuildSimilarity(vectors)

	zero := 3
	require.True(t, vectors[zero].IsZero())
	for j := 0; j < m.Size(); j++ {
		assert.Equal(t, 0.0, m.At(zero, j))
	}
}

func TestBuildSimilarity_Empty(t *testing.T) {
	m := BuildSimilarity(nil)
	assert.Equal(t, 0, m.Size())

	m = BuildSimilarity([]DocumentVector{{}, {}})
	assert.Equal(t, []float64{0, 0}, m.Row(0))
}

func TestBuildSimilarity_RowIsCopy(t *testing.T) {
	_, vectors, err := BuildIndex([]string{"alpha beta", "beta gamma"})
	require.NoError(t, err)
	m := BuildSimilarity(vectors)

	row := m.Row(0)
	row[1] = 42
	assert.NotEqual(t, 42.0, m.At(0, 1))
}

func TestBuildSimilarity_LargerCorpusDeterministic(t *testing.T) {
	corpus := make([]string, 120)
	for i := range corpus {
		corpus[i] = fmt.Sprintf("term%d term%d shared%d common", i%7, i%11, i%3)
	}
	_, vectors, err := BuildIndex(corpus)
	require.NoError(t, err)

	first := BuildSimilarity(vectors)
	second := BuildSimilarity(vectors)
	assert.Equal(t, first.cells, second.cells)
}
