// ABOUTME: Similarity matrix builder computing pairwise cosine scores
// ABOUTME: Upper triangle is computed in parallel over an inverted index, then mirrored
package core

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"
)

// SimilarityMatrix is a dense, row-major, exactly symmetric N x N score matrix
type SimilarityMatrix struct {
	n     int
	cells []float64
}

// Size returns N
func (m *SimilarityMatrix) Size() int { return m.n }

// At returns M[i][j]
func (m *SimilarityMatrix) At(i, j int) float64 {
	return m.cells[i*m.n+j]
}

// Row returns a copy of row i
func (m *SimilarityMatrix) Row(i int) []float64 {
	row := make([]float64, m.n)
	copy(row, m.row(i))
	return row
}

func (m *SimilarityMatrix) row(i int) []float64 {
	return m.cells[i*m.n : (i+1)*m.n]
}

type posting struct {
	doc    int
	weight float64
}

// BuildSimilarity computes M[i][j] = dot(v_i, v_j) for unit-length vectors.
// The diagonal is 1 for non-zero vectors and 0 for zero vectors.
func BuildSimilarity(vectors []DocumentVector) *SimilarityMatrix {
	n := len(vectors)
	m := &SimilarityMatrix{n: n, cells: make([]float64, n*n)}
	if n == 0 {
		return m
	}

	// postings[col] lists documents containing col in ascending doc order
	postings := make(map[int][]posting)
	for doc, v := range vectors {
		for k, col := range v.Columns {
			postings[col] = append(postings[col], posting{doc: doc, weight: v.Weights[k]})
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > n {
		workers = n
	}

	var g errgroup.Group
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			acc := make([]float64, n)
			touched := make([]int, 0, n)
			// Strided rows balance the shrinking upper triangle across workers.
			for i := w; i < n; i += workers {
				m.fillRow(i, vectors[i], postings, acc, touched[:0])
			}
			return nil
		})
	}
	_ = g.Wait()

	return m
}

// fillRow writes cells (i, j) and (j, i) for every j > i.
// Each cell is written by exactly one row, so workers never overlap.
func (m *SimilarityMatrix) fillRow(i int, v DocumentVector, postings map[int][]posting, acc []float64, touched []int) {
	if v.IsZero() {
		return
	}
	m.cells[i*m.n+i] = 1

	for k, col := range v.Columns {
		w := v.Weights[k]
		list := postings[col]
		start := sort.Search(len(list), func(x int) bool { return list[x].doc > i })
		for _, p := range list[start:] {
			if acc[p.doc] == 0 {
				touched = append(touched, p.doc)
			}
			acc[p.doc] += w * p.weight
		}
	}

	for _, j := range touched {
		score := acc[j]
		m.cells[i*m.n+j] = score
		m.cells[j*m.n+i] = score
		acc[j] = 0
	}
}
