// ABOUTME: Vector space indexer building the vocabulary and TF-IDF document vectors
// ABOUTME: Vectors are sparse, sorted by column, and L2-normalized to unit length
package core

import (
	"math"
	"sort"
)

// Vocabulary is the sorted set of retained terms with a stable term -> column mapping
type Vocabulary struct {
	terms   []string
	columns map[string]int
}

func newVocabulary(terms []string) *Vocabulary {
	sort.Strings(terms)
	columns := make(map[string]int, len(terms))
	for i, term := range terms {
		columns[term] = i
	}
	return &Vocabulary{terms: terms, columns: columns}
}

// Len returns the number of terms
func (v *Vocabulary) Len() int {
	if v == nil {
		return 0
	}
	return len(v.terms)
}

// Column returns the column assigned to term
func (v *Vocabulary) Column(term string) (int, bool) {
	if v == nil {
		return 0, false
	}
	col, ok := v.columns[term]
	return col, ok
}

// Term returns the term at column col
func (v *Vocabulary) Term(col int) string {
	return v.terms[col]
}

// DocumentVector is a sparse TF-IDF vector. Columns are strictly ascending;
// Weights[i] belongs to Columns[i]. A zero vector has no entries.
type DocumentVector struct {
	Columns []int
	Weights []float64
}

// Len returns the number of non-zero entries
func (d DocumentVector) Len() int { return len(d.Columns) }

// IsZero reports whether the vector has no retained terms
func (d DocumentVector) IsZero() bool { return len(d.Columns) == 0 }

// Norm returns the L2 norm
func (d DocumentVector) Norm() float64 {
	var sum float64
	for _, w := range d.Weights {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot returns the dot product of two sparse vectors.
// Products are summed in ascending column order.
func (d DocumentVector) Dot(o DocumentVector) float64 {
	var dot float64
	i, j := 0, 0
	for i < len(d.Columns) && j < len(o.Columns) {
		switch {
		case d.Columns[i] == o.Columns[j]:
			dot += d.Weights[i] * o.Weights[j]
			i++
			j++
		case d.Columns[i] < o.Columns[j]:
			i++
		default:
			j++
		}
	}
	return dot
}

// SmoothedIDF computes ln((1+n)/(1+df)) + 1
func SmoothedIDF(n, df int) float64 {
	return math.Log(float64(1+n)/float64(1+df)) + 1
}

// BuildIndex tokenizes every text, builds the vocabulary and returns one
// unit-length TF-IDF vector per text, aligned by position.
func BuildIndex(texts []string) (*Vocabulary, []DocumentVector, error) {
	if len(texts) == 0 {
		return nil, nil, ErrEmptyCorpus
	}

	counts := make([]map[string]int, len(texts))
	docFreq := make(map[string]int)
	for i, text := range texts {
		tf := make(map[string]int)
		for _, term := range Tokenize(text) {
			tf[term]++
		}
		for term := range tf {
			docFreq[term]++
		}
		counts[i] = tf
	}

	terms := make([]string, 0, len(docFreq))
	for term := range docFreq {
		terms = append(terms, term)
	}
	vocab := newVocabulary(terms)

	idf := make([]float64, vocab.Len())
	for col, term := range vocab.terms {
		idf[col] = SmoothedIDF(len(texts), docFreq[term])
	}

	vectors := make([]DocumentVector, len(texts))
	for i, tf := range counts {
		vectors[i] = weightVector(tf, vocab, idf)
	}

	return vocab, vectors, nil
}

// weightVector applies tf * idf to one document's term counts and normalizes it
func weightVector(tf map[string]int, vocab *Vocabulary, idf []float64) DocumentVector {
	if len(tf) == 0 {
		return DocumentVector{}
	}

	columns := make([]int, 0, len(tf))
	for term := range tf {
		columns = append(columns, vocab.columns[term])
	}
	sort.Ints(columns)

	weights := make([]float64, len(columns))
	var sum float64
	for i, col := range columns {
		w := float64(tf[vocab.terms[col]]) * idf[col]
		weights[i] = w
		sum += w * w
	}

	norm := math.Sqrt(sum)
	for i := range weights {
		weights[i] /= norm
	}

	return DocumentVector{Columns: columns, Weights: weights}
}
