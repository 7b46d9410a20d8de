// ABOUTME: CSV corpus loaders for talk transcripts and talk metadata
// ABOUTME: Columns are located by header name so column order and extras do not matter
package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/models"
)

// ErrMissingColumn is returned when a required header column is absent
var ErrMissingColumn = errors.New("missing required column")

var metadataColumns = []string{
	"comments", "description", "duration", "event", "languages",
	"main_speaker", "name", "num_speaker", "title", "url", "views",
}

// header maps lower-cased column names to their field index
type header map[string]int

func readHeader(r *csv.Reader, required ...string) (header, error) {
	names, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("reading header: empty file")
		}
		return nil, fmt.Errorf("reading header: %w", err)
	}

	h := make(header, len(names))
	for i, name := range names {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	for _, col := range required {
		if _, ok := h[col]; !ok {
			return nil, fmt.Errorf("%w %q", ErrMissingColumn, col)
		}
	}
	return h, nil
}

func (h header) get(record []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false
	return cr
}

// LoadTranscriptsCSV reads (url, transcript) rows in file order.
// The url column is the raw key; the transcript column is the text.
func LoadTranscriptsCSV(r io.Reader) ([]models.RawDocument, error) {
	cr := newReader(r)
	h, err := readHeader(cr, "transcript", "url")
	if err != nil {
		return nil, err
	}

	var docs []models.RawDocument
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading transcripts: %w", err)
		}
		docs = append(docs, models.RawDocument{
			RawKey: h.get(record, "url"),
			Text:   h.get(record, "transcript"),
		})
	}
	return docs, nil
}

// LoadMetadataCSV reads talk metadata rows. Blank numeric cells are 0;
// malformed numbers are an error naming the line.
func LoadMetadataCSV(r io.Reader) ([]models.TalkMetadata, error) {
	cr := newReader(r)
	h, err := readHeader(cr, "title", "url", "main_speaker")
	if err != nil {
		return nil, err
	}

	var talks []models.TalkMetadata
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading metadata: %w", err)
		}
		line, _ := cr.FieldPos(0)

		talk := models.TalkMetadata{
			Key:         core.Normalize(strings.TrimSpace(h.get(record, "url"))),
			Title:       strings.TrimSpace(h.get(record, "title")),
			Name:        strings.TrimSpace(h.get(record, "name")),
			MainSpeaker: strings.TrimSpace(h.get(record, "main_speaker")),
			Event:       strings.TrimSpace(h.get(record, "event")),
			Description: strings.TrimSpace(h.get(record, "description")),
			URL:         strings.TrimSpace(h.get(record, "url")),
		}
		counters := []struct {
			col string
			dst *int64
		}{
			{"comments", &talk.Comments},
			{"views", &talk.Views},
			{"duration", &talk.Duration},
			{"languages", &talk.Languages},
			{"num_speaker", &talk.NumSpeaker},
		}
		for _, c := range counters {
			v, err := parseCount(h.get(record, c.col))
			if err != nil {
				return nil, fmt.Errorf("line %d column %s: %w", line, c.col, err)
			}
			*c.dst = v
		}
		if err := talk.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		talks = append(talks, talk)
	}
	return talks, nil
}

func parseCount(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return v, nil
	}
	// some exports write integral counters as floats ("12.0")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return int64(f), nil
}

// OpenTranscripts loads a transcripts CSV file
func OpenTranscripts(path string) ([]models.RawDocument, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening transcripts: %w", err)
	}
	defer f.Close()

	docs, err := LoadTranscriptsCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return docs, nil
}

// OpenMetadata loads a talk metadata CSV file
func OpenMetadata(path string) ([]models.TalkMetadata, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening metadata: %w", err)
	}
	defer f.Close()

	talks, err := LoadMetadataCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return talks, nil
}
