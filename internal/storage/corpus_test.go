// ABOUTME: Tests for loading a corpus source into an index
package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/harper/talk-recommender/internal/core"
	"github.com/harper/talk-recommender/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	docs    []models.RawDocument
	meta    []models.TalkMetadata
	docErr  error
	metaErr error
}

func (f *fakeSource) Documents(context.Context) ([]models.RawDocument, error) {
	return f.docs, f.docErr
}

func (f *fakeSource) Metadata(context.Context) ([]models.TalkMetadata, error) {
	return f.meta, f.metaErr
}

func TestLoadCorpus(t *testing.T) {
	src := &fakeSource{
		docs: []models.RawDocument{{RawKey: "A", Text: "quick fox"}, {RawKey: "B", Text: "quick dog"}},
		meta: []models.TalkMetadata{{Key: "A", Title: "Alpha"}},
	}

	c, err := LoadCorpus(context.Background(), src, core.BuildOptions{})
	require.NoError(t, err)
	assert.Equal(t, 2, c.Index.Len())
	assert.Len(t, c.Metadata, 1)
}

func TestLoadCorpus_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := LoadCorpus(ctx, &fakeSource{docErr: boom}, core.BuildOptions{})
	assert.ErrorIs(t, err, boom)

	_, err = LoadCorpus(ctx, &fakeSource{docs: []models.RawDocument{{RawKey: "A"}}, metaErr: boom}, core.BuildOptions{})
	assert.ErrorIs(t, err, boom)

	_, err = LoadCorpus(ctx, &fakeSource{}, core.BuildOptions{})
	assert.ErrorIs(t, err, core.ErrEmptyCorpus)
}
