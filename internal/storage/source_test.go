// ABOUTME: Tests for the CSV-backed corpus source
package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVSource(t *testing.T) {
	dir := t.TempDir()
	transcripts := filepath.Join(dir, "transcripts.csv")
	metadata := filepath.Join(dir, "ted_main.csv")
	require.NoError(t, os.WriteFile(transcripts, []byte(transcriptsFixture), 0o644))
	require.NoError(t, os.WriteFile(metadata, []byte(metadataFixture), 0o644))

	var src Source = NewCSVSource(transcripts, metadata)
	ctx := context.Background()

	docs, err := src.Documents(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	talks, err := src.Metadata(ctx)
	require.NoError(t, err)
	assert.Len(t, talks, 2)
}

func TestCSVSource_MissingMetadata(t *testing.T) {
	src := NewCSVSource("unused.csv", filepath.Join(t.TempDir(), "absent.csv"))
	talks, err := src.Metadata(context.Background())
	require.NoError(t, err)
	assert.Empty(t, talks)

	src.MetadataPath = ""
	talks, err = src.Metadata(context.Background())
	require.NoError(t, err)
	assert.Empty(t, talks)
}

func TestCSVSource_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewCSVSource("x", "y").Documents(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
