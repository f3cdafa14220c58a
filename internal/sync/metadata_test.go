package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocumentMetadataAbsent(t *testing.T) {
	meta, err := LoadDocumentMetadata(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestDocumentMetadataRoundTrip(t *testing.T) {
	dir := t.TempDir()

	meta := &DocumentMetadata{
		DocumentID:   "doc1",
		WorkspaceID:  "ws1",
		DocumentName: "Widget Library",
		FolderPath:   "team/shared",
		URL:          "https://cad.example.com/documents/d/doc1/w/ws1",
		FeatureStudios: map[string]string{
			"Widget": "el1",
			"Gears":  "el2",
		},
	}
	require.NoError(t, meta.Save(dir))
	assert.NotEmpty(t, meta.LastSync, "Save stamps the sync time")

	loaded, err := LoadDocumentMetadata(dir)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "doc1", loaded.DocumentID)
	assert.Equal(t, "ws1", loaded.WorkspaceID)
	assert.Equal(t, "Widget Library", loaded.DocumentName)
	assert.Equal(t, "el1", loaded.FeatureStudios["Widget"])
	assert.Equal(t, "el2", loaded.FeatureStudios["Gears"])
}

func TestDocumentMetadataDefaultsStudioMap(t *testing.T) {
	dir := t.TempDir()
	meta := &DocumentMetadata{DocumentID: "doc1", WorkspaceID: "ws1"}
	require.NoError(t, meta.Save(dir))

	loaded, err := LoadDocumentMetadata(dir)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.NotNil(t, loaded.FeatureStudios)
}
