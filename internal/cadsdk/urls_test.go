package cadsdk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURL(t *testing.T) {
	t.Run("document with workspace and element", func(t *testing.T) {
		p, err := ParseURL("https://cad.example.com/documents/d/abc123/w/ws456/e/el789")
		require.NoError(t, err)
		assert.Equal(t, URLKindElement, p.Kind)
		assert.Equal(t, "https://cad.example.com", p.BaseURL)
		assert.Equal(t, "abc123", p.DocumentID)
		assert.Equal(t, "ws456", p.WorkspaceID)
		assert.Equal(t, "el789", p.ElementID)
	})

	t.Run("document only", func(t *testing.T) {
		p, err := ParseURL("https://cad.example.com/documents/d/abc123")
		require.NoError(t, err)
		assert.Equal(t, URLKindDocument, p.Kind)
		assert.Equal(t, "abc123", p.DocumentID)
		assert.Empty(t, p.WorkspaceID)
	})

	t.Run("folder", func(t *testing.T) {
		p, err := ParseURL("https://corp.example.com/documents/folder/f-12_ab")
		require.NoError(t, err)
		assert.Equal(t, URLKindFolder, p.Kind)
		assert.Equal(t, "f-12_ab", p.FolderID)
		assert.Equal(t, "https://corp.example.com", p.BaseURL)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := ParseURL("not-a-url")
		assert.Error(t, err)

		_, err = ParseURL("https://cad.example.com/something/else")
		assert.Error(t, err)
	})
}

func TestBuildDocumentURL(t *testing.T) {
	assert.Equal(t,
		"https://cad.example.com/documents/d/abc/w/ws",
		BuildDocumentURL("https://cad.example.com", "abc", "ws", ""))
	assert.Equal(t,
		"https://cad.example.com/documents/d/abc/w/ws/e/el",
		BuildDocumentURL("https://cad.example.com", "abc", "ws", "el"))

	// Built URLs parse back to the same addressing.
	parsed, err := ParseURL(BuildDocumentURL("https://cad.example.com", "abc", "ws", ""))
	require.NoError(t, err)
	assert.Equal(t, "abc", parsed.DocumentID)
	assert.Equal(t, "ws", parsed.WorkspaceID)
}
