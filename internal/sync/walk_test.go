package sync

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiosync/studiosync/internal/cadsdk"
)

// deepChain builds root -> d0 ... with one document and one subfolder per level.
func deepChain(remote *fakeRemote, levels int) {
	parent := "root"
	for i := 0; i < levels; i++ {
		child := fmt.Sprintf("f%d", i)
		remote.folders[parent] = []cadsdk.FolderEntry{
			{ID: fmt.Sprintf("doc%d", i), Name: fmt.Sprintf("Doc %d", i), Kind: cadsdk.EntryKindDocument},
			{ID: child, Name: fmt.Sprintf("Level %d", i), Kind: cadsdk.EntryKindFolder},
		}
		parent = child
	}
}

func drain(t *testing.T, w *folderWalker) []docRef {
	t.Helper()
	var docs []docRef
	for {
		doc, err := w.Next(context.Background())
		require.NoError(t, err)
		if doc == nil {
			return docs
		}
		docs = append(docs, *doc)
	}
}

func TestFolderWalkerDepthBound(t *testing.T) {
	remote := newFakeRemote()
	deepChain(remote, 20)

	docs := drain(t, newFolderWalker(remote, "root", true, 3))

	// Depth 0 is the root itself; folders deeper than maxDepth are not entered.
	assert.Len(t, docs, 4)
	assert.Equal(t, "doc0", docs[0].ID)
	assert.Equal(t, "doc3", docs[3].ID)
}

func TestFolderWalkerNonRecursive(t *testing.T) {
	remote := newFakeRemote()
	deepChain(remote, 5)

	docs := drain(t, newFolderWalker(remote, "root", false, 10))
	assert.Len(t, docs, 1)
	assert.Equal(t, "doc0", docs[0].ID)
}

func TestFolderWalkerTracksHierarchyPath(t *testing.T) {
	remote := newFakeRemote()
	remote.folders["root"] = []cadsdk.FolderEntry{
		{ID: "sub", Name: "Shared", Kind: cadsdk.EntryKindFolder},
	}
	remote.folders["sub"] = []cadsdk.FolderEntry{
		{ID: "doc1", Name: "Widget", Kind: cadsdk.EntryKindDocument},
	}

	docs := drain(t, newFolderWalker(remote, "root", true, 10))
	require.Len(t, docs, 1)
	assert.Equal(t, "Shared", docs[0].FolderPath)
}

func TestFolderWalkerEmptyRoot(t *testing.T) {
	remote := newFakeRemote()
	docs := drain(t, newFolderWalker(remote, "root", true, 10))
	assert.Empty(t, docs)
}

func TestFolderWalkerListsLazily(t *testing.T) {
	remote := newFakeRemote()
	deepChain(remote, 5)
	for i := 0; i < 5; i++ {
		remote.addStudio(fmt.Sprintf("doc%d", i), "ws", fmt.Sprintf("el%d", i), "Main", "src", "mv1")
	}

	// Taking one document must not have listed the whole hierarchy.
	lister := &countingRemote{fakeRemote: remote}
	w := newFolderWalker(lister, "root", true, 10)
	doc, err := w.Next(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Equal(t, 1, lister.listCalls)
}

type countingRemote struct {
	*fakeRemote
	listCalls int
}

func (c *countingRemote) ListFolderEntries(ctx context.Context, folderID string) ([]cadsdk.FolderEntry, error) {
	c.listCalls++
	return c.fakeRemote.ListFolderEntries(ctx, folderID)
}
