package workspace

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studiosync/studiosync/internal/cadsdk"
	"github.com/studiosync/studiosync/internal/sync"
)

// versionRemote serves only the version lookups the manager needs.
type versionRemote struct {
	versions map[string]string
}

func (r *versionRemote) ListFolderEntries(ctx context.Context, folderID string) ([]cadsdk.FolderEntry, error) {
	return nil, nil
}

func (r *versionRemote) ListElements(ctx context.Context, documentID, workspaceID, kindFilter string) ([]cadsdk.Element, error) {
	return nil, nil
}

func (r *versionRemote) GetStudioContent(ctx context.Context, documentID, workspaceID, elementID string) (*cadsdk.StudioContent, error) {
	return nil, nil
}

func (r *versionRemote) UpdateStudioContent(ctx context.Context, documentID, workspaceID, elementID, contents string) (string, error) {
	return "", nil
}

func (r *versionRemote) GetWorkspaceVersion(ctx context.Context, documentID, workspaceID string) (string, error) {
	return r.versions[documentID], nil
}

func (r *versionRemote) ResolveDefaultWorkspace(ctx context.Context, documentID string) (string, error) {
	return "ws1", nil
}

func (r *versionRemote) BaseURL() string { return "https://cad.example.com" }

var _ sync.RemoteStore = (*versionRemote)(nil)

func newTestManager(t *testing.T, remote sync.RemoteStore) *Manager {
	t.Helper()
	mgr, err := NewManager(t.TempDir(), remote)
	require.NoError(t, err)
	return mgr
}

func addRef(t *testing.T, mgr *Manager, name, localPath string) *Reference {
	t.Helper()
	ref, err := NewReference("https://cad.example.com/documents/d/doc1/w/ws1", name, localPath, false, true)
	require.NoError(t, err)
	mgr.Settings.AddReference(ref)
	return ref
}

func TestValidatePushAllowed(t *testing.T) {
	mgr := newTestManager(t, nil)
	addRef(t, mgr, "std", "references/std")

	assert.NoError(t, mgr.ValidatePushAllowed("projects/gears"))

	err := mgr.ValidatePushAllowed("references/std")
	require.Error(t, err, "the reference root itself is read-only")
	assert.True(t, sync.IsPolicyError(err))

	err = mgr.ValidatePushAllowed("references/std/nested/doc")
	require.Error(t, err, "paths nested under a reference are read-only")
	assert.True(t, sync.IsPolicyError(err))

	// Sibling with a common name prefix is not contained.
	assert.NoError(t, mgr.ValidatePushAllowed("references/std-fork"))
}

func TestReferenceNeedsUpdateNeverSynced(t *testing.T) {
	mgr := newTestManager(t, &versionRemote{versions: map[string]string{}})
	ref := addRef(t, mgr, "std", "")

	stale, err := mgr.ReferenceNeedsUpdate(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestReferenceNeedsUpdateVersionComparison(t *testing.T) {
	remote := &versionRemote{versions: map[string]string{"doc1": "mv2"}}
	mgr := newTestManager(t, remote)
	ref := addRef(t, mgr, "std", "")
	ref.TouchSync()

	mgr.Settings.CacheDocumentVersion("doc1", "std", "mv1")
	stale, err := mgr.ReferenceNeedsUpdate(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, stale, "cached token differs from live token")

	mgr.Settings.CacheDocumentVersion("doc1", "std", "mv2")
	stale, err = mgr.ReferenceNeedsUpdate(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, stale, "tokens equal, up to date")
}

func TestReferenceNeedsUpdateFolderAge(t *testing.T) {
	mgr := newTestManager(t, &versionRemote{versions: map[string]string{}})
	ref, err := NewReference("https://cad.example.com/documents/folder/f1", "team", "", false, true)
	require.NoError(t, err)
	mgr.Settings.AddReference(ref)

	ref.LastSync = time.Now().UTC().Format(time.RFC3339)
	stale, err := mgr.ReferenceNeedsUpdate(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, stale)

	ref.LastSync = time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339)
	stale, err = mgr.ReferenceNeedsUpdate(context.Background(), ref)
	require.NoError(t, err)
	assert.True(t, stale)
}

func TestRecordReferenceSyncResolvesDefaultWorkspace(t *testing.T) {
	remote := &versionRemote{versions: map[string]string{"doc1": "mv3"}}
	mgr := newTestManager(t, remote)

	// A bare document URL carries no workspace segment.
	ref, err := NewReference("https://cad.example.com/documents/d/doc1", "std", "", false, true)
	require.NoError(t, err)
	require.Empty(t, ref.WorkspaceID)
	mgr.Settings.AddReference(ref)

	mgr.RecordReferenceSync(context.Background(), ref)
	assert.Equal(t, "ws1", ref.WorkspaceID, "resolved default workspace is persisted")
	assert.Equal(t, "mv3", mgr.Settings.CachedDocumentVersion("doc1"))

	stale, err := mgr.ReferenceNeedsUpdate(context.Background(), ref)
	require.NoError(t, err)
	assert.False(t, stale, "a just-synced reference with an unchanged remote is up to date")
}

func TestRecordReferenceSync(t *testing.T) {
	remote := &versionRemote{versions: map[string]string{"doc1": "mv7"}}
	mgr := newTestManager(t, remote)
	ref := addRef(t, mgr, "std", "")

	mgr.RecordReferenceSync(context.Background(), ref)
	assert.NotEmpty(t, ref.LastSync)
	assert.Equal(t, "mv7", mgr.Settings.CachedDocumentVersion("doc1"))
}
