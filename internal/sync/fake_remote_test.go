package sync

import (
	"context"
	"fmt"

	"github.com/studiosync/studiosync/internal/cadsdk"
)

// fakeRemote is an in-memory RemoteStore. Tests mutate its maps directly to
// simulate remote edits between runs.
type fakeRemote struct {
	folders    map[string][]cadsdk.FolderEntry
	elements   map[string][]cadsdk.Element         // documentID -> elements
	contents   map[string]*cadsdk.StudioContent    // elementID -> content
	versions   map[string]string                   // documentID -> microversion
	workspaces map[string]string                   // documentID -> default workspace

	updateCalls  int
	contentCalls int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		folders:    map[string][]cadsdk.FolderEntry{},
		elements:   map[string][]cadsdk.Element{},
		contents:   map[string]*cadsdk.StudioContent{},
		versions:   map[string]string{},
		workspaces: map[string]string{},
	}
}

// addStudio registers a document with one feature studio and seeds its content.
func (f *fakeRemote) addStudio(documentID, workspaceID, elementID, name, contents, microversion string) {
	f.workspaces[documentID] = workspaceID
	f.versions[documentID] = microversion
	f.elements[documentID] = append(f.elements[documentID], cadsdk.Element{ID: elementID, Name: name})
	f.contents[elementID] = &cadsdk.StudioContent{Contents: contents, Microversion: microversion}
}

// bumpStudio simulates a remote edit: new content and a new version token.
func (f *fakeRemote) bumpStudio(documentID, elementID, contents, microversion string) {
	f.versions[documentID] = microversion
	f.contents[elementID] = &cadsdk.StudioContent{Contents: contents, Microversion: microversion}
}

func (f *fakeRemote) ListFolderEntries(ctx context.Context, folderID string) ([]cadsdk.FolderEntry, error) {
	return f.folders[folderID], nil
}

func (f *fakeRemote) ListElements(ctx context.Context, documentID, workspaceID, kindFilter string) ([]cadsdk.Element, error) {
	return f.elements[documentID], nil
}

func (f *fakeRemote) GetStudioContent(ctx context.Context, documentID, workspaceID, elementID string) (*cadsdk.StudioContent, error) {
	f.contentCalls++
	content, ok := f.contents[elementID]
	if !ok {
		return nil, fmt.Errorf("no such element %s", elementID)
	}
	return content, nil
}

func (f *fakeRemote) UpdateStudioContent(ctx context.Context, documentID, workspaceID, elementID, contents string) (string, error) {
	f.updateCalls++
	newVersion := f.versions[documentID] + "+1"
	f.versions[documentID] = newVersion
	f.contents[elementID] = &cadsdk.StudioContent{Contents: contents, Microversion: newVersion}
	return newVersion, nil
}

func (f *fakeRemote) GetWorkspaceVersion(ctx context.Context, documentID, workspaceID string) (string, error) {
	return f.versions[documentID], nil
}

func (f *fakeRemote) ResolveDefaultWorkspace(ctx context.Context, documentID string) (string, error) {
	ws, ok := f.workspaces[documentID]
	if !ok {
		return "", fmt.Errorf("no such document %s", documentID)
	}
	return ws, nil
}

func (f *fakeRemote) BaseURL() string {
	return "https://cad.example.com"
}

var _ RemoteStore = (*fakeRemote)(nil)
