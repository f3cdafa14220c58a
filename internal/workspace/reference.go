package workspace

import (
	"fmt"
	"path"
	"time"

	"github.com/studiosync/studiosync/internal/cadsdk"
	"github.com/studiosync/studiosync/internal/sync"
	"github.com/studiosync/studiosync/internal/utils"
)

// RootKind says whether a synced root points at a remote folder hierarchy or a
// single document.
type RootKind string

const (
	RootFolder   RootKind = "folder"
	RootDocument RootKind = "document"
)

// Reference is a read-only synced root: refreshed only by pull, never a push
// target. AutoUpdate references refresh on every `ref update`; the rest only
// when forced.
type Reference struct {
	Name       string   `json:"name"`
	Kind       RootKind `json:"kind"`
	URL        string   `json:"url"`
	LocalPath  string   `json:"local_path"`
	ReadOnly   bool     `json:"read_only"`
	AutoUpdate bool     `json:"auto_update"`
	Recursive  bool     `json:"recursive"`
	LastSync   string   `json:"last_sync,omitempty"`

	// parsed from URL
	DocumentID  string `json:"document_id,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	FolderID    string `json:"folder_id,omitempty"`
}

// NewReference builds a reference from a platform URL. localPath may be empty,
// defaulting to references/<sanitized name>.
func NewReference(rawURL, name, localPath string, autoUpdate, recursive bool) (*Reference, error) {
	parsed, err := cadsdk.ParseURL(rawURL)
	if err != nil {
		return nil, err
	}

	var kind RootKind
	switch parsed.Kind {
	case cadsdk.URLKindFolder:
		kind = RootFolder
	case cadsdk.URLKindDocument:
		kind = RootDocument
	default:
		return nil, fmt.Errorf("reference must be a document or folder url, got %s", parsed.Kind)
	}

	if localPath == "" {
		localPath = path.Join("references", utils.SanitizeName(name))
	}

	return &Reference{
		Name:        name,
		Kind:        kind,
		URL:         rawURL,
		LocalPath:   localPath,
		ReadOnly:    true,
		AutoUpdate:  autoUpdate,
		Recursive:   recursive,
		DocumentID:  parsed.DocumentID,
		WorkspaceID: parsed.WorkspaceID,
		FolderID:    parsed.FolderID,
	}, nil
}

// Source converts the reference into an engine sync source.
func (r *Reference) Source() sync.Source {
	return sync.Source{
		Name:        r.Name,
		Kind:        sourceKind(r.Kind),
		FolderID:    r.FolderID,
		DocumentID:  r.DocumentID,
		WorkspaceID: r.WorkspaceID,
		LocalPath:   r.LocalPath,
		Recursive:   r.Recursive,
	}
}

// TouchSync stamps the reference with the current time.
func (r *Reference) TouchSync() {
	r.LastSync = time.Now().UTC().Format(time.RFC3339)
}

func sourceKind(kind RootKind) sync.SourceKind {
	if kind == RootFolder {
		return sync.SourceFolder
	}
	return sync.SourceDocument
}
