package workspace

import (
	"fmt"
	"path"
	"time"

	"github.com/studiosync/studiosync/internal/cadsdk"
	"github.com/studiosync/studiosync/internal/sync"
	"github.com/studiosync/studiosync/internal/utils"
)

// Project is a bidirectional synced root: both pull and push are allowed.
// LastPull/LastPush are audit stamps recorded only after at least one file
// transferred and the command was not a dry run.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Kind        RootKind `json:"kind"`
	URL         string   `json:"url"`
	LocalPath   string   `json:"local_path"`
	References  []string `json:"references,omitempty"`
	Recursive   bool     `json:"recursive"`
	LastPull    string   `json:"last_pull,omitempty"`
	LastPush    string   `json:"last_push,omitempty"`

	// parsed from URL
	DocumentID  string `json:"document_id,omitempty"`
	WorkspaceID string `json:"workspace_id,omitempty"`
	FolderID    string `json:"folder_id,omitempty"`
}

// NewProject builds a project from a platform URL. localPath may be empty,
// defaulting to projects/<sanitized name>.
func NewProject(rawURL, name, description, localPath string, references []string) (*Project, error) {
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
		return nil, fmt.Errorf("project must be a document or folder url, got %s", parsed.Kind)
	}

	if localPath == "" {
		localPath = path.Join("projects", utils.SanitizeName(name))
	}
	if description == "" {
		description = "working project: " + name
	}

	return &Project{
		Name:        name,
		Description: description,
		Kind:        kind,
		URL:         rawURL,
		LocalPath:   localPath,
		References:  references,
		Recursive:   true,
		DocumentID:  parsed.DocumentID,
		WorkspaceID: parsed.WorkspaceID,
		FolderID:    parsed.FolderID,
	}, nil
}

// Source converts the project into an engine sync source.
func (p *Project) Source() sync.Source {
	return sync.Source{
		Name:        p.Name,
		Kind:        sourceKind(p.Kind),
		FolderID:    p.FolderID,
		DocumentID:  p.DocumentID,
		WorkspaceID: p.WorkspaceID,
		LocalPath:   p.LocalPath,
		Recursive:   p.Recursive,
	}
}

// TouchPull stamps the last successful pull time.
func (p *Project) TouchPull() {
	p.LastPull = time.Now().UTC().Format(time.RFC3339)
}

// TouchPush stamps the last successful push time.
func (p *Project) TouchPush() {
	p.LastPush = time.Now().UTC().Format(time.RFC3339)
}
