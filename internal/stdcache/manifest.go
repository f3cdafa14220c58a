package stdcache

import (
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/studiosync/studiosync/internal/utils"
)

// ManifestFilename is the index file inside the standard library cache dir.
const ManifestFilename = "manifest.json"

const manifestVersion = "1.0"

// Entry records where a cached file came from and the version it was read at.
type Entry struct {
	DocumentID   string `json:"document_id"`
	WorkspaceID  string `json:"workspace_id,omitempty"`
	ElementID    string `json:"element_id"`
	Microversion string `json:"microversion"`
	FetchedAt    string `json:"fetched_at,omitempty"`
}

// Manifest indexes every cached standard library file by local filename.
type Manifest struct {
	Version     string            `json:"version"`
	LastUpdated string            `json:"last_updated,omitempty"`
	Documents   map[string]*Entry `json:"documents"`
}

// LoadManifest reads the manifest at path, returning an empty manifest when
// the file does not exist yet.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Manifest{Version: manifestVersion, Documents: map[string]*Entry{}}, nil
		}
		return nil, fmt.Errorf("read cache manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode cache manifest %s: %w", path, err)
	}
	if m.Version == "" {
		m.Version = manifestVersion
	}
	if m.Documents == nil {
		m.Documents = map[string]*Entry{}
	}
	return &m, nil
}

// Save writes the manifest back to path, stamping LastUpdated.
func (m *Manifest) Save(path string) error {
	m.LastUpdated = time.Now().UTC().Format(time.RFC3339)

	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode cache manifest: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write cache manifest %s: %w", path, err)
	}
	return nil
}
