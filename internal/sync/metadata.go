package sync

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-json"
)

// MetadataFilename is the sidecar written into every synced document directory.
const MetadataFilename = ".document.json"

// DocumentMetadata maps a local document directory back to its remote
// addressing. It is created on first successful pull and consulted, never
// guessed, when resolving a local filename to a remote element on push.
type DocumentMetadata struct {
	DocumentID     string            `json:"document_id"`
	WorkspaceID    string            `json:"workspace_id"`
	DocumentName   string            `json:"document_name"`
	FolderPath     string            `json:"folder_path"`
	URL            string            `json:"url"`
	LastSync       string            `json:"last_sync"`
	FeatureStudios map[string]string `json:"feature_studios"`
}

// LoadDocumentMetadata reads the sidecar from dir. Returns (nil, nil) when the
// sidecar does not exist.
func LoadDocumentMetadata(dir string) (*DocumentMetadata, error) {
	data, err := os.ReadFile(filepath.Join(dir, MetadataFilename))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read document metadata: %w", err)
	}

	var meta DocumentMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode document metadata in %s: %w", dir, err)
	}
	if meta.FeatureStudios == nil {
		meta.FeatureStudios = map[string]string{}
	}
	return &meta, nil
}

// Save writes the sidecar into dir, stamping LastSync.
func (m *DocumentMetadata) Save(dir string) error {
	m.LastSync = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document metadata: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(filepath.Join(dir, MetadataFilename), data, 0o644); err != nil {
		return fmt.Errorf("write document metadata: %w", err)
	}
	return nil
}
