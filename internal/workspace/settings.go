package workspace

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
	"github.com/studiosync/studiosync/internal/utils"
)

// SettingsFilename is the root configuration file of a sync workspace.
const SettingsFilename = ".studiosync.json"

const settingsVersion = "1.0"

// APIConfig points the workspace at a remote platform instance.
type APIConfig struct {
	BaseURL string `json:"base_url"`
}

// DocumentCacheEntry remembers the last seen version token of a remote
// document, used to decide whether a reference needs refreshing.
type DocumentCacheEntry struct {
	Name         string `json:"name"`
	Microversion string `json:"microversion"`
}

// Settings is the root workspace configuration: the remote endpoint, the
// read-only references and the bidirectional projects rooted here.
type Settings struct {
	Version       string                        `json:"version"`
	API           APIConfig                     `json:"api"`
	References    []*Reference                  `json:"references"`
	Projects      []*Project                    `json:"projects"`
	DocumentCache map[string]DocumentCacheEntry `json:"document_cache,omitempty"`
}

// LoadSettings reads the settings file at path, returning defaults when the
// file does not exist yet.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{Version: settingsVersion}, nil
		}
		return nil, fmt.Errorf("read settings %s: %w", path, err)
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode settings %s: %w", path, err)
	}
	if s.Version == "" {
		s.Version = settingsVersion
	}
	return &s, nil
}

// Save writes the settings back to path.
func (s *Settings) Save(path string) error {
	if err := utils.EnsureParent(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write settings %s: %w", path, err)
	}
	return nil
}

// GetReference returns the reference with the given name, or nil.
func (s *Settings) GetReference(name string) *Reference {
	for _, ref := range s.References {
		if ref.Name == name {
			return ref
		}
	}
	return nil
}

// GetProject returns the project with the given name, or nil.
func (s *Settings) GetProject(name string) *Project {
	for _, proj := range s.Projects {
		if proj.Name == name {
			return proj
		}
	}
	return nil
}

// AddReference inserts a reference, replacing any existing one with the same
// name.
func (s *Settings) AddReference(ref *Reference) {
	s.RemoveReference(ref.Name)
	s.References = append(s.References, ref)
}

// AddProject inserts a project, replacing any existing one with the same name.
func (s *Settings) AddProject(proj *Project) {
	s.RemoveProject(proj.Name)
	s.Projects = append(s.Projects, proj)
}

// RemoveReference drops a reference by name, reporting whether it existed.
func (s *Settings) RemoveReference(name string) bool {
	before := len(s.References)
	kept := s.References[:0]
	for _, ref := range s.References {
		if ref.Name != name {
			kept = append(kept, ref)
		}
	}
	s.References = kept
	return len(s.References) < before
}

// RemoveProject drops a project by name, reporting whether it existed.
func (s *Settings) RemoveProject(name string) bool {
	before := len(s.Projects)
	kept := s.Projects[:0]
	for _, proj := range s.Projects {
		if proj.Name != name {
			kept = append(kept, proj)
		}
	}
	s.Projects = kept
	return len(s.Projects) < before
}

// CacheDocumentVersion remembers the last seen version token of a document.
func (s *Settings) CacheDocumentVersion(documentID, name, microversion string) {
	if s.DocumentCache == nil {
		s.DocumentCache = map[string]DocumentCacheEntry{}
	}
	s.DocumentCache[documentID] = DocumentCacheEntry{Name: name, Microversion: microversion}
}

// CachedDocumentVersion returns the cached version token for a document, or "".
func (s *Settings) CachedDocumentVersion(documentID string) string {
	return s.DocumentCache[documentID].Microversion
}
