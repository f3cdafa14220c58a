package sync

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/goccy/go-json"
	"github.com/gofrs/flock"
	"github.com/studiosync/studiosync/internal/utils"
)

const stateVersion = "1.0"

// FileState records what a file looked like at its last successful transfer.
// A path absent from the store has never been synced.
type FileState struct {
	LocalHash     string `json:"local_hash"`
	RemoteVersion string `json:"remote_version"`
	LastSync      string `json:"last_sync"`
	ElementID     string `json:"element_id"`
	DocumentID    string `json:"document_id"`
	WorkspaceID   string `json:"workspace_id"`
}

type stateData struct {
	Version string                `json:"version"`
	Files   map[string]*FileState `json:"files"`
}

// StateStore is a durable mapping from normalized relative path to FileState,
// serialized wholesale as JSON. Loading is lazy; Save writes everything. The
// store does no internal locking - callers must serialize access. A file lock
// guards against a second CLI run saving concurrently.
type StateStore struct {
	path  string
	state *stateData
}

// NewStateStore creates a store backed by the JSON file at path. Nothing is
// read until first access.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

func (s *StateStore) load() error {
	if s.state != nil {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.state = &stateData{Version: stateVersion, Files: map[string]*FileState{}}
			return nil
		}
		return fmt.Errorf("read state file %s: %w", s.path, err)
	}

	var st stateData
	if err := json.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("decode state file %s: %w", s.path, err)
	}
	if st.Version == "" {
		st.Version = stateVersion
	}
	if st.Files == nil {
		st.Files = map[string]*FileState{}
	}
	s.state = &st
	return nil
}

// Get returns the tracked state for a path, or nil if the path has never been
// synced.
func (s *StateStore) Get(path string) (*FileState, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	return s.state.Files[path], nil
}

// Set records the state for a path. It does not persist; call Save.
func (s *StateStore) Set(path string, state *FileState) error {
	if err := s.load(); err != nil {
		return err
	}
	s.state.Files[path] = state
	return nil
}

// Update records a successful transfer for a path, stamping it with the
// current time.
func (s *StateStore) Update(path, localHash, remoteVersion, elementID, documentID, workspaceID string) error {
	return s.Set(path, &FileState{
		LocalHash:     localHash,
		RemoteVersion: remoteVersion,
		LastSync:      time.Now().UTC().Format(time.RFC3339),
		ElementID:     elementID,
		DocumentID:    documentID,
		WorkspaceID:   workspaceID,
	})
}

// Remove deletes the tracked state for a path. Absence is never inferred from
// the filesystem; this is the only way an entry goes away.
func (s *StateStore) Remove(path string) error {
	if err := s.load(); err != nil {
		return err
	}
	delete(s.state.Files, path)
	return nil
}

// Paths returns all tracked paths, sorted.
func (s *StateStore) Paths() ([]string, error) {
	if err := s.load(); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(s.state.Files))
	for p := range s.state.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

// Count returns the number of tracked files.
func (s *StateStore) Count() (int, error) {
	if err := s.load(); err != nil {
		return 0, err
	}
	return len(s.state.Files), nil
}

// Save serializes the whole store back to disk under a file lock.
func (s *StateStore) Save() error {
	if err := s.load(); err != nil {
		return err
	}
	if err := utils.EnsureParent(s.path); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("lock state file: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write state file %s: %w", s.path, err)
	}
	return nil
}
