package stdcache

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/studiosync/studiosync/internal/sync"
	"github.com/studiosync/studiosync/internal/utils"
)

// importPrefix is stripped from import paths so "std/geometry.fs" and
// "geometry.fs" name the same cached file.
const importPrefix = "std/"

// ErrNotCached is returned when an import cannot be served from the cache and
// fetching was not requested or not possible.
var ErrNotCached = errors.New("stdcache: file not cached")

// Manager keeps a local mirror of standard library feature studios so imports
// resolve without an API round trip. Files are fetched lazily: a lookup hits
// the remote only when the file is missing from the cache dir.
type Manager struct {
	stdDir   string
	remote   sync.RemoteStore
	manifest *Manifest
}

// NewManager creates a cache manager rooted at stdDir. remote may be nil for
// read-only use (Cached, Status).
func NewManager(stdDir string, remote sync.RemoteStore) *Manager {
	return &Manager{stdDir: stdDir, remote: remote}
}

func (m *Manager) load() error {
	if m.manifest != nil {
		return nil
	}
	manifest, err := LoadManifest(m.manifestPath())
	if err != nil {
		return err
	}
	m.manifest = manifest
	return nil
}

func (m *Manager) save() error {
	return m.manifest.Save(m.manifestPath())
}

func (m *Manager) manifestPath() string {
	return filepath.Join(m.stdDir, ManifestFilename)
}

func (m *Manager) filePath(filename string) string {
	return filepath.Join(m.stdDir, filename)
}

// normalize maps an import path to its cache filename.
func normalize(importPath string) string {
	return strings.TrimPrefix(importPath, importPrefix)
}

// IsCached reports whether a file is present both on disk and in the manifest.
func (m *Manager) IsCached(filename string) (bool, error) {
	if err := m.load(); err != nil {
		return false, err
	}
	filename = normalize(filename)
	_, known := m.manifest.Documents[filename]
	return known && utils.FileExists(m.filePath(filename)), nil
}

// Cached returns the cached contents of a file without any remote call.
// ok is false when the file is not cached.
func (m *Manager) Cached(filename string) (contents string, ok bool, err error) {
	cached, err := m.IsCached(filename)
	if err != nil || !cached {
		return "", false, err
	}
	data, err := os.ReadFile(m.filePath(normalize(filename)))
	if err != nil {
		return "", false, fmt.Errorf("read cached file: %w", err)
	}
	return string(data), true, nil
}

// ResolveImport serves an import path from the cache, fetching and caching it
// on a miss when fetchIfMissing is set. A miss without fetching returns
// ErrNotCached.
func (m *Manager) ResolveImport(ctx context.Context, importPath string, fetchIfMissing bool) (string, error) {
	filename := normalize(importPath)

	contents, ok, err := m.Cached(filename)
	if err != nil {
		return "", err
	}
	if ok {
		return contents, nil
	}

	if !fetchIfMissing {
		return "", fmt.Errorf("%w: %s", ErrNotCached, filename)
	}
	return m.FetchAndCache(ctx, filename)
}

// Add seeds a manifest entry with known remote addressing without fetching.
func (m *Manager) Add(filename, documentID, elementID, workspaceID string) error {
	if err := m.load(); err != nil {
		return err
	}
	m.manifest.Documents[normalize(filename)] = &Entry{
		DocumentID:  documentID,
		WorkspaceID: workspaceID,
		ElementID:   elementID,
	}
	return m.save()
}

// FetchAndCache downloads one file using its manifest addressing and writes it
// into the cache dir. The file must have been seeded with Add (or cached by an
// earlier fetch); addressing is never guessed.
func (m *Manager) FetchAndCache(ctx context.Context, filename string) (string, error) {
	if err := m.load(); err != nil {
		return "", err
	}
	filename = normalize(filename)

	entry := m.manifest.Documents[filename]
	if entry == nil {
		return "", fmt.Errorf("%w: %s is not in the cache manifest - add it first", ErrNotCached, filename)
	}
	if m.remote == nil {
		return "", fmt.Errorf("fetch %s: no remote store configured", filename)
	}

	if entry.WorkspaceID == "" {
		workspaceID, err := m.remote.ResolveDefaultWorkspace(ctx, entry.DocumentID)
		if err != nil {
			return "", fmt.Errorf("resolve workspace for %s: %w", filename, err)
		}
		entry.WorkspaceID = workspaceID
	}

	content, err := m.remote.GetStudioContent(ctx, entry.DocumentID, entry.WorkspaceID, entry.ElementID)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", filename, err)
	}

	if err := utils.EnsureDir(m.stdDir); err != nil {
		return "", err
	}
	if err := os.WriteFile(m.filePath(filename), []byte(content.Contents), 0o644); err != nil {
		return "", fmt.Errorf("write cached file: %w", err)
	}

	entry.Microversion = content.Microversion
	entry.FetchedAt = time.Now().UTC().Format(time.RFC3339)
	if err := m.save(); err != nil {
		return "", err
	}
	return content.Contents, nil
}

// UpdateResult is the per-file outcome of an Update pass.
type UpdateResult struct {
	Filename string
	Updated  bool
	Message  string
	Err      error
}

// Update refreshes cached files from the remote. With filename empty, every
// manifest entry is checked. Files whose microversion is unchanged are left
// alone unless force is set. A failing file does not abort the rest.
func (m *Manager) Update(ctx context.Context, filename string, force bool) ([]UpdateResult, error) {
	if err := m.load(); err != nil {
		return nil, err
	}
	var names []string
	if filename != "" {
		filename = normalize(filename)
		if m.manifest.Documents[filename] == nil {
			return nil, fmt.Errorf("%w: %s is not in the cache manifest", ErrNotCached, filename)
		}
		names = []string{filename}
	} else {
		for name := range m.manifest.Documents {
			names = append(names, name)
		}
		sort.Strings(names)
	}
	if len(names) > 0 && m.remote == nil {
		return nil, errors.New("stdcache: no remote store configured")
	}

	results := make([]UpdateResult, 0, len(names))
	for _, name := range names {
		results = append(results, m.updateOne(ctx, name, force))
	}
	return results, nil
}

func (m *Manager) updateOne(ctx context.Context, filename string, force bool) UpdateResult {
	entry := m.manifest.Documents[filename]

	if entry.WorkspaceID == "" {
		workspaceID, err := m.remote.ResolveDefaultWorkspace(ctx, entry.DocumentID)
		if err != nil {
			return UpdateResult{Filename: filename, Err: err}
		}
		entry.WorkspaceID = workspaceID
	}

	content, err := m.remote.GetStudioContent(ctx, entry.DocumentID, entry.WorkspaceID, entry.ElementID)
	if err != nil {
		return UpdateResult{Filename: filename, Err: err}
	}

	if !force && content.Microversion == entry.Microversion && utils.FileExists(m.filePath(filename)) {
		return UpdateResult{Filename: filename, Message: "already up to date"}
	}

	if err := utils.EnsureDir(m.stdDir); err != nil {
		return UpdateResult{Filename: filename, Err: err}
	}
	if err := os.WriteFile(m.filePath(filename), []byte(content.Contents), 0o644); err != nil {
		return UpdateResult{Filename: filename, Err: err}
	}

	entry.Microversion = content.Microversion
	entry.FetchedAt = time.Now().UTC().Format(time.RFC3339)
	// Saved per file so a crash mid-update keeps completed entries.
	if err := m.save(); err != nil {
		return UpdateResult{Filename: filename, Err: err}
	}
	return UpdateResult{Filename: filename, Updated: true, Message: "updated"}
}

// FileStatus describes one manifest entry for display.
type FileStatus struct {
	Filename     string
	Exists       bool
	Microversion string
	FetchedAt    string
}

// Status summarizes the cache for display.
type Status struct {
	StdDir      string
	Version     string
	LastUpdated string
	Files       []FileStatus
}

// Status reports the manifest contents and whether each file is on disk.
func (m *Manager) Status() (*Status, error) {
	if err := m.load(); err != nil {
		return nil, err
	}

	status := &Status{
		StdDir:      m.stdDir,
		Version:     m.manifest.Version,
		LastUpdated: m.manifest.LastUpdated,
	}
	for name, entry := range m.manifest.Documents {
		status.Files = append(status.Files, FileStatus{
			Filename:     name,
			Exists:       utils.FileExists(m.filePath(name)),
			Microversion: entry.Microversion,
			FetchedAt:    entry.FetchedAt,
		})
	}
	sort.Slice(status.Files, func(i, j int) bool {
		return status.Files[i].Filename < status.Files[j].Filename
	})
	return status, nil
}
