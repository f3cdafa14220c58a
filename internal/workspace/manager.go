package workspace

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/studiosync/studiosync/internal/sync"
	"github.com/studiosync/studiosync/internal/utils"
)

// refreshAfter is how long a folder reference may go without a pull before it
// counts as stale. Folder hierarchies have no single version token to compare.
const refreshAfter = 24 * time.Hour

// Manager owns the workspace settings and enforces root-level policy on top
// of the sync engine.
type Manager struct {
	Settings     *Settings
	settingsPath string
	baseDir      string
	remote       sync.RemoteStore
}

// NewManager loads the settings file under baseDir and wraps it.
func NewManager(baseDir string, remote sync.RemoteStore) (*Manager, error) {
	settingsPath := filepath.Join(baseDir, SettingsFilename)
	settings, err := LoadSettings(settingsPath)
	if err != nil {
		return nil, err
	}
	return &Manager{
		Settings:     settings,
		settingsPath: settingsPath,
		baseDir:      baseDir,
		remote:       remote,
	}, nil
}

// BaseDir returns the workspace root directory.
func (m *Manager) BaseDir() string {
	return m.baseDir
}

// Save persists the settings file.
func (m *Manager) Save() error {
	return m.Settings.Save(m.settingsPath)
}

// ValidatePushAllowed rejects pushes targeting any path equal to or nested
// under a reference root. This runs before the engine is invoked.
func (m *Manager) ValidatePushAllowed(localPath string) error {
	abs, err := filepath.Abs(filepath.Join(m.baseDir, localPath))
	if err != nil {
		return fmt.Errorf("resolve path %s: %w", localPath, err)
	}

	for _, ref := range m.Settings.References {
		refRoot := filepath.Join(m.baseDir, ref.LocalPath)
		if utils.PathContains(refRoot, abs) {
			return &sync.PolicyError{
				Path:   localPath,
				Reason: fmt.Sprintf("reference %q is read-only; create a project to edit these files", ref.Name),
			}
		}
	}
	return nil
}

// ReferenceNeedsUpdate checks whether a reference is behind the remote.
// Document references compare the cached version token against the live one;
// folder references fall back to age, since a hierarchy has no single token.
func (m *Manager) ReferenceNeedsUpdate(ctx context.Context, ref *Reference) (bool, error) {
	if ref.LastSync == "" {
		return true, nil
	}

	if ref.Kind == RootDocument && ref.DocumentID != "" {
		workspaceID := ref.WorkspaceID
		if workspaceID == "" {
			var err error
			workspaceID, err = m.remote.ResolveDefaultWorkspace(ctx, ref.DocumentID)
			if err != nil {
				return false, err
			}
		}
		remoteVersion, err := m.remote.GetWorkspaceVersion(ctx, ref.DocumentID, workspaceID)
		if err != nil {
			return false, err
		}

		cached := m.Settings.CachedDocumentVersion(ref.DocumentID)
		if cached == "" {
			return true, nil
		}
		if cached != remoteVersion {
			slog.Debug("reference version changed", "name", ref.Name, "cached", cached, "remote", remoteVersion)
			return true, nil
		}
		return false, nil
	}

	lastSync, err := time.Parse(time.RFC3339, ref.LastSync)
	if err != nil {
		return true, nil // unreadable stamp, resync
	}
	return time.Since(lastSync) >= refreshAfter, nil
}

// RecordReferenceSync caches the live version token of a document reference
// and stamps its sync time. References added from a bare document URL have no
// workspace id yet; the default workspace is resolved and persisted so the
// staleness check sees the same token the pull used.
func (m *Manager) RecordReferenceSync(ctx context.Context, ref *Reference) {
	ref.TouchSync()

	if ref.Kind != RootDocument || ref.DocumentID == "" {
		return
	}

	if ref.WorkspaceID == "" {
		workspaceID, err := m.remote.ResolveDefaultWorkspace(ctx, ref.DocumentID)
		if err != nil {
			slog.Warn("could not resolve reference workspace", "name", ref.Name, "error", err)
			return
		}
		ref.WorkspaceID = workspaceID
	}

	version, err := m.remote.GetWorkspaceVersion(ctx, ref.DocumentID, ref.WorkspaceID)
	if err != nil {
		slog.Warn("could not cache reference version", "name", ref.Name, "error", err)
		return
	}
	m.Settings.CacheDocumentVersion(ref.DocumentID, ref.Name, version)
}
