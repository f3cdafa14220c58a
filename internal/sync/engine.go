package sync

import (
	"context"

	"github.com/google/uuid"
	"github.com/studiosync/studiosync/internal/cadsdk"
)

// RemoteStore is the remote document platform as consumed by the engine.
// Implemented by cadsdk.Client; faked in tests.
type RemoteStore interface {
	ListFolderEntries(ctx context.Context, folderID string) ([]cadsdk.FolderEntry, error)
	ListElements(ctx context.Context, documentID, workspaceID, kindFilter string) ([]cadsdk.Element, error)
	GetStudioContent(ctx context.Context, documentID, workspaceID, elementID string) (*cadsdk.StudioContent, error)
	UpdateStudioContent(ctx context.Context, documentID, workspaceID, elementID, contents string) (string, error)
	GetWorkspaceVersion(ctx context.Context, documentID, workspaceID string) (string, error)
	ResolveDefaultWorkspace(ctx context.Context, documentID string) (string, error)
	BaseURL() string
}

var _ RemoteStore = (*cadsdk.Client)(nil)

// SourceKind distinguishes a folder hierarchy sync from a single-document sync.
type SourceKind string

const (
	SourceFolder   SourceKind = "folder"
	SourceDocument SourceKind = "document"
)

// Source is one configured remote root to sync. Folder sources mirror a remote
// folder hierarchy; document sources sync a single document's studios into
// LocalPath directly. Both variants share the same per-document transfer path.
type Source struct {
	Name        string
	Kind        SourceKind
	FolderID    string // folder sources
	DocumentID  string // document sources
	WorkspaceID string // optional; default workspace resolved when empty
	LocalPath   string // relative to the engine base dir
	Recursive   bool
	Exclude     []string
}

// Options tune a sync run.
type Options struct {
	DryRun       bool
	Force        bool
	BackupOnPull bool
	BackupDir    string // default .sync-backups
	FileExt      string // default .fs
	MaxDepth     int    // folder recursion bound, default 10
}

const (
	defaultBackupDir = ".sync-backups"
	defaultFileExt   = ".fs"
	defaultMaxDepth  = 10
)

func (o Options) withDefaults() Options {
	if o.BackupDir == "" {
		o.BackupDir = defaultBackupDir
	}
	if o.FileExt == "" {
		o.FileExt = defaultFileExt
	}
	if o.MaxDepth <= 0 {
		o.MaxDepth = defaultMaxDepth
	}
	return o
}

// Engine orchestrates pull and push between a local file tree and the remote
// document store. Processing is strictly sequential: a file's tracked state is
// written only after its content transfer succeeded, and the state store is
// saved after every file so a crash loses at most the file in flight.
type Engine struct {
	remote   RemoteStore
	state    *StateStore
	reporter Reporter
	baseDir  string
	opts     Options
}

// New creates an engine rooted at baseDir. reporter may be nil, in which case
// events go to slog.
func New(remote RemoteStore, state *StateStore, baseDir string, opts Options, reporter Reporter) *Engine {
	if reporter == nil {
		reporter = SlogReporter{}
	}
	return &Engine{
		remote:   remote,
		state:    state,
		reporter: reporter,
		baseDir:  baseDir,
		opts:     opts.withDefaults(),
	}
}

func newRunID() string {
	return uuid.NewString()
}
