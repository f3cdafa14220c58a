package sync

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/studiosync/studiosync/internal/utils"
)

// Push submits locally edited feature studios back to the remote store. Only
// directories carrying a sidecar are considered; local filenames resolve to
// remote elements through the sidecar map, never by guessing.
func (e *Engine) Push(ctx context.Context, sources []Source) *Summary {
	summary := &Summary{}
	e.reporter.RunStarted(OpPush, newRunID())

	for _, src := range sources {
		e.pushSource(ctx, src, summary)
	}

	e.reporter.RunFinished(OpPush, summary)
	return summary
}

func (e *Engine) pushSource(ctx context.Context, src Source, summary *Summary) {
	excludes := NewExcludeList(src.Exclude)
	excludes.LoadIgnoreFile(e.baseDir)
	localRoot := filepath.Join(e.baseDir, src.LocalPath)

	if !utils.DirExists(localRoot) {
		e.emit(summary, Outcome{
			Path:      src.LocalPath,
			Operation: OpPush,
			Message:   fmt.Sprintf("local path not found: %s", localRoot),
		})
		return
	}

	var docDirs []string
	err := filepath.WalkDir(localRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.IsDir() && d.Name() == MetadataFilename {
			docDirs = append(docDirs, filepath.Dir(path))
		}
		return nil
	})
	if err != nil {
		e.emit(summary, Outcome{
			Path:      src.LocalPath,
			Operation: OpPush,
			Message:   fmt.Sprintf("scan local tree: %v", err),
		})
		return
	}

	if len(docDirs) == 0 {
		e.emit(summary, Outcome{
			Path:      src.LocalPath,
			Operation: OpPush,
			Message:   (&ConfigurationError{Reason: "no " + MetadataFilename + " found - cannot push"}).Error(),
		})
		return
	}

	for _, docDir := range docDirs {
		relDir, err := filepath.Rel(localRoot, docDir)
		if err == nil && excludes.Match(utils.NormPath(relDir)) {
			e.emit(summary, Outcome{
				Path:      utils.NormPath(relDir),
				Operation: OpPush,
				Success:   true,
				Skipped:   true,
				Message:   "excluded by pattern",
			})
			continue
		}
		e.pushDocumentDir(ctx, docDir, summary)
	}
}

// pushDocumentDir pushes every studio file in one local document directory.
func (e *Engine) pushDocumentDir(ctx context.Context, docDir string, summary *Summary) {
	meta, err := LoadDocumentMetadata(docDir)
	if err != nil {
		e.emit(summary, Outcome{
			Path:      e.relPath(docDir),
			Operation: OpPush,
			Message:   err.Error(),
		})
		return
	}
	if meta == nil {
		e.emit(summary, Outcome{
			Path:      e.relPath(docDir),
			Operation: OpPush,
			Message:   (&ConfigurationError{Reason: "no " + MetadataFilename + " found - cannot push"}).Error(),
		})
		return
	}

	entries, err := os.ReadDir(docDir)
	if err != nil {
		e.emit(summary, Outcome{
			Path:      e.relPath(docDir),
			Operation: OpPush,
			Message:   fmt.Sprintf("read directory: %v", err),
		})
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), e.opts.FileExt) {
			continue
		}

		filePath := filepath.Join(docDir, entry.Name())
		elementName := strings.TrimSuffix(entry.Name(), e.opts.FileExt)

		elementID := meta.FeatureStudios[elementName]
		if elementID == "" {
			// Never guess the remote element; require a prior pull.
			e.emit(summary, Outcome{
				Path:      e.relPath(filePath),
				Operation: OpPush,
				Message:   fmt.Sprintf("no element id known for %q - pull first", elementName),
			})
			continue
		}

		e.emit(summary, e.pushStudio(ctx, filePath, meta.DocumentID, meta.WorkspaceID, elementID))
	}
}

// pushStudio submits one local file, checking the remote version token first.
func (e *Engine) pushStudio(ctx context.Context, filePath, documentID, workspaceID, elementID string) Outcome {
	relPath := e.relPath(filePath)

	// Lightweight version lookup; no content fetched.
	remoteVersion, err := e.remote.GetWorkspaceVersion(ctx, documentID, workspaceID)
	if err != nil {
		return Outcome{
			Path:      relPath,
			Operation: OpPush,
			Message:   (&TransportError{Op: "get workspace version", Err: err}).Error(),
		}
	}

	prev, err := e.state.Get(relPath)
	if err != nil {
		return Outcome{Path: relPath, Operation: OpPush, Message: err.Error()}
	}

	report := DetectPushConflict(relPath, prev, remoteVersion)
	e.reporter.ConflictDetected(report, e.opts.Force)
	if report.Blocks() && !e.opts.Force {
		return Outcome{
			Path:      relPath,
			Operation: OpPush,
			Conflict:  true,
			Message:   report.Message,
		}
	}

	content, err := os.ReadFile(filePath)
	if err != nil {
		return Outcome{
			Path:      relPath,
			Operation: OpPush,
			Message:   fmt.Sprintf("read file: %v", err),
		}
	}

	if e.opts.DryRun {
		return Outcome{
			Path:      relPath,
			Operation: OpPush,
			Success:   true,
			Skipped:   true,
			Message:   fmt.Sprintf("[dry run] would push %s", filepath.Base(filePath)),
		}
	}

	newVersion, err := e.remote.UpdateStudioContent(ctx, documentID, workspaceID, elementID, string(content))
	if err != nil {
		return Outcome{
			Path:      relPath,
			Operation: OpPush,
			Message:   (&TransportError{Op: "update studio content", Err: err}).Error(),
		}
	}

	if err := e.state.Update(relPath, ContentHash(content), newVersion, elementID, documentID, workspaceID); err != nil {
		return Outcome{Path: relPath, Operation: OpPush, Message: err.Error()}
	}
	if err := e.state.Save(); err != nil {
		return Outcome{Path: relPath, Operation: OpPush, Message: err.Error()}
	}

	return Outcome{
		Path:      relPath,
		Operation: OpPush,
		Success:   true,
		Message:   "pushed " + filepath.Base(filePath),
	}
}
