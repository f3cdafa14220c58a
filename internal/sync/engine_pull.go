package sync

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/studiosync/studiosync/internal/cadsdk"
	"github.com/studiosync/studiosync/internal/utils"
)

// Pull mirrors the configured sources from the remote store into the local
// tree. Files are processed strictly one at a time; tracked state is persisted
// immediately after every successful write, so re-running after a crash just
// retries the files that did not complete.
func (e *Engine) Pull(ctx context.Context, sources []Source) *Summary {
	summary := &Summary{}
	e.reporter.RunStarted(OpPull, newRunID())

	for _, src := range sources {
		e.pullSource(ctx, src, summary)
	}

	e.reporter.RunFinished(OpPull, summary)
	return summary
}

func (e *Engine) pullSource(ctx context.Context, src Source, summary *Summary) {
	excludes := NewExcludeList(src.Exclude)
	excludes.LoadIgnoreFile(e.baseDir)
	localRoot := filepath.Join(e.baseDir, src.LocalPath)

	switch src.Kind {
	case SourceDocument:
		doc := docRef{ID: src.DocumentID, Name: src.Name}
		e.pullDocument(ctx, src, doc, localRoot, summary)

	case SourceFolder:
		walker := newFolderWalker(e.remote, src.FolderID, src.Recursive, e.opts.MaxDepth)
		found := false
		for {
			doc, err := walker.Next(ctx)
			if err != nil {
				e.emit(summary, Outcome{
					Path:      src.LocalPath,
					Operation: OpPull,
					Message:   (&TransportError{Op: "list folder", Err: err}).Error(),
				})
				return
			}
			if doc == nil {
				break
			}
			found = true

			relPath := path.Join(doc.FolderPath, doc.Name)
			if excludes.Match(relPath) {
				e.emit(summary, Outcome{
					Path:      relPath,
					Operation: OpPull,
					Success:   true,
					Skipped:   true,
					Message:   "excluded by pattern",
				})
				continue
			}

			localDir := filepath.Join(localRoot, sanitizePath(doc.FolderPath), utils.SanitizeName(doc.Name))
			e.pullDocument(ctx, src, *doc, localDir, summary)
		}

		if !found {
			e.emit(summary, Outcome{
				Path:      src.LocalPath,
				Operation: OpPull,
				Success:   true,
				Skipped:   true,
				Message:   "no documents found in folder",
			})
		}
	}
}

// pullDocument syncs one remote document's feature studios into localDir and
// refreshes its sidecar.
func (e *Engine) pullDocument(ctx context.Context, src Source, doc docRef, localDir string, summary *Summary) {
	relDir := e.relPath(localDir)

	workspaceID := src.WorkspaceID
	if workspaceID == "" {
		var err error
		workspaceID, err = e.remote.ResolveDefaultWorkspace(ctx, doc.ID)
		if err != nil {
			e.emit(summary, Outcome{
				Path:      relDir,
				Operation: OpPull,
				Message:   (&TransportError{Op: "resolve workspace", Err: err}).Error(),
			})
			return
		}
	}

	elements, err := e.remote.ListElements(ctx, doc.ID, workspaceID, cadsdk.ElementKindFeatureStudio)
	if err != nil {
		e.emit(summary, Outcome{
			Path:      relDir,
			Operation: OpPull,
			Message:   (&TransportError{Op: "list elements", Err: err}).Error(),
		})
		return
	}

	if len(elements) == 0 {
		e.emit(summary, Outcome{
			Path:      relDir,
			Operation: OpPull,
			Success:   true,
			Skipped:   true,
			Message:   fmt.Sprintf("no feature studios in document %q", doc.Name),
		})
		return
	}

	if e.opts.DryRun {
		for _, element := range elements {
			e.emit(summary, Outcome{
				Path:      path.Join(relDir, utils.SanitizeName(element.Name)+e.opts.FileExt),
				Operation: OpPull,
				Success:   true,
				Skipped:   true,
				Message:   fmt.Sprintf("[dry run] would pull %s%s", element.Name, e.opts.FileExt),
			})
		}
		return
	}

	if err := utils.EnsureDir(localDir); err != nil {
		e.emit(summary, Outcome{
			Path:      relDir,
			Operation: OpPull,
			Message:   fmt.Sprintf("create directory: %v", err),
		})
		return
	}

	studios := map[string]string{}
	transferred := 0
	for _, element := range elements {
		outcome := e.pullStudio(ctx, doc.ID, workspaceID, element, localDir)
		e.emit(summary, outcome)
		if outcome.Success {
			studios[element.Name] = element.ID
		}
		if outcome.Success && !outcome.Skipped {
			transferred++
		}
	}

	// The sidecar only needs rewriting when an element was added or changed.
	if transferred == 0 {
		return
	}

	meta := &DocumentMetadata{
		DocumentID:     doc.ID,
		WorkspaceID:    workspaceID,
		DocumentName:   doc.Name,
		FolderPath:     doc.FolderPath,
		URL:            cadsdk.BuildDocumentURL(e.remote.BaseURL(), doc.ID, workspaceID, ""),
		FeatureStudios: studios,
	}
	if err := meta.Save(localDir); err != nil {
		e.emit(summary, Outcome{
			Path:      relDir,
			Operation: OpPull,
			Message:   err.Error(),
		})
	}
}

// pullStudio transfers one feature studio to a local file, running the
// conflict check first and persisting tracked state immediately on success.
func (e *Engine) pullStudio(ctx context.Context, documentID, workspaceID string, element cadsdk.Element, localDir string) Outcome {
	filename := utils.SanitizeName(element.Name) + e.opts.FileExt
	filePath := filepath.Join(localDir, filename)
	relPath := e.relPath(filePath)

	content, err := e.remote.GetStudioContent(ctx, documentID, workspaceID, element.ID)
	if err != nil {
		return Outcome{
			Path:      relPath,
			Operation: OpPull,
			Message:   (&TransportError{Op: "get studio content", Err: err}).Error(),
		}
	}

	prev, err := e.state.Get(relPath)
	if err != nil {
		return Outcome{Path: relPath, Operation: OpPull, Message: err.Error()}
	}
	localHash, _, err := HashFile(filePath)
	if err != nil {
		return Outcome{Path: relPath, Operation: OpPull, Message: err.Error()}
	}

	report := DetectPullConflict(relPath, prev, localHash, content.Microversion)
	e.reporter.ConflictDetected(report, e.opts.Force)
	if report.Blocks() && !e.opts.Force {
		return Outcome{
			Path:      relPath,
			Operation: OpPull,
			Conflict:  true,
			Message:   report.Message,
		}
	}

	// Neither side moved since the last sync; rewriting would be a no-op.
	if prev != nil && localHash == prev.LocalHash && content.Microversion == prev.RemoteVersion {
		return Outcome{
			Path:      relPath,
			Operation: OpPull,
			Success:   true,
			Skipped:   true,
			Message:   report.Message,
		}
	}

	if _, err := e.backupFile(filePath); err != nil {
		return Outcome{Path: relPath, Operation: OpPull, Message: err.Error()}
	}

	if err := os.WriteFile(filePath, []byte(content.Contents), 0o644); err != nil {
		return Outcome{
			Path:      relPath,
			Operation: OpPull,
			Message:   fmt.Sprintf("write file: %v", err),
		}
	}

	// State is written only after the content landed, then saved right away to
	// keep the lost-update window to the file in flight.
	newHash := ContentHash([]byte(content.Contents))
	if err := e.state.Update(relPath, newHash, content.Microversion, element.ID, documentID, workspaceID); err != nil {
		return Outcome{Path: relPath, Operation: OpPull, Message: err.Error()}
	}
	if err := e.state.Save(); err != nil {
		return Outcome{Path: relPath, Operation: OpPull, Message: err.Error()}
	}

	return Outcome{
		Path:      relPath,
		Operation: OpPull,
		Success:   true,
		Message:   "pulled " + filename,
	}
}

func (e *Engine) emit(summary *Summary, o Outcome) {
	summary.add(o)
	e.reporter.FileOutcome(o)
}

func (e *Engine) relPath(absPath string) string {
	rel, err := filepath.Rel(e.baseDir, absPath)
	if err != nil {
		return utils.NormPath(absPath)
	}
	return utils.NormPath(rel)
}

// sanitizePath sanitizes each component of a remote hierarchy path.
func sanitizePath(hierarchyPath string) string {
	if hierarchyPath == "" {
		return ""
	}
	parts := strings.Split(hierarchyPath, "/")
	for i, part := range parts {
		parts[i] = utils.SanitizeName(part)
	}
	return filepath.Join(parts...)
}
