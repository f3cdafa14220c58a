package sync

import (
	"context"
	"path"

	"github.com/studiosync/studiosync/internal/cadsdk"
)

// docRef is one syncable document discovered during folder traversal, with its
// path inside the remote hierarchy.
type docRef struct {
	ID         string
	Name       string
	FolderPath string // hierarchy path, "" at the root
}

type folderFrame struct {
	folderID string
	relPath  string
	depth    int
}

// folderWalker lazily enumerates the documents under a folder as a
// depth-bounded sequence. Folders are listed one at a time as the walk reaches
// them, so large hierarchies are never materialized up front.
type folderWalker struct {
	remote    RemoteStore
	recursive bool
	maxDepth  int
	frames    []folderFrame
	docs      []docRef
}

func newFolderWalker(remote RemoteStore, folderID string, recursive bool, maxDepth int) *folderWalker {
	return &folderWalker{
		remote:    remote,
		recursive: recursive,
		maxDepth:  maxDepth,
		frames:    []folderFrame{{folderID: folderID, relPath: "", depth: 0}},
	}
}

// Next returns the next document, or (nil, nil) when the walk is exhausted.
func (w *folderWalker) Next(ctx context.Context) (*docRef, error) {
	for {
		if len(w.docs) > 0 {
			doc := w.docs[0]
			w.docs = w.docs[1:]
			return &doc, nil
		}

		if len(w.frames) == 0 {
			return nil, nil
		}

		frame := w.frames[0]
		w.frames = w.frames[1:]

		entries, err := w.remote.ListFolderEntries(ctx, frame.folderID)
		if err != nil {
			return nil, err
		}

		for _, entry := range entries {
			switch entry.Kind {
			case cadsdk.EntryKindDocument:
				w.docs = append(w.docs, docRef{
					ID:         entry.ID,
					Name:       entry.Name,
					FolderPath: frame.relPath,
				})
			case cadsdk.EntryKindFolder:
				if w.recursive && frame.depth < w.maxDepth {
					w.frames = append(w.frames, folderFrame{
						folderID: entry.ID,
						relPath:  path.Join(frame.relPath, entry.Name),
						depth:    frame.depth + 1,
					})
				}
			}
		}
	}
}
