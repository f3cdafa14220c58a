package sync

// ConflictKind classifies the result of a pre-transfer conflict check.
type ConflictKind string

const (
	ConflictNone          ConflictKind = "none"
	ConflictBothChanged   ConflictKind = "both_changed"
	ConflictLocalDeleted  ConflictKind = "local_deleted"
	ConflictRemoteDeleted ConflictKind = "remote_deleted"
)

// ConflictReport describes the outcome of a conflict check for one file. It is
// produced even when force bypasses the block, so it can still be logged.
type ConflictReport struct {
	Path            string
	Kind            ConflictKind
	LocalHash       string
	PreviousHash    string
	RemoteVersion   string
	PreviousVersion string
	Message         string
}

// Blocks reports whether this conflict stops the transfer unless forced.
func (r *ConflictReport) Blocks() bool {
	return r.Kind == ConflictBothChanged || r.Kind == ConflictLocalDeleted
}

// DetectPullConflict decides whether pulling a file would clobber local edits.
// prev is the tracked state from the last sync (nil if never synced).
// localHash is the current hash of the local file, empty if the file is absent.
// remoteVersion is the current remote version token.
//
// Both sides changed blocks the pull; only-local changes warn but proceed.
func DetectPullConflict(path string, prev *FileState, localHash, remoteVersion string) ConflictReport {
	if prev == nil {
		return ConflictReport{
			Path:    path,
			Kind:    ConflictNone,
			Message: "new file, safe to pull",
		}
	}

	remoteChanged := remoteVersion != prev.RemoteVersion

	// local file deleted
	if localHash == "" {
		if remoteChanged {
			return ConflictReport{
				Path:            path,
				Kind:            ConflictLocalDeleted,
				PreviousHash:    prev.LocalHash,
				RemoteVersion:   remoteVersion,
				PreviousVersion: prev.RemoteVersion,
				Message:         "local file deleted but remote has changes",
			}
		}
		return ConflictReport{
			Path:    path,
			Kind:    ConflictNone,
			Message: "local deleted, remote unchanged - safe to skip or restore",
		}
	}

	localChanged := localHash != prev.LocalHash

	if localChanged && remoteChanged {
		return ConflictReport{
			Path:            path,
			Kind:            ConflictBothChanged,
			LocalHash:       localHash,
			PreviousHash:    prev.LocalHash,
			RemoteVersion:   remoteVersion,
			PreviousVersion: prev.RemoteVersion,
			Message:         "both local and remote have changes - manual resolution required",
		}
	}

	if localChanged {
		return ConflictReport{
			Path:         path,
			Kind:         ConflictNone,
			LocalHash:    localHash,
			PreviousHash: prev.LocalHash,
			Message:      "warning: local changes will be overwritten",
		}
	}

	if remoteChanged {
		return ConflictReport{Path: path, Kind: ConflictNone, Message: "safe to pull"}
	}
	return ConflictReport{Path: path, Kind: ConflictNone, Message: "already in sync"}
}

// DetectPushConflict decides whether pushing a file would clobber remote edits.
// Classification depends only on remote version equality, never on local
// content.
func DetectPushConflict(path string, prev *FileState, remoteVersion string) ConflictReport {
	if prev == nil {
		return ConflictReport{
			Path:    path,
			Kind:    ConflictNone,
			Message: "new file, safe to push",
		}
	}

	if remoteVersion != prev.RemoteVersion {
		return ConflictReport{
			Path:            path,
			Kind:            ConflictBothChanged,
			RemoteVersion:   remoteVersion,
			PreviousVersion: prev.RemoteVersion,
			Message:         "remote has changed since last sync - use --force to override",
		}
	}

	return ConflictReport{Path: path, Kind: ConflictNone, Message: "safe to push"}
}
