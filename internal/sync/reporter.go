package sync

import (
	"log/slog"
)

// Reporter is the structured event sink the engine emits progress through. The
// engine itself never prints; presentation is the caller's concern.
type Reporter interface {
	RunStarted(op Operation, runID string)
	FileOutcome(o Outcome)
	ConflictDetected(r ConflictReport, forced bool)
	RunFinished(op Operation, s *Summary)
}

// SlogReporter logs sync events through slog.
type SlogReporter struct{}

func (SlogReporter) RunStarted(op Operation, runID string) {
	slog.Info("sync started", "op", op, "run", runID)
}

func (SlogReporter) FileOutcome(o Outcome) {
	switch {
	case o.Conflict:
		slog.Warn("sync conflict", "op", o.Operation, "path", o.Path, "message", o.Message)
	case !o.Success:
		slog.Error("sync failed", "op", o.Operation, "path", o.Path, "message", o.Message)
	case o.Skipped:
		slog.Debug("sync skipped", "op", o.Operation, "path", o.Path, "message", o.Message)
	default:
		slog.Info("sync ok", "op", o.Operation, "path", o.Path, "message", o.Message)
	}
}

func (SlogReporter) ConflictDetected(r ConflictReport, forced bool) {
	if r.Kind == ConflictNone {
		return
	}
	slog.Warn("conflict detected",
		"path", r.Path,
		"kind", r.Kind,
		"forced", forced,
		"local", r.LocalHash,
		"previous", r.PreviousHash,
		"remote_version", r.RemoteVersion,
		"previous_version", r.PreviousVersion,
	)
}

func (SlogReporter) RunFinished(op Operation, s *Summary) {
	slog.Info("sync finished",
		"op", op,
		"succeeded", s.Succeeded,
		"skipped", s.Skipped,
		"conflicts", s.Conflicts,
		"failed", s.Failed,
	)
}

var _ Reporter = (*SlogReporter)(nil)
