package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/studiosync/studiosync/internal/sync"
)

var (
	styleOK       = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	styleConflict = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleFailed   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	styleSkipped  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	styleHeader   = lipgloss.NewStyle().Bold(true)
)

// cliReporter renders per-file outcomes to stdout as they happen. It wraps the
// slog reporter so structured logs still carry the same events.
type cliReporter struct {
	logs sync.SlogReporter
}

func newCLIReporter() *cliReporter {
	return &cliReporter{}
}

func (r *cliReporter) RunStarted(op sync.Operation, runID string) {
	r.logs.RunStarted(op, runID)
}

func (r *cliReporter) FileOutcome(o sync.Outcome) {
	r.logs.FileOutcome(o)
	fmt.Println(formatOutcome(o))
}

// formatOutcome renders one per-file result line. Every branch names the path
// so any line can be traced back to its file.
func formatOutcome(o sync.Outcome) string {
	switch {
	case o.Conflict:
		return fmt.Sprintf("%s %s: %s", styleConflict.Render("CONFLICT"), o.Path, o.Message)
	case !o.Success:
		return fmt.Sprintf("%s %s: %s", styleFailed.Render("FAILED"), o.Path, o.Message)
	case o.Skipped:
		return fmt.Sprintf("%s %s: %s", styleSkipped.Render("skip"), o.Path, styleSkipped.Render(o.Message))
	default:
		return fmt.Sprintf("%s %s: %s", styleOK.Render("ok"), o.Path, o.Message)
	}
}

func (r *cliReporter) ConflictDetected(report sync.ConflictReport, forced bool) {
	r.logs.ConflictDetected(report, forced)
}

func (r *cliReporter) RunFinished(op sync.Operation, s *sync.Summary) {
	r.logs.RunFinished(op, s)
}

var _ sync.Reporter = (*cliReporter)(nil)

// renderSummary prints the run totals and returns an error when the command
// should exit non-zero.
func renderSummary(op sync.Operation, s *sync.Summary) error {
	fmt.Printf("\n%s %d synced, %d skipped, %d conflicts, %d failed\n",
		styleHeader.Render(string(op)+":"), s.Succeeded, s.Skipped, s.Conflicts, s.Failed)

	if s.Clean() {
		return nil
	}
	return fmt.Errorf("%s finished with %d conflicts and %d failures", op, s.Conflicts, s.Failed)
}

func printErr(err error) {
	fmt.Fprintf(os.Stderr, "%s %v\n", styleFailed.Render("error:"), err)
}
