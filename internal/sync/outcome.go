package sync

// Operation is the direction of a transfer.
type Operation string

const (
	OpPull Operation = "pull"
	OpPush Operation = "push"
)

// Outcome is the per-file result of a pull or push.
type Outcome struct {
	Path      string
	Operation Operation
	Success   bool
	Conflict  bool
	Skipped   bool
	Message   string
}

// Summary aggregates outcomes for a whole run.
type Summary struct {
	Outcomes  []Outcome
	Succeeded int
	Skipped   int
	Conflicts int
	Failed    int
}

func (s *Summary) add(o Outcome) {
	s.Outcomes = append(s.Outcomes, o)
	switch {
	case o.Conflict:
		s.Conflicts++
	case o.Skipped:
		s.Skipped++
	case o.Success:
		s.Succeeded++
	default:
		s.Failed++
	}
}

// Clean reports whether the run had no conflicts and no failures. The command
// surface exits non-zero when this is false.
func (s *Summary) Clean() bool {
	return s.Conflicts == 0 && s.Failed == 0
}
