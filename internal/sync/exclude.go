package sync

import (
	"bufio"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/sabhiram/go-gitignore"
	"github.com/studiosync/studiosync/internal/utils"
)

// IgnoreFilename is an optional gitignore-style file at the sync root.
const IgnoreFilename = ".syncignore"

// ExcludeList filters remote entries out of a sync. Patterns are doublestar
// globs tested against both the full relative path and the leaf name, matching
// the configured excludes; an optional .syncignore at the base dir adds
// gitignore-style rules.
type ExcludeList struct {
	patterns []string
	ignore   *gitignore.GitIgnore
}

func NewExcludeList(patterns []string) *ExcludeList {
	return &ExcludeList{patterns: patterns}
}

// LoadIgnoreFile reads .syncignore rules from baseDir if present.
func (x *ExcludeList) LoadIgnoreFile(baseDir string) {
	ignorePath := filepath.Join(baseDir, IgnoreFilename)
	if !utils.FileExists(ignorePath) {
		return
	}

	file, err := os.Open(ignorePath)
	if err != nil {
		slog.Warn("failed to open ignore file", "path", ignorePath, "error", err)
		return
	}
	defer file.Close()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		slog.Warn("error reading ignore file", "path", ignorePath, "error", err)
		return
	}

	x.ignore = gitignore.CompileIgnoreLines(lines...)
	slog.Debug("loaded ignore file", "path", ignorePath, "rules", len(lines))
}

// Match reports whether relPath should be excluded from the sync.
func (x *ExcludeList) Match(relPath string) bool {
	leaf := path.Base(relPath)
	for _, pattern := range x.patterns {
		if ok, _ := doublestar.Match(pattern, relPath); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, leaf); ok {
			return true
		}
	}
	if x.ignore != nil && x.ignore.MatchesPath(relPath) {
		return true
	}
	return false
}
