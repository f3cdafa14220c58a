package utils

import (
	"regexp"
	"strings"
)

var (
	invalidNameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	collapseRuns     = regexp.MustCompile(`[_\s]+`)
)

// SanitizeName makes a remote display name safe to use as a local file or
// directory name. Invalid characters become underscores and runs of
// whitespace/underscores collapse to one.
func SanitizeName(name string) string {
	sanitized := invalidNameChars.ReplaceAllString(name, "_")
	sanitized = collapseRuns.ReplaceAllString(sanitized, "_")
	sanitized = strings.Trim(sanitized, "_ ")
	if sanitized == "" {
		return "unnamed"
	}
	return sanitized
}
