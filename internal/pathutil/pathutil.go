// Package pathutil normalizes user-supplied path strings.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Normalize canonicalizes a raw path string for the current OS. It trims
// surrounding whitespace, expands environment variables, expands a leading
// "~" to the user home directory, and collapses redundant separators and
// "." / ".." segments. Empty or whitespace-only input normalizes to "".
// Purely lexical: no existence check is performed.
func Normalize(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return ""
	}
	p = os.ExpandEnv(p)
	p = expandHome(p)
	return filepath.Clean(p)
}

// expandHome replaces a leading "~" with the current user's home directory.
// If the home directory cannot be determined, the path is returned unchanged.
func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~"+string(os.PathSeparator)) && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return p
	}
	if p == "~" {
		return home
	}
	return filepath.Join(home, p[2:])
}
