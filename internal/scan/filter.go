// Package scan filters file paths by extension before they reach the
// analysis engines. Filtering is a presentation concern: engines receive
// already-filtered inputs and never consult the allow-list themselves.
package scan

import (
	"path/filepath"
	"strings"
)

// defaultAllowed is the built-in extension allow-list. It can be extended via
// IncludeExt or bypassed entirely with All.
var defaultAllowed = map[string]struct{}{
	"rs": {}, "ts": {}, "tsx": {}, "js": {}, "jsx": {}, "java": {}, "kt": {},
	"kts": {}, "go": {}, "py": {}, "rb": {}, "swift": {}, "c": {}, "h": {},
	"cpp": {}, "hpp": {}, "cc": {}, "hh": {}, "cs": {}, "php": {}, "scala": {},
	"m": {}, "mm": {}, "sh": {}, "bash": {}, "zsh": {}, "fish": {}, "sql": {},
	"xml": {}, "yml": {}, "yaml": {}, "toml": {}, "json": {}, "lock": {},
	"lua": {}, "vim": {}, "conf": {}, "ini": {}, "cfg": {}, "md": {}, "txt": {},
}

// Filter decides which paths participate in an analysis.
type Filter struct {
	// All bypasses the allow-list and accepts every tracked file.
	All bool
	// IncludeExt extends the allow-list with extra extensions (no dot).
	IncludeExt []string
}

// Allow reports whether the path passes the filter. Files without an
// extension are rejected unless All is set.
func (f Filter) Allow(path string) bool {
	if f.All {
		return true
	}

	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return false
	}

	ext = strings.ToLower(ext)

	if _, ok := defaultAllowed[ext]; ok {
		return true
	}

	for _, extra := range f.IncludeExt {
		if strings.EqualFold(extra, ext) {
			return true
		}
	}

	return false
}

// Apply returns the subset of paths passing the filter, preserving order.
func (f Filter) Apply(paths []string) []string {
	if f.All {
		return paths
	}

	kept := make([]string, 0, len(paths))

	for _, path := range paths {
		if f.Allow(path) {
			kept = append(kept, path)
		}
	}

	return kept
}
