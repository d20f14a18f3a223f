// Package pathutil provides path truncation helpers for directory rollups.
package pathutil

import "strings"

// RootKey is the directory key for files that live at the repository root,
// and for any rollup with depth 0.
const RootKey = "."

// DirKey truncates a slash-separated repository path to a directory key of at
// most depth leading components. The file name itself never participates:
// DirKey("a/b/c.go", 1) == "a", DirKey("top.go", 3) == RootKey. A depth of 0
// aggregates everything to the repository root.
func DirKey(path string, depth int) string {
	if depth <= 0 {
		return RootKey
	}

	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) <= 1 {
		// No parent directories.
		return RootKey
	}

	// Drop the file name.
	dirs := parts[:len(parts)-1]
	if depth < len(dirs) {
		dirs = dirs[:depth]
	}

	return strings.Join(dirs, "/")
}
