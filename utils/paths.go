package utils

import (
	"path/filepath"
	"strings"
)

// IsWithinDir reports whether path is located inside root. Both paths
// are canonicalized and compared on directory boundaries, so
// /repo2/a.png is not considered inside /repo.
func IsWithinDir(root, path string) bool {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	pathAbs, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(rootAbs, pathAbs)
	if err != nil {
		return false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	return !filepath.IsAbs(rel)
}
