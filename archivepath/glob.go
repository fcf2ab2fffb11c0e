// Package archivepath expands a --input glob pattern into concrete archive
// file paths for batch mode (spec §6's "CLI surface").
//
// Grounded on the teacher's internal/scanner (the fileman sub-tree), which
// uses bmatcuk/doublestar/v4 for include/exclude glob filtering over a
// filesystem walk.
package archivepath

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// Resolve expands pattern (a doublestar glob, e.g. "testdata/**/*.xml")
// rooted at the current working directory into a sorted list of matching
// regular file paths. A pattern with no "*"/"?"/"[" is treated as a literal
// path and returned as-is without touching the filesystem, so a single
// `--input archive.xml` invocation never pays for a directory walk.
func Resolve(pattern string) ([]string, error) {
	if !doublestar.ContainsMagic(pattern) {
		return []string{pattern}, nil
	}

	root := globRoot(pattern)
	rel, err := filepath.Rel(root, pattern)
	if err != nil {
		rel = pattern
	}

	var matches []string
	err = doublestar.GlobWalk(os.DirFS(root), filepath.ToSlash(rel), func(path string, d fs.DirEntry) error {
		if d.IsDir() {
			return nil
		}
		matches = append(matches, filepath.Join(root, path))
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)
	return matches, nil
}

// globRoot returns the longest path prefix of pattern that contains no glob
// metacharacters, used as the os.DirFS root for GlobWalk.
func globRoot(pattern string) string {
	root := "."
	if filepath.IsAbs(pattern) {
		root = string(filepath.Separator)
	}
	for _, seg := range splitPathSegments(pattern) {
		if doublestar.ContainsMagic(seg) {
			break
		}
		root = filepath.Join(root, seg)
	}
	return root
}

func splitPathSegments(p string) []string {
	p = filepath.ToSlash(p)
	var segs []string
	start := 0
	for i := 0; i < len(p); i++ {
		if p[i] == '/' {
			if i > start {
				segs = append(segs, p[start:i])
			}
			start = i + 1
		}
	}
	if start < len(p) {
		segs = append(segs, p[start:])
	}
	return segs
}
