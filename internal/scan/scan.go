// Package scan resolves glob patterns into the source files the assembler loads.
//
// Patterns use doublestar syntax: `**` matches any number of directories and
// `{a,b}` matches alternatives. Only regular files are returned.
package scan

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Files resolves pattern to a lexically sorted list of regular files.
// An empty pattern matches nothing.
func Files(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, nil
	}
	if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
		return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
	}

	files, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly(), doublestar.WithFailOnIOErrors())
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	sort.Strings(files)
	return files, nil
}

// Base returns the leading directory of pattern that contains no glob
// metacharacters, e.g. "src/views" for "src/views/**/*.html".
func Base(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))
	return filepath.FromSlash(base)
}

// Rel returns file relative to the base of pattern, falling back to the
// file's base name when it does not live under that directory.
func Rel(pattern, file string) string {
	rel, err := filepath.Rel(Base(pattern), file)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(file)
	}
	return rel
}

// Dirs returns the distinct base directories of the given patterns, skipping
// empty patterns. Used to decide what to watch for changes.
func Dirs(patterns ...string) []string {
	seen := make(map[string]struct{}, len(patterns))
	var out []string
	for _, p := range patterns {
		if p == "" {
			continue
		}
		dir := filepath.Clean(Base(p))
		if _, ok := seen[dir]; ok {
			continue
		}
		seen[dir] = struct{}{}
		out = append(out, dir)
	}
	sort.Strings(out)
	return out
}
