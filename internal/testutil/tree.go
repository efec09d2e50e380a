// Package testutil provides helpers for building and checking source trees in tests.
package testutil

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// Tree is a directory of fixture files rooted in a test temp dir.
type Tree struct {
	t    *testing.T
	Root string
}

// NewTree creates an empty tree in t.TempDir().
func NewTree(t *testing.T) *Tree {
	t.Helper()
	return &Tree{t: t, Root: t.TempDir()}
}

// Write creates rel (slash separated) with content, creating parent directories.
func (tr *Tree) Write(rel, content string) *Tree {
	tr.t.Helper()
	full := tr.Path(rel)
	if err := os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		tr.t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(full, []byte(content), 0o600); err != nil {
		tr.t.Fatalf("write %s: %v", rel, err)
	}
	return tr
}

// WriteAll writes every entry of files. Entries are written in sorted order.
func (tr *Tree) WriteAll(files map[string]string) *Tree {
	tr.t.Helper()
	keys := make([]string, 0, len(files))
	for k := range files {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tr.Write(k, files[k])
	}
	return tr
}

// Path returns the absolute path of rel inside the tree.
func (tr *Tree) Path(rel string) string {
	return filepath.Join(tr.Root, filepath.FromSlash(rel))
}

// Pattern returns a glob pattern rooted in the tree.
func (tr *Tree) Pattern(rel string) string {
	return filepath.Join(tr.Root, filepath.FromSlash(rel))
}
