package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirSink writes files below Dir at their path relative to their Base.
type DirSink struct {
	Dir string
	// Written lists output paths in write order.
	Written []string
}

// NewDirSink returns a sink rooted at dir.
func NewDirSink(dir string) *DirSink {
	return &DirSink{Dir: dir}
}

func (s *DirSink) Write(f *File) error {
	if !f.IsBuffer() {
		return fmt.Errorf("cannot write non-buffered file %s", f.Path)
	}
	out := filepath.Join(s.Dir, f.Rel())
	if err := os.MkdirAll(filepath.Dir(out), 0o750); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(out, f.Contents, 0o600); err != nil {
		return err
	}
	s.Written = append(s.Written, out)
	return nil
}

// MemorySink keeps written files in memory.
type MemorySink struct {
	Files []*File
}

func (s *MemorySink) Write(f *File) error {
	s.Files = append(s.Files, f)
	return nil
}
