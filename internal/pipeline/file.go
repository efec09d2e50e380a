package pipeline

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// File is one unit of work flowing through the pipeline.
//
// Exactly one of Contents and Stream is set for a regular file. A File with
// neither is a null file (for example a directory entry) and is passed
// through untouched.
type File struct {
	// Path is the absolute or working-directory relative source path.
	Path string
	// Base is the directory Path is relative to when the file is written.
	Base     string
	Contents []byte
	Stream   io.ReadCloser
}

// NewFile returns a buffered file.
func NewFile(path, base string, contents []byte) *File {
	return &File{Path: path, Base: base, Contents: contents}
}

// IsNull reports whether the file has no content at all.
func (f *File) IsNull() bool {
	return f.Contents == nil && f.Stream == nil
}

// IsStream reports whether the content is only available as a stream.
func (f *File) IsStream() bool {
	return f.Stream != nil
}

// IsBuffer reports whether the content is held in memory.
func (f *File) IsBuffer() bool {
	return f.Contents != nil && f.Stream == nil
}

// Rel returns Path relative to Base, or the base name of Path when it does
// not live under Base.
func (f *File) Rel() string {
	if f.Base == "" {
		return filepath.Base(f.Path)
	}
	rel, err := filepath.Rel(f.Base, f.Path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return filepath.Base(f.Path)
	}
	return rel
}

// Clone returns a copy with its own content buffer. Streams are shared.
func (f *File) Clone() *File {
	c := *f
	if f.Contents != nil {
		c.Contents = bytes.Clone(f.Contents)
	}
	return &c
}
