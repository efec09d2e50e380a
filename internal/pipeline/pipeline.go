package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"git.home.luguber.info/inful/assemble/internal/logfields"
	"git.home.luguber.info/inful/assemble/internal/scan"
)

// Result is the outcome of transforming one file.
type Result struct {
	File *File
	Err  error
}

// OK reports whether the transform succeeded.
func (r Result) OK() bool { return r.Err == nil }

// Transform turns one input file into one output file.
type Transform interface {
	Transform(ctx context.Context, f *File) Result
}

// TransformFunc adapts a function to Transform.
type TransformFunc func(ctx context.Context, f *File) Result

func (fn TransformFunc) Transform(ctx context.Context, f *File) Result { return fn(ctx, f) }

// Sink receives successfully transformed files.
type Sink interface {
	Write(f *File) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(f *File) error

func (fn SinkFunc) Write(f *File) error { return fn(f) }

// Policy decides whether a run continues after a failed file.
type Policy int

const (
	ContinueOnError Policy = iota
	StopOnError
)

// Summary reports what a run did.
type Summary struct {
	Processed int
	Succeeded int
	Skipped   int
	Failures  []Result
	Duration  time.Duration
}

// Failed returns the number of failed files.
func (s *Summary) Failed() int { return len(s.Failures) }

// Option configures Run.
type Option func(*runner)

type runner struct {
	policy Policy
	logger *slog.Logger
}

// WithPolicy sets the failure policy. The default is ContinueOnError.
func WithPolicy(p Policy) Option {
	return func(r *runner) { r.policy = p }
}

// WithLogger sets the logger used for per-file reporting.
func WithLogger(l *slog.Logger) Option {
	return func(r *runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// Run pushes files through t in order and writes each successful result to
// sink. Failures are collected in the summary. With StopOnError the first
// failure ends the run and is returned. Cancellation is checked between
// files; a file being transformed is always finished.
func Run(ctx context.Context, files []*File, t Transform, sink Sink, opts ...Option) (*Summary, error) {
	r := &runner{policy: ContinueOnError, logger: slog.Default()}
	for _, opt := range opts {
		opt(r)
	}

	start := time.Now()
	summary := &Summary{}
	defer func() { summary.Duration = time.Since(start) }()

	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Processed++

		res := t.Transform(ctx, f)
		if res.Err != nil {
			summary.Failures = append(summary.Failures, res)
			r.logger.Error("Failed to transform file", logfields.File(f.Path), logfields.Error(res.Err))
			if r.policy == StopOnError {
				return summary, res.Err
			}
			continue
		}
		if res.File == nil || res.File.IsNull() {
			summary.Skipped++
			continue
		}
		if err := sink.Write(res.File); err != nil {
			failed := Result{File: res.File, Err: fmt.Errorf("write %s: %w", res.File.Path, err)}
			summary.Failures = append(summary.Failures, failed)
			r.logger.Error("Failed to write file", logfields.File(res.File.Path), logfields.Error(err))
			if r.policy == StopOnError {
				return summary, failed.Err
			}
			continue
		}
		summary.Succeeded++
	}
	return summary, nil
}

// ReadGlob loads every file matching pattern as a buffered File whose Base is
// the static prefix of the pattern.
func ReadGlob(pattern string) ([]*File, error) {
	paths, err := scan.Files(pattern)
	if err != nil {
		return nil, err
	}
	base := scan.Base(pattern)
	files := make([]*File, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, NewFile(p, base, data))
	}
	return files, nil
}
