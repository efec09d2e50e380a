// Package build runs one complete assembly: set up the stores, push every
// page through the pipeline and write the results.
package build

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/assemble/internal/assembly"
	"git.home.luguber.info/inful/assemble/internal/config"
	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
	"git.home.luguber.info/inful/assemble/internal/logfields"
	"git.home.luguber.info/inful/assemble/internal/metrics"
	"git.home.luguber.info/inful/assemble/internal/pipeline"
)

// Report describes a finished build.
type Report struct {
	RunID    string
	Pages    int
	Written  []string
	Failures []pipeline.Result
	Duration time.Duration
	Outcome  metrics.BuildOutcomeLabel
}

// Runner builds a site from a resolved configuration.
type Runner struct {
	cfg      *config.Config
	logger   *slog.Logger
	recorder metrics.Recorder
}

// Option configures a Runner.
type Option func(*Runner)

// WithLogger sets the logger. Defaults to slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec metrics.Recorder) Option {
	return func(r *Runner) {
		if rec != nil {
			r.recorder = rec
		}
	}
}

// NewRunner returns a Runner for cfg.
func NewRunner(cfg *config.Config, opts ...Option) *Runner {
	r := &Runner{cfg: cfg, logger: slog.Default(), recorder: metrics.NoopRecorder{}}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Run performs one build with a fresh Assembly. Setup errors abort before
// any page is read. Page failures are collected in the report; with the
// abort policy the first one ends the build. A non-nil error is returned
// whenever at least one page failed.
func (r *Runner) Run(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{RunID: uuid.NewString()}
	logger := r.logger.With(logfields.RunID(report.RunID))
	defer func() {
		report.Duration = time.Since(start)
		r.recorder.ObserveBuildDuration(report.Duration)
		r.recorder.IncBuildOutcome(report.Outcome)
	}()

	report.Outcome = metrics.BuildOutcomeFailed

	a, err := assembly.New(r.cfg.Assemble,
		assembly.WithLogger(logger),
		assembly.WithRecorder(r.recorder))
	if err != nil {
		return report, err
	}

	files, err := pipeline.ReadGlob(r.cfg.Pages)
	if err != nil {
		return report, foundation.WrapError(err, foundation.CategoryFileSystem, "failed to read pages").
			Fatal().
			WithContext("pattern", r.cfg.Pages).
			Build()
	}
	report.Pages = len(files)
	if len(files) == 0 {
		logger.Warn("No pages matched", logfields.Pattern(r.cfg.Pages))
	}

	if r.cfg.Output.Clean {
		if err := cleanDir(r.cfg.Output.Directory); err != nil {
			return report, err
		}
	}

	policy := pipeline.ContinueOnError
	if r.cfg.OnError == config.OnErrorAbort {
		policy = pipeline.StopOnError
	}
	sink := pipeline.NewDirSink(r.cfg.Output.Directory)
	summary, runErr := pipeline.Run(ctx, files, a, sink,
		pipeline.WithPolicy(policy),
		pipeline.WithLogger(logger))
	report.Written = sink.Written
	report.Failures = summary.Failures

	logger.Info("Build finished",
		logfields.Count(summary.Processed),
		slog.Int("written", summary.Succeeded),
		slog.Int("failed", summary.Failed()),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))

	switch {
	case errors.Is(runErr, context.Canceled), errors.Is(runErr, context.DeadlineExceeded):
		report.Outcome = metrics.BuildOutcomeCanceled
		return report, runErr
	case summary.Failed() > 0:
		if summary.Succeeded > 0 {
			report.Outcome = metrics.BuildOutcomePartial
		}
		return report, foundation.RenderError(fmt.Sprintf("%d of %d pages failed", summary.Failed(), summary.Processed)).
			WithCause(summary.Failures[0].Err).
			WithContext("failed", summary.Failed()).
			Build()
	}
	report.Outcome = metrics.BuildOutcomeSuccess
	return report, nil
}

// cleanDir empties dir, refusing obviously dangerous targets.
func cleanDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "failed to resolve output directory").Fatal().Build()
	}
	wd, _ := os.Getwd()
	if abs == filepath.Dir(abs) || abs == wd {
		return foundation.ValidationError("refusing to clean output directory").
			WithContext("dir", abs).
			Build()
	}
	if err := os.RemoveAll(abs); err != nil {
		return foundation.WrapError(err, foundation.CategoryFileSystem, "failed to clean output directory").
			Fatal().
			WithContext("dir", abs).
			Build()
	}
	return nil
}
