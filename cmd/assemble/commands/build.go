package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/assemble/internal/build"
	"git.home.luguber.info/inful/assemble/internal/config"
	"git.home.luguber.info/inful/assemble/internal/metrics"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Output string `short:"o" help:"Override output.directory"`
	Abort  bool   `help:"Stop at the first page that fails (on_error: abort)"`

	stdout io.Writer `kong:"-"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	b.applyOverrides(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return RunBuild(ctx, g, cfg, b.out())
}

func (b *BuildCmd) applyOverrides(cfg *config.Config) {
	if b.Output != "" {
		cfg.Output.Directory = b.Output
	}
	if b.Abort {
		cfg.OnError = config.OnErrorAbort
	}
}

func (b *BuildCmd) out() io.Writer {
	if b.stdout != nil {
		return b.stdout
	}
	return os.Stdout
}

// RunBuild performs one build and prints a summary to out. When
// metrics.file is set the registry is written there afterwards, whatever
// the outcome.
//
//nolint:forbidigo // fmt is used for user-facing messages
func RunBuild(ctx context.Context, g *Global, cfg *config.Config, out io.Writer) error {
	var reg *prom.Registry
	opts := []build.Option{build.WithLogger(g.log())}
	if cfg.Metrics.File != "" {
		reg = prom.NewRegistry()
		opts = append(opts, build.WithRecorder(metrics.NewPrometheusRecorder(reg)))
	}

	report, err := build.NewRunner(cfg, opts...).Run(ctx)

	if reg != nil {
		if werr := metrics.WriteTextfile(reg, cfg.Metrics.File); werr != nil {
			g.log().Warn("Failed to write metrics", "file", cfg.Metrics.File, "error", werr)
		}
	}

	if report != nil {
		_, _ = fmt.Fprintf(out, "Assembled %d of %d pages into %s in %s\n",
			len(report.Written), report.Pages, cfg.Output.Directory, report.Duration.Round(time.Millisecond))
		for _, f := range report.Failures {
			_, _ = fmt.Fprintf(out, "  failed: %s: %v\n", f.File.Path, f.Err)
		}
	}
	return err
}
