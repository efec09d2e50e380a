package commands

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/assemble/internal/build"
	"git.home.luguber.info/inful/assemble/internal/metrics"
	"git.home.luguber.info/inful/assemble/internal/scan"
	"git.home.luguber.info/inful/assemble/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Output   string        `short:"o" help:"Override output.directory"`
	Debounce time.Duration `default:"300ms" help:"Quiet period before a rebuild starts"`
	Metrics  string        `name:"metrics-listen" help:"Serve Prometheus metrics on this address (overrides metrics.listen)"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	if w.Output != "" {
		cfg.Output.Directory = w.Output
	}
	listen := cfg.Metrics.Listen
	if w.Metrics != "" {
		listen = w.Metrics
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := []build.Option{build.WithLogger(g.log())}
	if listen != "" {
		reg := prom.NewRegistry()
		opts = append(opts, build.WithRecorder(metrics.NewPrometheusRecorder(reg)))
		srv := &http.Server{Addr: listen, Handler: metricsMux(reg), ReadHeaderTimeout: 5 * time.Second}
		go func() {
			g.log().Info("Serving metrics", "addr", listen)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				g.log().Error("Metrics server failed", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
			defer c()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	rebuild := func(ctx context.Context) error {
		_, err := build.NewRunner(cfg, opts...).Run(ctx)
		return err
	}
	if err := rebuild(ctx); err != nil {
		g.log().Warn("Initial build failed; watching for changes", "error", err)
	}

	dirs := scan.Dirs(cfg.Assemble.Layouts, cfg.Assemble.Materials, cfg.Assemble.Data, cfg.Assemble.Docs, cfg.Pages)
	dirs = withoutOutput(dirs, cfg.Output.Directory)
	g.log().Info("Watching for changes", "dirs", dirs)

	return watch.New(dirs, rebuild, watch.WithDebounce(w.Debounce), watch.WithLogger(g.log())).Run(ctx)
}

func metricsMux(reg *prom.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	return mux
}

// withoutOutput drops the output directory so writing pages does not
// trigger another build.
func withoutOutput(dirs []string, output string) []string {
	out, err := filepath.Abs(output)
	if err != nil {
		return dirs
	}
	kept := dirs[:0:0]
	for _, d := range dirs {
		abs, err := filepath.Abs(d)
		if err == nil && abs == out {
			continue
		}
		if _, err := os.Stat(d); err != nil {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}
