// Package commands implements the assemble subcommands.
package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/assemble/internal/config"
)

// LogLevelEnv overrides the log level when -v is not given.
const LogLevelEnv = "ASSEMBLE_LOG_LEVEL"

// Global is shared state handed to every command's Run.
type Global struct {
	Logger *slog.Logger
}

func (g *Global) log() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"assemble.yaml" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build   BuildCmd   `cmd:"" default:"withargs" help:"Assemble every page once"`
	Watch   WatchCmd   `cmd:"" help:"Build, then rebuild whenever sources change"`
	Inspect InspectCmd `cmd:"" help:"Show the layouts, data, materials and docs templates can use"`
	Init    InitCmd    `cmd:"" help:"Write an example configuration file"`

	stderr io.Writer `kong:"-"`
}

// AfterApply runs after flag parsing; it installs a default logger that
// command-specific configuration may replace.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply(g *Global) error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	} else if env := os.Getenv(LogLevelEnv); env != "" {
		level = slogLevel(config.NormalizeLogLevel(env))
	}
	c.setLogger(g, slog.New(slog.NewTextHandler(c.errOut(), &slog.HandlerOptions{Level: level})))
	return nil
}

// loadConfig reads the configuration and applies its logging section.
func (c *CLI) loadConfig(g *Global) (*config.Config, error) {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return nil, err
	}
	c.configureLogging(g, cfg.Logging)
	return cfg, nil
}

// configureLogging replaces the default logger according to cfg. The -v
// flag and ASSEMBLE_LOG_LEVEL take precedence over the configured level.
func (c *CLI) configureLogging(g *Global, cfg config.LoggingConfig) {
	level := slogLevel(cfg.Level)
	if env := os.Getenv(LogLevelEnv); env != "" {
		level = slogLevel(config.NormalizeLogLevel(env))
	}
	if c.Verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(c.errOut(), opts)
	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(c.errOut(), opts)
	}
	c.setLogger(g, slog.New(handler))
}

func (c *CLI) setLogger(g *Global, l *slog.Logger) {
	if g != nil {
		g.Logger = l
	}
	slog.SetDefault(l)
}

func (c *CLI) errOut() io.Writer {
	if c.stderr != nil {
		return c.stderr
	}
	return os.Stderr
}

func slogLevel(l config.LogLevel) slog.Level {
	switch config.LogLevel(strings.ToLower(string(l))) {
	case config.LogLevelDebug:
		return slog.LevelDebug
	case config.LogLevelWarn:
		return slog.LevelWarn
	case config.LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
