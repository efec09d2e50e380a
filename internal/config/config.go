// Package config loads and resolves assembler configuration.
package config

// MaterialStrategy selects how the Material Registry exposes materials to templates.
type MaterialStrategy string

const (
	// StrategyPartials renders material notes and registers the dynamic `partial` helper.
	StrategyPartials MaterialStrategy = "partials"
	// StrategyFragments registers one class-injecting helper per material.
	StrategyFragments MaterialStrategy = "fragments"
)

// ErrorPolicy decides what the build does after a page fails.
type ErrorPolicy string

const (
	OnErrorContinue ErrorPolicy = "continue"
	OnErrorAbort    ErrorPolicy = "abort"
)

// Options configures one assembly. Zero-valued fields are filled from
// DefaultOptions by Resolve; user values win key by key.
type Options struct {
	// Layout is the layout identifier used when a page names none.
	Layout    string `yaml:"layout"`
	Layouts   string `yaml:"layouts"`
	Materials string `yaml:"materials"`
	Data      string `yaml:"data"`
	Docs      string `yaml:"docs"`
	// SkipDocs disables the docs store and the `docs` context key.
	SkipDocs bool             `yaml:"skip_docs"`
	Strategy MaterialStrategy `yaml:"strategy"`
	Strict   StrictOptions    `yaml:"strict"`
	// MaxPartialDepth bounds nested dynamic partial calls. Negative disables the guard.
	MaxPartialDepth int `yaml:"max_partial_depth"`
}

// StrictOptions turns silently tolerated source problems into errors.
type StrictOptions struct {
	// DuplicateIDs fails setup when two files in one store share an identifier.
	DuplicateIDs bool `yaml:"duplicate_ids"`
	// MissingBody fails a page whose layout has no body marker.
	MissingBody bool `yaml:"missing_body"`
}

// Config is the build-level configuration read from assemble.yaml.
type Config struct {
	// Root is the directory relative patterns are resolved against. Relative
	// roots are taken relative to the config file.
	Root     string        `yaml:"root,omitempty"`
	Assemble Options       `yaml:"assemble"`
	Pages    string        `yaml:"pages"`
	Output   OutputConfig  `yaml:"output"`
	Logging  LoggingConfig `yaml:"logging"`
	Metrics  MetricsConfig `yaml:"metrics"`
	OnError  ErrorPolicy   `yaml:"on_error"`
}

// OutputConfig controls where rendered pages are written.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"`
}

// LoggingConfig selects slog level and handler.
type LoggingConfig struct {
	Level  LogLevel  `yaml:"level"`
	Format LogFormat `yaml:"format"`
}

// MetricsConfig enables Prometheus output.
type MetricsConfig struct {
	// File receives a text-format snapshot after each build.
	File string `yaml:"file,omitempty"`
	// Listen serves /metrics while watching, e.g. ":9464".
	Listen string `yaml:"listen,omitempty"`
}
