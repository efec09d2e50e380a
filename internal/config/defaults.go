package config

import "dario.cat/mergo"

const (
	DefaultLayout          = "default"
	DefaultLayouts         = "src/views/layouts/**/*"
	DefaultMaterials       = "src/materials/**/*"
	DefaultData            = "src/data/**/*.{json,yml,yaml}"
	DefaultDocs            = "src/docs/**/*.md"
	DefaultPages           = "src/views/*.html"
	DefaultOutputDirectory = "dist"
	DefaultMaxPartialDepth = 32
)

// DefaultOptions returns the built-in assembly options.
func DefaultOptions() Options {
	return Options{
		Layout:          DefaultLayout,
		Layouts:         DefaultLayouts,
		Materials:       DefaultMaterials,
		Data:            DefaultData,
		Docs:            DefaultDocs,
		Strategy:        StrategyPartials,
		MaxPartialDepth: DefaultMaxPartialDepth,
	}
}

// Resolve overlays o onto DefaultOptions. Every non-zero field of o wins.
func (o Options) Resolve() (Options, error) {
	out := o
	if err := mergo.Merge(&out, DefaultOptions()); err != nil {
		return Options{}, err
	}
	return out, nil
}

// Default returns a Config with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	_ = cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills unset fields in place.
func (c *Config) ApplyDefaults() error {
	opts, err := c.Assemble.Resolve()
	if err != nil {
		return err
	}
	c.Assemble = opts

	defaults := Config{
		Pages:   DefaultPages,
		Output:  OutputConfig{Directory: DefaultOutputDirectory},
		Logging: LoggingConfig{Level: LogLevelInfo, Format: LogFormatText},
		OnError: OnErrorContinue,
	}
	return mergo.Merge(c, defaults)
}
