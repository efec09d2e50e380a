package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
)

// DefaultConfigFile is looked up in the working directory when no path is given.
const DefaultConfigFile = "assemble.yaml"

var envFiles = []string{".env", ".env.local"}

// Load reads, expands and resolves the configuration at configPath.
//
// Variables from .env and .env.local are loaded first without overriding the
// process environment, then ${VAR} references in the file are expanded.
// Relative patterns are resolved against Root, itself relative to the
// directory holding the config file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles(filepath.Dir(configPath))

	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, foundation.ConfigError("configuration file not found").
				WithContext("path", configPath).
				Build()
		}
		return nil, foundation.WrapError(err, foundation.CategoryConfig, "failed to read config file").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	cfg, err := Parse(bytes.NewReader([]byte(os.ExpandEnv(string(data)))))
	if err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryConfig, "invalid configuration").
			Fatal().
			WithContext("path", configPath).
			Build()
	}

	base := filepath.Dir(configPath)
	if cfg.Root != "" {
		if filepath.IsAbs(cfg.Root) {
			base = cfg.Root
		} else {
			base = filepath.Join(base, cfg.Root)
		}
	}
	cfg.ResolvePaths(base)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML configuration, rejecting unknown keys, and applies defaults.
func Parse(r io.Reader) (*Config, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	cfg := &Config{}
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.ApplyDefaults(); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ResolvePaths joins every relative pattern and the output directory onto base.
func (c *Config) ResolvePaths(base string) {
	if base == "" || base == "." {
		return
	}
	join := func(p *string) {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(base, *p)
		}
	}
	join(&c.Assemble.Layouts)
	join(&c.Assemble.Materials)
	join(&c.Assemble.Data)
	join(&c.Assemble.Docs)
	join(&c.Pages)
	join(&c.Output.Directory)
	if c.Metrics.File != "" {
		join(&c.Metrics.File)
	}
}

func loadEnvFiles(dir string) {
	for _, name := range envFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		// godotenv.Load never overrides variables already set in the environment.
		if err := godotenv.Load(path); err != nil {
			slog.Warn("Failed to load env file", "path", path, "error", err)
			continue
		}
		slog.Debug("Loaded environment variables", "path", path)
	}
}
