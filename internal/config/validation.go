package config

import (
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
)

// Validate checks a resolved configuration.
func (c *Config) Validate() error {
	if c.Assemble.Layout == "" {
		return foundation.ValidationError("default layout identifier cannot be empty").Build()
	}

	patterns := map[string]string{
		"assemble.layouts":   c.Assemble.Layouts,
		"assemble.materials": c.Assemble.Materials,
		"assemble.data":      c.Assemble.Data,
		"assemble.docs":      c.Assemble.Docs,
		"pages":              c.Pages,
	}
	for key, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return foundation.ValidationError("invalid glob pattern").
				WithContext("key", key).
				WithContext("pattern", pattern).
				Build()
		}
	}

	switch c.Assemble.Strategy {
	case StrategyPartials, StrategyFragments:
	default:
		return foundation.ValidationError("unknown material strategy").
			WithContext("strategy", string(c.Assemble.Strategy)).
			Build()
	}

	if c.Output.Directory == "" {
		return foundation.ValidationError("output directory cannot be empty").Build()
	}
	return nil
}
