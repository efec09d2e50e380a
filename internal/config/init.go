package config

import (
	"fmt"
	"os"
)

const exampleConfig = `# assemble configuration
assemble:
  # Layout used when a page does not set "layout" in its front matter.
  layout: default
  layouts: src/views/layouts/**/*
  materials: src/materials/**/*
  data: src/data/**/*.{json,yml,yaml}
  docs: src/docs/**/*.md
  # partials: notes + {{partial "name" .}} helper
  # fragments: one helper per material that adds CSS classes to its first element
  strategy: partials
  strict:
    duplicate_ids: false
    missing_body: false
  max_partial_depth: 32

pages: src/views/*.html

output:
  directory: dist
  clean: true

logging:
  level: info
  format: text

# continue | abort
on_error: continue
`

// Init writes an example configuration file.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}
	if err := os.WriteFile(configPath, []byte(exampleConfig), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
