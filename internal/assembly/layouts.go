package assembly

import (
	"os"

	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
	"git.home.luguber.info/inful/assemble/internal/logfields"
	"git.home.luguber.info/inful/assemble/internal/scan"
)

// sourceFiles resolves pattern, classifying glob failures.
func sourceFiles(store, pattern string) ([]string, error) {
	files, err := scan.Files(pattern)
	if err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryFileSystem, "failed to resolve source pattern").
			Fatal().
			WithContext("store", store).
			WithContext("pattern", pattern).
			Build()
	}
	return files, nil
}

func readSource(store, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, foundation.WrapError(err, foundation.CategoryFileSystem, "failed to read source file").
			Fatal().
			WithContext("store", store).
			WithContext("file", path).
			Build()
	}
	return b, nil
}

// loadLayouts stores each layout's raw text. Template syntax is not checked
// here; errors surface when a page using the layout renders.
func (a *Assembly) loadLayouts(pattern string) error {
	files, err := sourceFiles("layouts", pattern)
	if err != nil {
		return err
	}
	for _, f := range files {
		b, err := readSource("layouts", f)
		if err != nil {
			return err
		}
		id := Identifier(f)
		if _, ok := a.layouts[id]; ok {
			if err := a.duplicate("layouts", id, f); err != nil {
				return err
			}
		}
		a.layouts[id] = string(b)
	}
	a.logger.Debug("Loaded layouts", logfields.Pattern(pattern), logfields.Count(len(a.layouts)))
	return nil
}
