package assembly

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
	"git.home.luguber.info/inful/assemble/internal/logfields"
)

// loadData parses every data file with the decoder for its extension.
// A single malformed file fails setup.
func (a *Assembly) loadData(pattern string) error {
	files, err := sourceFiles("data", pattern)
	if err != nil {
		return err
	}
	for _, f := range files {
		b, err := readSource("data", f)
		if err != nil {
			return err
		}
		v, err := decodeData(f, b)
		if err != nil {
			return foundation.WrapError(err, foundation.CategoryData, "failed to parse data file").
				Fatal().
				WithContext("file", f).
				WithContext("format", strings.TrimPrefix(filepath.Ext(f), ".")).
				Build()
		}
		id := Identifier(f)
		if _, ok := a.data[id]; ok {
			if err := a.duplicate("data", id, f); err != nil {
				return err
			}
		}
		a.data[id] = v
	}
	a.logger.Debug("Loaded data", logfields.Pattern(pattern), logfields.Count(len(a.data)))
	return nil
}

// decodeData decodes one document: .json with encoding/json, anything else
// as YAML. An empty file yields nil.
func decodeData(path string, b []byte) (any, error) {
	var v any
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if len(bytes.TrimSpace(b)) == 0 {
			return nil, nil
		}
		if err := json.Unmarshal(b, &v); err != nil {
			return nil, err
		}
		return v, nil
	}
	if err := yaml.NewDecoder(bytes.NewReader(b)).Decode(&v); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return v, nil
}
