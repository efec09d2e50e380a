package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRunID      = "run_id"
	KeyFile       = "file"
	KeyLayout     = "layout"
	KeyCollection = "collection"
	KeyMaterial   = "material"
	KeyPattern    = "pattern"
	KeyStage      = "stage"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeyError      = "error"
)

func RunID(id string) slog.Attr         { return slog.String(KeyRunID, id) }
func File(path string) slog.Attr        { return slog.String(KeyFile, path) }
func Layout(id string) slog.Attr        { return slog.String(KeyLayout, id) }
func Collection(name string) slog.Attr  { return slog.String(KeyCollection, name) }
func Material(id string) slog.Attr      { return slog.String(KeyMaterial, id) }
func Pattern(glob string) slog.Attr     { return slog.String(KeyPattern, glob) }
func Stage(name string) slog.Attr       { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr             { return slog.Int(KeyCount, n) }
func DurationMS(ms float64) slog.Attr   { return slog.Float64(KeyDurationMS, ms) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
