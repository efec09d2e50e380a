package pipeline

import (
	"errors"
	"fmt"

	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
)

// ErrStreamingNotSupported is returned for files whose content is a stream.
var ErrStreamingNotSupported = foundation.UnsupportedError("streaming not supported").Build()

// PluginError is the error a transform reports for a single file.
type PluginError struct {
	Plugin  string
	Message string
	File    string
	Cause   error
}

// NewPluginError wraps cause for the file at path.
func NewPluginError(plugin, path, message string, cause error) *PluginError {
	return &PluginError{Plugin: plugin, Message: message, File: path, Cause: cause}
}

func (e *PluginError) Error() string {
	msg := e.Plugin + ": " + e.Message
	if e.File != "" {
		msg += fmt.Sprintf(" (%s)", e.File)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *PluginError) Unwrap() error {
	return e.Cause
}

// AsPluginError reports whether err wraps a *PluginError.
func AsPluginError(err error) (*PluginError, bool) {
	var pe *PluginError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
