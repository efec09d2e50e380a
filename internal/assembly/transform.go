package assembly

import (
	"context"

	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
	"git.home.luguber.info/inful/assemble/internal/metrics"
	"git.home.luguber.info/inful/assemble/internal/pipeline"
)

// PluginName identifies the assembler in pipeline errors.
const PluginName = "assemble"

// Transform adapts Render to the host pipeline. Null files pass through,
// streamed files are rejected, and buffered files come back with their
// contents replaced by the rendered page.
func (a *Assembly) Transform(_ context.Context, f *pipeline.File) pipeline.Result {
	switch {
	case f.IsNull():
		a.recorder.IncPageResult(metrics.ResultSkipped)
		return pipeline.Result{File: f}
	case f.IsStream():
		return pipeline.Result{
			File: f,
			Err:  pipeline.NewPluginError(PluginName, f.Path, "streaming not supported", pipeline.ErrStreamingNotSupported),
		}
	}

	out, err := a.Render(f.Path, f.Contents)
	if err != nil {
		msg, cause := "could not assemble", err
		if ce, ok := foundation.AsClassified(err); ok && ce.Cause() != nil {
			msg, cause = ce.Message(), ce.Cause()
		}
		return pipeline.Result{File: f, Err: pipeline.NewPluginError(PluginName, f.Path, msg, cause)}
	}

	res := *f
	res.Contents = out
	return pipeline.Result{File: &res}
}

var _ pipeline.Transform = (*Assembly)(nil)
