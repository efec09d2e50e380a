package assembly

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/assemble/internal/pipeline"
)

func TestTransform(t *testing.T) {
	a := newSite(t, map[string]string{"layouts/default.html": "<html>{% body %}</html>"})
	ctx := context.Background()

	t.Run("null file passes through", func(t *testing.T) {
		f := &pipeline.File{Path: "dir"}
		res := a.Transform(ctx, f)
		require.NoError(t, res.Err)
		assert.Same(t, f, res.File)
	})

	t.Run("stream is rejected", func(t *testing.T) {
		f := &pipeline.File{Path: "s.html", Stream: io.NopCloser(strings.NewReader("x"))}
		res := a.Transform(ctx, f)
		require.ErrorIs(t, res.Err, pipeline.ErrStreamingNotSupported)

		pe, ok := pipeline.AsPluginError(res.Err)
		require.True(t, ok)
		assert.Equal(t, PluginName, pe.Plugin)
		assert.NotErrorIs(t, res.Err, ErrLayoutNotFound)
	})

	t.Run("buffer is rendered", func(t *testing.T) {
		f := pipeline.NewFile("index.html", "", []byte("Hello"))
		res := a.Transform(ctx, f)
		require.NoError(t, res.Err)
		assert.Equal(t, "<html>Hello</html>", string(res.File.Contents))
		assert.Equal(t, "Hello", string(f.Contents))
		assert.Equal(t, "index.html", res.File.Path)
	})

	t.Run("failure is a plugin error", func(t *testing.T) {
		f := pipeline.NewFile("bad.html", "", []byte("---\nlayout: nope\n---\n"))
		res := a.Transform(ctx, f)
		require.Error(t, res.Err)

		pe, ok := pipeline.AsPluginError(res.Err)
		require.True(t, ok)
		assert.Equal(t, "could not assemble", pe.Message)
		assert.Equal(t, "bad.html", pe.File)
		assert.ErrorIs(t, res.Err, ErrLayoutNotFound)
	})
}

func TestTransform_RunContinuesAfterFailure(t *testing.T) {
	a := newSite(t, map[string]string{"layouts/default.html": "[{% body %}]"})
	files := []*pipeline.File{
		pipeline.NewFile("one.html", "", []byte("1")),
		pipeline.NewFile("bad.html", "", []byte(`{{partial "ghost"}}`)),
		pipeline.NewFile("two.html", "", []byte("2")),
	}
	sink := &pipeline.MemorySink{}

	summary, err := pipeline.Run(context.Background(), files, a, sink)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Succeeded)
	assert.Equal(t, 1, summary.Failed())
	require.Len(t, sink.Files, 2)
	assert.Equal(t, "[1]", string(sink.Files[0].Contents))
	assert.Equal(t, "[2]", string(sink.Files[1].Contents))
}
