package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
)

func TestResolve_FillsDefaults(t *testing.T) {
	opts, err := Options{}.Resolve()
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)
}

func TestResolve_UserValuesWin(t *testing.T) {
	opts, err := Options{
		Layout:          "article",
		Materials:       "parts/**/*",
		Strategy:        StrategyFragments,
		MaxPartialDepth: -1,
	}.Resolve()
	require.NoError(t, err)

	assert.Equal(t, "article", opts.Layout)
	assert.Equal(t, "parts/**/*", opts.Materials)
	assert.Equal(t, StrategyFragments, opts.Strategy)
	assert.Equal(t, -1, opts.MaxPartialDepth)
	assert.Equal(t, DefaultLayouts, opts.Layouts)
	assert.Equal(t, DefaultData, opts.Data)
	assert.Equal(t, DefaultDocs, opts.Docs)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultPages, cfg.Pages)
	assert.Equal(t, DefaultOutputDirectory, cfg.Output.Directory)
	assert.Equal(t, LogLevelInfo, cfg.Logging.Level)
	assert.Equal(t, LogFormatText, cfg.Logging.Format)
	assert.Equal(t, OnErrorContinue, cfg.OnError)
	assert.Equal(t, DefaultOptions(), cfg.Assemble)
	require.NoError(t, cfg.Validate())
}

func TestParse(t *testing.T) {
	cfg, err := Parse(strings.NewReader(`
assemble:
  layout: page
  strategy: Fragment
  skip_docs: true
  strict:
    missing_body: true
pages: views/**/*.html
on_error: stop
logging:
  level: WARNING
`))
	require.NoError(t, err)

	assert.Equal(t, "page", cfg.Assemble.Layout)
	assert.Equal(t, StrategyFragments, cfg.Assemble.Strategy)
	assert.True(t, cfg.Assemble.SkipDocs)
	assert.True(t, cfg.Assemble.Strict.MissingBody)
	assert.False(t, cfg.Assemble.Strict.DuplicateIDs)
	assert.Equal(t, DefaultMaxPartialDepth, cfg.Assemble.MaxPartialDepth)
	assert.Equal(t, "views/**/*.html", cfg.Pages)
	assert.Equal(t, OnErrorAbort, cfg.OnError)
	assert.Equal(t, LogLevelWarn, cfg.Logging.Level)
}

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_RejectsUnknownKeys(t *testing.T) {
	_, err := Parse(strings.NewReader("assemble:\n  layuot: x\n"))
	require.Error(t, err)
}

func TestParse_RejectsUnknownStrategy(t *testing.T) {
	_, err := Parse(strings.NewReader("assemble:\n  strategy: handlebars\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "handlebars")
}

func TestLoad_ResolvesRelativeToConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "assemble.yaml")
	require.NoError(t, os.WriteFile(path, []byte("root: site\noutput:\n  directory: public\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	base := filepath.Join(dir, "site")
	assert.Equal(t, filepath.Join(base, "src/views/layouts/**/*"), cfg.Assemble.Layouts)
	assert.Equal(t, filepath.Join(base, "src/views/*.html"), cfg.Pages)
	assert.Equal(t, filepath.Join(base, "public"), cfg.Output.Directory)
}

func TestLoad_ExpandsEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ASSEMBLE_TEST_LAYOUT", "landing")
	path := filepath.Join(dir, "assemble.yaml")
	require.NoError(t, os.WriteFile(path, []byte("assemble:\n  layout: ${ASSEMBLE_TEST_LAYOUT}\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "landing", cfg.Assemble.Layout)
}

func TestLoad_ReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("ASSEMBLE_TEST_OUT=from-dotenv\n"), 0o600))
	path := filepath.Join(dir, "assemble.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  directory: ${ASSEMBLE_TEST_OUT}\n"), 0o600))
	t.Cleanup(func() { _ = os.Unsetenv("ASSEMBLE_TEST_OUT") })

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "from-dotenv"), cfg.Output.Directory)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, foundation.HasCategory(err, foundation.CategoryConfig))
}

func TestValidate(t *testing.T) {
	t.Run("empty layout", func(t *testing.T) {
		cfg := Default()
		cfg.Assemble.Layout = ""
		err := cfg.Validate()
		require.Error(t, err)
		assert.True(t, foundation.HasCategory(err, foundation.CategoryValidation))
	})

	t.Run("bad pattern", func(t *testing.T) {
		cfg := Default()
		cfg.Assemble.Materials = "src/[materials"
		err := cfg.Validate()
		require.Error(t, err)
		ce, ok := foundation.AsClassified(err)
		require.True(t, ok)
		assert.Equal(t, "assemble.materials", ce.Context()["key"])
	})
}

func TestInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assemble.yaml")
	require.NoError(t, Init(path, false))
	require.Error(t, Init(path, false))
	require.NoError(t, Init(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultLayout, cfg.Assemble.Layout)
	assert.True(t, cfg.Output.Clean)
}
