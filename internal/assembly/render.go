package assembly

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"strings"
	"time"
	"unicode"

	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
	"git.home.luguber.info/inful/assemble/internal/frontmatter"
	"git.home.luguber.info/inful/assemble/internal/logfields"
	"git.home.luguber.info/inful/assemble/internal/metrics"
)

var (
	// ErrLayoutNotFound is returned when a page selects an unknown layout.
	ErrLayoutNotFound = errors.New("layout not found")
	// ErrPartialDepth is returned when dynamic partials nest deeper than
	// the configured maximum.
	ErrPartialDepth = errors.New("partial nesting too deep")
)

// Render assembles one page. name identifies the page in errors and logs.
//
// Every failure is reported as a render error with the message
// "could not assemble"; the underlying cause stays reachable through
// errors.Is and errors.As.
func (a *Assembly) Render(name string, raw []byte) ([]byte, error) {
	a.renderMu.Lock()
	defer a.renderMu.Unlock()

	start := time.Now()
	out, err := a.render(name, raw)
	a.recorder.ObservePageDuration(time.Since(start))
	if err != nil {
		a.recorder.IncPageResult(metrics.ResultFailed)
		return nil, foundation.RenderError("could not assemble").
			WithCause(err).
			WithContext("file", name).
			Build()
	}
	a.recorder.IncPageResult(metrics.ResultSuccess)
	a.logger.Debug("Rendered page", logfields.File(name),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
	return out, nil
}

func (a *Assembly) render(name string, raw []byte) ([]byte, error) {
	a.depth = 0

	matter, err := frontmatter.Parse(raw)
	if err != nil {
		return nil, err
	}

	layoutID := a.layoutFor(matter.Data)
	layout, ok := a.layouts[layoutID]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrLayoutNotFound, layoutID)
	}
	if a.opts.Strict.MissingBody && !HasBodyMarker(layout) {
		return nil, fmt.Errorf("%w: %q", ErrMissingBodyMarker, layoutID)
	}
	src := Wrap(matter.Content, layout)

	set, err := a.partials.Clone()
	if err != nil {
		return nil, err
	}
	page, err := set.New("page:" + name).Parse(src)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, a.BuildContext(matter.Data)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// layoutFor returns the page's layout key, or the default layout when the
// key is absent or empty.
func (a *Assembly) layoutFor(page map[string]any) string {
	switch v := page[KeyLayout].(type) {
	case nil:
		return a.opts.Layout
	case string:
		if v == "" {
			return a.opts.Layout
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Partial renders a registered partial against ctx merged into the global
// context, as the partial helper does inside templates.
func (a *Assembly) Partial(name string, ctx map[string]any) (template.HTML, error) {
	a.renderMu.Lock()
	defer a.renderMu.Unlock()
	a.depth = 0
	return a.partial(name, ctx)
}

// partial implements {{partial "name" ctx}}. It runs on the rendering
// goroutine with renderMu already held.
func (a *Assembly) partial(name string, args ...any) (template.HTML, error) {
	if limit := a.opts.MaxPartialDepth; limit >= 0 && a.depth >= limit {
		return "", fmt.Errorf("%w: %q at depth %d", ErrPartialDepth, name, a.depth)
	}
	override, err := contextArg(args)
	if err != nil {
		return "", fmt.Errorf("partial %q: %w", name, err)
	}
	t, err := a.partials.Lookup(name)
	if err != nil {
		return "", err
	}

	a.depth++
	defer func() { a.depth-- }()

	var buf bytes.Buffer
	if err := t.Execute(&buf, a.BuildContext(override)); err != nil {
		return "", err
	}
	return template.HTML(strings.TrimLeftFunc(buf.String(), unicode.IsSpace)), nil //nolint:gosec // rendered by html/template
}
