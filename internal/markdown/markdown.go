// Package markdown converts Markdown source to HTML for material notes and docs.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts CommonMark with bare-URL linkification and GFM tables,
// strikethrough and task lists. Raw HTML in the source is omitted.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer. A Renderer is safe for concurrent use.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render converts src to HTML.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderString is Render for string input.
func (r *Renderer) RenderString(src string) (string, error) {
	return r.Render([]byte(src))
}
