package assembly

import (
	"html/template"

	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
	"git.home.luguber.info/inful/assemble/internal/logfields"
)

// loadDocs renders each document wholesale as markdown. Docs carry no
// front matter.
func (a *Assembly) loadDocs(pattern string) error {
	files, err := sourceFiles("docs", pattern)
	if err != nil {
		return err
	}
	for _, f := range files {
		b, err := readSource("docs", f)
		if err != nil {
			return err
		}
		html, err := a.md.Render(b)
		if err != nil {
			return foundation.WrapError(err, foundation.CategoryData, "failed to render doc").
				Fatal().
				WithContext("file", f).
				Build()
		}
		id := Identifier(f)
		if _, ok := a.docs[id]; ok {
			if err := a.duplicate("docs", id, f); err != nil {
				return err
			}
		}
		a.docs[id] = &Doc{
			Name:    DisplayName(id),
			Content: template.HTML(html), //nolint:gosec // markdown output is trusted site content
		}
	}
	a.logger.Debug("Loaded docs", logfields.Pattern(pattern), logfields.Count(len(a.docs)))
	return nil
}
