package assembly

import (
	"fmt"
	"html/template"

	"git.home.luguber.info/inful/assemble/internal/config"
	"git.home.luguber.info/inful/assemble/internal/frontmatter"
)

// Strategy decides what the Material Registry exposes to templates beyond
// the static partials every strategy registers.
type Strategy interface {
	Name() config.MaterialStrategy
	// Notes derives the display notes for one material.
	Notes(a *Assembly, m *frontmatter.Matter) (template.HTML, error)
	// Funcs returns template functions to install once all materials are loaded.
	Funcs(a *Assembly) template.FuncMap
}

// StrategyFor returns the built-in strategy with the given name.
func StrategyFor(name config.MaterialStrategy) (Strategy, error) {
	switch name {
	case config.StrategyPartials, "":
		return partialsStrategy{}, nil
	case config.StrategyFragments:
		return fragmentsStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown material strategy %q", name)
	}
}

// partialsStrategy renders "notes" front matter and installs the partial helper.
type partialsStrategy struct{}

func (partialsStrategy) Name() config.MaterialStrategy { return config.StrategyPartials }

func (partialsStrategy) Notes(a *Assembly, m *frontmatter.Matter) (template.HTML, error) {
	raw, ok := m.Data["notes"]
	if !ok || raw == nil {
		return "", nil
	}
	src, ok := raw.(string)
	if !ok {
		src = fmt.Sprint(raw)
	}
	if src == "" {
		return "", nil
	}
	html, err := a.md.RenderString(src)
	if err != nil {
		return "", err
	}
	return template.HTML(html), nil //nolint:gosec // notes are authored site content
}

func (partialsStrategy) Funcs(a *Assembly) template.FuncMap {
	return template.FuncMap{"partial": a.partial}
}
