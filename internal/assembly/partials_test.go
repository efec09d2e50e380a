package assembly

import (
	"errors"
	"html/template"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/assemble/internal/config"
)

func TestPartialStore_LookupCaches(t *testing.T) {
	s := NewPartialStore()
	s.Register("card", "<b>{{.}}</b>")

	first, err := s.Lookup("card")
	require.NoError(t, err)
	second, err := s.Lookup("card")
	require.NoError(t, err)
	assert.Same(t, first, second)

	s.Register("card", "<i>{{.}}</i>")
	third, err := s.Lookup("card")
	require.NoError(t, err)
	assert.NotSame(t, first, third)
}

func TestPartialStore_NotFound(t *testing.T) {
	_, err := NewPartialStore().Lookup("nope")
	require.ErrorIs(t, err, ErrPartialNotFound)
}

func TestPartialStore_BrokenPartialIsIsolated(t *testing.T) {
	s := NewPartialStore()
	s.Register("good", "ok")
	s.Register("bad", "{{end}}")

	_, err := s.Lookup("good")
	require.NoError(t, err)
	_, err = s.Lookup("bad")
	require.Error(t, err)

	set, err := s.Clone()
	require.NoError(t, err)
	assert.NotNil(t, set.Lookup("good"))
	assert.Nil(t, set.Lookup("bad"))
}

func TestPartialStore_Funcs(t *testing.T) {
	s := NewPartialStore()
	s.Funcs(template.FuncMap{"shout": func(v string) string { return v + "!" }})
	s.Register("hey", `{{shout "hey"}}`)

	_, err := s.Lookup("hey")
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	src, ok := s.Source("hey")
	assert.True(t, ok)
	assert.Equal(t, `{{shout "hey"}}`, src)
}

func TestPartialHelper_RoundTrip(t *testing.T) {
	a := newSite(t, map[string]string{
		"layouts/default.html":      "{% body %}",
		"materials/cards/card.html": `<div class="card">{{.title}}</div>`,
	})

	front := "---\ntitle: Welcome\n---\n"
	dynamic := render(t, a, front+`{{partial "card" .}}`)
	static := render(t, a, front+`{{template "card" .}}`)
	assert.Equal(t, static, dynamic)
	assert.Equal(t, `<div class="card">Welcome</div>`, dynamic)

	assert.Equal(t, `<div class="card">Other</div>`, render(t, a, `{{partial "card" (dict "title" "Other")}}`))
}

func TestPartialHelper_SeesGlobalContext(t *testing.T) {
	a := newSite(t, map[string]string{
		"layouts/default.html":       "{% body %}",
		"data/site.yml":              "name: Acme",
		"materials/brand/brand.html": "{{.site.name}}{{.extra}}",
	})

	assert.Equal(t, "Acme", render(t, a, `{{partial "brand"}}`))
	assert.Equal(t, "Acme", render(t, a, `{{partial "brand" nil}}`))
	assert.Equal(t, "Acme Inc", render(t, a, `{{partial "brand" (dict "extra" " Inc")}}`))
	assert.Equal(t, "Acme&#43;", render(t, a, `{{partial "brand" (dict "extra" "+")}}`))
}

func TestPartialHelper_StructAndIntKeyedContexts(t *testing.T) {
	a := newSite(t, map[string]string{
		"layouts/default.html":        "{% body %}",
		"data/codes.yml":              "1: one\n2: two\n",
		"materials/cards/card.html":   "<b>{{.Name}}</b>",
		"materials/cards/teaser.html": "<i>{{.Name}}</i>",
		"materials/misc/codes.html":   `{{index . "1"}}-{{index . "2"}}`,
	})

	assert.Equal(t, "<b>Card</b><i>Teaser</i>",
		render(t, a, `{{range $id, $m := .materials.cards.Items}}{{partial $id $m}}{{end}}`))
	assert.Equal(t, "one-two", render(t, a, `{{partial "codes" .codes}}`))
}

func TestPartialHelper_TrimsLeadingWhitespace(t *testing.T) {
	a := newSite(t, map[string]string{
		"layouts/default.html":     "[{% body %}]",
		"materials/bits/item.html": "\n   <li>x</li>\n",
	})

	assert.Equal(t, "[<li>x</li>\n]", render(t, a, `{{partial "item"}}`))
}

func TestPartialHelper_NotEscapedAgain(t *testing.T) {
	a := newSite(t, map[string]string{
		"layouts/default.html":     "{% body %}",
		"materials/bits/bold.html": "<b>{{.text}}</b>",
	})

	assert.Equal(t, "<b>a &amp; b</b>", render(t, a, `{{partial "bold" (dict "text" "a & b")}}`))
}

func TestPartialHelper_Unregistered(t *testing.T) {
	a := newSite(t, map[string]string{"layouts/default.html": "{% body %}"})

	_, err := a.Render("page.html", []byte(`{{partial "ghost"}}`))
	require.ErrorIs(t, err, ErrPartialNotFound)
}

func TestPartialHelper_BadContext(t *testing.T) {
	a := newSite(t, map[string]string{
		"layouts/default.html":  "{% body %}",
		"materials/x/card.html": "card",
	})

	_, err := a.Render("page.html", []byte(`{{partial "card" "not a map"}}`))
	require.Error(t, err)
}

func TestPartialHelper_DepthGuard(t *testing.T) {
	a := newSite(t, map[string]string{
		"layouts/default.html":   "{% body %}",
		"materials/x/loop.html":  `{{partial "loop" .}}`,
		"materials/x/leaf.html":  "leaf",
		"materials/x/outer.html": `{{partial "leaf"}}`,
	}, func(o *config.Options) { o.MaxPartialDepth = 3 })

	_, err := a.Render("page.html", []byte(`{{partial "loop"}}`))
	require.ErrorIs(t, err, ErrPartialDepth)

	// The counter is reset between pages.
	assert.Equal(t, "leaf", render(t, a, `{{partial "outer"}}`))
}

func TestPartial_Direct(t *testing.T) {
	a := newSite(t, map[string]string{
		"materials/cards/card.html": `<p>{{.title}}</p>`,
	})

	out, err := a.Partial("card", map[string]any{"title": "Direct"})
	require.NoError(t, err)
	assert.Equal(t, template.HTML("<p>Direct</p>"), out)

	_, err = a.Partial("missing", nil)
	assert.True(t, errors.Is(err, ErrPartialNotFound))
}
