package assembly

import (
	"bytes"
	"html/template"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/assemble/internal/config"
	"git.home.luguber.info/inful/assemble/internal/frontmatter"
)

// fragmentsStrategy installs one helper per material. The helper returns the
// material's markup with the class names from its first argument added to
// the first element:
//
//	{{button "primary wide"}}
type fragmentsStrategy struct{}

func (fragmentsStrategy) Name() config.MaterialStrategy { return config.StrategyFragments }

func (fragmentsStrategy) Notes(*Assembly, *frontmatter.Matter) (template.HTML, error) {
	return "", nil
}

func (fragmentsStrategy) Funcs(a *Assembly) template.FuncMap {
	fm := template.FuncMap{}
	for _, id := range a.partials.Names() {
		src, _ := a.partials.Source(id)
		fm[funcName(id)] = fragmentHelper(src)
	}
	return fm
}

func fragmentHelper(src string) func(args ...any) (template.HTML, error) {
	return func(args ...any) (template.HTML, error) {
		var classes string
		if len(args) > 0 {
			if s, ok := args[0].(string); ok {
				classes = s
			}
		}
		return AddClasses(src, classes)
	}
}

// AddClasses parses fragment as HTML body content and appends classes to the
// class attribute of its first element. Classes already present are not
// repeated.
func AddClasses(fragment, classes string) (template.HTML, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), context)
	if err != nil {
		return "", err
	}

	if names := strings.Fields(classes); len(names) > 0 {
		for _, n := range nodes {
			if el := firstElement(n); el != nil {
				addClass(el, names)
				break
			}
		}
	}

	var buf bytes.Buffer
	for _, n := range nodes {
		if err := html.Render(&buf, n); err != nil {
			return "", err
		}
	}
	return template.HTML(buf.String()), nil //nolint:gosec // material markup is authored site content
}

func firstElement(n *html.Node) *html.Node {
	if n.Type == html.ElementNode {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if el := firstElement(c); el != nil {
			return el
		}
	}
	return nil
}

func addClass(n *html.Node, names []string) {
	idx := -1
	var existing []string
	for i, attr := range n.Attr {
		if attr.Key == "class" {
			idx = i
			existing = strings.Fields(attr.Val)
			break
		}
	}
	for _, name := range names {
		if !slices.Contains(existing, name) {
			existing = append(existing, name)
		}
	}
	if idx < 0 {
		n.Attr = append(n.Attr, html.Attribute{Key: "class", Val: strings.Join(existing, " ")})
		return
	}
	n.Attr[idx].Val = strings.Join(existing, " ")
}
