package commands

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/assemble/internal/assembly"
)

// InspectCmd implements the 'inspect' command.
type InspectCmd struct {
	Format string `short:"f" enum:"text,yaml" default:"text" help:"Output format (text, yaml)"`

	stdout io.Writer `kong:"-"`
}

// Inventory is what templates can reach after setup.
type Inventory struct {
	Layouts     []string            `yaml:"layouts"`
	Data        []string            `yaml:"data"`
	Collections map[string][]string `yaml:"collections"`
	Docs        []string            `yaml:"docs,omitempty"`
	Strategy    string              `yaml:"strategy"`
}

func (i *InspectCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.loadConfig(g)
	if err != nil {
		return err
	}
	a, err := assembly.New(cfg.Assemble, assembly.WithLogger(g.log()))
	if err != nil {
		return err
	}

	out := i.stdout
	if out == nil {
		out = os.Stdout
	}
	inv := NewInventory(a)
	if i.Format == "yaml" {
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(inv); err != nil {
			return err
		}
		return enc.Close()
	}
	return inv.WriteText(out)
}

// NewInventory lists the stores of a in sorted order.
func NewInventory(a *assembly.Assembly) *Inventory {
	inv := &Inventory{
		Layouts:     sortedKeys(a.Layouts()),
		Data:        sortedKeys(a.Data()),
		Collections: map[string][]string{},
		Docs:        sortedKeys(a.Docs()),
		Strategy:    string(a.Options().Strategy),
	}
	for id, c := range a.Materials() {
		inv.Collections[id] = sortedKeys(c.Items)
	}
	return inv
}

// WriteText prints the inventory for humans.
//
//nolint:forbidigo // fmt is used for user-facing messages
func (inv *Inventory) WriteText(w io.Writer) error {
	section := func(title string, items []string) {
		_, _ = fmt.Fprintf(w, "%s (%d)\n", title, len(items))
		for _, it := range items {
			_, _ = fmt.Fprintf(w, "  %s\n", it)
		}
	}
	section("Layouts", inv.Layouts)
	section("Data", inv.Data)

	ids := sortedKeys(inv.Collections)
	_, _ = fmt.Fprintf(w, "Materials (%d collections, strategy %s)\n", len(ids), inv.Strategy)
	for _, id := range ids {
		_, _ = fmt.Fprintf(w, "  %s\n", id)
		for _, m := range inv.Collections[id] {
			_, _ = fmt.Fprintf(w, "    %s\n", m)
		}
	}
	section("Docs", inv.Docs)
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
