package assembly

import (
	"errors"
	"fmt"
	"html/template"
	"sort"
)

// ErrPartialNotFound is returned when a partial name was never registered.
var ErrPartialNotFound = errors.New("partial not found")

// partialEntry is either raw source or, after first use, its compiled form.
type partialEntry struct {
	source   string
	compiled *template.Template
	err      error
}

// PartialStore holds registered partials and compiles them on demand.
//
// All partials are parsed into one base template set, which is never
// executed. Pages and dynamic partials each run in a clone of it, so every
// partial can include every other by name.
type PartialStore struct {
	entries map[string]*partialEntry
	funcs   template.FuncMap
	base    *template.Template
}

// NewPartialStore returns an empty store.
func NewPartialStore() *PartialStore {
	return &PartialStore{entries: map[string]*partialEntry{}, funcs: template.FuncMap{}}
}

// Register adds or replaces the partial name. Compiled state is discarded.
func (s *PartialStore) Register(name, source string) {
	s.entries[name] = &partialEntry{source: source}
	s.reset()
}

// Funcs sets the functions available to partials and pages.
func (s *PartialStore) Funcs(fm template.FuncMap) {
	s.funcs = fm
	s.reset()
}

func (s *PartialStore) reset() {
	s.base = nil
	for _, e := range s.entries {
		e.compiled = nil
		e.err = nil
	}
}

// Has reports whether name is registered.
func (s *PartialStore) Has(name string) bool {
	_, ok := s.entries[name]
	return ok
}

// Source returns the raw template text of name.
func (s *PartialStore) Source(name string) (string, bool) {
	e, ok := s.entries[name]
	if !ok {
		return "", false
	}
	return e.source, true
}

// Names returns all registered names in sorted order.
func (s *PartialStore) Names() []string {
	names := make([]string, 0, len(s.entries))
	for n := range s.entries {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered partials.
func (s *PartialStore) Len() int { return len(s.entries) }

// Lookup returns the compiled template for name, compiling and caching it on
// first use.
func (s *PartialStore) Lookup(name string) (*template.Template, error) {
	e, ok := s.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrPartialNotFound, name)
	}
	if e.compiled != nil {
		return e.compiled, nil
	}

	base, err := s.baseSet()
	if err != nil {
		return nil, err
	}
	if e.err != nil {
		return nil, e.err
	}
	set, err := base.Clone()
	if err != nil {
		return nil, fmt.Errorf("clone partial set: %w", err)
	}
	t := set.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("%w: %q", ErrPartialNotFound, name)
	}
	e.compiled = t
	return t, nil
}

// Clone returns a fresh copy of the base set for one page render.
func (s *PartialStore) Clone() (*template.Template, error) {
	base, err := s.baseSet()
	if err != nil {
		return nil, err
	}
	return base.Clone()
}

// baseSet parses every partial into the shared set. A partial that fails to
// parse is left out and its error kept on the entry, so only pages that use
// it fail.
func (s *PartialStore) baseSet() (*template.Template, error) {
	if s.base != nil {
		return s.base, nil
	}
	base := template.New("").Funcs(s.funcs)
	for _, name := range s.Names() {
		e := s.entries[name]
		if _, err := template.New(name).Funcs(s.funcs).Parse(e.source); err != nil {
			e.err = fmt.Errorf("parse partial %q: %w", name, err)
			continue
		}
		if _, err := base.New(name).Parse(e.source); err != nil {
			return nil, fmt.Errorf("parse partial %q: %w", name, err)
		}
	}
	s.base = base
	return base, nil
}
