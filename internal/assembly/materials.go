package assembly

import (
	"path/filepath"

	foundation "git.home.luguber.info/inful/assemble/internal/foundation/errors"
	"git.home.luguber.info/inful/assemble/internal/frontmatter"
	"git.home.luguber.info/inful/assemble/internal/logfields"
)

// loadMaterials registers every material as a partial and files it under
// the collection named after its parent directory.
func (a *Assembly) loadMaterials(pattern string) error {
	files, err := sourceFiles("materials", pattern)
	if err != nil {
		return err
	}
	for _, f := range files {
		b, err := readSource("materials", f)
		if err != nil {
			return err
		}
		matter, err := frontmatter.Parse(b)
		if err != nil {
			return foundation.WrapError(err, foundation.CategoryMaterial, "failed to parse material front matter").
				Fatal().
				WithContext("file", f).
				Build()
		}

		id := Identifier(f)
		collectionID := filepath.Base(filepath.Dir(f))
		coll, ok := a.materials[collectionID]
		if !ok {
			coll = &Collection{Name: DisplayName(collectionID), Items: map[string]*Material{}}
			a.materials[collectionID] = coll
		}

		if a.partials.Has(id) {
			if err := a.duplicate("materials", id, f); err != nil {
				return err
			}
		}

		notes, err := a.strategy.Notes(a, matter)
		if err != nil {
			return foundation.WrapError(err, foundation.CategoryMaterial, "failed to render material notes").
				Fatal().
				WithContext("file", f).
				Build()
		}
		coll.Items[id] = &Material{Name: DisplayName(id), Notes: notes}
		a.partials.Register(id, matter.Content)

		a.logger.Debug("Registered material", logfields.Collection(collectionID), logfields.Material(id))
	}
	a.logger.Debug("Loaded materials", logfields.Pattern(pattern), logfields.Count(a.partials.Len()))
	return nil
}
