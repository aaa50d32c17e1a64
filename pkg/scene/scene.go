package scene

import (
	"errors"
	"fmt"
)

// ErrEntityNotFound is returned by [Scene.Update] and [Scene.Apply] when
// the addressed entity does not exist in the collection.
var ErrEntityNotFound = errors.New("entity not found")

// Scene is an ordered collection of entities. The zero value is an empty
// scene. Scene values are immutable: every mutating operation returns a
// new collection with the relaxation already applied, leaving the
// receiver untouched.
type Scene struct {
	entities []Entity
}

// New returns a scene containing the given entities, relaxed.
func New(entities ...Entity) Scene {
	s := Scene{entities: make([]Entity, 0, len(entities))}
	for _, e := range entities {
		s.entities = append(s.entities, e.Clone())
	}
	return s.Resolve()
}

// Len returns the number of entities.
func (s Scene) Len() int { return len(s.entities) }

// Entities returns the entities in insertion order. The returned slice is
// fresh but shares entity values; callers must treat them as read-only.
func (s Scene) Entities() []Entity {
	out := make([]Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Get returns the entity with the given id.
func (s Scene) Get(id string) (Entity, bool) {
	for _, e := range s.entities {
		if e.Common().ID == id {
			return e, true
		}
	}
	return nil, false
}

// Edges returns every dependency edge in the scene.
func (s Scene) Edges() []Edge {
	var edges []Edge
	for _, e := range s.entities {
		edges = append(edges, e.Edges()...)
	}
	return edges
}

// Create inserts a new entity and returns the relaxed collection.
// An empty id is filled in with a fresh one.
func (s Scene) Create(e Entity) Scene {
	added := e.Clone()
	if added.Common().ID == "" {
		added.Common().ID = NewID()
	}
	next := make([]Entity, 0, len(s.entities)+1)
	next = append(next, s.entities...)
	next = append(next, added)
	return Scene{entities: next}.Resolve()
}

// Update applies a partial attribute change to the entity with the given
// id and returns the relaxed collection. Patch fields that do not apply
// to the entity's kind are ignored.
func (s Scene) Update(id string, p Patch) (Scene, error) {
	idx := -1
	for i, e := range s.entities {
		if e.Common().ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return s, fmt.Errorf("update %s: %w", id, ErrEntityNotFound)
	}

	next := make([]Entity, len(s.entities))
	copy(next, s.entities)
	next[idx] = p.applyTo(s.entities[idx])
	return Scene{entities: next}.Resolve(), nil
}

// Apply dispatches an action to the matching operation. This is the
// single entry point hosts use; tool and selection state stay outside
// the core.
func (s Scene) Apply(a Action) (Scene, error) {
	switch a := a.(type) {
	case CreateAction:
		return s.Create(a.Entity), nil
	case UpdateAction:
		return s.Update(a.ID, a.Patch)
	case DeleteAction:
		return s.Delete(a.ID), nil
	default:
		return s, fmt.Errorf("unsupported action %T", a)
	}
}
