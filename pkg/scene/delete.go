package scene

// Delete removes the entity with the given id together with the full
// transitive closure of its dependents, then returns the relaxed
// collection. After deletion no surviving entity references a removed
// id through any edge kind: an unresolved dependency can mean "not yet
// computed", never "was deleted".
//
// Deleting an unknown id is a no-op.
func (s Scene) Delete(id string) Scene {
	if _, ok := s.Get(id); !ok {
		return s
	}

	doomed := map[string]bool{id: true}

	// Fixed point: grow the set with every entity referencing a member
	// until a sweep adds nothing.
	for changed := true; changed; {
		changed = false
		for _, e := range s.entities {
			eid := e.Common().ID
			if doomed[eid] {
				continue
			}
			for _, edge := range e.Edges() {
				if doomed[edge.To] {
					doomed[eid] = true
					changed = true
					break
				}
			}
		}
	}

	kept := make([]Entity, 0, len(s.entities)-len(doomed))
	for _, e := range s.entities {
		if !doomed[e.Common().ID] {
			kept = append(kept, e)
		}
	}
	return Scene{entities: kept}.Resolve()
}
