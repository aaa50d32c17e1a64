package scene

// Action is a discrete external mutation of the collection. The concrete
// types are [CreateAction], [UpdateAction], and [DeleteAction].
type Action interface {
	isAction()
}

// CreateAction inserts a new entity.
type CreateAction struct {
	Entity Entity
}

// UpdateAction applies a partial attribute change.
type UpdateAction struct {
	ID    string
	Patch Patch
}

// DeleteAction removes an entity and, transitively, everything that
// depends on it.
type DeleteAction struct {
	ID string
}

func (CreateAction) isAction() {}
func (UpdateAction) isAction() {}
func (DeleteAction) isAction() {}
