package ashley

// Mapper reads one component type from entities without a kind lookup per
// call.
type Mapper[T any] struct {
	kind ComponentKind
}

func (m Mapper[T]) Kind() ComponentKind {
	return m.kind
}

// Get returns e's component of type *T, or nil if it has none.
func (m Mapper[T]) Get(e *Entity) *T {
	c, _ := e.Get(m.kind).(*T)
	return c
}

// GetSafe reports whether e has the component, and returns it if so.
func (m Mapper[T]) GetSafe(e *Entity) (bool, *T) {
	c := m.Get(e)
	return c != nil, c
}

func (m Mapper[T]) Has(e *Entity) bool {
	return e.Has(m.kind)
}
