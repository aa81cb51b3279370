package ashley

import (
	"iter"
	"slices"
)

// View is a read-only window onto a slice owned by the engine. It is live:
// later additions and removals show through it.
type View[T comparable] struct {
	items *[]T
}

type (
	EntityView    = View[*Entity]
	ComponentView = View[Component]
	SystemView    = View[System]
)

func newView[T comparable](items *[]T) View[T] {
	return View[T]{items: items}
}

func (v View[T]) Len() int {
	if v.items == nil {
		return 0
	}
	return len(*v.items)
}

// At returns the i-th item, or the zero value when i is out of range.
func (v View[T]) At(i int) T {
	if i < 0 || i >= v.Len() {
		var zero T
		return zero
	}
	return (*v.items)[i]
}

// All walks the backing slice by live index, so it observes mutation made
// while iterating.
func (v View[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < v.Len(); i++ {
			if !yield(i, (*v.items)[i]) {
				return
			}
		}
	}
}

func (v View[T]) Contains(item T) bool {
	if v.items == nil {
		return false
	}
	return slices.Contains(*v.items, item)
}

// Slice returns a copy of the current contents.
func (v View[T]) Slice() []T {
	if v.items == nil {
		return nil
	}
	return slices.Clone(*v.items)
}
