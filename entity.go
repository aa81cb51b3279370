package ashley

import (
	"fmt"
	"slices"
	"sync/atomic"

	"github.com/TheBitDrifter/mask"
	"github.com/bits-and-blooms/bitset"
)

var nextEntityID atomic.Uint64

// Entity is a bag of components, at most one per kind. An entity is usable
// on its own; once added to an engine its component changes drive family
// membership.
type Entity struct {
	id                  uint64
	components          []Component
	order               []Component
	componentBits       mask.Mask
	familyBits          bitset.BitSet
	flags               int64
	scheduledForRemoval bool
	removing            bool

	componentAdded   Signal[*Entity]
	componentRemoved Signal[*Entity]

	gate *mutationGate
}

func newEntity() *Entity {
	return &Entity{id: nextEntityID.Add(1)}
}

// ID is unique per process and only meant for logging.
func (e *Entity) ID() uint64 {
	return e.id
}

// Add installs c, replacing any component of the same kind. It returns false
// when c is already the entity's component of that kind.
func (e *Entity) Add(c Component) (bool, error) {
	kind, err := KindFor(c)
	if err != nil {
		return false, err
	}
	if old := e.Get(kind); old != nil {
		if old == c {
			return false, nil
		}
		e.removeInternal(kind)
	}
	e.addInternal(kind, c)
	e.notifyAdded()
	return true, nil
}

// Remove detaches the component of the given kind and returns it, or nil if
// the entity had none.
func (e *Entity) Remove(kind ComponentKind) Component {
	removed := e.removeInternal(kind)
	if removed != nil {
		e.notifyRemoved()
	}
	return removed
}

// RemoveAll detaches components one at a time, always taking the oldest
// remaining one, until none are left.
func (e *Entity) RemoveAll() {
	for len(e.order) > 0 {
		kind, err := KindFor(e.order[0])
		if err != nil {
			// unreachable: only valid components are ever installed
			e.order = e.order[1:]
			continue
		}
		e.Remove(kind)
	}
}

func (e *Entity) Get(kind ComponentKind) Component {
	idx := int(kind.index)
	if idx >= len(e.components) {
		return nil
	}
	return e.components[idx]
}

func (e *Entity) Has(kind ComponentKind) bool {
	return maskHas(e.componentBits, kind.index)
}

// Components lists the entity's components in the order they were added.
func (e *Entity) Components() ComponentView {
	return newView(&e.order)
}

// Flags is a free bitmask for the host application.
func (e *Entity) Flags() int64 {
	return e.flags
}

func (e *Entity) SetFlags(flags int64) {
	e.flags = flags
}

// ScheduledForRemoval reports whether a deferred removal is pending.
func (e *Entity) ScheduledForRemoval() bool {
	return e.scheduledForRemoval
}

func (e *Entity) ComponentAdded() *Signal[*Entity] {
	return &e.componentAdded
}

func (e *Entity) ComponentRemoved() *Signal[*Entity] {
	return &e.componentRemoved
}

func (e *Entity) String() string {
	return fmt.Sprintf("Entity(%d)", e.id)
}

func (e *Entity) addInternal(kind ComponentKind, c Component) {
	idx := int(kind.index)
	if idx >= len(e.components) {
		e.components = append(e.components, make([]Component, idx+1-len(e.components))...)
	}
	e.components[idx] = c
	e.order = append(e.order, c)
	e.componentBits.Mark(kind.index)
}

func (e *Entity) removeInternal(kind ComponentKind) Component {
	c := e.Get(kind)
	if c == nil {
		return nil
	}
	e.components[kind.index] = nil
	if i := slices.Index(e.order, c); i >= 0 {
		e.order = slices.Delete(e.order, i, i+1)
	}
	e.componentBits.Unmark(kind.index)
	return c
}

func (e *Entity) notifyAdded() {
	if e.gate != nil {
		e.gate.add(e)
		return
	}
	e.componentAdded.Dispatch(e)
}

func (e *Entity) notifyRemoved() {
	if e.gate != nil {
		e.gate.remove(e)
		return
	}
	e.componentRemoved.Dispatch(e)
}

// GetComponent returns e's component of type *T, or nil.
func GetComponent[T any](e *Entity) *T {
	kind, err := KindOf[T]()
	if err != nil {
		return nil
	}
	c, _ := e.Get(kind).(*T)
	return c
}

func HasComponent[T any](e *Entity) bool {
	kind, err := KindOf[T]()
	if err != nil {
		return false
	}
	return e.Has(kind)
}

// RemoveComponent detaches and returns e's component of type *T, or nil.
func RemoveComponent[T any](e *Entity) *T {
	kind, err := KindOf[T]()
	if err != nil {
		return nil
	}
	c, _ := e.Remove(kind).(*T)
	return c
}
