package ashley

import "time"

// Component is a pointer to a struct holding entity data, e.g. &Position{}.
// The pointed-to struct type is the component's kind.
type Component any

// EntityListener is notified when an entity starts or stops matching a family.
// Listeners are compared by identity on removal, so use pointer types.
type EntityListener interface {
	EntityAdded(entity *Entity)
	EntityRemoved(entity *Entity)
}

// System processes entities once per engine tick. Implementations embed
// BaseSystem (or IteratingSystem) and override what they need.
type System interface {
	AddedToEngine(engine *Engine)
	RemovedFromEngine(engine *Engine)
	Update(dt time.Duration) error
	Priority() int
	Processing() bool
	base() *BaseSystem
}

// Listener receives values dispatched by a Signal.
type Listener[T any] interface {
	Receive(signal *Signal[T], value T)
}

// Poolable objects are reset when returned to a Pool.
type Poolable interface {
	Reset()
}

// EntityListenerFuncs adapts two functions to EntityListener. Register it by
// pointer so it can be removed again.
type EntityListenerFuncs struct {
	Added   func(entity *Entity)
	Removed func(entity *Entity)
}

func (l *EntityListenerFuncs) EntityAdded(entity *Entity) {
	if l.Added != nil {
		l.Added(entity)
	}
}

func (l *EntityListenerFuncs) EntityRemoved(entity *Entity) {
	if l.Removed != nil {
		l.Removed(entity)
	}
}
