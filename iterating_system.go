package ashley

import "time"

// ProcessFunc handles one entity during an IteratingSystem update.
type ProcessFunc func(e *Entity, dt time.Duration) error

// IteratingSystem calls a function for every entity of a family on each
// update. It is meant to be embedded: the engine keeps one system per
// concrete type, so each iterating system needs a type of its own.
//
//	type movement struct{ ashley.IteratingSystem }
//
//	engine.AddSystem(&movement{ashley.NewIteratingSystem(movers, 0, move)})
//
// Passing a bare *IteratingSystem to Engine.AddSystem fails with
// InvalidSystemError.
type IteratingSystem struct {
	BaseSystem
	family   *Family
	entities EntityView
	process  ProcessFunc
}

// NewIteratingSystem returns an IteratingSystem value to embed.
func NewIteratingSystem(family *Family, priority int, process ProcessFunc) IteratingSystem {
	return IteratingSystem{
		BaseSystem: NewBaseSystem(priority),
		family:     family,
		process:    process,
	}
}

func (s *IteratingSystem) Family() *Family {
	return s.family
}

// Entities is the live family list while the system is registered.
func (s *IteratingSystem) Entities() EntityView {
	return s.entities
}

// SetProcess replaces the per-entity function.
func (s *IteratingSystem) SetProcess(process ProcessFunc) {
	s.process = process
}

func (s *IteratingSystem) AddedToEngine(engine *Engine) {
	s.entities = engine.EntitiesFor(s.family)
}

func (s *IteratingSystem) RemovedFromEngine(*Engine) {
	s.entities = EntityView{}
}

// Update stops at the first error from the process function.
func (s *IteratingSystem) Update(dt time.Duration) error {
	if s.process == nil {
		return nil
	}
	for _, e := range s.entities.All() {
		if err := s.process(e, dt); err != nil {
			return err
		}
	}
	return nil
}
