package ashley

import "time"

// BaseSystem carries the state every System needs. Embed it and override
// Update, AddedToEngine or RemovedFromEngine as required.
type BaseSystem struct {
	priority int
	disabled bool
	engine   *Engine
}

func NewBaseSystem(priority int) BaseSystem {
	return BaseSystem{priority: priority}
}

// Priority orders systems within a tick; lower runs first.
func (s *BaseSystem) Priority() int {
	return s.priority
}

// SetPriority takes effect the next time the system is added to an engine.
func (s *BaseSystem) SetPriority(priority int) {
	s.priority = priority
}

func (s *BaseSystem) Processing() bool {
	return !s.disabled
}

func (s *BaseSystem) SetProcessing(processing bool) {
	s.disabled = !processing
}

// Engine is the engine the system is registered with, or nil.
func (s *BaseSystem) Engine() *Engine {
	return s.engine
}

func (s *BaseSystem) AddedToEngine(*Engine) {}

func (s *BaseSystem) RemovedFromEngine(*Engine) {}

func (s *BaseSystem) Update(time.Duration) error {
	return nil
}

func (s *BaseSystem) base() *BaseSystem {
	return s
}
