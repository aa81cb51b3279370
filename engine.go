package ashley

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const instrumentationName = "github.com/dresswithpockets/ashley.ecs"

// Engine ties entities, families and systems together and runs the systems
// once per Update. An Engine must only be used from one goroutine.
type Engine struct {
	systems  *systemScheduler
	entities *entityRegistry
	families *familyIndex
	gate     *mutationGate
	members  *membershipListener
	updating bool

	log    *zap.Logger
	tracer trace.Tracer
}

type engineOptions struct {
	logger   *zap.Logger
	tracer   trace.Tracer
	capacity int
}

type EngineOption func(*engineOptions)

// WithLogger overrides Config's logger for one engine.
func WithLogger(logger *zap.Logger) EngineOption {
	return func(o *engineOptions) {
		o.logger = logger
	}
}

// WithTracer overrides the tracer obtained from Config's tracer provider.
func WithTracer(tracer trace.Tracer) EngineOption {
	return func(o *engineOptions) {
		o.tracer = tracer
	}
}

// WithEntityCapacity pre-sizes the entity list.
func WithEntityCapacity(n int) EngineOption {
	return func(o *engineOptions) {
		o.capacity = n
	}
}

func newEngine(opts ...EngineOption) *Engine {
	o := engineOptions{
		logger:   Config.logger,
		capacity: Config.entityCapacity,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = zap.NewNop()
	}
	if o.tracer == nil {
		o.tracer = Config.tracerProviderOrGlobal().Tracer(instrumentationName)
	}

	eng := &Engine{
		log:    o.logger,
		tracer: o.tracer,
	}
	eng.members = &membershipListener{engine: eng}
	eng.gate = newMutationGate(func() bool { return eng.updating })
	eng.entities = newEntityRegistry(eng, max(o.capacity, 0))
	eng.families = newFamilyIndex(eng.entities.entities())
	eng.systems = newSystemScheduler(eng)
	return eng
}

// CreateEntity returns a new entity that is not yet part of the engine.
func (eng *Engine) CreateEntity() *Entity {
	return newEntity()
}

// AddEntity registers e. During Update or a listener callback the addition
// is queued and applied after the current system finishes.
func (eng *Engine) AddEntity(e *Entity) error {
	if e == nil {
		return NilArgumentError{Argument: "entity"}
	}
	return eng.entities.add(e, eng.delayed())
}

func (eng *Engine) AddEntities(entities ...*Entity) error {
	var err error
	for _, e := range entities {
		err = multierr.Append(err, eng.AddEntity(e))
	}
	return err
}

func (eng *Engine) RemoveEntity(e *Entity) {
	if e == nil {
		return
	}
	eng.entities.remove(e, eng.delayed())
}

func (eng *Engine) RemoveAllEntities() {
	eng.entities.removeAll(eng.entities.entities(), eng.delayed())
}

// RemoveAllEntitiesFor removes every entity currently matching f.
func (eng *Engine) RemoveAllEntitiesFor(f *Family) {
	eng.entities.removeAll(eng.EntitiesFor(f), eng.delayed())
}

func (eng *Engine) Entities() EntityView {
	return eng.entities.entities()
}

// EntitiesFor returns the live list of entities matching f. A nil family
// matches every entity.
func (eng *Engine) EntitiesFor(f *Family) EntityView {
	if f == nil {
		f = EmptyFamily()
	}
	return eng.families.entitiesFor(f)
}

// AddEntityListener registers l for membership changes of f (every entity
// when f is nil). Listeners with lower priority values are notified first.
func (eng *Engine) AddEntityListener(f *Family, priority int, l EntityListener) error {
	if l == nil {
		return NilArgumentError{Argument: "entity listener"}
	}
	if f == nil {
		f = EmptyFamily()
	}
	eng.families.addListener(f, priority, l)
	eng.log.Debug("entity listener added",
		zap.Stringer("family", f),
		zap.Int("priority", priority),
	)
	return nil
}

func (eng *Engine) RemoveEntityListener(l EntityListener) {
	if l == nil {
		return
	}
	if n := eng.families.removeListener(l); n > 0 {
		eng.log.Debug("entity listener removed", zap.Int("registrations", n))
	}
}

// AddSystem registers s, replacing any system of the same concrete type.
func (eng *Engine) AddSystem(s System) error {
	if s == nil {
		return NilArgumentError{Argument: "system"}
	}
	if _, bare := s.(*IteratingSystem); bare {
		return InvalidSystemError{System: s, Reason: "embed IteratingSystem in a system type of its own"}
	}
	if old := eng.systems.add(s); old != nil {
		eng.log.Debug("system replaced", zap.String("system", systemName(s)))
	}
	return nil
}

func (eng *Engine) RemoveSystem(s System) {
	if s == nil {
		return
	}
	eng.systems.remove(s)
}

func (eng *Engine) RemoveAllSystems() {
	eng.systems.removeAll()
}

// Systems lists registered systems in execution order.
func (eng *Engine) Systems() SystemView {
	return eng.systems.view()
}

// GetSystem returns the engine's system of type T.
func GetSystem[T System](eng *Engine) (T, bool) {
	var zero T
	s, ok := eng.systems.get(reflect.TypeFor[T]())
	if !ok {
		return zero, false
	}
	typed, ok := s.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

func (eng *Engine) Updating() bool {
	return eng.updating
}

func (eng *Engine) Update(dt time.Duration) error {
	return eng.UpdateContext(context.Background(), dt)
}

// UpdateContext runs every processing system once, in priority order. After
// each system, queued entity and component changes are applied until none
// remain. The first system error aborts the pass and is returned as is.
func (eng *Engine) UpdateContext(ctx context.Context, dt time.Duration) error {
	if eng.updating {
		eng.log.Warn("update called while engine is already updating")
		return ReentrantUpdateError{}
	}
	eng.updating = true
	defer func() { eng.updating = false }()

	ctx, span := eng.tracer.Start(ctx, "ashley.Engine.Update", trace.WithAttributes(
		attribute.Int64("ashley.dt_ns", dt.Nanoseconds()),
		attribute.Int("ashley.systems", eng.systems.view().Len()),
		attribute.Int("ashley.entities", eng.entities.entities().Len()),
	))
	defer span.End()

	// Listener callbacks outside Update may have queued entity operations.
	if err := eng.drainPending(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	// Systems removed during the pass are skipped; systems added during it
	// run from the next pass on.
	for _, s := range eng.systems.view().Slice() {
		if s.base().engine != eng || !s.Processing() {
			continue
		}
		if err := eng.updateSystem(ctx, s, dt); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		if err := eng.drainPending(); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
	}
	return nil
}

func (eng *Engine) updateSystem(ctx context.Context, s System, dt time.Duration) error {
	_, span := eng.tracer.Start(ctx, "ashley.System.Update", trace.WithAttributes(
		attribute.String("ashley.system", systemName(s)),
		attribute.Int("ashley.priority", s.Priority()),
	))
	defer span.End()

	if err := s.Update(dt); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		eng.log.Warn("system update failed",
			zap.String("system", systemName(s)),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// drainPending applies queued component notifications and entity operations
// until both queues stay empty.
func (eng *Engine) drainPending() error {
	var (
		err    error
		rounds int
	)
	for eng.gate.hasPending() || eng.entities.hasPending() {
		eng.gate.drain()
		err = multierr.Append(err, eng.entities.drain())
		rounds++
	}
	if rounds > 0 {
		eng.log.Debug("pending operations drained",
			zap.Int("rounds", rounds),
			zap.Int("entities", eng.entities.entities().Len()),
		)
	}
	return err
}

func (eng *Engine) delayed() bool {
	return eng.updating || eng.families.notifying
}

func (eng *Engine) entityAdded(e *Entity) {
	e.componentAdded.Add(eng.members)
	e.componentRemoved.Add(eng.members)
	e.gate = eng.gate
	eng.families.updateMembership(e)
}

func (eng *Engine) entityRemoved(e *Entity) {
	eng.families.updateMembership(e)
	e.componentAdded.Remove(eng.members)
	e.componentRemoved.Remove(eng.members)
	e.gate = nil
}

func (eng *Engine) systemAdded(s System) {
	s.base().engine = eng
	s.AddedToEngine(eng)
	eng.log.Debug("system added",
		zap.String("system", systemName(s)),
		zap.Int("priority", s.Priority()),
	)
}

func (eng *Engine) systemRemoved(s System) {
	s.RemovedFromEngine(eng)
	s.base().engine = nil
	eng.log.Debug("system removed", zap.String("system", systemName(s)))
}

// membershipListener re-evaluates family membership whenever a registered
// entity's components change.
type membershipListener struct {
	engine *Engine
}

func (l *membershipListener) Receive(_ *Signal[*Entity], e *Entity) {
	l.engine.families.updateMembership(e)
}

func systemName(s System) string {
	return fmt.Sprintf("%T", s)
}
