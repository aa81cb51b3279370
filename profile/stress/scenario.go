package main

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dresswithpockets/ashley.ecs"
	"github.com/dresswithpockets/ashley.ecs/internal/config"
)

type counter struct {
	Value int
}

type spawned struct {
	Tick int
}

var counters = ashley.FactoryNewMapper[counter]()

// churnSystem bumps every counter and removes every n-th entity it visits.
type churnSystem struct {
	ashley.BaseSystem
	removeEvery int
	entities    ashley.EntityView
}

func (s *churnSystem) AddedToEngine(engine *ashley.Engine) {
	s.entities = engine.EntitiesFor(ashley.AllOf(counters.Kind()).MustBuild())
}

func (s *churnSystem) Update(time.Duration) error {
	for i, e := range s.entities.All() {
		if s.removeEvery > 0 && i%s.removeEvery == 0 {
			s.Engine().RemoveEntity(e)
			continue
		}
		counters.Get(e).Value++
	}
	return nil
}

// respawnSystem tops the population back up to target after churn.
type respawnSystem struct {
	ashley.BaseSystem
	target int
	tick   int
}

func (s *respawnSystem) Update(time.Duration) error {
	s.tick++
	engine := s.Engine()
	for n := engine.Entities().Len(); n < s.target; n++ {
		if err := spawn(engine, s.tick); err != nil {
			return err
		}
	}
	return nil
}

// stats counts membership changes of the counter family.
type stats struct {
	added   int
	removed int
}

func (st *stats) EntityAdded(*ashley.Entity)   { st.added++ }
func (st *stats) EntityRemoved(*ashley.Entity) { st.removed++ }

type scenario struct {
	engine *ashley.Engine
	stats  *stats
	log    *zap.Logger
}

func newScenario(cfg config.StressConfig, log *zap.Logger) (*scenario, error) {
	engine := ashley.Factory.NewEngine(
		ashley.WithLogger(log),
		ashley.WithEntityCapacity(cfg.Entities),
	)

	st := &stats{}
	if err := engine.AddEntityListener(ashley.AllOf(counters.Kind()).MustBuild(), 0, st); err != nil {
		return nil, fmt.Errorf("add listener: %w", err)
	}

	for i := 0; i < cfg.Entities; i++ {
		if err := spawn(engine, 0); err != nil {
			return nil, fmt.Errorf("spawn entity: %w", err)
		}
	}

	churn := &churnSystem{BaseSystem: ashley.NewBaseSystem(0), removeEvery: cfg.RemoveEvery}
	if err := engine.AddSystem(churn); err != nil {
		return nil, fmt.Errorf("add churn system: %w", err)
	}
	if cfg.Respawn {
		respawn := &respawnSystem{BaseSystem: ashley.NewBaseSystem(1), target: cfg.Entities}
		if err := engine.AddSystem(respawn); err != nil {
			return nil, fmt.Errorf("add respawn system: %w", err)
		}
	}

	return &scenario{engine: engine, stats: st, log: log}, nil
}

func spawn(engine *ashley.Engine, tick int) error {
	e := engine.CreateEntity()
	if _, err := e.Add(&counter{}); err != nil {
		return err
	}
	if _, err := e.Add(&spawned{Tick: tick}); err != nil {
		return err
	}
	return engine.AddEntity(e)
}

// run advances the engine ticks times with a fixed step.
func (s *scenario) run(ctx context.Context, ticks int, step time.Duration) error {
	start := time.Now()
	for tick := 0; tick < ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.engine.UpdateContext(ctx, step); err != nil {
			return fmt.Errorf("tick %d: %w", tick, err)
		}
	}
	s.log.Info("stress run finished",
		zap.Int("ticks", ticks),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("entities", s.engine.Entities().Len()),
		zap.Int("added", s.stats.added),
		zap.Int("removed", s.stats.removed),
		zap.Int("counter_total", s.counterTotal()),
	)
	return nil
}

func (s *scenario) counterTotal() int {
	total := 0
	for _, e := range s.engine.Entities().All() {
		total += counters.Get(e).Value
	}
	return total
}
