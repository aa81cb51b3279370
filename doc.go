/*
Package ashley provides an Entity-Component-System (ECS) runtime for games and simulations.

Entities are plain containers of components. Families describe which entities a
system or listener cares about, and the engine keeps each family's entity list up
to date as components come and go. Systems run once per tick in priority order.

Core Concepts:

  - Entity: A bag of components, at most one per component kind.
  - Component: A pointer to a struct; the struct type is the component's kind.
  - Family: An interned all/any/none query over component kinds.
  - System: Logic run by the engine on every Update.
  - EntityListener: A callback told when entities enter or leave a family.

Changes made while the engine is updating are queued and applied once the
running system returns. Iterating a family's entity list from a system is
therefore always safe, even when the system adds or removes entities and
components as it goes. Outside Update, entities added or removed from inside a
listener callback are queued until the next Update, while component changes
made there apply immediately.

The engine keeps one system per concrete type; adding a second system of the
same type replaces the first. Give every system, including each embedded
IteratingSystem, a type of its own.

Basic Usage:

	type Position struct{ X, Y float64 }
	type Velocity struct{ X, Y float64 }

	engine := ashley.Factory.NewEngine()

	position := ashley.FactoryNewMapper[Position]()
	velocity := ashley.FactoryNewMapper[Velocity]()

	type Movement struct{ ashley.IteratingSystem }

	movers := ashley.AllOf(position.Kind(), velocity.Kind()).MustBuild()
	engine.AddSystem(&Movement{ashley.NewIteratingSystem(movers, 0, func(e *ashley.Entity, dt time.Duration) error {
		pos, vel := position.Get(e), velocity.Get(e)
		pos.X += vel.X * dt.Seconds()
		pos.Y += vel.Y * dt.Seconds()
		return nil
	})})

	e := engine.CreateEntity()
	e.Add(&Position{})
	e.Add(&Velocity{X: 1})
	engine.AddEntity(e)

	engine.Update(time.Second / 60)

An Engine is not safe for concurrent use.
*/
package ashley
