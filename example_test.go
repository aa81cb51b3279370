package ashley_test

import (
	"fmt"
	"time"

	"github.com/dresswithpockets/ashley.ecs"
)

// Position is a simple component for 2D coordinates
type Position struct {
	X float64
	Y float64
}

// Velocity is a simple component for 2D movement
type Velocity struct {
	X float64
	Y float64
}

// Name is a simple component for entity identification
type Name struct {
	Value string
}

// movementSystem moves every entity that has a position and a velocity
type movementSystem struct {
	ashley.IteratingSystem
}

// reaperSystem removes every entity it visits
type reaperSystem struct {
	ashley.IteratingSystem
}

// Example shows basic engine usage with an iterating system
func Example_basic() {
	engine := ashley.Factory.NewEngine()

	position := ashley.FactoryNewMapper[Position]()
	velocity := ashley.FactoryNewMapper[Velocity]()
	name := ashley.FactoryNewMapper[Name]()

	movers := ashley.AllOf(position.Kind(), velocity.Kind()).MustBuild()
	engine.AddSystem(&movementSystem{ashley.NewIteratingSystem(movers, 0, func(e *ashley.Entity, dt time.Duration) error {
		pos, vel := position.Get(e), velocity.Get(e)
		pos.X += vel.X * dt.Seconds()
		pos.Y += vel.Y * dt.Seconds()
		return nil
	})})

	for i := 0; i < 5; i++ {
		e := engine.CreateEntity()
		e.Add(&Position{})
		engine.AddEntity(e)
	}

	player := engine.CreateEntity()
	player.Add(&Position{X: 10, Y: 20})
	player.Add(&Velocity{X: 1, Y: 2})
	player.Add(&Name{Value: "Player"})
	engine.AddEntity(player)

	engine.Update(time.Second)

	fmt.Printf("Entities: %d, moving: %d\n", engine.Entities().Len(), engine.EntitiesFor(movers).Len())
	pos := position.Get(player)
	fmt.Printf("%s at (%.0f, %.0f)\n", name.Get(player).Value, pos.X, pos.Y)

	// Output:
	// Entities: 6, moving: 1
	// Player at (11, 22)
}

// Example_listener shows family listeners reacting to component changes
func Example_listener() {
	engine := ashley.Factory.NewEngine()
	named := ashley.Factory.NewFamily().AllOfTypes(&Name{}).MustBuild()

	engine.AddEntityListener(named, 0, &ashley.EntityListenerFuncs{
		Added: func(e *ashley.Entity) {
			fmt.Println("named:", ashley.GetComponent[Name](e).Value)
		},
		Removed: func(e *ashley.Entity) {
			fmt.Println("unnamed")
		},
	})

	e := engine.CreateEntity()
	engine.AddEntity(e)
	e.Add(&Name{Value: "Crate"})
	ashley.RemoveComponent[Name](e)

	// Output:
	// named: Crate
	// unnamed
}

// Example_deferred shows that entity removal during an update waits until
// the running system returns
func Example_deferred() {
	engine := ashley.Factory.NewEngine()
	for i := 0; i < 3; i++ {
		engine.AddEntity(engine.CreateEntity())
	}

	reaper := &reaperSystem{ashley.NewIteratingSystem(ashley.EmptyFamily(), 0, func(e *ashley.Entity, _ time.Duration) error {
		engine.RemoveEntity(e)
		fmt.Println("still registered:", engine.Entities().Len())
		return nil
	})}
	engine.AddSystem(reaper)

	engine.Update(0)
	fmt.Println("after update:", engine.Entities().Len())

	// Output:
	// still registered: 3
	// still registered: 3
	// still registered: 3
	// after update: 0
}
