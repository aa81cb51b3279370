package ashley

import (
	"fmt"
	"reflect"
)

// InvalidComponentKindError is returned when a type or value cannot be used as a component.
type InvalidComponentKindError struct {
	Type   reflect.Type
	Reason string
}

func (e InvalidComponentKindError) Error() string {
	if e.Type == nil {
		return fmt.Sprintf("invalid component kind: %s", e.Reason)
	}
	return fmt.Sprintf("invalid component kind %v: %s", e.Type, e.Reason)
}

type DuplicateEntityError struct {
	Entity *Entity
}

func (e DuplicateEntityError) Error() string {
	return fmt.Sprintf("entity is already registered: %v", e.Entity)
}

type ReentrantUpdateError struct{}

func (e ReentrantUpdateError) Error() string {
	return "cannot call Update on an engine that is already updating"
}

type NilArgumentError struct {
	Argument string
}

func (e NilArgumentError) Error() string {
	return fmt.Sprintf("%s must not be nil", e.Argument)
}

type CacheCapacityError struct {
	Capacity int
}

func (e CacheCapacityError) Error() string {
	return fmt.Sprintf("cache at maximum capacity (%d)", e.Capacity)
}

// InvalidSystemError is returned by AddSystem for a system whose concrete
// type cannot identify it.
type InvalidSystemError struct {
	System System
	Reason string
}

func (e InvalidSystemError) Error() string {
	return fmt.Sprintf("invalid system %T: %s", e.System, e.Reason)
}
