package ashley

type factory struct{}

var Factory factory

func (f factory) NewEngine(opts ...EngineOption) *Engine {
	return newEngine(opts...)
}

func (f factory) NewEntity() *Entity {
	return newEntity()
}

func (f factory) NewFamily() *FamilyBuilder {
	return &FamilyBuilder{}
}

// FactoryNewMapper returns a mapper for component type *T. It panics if T is
// not a struct type.
func FactoryNewMapper[T any]() Mapper[T] {
	return Mapper[T]{kind: MustKindOf[T]()}
}

// FactoryNewPool returns a pool building objects with newFn (new(T) when
// nil) and retaining at most max freed objects (unbounded when max <= 0).
func FactoryNewPool[T any](newFn func() *T, max int) *Pool[T] {
	return newPool(newFn, max)
}
