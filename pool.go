package ashley

// Pool is a single-threaded free list. Obtain reuses a freed object or builds
// a new one; Free resets the object if it is Poolable.
type Pool[T any] struct {
	free  []*T
	newFn func() *T
	max   int
	peak  int
}

// newPool builds a pool retaining at most max free objects; max <= 0 means
// unbounded.
func newPool[T any](newFn func() *T, max int) *Pool[T] {
	if newFn == nil {
		newFn = func() *T { return new(T) }
	}
	return &Pool[T]{
		free:  make([]*T, 0, 16),
		newFn: newFn,
		max:   max,
	}
}

func (p *Pool[T]) Obtain() *T {
	if n := len(p.free); n > 0 {
		obj := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return obj
	}
	return p.newFn()
}

func (p *Pool[T]) Free(obj *T) error {
	if obj == nil {
		return NilArgumentError{Argument: "pooled object"}
	}
	if p.max <= 0 || len(p.free) < p.max {
		p.free = append(p.free, obj)
		p.peak = max(p.peak, len(p.free))
	}
	if r, ok := any(obj).(Poolable); ok {
		r.Reset()
	}
	return nil
}

// Fill pre-allocates up to n objects without exceeding the retention limit.
func (p *Pool[T]) Fill(n int) {
	for i := 0; i < n; i++ {
		if p.max > 0 && len(p.free) >= p.max {
			break
		}
		p.free = append(p.free, p.newFn())
	}
	p.peak = max(p.peak, len(p.free))
}

func (p *Pool[T]) Clear() {
	clear(p.free)
	p.free = p.free[:0]
}

func (p *Pool[T]) FreeCount() int {
	return len(p.free)
}

func (p *Pool[T]) Peak() int {
	return p.peak
}

func (p *Pool[T]) Max() int {
	return p.max
}
