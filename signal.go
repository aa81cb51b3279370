package ashley

import "slices"

// Signal dispatches a value to its listeners in registration order.
type Signal[T any] struct {
	listeners []Listener[T]
}

func (s *Signal[T]) Add(l Listener[T]) {
	s.listeners = append(s.listeners, l)
}

func (s *Signal[T]) Remove(l Listener[T]) {
	if i := slices.Index(s.listeners, l); i >= 0 {
		s.listeners = slices.Delete(s.listeners, i, i+1)
	}
}

func (s *Signal[T]) RemoveAll() {
	clear(s.listeners)
	s.listeners = s.listeners[:0]
}

func (s *Signal[T]) Len() int {
	return len(s.listeners)
}

// Dispatch calls every listener registered when dispatch began; listeners
// added or removed by a callback do not affect the current dispatch.
func (s *Signal[T]) Dispatch(value T) {
	if len(s.listeners) == 0 {
		return
	}
	items := slices.Clone(s.listeners)
	for _, l := range items {
		if l != nil {
			l.Receive(s, value)
		}
	}
}
