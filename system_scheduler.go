package ashley

import (
	"reflect"
	"slices"
	"sort"
)

type systemListener interface {
	systemAdded(s System)
	systemRemoved(s System)
}

// systemScheduler keeps at most one system per concrete type, sorted by
// ascending priority. Equal priorities keep insertion order.
type systemScheduler struct {
	listener systemListener
	systems  []System
	byType   map[reflect.Type]System
}

func newSystemScheduler(listener systemListener) *systemScheduler {
	return &systemScheduler{
		listener: listener,
		byType:   make(map[reflect.Type]System),
	}
}

// add registers s, first removing any system of the same type. It returns
// the replaced system, if any.
func (m *systemScheduler) add(s System) System {
	typ := reflect.TypeOf(s)
	old, replaced := m.byType[typ]
	if replaced {
		m.remove(old)
	}

	m.systems = append(m.systems, s)
	m.byType[typ] = s
	sort.SliceStable(m.systems, func(i, j int) bool {
		return m.systems[i].Priority() < m.systems[j].Priority()
	})

	m.listener.systemAdded(s)
	if replaced {
		return old
	}
	return nil
}

func (m *systemScheduler) remove(s System) bool {
	i := slices.Index(m.systems, s)
	if i < 0 {
		return false
	}
	m.systems = slices.Delete(m.systems, i, i+1)
	delete(m.byType, reflect.TypeOf(s))
	m.listener.systemRemoved(s)
	return true
}

func (m *systemScheduler) removeAll() {
	for len(m.systems) > 0 {
		m.remove(m.systems[0])
	}
}

func (m *systemScheduler) get(typ reflect.Type) (System, bool) {
	s, ok := m.byType[typ]
	return s, ok
}

func (m *systemScheduler) view() SystemView {
	return newView(&m.systems)
}
