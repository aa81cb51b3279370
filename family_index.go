package ashley

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

type listenerEntry struct {
	id       uint
	priority int
	listener EntityListener
}

type familyEntry struct {
	family   *Family
	entities []*Entity
	// interest holds the ids of listeners registered for this family.
	interest bitset.BitSet
}

// familyIndex tracks, per family, the registered entities matching it and
// the listeners interested in its membership changes.
type familyIndex struct {
	all            EntityView
	entries        map[*Family]*familyEntry
	order          []*familyEntry
	listeners      []listenerEntry
	nextListenerID uint
	bitsPool       *Pool[bitset.BitSet]
	notifying      bool
}

func newFamilyIndex(all EntityView) *familyIndex {
	return &familyIndex{
		all:      all,
		entries:  make(map[*Family]*familyEntry),
		bitsPool: newPool[bitset.BitSet](nil, 0),
	}
}

func (x *familyIndex) entitiesFor(f *Family) EntityView {
	return newView(&x.register(f).entities)
}

// register starts tracking f, back-filling its list from every registered
// entity.
func (x *familyIndex) register(f *Family) *familyEntry {
	if entry, ok := x.entries[f]; ok {
		return entry
	}
	entry := &familyEntry{family: f}
	x.entries[f] = entry
	x.order = append(x.order, entry)

	for _, e := range x.all.All() {
		if f.Matches(e) && !e.removing {
			entry.entities = append(entry.entities, e)
			e.familyBits.Set(uint(f.index))
		}
	}
	return entry
}

// addListener inserts l after every listener of lower or equal priority.
// The same listener may be registered for several families.
func (x *familyIndex) addListener(f *Family, priority int, l EntityListener) {
	entry := x.register(f)

	id := x.nextListenerID
	x.nextListenerID++

	i := slices.IndexFunc(x.listeners, func(le listenerEntry) bool {
		return le.priority > priority
	})
	if i < 0 {
		i = len(x.listeners)
	}
	x.listeners = slices.Insert(x.listeners, i, listenerEntry{id: id, priority: priority, listener: l})
	entry.interest.Set(id)
}

// removeListener drops every registration of l and reports how many there
// were.
func (x *familyIndex) removeListener(l EntityListener) int {
	var removed []uint
	x.listeners = slices.DeleteFunc(x.listeners, func(le listenerEntry) bool {
		if le.listener == l {
			removed = append(removed, le.id)
			return true
		}
		return false
	})
	for _, entry := range x.order {
		for _, id := range removed {
			entry.interest.Clear(id)
		}
	}
	return len(removed)
}

// updateMembership re-evaluates e against every tracked family and notifies
// interested listeners: all removals first, then all additions.
func (x *familyIndex) updateMembership(e *Entity) {
	added := x.bitsPool.Obtain()
	removed := x.bitsPool.Obtain()
	defer func() {
		x.bitsPool.Free(added.ClearAll())
		x.bitsPool.Free(removed.ClearAll())
	}()

	for _, entry := range x.order {
		bit := uint(entry.family.index)
		belongs := e.familyBits.Test(bit)
		matches := entry.family.Matches(e) && !e.removing
		if belongs == matches {
			continue
		}
		if matches {
			entry.entities = append(entry.entities, e)
			e.familyBits.Set(bit)
			added.InPlaceUnion(&entry.interest)
		} else {
			if i := slices.Index(entry.entities, e); i >= 0 {
				entry.entities = slices.Delete(entry.entities, i, i+1)
			}
			e.familyBits.Clear(bit)
			removed.InPlaceUnion(&entry.interest)
		}
	}

	if removed.None() && added.None() {
		return
	}
	x.dispatch(e, removed, added)
}

func (x *familyIndex) dispatch(e *Entity, removed, added *bitset.BitSet) {
	wasNotifying := x.notifying
	x.notifying = true
	defer func() { x.notifying = wasNotifying }()

	listeners := slices.Clone(x.listeners)
	for _, le := range listeners {
		if removed.Test(le.id) {
			le.listener.EntityRemoved(e)
		}
	}
	for _, le := range listeners {
		if added.Test(le.id) {
			le.listener.EntityAdded(e)
		}
	}
}
