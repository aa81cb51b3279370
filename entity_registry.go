package ashley

import (
	"slices"

	"go.uber.org/multierr"
)

type entityOperation struct {
	typ      operationType
	entity   *Entity
	entities EntityView
}

func (op *entityOperation) Reset() {
	op.typ = opAdd
	op.entity = nil
	op.entities = EntityView{}
}

// registryListener is told about every entity entering or leaving the
// registry.
type registryListener interface {
	entityAdded(e *Entity)
	entityRemoved(e *Entity)
}

// entityRegistry owns the engine's entity list. Mutations are applied at once
// or queued for drain depending on the caller's delayed flag.
type entityRegistry struct {
	owner   registryListener
	list    []*Entity
	set     map[*Entity]struct{}
	pending []*entityOperation
	pool    *Pool[entityOperation]
}

func newEntityRegistry(owner registryListener, capacity int) *entityRegistry {
	return &entityRegistry{
		owner: owner,
		list:  make([]*Entity, 0, capacity),
		set:   make(map[*Entity]struct{}, capacity),
		pool:  newPool[entityOperation](nil, 0),
	}
}

func (r *entityRegistry) add(e *Entity, delayed bool) error {
	if delayed {
		r.enqueue(opAdd, e, EntityView{})
		return nil
	}
	return r.addInternal(e)
}

func (r *entityRegistry) remove(e *Entity, delayed bool) {
	if delayed {
		if e.scheduledForRemoval {
			return
		}
		e.scheduledForRemoval = true
		r.enqueue(opRemove, e, EntityView{})
		return
	}
	r.removeInternal(e)
}

func (r *entityRegistry) removeAll(entities EntityView, delayed bool) {
	if delayed {
		for _, e := range entities.All() {
			e.scheduledForRemoval = true
		}
		r.enqueue(opRemoveAll, nil, entities)
		return
	}
	r.removeEach(entities)
}

func (r *entityRegistry) entities() EntityView {
	return newView(&r.list)
}

func (r *entityRegistry) hasPending() bool {
	return len(r.pending) > 0
}

// drain applies every queued operation, including ones queued by callbacks
// during the drain. Duplicate adds do not stop the drain; their errors are
// combined and returned at the end.
func (r *entityRegistry) drain() error {
	var err error
	for i := 0; i < len(r.pending); i++ {
		op := r.pending[i]
		switch op.typ {
		case opAdd:
			err = multierr.Append(err, r.addInternal(op.entity))
		case opRemove:
			r.removeInternal(op.entity)
		case opRemoveAll:
			r.removeEach(op.entities)
		}
		r.pool.Free(op)
	}
	clear(r.pending)
	r.pending = r.pending[:0]
	return err
}

func (r *entityRegistry) enqueue(typ operationType, e *Entity, entities EntityView) {
	op := r.pool.Obtain()
	op.typ = typ
	op.entity = e
	op.entities = entities
	r.pending = append(r.pending, op)
}

func (r *entityRegistry) addInternal(e *Entity) error {
	if _, ok := r.set[e]; ok {
		return DuplicateEntityError{Entity: e}
	}
	r.set[e] = struct{}{}
	r.list = append(r.list, e)
	r.owner.entityAdded(e)
	return nil
}

func (r *entityRegistry) removeInternal(e *Entity) {
	if _, ok := r.set[e]; !ok {
		e.scheduledForRemoval = false
		return
	}
	delete(r.set, e)
	if i := slices.Index(r.list, e); i >= 0 {
		r.list = slices.Delete(r.list, i, i+1)
	}
	e.removing = true
	r.owner.entityRemoved(e)
	e.removing = false
	e.scheduledForRemoval = false
}

// removeEach removes the current first entity until the view is empty. The
// view may be a family list that callbacks modify while we go.
func (r *entityRegistry) removeEach(entities EntityView) {
	for entities.Len() > 0 {
		e := entities.At(0)
		if _, ok := r.set[e]; !ok {
			// a view that still lists an unregistered entity would never shrink
			break
		}
		r.removeInternal(e)
	}
}
