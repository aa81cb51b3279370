package ashley

type operationType int

const (
	opAdd operationType = iota
	opRemove
	opRemoveAll
)

type componentOperation struct {
	typ    operationType
	entity *Entity
}

func (op *componentOperation) Reset() {
	op.typ = opAdd
	op.entity = nil
}

// mutationGate holds back component added/removed notifications while
// deferred reports true and replays them in order on drain.
type mutationGate struct {
	deferred   func() bool
	pool       *Pool[componentOperation]
	operations []*componentOperation
}

func newMutationGate(deferred func() bool) *mutationGate {
	return &mutationGate{
		deferred: deferred,
		pool:     newPool[componentOperation](nil, 0),
	}
}

func (g *mutationGate) add(e *Entity) {
	if g.deferred() {
		g.enqueue(opAdd, e)
		return
	}
	e.componentAdded.Dispatch(e)
}

func (g *mutationGate) remove(e *Entity) {
	if g.deferred() {
		g.enqueue(opRemove, e)
		return
	}
	e.componentRemoved.Dispatch(e)
}

func (g *mutationGate) enqueue(typ operationType, e *Entity) {
	op := g.pool.Obtain()
	op.typ = typ
	op.entity = e
	g.operations = append(g.operations, op)
}

func (g *mutationGate) hasPending() bool {
	return len(g.operations) > 0
}

func (g *mutationGate) drain() {
	// Dispatch may enqueue further operations; walk by live index.
	for i := 0; i < len(g.operations); i++ {
		op := g.operations[i]
		switch op.typ {
		case opAdd:
			op.entity.componentAdded.Dispatch(op.entity)
		case opRemove:
			op.entity.componentRemoved.Dispatch(op.entity)
		}
		g.pool.Free(op)
	}
	clear(g.operations)
	g.operations = g.operations[:0]
}
