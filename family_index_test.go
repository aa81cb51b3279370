package ashley

import (
	"fmt"
	"testing"
)

// eventLog collects listener callbacks as "name:added" / "name:removed".
type eventLog struct {
	events []string
}

func (l *eventLog) listener(name string) *EntityListenerFuncs {
	return &EntityListenerFuncs{
		Added:   func(*Entity) { l.events = append(l.events, name+":added") },
		Removed: func(*Entity) { l.events = append(l.events, name+":removed") },
	}
}

func (l *eventLog) String() string {
	return fmt.Sprint(l.events)
}

func newTestIndex(entities ...*Entity) *familyIndex {
	return newFamilyIndex(newView(&entities))
}

func TestFamilyIndexBackfill(t *testing.T) {
	withPos := newEntityWith(t, &Position{})
	withVel := newEntityWith(t, &Velocity{})
	index := newTestIndex(withPos, withVel)

	view := index.entitiesFor(AllOf(MustKindOf[Position]()).MustBuild())
	if view.Len() != 1 || view.At(0) != withPos {
		t.Errorf("got %v, expected [%v]", view.Slice(), withPos)
	}
	f := AllOf(MustKindOf[Position]()).MustBuild()
	if !withPos.familyBits.Test(uint(f.Index())) {
		t.Errorf("membership bit not set by back-fill")
	}
}

func TestFamilyIndexUpdateMembership(t *testing.T) {
	a := MustKindOf[ComponentA]()
	b := MustKindOf[ComponentB]()
	ab := AllOf(a, b).MustBuild()
	aNotB := AllOf(a).NoneOf(b).MustBuild()

	e := newEntityWith(t, &ComponentA{})
	index := newTestIndex(e)
	abView := index.entitiesFor(ab)
	aNotBView := index.entitiesFor(aNotB)

	log := &eventLog{}
	index.addListener(ab, 0, log.listener("ab"))
	index.addListener(aNotB, 0, log.listener("aNotB"))

	if abView.Len() != 0 || aNotBView.Len() != 1 {
		t.Fatalf("initial membership wrong: ab=%d aNotB=%d", abView.Len(), aNotBView.Len())
	}

	e.Add(&ComponentB{})
	index.updateMembership(e)

	if abView.Len() != 1 || aNotBView.Len() != 0 {
		t.Errorf("membership after adding B wrong: ab=%d aNotB=%d", abView.Len(), aNotBView.Len())
	}
	want := "[aNotB:removed ab:added]"
	if log.String() != want {
		t.Errorf("got %s, expected %s", log, want)
	}
}

func TestFamilyIndexRemovingForcesNonMembership(t *testing.T) {
	e := newEntityWith(t, &Position{})
	index := newTestIndex(e)
	view := index.entitiesFor(EmptyFamily())

	e.removing = true
	index.updateMembership(e)
	e.removing = false

	if view.Len() != 0 {
		t.Errorf("entity being removed still counted in a family")
	}
}

func TestFamilyIndexListenerPriority(t *testing.T) {
	f := AllOf(MustKindOf[ComponentC]()).MustBuild()
	e := Factory.NewEntity()
	index := newTestIndex(e)
	log := &eventLog{}

	index.addListener(f, 5, log.listener("p5"))
	index.addListener(f, -1, log.listener("m1"))
	index.addListener(f, 5, log.listener("p5b"))
	index.addListener(f, 0, log.listener("p0"))
	index.addListener(EmptyFamily(), 3, log.listener("other"))

	e.Add(&ComponentC{})
	index.updateMembership(e)

	want := "[m1:added p0:added p5:added p5b:added]"
	if log.String() != want {
		t.Errorf("got %s, expected %s", log, want)
	}
}

func TestFamilyIndexRemoveListener(t *testing.T) {
	f := AllOf(MustKindOf[ComponentD]()).MustBuild()
	e := Factory.NewEntity()
	index := newTestIndex(e)
	log := &eventLog{}

	keep := log.listener("keep")
	drop := log.listener("drop")
	index.addListener(f, 0, drop)
	index.addListener(f, 1, keep)
	index.addListener(EmptyFamily(), 2, drop)

	if n := index.removeListener(drop); n != 2 {
		t.Errorf("removed %d registrations, expected 2", n)
	}

	e.Add(&ComponentD{})
	index.updateMembership(e)

	want := "[keep:added]"
	if log.String() != want {
		t.Errorf("got %s, expected %s", log, want)
	}
}

func TestFamilyIndexNotifyingFlag(t *testing.T) {
	f := AllOf(MustKindOf[Health]()).MustBuild()
	e := Factory.NewEntity()
	index := newTestIndex(e)

	var seen []bool
	index.addListener(f, 0, &EntityListenerFuncs{
		Added: func(*Entity) { seen = append(seen, index.notifying) },
	})

	e.Add(&Health{})
	index.updateMembership(e)

	if len(seen) != 1 || !seen[0] {
		t.Errorf("notifying not set during dispatch: %v", seen)
	}
	if index.notifying {
		t.Errorf("notifying left set after dispatch")
	}
}
