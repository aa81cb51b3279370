package ashley

import "testing"

type intListener struct {
	received  []int
	onReceive func(s *Signal[int])
}

func (l *intListener) Receive(s *Signal[int], v int) {
	l.received = append(l.received, v)
	if l.onReceive != nil {
		l.onReceive(s)
	}
}

func TestSignalDispatch(t *testing.T) {
	var s Signal[int]
	a, b := &intListener{}, &intListener{}
	s.Add(a)
	s.Add(b)

	s.Dispatch(1)
	s.Dispatch(2)

	for name, l := range map[string]*intListener{"a": a, "b": b} {
		if len(l.received) != 2 || l.received[0] != 1 || l.received[1] != 2 {
			t.Errorf("listener %s got %v, expected [1 2]", name, l.received)
		}
	}
}

func TestSignalRemove(t *testing.T) {
	var s Signal[int]
	a, b := &intListener{}, &intListener{}
	s.Add(a)
	s.Add(b)

	s.Remove(a)
	s.Dispatch(1)
	if len(a.received) != 0 {
		t.Errorf("removed listener received %v", a.received)
	}
	if len(b.received) != 1 {
		t.Errorf("got %v, expected [1]", b.received)
	}

	s.RemoveAll()
	s.Dispatch(2)
	if len(b.received) != 1 || s.Len() != 0 {
		t.Errorf("RemoveAll left listeners registered")
	}
}

func TestSignalDispatchUsesSnapshot(t *testing.T) {
	var s Signal[int]
	late := &intListener{}
	second := &intListener{}
	first := &intListener{onReceive: func(s *Signal[int]) {
		s.Remove(second)
		s.Add(late)
	}}
	s.Add(first)
	s.Add(second)

	s.Dispatch(7)

	if len(second.received) != 1 {
		t.Errorf("listener removed mid-dispatch got %v, expected [7]", second.received)
	}
	if len(late.received) != 0 {
		t.Errorf("listener added mid-dispatch got %v, expected nothing", late.received)
	}
}
