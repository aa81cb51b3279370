package ashley

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/TheBitDrifter/mask"
)

// MaxComponentKinds is the number of distinct component kinds a process can
// register; it matches the width of mask.Mask.
const MaxComponentKinds = 256

// kinds maps every struct type seen so far to its index. Indices are handed
// out in first-seen order and never reused for the life of the process.
var kinds = newInternCache[reflect.Type, reflect.Type](MaxComponentKinds)

// ComponentKind identifies a component struct type by a small stable index.
type ComponentKind struct {
	index uint32
}

func (k ComponentKind) Index() uint32 {
	return k.index
}

// Type returns the struct type the kind was registered for, or nil if no
// type holds its index yet.
func (k ComponentKind) Type() reflect.Type {
	if int(k.index) >= kinds.len() {
		return nil
	}
	return kinds.item(int(k.index))
}

func (k ComponentKind) String() string {
	t := k.Type()
	if t == nil {
		return fmt.Sprintf("ComponentKind(%d)", k.index)
	}
	return t.String()
}

// KindOf returns the kind of struct type T, registering it on first use.
func KindOf[T any]() (ComponentKind, error) {
	return kindForType(reflect.TypeFor[T]())
}

// MustKindOf is KindOf for package-level declarations; it panics on error.
func MustKindOf[T any]() ComponentKind {
	kind, err := KindOf[T]()
	if err != nil {
		panic(err)
	}
	return kind
}

// KindFor returns the kind of a component value. Components are non-nil
// pointers to structs.
func KindFor(c Component) (ComponentKind, error) {
	if c == nil {
		return ComponentKind{}, InvalidComponentKindError{Reason: "component is nil"}
	}
	t := reflect.TypeOf(c)
	if t.Kind() != reflect.Pointer {
		return ComponentKind{}, InvalidComponentKindError{Type: t, Reason: "components must be pointers to structs"}
	}
	if reflect.ValueOf(c).IsNil() {
		return ComponentKind{}, InvalidComponentKindError{Type: t, Reason: "component is a nil pointer"}
	}
	return kindForType(t.Elem())
}

func kindForType(t reflect.Type) (ComponentKind, error) {
	if t.Kind() != reflect.Struct {
		return ComponentKind{}, InvalidComponentKindError{Type: t, Reason: "not a struct type"}
	}
	if _, idx, ok := kinds.lookup(t); ok {
		return ComponentKind{index: uint32(idx)}, nil
	}
	_, idx, err := kinds.register(t, func(int) reflect.Type { return t })
	if err != nil {
		return ComponentKind{}, InvalidComponentKindError{
			Type:   t,
			Reason: fmt.Sprintf("component kind limit reached: %v", err),
		}
	}
	return ComponentKind{index: uint32(idx)}, nil
}

// BitsFor unions the indices of kinds into one mask.
func BitsFor(ks ...ComponentKind) mask.Mask {
	var m mask.Mask
	for _, k := range ks {
		m.Mark(k.index)
	}
	return m
}

func maskHas(m mask.Mask, index uint32) bool {
	var bit mask.Mask
	bit.Mark(index)
	return m.ContainsAll(bit)
}

// maskString lists the kind names marked in m.
func maskString(m mask.Mask) string {
	var names []string
	for i := 0; i < kinds.len(); i++ {
		if maskHas(m, uint32(i)) {
			names = append(names, kinds.item(i).String())
		}
	}
	return "[" + strings.Join(names, " ") + "]"
}
