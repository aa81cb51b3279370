package ashley

import (
	"fmt"

	"github.com/TheBitDrifter/mask"
	"go.uber.org/multierr"
)

// Family selects entities by the component kinds they hold. Families are
// interned: building the same all/any/exclude sets twice yields the same
// *Family and the same Index.
type Family struct {
	all     mask.Mask
	any     mask.Mask
	exclude mask.Mask
	index   uint32
}

type familyKey struct {
	all, any, exclude mask.Mask
}

var families = newInternCache[familyKey, *Family](0)

// Matches reports whether e holds every kind in all, at least one kind in
// any (when any is set) and no kind in exclude.
func (f *Family) Matches(e *Entity) bool {
	bits := e.componentBits
	if f.all != (mask.Mask{}) && !bits.ContainsAll(f.all) {
		return false
	}
	if f.any != (mask.Mask{}) && !bits.ContainsAny(f.any) {
		return false
	}
	if f.exclude != (mask.Mask{}) && !bits.ContainsNone(f.exclude) {
		return false
	}
	return true
}

func (f *Family) Index() uint32 {
	return f.index
}

func (f *Family) String() string {
	return fmt.Sprintf("Family(%d){all:%s any:%s exclude:%s}",
		f.index, maskString(f.all), maskString(f.any), maskString(f.exclude))
}

// EmptyFamily matches every entity.
func EmptyFamily() *Family {
	return Factory.NewFamily().MustBuild()
}

// FamilyBuilder collects the three kind sets of a family. Each of AllOf,
// AnyOf and NoneOf replaces its set; calling AllOf twice keeps only the
// second call's kinds.
type FamilyBuilder struct {
	all, any, exclude mask.Mask
	err               error
}

// AllOf replaces the set of kinds an entity must hold.
func (b *FamilyBuilder) AllOf(kinds ...ComponentKind) *FamilyBuilder {
	b.all = BitsFor(kinds...)
	return b
}

// AnyOf replaces the set of kinds of which an entity must hold at least one.
func (b *FamilyBuilder) AnyOf(kinds ...ComponentKind) *FamilyBuilder {
	b.any = BitsFor(kinds...)
	return b
}

// NoneOf replaces the set of kinds an entity must not hold.
func (b *FamilyBuilder) NoneOf(kinds ...ComponentKind) *FamilyBuilder {
	b.exclude = BitsFor(kinds...)
	return b
}

// AllOfTypes is AllOf keyed by sample component values such as &Position{}.
func (b *FamilyBuilder) AllOfTypes(samples ...Component) *FamilyBuilder {
	b.all = b.bitsForSamples(samples)
	return b
}

func (b *FamilyBuilder) AnyOfTypes(samples ...Component) *FamilyBuilder {
	b.any = b.bitsForSamples(samples)
	return b
}

func (b *FamilyBuilder) NoneOfTypes(samples ...Component) *FamilyBuilder {
	b.exclude = b.bitsForSamples(samples)
	return b
}

func (b *FamilyBuilder) bitsForSamples(samples []Component) mask.Mask {
	var m mask.Mask
	for _, s := range samples {
		kind, err := KindFor(s)
		if err != nil {
			b.err = multierr.Append(b.err, err)
			continue
		}
		m.Mark(kind.index)
	}
	return m
}

// Reset clears all three sets and any recorded error.
func (b *FamilyBuilder) Reset() *FamilyBuilder {
	*b = FamilyBuilder{}
	return b
}

// Build returns the interned family for the current sets.
func (b *FamilyBuilder) Build() (*Family, error) {
	if b.err != nil {
		return nil, b.err
	}
	key := familyKey{all: b.all, any: b.any, exclude: b.exclude}
	f, _, err := families.register(key, func(index int) *Family {
		return &Family{all: key.all, any: key.any, exclude: key.exclude, index: uint32(index)}
	})
	return f, err
}

func (b *FamilyBuilder) MustBuild() *Family {
	f, err := b.Build()
	if err != nil {
		panic(err)
	}
	return f
}

// AllOf starts a builder requiring every given kind.
func AllOf(kinds ...ComponentKind) *FamilyBuilder {
	return Factory.NewFamily().AllOf(kinds...)
}

func AnyOf(kinds ...ComponentKind) *FamilyBuilder {
	return Factory.NewFamily().AnyOf(kinds...)
}

func NoneOf(kinds ...ComponentKind) *FamilyBuilder {
	return Factory.NewFamily().NoneOf(kinds...)
}
