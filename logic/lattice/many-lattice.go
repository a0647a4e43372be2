package lattice

import (
	"fmt"

	i "github.com/cs-au-dk/mlml/utils/indenter"
)

// Interpretation selects how modal operators aggregate values drawn
// from different component lattices.
type Interpretation int

const (
	// Up reads box as "designated at every successor" and diamond as
	// "designated at some successor".
	Up Interpretation = iota
	// Down is the dual reading: box demands some designated successor,
	// diamond all of them.
	Down
)

func (m Interpretation) String() string {
	if m == Up {
		return "up"
	}
	return "down"
}

// Modality is the modal operator a combination is performed for.
type Modality int

const (
	Box Modality = iota
	Diamond
)

func (m Modality) String() string {
	if m == Box {
		return "□"
	}
	return "◇"
}

// Component pairs a lattice with the filter designating its true
// values.
type Component struct {
	Lattice *Lattice
	Filter  *Filter
}

func (c Component) String() string {
	return c.Lattice.String() + " with " + c.Filter.String()
}

// Valuation is a lattice value together with the filter that
// classifies it, as produced by evaluating a formula at one world.
type Valuation struct {
	Value  Element
	Filter *Filter
}

// ManyLattice is a non-empty ordered sequence of filtered lattices.
// Component indices are stable identifiers that worlds reference.
type ManyLattice struct {
	components []Component
	base       *Component
}

// NewMany validates and assembles the component sequence.
func NewMany(components ...Component) (*ManyLattice, error) {
	if len(components) == 0 {
		return nil, ErrNoComponents
	}
	for idx, c := range components {
		if err := checkComponent(idx, c); err != nil {
			return nil, err
		}
	}
	cs := make([]Component, len(components))
	copy(cs, components)
	return &ManyLattice{components: cs}, nil
}

func checkComponent(idx int, c Component) error {
	if c.Lattice == nil || c.Filter == nil {
		return &ComponentError{Index: idx, Reason: MissingPart}
	}
	if !c.Filter.Lattice().Eq(c.Lattice) {
		return &ComponentError{Index: idx, Reason: FilterMismatch}
	}
	return nil
}

// WithBase returns a copy of the many-lattice with a base component
// attached. Every component must be a complete sublattice of the base:
// its elements occur in the base by name, the orders agree, and the
// component is closed under the base's join and meet.
func (ml *ManyLattice) WithBase(base Component) (*ManyLattice, error) {
	if err := checkComponent(-1, base); err != nil {
		return nil, err
	}
	for idx, c := range ml.components {
		if err := checkSublattice(idx, c.Lattice, base.Lattice); err != nil {
			return nil, err
		}
	}
	b := base
	return &ManyLattice{components: ml.components, base: &b}, nil
}

func checkSublattice(idx int, sub, base *Lattice) error {
	embed := make([]Element, sub.Size())
	for _, e := range sub.Elements() {
		be, ok := base.Element(e.Name())
		if !ok {
			return &ComponentError{Index: idx, Reason: NotInBase, A: e.Name()}
		}
		embed[e.index] = be
	}
	for _, a := range sub.Elements() {
		for _, b := range sub.Elements() {
			if a.leq(b) != embed[a.index].leq(embed[b.index]) {
				return &ComponentError{Index: idx, Reason: OrderDisagrees, A: a.Name(), B: b.Name()}
			}
			if j := embed[a.index].join(embed[b.index]); !sub.has(j.Name()) {
				return &ComponentError{Index: idx, Reason: NotJoinClosed, A: a.Name(), B: b.Name()}
			}
			if m := embed[a.index].meet(embed[b.index]); !sub.has(m.Name()) {
				return &ComponentError{Index: idx, Reason: NotMeetClosed, A: a.Name(), B: b.Name()}
			}
		}
	}
	return nil
}

func (ml *ManyLattice) Len() int {
	return len(ml.components)
}

// Component returns the component at the given index.
func (ml *ManyLattice) Component(idx int) (Component, bool) {
	if idx < 0 || idx >= len(ml.components) {
		return Component{}, false
	}
	return ml.components[idx], true
}

func (ml *ManyLattice) Components() []Component {
	cs := make([]Component, len(ml.components))
	copy(cs, ml.components)
	return cs
}

// Base returns the base component when one is attached.
func (ml *ManyLattice) Base() (Component, bool) {
	if ml.base == nil {
		return Component{}, false
	}
	return *ml.base, true
}

// Combine aggregates the valuations a modal operator collected across
// successor worlds into a value of the component at index into.
//
// When every value already lives in the target component's lattice,
// both interpretations degenerate to that lattice's own meet (box) and
// join (diamond). Otherwise each value is classified by its own filter
// and the boolean verdicts are folded per mode (Up reads box as "all
// designated" and diamond as "some designated", Down swaps the two),
// and the verdict is re-embedded as the target's ⊤ or ⊥.
func (ml *ManyLattice) Combine(mode Interpretation, op Modality, values []Valuation, into int) Element {
	comp, ok := ml.Component(into)
	if !ok {
		panic(fmt.Sprintf("many-lattice has no component %d", into))
	}
	if len(values) == 0 {
		panic("combine of no values")
	}
	target := comp.Lattice

	same := true
	for _, v := range values {
		if !v.Value.Lattice().Eq(target) {
			same = false
			break
		}
	}
	if same {
		res := target.adopt(values[0].Value)
		for _, v := range values[1:] {
			if op == Box {
				res = res.meet(target.adopt(v.Value))
			} else {
				res = res.join(target.adopt(v.Value))
			}
		}
		return res
	}

	all := (mode == Up) == (op == Box)
	verdict := all
	for _, v := range values {
		designated := v.Filter.Contains(v.Value)
		if all {
			verdict = verdict && designated
		} else {
			verdict = verdict || designated
		}
	}
	if verdict {
		return target.Top()
	}
	return target.Bot()
}

// ProjectUp maps a base element to its ceiling in the component at
// index idx: the meet of the component elements lying above it, the
// component's ⊤ when none do. Identity on elements of the component.
func (ml *ManyLattice) ProjectUp(idx int, e Element) Element {
	comp, base := ml.projectable(idx, e)
	res := comp.Lattice.Top()
	for _, x := range comp.Lattice.Elements() {
		if e.leq(base.Lattice.El(x.Name())) {
			res = res.meet(x)
		}
	}
	return res
}

// ProjectDown maps a base element to its floor in the component at
// index idx: the join of the component elements lying below it, the
// component's ⊥ when none do. Identity on elements of the component.
func (ml *ManyLattice) ProjectDown(idx int, e Element) Element {
	comp, base := ml.projectable(idx, e)
	res := comp.Lattice.Bot()
	for _, x := range comp.Lattice.Elements() {
		if base.Lattice.El(x.Name()).leq(e) {
			res = res.join(x)
		}
	}
	return res
}

func (ml *ManyLattice) projectable(idx int, e Element) (Component, Component) {
	if ml.base == nil {
		panic("projection without a base component")
	}
	comp, ok := ml.Component(idx)
	if !ok {
		panic(fmt.Sprintf("many-lattice has no component %d", idx))
	}
	checkLatticeMatch(ml.base.Lattice, e.Lattice(), "projection")
	return comp, *ml.base
}

func (ml *ManyLattice) String() string {
	thunks := make([]func() string, 0, len(ml.components)+1)
	for _, c := range ml.components {
		thunks = append(thunks, c.String)
	}
	if ml.base != nil {
		thunks = append(thunks, func() string {
			return colorize.Field("base") + " " + ml.base.String()
		})
	}
	return i.Indenter().
		Start(colorize.Lattice("ManyLattice") + " {").
		NestThunked(thunks...).
		End("}")
}
