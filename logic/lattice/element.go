package lattice

// Element is an interned member of a lattice, represented by its owner
// and its position in the declaration order. The zero value is not a
// valid element; obtain elements through Lattice accessors.
type Element struct {
	lat   *Lattice
	index int
}

func (e Element) Lattice() *Lattice {
	return e.lat
}

// Name returns the identifier the element was declared under.
func (e Element) Name() string {
	return e.lat.elems[e.index]
}

// Height encodes the longest cover-path distance from the bottom of
// the lattice to the element that calls this method.
func (e Element) Height() int {
	return e.lat.height[e.index]
}

func (e Element) String() string {
	return colorize.Element(e.Name())
}

// External API for lattice element operations.
// They dynamically perform lattice type checking.

func (e1 Element) Leq(e2 Element) bool {
	checkLatticeMatch(e1.lat, e2.lat, "⊑")
	return e1.leq(e2)
}

func (e1 Element) Geq(e2 Element) bool {
	checkLatticeMatch(e1.lat, e2.lat, "⊒")
	return e1.geq(e2)
}

func (e1 Element) Eq(e2 Element) bool {
	checkLatticeMatch(e1.lat, e2.lat, "=")
	return e1.eq(e2)
}

func (e1 Element) Join(e2 Element) Element {
	checkLatticeMatch(e1.lat, e2.lat, "⊔")
	return e1.join(e2)
}

func (e1 Element) Meet(e2 Element) Element {
	checkLatticeMatch(e1.lat, e2.lat, "⊓")
	return e1.meet(e2)
}

// Internal lattice element operations, that skip lattice type checking.
// Only use under the assumption of lattice type safety: structurally
// equal lattices have aligned indices, so the receiver's tables apply.

func (e1 Element) leq(e2 Element) bool {
	return e1.lat.order[e1.index][e2.index]
}

func (e1 Element) geq(e2 Element) bool {
	return e1.lat.order[e2.index][e1.index]
}

func (e1 Element) eq(e2 Element) bool {
	return e1.index == e2.index
}

func (e1 Element) join(e2 Element) Element {
	return Element{e1.lat, e1.lat.joins[e1.index][e2.index]}
}

func (e1 Element) meet(e2 Element) Element {
	return Element{e1.lat, e1.lat.meets[e1.index][e2.index]}
}

// Negation returns the complement from the negation table, when the
// lattice defines one for the element.
func (e Element) Negation() (Element, bool) {
	neg := e.lat.neg[e.index]
	if neg < 0 {
		return Element{}, false
	}
	return Element{e.lat, neg}, true
}

// Residuum returns the relative pseudo-complement e1 → e2, when the
// lattice defines one for the pair.
func (e1 Element) Residuum(e2 Element) (Element, bool) {
	checkLatticeMatch(e1.lat, e2.lat, "→")
	res := e1.lat.res[e1.index][e2.index]
	if res < 0 {
		return Element{}, false
	}
	return Element{e1.lat, res}, true
}
