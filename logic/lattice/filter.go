package lattice

import "strings"

// Filter is a non-empty, upward-closed, meet-closed set of designated
// elements of one lattice. A formula holds at a world when its value
// lies in the world's filter.
type Filter struct {
	lat *Lattice
	des elementMap
}

// NewFilter validates the designated set exhaustively: every name must
// be declared, every element above a designated element must be
// designated, and the meet of any two designated elements must be
// designated.
func NewFilter(l *Lattice, designated ...string) (*Filter, error) {
	if len(designated) == 0 {
		return nil, &EmptyFilterError{Lattice: l.name}
	}

	des := newElementMap()
	for _, name := range designated {
		e, ok := l.Element(name)
		if !ok {
			return nil, &UnknownElementError{Lattice: l.name, Name: name}
		}
		des = des.set(e)
	}

	elems := des.elements()
	for _, a := range elems {
		for _, b := range l.Elements() {
			if a.leq(b) && !des.has(b.Name()) {
				return nil, &NotUpwardClosedError{Lattice: l.name, In: a.Name(), Above: b.Name()}
			}
		}
	}
	for _, a := range elems {
		for _, b := range elems {
			m := a.meet(b)
			if !des.has(m.Name()) {
				return nil, &NotMeetClosedError{Lattice: l.name, A: a.Name(), B: b.Name(), Meet: m.Name()}
			}
		}
	}

	return &Filter{lat: l, des: des}, nil
}

func (f *Filter) Lattice() *Lattice {
	return f.lat
}

// Contains reports whether the element is designated.
func (f *Filter) Contains(e Element) bool {
	checkLatticeMatch(f.lat, e.lat, "∈")
	return f.des.has(e.Name())
}

// Elements returns the designated elements sorted by name.
func (f *Filter) Elements() []Element {
	return f.des.elements()
}

func (f *Filter) Size() int {
	return f.des.size()
}

func (f *Filter) String() string {
	names := make([]string, 0, f.des.size())
	for _, e := range f.des.elements() {
		names = append(names, e.String())
	}
	return colorize.Lattice("Filter") + " { " + strings.Join(names, ", ") + " }"
}
