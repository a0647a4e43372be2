package lattice

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/cs-au-dk/mlml/utils/set"
)

type (
	// factory is a structure that implements methods from which to
	// access the lattice factory.
	factory struct{}

	// latticeFactory is a structure that implements methods for
	// creating the standard lattice constructions.
	latticeFactory struct{}
)

// latFact is a singleton instantiation of the lattice factory.
var latFact = latticeFactory{}

// Lattice gives access to the lattice factory.
func (factory) Lattice() latticeFactory {
	return latFact
}

// Create returns a factory for which the methods are used to create
// lattices.
func Create() factory {
	return factory{}
}

// mustBuild unwraps constructions that are valid for every input.
func mustBuild(l *Lattice, err error) *Lattice {
	if err != nil {
		panic(err)
	}
	return l
}

// TwoElement returns the two-element lattice:
//
//	⊤
//	|
//	⊥
//
// with the classical negation and residuum derived.
func (latticeFactory) TwoElement() *Lattice {
	return mustBuild(New(Decl{
		Name:          "two",
		Elements:      []string{"⊥", "⊤"},
		Order:         [][2]string{{"⊥", "⊤"}},
		DeriveHeyting: true,
	}))
}

// Chain returns the total order over the given names, bottom first,
// with the Gödel operators derived.
func (latticeFactory) Chain(names ...string) *Lattice {
	d := Decl{Name: "chain", Elements: names, DeriveHeyting: true}
	for idx := 0; idx+1 < len(names); idx++ {
		d.Order = append(d.Order, [2]string{names[idx], names[idx+1]})
	}
	return mustBuild(New(d))
}

// Diamond returns the bounded lattice of pairwise incomparable
// midpoints:
//
//	  ⊤
//	 /|\
//	a b c
//	 \|/
//	  ⊥
//
// The first name is the bottom, the last the top. With two midpoints
// the derived operators are the classical ones; with three or more the
// derivation leaves the midpoint negations undefined.
func (latticeFactory) Diamond(names ...string) *Lattice {
	if len(names) < 3 {
		panic("diamond needs a bottom, a top and at least one midpoint")
	}
	d := Decl{Name: "diamond", Elements: names, DeriveHeyting: true}
	bot, top := names[0], names[len(names)-1]
	for _, mid := range names[1 : len(names)-1] {
		d.Order = append(d.Order, [2]string{bot, mid}, [2]string{mid, top})
	}
	return mustBuild(New(d))
}

// Powerset returns the lattice of all subsets of the given atoms
// ordered by inclusion, with the classical operators derived. Elements
// are named {a,b} over the sorted atoms.
func (latticeFactory) Powerset(atoms ...string) *Lattice {
	sorted := make([]string, len(atoms))
	copy(sorted, atoms)
	sort.Strings(sorted)

	name := func(ss []string) string {
		return "{" + strings.Join(ss, ",") + "}"
	}
	grow := func(ss []string, atom string) []string {
		out := make([]string, 0, len(ss)+1)
		added := false
		for _, a := range ss {
			if !added && atom < a {
				out = append(out, atom)
				added = true
			}
			out = append(out, a)
		}
		if !added {
			out = append(out, atom)
		}
		return out
	}

	d := Decl{
		Name:          fmt.Sprintf("powerset(%s)", strings.Join(sorted, ",")),
		DeriveHeyting: true,
	}
	set.Subsets(sorted).ForEach(func(ss []string) {
		d.Elements = append(d.Elements, name(ss))
		for _, atom := range sorted {
			if slices.Contains(ss, atom) {
				continue
			}
			d.Order = append(d.Order, [2]string{name(ss), name(grow(ss, atom))})
		}
	})
	return mustBuild(New(d))
}
