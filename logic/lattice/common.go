package lattice

import (
	"fmt"

	"github.com/benbjohnson/immutable"
	"github.com/cs-au-dk/mlml/utils"
	"github.com/fatih/color"
)

var colorize = struct {
	Lattice func(...interface{}) string
	Element func(...interface{}) string
	Field   func(...interface{}) string
}{
	Lattice: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
	Element: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgCyan).SprintFunc())(is...)
	},
	Field: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgGreen).SprintFunc())(is...)
	},
}

// checkLatticeMatch dynamically checks that a binary operation stays
// within one lattice. Crossing lattices is an API misuse, not a
// recoverable condition.
func checkLatticeMatch(l1, l2 *Lattice, binop string) {
	if !l1.Eq(l2) {
		panic(fmt.Sprintf(
			"invalid %s\nOperand 1 ∈ %s\nOperand 2 ∈ %s",
			binop, l1, l2,
		))
	}
}

// elementMap is a name-keyed immutable map of elements with
// deterministic iteration order.
type elementMap struct {
	mp *immutable.SortedMap[string, Element]
}

func newElementMap() elementMap {
	return elementMap{immutable.NewSortedMap[string, Element](nil)}
}

func (em elementMap) set(e Element) elementMap {
	return elementMap{em.mp.Set(e.Name(), e)}
}

func (em elementMap) has(name string) bool {
	_, found := em.mp.Get(name)
	return found
}

func (em elementMap) size() int {
	return em.mp.Len()
}

func (em elementMap) elements() []Element {
	res := make([]Element, 0, em.mp.Len())
	iter := em.mp.Iterator()
	for !iter.Done() {
		_, e, _ := iter.Next()
		res = append(res, e)
	}
	return res
}
