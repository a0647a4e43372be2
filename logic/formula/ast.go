// Package formula provides the propositional modal formula tree and
// its parser.
package formula

import (
	"fmt"
	"sort"
)

// Formula is an immutable modal formula. The variant set is closed:
// Var, Not, And, Or, Implies, Iff, Box and Diamond. Trees are shared
// read-only by any number of evaluations.
type Formula interface {
	fmt.Stringer
	node()
}

type (
	Var     struct{ Name string }
	Not     struct{ Sub Formula }
	Box     struct{ Sub Formula }
	Diamond struct{ Sub Formula }
	And     struct{ Left, Right Formula }
	Or      struct{ Left, Right Formula }
	Implies struct{ Left, Right Formula }
	Iff     struct{ Left, Right Formula }
)

func (*Var) node()     {}
func (*Not) node()     {}
func (*Box) node()     {}
func (*Diamond) node() {}
func (*And) node()     {}
func (*Or) node()      {}
func (*Implies) node() {}
func (*Iff) node()     {}

// String prints the canonical form: unary operators prefix their
// operand, binary nodes are parenthesized. Parsing the result yields an
// equal tree.
func (f *Var) String() string     { return f.Name }
func (f *Not) String() string     { return "¬" + f.Sub.String() }
func (f *Box) String() string     { return "□" + f.Sub.String() }
func (f *Diamond) String() string { return "◇" + f.Sub.String() }
func (f *And) String() string     { return "(" + f.Left.String() + " ∧ " + f.Right.String() + ")" }
func (f *Or) String() string      { return "(" + f.Left.String() + " ∨ " + f.Right.String() + ")" }
func (f *Implies) String() string { return "(" + f.Left.String() + " → " + f.Right.String() + ")" }
func (f *Iff) String() string     { return "(" + f.Left.String() + " ↔ " + f.Right.String() + ")" }

// Vars returns the variables occurring in the formula, sorted and
// deduplicated.
func Vars(f Formula) []string {
	seen := map[string]bool{}
	var walk func(Formula)
	walk = func(f Formula) {
		switch f := f.(type) {
		case *Var:
			seen[f.Name] = true
		case *Not:
			walk(f.Sub)
		case *Box:
			walk(f.Sub)
		case *Diamond:
			walk(f.Sub)
		case *And:
			walk(f.Left)
			walk(f.Right)
		case *Or:
			walk(f.Left)
			walk(f.Right)
		case *Implies:
			walk(f.Left)
			walk(f.Right)
		case *Iff:
			walk(f.Left)
			walk(f.Right)
		}
	}
	walk(f)

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
