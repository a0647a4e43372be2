package lattice

import (
	"errors"
	"fmt"
	"strings"
)

// OrderViolation classifies why a declared order is rejected.
type OrderViolation int

const (
	NoElements OrderViolation = iota
	BlankElement
	DuplicateElement
	UnknownElement
	OrderCycle
)

// InvalidOrderError reports a declaration that does not describe a
// partial order over the declared elements.
type InvalidOrderError struct {
	Lattice string
	Reason  OrderViolation
	// A and B carry the witnesses: the duplicate or unknown name, or
	// the pair violating antisymmetry.
	A, B string
}

func (err *InvalidOrderError) Error() string {
	switch err.Reason {
	case NoElements:
		return fmt.Sprintf("lattice %q: no elements declared", err.Lattice)
	case BlankElement:
		return fmt.Sprintf("lattice %q: blank element name", err.Lattice)
	case DuplicateElement:
		return fmt.Sprintf("lattice %q: duplicate element %q", err.Lattice, err.A)
	case UnknownElement:
		return fmt.Sprintf("lattice %q: order pair references undeclared element %q", err.Lattice, err.A)
	case OrderCycle:
		return fmt.Sprintf("lattice %q: order is not antisymmetric: %s ⊑ %s and %s ⊑ %s", err.Lattice, err.A, err.B, err.B, err.A)
	}
	return fmt.Sprintf("lattice %q: invalid order", err.Lattice)
}

// IncompleteLatticeError reports a pair of elements without a unique
// least upper or greatest lower bound. Candidates carries the minimal
// upper (respectively maximal lower) bounds that were found.
type IncompleteLatticeError struct {
	Lattice    string
	A, B       string
	Op         string // "join" or "meet"
	Candidates []string
}

func (err *IncompleteLatticeError) Error() string {
	if len(err.Candidates) == 0 {
		return fmt.Sprintf("lattice %q: %s and %s have no %s", err.Lattice, err.A, err.B, err.Op)
	}
	return fmt.Sprintf("lattice %q: %s and %s have no unique %s (candidates: %s)",
		err.Lattice, err.A, err.B, err.Op, strings.Join(err.Candidates, ", "))
}

// OperatorTableError reports a negation or residuum table entry naming
// an undeclared element.
type OperatorTableError struct {
	Lattice string
	Table   string // "negation" or "residuum"
	Key     string
	Name    string
}

func (err *OperatorTableError) Error() string {
	return fmt.Sprintf("lattice %q: %s table entry for %s references undeclared element %q",
		err.Lattice, err.Table, err.Key, err.Name)
}

// UnknownElementError reports a designated-set entry naming an element
// the lattice does not have.
type UnknownElementError struct {
	Lattice string
	Name    string
}

func (err *UnknownElementError) Error() string {
	return fmt.Sprintf("lattice %q has no element %q", err.Lattice, err.Name)
}

// EmptyFilterError reports an empty designated set.
type EmptyFilterError struct {
	Lattice string
}

func (err *EmptyFilterError) Error() string {
	return fmt.Sprintf("filter over %q: no designated elements", err.Lattice)
}

// NotUpwardClosedError reports a designated element with an
// undesignated element above it.
type NotUpwardClosedError struct {
	Lattice string
	In      string
	Above   string
}

func (err *NotUpwardClosedError) Error() string {
	return fmt.Sprintf("filter over %q is not upward closed: %s is designated but %s ⊒ %s is not",
		err.Lattice, err.In, err.Above, err.In)
}

// NotMeetClosedError reports a designated pair whose meet is not
// designated.
type NotMeetClosedError struct {
	Lattice string
	A, B    string
	Meet    string
}

func (err *NotMeetClosedError) Error() string {
	return fmt.Sprintf("filter over %q is not meet closed: %s ⊓ %s = %s is not designated",
		err.Lattice, err.A, err.B, err.Meet)
}

// ComponentViolation classifies why a component is rejected by a
// many-lattice.
type ComponentViolation int

const (
	MissingPart ComponentViolation = iota
	FilterMismatch
	NotInBase
	OrderDisagrees
	NotJoinClosed
	NotMeetClosed
)

// ComponentError reports a component that cannot take part in a
// many-lattice. Index is -1 when the base component is at fault.
type ComponentError struct {
	Index  int
	Reason ComponentViolation
	A, B   string
}

func (err *ComponentError) Error() string {
	who := fmt.Sprintf("component %d", err.Index)
	if err.Index < 0 {
		who = "base component"
	}
	switch err.Reason {
	case MissingPart:
		return fmt.Sprintf("%s: lattice and filter must both be given", who)
	case FilterMismatch:
		return fmt.Sprintf("%s: filter belongs to a different lattice", who)
	case NotInBase:
		return fmt.Sprintf("%s: element %s does not occur in the base lattice", who, err.A)
	case OrderDisagrees:
		return fmt.Sprintf("%s: order of %s and %s disagrees with the base lattice", who, err.A, err.B)
	case NotJoinClosed:
		return fmt.Sprintf("%s: not closed under the base join of %s and %s", who, err.A, err.B)
	case NotMeetClosed:
		return fmt.Sprintf("%s: not closed under the base meet of %s and %s", who, err.A, err.B)
	}
	return who + ": invalid component"
}

// ErrNoComponents rejects a many-lattice built over no components.
var ErrNoComponents = errors.New("many-lattice has no components")
