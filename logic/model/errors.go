package model

import "fmt"

// InvalidModelReason classifies why a model declaration is rejected.
type InvalidModelReason int

const (
	NoWorlds InvalidModelReason = iota
	DuplicateWorld
	UnknownInitial
	DanglingEdge
	BadComponent
	BadAssignment
	MissingProp
)

// InvalidModelError reports a declaration that does not describe a
// Kripke model over the given many-lattice. World carries the
// offending world id, Other the far end of a bad edge, Var and Value
// the offending assignment, Index an out-of-range component.
type InvalidModelError struct {
	Model  string
	Reason InvalidModelReason
	World  string
	Other  string
	Var    string
	Value  string
	Index  int
}

func (err *InvalidModelError) Error() string {
	switch err.Reason {
	case NoWorlds:
		return fmt.Sprintf("model %q: no worlds declared", err.Model)
	case DuplicateWorld:
		return fmt.Sprintf("model %q: duplicate world %q", err.Model, err.World)
	case UnknownInitial:
		return fmt.Sprintf("model %q: initial world %q is not declared", err.Model, err.World)
	case DanglingEdge:
		return fmt.Sprintf("model %q: edge %s → %s has an undeclared endpoint", err.Model, err.World, err.Other)
	case BadComponent:
		return fmt.Sprintf("model %q: world %s is bound to component %d, which the many-lattice does not have",
			err.Model, err.World, err.Index)
	case BadAssignment:
		return fmt.Sprintf("model %q: world %s assigns %s ↦ %s, which is not an element of its lattice",
			err.Model, err.World, err.Var, err.Value)
	case MissingProp:
		return fmt.Sprintf("model %q: world %s does not assign the declared proposition %s",
			err.Model, err.World, err.Var)
	}
	return fmt.Sprintf("model %q: invalid declaration", err.Model)
}
