package interp

import "fmt"

// UnknownWorldError reports evaluation at a world id the model does
// not have.
type UnknownWorldError struct {
	ID string
}

func (err *UnknownWorldError) Error() string {
	return fmt.Sprintf("unknown world %q", err.ID)
}

// UnassignedVariableError reports a formula variable without a value
// at the world it is evaluated in.
type UnassignedVariableError struct {
	Var   string
	World string
}

func (err *UnassignedVariableError) Error() string {
	return fmt.Sprintf("variable %s has no value at world %s", err.Var, err.World)
}

// UnsupportedOperatorError reports a connective whose lattice operator
// is undefined at the operand it was applied to.
type UnsupportedOperatorError struct {
	Op      string
	Element string
	Lattice string
}

func (err *UnsupportedOperatorError) Error() string {
	return fmt.Sprintf("operator %s is undefined at %s in lattice %s",
		err.Op, err.Element, err.Lattice)
}
