// Package interp evaluates modal formulas over Kripke models under the
// up and down interpretations.
package interp

import (
	"fmt"

	"github.com/cs-au-dk/mlml/logic/formula"
	"github.com/cs-au-dk/mlml/logic/lattice"
	"github.com/cs-au-dk/mlml/logic/model"
)

// evalKey identifies one memoizable subproblem. Nodes are compared by
// identity, so shared subtrees evaluate once per world.
type evalKey struct {
	node  formula.Formula
	world string
}

// evaluation carries the state of one evaluation call: the memo table
// and the set of open (node, world) pairs that cuts cycles through
// caller-shared trees. Never shared between concurrent calls.
type evaluation struct {
	mdl  *model.Model
	mode lattice.Interpretation
	memo map[evalKey]lattice.Element
	open map[evalKey]bool
}

func newEvaluation(m *model.Model, mode lattice.Interpretation) *evaluation {
	return &evaluation{
		mdl:  m,
		mode: mode,
		memo: map[evalKey]lattice.Element{},
		open: map[evalKey]bool{},
	}
}

// Evaluate computes the value of the formula at the world under the
// given interpretation. The result is an element of the world's
// lattice. The model, many-lattice and formula are only read, so
// concurrent evaluations over shared structures need no
// synchronization.
func Evaluate(f formula.Formula, m *model.Model, worldID string, mode lattice.Interpretation) (lattice.Element, error) {
	return newEvaluation(m, mode).eval(f, worldID)
}

// Satisfies reports whether the world's filter designates the value of
// the formula there.
func Satisfies(f formula.Formula, m *model.Model, worldID string, mode lattice.Interpretation) (bool, error) {
	v, err := Evaluate(f, m, worldID, mode)
	if err != nil {
		return false, err
	}
	comp, _ := m.Component(worldID)
	return comp.Filter.Contains(v), nil
}

func (ev *evaluation) eval(f formula.Formula, worldID string) (lattice.Element, error) {
	w, found := ev.mdl.World(worldID)
	if !found {
		return lattice.Element{}, &UnknownWorldError{ID: worldID}
	}
	comp, _ := ev.mdl.Component(worldID)

	key := evalKey{f, worldID}
	if v, found := ev.memo[key]; found {
		return v, nil
	}
	if ev.open[key] {
		// Re-entering an open pair happens only through caller-shared
		// cyclic trees; the modal operators restart from their vacuous
		// seed.
		switch f.(type) {
		case *formula.Box:
			return comp.Lattice.Top(), nil
		case *formula.Diamond:
			return comp.Lattice.Bot(), nil
		}
		// The node must not be stringified: a cyclic tree has no
		// finite printed form.
		panic(fmt.Sprintf("formula cycle through %T at world %s", f, worldID))
	}
	ev.open[key] = true
	defer delete(ev.open, key)

	v, err := ev.node(f, w, comp.Lattice)
	if err != nil {
		return lattice.Element{}, err
	}
	ev.memo[key] = v
	return v, nil
}

func (ev *evaluation) node(f formula.Formula, w *model.World, l *lattice.Lattice) (lattice.Element, error) {
	switch f := f.(type) {
	case *formula.Var:
		v, found := w.Assignment(f.Name)
		if !found {
			return lattice.Element{}, &UnassignedVariableError{Var: f.Name, World: w.ID()}
		}
		return v, nil

	case *formula.Not:
		v, err := ev.eval(f.Sub, w.ID())
		if err != nil {
			return lattice.Element{}, err
		}
		neg, ok := v.Negation()
		if !ok {
			return lattice.Element{}, &UnsupportedOperatorError{
				Op: "¬", Element: v.Name(), Lattice: l.Name(),
			}
		}
		return neg, nil

	case *formula.And:
		a, b, err := ev.pair(f.Left, f.Right, w.ID())
		if err != nil {
			return lattice.Element{}, err
		}
		return a.Meet(b), nil

	case *formula.Or:
		a, b, err := ev.pair(f.Left, f.Right, w.ID())
		if err != nil {
			return lattice.Element{}, err
		}
		return a.Join(b), nil

	case *formula.Implies:
		a, b, err := ev.pair(f.Left, f.Right, w.ID())
		if err != nil {
			return lattice.Element{}, err
		}
		return implies(a, b, l)

	case *formula.Iff:
		a, b, err := ev.pair(f.Left, f.Right, w.ID())
		if err != nil {
			return lattice.Element{}, err
		}
		fwd, err := implies(a, b, l)
		if err != nil {
			return lattice.Element{}, err
		}
		bwd, err := implies(b, a, l)
		if err != nil {
			return lattice.Element{}, err
		}
		return fwd.Meet(bwd), nil

	case *formula.Box:
		return ev.modal(f.Sub, lattice.Box, w)

	case *formula.Diamond:
		return ev.modal(f.Sub, lattice.Diamond, w)
	}
	panic(fmt.Sprintf("unhandled formula node %T", f))
}

// pair evaluates both operands of a binary node at the same world.
func (ev *evaluation) pair(left, right formula.Formula, worldID string) (lattice.Element, lattice.Element, error) {
	a, err := ev.eval(left, worldID)
	if err != nil {
		return lattice.Element{}, lattice.Element{}, err
	}
	b, err := ev.eval(right, worldID)
	if err != nil {
		return lattice.Element{}, lattice.Element{}, err
	}
	return a, b, nil
}

// implies interprets a → b on values: the residuum when the lattice
// defines one at the pair, otherwise the classical ¬a ∨ b rewrite.
func implies(a, b lattice.Element, l *lattice.Lattice) (lattice.Element, error) {
	if r, ok := a.Residuum(b); ok {
		return r, nil
	}
	neg, ok := a.Negation()
	if !ok {
		return lattice.Element{}, &UnsupportedOperatorError{
			Op: "→", Element: a.Name(), Lattice: l.Name(),
		}
	}
	return neg.Join(b), nil
}

// modal combines the subformula's values at the successor worlds,
// each classified by its own world's filter, re-embedded into the
// evaluating world's lattice. A world without successors hits the
// vacuous conventions: □ yields ⊤ and ◇ yields ⊥.
func (ev *evaluation) modal(sub formula.Formula, op lattice.Modality, w *model.World) (lattice.Element, error) {
	comp, _ := ev.mdl.Component(w.ID())
	succs := ev.mdl.Successors(w.ID())
	if len(succs) == 0 {
		if op == lattice.Box {
			return comp.Lattice.Top(), nil
		}
		return comp.Lattice.Bot(), nil
	}

	vals := make([]lattice.Valuation, len(succs))
	for idx, id := range succs {
		v, err := ev.eval(sub, id)
		if err != nil {
			return lattice.Element{}, err
		}
		succComp, _ := ev.mdl.Component(id)
		vals[idx] = lattice.Valuation{Value: v, Filter: succComp.Filter}
	}
	return ev.mdl.ManyLattice().Combine(ev.mode, op, vals, w.Component()), nil
}
