package interp

import (
	"fmt"
	"strings"

	"github.com/cs-au-dk/mlml/logic/formula"
	"github.com/cs-au-dk/mlml/logic/lattice"
	"github.com/cs-au-dk/mlml/logic/model"
	"github.com/cs-au-dk/mlml/utils"
	i "github.com/cs-au-dk/mlml/utils/indenter"
	"github.com/fatih/color"
)

var colorize = struct {
	World   func(...interface{}) string
	Valid   func(...interface{}) string
	Invalid func(...interface{}) string
}{
	World: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgYellow).SprintFunc())(is...)
	},
	Valid: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgGreen).SprintFunc())(is...)
	},
	Invalid: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgRed).SprintFunc())(is...)
	},
}

// Entry is the outcome at one world: the value the formula took and
// whether the world's filter designates it.
type Entry struct {
	World      string
	Value      lattice.Element
	Designated bool
}

// Report is the per-world account of one validity check. Entries are
// sorted by world id and cover every world, also past the first
// falsifying one.
type Report struct {
	Formula formula.Formula
	Mode    lattice.Interpretation
	Entries []Entry
}

// Validate evaluates the formula at every world of the model. The memo
// is shared across worlds within the call.
func Validate(f formula.Formula, m *model.Model, mode lattice.Interpretation) (*Report, error) {
	ev := newEvaluation(m, mode)
	rep := &Report{Formula: f, Mode: mode}
	for _, w := range m.Worlds() {
		v, err := ev.eval(f, w.ID())
		if err != nil {
			return nil, err
		}
		comp, _ := m.Component(w.ID())
		rep.Entries = append(rep.Entries, Entry{
			World:      w.ID(),
			Value:      v,
			Designated: comp.Filter.Contains(v),
		})
	}
	return rep, nil
}

// IsValid reports whether every world designates the formula's value.
func IsValid(f formula.Formula, m *model.Model, mode lattice.Interpretation) (bool, error) {
	rep, err := Validate(f, m, mode)
	if err != nil {
		return false, err
	}
	return rep.Valid(), nil
}

// Valid reports whether every world designated the value.
func (r *Report) Valid() bool {
	for _, e := range r.Entries {
		if !e.Designated {
			return false
		}
	}
	return true
}

// Falsifying returns the ids of the worlds that did not designate the
// value, in sorted order.
func (r *Report) Falsifying() []string {
	var ids []string
	for _, e := range r.Entries {
		if !e.Designated {
			ids = append(ids, e.World)
		}
	}
	return ids
}

func (r *Report) String() string {
	verdict := colorize.Valid("valid")
	if !r.Valid() {
		verdict = colorize.Invalid(
			fmt.Sprintf("invalid (falsified at %s)", strings.Join(r.Falsifying(), ", ")))
	}

	lines := make([]string, len(r.Entries))
	for idx, e := range r.Entries {
		membership := "∈"
		if !e.Designated {
			membership = "∉"
		}
		lines[idx] = fmt.Sprintf("%s ↦ %s %s filter", colorize.World(e.World), e.Value, membership)
	}

	return i.Indenter().
		Start(fmt.Sprintf("%s under %s-interpretation: %s {", r.Formula, r.Mode, verdict)).
		NestStrings(lines...).
		End("}")
}
