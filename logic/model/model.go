// Package model implements Kripke models over many-lattices: worlds
// bound to lattice components, per-world variable assignments, and a
// directed accessibility relation.
package model

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/benbjohnson/immutable"
	"github.com/cs-au-dk/mlml/logic/lattice"
	"github.com/cs-au-dk/mlml/utils"
	"github.com/cs-au-dk/mlml/utils/graph"
	i "github.com/cs-au-dk/mlml/utils/indenter"
	"github.com/fatih/color"
)

var colorize = struct {
	Model func(...interface{}) string
	World func(...interface{}) string
	Field func(...interface{}) string
}{
	Model: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgHiBlue).SprintFunc())(is...)
	},
	World: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgYellow).SprintFunc())(is...)
	},
	Field: func(is ...interface{}) string {
		return utils.CanColorize(color.New(color.FgGreen).SprintFunc())(is...)
	},
}

// World is a single world of a model: an id, the index of the lattice
// component interpreting it, and an assignment of variables to
// elements of that lattice.
type World struct {
	id        string
	component int
	assign    *immutable.SortedMap[string, lattice.Element]
}

func (w *World) ID() string {
	return w.id
}

// Component is the index of the world's lattice in the many-lattice.
func (w *World) Component() int {
	return w.component
}

// Assignment looks up the element the world assigns to the variable.
func (w *World) Assignment(v string) (lattice.Element, bool) {
	return w.assign.Get(v)
}

// Vars returns the assigned variables in sorted order.
func (w *World) Vars() []string {
	res := make([]string, 0, w.assign.Len())
	iter := w.assign.Iterator()
	for !iter.Done() {
		v, _, _ := iter.Next()
		res = append(res, v)
	}
	return res
}

func (w *World) String() string {
	var entries []string
	iter := w.assign.Iterator()
	for !iter.Done() {
		v, e, _ := iter.Next()
		entries = append(entries, colorize.Field(v)+" ↦ "+e.String())
	}
	body := "{}"
	if len(entries) > 0 {
		body = "{ " + strings.Join(entries, ", ") + " }"
	}
	return fmt.Sprintf("%s @ %d %s", colorize.World(w.id), w.component, body)
}

// WorldDecl declares one world by plain data: its id, the index of its
// lattice in the many-lattice, and an assignment by element name.
type WorldDecl struct {
	ID        string
	Component int
	Assign    map[string]string
}

// Decl is the raw material of a model. Props lists variables every
// world must assign; it may be empty. The accessibility relation may
// be empty, reflexive, cyclic or disconnected.
type Decl struct {
	Name    string
	Props   []string
	Worlds  []WorldDecl
	Edges   [][2]string
	Initial string
}

// Model is a validated Kripke model. Immutable once built and safe to
// share between concurrent readers.
type Model struct {
	name    string
	ml      *lattice.ManyLattice
	worlds  map[string]*World
	ids     []string // sorted
	succ    map[string][]string
	initial string
	props   []string
}

// New validates the declaration against the many-lattice and builds
// the model.
func New(ml *lattice.ManyLattice, d Decl) (*Model, error) {
	if len(d.Worlds) == 0 {
		return nil, &InvalidModelError{Model: d.Name, Reason: NoWorlds}
	}

	worlds := make(map[string]*World, len(d.Worlds))
	ids := make([]string, 0, len(d.Worlds))
	for _, wd := range d.Worlds {
		if _, found := worlds[wd.ID]; found {
			return nil, &InvalidModelError{Model: d.Name, Reason: DuplicateWorld, World: wd.ID}
		}
		comp, ok := ml.Component(wd.Component)
		if !ok {
			return nil, &InvalidModelError{Model: d.Name, Reason: BadComponent,
				World: wd.ID, Index: wd.Component}
		}

		assign := immutable.NewSortedMap[string, lattice.Element](nil)
		for v, name := range wd.Assign {
			el, ok := comp.Lattice.Element(name)
			if !ok {
				return nil, &InvalidModelError{Model: d.Name, Reason: BadAssignment,
					World: wd.ID, Var: v, Value: name}
			}
			assign = assign.Set(v, el)
		}
		for _, p := range d.Props {
			if _, found := assign.Get(p); !found {
				return nil, &InvalidModelError{Model: d.Name, Reason: MissingProp,
					World: wd.ID, Var: p}
			}
		}

		worlds[wd.ID] = &World{id: wd.ID, component: wd.Component, assign: assign}
		ids = append(ids, wd.ID)
	}
	sort.Strings(ids)

	succ := make(map[string][]string)
	for _, edge := range d.Edges {
		from, to := edge[0], edge[1]
		_, fromOk := worlds[from]
		_, toOk := worlds[to]
		if !fromOk || !toOk {
			return nil, &InvalidModelError{Model: d.Name, Reason: DanglingEdge,
				World: from, Other: to}
		}
		succ[from] = append(succ[from], to)
	}
	for id, tos := range succ {
		sort.Strings(tos)
		succ[id] = slices.Compact(tos)
	}

	if _, found := worlds[d.Initial]; !found {
		return nil, &InvalidModelError{Model: d.Name, Reason: UnknownInitial, World: d.Initial}
	}

	return &Model{
		name:    d.Name,
		ml:      ml,
		worlds:  worlds,
		ids:     ids,
		succ:    succ,
		initial: d.Initial,
		props:   slices.Clone(d.Props),
	}, nil
}

func (m *Model) Name() string {
	return m.name
}

// ManyLattice returns the many-lattice interpreting the worlds.
func (m *Model) ManyLattice() *lattice.ManyLattice {
	return m.ml
}

// World looks up a world by id.
func (m *Model) World(id string) (*World, bool) {
	w, found := m.worlds[id]
	return w, found
}

// Worlds returns all worlds, sorted by id.
func (m *Model) Worlds() []*World {
	res := make([]*World, len(m.ids))
	for idx, id := range m.ids {
		res[idx] = m.worlds[id]
	}
	return res
}

// Successors returns the ids reachable along one accessibility edge,
// deduplicated and sorted. Terminal worlds have none.
func (m *Model) Successors(id string) []string {
	return m.succ[id]
}

// Initial returns the designated initial world.
func (m *Model) Initial() *World {
	return m.worlds[m.initial]
}

// Reachable returns the ids of the worlds reachable from the initial
// world along accessibility edges, sorted. The initial world is always
// among them.
func (m *Model) Reachable() []string {
	var res []string
	graph.OfHashable(m.Successors).BFS(m.initial, func(id string) bool {
		res = append(res, id)
		return false
	})
	sort.Strings(res)
	return res
}

// Props returns the variables every world is required to assign.
func (m *Model) Props() []string {
	return m.props
}

// Component returns the lattice component interpreting the world.
func (m *Model) Component(id string) (lattice.Component, bool) {
	w, found := m.worlds[id]
	if !found {
		return lattice.Component{}, false
	}
	return m.ml.Component(w.component)
}

func (m *Model) String() string {
	lines := make([]string, 0, len(m.ids)+2)
	for _, id := range m.ids {
		lines = append(lines, m.worlds[id].String())
	}

	var edges []string
	for _, id := range m.ids {
		for _, to := range m.succ[id] {
			edges = append(edges, colorize.World(id)+" → "+colorize.World(to))
		}
	}
	lines = append(lines,
		colorize.Field("edges")+": "+strings.Join(edges, ", "),
		colorize.Field("initial")+": "+colorize.World(m.initial))

	return i.Indenter().
		Start(colorize.Model("Model") + " " + m.name + " {").
		NestStrings(lines...).
		End("}")
}
