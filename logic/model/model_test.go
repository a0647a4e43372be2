package model

import (
	"testing"

	"github.com/cs-au-dk/mlml/logic/lattice"
	"github.com/cs-au-dk/mlml/utils"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// twoChain builds a many-lattice with a two-element component 0 and a
// three-element chain component 1.
func twoChain(t *testing.T) *lattice.ManyLattice {
	t.Helper()
	two := lattice.Create().Lattice().TwoElement()
	chain := lattice.Create().Lattice().Chain("0", "h", "1")
	fTwo, err := lattice.NewFilter(two, "⊤")
	require.NoError(t, err)
	fChain, err := lattice.NewFilter(chain, "h", "1")
	require.NoError(t, err)
	ml, err := lattice.NewMany(
		lattice.Component{Lattice: two, Filter: fTwo},
		lattice.Component{Lattice: chain, Filter: fChain},
	)
	require.NoError(t, err)
	return ml
}

func demoDecl() Decl {
	return Decl{
		Name:  "demo",
		Props: []string{"p"},
		Worlds: []WorldDecl{
			{ID: "w0", Component: 0, Assign: map[string]string{"p": "⊤"}},
			{ID: "w1", Component: 1, Assign: map[string]string{"p": "h"}},
		},
		Edges:   [][2]string{{"w0", "w1"}, {"w1", "w1"}, {"w0", "w1"}},
		Initial: "w0",
	}
}

func TestModelAccessors(t *testing.T) {
	ml := twoChain(t)
	m, err := New(ml, demoDecl())
	require.NoError(t, err)

	require.Equal(t, "demo", m.Name())
	require.Same(t, ml, m.ManyLattice())
	require.Equal(t, []string{"p"}, m.Props())

	w0, found := m.World("w0")
	require.True(t, found)
	require.Equal(t, "w0", w0.ID())
	require.Equal(t, 0, w0.Component())

	_, found = m.World("w9")
	require.False(t, found)

	var ids []string
	for _, w := range m.Worlds() {
		ids = append(ids, w.ID())
	}
	require.Equal(t, []string{"w0", "w1"}, ids)

	// The duplicate w0 → w1 edge collapses.
	require.Equal(t, []string{"w1"}, m.Successors("w0"))
	require.Equal(t, []string{"w1"}, m.Successors("w1"))
	require.Empty(t, m.Successors("w9"))

	require.Same(t, w0, m.Initial())

	w1, _ := m.World("w1")
	require.Equal(t, []string{"p"}, w1.Vars())
	chain, _ := ml.Component(1)
	v, found := w1.Assignment("p")
	require.True(t, found)
	require.True(t, v.Eq(chain.Lattice.El("h")))
	_, found = w1.Assignment("q")
	require.False(t, found)

	comp, found := m.Component("w1")
	require.True(t, found)
	require.Same(t, chain.Lattice, comp.Lattice)
	_, found = m.Component("w9")
	require.False(t, found)
}

func TestModelRejects(t *testing.T) {
	ml := twoChain(t)

	tests := []struct {
		name string
		decl Decl
		want InvalidModelError
	}{
		{
			"no worlds",
			Decl{Name: "m"},
			InvalidModelError{Model: "m", Reason: NoWorlds},
		},
		{
			"duplicate world",
			Decl{Name: "m", Worlds: []WorldDecl{{ID: "w0"}, {ID: "w0"}}, Initial: "w0"},
			InvalidModelError{Model: "m", Reason: DuplicateWorld, World: "w0"},
		},
		{
			"component out of range",
			Decl{Name: "m", Worlds: []WorldDecl{{ID: "w0", Component: 2}}, Initial: "w0"},
			InvalidModelError{Model: "m", Reason: BadComponent, World: "w0", Index: 2},
		},
		{
			"assignment outside the lattice",
			Decl{Name: "m", Worlds: []WorldDecl{
				{ID: "w0", Assign: map[string]string{"p": "zap"}},
			}, Initial: "w0"},
			InvalidModelError{Model: "m", Reason: BadAssignment, World: "w0", Var: "p", Value: "zap"},
		},
		{
			"missing declared prop",
			Decl{Name: "m", Props: []string{"p", "q"}, Worlds: []WorldDecl{
				{ID: "w0", Assign: map[string]string{"p": "⊤"}},
			}, Initial: "w0"},
			InvalidModelError{Model: "m", Reason: MissingProp, World: "w0", Var: "q"},
		},
		{
			"dangling edge target",
			Decl{Name: "m", Worlds: []WorldDecl{{ID: "w0"}},
				Edges: [][2]string{{"w0", "w9"}}, Initial: "w0"},
			InvalidModelError{Model: "m", Reason: DanglingEdge, World: "w0", Other: "w9"},
		},
		{
			"dangling edge source",
			Decl{Name: "m", Worlds: []WorldDecl{{ID: "w0"}},
				Edges: [][2]string{{"w9", "w0"}}, Initial: "w0"},
			InvalidModelError{Model: "m", Reason: DanglingEdge, World: "w9", Other: "w0"},
		},
		{
			"unknown initial",
			Decl{Name: "m", Worlds: []WorldDecl{{ID: "w0"}}, Initial: "w9"},
			InvalidModelError{Model: "m", Reason: UnknownInitial, World: "w9"},
		},
	}

	for _, test := range tests {
		_, err := New(ml, test.decl)
		require.Error(t, err, test.name)

		var merr *InvalidModelError
		require.ErrorAs(t, err, &merr, test.name)
		require.Equal(t, test.want, *merr, test.name)
	}
}

func TestModelReachable(t *testing.T) {
	ml := twoChain(t)

	m, err := New(ml, demoDecl())
	require.NoError(t, err)
	require.Equal(t, []string{"w0", "w1"}, m.Reachable())

	// w2 has no incoming edge from the initial component.
	decl := demoDecl()
	decl.Worlds = append(decl.Worlds, WorldDecl{
		ID: "w2", Component: 0, Assign: map[string]string{"p": "⊥"},
	})
	decl.Edges = append(decl.Edges, [2]string{"w2", "w0"})
	m, err = New(ml, decl)
	require.NoError(t, err)
	require.Equal(t, []string{"w0", "w1"}, m.Reachable())
}

func TestModelString(t *testing.T) {
	utils.SetNoColorize(true)
	ml := twoChain(t)
	m, err := New(ml, demoDecl())
	require.NoError(t, err)

	want := "Model demo {\n" +
		"  w0 @ 0 { p ↦ ⊤ }\n" +
		"  w1 @ 1 { p ↦ h }\n" +
		"  edges: w0 → w1, w1 → w1\n" +
		"  initial: w0\n" +
		"}"
	if diff := cmp.Diff(want, m.String()); diff != "" {
		t.Errorf("model rendering mismatch (-want +got):\n%s", diff)
	}
}
