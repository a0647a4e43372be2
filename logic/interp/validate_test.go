package interp

import (
	"testing"

	"github.com/cs-au-dk/mlml/logic/formula"
	"github.com/cs-au-dk/mlml/logic/lattice"
	"github.com/cs-au-dk/mlml/logic/model"
	"github.com/cs-au-dk/mlml/utils"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// reportModel holds two Boolean worlds with p ↦ ⊤ at w0 and p ↦ ⊥ at
// w1.
func reportModel(t *testing.T) *model.Model {
	t.Helper()
	two := lattice.Create().Lattice().TwoElement()
	ml := manyOf(t, lattice.Component{Lattice: two, Filter: filterOf(t, two, "⊤")})
	return buildModel(t, ml, model.Decl{
		Name:  "report",
		Props: []string{"p"},
		Worlds: []model.WorldDecl{
			{ID: "w0", Component: 0, Assign: map[string]string{"p": "⊤"}},
			{ID: "w1", Component: 0, Assign: map[string]string{"p": "⊥"}},
		},
		Edges:   [][2]string{{"w0", "w1"}},
		Initial: "w0",
	})
}

func TestValidateTautology(t *testing.T) {
	utils.SetNoColorize(true)
	m := reportModel(t)
	f := formula.MustParse("p ∨ ¬p")

	rep, err := Validate(f, m, lattice.Up)
	require.NoError(t, err)
	require.True(t, rep.Valid())
	require.Empty(t, rep.Falsifying())

	valid, err := IsValid(f, m, lattice.Up)
	require.NoError(t, err)
	require.True(t, valid)

	goldie.New(t).Assert(t, t.Name(), []byte(rep.String()))
}

func TestValidateFalsified(t *testing.T) {
	utils.SetNoColorize(true)
	m := reportModel(t)
	f := formula.MustParse("p")

	rep, err := Validate(f, m, lattice.Down)
	require.NoError(t, err)
	require.False(t, rep.Valid())
	require.Equal(t, []string{"w1"}, rep.Falsifying())

	require.Len(t, rep.Entries, 2)
	require.Equal(t, "w0", rep.Entries[0].World)
	require.True(t, rep.Entries[0].Designated)
	require.Equal(t, "⊤", rep.Entries[0].Value.Name())
	require.Equal(t, "w1", rep.Entries[1].World)
	require.False(t, rep.Entries[1].Designated)
	require.Equal(t, "⊥", rep.Entries[1].Value.Name())

	valid, err := IsValid(f, m, lattice.Down)
	require.NoError(t, err)
	require.False(t, valid)

	goldie.New(t).Assert(t, t.Name(), []byte(rep.String()))
}

func TestValidatePropagatesErrors(t *testing.T) {
	// w0 of the boolean model leaves p unassigned.
	m := booleanModel(t, nil)

	_, err := Validate(formula.MustParse("p"), m, lattice.Down)
	var uv *UnassignedVariableError
	require.ErrorAs(t, err, &uv)
	require.Equal(t, "w0", uv.World)

	_, err = IsValid(formula.MustParse("p"), m, lattice.Down)
	require.Error(t, err)
}
