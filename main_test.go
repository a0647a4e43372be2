package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cs-au-dk/mlml/logic/formula"
	"github.com/cs-au-dk/mlml/logic/interp"
	"github.com/cs-au-dk/mlml/logic/lattice"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	logger = zap.NewNop()
	goleak.VerifyTestMain(m)
}

func testPipeline(t *testing.T) *pipeline {
	t.Helper()
	proj, err := LoadProject("testdata/project.yaml")
	require.NoError(t, err)
	pipe := newPipeline(proj)
	require.NoError(t, pipe.run())
	return pipe
}

func TestLoadProject(t *testing.T) {
	proj, err := LoadProject("testdata/project.yaml")
	require.NoError(t, err)

	require.Len(t, proj.Lattices, 2)
	require.Equal(t, "two", proj.Lattices[0].Name)
	require.Equal(t, []string{"0", "h", "1"}, proj.Lattices[1].Elements)
	require.Len(t, proj.Filters, 2)
	require.Len(t, proj.ManyLattice.Components, 2)
	require.Nil(t, proj.ManyLattice.Base)
	require.Equal(t, "demo", proj.Model.Name)
	require.Equal(t, [2]string{"w0", "w1"}, proj.Model.Edges[0])
	require.Equal(t, "w0", proj.Model.Initial)
	require.Len(t, proj.Formulas, 2)
}

func TestLoadProjectRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("latices: []\n"), 0o644))

	_, err := LoadProject(path)
	require.ErrorContains(t, err, "latices")

	_, err = LoadProject(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestPipelineRun(t *testing.T) {
	pipe := testPipeline(t)

	require.Equal(t, 2, pipe.ml.Len())
	require.Equal(t, "demo", pipe.mdl.Name())
	require.Equal(t, "w0", pipe.mdl.Initial().ID())

	two := pipe.lattices["two"]
	require.NotNil(t, two)
	comp, ok := pipe.ml.Component(0)
	require.True(t, ok)
	require.Same(t, two, comp.Lattice)
	require.Same(t, pipe.filters["true-only"], comp.Filter)
}

func TestPipelineErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Project)
		want   string
	}{
		{
			"duplicate lattice",
			func(p *Project) { p.Lattices = append(p.Lattices, p.Lattices[0]) },
			`duplicate lattice "two"`,
		},
		{
			"duplicate filter",
			func(p *Project) { p.Filters = append(p.Filters, p.Filters[0]) },
			`duplicate filter "true-only"`,
		},
		{
			"filter over unknown lattice",
			func(p *Project) { p.Filters[0].Lattice = "three" },
			`unknown lattice "three"`,
		},
		{
			"component with unknown filter",
			func(p *Project) { p.ManyLattice.Components[0].Filter = "nope" },
			`component 0: unknown filter "nope"`,
		},
		{
			"base with unknown filter",
			func(p *Project) {
				p.ManyLattice.Base = &componentConfig{Lattice: "two", Filter: "nope"}
			},
			`base: unknown filter "nope"`,
		},
		{
			"assignment outside the world's lattice",
			func(p *Project) { p.Model.Worlds[1].Assign["p"] = "⊤" },
			"not an element of its lattice",
		},
		{
			"undeclared initial world",
			func(p *Project) { p.Model.Initial = "w9" },
			"initial world",
		},
	}

	for _, test := range tests {
		proj, err := LoadProject("testdata/project.yaml")
		require.NoError(t, err)
		test.mutate(proj)

		err = newPipeline(proj).run()
		if err == nil {
			t.Errorf("%s: pipeline accepted a broken project", test.name)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: error %q does not mention %q", test.name, err, test.want)
		}
	}
}

func TestResolveFormulas(t *testing.T) {
	pipe := testPipeline(t)

	nfs, err := pipe.resolveFormulas(nil)
	require.NoError(t, err)
	require.Len(t, nfs, 2)
	require.Equal(t, "maybe-p", nfs[0].name)
	require.Equal(t, "◇p", nfs[0].f.String())
	require.Equal(t, "maybe-p", nfs[0].display())

	nfs, err = pipe.resolveFormulas([]string{"excluded-middle", "□(p → p)"})
	require.NoError(t, err)
	require.Equal(t, "excluded-middle", nfs[0].name)
	require.Equal(t, "", nfs[1].name)
	require.Equal(t, "□(p → p)", nfs[1].f.String())
	require.Equal(t, "□(p → p)", nfs[1].display())

	_, err = pipe.resolveFormulas([]string{"p ∧"})
	var serr *formula.SyntaxError
	require.ErrorAs(t, err, &serr)

	pipe.project.Formulas = nil
	_, err = pipe.resolveFormulas(nil)
	require.ErrorContains(t, err, "no formulas")
}

func TestParseMode(t *testing.T) {
	mode, err := parseMode("up")
	require.NoError(t, err)
	require.Equal(t, lattice.Up, mode)

	mode, err = parseMode("down")
	require.NoError(t, err)
	require.Equal(t, lattice.Down, mode)

	_, err = parseMode("sideways")
	require.ErrorContains(t, err, `unknown interpretation "sideways"`)
}

func TestRunCheck(t *testing.T) {
	projectPath = "testdata/project.yaml"
	require.NoError(t, runCheck(&cobra.Command{}, nil))

	projectPath = "testdata/absent.yaml"
	require.Error(t, runCheck(&cobra.Command{}, nil))
}

func TestRunEval(t *testing.T) {
	projectPath = "testdata/project.yaml"
	evalWorld = ""
	evalMode = "down"
	require.NoError(t, runEval(&cobra.Command{}, []string{"maybe-p", "◇p"}))

	evalMode = "sideways"
	require.ErrorContains(t, runEval(&cobra.Command{}, nil), "unknown interpretation")

	evalMode = "up"
	evalWorld = "w9"
	err := runEval(&cobra.Command{}, []string{"p"})
	var werr *interp.UnknownWorldError
	require.ErrorAs(t, err, &werr)
	require.Equal(t, "w9", werr.ID)
}

func TestRunValid(t *testing.T) {
	projectPath = "testdata/project.yaml"
	validMode = "down"
	require.NoError(t, runValid(&cobra.Command{}, nil))

	validMode = "up"
	require.NoError(t, runValid(&cobra.Command{}, []string{"p → p"}))

	validMode = "down"
	require.Error(t, runValid(&cobra.Command{}, []string{"p ∧ ∨"}))
}
