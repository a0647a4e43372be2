package graph

import (
	"sort"
	"testing"
)

func TestSCCDecomposition(t *testing.T) {
	scc := _sampleGraph.SCC([]int{0})

	grouped := [][]int{{0, 1, 4}, {2, 3, 7}, {5, 6}}
	for _, group := range grouped {
		for _, n := range group[1:] {
			if scc.ComponentOf(group[0]) != scc.ComponentOf(n) {
				t.Errorf("%d and %d belong to the same cycle but different components", group[0], n)
			}
		}
	}

	separate := []int{0, 2, 5, 8, 9, 10, 11, 12, 13}
	for i, a := range separate {
		for _, b := range separate[i+1:] {
			if scc.ComponentOf(a) == scc.ComponentOf(b) {
				t.Errorf("%d and %d are not mutually reachable but share component %d", a, b, scc.ComponentOf(a))
			}
		}
	}

	// Components are indexed in reverse topological order: edges only go
	// from higher indices to lower ones.
	for node, succs := range edges {
		for _, succ := range succs {
			if scc.ComponentOf(succ) > scc.ComponentOf(node) {
				t.Errorf("edge %d -> %d goes from component %d to later component %d",
					node, succ, scc.ComponentOf(node), scc.ComponentOf(succ))
			}
		}
	}
}

func TestSCCToGraph(t *testing.T) {
	scc := _sampleGraph.SCC([]int{0})
	dag := scc.ToGraph()

	// The component of the {2, 3, 7} cycle has exactly two successor
	// components: the {5, 6} cycle and the singleton {9}.
	from := scc.ComponentOf(2)
	succs := dag.Edges(from)
	sort.Ints(succs)

	expected := []int{scc.ComponentOf(5), scc.ComponentOf(9)}
	sort.Ints(expected)

	if len(succs) != len(expected) {
		t.Fatalf("component %d has successors %v, expected %v", from, succs, expected)
	}
	for i := range succs {
		if succs[i] != expected[i] {
			t.Errorf("component %d has successors %v, expected %v", from, succs, expected)
			break
		}
	}

	// The {5, 6} cycle is a sink.
	if es := dag.Edges(scc.ComponentOf(5)); len(es) != 0 {
		t.Errorf("sink component %d has successors %v", scc.ComponentOf(5), es)
	}
}
