package main

import (
	"fmt"

	"github.com/cs-au-dk/mlml/logic/model"
	"github.com/cs-au-dk/mlml/utils/dot"
)

// modelDot renders a model as a dot digraph: one cluster per lattice
// component, one node per world. The initial world is double-bordered
// and worlds unreachable from it are dashed.
func modelDot(m *model.Model) *dot.DotGraph {
	reachable := make(map[string]bool)
	for _, id := range m.Reachable() {
		reachable[id] = true
	}

	g := &dot.DotGraph{Title: m.Name()}
	nodes := make(map[string]*dot.DotNode)
	clusters := make(map[int]*dot.DotCluster)

	for _, w := range m.Worlds() {
		attrs := dot.DotAttrs{"label": worldLabel(w)}
		if w.ID() == m.Initial().ID() {
			attrs["peripheries"] = "2"
		}
		if !reachable[w.ID()] {
			attrs["style"] = "dashed"
		}

		n := &dot.DotNode{ID: w.ID(), Attrs: attrs}
		nodes[w.ID()] = n

		cl, found := clusters[w.Component()]
		if !found {
			comp, _ := m.ManyLattice().Component(w.Component())
			cl = &dot.DotCluster{
				ID:    fmt.Sprint(w.Component()),
				Label: comp.Lattice.Name(),
			}
			clusters[w.Component()] = cl
			g.Clusters = append(g.Clusters, cl)
		}
		cl.Nodes = append(cl.Nodes, n)
	}

	for _, w := range m.Worlds() {
		for _, to := range m.Successors(w.ID()) {
			g.Edges = append(g.Edges, &dot.DotEdge{From: nodes[w.ID()], To: nodes[to]})
		}
	}
	return g
}

// worldLabel stacks the world id over its assignment. Element names
// are used raw; dot labels cannot carry ANSI styling.
func worldLabel(w *model.World) string {
	label := w.ID()
	for _, v := range w.Vars() {
		e, _ := w.Assignment(v)
		label += "\n" + v + " ↦ " + e.Name()
	}
	return label
}
