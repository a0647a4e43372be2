package graph

/*
	This package exposes utilities for working with graph structures.

	Graph structures appear in several places in this project: the declared
	order pairs of a lattice form a digraph whose closure is the ≤ relation,
	and the accessibility relation of a model is a digraph over worlds.

	The goal of this package is to provide easy access to graph algorithms on
	data that has a graph representation. The caller only provides a function
	describing the edge relation; nodes may be any comparable type.
*/

type edgesOf[T comparable] func(node T) []T

type Graph[T comparable] struct {
	edgesOf     edgesOf[T]
	cachedEdges map[T][]T
}

func (G Graph[T]) Edges(node T) []T {
	if cached, found := G.cachedEdges[node]; found {
		return cached
	}

	es := G.edgesOf(node)
	G.cachedEdges[node] = es
	return es
}

func OfHashable[T comparable](edgesOf edgesOf[T]) Graph[T] {
	return Graph[T]{
		edgesOf,
		make(map[T][]T),
	}
}
