package graph

import (
	"sort"
	"testing"
)

var edges = map[int][]int{
	0:  {1, 8},
	1:  {4, 5, 2},
	2:  {6, 3, 9},
	3:  {2, 7},
	4:  {0, 5},
	5:  {6},
	6:  {5},
	7:  {3, 6},
	8:  {},
	9:  {10, 11},
	10: {12, 13},
	11: {12, 13},
	12: {},
	13: {},
}

var _sampleGraph = OfHashable(func(i int) []int {
	return edges[i]
})

func TestBFSReachable(t *testing.T) {
	reached := []int{}
	stopped := _sampleGraph.BFS(9, func(node int) bool {
		reached = append(reached, node)
		return false
	})

	if stopped {
		t.Errorf("BFS reported an early stop although the visitor never stopped it")
	}

	sort.Ints(reached)
	expected := []int{9, 10, 11, 12, 13}
	if len(reached) != len(expected) {
		t.Fatalf("BFS from 9 reached %v, expected %v", reached, expected)
	}
	for i, n := range reached {
		if n != expected[i] {
			t.Errorf("BFS from 9 reached %v, expected %v", reached, expected)
			break
		}
	}
}

func TestBFSEarlyStop(t *testing.T) {
	visits := 0
	stopped := _sampleGraph.BFS(0, func(node int) bool {
		visits++
		return node == 8
	})

	if !stopped {
		t.Errorf("BFS did not report stopping at node 8")
	}
	if visits > len(edges) {
		t.Errorf("BFS visited %d nodes after the stop condition was hit", visits)
	}
}
