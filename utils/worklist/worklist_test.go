package worklist

import "testing"

func TestWorklistFIFO(t *testing.T) {
	var visited []int
	Start(0, func(next int, add func(int)) {
		visited = append(visited, next)
		if next < 3 {
			add(next + 1)
			add(next + 10)
		}
	})

	expected := []int{0, 1, 10, 2, 11, 3, 12}
	if len(visited) != len(expected) {
		t.Fatalf("visited %v, expected %v", visited, expected)
	}
	for i, v := range visited {
		if v != expected[i] {
			t.Errorf("visited[%d] = %d, expected %d", i, v, expected[i])
		}
	}
}
