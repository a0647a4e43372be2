package dot

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriteDot(t *testing.T) {
	a := &DotNode{ID: "a", Attrs: DotAttrs{"label": "a\nx ↦ 1", "peripheries": "2"}}
	b := &DotNode{ID: "b", Attrs: DotAttrs{"style": "dashed", "label": "b"}}
	c := &DotNode{ID: "c"}

	g := &DotGraph{
		Title: "g",
		Clusters: []*DotCluster{
			{ID: "0", Label: "base", Nodes: []*DotNode{a, b}},
		},
		Nodes: []*DotNode{c},
		Edges: []*DotEdge{
			{From: a, To: b},
			{From: b, To: c, Attrs: DotAttrs{"style": "dotted"}},
		},
	}

	var out bytes.Buffer
	if err := g.WriteDot(&out); err != nil {
		t.Fatalf("WriteDot: %v", err)
	}

	want := `digraph "g" {
	label="g";
	rankdir="LR";
	node [shape="ellipse" fontname="Verdana"];
	subgraph "cluster_0" {
		label="base";
		"a" [ label="a\nx ↦ 1"; peripheries="2"; ]
		"b" [ label="b"; style="dashed"; ]
	}
	"c" [  ]
	"a" -> "b"
	"b" -> "c" [ style="dotted"; ]
}
`
	if diff := cmp.Diff(want, out.String()); diff != "" {
		t.Errorf("dot rendering mismatch (-want +got):\n%s", diff)
	}
}

func TestDotAttrsDeterministic(t *testing.T) {
	attrs := DotAttrs{"z": "1", "a": "2", "m": "3"}
	want := `a="2"; m="3"; z="1";`
	for run := 0; run < 8; run++ {
		if got := attrs.String(); got != want {
			t.Fatalf("run %d: got %q, want %q", run, got, want)
		}
	}
}
