// Package dot renders digraphs as graphviz dot source. Callers build a
// DotGraph by hand and write it out; layout and rasterization are left
// to the graphviz tools.
package dot

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/template"
)

const tmplCluster = `{{define "cluster" -}}
subgraph "cluster_{{.ID}}" {
		label={{printf "%q" .Label}};
{{- range .Nodes}}
		{{template "node" .}}
{{- end}}
	}
{{- end}}`

const tmplNode = `{{define "node" -}}
	{{printf "%q" .ID}} [ {{.Attrs}} ]
{{- end}}`

const tmplEdge = `{{define "edge" -}}
	{{printf "%q -> %q" .From .To}}{{with .Attrs.String}} [ {{.}} ]{{end}}
{{- end}}`

const tmplGraph = `digraph {{printf "%q" .Title}} {
	label={{printf "%q" .Title}};
	rankdir="LR";
	node [shape="ellipse" fontname="Verdana"];
{{- range .Clusters}}
	{{template "cluster" .}}
{{- end}}
{{- range .Nodes}}
	{{template "node" .}}
{{- end}}
{{- range .Edges}}
	{{template "edge" .}}
{{- end}}
}
`

// DotAttrs are dot attributes of a node or edge.
type DotAttrs map[string]string

// List renders the attributes as k="v"; entries, sorted by key so the
// output is deterministic.
func (p DotAttrs) List() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	l := make([]string, 0, len(keys))
	for _, k := range keys {
		l = append(l, fmt.Sprintf("%s=%q;", k, p[k]))
	}
	return l
}

func (p DotAttrs) String() string {
	return strings.Join(p.List(), " ")
}

// DotNode is a single dot node.
type DotNode struct {
	ID    string
	Attrs DotAttrs
}

func (n *DotNode) String() string {
	return n.ID
}

// DotEdge is a directed edge between two nodes.
type DotEdge struct {
	From  *DotNode
	To    *DotNode
	Attrs DotAttrs
}

// DotCluster groups nodes into a labelled subgraph.
type DotCluster struct {
	ID    string
	Label string
	Nodes []*DotNode
}

// DotGraph is a digraph with optional clusters. Nodes outside any
// cluster go in Nodes; edges may cross cluster boundaries.
type DotGraph struct {
	Title    string
	Clusters []*DotCluster
	Nodes    []*DotNode
	Edges    []*DotEdge
}

// WriteDot writes the graph as dot source.
func (g *DotGraph) WriteDot(w io.Writer) error {
	t := template.New("dot")
	for _, s := range []string{tmplCluster, tmplNode, tmplEdge, tmplGraph} {
		if _, err := t.Parse(s); err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, g); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
