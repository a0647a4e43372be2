// Package lattice implements finite bounded lattices with derived join
// and meet, filters of designated elements, and many-lattices that
// combine several filtered lattices under the up/down interpretations.
package lattice

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cs-au-dk/mlml/utils/graph"
	i "github.com/cs-au-dk/mlml/utils/indenter"
	uf "github.com/spakin/disjoint"
)

// Decl declares a lattice. Order pairs are arbitrary ≤ facts between
// declared elements; the constructor closes them reflexively and
// transitively.
type Decl struct {
	Name     string
	Elements []string
	Order    [][2]string
	// Optional operator tables, keyed and valued by declared element
	// names. Negation is the order-reversing complement, residuum the
	// relative pseudo-complement.
	Negation map[string]string
	Residuum map[[2]string]string
	// DeriveHeyting fills the missing table entries with the derived
	// Heyting operators on the pairs where they exist, keeping any
	// user-supplied entries.
	DeriveHeyting bool
}

// Lattice is a finite bounded lattice over named elements. Immutable
// once built and safe to share between concurrent readers.
type Lattice struct {
	name  string
	elems []string
	index map[string]int

	order  [][]bool // reflexive-transitive closure of the declared pairs
	joins  [][]int
	meets  [][]int
	covers [][]int // upward cover relation
	height []int
	top    int
	bot    int

	// Operator tables, -1 where undefined.
	neg []int
	res [][]int
}

// New validates the declaration and derives the order closure, the
// join/meet tables, ⊤/⊥, element heights and the operator tables. No
// lattice is returned for a declaration that is not a lattice.
func New(d Decl) (*Lattice, error) {
	n := len(d.Elements)
	if n == 0 {
		return nil, &InvalidOrderError{Lattice: d.Name, Reason: NoElements}
	}

	l := &Lattice{
		name:  d.Name,
		elems: make([]string, n),
		index: make(map[string]int, n),
	}
	copy(l.elems, d.Elements)
	for idx, name := range l.elems {
		if name == "" {
			return nil, &InvalidOrderError{Lattice: d.Name, Reason: BlankElement}
		}
		if _, taken := l.index[name]; taken {
			return nil, &InvalidOrderError{Lattice: d.Name, Reason: DuplicateElement, A: name}
		}
		l.index[name] = idx
	}

	succs := make([][]int, n)
	for _, p := range d.Order {
		a, ok := l.index[p[0]]
		if !ok {
			return nil, &InvalidOrderError{Lattice: d.Name, Reason: UnknownElement, A: p[0]}
		}
		b, ok := l.index[p[1]]
		if !ok {
			return nil, &InvalidOrderError{Lattice: d.Name, Reason: UnknownElement, A: p[1]}
		}
		if a != b {
			succs[a] = append(succs[a], b)
		}
	}

	// Elements in different connected components of the order graph
	// can have no common bound, so the bound search below cannot
	// succeed. Catch the first stray element up front.
	if n >= 2 {
		sets := make([]*uf.Element, n)
		for idx := range sets {
			sets[idx] = uf.NewElement()
		}
		for a, bs := range succs {
			for _, b := range bs {
				uf.Union(sets[a], sets[b])
			}
		}
		for idx := 1; idx < n; idx++ {
			if sets[idx].Find() != sets[0].Find() {
				return nil, &IncompleteLatticeError{
					Lattice: d.Name,
					A:       l.elems[0],
					B:       l.elems[idx],
					Op:      "join",
				}
			}
		}
	}

	up := graph.OfHashable(func(node int) []int { return succs[node] })

	nodes := make([]int, n)
	for idx := range nodes {
		nodes[idx] = idx
	}
	for _, comp := range up.SCC(nodes).Components {
		if len(comp) >= 2 {
			return nil, &InvalidOrderError{
				Lattice: d.Name,
				Reason:  OrderCycle,
				A:       l.elems[comp[0]],
				B:       l.elems[comp[1]],
			}
		}
	}

	l.order = make([][]bool, n)
	for a := 0; a < n; a++ {
		row := make([]bool, n)
		up.BFS(a, func(b int) bool {
			row[b] = true
			return false
		})
		l.order[a] = row
	}

	l.joins = make([][]int, n)
	l.meets = make([][]int, n)
	for a := range l.joins {
		l.joins[a] = make([]int, n)
		l.meets[a] = make([]int, n)
	}
	for a := 0; a < n; a++ {
		for b := a; b < n; b++ {
			j, err := l.uniqueBound(a, b, "join")
			if err != nil {
				return nil, err
			}
			l.joins[a][b], l.joins[b][a] = j, j

			m, err := l.uniqueBound(a, b, "meet")
			if err != nil {
				return nil, err
			}
			l.meets[a][b], l.meets[b][a] = m, m
		}
	}

	top, bot := 0, 0
	for idx := 1; idx < n; idx++ {
		top = l.joins[top][idx]
		bot = l.meets[bot][idx]
	}
	l.top, l.bot = top, bot

	l.deriveCovers()
	l.deriveHeights()

	if err := l.fillTables(d); err != nil {
		return nil, err
	}
	if d.DeriveHeyting {
		l.deriveHeyting()
	}

	return l, nil
}

// uniqueBound finds the least upper (op "join") or greatest lower
// (op "meet") bound of a and b. The frontier holds the minimal upper
// (respectively maximal lower) bounds; in a finite order a frontier of
// exactly one element is the bound.
func (l *Lattice) uniqueBound(a, b int, op string) (int, error) {
	leq := func(x, y int) bool { return l.order[x][y] }
	if op == "meet" {
		leq = func(x, y int) bool { return l.order[y][x] }
	}

	var frontier []int
	for c := range l.elems {
		if !leq(a, c) || !leq(b, c) {
			continue
		}
		dominated := false
		for d := range l.elems {
			if d != c && leq(a, d) && leq(b, d) && leq(d, c) {
				dominated = true
				break
			}
		}
		if !dominated {
			frontier = append(frontier, c)
		}
	}

	if len(frontier) == 1 {
		return frontier[0], nil
	}
	names := make([]string, len(frontier))
	for idx, c := range frontier {
		names[idx] = l.elems[c]
	}
	return 0, &IncompleteLatticeError{
		Lattice:    l.name,
		A:          l.elems[a],
		B:          l.elems[b],
		Op:         op,
		Candidates: names,
	}
}

func (l *Lattice) deriveCovers() {
	n := len(l.elems)
	l.covers = make([][]int, n)
	for a := 0; a < n; a++ {
		for c := 0; c < n; c++ {
			if a == c || !l.order[a][c] {
				continue
			}
			direct := true
			for d := 0; d < n; d++ {
				if d != a && d != c && l.order[a][d] && l.order[d][c] {
					direct = false
					break
				}
			}
			if direct {
				l.covers[a] = append(l.covers[a], c)
			}
		}
	}
}

func (l *Lattice) deriveHeights() {
	n := len(l.elems)

	lower := make([][]int, n)
	for a, cs := range l.covers {
		for _, c := range cs {
			lower[c] = append(lower[c], a)
		}
	}

	// Elements strictly below a have strictly smaller down-sets, so
	// processing by down-set size is a topological order.
	below := make([]int, n)
	for a := 0; a < n; a++ {
		for c := 0; c < n; c++ {
			if l.order[c][a] {
				below[a]++
			}
		}
	}
	byBelow := make([]int, n)
	for idx := range byBelow {
		byBelow[idx] = idx
	}
	sort.Slice(byBelow, func(x, y int) bool { return below[byBelow[x]] < below[byBelow[y]] })

	l.height = make([]int, n)
	for _, a := range byBelow {
		h := 0
		for _, c := range lower[a] {
			if l.height[c]+1 > h {
				h = l.height[c] + 1
			}
		}
		l.height[a] = h
	}
}

func (l *Lattice) fillTables(d Decl) error {
	n := len(l.elems)
	l.neg = make([]int, n)
	for idx := range l.neg {
		l.neg[idx] = -1
	}
	l.res = make([][]int, n)
	for idx := range l.res {
		l.res[idx] = make([]int, n)
		for jdx := range l.res[idx] {
			l.res[idx][jdx] = -1
		}
	}

	for k, v := range d.Negation {
		a, ok := l.index[k]
		if !ok {
			return &OperatorTableError{Lattice: d.Name, Table: "negation", Key: k, Name: k}
		}
		c, ok := l.index[v]
		if !ok {
			return &OperatorTableError{Lattice: d.Name, Table: "negation", Key: k, Name: v}
		}
		l.neg[a] = c
	}
	for k, v := range d.Residuum {
		key := fmt.Sprintf("(%s, %s)", k[0], k[1])
		a, ok := l.index[k[0]]
		if !ok {
			return &OperatorTableError{Lattice: d.Name, Table: "residuum", Key: key, Name: k[0]}
		}
		b, ok := l.index[k[1]]
		if !ok {
			return &OperatorTableError{Lattice: d.Name, Table: "residuum", Key: key, Name: k[1]}
		}
		c, ok := l.index[v]
		if !ok {
			return &OperatorTableError{Lattice: d.Name, Table: "residuum", Key: key, Name: v}
		}
		l.res[a][b] = c
	}
	return nil
}

// deriveHeyting fills the missing residuum entries with the relative
// pseudo-complement (the greatest c with a ⊓ c ≤ b) on the pairs
// where that greatest element exists, and the missing negations with
// the residuum towards ⊥.
func (l *Lattice) deriveHeyting() {
	n := len(l.elems)
	for a := 0; a < n; a++ {
		for b := 0; b < n; b++ {
			if l.res[a][b] >= 0 {
				continue
			}
			r := l.bot
			for c := 0; c < n; c++ {
				if l.order[l.meets[a][c]][b] {
					r = l.joins[r][c]
				}
			}
			if l.order[l.meets[a][r]][b] {
				l.res[a][b] = r
			}
		}
	}
	for a := 0; a < n; a++ {
		if l.neg[a] < 0 {
			l.neg[a] = l.res[a][l.bot]
		}
	}
}

func (l *Lattice) Name() string {
	return l.name
}

func (l *Lattice) Size() int {
	return len(l.elems)
}

// Top retrieves the ⊤ element, the join of all elements.
func (l *Lattice) Top() Element {
	return Element{l, l.top}
}

// Bot retrieves the ⊥ element, the meet of all elements.
func (l *Lattice) Bot() Element {
	return Element{l, l.bot}
}

func (l *Lattice) has(name string) bool {
	_, ok := l.index[name]
	return ok
}

// Element looks up a declared element by name.
func (l *Lattice) Element(name string) (Element, bool) {
	idx, ok := l.index[name]
	if !ok {
		return Element{}, false
	}
	return Element{l, idx}, true
}

// El is the panicking form of Element, for lookups known to succeed.
func (l *Lattice) El(name string) Element {
	e, ok := l.Element(name)
	if !ok {
		panic(fmt.Sprintf("lattice %q has no element %q", l.name, name))
	}
	return e
}

// Elements returns all elements in declaration order.
func (l *Lattice) Elements() []Element {
	res := make([]Element, len(l.elems))
	for idx := range l.elems {
		res[idx] = Element{l, idx}
	}
	return res
}

// JoinAll folds join over the given elements. The empty join is ⊥.
func (l *Lattice) JoinAll(elems ...Element) Element {
	res := l.Bot()
	for _, e := range elems {
		checkLatticeMatch(l, e.lat, "⊔")
		res = res.join(e)
	}
	return res
}

// MeetAll folds meet over the given elements. The empty meet is ⊤.
func (l *Lattice) MeetAll(elems ...Element) Element {
	res := l.Top()
	for _, e := range elems {
		checkLatticeMatch(l, e.lat, "⊓")
		res = res.meet(e)
	}
	return res
}

// adopt rebinds an element of a structurally equal lattice to l.
func (l *Lattice) adopt(e Element) Element {
	return Element{l, e.index}
}

// Eq checks structural equality: the same elements in the same
// declaration order under the same order relation. Elements of
// structurally equal lattices are interchangeable since their indices
// align.
func (l1 *Lattice) Eq(l2 *Lattice) bool {
	// Referential equality first.
	if l1 == l2 {
		return true
	}
	if l1 == nil || l2 == nil || len(l1.elems) != len(l2.elems) {
		return false
	}
	for idx := range l1.elems {
		if l1.elems[idx] != l2.elems[idx] {
			return false
		}
	}
	for a := range l1.order {
		for b := range l1.order[a] {
			if l1.order[a][b] != l2.order[a][b] {
				return false
			}
		}
	}
	return true
}

func (l *Lattice) String() string {
	names := make([]string, len(l.elems))
	for idx, name := range l.elems {
		names[idx] = colorize.Element(name)
	}
	var pairs []string
	for a, cs := range l.covers {
		for _, c := range cs {
			pairs = append(pairs, fmt.Sprintf("%s ⊑ %s",
				colorize.Element(l.elems[a]), colorize.Element(l.elems[c])))
		}
	}
	return i.Indenter().
		Start(colorize.Lattice("Lattice") + " " + l.name + " {").
		NestStrings(
			colorize.Field("elements")+": "+strings.Join(names, ", "),
			colorize.Field("order")+": "+strings.Join(pairs, ", "),
		).
		End("}")
}
