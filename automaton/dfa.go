// Package automaton builds a trie over grapheme clusters and minimizes it
// into a deterministic finite automaton using Hopcroft partition
// refinement, with an edge-widening rule that lets two occurrences of a
// value collapse into one quantified edge.
//
// States are plain integer indices and edges live in a single slice that
// names their endpoints by index rather than by pointer, so that
// minimization rebuilds the graph instead of mutating it in place.
package automaton

import "github.com/coregx/rexgen/grapheme"

// Edge is a directed, Grapheme-labeled transition between two states.
type Edge struct {
	From, To int
	Label    grapheme.Grapheme
}

// DFA is the arena-style automaton: states are plain integers 0..N-1, and
// edges are held in a single slice, each edge naming its endpoints by
// state index.
type DFA struct {
	numStates int
	initial   int
	finals    map[int]bool
	edges     []Edge
	alphabet  []grapheme.Grapheme
}

// New returns an automaton containing only its initial state.
func New() *DFA {
	return &DFA{numStates: 1, initial: 0, finals: map[int]bool{}}
}

// Build inserts every cluster into a fresh trie and, when minimize is set,
// reduces it to its minimal equivalent via Hopcroft refinement.
func Build(clusters []grapheme.Cluster, minimize bool) *DFA {
	d := New()
	for _, c := range clusters {
		d.Insert(c)
	}
	if minimize {
		d.Minimize()
	}
	return d
}

// StateCount returns the number of states in the automaton.
func (d *DFA) StateCount() int {
	return d.numStates
}

// Initial returns the initial state.
func (d *DFA) Initial() int {
	return d.initial
}

// IsFinal reports whether state is an accepting state.
func (d *DFA) IsFinal(state int) bool {
	return d.finals[state]
}

// OutgoingEdges returns the edges leaving state, in insertion order.
func (d *DFA) OutgoingEdges(state int) []Edge {
	var out []Edge
	for _, e := range d.edges {
		if e.From == state {
			out = append(out, e)
		}
	}
	return out
}

// StatesInDepthFirstOrder walks the automaton depth-first from the initial
// state and returns the visited states in that order. The Brzozowski
// solver (package solve) uses this ordering to index its elimination
// matrix.
func (d *DFA) StatesInDepthFirstOrder() []int {
	visited := make([]bool, d.numStates)
	var order []int
	var visit func(s int)
	visit = func(s int) {
		if visited[s] {
			return
		}
		visited[s] = true
		order = append(order, s)
		for _, e := range d.edges {
			if e.From == s {
				visit(e.To)
			}
		}
	}
	visit(d.initial)
	return order
}

// Insert walks the trie from the initial state consuming cluster's
// graphemes, creating new states and edges as needed, and marks the final
// state reached as accepting.
func (d *DFA) Insert(cluster grapheme.Cluster) {
	current := d.initial
	for _, g := range cluster.Graphemes {
		d.alphabet = addToAlphabet(d.alphabet, g)
		current = d.nextState(current, g)
	}
	d.finals[current] = true
}

// nextState finds or creates the state reached from current over label,
// applying the edge-widening rule: an edge sharing label's base token
// sequence whose Max is exactly label.Max-1 is widened in place to cover
// both occurrences; an edge whose Max already equals label.Max is reused.
func (d *DFA) nextState(current int, label grapheme.Grapheme) int {
	for i := range d.edges {
		e := &d.edges[i]
		if e.From != current || e.Label.Value() != label.Value() {
			continue
		}
		switch {
		case e.Label.Max == label.Max-1:
			min := e.Label.Min
			if label.Min < min {
				min = label.Min
			}
			max := e.Label.Max
			if label.Max > max {
				max = label.Max
			}
			e.Label = grapheme.New(label.Chars, min, max)
			return e.To
		case e.Label.Max == label.Max:
			return e.To
		}
	}

	next := d.numStates
	d.numStates++
	d.edges = append(d.edges, Edge{From: current, To: next, Label: label})
	return next
}

func addToAlphabet(alphabet []grapheme.Grapheme, g grapheme.Grapheme) []grapheme.Grapheme {
	for _, x := range alphabet {
		if x.Equal(g) {
			return alphabet
		}
	}
	return append(alphabet, g)
}
