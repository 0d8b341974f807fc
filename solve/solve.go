// Package solve turns a deterministic automaton into a single regular
// expression tree by Brzozowski's algebraic method: the automaton is read
// as a system of linear equations over the regex semiring (union as
// addition, concatenation as multiplication, Kleene star as the
// geometric-series inverse), and that system is solved by eliminating one
// state at a time, starting from the state furthest from the start.
package solve

import (
	"github.com/coregx/rexgen/automaton"
	"github.com/coregx/rexgen/expr"
	"github.com/coregx/rexgen/grapheme"
)

// FromDFA solves d and returns the expression describing exactly the
// language d accepts. escapeNonASCII must match the build's own
// non-ASCII escaping setting, since Union's character-class fusion
// consults it when judging whether two branches are single codepoints.
func FromDFA(d *automaton.DFA, escapeNonASCII bool) expr.Expression {
	states := d.StatesInDepthFirstOrder()
	n := len(states)

	index := make(map[int]int, n)
	for i, s := range states {
		index[s] = i
	}

	a := make([][]expr.Expression, n)
	for i := range a {
		a[i] = make([]expr.Expression, n)
	}
	b := make([]expr.Expression, n)

	for i, state := range states {
		if d.IsFinal(state) {
			b[i] = expr.NewLiteral(grapheme.Cluster{})
		}
		for _, e := range d.OutgoingEdges(state) {
			literal := expr.NewLiteral(grapheme.Cluster{Graphemes: []grapheme.Grapheme{e.Label}})
			j := index[e.To]
			if a[i][j] != nil {
				a[i][j] = expr.Union(a[i][j], literal, escapeNonASCII)
			} else {
				a[i][j] = literal
			}
		}
	}

	for k := n - 1; k >= 0; k-- {
		if a[k][k] != nil {
			loop := expr.NewRepetition(a[k][k], expr.KleeneStar)
			b[k] = expr.Concatenate(loop, b[k])
			for j := 0; j < k; j++ {
				a[k][j] = expr.Concatenate(loop, a[k][j])
			}
		}

		for i := 0; i < k; i++ {
			if a[i][k] == nil {
				continue
			}
			b[i] = expr.Union(b[i], expr.Concatenate(a[i][k], b[k]), escapeNonASCII)
			for j := 0; j < k; j++ {
				a[i][j] = expr.Union(a[i][j], expr.Concatenate(a[i][k], a[k][j]), escapeNonASCII)
			}
		}
	}

	if len(b) > 0 && b[0] != nil {
		return b[0]
	}
	return expr.NewLiteral(grapheme.Cluster{})
}
