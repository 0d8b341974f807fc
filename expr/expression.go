// Package expr implements the regex expression tree produced by solving a
// automaton and the algebraic simplification laws that keep it minimal:
// common prefix/suffix factoring, alternation flattening and sorting,
// character-class fusion, and redundant-parenthesis elision are all
// enforced by the smart constructors rather than left to a separate pass.
package expr

import (
	"sort"

	"github.com/coregx/rexgen/grapheme"
)

// Expression is the closed set of regex AST nodes: Literal, CharacterClass,
// Concatenation, Alternation, and Repetition. All five concrete types are
// pointers so that Union's substring-extraction step can mutate a cloned
// tree in place without reassigning the interface value holding it.
type Expression interface {
	// Precedence ranks how tightly an expression binds: Alternation and
	// CharacterClass bind loosest (1), Concatenation and Literal are in
	// the middle (2), and Repetition binds tightest (3). A printer wraps
	// a child in a non-capturing group when the child's precedence is
	// lower than its parent's.
	Precedence() int
	// Len reports how many graphemes an expression would consume if
	// fully expanded; Alternation defers to its first (longest) option.
	Len() int
	// IsSingleCodepoint reports whether the expression renders as one
	// character, making it eligible for character-class fusion.
	IsSingleCodepoint(escapeNonASCII bool) bool
}

// Quantifier distinguishes the two repeat operators a Repetition node can
// carry; {k} and {min,max} counted repetition lives on Grapheme, not here.
type Quantifier int

const (
	KleeneStar Quantifier = iota
	QuestionMark
)

func (q Quantifier) String() string {
	if q == QuestionMark {
		return "?"
	}
	return "*"
}

// Substring selects which end of a Literal or Concatenation a common
// factor is extracted from.
type Substring int

const (
	Prefix Substring = iota
	Suffix
)

// Literal is a run of consecutive graphemes matched verbatim (subject to
// each grapheme's own repetition quantifier).
type Literal struct {
	Cluster grapheme.Cluster
}

// CharacterClass is a fused set of single-codepoint alternatives rendered
// as a bracket expression.
type CharacterClass struct {
	Runes map[rune]bool
}

// Concatenation is the sequential composition of two expressions.
type Concatenation struct {
	Left, Right Expression
}

// Alternation is a choice between two or more expressions, kept flattened
// and sorted by descending length.
type Alternation struct {
	Options []Expression
}

// Repetition wraps an expression in a Kleene star or question mark.
type Repetition struct {
	Expr       Expression
	Quantifier Quantifier
}

func (l *Literal) Precedence() int         { return 2 }
func (c *CharacterClass) Precedence() int  { return 1 }
func (c *Concatenation) Precedence() int   { return 2 }
func (a *Alternation) Precedence() int     { return 1 }
func (r *Repetition) Precedence() int      { return 3 }

func (l *Literal) Len() int { return l.Cluster.Size() }
func (c *CharacterClass) Len() int { return 1 }
func (c *Concatenation) Len() int  { return c.Left.Len() + c.Right.Len() }
func (a *Alternation) Len() int    { return a.Options[0].Len() }
func (r *Repetition) Len() int     { return r.Expr.Len() }

func (l *Literal) IsSingleCodepoint(escapeNonASCII bool) bool {
	return l.Cluster.CharCount(escapeNonASCII) == 1 && l.Cluster.Graphemes[0].Max == 1
}
func (c *CharacterClass) IsSingleCodepoint(bool) bool  { return true }
func (c *Concatenation) IsSingleCodepoint(bool) bool   { return false }
func (a *Alternation) IsSingleCodepoint(bool) bool     { return false }
func (r *Repetition) IsSingleCodepoint(bool) bool      { return false }

// NewLiteral builds a Literal expression over cluster.
func NewLiteral(cluster grapheme.Cluster) Expression {
	return &Literal{Cluster: cluster}
}

// NewRepetition wraps expr in the given quantifier.
func NewRepetition(expr Expression, quantifier Quantifier) Expression {
	return &Repetition{Expr: expr, Quantifier: quantifier}
}

// NewConcatenation builds a plain two-child Concatenation, bypassing the
// literal-merging performed by Concatenate. Callers that already know
// neither side is a mergeable Literal (Union's prefix/suffix rewrap) use
// this directly; everyone else should call Concatenate.
func NewConcatenation(left, right Expression) Expression {
	return &Concatenation{Left: left, Right: right}
}

// newAlternation flattens nested alternations out of expr1 and expr2 and
// sorts the resulting options by descending length, so the longest,
// most specific branch is tried first by any engine reading the pattern
// left to right.
func newAlternation(expr1, expr2 Expression) Expression {
	var options []Expression
	flattenAlternations(&options, []Expression{expr1, expr2})
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Len() > options[j].Len()
	})
	return &Alternation{Options: options}
}

func flattenAlternations(out *[]Expression, current []Expression) {
	for _, option := range current {
		if alt, ok := option.(*Alternation); ok {
			flattenAlternations(out, alt.Options)
		} else {
			*out = append(*out, option)
		}
	}
}

func newCharacterClass(first, second map[rune]bool) Expression {
	union := make(map[rune]bool, len(first)+len(second))
	for r := range first {
		union[r] = true
	}
	for r := range second {
		union[r] = true
	}
	return &CharacterClass{Runes: union}
}

func isEmpty(e Expression) bool {
	l, ok := e.(*Literal)
	return ok && l.Cluster.IsEmpty()
}

func extractCharacterSet(e Expression) map[rune]bool {
	switch v := e.(type) {
	case *Literal:
		s := v.Cluster.Graphemes[0].Value()
		r := []rune(s)[0]
		return map[rune]bool{r: true}
	case *CharacterClass:
		return v.Runes
	default:
		return map[rune]bool{}
	}
}

// Equal performs a deep structural comparison of two expression trees.
func Equal(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch av := a.(type) {
	case *Literal:
		bv, ok := b.(*Literal)
		return ok && av.Cluster.Equal(bv.Cluster)
	case *CharacterClass:
		bv, ok := b.(*CharacterClass)
		if !ok || len(av.Runes) != len(bv.Runes) {
			return false
		}
		for r := range av.Runes {
			if !bv.Runes[r] {
				return false
			}
		}
		return true
	case *Concatenation:
		bv, ok := b.(*Concatenation)
		return ok && Equal(av.Left, bv.Left) && Equal(av.Right, bv.Right)
	case *Alternation:
		bv, ok := b.(*Alternation)
		if !ok || len(av.Options) != len(bv.Options) {
			return false
		}
		for i := range av.Options {
			if !Equal(av.Options[i], bv.Options[i]) {
				return false
			}
		}
		return true
	case *Repetition:
		bv, ok := b.(*Repetition)
		return ok && av.Quantifier == bv.Quantifier && Equal(av.Expr, bv.Expr)
	}
	return false
}

func clone(e Expression) Expression {
	switch v := e.(type) {
	case *Literal:
		return &Literal{Cluster: grapheme.Cluster{
			Graphemes: append([]grapheme.Grapheme(nil), v.Cluster.Graphemes...),
		}}
	case *CharacterClass:
		runes := make(map[rune]bool, len(v.Runes))
		for r := range v.Runes {
			runes[r] = true
		}
		return &CharacterClass{Runes: runes}
	case *Concatenation:
		return &Concatenation{Left: clone(v.Left), Right: clone(v.Right)}
	case *Alternation:
		options := make([]Expression, len(v.Options))
		for i, o := range v.Options {
			options[i] = clone(o)
		}
		return &Alternation{Options: options}
	case *Repetition:
		return &Repetition{Expr: clone(v.Expr), Quantifier: v.Quantifier}
	}
	return e
}
