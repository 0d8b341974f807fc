package expr

import "github.com/coregx/rexgen/grapheme"

// Concatenate composes a and b, absorbing an empty literal side and
// merging adjacent literals (including one nested one level inside an
// existing Concatenation) into a single Literal instead of stacking
// another Concatenation node. A nil argument (the "no expression yet"
// state used while eliminating automaton states) propagates as nil.
func Concatenate(a, b Expression) Expression {
	if a == nil || b == nil {
		return nil
	}
	if isEmpty(a) {
		return b
	}
	if isEmpty(b) {
		return a
	}

	if la, ok := a.(*Literal); ok {
		if lb, ok := b.(*Literal); ok {
			return NewLiteral(grapheme.Merge(la.Cluster, lb.Cluster))
		}
		if cb, ok := b.(*Concatenation); ok {
			if lf, ok := cb.Left.(*Literal); ok {
				merged := NewLiteral(grapheme.Merge(la.Cluster, lf.Cluster))
				return NewConcatenation(merged, cb.Right)
			}
		}
	}

	if lb, ok := b.(*Literal); ok {
		if ca, ok := a.(*Concatenation); ok {
			if rt, ok := ca.Right.(*Literal); ok {
				merged := NewLiteral(grapheme.Merge(rt.Cluster, lb.Cluster))
				return NewConcatenation(ca.Left, merged)
			}
		}
	}

	return NewConcatenation(a, b)
}

// Union merges a and b into the smallest expression that matches
// everything either one did: it factors out a common prefix and suffix,
// collapses an empty side into a question-mark repetition, absorbs an
// existing question-mark repetition on either side instead of nesting a
// new alternation inside it, fuses two single codepoints into a
// character class, and otherwise falls back to a sorted alternation.
// escapeNonASCII must match the build's own non-ASCII escaping setting,
// since that setting changes what counts as a single codepoint.
func Union(a, b Expression, escapeNonASCII bool) Expression {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if Equal(a, b) {
		return a
	}

	expr1 := clone(a)
	expr2 := clone(b)

	commonPrefix := removeCommonSubstring(expr1, expr2, Prefix)
	commonSuffix := removeCommonSubstring(expr1, expr2, Suffix)

	var result Expression
	switch {
	case isEmpty(expr1):
		result = NewRepetition(expr2, QuestionMark)
	case isEmpty(expr2):
		result = NewRepetition(expr1, QuestionMark)
	}

	if result == nil {
		if r, ok := expr1.(*Repetition); ok && r.Quantifier == QuestionMark {
			result = NewRepetition(newAlternation(r.Expr, expr2), QuestionMark)
		}
	}
	if result == nil {
		if r, ok := expr2.(*Repetition); ok && r.Quantifier == QuestionMark {
			result = NewRepetition(newAlternation(expr1, r.Expr), QuestionMark)
		}
	}
	if result == nil && expr1.IsSingleCodepoint(escapeNonASCII) && expr2.IsSingleCodepoint(escapeNonASCII) {
		result = newCharacterClass(extractCharacterSet(expr1), extractCharacterSet(expr2))
	}
	if result == nil {
		result = newAlternation(expr1, expr2)
	}

	if commonPrefix != nil {
		result = NewConcatenation(NewLiteral(grapheme.Cluster{Graphemes: commonPrefix}), result)
	}
	if commonSuffix != nil {
		result = NewConcatenation(result, NewLiteral(grapheme.Cluster{Graphemes: commonSuffix}))
	}
	return result
}

// removeSubstring trims length graphemes from e's matching end: the
// front of a Literal for Substring::Prefix, the back for Suffix. On a
// Concatenation it recurses into the child adjoining that end, but only
// when that child is itself a Literal (matching value's one-level-deep
// view of a Concatenation's literal-accessible substring).
func removeSubstring(e Expression, sub Substring, length int) {
	switch v := e.(type) {
	case *Concatenation:
		if sub == Prefix {
			if _, ok := v.Left.(*Literal); ok {
				removeSubstring(v.Left, sub, length)
			}
		} else {
			if _, ok := v.Right.(*Literal); ok {
				removeSubstring(v.Right, sub, length)
			}
		}
	case *Literal:
		gs := v.Cluster.Graphemes
		if sub == Prefix {
			v.Cluster.Graphemes = append([]grapheme.Grapheme(nil), gs[length:]...)
		} else {
			v.Cluster.Graphemes = append([]grapheme.Grapheme(nil), gs[:len(gs)-length]...)
		}
	}
}

// value returns the graphemes a Literal would contribute to a common
// prefix/suffix search: for a Literal, its own graphemes; for a
// Concatenation, those of the immediate child adjoining the requested
// end, but only if that child is itself a Literal; anything else yields
// no value.
func value(e Expression, sub Substring) []grapheme.Grapheme {
	switch v := e.(type) {
	case *Concatenation:
		if sub == Prefix {
			return literalValue(v.Left)
		}
		return literalValue(v.Right)
	case *Literal:
		return v.Cluster.Graphemes
	default:
		return nil
	}
}

func literalValue(e Expression) []grapheme.Grapheme {
	if l, ok := e.(*Literal); ok {
		return l.Cluster.Graphemes
	}
	return nil
}

func removeCommonSubstring(a, b Expression, sub Substring) []grapheme.Grapheme {
	common := findCommonSubstring(a, b, sub)
	if common != nil {
		removeSubstring(a, sub, len(common))
		removeSubstring(b, sub, len(common))
	}
	return common
}

func findCommonSubstring(a, b Expression, sub Substring) []grapheme.Grapheme {
	ga := value(a, sub)
	gb := value(b, sub)
	if sub == Suffix {
		ga = reverseGraphemes(ga)
		gb = reverseGraphemes(gb)
	}

	n := len(ga)
	if len(gb) < n {
		n = len(gb)
	}
	var common []grapheme.Grapheme
	for i := 0; i < n; i++ {
		if !ga[i].Equal(gb[i]) {
			break
		}
		common = append(common, ga[i])
	}

	if sub == Suffix {
		common = reverseGraphemes(common)
	}
	if len(common) == 0 {
		return nil
	}
	return common
}

func reverseGraphemes(gs []grapheme.Grapheme) []grapheme.Grapheme {
	out := make([]grapheme.Grapheme, len(gs))
	for i, g := range gs {
		out[len(gs)-1-i] = g
	}
	return out
}
