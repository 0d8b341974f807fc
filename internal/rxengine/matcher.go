package rxengine

import (
	"regexp/syntax"
	"unicode"
)

// matcher walks a parsed syntax tree with a continuation-passing
// backtracking search, grounded on the same re.Op dispatch coregx/coregex's
// own NFA compiler (nfa/compile.go) uses to build its Thompson construction
// — here each case advances a rune position and calls a continuation
// instead of emitting states into a graph.
type matcher struct {
	runes []rune
}

// findLeftmost returns the first position at or after from where prog
// matches, and the end of that (greedy, leftmost-first) match.
func findLeftmost(prog *syntax.Regexp, runes []rune, from int) (start, end int, ok bool) {
	m := &matcher{runes: runes}
	for s := from; s <= len(runes); s++ {
		matchEnd := -1
		found := m.match(prog, s, func(end int) bool {
			matchEnd = end
			return true
		})
		if found {
			return s, matchEnd, true
		}
	}
	return 0, 0, false
}

// match attempts to match re starting at idx, calling k with every
// candidate end position until k reports success.
func (m *matcher) match(re *syntax.Regexp, idx int, k func(int) bool) bool {
	switch re.Op {
	case syntax.OpNoMatch:
		return false
	case syntax.OpEmptyMatch:
		return k(idx)
	case syntax.OpLiteral:
		return m.matchLiteral(re, idx, k)
	case syntax.OpCharClass:
		return m.matchCharClass(re, idx, k)
	case syntax.OpAnyCharNotNL:
		if idx < len(m.runes) && m.runes[idx] != '\n' {
			return k(idx + 1)
		}
		return false
	case syntax.OpAnyChar:
		if idx < len(m.runes) {
			return k(idx + 1)
		}
		return false
	case syntax.OpBeginLine, syntax.OpBeginText:
		if idx == 0 {
			return k(idx)
		}
		return false
	case syntax.OpEndLine, syntax.OpEndText:
		if idx == len(m.runes) {
			return k(idx)
		}
		return false
	case syntax.OpWordBoundary:
		if m.isWordBoundary(idx) {
			return k(idx)
		}
		return false
	case syntax.OpNoWordBoundary:
		if !m.isWordBoundary(idx) {
			return k(idx)
		}
		return false
	case syntax.OpCapture:
		return m.match(re.Sub[0], idx, k)
	case syntax.OpConcat:
		return m.matchConcat(re.Sub, idx, k)
	case syntax.OpAlternate:
		return m.matchAlternate(re.Sub, idx, k)
	case syntax.OpStar:
		return m.matchRepeat(re.Sub[0], 0, -1, re.Flags&syntax.NonGreedy != 0, idx, k)
	case syntax.OpPlus:
		return m.matchRepeat(re.Sub[0], 1, -1, re.Flags&syntax.NonGreedy != 0, idx, k)
	case syntax.OpQuest:
		return m.matchRepeat(re.Sub[0], 0, 1, re.Flags&syntax.NonGreedy != 0, idx, k)
	case syntax.OpRepeat:
		return m.matchRepeat(re.Sub[0], re.Min, re.Max, re.Flags&syntax.NonGreedy != 0, idx, k)
	default:
		return false
	}
}

func (m *matcher) matchLiteral(re *syntax.Regexp, idx int, k func(int) bool) bool {
	fold := re.Flags&syntax.FoldCase != 0
	pos := idx
	for _, r := range re.Rune {
		if pos >= len(m.runes) || !runeEqual(m.runes[pos], r, fold) {
			return false
		}
		pos++
	}
	return k(pos)
}

func runeEqual(a, b rune, fold bool) bool {
	if a == b {
		return true
	}
	if !fold {
		return false
	}
	return unicode.ToLower(a) == unicode.ToLower(b)
}

// matchCharClass consults re.Rune, a sorted list of [lo, hi] pairs — the
// same representation coregx/coregex's own compileCharClass reads, already
// case-folded by the parser when (?i) applies.
func (m *matcher) matchCharClass(re *syntax.Regexp, idx int, k func(int) bool) bool {
	if idx >= len(m.runes) {
		return false
	}
	r := m.runes[idx]
	for i := 0; i+1 < len(re.Rune); i += 2 {
		if r >= re.Rune[i] && r <= re.Rune[i+1] {
			return k(idx + 1)
		}
	}
	return false
}

func (m *matcher) matchConcat(subs []*syntax.Regexp, idx int, k func(int) bool) bool {
	if len(subs) == 0 {
		return k(idx)
	}
	return m.match(subs[0], idx, func(next int) bool {
		return m.matchConcat(subs[1:], next, k)
	})
}

// matchAlternate tries branches in source order, the same leftmost-first
// (Perl) semantics coregx/coregex's own Thompson construction gives
// alternation via its split-priority chain.
func (m *matcher) matchAlternate(subs []*syntax.Regexp, idx int, k func(int) bool) bool {
	for _, s := range subs {
		if m.match(s, idx, k) {
			return true
		}
	}
	return false
}

// matchRepeat matches sub between min and max times (max < 0 meaning
// unbounded), trying the greedy or lazy order first depending on
// nonGreedy, same as coregx/coregex's compileStar/compilePlus/compileQuest
// choosing between AddQuantifierSplit and AddSplit.
func (m *matcher) matchRepeat(sub *syntax.Regexp, min, max int, nonGreedy bool, idx int, k func(int) bool) bool {
	return m.repeatFrom(sub, 0, min, max, nonGreedy, idx, k)
}

func (m *matcher) repeatFrom(sub *syntax.Regexp, count, min, max int, nonGreedy bool, idx int, k func(int) bool) bool {
	canStop := count >= min
	canContinue := max < 0 || count < max

	tryContinue := func() bool {
		if !canContinue {
			return false
		}
		return m.match(sub, idx, func(next int) bool {
			if next == idx && count >= min {
				return false
			}
			return m.repeatFrom(sub, count+1, min, max, nonGreedy, next, k)
		})
	}
	tryStop := func() bool {
		return canStop && k(idx)
	}

	if nonGreedy {
		if tryStop() {
			return true
		}
		return tryContinue()
	}
	if tryContinue() {
		return true
	}
	return tryStop()
}

func (m *matcher) isWordBoundary(idx int) bool {
	before := idx > 0 && isWordRune(m.runes[idx-1])
	after := idx < len(m.runes) && isWordRune(m.runes[idx])
	return before != after
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
