// Package rxengine is rexgen's own regular-expression matcher: the
// validator that spec.md §4.8 step 5 recompiles every synthesized candidate
// against and replays against the original test cases before trusting it.
//
// rexgen's author also maintains a general-purpose, multi-strategy matching
// engine (coregx/coregex: NFA, lazy DFA, onepass DFA, literal prefilters,
// Aho-Corasick/Teddy dispatch, SIMD primitives) built to be fast over
// arbitrary patterns and arbitrary input sizes. rxengine is not that engine
// cut down — it only ever needs to answer one question, for one short test
// case at a time, against a pattern this same binary just generated: does
// the pattern match, and how many times. It keeps the same parsing front
// end (stdlib regexp/syntax, exactly as coregx/coregex itself parses with)
// and the same case-by-case dispatch over the parsed syntax tree, but walks
// that tree directly with a backtracking matcher instead of compiling it
// into a Thompson NFA graph with pluggable execution strategies — the state
// graph is what makes many-megabyte inputs and adversarial patterns fast, a
// concern this validator does not have.
//
// One strategy does carry over unchanged: a fully anchored alternation of
// plain literals is the shape coregx/coregex's own meta.chooseStrategy calls
// an "exact literal alternation", and past 32 branches that engine stops
// building a Thompson NFA for it and dispatches straight to an Aho-Corasick
// automaton instead (meta/strategy.go's UseAhoCorasick threshold). The same
// threshold is honored here: Compile builds a real coregx/ahocorasick
// automaton over a qualifying literal alternation and FindAllString answers
// straight from it instead of backtracking. validate.go never hands Compile
// such a pattern: it compiles only candidates printed with both anchors
// disabled, and it returns literalFallback's alternation without compiling
// it.
package rxengine

import (
	"fmt"
	"regexp/syntax"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/coregx/ahocorasick"
)

// literalAlternationThreshold mirrors coregx/coregex's own cutover point
// (meta/strategy.go: "Exact literal alternations with >32 patterns, beyond
// Teddy's limit") for switching a pure literal-alternation pattern from
// backtracking/NFA execution to an Aho-Corasick automaton.
const literalAlternationThreshold = 32

// Regex is a pattern compiled for matching against short strings.
type Regex struct {
	prog    *syntax.Regexp
	pattern string

	// ahoCorasick is non-nil only when prog is a fully start/end-anchored
	// alternation of more than literalAlternationThreshold plain literals.
	// Anchoring means the language is exactly the literal set, so a
	// full-haystack Aho-Corasick hit is both necessary and sufficient for
	// a match; FindAllString/MatchString use it in place of the
	// backtracking matcher when set.
	ahoCorasick *ahocorasick.Automaton
}

// Compile parses pattern and prepares it for matching. Syntax is the Perl
// subset stdlib regexp/syntax understands, which is what package printer
// emits outside verbose mode (the `(?x)` flag is rejected), plus one
// extension: a `\u{XXXX}` escape (the form the printer uses
// for non-ASCII codepoints and, with surrogate pairs enabled, for astral
// ones) is translated to the literal codepoint it names before parsing,
// since regexp/syntax itself only understands `\x{XXXX}`.
func Compile(pattern string) (*Regex, error) {
	translated, err := translateUnicodeEscapes(pattern)
	if err != nil {
		return nil, err
	}
	prog, err := syntax.Parse(translated, syntax.Perl)
	if err != nil {
		return nil, fmt.Errorf("rxengine: %w", err)
	}

	re := &Regex{prog: prog, pattern: pattern}
	if lits, ok := anchoredLiteralAlternation(prog); ok && len(lits) > literalAlternationThreshold {
		builder := ahocorasick.NewBuilder()
		for _, lit := range lits {
			builder.AddPattern(lit)
		}
		if auto, err := builder.Build(); err == nil {
			re.ahoCorasick = auto
		}
	}
	return re, nil
}

// anchoredLiteralAlternation reports whether prog is, after stripping a
// leading ^ and trailing $ (and an intervening non-capturing group), a flat
// alternation of plain, case-sensitive literals. Anything else (character
// classes, repetition, nested alternation, a single literal with no
// alternation at all) returns ok=false, which keeps the backtracking
// matcher as the path for every pattern this package doesn't specifically
// special-case.
func anchoredLiteralAlternation(prog *syntax.Regexp) (lits [][]byte, ok bool) {
	core := prog
	if core.Op == syntax.OpConcat {
		subs := core.Sub
		if len(subs) == 0 || !isBeginAnchor(subs[0]) {
			return nil, false
		}
		subs = subs[1:]
		if len(subs) == 0 || !isEndAnchor(subs[len(subs)-1]) {
			return nil, false
		}
		subs = subs[:len(subs)-1]
		if len(subs) != 1 {
			return nil, false
		}
		core = subs[0]
	} else {
		return nil, false
	}

	if core.Op == syntax.OpCapture {
		core = core.Sub[0]
	}
	if core.Op != syntax.OpAlternate {
		return nil, false
	}

	lits = make([][]byte, 0, len(core.Sub))
	for _, s := range core.Sub {
		if s.Op != syntax.OpLiteral || s.Flags&syntax.FoldCase != 0 {
			return nil, false
		}
		lits = append(lits, []byte(string(s.Rune)))
	}
	return lits, true
}

func isBeginAnchor(re *syntax.Regexp) bool {
	return re.Op == syntax.OpBeginLine || re.Op == syntax.OpBeginText
}

func isEndAnchor(re *syntax.Regexp) bool {
	return re.Op == syntax.OpEndLine || re.Op == syntax.OpEndText
}

// MustCompile is like Compile but panics if pattern fails to compile.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("rxengine: Compile(" + pattern + "): " + err.Error())
	}
	return re
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	return len(r.FindAllString(s, 1)) > 0
}

// FindAllString returns the text of every successive, non-overlapping
// leftmost match of the pattern in s. If n >= 0, at most n matches are
// returned; n < 0 returns all of them.
func (r *Regex) FindAllString(s string, n int) []string {
	if n == 0 {
		return nil
	}

	if r.ahoCorasick != nil {
		haystack := []byte(s)
		m := r.ahoCorasick.Find(haystack, 0)
		if m == nil || m.Start != 0 || m.End != len(haystack) {
			return nil
		}
		return []string{s}
	}

	runes := []rune(s)
	var out []string
	pos := 0
	for pos <= len(runes) {
		start, end, ok := findLeftmost(r.prog, runes, pos)
		if !ok {
			break
		}
		out = append(out, string(runes[start:end]))
		if end > start {
			pos = end
		} else {
			pos = end + 1
		}
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

// String returns the source pattern r was compiled from.
func (r *Regex) String() string {
	return r.pattern
}

// translateUnicodeEscapes rewrites every `\u{XXXX}` escape in pattern to
// its literal rune, combining an adjacent UTF-16 surrogate pair (as emitted
// by the printer's surrogate-pair mode) into the single astral codepoint it
// encodes.
func translateUnicodeEscapes(pattern string) (string, error) {
	runes := []rune(pattern)
	var b strings.Builder

	for i := 0; i < len(runes); {
		if !isUnicodeEscapeAt(runes, i) {
			b.WriteRune(runes[i])
			i++
			continue
		}

		hi, next, err := parseUnicodeEscape(runes, i)
		if err != nil {
			return "", err
		}

		if isHighSurrogate(hi) && isUnicodeEscapeAt(runes, next) {
			lo, afterLo, err := parseUnicodeEscape(runes, next)
			if err == nil && isLowSurrogate(lo) {
				b.WriteRune(utf16.DecodeRune(hi, lo))
				i = afterLo
				continue
			}
		}

		b.WriteRune(hi)
		i = next
	}
	return b.String(), nil
}

func isUnicodeEscapeAt(runes []rune, i int) bool {
	return i+2 < len(runes) && runes[i] == '\\' && runes[i+1] == 'u' && runes[i+2] == '{'
}

// parseUnicodeEscape parses the `\u{XXXX}` escape starting at i and returns
// the decoded rune and the index immediately past the closing brace.
func parseUnicodeEscape(runes []rune, i int) (rune, int, error) {
	j := i + 3
	digitsStart := j
	for j < len(runes) && runes[j] != '}' {
		j++
	}
	if j >= len(runes) {
		return 0, 0, fmt.Errorf("rxengine: unterminated \\u{ escape in pattern")
	}
	hex := string(runes[digitsStart:j])
	v, err := strconv.ParseInt(hex, 16, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("rxengine: invalid \\u{%s} escape: %w", hex, err)
	}
	return rune(v), j + 1, nil
}

func isHighSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDBFF }
func isLowSurrogate(r rune) bool  { return r >= 0xDC00 && r <= 0xDFFF }
