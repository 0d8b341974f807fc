// Package charclass rewrites individual codepoints to their shorthand
// regex character classes (\d \D \s \S \w \W) per an ordered precedence
// table, so that positive classes win over negative ones on overlapping
// domains.
package charclass

import (
	"strings"
	"unicode"

	"github.com/coregx/rexgen/grapheme"
)

// Flags selects which of the six built-in classes are active for a given
// build. Positive classes (digit/word/space) are checked before their
// negations, mirroring the precedence table.
type Flags struct {
	Digit    bool
	Word     bool
	Space    bool
	NonDigit bool
	NonWord  bool
	NonSpace bool
}

// Any reports whether at least one substitution flag is set.
func (f Flags) Any() bool {
	return f.Digit || f.Word || f.Space || f.NonDigit || f.NonWord || f.NonSpace
}

// isDigit reports whether r is a Unicode decimal digit (category Nd). Go's
// unicode.IsDigit table already is the precomputed interval list the
// substitution rule needs.
func isDigit(r rune) bool {
	return unicode.IsDigit(r)
}

// isWord reports whether r is a "word" character: alphabetic, a decimal
// digit, or the underscore.
func isWord(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

// isSpace reports whether r is Unicode whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r)
}

// Substitute rewrites each codepoint of token using the first matching rule
// in the ordered table: digit, word, space, non-digit, non-word,
// non-space. A codepoint matching none of the enabled rules passes through
// unchanged.
func Substitute(token string, flags Flags) string {
	if !flags.Any() {
		return token
	}
	var b strings.Builder
	for _, c := range token {
		switch {
		case flags.Digit && isDigit(c):
			b.WriteString(`\d`)
		case flags.Word && isWord(c):
			b.WriteString(`\w`)
		case flags.Space && isSpace(c):
			b.WriteString(`\s`)
		case flags.NonDigit && !isDigit(c):
			b.WriteString(`\D`)
		case flags.NonWord && !isWord(c):
			b.WriteString(`\W`)
		case flags.NonSpace && !isSpace(c):
			b.WriteString(`\S`)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ConvertCluster returns a new cluster in which every token of every
// grapheme has been rewritten by Substitute; c itself is left unchanged.
func ConvertCluster(c grapheme.Cluster, flags Flags) grapheme.Cluster {
	if !flags.Any() {
		return c
	}
	out := make([]grapheme.Grapheme, len(c.Graphemes))
	for i, g := range c.Graphemes {
		chars := make([]string, len(g.Chars))
		for j, token := range g.Chars {
			chars[j] = Substitute(token, flags)
		}
		out[i] = grapheme.Grapheme{Chars: chars, Min: g.Min, Max: g.Max, Repetitions: g.Repetitions}
	}
	return grapheme.Cluster{Graphemes: out}
}
