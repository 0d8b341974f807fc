// Package grapheme implements the Unicode segmentation and escaping rules
// that turn a raw input string into the atomic symbols the rest of the
// synthesis pipeline operates on.
//
// A Grapheme is the user-visible character: an ordered sequence of codepoint
// tokens, a repetition range, and (once the repetition detector has run) an
// optional nested list of the graphemes it summarizes. A Cluster is the
// ordered sequence of Graphemes produced by segmenting one input string.
package grapheme

import (
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Grapheme is a single user-visible character together with the repetition
// range it has been annotated with. Min and Max both default to 1 for a
// plain, unrepeated grapheme.
//
// Two Graphemes are equal iff their token sequences and repetition ranges
// are equal; the nested Repetitions list does not participate in equality,
// since it is derived data carried only for rendering.
type Grapheme struct {
	Chars       []string
	Min, Max    uint32
	Repetitions []Grapheme
}

// FromString creates an unrepeated Grapheme wrapping a single token.
func FromString(s string) Grapheme {
	return Grapheme{Chars: []string{s}, Min: 1, Max: 1}
}

// New creates a Grapheme carrying an explicit repetition range, used by the
// repetition detector (package repetition) and the DFA builder's edge
// widening (package automaton) when two occurrences of a symbol collapse
// into one quantified edge.
func New(chars []string, min, max uint32) Grapheme {
	return Grapheme{Chars: append([]string(nil), chars...), Min: min, Max: max}
}

// Value returns the grapheme's token sequence joined into one string.
func (g Grapheme) Value() string {
	return strings.Join(g.Chars, "")
}

// Equal reports whether g and other have identical token sequences and
// repetition ranges.
func (g Grapheme) Equal(other Grapheme) bool {
	if g.Min != other.Min || g.Max != other.Max {
		return false
	}
	if len(g.Chars) != len(other.Chars) {
		return false
	}
	for i := range g.Chars {
		if g.Chars[i] != other.Chars[i] {
			return false
		}
	}
	return true
}

// HasRepetitions reports whether this grapheme carries a nested list of
// sub-graphemes (i.e. it represents a repeated substring grouped by the
// repetition detector).
func (g Grapheme) HasRepetitions() bool {
	return len(g.Repetitions) > 0
}

// CharCount returns the number of printed characters this grapheme
// contributes, counting an escaped non-ASCII codepoint by its escaped
// width when escapeNonASCII is set.
func (g Grapheme) CharCount(escapeNonASCII bool) int {
	if !escapeNonASCII {
		n := 0
		for _, c := range g.Chars {
			n += utf8.RuneCountInString(c)
		}
		return n
	}
	n := 0
	for _, c := range g.Chars {
		for _, r := range c {
			n += utf8.RuneCountInString(escapeRune(r, false))
		}
	}
	return n
}

// charsToEscape is the set of metacharacters that must always be
// backslash-escaped in a literal context, per the printer's escape policy.
const charsToEscape = `()[]{}+*-.?|^$`

// EscapeRegexpSymbols rewrites g's tokens in place: metacharacters are
// backslash-escaped, \n \r \t are mapped to their escape sequences, a lone
// backslash is doubled, and, when escapeNonASCII is set, every non-ASCII
// codepoint is replaced by its \u{HHHH} escape (optionally split into a
// UTF-16 surrogate pair when useSurrogatePairs is set).
func (g *Grapheme) EscapeRegexpSymbols(escapeNonASCII, useSurrogatePairs bool) {
	for i, c := range g.Chars {
		var b strings.Builder
		for _, r := range c {
			if strings.ContainsRune(charsToEscape, r) {
				b.WriteByte('\\')
				b.WriteRune(r)
				continue
			}
			switch r {
			case '\n':
				b.WriteString(`\n`)
			case '\r':
				b.WriteString(`\r`)
			case '\t':
				b.WriteString(`\t`)
			default:
				b.WriteRune(r)
			}
		}
		c = b.String()
		if c == `\` {
			c = `\\`
		}
		g.Chars[i] = c
	}

	if escapeNonASCII {
		g.escapeNonASCIIChars(useSurrogatePairs)
	}
}

func (g *Grapheme) escapeNonASCIIChars(useSurrogatePairs bool) {
	for i, c := range g.Chars {
		var b strings.Builder
		for _, r := range c {
			b.WriteString(escapeRune(r, useSurrogatePairs))
		}
		g.Chars[i] = b.String()
	}
}

func escapeRune(r rune, useSurrogatePairs bool) string {
	if r < utf8.RuneSelf {
		return string(r)
	}
	if useSurrogatePairs && r >= 0x10000 && r <= 0x10FFFD {
		return surrogatePair(r)
	}
	return unicodeEscape(r)
}

func unicodeEscape(r rune) string {
	return "\\u{" + toHex(uint32(r)) + "}"
}

func surrogatePair(r rune) string {
	hi, lo := utf16.EncodeRune(r)
	return "\\u{" + toHex(uint32(hi)) + "}\\u{" + toHex(uint32(lo)) + "}"
}

func toHex(v uint32) string {
	const digits = "0123456789abcdef"
	if v == 0 {
		return "0"
	}
	var buf [8]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v&0xf]
		v >>= 4
	}
	return string(buf[i:])
}

// EscapeClassRune applies the narrower escape policy used inside a
// character class: only `[ ] \ - ^` plus \n \r \t are escaped.
func EscapeClassRune(r rune) string {
	switch r {
	case '[', ']', '\\', '-', '^':
		return "\\" + string(r)
	case '\n':
		return `\n`
	case '\r':
		return `\r`
	case '\t':
		return `\t`
	default:
		return string(r)
	}
}

// isSplitCandidate reports whether a uax29 grapheme cluster token should be
// broken apart into one Grapheme per codepoint: either it is an escape-like
// two-codepoint sequence containing a backslash, or it contains a combining
// mark or a codepoint from one of the assigned Other categories (see
// isOtherCategory; unassigned codepoints are not detected). Splitting these
// keeps pathological combinations (e.g. a literal backslash merged with the
// following letter, or a base character merged with a stray combining mark)
// from being treated as one atomic symbol.
func isSplitCandidate(token string) bool {
	runeCount := utf8.RuneCountInString(token)
	if runeCount == 2 && strings.ContainsRune(token, '\\') {
		return true
	}
	for _, r := range token {
		if unicode.In(r, unicode.Mark) || isOtherCategory(r) {
			return true
		}
	}
	return false
}

// isOtherCategory reports whether r belongs to one of the Unicode "Other"
// general categories. Go's unicode package has no single combined table
// for this the way unic_ucd_category's GeneralCategory::is_other() does
// (it also has no queryable Cn/unassigned table at all, since its tables
// only cover assigned codepoints), so the union of the assigned Other
// categories is spelled out explicitly.
func isOtherCategory(r rune) bool {
	return unicode.In(r, unicode.Cc, unicode.Cf, unicode.Co, unicode.Cs)
}
