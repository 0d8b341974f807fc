// Package printer serializes an expression tree (package expr) into the
// final regex string: precedence-aware parenthesization, character-class
// range folding, repetition-quantifier rendering, the flag/anchor
// prologue, and verbose-mode formatting.
package printer

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/rexgen/expr"
	"github.com/coregx/rexgen/grapheme"
)

// Config carries every printing-affecting toggle from the build's own
// Config (package rexgen), kept separate so the printer does not import
// the root package.
type Config struct {
	CapturingGroups    bool
	CaseInsensitive    bool
	VerboseMode        bool
	DisableStartAnchor bool
	DisableEndAnchor   bool
	EscapeNonASCII     bool
	UseSurrogatePairs  bool
}

// Print renders root as a complete pattern: flag prologue, anchors (unless
// disabled), and the expression body, with the control-character
// substitution and then verbose-mode formatting applied last. In verbose
// mode the flag prologue ends in a line break, `#` and whitespace are
// escaped, and the rest of the pattern follows on one line, indented by
// two spaces only when the start anchor is disabled; groups and
// alternations are not broken onto separate lines.
func Print(root expr.Expression, cfg Config) string {
	body := printBody(root, cfg)

	flag := flagPrologue(cfg)
	caret := ""
	if !cfg.DisableStartAnchor {
		caret = "^"
	}
	dollar := ""
	if !cfg.DisableEndAnchor {
		dollar = "$"
	}

	var out string
	if _, ok := root.(*expr.Alternation); ok {
		out = flag + caret + group(body, cfg.CapturingGroups) + dollar
	} else {
		out = flag + caret + body + dollar
	}

	out = strings.ReplaceAll(out, "\v", `\v`)
	out = strings.ReplaceAll(out, "\f", `\f`)

	if cfg.VerboseMode {
		return indent(out, cfg)
	}
	return out
}

func flagPrologue(cfg Config) string {
	switch {
	case cfg.CaseInsensitive && cfg.VerboseMode:
		return "(?ix)\n"
	case cfg.CaseInsensitive:
		return "(?i)"
	case cfg.VerboseMode:
		return "(?x)\n"
	default:
		return ""
	}
}

// printBody dispatches on the expression's concrete type; it never
// applies the root-level anchors or flag prologue, only the expression's
// own rendering.
func printBody(e expr.Expression, cfg Config) string {
	switch v := e.(type) {
	case *expr.Literal:
		return printLiteral(v, cfg)
	case *expr.CharacterClass:
		return printCharacterClass(v)
	case *expr.Concatenation:
		return printConcatenation(e, v, cfg)
	case *expr.Alternation:
		return printAlternation(e, v, cfg)
	case *expr.Repetition:
		return printRepetition(e, v, cfg)
	default:
		return ""
	}
}

func printLiteral(l *expr.Literal, cfg Config) string {
	var b strings.Builder
	for _, g := range l.Cluster.Graphemes {
		b.WriteString(printGrapheme(g, cfg))
	}
	return b.String()
}

// printGrapheme renders one grapheme's body (escaped tokens, or the
// concatenation of its nested repetitions) followed by its own
// (min,max)-derived quantifier, wrapping the body in a group first when it
// is more than one printed character and a quantifier is about to be
// attached.
func printGrapheme(g grapheme.Grapheme, cfg Config) string {
	body := printGraphemeBody(g, cfg)

	isRange := g.Min < g.Max
	isRepeated := g.Min > 1
	isSingleChar := isSingleCharGrapheme(g, cfg)

	switch {
	case !isRange && isRepeated && isSingleChar:
		return body + "{" + strconv.FormatUint(uint64(g.Min), 10) + "}"
	case !isRange && isRepeated && !isSingleChar:
		return group(body, cfg.CapturingGroups) + "{" + strconv.FormatUint(uint64(g.Min), 10) + "}"
	case isRange && isSingleChar:
		return body + "{" + strconv.FormatUint(uint64(g.Min), 10) + "," + strconv.FormatUint(uint64(g.Max), 10) + "}"
	case isRange && !isSingleChar:
		return group(body, cfg.CapturingGroups) + "{" + strconv.FormatUint(uint64(g.Min), 10) + "," + strconv.FormatUint(uint64(g.Max), 10) + "}"
	default:
		return body
	}
}

func printGraphemeBody(g grapheme.Grapheme, cfg Config) string {
	if g.HasRepetitions() {
		var b strings.Builder
		for _, sub := range g.Repetitions {
			b.WriteString(printGrapheme(sub, cfg))
		}
		return b.String()
	}
	escaped := g
	escaped.Chars = append([]string(nil), g.Chars...)
	escaped.EscapeRegexpSymbols(cfg.EscapeNonASCII, cfg.UseSurrogatePairs)
	return escaped.Value()
}

// isSingleCharGrapheme mirrors the reference's is_single_char test: either
// the grapheme's un-escaped content is exactly one printed character, or
// it is a single already-escaped metacharacter such as `\d` (one token
// containing exactly one backslash).
func isSingleCharGrapheme(g grapheme.Grapheme, cfg Config) bool {
	if g.CharCount(cfg.EscapeNonASCII) == 1 {
		return true
	}
	return len(g.Chars) == 1 && strings.Count(g.Chars[0], `\`) == 1
}

func printCharacterClass(c *expr.CharacterClass) string {
	runes := make([]rune, 0, len(c.Runes))
	for r := range c.Runes {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })

	escaped := make([]string, len(runes))
	for i, r := range runes {
		escaped[i] = grapheme.EscapeClassRune(r)
	}

	var subsets [][]string
	var current []string
	for i := range runes {
		if len(current) == 0 {
			current = append(current, escaped[i])
			continue
		}
		if runes[i] == runes[i-1]+1 {
			current = append(current, escaped[i])
		} else {
			subsets = append(subsets, current)
			current = []string{escaped[i]}
		}
	}
	if len(current) > 0 {
		subsets = append(subsets, current)
	}

	var b strings.Builder
	b.WriteByte('[')
	for _, subset := range subsets {
		if len(subset) <= 2 {
			for _, s := range subset {
				b.WriteString(s)
			}
		} else {
			b.WriteString(subset[0])
			b.WriteByte('-')
			b.WriteString(subset[len(subset)-1])
		}
	}
	b.WriteByte(']')
	return b.String()
}

func printConcatenation(parent expr.Expression, c *expr.Concatenation, cfg Config) string {
	return printChild(parent, c.Left, cfg) + printChild(parent, c.Right, cfg)
}

func printAlternation(parent expr.Expression, a *expr.Alternation, cfg Config) string {
	parts := make([]string, len(a.Options))
	for i, opt := range a.Options {
		parts[i] = printChild(parent, opt, cfg)
	}
	return strings.Join(parts, "|")
}

func printRepetition(parent expr.Expression, r *expr.Repetition, cfg Config) string {
	return printChild(parent, r.Expr, cfg) + r.Quantifier.String()
}

// printChild renders a child of parent, wrapping it in a group when its
// precedence is lower than its parent's and it is not a single codepoint
// (a lower-precedence single codepoint, e.g. a bare character class used
// as an alternation option, never needs parentheses).
func printChild(parent, child expr.Expression, cfg Config) string {
	rendered := printBody(child, cfg)
	if child.Precedence() < parent.Precedence() && !child.IsSingleCodepoint(cfg.EscapeNonASCII) {
		return group(rendered, cfg.CapturingGroups)
	}
	return rendered
}

func group(body string, capturing bool) string {
	if capturing {
		return "(" + body + ")"
	}
	return "(?:" + body + ")"
}

// verboseWhitespace lists every Unicode whitespace codepoint the original
// escapes to \s inside verbose mode, beyond the plain ASCII space handled
// separately (it is escaped as `\ `, which still matches only a space).
// These codepoints come from the test cases themselves; the indentation
// indent adds afterwards is made of ASCII spaces and is not rewritten.
var verboseWhitespace = []rune{
	' ', ' ', ' ', ' ', ' ', ' ', ' ',
	' ', ' ', ' ', ' ', ' ', ' ', ' ',
	' ', ' ', ' ', '　', '',
}

func indent(regexp string, cfg Config) string {
	regexp = strings.ReplaceAll(regexp, "#", `\#`)
	for _, r := range verboseWhitespace {
		regexp = strings.ReplaceAll(regexp, string(r), `\s`)
	}
	regexp = strings.ReplaceAll(regexp, " ", `\ `)

	lines := strings.Split(regexp, "\n")
	var out []string
	nesting := 0

	for i, line := range lines {
		if i == 1 && cfg.DisableStartAnchor {
			nesting++
		}
		if line == "" {
			continue
		}
		if nesting > 0 && (line == "$" || strings.HasPrefix(line, ")")) {
			nesting--
		}
		out = append(out, strings.Repeat("  ", nesting)+line)
		if line == "^" || (i > 0 && strings.HasPrefix(line, "(")) {
			nesting++
		}
	}
	return strings.Join(out, "\n")
}
