package main

import (
	"regexp"
	"strings"

	"github.com/fatih/color"
)

// colorize wraps tokens of an already-printed pattern with terminal
// colors, grounded on the color scheme of the reference implementation's
// own colorizer: anchors and the quantifier/repetition markers stand out
// in yellow/purple/blue, grouping punctuation in green/cyan, and
// alternation's pipe in red. It is purely cosmetic and, per spec.md §1,
// lives outside the core synthesis pipeline — the string colorize
// returns is for terminal display only and is no longer a valid pattern
// for any regex engine to compile.
func colorize(pattern string) string {
	var b strings.Builder
	runes := []rune(pattern)

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '^' || r == '$':
			b.WriteString(color.New(color.FgYellow, color.Bold).Sprint(string(r)))
		case r == '|':
			b.WriteString(color.New(color.FgRed, color.Bold).Sprint(string(r)))
		case r == '(' || r == ')':
			b.WriteString(color.New(color.FgGreen, color.Bold).Sprint(string(r)))
		case r == '[' || r == ']' || r == '-':
			b.WriteString(color.New(color.FgCyan, color.Bold).Sprint(string(r)))
		case r == '*' || r == '?':
			b.WriteString(color.New(color.FgMagenta, color.Bold).Sprint(string(r)))
		case r == '{':
			j := i + 1
			for j < len(runes) && runes[j] != '}' {
				j++
			}
			if j < len(runes) {
				b.WriteString(color.New(color.BgHiBlue, color.FgWhite).Sprint(string(runes[i : j+1])))
				i = j
				continue
			}
			b.WriteRune(r)
		default:
			b.WriteRune(r)
		}
	}

	return classHighlighter.ReplaceAllStringFunc(b.String(), func(m string) string {
		return color.New(color.BgHiYellow, color.FgBlack).Sprint(m)
	})
}

// classHighlighter matches the six built-in shorthand classes so they can
// be re-highlighted after the main character-by-character pass, mirroring
// the reference's separate CharClass coloring rule.
var classHighlighter = regexp.MustCompile(`\\[dDsSwW]`)
