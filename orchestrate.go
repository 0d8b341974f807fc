package rexgen

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/coregx/rexgen/automaton"
	"github.com/coregx/rexgen/charclass"
	"github.com/coregx/rexgen/expr"
	"github.com/coregx/rexgen/grapheme"
	"github.com/coregx/rexgen/printer"
	"github.com/coregx/rexgen/repetition"
	"github.com/coregx/rexgen/solve"
)

// orchestrate runs the full pipeline of spec.md §4.8 over cases and
// prints the result: case-fold (if enabled), sort/dedupe, segment,
// optionally substitute classes and detect repetitions, build and
// minimize the DFA, solve it into an expression tree, and print it —
// repairing the candidate via validate when both anchors are disabled.
func orchestrate(cases []string, cfg Config) string {
	cases = prepareTestCases(cases, cfg)
	clusters := graphemeClusters(cases, cfg)

	minimize := true
	tree := buildExpression(clusters, cfg, minimize)

	if cfg.startAnchorDisabled() && cfg.endAnchorDisabled() {
		tree = validateAndRepair(tree, clusters, cases, cfg)
	}

	return printer.Print(tree, printConfig(cfg))
}

// prepareTestCases applies the case-insensitive folding guard and then
// sorts/dedupes the result, finally stable-sorting by length ascending
// with ties broken lexically.
func prepareTestCases(cases []string, cfg Config) []string {
	out := append([]string(nil), cases...)

	if cfg.CaseInsensitive {
		for i, s := range out {
			lower := strings.ToLower(s)
			if utf8.RuneCountInString(lower) == utf8.RuneCountInString(s) {
				out[i] = lower
			}
		}
	}

	sort.Strings(out)
	out = dedupe(out)

	sort.SliceStable(out, func(i, j int) bool {
		li, lj := len(out[i]), len(out[j])
		if li != lj {
			return li < lj
		}
		return out[i] < out[j]
	})
	return out
}

func dedupe(sorted []string) []string {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}

// graphemeClusters segments every test case and applies class
// substitution, then repetition detection, in that order, matching
// spec.md's pipeline diagram.
func graphemeClusters(cases []string, cfg Config) []grapheme.Cluster {
	clusters := make([]grapheme.Cluster, len(cases))
	for i, s := range cases {
		clusters[i] = grapheme.FromString(s)
	}

	if cfg.classFlags() {
		flags := charclass.Flags{
			Digit:    cfg.ConvertDigits,
			Word:     cfg.ConvertWords,
			Space:    cfg.ConvertWhitespace,
			NonDigit: cfg.ConvertNonDigits,
			NonWord:  cfg.ConvertNonWords,
			NonSpace: cfg.ConvertNonWhitespace,
		}
		for i := range clusters {
			clusters[i] = charclass.ConvertCluster(clusters[i], flags)
		}
	}

	if cfg.ConvertRepetitions {
		repCfg := repetition.Config{
			MinRepetitions:     cfg.MinRepetitions,
			MinSubstringLength: cfg.MinSubstringLength,
		}
		for i, c := range clusters {
			if rewritten := repetition.Convert(c.Graphemes, repCfg); rewritten != nil {
				clusters[i] = grapheme.FromGraphemes(rewritten)
			}
		}
	}

	return clusters
}

// buildExpression builds a DFA over clusters (minimized when minimize is
// set) and solves it into an expression tree.
func buildExpression(clusters []grapheme.Cluster, cfg Config, minimize bool) expr.Expression {
	d := automaton.Build(clusters, minimize)
	return solve.FromDFA(d, cfg.EscapeNonASCII)
}

func printConfig(cfg Config) printer.Config {
	return printer.Config{
		CapturingGroups:    cfg.CapturingGroups,
		CaseInsensitive:    cfg.CaseInsensitive,
		VerboseMode:        cfg.VerboseMode,
		DisableStartAnchor: cfg.startAnchorDisabled(),
		DisableEndAnchor:   cfg.endAnchorDisabled(),
		EscapeNonASCII:     cfg.EscapeNonASCII,
		UseSurrogatePairs:  cfg.UseSurrogatePairs,
	}
}
