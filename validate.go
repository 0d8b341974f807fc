package rexgen

import (
	"sort"

	"github.com/coregx/rexgen/expr"
	"github.com/coregx/rexgen/grapheme"
	"github.com/coregx/rexgen/internal/rxengine"
	"github.com/coregx/rexgen/printer"
)

// validateAndRepair implements spec.md §4.8 step 5: with both anchors
// disabled, the synthesized pattern may match loosely, so it is compiled
// with the embedded rxengine validator and checked against every test
// case before being trusted. A failing candidate is repaired by rotating
// the top-level alternation's branches (up to len(cases)-1 times), then
// by rebuilding the whole DFA with minimization disabled, and finally —
// if nothing else matches exactly once per input — by falling back to
// the trivial alternation of all literal inputs.
func validateAndRepair(tree expr.Expression, clusters []grapheme.Cluster, cases []string, cfg Config) expr.Expression {
	if matchesExactlyOnce(tree, cases, cfg) {
		return tree
	}

	current := tree
	for i := 1; i < len(cases); i++ {
		current = rotateAlternation(current)
		if matchesExactlyOnce(current, cases, cfg) {
			return current
		}
	}

	rebuilt := buildExpression(clusters, cfg, false)
	if matchesExactlyOnce(rebuilt, cases, cfg) {
		return rebuilt
	}

	return literalFallback(clusters)
}

// matchesExactlyOnce prints tree without verbose mode (rxengine's
// regexp/syntax front end rejects the `(?x)` flag), compiles it with
// rxengine, and requires every case to match exactly once.
func matchesExactlyOnce(tree expr.Expression, cases []string, cfg Config) bool {
	pc := printConfig(cfg)
	pc.VerboseMode = false
	pattern := printer.Print(tree, pc)

	re, err := rxengine.Compile(pattern)
	if err != nil {
		return false
	}
	for _, c := range cases {
		if len(re.FindAllString(c, -1)) != 1 {
			return false
		}
	}
	return true
}

// rotateAlternation returns a new tree with the top-level Alternation's
// Options rotated right by one position; if the root is a Concatenation,
// it rotates whichever immediate child is itself an Alternation. Only the
// node(s) on the rotated path are rebuilt — everything else is shared
// with tree — per the decision to build a fresh node rather than mutate
// the existing one in place.
func rotateAlternation(tree expr.Expression) expr.Expression {
	switch v := tree.(type) {
	case *expr.Alternation:
		return &expr.Alternation{Options: rotateRight(v.Options)}
	case *expr.Concatenation:
		if alt, ok := v.Left.(*expr.Alternation); ok {
			return &expr.Concatenation{Left: &expr.Alternation{Options: rotateRight(alt.Options)}, Right: v.Right}
		}
		if alt, ok := v.Right.(*expr.Alternation); ok {
			return &expr.Concatenation{Left: v.Left, Right: &expr.Alternation{Options: rotateRight(alt.Options)}}
		}
		return v
	default:
		return v
	}
}

func rotateRight(options []expr.Expression) []expr.Expression {
	n := len(options)
	if n < 2 {
		return options
	}
	out := make([]expr.Expression, 0, n)
	out = append(out, options[n-1])
	out = append(out, options[:n-1]...)
	return out
}

// literalFallback builds the alternation of one Literal per cluster,
// sorted by descending length like every other Alternation this package
// constructs, used when neither rotation nor an unminimized rebuild
// produces a pattern that matches every case exactly once.
func literalFallback(clusters []grapheme.Cluster) expr.Expression {
	options := make([]expr.Expression, len(clusters))
	for i, c := range clusters {
		options[i] = expr.NewLiteral(c)
	}
	sort.SliceStable(options, func(i, j int) bool {
		return options[i].Len() > options[j].Len()
	})
	if len(options) == 1 {
		return options[0]
	}
	return &expr.Alternation{Options: options}
}
