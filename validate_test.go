package rexgen

import (
	"testing"

	"github.com/coregx/rexgen/expr"
	"github.com/coregx/rexgen/grapheme"
	"github.com/coregx/rexgen/printer"
)

// literalText renders e as a bare literal (no anchors) for assertions that
// only care about which graphemes a Literal node carries.
func literalText(e expr.Expression) string {
	return printer.Print(e, printer.Config{DisableStartAnchor: true, DisableEndAnchor: true})
}

func TestRotateRightRotatesByOne(t *testing.T) {
	opts := []expr.Expression{expr.NewLiteral(grapheme.FromString("a")), expr.NewLiteral(grapheme.FromString("b")), expr.NewLiteral(grapheme.FromString("c"))}
	got := rotateRight(opts)
	want := []string{"c", "a", "b"}
	for i, w := range want {
		lit, ok := got[i].(*expr.Literal)
		if !ok {
			t.Fatalf("rotateRight()[%d] is not a Literal", i)
		}
		if literalText(lit) != w {
			t.Errorf("rotateRight()[%d] = %q, want %q", i, literalText(lit), w)
		}
	}
}

func TestRotateRightLeavesShortSliceUnchanged(t *testing.T) {
	opts := []expr.Expression{expr.NewLiteral(grapheme.FromString("a"))}
	got := rotateRight(opts)
	if len(got) != 1 {
		t.Fatalf("rotateRight() = %v, want length 1", got)
	}
}

func TestRotateAlternationRebuildsTopLevelOptions(t *testing.T) {
	root := &expr.Alternation{Options: []expr.Expression{
		expr.NewLiteral(grapheme.FromString("aaa")),
		expr.NewLiteral(grapheme.FromString("bb")),
		expr.NewLiteral(grapheme.FromString("c")),
	}}
	rotated := rotateAlternation(root)

	alt, ok := rotated.(*expr.Alternation)
	if !ok {
		t.Fatalf("rotateAlternation() returned %T, want *expr.Alternation", rotated)
	}
	if len(alt.Options) != 3 {
		t.Fatalf("rotateAlternation() options = %d, want 3", len(alt.Options))
	}
	if alt == root {
		t.Error("rotateAlternation() must return a fresh node, not mutate root in place")
	}
	if literalText(root.Options[0]) != "aaa" {
		t.Error("rotateAlternation() must not mutate the original tree's Options slice")
	}
}

func TestRotateAlternationLeavesNonAlternationUnchanged(t *testing.T) {
	lit := expr.NewLiteral(grapheme.FromString("abc"))
	got := rotateAlternation(lit)
	if got != lit {
		t.Errorf("rotateAlternation() on a Literal should be a no-op")
	}
}

func TestLiteralFallbackSingleCluster(t *testing.T) {
	got := literalFallback([]grapheme.Cluster{grapheme.FromString("abc")})
	lit, ok := got.(*expr.Literal)
	if !ok {
		t.Fatalf("literalFallback() = %T, want *expr.Literal", got)
	}
	if literalText(lit) != "abc" {
		t.Errorf("literalFallback() = %q, want %q", literalText(lit), "abc")
	}
}

func TestLiteralFallbackOrdersLongestFirst(t *testing.T) {
	got := literalFallback([]grapheme.Cluster{grapheme.FromString("a"), grapheme.FromString("abc")})
	alt, ok := got.(*expr.Alternation)
	if !ok {
		t.Fatalf("literalFallback() = %T, want *expr.Alternation", got)
	}
	if literalText(alt.Options[0]) != "abc" {
		t.Errorf("literalFallback() options[0] = %q, want the longer cluster first", literalText(alt.Options[0]))
	}
}

func TestMatchesExactlyOnceRejectsRepeatedMatches(t *testing.T) {
	tree := expr.NewLiteral(grapheme.FromString("a"))
	cfg := DefaultConfig()
	cfg.DisableAnchors = true
	if matchesExactlyOnce(tree, []string{"aa"}, cfg) {
		t.Error("matchesExactlyOnce() = true for a pattern that matches twice within the case")
	}
}

func TestMatchesExactlyOnceAcceptsSingleMatch(t *testing.T) {
	tree := expr.NewLiteral(grapheme.FromString("abc"))
	cfg := DefaultConfig()
	cfg.DisableAnchors = true
	if !matchesExactlyOnce(tree, []string{"abc"}, cfg) {
		t.Error("matchesExactlyOnce() = false, want true")
	}
}
