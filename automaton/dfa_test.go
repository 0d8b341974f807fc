package automaton

import (
	"testing"

	"github.com/coregx/rexgen/grapheme"
)

func clustersOf(strs ...string) []grapheme.Cluster {
	out := make([]grapheme.Cluster, len(strs))
	for i, s := range strs {
		out[i] = grapheme.FromString(s)
	}
	return out
}

func TestInsertBuildsLinearChain(t *testing.T) {
	d := Build(clustersOf("abc"), false)
	if d.StateCount() != 4 {
		t.Fatalf("StateCount() = %d, want 4", d.StateCount())
	}
	if !d.IsFinal(3) {
		t.Errorf("state 3 should be final")
	}
}

func TestInsertSharesCommonPrefix(t *testing.T) {
	d := Build(clustersOf("ab", "ac"), false)
	// shared "a" edge from state 0, then two branches "b" and "c".
	if d.StateCount() != 4 {
		t.Fatalf("StateCount() = %d, want 4", d.StateCount())
	}
	root := d.OutgoingEdges(0)
	if len(root) != 1 {
		t.Fatalf("len(OutgoingEdges(0)) = %d, want 1 (shared prefix)", len(root))
	}
}

func TestMinimizeMergesEquivalentSuffixes(t *testing.T) {
	// "abcd" and "abxd" share a common suffix "d" after diverging at the
	// third grapheme; minimization should merge the two states reached by
	// "c" and "x" (both only lead to acceptance via "d") and the two final
	// states, while keeping both the "c" and the "x" edge.
	d := New()
	d.Insert(clustersOf("abcd")[0])
	if d.StateCount() != 5 {
		t.Fatalf("after inserting abcd: StateCount() = %d, want 5", d.StateCount())
	}
	if countEdges(d) != 4 {
		t.Fatalf("after inserting abcd: edge count = %d, want 4", countEdges(d))
	}

	d.Insert(clustersOf("abxd")[0])
	if d.StateCount() != 7 {
		t.Fatalf("after inserting abxd: StateCount() = %d, want 7", d.StateCount())
	}
	if countEdges(d) != 6 {
		t.Fatalf("after inserting abxd: edge count = %d, want 6", countEdges(d))
	}

	d.Minimize()
	if d.StateCount() != 5 {
		t.Fatalf("after minimize: StateCount() = %d, want 5", d.StateCount())
	}
	if countEdges(d) != 5 {
		t.Fatalf("after minimize: edge count = %d, want 5", countEdges(d))
	}
}

func countEdges(d *DFA) int {
	n := 0
	for s := 0; s < d.StateCount(); s++ {
		n += len(d.OutgoingEdges(s))
	}
	return n
}

func TestStatesInDepthFirstOrderStartsAtInitial(t *testing.T) {
	d := Build(clustersOf("ab"), false)
	order := d.StatesInDepthFirstOrder()
	if len(order) == 0 || order[0] != d.Initial() {
		t.Fatalf("order = %v, want to start at initial state %d", order, d.Initial())
	}
	if len(order) != d.StateCount() {
		t.Fatalf("len(order) = %d, want %d", len(order), d.StateCount())
	}
}

func TestAlphabetDeduplicates(t *testing.T) {
	d := New()
	d.Insert(clustersOf("aa")[0])
	if len(d.alphabet) != 1 {
		t.Fatalf("len(alphabet) = %d, want 1 (both edges carry the same 'a' label)", len(d.alphabet))
	}
}
