package grapheme

import "github.com/clipperhouse/uax29/v2/graphemes"

// Cluster is the ordered sequence of Graphemes produced by segmenting one
// input test case.
type Cluster struct {
	Graphemes []Grapheme
}

// FromString segments s into extended grapheme clusters (UAX#29) and
// applies the two splitting refinements of the segmentation rules: a
// two-codepoint cluster containing a backslash, or a cluster containing a
// combining mark or an Other-category codepoint, is broken into one
// Grapheme per codepoint instead of being kept atomic.
func FromString(s string) Cluster {
	var out []Grapheme

	tokens := graphemes.FromString(s)
	for tokens.Next() {
		token := tokens.Value()
		if isSplitCandidate(token) {
			for _, r := range token {
				out = append(out, FromString(string(r)))
			}
		} else {
			out = append(out, FromString(token))
		}
	}

	return Cluster{Graphemes: out}
}

// FromGraphemes wraps an already-built grapheme slice into a Cluster.
func FromGraphemes(gs []Grapheme) Cluster {
	return Cluster{Graphemes: gs}
}

// FromGrapheme wraps a single Grapheme (typically one carrying a repetition
// range) into a one-element Cluster, mirroring the DFA builder's use of a
// Grapheme as an edge label promoted back into literal form.
func FromGrapheme(g Grapheme) Cluster {
	return Cluster{Graphemes: []Grapheme{g}}
}

// Merge concatenates two clusters' grapheme sequences into a new Cluster.
func Merge(a, b Cluster) Cluster {
	out := make([]Grapheme, 0, len(a.Graphemes)+len(b.Graphemes))
	out = append(out, a.Graphemes...)
	out = append(out, b.Graphemes...)
	return Cluster{Graphemes: out}
}

// Size returns the number of graphemes in the cluster.
func (c Cluster) Size() int {
	return len(c.Graphemes)
}

// IsEmpty reports whether the cluster has no graphemes.
func (c Cluster) IsEmpty() bool {
	return len(c.Graphemes) == 0
}

// CharCount sums each grapheme's CharCount.
func (c Cluster) CharCount(escapeNonASCII bool) int {
	n := 0
	for _, g := range c.Graphemes {
		n += g.CharCount(escapeNonASCII)
	}
	return n
}

// Equal reports whether two clusters have pairwise-equal graphemes.
func (c Cluster) Equal(other Cluster) bool {
	if len(c.Graphemes) != len(other.Graphemes) {
		return false
	}
	for i := range c.Graphemes {
		if !c.Graphemes[i].Equal(other.Graphemes[i]) {
			return false
		}
	}
	return true
}
