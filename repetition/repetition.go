// Package repetition implements the non-overlapping repeated-substring
// detector: it finds runs of a repeated grapheme sequence within one
// cluster and replaces each run with a single grapheme carrying a
// (min,max) quantifier.
package repetition

import (
	"sort"
	"strings"

	"github.com/coregx/rexgen/grapheme"
)

// Config carries the two thresholds that gate repetition detection.
type Config struct {
	// MinRepetitions is the minimum repeat count (exclusive) a run must
	// exceed to be converted.
	MinRepetitions uint32
	// MinSubstringLength is the minimum number of graphemes a repeated
	// unit must contain to be converted.
	MinSubstringLength uint32
}

// occurrence records every place a length-j substring beginning at some
// index was seen.
type occurrence struct {
	length  int
	indices []int
	substr  []string
}

type span struct {
	start, end int
	substr     []string
}

// Convert detects repeated substrings in gs and returns the rewritten
// grapheme sequence with each surviving run replaced by a single
// repetition-annotated grapheme. It returns nil if no run qualified, so
// callers can tell "no change" apart from "rewritten to nothing" (which
// cannot happen: gs is never emptied by this rewrite).
func Convert(gs []grapheme.Grapheme, cfg Config) []grapheme.Grapheme {
	occurrences := collectRepeatedSubstrings(gs)
	candidates := rangesOfRepetitions(occurrences, cfg.MinRepetitions)
	coalesced := coalesceSpans(candidates)
	return replaceWithRepetitions(coalesced, gs, cfg)
}

func collectRepeatedSubstrings(gs []grapheme.Grapheme) []occurrence {
	index := map[string]*occurrence{}
	var order []string

	n := len(gs)
	for i := 0; i < n; i++ {
		maxJ := n / 2
		for j := 1; j <= maxJ && i+j <= n; j++ {
			vals := make([]string, j)
			for k := 0; k < j; k++ {
				vals[k] = gs[i+k].Value()
			}
			key := occKey(j, vals)
			occ, ok := index[key]
			if !ok {
				occ = &occurrence{length: j, substr: vals}
				index[key] = occ
				order = append(order, key)
			}
			occ.indices = append(occ.indices, i)
		}
	}

	out := make([]occurrence, 0, len(order))
	for _, key := range order {
		out = append(out, *index[key])
	}
	return out
}

func occKey(j int, vals []string) string {
	var b strings.Builder
	b.WriteString(strings.Join(vals, "\x1f"))
	b.WriteByte(0)
	b.WriteString(itoa(j))
	return b.String()
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// rangesOfRepetitions keeps only substrings whose occurrences don't
// overlap one another, groups by descending length (ties by first
// occurrence index), coalesces consecutive occurrences into contiguous
// runs, and keeps runs whose repeat count exceeds minRepetitions.
func rangesOfRepetitions(occurrences []occurrence, minRepetitions uint32) []span {
	var filtered []occurrence
	for _, occ := range occurrences {
		if nonOverlapping(occ.indices, occ.length) {
			filtered = append(filtered, occ)
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		if filtered[i].length != filtered[j].length {
			return filtered[i].length > filtered[j].length
		}
		return filtered[i].indices[0] < filtered[j].indices[0]
	})

	var out []span
	for _, occ := range filtered {
		j := occ.length
		var ranges []span
		for _, idx := range occ.indices {
			r := span{start: idx, end: idx + j, substr: occ.substr}
			if len(ranges) > 0 && ranges[len(ranges)-1].end == r.start {
				ranges[len(ranges)-1].end = r.end
			} else {
				ranges = append(ranges, r)
			}
		}
		for _, r := range ranges {
			count := (r.end - r.start) / j
			if uint32(count) > minRepetitions {
				out = append(out, r)
			}
		}
	}
	return out
}

func nonOverlapping(indices []int, j int) bool {
	for i := 1; i < len(indices); i++ {
		if indices[i]-indices[i-1] < j {
			return false
		}
	}
	return true
}

// coalesceSpans resolves overlaps across all candidate runs by preferring
// runs that end later, breaking ties by earlier start; an earlier-sorted
// span already kept absorbs any later span it overlaps, unless the later
// span merely touches its start boundary (which means they are adjacent,
// not overlapping, and both are kept).
func coalesceSpans(spans []span) []span {
	sorted := append([]span(nil), spans...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].end != sorted[j].end {
			return sorted[i].end > sorted[j].end
		}
		return sorted[i].start < sorted[j].start
	})

	var out []span
	for _, s := range sorted {
		if len(out) == 0 {
			out = append(out, s)
			continue
		}
		last := out[len(out)-1]
		if (contains(last, s.start) || contains(last, s.end)) && s.end != last.start {
			continue
		}
		out = append(out, s)
	}
	return out
}

func contains(s span, x int) bool {
	return s.start <= x && x < s.end
}

func replaceWithRepetitions(spans []span, gs []grapheme.Grapheme, cfg Config) []grapheme.Grapheme {
	if len(spans) == 0 {
		return nil
	}

	out := append([]grapheme.Grapheme(nil), gs...)
	changed := false

	for _, s := range spans {
		if s.end > len(out) {
			break
		}
		if len(s.substr) < int(cfg.MinSubstringLength) {
			continue
		}

		count := uint32((s.end - s.start) / len(s.substr))
		rep := grapheme.New(s.substr, count, count)

		base := make([]grapheme.Grapheme, len(s.substr))
		for i, v := range s.substr {
			base[i] = grapheme.FromString(v)
		}
		if nested := Convert(base, cfg); nested != nil {
			rep.Repetitions = nested
		}

		out = splice(out, s.start, s.end, rep)
		changed = true
	}

	if !changed {
		return nil
	}
	return out
}

func splice(gs []grapheme.Grapheme, start, end int, replacement grapheme.Grapheme) []grapheme.Grapheme {
	out := make([]grapheme.Grapheme, 0, len(gs)-(end-start)+1)
	out = append(out, gs[:start]...)
	out = append(out, replacement)
	out = append(out, gs[end:]...)
	return out
}
