package repetition

import (
	"testing"

	"github.com/coregx/rexgen/grapheme"
)

func graphemesOf(s string) []grapheme.Grapheme {
	c := grapheme.FromString(s)
	return c.Graphemes
}

func TestConvertSimpleRepeat(t *testing.T) {
	gs := graphemesOf("aa")
	out := Convert(gs, Config{MinRepetitions: 1, MinSubstringLength: 1})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Min != 2 || out[0].Max != 2 {
		t.Errorf("Min/Max = %d/%d, want 2/2", out[0].Min, out[0].Max)
	}
	if out[0].Value() != "a" {
		t.Errorf("Value() = %q, want %q", out[0].Value(), "a")
	}
}

func TestConvertTwoGraphemeUnit(t *testing.T) {
	gs := graphemesOf("bcbc")
	out := Convert(gs, Config{MinRepetitions: 1, MinSubstringLength: 1})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Min != 2 || out[0].Max != 2 {
		t.Errorf("Min/Max = %d/%d, want 2/2", out[0].Min, out[0].Max)
	}
	if out[0].Value() != "bc" {
		t.Errorf("Value() = %q, want %q", out[0].Value(), "bc")
	}
}

func TestConvertThreeGraphemeUnit(t *testing.T) {
	gs := graphemesOf("defdefdef")
	out := Convert(gs, Config{MinRepetitions: 1, MinSubstringLength: 1})
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}
	if out[0].Min != 3 || out[0].Max != 3 {
		t.Errorf("Min/Max = %d/%d, want 3/3", out[0].Min, out[0].Max)
	}
}

func TestConvertMinSubstringLengthExcludesShortUnits(t *testing.T) {
	gs := graphemesOf("aa")
	out := Convert(gs, Config{MinRepetitions: 1, MinSubstringLength: 2})
	if out != nil {
		t.Errorf("expected no conversion when min substring length exceeds unit length, got %v", out)
	}
}

func TestConvertNoRepeatLeavesUnchanged(t *testing.T) {
	gs := graphemesOf("abc")
	out := Convert(gs, Config{MinRepetitions: 1, MinSubstringLength: 1})
	if out != nil {
		t.Errorf("expected nil (no change) for non-repeating input, got %v", out)
	}
}
