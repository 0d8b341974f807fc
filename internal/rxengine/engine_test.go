package rxengine

import (
	"strconv"
	"strings"
	"testing"
)

func TestFindAllStringLiteral(t *testing.T) {
	re := MustCompile(`^abc$`)
	got := re.FindAllString("abc", -1)
	want := []string{"abc"}
	if len(got) != 1 || got[0] != want[0] {
		t.Errorf("FindAllString() = %v, want %v", got, want)
	}
	if len(re.FindAllString("abcd", -1)) != 0 {
		t.Error("FindAllString() matched an anchored pattern against a longer string")
	}
}

func TestFindAllStringAlternationAndQuestion(t *testing.T) {
	re := MustCompile(`^a(?:aa?)?$`)
	for _, c := range []string{"a", "aa", "aaa"} {
		got := re.FindAllString(c, -1)
		if len(got) != 1 || got[0] != c {
			t.Errorf("FindAllString(%q) = %v, want one match equal to input", c, got)
		}
	}
	if len(re.FindAllString("aaaa", -1)) != 0 {
		t.Error("FindAllString() matched a string outside the pattern's language")
	}
}

func TestFindAllStringCaseInsensitiveCapturingGroup(t *testing.T) {
	re := MustCompile(`(?i)^big(ger)?$`)
	for _, c := range []string{"big", "BIGGER", "Big"} {
		if len(re.FindAllString(c, -1)) != 1 {
			t.Errorf("FindAllString(%q) did not match once under (?i)", c)
		}
	}
}

func TestFindAllStringCharacterClass(t *testing.T) {
	re := MustCompile(`^[a-d]$`)
	for _, c := range []string{"a", "b", "c", "d"} {
		if len(re.FindAllString(c, -1)) != 1 {
			t.Errorf("FindAllString(%q) did not match the class once", c)
		}
	}
	if len(re.FindAllString("e", -1)) != 0 {
		t.Error("FindAllString() matched a rune outside the class")
	}
}

func TestFindAllStringRepetitionRange(t *testing.T) {
	re := MustCompile(`^a{2,3}$`)
	for _, c := range []string{"aa", "aaa"} {
		if len(re.FindAllString(c, -1)) != 1 {
			t.Errorf("FindAllString(%q) did not match {2,3} once", c)
		}
	}
	for _, c := range []string{"a", "aaaa"} {
		if len(re.FindAllString(c, -1)) != 0 {
			t.Errorf("FindAllString(%q) unexpectedly matched {2,3}", c)
		}
	}
}

func TestFindAllStringUnanchoredMultipleMatches(t *testing.T) {
	re := MustCompile(`a`)
	got := re.FindAllString("banana", -1)
	if len(got) != 3 {
		t.Errorf("FindAllString() = %v, want 3 non-overlapping matches", got)
	}
}

func TestFindAllStringSurrogatePairEscape(t *testing.T) {
	re := MustCompile(`^You smell like \u{d83d}\u{dca9}\.$`)
	got := re.FindAllString("You smell like \U0001F4A9.", -1)
	if len(got) != 1 {
		t.Errorf("FindAllString() = %v, want exactly one match of the surrogate-escaped emoji", got)
	}
}

func TestFindAllStringBareUnicodeEscape(t *testing.T) {
	re := MustCompile(`^\u{e9}$`)
	got := re.FindAllString("é", -1)
	if len(got) != 1 {
		t.Errorf("FindAllString() = %v, want one match of the escaped codepoint", got)
	}
}

func TestCompileRejectsInvalidPattern(t *testing.T) {
	if _, err := Compile(`(`); err == nil {
		t.Error("Compile() on an unbalanced group should return an error")
	}
}

func TestCompileRejectsUnterminatedUnicodeEscape(t *testing.T) {
	if _, err := Compile(`\u{41`); err == nil {
		t.Error("Compile() on an unterminated \\u{ escape should return an error")
	}
}

// TestFindAllStringLargeLiteralAlternationUsesAhoCorasick exercises the
// literalAlternationThreshold cutover: past 32 branches, Compile should
// build an Aho-Corasick automaton (mirroring coregx/coregex's own
// UseAhoCorasick strategy selection) rather than leaving matching to the
// backtracking walker, while still answering FindAllString identically.
func TestFindAllStringLargeLiteralAlternationUsesAhoCorasick(t *testing.T) {
	// Go's regexp/syntax parser factors a common leading rune out of
	// *adjacent* alternation branches (e.g. "two|three" -> "t(wo|hree)"),
	// which would turn a branch back into something other than a bare
	// OpLiteral. Cycling four distinct lead letters keeps neighbors from
	// ever sharing one, so every branch survives parsing as a plain literal.
	leads := []string{"a", "b", "c", "d"}
	branches := make([]string, 40)
	for i := range branches {
		branches[i] = leads[i%len(leads)] + strconv.Itoa(i)
	}
	pattern := "^(?:" + strings.Join(branches, "|") + ")$"

	re := MustCompile(pattern)
	if re.ahoCorasick == nil {
		t.Fatal("Compile() did not build an Aho-Corasick automaton for a 40-branch literal alternation")
	}

	for _, c := range []string{branches[0], branches[20], branches[39]} {
		got := re.FindAllString(c, -1)
		if len(got) != 1 || got[0] != c {
			t.Errorf("FindAllString(%q) = %v, want one match equal to input", c, got)
		}
	}
	if len(re.FindAllString(branches[0]+"x", -1)) != 0 {
		t.Error("FindAllString() matched a string outside the anchored alternation's language")
	}
	if len(re.FindAllString("nope", -1)) != 0 {
		t.Error("FindAllString() matched a string that is not one of the literal branches")
	}
}

// TestFindAllStringSmallLiteralAlternationSkipsAhoCorasick checks the
// threshold's other side: at or below 32 branches, no automaton is built
// and the backtracking matcher still answers correctly.
func TestFindAllStringSmallLiteralAlternationSkipsAhoCorasick(t *testing.T) {
	re := MustCompile(`^(?:cat|dog|bird)$`)
	if re.ahoCorasick != nil {
		t.Fatal("Compile() built an Aho-Corasick automaton below literalAlternationThreshold")
	}
	if got := re.FindAllString("dog", -1); len(got) != 1 || got[0] != "dog" {
		t.Errorf("FindAllString(%q) = %v, want one match", "dog", got)
	}
}

func TestMatchString(t *testing.T) {
	re := MustCompile(`\d+`)
	if !re.MatchString("room 42") {
		t.Error("MatchString() = false, want true")
	}
	if re.MatchString("no digits here") {
		t.Error("MatchString() = true, want false")
	}
}
