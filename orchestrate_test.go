package rexgen

import (
	"regexp"
	"testing"
)

// build is a small test helper around NewBuilder+Build for scenarios that
// don't need to inspect intermediate state.
func build(t *testing.T, cases []string, configure func(*Config)) string {
	t.Helper()
	b, err := NewBuilder(cases)
	if err != nil {
		t.Fatalf("NewBuilder() error = %v", err)
	}
	if configure != nil {
		configure(&b.Config)
	}
	got, err := b.Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return got
}

// mustMatchExactlyOnce compiles pattern with the standard library regexp
// package and requires every case to match exactly once, the same
// criterion validate.go enforces internally when anchors are disabled.
func mustMatchExactlyOnce(t *testing.T, pattern string, cases []string) {
	t.Helper()
	re, err := regexp.Compile(pattern)
	if err != nil {
		t.Fatalf("regexp.Compile(%q) error = %v", pattern, err)
	}
	for _, c := range cases {
		if got := re.FindAllString(c, -1); len(got) != 1 || got[0] != c {
			t.Errorf("pattern %q matched %q as %v, want exactly one full match", pattern, c, got)
		}
	}
}

func TestScenarioRepeatedPrefix(t *testing.T) {
	got := build(t, []string{"a", "aa", "aaa"}, nil)
	want := "^a(?:aa?)?$"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
	mustMatchExactlyOnce(t, got, []string{"a", "aa", "aaa"})
}

func TestScenarioClassSubstitution(t *testing.T) {
	cases := []string{"a", "aa", "123"}
	got := build(t, cases, func(c *Config) {
		c.ConvertDigits = true
		c.ConvertWords = true
	})
	mustMatchExactlyOnce(t, got, cases)
	if m, _ := regexp.MatchString(`\\d`, got); !m {
		t.Errorf("Build() = %q, want a \\d token", got)
	}
	if m, _ := regexp.MatchString(`\\w`, got); !m {
		t.Errorf("Build() = %q, want a \\w token", got)
	}
}

func TestScenarioRepetitionDetection(t *testing.T) {
	cases := []string{"yeah", "yeah", "yeahyeah", "yeahyeahyeah"}
	got := build(t, cases, func(c *Config) {
		c.ConvertRepetitions = true
	})
	mustMatchExactlyOnce(t, got, []string{"yeah", "yeahyeah", "yeahyeahyeah"})
}

func TestScenarioRepetitionWithMinSubstringLength(t *testing.T) {
	cases := []string{"aaaa", "bb"}
	got := build(t, cases, func(c *Config) {
		c.ConvertRepetitions = true
		c.MinSubstringLength = 2
	})
	mustMatchExactlyOnce(t, got, cases)
}

func TestScenarioEscapeWithSurrogates(t *testing.T) {
	got := build(t, []string{"You smell like 💩."}, func(c *Config) {
		c.EscapeNonASCII = true
		c.UseSurrogatePairs = true
	})
	want := `^You smell like \u{d83d}\u{dca9}\.$`
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestScenarioCaseInsensitiveCapturingGroups(t *testing.T) {
	got := build(t, []string{"big", "BIGGER"}, func(c *Config) {
		c.CaseInsensitive = true
		c.CapturingGroups = true
	})
	want := "(?i)^big(ger)?$"
	if got != want {
		t.Errorf("Build() = %q, want %q", got, want)
	}
}

func TestScenarioNoAnchorsStillMatchesCases(t *testing.T) {
	cases := []string{"a", "aa", "aaa"}
	got := build(t, cases, func(c *Config) {
		c.DisableAnchors = true
	})
	if len(got) == 0 {
		t.Fatal("Build() returned an empty pattern")
	}
	for _, c := range cases {
		m, err := regexp.MatchString(got, c)
		if err != nil {
			t.Fatalf("regexp.MatchString(%q, %q) error = %v", got, c, err)
		}
		if !m {
			t.Errorf("pattern %q does not match %q", got, c)
		}
	}
}

func TestPrepareTestCasesSortsDedupesAndFolds(t *testing.T) {
	cfg := Config{CaseInsensitive: true}
	got := prepareTestCases([]string{"B", "a", "a"}, cfg)

	want := []string{"a", "b"}
	if len(got) != len(want) {
		t.Fatalf("prepareTestCases() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("prepareTestCases()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDedupeRemovesAdjacentDuplicates(t *testing.T) {
	got := dedupe([]string{"a", "a", "b", "b", "b", "c"})
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("dedupe() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("dedupe()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
