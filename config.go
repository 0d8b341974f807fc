package rexgen

// Config is the set of toggles and thresholds that control how Build
// synthesizes a pattern from a Builder's test cases. It is read-only once
// Build begins; nothing in the pipeline mutates it.
type Config struct {
	// ConvertDigits, ConvertNonDigits, ConvertWhitespace,
	// ConvertNonWhitespace, ConvertWords, and ConvertNonWords enable the
	// character-class substitution table of spec.md §4.3 (package
	// charclass).
	ConvertDigits        bool
	ConvertNonDigits     bool
	ConvertWhitespace    bool
	ConvertNonWhitespace bool
	ConvertWords         bool
	ConvertNonWords      bool

	// ConvertRepetitions enables the repeated-substring detector of
	// spec.md §4.2 (package repetition).
	ConvertRepetitions bool

	// MinRepetitions and MinSubstringLength gate ConvertRepetitions;
	// both must be at least 1.
	MinRepetitions     uint32
	MinSubstringLength uint32

	// CaseInsensitive folds each test case to lowercase before
	// segmentation (guarded against codepoint-count-changing folds) and
	// prepends the `(?i)` flag.
	CaseInsensitive bool

	// CapturingGroups uses `(...)` instead of `(?:...)` wherever the
	// printer introduces a group.
	CapturingGroups bool

	// EscapeNonASCII and UseSurrogatePairs control the non-ASCII escape
	// policy of spec.md §4.1. UseSurrogatePairs has no effect unless
	// EscapeNonASCII is also set.
	EscapeNonASCII    bool
	UseSurrogatePairs bool

	// VerboseMode prepends the `(?x)` flag (or `(?ix)` together with
	// CaseInsensitive) on a line of its own and escapes `#` and whitespace
	// in the pattern. The expression itself stays on a single line; it is
	// not split into lines indented by nesting level.
	VerboseMode bool

	// DisableStartAnchor and DisableEndAnchor omit `^` and `$`
	// respectively. DisableAnchors is a convenience equivalent to
	// setting both; it is read at Build time, so setting it after
	// constructing a Config still takes effect.
	DisableStartAnchor bool
	DisableEndAnchor   bool
	DisableAnchors     bool
}

// DefaultConfig returns a Config with every toggle at its spec.md §6
// default: no class substitution, no repetition detection, anchors and
// case sensitivity on, and both thresholds at 1.
func DefaultConfig() Config {
	return Config{
		MinRepetitions:     1,
		MinSubstringLength: 1,
	}
}

// startAnchorDisabled reports whether the start anchor should be omitted,
// folding DisableAnchors into DisableStartAnchor.
func (c Config) startAnchorDisabled() bool {
	return c.DisableStartAnchor || c.DisableAnchors
}

// endAnchorDisabled reports whether the end anchor should be omitted,
// folding DisableAnchors into DisableEndAnchor.
func (c Config) endAnchorDisabled() bool {
	return c.DisableEndAnchor || c.DisableAnchors
}

func (c Config) classFlags() bool {
	return c.ConvertDigits || c.ConvertNonDigits || c.ConvertWhitespace ||
		c.ConvertNonWhitespace || c.ConvertWords || c.ConvertNonWords
}
