// Command rexgen is the CLI surface over the rexgen library: it gathers
// test cases from positional arguments, a file, or standard input,
// translates flags into a rexgen.Config, and prints the synthesized
// pattern (optionally syntax-highlighted for a terminal).
package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/coregx/rexgen"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type cliFlags struct {
	digits             bool
	nonDigits          bool
	spaces             bool
	nonSpaces          bool
	words              bool
	nonWords           bool
	repetitions        bool
	escape             bool
	withSurrogates     bool
	ignoreCase         bool
	captureGroups      bool
	verbose            bool
	noStartAnchor      bool
	noEndAnchor        bool
	noAnchors          bool
	colorize           bool
	filePath           string
	minRepetitions     uint32
	minSubstringLength uint32
}

func newRootCmd() *cobra.Command {
	var flags cliFlags

	cmd := &cobra.Command{
		Use:   "rexgen [INPUT...]",
		Short: "Generates a regular expression from user-provided test cases",
		Long: "rexgen generates a regular expression that exactly matches\n" +
			"the test cases given as input and nothing else.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			cases, err := obtainInput(args, flags.filePath)
			if err != nil {
				return err
			}
			pattern, err := buildPattern(cases, flags)
			if err != nil {
				return err
			}
			if flags.colorize {
				pattern = colorize(pattern)
			}
			fmt.Fprintln(cmd.OutOrStdout(), pattern)
			return nil
		},
	}

	f := cmd.Flags()
	f.BoolVarP(&flags.digits, "digits", "d", false, `Converts any Unicode decimal digit to \d`)
	f.BoolVarP(&flags.nonDigits, "non-digits", "D", false, `Converts any character which is not a Unicode decimal digit to \D`)
	f.BoolVarP(&flags.spaces, "spaces", "s", false, `Converts any Unicode whitespace character to \s`)
	f.BoolVarP(&flags.nonSpaces, "non-spaces", "S", false, `Converts any character which is not a Unicode whitespace character to \S`)
	f.BoolVarP(&flags.words, "words", "w", false, `Converts any Unicode word character to \w`)
	f.BoolVarP(&flags.nonWords, "non-words", "W", false, `Converts any character which is not a Unicode word character to \W`)
	f.BoolVarP(&flags.repetitions, "repetitions", "r", false, "Detects repeated non-overlapping substrings and converts them to {min,max} quantifier notation")
	f.BoolVar(&flags.escape, "escape", false, "Replaces all non-ASCII characters with unicode escape sequences")
	f.BoolVar(&flags.withSurrogates, "with-surrogates", false, "Converts astral code points to surrogate pairs if --escape is set")
	f.BoolVarP(&flags.ignoreCase, "ignore-case", "i", false, "Performs case-insensitive matching, letters match both upper and lower case")
	f.BoolVarP(&flags.captureGroups, "capture-groups", "g", false, "Replaces non-capturing groups by capturing ones")
	f.BoolVarP(&flags.verbose, "verbose", "x", false, "Produces a nicer looking regular expression in verbose mode")
	f.BoolVar(&flags.noStartAnchor, "no-start-anchor", false, "Removes the caret anchor '^' from the resulting regular expression")
	f.BoolVar(&flags.noEndAnchor, "no-end-anchor", false, "Removes the dollar sign anchor '$' from the resulting regular expression")
	f.BoolVar(&flags.noAnchors, "no-anchors", false, "Removes the caret and dollar sign anchors from the resulting regular expression")
	f.BoolVarP(&flags.colorize, "colorize", "c", false, "Provides syntax highlighting for the resulting regular expression")
	f.StringVarP(&flags.filePath, "file", "f", "", "Reads test cases on separate lines from a file")
	f.Uint32Var(&flags.minRepetitions, "min-repetitions", 1, "Specifies the minimum quantity of substring repetitions to be converted if --repetitions is set")
	f.Uint32Var(&flags.minSubstringLength, "min-substring-length", 1, "Specifies the minimum length a repeated substring must have in order to be converted if --repetitions is set")

	return cmd
}

// obtainInput resolves the effective test-case list: positional args take
// precedence over --file; a single "-" argument, or "-" as the file path,
// reads test cases from standard input, one per line.
func obtainInput(args []string, filePath string) ([]string, error) {
	if len(args) > 0 {
		if len(args) == 1 && args[0] == "-" {
			return readLines(os.Stdin)
		}
		return args, nil
	}
	if filePath != "" {
		if filePath == "-" {
			return readLines(os.Stdin)
		}
		f, err := os.Open(filePath)
		if err != nil {
			return nil, describeFileError(err)
		}
		defer f.Close()
		return readLines(f)
	}
	return nil, fmt.Errorf("error: no valid input could be found whatsoever")
}

func readLines(r *os.File) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error: %w", err)
	}
	return lines, nil
}

func describeFileError(err error) error {
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("error: the specified file could not be found")
	case os.IsPermission(err):
		return fmt.Errorf("permission denied: the specified file could not be opened")
	default:
		return fmt.Errorf("error: %w", err)
	}
}

func buildPattern(cases []string, flags cliFlags) (string, error) {
	b, err := rexgen.NewBuilder(cases)
	if err != nil {
		return "", err
	}

	b.Config.ConvertDigits = flags.digits
	b.Config.ConvertNonDigits = flags.nonDigits
	b.Config.ConvertWhitespace = flags.spaces
	b.Config.ConvertNonWhitespace = flags.nonSpaces
	b.Config.ConvertWords = flags.words
	b.Config.ConvertNonWords = flags.nonWords
	b.Config.ConvertRepetitions = flags.repetitions
	b.Config.CaseInsensitive = flags.ignoreCase
	b.Config.CapturingGroups = flags.captureGroups
	b.Config.EscapeNonASCII = flags.escape
	b.Config.UseSurrogatePairs = flags.withSurrogates
	b.Config.VerboseMode = flags.verbose
	b.Config.DisableStartAnchor = flags.noStartAnchor
	b.Config.DisableEndAnchor = flags.noEndAnchor
	b.Config.DisableAnchors = flags.noAnchors
	b.Config.MinRepetitions = flags.minRepetitions
	b.Config.MinSubstringLength = flags.minSubstringLength

	return b.Build()
}
