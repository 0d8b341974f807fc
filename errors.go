package rexgen

import "errors"

// ErrInvalidInput is returned when the builder is asked to synthesize a
// regex from a configuration that can never produce one: no test cases,
// or a threshold of zero where spec.md requires a positive value.
var ErrInvalidInput = errors.New("rexgen: invalid input")

// ErrEmptyTestCases is wrapped by ErrInvalidInput when the test-case list
// is empty.
var ErrEmptyTestCases = errors.New("rexgen: no test cases have been provided for regular expression generation")

// ErrMinRepetitionsZero is wrapped by ErrInvalidInput when MinRepetitions
// is set to zero.
var ErrMinRepetitionsZero = errors.New("rexgen: quantity of minimum repetitions must be greater than zero")

// ErrMinSubstringLengthZero is wrapped by ErrInvalidInput when
// MinSubstringLength is set to zero.
var ErrMinSubstringLengthZero = errors.New("rexgen: minimum substring length must be greater than zero")
