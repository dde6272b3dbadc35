package errors

import "fmt"

// Multiplicity error codes (MUL400-499)
const (
	// ErrWrongMultiplicity indicates a link count outside an end's bounds
	ErrWrongMultiplicity ErrorCode = "MUL400"
	// ErrMalformedMultiplicity indicates an unparsable multiplicity string
	ErrMalformedMultiplicity ErrorCode = "MUL401"
	// ErrAlreadyLinked indicates a pair of objects linked twice via the same end
	ErrAlreadyLinked ErrorCode = "MUL402"
)

// NewWrongMultiplicity creates a MUL400 error
func NewWrongMultiplicity(count int, multiplicity string) *ModelError {
	return newError(
		ErrWrongMultiplicity,
		"wrong_multiplicity",
		CategoryMultiplicity,
		fmt.Sprintf("link has wrong multiplicity '%d', but should be %s", count, quote(multiplicity)),
	).WithExpected(multiplicity).
		WithActual(fmt.Sprintf("%d", count))
}

// NewMalformedMultiplicity creates a MUL401 error
func NewMalformedMultiplicity(value string) *ModelError {
	return newError(
		ErrMalformedMultiplicity,
		"malformed_multiplicity",
		CategoryMultiplicity,
		fmt.Sprintf("malformed multiplicity: %s", quote(value)),
	).WithSuggestion("Use 'n', '*', 'n..m' or 'n..*' with 0 <= n <= m")
}

// NewAlreadyLinked creates a MUL402 error
func NewAlreadyLinked(source, target string) *ModelError {
	return newError(
		ErrAlreadyLinked,
		"already_linked",
		CategoryMultiplicity,
		fmt.Sprintf("link between %s and %s already exists", quote(source), quote(target)),
	).WithElement(source)
}
