package errors

import "fmt"

// Type error codes (TYP300-399)
const (
	// ErrValueKindMismatch indicates a value whose Go type does not match the attribute kind
	ErrValueKindMismatch ErrorCode = "TYP300"
	// ErrObjectTypeMismatch indicates an object-valued attribute set to an object of the wrong type
	ErrObjectTypeMismatch ErrorCode = "TYP301"
	// ErrLinkTypeMismatch indicates a link endpoint whose type does not match the end classifier
	ErrLinkTypeMismatch ErrorCode = "TYP302"
	// ErrWrongClassifierKind indicates a narrowing to the wrong classifier kind
	ErrWrongClassifierKind ErrorCode = "TYP303"
	// ErrMissingTypeReference indicates an enum or object attribute declared without its type
	ErrMissingTypeReference ErrorCode = "TYP304"
	// ErrUnknownValueKind indicates an attribute kind that the engine does not support
	ErrUnknownValueKind ErrorCode = "TYP305"
	// ErrInvalidLinkTarget indicates a link target that is neither an object nor an object name
	ErrInvalidLinkTarget ErrorCode = "TYP306"
)

// NewValueKindMismatch creates a TYP300 error
func NewValueKindMismatch(attribute, expected, actual string) *ModelError {
	return newError(
		ErrValueKindMismatch,
		"value_kind_mismatch",
		CategoryType,
		fmt.Sprintf("value type for attribute %s does not match attribute type", quote(attribute)),
	).WithElement(attribute).
		WithExpected(expected).
		WithActual(actual).
		WithSuggestion("Values are never widened; convert the value to the attribute's exact kind")
}

// NewObjectTypeMismatch creates a TYP301 error
func NewObjectTypeMismatch(object, expectedType, attribute string) *ModelError {
	return newError(
		ErrObjectTypeMismatch,
		"object_type_mismatch",
		CategoryType,
		fmt.Sprintf("object %s is not of type %s required by attribute %s", quote(object), quote(expectedType), quote(attribute)),
	).WithElement(attribute).
		WithExpected(expectedType)
}

// NewLinkTypeMismatch creates a TYP302 error. The expected type is always the
// classifier declared on the association end.
func NewLinkTypeMismatch(object, endClassifier, role string) *ModelError {
	return newError(
		ErrLinkTypeMismatch,
		"link_type_mismatch",
		CategoryType,
		fmt.Sprintf("object %s is not of type %s required by association end %s", quote(object), quote(endClassifier), quote(role)),
	).WithElement(object).
		WithExpected(endClassifier)
}

// NewWrongClassifierKind creates a TYP303 error
func NewWrongClassifierKind(name, actualKind, expectedKind string) *ModelError {
	return newError(
		ErrWrongClassifierKind,
		"wrong_classifier_kind",
		CategoryType,
		fmt.Sprintf("%s is a %s, not a %s", quote(name), actualKind, expectedKind),
	).WithElement(name).
		WithExpected(expectedKind).
		WithActual(actualKind)
}

// NewMissingTypeReference creates a TYP304 error
func NewMissingTypeReference(attribute, kind string) *ModelError {
	return newError(
		ErrMissingTypeReference,
		"missing_type_reference",
		CategoryType,
		fmt.Sprintf("attribute %s of kind %s requires a type reference", quote(attribute), quote(kind)),
	).WithElement(attribute)
}

// NewUnknownValueKind creates a TYP305 error
func NewUnknownValueKind(kind string) *ModelError {
	return newError(
		ErrUnknownValueKind,
		"unknown_value_kind",
		CategoryType,
		fmt.Sprintf("unknown attribute kind: %s", quote(kind)),
	).WithSuggestion("Valid kinds: bool, int, long, double, float, char, byte, short, string, enum, object")
}

// NewInvalidLinkTarget creates a TYP306 error
func NewInvalidLinkTarget(target string) *ModelError {
	return newError(
		ErrInvalidLinkTarget,
		"invalid_link_target",
		CategoryType,
		fmt.Sprintf("link target %s is neither an object nor an object name", quote(target)),
	)
}
