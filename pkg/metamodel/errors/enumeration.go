package errors

import "fmt"

// Enumeration error codes (ENM800-899)
const (
	// ErrIllegalEnumValue indicates a value outside an enumeration's legal values
	ErrIllegalEnumValue ErrorCode = "ENM800"
	// ErrEmptyEnumeration indicates an enumeration declared without values
	ErrEmptyEnumeration ErrorCode = "ENM801"
	// ErrDuplicateEnumValue indicates an enumeration declaring the same value twice
	ErrDuplicateEnumValue ErrorCode = "ENM802"
)

// NewIllegalEnumValue creates an ENM800 error
func NewIllegalEnumValue(value, enumeration string) *ModelError {
	return newError(
		ErrIllegalEnumValue,
		"illegal_enum_value",
		CategoryEnumeration,
		fmt.Sprintf("value %s is not element of enumeration %s", quote(value), quote(enumeration)),
	).WithElement(enumeration).
		WithActual(value)
}

// NewEmptyEnumeration creates an ENM801 error
func NewEmptyEnumeration(enumeration string) *ModelError {
	return newError(
		ErrEmptyEnumeration,
		"empty_enumeration",
		CategoryEnumeration,
		fmt.Sprintf("enumeration %s must define at least one value", quote(enumeration)),
	).WithElement(enumeration)
}

// NewDuplicateEnumValue creates an ENM802 error
func NewDuplicateEnumValue(value, enumeration string) *ModelError {
	return newError(
		ErrDuplicateEnumValue,
		"duplicate_enum_value",
		CategoryEnumeration,
		fmt.Sprintf("duplicate value %s in enumeration %s", quote(value), quote(enumeration)),
	).WithElement(enumeration)
}
