package errors

import "fmt"

// Extension error codes (EXT700-799)
const (
	// ErrNoExtension indicates a stereotype applied to an element none of whose types it extends
	ErrNoExtension ErrorCode = "EXT700"
	// ErrStereotypeApplied indicates a duplicate stereotype application
	ErrStereotypeApplied ErrorCode = "EXT701"
	// ErrStereotypeNotApplied indicates removal of a stereotype that is not applied
	ErrStereotypeNotApplied ErrorCode = "EXT702"
	// ErrAlreadyExtended indicates a duplicate extension detected by reference
	ErrAlreadyExtended ErrorCode = "EXT703"
	// ErrAlreadyExtendedByName indicates a duplicate extension detected by name
	ErrAlreadyExtendedByName ErrorCode = "EXT704"
	// ErrNotExtended indicates removal of an extension that does not exist
	ErrNotExtended ErrorCode = "EXT705"
	// ErrNotExtendable indicates an extension target that is neither a metaclass nor an association
	ErrNotExtendable ErrorCode = "EXT706"
	// ErrUnknownTaggedValue indicates an unqualified tagged value missing from every applied stereotype
	ErrUnknownTaggedValue ErrorCode = "EXT707"
	// ErrNotStereotypeOfElement indicates a qualified tagged value through a stereotype that is not applied
	ErrNotStereotypeOfElement ErrorCode = "EXT708"
	// ErrUnknownStereotypeTaggedValue indicates a qualified tagged value missing from the stereotype's path
	ErrUnknownStereotypeTaggedValue ErrorCode = "EXT709"
)

// NewNoExtension creates an EXT700 error
func NewNoExtension(stereotype, element string) *ModelError {
	return newError(
		ErrNoExtension,
		"no_extension",
		CategoryExtension,
		fmt.Sprintf("stereotype %s cannot be added to %s: no extension by this stereotype found", quote(stereotype), quote(element)),
	).WithElement(element).
		WithSuggestion("The stereotype or one of its superclasses must extend the element's type or one of its superclasses")
}

// NewStereotypeApplied creates an EXT701 error
func NewStereotypeApplied(stereotype, element string) *ModelError {
	return newError(
		ErrStereotypeApplied,
		"stereotype_applied",
		CategoryExtension,
		fmt.Sprintf("stereotype %s is already applied to %s", quote(stereotype), quote(element)),
	).WithElement(element)
}

// NewStereotypeNotApplied creates an EXT702 error
func NewStereotypeNotApplied(stereotype, element string) *ModelError {
	return newError(
		ErrStereotypeNotApplied,
		"stereotype_not_applied",
		CategoryExtension,
		fmt.Sprintf("stereotype %s is not applied to %s", quote(stereotype), quote(element)),
	).WithElement(element)
}

// NewAlreadyExtended creates an EXT703 error
func NewAlreadyExtended(element, stereotype string) *ModelError {
	return newError(
		ErrAlreadyExtended,
		"already_extended",
		CategoryExtension,
		fmt.Sprintf("%s is already extended by stereotype %s", quote(element), quote(stereotype)),
	).WithElement(element)
}

// NewAlreadyExtendedByName creates an EXT704 error
func NewAlreadyExtendedByName(element, stereotype string) *ModelError {
	return newError(
		ErrAlreadyExtendedByName,
		"already_extended_by_name",
		CategoryExtension,
		fmt.Sprintf("%s is already extended by a stereotype named %s", quote(element), quote(stereotype)),
	).WithElement(element)
}

// NewNotExtended creates an EXT705 error
func NewNotExtended(element, stereotype string) *ModelError {
	return newError(
		ErrNotExtended,
		"not_extended",
		CategoryExtension,
		fmt.Sprintf("%s is not extended by stereotype %s", quote(element), quote(stereotype)),
	).WithElement(element)
}

// NewNotExtendable creates an EXT706 error
func NewNotExtendable(element string) *ModelError {
	return newError(
		ErrNotExtendable,
		"not_extendable",
		CategoryExtension,
		fmt.Sprintf("%s cannot be extended by a stereotype", quote(element)),
	).WithElement(element).
		WithSuggestion("Stereotypes extend metaclasses and associations")
}

// NewUnknownTaggedValue creates an EXT707 error
func NewUnknownTaggedValue(name string) *ModelError {
	return newError(
		ErrUnknownTaggedValue,
		"unknown_tagged_value",
		CategoryExtension,
		fmt.Sprintf("tagged value %s unknown", quote(name)),
	)
}

// NewNotStereotypeOfElement creates an EXT708 error
func NewNotStereotypeOfElement(stereotype string) *ModelError {
	return newError(
		ErrNotStereotypeOfElement,
		"not_stereotype_of_element",
		CategoryExtension,
		fmt.Sprintf("%s is not a stereotype of element", quote(stereotype)),
	).WithElement(stereotype)
}

// NewUnknownStereotypeTaggedValue creates an EXT709 error
func NewUnknownStereotypeTaggedValue(name, stereotype string) *ModelError {
	return newError(
		ErrUnknownStereotypeTaggedValue,
		"unknown_stereotype_tagged_value",
		CategoryExtension,
		fmt.Sprintf("tagged value %s unknown for stereotype %s", quote(name), quote(stereotype)),
	).WithElement(stereotype)
}
