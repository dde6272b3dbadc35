package errors

import "fmt"

// Naming error codes (NAM100-199)
const (
	// ErrDuplicateClassifier indicates a classifier name already used in a model
	ErrDuplicateClassifier ErrorCode = "NAM100"
	// ErrDuplicateObject indicates an object name already used in a model
	ErrDuplicateObject ErrorCode = "NAM101"
	// ErrDuplicateAttribute indicates an attribute name already defined on the same classifier
	ErrDuplicateAttribute ErrorCode = "NAM102"
	// ErrDuplicateRole indicates both ends of an association share a role name
	ErrDuplicateRole ErrorCode = "NAM103"
	// ErrDuplicateEnumeration indicates an enumeration name already used in a model
	ErrDuplicateEnumeration ErrorCode = "NAM104"
)

// NewDuplicateClassifier creates a NAM100 error
func NewDuplicateClassifier(name, model string) *ModelError {
	return newError(
		ErrDuplicateClassifier,
		"duplicate_classifier",
		CategoryNaming,
		fmt.Sprintf("classifier %s already exists in model %s", quote(name), quote(model)),
	).WithElement(name).
		WithSuggestion("Classifier names are unique per model; pick another name or pass an empty name to auto-generate one")
}

// NewDuplicateObject creates a NAM101 error
func NewDuplicateObject(name, model string) *ModelError {
	return newError(
		ErrDuplicateObject,
		"duplicate_object",
		CategoryNaming,
		fmt.Sprintf("object %s already exists in model %s", quote(name), quote(model)),
	).WithElement(name)
}

// NewDuplicateAttribute creates a NAM102 error
func NewDuplicateAttribute(name, classifier string) *ModelError {
	return newError(
		ErrDuplicateAttribute,
		"duplicate_attribute",
		CategoryNaming,
		fmt.Sprintf("duplicate attribute name: %s", quote(name)),
	).WithElement(classifier).
		WithSuggestion("A subclass may shadow an inherited attribute, but a classifier cannot define the same name twice")
}

// NewDuplicateRole creates a NAM103 error
func NewDuplicateRole(role string) *ModelError {
	return newError(
		ErrDuplicateRole,
		"duplicate_role",
		CategoryNaming,
		fmt.Sprintf("duplicate role name %s in association", quote(role)),
	).WithElement(role).
		WithSuggestion("Self-associations need an explicit role name on at least one end")
}

// NewDuplicateEnumeration creates a NAM104 error
func NewDuplicateEnumeration(name, model string) *ModelError {
	return newError(
		ErrDuplicateEnumeration,
		"duplicate_enumeration",
		CategoryNaming,
		fmt.Sprintf("enumeration %s already exists in model %s", quote(name), quote(model)),
	).WithElement(name)
}
