package errors

import "fmt"

// Reference error codes (REF200-299)
const (
	// ErrUnknownClassifier indicates a classifier name that the registry cannot resolve
	ErrUnknownClassifier ErrorCode = "REF200"
	// ErrUnknownObject indicates an object name that the registry cannot resolve
	ErrUnknownObject ErrorCode = "REF201"
	// ErrUnknownEnumeration indicates an enumeration name that the registry cannot resolve
	ErrUnknownEnumeration ErrorCode = "REF202"
	// ErrUnknownAssociation indicates an association name that the registry cannot resolve
	ErrUnknownAssociation ErrorCode = "REF203"
	// ErrUnknownObjectAttribute indicates an unqualified attribute missing from an object's resolution path
	ErrUnknownObjectAttribute ErrorCode = "REF204"
	// ErrUnknownClassifierAttribute indicates a qualified attribute missing from the named classifier
	ErrUnknownClassifierAttribute ErrorCode = "REF205"
	// ErrEndInUse indicates an association end already owned by another association
	ErrEndInUse ErrorCode = "REF206"
	// ErrUnknownRole indicates a role name not reachable from an object's type
	ErrUnknownRole ErrorCode = "REF207"
	// ErrNotLinked indicates removal of a link that does not exist
	ErrNotLinked ErrorCode = "REF208"
	// ErrDeletedElement indicates an operation on a deleted element
	ErrDeletedElement ErrorCode = "REF209"
	// ErrForeignEnd indicates an association end that does not belong to the addressed association
	ErrForeignEnd ErrorCode = "REF210"
	// ErrNotClassifierOf indicates a qualified access through a classifier outside an object's type hierarchy
	ErrNotClassifierOf ErrorCode = "REF211"
)

// NewUnknownClassifier creates a REF200 error
func NewUnknownClassifier(name string) *ModelError {
	return newError(
		ErrUnknownClassifier,
		"unknown_classifier",
		CategoryReference,
		fmt.Sprintf("classifier %s does not exist", quote(name)),
	).WithElement(name)
}

// NewUnknownObject creates a REF201 error
func NewUnknownObject(name string) *ModelError {
	return newError(
		ErrUnknownObject,
		"unknown_object",
		CategoryReference,
		fmt.Sprintf("object %s unknown", quote(name)),
	).WithElement(name)
}

// NewUnknownEnumeration creates a REF202 error
func NewUnknownEnumeration(name string) *ModelError {
	return newError(
		ErrUnknownEnumeration,
		"unknown_enumeration",
		CategoryReference,
		fmt.Sprintf("enumeration %s does not exist", quote(name)),
	).WithElement(name)
}

// NewUnknownAssociation creates a REF203 error
func NewUnknownAssociation(name string) *ModelError {
	return newError(
		ErrUnknownAssociation,
		"unknown_association",
		CategoryReference,
		fmt.Sprintf("association %s does not exist", quote(name)),
	).WithElement(name)
}

// NewUnknownObjectAttribute creates a REF204 error
func NewUnknownObjectAttribute(attribute, object string) *ModelError {
	return newError(
		ErrUnknownObjectAttribute,
		"unknown_object_attribute",
		CategoryReference,
		fmt.Sprintf("attribute %s unknown for object %s", quote(attribute), quote(object)),
	).WithElement(object)
}

// NewUnknownClassifierAttribute creates a REF205 error
func NewUnknownClassifierAttribute(attribute, classifier string) *ModelError {
	return newError(
		ErrUnknownClassifierAttribute,
		"unknown_classifier_attribute",
		CategoryReference,
		fmt.Sprintf("attribute %s unknown for %s", quote(attribute), quote(classifier)),
	).WithElement(classifier)
}

// NewEndInUse creates a REF206 error
func NewEndInUse(role, association string) *ModelError {
	return newError(
		ErrEndInUse,
		"end_in_use",
		CategoryReference,
		fmt.Sprintf("association end %s is already used in association %s", quote(role), quote(association)),
	).WithElement(role).
		WithSuggestion("Create a fresh end with NewEnd for every association")
}

// NewUnknownRole creates a REF207 error
func NewUnknownRole(role, object string) *ModelError {
	return newError(
		ErrUnknownRole,
		"unknown_role",
		CategoryReference,
		fmt.Sprintf("role %s unknown for object %s", quote(role), quote(object)),
	).WithElement(object)
}

// NewNotLinked creates a REF208 error
func NewNotLinked(target, source string) *ModelError {
	return newError(
		ErrNotLinked,
		"not_linked",
		CategoryReference,
		fmt.Sprintf("%s is not linked to %s", quote(target), quote(source)),
	).WithElement(source)
}

// NewDeletedElement creates a REF209 error
func NewDeletedElement(name string) *ModelError {
	return newError(
		ErrDeletedElement,
		"deleted_element",
		CategoryReference,
		fmt.Sprintf("%s has been deleted", quote(name)),
	).WithElement(name)
}

// NewForeignEnd creates a REF210 error
func NewForeignEnd(role, association string) *ModelError {
	return newError(
		ErrForeignEnd,
		"foreign_end",
		CategoryReference,
		fmt.Sprintf("association end %s does not belong to association %s", quote(role), quote(association)),
	).WithElement(role)
}

// NewNotClassifierOf creates a REF211 error
func NewNotClassifierOf(classifier, object string) *ModelError {
	return newError(
		ErrNotClassifierOf,
		"not_classifier_of",
		CategoryReference,
		fmt.Sprintf("%s is not a classifier of %s", quote(classifier), quote(object)),
	).WithElement(object)
}
