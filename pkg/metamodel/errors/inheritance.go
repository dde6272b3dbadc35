package errors

import "fmt"

// Inheritance error codes (INH600-699)
const (
	// ErrAlreadySuperclass indicates a duplicate direct superclass edge
	ErrAlreadySuperclass ErrorCode = "INH600"
	// ErrNotSuperclass indicates removal of an absent superclass edge
	ErrNotSuperclass ErrorCode = "INH601"
	// ErrSuperclassKind indicates a superclass of a different classifier kind
	ErrSuperclassKind ErrorCode = "INH602"
	// ErrInheritanceCycle indicates an edge that would make a classifier its own ancestor
	ErrInheritanceCycle ErrorCode = "INH603"
)

// NewAlreadySuperclass creates an INH600 error
func NewAlreadySuperclass(superclass, classifier string) *ModelError {
	return newError(
		ErrAlreadySuperclass,
		"already_superclass",
		CategoryInheritance,
		fmt.Sprintf("%s is already a superclass of %s", quote(superclass), quote(classifier)),
	).WithElement(classifier)
}

// NewNotSuperclass creates an INH601 error
func NewNotSuperclass(superclass, classifier string) *ModelError {
	return newError(
		ErrNotSuperclass,
		"not_superclass",
		CategoryInheritance,
		fmt.Sprintf("%s is not a superclass of %s", quote(superclass), quote(classifier)),
	).WithElement(classifier)
}

// NewSuperclassKind creates an INH602 error
func NewSuperclassKind(superclass, classifier, kind string) *ModelError {
	return newError(
		ErrSuperclassKind,
		"superclass_kind",
		CategoryInheritance,
		fmt.Sprintf("cannot add superclass %s to %s: superclass must be a %s", quote(superclass), quote(classifier), kind),
	).WithElement(classifier).
		WithExpected(kind).
		WithSuggestion("Metaclasses, classes and stereotypes only inherit from their own kind")
}

// NewInheritanceCycle creates an INH603 error
func NewInheritanceCycle(superclass, classifier string) *ModelError {
	return newError(
		ErrInheritanceCycle,
		"inheritance_cycle",
		CategoryInheritance,
		fmt.Sprintf("cannot add superclass %s to %s: inheritance cycle", quote(superclass), quote(classifier)),
	).WithElement(classifier)
}
