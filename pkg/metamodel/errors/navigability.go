package errors

import "fmt"

// Navigability error codes (NAV500-599)
const (
	// ErrNotNavigable indicates access through a non-navigable association end
	ErrNotNavigable ErrorCode = "NAV500"
)

// NewNotNavigable creates a NAV500 error
func NewNotNavigable(role, object string) *ModelError {
	return newError(
		ErrNotNavigable,
		"not_navigable",
		CategoryNavigability,
		fmt.Sprintf("association end %s is not navigable and thus cannot be accessed from object %s", quote(role), quote(object)),
	).WithElement(object)
}
