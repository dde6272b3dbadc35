package values

import (
	"slices"
	"strings"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
)

// Enumeration is an ordered set of legal string values. The engine only uses
// it to validate enum-kind values.
type Enumeration interface {
	Name() string
	Contains(value string) bool
}

// Enum is the standard Enumeration implementation
type Enum struct {
	name   string
	values []string
	index  map[string]struct{}
}

// NewEnum creates an enumeration with the given legal values in order
func NewEnum(name string, legal ...string) (*Enum, error) {
	if len(legal) == 0 {
		return nil, errors.NewEmptyEnumeration(name)
	}

	e := &Enum{
		name:   name,
		values: make([]string, 0, len(legal)),
		index:  make(map[string]struct{}, len(legal)),
	}
	for _, v := range legal {
		if _, exists := e.index[v]; exists {
			return nil, errors.NewDuplicateEnumValue(v, name)
		}
		e.index[v] = struct{}{}
		e.values = append(e.values, v)
	}
	return e, nil
}

// Name returns the enumeration name
func (e *Enum) Name() string {
	return e.name
}

// Values returns a copy of the legal values in declaration order
func (e *Enum) Values() []string {
	return slices.Clone(e.values)
}

// Contains reports whether value is legal for the enumeration
func (e *Enum) Contains(value string) bool {
	_, ok := e.index[value]
	return ok
}

// String renders the enumeration as Name{a, b, c}
func (e *Enum) String() string {
	return e.name + "{" + strings.Join(e.values, ", ") + "}"
}
