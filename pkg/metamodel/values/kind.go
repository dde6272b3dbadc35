// Package values implements value typing for attribute definitions and
// tagged values: the set of value kinds, type descriptors that pair a kind
// with its type reference, enumerations, and exact-kind value validation.
package values

import (
	"fmt"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
)

// Kind represents the kind of value an attribute holds
type Kind int

const (
	KindBool Kind = iota
	KindInt
	KindLong
	KindDouble
	KindFloat
	KindChar
	KindByte
	KindShort
	KindString
	KindEnum
	KindObject
)

// Char is the Go representation of char-kind values. It is a distinct type so
// that char values are never confused with int or long values.
type Char rune

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindLong:
		return "long"
	case KindDouble:
		return "double"
	case KindFloat:
		return "float"
	case KindChar:
		return "char"
	case KindByte:
		return "byte"
	case KindShort:
		return "short"
	case KindString:
		return "string"
	case KindEnum:
		return "enum"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// ParseKind converts a string to a Kind
func ParseKind(s string) (Kind, error) {
	switch s {
	case "bool":
		return KindBool, nil
	case "int":
		return KindInt, nil
	case "long":
		return KindLong, nil
	case "double":
		return KindDouble, nil
	case "float":
		return KindFloat, nil
	case "char":
		return KindChar, nil
	case "byte":
		return KindByte, nil
	case "short":
		return KindShort, nil
	case "string":
		return KindString, nil
	case "enum":
		return KindEnum, nil
	case "object":
		return KindObject, nil
	default:
		return 0, errors.NewUnknownValueKind(s)
	}
}

// IsPrimitive returns true for kinds validated purely by Go type
func (k Kind) IsPrimitive() bool {
	return k >= KindBool && k <= KindString
}

// KindOf reports the primitive kind that v's Go type represents
func KindOf(v any) (Kind, bool) {
	switch v.(type) {
	case bool:
		return KindBool, true
	case int:
		return KindInt, true
	case int64:
		return KindLong, true
	case float64:
		return KindDouble, true
	case float32:
		return KindFloat, true
	case Char:
		return KindChar, true
	case byte:
		return KindByte, true
	case int16:
		return KindShort, true
	case string:
		return KindString, true
	default:
		return 0, false
	}
}

// describe names the kind of v for error reporting
func describe(v any) string {
	if k, ok := KindOf(v); ok {
		return k.String()
	}
	if n, ok := v.(interface{ Name() string }); ok {
		return fmt.Sprintf("object %s", n.Name())
	}
	return fmt.Sprintf("%T", v)
}
