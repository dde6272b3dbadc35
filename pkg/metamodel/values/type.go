package values

import (
	"fmt"
	"math"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
)

// Classifier is the declared type of object-kind values. Classifies reports
// whether v is an object whose type is the classifier or one of its
// descendants.
type Classifier interface {
	Name() string
	Classifies(v any) bool
}

// Type pairs a value kind with the type reference enum and object kinds need
type Type struct {
	Kind  Kind
	Enum  Enumeration
	Class Classifier
}

// Of returns the type descriptor for a primitive kind
func Of(kind Kind) Type {
	return Type{Kind: kind}
}

// EnumOf returns an enum-kind type backed by e
func EnumOf(e Enumeration) Type {
	return Type{Kind: KindEnum, Enum: e}
}

// ObjectOf returns an object-kind type whose values must be instances of c
func ObjectOf(c Classifier) Type {
	return Type{Kind: KindObject, Class: c}
}

// String returns the string representation of the type
func (t Type) String() string {
	switch {
	case t.Kind == KindEnum && t.Enum != nil:
		return fmt.Sprintf("enum<%s>", t.Enum.Name())
	case t.Kind == KindObject && t.Class != nil:
		return fmt.Sprintf("object<%s>", t.Class.Name())
	default:
		return t.Kind.String()
	}
}

// Validate checks that the descriptor is complete for its kind
func (t Type) Validate(attribute string) error {
	switch {
	case t.Kind.IsPrimitive():
		return nil
	case t.Kind == KindEnum:
		if t.Enum == nil {
			return errors.NewMissingTypeReference(attribute, t.Kind.String())
		}
		return nil
	case t.Kind == KindObject:
		if t.Class == nil {
			return errors.NewMissingTypeReference(attribute, t.Kind.String())
		}
		return nil
	default:
		return errors.NewUnknownValueKind(t.Kind.String())
	}
}

// Check validates v for the attribute named attribute. The Go type of v must
// match the kind exactly; nil is accepted for every kind and means no value.
func Check(attribute string, t Type, v any) error {
	if v == nil {
		return nil
	}

	switch t.Kind {
	case KindEnum:
		s, ok := v.(string)
		if !ok {
			return errors.NewValueKindMismatch(attribute, t.String(), describe(v))
		}
		if !t.Enum.Contains(s) {
			return errors.NewIllegalEnumValue(s, t.Enum.Name())
		}
		return nil
	case KindObject:
		named, ok := v.(interface{ Name() string })
		if !ok {
			return errors.NewValueKindMismatch(attribute, t.String(), describe(v))
		}
		if !t.Class.Classifies(v) {
			return errors.NewObjectTypeMismatch(named.Name(), t.Class.Name(), attribute)
		}
		return nil
	default:
		k, ok := KindOf(v)
		if !ok || k != t.Kind {
			return errors.NewValueKindMismatch(attribute, t.String(), describe(v))
		}
		return nil
	}
}

// Convert turns a loosely typed scalar, as produced by YAML or JSON decoders,
// into the exact Go type of a primitive or enum kind. It is meant for
// definition loaders; the engine itself never converts.
func Convert(attribute string, t Type, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}

	switch t.Kind {
	case KindBool:
		if b, ok := raw.(bool); ok {
			return b, nil
		}
	case KindString, KindEnum:
		if s, ok := raw.(string); ok {
			return s, Check(attribute, t, s)
		}
	case KindChar:
		if s, ok := raw.(string); ok && len([]rune(s)) == 1 {
			return Char([]rune(s)[0]), nil
		}
	case KindInt, KindLong, KindShort, KindByte:
		n, ok := integral(raw)
		if !ok {
			break
		}
		switch t.Kind {
		case KindInt:
			if n >= math.MinInt32 && n <= math.MaxInt32 {
				return int(n), nil
			}
		case KindLong:
			return n, nil
		case KindShort:
			if n >= math.MinInt16 && n <= math.MaxInt16 {
				return int16(n), nil
			}
		case KindByte:
			if n >= 0 && n <= math.MaxUint8 {
				return byte(n), nil
			}
		}
	case KindDouble, KindFloat:
		f, ok := floating(raw)
		if !ok {
			break
		}
		if t.Kind == KindFloat {
			return float32(f), nil
		}
		return f, nil
	}
	return nil, errors.NewValueKindMismatch(attribute, t.String(), describe(raw))
}

func integral(raw any) (int64, bool) {
	switch n := raw.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case int32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case float64:
		if n == math.Trunc(n) {
			return int64(n), true
		}
	}
	return 0, false
}

func floating(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
