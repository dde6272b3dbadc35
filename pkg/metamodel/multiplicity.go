package metamodel

import (
	"strconv"
	"strings"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
)

// Unbounded is the upper bound of a "*" multiplicity
const Unbounded = -1

// Multiplicity bounds the number of objects linked at an association end
type Multiplicity struct {
	Lower int
	Upper int
	text  string
}

// ParseMultiplicity parses "n", "*", "n..m" and "n..*"
func ParseMultiplicity(s string) (Multiplicity, error) {
	text := strings.TrimSpace(s)
	if text == "*" {
		return Multiplicity{Lower: 0, Upper: Unbounded, text: text}, nil
	}

	lowerText, upperText, ranged := strings.Cut(text, "..")
	lower, err := strconv.Atoi(strings.TrimSpace(lowerText))
	if err != nil || lower < 0 {
		return Multiplicity{}, errors.NewMalformedMultiplicity(s)
	}
	if !ranged {
		return Multiplicity{Lower: lower, Upper: lower, text: text}, nil
	}

	upperText = strings.TrimSpace(upperText)
	if upperText == "*" {
		return Multiplicity{Lower: lower, Upper: Unbounded, text: text}, nil
	}
	upper, err := strconv.Atoi(upperText)
	if err != nil || upper < lower {
		return Multiplicity{}, errors.NewMalformedMultiplicity(s)
	}
	return Multiplicity{Lower: lower, Upper: upper, text: text}, nil
}

// String returns the multiplicity as it was written, or a canonical form
func (m Multiplicity) String() string {
	if m.text != "" {
		return m.text
	}
	switch {
	case m.Lower == 0 && m.Upper == Unbounded:
		return "*"
	case m.Upper == Unbounded:
		return strconv.Itoa(m.Lower) + "..*"
	case m.Lower == m.Upper:
		return strconv.Itoa(m.Lower)
	default:
		return strconv.Itoa(m.Lower) + ".." + strconv.Itoa(m.Upper)
	}
}

// Allows reports whether n satisfies both bounds
func (m Multiplicity) Allows(n int) bool {
	return n >= m.Lower && m.AllowsUpper(n)
}

// AllowsUpper reports whether n satisfies the upper bound
func (m Multiplicity) AllowsUpper(n int) bool {
	return m.Upper == Unbounded || n <= m.Upper
}
