package errors

import (
	"fmt"
	"strings"
)

// FormatError returns a human-readable error message for terminal output
func FormatError(e *ModelError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s [%s]\n", severityIcon(e.Severity), categoryDisplayName(e.Category), e.Code)
	fmt.Fprintf(&b, "  %s\n", e.Message)

	if e.Expected != "" || e.Actual != "" {
		b.WriteString("\n")
		if e.Expected != "" {
			fmt.Fprintf(&b, "  Expected: %s\n", e.Expected)
		}
		if e.Actual != "" {
			fmt.Fprintf(&b, "  Actual:   %s\n", e.Actual)
		}
	}

	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n💡 %s\n", e.Suggestion)
	}

	return b.String()
}

// FormatCompact returns a compact one-line error format
func FormatCompact(e *ModelError) string {
	element := e.Element
	if element == "" {
		element = "<model>"
	}
	return fmt.Sprintf("%s: %s: %s [%s]", element, e.Severity, e.Message, e.Code)
}

// severityIcon returns the icon for a severity level
func severityIcon(severity ErrorSeverity) string {
	switch severity {
	case SeverityError:
		return "❌"
	case SeverityWarning:
		return "⚠️ "
	default:
		return "❓"
	}
}

// categoryDisplayName returns a human-readable category name
func categoryDisplayName(category ErrorCategory) string {
	switch category {
	case CategoryNaming:
		return "Naming Error"
	case CategoryReference:
		return "Reference Error"
	case CategoryType:
		return "Type Error"
	case CategoryMultiplicity:
		return "Multiplicity Error"
	case CategoryNavigability:
		return "Navigability Error"
	case CategoryInheritance:
		return "Inheritance Error"
	case CategoryExtension:
		return "Extension Error"
	case CategoryEnumeration:
		return "Enumeration Error"
	default:
		return "Model Error"
	}
}
