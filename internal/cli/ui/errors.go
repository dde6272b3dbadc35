package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/fatih/color"
)

// Level is the severity of a banner
type Level int

const (
	LevelError Level = iota
	LevelWarning
	LevelInfo
)

// Banner describes a multi-line message block
//
//	❌ CLASSIFIER NOT FOUND: Bok
//	   classifier 'Bok' does not exist
//
//	   Did you mean: Book, Box?
//
//	   → See all classifiers: metamodel inspect
type Banner struct {
	Level       Level
	Context     string
	Headline    string
	Details     []string
	Suggestions []string
	Hints       []string
	NoColor     bool
}

// String renders the banner
func (b Banner) String() string {
	var sb strings.Builder

	var head, body *color.Color
	var symbol string
	switch b.Level {
	case LevelWarning:
		head, body, symbol = paint(b.NoColor, color.FgYellow, color.Bold), paint(b.NoColor, color.FgYellow), "⚠️"
	case LevelInfo:
		head, body, symbol = paint(b.NoColor, color.FgCyan, color.Bold), paint(b.NoColor, color.FgCyan), "ℹ️"
	default:
		head, body, symbol = paint(b.NoColor, color.FgRed, color.Bold), paint(b.NoColor, color.FgRed), "❌"
	}

	if b.Context != "" {
		head.Fprintf(&sb, "%s %s: %s\n", symbol, strings.ToUpper(b.Context), b.Headline)
	} else {
		head.Fprintf(&sb, "%s %s\n", symbol, b.Headline)
	}
	for _, d := range b.Details {
		body.Fprintf(&sb, "   %s\n", d)
	}
	if len(b.Suggestions) > 0 {
		sb.WriteString("\n")
		paint(b.NoColor, color.FgYellow).Fprintf(&sb, "   Did you mean: %s?\n", strings.Join(b.Suggestions, ", "))
	}
	if len(b.Hints) > 0 {
		sb.WriteString("\n")
		hint := paint(b.NoColor, color.FgCyan)
		for _, h := range b.Hints {
			hint.Fprintf(&sb, "   → %s\n", h)
		}
	}
	return sb.String()
}

// NotFound builds the banner for a failed lookup. candidates are the names
// that exist; close ones are offered as suggestions.
func NotFound(kind, name string, err error, candidates []string, noColor bool) Banner {
	return Banner{
		Context:     kind + " not found",
		Headline:    name,
		Details:     []string{err.Error()},
		Suggestions: FindSimilar(name, candidates),
		Hints:       []string{"See all elements: metamodel inspect"},
		NoColor:     noColor,
	}
}

// CheckFailed builds the banner for a definition that did not build. Engine
// errors contribute their code, expectation and suggestion.
func CheckFailed(path string, err error, noColor bool) Banner {
	b := Banner{
		Context:  "check failed",
		Headline: path,
		Details:  []string{err.Error()},
		Hints:    []string{"Get help: metamodel check --help"},
		NoColor:  noColor,
	}
	me, ok := errors.As(err)
	if !ok {
		return b
	}
	b.Context = fmt.Sprintf("%s %s", me.Category, me.Code)
	if me.Element != "" {
		b.Details = append(b.Details, "element: "+me.Element)
	}
	if me.Expected != "" {
		b.Details = append(b.Details, "expected: "+me.Expected)
	}
	if me.Actual != "" {
		b.Details = append(b.Details, "actual: "+me.Actual)
	}
	if me.Suggestion != "" {
		b.Hints = append([]string{me.Suggestion}, b.Hints...)
	}
	return b
}

// WriteBanner writes b to w
func WriteBanner(w io.Writer, b Banner) {
	fmt.Fprint(w, b.String())
}

// WriteSuccess writes a green check line
func WriteSuccess(w io.Writer, message string, noColor bool) {
	paint(noColor, color.FgGreen, color.Bold).Fprintf(w, "✓ %s\n", message)
}
