package introspect

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/conduit-lang/metamodel/internal/cli/ui"
)

// Formatter writes reports in one output format
type Formatter interface {
	Format(report any) error
}

// NewFormatter returns the formatter for format ("text" or "json")
func NewFormatter(format string, w io.Writer, noColor bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return &JSONFormatter{writer: w}, nil
	case "text", "":
		return &TextFormatter{writer: w, noColor: noColor}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: text, json)", format)
	}
}

// JSONFormatter writes reports as indented JSON
type JSONFormatter struct {
	writer io.Writer
}

// Format encodes report
func (f *JSONFormatter) Format(report any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

// TextFormatter writes reports as colored terminal text
type TextFormatter struct {
	writer  io.Writer
	noColor bool
}

// Format renders report. Unknown report types are printed with %+v.
func (f *TextFormatter) Format(report any) error {
	switch r := report.(type) {
	case ModelReport:
		f.model(r)
	case ClassifierReport:
		f.classifier(r)
	case ObjectReport:
		f.object(r)
	case AssociationReport:
		f.association(r)
	case []string:
		for _, line := range r {
			fmt.Fprintln(f.writer, line)
		}
	default:
		fmt.Fprintf(f.writer, "%+v\n", report)
	}
	return nil
}

func (f *TextFormatter) model(r ModelReport) {
	ui.Header(f.writer, fmt.Sprintf("MODEL %s", r.Name), f.noColor)
	if len(r.Imports) > 0 {
		fmt.Fprintf(f.writer, "imports: %s\n", strings.Join(r.Imports, ", "))
	}
	fmt.Fprintln(f.writer)

	if len(r.Classifiers) > 0 {
		t := ui.NewTable(f.writer, f.noColor, "Classifier", "Kind", "Superclasses", "Attributes", "Objects")
		for _, c := range r.Classifiers {
			t.AddRow(c.Name, c.Kind, joinOrDash(c.Superclasses), fmt.Sprint(c.Attributes), fmt.Sprint(c.Objects))
		}
		t.Render()
		fmt.Fprintln(f.writer)
	}

	enums := ui.NewSection(f.writer, "Enumerations", f.noColor)
	for _, e := range r.Enums {
		enums.AddLine("%s: %s", e.Name, strings.Join(e.Values, ", "))
	}
	enums.Render()

	if len(r.Associations) > 0 {
		t := ui.NewTable(f.writer, f.noColor, "Association", "Source", "Target", "Links")
		for _, a := range r.Associations {
			t.AddRow(a.Name, a.Source, a.Target, fmt.Sprint(a.Links))
		}
		t.Render()
		fmt.Fprintln(f.writer)
	}

	if len(r.Objects) > 0 {
		t := ui.NewTable(f.writer, f.noColor, "Object", "Classifier")
		for _, o := range r.Objects {
			t.AddRow(o.Name, o.Classifier)
		}
		t.Render()
	}
}

func (f *TextFormatter) classifier(r ClassifierReport) {
	ui.Header(f.writer, fmt.Sprintf("%s %s", strings.ToUpper(r.Kind), r.Name), f.noColor)

	kv := ui.NewKeyValueTable(f.writer, f.noColor)
	if r.Metaclass != "" {
		kv.AddRow("Metaclass", r.Metaclass)
	}
	kv.AddRow("Superclasses", joinOrDash(r.Superclasses))
	kv.AddRow("Subclasses", joinOrDash(r.Subclasses))
	kv.AddRow("Resolution path", strings.Join(r.ResolutionPath, " → "))
	if r.Kind == "stereotype" {
		kv.AddRow("Extends", joinOrDash(r.Extends))
	}
	if len(r.ExtendedBy) > 0 {
		kv.AddRow("Extended by", strings.Join(r.ExtendedBy, ", "))
	}
	kv.Render()
	fmt.Fprintln(f.writer)

	attrs := ui.NewSection(f.writer, "Attributes", f.noColor)
	for _, a := range r.Attributes {
		line := fmt.Sprintf("%s: %s = %s (%s)", a.Name, a.Type, Display(a.Default), a.Owner)
		if a.Shadowed {
			line += " shadowed"
		}
		attrs.AddLine("%s", line)
	}
	attrs.Render()

	ends := ui.NewSection(f.writer, "Association ends", f.noColor)
	for _, e := range r.Ends {
		ends.AddLine("%s", endLine(e))
	}
	ends.Render()

	f.values("Values", r.Values)
	f.stereotypes(r.Stereotypes, r.TaggedValues)

	objects := ui.NewSection(f.writer, "Objects", f.noColor)
	for _, o := range r.Objects {
		objects.AddLine("%s", o)
	}
	objects.Render()
}

func (f *TextFormatter) object(r ObjectReport) {
	title := fmt.Sprintf("OBJECT %s : %s", r.Name, r.Classifier)
	if r.Classifier == "" {
		title = fmt.Sprintf("OBJECT %s", r.Name)
	}
	ui.Header(f.writer, title, f.noColor)
	fmt.Fprintln(f.writer)

	f.values("Values", r.Values)
	f.stereotypes(r.Stereotypes, r.TaggedValues)

	links := ui.NewSection(f.writer, "Links", f.noColor)
	for _, l := range r.Links {
		links.AddLine("%s (%s): %s", l.Role, l.Association, strings.Join(l.Objects, ", "))
	}
	links.Render()
}

func (f *TextFormatter) association(r AssociationReport) {
	ui.Header(f.writer, fmt.Sprintf("%s %s", strings.ToUpper(r.Kind), r.Name), f.noColor)

	kv := ui.NewKeyValueTable(f.writer, f.noColor)
	kv.AddRow("Source", endLine(r.Source))
	kv.AddRow("Target", endLine(r.Target))
	if len(r.ExtendedBy) > 0 {
		kv.AddRow("Extended by", strings.Join(r.ExtendedBy, ", "))
	}
	kv.Render()
	fmt.Fprintln(f.writer)

	links := ui.NewSection(f.writer, "Links", f.noColor)
	for _, l := range r.Links {
		links.AddLine("%s", strings.Join(l, " -> "))
	}
	links.Render()
}

func (f *TextFormatter) values(title string, list []ValueReport) {
	s := ui.NewSection(f.writer, title, f.noColor)
	for _, v := range list {
		s.AddLine("%s = %s (%s)", v.Name, Display(v.Value), v.Owner)
	}
	s.Render()
}

func (f *TextFormatter) stereotypes(applied []string, tagged []ValueReport) {
	if len(applied) == 0 {
		return
	}
	s := ui.NewSection(f.writer, "Stereotypes", f.noColor)
	s.AddLine("«%s»", strings.Join(applied, "» «"))
	for _, v := range tagged {
		s.AddLine("%s = %s (%s)", v.Name, Display(v.Value), v.Owner)
	}
	s.Render()
}

func endLine(e EndReport) string {
	line := fmt.Sprintf("%s: %s[%s]", e.Role, e.Classifier, e.Multiplicity)
	if e.Association != "" {
		line += " via " + e.Association
	}
	if !e.Navigable {
		line += " (not navigable)"
	}
	return line
}

func joinOrDash(list []string) string {
	if len(list) == 0 {
		return "-"
	}
	return strings.Join(list, ", ")
}
