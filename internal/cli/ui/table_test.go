package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true, "Name", "Kind", "Attributes")
	table.AddRow("Book", "class", "3")
	table.AddRow("Entity", "metaclass")
	table.Render()

	want := strings.Join([]string{
		"Name    Kind       Attributes",
		"──────  ─────────  ──────────",
		"Book    class      3",
		"Entity  metaclass",
		"",
	}, "\n")
	if got := buf.String(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
}

func TestTableWithoutHeaders(t *testing.T) {
	var buf bytes.Buffer
	table := NewTable(&buf, true)
	table.AddRow("ignored")
	table.Render()

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestKeyValueTable(t *testing.T) {
	var buf bytes.Buffer
	kv := NewKeyValueTable(&buf, true)
	kv.AddRow("Kind", "class")
	kv.AddRow("Metaclass", "Entity")
	kv.Render()

	want := "Kind:      class\nMetaclass: Entity\n"
	if got := buf.String(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestSection(t *testing.T) {
	var buf bytes.Buffer
	s := NewSection(&buf, "Attributes", true)
	s.AddLine("%s: %s", "title", "string")
	s.Render()

	want := "Attributes\n  title: string\n\n"
	if got := buf.String(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}

	buf.Reset()
	NewSection(&buf, "Empty", true).Render()
	if buf.Len() != 0 {
		t.Errorf("empty section rendered %q", buf.String())
	}
}

func TestHeader(t *testing.T) {
	var buf bytes.Buffer
	Header(&buf, "Book", true)

	if got := buf.String(); got != "Book\n────\n" {
		t.Errorf("Header() = %q", got)
	}
}
