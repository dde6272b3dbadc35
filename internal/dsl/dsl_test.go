package dsl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/conduit-lang/metamodel/pkg/metamodel"
	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const libraryYAML = `
model: library
metaclasses:
  - name: Entity
    attributes:
      - name: table
        type: string
        default: items
stereotypes:
  - name: Persistent
    extends: [Entity, holds]
    attributes:
      - name: schema
        type: string
        default: public
      - name: cached
        type: bool
enums:
  - name: Genre
    values: [fiction, science, history]
classes:
  - name: Item
    metaclass: Entity
    attributes:
      - name: title
        type: string
      - name: pages
        type: int
        default: 100
  - name: Book
    metaclass: Entity
    superclasses: [Item]
    values:
      table: books
    stereotypes:
      - name: Persistent
        tags:
          schema: archive
          cached: true
    attributes:
      - name: genre
        type: enum
        ref: Genre
        default: fiction
      - name: pages
        type: long
      - name: related
        type: object
        ref: Book
  - name: Shelf
    metaclass: Entity
    attributes:
      - name: label
        type: char
associations:
  - name: holds
    source:
      class: Shelf
      role: shelf
      multiplicity: "1"
    target:
      class: Book
      role: books
      multiplicity: "0..3"
    composition: true
objects:
  - name: s1
    class: Shelf
    values:
      label: A
    links:
      books: [dune, cosmos]
  - name: dune
    class: Book
    values:
      title: Dune
      pages: 412
      "Item::pages": 7
      genre: fiction
  - name: cosmos
    class: Book
    values:
      title: Cosmos
      genre: science
      related: dune
    links:
      shelf: [s1]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func load(t *testing.T, content string) (*metamodel.Model, error) {
	t.Helper()
	path := writeFile(t, t.TempDir(), "model.yaml", content)
	return LoadFile(path, nil)
}

func TestParse(t *testing.T) {
	t.Run("empty document", func(t *testing.T) {
		def, err := Parse(nil)
		require.NoError(t, err)
		assert.Empty(t, def.Classes)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Parse([]byte("classes:\n  - name: A\n    metaklass: M\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse YAML")
		assert.Contains(t, err.Error(), "metaklass")
	})

	t.Run("model name from file", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "shop.yaml", "metaclasses:\n  - name: M\n")
		def, err := NewParser(path).Parse()
		require.NoError(t, err)
		assert.Equal(t, "shop", def.Model)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewParser(filepath.Join(t.TempDir(), "nope.yaml")).Parse()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read definition file")
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		def  Definition
		want string
	}{
		{
			name: "missing name",
			def:  Definition{Metaclasses: []Classifier{{}}},
			want: "metaclasses[0]: name is required",
		},
		{
			name: "bad name",
			def:  Definition{Metaclasses: []Classifier{{Name: "1st"}}},
			want: "metaclasses[0]: invalid name format '1st'",
		},
		{
			name: "class without metaclass",
			def:  Definition{Classes: []Class{{Classifier: Classifier{Name: "A"}}}},
			want: "classes[0]: metaclass is required",
		},
		{
			name: "unknown kind",
			def: Definition{Metaclasses: []Classifier{{
				Name:       "M",
				Attributes: []Attribute{{Name: "x", Type: "decimal"}},
			}}},
			want: "metaclasses[0].attributes[0]: unknown attribute kind: 'decimal'",
		},
		{
			name: "enum without ref",
			def: Definition{Metaclasses: []Classifier{{
				Name:       "M",
				Attributes: []Attribute{{Name: "x", Type: "enum"}},
			}}},
			want: "metaclasses[0].attributes[0]: type 'enum' requires ref",
		},
		{
			name: "duplicate attribute",
			def: Definition{Metaclasses: []Classifier{{
				Name:       "M",
				Attributes: []Attribute{{Name: "x", Type: "int"}, {Name: "x", Type: "int"}},
			}}},
			want: "metaclasses[0].attributes[1]: duplicate attribute name 'x'",
		},
		{
			name: "empty enum",
			def:  Definition{Enums: []Enum{{Name: "E"}}},
			want: "enums[0]: at least one value is required",
		},
		{
			name: "malformed multiplicity",
			def: Definition{Associations: []Association{{
				Source: End{Class: "A", Multiplicity: "1"},
				Target: End{Class: "B", Multiplicity: "2..1"},
			}}},
			want: "associations[0].target: malformed multiplicity: '2..1'",
		},
		{
			name: "aggregation and composition",
			def: Definition{Associations: []Association{{
				Source:      End{Class: "A", Multiplicity: "1"},
				Target:      End{Class: "B", Multiplicity: "*"},
				Aggregation: true,
				Composition: true,
			}}},
			want: "associations[0]: aggregation and composition are mutually exclusive",
		},
		{
			name: "object without class",
			def:  Definition{Objects: []Object{{Name: "o"}}},
			want: "objects[0]: class is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := NewValidator(&tt.def).Validate()
			require.NotEmpty(t, errs)
			assert.EqualError(t, errs[0], tt.want)
		})
	}

	t.Run("valid", func(t *testing.T) {
		def, err := Parse([]byte(libraryYAML))
		require.NoError(t, err)
		assert.Empty(t, NewValidator(def).Validate())
	})
}

func TestLoadFile(t *testing.T) {
	m, err := load(t, libraryYAML)
	require.NoError(t, err)
	assert.Equal(t, "library", m.Name())

	book, err := m.Class("Book")
	require.NoError(t, err)
	assert.Equal(t, []string{"Book", "Item"}, classifierNames(book.ResolutionPath()))

	dune, err := m.Object("dune")
	require.NoError(t, err)

	pages, err := dune.Value("pages")
	require.NoError(t, err)
	assert.Equal(t, int64(412), pages)

	item, err := m.Class("Item")
	require.NoError(t, err)
	shadowed, err := dune.ValueOf(item, "pages")
	require.NoError(t, err)
	assert.Equal(t, 7, shadowed)

	genre, err := dune.Value("genre")
	require.NoError(t, err)
	assert.Equal(t, "fiction", genre)

	cosmos, err := m.Object("cosmos")
	require.NoError(t, err)
	related, err := cosmos.Value("related")
	require.NoError(t, err)
	assert.Same(t, dune, related)

	s1, err := m.Object("s1")
	require.NoError(t, err)
	label, err := s1.Value("label")
	require.NoError(t, err)
	assert.Equal(t, values.Char('A'), label)

	books, err := s1.LinkedByRole("books")
	require.NoError(t, err)
	assert.Equal(t, []string{"dune", "cosmos"}, objectNames(books))

	holds, err := m.Association("holds")
	require.NoError(t, err)
	assert.True(t, holds.IsComposition())
	assert.Len(t, holds.Links(), 2)
}

func TestLoadFileStereotypes(t *testing.T) {
	m, err := load(t, libraryYAML)
	require.NoError(t, err)

	persistent, err := m.Stereotype("Persistent")
	require.NoError(t, err)
	assert.Len(t, persistent.Extended(), 2)

	book, err := m.Class("Book")
	require.NoError(t, err)
	schema, err := book.Object().TaggedValue("schema")
	require.NoError(t, err)
	assert.Equal(t, "archive", schema)
	cached, err := book.Object().TaggedValue("cached")
	require.NoError(t, err)
	assert.Equal(t, true, cached)

	item, err := m.Class("Item")
	require.NoError(t, err)
	assert.Empty(t, item.Object().AppliedStereotypes())
	table, err := book.Object().Value("table")
	require.NoError(t, err)
	assert.Equal(t, "books", table)
}

func TestLoadFileErrors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		code errors.ErrorCode
		want string
	}{
		{
			name: "unknown superclass",
			yaml: "metaclasses:\n  - name: M\nclasses:\n  - name: A\n    metaclass: M\n    superclasses: [Ghost]\n",
			code: errors.ErrUnknownClassifier,
			want: "A superclasses: classifier 'Ghost' does not exist",
		},
		{
			name: "class as metaclass",
			yaml: "metaclasses:\n  - name: M\nclasses:\n  - name: A\n    metaclass: M\n  - name: B\n    metaclass: A\n",
			code: errors.ErrWrongClassifierKind,
			want: "class B: 'A' is a class, not a metaclass",
		},
		{
			name: "illegal enum default",
			yaml: "enums:\n  - name: E\n    values: [a]\nmetaclasses:\n  - name: M\n    attributes:\n      - name: e\n        type: enum\n        ref: E\n        default: b\n",
			code: errors.ErrIllegalEnumValue,
			want: "M.e: value 'b' is not element of enumeration 'E'",
		},
		{
			name: "value kind mismatch",
			yaml: "metaclasses:\n  - name: M\nclasses:\n  - name: A\n    metaclass: M\n    attributes:\n      - name: n\n        type: int\nobjects:\n  - name: a\n    class: A\n    values:\n      n: lots\n",
			code: errors.ErrValueKindMismatch,
			want: "object a: value type for attribute 'n' does not match attribute type",
		},
		{
			name: "unknown attribute",
			yaml: "metaclasses:\n  - name: M\nclasses:\n  - name: A\n    metaclass: M\nobjects:\n  - name: a\n    class: A\n    values:\n      n: 1\n",
			code: errors.ErrUnknownObjectAttribute,
			want: "object a: attribute 'n' unknown for object 'a'",
		},
		{
			name: "stereotype without extension",
			yaml: "metaclasses:\n  - name: M\nstereotypes:\n  - name: S\nclasses:\n  - name: A\n    metaclass: M\n    stereotypes:\n      - name: S\n",
			code: errors.ErrNoExtension,
			want: "class A: stereotype 'S' cannot be added to 'A': no extension by this stereotype found",
		},
		{
			name: "unknown tag",
			yaml: "metaclasses:\n  - name: M\nstereotypes:\n  - name: S\n    extends: [M]\nclasses:\n  - name: A\n    metaclass: M\n    stereotypes:\n      - name: S\n        tags:\n          color: red\n",
			code: errors.ErrUnknownStereotypeTaggedValue,
			want: "class A: tagged value 'color' unknown for stereotype 'S'",
		},
		{
			name: "unknown role",
			yaml: "metaclasses:\n  - name: M\nclasses:\n  - name: A\n    metaclass: M\nobjects:\n  - name: a\n    class: A\n    links:\n      friends: [a]\n",
			code: errors.ErrUnknownRole,
			want: "object a: role 'friends' unknown for object 'a'",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := load(t, tt.yaml)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tt.code), "got %v", err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadFileLowerBound(t *testing.T) {
	_, err := load(t, `
metaclasses:
  - name: M
classes:
  - name: Order
    metaclass: M
  - name: Line
    metaclass: M
associations:
  - source: {class: Order, multiplicity: "1"}
    target: {class: Line, multiplicity: "1..*"}
objects:
  - name: o1
    class: Order
`)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.ErrWrongMultiplicity))
	assert.Contains(t, err.Error(), "association Order -> Line: link has wrong multiplicity '0', but should be '1..*'")
}

func TestLoadFileImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "base.yaml", "metaclasses:\n  - name: Entity\n")
	main := writeFile(t, dir, "main.yaml", `
imports: [base.yaml]
classes:
  - name: User
    metaclass: Entity
`)

	m, err := LoadFile(main, nil)
	require.NoError(t, err)
	assert.Equal(t, "main", m.Name())
	require.Len(t, m.Imports(), 1)
	assert.Equal(t, "base", m.Imports()[0].Name())

	user, err := m.Class("User")
	require.NoError(t, err)
	assert.Equal(t, "Entity", user.Metaclass().Name())

	t.Run("cycle", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "a.yaml", "imports: [b.yaml]\n")
		writeFile(t, dir, "b.yaml", "imports: [a.yaml]\n")
		_, err := LoadFile(filepath.Join(dir, "a.yaml"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "import cycle")
	})

	t.Run("shared import built once", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "base.yaml", "metaclasses:\n  - name: Entity\n")
		writeFile(t, dir, "left.yaml", "imports: [base.yaml]\n")
		writeFile(t, dir, "right.yaml", "imports: [base.yaml]\n")
		top := writeFile(t, dir, "top.yaml", "imports: [left.yaml, right.yaml]\n")

		b := NewBuilder(nil)
		m, err := b.LoadFile(top)
		require.NoError(t, err)
		left, right := m.Imports()[0], m.Imports()[1]
		assert.Same(t, left.Imports()[0], right.Imports()[0])

		assert.Equal(t, []string{
			filepath.Join(dir, "base.yaml"),
			filepath.Join(dir, "left.yaml"),
			filepath.Join(dir, "right.yaml"),
			top,
		}, b.Files())
	})
}

func classifierNames(list []*metamodel.Classifier) []string {
	result := make([]string, len(list))
	for i, c := range list {
		result[i] = c.Name()
	}
	return result
}

func objectNames(list []*metamodel.Object) []string {
	result := make([]string, len(list))
	for i, o := range list {
		result[i] = o.Name()
	}
	return result
}

func TestStarterRoundTrip(t *testing.T) {
	data, err := Marshal(Starter("inventory", "Entity", "Product"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "model: inventory\n")

	def, err := Parse(data)
	require.NoError(t, err)
	assert.Empty(t, NewValidator(def).Validate())

	m, err := NewBuilder(nil).Build(def)
	require.NoError(t, err)

	product, err := m.Class("Product")
	require.NoError(t, err)
	assert.Equal(t, []string{"Persistent"}, classifierNames(product.Object().AppliedStereotypes()))

	desc, err := product.Object().Value("description")
	require.NoError(t, err)
	assert.Equal(t, "a Product", desc)

	example, err := m.Object("example")
	require.NoError(t, err)
	status, err := example.Value("status")
	require.NoError(t, err)
	assert.Equal(t, "draft", status)
}
