package metamodel

import (
	stderrors "errors"
	"testing"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolutionPath(t *testing.T) {
	t.Run("single chain", func(t *testing.T) {
		m := NewModel("m")
		meta := mustMetaclass(t, m, "M")
		a := mustClass(t, m, meta, "A")
		b := mustClass(t, m, meta, "B", a)
		c := mustClass(t, m, meta, "C", b)

		assert.Equal(t, []string{"C", "B", "A"}, names(c.ResolutionPath()))
		assert.Equal(t, []string{"B", "A"}, names(c.AllSuperclasses()))
	})

	t.Run("diamond records shared ancestor on first visit", func(t *testing.T) {
		m := NewModel("m")
		meta := mustMetaclass(t, m, "M")
		top := mustClass(t, m, meta, "Top")
		left := mustClass(t, m, meta, "Left", top)
		right := mustClass(t, m, meta, "Right", top)
		bottom := mustClass(t, m, meta, "Bottom", left, right)

		assert.Equal(t, []string{"Bottom", "Left", "Top", "Right"}, names(bottom.ResolutionPath()))
	})

	t.Run("descends before advancing to next sibling", func(t *testing.T) {
		m := NewModel("m")
		meta := mustMetaclass(t, m, "M")
		x := mustClass(t, m, meta, "X")
		y := mustClass(t, m, meta, "Y")
		p1 := mustClass(t, m, meta, "P1", x)
		p2 := mustClass(t, m, meta, "P2", y, x)
		c := mustClass(t, m, meta, "C", p1, p2)

		assert.Equal(t, []string{"C", "P1", "X", "P2", "Y"}, names(c.ResolutionPath()))
	})

	t.Run("stable for a fixed graph", func(t *testing.T) {
		m := NewModel("m")
		meta := mustMetaclass(t, m, "M")
		a := mustClass(t, m, meta, "A")
		b := mustClass(t, m, meta, "B", a)
		c := mustClass(t, m, meta, "C", b, a)

		first := c.ResolutionPath()
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, c.ResolutionPath())
		}
		assert.Equal(t, c, first[0])

		seen := make(map[*Classifier]bool)
		for _, n := range first {
			assert.False(t, seen[n], "duplicate %s in path", n.Name())
			seen[n] = true
		}
	})
}

func TestAddSuperclass(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	a := mustClass(t, m, meta, "A")
	b := mustClass(t, m, meta, "B", a)

	t.Run("already a superclass", func(t *testing.T) {
		err := b.AddSuperclass(a)
		require.Error(t, err)
		assert.EqualError(t, err, "'A' is already a superclass of 'B'")
		assert.True(t, errors.HasCode(err, errors.ErrAlreadySuperclass))
	})

	t.Run("cycle", func(t *testing.T) {
		err := a.AddSuperclass(b)
		assert.EqualError(t, err, "cannot add superclass 'B' to 'A': inheritance cycle")
		assert.Empty(t, a.Superclasses())
	})

	t.Run("self edge", func(t *testing.T) {
		err := a.AddSuperclass(a)
		assert.EqualError(t, err, "cannot add superclass 'A' to 'A': inheritance cycle")
	})

	t.Run("variant mismatch", func(t *testing.T) {
		err := b.AddSuperclass(meta)
		assert.EqualError(t, err, "cannot add superclass 'M' to 'B': superclass must be a class")
		assert.True(t, stderrors.Is(err, errors.Sentinel(errors.ErrSuperclassKind)))
	})

	t.Run("validates all before adding any", func(t *testing.T) {
		c := mustClass(t, m, meta, "C")
		err := c.AddSuperclass(a, meta)
		require.Error(t, err)
		assert.Empty(t, c.Superclasses())
		assert.Equal(t, []string{"B"}, names(a.Subclasses()))
	})

	t.Run("by name", func(t *testing.T) {
		d := mustClass(t, m, meta, "D")
		require.NoError(t, d.AddSuperclassByName("B"))
		assert.Equal(t, []string{"B"}, names(d.Superclasses()))

		err := d.AddSuperclassByName("Nope")
		assert.EqualError(t, err, "classifier 'Nope' does not exist")
	})

	t.Run("inverse index", func(t *testing.T) {
		assert.Contains(t, a.Subclasses(), b)
		assert.True(t, a.IsSuperclassOf(b))
		assert.False(t, b.IsSuperclassOf(a))
		assert.False(t, a.IsSuperclassOf(a))
		assert.True(t, b.ConformsTo(a))
		assert.True(t, b.ConformsTo(b))
	})
}

func TestAcyclicity(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	classes := make([]*Classifier, 6)
	for i := range classes {
		classes[i] = mustClass(t, m, meta, "")
	}
	edges := [][2]int{{1, 0}, {2, 1}, {3, 1}, {3, 2}, {4, 3}, {0, 4}, {5, 5}, {2, 4}, {5, 0}}
	for _, e := range edges {
		_ = classes[e[0]].AddSuperclass(classes[e[1]])
	}

	for _, c := range classes {
		assert.NotContains(t, c.AllSuperclasses(), c)
		assert.NotContains(t, c.AllSubclasses(), c)
	}
}

func TestRemoveSuperclass(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	p := mustClass(t, m, meta, "P")
	c := mustClass(t, m, meta, "C", p)
	mustAttribute(t, p, "x", values.KindInt)
	o := mustObject(t, m, c, "o")
	require.NoError(t, o.SetValue("x", 7))

	err := c.RemoveSuperclass(mustClass(t, m, meta, "Other"))
	assert.EqualError(t, err, "'Other' is not a superclass of 'C'")

	require.NoError(t, c.RemoveSuperclass(p))
	assert.Empty(t, c.Superclasses())
	assert.Empty(t, p.Subclasses())

	_, err = o.Value("x")
	assert.EqualError(t, err, "attribute 'x' unknown for object 'o'")

	// re-adding the edge does not resurrect the dropped value
	require.NoError(t, c.AddSuperclass(p))
	v, err := o.Value("x")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestClassifierKinds(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	class := mustClass(t, m, meta, "A")
	st, err := m.NewStereotype("S", meta)
	require.NoError(t, err)

	assert.Equal(t, KindMetaclass, meta.Kind())
	assert.Equal(t, KindClass, class.Kind())
	assert.Equal(t, KindStereotype, st.Kind())
	assert.Equal(t, "stereotype", st.Kind().String())

	_, err = m.Metaclass("A")
	assert.EqualError(t, err, "'A' is a class, not a metaclass")
	_, err = m.Class("S")
	assert.EqualError(t, err, "'S' is a stereotype, not a class")
	got, err := m.Stereotype("S")
	require.NoError(t, err)
	assert.Same(t, st, got)

	_, err = m.NewClass(class, "B")
	assert.EqualError(t, err, "'A' is a class, not a metaclass")

	_, err = m.NewObject(meta, "o")
	assert.EqualError(t, err, "'M' is a metaclass, not a class")
}

func TestClassIsInstanceOfMetaclass(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	mustAttribute(t, meta, "abstract", values.KindBool, WithDefault(false))
	class := mustClass(t, m, meta, "A")

	obj := class.Object()
	require.NotNil(t, obj)
	assert.True(t, obj.IsClassObject())
	assert.Same(t, meta, obj.Classifier())
	assert.Same(t, meta, class.Metaclass())
	assert.Same(t, class, obj.Class())
	assert.Contains(t, meta.Objects(), obj)

	v, err := obj.Value("abstract")
	require.NoError(t, err)
	assert.Equal(t, false, v)
	require.NoError(t, obj.SetValue("abstract", true))

	byName, err := m.Object("A")
	require.NoError(t, err)
	assert.Same(t, obj, byName)
}
