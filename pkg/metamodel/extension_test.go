package metamodel

import (
	"testing"

	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStereotype(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	other := mustMetaclass(t, m, "Other")
	st1, err := m.NewStereotype("ST1", meta)
	require.NoError(t, err)
	st2, err := m.NewStereotype("ST2", other)
	require.NoError(t, err)
	class := mustClass(t, m, meta, "A")
	el := class.Object()

	require.NoError(t, el.ApplyStereotype(st1))
	assert.True(t, el.HasStereotype(st1))

	err = el.ApplyStereotype(st2)
	assert.EqualError(t, err, "stereotype 'ST2' cannot be added to 'A': no extension by this stereotype found")
	assert.Equal(t, []*Classifier{st1}, el.AppliedStereotypes())

	err = el.ApplyStereotype(st1)
	assert.EqualError(t, err, "stereotype 'ST1' is already applied to 'A'")

	err = el.RemoveStereotype(st2)
	assert.EqualError(t, err, "stereotype 'ST2' is not applied to 'A'")

	err = el.ApplyStereotypeByName("Nope")
	assert.EqualError(t, err, "classifier 'Nope' does not exist")
}

func TestExtensionValidityAcrossLattices(t *testing.T) {
	m := NewModel("m")
	base := mustMetaclass(t, m, "Base")
	derived := mustMetaclass(t, m, "Derived")
	require.NoError(t, derived.AddSuperclass(base))
	unrelated := mustMetaclass(t, m, "Unrelated")

	parentST, err := m.NewStereotype("ParentST", base)
	require.NoError(t, err)
	childST, err := m.NewStereotype("ChildST")
	require.NoError(t, err)
	require.NoError(t, childST.AddSuperclass(parentST))
	loneST, err := m.NewStereotype("LoneST", unrelated)
	require.NoError(t, err)

	tests := []struct {
		name  string
		meta  *Classifier
		st    *Classifier
		valid bool
	}{
		{"stereotype extends type", base, parentST, true},
		{"stereotype extends ancestor of type", derived, parentST, true},
		{"ancestor of stereotype extends type", base, childST, true},
		{"ancestor of stereotype extends ancestor of type", derived, childST, true},
		{"no path", derived, loneST, false},
		{"extension does not flow downwards", unrelated, parentST, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			el := mustClass(t, m, tt.meta, "").Object()
			err := el.ApplyStereotype(tt.st)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Empty(t, el.AppliedStereotypes())
			}
		})
	}
}

func TestTaggedValues(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	first, err := m.NewStereotype("First", meta)
	require.NoError(t, err)
	second, err := m.NewStereotype("Second", meta)
	require.NoError(t, err)
	parent, err := m.NewStereotype("Parent")
	require.NoError(t, err)
	require.NoError(t, second.AddSuperclass(parent))

	mustAttribute(t, first, "label", values.KindString, WithDefault("first"))
	mustAttribute(t, second, "label", values.KindString, WithDefault("second"))
	mustAttribute(t, parent, "depth", values.KindInt, WithDefault(1))

	el := mustClass(t, m, meta, "A").Object()
	require.NoError(t, el.ApplyStereotype(second))
	require.NoError(t, el.ApplyStereotype(first))

	t.Run("application order wins", func(t *testing.T) {
		v, err := el.TaggedValue("label")
		require.NoError(t, err)
		assert.Equal(t, "second", v)
	})

	t.Run("inherited tagged value", func(t *testing.T) {
		require.NoError(t, el.SetTaggedValue("depth", 3))
		v, err := el.TaggedValueOf(second, "depth")
		require.NoError(t, err)
		assert.Equal(t, 3, v)
	})

	t.Run("qualified access", func(t *testing.T) {
		require.NoError(t, el.SetTaggedValueOf(first, "label", "mine"))
		v, err := el.TaggedValueOf(first, "label")
		require.NoError(t, err)
		assert.Equal(t, "mine", v)

		v, err = el.TaggedValue("label")
		require.NoError(t, err)
		assert.Equal(t, "second", v)
	})

	t.Run("errors", func(t *testing.T) {
		_, err := el.TaggedValue("missing")
		assert.EqualError(t, err, "tagged value 'missing' unknown")

		_, err = el.TaggedValueOf(parent, "depth")
		assert.EqualError(t, err, "'Parent' is not a stereotype of element")

		_, err = el.TaggedValueOf(first, "depth")
		assert.EqualError(t, err, "tagged value 'depth' unknown for stereotype 'First'")

		err = el.SetTaggedValue("depth", "deep")
		assert.EqualError(t, err, "value type for attribute 'depth' does not match attribute type")
	})

	t.Run("listing", func(t *testing.T) {
		tagged := el.TaggedValues()
		require.Len(t, tagged, 2)
		assert.Equal(t, "label", tagged[0].Attribute.Name())
		assert.Equal(t, "second", tagged[0].Value)
		assert.Equal(t, "depth", tagged[1].Attribute.Name())
	})

	t.Run("removing an application drops its tag slots", func(t *testing.T) {
		require.NoError(t, el.RemoveStereotype(first))
		_, err := el.TaggedValueOf(first, "label")
		assert.Error(t, err)

		require.NoError(t, el.ApplyStereotype(first))
		v, err := el.TaggedValueOf(first, "label")
		require.NoError(t, err)
		assert.Equal(t, "first", v)
	})
}

func TestExtend(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	class := mustClass(t, m, meta, "A")
	st, err := m.NewStereotype("S")
	require.NoError(t, err)

	require.NoError(t, st.Extend(meta))
	assert.Equal(t, []*Classifier{st}, meta.ExtendedBy())
	assert.Equal(t, []Extendable{meta}, st.Extended())

	err = st.Extend(meta)
	assert.EqualError(t, err, "'M' is already extended by stereotype 'S'")

	err = st.ExtendByName("M")
	assert.EqualError(t, err, "'M' is already extended by a stereotype named 'S'")

	err = st.Extend(class)
	assert.EqualError(t, err, "'A' cannot be extended by a stereotype")

	err = st.Unextend(mustMetaclass(t, m, "N"))
	assert.EqualError(t, err, "'N' is not extended by stereotype 'S'")

	_, err = m.NewStereotype("Twice", meta, meta)
	assert.EqualError(t, err, "'M' is already extended by stereotype 'Twice'")
	_, err = m.Classifier("Twice")
	assert.Error(t, err)

	t.Run("target side", func(t *testing.T) {
		other, err := m.NewStereotype("Other")
		require.NoError(t, err)
		require.NoError(t, meta.ExtendWith(other))
		assert.Equal(t, []*Classifier{st, other}, meta.ExtendedBy())
		require.NoError(t, meta.RemoveExtension(other))
		assert.Equal(t, []*Classifier{st}, meta.ExtendedBy())
		assert.Empty(t, other.Extended())
	})

	t.Run("unextend drops applications without a path", func(t *testing.T) {
		el := class.Object()
		require.NoError(t, el.ApplyStereotype(st))
		require.NoError(t, st.Unextend(meta))
		assert.Empty(t, el.AppliedStereotypes())
		assert.Empty(t, meta.ExtendedBy())
	})
}

func TestLinkStereotypes(t *testing.T) {
	f := newLinkFixture(t, "*", "*")
	st, err := f.m.NewStereotype("Weighted")
	require.NoError(t, err)
	require.NoError(t, st.ExtendByName("ab"))
	mustAttribute(t, st, "weight", values.KindDouble, WithDefault(1.0))

	require.NoError(t, f.a1.AddLinks(f.endB, f.b1))
	l := f.a1.Links()[0]

	require.NoError(t, l.ApplyStereotypeByName("Weighted"))
	require.NoError(t, l.SetTaggedValue("weight", 2.5))
	v, err := l.TaggedValue("weight")
	require.NoError(t, err)
	assert.Equal(t, 2.5, v)

	// objects are not typed by the association
	err = f.a1.ApplyStereotype(st)
	assert.EqualError(t, err, "stereotype 'Weighted' cannot be added to 'a1': no extension by this stereotype found")

	require.NoError(t, f.a1.RemoveLinks(f.endB, f.b1))
	assert.Empty(t, l.AppliedStereotypes())
	_, err = l.TaggedValue("weight")
	assert.EqualError(t, err, "'a1 -> b1' has been deleted")
}

func TestRevalidateOnSuperclassRemoval(t *testing.T) {
	m := NewModel("m")
	base := mustMetaclass(t, m, "Base")
	derived := mustMetaclass(t, m, "Derived")
	require.NoError(t, derived.AddSuperclass(base))
	st, err := m.NewStereotype("S", base)
	require.NoError(t, err)

	el := mustClass(t, m, derived, "A").Object()
	require.NoError(t, el.ApplyStereotype(st))

	require.NoError(t, derived.RemoveSuperclass(base))
	assert.Empty(t, el.AppliedStereotypes())
	assert.Empty(t, st.appliedTo)
}
