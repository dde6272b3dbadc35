package metamodel

import (
	"testing"

	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteSuperclassKeepsOwnAttributes(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	root := mustClass(t, m, meta, "Root")
	mid := mustClass(t, m, meta, "Mid", root)
	leaf := mustClass(t, m, meta, "L", mid)
	mustAttribute(t, mid, "inherited", values.KindInt, WithDefault(1))
	mustAttribute(t, leaf, "own", values.KindString, WithDefault("kept"))
	o := mustObject(t, m, leaf, "o")

	require.Equal(t, []string{"Mid", "Root"}, names(leaf.AllSuperclasses()))
	require.NoError(t, mid.Delete())

	assert.Empty(t, leaf.Superclasses())
	assert.Empty(t, leaf.AllSuperclasses())
	assert.Empty(t, root.Subclasses())
	assert.Equal(t, []string{"own"}, names(leaf.Attributes()))

	v, err := o.Value("own")
	require.NoError(t, err)
	assert.Equal(t, "kept", v)
	require.NoError(t, o.SetValue("own", "changed"))

	_, err = o.Value("inherited")
	assert.EqualError(t, err, "attribute 'inherited' unknown for object 'o'")

	_, err = m.Classifier("Mid")
	assert.EqualError(t, err, "classifier 'Mid' does not exist")
	assert.True(t, mid.IsDeleted())
	assert.EqualError(t, mid.AddSuperclass(root), "'Mid' has been deleted")
}

func TestDeleteClass(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	a := mustClass(t, m, meta, "A")
	b := mustClass(t, m, meta, "B")
	mustAttribute(t, a, "x", values.KindInt)
	endA := mustEnd(t, a, "*")
	endB := mustEnd(t, b, "*")
	assoc := mustAssociation(t, m, "ab", endA, endB)
	a1 := mustObject(t, m, a, "a1")
	b1 := mustObject(t, m, b, "b1")
	require.NoError(t, a1.SetValue("x", 4))
	require.NoError(t, a1.AddLinks(endB, b1))
	classObj := a.Object()

	require.NoError(t, a.Delete())

	t.Run("associations with an end typed by the class are deleted", func(t *testing.T) {
		assert.True(t, assoc.IsDeleted())
		assert.Empty(t, b.Associations())
		assert.Empty(t, b1.Links())
		assert.Empty(t, m.Associations())
	})

	t.Run("objects survive without a classifier", func(t *testing.T) {
		assert.False(t, a1.IsDeleted())
		assert.Nil(t, a1.Classifier())
		assert.Empty(t, a1.Values())
		found, err := m.Object("a1")
		require.NoError(t, err)
		assert.Same(t, a1, found)
	})

	t.Run("class object is deleted", func(t *testing.T) {
		assert.True(t, classObj.IsDeleted())
		assert.NotContains(t, meta.Objects(), classObj)
		_, err := m.Object("A")
		assert.EqualError(t, err, "object 'A' unknown")
	})
}

func TestDeleteMetaclass(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	st, err := m.NewStereotype("S", meta)
	require.NoError(t, err)
	class := mustClass(t, m, meta, "A")
	require.NoError(t, class.Object().ApplyStereotype(st))

	require.NoError(t, meta.Delete())

	assert.Nil(t, class.Metaclass())
	assert.False(t, class.IsDeleted())
	assert.Empty(t, st.Extended())
	assert.Empty(t, class.Object().AppliedStereotypes())

	// the class itself still classifies objects
	o := mustObject(t, m, class, "o")
	assert.True(t, o.InstanceOf(class))
}

func TestDeleteStereotype(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	st, err := m.NewStereotype("S", meta)
	require.NoError(t, err)
	sub, err := m.NewStereotype("Sub")
	require.NoError(t, err)
	require.NoError(t, sub.AddSuperclass(st))
	mustAttribute(t, st, "tag", values.KindString)

	el := mustClass(t, m, meta, "A").Object()
	require.NoError(t, el.ApplyStereotype(st))
	require.NoError(t, el.ApplyStereotype(sub))
	require.NoError(t, el.SetTaggedValueOf(sub, "tag", "t"))

	require.NoError(t, st.Delete())

	assert.Empty(t, meta.ExtendedBy())
	// Sub lost its only extension path together with its superclass
	assert.Empty(t, el.AppliedStereotypes())
	assert.Empty(t, sub.Superclasses())
	assert.Empty(t, el.TaggedValues())
}

func TestDeleteObject(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	a := mustClass(t, m, meta, "A")
	st, err := m.NewStereotype("S", meta)
	require.NoError(t, err)
	_, err = st.AddAttribute("subject", values.ObjectOf(a))
	require.NoError(t, err)
	_, err = a.AddAttribute("peer", values.ObjectOf(a))
	require.NoError(t, err)
	endX := mustEnd(t, a, "*", WithRole("x"))
	endY := mustEnd(t, a, "*", WithRole("y"))
	mustAssociation(t, m, "xy", endX, endY)

	doomed := mustObject(t, m, a, "doomed")
	keeper := mustObject(t, m, a, "keeper")
	el := a.Object()
	require.NoError(t, el.ApplyStereotype(st))
	require.NoError(t, el.SetTaggedValue("subject", doomed))
	require.NoError(t, keeper.SetValue("peer", doomed))
	require.NoError(t, keeper.AddLinks(endY, doomed))

	require.NoError(t, doomed.Delete())

	v, err := el.TaggedValue("subject")
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = keeper.Value("peer")
	require.NoError(t, err)
	assert.Nil(t, v)

	assert.Empty(t, keeper.Links())
	assert.NotContains(t, a.Objects(), doomed)
	_, err = m.Object("doomed")
	assert.EqualError(t, err, "object 'doomed' unknown")

	assert.EqualError(t, doomed.SetValue("peer", keeper), "'doomed' has been deleted")
	assert.EqualError(t, keeper.AddLinks(endY, doomed), "'doomed' has been deleted")
	assert.EqualError(t, doomed.Delete(), "'doomed' has been deleted")

	t.Run("name can be reused", func(t *testing.T) {
		mustObject(t, m, a, "doomed")
	})
}

func TestDeleteClassObjectDeletesClass(t *testing.T) {
	m := NewModel("m")
	meta := mustMetaclass(t, m, "M")
	a := mustClass(t, m, meta, "A")

	require.NoError(t, a.Object().Delete())
	assert.True(t, a.IsDeleted())
	_, err := m.NewObject(a, "o")
	assert.EqualError(t, err, "'A' has been deleted")
}
