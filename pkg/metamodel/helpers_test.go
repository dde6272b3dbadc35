package metamodel

import (
	"testing"

	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
	"github.com/stretchr/testify/require"
)

func mustMetaclass(t *testing.T, m *Model, name string) *Classifier {
	t.Helper()
	c, err := m.NewMetaclass(name)
	require.NoError(t, err)
	return c
}

func mustClass(t *testing.T, m *Model, meta *Classifier, name string, supers ...*Classifier) *Classifier {
	t.Helper()
	c, err := m.NewClass(meta, name)
	require.NoError(t, err)
	if len(supers) > 0 {
		require.NoError(t, c.AddSuperclass(supers...))
	}
	return c
}

func mustObject(t *testing.T, m *Model, class *Classifier, name string) *Object {
	t.Helper()
	o, err := m.NewObject(class, name)
	require.NoError(t, err)
	return o
}

func mustAttribute(t *testing.T, c *Classifier, name string, kind values.Kind, opts ...AttributeOption) *Attribute {
	t.Helper()
	a, err := c.AddAttribute(name, values.Of(kind), opts...)
	require.NoError(t, err)
	return a
}

func mustEnd(t *testing.T, c *Classifier, multiplicity string, opts ...EndOption) *AssociationEnd {
	t.Helper()
	e, err := NewEnd(c, multiplicity, opts...)
	require.NoError(t, err)
	return e
}

func mustAssociation(t *testing.T, m *Model, name string, source, target *AssociationEnd) *Association {
	t.Helper()
	a, err := m.NewAssociation(name, source, target)
	require.NoError(t, err)
	return a
}

func names[T interface{ Name() string }](list []T) []string {
	result := make([]string, len(list))
	for i, x := range list {
		result[i] = x.Name()
	}
	return result
}
