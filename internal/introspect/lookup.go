package introspect

import (
	"fmt"

	"github.com/conduit-lang/metamodel/pkg/metamodel"
)

// Find reports the element called name, trying classifiers, then objects,
// then associations
func Find(m *metamodel.Model, name string) (any, error) {
	if c, err := m.Classifier(name); err == nil {
		return DescribeClassifier(c), nil
	}
	if o, err := m.Object(name); err == nil {
		return DescribeObject(o), nil
	}
	if a, err := m.Association(name); err == nil {
		return DescribeAssociation(a), nil
	}
	return nil, fmt.Errorf("no classifier, object or association named '%s'", name)
}

// Path returns the resolution path of the classifier called name
func Path(m *metamodel.Model, name string) ([]string, error) {
	c, err := m.Classifier(name)
	if err != nil {
		return nil, err
	}
	return names(c.ResolutionPath()), nil
}

// Candidates lists the names Find can resolve in m, for suggestions
func Candidates(m *metamodel.Model) []string {
	var result []string
	result = append(result, names(m.Classifiers())...)
	result = append(result, names(m.Objects())...)
	result = append(result, names(m.Associations())...)
	return result
}
