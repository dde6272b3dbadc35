// Package metamodel is an in-memory metamodeling engine. A Model holds
// metaclasses, classes and stereotypes connected by multi-parent inheritance,
// objects carrying typed attribute values, associations instantiated as links
// between objects, and stereotype applications carrying tagged values.
//
// Attribute and tagged value lookup walks a classifier's resolution path: a
// depth-first pre-order over the declared superclasses in declaration order,
// recording each classifier on first visit only.
//
// Every operation validates before it mutates. A failed call leaves the model
// unchanged. A Model is not safe for concurrent use.
package metamodel

import (
	"fmt"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
	"go.uber.org/zap"
)

// Model owns the name registries for classifiers, objects, enumerations and
// associations. Models are independent of each other; a model can import
// others to make their elements resolvable by name.
//
// A Model is not safe for concurrent use. Callers serialize access.
type Model struct {
	name   string
	logger *zap.Logger

	classifiers     map[string]*Classifier
	classifierOrder []*Classifier
	objects         map[string]*Object
	objectOrder     []*Object
	enums           map[string]*values.Enum
	enumOrder       []*values.Enum
	associations    []*Association

	imports  []*Model
	counters map[string]int
}

// Option configures a Model
type Option func(*Model)

// WithLogger sets the logger used for mutation tracing
func WithLogger(logger *zap.Logger) Option {
	return func(m *Model) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewModel creates an empty model
func NewModel(name string, opts ...Option) *Model {
	m := &Model{
		name:        name,
		logger:      zap.NewNop(),
		classifiers: make(map[string]*Classifier),
		objects:     make(map[string]*Object),
		enums:       make(map[string]*values.Enum),
		counters:    make(map[string]int),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.logger = m.logger.With(zap.String("model", name))
	return m
}

// Name returns the model name
func (m *Model) Name() string {
	return m.name
}

// Logger returns the model's logger
func (m *Model) Logger() *zap.Logger {
	return m.logger
}

// Import makes the elements of other models resolvable by name from m.
// Importing a model twice, or importing m itself, has no effect.
func (m *Model) Import(others ...*Model) {
	for _, other := range others {
		if other == nil || other == m {
			continue
		}
		already := false
		for _, imported := range m.imports {
			if imported == other {
				already = true
				break
			}
		}
		if !already {
			m.imports = append(m.imports, other)
			m.logger.Debug("model imported", zap.String("imported", other.name))
		}
	}
}

// Imports returns the directly imported models
func (m *Model) Imports() []*Model {
	return append([]*Model(nil), m.imports...)
}

// searchOrder returns m followed by its transitive imports, depth-first in
// import order, each model once.
func (m *Model) searchOrder() []*Model {
	var order []*Model
	seen := make(map[*Model]bool)

	var visit func(*Model)
	visit = func(model *Model) {
		if seen[model] {
			return
		}
		seen[model] = true
		order = append(order, model)
		for _, imported := range model.imports {
			visit(imported)
		}
	}
	visit(m)
	return order
}

// Classifier looks up a classifier by name in m and its imports
func (m *Model) Classifier(name string) (*Classifier, error) {
	for _, model := range m.searchOrder() {
		if c, ok := model.classifiers[name]; ok {
			return c, nil
		}
	}
	return nil, errors.NewUnknownClassifier(name)
}

// Metaclass looks up a classifier by name and narrows it to a metaclass
func (m *Model) Metaclass(name string) (*Classifier, error) {
	return m.narrow(name, KindMetaclass)
}

// Class looks up a classifier by name and narrows it to a class
func (m *Model) Class(name string) (*Classifier, error) {
	return m.narrow(name, KindClass)
}

// Stereotype looks up a classifier by name and narrows it to a stereotype
func (m *Model) Stereotype(name string) (*Classifier, error) {
	return m.narrow(name, KindStereotype)
}

func (m *Model) narrow(name string, kind Kind) (*Classifier, error) {
	c, err := m.Classifier(name)
	if err != nil {
		return nil, err
	}
	if err := c.expect(kind); err != nil {
		return nil, err
	}
	return c, nil
}

// Object looks up an object by name in m and its imports. Class names resolve
// to the class's own object, since a class is an instance of its metaclass.
func (m *Model) Object(name string) (*Object, error) {
	for _, model := range m.searchOrder() {
		if o, ok := model.objects[name]; ok {
			return o, nil
		}
		if c, ok := model.classifiers[name]; ok && c.kind == KindClass {
			return c.object, nil
		}
	}
	return nil, errors.NewUnknownObject(name)
}

// Enum looks up an enumeration by name in m and its imports
func (m *Model) Enum(name string) (*values.Enum, error) {
	for _, model := range m.searchOrder() {
		if e, ok := model.enums[name]; ok {
			return e, nil
		}
	}
	return nil, errors.NewUnknownEnumeration(name)
}

// Association looks up an association by name in m and its imports.
// Association names are not unique; the first one created wins.
func (m *Model) Association(name string) (*Association, error) {
	for _, model := range m.searchOrder() {
		for _, a := range model.associations {
			if a.Name() == name {
				return a, nil
			}
		}
	}
	return nil, errors.NewUnknownAssociation(name)
}

// Extendable looks up a stereotype extension target by name: a classifier
// first, then an association.
func (m *Model) Extendable(name string) (Extendable, error) {
	c, err := m.Classifier(name)
	if err == nil {
		return c, nil
	}
	if a, aerr := m.Association(name); aerr == nil {
		return a, nil
	}
	return nil, err
}

// Classifiers returns the classifiers owned by m in creation order
func (m *Model) Classifiers() []*Classifier {
	return append([]*Classifier(nil), m.classifierOrder...)
}

// Objects returns the objects owned by m in creation order
func (m *Model) Objects() []*Object {
	return append([]*Object(nil), m.objectOrder...)
}

// Enums returns the enumerations owned by m in creation order
func (m *Model) Enums() []*values.Enum {
	return append([]*values.Enum(nil), m.enumOrder...)
}

// Associations returns the associations owned by m in creation order
func (m *Model) Associations() []*Association {
	return append([]*Association(nil), m.associations...)
}

// NewEnum registers an enumeration
func (m *Model) NewEnum(name string, legal ...string) (*values.Enum, error) {
	if name == "" {
		name = m.generateName("Enum", m.enumTaken)
	}
	if m.enumTaken(name) {
		return nil, errors.NewDuplicateEnumeration(name, m.name)
	}
	e, err := values.NewEnum(name, legal...)
	if err != nil {
		return nil, err
	}
	m.enums[name] = e
	m.enumOrder = append(m.enumOrder, e)
	m.logger.Debug("enumeration created", zap.String("enum", name), zap.Int("count", len(legal)))
	return e, nil
}

func (m *Model) enumTaken(name string) bool {
	_, ok := m.enums[name]
	return ok
}

func (m *Model) classifierTaken(name string) bool {
	_, ok := m.classifiers[name]
	return ok
}

func (m *Model) objectTaken(name string) bool {
	_, ok := m.objects[name]
	return ok
}

// generateName returns prefix followed by the next free counter value
func (m *Model) generateName(prefix string, taken func(string) bool) string {
	for {
		m.counters[prefix]++
		name := fmt.Sprintf("%s%d", prefix, m.counters[prefix])
		if !taken(name) {
			return name
		}
	}
}

func (m *Model) registerClassifier(c *Classifier) {
	m.classifiers[c.name] = c
	m.classifierOrder = append(m.classifierOrder, c)
}

func (m *Model) unregisterClassifier(c *Classifier) {
	delete(m.classifiers, c.name)
	m.classifierOrder = without(m.classifierOrder, c)
}

func (m *Model) registerObject(o *Object) {
	m.objects[o.name] = o
	m.objectOrder = append(m.objectOrder, o)
}

func (m *Model) unregisterObject(o *Object) {
	delete(m.objects, o.name)
	m.objectOrder = without(m.objectOrder, o)
}

func (m *Model) unregisterAssociation(a *Association) {
	m.associations = without(m.associations, a)
}

// without returns list with the first occurrence of item removed, preserving order
func without[T comparable](list []T, item T) []T {
	for i, v := range list {
		if v == item {
			return append(list[:i:i], list[i+1:]...)
		}
	}
	return list
}
