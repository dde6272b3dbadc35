package metamodel

import (
	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Kind distinguishes the three classifier variants
type Kind int

const (
	// KindMetaclass classifies classes
	KindMetaclass Kind = iota
	// KindClass classifies objects and is itself an instance of a metaclass
	KindClass
	// KindStereotype extends metaclasses and associations with tagged values
	KindStereotype
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindMetaclass:
		return "metaclass"
	case KindClass:
		return "class"
	case KindStereotype:
		return "stereotype"
	default:
		return "unknown"
	}
}

// Classifier is a named type in a model's type graph. The variant-specific
// parts (a class's own object, a stereotype's extensions, the stereotypes
// extending a metaclass) are only populated for the matching Kind.
type Classifier struct {
	id    uuid.UUID
	name  string
	kind  Kind
	model *Model

	superclasses []*Classifier
	subclasses   []*Classifier
	attributes   []*Attribute
	ends         []*AssociationEnd

	// objects classified by this classifier; for a metaclass these are the
	// objects of its classes
	objects []*Object

	// class only
	object *Object

	// stereotype only
	extended  []Extendable
	appliedTo []stereotypable

	// metaclass only
	extensions extensionPoint

	deleted bool
}

// NewMetaclass creates a metaclass. An empty name is auto-generated.
func (m *Model) NewMetaclass(name string) (*Classifier, error) {
	return m.newClassifier(name, KindMetaclass, "Metaclass")
}

// NewClass creates a class as an instance of metaclass. An empty name is
// auto-generated.
func (m *Model) NewClass(metaclass *Classifier, name string) (*Classifier, error) {
	if metaclass == nil {
		return nil, errors.NewUnknownClassifier("<nil>")
	}
	if err := metaclass.expect(KindMetaclass); err != nil {
		return nil, err
	}
	if err := metaclass.alive(); err != nil {
		return nil, err
	}

	c, err := m.newClassifier(name, KindClass, "Class")
	if err != nil {
		return nil, err
	}
	c.object = newObject(m, c.name, metaclass)
	c.object.class = c
	metaclass.objects = append(metaclass.objects, c.object)
	return c, nil
}

// NewStereotype creates a stereotype extending the given metaclasses or
// associations. An empty name is auto-generated.
func (m *Model) NewStereotype(name string, extended ...Extendable) (*Classifier, error) {
	for i, target := range extended {
		if err := checkExtendable(target); err != nil {
			return nil, err
		}
		for _, prev := range extended[:i] {
			if prev == target {
				return nil, errors.NewAlreadyExtended(target.Name(), name)
			}
		}
	}

	st, err := m.newClassifier(name, KindStereotype, "Stereotype")
	if err != nil {
		return nil, err
	}
	for _, target := range extended {
		st.link(target)
	}
	return st, nil
}

func (m *Model) newClassifier(name string, kind Kind, prefix string) (*Classifier, error) {
	if name == "" {
		name = m.generateName(prefix, m.classifierTaken)
	}
	if m.classifierTaken(name) {
		return nil, errors.NewDuplicateClassifier(name, m.name)
	}

	c := &Classifier{
		id:    uuid.New(),
		name:  name,
		kind:  kind,
		model: m,
	}
	m.registerClassifier(c)
	m.logger.Debug("classifier created", zap.String("classifier", name), zap.Stringer("kind", kind))
	return c, nil
}

// ID returns the classifier's unique identifier
func (c *Classifier) ID() uuid.UUID {
	return c.id
}

// Name returns the classifier name
func (c *Classifier) Name() string {
	return c.name
}

// String returns the classifier name
func (c *Classifier) String() string {
	return c.name
}

// Kind returns the classifier variant
func (c *Classifier) Kind() Kind {
	return c.kind
}

// Model returns the owning model
func (c *Classifier) Model() *Model {
	return c.model
}

// IsDeleted reports whether the classifier has been deleted
func (c *Classifier) IsDeleted() bool {
	return c.deleted
}

// Object returns a class's own object, i.e. the class viewed as an instance
// of its metaclass. It is nil for metaclasses and stereotypes.
func (c *Classifier) Object() *Object {
	return c.object
}

// Metaclass returns the metaclass classifying a class, or nil
func (c *Classifier) Metaclass() *Classifier {
	if c.object == nil {
		return nil
	}
	return c.object.classifier
}

// Objects returns the objects whose classifying type is exactly c
func (c *Classifier) Objects() []*Object {
	return append([]*Object(nil), c.objects...)
}

// AllObjects returns the objects classified by c or one of its descendants
func (c *Classifier) AllObjects() []*Object {
	var result []*Object
	for _, d := range c.selfAndDescendants() {
		result = append(result, d.objects...)
	}
	return result
}

// Classifies reports whether v is a live object whose type is c or one of
// its descendants. It lets a classifier serve as an object attribute type.
func (c *Classifier) Classifies(v any) bool {
	o, ok := v.(*Object)
	if !ok || o == nil || o.deleted || o.classifier == nil {
		return false
	}
	return o.classifier.ConformsTo(c)
}

func (c *Classifier) expect(kind Kind) error {
	if c.kind != kind {
		return errors.NewWrongClassifierKind(c.name, c.kind.String(), kind.String())
	}
	return nil
}

func (c *Classifier) alive() error {
	if c.deleted {
		return errors.NewDeletedElement(c.name)
	}
	return nil
}

// Delete removes the classifier from its model. Inheritance edges, attribute
// definitions, associations with an end typed by c, and extension edges are
// severed. Subclasses survive without c; objects typed by c survive with no
// classifier. A class's own object is deleted with it.
func (c *Classifier) Delete() error {
	if err := c.alive(); err != nil {
		return err
	}

	for _, a := range c.Associations() {
		if !a.deleted {
			a.delete()
		}
	}

	switch c.kind {
	case KindStereotype:
		for _, el := range append([]stereotypable(nil), c.appliedTo...) {
			el.stereotypes().detach(c)
		}
		for _, target := range append([]Extendable(nil), c.extended...) {
			c.unlink(target)
		}
	case KindMetaclass:
		for _, st := range append([]*Classifier(nil), c.extensions.stereotypes...) {
			st.unlink(c)
		}
	case KindClass:
		if meta := c.object.classifier; meta != nil {
			meta.objects = without(meta.objects, c.object)
		}
		c.object.destroy()
	}

	for _, o := range append([]*Object(nil), c.objects...) {
		o.clearClassifier()
	}
	c.objects = nil

	for _, attr := range append([]*Attribute(nil), c.attributes...) {
		c.dropAttribute(attr)
	}

	for _, super := range c.superclasses {
		super.subclasses = without(super.subclasses, c)
	}
	subs := c.subclasses
	for _, sub := range subs {
		sub.superclasses = without(sub.superclasses, c)
	}
	c.superclasses = nil
	c.subclasses = nil
	for _, sub := range subs {
		sub.revalidate()
	}

	c.model.unregisterClassifier(c)
	c.deleted = true
	c.model.logger.Debug("classifier deleted", zap.String("classifier", c.name))
	return nil
}
