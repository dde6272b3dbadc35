package metamodel

import (
	"slices"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Object is an instance with exactly one classifying type. Ordinary objects
// are classified by a class; a class's own object is classified by its
// metaclass. The classifier becomes nil when it is deleted; the object
// survives.
type Object struct {
	id         uuid.UUID
	name       string
	model      *Model
	classifier *Classifier
	class      *Classifier

	values    *slots
	referrers map[slotRef]struct{}

	// links[e] holds the links whose partner object sits at end e
	links    map[*AssociationEnd][]*Link
	allLinks []*Link

	stereotyping

	deleted bool
}

// AttributeValue pairs a resolved attribute with the value it has on an object
type AttributeValue struct {
	Attribute *Attribute
	Value     any
}

func newObject(m *Model, name string, classifier *Classifier) *Object {
	o := &Object{
		id:         uuid.New(),
		name:       name,
		model:      m,
		classifier: classifier,
		values:     newSlots(),
		referrers:  make(map[slotRef]struct{}),
		links:      make(map[*AssociationEnd][]*Link),
	}
	o.stereotyping = newStereotyping(o)
	return o
}

// NewObject creates an object of class. An empty name is auto-generated.
func (m *Model) NewObject(class *Classifier, name string) (*Object, error) {
	if class == nil {
		return nil, errors.NewUnknownClassifier("<nil>")
	}
	if err := class.expect(KindClass); err != nil {
		return nil, err
	}
	if err := class.alive(); err != nil {
		return nil, err
	}
	if name == "" {
		name = m.generateName("object", m.objectTaken)
	}
	if m.objectTaken(name) {
		return nil, errors.NewDuplicateObject(name, m.name)
	}

	o := newObject(m, name, class)
	class.objects = append(class.objects, o)
	m.registerObject(o)
	m.logger.Debug("object created", zap.String("object", name), zap.String("classifier", class.name))
	return o, nil
}

// ID returns the object's unique identifier
func (o *Object) ID() uuid.UUID {
	return o.id
}

// Name returns the object name; a class's own object carries the class name
func (o *Object) Name() string {
	return o.name
}

// String returns the object name
func (o *Object) String() string {
	return o.name
}

// Model returns the owning model
func (o *Object) Model() *Model {
	return o.model
}

// Classifier returns the classifying type, or nil after it was deleted
func (o *Object) Classifier() *Classifier {
	return o.classifier
}

// Class returns the class this object represents, or nil for ordinary objects
func (o *Object) Class() *Classifier {
	return o.class
}

// IsClassObject reports whether o is a class viewed as an instance
func (o *Object) IsClassObject() bool {
	return o.class != nil
}

// IsDeleted reports whether the object has been deleted
func (o *Object) IsDeleted() bool {
	return o.deleted
}

// InstanceOf reports whether o's type is c or one of c's descendants
func (o *Object) InstanceOf(c *Classifier) bool {
	return o.classifier != nil && o.classifier.ConformsTo(c)
}

func (o *Object) alive() error {
	if o.deleted {
		return errors.NewDeletedElement(o.name)
	}
	return nil
}

func (o *Object) stereotypes() *stereotyping {
	return &o.stereotyping
}

func (o *Object) owningModel() *Model {
	return o.model
}

func (o *Object) lattice() []Extendable {
	path := o.path()
	lattice := make([]Extendable, len(path))
	for i, c := range path {
		lattice[i] = c
	}
	return lattice
}

func (o *Object) path() []*Classifier {
	if o.classifier == nil {
		return nil
	}
	return o.classifier.ResolutionPath()
}

// Value returns the value of the attribute an unqualified name resolves to
// along the object's resolution path. Unset slots yield the default.
func (o *Object) Value(name string) (any, error) {
	attr, err := o.resolve(name)
	if err != nil {
		return nil, err
	}
	return o.read(attr), nil
}

// SetValue validates and stores v in the slot an unqualified name resolves to
func (o *Object) SetValue(name string, v any) error {
	attr, err := o.resolve(name)
	if err != nil {
		return err
	}
	return o.write(attr, v)
}

// ValueOf returns the value of classifier's own attribute name, bypassing
// resolution so that shadowed attributes stay reachable.
func (o *Object) ValueOf(classifier *Classifier, name string) (any, error) {
	attr, err := o.qualify(classifier, name)
	if err != nil {
		return nil, err
	}
	return o.read(attr), nil
}

// SetValueOf validates and stores v in classifier's own slot for name
func (o *Object) SetValueOf(classifier *Classifier, name string, v any) error {
	attr, err := o.qualify(classifier, name)
	if err != nil {
		return err
	}
	return o.write(attr, v)
}

// Values returns the value of every attribute an unqualified lookup can
// reach, in resolution order; shadowed definitions are omitted.
func (o *Object) Values() []AttributeValue {
	var result []AttributeValue
	seen := make(map[string]bool)
	for _, n := range o.path() {
		for _, attr := range n.attributes {
			if seen[attr.name] {
				continue
			}
			seen[attr.name] = true
			result = append(result, AttributeValue{Attribute: attr, Value: o.read(attr)})
		}
	}
	return result
}

// HasValue reports whether the slot for the resolved attribute was written
func (o *Object) HasValue(name string) bool {
	attr, err := o.resolve(name)
	if err != nil {
		return false
	}
	_, ok := o.values.get(attr)
	return ok
}

func (o *Object) resolve(name string) (*Attribute, error) {
	if err := o.alive(); err != nil {
		return nil, err
	}
	attr, ok := findAttribute(o.path(), name)
	if !ok {
		return nil, errors.NewUnknownObjectAttribute(name, o.name)
	}
	return attr, nil
}

func (o *Object) qualify(classifier *Classifier, name string) (*Attribute, error) {
	if err := o.alive(); err != nil {
		return nil, err
	}
	if classifier == nil {
		return nil, errors.NewUnknownClassifier("<nil>")
	}
	attr, ok := classifier.Attribute(name)
	if !ok {
		return nil, errors.NewUnknownClassifierAttribute(name, classifier.name)
	}
	if !slices.Contains(o.path(), classifier) {
		return nil, errors.NewNotClassifierOf(classifier.name, o.name)
	}
	return attr, nil
}

func (o *Object) read(attr *Attribute) any {
	if v, ok := o.values.get(attr); ok {
		return v
	}
	return attr.Default()
}

func (o *Object) write(attr *Attribute, v any) error {
	v = noValue(v)
	if err := values.Check(attr.name, attr.typ, v); err != nil {
		return err
	}
	o.values.set(attr, v)
	o.model.logger.Debug("value set",
		zap.String("object", o.name),
		zap.String("classifier", attr.owner.name),
		zap.String("attribute", attr.name))
	return nil
}

// Delete removes the object, its links on both sides, its stereotype
// applications, and every attribute or tagged value referring to it.
// A class's own object is deleted by deleting the class.
func (o *Object) Delete() error {
	if err := o.alive(); err != nil {
		return err
	}
	if o.class != nil {
		return o.class.Delete()
	}
	if o.classifier != nil {
		o.classifier.objects = without(o.classifier.objects, o)
	}
	o.destroy()
	o.model.unregisterObject(o)
	o.model.logger.Debug("object deleted", zap.String("object", o.name))
	return nil
}

// destroy severs everything o holds and everything pointing at it
func (o *Object) destroy() {
	o.clearClassifier()
	for ref := range o.referrers {
		ref.s.m[ref.attr] = nil
	}
	o.referrers = make(map[slotRef]struct{})
	o.deleted = true
}

// dropStrayLinks removes every link that holds o at an end whose classifier
// o no longer conforms to
func (o *Object) dropStrayLinks() {
	dropped := 0
	for _, l := range append([]*Link(nil), o.allLinks...) {
		for i, end := range l.association.ends {
			if l.objects[i] == o && !o.InstanceOf(end.classifier) {
				l.unlink()
				dropped++
				break
			}
		}
	}
	if dropped > 0 {
		o.model.logger.Debug("stray links removed",
			zap.String("object", o.name),
			zap.Int("count", dropped))
	}
}

// clearClassifier detaches o from its type: links, values and stereotype
// applications all depend on the type and are removed with it.
func (o *Object) clearClassifier() {
	for _, l := range append([]*Link(nil), o.allLinks...) {
		l.unlink()
	}
	o.values.clear()
	o.stereotyping.clear()
	o.classifier = nil
}
