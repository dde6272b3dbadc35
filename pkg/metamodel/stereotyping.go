package metamodel

import (
	"slices"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
	"go.uber.org/zap"
)

// stereotypable is implemented by the elements stereotypes are applied to:
// objects (including class objects) and links.
type stereotypable interface {
	Name() string
	stereotypes() *stereotyping
	// lattice returns the element's classifying type followed by the type's
	// ancestors, as extension targets
	lattice() []Extendable
	owningModel() *Model
	alive() error
}

// stereotyping holds the ordered stereotype applications of one element and
// the tagged value slots they define. Its exported methods are promoted to
// Object and Link.
type stereotyping struct {
	el      stereotypable
	applied []*Classifier
	tagged  *slots
}

func newStereotyping(el stereotypable) stereotyping {
	return stereotyping{el: el, tagged: newSlots()}
}

// ApplyStereotype applies st to the element. The application is valid only
// when st or one of its ancestors extends the element's type or one of the
// type's ancestors.
func (s *stereotyping) ApplyStereotype(st *Classifier) error {
	if err := s.el.alive(); err != nil {
		return err
	}
	if st == nil {
		return errors.NewUnknownClassifier("<nil>")
	}
	if err := st.stereotypeAlive(); err != nil {
		return err
	}
	if slices.Contains(s.applied, st) {
		return errors.NewStereotypeApplied(st.name, s.el.Name())
	}
	if !extendsAny(st, s.el.lattice()) {
		return errors.NewNoExtension(st.name, s.el.Name())
	}

	s.applied = append(s.applied, st)
	st.appliedTo = append(st.appliedTo, s.el)
	st.model.logger.Debug("stereotype applied",
		zap.String("stereotype", st.name),
		zap.String("element", s.el.Name()))
	return nil
}

// ApplyStereotypeByName resolves name to a stereotype through the element's
// model registry and applies it.
func (s *stereotyping) ApplyStereotypeByName(name string) error {
	st, err := s.el.owningModel().Stereotype(name)
	if err != nil {
		return err
	}
	return s.ApplyStereotype(st)
}

// RemoveStereotype removes the application of st and the tagged values only
// it made reachable.
func (s *stereotyping) RemoveStereotype(st *Classifier) error {
	if err := s.el.alive(); err != nil {
		return err
	}
	if st == nil || !slices.Contains(s.applied, st) {
		name := "<nil>"
		if st != nil {
			name = st.name
		}
		return errors.NewStereotypeNotApplied(name, s.el.Name())
	}
	s.detach(st)
	return nil
}

// AppliedStereotypes returns the applied stereotypes in application order
func (s *stereotyping) AppliedStereotypes() []*Classifier {
	return append([]*Classifier(nil), s.applied...)
}

// HasStereotype reports whether st is applied by reference
func (s *stereotyping) HasStereotype(st *Classifier) bool {
	return slices.Contains(s.applied, st)
}

// TaggedValue returns the value of the first tagged value named name, scanning
// applied stereotypes in application order and each one's resolution path.
func (s *stereotyping) TaggedValue(name string) (any, error) {
	attr, err := s.resolve(name)
	if err != nil {
		return nil, err
	}
	return s.read(attr), nil
}

// SetTaggedValue validates and stores v for the first tagged value named name
func (s *stereotyping) SetTaggedValue(name string, v any) error {
	attr, err := s.resolve(name)
	if err != nil {
		return err
	}
	return s.write(attr, v)
}

// TaggedValueOf returns the tagged value name as seen through the applied
// stereotype st
func (s *stereotyping) TaggedValueOf(st *Classifier, name string) (any, error) {
	attr, err := s.qualify(st, name)
	if err != nil {
		return nil, err
	}
	return s.read(attr), nil
}

// SetTaggedValueOf validates and stores v for name as seen through st
func (s *stereotyping) SetTaggedValueOf(st *Classifier, name string, v any) error {
	attr, err := s.qualify(st, name)
	if err != nil {
		return err
	}
	return s.write(attr, v)
}

// TaggedValues returns every tagged value an unqualified lookup can reach, in
// lookup order
func (s *stereotyping) TaggedValues() []AttributeValue {
	var result []AttributeValue
	seen := make(map[string]bool)
	for _, st := range s.applied {
		for _, n := range st.ResolutionPath() {
			for _, attr := range n.attributes {
				if seen[attr.name] {
					continue
				}
				seen[attr.name] = true
				result = append(result, AttributeValue{Attribute: attr, Value: s.read(attr)})
			}
		}
	}
	return result
}

func (s *stereotyping) resolve(name string) (*Attribute, error) {
	if err := s.el.alive(); err != nil {
		return nil, err
	}
	for _, st := range s.applied {
		if attr, ok := findAttribute(st.ResolutionPath(), name); ok {
			return attr, nil
		}
	}
	return nil, errors.NewUnknownTaggedValue(name)
}

func (s *stereotyping) qualify(st *Classifier, name string) (*Attribute, error) {
	if err := s.el.alive(); err != nil {
		return nil, err
	}
	if st == nil {
		return nil, errors.NewUnknownClassifier("<nil>")
	}
	if !slices.Contains(s.applied, st) {
		return nil, errors.NewNotStereotypeOfElement(st.name)
	}
	attr, ok := findAttribute(st.ResolutionPath(), name)
	if !ok {
		return nil, errors.NewUnknownStereotypeTaggedValue(name, st.name)
	}
	return attr, nil
}

func (s *stereotyping) read(attr *Attribute) any {
	if v, ok := s.tagged.get(attr); ok {
		return v
	}
	return attr.Default()
}

func (s *stereotyping) write(attr *Attribute, v any) error {
	v = noValue(v)
	if err := values.Check(attr.name, attr.typ, v); err != nil {
		return err
	}
	s.tagged.set(attr, v)
	attr.owner.model.logger.Debug("tagged value set",
		zap.String("element", s.el.Name()),
		zap.String("stereotype", attr.owner.name),
		zap.String("attribute", attr.name))
	return nil
}

// detach removes st from the applications and prunes orphaned tag slots
func (s *stereotyping) detach(st *Classifier) {
	s.applied = without(s.applied, st)
	st.appliedTo = without(st.appliedTo, s.el)
	s.prune()
	st.model.logger.Debug("stereotype removed",
		zap.String("stereotype", st.name),
		zap.String("element", s.el.Name()))
}

// prune drops tag slots no applied stereotype can reach any more
func (s *stereotyping) prune() {
	reachable := make(map[*Attribute]bool)
	for _, st := range s.applied {
		for attr := range st.reachableAttributes() {
			reachable[attr] = true
		}
	}
	s.tagged.retain(reachable)
}

// revalidate removes applications whose extension path disappeared
func (s *stereotyping) revalidate() {
	lattice := s.el.lattice()
	for _, st := range append([]*Classifier(nil), s.applied...) {
		if !extendsAny(st, lattice) {
			s.detach(st)
		}
	}
	s.prune()
}

// clear removes every application
func (s *stereotyping) clear() {
	for _, st := range s.applied {
		st.appliedTo = without(st.appliedTo, s.el)
	}
	s.applied = nil
	s.tagged.clear()
}
