package metamodel

import (
	"fmt"
	"strings"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AssociationEnd is one typed, multiplicity-constrained side of an
// association. An end is created on its own and becomes owned by the first
// association it is passed to.
type AssociationEnd struct {
	role         string
	classifier   *Classifier
	multiplicity Multiplicity
	navigable    bool
	association  *Association
	deleted      bool
}

// EndOption configures an association end
type EndOption func(*AssociationEnd)

// WithRole sets the role name; the default is the lower-cased classifier name
func WithRole(role string) EndOption {
	return func(e *AssociationEnd) {
		if role != "" {
			e.role = role
		}
	}
}

// NonNavigable marks the end as not navigable: objects on the other side
// cannot read or change the links through it.
func NonNavigable() EndOption {
	return func(e *AssociationEnd) {
		e.navigable = false
	}
}

// NewEnd creates an unattached association end typed by classifier
func NewEnd(classifier *Classifier, multiplicity string, opts ...EndOption) (*AssociationEnd, error) {
	if classifier == nil {
		return nil, errors.NewUnknownClassifier("<nil>")
	}
	if err := classifier.alive(); err != nil {
		return nil, err
	}
	if classifier.kind == KindStereotype {
		return nil, errors.NewWrongClassifierKind(classifier.name, classifier.kind.String(), "class or metaclass")
	}
	m, err := ParseMultiplicity(multiplicity)
	if err != nil {
		return nil, err
	}

	e := &AssociationEnd{
		role:         strings.ToLower(classifier.name),
		classifier:   classifier,
		multiplicity: m,
		navigable:    true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Role returns the role name
func (e *AssociationEnd) Role() string {
	return e.role
}

// Classifier returns the classifier objects at this end must conform to
func (e *AssociationEnd) Classifier() *Classifier {
	return e.classifier
}

// Multiplicity returns the end's multiplicity
func (e *AssociationEnd) Multiplicity() Multiplicity {
	return e.multiplicity
}

// IsNavigable reports whether the end can be navigated to
func (e *AssociationEnd) IsNavigable() bool {
	return e.navigable
}

// Association returns the owning association, or nil while unattached
func (e *AssociationEnd) Association() *Association {
	return e.association
}

// Other returns the paired end of the owning association, or nil
func (e *AssociationEnd) Other() *AssociationEnd {
	if e.association == nil {
		return nil
	}
	if e.association.ends[0] == e {
		return e.association.ends[1]
	}
	return e.association.ends[0]
}

// String returns "role: Classifier[multiplicity]"
func (e *AssociationEnd) String() string {
	return fmt.Sprintf("%s: %s[%s]", e.role, e.classifier.name, e.multiplicity)
}

// Association is a typed binary relation between classifiers whose
// instances are links between objects. The two ends keep creation order.
type Association struct {
	id    uuid.UUID
	name  string
	model *Model

	ends        [2]*AssociationEnd
	aggregation bool
	composition bool

	links      []*Link
	extensions extensionPoint

	deleted bool
}

// NewAssociation relates the classifiers of source and target. Both ends
// must be unattached and their roles distinct.
func (m *Model) NewAssociation(name string, source, target *AssociationEnd) (*Association, error) {
	for _, e := range []*AssociationEnd{source, target} {
		if e == nil {
			return nil, errors.NewUnknownClassifier("<nil>")
		}
		if e.association != nil {
			return nil, errors.NewEndInUse(e.role, e.association.Name())
		}
		if e.deleted {
			return nil, errors.NewDeletedElement(e.role)
		}
		if err := e.classifier.alive(); err != nil {
			return nil, err
		}
	}
	if source == target {
		return nil, errors.NewEndInUse(source.role, name)
	}
	if source.role == target.role {
		return nil, errors.NewDuplicateRole(source.role)
	}

	a := &Association{
		id:    uuid.New(),
		name:  name,
		model: m,
		ends:  [2]*AssociationEnd{source, target},
	}
	for _, e := range a.ends {
		e.association = a
		e.classifier.ends = append(e.classifier.ends, e)
	}
	m.associations = append(m.associations, a)

	m.logger.Debug("association created",
		zap.String("association", name),
		zap.Stringer("source", source),
		zap.Stringer("target", target))
	return a, nil
}

// ID returns the association's unique identifier
func (a *Association) ID() uuid.UUID {
	return a.id
}

// Name returns the association name, which may be empty
func (a *Association) Name() string {
	if a.name == "" {
		return a.ends[0].classifier.name + " -> " + a.ends[1].classifier.name
	}
	return a.name
}

// String returns the association name
func (a *Association) String() string {
	return a.Name()
}

// Model returns the owning model
func (a *Association) Model() *Model {
	return a.model
}

// Ends returns both ends in creation order
func (a *Association) Ends() [2]*AssociationEnd {
	return a.ends
}

// Source returns the first end
func (a *Association) Source() *AssociationEnd {
	return a.ends[0]
}

// Target returns the second end
func (a *Association) Target() *AssociationEnd {
	return a.ends[1]
}

// End returns the end with the given role
func (a *Association) End(role string) (*AssociationEnd, bool) {
	for _, e := range a.ends {
		if e.role == role {
			return e, true
		}
	}
	return nil, false
}

// Links returns the association's links in creation order
func (a *Association) Links() []*Link {
	return append([]*Link(nil), a.links...)
}

// IsAggregation reports whether the association is an aggregation
func (a *Association) IsAggregation() bool {
	return a.aggregation
}

// IsComposition reports whether the association is a composition
func (a *Association) IsComposition() bool {
	return a.composition
}

// SetAggregation sets the aggregation flag; setting it clears composition
func (a *Association) SetAggregation(aggregation bool) {
	a.aggregation = aggregation
	if aggregation {
		a.composition = false
	}
}

// SetComposition sets the composition flag; setting it clears aggregation
func (a *Association) SetComposition(composition bool) {
	a.composition = composition
	if composition {
		a.aggregation = false
	}
}

// IsDeleted reports whether the association has been deleted
func (a *Association) IsDeleted() bool {
	return a.deleted
}

// ExtendedBy returns the stereotypes extending the association
func (a *Association) ExtendedBy() []*Classifier {
	return append([]*Classifier(nil), a.extensions.stereotypes...)
}

func (a *Association) extensionPoint() *extensionPoint {
	return &a.extensions
}

// ExtendWith makes stereotype st extend the association
func (a *Association) ExtendWith(st *Classifier) error {
	if st == nil {
		return errors.NewUnknownClassifier("<nil>")
	}
	return st.Extend(a)
}

// RemoveExtension removes stereotype st's extension of the association
func (a *Association) RemoveExtension(st *Classifier) error {
	if st == nil {
		return errors.NewUnknownClassifier("<nil>")
	}
	return st.Unextend(a)
}

func (a *Association) alive() error {
	if a.deleted {
		return errors.NewDeletedElement(a.Name())
	}
	return nil
}

// Delete removes the association, both of its ends, all of its links and
// every extension of it.
func (a *Association) Delete() error {
	if err := a.alive(); err != nil {
		return err
	}
	a.delete()
	return nil
}

func (a *Association) delete() {
	for _, l := range append([]*Link(nil), a.links...) {
		l.unlink()
	}
	for _, st := range append([]*Classifier(nil), a.extensions.stereotypes...) {
		st.unlink(a)
	}
	for _, e := range a.ends {
		e.classifier.ends = without(e.classifier.ends, e)
		e.association = nil
		e.deleted = true
	}
	a.model.unregisterAssociation(a)
	a.deleted = true
	a.model.logger.Debug("association deleted", zap.String("association", a.Name()))
}

// Associations returns one entry per association end typed by c, so a
// self-association appears twice.
func (c *Classifier) Associations() []*Association {
	result := make([]*Association, 0, len(c.ends))
	for _, e := range c.ends {
		result = append(result, e.association)
	}
	return result
}

// AssociationEnds returns the attached ends typed by c
func (c *Classifier) AssociationEnds() []*AssociationEnd {
	return append([]*AssociationEnd(nil), c.ends...)
}

// CheckMultiplicity verifies every object typed by either end against the
// full bounds of the opposite end. AddLinks only enforces upper bounds, so
// callers building a graph incrementally run this once the graph is complete.
// The first violation found is returned, with the object added as element.
func (a *Association) CheckMultiplicity() error {
	if err := a.alive(); err != nil {
		return err
	}
	for _, end := range a.ends {
		other := end.Other()
		for _, o := range other.classifier.AllObjects() {
			count := len(o.links[end])
			if !end.multiplicity.Allows(count) {
				return errors.NewWrongMultiplicity(count, end.multiplicity.String()).WithElement(o.name)
			}
		}
	}
	return nil
}
