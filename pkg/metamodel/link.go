package metamodel

import (
	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/google/uuid"
)

// Link is an instance of an association between two objects, held in the
// association's end order. Links are only created and removed through the
// link operations of Object.
type Link struct {
	id          uuid.UUID
	association *Association
	objects     [2]*Object

	stereotyping

	deleted bool
}

func newLink(a *Association, source, target *Object) *Link {
	l := &Link{
		id:          uuid.New(),
		association: a,
		objects:     [2]*Object{source, target},
	}
	l.stereotyping = newStereotyping(l)

	a.links = append(a.links, l)
	source.links[a.ends[1]] = append(source.links[a.ends[1]], l)
	target.links[a.ends[0]] = append(target.links[a.ends[0]], l)
	source.allLinks = append(source.allLinks, l)
	if target != source {
		target.allLinks = append(target.allLinks, l)
	}
	return l
}

// unlink removes l from its association and both objects
func (l *Link) unlink() {
	a := l.association
	source, target := l.objects[0], l.objects[1]

	a.links = without(a.links, l)
	source.links[a.ends[1]] = without(source.links[a.ends[1]], l)
	target.links[a.ends[0]] = without(target.links[a.ends[0]], l)
	source.allLinks = without(source.allLinks, l)
	if target != source {
		target.allLinks = without(target.allLinks, l)
	}
	l.stereotyping.clear()
	l.deleted = true
}

// ID returns the link's unique identifier
func (l *Link) ID() uuid.UUID {
	return l.id
}

// Name returns "source -> target"
func (l *Link) Name() string {
	return l.objects[0].name + " -> " + l.objects[1].name
}

// String returns the link name
func (l *Link) String() string {
	return l.Name()
}

// Association returns the association l instantiates
func (l *Link) Association() *Association {
	return l.association
}

// Source returns the object at the association's first end
func (l *Link) Source() *Object {
	return l.objects[0]
}

// Target returns the object at the association's second end
func (l *Link) Target() *Object {
	return l.objects[1]
}

// Objects returns both objects in end order
func (l *Link) Objects() [2]*Object {
	return l.objects
}

// ObjectAt returns the object sitting at end
func (l *Link) ObjectAt(end *AssociationEnd) (*Object, error) {
	for i, e := range l.association.ends {
		if e == end {
			return l.objects[i], nil
		}
	}
	role := "<nil>"
	if end != nil {
		role = end.role
	}
	return nil, errors.NewForeignEnd(role, l.association.Name())
}

// ObjectByRole returns the object at the end with the given role
func (l *Link) ObjectByRole(role string) (*Object, bool) {
	for i, e := range l.association.ends {
		if e.role == role {
			return l.objects[i], true
		}
	}
	return nil, false
}

// ObjectByName returns the linked object with the given name
func (l *Link) ObjectByName(name string) (*Object, bool) {
	for _, o := range l.objects {
		if o.name == name {
			return o, true
		}
	}
	return nil, false
}

// ObjectByClassifier returns the object at the end typed by c. Only the
// end's declared classifier matches, not its ancestors or descendants.
func (l *Link) ObjectByClassifier(c *Classifier) (*Object, bool) {
	for i, e := range l.association.ends {
		if e.classifier == c {
			return l.objects[i], true
		}
	}
	return nil, false
}

// IsDeleted reports whether the link has been removed
func (l *Link) IsDeleted() bool {
	return l.deleted
}

func (l *Link) alive() error {
	if l.deleted {
		return errors.NewDeletedElement(l.Name())
	}
	return nil
}

func (l *Link) stereotypes() *stereotyping {
	return &l.stereotyping
}

func (l *Link) owningModel() *Model {
	return l.association.model
}

// a link's stereotypes must extend its association
func (l *Link) lattice() []Extendable {
	return []Extendable{l.association}
}
