package metamodel

import (
	"fmt"
	"slices"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"go.uber.org/zap"
)

// Link operations are addressed by the target end: the end the linked
// objects sit at. The object itself must conform to the classifier of the
// other end.

// End resolves role to a target end reachable from o: an end whose paired
// end is typed by a classifier on o's resolution path.
func (o *Object) End(role string) (*AssociationEnd, error) {
	if err := o.alive(); err != nil {
		return nil, err
	}
	for _, c := range o.path() {
		for _, own := range c.ends {
			if other := own.Other(); other != nil && other.role == role {
				return other, nil
			}
		}
	}
	return nil, errors.NewUnknownRole(role, o.name)
}

// Links returns every link o takes part in, in creation order
func (o *Object) Links() []*Link {
	return append([]*Link(nil), o.allLinks...)
}

// LinksVia returns the links connecting o to objects at end
func (o *Object) LinksVia(end *AssociationEnd) ([]*Link, error) {
	if err := o.navigate(end); err != nil {
		return nil, err
	}
	return append([]*Link(nil), o.links[end]...), nil
}

// Linked returns the objects linked to o at end in link creation order
func (o *Object) Linked(end *AssociationEnd) ([]*Object, error) {
	if err := o.navigate(end); err != nil {
		return nil, err
	}
	return o.partners(end), nil
}

// LinkedByRole is Linked with the end resolved by role
func (o *Object) LinkedByRole(role string) ([]*Object, error) {
	end, err := o.End(role)
	if err != nil {
		return nil, err
	}
	return o.Linked(end)
}

// SetLinks replaces the objects linked at end with targets. The resulting
// count must satisfy the end's multiplicity; on any failure the existing
// links are left untouched. Kept links keep their position, new ones follow
// in the given order.
func (o *Object) SetLinks(end *AssociationEnd, targets ...any) error {
	if err := o.navigate(end); err != nil {
		return err
	}
	objs, err := o.resolveTargets(end, targets)
	if err != nil {
		return err
	}
	if !end.multiplicity.Allows(len(objs)) {
		return errors.NewWrongMultiplicity(len(objs), end.multiplicity.String())
	}

	current := o.partners(end)
	var added []*Object
	for _, t := range objs {
		if !slices.Contains(current, t) {
			added = append(added, t)
		}
	}
	if err := o.checkPairedBound(end, added); err != nil {
		return err
	}

	for _, l := range append([]*Link(nil), o.links[end]...) {
		if !slices.Contains(objs, l.at(end)) {
			l.unlink()
		}
	}
	for _, t := range added {
		o.link(end, t)
	}
	o.model.logger.Debug("links set",
		zap.String("object", o.name),
		zap.String("role", end.role),
		zap.Int("count", len(objs)))
	return nil
}

// SetLinksByRole is SetLinks with the end resolved by role
func (o *Object) SetLinksByRole(role string, targets ...any) error {
	end, err := o.End(role)
	if err != nil {
		return err
	}
	return o.SetLinks(end, targets...)
}

// AddLinks links o to targets at end after the existing links. Only the
// upper bound is enforced so that a lower bound can be reached step by step.
// Nil targets are skipped.
func (o *Object) AddLinks(end *AssociationEnd, targets ...any) error {
	if err := o.navigate(end); err != nil {
		return err
	}
	objs, err := o.resolveTargets(end, targets)
	if err != nil {
		return err
	}
	if len(objs) == 0 {
		return nil
	}

	current := o.partners(end)
	for _, t := range objs {
		if slices.Contains(current, t) {
			return errors.NewAlreadyLinked(o.name, t.name)
		}
	}
	if count := len(current) + len(objs); !end.multiplicity.AllowsUpper(count) {
		return errors.NewWrongMultiplicity(count, end.multiplicity.String())
	}
	if err := o.checkPairedBound(end, objs); err != nil {
		return err
	}

	for _, t := range objs {
		o.link(end, t)
	}
	o.model.logger.Debug("links added",
		zap.String("object", o.name),
		zap.String("role", end.role),
		zap.Int("count", len(objs)))
	return nil
}

// AddLinksByRole is AddLinks with the end resolved by role
func (o *Object) AddLinksByRole(role string, targets ...any) error {
	end, err := o.End(role)
	if err != nil {
		return err
	}
	return o.AddLinks(end, targets...)
}

// RemoveLinks removes the links between o and targets at end. Every target
// must currently be linked and appear once.
func (o *Object) RemoveLinks(end *AssociationEnd, targets ...any) error {
	if err := o.navigate(end); err != nil {
		return err
	}
	objs, err := o.lookupTargets(targets)
	if err != nil {
		return err
	}

	var doomed []*Link
	for _, t := range objs {
		l := o.linkTo(end, t)
		if l == nil || slices.Contains(doomed, l) {
			return errors.NewNotLinked(t.name, o.name)
		}
		doomed = append(doomed, l)
	}
	for _, l := range doomed {
		l.unlink()
	}
	o.model.logger.Debug("links removed",
		zap.String("object", o.name),
		zap.String("role", end.role),
		zap.Int("count", len(doomed)))
	return nil
}

// RemoveLinksByRole is RemoveLinks with the end resolved by role
func (o *Object) RemoveLinksByRole(role string, targets ...any) error {
	end, err := o.End(role)
	if err != nil {
		return err
	}
	return o.RemoveLinks(end, targets...)
}

// RemoveAllLinks removes every link between o and objects at end
func (o *Object) RemoveAllLinks(end *AssociationEnd) error {
	if err := o.navigate(end); err != nil {
		return err
	}
	for _, l := range append([]*Link(nil), o.links[end]...) {
		l.unlink()
	}
	return nil
}

// RemoveAllLinksByRole is RemoveAllLinks with the end resolved by role
func (o *Object) RemoveAllLinksByRole(role string) error {
	end, err := o.End(role)
	if err != nil {
		return err
	}
	return o.RemoveAllLinks(end)
}

// navigate checks that o may reach objects at end
func (o *Object) navigate(end *AssociationEnd) error {
	if err := o.alive(); err != nil {
		return err
	}
	if end == nil {
		return errors.NewUnknownRole("<nil>", o.name)
	}
	if end.association == nil {
		return errors.NewDeletedElement(end.role)
	}
	if err := end.association.alive(); err != nil {
		return err
	}
	if !o.InstanceOf(end.Other().classifier) {
		return errors.NewUnknownRole(end.role, o.name)
	}
	if !end.navigable {
		return errors.NewNotNavigable(end.role, o.name)
	}
	return nil
}

// resolveTargets resolves and type checks link targets for end. Nil targets
// are dropped; repeating a target is an error.
func (o *Object) resolveTargets(end *AssociationEnd, targets []any) ([]*Object, error) {
	objs, err := o.lookupTargets(targets)
	if err != nil {
		return nil, err
	}
	for i, t := range objs {
		if slices.Contains(objs[:i], t) {
			return nil, errors.NewAlreadyLinked(o.name, t.name)
		}
		if !t.InstanceOf(end.classifier) {
			return nil, errors.NewLinkTypeMismatch(t.name, end.classifier.name, end.role)
		}
	}
	return objs, nil
}

func (o *Object) lookupTargets(targets []any) ([]*Object, error) {
	objs := make([]*Object, 0, len(targets))
	for _, target := range targets {
		switch t := target.(type) {
		case nil:
			continue
		case *Object:
			if t == nil {
				continue
			}
			if err := t.alive(); err != nil {
				return nil, err
			}
			objs = append(objs, t)
		case string:
			obj, err := o.model.Object(t)
			if err != nil {
				return nil, err
			}
			objs = append(objs, obj)
		default:
			return nil, errors.NewInvalidLinkTarget(fmt.Sprintf("%v", target))
		}
	}
	return objs, nil
}

// checkPairedBound enforces the upper bound of the paired end on every
// newly linked target
func (o *Object) checkPairedBound(end *AssociationEnd, added []*Object) error {
	other := end.Other()
	for _, t := range added {
		count := len(t.links[other]) + 1
		if !other.multiplicity.AllowsUpper(count) {
			return errors.NewWrongMultiplicity(count, other.multiplicity.String())
		}
	}
	return nil
}

// link creates the link between o at end's paired end and t at end
func (o *Object) link(end *AssociationEnd, t *Object) *Link {
	a := end.association
	if a.ends[1] == end {
		return newLink(a, o, t)
	}
	return newLink(a, t, o)
}

func (o *Object) partners(end *AssociationEnd) []*Object {
	links := o.links[end]
	result := make([]*Object, 0, len(links))
	for _, l := range links {
		result = append(result, l.at(end))
	}
	return result
}

func (o *Object) linkTo(end *AssociationEnd, t *Object) *Link {
	for _, l := range o.links[end] {
		if l.at(end) == t {
			return l
		}
	}
	return nil
}

// at returns the object at end, which must belong to l's association
func (l *Link) at(end *AssociationEnd) *Object {
	if l.association.ends[0] == end {
		return l.objects[0]
	}
	return l.objects[1]
}
