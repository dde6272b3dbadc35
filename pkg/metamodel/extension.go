package metamodel

import (
	"slices"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"go.uber.org/zap"
)

// Extendable is an element a stereotype can extend: a metaclass or an
// association. ExtendedBy lists the extending stereotypes in the order the
// extensions were made.
type Extendable interface {
	Name() string
	ExtendedBy() []*Classifier
	extensionPoint() *extensionPoint
}

type extensionPoint struct {
	stereotypes []*Classifier
}

func checkExtendable(target Extendable) error {
	switch t := target.(type) {
	case nil:
		return errors.NewNotExtendable("<nil>")
	case *Classifier:
		if t == nil {
			return errors.NewNotExtendable("<nil>")
		}
		if t.kind != KindMetaclass {
			return errors.NewNotExtendable(t.name)
		}
		return t.alive()
	case *Association:
		if t == nil {
			return errors.NewNotExtendable("<nil>")
		}
		return t.alive()
	default:
		return errors.NewNotExtendable(target.Name())
	}
}

// ExtendedBy returns the stereotypes extending a metaclass
func (c *Classifier) ExtendedBy() []*Classifier {
	return append([]*Classifier(nil), c.extensions.stereotypes...)
}

func (c *Classifier) extensionPoint() *extensionPoint {
	return &c.extensions
}

// ExtendWith makes stereotype st extend the metaclass c
func (c *Classifier) ExtendWith(st *Classifier) error {
	if st == nil {
		return errors.NewUnknownClassifier("<nil>")
	}
	return st.Extend(c)
}

// RemoveExtension removes stereotype st's extension of the metaclass c
func (c *Classifier) RemoveExtension(st *Classifier) error {
	if st == nil {
		return errors.NewUnknownClassifier("<nil>")
	}
	return st.Unextend(c)
}

// Extended returns the metaclasses and associations a stereotype extends
func (c *Classifier) Extended() []Extendable {
	return append([]Extendable(nil), c.extended...)
}

// Extends reports whether the stereotype directly extends target
func (c *Classifier) Extends(target Extendable) bool {
	return slices.Contains(c.extended, target)
}

// Extend adds target to the stereotype's extended elements. A duplicate
// reference fails.
func (c *Classifier) Extend(target Extendable) error {
	if err := c.stereotypeAlive(); err != nil {
		return err
	}
	if err := checkExtendable(target); err != nil {
		return err
	}
	if slices.Contains(c.extended, target) {
		return errors.NewAlreadyExtended(target.Name(), c.name)
	}
	c.link(target)
	return nil
}

// ExtendByName resolves name through the model registry and extends the
// result. A stereotype already extending an element of that name fails
// before the lookup.
func (c *Classifier) ExtendByName(name string) error {
	if err := c.stereotypeAlive(); err != nil {
		return err
	}
	for _, ext := range c.extended {
		if ext.Name() == name {
			return errors.NewAlreadyExtendedByName(name, c.name)
		}
	}
	target, err := c.model.Extendable(name)
	if err != nil {
		return err
	}
	if err := checkExtendable(target); err != nil {
		return err
	}
	c.link(target)
	return nil
}

// Unextend removes target from the stereotype's extended elements.
// Applications that no longer have a valid extension path are removed.
func (c *Classifier) Unextend(target Extendable) error {
	if err := c.stereotypeAlive(); err != nil {
		return err
	}
	if target == nil || !slices.Contains(c.extended, target) {
		name := "<nil>"
		if target != nil {
			name = target.Name()
		}
		return errors.NewNotExtended(name, c.name)
	}
	c.unlink(target)
	c.revalidate()
	return nil
}

func (c *Classifier) stereotypeAlive() error {
	if err := c.expect(KindStereotype); err != nil {
		return err
	}
	return c.alive()
}

// link records the extension on both sides
func (c *Classifier) link(target Extendable) {
	c.extended = append(c.extended, target)
	point := target.extensionPoint()
	point.stereotypes = append(point.stereotypes, c)
	c.model.logger.Debug("extension added",
		zap.String("stereotype", c.name),
		zap.String("extended", target.Name()))
}

func (c *Classifier) unlink(target Extendable) {
	c.extended = without(c.extended, target)
	point := target.extensionPoint()
	point.stereotypes = without(point.stereotypes, c)
	c.model.logger.Debug("extension removed",
		zap.String("stereotype", c.name),
		zap.String("extended", target.Name()))
}

// extendsAny reports whether st or one of its ancestors extends an element
// of lattice, the element's type followed by the type's ancestors.
func extendsAny(st *Classifier, lattice []Extendable) bool {
	for _, s := range st.ResolutionPath() {
		for _, ext := range s.extended {
			if slices.Contains(lattice, ext) {
				return true
			}
		}
	}
	return false
}

// revalidate restores the application, slot and link invariants for c and
// its descendants after an inheritance or extension edge disappeared.
func (c *Classifier) revalidate() {
	for _, d := range c.selfAndDescendants() {
		if d.kind == KindStereotype {
			for _, el := range append([]stereotypable(nil), d.appliedTo...) {
				el.stereotypes().revalidate()
			}
			continue
		}
		reachable := d.reachableAttributes()
		for _, o := range d.objects {
			o.values.retain(reachable)
			o.stereotypes().revalidate()
			o.dropStrayLinks()
		}
	}
}
