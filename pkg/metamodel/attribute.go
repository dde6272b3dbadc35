package metamodel

import (
	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
	"go.uber.org/zap"
)

// Attribute is an attribute definition owned by exactly one classifier. On a
// stereotype, attributes define tagged values.
type Attribute struct {
	name  string
	typ   values.Type
	owner *Classifier
	def   *slots
}

// AttributeOption configures an attribute at definition time
type AttributeOption func(*attributeConfig)

type attributeConfig struct {
	def    any
	hasDef bool
}

// WithDefault sets the attribute's default value
func WithDefault(v any) AttributeOption {
	return func(cfg *attributeConfig) {
		cfg.def = noValue(v)
		cfg.hasDef = true
	}
}

// AddAttribute defines an attribute on c. The name must be unused on c
// itself; shadowing an inherited attribute of the same name is allowed and
// yields an independent slot.
func (c *Classifier) AddAttribute(name string, typ values.Type, opts ...AttributeOption) (*Attribute, error) {
	if err := c.alive(); err != nil {
		return nil, err
	}
	if _, exists := c.Attribute(name); exists {
		return nil, errors.NewDuplicateAttribute(name, c.name)
	}
	if err := typ.Validate(name); err != nil {
		return nil, err
	}

	cfg := attributeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.hasDef {
		if err := values.Check(name, typ, cfg.def); err != nil {
			return nil, err
		}
	}

	attr := &Attribute{
		name:  name,
		typ:   typ,
		owner: c,
		def:   newSlots(),
	}
	if cfg.hasDef && cfg.def != nil {
		attr.def.set(attr, cfg.def)
	}
	c.attributes = append(c.attributes, attr)

	c.model.logger.Debug("attribute added",
		zap.String("classifier", c.name),
		zap.String("attribute", name),
		zap.Stringer("type", typ))
	return attr, nil
}

// Attribute returns the attribute c itself defines under name
func (c *Classifier) Attribute(name string) (*Attribute, bool) {
	for _, a := range c.attributes {
		if a.name == name {
			return a, true
		}
	}
	return nil, false
}

// Attributes returns the attributes c itself defines, in definition order
func (c *Classifier) Attributes() []*Attribute {
	return append([]*Attribute(nil), c.attributes...)
}

// AllAttributes returns every attribute visible from c along its resolution
// path, including shadowed ones, in lookup order.
func (c *Classifier) AllAttributes() []*Attribute {
	var result []*Attribute
	for _, n := range c.ResolutionPath() {
		result = append(result, n.attributes...)
	}
	return result
}

// LookupAttribute returns the attribute an unqualified access to name
// resolves to: the first definition along c's resolution path.
func (c *Classifier) LookupAttribute(name string) (*Attribute, bool) {
	return findAttribute(c.ResolutionPath(), name)
}

// RemoveAttribute deletes c's attribute definition and every slot holding a
// value for it.
func (c *Classifier) RemoveAttribute(name string) error {
	if err := c.alive(); err != nil {
		return err
	}
	attr, ok := c.Attribute(name)
	if !ok {
		return errors.NewUnknownClassifierAttribute(name, c.name)
	}
	c.dropAttribute(attr)
	c.model.logger.Debug("attribute removed",
		zap.String("classifier", c.name),
		zap.String("attribute", name))
	return nil
}

func (c *Classifier) dropAttribute(attr *Attribute) {
	for _, d := range c.selfAndDescendants() {
		for _, o := range d.objects {
			o.values.drop(attr)
		}
		for _, el := range d.appliedTo {
			el.stereotypes().tagged.drop(attr)
		}
	}
	attr.def.clear()
	c.attributes = without(c.attributes, attr)
}

func findAttribute(path []*Classifier, name string) (*Attribute, bool) {
	for _, n := range path {
		if a, ok := n.Attribute(name); ok {
			return a, true
		}
	}
	return nil, false
}

// Name returns the attribute name
func (a *Attribute) Name() string {
	return a.name
}

// Type returns the attribute's value type
func (a *Attribute) Type() values.Type {
	return a.typ
}

// Owner returns the defining classifier
func (a *Attribute) Owner() *Classifier {
	return a.owner
}

// Default returns the default value, or nil when none is set
func (a *Attribute) Default() any {
	v, _ := a.def.get(a)
	return v
}

// SetDefault validates and replaces the default value. Objects that never
// set the attribute observe the new default.
func (a *Attribute) SetDefault(v any) error {
	v = noValue(v)
	if err := values.Check(a.name, a.typ, v); err != nil {
		return err
	}
	if v == nil {
		a.def.drop(a)
		return nil
	}
	a.def.set(a, v)
	return nil
}
