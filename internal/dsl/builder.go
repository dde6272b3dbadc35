package dsl

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/conduit-lang/metamodel/pkg/metamodel"
	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
	"go.uber.org/zap"
)

// Builder turns definitions into models. Imported definition files are
// loaded relative to the importing file and built once per path.
type Builder struct {
	opts   []metamodel.Option
	logger *zap.Logger

	built   map[string]*metamodel.Model
	loading map[string]bool
}

// NewBuilder creates a builder. The options are passed to every model it
// creates, imported ones included.
func NewBuilder(logger *zap.Logger, opts ...metamodel.Option) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Builder{
		opts:    append([]metamodel.Option{metamodel.WithLogger(logger)}, opts...),
		logger:  logger,
		built:   make(map[string]*metamodel.Model),
		loading: make(map[string]bool),
	}
}

// LoadFile parses, validates and builds the definition at path
func LoadFile(path string, logger *zap.Logger) (*metamodel.Model, error) {
	return NewBuilder(logger).LoadFile(path)
}

// LoadFile parses, validates and builds the definition at path, loading its
// imports first
func (b *Builder) LoadFile(path string) (*metamodel.Model, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if m, ok := b.built[abs]; ok {
		return m, nil
	}
	if b.loading[abs] {
		return nil, fmt.Errorf("import cycle through %s", path)
	}
	b.loading[abs] = true
	defer delete(b.loading, abs)

	def, err := NewParser(abs).Parse()
	if err != nil {
		return nil, err
	}
	if errs := NewValidator(def).Validate(); len(errs) > 0 {
		return nil, fmt.Errorf("invalid definition %s: %w", path, errs[0])
	}

	var imported []*metamodel.Model
	for _, imp := range def.Imports {
		if !filepath.IsAbs(imp) {
			imp = filepath.Join(filepath.Dir(abs), imp)
		}
		m, err := b.LoadFile(imp)
		if err != nil {
			return nil, fmt.Errorf("failed to import %s: %w", imp, err)
		}
		imported = append(imported, m)
	}

	m, err := b.build(def, imported)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	b.built[abs] = m
	return m, nil
}

// Files returns the absolute paths of every definition built so far,
// imports included, sorted
func (b *Builder) Files() []string {
	return slices.Sorted(maps.Keys(b.built))
}

// Build creates a model from def. Imports in def are ignored; use LoadFile
// for definitions that import other files.
func (b *Builder) Build(def *Definition) (*metamodel.Model, error) {
	if errs := NewValidator(def).Validate(); len(errs) > 0 {
		return nil, errs[0]
	}
	return b.build(def, nil)
}

func (b *Builder) build(def *Definition, imported []*metamodel.Model) (*metamodel.Model, error) {
	m := metamodel.NewModel(def.Model, b.opts...)
	m.Import(imported...)

	steps := []struct {
		name string
		run  func(*metamodel.Model, *Definition) error
	}{
		{"classifiers", buildClassifiers},
		{"superclasses", buildSuperclasses},
		{"enums", buildEnums},
		{"attributes", buildAttributes},
		{"associations", buildAssociations},
		{"extensions", buildExtensions},
		{"objects", buildObjects},
		{"object defaults", buildObjectDefaults},
		{"values", buildValues},
		{"stereotypes", buildApplications},
		{"links", buildLinks},
		{"multiplicities", checkMultiplicities},
	}
	for _, step := range steps {
		b.logger.Debug("build step", zap.String("model", def.Model), zap.String("step", step.name))
		if err := step.run(m, def); err != nil {
			return nil, err
		}
	}

	b.logger.Debug("model built",
		zap.String("model", m.Name()),
		zap.Int("classifiers", len(m.Classifiers())),
		zap.Int("objects", len(m.Objects())),
		zap.Int("associations", len(m.Associations())),
	)
	return m, nil
}

func buildClassifiers(m *metamodel.Model, def *Definition) error {
	for _, mc := range def.Metaclasses {
		if _, err := m.NewMetaclass(mc.Name); err != nil {
			return fmt.Errorf("metaclass %s: %w", mc.Name, err)
		}
	}
	for _, c := range def.Classes {
		meta, err := m.Metaclass(c.Metaclass)
		if err != nil {
			return fmt.Errorf("class %s: %w", c.Name, err)
		}
		if _, err := m.NewClass(meta, c.Name); err != nil {
			return fmt.Errorf("class %s: %w", c.Name, err)
		}
	}
	// extensions are added once associations exist
	for _, st := range def.Stereotypes {
		if _, err := m.NewStereotype(st.Name); err != nil {
			return fmt.Errorf("stereotype %s: %w", st.Name, err)
		}
	}
	return nil
}

func buildSuperclasses(m *metamodel.Model, def *Definition) error {
	for _, c := range def.classifiers() {
		if len(c.Superclasses) == 0 {
			continue
		}
		classifier, err := m.Classifier(c.Name)
		if err != nil {
			return err
		}
		if err := classifier.AddSuperclassByName(c.Superclasses...); err != nil {
			return fmt.Errorf("%s superclasses: %w", c.Name, err)
		}
	}
	return nil
}

func buildEnums(m *metamodel.Model, def *Definition) error {
	for _, e := range def.Enums {
		if _, err := m.NewEnum(e.Name, e.Values...); err != nil {
			return fmt.Errorf("enum %s: %w", e.Name, err)
		}
	}
	return nil
}

func buildAttributes(m *metamodel.Model, def *Definition) error {
	for _, c := range def.classifiers() {
		classifier, err := m.Classifier(c.Name)
		if err != nil {
			return err
		}
		for _, a := range c.Attributes {
			typ, err := resolveType(m, a)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", c.Name, a.Name, err)
			}
			var opts []metamodel.AttributeOption
			if a.Default != nil && typ.Kind != values.KindObject {
				v, err := values.Convert(a.Name, typ, a.Default)
				if err != nil {
					return fmt.Errorf("%s.%s: %w", c.Name, a.Name, err)
				}
				opts = append(opts, metamodel.WithDefault(v))
			}
			if _, err := classifier.AddAttribute(a.Name, typ, opts...); err != nil {
				return fmt.Errorf("%s.%s: %w", c.Name, a.Name, err)
			}
		}
	}
	return nil
}

func resolveType(m *metamodel.Model, a Attribute) (values.Type, error) {
	kind, err := values.ParseKind(a.Type)
	if err != nil {
		return values.Type{}, err
	}
	switch kind {
	case values.KindEnum:
		e, err := m.Enum(a.Ref)
		if err != nil {
			return values.Type{}, err
		}
		return values.EnumOf(e), nil
	case values.KindObject:
		c, err := m.Classifier(a.Ref)
		if err != nil {
			return values.Type{}, err
		}
		return values.ObjectOf(c), nil
	default:
		return values.Of(kind), nil
	}
}

func buildAssociations(m *metamodel.Model, def *Definition) error {
	for i, a := range def.Associations {
		label := a.Name
		if label == "" {
			label = fmt.Sprintf("associations[%d]", i)
		}
		source, err := buildEnd(m, a.Source)
		if err != nil {
			return fmt.Errorf("association %s source: %w", label, err)
		}
		target, err := buildEnd(m, a.Target)
		if err != nil {
			return fmt.Errorf("association %s target: %w", label, err)
		}
		assoc, err := m.NewAssociation(a.Name, source, target)
		if err != nil {
			return fmt.Errorf("association %s: %w", label, err)
		}
		assoc.SetAggregation(a.Aggregation)
		assoc.SetComposition(a.Composition)
	}
	return nil
}

func buildEnd(m *metamodel.Model, e End) (*metamodel.AssociationEnd, error) {
	c, err := m.Classifier(e.Class)
	if err != nil {
		return nil, err
	}
	var opts []metamodel.EndOption
	if e.Role != "" {
		opts = append(opts, metamodel.WithRole(e.Role))
	}
	if e.Navigable != nil && !*e.Navigable {
		opts = append(opts, metamodel.NonNavigable())
	}
	return metamodel.NewEnd(c, e.Multiplicity, opts...)
}

func buildExtensions(m *metamodel.Model, def *Definition) error {
	for _, st := range def.Stereotypes {
		stereotype, err := m.Stereotype(st.Name)
		if err != nil {
			return err
		}
		for _, target := range st.Extends {
			if err := stereotype.ExtendByName(target); err != nil {
				return fmt.Errorf("stereotype %s: %w", st.Name, err)
			}
		}
	}
	return nil
}

func buildObjects(m *metamodel.Model, def *Definition) error {
	for _, o := range def.Objects {
		class, err := m.Class(o.Class)
		if err != nil {
			return fmt.Errorf("object %s: %w", o.Name, err)
		}
		if _, err := m.NewObject(class, o.Name); err != nil {
			return fmt.Errorf("object %s: %w", o.Name, err)
		}
	}
	return nil
}

// buildObjectDefaults sets object-kind attribute defaults, which name objects
// that only exist once buildObjects has run
func buildObjectDefaults(m *metamodel.Model, def *Definition) error {
	for _, c := range def.classifiers() {
		for _, a := range c.Attributes {
			if a.Default == nil || a.Type != values.KindObject.String() {
				continue
			}
			classifier, err := m.Classifier(c.Name)
			if err != nil {
				return err
			}
			attr, _ := classifier.Attribute(a.Name)
			v, err := objectValue(m, attr, a.Default)
			if err != nil {
				return fmt.Errorf("%s.%s: %w", c.Name, a.Name, err)
			}
			if err := attr.SetDefault(v); err != nil {
				return fmt.Errorf("%s.%s: %w", c.Name, a.Name, err)
			}
		}
	}
	return nil
}

func buildValues(m *metamodel.Model, def *Definition) error {
	for _, c := range def.Classes {
		if len(c.Values) == 0 {
			continue
		}
		class, err := m.Class(c.Name)
		if err != nil {
			return err
		}
		if err := setValues(m, class.Object(), c.Values); err != nil {
			return fmt.Errorf("class %s: %w", c.Name, err)
		}
	}
	for _, o := range def.Objects {
		obj, err := m.Object(o.Name)
		if err != nil {
			return err
		}
		if err := setValues(m, obj, o.Values); err != nil {
			return fmt.Errorf("object %s: %w", o.Name, err)
		}
	}
	return nil
}

// setValues assigns raw definition values in key order. A key of the form
// "Classifier::name" addresses the attribute as seen through that classifier.
func setValues(m *metamodel.Model, o *metamodel.Object, raw map[string]any) error {
	for _, key := range slices.Sorted(maps.Keys(raw)) {
		if qualifier, name, ok := strings.Cut(key, "::"); ok {
			classifier, err := m.Classifier(qualifier)
			if err != nil {
				return err
			}
			attr, ok := classifier.Attribute(name)
			if !ok {
				// let the engine report the unknown attribute
				if err := o.SetValueOf(classifier, name, nil); err != nil {
					return err
				}
				continue
			}
			v, err := convert(m, attr, raw[key])
			if err != nil {
				return err
			}
			if err := o.SetValueOf(classifier, name, v); err != nil {
				return err
			}
			continue
		}

		if o.Classifier() == nil {
			return o.SetValue(key, raw[key])
		}
		attr, ok := o.Classifier().LookupAttribute(key)
		if !ok {
			if err := o.SetValue(key, raw[key]); err != nil {
				return err
			}
			continue
		}
		v, err := convert(m, attr, raw[key])
		if err != nil {
			return err
		}
		if err := o.SetValue(key, v); err != nil {
			return err
		}
	}
	return nil
}

func buildApplications(m *metamodel.Model, def *Definition) error {
	for _, c := range def.Classes {
		if len(c.Stereotypes) == 0 {
			continue
		}
		class, err := m.Class(c.Name)
		if err != nil {
			return err
		}
		if err := applyStereotypes(m, class.Object(), c.Stereotypes); err != nil {
			return fmt.Errorf("class %s: %w", c.Name, err)
		}
	}
	return nil
}

func applyStereotypes(m *metamodel.Model, o *metamodel.Object, apps []Application) error {
	for _, app := range apps {
		if err := o.ApplyStereotypeByName(app.Name); err != nil {
			return err
		}
		st, err := m.Stereotype(app.Name)
		if err != nil {
			return err
		}
		for _, tag := range slices.Sorted(maps.Keys(app.Tags)) {
			raw := app.Tags[tag]
			attr, ok := st.LookupAttribute(tag)
			if !ok {
				if err := o.SetTaggedValueOf(st, tag, raw); err != nil {
					return err
				}
				continue
			}
			v, err := convert(m, attr, raw)
			if err != nil {
				return err
			}
			if err := o.SetTaggedValueOf(st, tag, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildLinks creates the links declared on objects. A link may be declared
// from either side, or from both; a pair already linked is skipped.
func buildLinks(m *metamodel.Model, def *Definition) error {
	for _, o := range def.Objects {
		if len(o.Links) == 0 {
			continue
		}
		obj, err := m.Object(o.Name)
		if err != nil {
			return err
		}
		for _, role := range slices.Sorted(maps.Keys(o.Links)) {
			existing, err := obj.LinkedByRole(role)
			if err != nil {
				return fmt.Errorf("object %s: %w", o.Name, err)
			}
			var targets []any
			for _, name := range o.Links[role] {
				if slices.ContainsFunc(existing, func(e *metamodel.Object) bool { return e.Name() == name }) {
					continue
				}
				targets = append(targets, name)
			}
			if err := obj.AddLinksByRole(role, targets...); err != nil {
				return fmt.Errorf("object %s: %w", o.Name, err)
			}
		}
	}
	return nil
}

func checkMultiplicities(m *metamodel.Model, _ *Definition) error {
	for _, a := range m.Associations() {
		if err := a.CheckMultiplicity(); err != nil {
			return fmt.Errorf("association %s: %w", a.Name(), err)
		}
	}
	return nil
}

func convert(m *metamodel.Model, attr *metamodel.Attribute, raw any) (any, error) {
	if attr.Type().Kind == values.KindObject {
		return objectValue(m, attr, raw)
	}
	return values.Convert(attr.Name(), attr.Type(), raw)
}

// objectValue resolves an object-kind value given by object name. The engine
// checks the object's type when the value is stored.
func objectValue(m *metamodel.Model, attr *metamodel.Attribute, raw any) (any, error) {
	if raw == nil {
		return nil, nil
	}
	name, ok := raw.(string)
	if !ok {
		return nil, values.Check(attr.Name(), attr.Type(), raw)
	}
	return m.Object(name)
}

func (d *Definition) classifiers() []Classifier {
	result := slices.Clone(d.Metaclasses)
	for _, c := range d.Classes {
		result = append(result, c.Classifier)
	}
	for _, st := range d.Stereotypes {
		result = append(result, st.Classifier)
	}
	return result
}
