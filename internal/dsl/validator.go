package dsl

import (
	"fmt"
	"regexp"

	"github.com/conduit-lang/metamodel/pkg/metamodel"
	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
)

var namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validator checks a definition for structural problems before anything is
// built: missing or malformed names, unknown kinds, missing type references
// and malformed multiplicities. Name resolution and typing are left to the
// builder, which reports them through the engine.
type Validator struct {
	def    *Definition
	errors []error
}

// NewValidator creates a validator for def
func NewValidator(def *Definition) *Validator {
	return &Validator{def: def}
}

// Validate returns every problem found, in definition order
func (v *Validator) Validate() []error {
	v.errors = nil

	for i, mc := range v.def.Metaclasses {
		v.checkClassifier(fmt.Sprintf("metaclasses[%d]", i), mc)
	}
	for i, c := range v.def.Classes {
		where := fmt.Sprintf("classes[%d]", i)
		v.checkClassifier(where, c.Classifier)
		if c.Metaclass == "" {
			v.addf("%s: metaclass is required", where)
		}
		v.checkApplications(where, c.Stereotypes)
	}
	for i, st := range v.def.Stereotypes {
		v.checkClassifier(fmt.Sprintf("stereotypes[%d]", i), st.Classifier)
	}
	for i, e := range v.def.Enums {
		where := fmt.Sprintf("enums[%d]", i)
		v.checkName(where, e.Name)
		if len(e.Values) == 0 {
			v.addf("%s: at least one value is required", where)
		}
	}
	for i, a := range v.def.Associations {
		where := fmt.Sprintf("associations[%d]", i)
		v.checkEnd(where+".source", a.Source)
		v.checkEnd(where+".target", a.Target)
		if a.Aggregation && a.Composition {
			v.addf("%s: aggregation and composition are mutually exclusive", where)
		}
	}
	for i, o := range v.def.Objects {
		where := fmt.Sprintf("objects[%d]", i)
		v.checkName(where, o.Name)
		if o.Class == "" {
			v.addf("%s: class is required", where)
		}
	}

	return v.errors
}

func (v *Validator) checkClassifier(where string, c Classifier) {
	v.checkName(where, c.Name)
	seen := make(map[string]bool)
	for j, attr := range c.Attributes {
		attrWhere := fmt.Sprintf("%s.attributes[%d]", where, j)
		v.checkName(attrWhere, attr.Name)
		if seen[attr.Name] {
			v.addf("%s: duplicate attribute name '%s'", attrWhere, attr.Name)
		}
		seen[attr.Name] = true

		kind, err := values.ParseKind(attr.Type)
		if err != nil {
			v.addf("%s: %w", attrWhere, err)
			continue
		}
		if (kind == values.KindEnum || kind == values.KindObject) && attr.Ref == "" {
			v.addf("%s: type '%s' requires ref", attrWhere, attr.Type)
		}
	}
}

func (v *Validator) checkEnd(where string, e End) {
	if e.Class == "" {
		v.addf("%s: class is required", where)
	}
	if e.Multiplicity == "" {
		v.addf("%s: multiplicity is required", where)
		return
	}
	if _, err := metamodel.ParseMultiplicity(e.Multiplicity); err != nil {
		v.addf("%s: %w", where, err)
	}
}

func (v *Validator) checkApplications(where string, apps []Application) {
	for j, app := range apps {
		if app.Name == "" {
			v.addf("%s.stereotypes[%d]: name is required", where, j)
		}
	}
}

func (v *Validator) checkName(where, name string) {
	switch {
	case name == "":
		v.addf("%s: name is required", where)
	case !namePattern.MatchString(name):
		v.addf("%s: invalid name format '%s'", where, name)
	}
}

func (v *Validator) addf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Errorf(format, args...))
}
