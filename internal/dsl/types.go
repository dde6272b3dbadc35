// Package dsl loads model definitions written in YAML and builds them into a
// metamodel.Model. A definition lists metaclasses, classes, stereotypes,
// enumerations, associations and objects by name; the builder resolves the
// names, so declaration order inside each section does not matter.
package dsl

// Definition is the root of a YAML model definition
type Definition struct {
	Model        string        `yaml:"model"`
	Imports      []string      `yaml:"imports,omitempty"`
	Metaclasses  []Classifier  `yaml:"metaclasses,omitempty"`
	Classes      []Class       `yaml:"classes,omitempty"`
	Stereotypes  []Stereotype  `yaml:"stereotypes,omitempty"`
	Enums        []Enum        `yaml:"enums,omitempty"`
	Associations []Association `yaml:"associations,omitempty"`
	Objects      []Object      `yaml:"objects,omitempty"`
}

// Classifier holds the parts shared by every classifier kind
type Classifier struct {
	Name         string      `yaml:"name"`
	Superclasses []string    `yaml:"superclasses,omitempty"`
	Attributes   []Attribute `yaml:"attributes,omitempty"`
}

// Class is a class definition. Values and Stereotypes apply to the class's
// own object, the class seen as an instance of its metaclass.
type Class struct {
	Classifier  `yaml:",inline"`
	Metaclass   string         `yaml:"metaclass"`
	Values      map[string]any `yaml:"values,omitempty"`
	Stereotypes []Application  `yaml:"stereotypes,omitempty"`
}

// Stereotype is a stereotype definition
type Stereotype struct {
	Classifier `yaml:",inline"`
	Extends    []string `yaml:"extends,omitempty"`
}

// Attribute defines an attribute or, on a stereotype, a tagged value.
// Type is a kind name; enum and object kinds name their type in Ref.
type Attribute struct {
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Ref     string `yaml:"ref,omitempty"`
	Default any    `yaml:"default,omitempty"`
}

// Enum is an enumeration with its legal values in order
type Enum struct {
	Name   string   `yaml:"name"`
	Values []string `yaml:"values"`
}

// Association relates the classes named by its two ends
type Association struct {
	Name        string `yaml:"name,omitempty"`
	Source      End    `yaml:"source"`
	Target      End    `yaml:"target"`
	Aggregation bool   `yaml:"aggregation,omitempty"`
	Composition bool   `yaml:"composition,omitempty"`
}

// End is one association end. Navigable defaults to true.
type End struct {
	Class        string `yaml:"class"`
	Role         string `yaml:"role,omitempty"`
	Multiplicity string `yaml:"multiplicity"`
	Navigable    *bool  `yaml:"navigable,omitempty"`
}

// Object is an object definition. Value keys are attribute names, or
// "Classifier::name" to address a shadowed attribute. Links map a role to
// the names of the linked objects.
type Object struct {
	Name   string              `yaml:"name"`
	Class  string              `yaml:"class"`
	Values map[string]any      `yaml:"values,omitempty"`
	Links  map[string][]string `yaml:"links,omitempty"`
}

// Application applies a stereotype and sets its tagged values
type Application struct {
	Name string         `yaml:"name"`
	Tags map[string]any `yaml:"tags,omitempty"`
}
