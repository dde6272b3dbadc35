// Package introspect builds read-only reports over a metamodel.Model for the
// CLI and the HTTP server. Reports are plain data with JSON tags; element
// references are rendered as names.
package introspect

import (
	"fmt"

	"github.com/conduit-lang/metamodel/pkg/metamodel"
	"github.com/conduit-lang/metamodel/pkg/metamodel/values"
)

// ModelReport summarizes every element of a model
type ModelReport struct {
	Name         string               `json:"name"`
	Imports      []string             `json:"imports,omitempty"`
	Classifiers  []ClassifierSummary  `json:"classifiers"`
	Enums        []EnumReport         `json:"enums,omitempty"`
	Associations []AssociationSummary `json:"associations"`
	Objects      []ObjectSummary      `json:"objects"`
}

// ClassifierSummary is one row of a model listing
type ClassifierSummary struct {
	Name         string   `json:"name"`
	Kind         string   `json:"kind"`
	Superclasses []string `json:"superclasses,omitempty"`
	Attributes   int      `json:"attribute_count"`
	Objects      int      `json:"object_count"`
}

// EnumReport lists an enumeration's legal values
type EnumReport struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

// AssociationSummary is one row of an association listing
type AssociationSummary struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Target string `json:"target"`
	Links  int    `json:"link_count"`
}

// ObjectSummary is one row of an object listing
type ObjectSummary struct {
	Name       string `json:"name"`
	Classifier string `json:"classifier"`
}

// ClassifierReport describes a classifier in full
type ClassifierReport struct {
	Name           string            `json:"name"`
	Kind           string            `json:"kind"`
	Metaclass      string            `json:"metaclass,omitempty"`
	Superclasses   []string          `json:"superclasses"`
	Subclasses     []string          `json:"subclasses"`
	ResolutionPath []string          `json:"resolution_path"`
	Attributes     []AttributeReport `json:"attributes"`
	Ends           []EndReport       `json:"ends,omitempty"`
	Extends        []string          `json:"extends,omitempty"`
	ExtendedBy     []string          `json:"extended_by,omitempty"`
	Objects        []string          `json:"objects,omitempty"`
	Values         []ValueReport     `json:"values,omitempty"`
	Stereotypes    []string          `json:"stereotypes,omitempty"`
	TaggedValues   []ValueReport     `json:"tagged_values,omitempty"`
}

// AttributeReport describes an attribute definition. Shadowed marks a
// definition hidden from unqualified access by one earlier on the path.
type AttributeReport struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Owner    string `json:"owner"`
	Default  any    `json:"default"`
	Shadowed bool   `json:"shadowed,omitempty"`
}

// EndReport describes an association end as navigated to
type EndReport struct {
	Association  string `json:"association"`
	Role         string `json:"role"`
	Classifier   string `json:"classifier"`
	Multiplicity string `json:"multiplicity"`
	Navigable    bool   `json:"navigable"`
}

// ValueReport is a resolved attribute or tagged value
type ValueReport struct {
	Name  string `json:"name"`
	Owner string `json:"owner"`
	Value any    `json:"value"`
}

// ObjectReport describes an object in full
type ObjectReport struct {
	Name         string        `json:"name"`
	Classifier   string        `json:"classifier"`
	ClassObject  bool          `json:"class_object,omitempty"`
	Values       []ValueReport `json:"values"`
	Stereotypes  []string      `json:"stereotypes,omitempty"`
	TaggedValues []ValueReport `json:"tagged_values,omitempty"`
	Links        []LinkReport  `json:"links"`
}

// LinkReport groups the objects linked to an object through one role
type LinkReport struct {
	Association string   `json:"association"`
	Role        string   `json:"role"`
	Objects     []string `json:"objects"`
}

// AssociationReport describes an association in full
type AssociationReport struct {
	Name       string     `json:"name"`
	Kind       string     `json:"kind"`
	Source     EndReport  `json:"source"`
	Target     EndReport  `json:"target"`
	Links      [][]string `json:"links"`
	ExtendedBy []string   `json:"extended_by,omitempty"`
}

// DescribeModel summarizes m
func DescribeModel(m *metamodel.Model) ModelReport {
	r := ModelReport{
		Name:         m.Name(),
		Imports:      names(m.Imports()),
		Classifiers:  []ClassifierSummary{},
		Associations: []AssociationSummary{},
		Objects:      []ObjectSummary{},
	}
	for _, c := range m.Classifiers() {
		r.Classifiers = append(r.Classifiers, ClassifierSummary{
			Name:         c.Name(),
			Kind:         c.Kind().String(),
			Superclasses: names(c.Superclasses()),
			Attributes:   len(c.Attributes()),
			Objects:      len(c.Objects()),
		})
	}
	for _, e := range m.Enums() {
		r.Enums = append(r.Enums, EnumReport{Name: e.Name(), Values: e.Values()})
	}
	for _, a := range m.Associations() {
		r.Associations = append(r.Associations, AssociationSummary{
			Name:   a.Name(),
			Source: a.Source().String(),
			Target: a.Target().String(),
			Links:  len(a.Links()),
		})
	}
	for _, o := range m.Objects() {
		r.Objects = append(r.Objects, ObjectSummary{Name: o.Name(), Classifier: classifierName(o)})
	}
	return r
}

// DescribeClassifier reports c. For a class the report includes the values
// and stereotypes of its class object.
func DescribeClassifier(c *metamodel.Classifier) ClassifierReport {
	r := ClassifierReport{
		Name:           c.Name(),
		Kind:           c.Kind().String(),
		Superclasses:   names(c.Superclasses()),
		Subclasses:     names(c.Subclasses()),
		ResolutionPath: names(c.ResolutionPath()),
		Attributes:     []AttributeReport{},
		Extends:        names(c.Extended()),
		ExtendedBy:     names(c.ExtendedBy()),
		Objects:        names(c.Objects()),
	}
	if meta := c.Metaclass(); meta != nil {
		r.Metaclass = meta.Name()
	}

	seen := make(map[string]bool)
	for _, attr := range c.AllAttributes() {
		r.Attributes = append(r.Attributes, AttributeReport{
			Name:     attr.Name(),
			Type:     attr.Type().String(),
			Owner:    attr.Owner().Name(),
			Default:  Plain(attr.Default()),
			Shadowed: seen[attr.Name()],
		})
		seen[attr.Name()] = true
	}

	for _, own := range c.AssociationEnds() {
		r.Ends = append(r.Ends, describeEnd(own.Other()))
	}

	if obj := c.Object(); obj != nil {
		r.Values = valueReports(obj.Values())
		r.Stereotypes = names(obj.AppliedStereotypes())
		r.TaggedValues = valueReports(obj.TaggedValues())
	}
	return r
}

// DescribeObject reports o with its resolved values and links grouped by
// role in link creation order
func DescribeObject(o *metamodel.Object) ObjectReport {
	r := ObjectReport{
		Name:         o.Name(),
		Classifier:   classifierName(o),
		ClassObject:  o.IsClassObject(),
		Values:       valueReports(o.Values()),
		Stereotypes:  names(o.AppliedStereotypes()),
		TaggedValues: valueReports(o.TaggedValues()),
		Links:        []LinkReport{},
	}

	index := make(map[*metamodel.AssociationEnd]int)
	for _, l := range o.Links() {
		ends, objs := l.Association().Ends(), l.Objects()
		for i := range objs {
			if objs[i] != o {
				continue
			}
			partnerEnd, partner := ends[1-i], objs[1-i]
			n, ok := index[partnerEnd]
			if !ok {
				n = len(r.Links)
				index[partnerEnd] = n
				r.Links = append(r.Links, LinkReport{
					Association: l.Association().Name(),
					Role:        partnerEnd.Role(),
				})
			}
			r.Links[n].Objects = append(r.Links[n].Objects, partner.Name())
		}
	}
	return r
}

// DescribeAssociation reports a
func DescribeAssociation(a *metamodel.Association) AssociationReport {
	r := AssociationReport{
		Name:       a.Name(),
		Kind:       "association",
		Source:     describeEnd(a.Source()),
		Target:     describeEnd(a.Target()),
		Links:      [][]string{},
		ExtendedBy: names(a.ExtendedBy()),
	}
	switch {
	case a.IsComposition():
		r.Kind = "composition"
	case a.IsAggregation():
		r.Kind = "aggregation"
	}
	for _, l := range a.Links() {
		r.Links = append(r.Links, []string{l.Source().Name(), l.Target().Name()})
	}
	return r
}

func describeEnd(e *metamodel.AssociationEnd) EndReport {
	r := EndReport{
		Role:         e.Role(),
		Classifier:   e.Classifier().Name(),
		Multiplicity: e.Multiplicity().String(),
		Navigable:    e.IsNavigable(),
	}
	if a := e.Association(); a != nil {
		r.Association = a.Name()
	}
	return r
}

func valueReports(list []metamodel.AttributeValue) []ValueReport {
	result := []ValueReport{}
	for _, av := range list {
		result = append(result, ValueReport{
			Name:  av.Attribute.Name(),
			Owner: av.Attribute.Owner().Name(),
			Value: Plain(av.Value),
		})
	}
	return result
}

// Plain converts an attribute value into a JSON-friendly form: objects
// become their names and chars become one-character strings.
func Plain(v any) any {
	switch x := v.(type) {
	case *metamodel.Object:
		if x == nil {
			return nil
		}
		return x.Name()
	case values.Char:
		return string(rune(x))
	default:
		return v
	}
}

// Display renders a value for terminal output
func Display(v any) string {
	switch x := v.(type) {
	case nil:
		return "none"
	case *metamodel.Object:
		if x == nil {
			return "none"
		}
		return x.Name()
	case values.Char:
		return fmt.Sprintf("'%c'", rune(x))
	case string:
		return fmt.Sprintf("%q", x)
	default:
		return fmt.Sprint(v)
	}
}

func classifierName(o *metamodel.Object) string {
	if c := o.Classifier(); c != nil {
		return c.Name()
	}
	return ""
}

func names[T interface{ Name() string }](list []T) []string {
	result := make([]string, len(list))
	for i, el := range list {
		result[i] = el.Name()
	}
	return result
}
