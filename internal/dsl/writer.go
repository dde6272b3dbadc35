package dsl

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Marshal encodes def as YAML with two-space indentation
func Marshal(def *Definition) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(def); err != nil {
		return nil, fmt.Errorf("failed to encode definition: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Starter returns a small definition that builds cleanly: metaclass with
// one class, a stereotype extending the metaclass and applied to the class,
// and one object
func Starter(model, metaclass, class string) *Definition {
	return &Definition{
		Model: model,
		Metaclasses: []Classifier{{
			Name: metaclass,
			Attributes: []Attribute{
				{Name: "description", Type: "string"},
			},
		}},
		Stereotypes: []Stereotype{{
			Classifier: Classifier{
				Name: "Persistent",
				Attributes: []Attribute{
					{Name: "schema", Type: "string", Default: "public"},
				},
			},
			Extends: []string{metaclass},
		}},
		Enums: []Enum{
			{Name: "Status", Values: []string{"draft", "active", "archived"}},
		},
		Classes: []Class{{
			Classifier: Classifier{
				Name: class,
				Attributes: []Attribute{
					{Name: "name", Type: "string"},
					{Name: "status", Type: "enum", Ref: "Status", Default: "draft"},
					{Name: "parent", Type: "object", Ref: class},
				},
			},
			Metaclass:   metaclass,
			Values:      map[string]any{"description": "a " + class},
			Stereotypes: []Application{{Name: "Persistent"}},
		}},
		Associations: []Association{{
			Name:   "contains",
			Source: End{Class: class, Role: "container", Multiplicity: "0..1"},
			Target: End{Class: class, Role: "parts", Multiplicity: "*"},
		}},
		Objects: []Object{{
			Name:   "example",
			Class:  class,
			Values: map[string]any{"name": "example"},
		}},
	}
}
