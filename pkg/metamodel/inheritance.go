package metamodel

import (
	"slices"

	"github.com/conduit-lang/metamodel/pkg/metamodel/errors"
	"go.uber.org/zap"
)

// AddSuperclass appends direct superclasses in the given order. All
// candidates are validated before any edge is added.
func (c *Classifier) AddSuperclass(superclasses ...*Classifier) error {
	if err := c.alive(); err != nil {
		return err
	}

	for i, s := range superclasses {
		if s == nil {
			return errors.NewUnknownClassifier("<nil>")
		}
		if err := s.alive(); err != nil {
			return err
		}
		if s.kind != c.kind {
			return errors.NewSuperclassKind(s.name, c.name, c.kind.String())
		}
		if slices.Contains(c.superclasses, s) || slices.Contains(superclasses[:i], s) {
			return errors.NewAlreadySuperclass(s.name, c.name)
		}
		// c must not be reachable upwards from s, nor be s itself
		if s.ConformsTo(c) {
			return errors.NewInheritanceCycle(s.name, c.name)
		}
	}

	for _, s := range superclasses {
		c.superclasses = append(c.superclasses, s)
		s.subclasses = append(s.subclasses, c)
		c.model.logger.Debug("superclass added",
			zap.String("classifier", c.name),
			zap.String("superclass", s.name))
	}
	return nil
}

// AddSuperclassByName resolves each name through the model registry and adds
// the resulting classifiers as superclasses.
func (c *Classifier) AddSuperclassByName(names ...string) error {
	superclasses := make([]*Classifier, 0, len(names))
	for _, name := range names {
		s, err := c.model.Classifier(name)
		if err != nil {
			return err
		}
		superclasses = append(superclasses, s)
	}
	return c.AddSuperclass(superclasses...)
}

// RemoveSuperclass removes a direct superclass edge. Values held by objects
// for attributes that are no longer inherited are dropped, and so are links
// whose end the objects no longer conform to.
func (c *Classifier) RemoveSuperclass(s *Classifier) error {
	if err := c.alive(); err != nil {
		return err
	}
	if s == nil || !slices.Contains(c.superclasses, s) {
		name := "<nil>"
		if s != nil {
			name = s.name
		}
		return errors.NewNotSuperclass(name, c.name)
	}

	c.superclasses = without(c.superclasses, s)
	s.subclasses = without(s.subclasses, c)
	c.revalidate()

	c.model.logger.Debug("superclass removed",
		zap.String("classifier", c.name),
		zap.String("superclass", s.name))
	return nil
}

// Superclasses returns the direct superclasses in declaration order
func (c *Classifier) Superclasses() []*Classifier {
	return append([]*Classifier(nil), c.superclasses...)
}

// Subclasses returns the direct subclasses in the order they were attached
func (c *Classifier) Subclasses() []*Classifier {
	return append([]*Classifier(nil), c.subclasses...)
}

// AllSuperclasses returns every transitive ancestor in resolution-path order
func (c *Classifier) AllSuperclasses() []*Classifier {
	return c.ResolutionPath()[1:]
}

// AllSubclasses returns every transitive descendant, depth-first, each once
func (c *Classifier) AllSubclasses() []*Classifier {
	return c.selfAndDescendants()[1:]
}

// ResolutionPath returns the order in which unqualified attribute and tagged
// value lookups visit c and its ancestors: a depth-first pre-order walk that
// starts at c, follows superclasses in declaration order, descends before
// moving to the next sibling, and records each classifier on its first visit
// only. Under diamond inheritance the shared ancestor appears where the first
// declared branch reaches it.
func (c *Classifier) ResolutionPath() []*Classifier {
	var path []*Classifier
	seen := make(map[*Classifier]bool)

	var visit func(*Classifier)
	visit = func(n *Classifier) {
		if seen[n] {
			return
		}
		seen[n] = true
		path = append(path, n)
		for _, s := range n.superclasses {
			visit(s)
		}
	}
	visit(c)
	return path
}

// ConformsTo reports whether c is other or one of other's descendants
func (c *Classifier) ConformsTo(other *Classifier) bool {
	if c == nil || other == nil {
		return false
	}
	return slices.Contains(c.ResolutionPath(), other)
}

// IsSuperclassOf reports whether c is a transitive ancestor of other
func (c *Classifier) IsSuperclassOf(other *Classifier) bool {
	return other != nil && other != c && other.ConformsTo(c)
}

func (c *Classifier) selfAndDescendants() []*Classifier {
	var result []*Classifier
	seen := make(map[*Classifier]bool)

	var visit func(*Classifier)
	visit = func(n *Classifier) {
		if seen[n] {
			return
		}
		seen[n] = true
		result = append(result, n)
		for _, s := range n.subclasses {
			visit(s)
		}
	}
	visit(c)
	return result
}

func (c *Classifier) reachableAttributes() map[*Attribute]bool {
	reachable := make(map[*Attribute]bool)
	for _, n := range c.ResolutionPath() {
		for _, a := range n.attributes {
			reachable[a] = true
		}
	}
	return reachable
}
