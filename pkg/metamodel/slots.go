package metamodel

// slots holds values keyed by attribute definition. Keying by definition,
// not by name, keeps same-named attributes of different classifiers apart.
type slots struct {
	m map[*Attribute]any
}

// slotRef addresses one slot that holds an object reference
type slotRef struct {
	s    *slots
	attr *Attribute
}

func newSlots() *slots {
	return &slots{m: make(map[*Attribute]any)}
}

func (s *slots) get(attr *Attribute) (any, bool) {
	v, ok := s.m[attr]
	return v, ok
}

func (s *slots) set(attr *Attribute, v any) {
	s.unreference(attr)
	s.m[attr] = v
	if o, ok := v.(*Object); ok && o != nil {
		o.referrers[slotRef{s: s, attr: attr}] = struct{}{}
	}
}

// noValue turns a nil *Object into an untyped nil, the value of an unset
// object reference.
func noValue(v any) any {
	if o, ok := v.(*Object); ok && o == nil {
		return nil
	}
	return v
}

func (s *slots) drop(attr *Attribute) {
	s.unreference(attr)
	delete(s.m, attr)
}

// retain drops every slot whose attribute is not in keep
func (s *slots) retain(keep map[*Attribute]bool) {
	for attr := range s.m {
		if !keep[attr] {
			s.drop(attr)
		}
	}
}

func (s *slots) clear() {
	for attr := range s.m {
		s.drop(attr)
	}
}

func (s *slots) unreference(attr *Attribute) {
	if old, ok := s.m[attr].(*Object); ok && old != nil {
		delete(old.referrers, slotRef{s: s, attr: attr})
	}
}
