// Package ordered provides an insertion-ordered string set.
package ordered

// Set accumulates strings in first-seen order. Duplicates and empty
// strings are ignored. The zero value is not usable; call NewSet.
type Set struct {
	seen  map[string]struct{}
	items []string
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{seen: make(map[string]struct{})}
}

// Add inserts value unless it is empty or already present.
// It reports whether the value was inserted.
func (s *Set) Add(value string) bool {
	if value == "" {
		return false
	}
	if _, ok := s.seen[value]; ok {
		return false
	}
	s.seen[value] = struct{}{}
	s.items = append(s.items, value)
	return true
}

// AddAll inserts each value in order.
func (s *Set) AddAll(values ...string) {
	for _, v := range values {
		s.Add(v)
	}
}

// Has reports whether value is present.
func (s *Set) Has(value string) bool {
	_, ok := s.seen[value]
	return ok
}

// Len returns the number of values in the set.
func (s *Set) Len() int {
	return len(s.items)
}

// Values returns the accumulated values in insertion order. The returned
// slice is never nil and is owned by the caller.
func (s *Set) Values() []string {
	out := make([]string, len(s.items))
	copy(out, s.items)
	return out
}
