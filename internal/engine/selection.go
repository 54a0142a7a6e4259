package engine

// Selection is the set of skills a caller has chosen so far. IDs are
// canonical skill IDs.
type Selection interface {
	Has(id string) bool
	IDs() []string
}

// Set is an insertion-ordered Selection. It is owned by a single session and
// must not be mutated concurrently.
type Set struct {
	ids   []string
	index map[string]int
}

// NewSet returns a Set holding ids, ignoring duplicates.
func NewSet(ids ...string) *Set {
	s := &Set{index: make(map[string]int, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add inserts id and reports whether it was not already present.
func (s *Set) Add(id string) bool {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if _, ok := s.index[id]; ok {
		return false
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	return true
}

// Remove deletes id and reports whether it was present.
func (s *Set) Remove(id string) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.ids = append(s.ids[:pos], s.ids[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.ids); i++ {
		s.index[s.ids[i]] = i
	}
	return true
}

// Has reports whether id is selected.
func (s *Set) Has(id string) bool {
	_, ok := s.index[id]
	return ok
}

// IDs returns the selected IDs in insertion order.
func (s *Set) IDs() []string {
	return append([]string(nil), s.ids...)
}

// Len returns the number of selected skills.
func (s *Set) Len() int {
	return len(s.ids)
}
