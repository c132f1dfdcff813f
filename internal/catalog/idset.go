package catalog

import "sort"

// IDSet is a set of board_model identifiers produced by candidate-set
// resolution. A nil IDSet is never used to mean "empty"; emptiness and
// absence of a restriction are kept distinct by the resolver's return values.
type IDSet map[int64]struct{}

// NewIDSet builds a set from a de-duplicated or duplicated id slice.
func NewIDSet(ids []int64) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s IDSet) Contains(id int64) bool {
	_, ok := s[id]
	return ok
}

// Intersect returns a new set holding the ids present in both sets.
// Intersection is commutative, so resolution order never changes the result.
func (s IDSet) Intersect(other IDSet) IDSet {
	small, large := s, other
	if len(other) < len(s) {
		small, large = other, s
	}
	out := make(IDSet, len(small))
	for id := range small {
		if _, ok := large[id]; ok {
			out[id] = struct{}{}
		}
	}
	return out
}

// Slice returns the ids in ascending order so downstream query parameters
// are deterministic.
func (s IDSet) Slice() []int64 {
	ids := make([]int64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
