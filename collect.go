package enumset

import (
	"iter"
	"slices"
)

// Len returns the number of members.
func (s *Set[V]) Len() int {
	return len(s.snapshot())
}

// Count returns the number of members satisfying pred. A nil pred counts
// every member, making Count(nil) equivalent to Len. Counting occurrences
// of a known member is a pointer comparison:
//
//	n := suits.Count(func(m *enumset.Member[string]) bool { return m == hearts })
func (s *Set[V]) Count(pred func(*Member[V]) bool) int {
	members := s.snapshot()
	if pred == nil {
		return len(members)
	}
	n := 0
	for _, m := range members {
		if pred(m) {
			n++
		}
	}
	return n
}

// All returns the members in ordinal order. The slice is a copy; callers
// may reorder or truncate it freely.
func (s *Set[V]) All() []*Member[V] {
	return slices.Clone(s.snapshot())
}

// Seq returns an iterator over (ordinal, member) pairs in ordinal order.
// The sequence is a snapshot taken when iteration starts and is safe to
// range over multiple times.
func (s *Set[V]) Seq() iter.Seq2[int, *Member[V]] {
	return func(yield func(int, *Member[V]) bool) {
		for _, m := range s.snapshot() {
			if !yield(m.ord, m) {
				return
			}
		}
	}
}

// Each calls fn for every member in ordinal order.
func (s *Set[V]) Each(fn func(*Member[V])) {
	for _, m := range s.snapshot() {
		fn(m)
	}
}

// EachKey calls fn for every member's key in ordinal order.
func (s *Set[V]) EachKey(fn func(string)) {
	for _, m := range s.snapshot() {
		fn(m.key)
	}
}

// EachValue calls fn for every member's value in ordinal order. A
// valueless member contributes the zero value of V; iterate members and
// check HasValue when that matters.
func (s *Set[V]) EachValue(fn func(V)) {
	for _, m := range s.snapshot() {
		fn(m.value)
	}
}

// Keys returns every member key in ordinal order.
func (s *Set[V]) Keys() []string {
	members := s.snapshot()
	keys := make([]string, len(members))
	for i, m := range members {
		keys[i] = m.key
	}
	return keys
}

// Values returns every member value in ordinal order, with the zero
// value of V standing in for a valueless member.
func (s *Set[V]) Values() []V {
	members := s.snapshot()
	values := make([]V, len(members))
	for i, m := range members {
		values[i] = m.value
	}
	return values
}

// Map applies fn to every member of s in ordinal order and collects the
// results. It is a package function because methods cannot introduce the
// result type parameter.
func Map[V comparable, R any](s *Set[V], fn func(*Member[V]) R) []R {
	members := s.snapshot()
	out := make([]R, len(members))
	for i, m := range members {
		out[i] = fn(m)
	}
	return out
}

// FlatMap applies fn to every member of s in ordinal order and
// concatenates the resulting slices.
func FlatMap[V comparable, R any](s *Set[V], fn func(*Member[V]) []R) []R {
	var out []R
	for _, m := range s.snapshot() {
		out = append(out, fn(m)...)
	}
	return out
}
