package enumset

import (
	"cmp"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Member is a single named constant of a Set. Members are created through
// Set.Register and exist exactly once per set: two lookups of the same key
// return the same pointer, so members compare with == and work as map keys.
//
// A member carries its key, an optional associated value, and the ordinal
// position it was declared at. All fields are fixed at registration.
type Member[V comparable] struct {
	set      *Set[V]
	key      string
	value    V
	hasValue bool
	ord      int
}

// Key returns the member's constant-style name, unique within its set.
func (m *Member[V]) Key() string { return m.key }

// Value returns the associated value. For a valueless member it returns
// the zero value of V; check HasValue to tell the two apart.
func (m *Member[V]) Value() V { return m.value }

// HasValue reports whether the member was registered with a value.
func (m *Member[V]) HasValue() bool { return m.hasValue }

// Ord returns the member's zero-based declaration position. Ordinals are
// dense and never change once assigned.
func (m *Member[V]) Ord() int { return m.ord }

// Set returns the set the member belongs to.
func (m *Member[V]) Set() *Set[V] { return m.set }

// ValueString returns the value formatted with fmt.Sprint, the same form
// FindByValueString matches against. Valueless members return "".
func (m *Member[V]) ValueString() string {
	if !m.hasValue {
		return ""
	}
	return fmt.Sprint(m.value)
}

// String renders the member for diagnostics: set name, key, ordinal and,
// when present, the value, as in "Suit::HEARTS[2](hearts)".
func (m *Member[V]) String() string {
	if !m.hasValue {
		return fmt.Sprintf("%s::%s[%d]", m.set.name, m.key, m.ord)
	}
	return fmt.Sprintf("%s::%s[%d](%v)", m.set.name, m.key, m.ord, m.value)
}

// Compare orders members by ordinal, following the cmp convention:
// negative when m was declared before other, zero when the ordinals match.
// Because ordinals are unique within a set, members of the same set never
// compare equal unless they are the same member.
func (m *Member[V]) Compare(other *Member[V]) int {
	return cmp.Compare(m.ord, other.ord)
}

// Hash returns a 64-bit hash consistent with member identity: equal
// members hash equal, and members of different sets hash apart even when
// their keys coincide. The set's random identity is mixed in, so hashes
// are stable within a process but not across runs.
func (m *Member[V]) Hash() uint64 {
	d := xxhash.New()
	d.Write(m.set.id[:])
	d.WriteString(m.key)
	return d.Sum64()
}

// textForm is the canonical serialized spelling, e.g. "Suit::HEARTS".
// It names the owning set and the key, which is all Resolve needs to
// recover the original member.
func (m *Member[V]) textForm() string {
	return m.set.name + "::" + m.key
}

// MarshalText encodes the member as "Set::KEY". Set.Resolve decodes it
// back to the registered member.
func (m *Member[V]) MarshalText() ([]byte, error) {
	return []byte(m.textForm()), nil
}

// MarshalYAML encodes the member as its "Set::KEY" text form.
func (m *Member[V]) MarshalYAML() (any, error) {
	return m.textForm(), nil
}

// MarshalJSON encodes the member as an object carrying the set name, key,
// ordinal and value. The value field is omitted for valueless members.
// Set.UnmarshalMember decodes the object back to the registered member.
func (m *Member[V]) MarshalJSON() ([]byte, error) {
	return marshalMemberJSON(m)
}
