package enumset

import (
	"encoding/json"
	"fmt"
	"strings"
)

// memberEnvelope is the JSON object form of a member. Identity travels
// as set name plus key; ordinal and value are informational.
type memberEnvelope struct {
	Set   string `json:"set"`
	Key   string `json:"key"`
	Ord   int    `json:"ord"`
	Value any    `json:"value,omitempty"`
}

func marshalMemberJSON[V comparable](m *Member[V]) ([]byte, error) {
	env := memberEnvelope{Set: m.set.name, Key: m.key, Ord: m.ord}
	if m.hasValue {
		env.Value = m.value
	}
	return json.Marshal(env)
}

// UnmarshalMember decodes a JSON object produced by Member.MarshalJSON
// and returns the registered member it names. Deserialization never
// constructs a new member: the result is the same pointer Register
// returned, so == comparisons keep working across a round trip. Data
// naming a different set or an unknown key fails with ErrNotFound.
func (s *Set[V]) UnmarshalMember(data []byte) (*Member[V], error) {
	var env memberEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("set %s: unmarshal member: %w", s.name, err)
	}
	if env.Set != s.name {
		return nil, fmt.Errorf("set %s: member data names set %q: %w", s.name, env.Set, ErrNotFound)
	}
	m, ok := s.FindByKey(env.Key)
	if !ok {
		return nil, fmt.Errorf("set %s: no member with key %q: %w", s.name, env.Key, ErrNotFound)
	}
	return m, nil
}

// Resolve maps a serialized text form back to the registered member.
// It accepts the "Set::KEY" form produced by MarshalText as well as a
// bare "KEY". A prefix naming a different set fails with ErrNotFound
// rather than resolving the key against the wrong set.
func (s *Set[V]) Resolve(text string) (*Member[V], error) {
	key := text
	if prefix, rest, ok := strings.Cut(text, "::"); ok {
		if prefix != s.name {
			return nil, fmt.Errorf("set %s: text %q names set %q: %w", s.name, text, prefix, ErrNotFound)
		}
		key = rest
	}
	if key == "" {
		return nil, fmt.Errorf("set %s: empty member key in %q: %w", s.name, text, ErrNotFound)
	}
	m, ok := s.FindByKey(key)
	if !ok {
		return nil, fmt.Errorf("set %s: no member with key %q: %w", s.name, key, ErrNotFound)
	}
	return m, nil
}

// MarshalJSON encodes the whole set: its name, sealed state and members
// in ordinal order.
func (s *Set[V]) MarshalJSON() ([]byte, error) {
	s.mu.RLock()
	members := s.members
	sealed := s.sealed
	s.mu.RUnlock()

	if members == nil {
		members = []*Member[V]{}
	}
	return json.Marshal(struct {
		Name    string       `json:"name"`
		Sealed  bool         `json:"sealed"`
		Members []*Member[V] `json:"members"`
	}{s.name, sealed, members})
}
