package enumset

import (
	"fmt"
	"log/slog"
	"regexp"
	"sync"

	"github.com/google/uuid"
)

// defaultKeyPattern accepts constant-style keys: an uppercase letter
// followed by uppercase letters, digits or underscores.
var defaultKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9_]*$`)

// Set is a closed, ordered collection of named members, each optionally
// carrying a value of type V. Members are registered once, usually from
// package init or var initializers, and looked up by key, value, value
// string or ordinal. After Seal the set rejects further registration.
//
// All methods are safe for concurrent use. Iteration methods observe a
// consistent snapshot: members registered concurrently with an iteration
// may or may not be visible, but the sequence itself never mutates.
type Set[V comparable] struct {
	name   string
	id     uuid.UUID
	keyRe  *regexp.Regexp
	warn   WarnFunc
	logger *slog.Logger

	mu      sync.RWMutex
	sealed  bool
	members []*Member[V]
	byKey   map[string]*Member[V]
	byValue map[V]*Member[V]
	byText  map[string]*Member[V]
	none    *Member[V] // the at-most-one valueless member
}

// Option configures a Set at construction.
type Option[V comparable] func(*Set[V])

// WithKeyPattern replaces the default key pattern (^[A-Z][A-Z0-9_]*$)
// used to validate member keys at registration.
func WithKeyPattern[V comparable](re *regexp.Regexp) Option[V] {
	return func(s *Set[V]) { s.keyRe = re }
}

// WithWarnFunc replaces the default redeclaration sink, which logs at
// warn level through the set's logger.
func WithWarnFunc[V comparable](fn WarnFunc) Option[V] {
	return func(s *Set[V]) { s.warn = fn }
}

// WithLogger sets the slog.Logger used by the default redeclaration
// sink. Defaults to slog.Default.
func WithLogger[V comparable](logger *slog.Logger) Option[V] {
	return func(s *Set[V]) { s.logger = logger }
}

// New creates an empty open set. The name identifies the set in
// diagnostics and in the "Set::KEY" serialized form, and must not be
// empty. Each call creates a distinct set identity: members of two sets
// never compare or hash equal, even under the same name.
func New[V comparable](name string, opts ...Option[V]) *Set[V] {
	if name == "" {
		panic("enumset: New called with empty set name")
	}
	s := &Set[V]{
		name:    name,
		id:      uuid.New(),
		keyRe:   defaultKeyPattern,
		byKey:   make(map[string]*Member[V]),
		byValue: make(map[V]*Member[V]),
		byText:  make(map[string]*Member[V]),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.warn == nil {
		s.warn = logWarn(s.logger)
	}
	return s
}

// Name returns the set's name.
func (s *Set[V]) Name() string { return s.name }

// Register adds a member under key with the given value and returns it.
// Keys must match the set's key pattern. Registering the same key/value
// pair again is benign: the existing member is returned and the
// redeclaration reported through the warn sink. Anything else that would
// make the set ambiguous fails: a known key with a different value
// (ErrDuplicateKey), a value another member already carries
// (ErrDuplicateValue), a value whose string form collides with an
// existing member's (ErrValueStringCollision), or any registration after
// Seal (ErrSealed).
func (s *Set[V]) Register(key string, value V) (*Member[V], error) {
	return s.register(key, value, true)
}

// RegisterKey adds a member under key with no associated value. A set
// holds at most one valueless member; a second one fails with
// ErrDuplicateValue. Otherwise RegisterKey behaves like Register,
// including the benign redeclaration path.
func (s *Set[V]) RegisterKey(key string) (*Member[V], error) {
	var zero V
	return s.register(key, zero, false)
}

// MustRegister is Register panicking on error. It is intended for
// declaration sites in var initializers and init functions, where a
// failed registration is a programming error.
func (s *Set[V]) MustRegister(key string, value V) *Member[V] {
	m, err := s.Register(key, value)
	if err != nil {
		panic(err)
	}
	return m
}

// MustRegisterKey is RegisterKey panicking on error.
func (s *Set[V]) MustRegisterKey(key string) *Member[V] {
	m, err := s.RegisterKey(key)
	if err != nil {
		panic(err)
	}
	return m
}

func (s *Set[V]) register(key string, value V, hasValue bool) (*Member[V], error) {
	if !s.keyRe.MatchString(key) {
		return nil, fmt.Errorf("set %s: key %q does not match %s: %w", s.name, key, s.keyRe, ErrInvalidKey)
	}
	m, redeclared, err := s.insert(key, value, hasValue)
	if err != nil {
		return nil, err
	}
	if redeclared {
		// Report outside the lock so the sink may call back into the set.
		file, line := callSite()
		s.warn(Redeclaration{Set: s.name, Key: key, Value: m.ValueString(), File: file, Line: line})
	}
	return m, nil
}

func (s *Set[V]) insert(key string, value V, hasValue bool) (m *Member[V], redeclared bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.sealed {
		return nil, false, fmt.Errorf("set %s: register %q: %w", s.name, key, ErrSealed)
	}
	if existing, ok := s.byKey[key]; ok {
		if existing.hasValue == hasValue && (!hasValue || existing.value == value) {
			return existing, true, nil
		}
		return nil, false, fmt.Errorf("set %s: key %q already registered as %s: %w", s.name, key, existing, ErrDuplicateKey)
	}

	if !hasValue {
		if s.none != nil {
			return nil, false, fmt.Errorf("set %s: valueless member already registered as %s: %w", s.name, s.none, ErrDuplicateValue)
		}
		m = &Member[V]{set: s, key: key, ord: len(s.members)}
		s.members = append(s.members, m)
		s.byKey[key] = m
		s.none = m
		return m, false, nil
	}

	if prev, ok := s.byValue[value]; ok {
		return nil, false, fmt.Errorf("set %s: value %v already registered as %s: %w", s.name, value, prev, ErrDuplicateValue)
	}
	text := fmt.Sprint(value)
	if prev, ok := s.byText[text]; ok {
		return nil, false, fmt.Errorf("set %s: value %v formats as %q, indistinguishable from %s: %w", s.name, value, text, prev, ErrValueStringCollision)
	}

	m = &Member[V]{set: s, key: key, value: value, hasValue: true, ord: len(s.members)}
	s.members = append(s.members, m)
	s.byKey[key] = m
	s.byValue[value] = m
	s.byText[text] = m
	return m, false, nil
}

// Seal closes the set: every later registration fails with ErrSealed.
// Sealing is idempotent; Seal reports whether this call performed the
// transition. Lookups and iteration are unaffected.
func (s *Set[V]) Seal() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sealed {
		return false
	}
	s.sealed = true
	return true
}

// Sealed reports whether the set has been sealed.
func (s *Set[V]) Sealed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sealed
}

// FindByKey returns the member registered under key.
func (s *Set[V]) FindByKey(key string) (*Member[V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byKey[key]
	return m, ok
}

// FindByValue returns the member carrying value. Valueless members are
// never returned here; use FindWithoutValue.
func (s *Set[V]) FindByValue(value V) (*Member[V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byValue[value]
	return m, ok
}

// FindByValueString returns the member whose value formats (fmt.Sprint)
// to text. Registration guarantees at most one such member.
func (s *Set[V]) FindByValueString(text string) (*Member[V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byText[text]
	return m, ok
}

// FindByOrd returns the member declared at ordinal ord.
func (s *Set[V]) FindByOrd(ord int) (*Member[V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if ord < 0 || ord >= len(s.members) {
		return nil, false
	}
	return s.members[ord], true
}

// FindWithoutValue returns the set's valueless member, if one was
// registered.
func (s *Set[V]) FindWithoutValue() (*Member[V], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.none, s.none != nil
}

// GetByValue is FindByValue returning ErrNotFound on a miss.
func (s *Set[V]) GetByValue(value V) (*Member[V], error) {
	if m, ok := s.FindByValue(value); ok {
		return m, nil
	}
	return nil, fmt.Errorf("set %s: no member with value %v: %w", s.name, value, ErrNotFound)
}

// GetByValueString is FindByValueString returning ErrNotFound on a miss.
func (s *Set[V]) GetByValueString(text string) (*Member[V], error) {
	if m, ok := s.FindByValueString(text); ok {
		return m, nil
	}
	return nil, fmt.Errorf("set %s: no member with value string %q: %w", s.name, text, ErrNotFound)
}

// snapshot returns the current member slice. Members are only ever
// appended under the write lock, so the returned slice is immutable.
func (s *Set[V]) snapshot() []*Member[V] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.members
}
