package enumset

import "errors"

// Sentinel errors returned by Set operations. Callers match them with
// errors.Is; the returned errors carry the set name and offending key or
// value in their message.
var (
	// ErrInvalidKey reports a member key that does not match the set's
	// key pattern.
	ErrInvalidKey = errors.New("invalid member key")

	// ErrDuplicateKey reports a key that is already registered with a
	// different value. Re-registering an identical key/value pair is not
	// an error; it returns the existing member.
	ErrDuplicateKey = errors.New("duplicate member key")

	// ErrDuplicateValue reports a value that already belongs to another
	// member of the set. A second valueless member is reported the same
	// way: the set's single "no value" slot is already taken.
	ErrDuplicateValue = errors.New("duplicate member value")

	// ErrValueStringCollision reports a value whose string form is
	// indistinguishable from that of an existing member's value. Two such
	// members would be ambiguous under FindByValueString.
	ErrValueStringCollision = errors.New("member value string collision")

	// ErrSealed reports a registration attempted after Seal.
	ErrSealed = errors.New("set is sealed")

	// ErrNotFound reports a failed Get lookup.
	ErrNotFound = errors.New("member not found")
)
