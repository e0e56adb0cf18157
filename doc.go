// Package enumset provides closed, ordered, named member sets with
// associated values: enumerations whose members are singleton objects
// rather than bare integer constants.
//
// # Overview
//
// A Set[V] holds members registered under constant-style keys, each
// optionally carrying a value of type V. Members keep the order they
// were declared in, compare by pointer identity, and resolve back to
// the same identity after serialization. Sets are built once, usually
// during package initialization, then optionally sealed and read from
// any number of goroutines.
//
// # Declaring
//
// The declaration site is a var block plus package init, letting Go's
// once-only initialization guarantee cover the whole set:
//
//	var (
//		Suit         = enumset.New[string]("Suit")
//		SuitClubs    = Suit.MustRegister("CLUBS", "clubs")
//		SuitDiamonds = Suit.MustRegister("DIAMONDS", "diamonds")
//		SuitHearts   = Suit.MustRegister("HEARTS", "hearts")
//		SuitSpades   = Suit.MustRegister("SPADES", "spades")
//	)
//
//	func init() { Suit.Seal() }
//
// Registration enforces the declaration rules: keys must look like
// constants (^[A-Z][A-Z0-9_]*$ unless overridden), a key may not be
// reused with a different value, a value may not be shared by two
// members, and two values may not share a string form. Re-running an
// identical declaration is benign: the existing member comes back and
// the duplicate is reported through the warn sink, which logs via
// log/slog unless replaced with WithWarnFunc.
//
// # Lookup
//
// Lookups come in comma-ok and erroring flavors:
//
//	if m, ok := Suit.FindByValue("hearts"); ok {
//		fmt.Println(m.Ord()) // 2
//	}
//	m, err := Suit.GetByValueString("hearts") // ErrNotFound on a miss
//
// FindByKey, FindByOrd and FindWithoutValue cover the remaining
// indices. The collection surface (All, Seq, Each, Keys, Values, Map,
// FlatMap) always observes ordinal order.
//
// # Identity
//
// Every lookup returns the pointer Register created, so members work
// with ==, as map keys, and in switch statements. Member.Hash mixes in
// a per-set identity: members of two sets never hash equal, even when
// their keys coincide. Member.Compare orders by declaration position.
//
// # Serialization
//
// Members marshal to JSON, text and YAML. The text form "Set::KEY" and
// the JSON object both carry the owning set's name; Set.Resolve and
// Set.UnmarshalMember turn them back into the registered singleton
// instead of constructing a detached copy.
//
// # Declaration Files
//
// The decl and gen subpackages and the enumgen command build sets from
// YAML declaration files and emit Go source in the var-block form shown
// above. See cmd/enumgen.
package enumset
