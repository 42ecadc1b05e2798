package sat

import "errors"

// Input and build errors returned by the embedded API (spec §7). Runtime
// signals (timeout, interrupt, assumption conflict) are not modeled as
// errors: they are reported through Status values returned by Solve.
var (
	// ErrAtomExhausted is returned by FreshAtom when the atom id space
	// ([0, 2^31-1)) is full.
	ErrAtomExhausted = errors.New("sat: atom id space exhausted")

	// ErrNotAtRootLevel is returned by AddClause when called while the
	// context has pending decisions (decision level > 0).
	ErrNotAtRootLevel = errors.New("sat: add_clause called above the root level")

	// ErrContextUnsat names the terminal state reached once an empty clause
	// has been derived at level 0. No Context method returns it: AddClause
	// on such a context returns nil and Solve returns Unsatisfiable.
	ErrContextUnsat = errors.New("sat: context is permanently unsatisfiable")

	// ErrDuplicatePolarity names a clause that contains a literal and its
	// negation (a tautology). AddClause drops such a clause and returns nil;
	// this value is neither returned nor logged.
	ErrDuplicatePolarity = errors.New("sat: clause contains a literal and its negation")
)

// InvariantViolation is the panic value used for contract breaches that
// must never be triggered by valid input (spec §7): a watched literal index
// out of range, a reason pointing at a deleted clause, and similar internal
// corruption. Embedders that want to convert this into an error at their
// own boundary can recover() and type-assert.
type InvariantViolation struct {
	// Msg describes the violated invariant.
	Msg string
}

func (e InvariantViolation) Error() string {
	return "sat: invariant violation: " + e.Msg
}

func invariant(cond bool, msg string) {
	if !cond {
		panic(InvariantViolation{Msg: msg})
	}
}
