package sat

import "fmt"

// Atom is a non-negative integer identifier in a contiguous range [0, N) for
// some maximum N < 2^31. Atoms are created monotonically by the context and
// never destroyed (spec §3).
type Atom int32

// Literal represents a literal, which either represents a boolean atom or
// its negation, encoded as 2*atom + polarity (spec §3) so that it can be
// used directly as an index into per-literal slices (assignment, watch
// lists).
type Literal int32

// PositiveLiteral returns the positive literal of atom v.
func PositiveLiteral(v Atom) Literal {
	return Literal(v) * 2
}

// NegativeLiteral returns the negative literal of atom v.
func NegativeLiteral(v Atom) Literal {
	return Literal(v)*2 + 1
}

// VarID returns the id of the literal's atom.
func (l Literal) VarID() Atom {
	return Atom(l / 2)
}

// IsPositive returns true if and only if the literal represents the value
// of its atom (i.e. not its negation).
func (l Literal) IsPositive() bool {
	return l&1 == 0
}

// Opposite returns the negation of the literal.
func (l Literal) Opposite() Literal {
	return l ^ 1
}

func (l Literal) String() string {
	if l.IsPositive() {
		return fmt.Sprintf("%d", l.VarID())
	}
	return fmt.Sprintf("!%d", l.VarID())
}
