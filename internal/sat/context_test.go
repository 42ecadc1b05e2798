package sat

import "testing"

func lits(atoms []Atom, positive []bool) []Literal {
	out := make([]Literal, len(atoms))
	for i, a := range atoms {
		if positive[i] {
			out[i] = PositiveLiteral(a)
		} else {
			out[i] = NegativeLiteral(a)
		}
	}
	return out
}

func newTestContext(t *testing.T, nAtoms int) (*Context, []Atom) {
	t.Helper()
	ctx := NewContext(DefaultConfig())
	atoms := make([]Atom, nAtoms)
	for i := range atoms {
		a, err := ctx.FreshAtom()
		if err != nil {
			t.Fatalf("FreshAtom: %s", err)
		}
		atoms[i] = a
	}
	return ctx, atoms
}

// Scenario 1 (spec §8): a satisfiable formula is found SAT and the returned
// model satisfies every added clause.
func TestSolve_Satisfiable(t *testing.T) {
	ctx, a := newTestContext(t, 3)

	clauses := [][]bool{
		{true, true, true},
		{false, true, false},
		{true, false, true},
	}
	for _, c := range clauses {
		if err := ctx.AddClause(lits(a, c)); err != nil {
			t.Fatalf("AddClause: %s", err)
		}
	}

	if status := ctx.Solve(); status != Satisfiable {
		t.Fatalf("Solve() = %s, want %s", status, Satisfiable)
	}

	model := ctx.Models[len(ctx.Models)-1]
	for ci, c := range clauses {
		ok := false
		for i, want := range c {
			if model[i] == want {
				ok = true
				break
			}
		}
		if !ok {
			t.Errorf("clause %d (%v) not satisfied by model %v", ci, c, model)
		}
	}
}

// Scenario 2 (spec §8): a minimal unsatisfiable formula (here, a variable
// forced both true and false) is found UNSAT.
func TestSolve_Unsatisfiable(t *testing.T) {
	ctx, a := newTestContext(t, 1)

	if err := ctx.AddClause([]Literal{PositiveLiteral(a[0])}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if err := ctx.AddClause([]Literal{NegativeLiteral(a[0])}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}

	if status := ctx.Solve(); status != Unsatisfiable {
		t.Fatalf("Solve() = %s, want %s", status, Unsatisfiable)
	}
	if status := ctx.Status(); status != Unsatisfiable {
		t.Fatalf("Status() = %s, want %s", status, Unsatisfiable)
	}
}

// A clause reducing to empty (both polarities of the same atom) at root
// level leaves the context terminally UNSAT without returning a Go error,
// per spec §7's BuildUnsatisfiable-is-not-an-error rule, as long as it
// doesn't itself look like a tautology (which AddClause drops silently).
func TestAddClause_EmptyClauseIsNotAnError(t *testing.T) {
	ctx, a := newTestContext(t, 1)

	if err := ctx.AddClause([]Literal{PositiveLiteral(a[0])}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if err := ctx.AddClause([]Literal{NegativeLiteral(a[0])}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	if ctx.Status() != Unsatisfiable {
		t.Fatalf("Status() = %s, want %s", ctx.Status(), Unsatisfiable)
	}

	// A further AddClause call on an already-unsat context is a silent
	// no-op, not an error.
	if err := ctx.AddClause([]Literal{PositiveLiteral(a[0])}); err != nil {
		t.Fatalf("AddClause on terminal context returned an error: %s", err)
	}
}

// AddClause away from the root decision level is rejected (spec §4.I).
func TestAddClause_NotAtRootLevel(t *testing.T) {
	ctx, a := newTestContext(t, 2)

	ctx.Assume(PositiveLiteral(a[0]))
	ctx.assumeDecision(PositiveLiteral(a[0])) // simulate being mid-search

	if err := ctx.AddClause([]Literal{PositiveLiteral(a[1])}); err != ErrNotAtRootLevel {
		t.Fatalf("AddClause() = %v, want %v", err, ErrNotAtRootLevel)
	}
}

func TestFreshAtom_GrowsBookkeeping(t *testing.T) {
	ctx := NewContext(DefaultConfig())
	for i := 0; i < 10; i++ {
		a, err := ctx.FreshAtom()
		if err != nil {
			t.Fatalf("FreshAtom: %s", err)
		}
		if int(a) != i {
			t.Errorf("FreshAtom() = %d, want %d", a, i)
		}
	}
	if ctx.NumAtoms() != 10 {
		t.Errorf("NumAtoms() = %d, want 10", ctx.NumAtoms())
	}
}
