package sat

import "testing"

// TestAnalyze_FirstUIP drives a small conflict by hand (bypassing Solve's
// decision loop) and checks that analyze backjumps to a lower level and
// returns a unit-implying learnt clause, the shape described by spec §4.F
// scenario 4.
func TestAnalyze_FirstUIP(t *testing.T) {
	ctx, a := newTestContext(t, 3)

	// (a v b), (!b v c), (!a v !b v !c): deciding a=true at level 1 forces
	// nothing; deciding b=true at level 2 forces c=true (from the 2nd
	// clause) and then conflicts with the 3rd clause.
	for _, c := range [][]Literal{
		{PositiveLiteral(a[0]), PositiveLiteral(a[1])},
		{NegativeLiteral(a[1]), PositiveLiteral(a[2])},
		{NegativeLiteral(a[0]), NegativeLiteral(a[1]), NegativeLiteral(a[2])},
	} {
		if err := ctx.AddClause(c); err != nil {
			t.Fatalf("AddClause: %s", err)
		}
	}

	ctx.trail.pushLevel()
	ctx.enqueue(PositiveLiteral(a[0]), reasonDecision)
	if conflict := ctx.propagate(); conflict != noClause {
		t.Fatalf("unexpected conflict after deciding a: %v", conflict)
	}

	ctx.trail.pushLevel()
	ctx.enqueue(PositiveLiteral(a[1]), reasonDecision)
	conflict := ctx.propagate()
	if conflict == noClause {
		t.Fatalf("expected a conflict after deciding b")
	}

	learnt, backtrackLevel, lbd := ctx.analyze(conflict)
	if len(learnt) == 0 {
		t.Fatalf("analyze returned an empty learnt clause")
	}
	if backtrackLevel >= ctx.decisionLevel() {
		t.Errorf("backtrackLevel = %d, want < current level %d", backtrackLevel, ctx.decisionLevel())
	}
	if lbd == 0 {
		t.Errorf("computeLBD returned 0 for a non-empty learnt clause")
	}
}
