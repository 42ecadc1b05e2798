package sat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestReduceLearnts_ImmortalClausesSurvive verifies spec §4.H's immortality
// rule: clauses at or below GlueStrength, and clauses of length <= 2, are
// never deleted by reduction regardless of activity.
func TestReduceLearnts_ImmortalClausesSurvive(t *testing.T) {
	ctx, a := newTestContext(t, 6)

	glue := recordLearnt(ctx, []Literal{PositiveLiteral(a[0]), PositiveLiteral(a[1])}, 2)
	require.NotNil(t, glue)
	ctx.learnts = append(ctx.learnts, glue)

	// A long, high-LBD, low-activity learnt clause: a prime deletion
	// candidate.
	weak := recordLearnt(ctx, []Literal{
		PositiveLiteral(a[2]), PositiveLiteral(a[3]), PositiveLiteral(a[4]), PositiveLiteral(a[5]),
	}, 4)
	require.NotNil(t, weak)
	ctx.learnts = append(ctx.learnts, weak)

	require.Len(t, ctx.learnts, 2)
	ctx.reduceLearnts()

	survivors := make(map[ClauseID]bool, len(ctx.learnts))
	for _, c := range ctx.learnts {
		survivors[c.id] = true
	}
	require.True(t, survivors[glue.id], "glue clause (lbd<=GlueStrength) must survive reduction")
}

// TestReduceLearnts_LockedClauseSurvives verifies that a learnt clause
// currently serving as a trail reason is never deleted even if it would
// otherwise be a deletion candidate (spec §4.H "reason pointers").
func TestReduceLearnts_LockedClauseSurvives(t *testing.T) {
	ctx, a := newTestContext(t, 10)

	locked := recordLearnt(ctx, []Literal{
		PositiveLiteral(a[0]), PositiveLiteral(a[1]), PositiveLiteral(a[2]), PositiveLiteral(a[3]), PositiveLiteral(a[4]),
	}, 5)
	require.NotNil(t, locked)
	ctx.learnts = append(ctx.learnts, locked)

	unlocked := recordLearnt(ctx, []Literal{
		PositiveLiteral(a[5]), PositiveLiteral(a[6]), PositiveLiteral(a[7]), PositiveLiteral(a[8]), PositiveLiteral(a[9]),
	}, 5)
	require.NotNil(t, unlocked)
	ctx.learnts = append(ctx.learnts, unlocked)

	// Force locked to be locked: enqueue its asserting literal with itself
	// as the reason. Leave unlocked's activity identical (both start at 0)
	// so the tie-break (activity ascending, LBD descending) treats them as
	// equally good deletion candidates; only lock status should decide.
	ctx.enqueue(locked.literals[0], locked.id)
	require.True(t, locked.locked(ctx))
	require.False(t, unlocked.locked(ctx))

	ctx.reduceLearnts()

	survivors := make(map[ClauseID]bool, len(ctx.learnts))
	for _, c := range ctx.learnts {
		survivors[c.id] = true
	}
	require.True(t, survivors[locked.id], "a locked clause must not be deleted by reduction")
}
