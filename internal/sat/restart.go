package sat

// luby returns the i-th (1-indexed) term of the standard Luby restart
// sequence 1, 1, 2, 1, 1, 2, 4, 1, 1, 2, 1, 1, 2, 4, 8, ... (spec §4.H,
// GLOSSARY). It is computed directly from the recursive characterization
// rather than memoized, since restart policy only ever asks for the next
// few terms.
func luby(i uint64) uint64 {
	// Find k such that i == 2^k - 1.
	k := uint64(1)
	for k < i+1 {
		k *= 2
	}
	if k-1 == i {
		return k / 2
	}
	return luby(i - (k/2 - 1))
}

// restartPolicy tracks the Luby restart schedule (spec §4.H). It is driven
// purely by conflict counts, never wall-clock time, so that restart points
// are reproducible given identical inputs and configuration (spec §5,
// Testable Property 6) — unlike gophersat's LBD/EMA-windowed trigger
// (other_examples/7551c36c_..._solver.go.go's lbdStats.mustRestart()),
// which this solver tracks only as an observability statistic (see
// Stats.LBDAverage), not as the restart trigger itself.
type restartPolicy struct {
	u        uint64
	disabled bool

	// lubyIndex is the 1-indexed position in the Luby sequence of the next
	// restart threshold.
	lubyIndex uint64

	// conflictsSinceRestart counts conflicts accumulated since the last
	// restart (or since the search began).
	conflictsSinceRestart uint64

	// hadConflictSinceLast records whether any conflict has occurred since
	// the previous restart, so a restart can be inhibited if none has
	// (spec §4.H).
	hadConflictSinceLast bool
}

func newRestartPolicy(u uint64, disabled bool) *restartPolicy {
	return &restartPolicy{u: u, disabled: disabled, lubyIndex: 1}
}

// onConflict records a conflict and reports whether a restart is now due.
func (r *restartPolicy) onConflict() bool {
	if r.disabled {
		return false
	}
	r.conflictsSinceRestart++
	r.hadConflictSinceLast = true

	threshold := r.u * luby(r.lubyIndex)
	if r.conflictsSinceRestart < threshold {
		return false
	}
	return true
}

// restarted resets the counters after a restart has actually been
// performed by the driver, advancing to the next Luby term.
func (r *restartPolicy) restarted() {
	if !r.hadConflictSinceLast {
		return // inhibited: nothing to restart from
	}
	r.conflictsSinceRestart = 0
	r.lubyIndex++
	r.hadConflictSinceLast = false
}
