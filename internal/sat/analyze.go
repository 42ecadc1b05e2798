package sat

// analyze implements conflict analysis (spec §4.F): it walks the trail
// backwards from the conflicting clause, resolving against reasons, and
// returns the learnt clause's literals (index 0 is the asserting literal),
// the backjump level, and the clause's LBD. Grounded on the teacher's
// Solver.analyze (internal/sat/solver.go), generalized with LBD
// computation, recursive minimization, the FirstUIP/None stopping-criteria
// switch, the MiniSAT/Chaff VSIDS-bump variants, and on-the-fly
// self-subsumption (spec §4.F steps 5, 7, 8 and "Activity updates",
// "On-the-fly self-subsumption" — none of which the teacher's version
// implements).
func (ctx *Context) analyze(conflictID ClauseID) ([]Literal, int, uint32) {
	ctx.antecedents = ctx.antecedents[:0]
	ctx.seenVar.Clear()

	var asserting Literal
	var backtrackLevel int

	if ctx.config.StoppingCriteria == NoneStopping {
		asserting, backtrackLevel = ctx.analyzeAllDecisions(conflictID)
	} else {
		asserting, backtrackLevel = ctx.analyzeFirstUIP(conflictID)
	}
	ctx.tmpLearnts[0] = asserting.Opposite()

	// Self-subsumption (spec §4.F) already folded candidate clauses in
	// place during resolution; see trySelfSubsume, called from explain.
	final := ctx.minimize(ctx.tmpLearnts)

	lbd := ctx.computeLBD(final)

	switch ctx.config.VSIDSVariant {
	case ChaffVSIDS:
		// Already bumped inline during resolution (the pivot of every
		// resolution step), see analyzeFirstUIP/analyzeAllDecisions.
	default: // MiniSATVSIDS
		for _, lit := range final {
			ctx.order.bump(lit.VarID())
		}
	}

	return final, backtrackLevel, lbd
}

// analyzeFirstUIP stops resolution at the first unique implication point on
// the current decision level (spec §4.F steps 1-4, the default).
func (ctx *Context) analyzeFirstUIP(conflictID ClauseID) (Literal, int) {
	ctx.tmpLearnts = append(ctx.tmpLearnts[:0], -1)

	nImplicationPoints := 0
	nextLiteral := len(ctx.trail.lits) - 1
	l := Literal(-1)
	confl := conflictID
	backtrackLevel := 0

	for {
		reasonLits := ctx.explain(confl, l)

		for _, q := range reasonLits {
			v := q.VarID()
			if ctx.seenVar.Contains(int(v)) {
				continue
			}
			ctx.seenVar.Add(int(v))
			if ctx.trail.varLevel(v) == ctx.decisionLevel() {
				nImplicationPoints++
				continue
			}
			ctx.tmpLearnts = append(ctx.tmpLearnts, q.Opposite())
			if lvl := ctx.trail.varLevel(v); lvl > backtrackLevel {
				backtrackLevel = lvl
			}
		}

		for {
			l = ctx.trail.lits[nextLiteral]
			nextLiteral--
			v := l.VarID()
			confl = ctx.trail.reason[v]
			if ctx.seenVar.Contains(int(v)) {
				break
			}
		}

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
	}

	return l, backtrackLevel
}

// analyzeAllDecisions implements the "None" stopping criterion (spec §4.F
// step 8, §9): resolution continues against every clause reason,
// regardless of decision level, until every remaining literal traces back
// to a decision or assumption. The asserting position is filled with an
// arbitrary (but deterministic) literal from the resulting all-decisions
// clause, since this mode has no single natural 1UIP.
func (ctx *Context) analyzeAllDecisions(conflictID ClauseID) (Literal, int) {
	ctx.tmpLearnts = append(ctx.tmpLearnts[:0], -1)

	pendingClauseReasons := 0
	nextLiteral := len(ctx.trail.lits) - 1
	l := Literal(-1)
	confl := conflictID
	backtrackLevel := 0

	for {
		reasonLits := ctx.explain(confl, l)

		for _, q := range reasonLits {
			v := q.VarID()
			if ctx.seenVar.Contains(int(v)) {
				continue
			}
			ctx.seenVar.Add(int(v))

			switch ctx.trail.reason[v] {
			case reasonDecision, reasonAssumption:
				ctx.tmpLearnts = append(ctx.tmpLearnts, q.Opposite())
				if lvl := ctx.trail.varLevel(v); lvl > backtrackLevel {
					backtrackLevel = lvl
				}
			default:
				pendingClauseReasons++
			}
		}

		if pendingClauseReasons == 0 {
			break
		}

		for {
			cand := ctx.trail.lits[nextLiteral]
			nextLiteral--
			v := cand.VarID()
			if !ctx.seenVar.Contains(int(v)) {
				continue
			}
			switch ctx.trail.reason[v] {
			case reasonDecision, reasonAssumption:
				continue // already filed into tmpLearnts above
			default:
				l = cand
				confl = ctx.trail.reason[v]
				pendingClauseReasons--
			}
			break
		}
	}

	if len(ctx.tmpLearnts) > 1 {
		// Move an arbitrary literal into the asserting slot so the clause
		// keeps the position-0-is-asserting convention the rest of the
		// solver relies on.
		l = ctx.tmpLearnts[1].Opposite()
	}
	return l, backtrackLevel
}

// explain returns the antecedent literals for the current resolution step,
// bumping clause activity, recording the antecedent id for the proof
// stream, applying the Chaff VSIDS bump, and attempting self-subsumption —
// the shared per-step work of both analyze variants above.
func (ctx *Context) explain(confl ClauseID, l Literal) []Literal {
	c := ctx.arena.get(confl)
	ctx.antecedents = append(ctx.antecedents, confl)
	if c.isLearnt() {
		ctx.bumpClauseActivity(c)
	}

	var lits []Literal
	if l == -1 {
		lits = c.explainConflict(ctx.tmpReason)
	} else {
		lits = c.explainAssign(ctx.tmpReason)
		if ctx.config.VSIDSVariant == ChaffVSIDS {
			ctx.order.bump(l.VarID())
		}
		if !ctx.config.NoSubsumption {
			ctx.trySelfSubsume(c, l, lits)
		}
	}
	ctx.tmpReason = lits
	return lits
}

// trySelfSubsume drops the pivot literal from c in place when every other
// antecedent literal was already known (seen) before this resolution step,
// i.e. the resolvent is a strict subset of c (spec §4.F "On-the-fly
// self-subsumption"). c keeps the same id; only its literal slice shrinks.
func (ctx *Context) trySelfSubsume(c *clause, pivot Literal, antecedentLits []Literal) {
	if c.isLocked(ctx) {
		return // never rewrite a clause while it is serving as a reason
	}
	for _, q := range antecedentLits {
		if !ctx.seenVar.Contains(int(q.VarID())) {
			return // introduces a literal the learnt clause doesn't already have
		}
	}
	// Every antecedent literal was already seen: the pivot is redundant in
	// c. Drop it (c must keep at least two literals to stay arena-legal).
	if len(c.literals) <= 2 {
		return
	}
	for i, lit := range c.literals {
		if lit == pivot.Opposite() {
			last := len(c.literals) - 1
			c.literals[i] = c.literals[last]
			c.literals = c.literals[:last]
			if c.prevPos > last {
				c.prevPos = 2
			}
			return
		}
	}
}

func (c *clause) isLocked(ctx *Context) bool { return c.locked(ctx) }

// minimize applies recursive minimization (spec §4.F step 5): a literal m
// (other than the asserting literal) is dropped from lits if every literal
// of its reason clause is either already in lits or itself recursively
// redundant. A marker set (ctx.minimizeSeen) avoids cycles; any chain that
// bottoms out at a decision/assumption literal not in lits is not
// redundant.
func (ctx *Context) minimize(lits []Literal) []Literal {
	if len(lits) <= 1 {
		return append([]Literal(nil), lits...)
	}

	out := make([]Literal, 1, len(lits))
	out[0] = lits[0]
	for _, m := range lits[1:] {
		if ctx.isRedundant(m, lits) {
			continue
		}
		out = append(out, m)
	}
	return out
}

// isRedundant reports whether literal m (already known false, i.e.
// m.Opposite() is on the trail) can be omitted from the learnt clause
// because its antecedent chain is entirely covered by lits.
func (ctx *Context) isRedundant(m Literal, lits []Literal) bool {
	v := m.VarID()
	reason := ctx.trail.reason[v]
	if reason == reasonDecision || reason == reasonAssumption {
		return false
	}

	ctx.minimizeSeen.Clear()
	for _, l := range lits {
		ctx.minimizeSeen.Add(int(l.VarID()))
	}
	return ctx.redundantChain(m)
}

// redundantChain walks m's antecedent clause directly off the clause's own
// literal slice rather than through a shared scratch buffer, since this
// function recurses and a shared buffer would be clobbered by a nested
// call before the caller finished iterating it.
func (ctx *Context) redundantChain(m Literal) bool {
	v := m.VarID()
	if ctx.trail.varLevel(v) == 0 {
		return true // level-0 facts are implied by the formula itself
	}
	reason := ctx.trail.reason[v]
	if reason == reasonDecision || reason == reasonAssumption {
		return ctx.minimizeSeen.Contains(int(v))
	}
	c := ctx.arena.get(reason)
	for _, lit := range c.literals[1:] {
		q := lit.Opposite()
		qv := q.VarID()
		if ctx.minimizeSeen.Contains(int(qv)) {
			continue
		}
		if !ctx.redundantChain(q) {
			return false
		}
		ctx.minimizeSeen.Add(int(qv))
	}
	return true
}

// computeLBD returns the number of distinct decision levels represented
// among lits (spec §4.F step 7, the "glue" score).
func (ctx *Context) computeLBD(lits []Literal) uint32 {
	ctx.minimizeSeen.Clear()
	var n uint32
	for _, l := range lits {
		lvl := ctx.trail.varLevel(l.VarID())
		if lvl < 0 {
			continue
		}
		if !ctx.minimizeSeen.Contains(lvl) {
			ctx.minimizeSeen.Add(lvl)
			n++
		}
	}
	return n
}
