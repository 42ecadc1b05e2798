package sat

import "strings"

// clauseStatus is a bitmask of per-clause flags, grounded on the teacher's
// in-progress rewrite (the root-level sat/clauses.go this repository's
// internal/sat package supersedes).
type clauseStatus uint8

const (
	statusDeleted   clauseStatus = 0b001
	statusLearnt    clauseStatus = 0b010
	statusProtected clauseStatus = 0b100
)

// clause is the arena-owned representation of spec §3's Clause: an ordered
// sequence of distinct literals plus the learnt-only activity/LBD scores
// and the two watched positions (conventionally indices 0 and 1).
type clause struct {
	id ClauseID

	activity float64

	// literals always has at least two entries for a live clause (unit and
	// empty clauses are never stored in the arena, per spec §4.B); it is
	// nil once the clause has been deleted.
	literals []Literal

	// sliceRef is the pool-owned backing array literals was allocated from,
	// returned to the pool on delete.
	sliceRef *[]Literal

	// prevPos resumes the search for a new literal to watch from the
	// position at which the previous watch swap happened, rather than
	// always rescanning from position 2. Must stay within
	// [2, len(literals)-1] or be reset when stale.
	prevPos int

	// lbd is the literal block distance (spec §4.F step 7), computed once
	// when the clause is learnt and frozen for the immortal/GlueStrength
	// check in reduce.go even as clause content is later simplified.
	lbd uint32

	status clauseStatus
}

func (c *clause) isProtected() bool { return c.status&statusProtected != 0 }
func (c *clause) setProtected()     { c.status |= statusProtected }
func (c *clause) setUnprotected()   { c.status &^= statusProtected }
func (c *clause) isLearnt() bool    { return c.status&statusLearnt != 0 }
func (c *clause) isDeleted() bool   { return c.status&statusDeleted != 0 }

// newClauseAt constructs the backing clause and attaches its two watches.
// It does not perform deduplication/tautology checks: the caller
// (addOriginalClause or recordLearnt) is responsible for those, since they differ
// between original clauses (full dedup/tautology/root-simplification) and
// learnt clauses (already minimal, by construction of analyze).
func newClauseAt(ctx *Context, lits []Literal, learnt bool) *clause {
	ref := allocSlice(len(lits))
	backing := (*ref)[:0]
	backing = append(backing, lits...)
	*ref = backing

	c := &clause{
		literals: backing,
		sliceRef: ref,
		prevPos:  2,
	}
	if learnt {
		c.status |= statusLearnt

		// Watch the literal asserted at the highest decision level as the
		// clause's second watch (position 1), alongside the asserting
		// literal at position 0 (spec §4.F step 6 backjump convention).
		maxLevel := -1
		wl := 1
		for i, lit := range c.literals {
			if lvl := ctx.trail.varLevel(lit.VarID()); lvl > maxLevel {
				maxLevel = lvl
				wl = i
			}
		}
		c.literals[wl], c.literals[1] = c.literals[1], c.literals[wl]
	}

	id := ctx.arena.allocate(c)
	ctx.watches.watch(c.literals[0].Opposite(), id, c.literals[1])
	ctx.watches.watch(c.literals[1].Opposite(), id, c.literals[0])
	return c
}

// addOriginalClause dedups, drops tautologies, and simplifies lits against
// the current (level-0) assignment, then stores the result: nil+true for a
// dropped/already-satisfied clause, nil+ok=false for a derived empty clause,
// or the allocated *clause otherwise. Unit clauses are applied directly
// (spec §4.B) and never stored.
func addOriginalClause(ctx *Context, lits []Literal) (*clause, bool) {
	size := len(lits)
	seen := make(map[Literal]struct{}, size)

	for i := size - 1; i >= 0; i-- {
		if _, ok := seen[lits[i].Opposite()]; ok {
			return nil, true // tautology: a literal and its negation both occur
		}
		if _, ok := seen[lits[i]]; ok {
			size--
			lits[i], lits[size] = lits[size], lits[i]
			continue
		}
		seen[lits[i]] = struct{}{}

		switch ctx.trail.litValue(lits[i]) {
		case True:
			return nil, true // already satisfied at level 0
		case False:
			size--
			lits[i], lits[size] = lits[size], lits[i]
		}
	}
	lits = lits[:size]

	switch size {
	case 0:
		return nil, false // empty clause: terminal UNSAT
	case 1:
		return nil, ctx.enqueue(lits[0], noClause)
	default:
		c := newClauseAt(ctx, lits, false)
		return c, true
	}
}

// recordLearnt stores an already-minimized, already-ordered learnt clause
// (from analyze) and returns its id. The caller enqueues the asserting
// literal with this clause as its reason.
func recordLearnt(ctx *Context, lits []Literal, lbd uint32) *clause {
	if len(lits) == 1 {
		ctx.enqueue(lits[0], noClause)
		return nil
	}
	c := newClauseAt(ctx, lits, true)
	c.lbd = lbd
	return c
}

// locked reports whether c is currently serving as the reason for its
// first watched atom's assignment, which makes it unsafe to delete (spec
// §4.H reduction exception, §9 "reason pointers").
func (c *clause) locked(ctx *Context) bool {
	return ctx.trail.varReason(c.literals[0].VarID()) == c.id
}

// delete unwatches c and returns its backing slice to the allocator pool.
// The caller must have already verified c is not locked.
func (c *clause) delete(ctx *Context) {
	if ctx.callbacks.OnDeletion != nil {
		ctx.callbacks.OnDeletion(c.id)
	}
	c.status |= statusDeleted
	ctx.watches.unwatch(c.literals[0].Opposite(), c.id)
	ctx.watches.unwatch(c.literals[1].Opposite(), c.id)
	ctx.arena.markDeleted(c.id)
	if ctx.proof != nil {
		ctx.proof.Delete(c.id)
	}
	freeSlice(c.sliceRef)
	c.literals = nil
	c.sliceRef = nil
}

// simplify drops literals falsified at level 0 and reports whether the
// clause is already satisfied at level 0 (and can thus be dropped
// entirely).
func (c *clause) simplify(ctx *Context) bool {
	k := 0
	for _, lit := range c.literals {
		switch ctx.trail.litValue(lit) {
		case True:
			return true
		case False:
			// discard
		default:
			c.literals[k] = lit
			k++
		}
	}
	c.literals = c.literals[:k]
	return false
}

// propagate is called when watched literal l (one of c's two watches) has
// just become false. It implements spec §4.E steps 2-5 for a single clause:
// it returns true if literals[0] is already true, if another literal took
// over the watch, or if literals[0] was enqueued as a unit; it returns false
// if the clause is now a conflict (the caller, Context.propagate, reports
// the conflict). The blocker check happens in Context.propagate, before
// this method is called.
func (c *clause) propagate(ctx *Context, l Literal) bool {
	opp := l.Opposite()
	if c.literals[0] == opp {
		c.literals[0] = c.literals[1]
		c.literals[1] = opp
	}

	if ctx.trail.litValue(c.literals[0]) == True {
		ctx.watches.watch(l, c.id, c.literals[0])
		return true
	}

	if c.prevPos >= len(c.literals) {
		c.prevPos = 2
	}
	for i, lit := range c.literals[c.prevPos:] {
		if ctx.trail.litValue(lit) != False {
			c.prevPos += i
			c.literals[1] = lit
			c.literals[c.prevPos] = l.Opposite()
			ctx.watches.watch(lit.Opposite(), c.id, c.literals[0])
			return true
		}
	}
	for i, lit := range c.literals[2:c.prevPos] {
		if ctx.trail.litValue(lit) != False {
			c.prevPos = i + 2
			c.literals[1] = lit
			c.literals[c.prevPos] = l.Opposite()
			ctx.watches.watch(lit.Opposite(), c.id, c.literals[0])
			return true
		}
	}

	// All literals but literals[0] are false: literals[0] must become true.
	ctx.watches.watch(l, c.id, c.literals[0])
	return ctx.enqueue(c.literals[0], c.id)
}

// explainConflict appends the negation of every literal of c to out,
// reusable as the set of literals to resolve against when c is itself the
// conflicting clause (l == -1 case of spec §4.F's explain).
func (c *clause) explainConflict(out []Literal) []Literal {
	out = out[:0]
	for _, l := range c.literals {
		out = append(out, l.Opposite())
	}
	return out
}

// explainAssign appends the negation of every literal but the asserted one
// (literals[0]) to out: the antecedent of c.literals[0]'s assignment.
func (c *clause) explainAssign(out []Literal) []Literal {
	out = out[:0]
	for _, l := range c.literals[1:] {
		out = append(out, l.Opposite())
	}
	return out
}

func (c *clause) String() string {
	if len(c.literals) == 0 {
		return "Clause[]"
	}
	sb := strings.Builder{}
	sb.WriteString("Clause[")
	sb.WriteString(c.literals[0].String())
	for _, l := range c.literals[1:] {
		sb.WriteByte(' ')
		sb.WriteString(l.String())
	}
	sb.WriteByte(']')
	return sb.String()
}
