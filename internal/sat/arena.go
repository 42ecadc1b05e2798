package sat

import "math"

// ClauseID is a stable key into the clause arena (spec §3 Ownership,
// §4.B). Unlike a *clause pointer, a ClauseID is what the proof emitter
// (§4.J) and the public API use to refer to clauses, so that arena
// compaction never invalidates an id an embedder or a proof consumer is
// holding.
type ClauseID uint32

const (
	// noClause is never a valid arena id; arena ids start at 1.
	noClause ClauseID = 0

	// reasonDecision marks a trail entry pushed by the decision heuristic
	// (spec §3: "reason ... is either a clause reference ... or decision").
	reasonDecision ClauseID = math.MaxUint32

	// reasonAssumption marks a trail entry pushed by assume() before the
	// next decision level (spec §4.I).
	reasonAssumption ClauseID = math.MaxUint32 - 1
)

// ClauseArena stores clauses under stable identifiers (spec §4.B).
// Deleted clauses are unwatched, and ids are never reused. Reduction only
// calls markDeleted on clauses that are not locked (see reduce.go); simplify
// may delete a clause that is still the recorded reason of a level-0
// literal, and such reasons are not dereferenced, since first-UIP analysis,
// minimization and failed-core extraction stop at level 0. Unit clauses are
// never stored here (they are applied directly at level 0, per spec §4.B).
type ClauseArena struct {
	clauses []*clause // index 0 is the noClause sentinel and is never used
}

// newClauseArena returns an empty arena.
func newClauseArena() *ClauseArena {
	return &ClauseArena{clauses: []*clause{nil}}
}

// allocate registers c in the arena and stamps it with a fresh id. c.id
// must be unset (noClause) on entry.
func (a *ClauseArena) allocate(c *clause) ClauseID {
	id := ClauseID(len(a.clauses))
	invariant(id != noClause && id < reasonAssumption, "clause arena exhausted")
	c.id = id
	a.clauses = append(a.clauses, c)
	return id
}

// get returns the clause stored under id. Panics (invariant violation) if
// id refers to a deleted or out-of-range slot: no valid code path should
// ever dereference a stale id.
func (a *ClauseArena) get(id ClauseID) *clause {
	invariant(id != noClause && int(id) < len(a.clauses), "clause id out of range")
	c := a.clauses[id]
	invariant(c != nil, "reason references a deleted clause")
	return c
}

// markDeleted removes c from the arena's live view. The slot is left nil so
// that a stale id dereference panics instead of silently reading garbage.
func (a *ClauseArena) markDeleted(id ClauseID) {
	a.clauses[id] = nil
}

// compact is a documented no-op: clause identity in this implementation is
// the arena index, and Go's non-moving heap means the backing *clause value
// never relocates underneath a held id. A future implementation that wants
// to physically shrink a.clauses and renumber ids would do so here and
// would need to return (and have callers apply) and old->new id remap, as
// described in spec §3's Ownership paragraph; nothing in this solver's
// lifecycle currently requires it (deleted slots are simply left nil and
// their ids never reused), so compaction is left unimplemented rather than
// built and never called.
func (a *ClauseArena) compact() {}
