package sat

import "sort"

// reduceLearnts implements spec §4.H's reduction policy: learnt clauses of
// length <= 2 are immortal, as are clauses whose initial LBD is <=
// glueStrength; among the rest, the bottom half by the documented
// tie-break order (activity ascending, LBD descending — see DESIGN.md
// Open Question #1) is deleted, except for clauses currently locked as a
// trail reason. Grounded directly on the teacher's Solver.ReduceDB
// (internal/sat/solver.go), generalized with the LBD/glue-strength
// immortality rule the teacher's version does not have.
func (ctx *Context) reduceLearnts() {
	learnts := ctx.learnts
	if len(learnts) == 0 {
		return
	}

	immortal := make([]*clause, 0, len(learnts)/2)
	candidates := make([]*clause, 0, len(learnts))
	for _, c := range learnts {
		if len(c.literals) <= 2 || c.lbd <= uint32(ctx.config.GlueStrength) || c.isProtected() {
			immortal = append(immortal, c)
			continue
		}
		candidates = append(candidates, c)
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].activity != candidates[j].activity {
			return candidates[i].activity < candidates[j].activity
		}
		return candidates[i].lbd > candidates[j].lbd
	})

	kept := immortal
	half := len(candidates) / 2
	for i, c := range candidates {
		if i < half && !c.locked(ctx) {
			c.delete(ctx)
			ctx.Stats.DeletedLearnts++
			continue
		}
		kept = append(kept, c)
	}

	ctx.learnts = kept
}
