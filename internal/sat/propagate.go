package sat

// propagate drains the propagation queue, implementing BCP (spec §4.E). It
// returns noClause if propagation reaches quiescence, or the id of the
// first clause found falsified. Grounded on the teacher's Solver.Propagate
// (internal/sat/solver.go), unchanged in structure: the guard-literal
// shortcut, the tmpWatchers double-buffering trick (so a clause can be
// reinserted into the same watch list being iterated without aliasing
// issues), and propagation-queue clearing on conflict are all kept as-is.
func (ctx *Context) propagate() ClauseID {
	for ctx.propQueue.Size() > 0 {
		l := ctx.propQueue.Pop()

		lst := ctx.watches.lists[l]
		ctx.tmpWatchers = append(ctx.tmpWatchers[:0], lst...)
		ctx.watches.lists[l] = lst[:0]

		for i, w := range ctx.tmpWatchers {
			if ctx.trail.litValue(w.guard) == True {
				ctx.watches.lists[l] = append(ctx.watches.lists[l], w)
				continue
			}

			c := ctx.arena.get(w.clause)
			if c.propagate(ctx, l) {
				continue
			}

			// w.clause is now conflicting: re-attach the watchers we have
			// not visited yet (propagate() on w.clause already re-attached
			// itself where appropriate) and stop.
			ctx.watches.lists[l] = append(ctx.watches.lists[l], ctx.tmpWatchers[i+1:]...)
			ctx.propQueue.Clear()
			return w.clause
		}
	}
	return noClause
}
