package sat

// preprocess eliminates pure (unique-polarity) literals at level 0 before
// the main search begins (spec §6 Config.Preprocess, §9 Open Question:
// resolved as a fixpoint rather than a single pass — see DESIGN.md).
// Removing one pure atom can make another atom pure (every clause
// containing its other polarity might only have been kept alive by a
// clause the first elimination just satisfied), so the scan repeats until
// a full pass finds nothing left to assign. The loop is this function's
// own (simplify() in context.go makes a single pass); the teacher has no
// preprocessing pass of any kind to ground the scan itself on.
func (ctx *Context) preprocess() {
	if !ctx.config.Preprocess || ctx.unsat {
		return
	}

	for {
		changed := ctx.pureLiteralPass()
		if conflict := ctx.propagate(); conflict != noClause {
			ctx.unsat = true
			ctx.status = Unsatisfiable
			return
		}
		if !changed {
			return
		}
	}
}

// pureLiteralPass scans every constraint not yet satisfied at level 0,
// tallies per-atom positive/negative occurrence counts among its
// unassigned literals, and enqueues any atom that occurs with only one
// polarity. Returns whether any atom was newly assigned.
func (ctx *Context) pureLiteralPass() bool {
	n := ctx.NumAtoms()
	pos := make([]bool, n)
	neg := make([]bool, n)

	for _, c := range ctx.constraints {
		if c.isDeleted() {
			continue
		}
		satisfied := false
		for _, l := range c.literals {
			if ctx.trail.litValue(l) == True {
				satisfied = true
				break
			}
		}
		if satisfied {
			continue
		}
		for _, l := range c.literals {
			if ctx.trail.litValue(l) != Unknown {
				continue
			}
			if l.IsPositive() {
				pos[l.VarID()] = true
			} else {
				neg[l.VarID()] = true
			}
		}
	}

	changed := false
	for v := 0; v < n; v++ {
		atom := Atom(v)
		if ctx.trail.varValue(atom) != Unknown {
			continue
		}
		switch {
		case pos[v] && !neg[v]:
			ctx.enqueue(PositiveLiteral(atom), noClause)
			changed = true
		case neg[v] && !pos[v]:
			ctx.enqueue(NegativeLiteral(atom), noClause)
			changed = true
		}
	}
	return changed
}
