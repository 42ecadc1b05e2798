package sat

// IPASIR is a thin adapter over Context matching the widely-used IPASIR v1
// incremental SAT calling convention (spec §6): literals are accumulated by
// repeated AddLiteral calls and committed on a terminating zero, mirroring
// ipasir_add's "int lit_or_zero" signature without forcing a Go caller to
// build a []Literal slice up front.
type IPASIR struct {
	ctx     *Context
	pending []Literal
}

// NewIPASIR wraps ctx with the IPASIR-style incremental surface.
func NewIPASIR(ctx *Context) *IPASIR {
	return &IPASIR{ctx: ctx}
}

// AddLiteral appends a DIMACS-encoded literal (positive/negative integer
// atom id, one-indexed) to the pending clause, or commits the pending
// clause when lit is 0 (ipasir_add).
func (ip *IPASIR) AddLiteral(lit int) error {
	if lit == 0 {
		pending := ip.pending
		ip.pending = nil
		return ip.ctx.AddClause(pending)
	}
	if lit < 0 {
		ip.pending = append(ip.pending, NegativeLiteral(Atom(-lit-1)))
	} else {
		ip.pending = append(ip.pending, PositiveLiteral(Atom(lit-1)))
	}
	return nil
}

// AddAssumption pushes a DIMACS-encoded literal as an assumption for the
// next Solve call (ipasir_assume).
func (ip *IPASIR) AddAssumption(lit int) {
	if lit < 0 {
		ip.ctx.Assume(NegativeLiteral(Atom(-lit - 1)))
	} else {
		ip.ctx.Assume(PositiveLiteral(Atom(lit - 1)))
	}
}

// Solve runs the solver and returns the IPASIR-style result code: 10 for
// SAT, 20 for UNSAT, 0 for unknown/interrupted (ipasir_solve).
func (ip *IPASIR) Solve() int {
	switch ip.ctx.Solve() {
	case Satisfiable:
		return 10
	case Unsatisfiable, UnsatisfiableUnderAssumptions:
		return 20
	default:
		return 0
	}
}

// Val returns the DIMACS-encoded literal matching lit's truth value in the
// last model found (ipasir_val). Returns 0 if lit is unassigned.
func (ip *IPASIR) Val(lit int) int {
	var l Literal
	if lit < 0 {
		l = NegativeLiteral(Atom(-lit - 1))
	} else {
		l = PositiveLiteral(Atom(lit - 1))
	}
	switch ip.ctx.LitValue(l) {
	case True:
		return lit
	case False:
		return -lit
	default:
		return 0
	}
}

// Failed reports whether the DIMACS-encoded assumption literal participated
// in the last UNSAT-under-assumptions core (ipasir_failed).
func (ip *IPASIR) Failed(lit int) bool {
	var l Literal
	if lit < 0 {
		l = NegativeLiteral(Atom(-lit - 1))
	} else {
		l = PositiveLiteral(Atom(lit - 1))
	}
	return ip.ctx.Failed(l)
}

// SetTerminate installs the external cancellation predicate (ipasir_set_terminate).
func (ip *IPASIR) SetTerminate(fn func() bool) {
	ip.ctx.SetTerminate(fn)
}

// SetLearn installs a callback invoked with the DIMACS-encoded literals of
// every learnt clause no longer than maxLen (ipasir_set_learn). A maxLen of
// 0 means no limit.
func (ip *IPASIR) SetLearn(maxLen int, fn func(clause []int)) {
	cb := ip.ctx.callbacks
	cb.OnLearn = func(_ ClauseID, lits []Literal, _ uint32) {
		if maxLen > 0 && len(lits) > maxLen {
			return
		}
		out := make([]int, len(lits))
		for i, l := range lits {
			if l.IsPositive() {
				out[i] = int(l.VarID()) + 1
			} else {
				out[i] = -(int(l.VarID()) + 1)
			}
		}
		fn(out)
	}
	ip.ctx.SetCallbacks(cb)
}
