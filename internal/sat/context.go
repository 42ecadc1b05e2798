package sat

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Status is the outcome of a Solve call, or the context's current phase,
// per the state machine diagram in spec §4.I.
type Status int

const (
	// Unknown means solving has not produced a definitive answer yet
	// (still configuring/ready), or was interrupted by a budget.
	Unknown Status = iota
	Satisfiable
	Unsatisfiable
	UnsatisfiableUnderAssumptions
)

func (s Status) String() string {
	switch s {
	case Satisfiable:
		return "SATISFIABLE"
	case Unsatisfiable:
		return "UNSATISFIABLE"
	case UnsatisfiableUnderAssumptions:
		return "UNSATISFIABLE (under assumptions)"
	default:
		return "UNKNOWN"
	}
}

// Callbacks holds the optional out-call hooks named in spec §4.I's
// set_callback operation. Fields are invoked synchronously on the solving
// goroutine. OnAddition, OnDeletion, OnLearn and OnTerminate fire between
// steps of the search loop, never from inside propagate/analyze;
// OnFixedAssignment fires as each literal is fixed at level 0, which may
// happen during propagation. OnFinalise is never invoked by Context. A
// callback must not re-enter the Context (spec §5).
type Callbacks struct {
	OnAddition        func(id ClauseID, lits []Literal)
	OnDeletion        func(id ClauseID)
	OnFinalise        func(id ClauseID)
	OnTerminate       func(status Status)
	OnFixedAssignment func(lit Literal)
	OnLearn           func(id ClauseID, lits []Literal, lbd uint32)
}

// Context is the public solving driver (spec §4.I): it owns the clause
// arena, trail, watch lists, decision heuristic, and restart/reduction
// policies, and exposes the embedded API of spec §6. It is grounded on the
// teacher's Solver (internal/sat/solver.go), restructured around an explicit
// Status (Unknown, Satisfiable, Unsatisfiable, UnsatisfiableUnderAssumptions);
// there are no separate Configured/Ready/Running values, Unknown covers
// every non-terminal phase. The teacher's inline fields become the trail, watchLists,
// varOrder, and ClauseArena components above.
type Context struct {
	id uuid.UUID

	config Config
	rng    *rand.Rand

	arena       *ClauseArena
	constraints []*clause
	learnts     []*clause

	clauseInc   float64
	clauseDecay float64

	watches   *watchLists
	trail     *trail
	propQueue *Queue[Literal]
	order     *varOrder
	restart   *restartPolicy

	conflictsSinceReduce uint

	status       Status
	unsat        bool
	preprocessed bool

	assumptions    []Literal
	assumptionHead int
	failedCore     map[Literal]bool

	callbacks Callbacks
	proof     ProofSink
	terminate func() bool

	startTime time.Time

	seenVar      *ResetSet
	minimizeSeen *ResetSet

	tmpWatchers []watcher
	tmpLearnts  []Literal
	tmpReason   []Literal
	tmpReason2  []Literal

	antecedents []ClauseID // scratch buffer for the proof Learn event

	Models [][]bool

	Stats Stats
}

// NewContext returns a fresh context configured per cfg. Unset numeric
// fields in cfg are not defaulted: callers should start from DefaultConfig
// and override only what they need.
func NewContext(cfg Config) *Context {
	ctx := &Context{
		id:          uuid.New(),
		config:      cfg,
		rng:         rand.New(rand.NewSource(cfg.RNGSeed)),
		arena:       newClauseArena(),
		clauseInc:   1,
		clauseDecay: cfg.ClauseDecay,
		watches:     newWatchLists(),
		trail:       newTrail(),
		propQueue:   NewQueue[Literal](128),
		restart:     newRestartPolicy(uint64(cfg.LubyU), cfg.NoRestart),
		seenVar:     &ResetSet{},
		minimizeSeen: &ResetSet{},
		proof:       cfg.ProofSink,
	}
	ctx.order = newVarOrder(cfg.VariableDecay, cfg.PhaseSaving, cfg.RandomChoiceFrequency, cfg.PolarityLean, ctx.rng)
	ctx.Stats.lbdEMA = NewEMA(0.95)
	return ctx
}

// ID returns the context's unique identifier, generated by NewContext. The
// solver itself does not write it anywhere (the proof stream carries no
// header); embedders may use it to tell contexts apart.
func (ctx *Context) ID() uuid.UUID { return ctx.id }

// SetCallbacks installs the callback hooks (spec §4.I set_callback). Any
// field left nil is simply not invoked.
func (ctx *Context) SetCallbacks(cb Callbacks) { ctx.callbacks = cb }

// SetTerminate installs the external cancellation predicate polled after
// every conflict and before every decision (spec §5 Cancellation). A nil
// predicate disables polling.
func (ctx *Context) SetTerminate(fn func() bool) { ctx.terminate = fn }

// FreshAtom allocates a new atom (spec §4.I fresh_atom()).
func (ctx *Context) FreshAtom() (Atom, error) {
	if len(ctx.trail.level) >= (1<<31)-1 {
		return 0, ErrAtomExhausted
	}
	v := Atom(ctx.trail.numAtoms())
	ctx.trail.growBy(1)
	ctx.watches.growBy(1)
	ctx.order.addAtom()
	ctx.seenVar.Expand()
	ctx.minimizeSeen.Expand()
	return v, nil
}

func (ctx *Context) NumAtoms() int      { return ctx.trail.numAtoms() }
func (ctx *Context) NumAssigned() int   { return ctx.trail.numAssigned() }
func (ctx *Context) NumConstraints() int { return len(ctx.constraints) }
func (ctx *Context) NumLearnts() int     { return len(ctx.learnts) }
func (ctx *Context) decisionLevel() int { return ctx.trail.currentLevel() }

// Value returns the current value of atom v.
func (ctx *Context) Value(v Atom) LBool { return ctx.trail.varValue(v) }

// LitValue returns the current value of literal l.
func (ctx *Context) LitValue(l Literal) LBool { return ctx.trail.litValue(l) }

// Valuation returns a snapshot of every atom's current value, indexed by
// Atom (spec §4.I valuation()).
func (ctx *Context) Valuation() []LBool {
	out := make([]LBool, ctx.NumAtoms())
	for v := range out {
		out[v] = ctx.trail.varValue(Atom(v))
	}
	return out
}

// AddClause registers a clause (spec §4.I add_clause). It must be called
// at the root decision level. A tautology (a literal and its negation both
// present) is dropped with no error (diagnostic only, spec §7). A clause
// that reduces to empty makes the context terminally unsatisfiable; check
// Status() afterwards to observe the BuildUnsatisfiable signal (spec §7:
// "not an error to the embedder").
func (ctx *Context) AddClause(lits []Literal) error {
	if ctx.decisionLevel() != 0 {
		return ErrNotAtRootLevel
	}
	if ctx.unsat {
		return nil
	}

	c, ok := addOriginalClause(ctx, lits)
	if !ok {
		ctx.unsat = true
		ctx.status = Unsatisfiable
		return nil
	}
	if c != nil {
		ctx.constraints = append(ctx.constraints, c)
		if ctx.proof != nil {
			ctx.proof.Original(c.id, append([]Literal(nil), c.literals...))
		}
		if ctx.callbacks.OnAddition != nil {
			ctx.callbacks.OnAddition(c.id, c.literals)
		}
	}
	return nil
}

// Assume pushes lit to be decided first on the next Solve call (spec §4.I
// assume()). Assumptions are consumed in the order they were pushed and
// cleared by Refresh.
func (ctx *Context) Assume(lit Literal) {
	ctx.assumptions = append(ctx.assumptions, lit)
}

// Failed reports whether lit participated in the UNSAT core of the last
// assumption conflict (spec §4.I failed()).
func (ctx *Context) Failed(lit Literal) bool {
	return ctx.failedCore[lit]
}

// Refresh backjumps to level 0 and drops pending assumptions while keeping
// learnt clauses and activities (spec §4.I refresh()). Idempotent: calling
// it twice in a row is equivalent to calling it once (spec Testable
// Property 7).
func (ctx *Context) Refresh() {
	ctx.cancelUntil(0)
	ctx.assumptions = nil
	ctx.assumptionHead = 0
	ctx.failedCore = nil
	if !ctx.unsat {
		ctx.status = Unknown
	}
}

// Status returns the context's current status.
func (ctx *Context) Status() Status { return ctx.status }

func (ctx *Context) enqueue(l Literal, from ClauseID) bool {
	switch ctx.trail.litValue(l) {
	case False:
		return false
	case True:
		return true
	default:
		ctx.trail.set(l, from)
		ctx.propQueue.Push(l)
		if ctx.decisionLevel() == 0 {
			ctx.Stats.UnitsAtLevel0++
			if ctx.proof != nil {
				ctx.proof.UnitAtLevel0(l, from)
			}
			if ctx.callbacks.OnFixedAssignment != nil {
				ctx.callbacks.OnFixedAssignment(l)
			}
		}
		return true
	}
}

func (ctx *Context) undoOne() {
	l := ctx.trail.unassignTop()
	v := l.VarID()
	val := Lift(l.IsPositive())
	ctx.order.reinsert(v, val)
}

func (ctx *Context) assumeDecision(l Literal) bool {
	ctx.trail.pushLevel()
	return ctx.enqueue(l, reasonAssumption)
}

func (ctx *Context) cancel() {
	start := ctx.trail.levelStart(ctx.decisionLevel())
	for len(ctx.trail.lits) > start {
		ctx.undoOne()
	}
	ctx.trail.popLevel()
}

func (ctx *Context) cancelUntil(level int) {
	for ctx.decisionLevel() > level {
		ctx.cancel()
	}
	// Assumptions are decided in order, one per decision level (1..len(
	// assumptions)), so assumptionHead tracks decisionLevel() while
	// assumptions remain. A backjump below assumptionHead undoes an
	// assumption decision along with everything it implied; the cursor
	// must retreat with it so Solve's assumption loop re-decides (and, if
	// it's now falsified, re-checks) that assumption instead of silently
	// treating it as an ordinary fact (MiniSat's decisionLevel() <
	// assumptions.size() pattern).
	if ctx.assumptionHead > level {
		ctx.assumptionHead = level
	}
}

func (ctx *Context) shouldStop() bool {
	if ctx.terminate != nil && ctx.terminate() {
		return true
	}
	if ctx.config.TimeLimit > 0 && time.Since(ctx.startTime) >= ctx.config.TimeLimit {
		return true
	}
	return false
}

func (ctx *Context) saveModel() {
	model := make([]bool, ctx.NumAtoms())
	for i := range model {
		lb := ctx.Value(Atom(i))
		invariant(lb != Unknown, "saveModel called on a partial assignment")
		model[i] = lb == True
	}
	ctx.Models = append(ctx.Models, model)
}

// Solve runs the main solving loop (spec §4.I). It returns once the
// formula (plus any pending assumptions) is determined SAT/UNSAT, a
// configured budget expires, or the external terminate predicate fires.
func (ctx *Context) Solve() Status {
	if ctx.unsat {
		ctx.status = Unsatisfiable
		ctx.fireTerminate()
		return ctx.status
	}

	ctx.startTime = time.Now()
	ctx.status = Unknown

	if !ctx.preprocessed {
		ctx.preprocessed = true
		ctx.preprocess()
		if ctx.unsat {
			ctx.status = Unsatisfiable
			ctx.fireTerminate()
			return ctx.status
		}
	}

	for {
		if conflict := ctx.propagate(); conflict != noClause {
			if ctx.decisionLevel() == 0 {
				ctx.unsat = true
				ctx.status = Unsatisfiable
				ctx.fireTerminate()
				return ctx.status
			}
			ctx.handleConflict(conflict)
			if ctx.shouldStop() {
				ctx.status = Unknown
				ctx.fireTerminate()
				return ctx.status
			}
			continue
		}

		if ctx.decisionLevel() == 0 {
			ctx.simplify()
		}

		if ctx.assumptionHead < len(ctx.assumptions) {
			lit := ctx.assumptions[ctx.assumptionHead]
			ctx.assumptionHead++
			if ctx.trail.litValue(lit) == False {
				ctx.buildFailedCore(lit)
				ctx.status = UnsatisfiableUnderAssumptions
				ctx.fireTerminate()
				return ctx.status
			}
			ctx.Stats.TotalDecisions++
			ctx.assumeDecision(lit)
			continue
		}

		if ctx.NumAssigned() == ctx.NumAtoms() {
			ctx.saveModel()
			ctx.status = Satisfiable
			ctx.fireTerminate()
			return ctx.status
		}

		if ctx.shouldStop() {
			ctx.status = Unknown
			ctx.fireTerminate()
			return ctx.status
		}

		ctx.Stats.TotalDecisions++
		ctx.Stats.TotalIterations++
		lit := ctx.order.decide(ctx)
		ctx.trail.pushLevel()
		ctx.enqueue(lit, reasonDecision)
	}
}

func (ctx *Context) fireTerminate() {
	if ctx.callbacks.OnTerminate != nil {
		ctx.callbacks.OnTerminate(ctx.status)
	}
	if ctx.config.Logger != nil {
		ctx.config.Logger.Infof("solve finished: status=%s conflicts=%d restarts=%d", ctx.status, ctx.Stats.TotalConflicts, ctx.Stats.TotalRestarts)
	}
}

func (ctx *Context) handleConflict(conflict ClauseID) {
	ctx.Stats.TotalConflicts++

	lits, backtrackLevel, lbd := ctx.analyze(conflict)
	ctx.Stats.lbdEMA.Add(float64(lbd))
	ctx.cancelUntil(backtrackLevel)

	c := recordLearnt(ctx, lits, lbd)
	ctx.enqueue(lits[0], idOrNone(c))
	if c != nil {
		ctx.learnts = append(ctx.learnts, c)
		ctx.Stats.LearnedClauses++
		if ctx.proof != nil {
			ctx.proof.Learn(c.id, append([]Literal(nil), c.literals...), append([]ClauseID(nil), ctx.antecedents...))
		}
		if ctx.callbacks.OnLearn != nil {
			ctx.callbacks.OnLearn(c.id, c.literals, lbd)
		}
	}

	ctx.order.decayScores()
	ctx.decayClauseActivity()

	if ctx.restart.onConflict() {
		ctx.cancelUntil(0)
		ctx.restart.restarted()
		ctx.Stats.TotalRestarts++
		if ctx.config.Logger != nil {
			ctx.config.Logger.Debugf("restart #%d after %d conflicts", ctx.Stats.TotalRestarts, ctx.Stats.TotalConflicts)
		}
	}

	ctx.conflictsSinceReduce++
	if !ctx.config.NoReduction && ctx.conflictsSinceReduce >= ctx.config.ReductionInterval {
		ctx.conflictsSinceReduce = 0
		ctx.reduceLearnts()
		if ctx.config.Logger != nil {
			ctx.config.Logger.Debugf("reduced clause DB to %d learnts", len(ctx.learnts))
		}
	}
}

func idOrNone(c *clause) ClauseID {
	if c == nil {
		return noClause
	}
	return c.id
}

func (ctx *Context) bumpClauseActivity(c *clause) {
	c.activity += ctx.clauseInc
	if c.activity > 1e100 {
		ctx.clauseInc *= 1e-100
		for _, l := range ctx.learnts {
			l.activity *= 1e-100
		}
	}
}

func (ctx *Context) decayClauseActivity() {
	ctx.clauseInc /= ctx.clauseDecay
}

// simplify drops root-level-satisfied clauses from both the constraint and
// learnt databases (spec §4.B/teacher's Simplify).
func (ctx *Context) simplify() {
	if ctx.propQueue.Size() != 0 {
		invariant(false, "simplify called with a non-empty propagation queue")
	}
	ctx.simplifySet(&ctx.learnts)
	ctx.simplifySet(&ctx.constraints)
}

func (ctx *Context) simplifySet(set *[]*clause) {
	clauses := *set
	j := 0
	for i := 0; i < len(clauses); i++ {
		if clauses[i].simplify(ctx) {
			clauses[i].delete(ctx)
		} else {
			clauses[j] = clauses[i]
			j++
		}
	}
	*set = clauses[:j]
}

// buildFailedCore walks back from the just-falsified assumption to collect
// the subset of assumptions responsible for the conflict (spec §4.I step
// 3, §8 Testable Property 3). Grounded on the same reason-walking shape as
// analyze, but collecting assumptions instead of building a learnt clause.
func (ctx *Context) buildFailedCore(conflicting Literal) {
	// conflicting is the assumption literal itself (already false on the
	// trail), so it belongs in the core under its own polarity: Failed is
	// queried with the exact literal the caller passed to Assume.
	core := map[Literal]bool{conflicting: true}
	ctx.seenVar.Clear()
	ctx.seenVar.Add(int(conflicting.VarID()))

	for i := len(ctx.trail.lits) - 1; i >= 0; i-- {
		l := ctx.trail.lits[i]
		v := l.VarID()
		if !ctx.seenVar.Contains(int(v)) {
			continue
		}
		if ctx.trail.varLevel(v) == 0 {
			continue // level-0 facts hold regardless of the assumptions
		}
		switch ctx.trail.reason[v] {
		case reasonAssumption:
			core[l] = true
		case reasonDecision:
			// Decisions only occur here during assumption pushing; treat
			// like an assumption root cause.
			core[l] = true
		default:
			r := ctx.arena.get(ctx.trail.reason[v])
			ctx.tmpReason2 = r.explainAssign(ctx.tmpReason2)
			for _, q := range ctx.tmpReason2 {
				ctx.seenVar.Add(int(q.VarID()))
			}
		}
	}
	ctx.failedCore = core
}
