package sat

import (
	"math/rand"

	"github.com/rhartert/yagh"
)

// varOrder maintains the VSIDS priority queue of atoms to be assigned by
// the decision heuristic (spec §4.G), grounded on the teacher's VarOrder
// (internal/sat/ordering.go), which is kept almost unchanged: same
// yagh-backed indexed heap, same rescaling-on-overflow discipline, same
// phase-saving hook. Generalized with random-choice and polarity-lean
// decision knobs read from Config and a private RNG (spec §9: "the RNG is
// part of the context ... no hidden global state").
type varOrder struct {
	heap *yagh.IntMap[float64]

	scores  []float64 // in [0, 1e100)
	scoreInc float64  // in (0, 1e100)
	decay    float64  // in (0, 1]

	phases      []LBool
	phaseSaving bool

	randomChoiceFrequency float64
	polarityLean          float64
	rng                   *rand.Rand
}

func newVarOrder(decay float64, phaseSaving bool, randomChoiceFrequency, polarityLean float64, rng *rand.Rand) *varOrder {
	return &varOrder{
		heap:                  yagh.New[float64](0),
		scoreInc:              1,
		decay:                 decay,
		phases:                make([]LBool, 0),
		phaseSaving:           phaseSaving,
		randomChoiceFrequency: randomChoiceFrequency,
		polarityLean:          polarityLean,
		rng:                   rng,
	}
}

// addAtom registers a newly created atom with zero initial score and
// unset phase.
func (vo *varOrder) addAtom() {
	v := Atom(len(vo.phases))
	vo.scores = append(vo.scores, 0)
	vo.phases = append(vo.phases, Unknown)
	vo.heap.GrowBy(1)
	vo.heap.Put(int(v), 0)
}

// reinsert adds atom v back to the set of candidates to be selected. Called
// by the driver when v is unassigned by a backjump, with val the value v
// held just before being unassigned (for phase saving).
func (vo *varOrder) reinsert(v Atom, val LBool) {
	if vo.phaseSaving {
		vo.phases[v] = val
	}
	vo.heap.Put(int(v), -vo.scores[v])
}

// decayScores slightly decreases the relative importance of past activity bumps
// by growing the increment applied to future bumps (equivalent to
// decaying every score, without touching every score).
func (vo *varOrder) decayScores() {
	vo.scoreInc /= vo.decay
	if vo.scoreInc > 1e100 {
		vo.rescale()
	}
}

// bump increases v's score, re-keying it in the heap if it is currently a
// member.
func (vo *varOrder) bump(v Atom) {
	newScore := vo.scores[v] + vo.scoreInc
	vo.scores[v] = newScore
	if vo.heap.Contains(int(v)) {
		vo.heap.Put(int(v), -newScore)
	}
	if newScore > 1e100 {
		vo.rescale()
	}
}

func (vo *varOrder) rescale() {
	vo.scoreInc *= 1e-100
	for v, s := range vo.scores {
		newScore := s * 1e-100
		vo.scores[v] = newScore
		if vo.heap.Contains(v) {
			vo.heap.Put(v, -newScore)
		}
	}
}

// decide returns the next unassigned literal to branch on (spec §4.G
// Decide()): with probability randomChoiceFrequency a uniformly random
// unassigned atom, otherwise the highest-activity unassigned atom from the
// heap; polarity follows saved phase memory, else a polarityLean-biased
// coin flip, else negative.
func (vo *varOrder) decide(ctx *Context) Literal {
	var v Atom
	if vo.randomChoiceFrequency > 0 && vo.rng.Float64() < vo.randomChoiceFrequency {
		if a, ok := vo.randomUnassigned(ctx); ok {
			v = a
			return vo.literalFor(v)
		}
	}

	for {
		next, ok := vo.heap.Pop()
		invariant(ok, "decision heap exhausted with unassigned atoms remaining")
		if ctx.trail.varValue(Atom(next.Elem)) != Unknown {
			continue
		}
		v = Atom(next.Elem)
		break
	}
	return vo.literalFor(v)
}

func (vo *varOrder) literalFor(v Atom) Literal {
	switch vo.phases[v] {
	case True:
		return PositiveLiteral(v)
	case False:
		return NegativeLiteral(v)
	default:
		if vo.polarityLean > 0 && vo.rng.Float64() < vo.polarityLean {
			return PositiveLiteral(v)
		}
		return NegativeLiteral(v)
	}
}

// randomUnassigned picks a uniformly random unassigned atom by reservoir
// sampling over the atom space. Returns ok=false if every atom is assigned
// (the caller then falls back to the heap).
func (vo *varOrder) randomUnassigned(ctx *Context) (Atom, bool) {
	n := len(vo.phases)
	picked, seen := Atom(0), 0
	for v := 0; v < n; v++ {
		if ctx.trail.varValue(Atom(v)) == Unknown {
			seen++
			if vo.rng.Intn(seen) == 0 {
				picked = Atom(v)
			}
		}
	}
	return picked, seen > 0
}
