package sat

import "time"

// StoppingCriteria selects how far conflict analysis resolves back along
// the trail (spec §4.F step 8).
type StoppingCriteria int

const (
	// FirstUIP stops resolution at the first unique implication point. This
	// is the default and produces the smallest, most commonly useful
	// learnt clauses.
	FirstUIP StoppingCriteria = iota

	// NoneStopping resolves against every reason until no non-decision
	// literal remains at any level, producing a clause made entirely of
	// negated decisions. Primarily for pedagogical/experimental use (spec
	// §9).
	NoneStopping
)

// VSIDSVariant selects which atoms have their activity bumped during
// conflict analysis (spec §4.F, "Activity updates").
type VSIDSVariant int

const (
	// MiniSATVSIDS bumps every atom appearing in the learnt clause.
	MiniSATVSIDS VSIDSVariant = iota

	// ChaffVSIDS bumps every atom whose reason clause was resolved against
	// during analysis, regardless of whether it survives into the learnt
	// clause.
	ChaffVSIDS
)

// Config holds every tunable named in spec §6. NewContext uses the fields
// as given: a zero value is not replaced by DefaultConfig's value, so a
// zero Config has zero decay factors, Luby base and reduction interval.
// Each boolean means what its name says (PhaseSaving=false turns phase
// saving off; NoRestart=false leaves restarts on).
type Config struct {
	// VariableDecay is the per-conflict multiplicative decay applied to the
	// VSIDS increment, expressed the way MiniSAT-family solvers do: a decay
	// in (0, 1], where smaller values forget history faster. Derived from a
	// decay parameter of 50 by default (1 - 1/50 = 0.98 per the teacher's
	// convention... see DefaultConfig).
	VariableDecay float64

	// ClauseDecay is the equivalent decay for learnt-clause activity.
	ClauseDecay float64

	// ReductionInterval is the number of conflicts between two clause-DB
	// reductions.
	ReductionInterval uint

	// NoReduction disables clause-DB purging entirely.
	NoReduction bool

	// NoRestart disables Luby restarts.
	NoRestart bool

	// NoSubsumption disables on-the-fly self-subsumption during analysis.
	NoSubsumption bool

	// Preprocess enables unique-polarity (pure literal) elimination at
	// level 0 before solving starts.
	Preprocess bool

	// GlueStrength: learnt clauses whose initial LBD is <= this value are
	// immortal (never reduced away).
	GlueStrength uint

	// StoppingCriteria selects the conflict-analysis stopping rule.
	StoppingCriteria StoppingCriteria

	// VSIDSVariant selects which atoms are bumped during analysis.
	VSIDSVariant VSIDSVariant

	// LubyU is the base multiplier of the Luby restart sequence.
	LubyU uint

	// RandomChoiceFrequency is the probability in [0, 1] of making a
	// uniformly random decision instead of following VSIDS order.
	RandomChoiceFrequency float64

	// PolarityLean is the probability in [0, 1] of choosing positive
	// polarity when no phase is saved for the decided atom.
	PolarityLean float64

	// TimeLimit bounds wall-clock solving time. Zero means no limit.
	TimeLimit time.Duration

	// RNGSeed seeds the context's private RNG (phase/polarity/random-choice
	// decisions). Fixed by default so that identical inputs, seed, and
	// configuration reproduce identical runs (spec §5).
	RNGSeed int64

	// PhaseSaving enables remembering the last value of unassigned atoms
	// and preferring it on the next decision over PolarityLean.
	PhaseSaving bool

	// Logger receives structured boundary events (restart, reduce,
	// terminal state) if non-nil. The core never logs from inside
	// propagate/analyze: only from the driver, between conflicts.
	Logger FieldLogger

	// ProofSink, if non-nil, receives the clause lifecycle event stream
	// described in spec §4.J.
	ProofSink ProofSink
}

// FieldLogger is the subset of logrus.FieldLogger the core depends on, kept
// as a narrow interface so internal/sat does not import logrus directly.
// A *logrus.Logger does not satisfy it as is (its WithField returns a
// *logrus.Entry), so cmd/yass wires one in through a small adapter
// (cmd/yass/logadapter.go).
type FieldLogger interface {
	WithField(key string, value interface{}) FieldLogger
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
}

// ProofSink receives clause lifecycle events (spec §4.J). It is defined
// here (rather than imported from internal/proof) to keep internal/sat free
// of a dependency on the proof package; internal/proof.Writer implements
// this interface.
type ProofSink interface {
	Original(id ClauseID, lits []Literal)
	Learn(id ClauseID, lits []Literal, antecedents []ClauseID)
	Delete(id ClauseID)
	Final(id ClauseID)
	UnitAtLevel0(lit Literal, reason ClauseID)
}

// DefaultConfig returns the configuration used when no overrides are
// supplied, matching spec §6's default column.
func DefaultConfig() Config {
	return Config{
		VariableDecay:         1 - 1.0/50.0,
		ClauseDecay:           1 - 1.0/20.0,
		ReductionInterval:     500,
		GlueStrength:          3,
		StoppingCriteria:      FirstUIP,
		VSIDSVariant:          MiniSATVSIDS,
		LubyU:                 128,
		RandomChoiceFrequency: 0,
		PolarityLean:          0,
		RNGSeed:               42,
		PhaseSaving:           true,
	}
}
