package proof

import (
	"reflect"
	"sort"
	"testing"

	"github.com/kbsolver/cdclsat/internal/sat"
)

// checkerSink is an independent check of the event stream: for every Learn
// event it confirms that each antecedent id was emitted earlier (as an
// Original or Learn event), without relying on anything Writer itself does.
// It does not recompute resolvents.
type checkerSink struct {
	t        *testing.T
	byID     map[sat.ClauseID][]sat.Literal
	original map[sat.ClauseID]bool
}

func newCheckerSink(t *testing.T) *checkerSink {
	return &checkerSink{
		t:        t,
		byID:     make(map[sat.ClauseID][]sat.Literal),
		original: make(map[sat.ClauseID]bool),
	}
}

func (c *checkerSink) Emit(e Event) {
	switch e.Kind {
	case Original:
		c.byID[e.ID] = e.Literals
		c.original[e.ID] = true
	case Learn:
		c.byID[e.ID] = e.Literals
		for _, a := range e.Antecedents {
			if _, ok := c.byID[a]; !ok {
				c.t.Errorf("Learn event for clause %d references unknown antecedent %d", e.ID, a)
			}
		}
	}
}

func TestWriter_UnsatCore(t *testing.T) {
	checker := newCheckerSink(t)
	w := NewWriter(checker)

	a := sat.PositiveLiteral(0)
	b := sat.PositiveLiteral(1)
	c := sat.PositiveLiteral(2)

	w.Original(1, []sat.Literal{a, b})
	w.Original(2, []sat.Literal{a.Opposite(), c})
	w.Original(3, []sat.Literal{b.Opposite(), c.Opposite()})

	// Clause 4 resolves 1 and 2 on a, giving (b, c).
	w.Learn(4, []sat.Literal{b, c}, []sat.ClauseID{1, 2})
	// Clause 5 names 4 and 3 as its antecedents; its literals are not a
	// resolvent of them and are not checked, since only the antecedent ids
	// matter to UnsatCore.
	w.Learn(5, []sat.Literal{b}, []sat.ClauseID{4, 3})

	got := w.UnsatCore(5)
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	want := []sat.ClauseID{1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("UnsatCore(5) = %v, want %v", got, want)
	}
}

func TestWriter_UnsatCore_unknownID(t *testing.T) {
	w := NewWriter(nil)
	if got := w.UnsatCore(99); got != nil {
		t.Errorf("UnsatCore(99) = %v, want nil", got)
	}
}

func TestKind_String(t *testing.T) {
	cases := map[Kind]string{
		Original:     "original",
		Learn:        "learn",
		Delete:       "delete",
		Final:        "final",
		UnitAtLevel0: "unit@0",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
