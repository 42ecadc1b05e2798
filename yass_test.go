package main

import (
	"io/fs"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbsolver/cdclsat/internal/dimacs"
	"github.com/kbsolver/cdclsat/internal/sat"
)

// This test suite evaluates the correctness of yass by verifying that the
// solver is able to find the exact set of models for each instance in a
// comprehensive set of instances (see testdataDir), and that the
// incremental assume/failed/refresh surface behaves per spec scenario 6.

// Directory containing the test cases used to validate yass. Each test case
// must be provided with two files:
//
//   - An instance file containing a valid DIMACS SAT/UNSAT instance with the
//     ".cnf" file extension.
//   - A models file containing the (possibly empty) set of instance's models.
//     The file must contain one model per line using the same literals as in
//     the corresponding instance file. The models file must have the same name
//     as the instance file but with the ".cnf.models" file extension.
//
// Note that the test directory can contain subdirectories.
var testdataDir = "testdata"

type testCase struct {
	instanceName string
	instanceFile string
	modelsFile   string
}

// listTestCases returns the list of test cases contained in the file tree
// rooted in the given directory.
func listTestCases(dir string) ([]testCase, error) {
	testCases := []testCase{}
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(path, ".cnf") {
			return nil // not an instance file
		}
		testCases = append(testCases, testCase{
			instanceName: d.Name(),
			instanceFile: path,
			modelsFile:   path + ".models",
		})
		return nil
	})

	return testCases, err
}

// toString returns a binary string representation of the given model. For
// example, model [true, false, false] results in string "100".
func toString(model []bool) string {
	s := make([]byte, 0, len(model))
	for _, b := range model {
		if b {
			s = append(s, '1')
		} else {
			s = append(s, '0')
		}
	}
	return string(s)
}

// toSet converts a slice of models into a set of models represented as
// binary strings (see toString).
func toSet(s [][]bool) map[string]struct{} {
	set := map[string]struct{}{}
	for _, m := range s {
		set[toString(m)] = struct{}{}
	}
	return set
}

// solveAll returns an unordered list of all the instance's models, blocking
// each found model with a forbidding clause before solving again.
func solveAll(ctx *sat.Context) [][]bool {
	for ctx.Solve() == sat.Satisfiable {
		model := ctx.Models[len(ctx.Models)-1]
		modelClause := make([]sat.Literal, len(model))
		for i, b := range model {
			if b { // literals are flipped: forbid this exact assignment
				modelClause[i] = sat.NegativeLiteral(sat.Atom(i))
			} else {
				modelClause[i] = sat.PositiveLiteral(sat.Atom(i))
			}
		}
		ctx.Refresh() // Solve leaves the decisions on the trail
		if err := ctx.AddClause(modelClause); err != nil {
			break
		}
	}
	return ctx.Models
}

// TestSolveAll verifies that the solver is able to find all the models of a
// set of instances. Test cases (i.e. instances) are evaluated in parallel.
func TestSolveAll(t *testing.T) {
	testCases, err := listTestCases(testdataDir)
	if err != nil {
		t.Fatalf("Error parsing test cases: %s", err)
	}

	for i := 0; i < len(testCases); i++ {
		tc := testCases[i]
		t.Run(tc.instanceName, func(t *testing.T) {
			t.Parallel()

			want, err := dimacs.ReadModels(tc.modelsFile)
			if err != nil {
				t.Errorf("Model parsing error: %s", err)
			}

			ctx := sat.NewContext(sat.DefaultConfig())
			if err := dimacs.Load(ctx, tc.instanceFile, false); err != nil {
				t.Errorf("Instance parsing error: %s", err)
			}

			got := solveAll(ctx)

			if len(got) != len(want) {
				t.Errorf("Incorrect number of models: got %d, want %d", len(got), len(want))
			}
			if !cmp.Equal(toSet(got), toSet(want)) {
				t.Errorf("Model mismatch")
			}
		})
	}
}

// TestAssumeFailedRefresh exercises spec scenario 6: pushing assumptions
// that conflict with a fixed clause should report UnsatisfiableUnderAssumptions
// with a minimal failed core, and Refresh should restore the context to a
// clean, satisfiable state without losing the original clause.
func TestAssumeFailedRefresh(t *testing.T) {
	ctx := sat.NewContext(sat.DefaultConfig())

	a, _ := ctx.FreshAtom()
	b, _ := ctx.FreshAtom()

	// a v b
	if err := ctx.AddClause([]sat.Literal{sat.PositiveLiteral(a), sat.PositiveLiteral(b)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}
	// !a v !b
	if err := ctx.AddClause([]sat.Literal{sat.NegativeLiteral(a), sat.NegativeLiteral(b)}); err != nil {
		t.Fatalf("AddClause: %s", err)
	}

	// Assuming both a and b true contradicts the second clause.
	ctx.Assume(sat.PositiveLiteral(a))
	ctx.Assume(sat.PositiveLiteral(b))

	status := ctx.Solve()
	if status != sat.UnsatisfiableUnderAssumptions {
		t.Fatalf("Solve() = %s, want %s", status, sat.UnsatisfiableUnderAssumptions)
	}
	if !ctx.Failed(sat.PositiveLiteral(a)) && !ctx.Failed(sat.PositiveLiteral(b)) {
		t.Errorf("Failed(): expected at least one of the pushed assumptions to be in the core")
	}

	ctx.Refresh()
	if status := ctx.Solve(); status != sat.Satisfiable {
		t.Fatalf("Solve() after Refresh() = %s, want %s", status, sat.Satisfiable)
	}

	// Refresh is idempotent: calling it again and re-solving should still
	// succeed without error.
	ctx.Refresh()
	ctx.Refresh()
	if status := ctx.Solve(); status != sat.Satisfiable {
		t.Fatalf("Solve() after repeated Refresh() = %s, want %s", status, sat.Satisfiable)
	}
}
