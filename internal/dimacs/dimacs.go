// Package dimacs reads the DIMACS CNF and model formats used to
// exchange SAT instances and solutions (spec §6). Parsing is delegated to
// github.com/rhartert/dimacs, grounded on the teacher's own parsers/
// package, which already wires that library via a small Builder adapter
// rather than hand-rolling a scanner.
package dimacs

import (
	"compress/gzip"
	"fmt"
	"io"
	"os"

	rdimacs "github.com/rhartert/dimacs"
	"github.com/kbsolver/cdclsat/internal/sat"
)

// dimacsWriter is the subset of *sat.Context that LoadDIMACS needs, kept as
// a narrow interface so the parser can be exercised against a lightweight
// test double without pulling in the whole solver.
type dimacsWriter interface {
	FreshAtom() (sat.Atom, error)
	AddClause([]sat.Literal) error
}

func reader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	rc := io.ReadCloser(file)
	if gzipped {
		rc, err = gzip.NewReader(rc)
		if err != nil {
			return nil, err
		}
	}
	return rc, nil
}

// LoadDIMACS reads a DIMACS CNF file (optionally gzip-compressed) from
// filename, creating one atom per declared variable and one clause per
// declared clause on dw.
func LoadDIMACS(filename string, gzipped bool, dw dimacsWriter) error {
	rc, err := reader(filename, gzipped)
	if err != nil {
		return fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer rc.Close()

	b := &builder{dw: dw}
	if err := rdimacs.ReadBuilder(rc, b); err != nil {
		return fmt.Errorf("error parsing %q: %w", filename, err)
	}
	return b.addErr
}

// builder wraps a dimacsWriter to implement rdimacs.Builder.
type builder struct {
	dw     dimacsWriter
	addErr error
}

func (b *builder) Problem(problem string, nVars int, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("instance of type %q are not supported", problem)
	}
	for i := 0; i < nVars; i++ {
		if _, err := b.dw.FreshAtom(); err != nil {
			return fmt.Errorf("could not create atom %d: %w", i, err)
		}
	}
	return nil
}

func (b *builder) Clause(tmpClause []int) error {
	if b.addErr != nil {
		return nil
	}
	clause := make([]sat.Literal, len(tmpClause))
	for i, l := range tmpClause {
		if l < 0 {
			clause[i] = sat.NegativeLiteral(sat.Atom(-l - 1))
		} else {
			clause[i] = sat.PositiveLiteral(sat.Atom(l - 1))
		}
	}
	if err := b.dw.AddClause(clause); err != nil {
		b.addErr = fmt.Errorf("could not add clause: %w", err)
	}
	return nil
}

func (b *builder) Comment(_ string) error {
	return nil // ignore comments
}

// Load is a convenience wrapper combining file reading and atom/clause
// creation against a live solver context.
func Load(ctx *sat.Context, filename string, gzipped bool) error {
	return LoadDIMACS(filename, gzipped, ctx)
}
