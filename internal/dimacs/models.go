package dimacs

import (
	"fmt"

	rdimacs "github.com/rhartert/dimacs"
)

// ReadModels returns the list of models (if any) contained in filename, one
// row of boolean assignments per model line.
func ReadModels(filename string) ([][]bool, error) {
	rc, err := reader(filename, false)
	if err != nil {
		return nil, fmt.Errorf("error reading file %q: %s", filename, err)
	}
	defer rc.Close()

	b := &modelBuilder{}
	if err := rdimacs.ReadBuilder(rc, b); err != nil {
		return nil, err
	}
	return b.models, nil
}

// modelBuilder implements rdimacs.Builder over a model file: each clause
// line is a full assignment rather than a disjunction.
type modelBuilder struct {
	models [][]bool
}

func (b *modelBuilder) Problem(problem string, nVars int, nClauses int) error {
	return fmt.Errorf("model files should not have problem lines")
}

func (b *modelBuilder) Comment(_ string) error {
	return nil
}

func (b *modelBuilder) Clause(tmpClause []int) error {
	model := make([]bool, len(tmpClause))
	for i, l := range tmpClause {
		model[i] = l > 0
	}
	b.models = append(b.models, model)
	return nil
}
