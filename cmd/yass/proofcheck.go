package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/kbsolver/cdclsat/internal/dimacs"
	"github.com/kbsolver/cdclsat/internal/proof"
	"github.com/kbsolver/cdclsat/internal/sat"
)

// textSink writes one human-readable line per proof event, the simplest
// possible persisted trace format for the --proof flag.
type textSink struct {
	w io.Writer
}

func (s *textSink) Emit(e proof.Event) {
	switch e.Kind {
	case proof.Learn:
		fmt.Fprintf(s.w, "%s id=%d lits=%v antecedents=%v\n", e.Kind, e.ID, e.Literals, e.Antecedents)
	case proof.UnitAtLevel0:
		fmt.Fprintf(s.w, "%s lit=%v reason=%d\n", e.Kind, e.Literal, e.Reason)
	default:
		fmt.Fprintf(s.w, "%s id=%d lits=%v\n", e.Kind, e.ID, e.Literals)
	}
}

// newProofCheckCommand re-solves an instance with proof tracing enabled and
// reports the original-clause core behind an UNSAT result, exercising
// internal/proof.Writer.UnsatCore end to end.
func newProofCheckCommand() *cobra.Command {
	var gzip bool

	cmd := &cobra.Command{
		Use:   "proof-check <instance.cnf>",
		Short: "Solve an instance and report the UNSAT core derivation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := sat.DefaultConfig()
			cfg.Logger = newLogrusAdapter(log)
			writer := proof.NewWriter(nil)
			cfg.ProofSink = writer

			ctx := sat.NewContext(cfg)
			if err := dimacs.Load(ctx, args[0], gzip); err != nil {
				return fmt.Errorf("could not parse instance: %w", err)
			}

			status := ctx.Solve()
			fmt.Printf("status: %s\n", status)
			if status != sat.Unsatisfiable {
				fmt.Println("no UNSAT core to report")
				return nil
			}

			var lastLearnt sat.ClauseID
			for _, e := range writer.Events() {
				if e.Kind == proof.Learn {
					lastLearnt = e.ID
				}
			}
			if lastLearnt == 0 {
				fmt.Println("formula was unsatisfiable at level 0 (no clauses learnt)")
				return nil
			}

			core := writer.UnsatCore(lastLearnt)
			fmt.Printf("core size: %d original clauses\n", len(core))
			return nil
		},
	}
	cmd.Flags().BoolVar(&gzip, "gzip", false, "treat the input file as gzip-compressed")
	return cmd
}
