// Command yass solves DIMACS CNF instances with a CDCL SAT solver.
package main

import (
	"fmt"
	"os"
	"runtime/pprof"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kbsolver/cdclsat/internal/dimacs"
	"github.com/kbsolver/cdclsat/internal/proof"
	"github.com/kbsolver/cdclsat/internal/sat"
)

// version is stamped at build time via -ldflags, following the pack's
// convention for CLI tools built from cobra.
var version = "dev"

var log = logrus.New()

const defaultShutdownTimeout = 2 * time.Second

type rootFlags struct {
	cpuProfile    string
	memProfile    string
	verbose       bool
	gzip          bool
	timeLimit     time.Duration
	seed          int64
	noRestart     bool
	noReduction   bool
	noSubsumption bool
	glueStrength  uint
	proofPath     string
	metricsAddr   string
}

func buildConfig(f *rootFlags) sat.Config {
	cfg := sat.DefaultConfig()
	cfg.TimeLimit = f.timeLimit
	cfg.RNGSeed = f.seed
	cfg.NoRestart = f.noRestart
	cfg.NoReduction = f.noReduction
	cfg.NoSubsumption = f.noSubsumption
	if f.glueStrength > 0 {
		cfg.GlueStrength = f.glueStrength
	}
	cfg.Logger = newLogrusAdapter(log)
	return cfg
}

func newSolveCommand() *cobra.Command {
	f := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "solve <instance.cnf>",
		Short: "Solve a DIMACS CNF instance",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if f.verbose {
				log.SetLevel(logrus.DebugLevel)
			}
			return runSolve(args[0], f)
		},
	}

	cmd.Flags().StringVar(&f.cpuProfile, "cpuprof", "", "save pprof CPU profile to this path")
	cmd.Flags().StringVar(&f.memProfile, "memprof", "", "save pprof memory profile to this path")
	cmd.Flags().BoolVar(&f.verbose, "verbose", false, "enable debug logging")
	cmd.Flags().BoolVar(&f.gzip, "gzip", false, "treat the input file as gzip-compressed")
	cmd.Flags().DurationVar(&f.timeLimit, "time-limit", 0, "wall-clock time budget (0 = unlimited)")
	cmd.Flags().Int64Var(&f.seed, "seed", sat.DefaultConfig().RNGSeed, "RNG seed for phase/polarity/random-choice decisions")
	cmd.Flags().BoolVar(&f.noRestart, "no-restart", false, "disable Luby restarts")
	cmd.Flags().BoolVar(&f.noReduction, "no-reduction", false, "disable learnt clause database reduction")
	cmd.Flags().BoolVar(&f.noSubsumption, "no-subsumption", false, "disable on-the-fly self-subsumption")
	cmd.Flags().UintVar(&f.glueStrength, "glue-strength", 0, "LBD threshold at or below which learnt clauses are immortal (0 = default)")
	cmd.Flags().StringVar(&f.proofPath, "proof", "", "write a clause lifecycle event trace to this path")
	cmd.Flags().StringVar(&f.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address while solving (e.g. :9090)")

	return cmd
}

func runSolve(instanceFile string, f *rootFlags) error {
	if f.cpuProfile != "" {
		pf, err := os.Create(f.cpuProfile)
		if err != nil {
			return err
		}
		defer pf.Close()
		if err := pprof.StartCPUProfile(pf); err != nil {
			return err
		}
		defer pprof.StopCPUProfile()
	}

	cfg := buildConfig(f)

	var writer *proof.Writer
	if f.proofPath != "" {
		pf, err := os.Create(f.proofPath)
		if err != nil {
			return fmt.Errorf("could not open proof file: %w", err)
		}
		defer pf.Close()
		writer = proof.NewWriter(&textSink{w: pf})
		cfg.ProofSink = writer
	}

	ctx := sat.NewContext(cfg)

	if err := dimacs.Load(ctx, instanceFile, f.gzip); err != nil {
		return fmt.Errorf("could not parse instance: %w", err)
	}

	if f.metricsAddr != "" {
		stop := serveMetrics(ctx, f.metricsAddr)
		defer stop()
	}

	fmt.Printf("c atoms:      %d\n", ctx.NumAtoms())
	fmt.Printf("c constraints: %d\n", ctx.NumConstraints())

	start := time.Now()
	status := ctx.Solve()
	elapsed := time.Since(start)

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c conflicts:  %d (%.2f /sec)\n", ctx.Stats.TotalConflicts, float64(ctx.Stats.TotalConflicts)/elapsed.Seconds())
	fmt.Printf("c restarts:   %d\n", ctx.Stats.TotalRestarts)
	fmt.Printf("c status:     %s\n", status)

	if f.memProfile != "" {
		mf, err := os.Create(f.memProfile)
		if err != nil {
			return err
		}
		defer mf.Close()
		if err := pprof.WriteHeapProfile(mf); err != nil {
			return err
		}
	}

	// os.Exit skips deferred calls, so the CPU profile is flushed here.
	if f.cpuProfile != "" {
		pprof.StopCPUProfile()
	}

	switch status {
	case sat.Satisfiable:
		os.Exit(10)
	case sat.Unsatisfiable, sat.UnsatisfiableUnderAssumptions:
		os.Exit(20)
	default:
		os.Exit(0)
	}
	return nil
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the yass version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	}
}

func main() {
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	root := &cobra.Command{
		Use:   "yass",
		Short: "yass is a conflict-driven clause-learning SAT solver",
	}
	root.AddCommand(newSolveCommand())
	root.AddCommand(newVersionCommand())
	root.AddCommand(newProofCheckCommand())

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}
