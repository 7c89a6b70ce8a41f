// Command vwpassat reads a DIMACS CNF instance and reports SATISFIABLE or
// UNSATISFIABLE, optionally emitting a DRAT proof or racing the instance
// across a cube-and-conquer worker pool.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/jjanku/vw-passat/internal/cube"
	"github.com/jjanku/vw-passat/internal/drat"
	"github.com/jjanku/vw-passat/internal/sat"
	"github.com/jjanku/vw-passat/internal/solution"
	"github.com/jjanku/vw-passat/parsers"
)

// proofFormatFlag is a pflag.Value so --pformat is validated at parse time
// instead of being checked after the fact.
type proofFormatFlag struct {
	format drat.Format
}

func (f *proofFormatFlag) String() string {
	if f.format == drat.Binary {
		return "binary"
	}
	return "plain"
}

func (f *proofFormatFlag) Set(s string) error {
	format, err := drat.ParseFormat(s)
	if err != nil {
		return err
	}
	f.format = format
	return nil
}

func (f *proofFormatFlag) Type() string { return "string" }

var _ pflag.Value = (*proofFormatFlag)(nil)

type options struct {
	jobs        int
	proofPath   string
	proofFormat proofFormatFlag
	gzipped     bool
	debug       bool
}

func newRootCmd() *cobra.Command {
	o := options{}

	cmd := &cobra.Command{
		Use:          "vwpassat INPUT",
		Short:        "Solved by VW Passat: a CDCL SAT solver",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := logrus.New()
			if o.debug {
				logger.SetLevel(logrus.DebugLevel)
			}
			return o.run(args[0], logger)
		},
	}

	cmd.Flags().IntVarP(&o.jobs, "jobs", "j", runtime.NumCPU(), "number of parallel cube-and-conquer workers")
	cmd.Flags().StringVarP(&o.proofPath, "proof", "p", "", "write a DRAT proof to this path")
	cmd.Flags().Var(&o.proofFormat, "pformat", "DRAT proof format: plain or binary")
	cmd.Flags().BoolVar(&o.gzipped, "gzip", false, "treat INPUT as gzip-compressed")
	cmd.Flags().BoolVar(&o.debug, "debug", false, "use debug log level")

	return cmd
}

func (o *options) run(input string, logger *logrus.Logger) error {
	if o.proofPath != "" && o.jobs > 1 {
		return fmt.Errorf("vwpassat: -p/--proof is mutually exclusive with -j/--jobs > 1")
	}

	logger.WithFields(logrus.Fields{
		"input": input,
		"jobs":  o.jobs,
	}).Info("loading instance")

	start := time.Now()
	var result sat.Result
	var err error
	if o.jobs > 1 {
		result, err = o.runParallel(input, logger)
	} else {
		result, err = o.runSequential(input, o.proofFormat.format, logger)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	logger.WithFields(logrus.Fields{
		"outcome": result.Outcome.String(),
		"elapsed": elapsed,
	}).Info("solve finished")

	return solution.Write(os.Stdout, result)
}

func (o *options) runSequential(input string, format drat.Format, logger *logrus.Logger) (sat.Result, error) {
	var proof *drat.Writer
	if o.proofPath != "" {
		f, err := os.Create(o.proofPath)
		if err != nil {
			return sat.Result{}, fmt.Errorf("could not create proof file: %w", err)
		}
		defer f.Close()
		proof = drat.NewWriter(f, format)
	}

	s := sat.NewSolver(sat.Options{Proof: proofLogger(proof)})
	if err := parsers.LoadDIMACS(input, o.gzipped, s); err != nil {
		return sat.Result{}, fmt.Errorf("could not load instance: %w", err)
	}

	logger.WithField("variables", s.NumVariables()).Debug("instance loaded")

	result := s.Solve()

	if proof != nil {
		if err := proof.Flush(); err != nil {
			return sat.Result{}, fmt.Errorf("could not flush proof file: %w", err)
		}
	}

	logger.WithFields(logrus.Fields{
		"decisions": s.Stats.Decisions,
		"conflicts": s.Stats.Conflicts,
		"restarts":  s.Stats.Restarts,
	}).Debug("solver stats")

	return result, nil
}

func (o *options) runParallel(input string, logger *logrus.Logger) (sat.Result, error) {
	problem, err := parsers.LoadProblem(input, o.gzipped)
	if err != nil {
		return sat.Result{}, fmt.Errorf("could not load instance: %w", err)
	}

	logger.WithField("variables", problem.NVars).Debug("instance loaded")

	return cube.Solve(problem, o.jobs)
}

// proofLogger adapts a possibly-nil *drat.Writer to a possibly-nil
// sat.ProofLogger, since a typed nil pointer stored in an interface is not
// itself nil.
func proofLogger(w *drat.Writer) sat.ProofLogger {
	if w == nil {
		return nil
	}
	return w
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
