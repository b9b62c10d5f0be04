// Command arjun computes a minimal independent support of a CNF formula.
package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/errors"
	flag "github.com/spf13/pflag"

	arjun "github.com/knotspace/arjun-go"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		verbosity  = flag.IntP("verb", "v", 1, "verbosity level (0 quiet, higher = more logging)")
		oneByOne   = flag.Bool("one-by-one", false, "force one-variable-at-a-time testing; disables the periodic batch pass")
		guess      = flag.Bool("guess", false, "run the inverse startup guess before the main loop")
		simpStart  = flag.Bool("simp-at-start", true, "run the pre-pass simplifier once before the first round")
		simpEvery  = flag.Bool("simp-every-round", false, "re-run the pre-pass simplifier before every round")
		recomputeS = flag.Bool("recompute-sampling-set", false, "ignore any declared sampling set and use every formula variable")
		seed       = flag.Int64("seed", 0, "accepted but has no effect; grouping ties break by variable number")
	)
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `arjun: compute a minimal independent support of a CNF formula.

Usage:

  arjun [flags] [input.cnf]

arjun reads a single CNF problem in the DIMACS format, optionally with a
"c ind v1 v2 ... 0" header declaring a sampling set, and writes the computed
support as a "c ind ...0" line on stdout.

If no input file is given, arjun reads from standard input.

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "arjun",
		Level:  hclog.Level(4 - *verbosity),
		Output: os.Stderr,
	})

	var r io.Reader = os.Stdin
	if flag.NArg() >= 1 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			logger.Error("opening input file", "error", err)
			return -1
		}
		defer f.Close()
		r = f
	}

	cnf, err := arjun.ParseDIMACS(r)
	if err != nil {
		logger.Error("parsing DIMACS input", "error", errors.Cause(err))
		return -1
	}

	cfg := arjun.Config{
		Seed:                 *seed,
		Verbosity:            *verbosity,
		OneByOne:             *oneByOne,
		Guess:                *guess,
		SimplifyAtStart:      *simpStart,
		SimplifyEveryRound:   *simpEvery,
		RecomputeSamplingSet: *recomputeS,
	}

	start := time.Now()
	proj := arjun.NewRun(cnf, cnf.Sampling, cfg, logger)

	resultCh := make(chan *arjun.Result, 1)
	go func() { resultCh <- proj.Execute() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case result := <-resultCh:
		if err := arjun.WriteSamplingSet(os.Stdout, result.Indep); err != nil {
			logger.Error("writing result", "error", err)
			return 1
		}
		logger.Info("done",
			"support_size", len(result.Indep),
			"original_size", len(cnf.Sampling),
			"elapsed", time.Since(start))
		return 0
	case sig := <-sigCh:
		logger.Warn("interrupted; reporting best-known support so far", "signal", sig)
		indep := toInts(proj.Frontier().Snapshot())
		if err := arjun.WriteSamplingSet(os.Stdout, indep); err != nil {
			logger.Error("writing result", "error", err)
			return 1
		}
		logger.Info("interrupted",
			"support_size", len(indep),
			"original_size", len(cnf.Sampling),
			"elapsed", time.Since(start))
		return 1
	}
}

func toInts(vars []arjun.VarId) []int {
	out := make([]int, len(vars))
	for i, v := range vars {
		out[i] = int(v) + 1
	}
	return out
}
