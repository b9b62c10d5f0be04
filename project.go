package arjun

import (
	"github.com/hashicorp/go-hclog"

	"github.com/knotspace/arjun-go/internal/frontier"
	"github.com/knotspace/arjun-go/internal/gadget"
	"github.com/knotspace/arjun-go/internal/prepass"
	"github.com/knotspace/arjun-go/internal/round"
	"github.com/knotspace/arjun-go/internal/satcore"
)

// Result is the outcome of a completed run: the computed support and the
// variables proven redundant along the way.
type Result struct {
	Indep    []int // 1-based, ascending
	NotIndep []int // 1-based, ascending
}

// Run holds the solver state for one independence computation. NewRun does
// all the setup on an already parsed CNF (duplication, solver loading,
// frontier and gadget construction); Execute then drives the round loop to
// completion. Splitting the two lets a caller grab Frontier() before
// launching Execute() in a goroutine, so a concurrent signal handler always
// has something to read.
type Run struct {
	driver    *round.Driver
	front     *frontier.State
	unsatBase bool
}

// NewRun builds the doubled formula, loads it into a solver, and wires the
// gadgets and frontier for sampling (setup only, before the main loop
// starts). sampling is 1-based; when empty, or when cfg
// asks for it, every formula variable is used as the initial sampling set.
func NewRun(cnf ParsedCNF, sampling []int, cfg Config, logger hclog.Logger) *Run {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	if len(sampling) == 0 || cfg.RecomputeSamplingSet {
		sampling = make([]int, cnf.NumVars)
		for i := range sampling {
			sampling[i] = i + 1
		}
	}

	f := Formula{NumVars: cnf.NumVars, Clauses: cnf.Clauses}
	dup := f.Duplicate()

	sVars := make([]satcore.VarId, len(sampling))
	for i, v := range sampling {
		sVars[i] = satcore.VarId(v - 1)
	}
	front := frontier.New(sVars)

	s := satcore.New()
	if !LoadInto(s, dup) {
		// F itself has no models, so the independent support is defined as
		// empty: there's no satisfying assignment for any variable to
		// determine in the first place, and running the query engine
		// against an already self-contradictory permanent clause base
		// isn't meaningful.
		logger.Warn("formula is unsatisfiable; independent support is empty")
		for _, v := range sVars {
			front.MoveToNotIndep(v)
		}
		return &Run{front: front, unsatBase: true}
	}

	if cfg.SimplifyAtStart {
		prepass.Run(s, front)
	}

	g := gadget.NewBuilder(s, f.NumVars)
	g.BuildIndicators(sVars)
	g.Disjunction(sVars)

	opts := round.Options{OneByOne: cfg.OneByOne, Guess: cfg.Guess}
	if cfg.SimplifyEveryRound {
		opts.PreRound = func() { prepass.Run(s, front) }
	}

	logger.Debug("starting round driver", "sampling_set_size", len(sVars), "formula_vars", f.NumVars)
	return &Run{
		driver: round.NewDriver(s, g, front, f.NumVars, opts, logger),
		front:  front,
	}
}

// Frontier returns the live frontier. Frontier.Snapshot is safe to call
// from any goroutine at any time, including before Execute is called or
// while it is still running.
func (r *Run) Frontier() *frontier.State { return r.front }

// Execute runs the round loop to completion and returns the final result.
// It blocks until the computation terminates; run it in its own goroutine
// if the caller needs to watch Frontier() concurrently.
func (r *Run) Execute() *Result {
	if !r.unsatBase {
		r.driver.Run()
	}
	r.front.Publish()
	return &Result{
		Indep:    toOneBased(r.front.Indep()),
		NotIndep: toOneBased(r.front.NotIndep()),
	}
}

// Project is the one-shot convenience form of NewRun+Execute for callers
// that don't need to observe progress concurrently.
func Project(cnf ParsedCNF, sampling []int, cfg Config, logger hclog.Logger) *Result {
	return NewRun(cnf, sampling, cfg, logger).Execute()
}

func toOneBased(vars []satcore.VarId) []int {
	out := make([]int, len(vars))
	for i, v := range vars {
		out[i] = int(v) + 1
	}
	return out
}
