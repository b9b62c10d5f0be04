// Package round drives the outer independence-testing loop: it partitions
// the current Unknown set into groups, queries the solver about them in
// One, Many, or Inverse mode, and updates the frontier until Unknown is
// exhausted or the group size has decayed to one.
package round

import (
	"sort"

	"github.com/hashicorp/go-hclog"

	"github.com/knotspace/arjun-go/internal/frontier"
	"github.com/knotspace/arjun-go/internal/gadget"
	"github.com/knotspace/arjun-go/internal/satcore"
)

// Options configures the driver's schedule.
type Options struct {
	OneByOne bool // force Mode One forever; disables the periodic Many pass
	Guess    bool // run the Inverse guess round before the main loop

	// PreRound, if set, runs before every round (e.g. to re-invoke the
	// pre-pass simplifier per round instead of only at startup).
	PreRound func()
}

// group is a set of S-variables sharing one selector for the duration of a
// single round.
type group struct {
	selector satcore.VarId
	members  []satcore.VarId
}

// Driver owns the solver, gadget builder, and frontier for one independence
// run and implements the round schedule over them.
type Driver struct {
	solver  *satcore.Solver
	gadgets *gadget.Builder
	front   *frontier.State
	n       int // number of variables in the un-duplicated formula
	cfg     Options
	log     hclog.Logger

	iteration int64
}

// NewDriver returns a Driver. n is Formula.NumVars (the un-duplicated
// variable count); the gadget builder and solver must already have the
// duplicated formula loaded and M built over the full sampling set.
func NewDriver(s *satcore.Solver, g *gadget.Builder, f *frontier.State, n int, cfg Options, logger hclog.Logger) *Driver {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Driver{solver: s, gadgets: g, front: f, n: n, cfg: cfg, log: logger}
}

func (d *Driver) primeOf(v satcore.VarId) satcore.VarId { return v + satcore.VarId(d.n) }

// indepAssumptions forces every already-confirmed independent variable equal
// across the two copies: a fresh candidate is checked against the confirmed
// support, not against peers still awaiting their own verdict. Unknown
// group-mates that haven't been tested yet in this round are
// deliberately left unconstrained: holding them equal too would make every
// member of a correlated group look redundant at once, collapsing an entire
// equivalence class to nothing instead of the one representative it needs.
func (d *Driver) indepAssumptions() []satcore.Lit {
	indep := d.front.Indep()
	out := make([]satcore.Lit, len(indep))
	for i, v := range indep {
		out[i] = satcore.MkLit(d.gadgets.Indicator(v), true)
	}
	return out
}

// conflictBudget is the fixed per-query budget for a round's group size:
// small groups get a small budget since a query is expected to
// resolve quickly; larger groups, which cost more per resolution, get more
// runway before giving up as Unknown.
func conflictBudget(by int) int {
	if by <= 100 {
		return 200
	}
	return 800
}

// Run executes the full outer loop starting from whatever Unknown
// the frontier currently holds, and leaves Indep ∪ Unknown as the result
// when it returns.
func (d *Driver) Run() {
	unk := d.front.Unknown()
	if len(unk) == 0 {
		return
	}
	if d.cfg.Guess {
		d.runGuess()
	}

	by := maxInt(len(d.front.Unknown())/10, 1)
	for {
		priorLen := len(d.front.Unknown())
		if priorLen == 0 {
			return
		}
		if d.cfg.PreRound != nil {
			d.cfg.PreRound()
		}
		mode := d.scheduleMode()
		d.front.ResetTried()
		d.runRound(by, mode)
		d.iteration++
		d.front.Publish()

		newLen := len(d.front.Unknown())
		finishedAtOne := by == 1
		if newLen == 0 || finishedAtOne {
			return
		}
		if newLen < priorLen/5 {
			by = maxInt(newLen/10, 1)
		} else {
			by = by / 20
			if by < 1 {
				by = 1
			}
		}
		if newLen < 30 {
			by = 1
		}
	}
}

// scheduleMode is the default schedule: Many runs periodically
// to batch-eliminate groups via a shared unsat core; One runs otherwise and
// is the only mode when one-by-one testing is forced.
func (d *Driver) scheduleMode() Mode {
	if d.cfg.OneByOne {
		return ModeOne
	}
	if d.iteration != 0 && d.iteration%500 == 0 {
		return ModeMany
	}
	return ModeOne
}

func (d *Driver) runRound(by int, mode Mode) {
	unk := d.front.Unknown()
	if len(unk) == 0 {
		return
	}
	groups := d.buildGroups(unk, by)
	budget := conflictBudget(by)
	switch mode {
	case ModeMany:
		d.runMany(groups, budget)
	default:
		d.runOne(groups, budget)
	}
}

// buildGroups partitions vars into chunks of at most `by`, ordered by
// ascending incidence (low-incidence variables tend to resolve fastest, so
// they're tried first), and mints one fresh selector per chunk.
func (d *Driver) buildGroups(vars []satcore.VarId, by int) []group {
	incidence := d.solver.VarIncidence()
	sorted := append([]satcore.VarId(nil), vars...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return incidence[sorted[i]] < incidence[sorted[j]]
	})
	var groups []group
	for i := 0; i < len(sorted); i += by {
		end := i + by
		if end > len(sorted) {
			end = len(sorted)
		}
		chunk := append([]satcore.VarId(nil), sorted[i:end]...)
		groups = append(groups, group{selector: d.gadgets.Selector(chunk), members: chunk})
	}
	return groups
}

// runMany tests every live group's selector in one assumption set and
// retires, via the unsat core, any group whose selector the core omits;
// repeats against the shrunken set until a query returns Sat/Unknown or the
// core names every remaining group (a fixpoint).
func (d *Driver) runMany(groups []group, budget int) {
	active := groups
	for len(active) > 0 {
		assumptions := append([]satcore.Lit(nil), d.indepAssumptions()...)
		for _, g := range active {
			assumptions = append(assumptions, satcore.MkLit(g.selector, false))
		}
		assumptions = append(assumptions, satcore.MkLit(d.gadgets.M(), false))
		status := d.solver.Solve(assumptions, budget)
		if status != satcore.StatusUnsat {
			return
		}
		core := litSet(d.solver.ConflictCore())
		var remaining []group
		retiredAny := false
		for _, g := range active {
			if core[satcore.MkLit(g.selector, false)] {
				remaining = append(remaining, g)
				continue
			}
			d.gadgets.Pin(g.selector)
			for _, v := range g.members {
				d.front.MoveToNotIndep(v)
			}
			retiredAny = true
		}
		active = remaining
		if !retiredAny {
			return
		}
	}
}

// runOne probes each group's members one at a time: force the confirmed
// independent set equal (see indepAssumptions), leave the candidate's
// untested group-mates unconstrained, and force the candidate itself to
// differ across the two copies.
func (d *Driver) runOne(groups []group, budget int) {
	for _, g := range groups {
		for _, v := range g.members {
			if d.front.Tried(v) {
				continue
			}
			d.testOne(v, g, budget)
			d.front.MarkTried(v)
		}
	}
}

func (d *Driver) testOne(v satcore.VarId, own group, budget int) {
	assumptions := append([]satcore.Lit(nil), d.indepAssumptions()...)
	assumptions = append(assumptions, satcore.MkLit(d.gadgets.M(), false))
	assumptions = append(assumptions, satcore.MkLit(v, false))
	assumptions = append(assumptions, satcore.MkLit(d.primeOf(v), true))

	switch d.solver.Solve(assumptions, budget) {
	case satcore.StatusSat:
		d.front.MoveToIndep(v)
	case satcore.StatusUnsat:
		sel := d.gadgets.Selector([]satcore.VarId{v})
		d.gadgets.Pin(sel)
		d.front.MoveToNotIndep(v)
	case satcore.StatusUnknown:
		// Conflict budget exhausted; stays Unknown and is retried once the
		// tried bitset resets for the next round.
	}
}

// runGuess is the optional Inverse startup round: it tries, in
// ascending-incidence order, each of a small number of coarse groups as the
// only group held equal (together with the confirmed independent set) while
// the two copies must still differ somewhere in S. The first one that
// proves unsatisfiable determines every other sampling variable on its own,
// so every other group is redundant and gets retired in a single stroke,
// collapsing Unknown down to that one group's members before the main loop
// even starts.
func (d *Driver) runGuess() {
	unk := d.front.Unknown()
	by := maxInt(len(unk)/30, 50)
	groups := d.buildGroups(unk, by)
	if len(groups) < 2 {
		return
	}
	budget := conflictBudget(by)
	base := d.indepAssumptions()
	for _, g := range groups {
		assumptions := append([]satcore.Lit(nil), base...)
		assumptions = append(assumptions, satcore.MkLit(g.selector, false))
		assumptions = append(assumptions, satcore.MkLit(d.gadgets.M(), false))
		if d.solver.Solve(assumptions, budget) != satcore.StatusUnsat {
			continue
		}
		for _, other := range groups {
			if other.selector == g.selector {
				continue
			}
			d.gadgets.Pin(other.selector)
			for _, v := range other.members {
				d.front.MoveToNotIndep(v)
			}
		}
		d.front.Publish()
		return
	}
}

func litSet(lits []satcore.Lit) map[satcore.Lit]bool {
	m := make(map[satcore.Lit]bool, len(lits))
	for _, l := range lits {
		m[l] = true
	}
	return m
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
