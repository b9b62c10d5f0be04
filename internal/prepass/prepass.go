// Package prepass applies the solver's in-processing facts to the
// frontier: variables the solver has pinned to a constant, or proven
// equivalent to another variable, can never distinguish two models of
// F ⊕ F' and are dropped from Unknown without spending a query on them.
package prepass

import (
	"github.com/knotspace/arjun-go/internal/frontier"
	"github.com/knotspace/arjun-go/internal/satcore"
)

// Run drives one pass of the solver's permanent unit-propagation fixpoint
// and prunes Unknown with whatever it proves. It never moves a variable to
// Indep, and it never grows Unknown; both derivations are either "this
// variable is fixed" or "this variable agrees with another", so neither can
// possibly still be a witness of independence.
func Run(s *satcore.Solver, f *frontier.State) {
	s.Simplify()
	for _, lit := range s.ZeroAssignedLits() {
		v := lit.Var()
		if f.IsUnknown(v) {
			f.Drop(v)
		}
	}
	for _, pair := range s.BinaryEquivalences() {
		a, b := pair[0].Var(), pair[1].Var()
		if f.IsUnknown(a) && f.IsUnknown(b) {
			// Keep a, drop b: either could stand in for the pair, but
			// dropping the higher-numbered one keeps the surviving
			// representative deterministic across runs.
			if a > b {
				a, b = b, a
			}
			f.Drop(b)
		}
	}
}
