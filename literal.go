// Package arjun computes a minimal independent support (projection set) of
// a CNF formula: given a formula F over variables V and a sampling set
// S ⊆ V, it returns I ⊆ S such that every satisfying assignment of F is
// determined, over S, by its restriction to I, while trying to keep |I|
// small. The result is meant for downstream model counters and uniform
// samplers, for which a smaller I gives an exponential speedup.
//
// The package name follows the CLI it backs (cmd/arjun), not the algorithm.
package arjun

import "github.com/knotspace/arjun-go/internal/satcore"

// VarId and Lit are re-exported from internal/satcore so callers outside
// this module never need to import the internal package directly; the
// independence-testing core and the solver it queries share one literal
// representation end to end.
type (
	VarId = satcore.VarId
	Lit   = satcore.Lit
)

// MkLit builds the literal for v with the given polarity.
func MkLit(v VarId, negated bool) Lit { return satcore.MkLit(v, negated) }
