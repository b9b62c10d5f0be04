package arjun

import "github.com/knotspace/arjun-go/internal/satcore"

// Formula is the original clause set F over variables 1..NumVars, in the
// signed-integer convention ParseDIMACS produces (1-based, negative for
// negation).
type Formula struct {
	NumVars int
	Clauses [][]int
}

// Duplicated is the doubled formula F ⊕ F': two disjoint copies of F, the
// original on variables 1..n and the primed copy on n+1..2n. A clause C
// of F appears twice: once unchanged, once with every variable v remapped
// to v+n. Comparing two candidate models of F requires exactly this one
// SAT instance.
type Duplicated struct {
	NumVars int // 2 * Formula.NumVars
	N       int // Formula.NumVars, the offset of the primed copy
	Clauses [][]int
}

// Duplicate builds F ⊕ F'.
func (f Formula) Duplicate() Duplicated {
	n := f.NumVars
	clauses := make([][]int, 0, 2*len(f.Clauses))
	clauses = append(clauses, f.Clauses...)
	for _, cls := range f.Clauses {
		primed := make([]int, len(cls))
		for i, v := range cls {
			if v < 0 {
				primed[i] = v - n
			} else {
				primed[i] = v + n
			}
		}
		clauses = append(clauses, primed)
	}
	return Duplicated{NumVars: 2 * n, N: n, Clauses: clauses}
}

// Prime maps a 1-based variable v in F to its primed copy in F ⊕ F'.
func (d Duplicated) Prime(v int) int { return v + d.N }

// LoadInto adds every clause of d to s, allocating exactly d.NumVars fresh
// solver variables first (1-based v maps to solver variable VarId(v-1)).
// It returns false if the clause set is trivially unsatisfiable.
func LoadInto(s *satcore.Solver, d Duplicated) bool {
	for i := 0; i < d.NumVars; i++ {
		s.NewVar()
	}
	ok := true
	for _, cls := range d.Clauses {
		lits := make([]satcore.Lit, len(cls))
		for i, v := range cls {
			neg := v < 0
			if neg {
				v = -v
			}
			lits[i] = satcore.MkLit(satcore.VarId(v-1), neg)
		}
		if !s.AddClause(satcore.Clause{Lits: lits}) {
			ok = false
		}
	}
	return ok
}
