package satcore

// Simplify runs the solver's own in-processing pass: variable elimination
// and blocked-clause addition stay external to this engine (a separate
// post-processing step, not part of independence testing), so Simplify
// here is limited to driving the permanent unit-propagation fixpoint to
// completion. hintPasses names solver-internal passes (e.g. "bve", "bva")
// for API compatibility with callers that expect them; this engine doesn't
// implement them and ignores the names.
func (s *Solver) Simplify(hintPasses ...string) {
	s.undoSearch()
	// Re-propagate the whole permanent trail: a clause added after a unit
	// was never visited by that unit's own propagation.
	s.propIndex = 0
	s.bcp()
	s.propIndex = len(s.trail)
	// Everything now on the trail holds independent of any assumption.
	for _, lit := range s.trail {
		s.reason[lit.Var()] = -2
	}
}

// ZeroAssignedLits returns every literal the solver has fixed to a
// constant at the permanent level (i.e. independent of any assumption).
func (s *Solver) ZeroAssignedLits() []Lit {
	out := make([]Lit, 0, len(s.trail))
	for _, lit := range s.trail {
		if s.reason[lit.Var()] == -2 {
			out = append(out, lit)
		}
	}
	return out
}

// BinaryEquivalences returns literal pairs (p, q) such that the permanent
// clause set contains both binary clauses needed to prove p ↔ q: (p ∨ ¬q)
// and (¬p ∨ q).
func (s *Solver) BinaryEquivalences() [][2]Lit {
	present := make(map[[2]Lit]bool)
	for _, c := range s.clauses {
		if len(c.Lits) == 2 {
			present[normPair(c.Lits[0], c.Lits[1])] = true
		}
	}
	seen := make(map[[2]Lit]bool)
	var out [][2]Lit
	for pair := range present {
		l1, l2 := pair[0], pair[1]
		// (l1 ∨ l2) ∧ (¬l1 ∨ ¬l2) forces l1 and l2 to always differ, i.e.
		// l1 ↔ ¬l2.
		if !present[normPair(l1.Neg(), l2.Neg())] {
			continue
		}
		eq := normPair(l1, l2.Neg())
		// p ↔ q and ¬p ↔ ¬q are the same equivalence; keep the form whose
		// first literal is positive so it is reported once.
		if eq[0].Negated() {
			eq = normPair(eq[0].Neg(), eq[1].Neg())
		}
		if seen[eq] {
			continue
		}
		seen[eq] = true
		out = append(out, eq)
	}
	return out
}

func normPair(a, b Lit) [2]Lit {
	if a > b {
		return [2]Lit{b, a}
	}
	return [2]Lit{a, b}
}

// VarIncidence returns, for each variable, the number of clauses currently
// watching one of its literals. This is a heuristic ordering signal only
// and must never be treated as a correctness source.
func (s *Solver) VarIncidence() []uint32 {
	out := make([]uint32, s.numVars)
	for v := 0; v < s.numVars; v++ {
		pos := MkLit(VarId(v), false)
		neg := MkLit(VarId(v), true)
		out[v] = uint32(len(s.watches[pos]) + len(s.watches[neg]))
	}
	return out
}
