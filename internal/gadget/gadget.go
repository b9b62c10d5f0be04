// Package gadget builds the indicator, selector, and disjunction gadgets:
// the SAT encoding that lets the round driver ask "can two models of F
// agree everywhere except at this candidate?" as an assumption-scoped
// query against a single solver instance.
package gadget

import "github.com/knotspace/arjun-go/internal/satcore"

// Builder attaches gadgets to a duplicated formula already loaded into a
// solver. It owns no solver state beyond the variables and clauses it
// creates; the solver itself is supplied by the caller and outlives the
// Builder.
type Builder struct {
	s *satcore.Solver
	n int // number of vars in the un-duplicated formula; v's primed copy is v+n

	indicator map[satcore.VarId]satcore.VarId // S-var -> d_v
	m         satcore.VarId
	haveM     bool

	groups map[satcore.VarId][]satcore.VarId // selector -> covered S-vars
}

// NewBuilder returns a Builder for a duplicated formula whose un-duplicated
// half has n variables.
func NewBuilder(s *satcore.Solver, n int) *Builder {
	return &Builder{
		s:         s,
		n:         n,
		indicator: make(map[satcore.VarId]satcore.VarId),
		groups:    make(map[satcore.VarId][]satcore.VarId),
	}
}

// Indicator returns d_v, the indicator for v ∈ S, creating it and its four
// defining clauses (d_v ⇔ v ≢ v') the first time v is requested.
func (b *Builder) Indicator(v satcore.VarId) satcore.VarId {
	if d, ok := b.indicator[v]; ok {
		return d
	}
	a := satcore.MkLit(v, false)
	ap := satcore.MkLit(v+satcore.VarId(b.n), false)
	d := b.s.NewVar()
	dl := satcore.MkLit(d, false)
	// d ⇔ (a XOR a'), Tseitin-encoded as four ternary clauses.
	b.s.AddClause(satcore.Clause{Lits: []satcore.Lit{a.Neg(), ap.Neg(), dl.Neg()}})
	b.s.AddClause(satcore.Clause{Lits: []satcore.Lit{a, ap, dl.Neg()}})
	b.s.AddClause(satcore.Clause{Lits: []satcore.Lit{a, ap.Neg(), dl}})
	b.s.AddClause(satcore.Clause{Lits: []satcore.Lit{a.Neg(), ap, dl}})
	b.indicator[v] = d
	return d
}

// BuildIndicators eagerly creates d_v for every v in vars.
func (b *Builder) BuildIndicators(vars []satcore.VarId) {
	for _, v := range vars {
		b.Indicator(v)
	}
}

// Disjunction creates the global M (once) and its clause
// (¬M ∨ d_v1 ∨ ... ∨ d_vk) over vars. Later calls are no-ops and return the
// existing M.
func (b *Builder) Disjunction(vars []satcore.VarId) satcore.VarId {
	if b.haveM {
		return b.m
	}
	m := b.s.NewVar()
	lits := make([]satcore.Lit, 0, len(vars)+1)
	lits = append(lits, satcore.MkLit(m, true))
	for _, v := range vars {
		lits = append(lits, satcore.MkLit(b.Indicator(v), false))
	}
	b.s.AddClause(satcore.Clause{Lits: lits})
	b.m = m
	b.haveM = true
	return m
}

// M returns the global disjunction variable. It panics if Disjunction has
// not been called yet.
func (b *Builder) M() satcore.VarId {
	if !b.haveM {
		panic("gadget: Disjunction has not been built yet")
	}
	return b.m
}

// Selector creates a fresh selector a_g for group, with clauses
// (¬a_g ∨ ¬d_v) for every v in group. A group is never reused; call this
// once per round per group.
func (b *Builder) Selector(group []satcore.VarId) satcore.VarId {
	a := b.s.NewVar()
	al := satcore.MkLit(a, false)
	for _, v := range group {
		d := b.Indicator(v)
		b.s.AddClause(satcore.Clause{Lits: []satcore.Lit{al.Neg(), satcore.MkLit(d, true)}})
	}
	b.groups[a] = append([]satcore.VarId(nil), group...)
	return a
}

// Group returns the S-variables a selector covers.
func (b *Builder) Group(a satcore.VarId) []satcore.VarId { return b.groups[a] }

// Pin retires a selector by learning the unit clause a_g (positive), so
// that no future assumption of ¬a_g can ever be satisfied again. It
// returns false if doing so makes the formula as a whole unsatisfiable,
// which would be an invariant violation (a selector is only ever pinned
// after it has been proven safe to equate).
func (b *Builder) Pin(a satcore.VarId) bool {
	return b.s.AddClause(satcore.Clause{Lits: []satcore.Lit{satcore.MkLit(a, false)}})
}
