// Package frontier tracks the three-way partition of the sampling set S
// into Indep, NotIndep, and Unknown as the round driver narrows it down,
// plus the per-round tried bitset and the published snapshot a signal
// handler can read concurrently.
package frontier

import (
	"sort"
	"sync/atomic"

	"github.com/knotspace/arjun-go/internal/satcore"
)

// State holds the current partition of S. Every variable originally in S
// is, at all times, in exactly one of indep, notIndep, or unknown.
type State struct {
	indep    map[satcore.VarId]bool
	notIndep map[satcore.VarId]bool
	unknown  map[satcore.VarId]bool
	tried    map[satcore.VarId]bool

	snapshot atomic.Pointer[[]satcore.VarId]
}

// New creates a State with every variable of sampling in Unknown.
func New(sampling []satcore.VarId) *State {
	st := &State{
		indep:    make(map[satcore.VarId]bool),
		notIndep: make(map[satcore.VarId]bool),
		unknown:  make(map[satcore.VarId]bool, len(sampling)),
		tried:    make(map[satcore.VarId]bool),
	}
	for _, v := range sampling {
		st.unknown[v] = true
	}
	st.Publish()
	return st
}

// MoveToIndep records v as proven independent: some pair of models of F ⊕ F'
// differs at v while agreeing on every variable the query held equal.
func (s *State) MoveToIndep(v satcore.VarId) {
	delete(s.unknown, v)
	delete(s.notIndep, v)
	s.indep[v] = true
}

// MoveToNotIndep records v as proven redundant: no such pair of models
// exists, witnessed by an unsat core, or v has been pinned equal by the
// gadget builder directly.
func (s *State) MoveToNotIndep(v satcore.VarId) {
	delete(s.unknown, v)
	delete(s.indep, v)
	s.notIndep[v] = true
}

// Drop removes v from Unknown without a proof of redundancy, for variables
// the pre-pass simplifier showed to be fixed or equivalent to another
// variable. The effect on the final I = Indep ∪ Unknown is the same
// as NotIndep; the method exists to keep the two justifications distinct
// at call sites.
func (s *State) Drop(v satcore.VarId) { s.MoveToNotIndep(v) }

// ResetTried clears the tried bitset; call this at the start of each round
// so a variable whose query returned Unknown is retried in a later round
// rather than forever skipped.
func (s *State) ResetTried() { s.tried = make(map[satcore.VarId]bool) }

// MarkTried records that v has been queried once during the current round,
// regardless of the query's outcome.
func (s *State) MarkTried(v satcore.VarId) { s.tried[v] = true }

// Tried reports whether v has already been queried this round.
func (s *State) Tried(v satcore.VarId) bool { return s.tried[v] }

// IsUnknown reports whether v is currently in Unknown.
func (s *State) IsUnknown(v satcore.VarId) bool { return s.unknown[v] }

// Unknown returns the current Unknown set, sorted ascending for
// deterministic iteration order.
func (s *State) Unknown() []satcore.VarId { return sortedKeys(s.unknown) }

// Indep returns the current Indep set, sorted ascending.
func (s *State) Indep() []satcore.VarId { return sortedKeys(s.indep) }

// NotIndep returns the current NotIndep set, sorted ascending.
func (s *State) NotIndep() []satcore.VarId { return sortedKeys(s.notIndep) }

// Len returns |S|, the total number of tracked variables across all three
// buckets.
func (s *State) Len() int { return len(s.indep) + len(s.notIndep) + len(s.unknown) }

// Publish atomically swaps in a fresh snapshot of Indep ∪ Unknown, the
// best-known superset of the minimal support at this point in the run.
// Call it at each round boundary.
func (s *State) Publish() {
	snap := make([]satcore.VarId, 0, len(s.indep)+len(s.unknown))
	for v := range s.indep {
		snap = append(snap, v)
	}
	for v := range s.unknown {
		snap = append(snap, v)
	}
	sort.Slice(snap, func(i, j int) bool { return snap[i] < snap[j] })
	s.snapshot.Store(&snap)
}

// Snapshot returns the most recently published Indep ∪ Unknown. It is safe
// to call concurrently with any other State method, including from a
// goroutine woken by signal.Notify, since it only ever loads the pointer
// last stored by Publish.
func (s *State) Snapshot() []satcore.VarId {
	p := s.snapshot.Load()
	if p == nil {
		return nil
	}
	return *p
}

func sortedKeys(m map[satcore.VarId]bool) []satcore.VarId {
	out := make([]satcore.VarId, 0, len(m))
	for v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
