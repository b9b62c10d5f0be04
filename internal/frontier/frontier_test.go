package frontier

import (
	"testing"

	"github.com/knotspace/arjun-go/internal/satcore"
)

func vars(ids ...int) []satcore.VarId {
	out := make([]satcore.VarId, len(ids))
	for i, id := range ids {
		out[i] = satcore.VarId(id)
	}
	return out
}

func TestNewPartitionsEverythingAsUnknown(t *testing.T) {
	s := New(vars(0, 1, 2))
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
	if len(s.Unknown()) != 3 || len(s.Indep()) != 0 || len(s.NotIndep()) != 0 {
		t.Fatalf("expected all 3 vars in Unknown, got unknown=%v indep=%v notIndep=%v",
			s.Unknown(), s.Indep(), s.NotIndep())
	}
}

func TestMoveIsExclusive(t *testing.T) {
	s := New(vars(0, 1))
	s.MoveToIndep(0)
	if s.IsUnknown(0) {
		t.Fatal("0 should no longer be Unknown after MoveToIndep")
	}
	if len(s.Indep()) != 1 || s.Indep()[0] != 0 {
		t.Fatalf("Indep() = %v, want [0]", s.Indep())
	}

	s.MoveToNotIndep(0)
	if len(s.Indep()) != 0 {
		t.Fatalf("Indep() = %v, want empty after MoveToNotIndep", s.Indep())
	}
	if len(s.NotIndep()) != 1 || s.NotIndep()[0] != 0 {
		t.Fatalf("NotIndep() = %v, want [0]", s.NotIndep())
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2 (no variable should be lost)", s.Len())
	}
}

func TestTriedResetsPerRound(t *testing.T) {
	s := New(vars(0, 1))
	s.MarkTried(0)
	if !s.Tried(0) {
		t.Fatal("expected 0 to be tried")
	}
	if s.Tried(1) {
		t.Fatal("1 was never marked tried")
	}
	s.ResetTried()
	if s.Tried(0) {
		t.Fatal("ResetTried should clear all tried marks")
	}
}

func TestSnapshotReflectsIndepAndUnknownOnly(t *testing.T) {
	s := New(vars(0, 1, 2))
	s.MoveToNotIndep(1)
	s.MoveToIndep(2)
	s.Publish()

	snap := s.Snapshot()
	want := map[satcore.VarId]bool{0: true, 2: true}
	if len(snap) != len(want) {
		t.Fatalf("Snapshot() = %v, want variables %v", snap, want)
	}
	for _, v := range snap {
		if !want[v] {
			t.Fatalf("Snapshot() contained unexpected var %v", v)
		}
	}
}

func TestDropBehavesLikeNotIndep(t *testing.T) {
	s := New(vars(0))
	s.Drop(0)
	if s.IsUnknown(0) {
		t.Fatal("Drop should remove the variable from Unknown")
	}
	if len(s.NotIndep()) != 1 {
		t.Fatalf("NotIndep() = %v, want [0] after Drop", s.NotIndep())
	}
}
