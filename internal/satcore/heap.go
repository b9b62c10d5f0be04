package satcore

import "container/heap"

// litHeap orders unassigned literals as a max-heap keyed by current watch-
// list length: the literal that currently has the most watchers is the
// most "active" one to branch on next. It reads s.watches live (through
// the back-pointer) rather than caching a slice, since watch lists grow as
// clauses are added and the backing array can be reallocated underneath
// any cached reference.
type litHeap struct {
	s    *Solver
	lits []litHeapItem
	pos  map[Lit]int
}

type litHeapItem struct {
	lit Lit
}

func newLitHeap(s *Solver) *litHeap {
	return &litHeap{s: s, pos: make(map[Lit]int)}
}

func (h *litHeap) Len() int { return len(h.lits) }

func (h *litHeap) Less(i, j int) bool {
	l0, l1 := h.lits[i].lit, h.lits[j].lit
	return len(h.s.watches[l0]) > len(h.s.watches[l1])
}

func (h *litHeap) Swap(i, j int) {
	h.lits[i], h.lits[j] = h.lits[j], h.lits[i]
	h.pos[h.lits[i].lit] = i
	h.pos[h.lits[j].lit] = j
}

func (h *litHeap) Push(x interface{}) {
	item := x.(litHeapItem)
	h.pos[item.lit] = len(h.lits)
	h.lits = append(h.lits, item)
}

func (h *litHeap) Pop() interface{} {
	item := h.lits[len(h.lits)-1]
	h.lits = h.lits[:len(h.lits)-1]
	delete(h.pos, item.lit)
	return item
}

func (h *litHeap) push(l Lit) {
	if _, ok := h.pos[l]; ok {
		return
	}
	heap.Push(h, litHeapItem{lit: l})
}

func (h *litHeap) remove(l Lit) {
	i, ok := h.pos[l]
	if !ok {
		return
	}
	heap.Remove(h, i)
}

func (h *litHeap) fixOrPush(l Lit) {
	if i, ok := h.pos[l]; ok {
		heap.Fix(h, i)
	} else {
		h.push(l)
	}
}

func (h *litHeap) pop() (Lit, bool) {
	if len(h.lits) == 0 {
		return 0, false
	}
	item := heap.Pop(h).(litHeapItem)
	return item.lit, true
}
