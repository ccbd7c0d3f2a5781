package sat

import "github.com/rhartert/yagh"

// activityHeap is the decision heuristic's max-activity heap (spec §4.G,
// invariant 6). It is built on github.com/rhartert/yagh's IntMap, generalized
// to the deterministic Flt soft float (§4.A) instead of float64.
//
// yagh.IntMap pops the *minimum* key, breaking ties by the order in which
// elements were declared. Flt's packed representation is monotone in value
// but unsigned, so negation doesn't turn max-by-score into min-by-key the
// way it does for float64; instead scores are stored bitwise-complemented
// (^uint32(score)), which reverses the order exactly (larger score -> smaller
// complement) while keeping yagh's built-in tie-break on declaration order,
// which stands in for "rank-cell address" in invariant 6 since variables are
// created in a fixed, monotonically increasing order.
type activityHeap struct {
	order *yagh.IntMap[uint32]
	scores []Flt
}

func newActivityHeap() *activityHeap {
	return &activityHeap{order: yagh.New[uint32](0)}
}

func complementScore(f Flt) uint32 { return ^uint32(f) }

func (h *activityHeap) growBy(n int) {
	for i := 0; i < n; i++ {
		h.scores = append(h.scores, ZeroFlt())
	}
	h.order.GrowBy(n)
}

// insert pushes v onto the heap, used when a freshly created variable must
// be made available for selection.
func (h *activityHeap) insert(v Var) {
	h.order.Put(int(v), complementScore(h.scores[v]))
}

// reinsert pushes v back onto the heap after it is unassigned (spec §4.E
// "restores heap membership (push only if not on heap)").
func (h *activityHeap) reinsert(v Var) {
	if !h.order.Contains(int(v)) {
		h.order.Put(int(v), complementScore(h.scores[v]))
	}
}

func (h *activityHeap) contains(v Var) bool { return h.order.Contains(int(v)) }

// popMax removes and returns the variable with the highest activity score,
// breaking ties by declaration order.
func (h *activityHeap) popMax() (Var, bool) {
	el, ok := h.order.Pop()
	if !ok {
		return 0, false
	}
	return Var(el.Elem), true
}

func (h *activityHeap) scoreOf(v Var) Flt { return h.scores[v] }

// bump increases v's score by delta, re-heapifying if v is currently queued.
func (h *activityHeap) bump(v Var, delta Flt) {
	h.scores[v] = h.scores[v].Add(delta)
	if h.order.Contains(int(v)) {
		h.order.Put(int(v), complementScore(h.scores[v]))
	}
}

// rescale multiplies every score by factor, used when vinc overflows its
// ceiling (spec §4.G).
func (h *activityHeap) rescale(factor Flt) {
	for v := range h.scores {
		h.scores[v] = h.scores[v].Mul(factor)
		if h.order.Contains(v) {
			h.order.Put(v, complementScore(h.scores[v]))
		}
	}
}
