package sat

import "github.com/rhartert/yagh"

// evsidsBumpFactor and evsidsRescaleAt implement the bump-scale-k rule:
// k is multiplied by ~1.01 each conflict and rescaled once activities
// grow past 1e101.
const (
	evsidsBumpFactor = 1.01
	evsidsRescaleAt  = 1e101
)

// clauseBumpFactor and clauseRescaleAt are the analogous constants for
// learnt-clause activity, used only to rank clauses during database
// reduction.
const (
	clauseBumpFactor = 1.001
	clauseRescaleAt  = 1e21
)

// varOrder is the EVSIDS-driven decision heuristic: a max-heap of
// (activity, variable), backed by github.com/rhartert/yagh's addressable
// IntMap so that activity bumps are O(log n) increase-key operations. Saved
// polarities are kept by the trail, not here.
type varOrder struct {
	heap  *yagh.IntMap[float64]
	score []float64
	k     float64
}

func newVarOrder() *varOrder {
	return &varOrder{
		heap: yagh.New[float64](0),
		k:    1.0,
	}
}

// grow registers a freshly-declared variable with zero initial activity.
func (o *varOrder) grow() {
	v := len(o.score)
	o.score = append(o.score, 0)
	o.heap.GrowBy(1)
	o.heap.Put(v, 0)
}

// bump increases v's activity by the current bump scale, rescaling every
// score (and the scale itself) if the threshold is exceeded.
func (o *varOrder) bump(v Var) {
	o.score[v] += o.k
	if o.heap.Contains(v) {
		o.heap.Put(v, -o.score[v])
	}
	if o.score[v] > evsidsRescaleAt {
		o.rescale()
	}
}

func (o *varOrder) rescale() {
	for v := range o.score {
		o.score[v] *= 1e-101
		if o.heap.Contains(v) {
			o.heap.Put(v, -o.score[v])
		}
	}
	o.k *= 1e-101
}

// decay grows the bump scale for the next conflict.
func (o *varOrder) decay() {
	o.k *= evsidsBumpFactor
}

// choose pops max-activity entries whose variable is already assigned,
// peeks the next one, then restores every popped entry before returning.
// The heap is allowed to hold stale entries for already-assigned
// variables between conflicts; choose is where they get filtered out.
func (o *varOrder) choose(tr *trail) (Var, bool) {
	var popped []int
	var chosen Var
	found := false
	for {
		elem, ok := o.heap.Pop()
		if !ok {
			break
		}
		popped = append(popped, elem.Elem)
		if tr.eval(PositiveLiteral(elem.Elem)) == Unknown {
			chosen = elem.Elem
			found = true
			break
		}
	}
	for _, v := range popped {
		o.heap.Put(v, -o.score[v])
	}
	return chosen, found
}

// clauseActivity tracks the shared bump scale for learnt-clause activity,
// used to rank clauses during database reduction. The per-clause score
// itself lives on Clause.activity, not a parallel array:
// the clause arena already relocates the whole *Clause on swap-remove, so
// keeping the score on the struct avoids a second index to keep in sync.
type clauseActivity struct {
	k float64
}

func newClauseActivity() *clauseActivity {
	return &clauseActivity{k: 1.0}
}

// bump increases clause c's activity by the current scale, rescaling the
// activity of every clause in the store (and the scale itself) if the
// threshold is exceeded.
func (a *clauseActivity) bump(c *Clause, all *store) {
	c.activity += a.k
	if c.activity > clauseRescaleAt {
		for i := 0; i < all.len(); i++ {
			all.get(i).activity *= 1e-21
		}
		a.k *= 1e-21
	}
}

func (a *clauseActivity) decay() {
	a.k *= clauseBumpFactor
}
