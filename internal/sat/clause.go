package sat

import "strings"

// clauseStatus is a small bitmask tracking a clause's role in the database:
// whether it was learnt (and is therefore eligible for database reduction)
// and whether it has been removed from the arena (guards against dangling
// references during a swap-remove rewrite pass).
type clauseStatus uint8

const (
	statusLearnt  clauseStatus = 1 << iota
	statusDeleted
)

// Clause is an ordered, duplicate-free, non-tautological sequence of
// literals. Positions 0 and 1 are the watched positions: the propagator
// maintains the invariant that the two literals occupying them are exactly
// the clause's two watches.
type Clause struct {
	literals []Literal
	activity float64
	prevPos  int // resume point for the next-watch scan, in [2, len]; reset to 2 once it reaches len
	status   clauseStatus
	idx      int // this clause's current index in the owning store's arena
}

func (c *Clause) isLearnt() bool  { return c.status&statusLearnt != 0 }
func (c *Clause) isDeleted() bool { return c.status&statusDeleted != 0 }

func (c *Clause) Len() int             { return len(c.literals) }
func (c *Clause) Lit(i int) Literal    { return c.literals[i] }
func (c *Clause) Literals() []Literal  { return c.literals }

// sortAndDedup sorts lits and removes duplicates in place, returning the
// shortened slice. Used both for clause intake and for the analyzer's
// working set after each resolution step.
func sortAndDedup(lits []Literal) []Literal {
	if len(lits) < 2 {
		return lits
	}
	insertionSort(lits)
	k := 1
	for i := 1; i < len(lits); i++ {
		if lits[i] != lits[k-1] {
			lits[k] = lits[i]
			k++
		}
	}
	return lits[:k]
}

// insertionSort sorts small literal slices in place. Clauses and learnt
// working sets are typically short, so this avoids pulling in sort.Slice's
// interface overhead on clause intake and on every analyzer resolution step.
func insertionSort(lits []Literal) {
	for i := 1; i < len(lits); i++ {
		key := lits[i]
		j := i - 1
		for j >= 0 && lits[j] > key {
			lits[j+1] = lits[j]
			j--
		}
		lits[j+1] = key
	}
}

// isTautology reports whether the sorted, duplicate-free literal slice
// contains both polarities of some variable.
func isTautology(sorted []Literal) bool {
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1].Opposite() {
			return true
		}
	}
	return false
}

// intakeClause prepares a freshly-parsed clause: sorted, duplicate literals
// removed. It reports whether the clause is a tautology (both polarities
// of some variable present), in which case it should be dropped rather
// than added to the store.
func intakeClause(lits []Literal) (clause []Literal, tautology bool) {
	lits = sortAndDedup(lits)
	if isTautology(lits) {
		return nil, true
	}
	return lits, false
}

// newClause builds a Clause from a copy of an already-prepared (deduped,
// non-tautological) literal slice, keeping its order. learnt marks it as
// eligible for later database reduction. For clauses of length >= 2 the
// caller is responsible for registering the two watches once the arena
// index is known (see store.addClause); unit clauses are stored unwatched.
func newClause(lits []Literal, learnt bool) *Clause {
	cl := &Clause{
		literals: append([]Literal(nil), lits...),
		prevPos:  2,
	}
	if learnt {
		cl.status |= statusLearnt
	}
	return cl
}
