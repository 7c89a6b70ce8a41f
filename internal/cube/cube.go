// Package cube implements the embarrassingly-parallel cube-and-conquer
// outer driver: it partitions one CNF formula into N independent
// subproblems by fixing the polarities of the N most frequent variables,
// then races one sat.Solver per subproblem.
package cube

import (
	"container/heap"

	"github.com/jjanku/vw-passat/internal/sat"
	"github.com/jjanku/vw-passat/parsers"
)

// frequentVars returns the problem's variables ordered by descending
// literal occurrence count.
func frequentVars(p parsers.Problem) []sat.Var {
	freq := make([]int, p.NVars)
	for _, c := range p.Clauses {
		for _, l := range c {
			freq[l.VarID()]++
		}
	}

	h := make(varHeap, p.NVars)
	for v := range h {
		h[v] = varFreq{v: v, freq: freq[v]}
	}
	heap.Init(&h)

	ordered := make([]sat.Var, 0, p.NVars)
	for h.Len() > 0 {
		ordered = append(ordered, heap.Pop(&h).(varFreq).v)
	}
	return ordered
}

type varFreq struct {
	v    sat.Var
	freq int
}

// varHeap is a max-heap by frequency, breaking ties by variable id to keep
// the ordering deterministic.
type varHeap []varFreq

func (h varHeap) Len() int { return len(h) }
func (h varHeap) Less(i, j int) bool {
	if h[i].freq != h[j].freq {
		return h[i].freq > h[j].freq
	}
	return h[i].v < h[j].v
}
func (h varHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *varHeap) Push(x any)        { *h = append(*h, x.(varFreq)) }
func (h *varHeap) Pop() any {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}

// cubes recursively partitions vars into n cubes (each a set of fixed
// literal polarities): fix the first variable positive in roughly half the
// cubes and negative in the rest, recursing on the remaining variables.
func cubes(vars []sat.Var, n int) [][]sat.Literal {
	switch {
	case n == 0:
		return nil
	case n == 1:
		return [][]sat.Literal{{}}
	}

	m := n / 2
	v := vars[0]

	pos := cubes(vars[1:], m)
	for i := range pos {
		pos[i] = append(pos[i], sat.PositiveLiteral(v))
	}
	neg := cubes(vars[1:], n-m)
	for i := range neg {
		neg[i] = append(neg[i], sat.NegativeLiteral(v))
	}
	return append(pos, neg...)
}

// Split partitions problem into n subproblems such that problem is
// satisfiable iff at least one subproblem is.
func Split(problem parsers.Problem, n int) []parsers.Problem {
	vars := frequentVars(problem)
	if n > len(vars) {
		n = len(vars) + 1 // cubes requires n <= 2^len(vars); len(vars)==0 still allows n==1
	}
	if n < len(vars) {
		vars = vars[:n]
	}

	cs := cubes(vars, n)
	subproblems := make([]parsers.Problem, n)
	for i := range subproblems {
		clauses := make([][]sat.Literal, len(problem.Clauses), len(problem.Clauses)+len(cs[i]))
		copy(clauses, problem.Clauses)
		for _, lit := range cs[i] {
			clauses = append(clauses, []sat.Literal{lit})
		}
		subproblems[i] = parsers.Problem{NVars: problem.NVars, Clauses: clauses}
	}
	return subproblems
}

// Solve splits problem into n subproblems, solves each with an independent
// sat.Solver on its own goroutine, and returns the first Sat result, or
// Unsat once every worker has reported in. Workers are never cancelled;
// once a winner is found the losers are simply abandoned.
func Solve(problem parsers.Problem, n int) (sat.Result, error) {
	if n < 1 {
		n = 1
	}
	subproblems := Split(problem, n)

	results := make(chan sat.Result, len(subproblems))
	for _, sub := range subproblems {
		sub := sub
		go func() {
			solver := sat.NewSolver(sat.Options{})
			if err := parsers.LoadInto(sub, solver); err != nil {
				results <- sat.Result{Outcome: sat.Unsat}
				return
			}
			results <- solver.Solve()
		}()
	}

	best := sat.Result{Outcome: sat.Unsat}
	for range subproblems {
		r := <-results
		if r.Outcome == sat.Sat {
			return r, nil
		}
	}
	return best, nil
}
