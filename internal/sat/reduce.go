package sat

import "sort"

// removable reports the number of learnt clauses eligible for pruning: the
// total clause count beyond the original problem clauses, minus however
// many are currently on the trail.
func (s *Solver) removable() int {
	return (s.cs.len() - s.numOriginal) - len(s.tr.lits)
}

// shouldReduce reports whether the removable learnt count has exceeded the
// current budget.
func (s *Solver) shouldReduce() bool {
	return float64(s.removable()) > s.maxLearnt
}

// reduceDB prunes learnt clauses whose activity falls below the median of
// all learnt-clause activities, skipping any clause currently locked as a
// trail Propagation antecedent.
func (s *Solver) reduceDB() {
	pivot := s.medianLearntActivity()
	if pivot < 0 {
		s.maxLearnt *= 1.001
		return
	}

	i := 0
	for i < s.cs.len() {
		c := s.cs.get(i)
		if !c.isLearnt() || c.activity >= pivot || s.locked(i) {
			i++
			continue
		}
		if s.proof != nil {
			s.proof.Delete(toDIMACS(c.Literals()))
		}
		s.cs.removeAt(i, s.wl, s.tr)
		// removeAt swapped the last clause into slot i; re-examine it.
	}

	s.maxLearnt *= 1.001
}

// locked reports whether clause i is the Propagation antecedent of any
// currently-assigned literal, making it unsafe to remove.
func (s *Solver) locked(i int) bool {
	c := s.cs.get(i)
	if c.Len() == 0 {
		return false
	}
	r := s.tr.reasonOf(c.Lit(0))
	return r.kind == reasonPropagation && r.clause == i
}

// medianLearntActivity returns the median activity among learnt clauses, or
// -1 if there are none.
func (s *Solver) medianLearntActivity() float64 {
	var scores []float64
	for i := 0; i < s.cs.len(); i++ {
		c := s.cs.get(i)
		if c.isLearnt() {
			scores = append(scores, c.activity)
		}
	}
	if len(scores) == 0 {
		return -1
	}
	sort.Float64s(scores)
	return scores[len(scores)/2]
}
