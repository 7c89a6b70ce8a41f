package sat

// analyze performs first-UIP conflict analysis starting from the given
// conflict clause index, producing a learnt clause and the level to
// backjump to. Resolution proceeds against trail reasons in reverse
// chronological order until exactly one literal of the learnt clause
// remains at the conflict's decision level (the first UIP). Level 0 is
// reserved for root/unit propagation, so a length-1 learnt clause produced
// while already at level 0 is the genuine top-level conflict.
func (s *Solver) analyze(conflict int) (learnt []Literal, backjumpLevel int) {
	lastLevel := s.tr.level()
	learnt = append(s.tmpLearnt[:0], s.cs.get(conflict).Literals()...)
	learnt = sortAndDedup(learnt)

	s.seen.Clear()
	trailPos := len(s.tr.lits)

	iAssert := -1
	for {
		for _, l := range learnt {
			v := l.VarID()
			if !s.seen.Contains(v) {
				s.seen.Add(v)
				s.order.bump(v)
			}
		}

		count := 0
		iAssert = -1
		for i, l := range learnt {
			if s.tr.levelOf(l) == lastLevel {
				count++
				iAssert = i
			}
		}
		if count == 1 {
			break
		}

		var onLit Literal
		for {
			trailPos--
			onLit = s.tr.lits[trailPos]
			if containsLiteral(learnt, onLit.Opposite()) {
				break
			}
		}

		r := s.tr.reasonOf(onLit)
		if r.kind != reasonPropagation {
			panic("sat: conflict analysis resolved on a decision literal")
		}
		rc := s.cs.get(r.clause)

		learnt = removeLiteral(learnt, onLit.Opposite())
		for _, l := range rc.Literals() {
			if l != onLit {
				learnt = append(learnt, l)
			}
		}
		learnt = sortAndDedup(learnt)

		s.clauseAct.bump(rc, s.cs)
	}
	s.order.decay()
	s.clauseAct.decay()

	learnt[0], learnt[iAssert] = learnt[iAssert], learnt[0]
	learnt = s.minimize(learnt)
	placeSecondWatch(learnt, s.tr)

	s.tmpLearnt = learnt

	if len(learnt) == 1 {
		return learnt, 0
	}
	return learnt, s.tr.levelOf(learnt[1])
}

// minimize drops non-asserting literals whose antecedent clause is already
// implied by the rest of the learnt clause (self-subsuming resolution).
// Position 0 (the asserting literal) is never touched.
func (s *Solver) minimize(learnt []Literal) []Literal {
	kept := learnt[:1]
	for i := 1; i < len(learnt); i++ {
		l := learnt[i]
		r := s.tr.reasonOf(l.Opposite())
		if r.kind != reasonPropagation {
			kept = append(kept, l)
			continue
		}
		rc := s.cs.get(r.clause)
		redundant := true
		for _, m := range rc.Literals() {
			if m == l.Opposite() {
				continue
			}
			if containsLiteral(learnt, m) || containsLiteral(learnt, m.Opposite()) || s.tr.levelOf(m) == 0 {
				continue
			}
			redundant = false
			break
		}
		if !redundant {
			kept = append(kept, l)
		}
	}
	return kept
}

// placeSecondWatch moves the literal with the second-highest decision level
// (among learnt[1:]) into position 1, so that learnt[1]'s level is the
// backjump level.
func placeSecondWatch(learnt []Literal, tr *trail) {
	if len(learnt) < 2 {
		return
	}
	best := 1
	for i := 2; i < len(learnt); i++ {
		if tr.levelOf(learnt[i]) > tr.levelOf(learnt[best]) {
			best = i
		}
	}
	learnt[1], learnt[best] = learnt[best], learnt[1]
}

func containsLiteral(lits []Literal, l Literal) bool {
	for _, m := range lits {
		if m == l {
			return true
		}
	}
	return false
}

// removeLiteral returns lits with the first occurrence of l removed,
// reusing the backing array.
func removeLiteral(lits []Literal, l Literal) []Literal {
	for i, m := range lits {
		if m == l {
			return append(lits[:i], lits[i+1:]...)
		}
	}
	return lits
}
