package sat

// noConflict is returned by propagate when every pending trail literal was
// processed without contradiction.
const noConflict = -1

// propagate runs unit propagation from s.propHead to the end of the trail
// using the two-watched-literal scheme. For each newly-true literal l,
// every clause watching -l is inspected via clause.propagate;
// a clause that cannot find a new watch either asserts its other watched
// literal (unit) or reports a conflict.
func (s *Solver) propagate() int {
	for s.propHead < len(s.tr.lits) {
		l := s.tr.lits[s.propHead]
		s.propHead++

		falsified := l.Opposite()
		ws := s.wl.lists[l]

		i := 0
		for i < len(ws) {
			c := ws[i]
			cl := s.cs.get(c)

			kept, rewatched := cl.propagate(s, falsified)
			if !kept {
				return c // conflict clause
			}
			if rewatched {
				ws = s.wl.lists[l] // unwatch swap-removed in place; re-examine slot i
			} else {
				i++
			}
		}
	}
	return noConflict
}

// propagate is invoked when watched literal `falsified` (already false
// under the current assignment) is being processed.
//
// kept reports whether the clause survives without contradiction (either
// because it was satisfied, a new watch was found, or it asserted its
// other watched literal); rewatched reports whether the clause's watch
// moved away from `falsified`, which removes it from the watch list the
// caller is iterating. kept==false means this clause is the conflict.
func (c *Clause) propagate(s *Solver, falsified Literal) (kept, rewatched bool) {
	if c.literals[0] == falsified {
		c.literals[0], c.literals[1] = c.literals[1], c.literals[0]
	}

	if s.tr.eval(c.literals[0]) == True {
		return true, false // already satisfied, watch stays put
	}

	n := c.Len()
	if c.prevPos >= n {
		c.prevPos = 2
	}

	for i := c.prevPos; i < n; i++ {
		if s.tr.eval(c.literals[i]) != False {
			c.rewatch(s, falsified, i)
			return true, true
		}
	}
	for i := 2; i < c.prevPos; i++ {
		if s.tr.eval(c.literals[i]) != False {
			c.rewatch(s, falsified, i)
			return true, true
		}
	}

	// All of literals[1:] are false; literals[0] must become true, or this
	// clause is the conflict.
	if s.tr.eval(c.literals[0]) == Unknown {
		s.assign(c.literals[0], propagationReason(c.idx))
		return true, false
	}
	return false, false
}

// rewatch moves the watch from `falsified` to literals[i], which is either
// true or unassigned. The clause's old watch bucket is keyed by
// falsified.Opposite() (the literal whose assertion falsified it), not by
// falsified itself.
func (c *Clause) rewatch(s *Solver, falsified Literal, i int) {
	s.wl.unwatch(falsified.Opposite(), c.idx)
	c.literals[1], c.literals[i] = c.literals[i], c.literals[1]
	c.prevPos = i + 1
	s.wl.watch(c.literals[1].Opposite(), c.idx)
}

// assign asserts a literal implied by propagation, recording the given
// antecedent clause as its reason.
func (s *Solver) assign(l Literal, r reason) {
	s.tr.set(l, r)
}
