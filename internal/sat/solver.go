package sat

import "fmt"

// Outcome is the result of a completed Solve call.
type Outcome int

const (
	Unsat Outcome = iota
	Sat
)

func (o Outcome) String() string {
	if o == Sat {
		return "SATISFIABLE"
	}
	return "UNSATISFIABLE"
}

// Result is returned by Solve. Model is non-nil only when Outcome is Sat;
// it is indexed by Var and holds each variable's truth value.
type Result struct {
	Outcome Outcome
	Model   []bool
}

// Stats accumulates search counters over one Solve call.
type Stats struct {
	Decisions  int64
	Conflicts  int64
	Restarts   int64
	Reductions int64
}

// Options configures a Solver. There is no MaxConflicts/Timeout stop
// condition: this core always runs a problem to completion and never
// reports Unknown.
type Options struct {
	// Proof, if non-nil, receives every learnt-clause addition and every
	// clause removed by database reduction.
	Proof ProofLogger

	// RestartBase is the Luby sequence's base unit. Zero means the
	// default of 16.
	RestartBase int
}

// Solver is a single CDCL solver instance: not safe for concurrent use,
// owned exclusively by the caller that runs Solve.
type Solver struct {
	tr        *trail
	cs        *store
	wl        *watchLists
	order     *varOrder
	clauseAct *clauseActivity
	restart   *luby

	propHead int

	conflictsSinceRestart int
	restartThreshold      int

	maxLearnt   float64
	numOriginal int

	proof ProofLogger
	unsat bool

	// seen guards against double-bumping a variable within one conflict
	// analysis.
	seen *ResetSet

	// tmpLearnt is the scratch buffer analyze builds the learnt clause in,
	// reused across conflicts to avoid reallocating on every call.
	tmpLearnt []Literal

	Stats Stats
}

// NewSolver returns an empty Solver ready to accept AddVariable/AddClause
// calls.
func NewSolver(opts Options) *Solver {
	base := opts.RestartBase
	if base <= 0 {
		base = 16
	}
	return &Solver{
		tr:        newTrail(),
		cs:        newStore(),
		wl:        newWatchLists(),
		order:     newVarOrder(),
		clauseAct: newClauseActivity(),
		restart:   newLuby(base),
		proof:     opts.Proof,
		seen:      &ResetSet{},
	}
}

// AddVariable declares one fresh variable and returns its id.
func (s *Solver) AddVariable() Var {
	v := s.tr.numVars()
	s.tr.grow()
	s.wl.grow()
	s.order.grow()
	s.seen.Expand()
	return v
}

// NumVariables returns the number of declared variables.
func (s *Solver) NumVariables() int {
	return s.tr.numVars()
}

// AddClause adds an original problem clause. It must be called before
// Solve or any decision is made. Empty clauses mark the problem
// permanently unsatisfiable; unit clauses are asserted immediately at
// level 0; tautologies are silently dropped.
func (s *Solver) AddClause(lits []Literal) error {
	if s.tr.level() != 0 {
		return fmt.Errorf("sat: AddClause called above the root level")
	}

	clause, tautology := intakeClause(append([]Literal(nil), lits...))
	if tautology {
		return nil
	}

	switch len(clause) {
	case 0:
		s.unsat = true
	case 1:
		s.assertUnit(clause[0])
	default:
		s.cs.addClause(clause, false, s.wl)
		s.numOriginal++
	}
	return nil
}

// assertUnit handles a length-1 original clause: unit clauses are never
// watched, but are still stored in the arena (without watches) so they
// have a stable index to serve as their own Propagation reason.
func (s *Solver) assertUnit(l Literal) {
	switch s.tr.eval(l) {
	case True:
		return
	case False:
		s.unsat = true
		return
	}
	idx := s.cs.add(newClause([]Literal{l}, false))
	s.numOriginal++
	s.tr.set(l, propagationReason(idx))
}

// Solve runs the solver to completion: propagate, pick a decision,
// propagate to fixpoint or analyze the conflict and backjump, reduce the
// clause database and restart as thresholds are hit, until every variable
// is assigned or a top-level conflict is detected.
func (s *Solver) Solve() Result {
	if s.unsat {
		return Result{Outcome: Unsat}
	}
	if c := s.propagate(); c != noConflict {
		s.unsat = true
		return Result{Outcome: Unsat}
	}

	s.maxLearnt = float64(s.numOriginal) / 3
	s.restartThreshold = s.restart.next()

	for {
		v, ok := s.order.choose(s.tr)
		if !ok {
			break
		}
		s.tr.decide(v)
		s.Stats.Decisions++

		for {
			conflict := s.propagate()
			if conflict == noConflict {
				break
			}
			s.Stats.Conflicts++
			s.conflictsSinceRestart++

			levelAtConflict := s.tr.level()
			learnt, backjumpLevel := s.analyze(conflict)

			if len(learnt) == 1 && levelAtConflict == 0 {
				s.unsat = true
				return Result{Outcome: Unsat}
			}

			if s.proof != nil {
				s.proof.Add(toDIMACS(learnt))
			}

			s.tr.backtrack(backjumpLevel)
			s.capPropHead()

			var idx int
			if len(learnt) == 1 {
				idx = s.cs.add(newClause(learnt, true))
			} else {
				idx = s.cs.addClause(learnt, true, s.wl)
			}
			s.tr.set(learnt[0], propagationReason(idx))
		}

		if s.shouldReduce() {
			s.reduceDB()
			s.Stats.Reductions++
		}

		if s.conflictsSinceRestart >= s.restartThreshold {
			s.conflictsSinceRestart = 0
			s.restartThreshold = s.restart.next()
			if s.tr.level() >= 1 {
				s.tr.backtrack(0)
				s.capPropHead()
			}
			s.Stats.Restarts++
		}
	}

	return Result{Outcome: Sat, Model: s.model()}
}

// capPropHead keeps propHead from pointing past a trail that backtrack
// just shortened.
func (s *Solver) capPropHead() {
	if s.propHead > len(s.tr.lits) {
		s.propHead = len(s.tr.lits)
	}
}

// model reads the current (fully-assigned) trail into a dense []bool
// indexed by Var.
func (s *Solver) model() []bool {
	m := make([]bool, s.tr.numVars())
	for v := range m {
		m[v] = s.tr.eval(PositiveLiteral(v)) == True
	}
	return m
}
