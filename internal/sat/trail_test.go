package sat

import "testing"

func newTestTrail(n int) *trail {
	tr := newTrail()
	for i := 0; i < n; i++ {
		tr.grow()
	}
	return tr
}

func TestTrailDecideOpensLevel(t *testing.T) {
	tr := newTestTrail(2)
	if tr.level() != 0 {
		t.Fatalf("initial level = %d, want 0", tr.level())
	}
	tr.decide(0)
	if tr.level() != 1 {
		t.Fatalf("level after one decision = %d, want 1", tr.level())
	}
	tr.decide(1)
	if tr.level() != 2 {
		t.Fatalf("level after two decisions = %d, want 2", tr.level())
	}
}

func TestTrailEvalMatchesPolarity(t *testing.T) {
	tr := newTestTrail(1)
	tr.set(PositiveLiteral(0), decisionReason)
	if tr.eval(PositiveLiteral(0)) != True {
		t.Fatalf("eval(+0) = %v, want True", tr.eval(PositiveLiteral(0)))
	}
	if tr.eval(NegativeLiteral(0)) != False {
		t.Fatalf("eval(-0) = %v, want False", tr.eval(NegativeLiteral(0)))
	}
}

func TestTrailUnassignedIsUnknown(t *testing.T) {
	tr := newTestTrail(1)
	if tr.eval(PositiveLiteral(0)) != Unknown {
		t.Fatalf("eval of unassigned literal = %v, want Unknown", tr.eval(PositiveLiteral(0)))
	}
}

func TestTrailBacktrackClearsLevelsAndKeepsPhase(t *testing.T) {
	tr := newTestTrail(3)
	tr.decide(0)                               // level 1
	tr.set(PositiveLiteral(1), propagationReason(0)) // still level 1
	tr.decide(2)                               // level 2

	tr.backtrack(1)

	if tr.level() != 1 {
		t.Fatalf("level after backtrack(1) = %d, want 1", tr.level())
	}
	if tr.eval(PositiveLiteral(2)) != Unknown {
		t.Fatalf("var 2 should be unassigned after backtrack(1)")
	}
	if tr.eval(NegativeLiteral(0)) != True {
		t.Fatalf("var 0 should remain assigned after backtrack(1)")
	}
	if tr.phaseOf(2) != False {
		t.Fatalf("phase of backtracked var 2 should be retained as False, got %v", tr.phaseOf(2))
	}
}

func TestTrailBacktrackToCurrentLevelIsNoop(t *testing.T) {
	tr := newTestTrail(1)
	tr.decide(0)
	before := len(tr.lits)
	tr.backtrack(1)
	if len(tr.lits) != before {
		t.Fatalf("backtrack to current level mutated the trail")
	}
}

func TestTrailLevelConsistency(t *testing.T) {
	tr := newTestTrail(4)
	tr.decide(0)
	tr.set(PositiveLiteral(1), propagationReason(0))
	tr.decide(2)
	tr.decide(3)

	if tr.level() != len(tr.lims) {
		t.Fatalf("level() = %d, lims has %d entries", tr.level(), len(tr.lims))
	}
	if tr.levelOf(PositiveLiteral(1)) != 1 {
		t.Fatalf("propagated literal at level 1 reports level %d", tr.levelOf(PositiveLiteral(1)))
	}
	if tr.levelOf(NegativeLiteral(3)) != 3 {
		t.Fatalf("decision literal at level 3 reports level %d", tr.levelOf(NegativeLiteral(3)))
	}
}

func TestTrailRenameClauseRewritesReason(t *testing.T) {
	tr := newTestTrail(1)
	tr.set(PositiveLiteral(0), propagationReason(5))
	tr.renameClause(5, 2)
	r := tr.reasonOf(PositiveLiteral(0))
	if r.kind != reasonPropagation || r.clause != 2 {
		t.Fatalf("renameClause did not rewrite reason: got %+v", r)
	}
}
