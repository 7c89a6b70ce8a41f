package sat

import "testing"

// TestAnalyzeFirstUIP builds a small implication graph by hand and checks
// that conflict analysis resolves down to a single first-UIP literal at
// the conflict's decision level:
//
//	level 1: decide x0
//	level 2: decide x1
//	         propagate x2 via (-x0 v -x1 v x2)
//	         propagate x3 via (-x2 v x3)
//	         conflict   via (-x3 v -x1)
//
// Resolving the conflict clause against x3's antecedent and then x2's
// eliminates x3 and x2, leaving {-x1, -x0}; x1 is the only level-2 literal
// left, so the
// process stops there (first UIP), and the clause backjumps to level 1
// (the level of its only other literal, -x0).
func TestAnalyzeFirstUIP(t *testing.T) {
	s := NewSolver(Options{})
	for i := 0; i < 4; i++ {
		s.AddVariable()
	}

	s.tr.set(PositiveLiteral(0), decisionReason) // x0, level 1

	s.tr.set(PositiveLiteral(1), decisionReason) // x1, level 2

	c1 := s.cs.add(newClause([]Literal{
		NegativeLiteral(0), NegativeLiteral(1), PositiveLiteral(2),
	}, false))
	s.tr.set(PositiveLiteral(2), propagationReason(c1)) // x2, level 2

	c2 := s.cs.add(newClause([]Literal{NegativeLiteral(2), PositiveLiteral(3)}, false))
	s.tr.set(PositiveLiteral(3), propagationReason(c2)) // x3, level 2

	conflict := s.cs.add(newClause([]Literal{NegativeLiteral(3), NegativeLiteral(1)}, false))

	learnt, backjumpLevel := s.analyze(conflict)

	if len(learnt) != 2 {
		t.Fatalf("learnt clause has %d literals, want 2: %v", len(learnt), learnt)
	}
	if !containsLiteral(learnt, NegativeLiteral(0)) || !containsLiteral(learnt, NegativeLiteral(1)) {
		t.Fatalf("learnt clause = %v, want {-x0, -x1}", learnt)
	}
	if backjumpLevel != 1 {
		t.Fatalf("backjumpLevel = %d, want 1", backjumpLevel)
	}
}

func TestAnalyzeSingleLiteralLearntAtRootIsTopLevelConflict(t *testing.T) {
	s := NewSolver(Options{})
	s.AddVariable()

	idx := s.cs.add(newClause([]Literal{PositiveLiteral(0)}, false))
	s.tr.set(PositiveLiteral(0), propagationReason(idx)) // level 0

	conflict := s.cs.add(newClause([]Literal{NegativeLiteral(0)}, false))

	levelAtConflict := s.tr.level()
	learnt, _ := s.analyze(conflict)

	if len(learnt) != 1 {
		t.Fatalf("learnt clause has %d literals, want 1: %v", len(learnt), learnt)
	}
	if levelAtConflict != 0 {
		t.Fatalf("levelAtConflict = %d, want 0 (the genuine top-level-Unsat condition)", levelAtConflict)
	}
}
