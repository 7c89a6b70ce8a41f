package sat

import "testing"

func TestPropagateUnitChain(t *testing.T) {
	// (1) ^ (-1 v 2) ^ (-2 v 3): unit propagation alone should derive
	// 1, 2, 3 true with no decisions and no conflict.
	s := buildSolver(t, 3, [][]int{{1}, {-1, 2}, {-2, 3}})

	if c := s.propagate(); c != noConflict {
		t.Fatalf("propagate reported a conflict: %d", c)
	}
	for v, want := range []LBool{True, True, True} {
		if got := s.tr.eval(PositiveLiteral(v)); got != want {
			t.Fatalf("var %d = %v, want %v", v, got, want)
		}
	}
}

func TestPropagateDetectsConflict(t *testing.T) {
	s := buildSolver(t, 2, [][]int{{1}, {-1, 2}, {-1, -2}})
	if c := s.propagate(); c == noConflict {
		t.Fatal("expected a conflict, got none")
	}
}

func TestPropagateRewatchesOnFalsifiedWatch(t *testing.T) {
	s := NewSolver(Options{})
	for i := 0; i < 4; i++ {
		s.AddVariable()
	}
	// A single clause over all four variables; falsify its two watches one
	// at a time and check it finds a new, non-falsified watch each time
	// instead of signalling a conflict prematurely.
	if err := s.AddClause([]Literal{
		PositiveLiteral(0), PositiveLiteral(1), PositiveLiteral(2), PositiveLiteral(3),
	}); err != nil {
		t.Fatal(err)
	}

	s.tr.decide(0) // asserts NegativeLiteral(0) via default phase, falsifying literals[0]
	if c := s.propagate(); c != noConflict {
		t.Fatalf("unexpected conflict after falsifying one watch: %d", c)
	}

	s.tr.decide(1)
	if c := s.propagate(); c != noConflict {
		t.Fatalf("unexpected conflict after falsifying a second watch: %d", c)
	}

	c := s.cs.get(0)
	if !contains(s.wl.of(c.Lit(0).Opposite()), 0) || !contains(s.wl.of(c.Lit(1).Opposite()), 0) {
		t.Fatalf("clause lost watch invariant after rewatching: watches are %v, %v", c.Lit(0), c.Lit(1))
	}
}
