package sat

// reasonKind distinguishes a decision literal from one implied by unit
// propagation. Decisions have no antecedent clause; propagated literals
// are justified by the clause that forced them.
type reasonKind uint8

const (
	reasonDecision reasonKind = iota
	reasonPropagation
)

// reason is the antecedent of a trail literal: either "this was a decision"
// or "this was implied by clause at this arena index".
type reason struct {
	kind   reasonKind
	clause int // arena index, valid only when kind == reasonPropagation
}

var decisionReason = reason{kind: reasonDecision}

func propagationReason(clause int) reason {
	return reason{kind: reasonPropagation, clause: clause}
}

// varData is the per-variable state tracked by the trail.
type varData struct {
	value   LBool
	level   int
	reason  reason
	phase   LBool // saved polarity, for phase-saving decisions
}

// trail is the chronological assignment trail together with per-variable
// value/level/reason bookkeeping.
type trail struct {
	data []varData // indexed by Var
	lits []Literal // chronological list of asserted literals
	lims []int     // trail position of each decision level's decision literal
}

func newTrail() *trail {
	return &trail{}
}

// grow adds bookkeeping for one freshly-declared variable.
func (t *trail) grow() {
	t.data = append(t.data, varData{value: Unknown, level: -1, phase: False})
}

func (t *trail) numVars() int {
	return len(t.data)
}

// level returns the current decision level (0 = root / unit propagation).
func (t *trail) level() int {
	return len(t.lims)
}

// eval returns the current value of a literal, XOR'd with its sign.
func (t *trail) eval(l Literal) LBool {
	v := t.data[l.VarID()].value
	if v == Unknown {
		return Unknown
	}
	if l.IsPositive() {
		return v
	}
	return v.Opposite()
}

// levelOf returns the decision level at which the literal's variable was
// assigned. Only meaningful when eval(l) != Unknown.
func (t *trail) levelOf(l Literal) int {
	return t.data[l.VarID()].level
}

// reasonOf returns the antecedent of the literal's variable's assignment.
func (t *trail) reasonOf(l Literal) reason {
	return t.data[l.VarID()].reason
}

// phaseOf returns the saved polarity of a variable for phase-saving.
func (t *trail) phaseOf(v Var) LBool {
	return t.data[v].phase
}

// set asserts literal l true with the given antecedent. If the antecedent
// is a decision, a new decision level is opened.
func (t *trail) set(l Literal, r reason) {
	if r.kind == reasonDecision {
		t.lims = append(t.lims, len(t.lits))
	}
	vd := &t.data[l.VarID()]
	vd.value = Lift(l.IsPositive())
	vd.level = t.level()
	vd.reason = r
	vd.phase = vd.value
	t.lits = append(t.lits, l)
}

// decide asserts variable v using its saved polarity (defaulting to false
// the first time it is chosen), opening a new decision level.
func (t *trail) decide(v Var) Literal {
	var l Literal
	if t.data[v].phase == True {
		l = PositiveLiteral(v)
	} else {
		l = NegativeLiteral(v)
	}
	t.set(l, decisionReason)
	return l
}

// backtrack undoes every assignment made above the given level (the
// assignments of that level itself are kept),
// clearing each popped variable's value/level/reason (its saved polarity
// is retained for the next decision).
func (t *trail) backtrack(level int) {
	if level >= t.level() {
		return
	}
	pos := t.lims[level]
	t.lims = t.lims[:level]
	for i := len(t.lits) - 1; i >= pos; i-- {
		v := t.lits[i].VarID()
		t.data[v].value = Unknown
		t.data[v].level = -1
		t.data[v].reason = reason{}
	}
	t.lits = t.lits[:pos]
}

// renameClause rewrites any Propagation reason referencing clause index old
// to new. Required whenever the clause arena performs a swap-remove.
func (t *trail) renameClause(old, new int) {
	for i := range t.data {
		r := &t.data[i].reason
		if r.kind == reasonPropagation && r.clause == old {
			r.clause = new
		}
	}
}
