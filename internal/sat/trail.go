package sat

// conflictInfo records the pending conflict latched during BCP (spec §4.F),
// in either of its two shapes: a falsified large clause, or a falsified
// binary implication (which never materializes a Clause record).
type conflictInfo struct {
	binary bool
	clause ClauseID
	lit1, lit2 Lit // both False; only meaningful when binary is true
	traceID int32 // the falsified binary clause's trace id, when binary
}

func (s *Solver) hasConflict() bool { return s.conflict != nil }

func (s *Solver) latchConflictClause(id ClauseID) {
	if s.conflict == nil {
		s.conflict = &conflictInfo{clause: id}
	}
}

func (s *Solver) latchConflictBinary(a, b Lit, traceID int32) {
	if s.conflict == nil {
		s.conflict = &conflictInfo{binary: true, lit1: a, lit2: b, traceID: traceID}
	}
}

// valueOf returns the current tri-valued assignment of l.
func (s *Solver) valueOf(l Lit) LBool { return s.value[l] }

// litOf returns the literal of v that currently holds True; only valid when
// v is assigned.
func (s *Solver) litOf(v Var) Lit {
	if s.value[PositiveLiteral(v)] == True {
		return PositiveLiteral(v)
	}
	return NegativeLiteral(v)
}

// decisionLevel returns the number of decisions currently on the trail.
func (s *Solver) decisionLevel() int32 { return int32(len(s.trailLim)) }

// enqueue implements assign(lit, reason) from spec §4.E. It is a no-op if
// lit is already True. If lit is already False nothing is assigned and the
// solver is marked unsatisfiable (s.unsat); callers that must not end the
// search this way check valueOf first and only enqueue Undef literals.
func (s *Solver) enqueue(l Lit, reason Reason) {
	if s.valueOf(l) == False {
		s.unsat = true
		return
	}
	if s.valueOf(l) == True {
		return
	}

	v := l.Var()
	s.value[l] = True
	s.value[l.Opposite()] = False
	s.level[v] = s.decisionLevel()
	s.reason[v] = reason
	s.phase[v] = LiftBool(l.IsPositive())

	if !reason.isNone() && !reason.isBinary() {
		rec := s.db.at(reason.clauseID())
		if len(rec.lits) > 2 && s.decisionLevel() > 0 {
			rec.flags |= clauseLocked
		}
	}

	if s.decisionLevel() == 0 && s.flags[v]&flagAssumption == 0 {
		s.dropFixedLiteral(l)
		s.fixed++
	}

	s.trail = append(s.trail, l)
}

// dropFixedLiteral handles a level-0 TRUE non-assumption literal l: every
// binary implication containing l is removed from the implication lists.
// Large-clause watches are not removed, here or by propagation, which
// treats a clause satisfied at level 0 like any other; simplify frees the
// learned clauses satisfied at level 0.
func (s *Solver) dropFixedLiteral(l Lit) {
	for _, e := range s.db.impls[l] {
		s.db.removeImpl(e.other, l)
	}
	s.db.impls[l] = nil
}

// undoOne reverts the most recently assigned trail literal to Undef.
func (s *Solver) undoOne() {
	l := s.trail[len(s.trail)-1]
	v := l.Var()

	if r := s.reason[v]; !r.isNone() && !r.isBinary() {
		if rec := s.db.at(r.clauseID()); len(rec.lits) > 2 {
			rec.flags &^= clauseLocked
		}
	}

	s.value[l] = Undef
	s.value[l.Opposite()] = Undef
	s.reason[v] = noReason
	s.level[v] = -1
	s.heap.reinsert(v)

	s.trail = s.trail[:len(s.trail)-1]
}

// undoUntil pops the trail until the topmost surviving literal has level <=
// target, resets the BCP cursors, and clears any pending conflict (spec
// §4.E "Undo to level L").
func (s *Solver) undoUntil(target int32) {
	for s.decisionLevel() > target {
		lim := s.trailLim[len(s.trailLim)-1]
		for len(s.trail) > lim {
			s.undoOne()
		}
		s.trailLim = s.trailLim[:len(s.trailLim)-1]
	}
	if s.tail1 > len(s.trail) {
		s.tail1 = len(s.trail)
	}
	if s.tail2 > len(s.trail) {
		s.tail2 = len(s.trail)
	}
	s.conflict = nil
}

// pushDecision records a new decision level and assigns lit as a decision
// (no reason).
func (s *Solver) pushDecision(lit Lit) {
	s.trailLim = append(s.trailLim, int32(len(s.trail)))
	s.decisions++
	s.enqueue(lit, noReason)
}
