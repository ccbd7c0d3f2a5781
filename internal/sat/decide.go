package sat

// decide implements spec §4.G: pick the next decision literal, preferring
// any remaining assumption, falling back to the activity heap, and applying
// phase selection (random spread, Jeroslow-Wang weights, or the saved
// phase) to the chosen variable.
func (s *Solver) decide() (Lit, bool) {
	if lit, ok := s.nextAssumption(); ok {
		return lit, true
	}

	v, ok := s.popDecisionVar()
	if !ok {
		return 0, false
	}

	return s.literalForPhase(v), true
}

// nextAssumption returns the first not-yet-assigned assumption literal in
// the order Assume was called (spec §4.K), recording every assumption found
// False as failed. The queue is rotated rather than drained, so an
// assumption undone by a backjump or restart is decided again.
func (s *Solver) nextAssumption() (Lit, bool) {
	var next Lit
	found := false
	for i, n := 0, s.assumeQueue.Size(); i < n; i++ {
		lit := s.assumeQueue.Pop()
		s.assumeQueue.Push(lit)
		if found {
			continue
		}
		switch s.valueOf(lit) {
		case True:
			continue // already forced true by an earlier decision/fact
		case False:
			s.failedAssumptions[lit] = true
		default:
			s.setFlag(lit.Var(), flagAssumption)
			next, found = lit, true
		}
	}
	return next, found
}

// popDecisionVar pops variables off the activity heap until it finds one
// that is still unassigned (stale heap entries are possible since variables
// aren't removed from the heap on assignment, only lazily skipped).
func (s *Solver) popDecisionVar() (Var, bool) {
	for {
		v, ok := s.heap.popMax()
		if !ok {
			return 0, false
		}
		if s.value[PositiveLiteral(v)] == Undef {
			return v, true
		}
	}
}

// literalForPhase applies spec §4.G's phase-selection rule: a small
// fraction of decisions ignore the saved/weighted phase entirely and spread
// randomly, using the solver's own deterministic LCG so runs stay
// reproducible across platforms.
func (s *Solver) literalForPhase(v Var) Lit {
	s.rngState = s.rngState*1103515245 + 12345
	if uint32(s.rngState>>16)%100 < s.randomSpreadPct {
		if (s.rngState>>8)&1 == 0 {
			return NegativeLiteral(v)
		}
		return PositiveLiteral(v)
	}

	if s.phase[v] != Undef {
		if s.phase[v] == True {
			return PositiveLiteral(v)
		}
		return NegativeLiteral(v)
	}

	if s.jwh[PositiveLiteral(v)].Compare(s.jwh[NegativeLiteral(v)]) >= 0 {
		return PositiveLiteral(v)
	}
	return NegativeLiteral(v)
}
