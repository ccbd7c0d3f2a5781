package sat

// solverState is the explicit incremental state machine of spec §4.K:
// adding a clause always returns the solver to "building", and the result
// of the previous Sat call is only meaningful until the next Add or Assume.
type solverState int

const (
	stateReady solverState = iota
	stateBuilding
	stateSatisfiable
	stateUnsatisfiable
	stateUnknown
)

// Add stages one literal of the clause under construction; a 0 terminator
// commits it through add_simplified_clause (spec §4.D), the DIMACS
// incremental convention picosat_add follows. Calling Add while a previous
// Sat result is still live invalidates it, moving the state machine back to
// "building".
func (s *Solver) Add(lit int) {
	rejectIntMin(lit)
	s.enterBuilding()
	if lit == 0 {
		s.addClauseFromBuffer(false)
		return
	}
	s.addedLits = append(s.addedLits, s.litFromDimacs(lit))
}

// enterBuilding implements the solved_* -> building transition of spec
// §4.K: it undoes the trail back to level 0 (unassigning every decision,
// assumption included, and clearing any latched conflict) so that a clause
// or assumption staged afterwards is simplified against a clean, empty
// assignment rather than the stale model or refutation of the previous
// Sat call. It is a no-op when already building or never solved.
func (s *Solver) enterBuilding() {
	if s.state == stateSatisfiable || s.state == stateUnsatisfiable || s.state == stateUnknown {
		s.undoUntil(0)
	}
	s.state = stateBuilding
}

// litFromDimacs converts a DIMACS literal (positive/negative 1-based
// variable number) to the internal Lit encoding, growing the variable table
// if needed (spec §8 "Boundary behaviors").
func (s *Solver) litFromDimacs(lit int) Lit {
	v := Var(absInt(lit) - 1)
	s.ensureVar(v)
	if lit > 0 {
		return PositiveLiteral(v)
	}
	return NegativeLiteral(v)
}

func absInt(i int) int {
	if i < 0 {
		return -i
	}
	return i
}

// Assume stages one failure-sensitive assumption literal for the very next
// Sat call (spec §4.K), mirroring picosat_assume: an assumption only
// applies to the next Sat call and is discarded once it returns, whatever
// the result.
func (s *Solver) Assume(lit int) {
	s.enterBuilding()
	s.assumptionLits = append(s.assumptionLits, s.litFromDimacs(lit))
}

// resetAssumptions rebuilds the assumption consumption queue from the
// literals staged by Assume, in the order they were staged, and clears the
// bookkeeping left over from whatever the previous Sat call did with them.
func (s *Solver) resetAssumptions() {
	for v := range s.flags {
		s.clearFlag(Var(v), flagAssumption)
	}
	for k := range s.failedAssumptions {
		delete(s.failedAssumptions, k)
	}
	s.assumeQueue.Clear()
	for _, l := range s.assumptionLits {
		s.assumeQueue.Push(l)
	}
	s.assumptionLits = s.assumptionLits[:0]
}

// Failed reports whether lit was part of the unsatisfiable subset of
// assumptions from the most recent Sat call (spec §4.K).
func (s *Solver) Failed(lit int) bool {
	return s.failedAssumptions[s.litFromDimacs(lit)]
}
