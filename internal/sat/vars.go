package sat

// varFlag holds the per-variable bit flags of spec §3 "Variable record"
// beyond level/reason (which get their own arrays since they're hot and
// wide). has_last_phase is folded into phase itself: Undef means "never
// assigned", so there is no separate bit for it.
type varFlag uint8

const (
	flagMark varFlag = 1 << iota
	flagCore
	flagAssumption
)

// NumVariables returns the number of variables created so far.
func (s *Solver) NumVariables() int { return len(s.level) }

// AddVariable creates a fresh variable and returns it. Variables are
// created monotonically (spec §3 "Lifecycles"): the literal/variable tables
// grow geometrically via Go's native slice growth, which makes the
// growth-rebase step of spec §4.C a non-issue (an id-based design never
// needs to relocate stored pointers — see SPEC_FULL.md / DESIGN.md).
func (s *Solver) AddVariable() Var {
	v := Var(len(s.level))

	s.value = append(s.value, Undef, Undef)
	s.level = append(s.level, -1)
	s.reason = append(s.reason, noReason)
	s.phase = append(s.phase, Undef)
	s.flags = append(s.flags, 0)
	s.jwh = append(s.jwh, ZeroFlt(), ZeroFlt())
	s.unitTraceOf = append(s.unitTraceOf, 0)

	s.seen.Expand()
	s.heap.growBy(1)
	s.heap.insert(v)

	s.db.growVars(1)

	return v
}

// ensureVar grows the variable table up to and including v, the way
// importing a DIMACS literal outside the current range auto-creates
// variables (spec §8 "Boundary behaviors").
func (s *Solver) ensureVar(v Var) {
	for Var(len(s.level)) <= v {
		s.AddVariable()
	}
}

func (s *Solver) hasFlag(v Var, f varFlag) bool { return s.flags[v]&f != 0 }
func (s *Solver) setFlag(v Var, f varFlag) { s.flags[v] |= f }
func (s *Solver) clearFlag(v Var, f varFlag) { s.flags[v] &^= f }
