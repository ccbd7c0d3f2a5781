package sat

// explainConflict returns the negated literals of the clause that caused the
// current conflict (spec §4.H step 1's seed), bumping the clause's activity
// and marking it used the way every antecedent visited during analysis is.
func (s *Solver) explainConflict(c *conflictInfo, out []Lit) []Lit {
	out = out[:0]
	if c.binary {
		out = append(out, c.lit1.Opposite(), c.lit2.Opposite())
		if s.tracing {
			s.zhainBuf = append(s.zhainBuf, c.traceID)
		}
		return out
	}
	rec := s.db.at(c.clause)
	for _, l := range rec.lits {
		out = append(out, l.Opposite())
	}
	if rec.isLearned() {
		s.bumpClauseActivity(c.clause)
	}
	rec.flags |= clauseUsed
	if s.tracing {
		s.zhainBuf = append(s.zhainBuf, rec.traceID)
	}
	return out
}

// explainAssign returns the antecedent literals that forced v's current
// value, i.e. the rest of its reason clause negated.
func (s *Solver) explainAssign(v Var, out []Lit) []Lit {
	out = out[:0]
	r := s.reason[v]
	if r.isBinary() {
		out = append(out, r.literal())
		if s.tracing {
			s.zhainBuf = append(s.zhainBuf, s.db.implTraceID(r.literal().Opposite(), s.litOf(v)))
		}
		return out
	}
	rec := s.db.at(r.clauseID())
	for _, l := range rec.lits[1:] {
		out = append(out, l.Opposite())
	}
	if rec.isLearned() {
		s.bumpClauseActivity(r.clauseID())
	}
	rec.flags |= clauseUsed
	if s.tracing {
		s.zhainBuf = append(s.zhainBuf, rec.traceID)
	}
	return out
}

// analyze implements first-UIP conflict analysis (spec §4.H). It walks the
// trail backward from the conflict, resolving away every variable assigned
// at the current decision level except the last one reached (the UIP),
// bumping variable and clause activities on every antecedent visited along
// the way, then applies self-subsuming minimization to the resulting cut.
// It returns the learned clause (UIP negation first) and the backjump
// level.
func (s *Solver) analyze() ([]Lit, int32) {
	confl := s.conflict
	s.conflict = nil
	s.seen.Clear()
	if s.tracing {
		s.zhainBuf = s.zhainBuf[:0]
	}

	buf := append(s.analyzeBuf[:0], -1) // slot 0 reserved for the UIP
	scratch := s.explainScratch[:0]

	nImplicationPoints := 0
	nextIdx := len(s.trail) - 1
	var l Lit = -1
	var backtrackLevel int32

	for {
		var explained []Lit
		if l == -1 {
			explained = s.explainConflict(confl, scratch)
		} else {
			explained = s.explainAssign(l.Var(), scratch)
		}

		for _, q := range explained {
			v := q.Var()
			if s.seen.Contains(int(v)) {
				continue
			}
			s.seen.Add(int(v))
			s.bumpVarActivity(v)
			if s.level[v] == s.decisionLevel() {
				nImplicationPoints++
				continue
			}
			buf = append(buf, q.Opposite())
			if lv := s.level[v]; lv > backtrackLevel {
				backtrackLevel = lv
			}
		}

		for {
			l = s.trail[nextIdx]
			nextIdx--
			if s.seen.Contains(int(l.Var())) {
				break
			}
		}

		nImplicationPoints--
		if nImplicationPoints <= 0 {
			break
		}
	}

	buf[0] = l.Opposite()
	s.analyzeBuf = buf

	minLevel := backtrackLevel
	for _, lit := range buf[1:] {
		if lv := s.level[lit.Var()]; lv < minLevel {
			minLevel = lv
		}
	}

	learned := s.minimizeLearned(buf, minLevel)
	return learned, backtrackLevel
}

// minimizeLearned implements spec §4.H step 3: drop every literal whose
// variable's reason closure bottoms out entirely in other marked variables
// or level-0 facts, since such a literal is subsumed by the rest of the
// clause and contributes nothing.
func (s *Solver) minimizeLearned(buf []Lit, minLevel int32) []Lit {
	out := s.minimizeOut[:0]
	out = append(out, buf[0])

	for _, lit := range buf[1:] {
		v := lit.Var()
		if s.reason[v].isNone() {
			out = append(out, lit)
			continue
		}
		if s.selfSubsumes(v, minLevel) {
			continue
		}
		out = append(out, lit)
	}

	s.minimizeOut = out
	return out
}

// selfSubsumes performs the reason closure of spec §4.H step 3 (depth-first,
// with an explicit stack) starting from v: it succeeds (v is redundant) only if every antecedent
// literal reached is either already marked, a level-0 fact, or itself
// closes successfully. Variables marked during a failed closure are
// unmarked again so they don't poison later minimization attempts;
// variables marked during a successful closure are left marked, merging
// into the main seen set the way the "preserve other minimizations"
// wording implies.
func (s *Solver) selfSubsumes(v Var, minLevel int32) bool {
	stack := s.minimizeStack[:0]
	touched := s.minimizeTouched[:0]
	stack = append(stack, v)

	ok := true
outer:
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		r := s.reason[cur]
		if r.isNone() {
			ok = false
			break
		}

		antecedent := s.explainAssign(cur, s.explainScratch2[:0])
		for _, q := range antecedent {
			w := q.Var()
			if s.seen.Contains(int(w)) {
				continue
			}
			if s.level[w] == 0 {
				continue
			}
			if s.level[w] < minLevel || s.reason[w].isNone() {
				ok = false
				break outer
			}
			s.seen.Add(int(w))
			touched = append(touched, w)
			stack = append(stack, w)
		}
	}

	if !ok {
		for _, w := range touched {
			s.seen.Remove(int(w))
		}
	}

	s.minimizeStack = stack[:0]
	s.minimizeTouched = touched[:0]
	return ok
}

// bumpVarActivity implements the vinc side of spec §4.G's activity update,
// rescaling every score (and vinc) once v's score passes
// fltActivityCeiling, then growing vinc by varDecay.
func (s *Solver) bumpVarActivity(v Var) {
	s.heap.bump(v, s.varInc)
	if s.heap.scoreOf(v).Compare(fltActivityCeiling) > 0 {
		s.heap.rescale(fltActivityRescale)
		s.varInc = s.varInc.Mul(fltActivityRescale)
	}
	s.varInc = s.varInc.Mul(s.varDecay)
}

// bumpClauseActivity implements the cinc side of spec §4.G for large learned
// clauses, rescaling every learned clause's activity when cinc overflows.
func (s *Solver) bumpClauseActivity(id ClauseID) {
	rec := s.db.at(id)
	if !rec.isLearned() || len(rec.lits) <= 2 {
		return
	}
	rec.activity = rec.activity.Add(s.clauseInc)
	if rec.activity.Compare(fltActivityCeiling) > 0 {
		s.rescaleClauseActivities(fltActivityRescale)
		s.clauseInc = s.clauseInc.Mul(fltActivityRescale)
	}
}

func (s *Solver) rescaleClauseActivities(factor Flt) {
	for i := range s.db.records {
		rec := &s.db.records[i]
		if rec.isLearned() {
			rec.activity = rec.activity.Mul(factor)
		}
	}
}

// learnClause finishes off a conflict (spec §4.H step 4-5): it emits the
// learned clause through the normal add_simplified_clause pipeline, which
// both stores it and assigns the UIP its reason once the trail is undone to
// the backjump level, and grows the clause-activity increment (clauseInc)
// by clauseDecayInv, so later bumps outweigh older ones when reduceDB ranks
// learned clauses.
func (s *Solver) learnClause(lits []Lit, backtrackLevel int32) {
	s.undoUntil(backtrackLevel)

	var zhain []int32
	if s.tracing {
		zhain = append([]int32(nil), s.zhainBuf...)
	}

	s.addedLits = append(s.addedLits[:0], lits...)
	s.addClauseLearnedFromBuffer(zhain)

	s.clauseInc = s.clauseInc.Mul(s.clauseDecayInv)
}
