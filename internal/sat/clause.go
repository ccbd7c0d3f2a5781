package sat

import "sort"

// addClauseFromBuffer implements add_simplified_clause (spec §4.D). It
// consumes the staged literal buffer (s.addedLits, filled by Add/record),
// simplifies it, and either commits a binary implication, a large clause, an
// immediate unit assignment, or discards a trivially satisfied clause.
func (s *Solver) addClauseFromBuffer(learned bool) {
	lits := s.addedLits
	var zhain []int32

	if !learned {
		seen := s.dedupBuf
		for k := range seen {
			delete(seen, k)
		}

		out := lits[:0]
		droppedFalse := false
		for _, l := range lits {
			if seen[l.Opposite()] {
				s.addedLits = lits[:0]
				return // tautological clause: trivially satisfied
			}
			if seen[l] {
				continue // duplicate literal
			}
			seen[l] = true

			switch s.valueOf(l) {
			case True:
				s.addedLits = lits[:0]
				return // trivially satisfied
			case False:
				droppedFalse = true
				if s.tracing {
					zhain = append(zhain, s.traceIDForVar(l.Var()))
				}
				continue // drop top-level-false literal
			default:
				out = append(out, l)
			}
		}
		lits = out

		if droppedFalse {
			// Step 3: the clause contained a literal resolved away by a
			// level-0 fact. Dropping a currently-false literal never
			// changes satisfiability, so the simplification above already
			// performed the resolution; the clause is recorded as derived
			// (learned) rather than a pristine input clause.
			learned = true
		}
	}

	sort.Slice(lits, func(i, j int) bool { return s.watchOrderLess(lits[i], lits[j]) })
	s.addedLits = lits[:0]
	s.recordClause(lits, learned, zhain)
}

// addClauseLearnedFromBuffer commits a clause produced by conflict analysis,
// which analyze.go has already simplified; its literals are sorted into
// watch order here.
func (s *Solver) addClauseLearnedFromBuffer(zhain []int32) {
	lits := s.addedLits
	sort.Slice(lits, func(i, j int) bool { return s.watchOrderLess(lits[i], lits[j]) })
	s.addedLits = lits[:0]
	s.recordClause(lits, true, zhain)
}

// traceIDForVar returns the trace id of the clause that forced v's current
// value, used to stitch a level-0 simplification into the resolution DAG. A
// reasonless assignment is a unit fact staged directly through Add rather
// than derived by propagation, so its id comes from unitTraceOf instead.
func (s *Solver) traceIDForVar(v Var) int32 {
	r := s.reason[v]
	switch {
	case r.isNone():
		return s.unitTraceOf[v]
	case r.isBinary():
		return s.db.implTraceID(r.literal().Opposite(), s.litOf(v))
	default:
		return s.db.at(r.clauseID()).traceID
	}
}

// watchOrderLess implements the clause-literal ordering of spec §4.D step 2:
// UNDEF literals first (larger variable index first), then FALSE literals by
// (smaller activity, higher level, smaller index).
func (s *Solver) watchOrderLess(a, b Lit) bool {
	va, vb := s.valueOf(a), s.valueOf(b)
	if (va == Undef) != (vb == Undef) {
		return va == Undef
	}
	if va == Undef {
		return a.Var() > b.Var()
	}
	sa, sb := s.heap.scoreOf(a.Var()), s.heap.scoreOf(b.Var())
	if c := sa.Compare(sb); c != 0 {
		return c < 0
	}
	la, lb := s.level[a.Var()], s.level[b.Var()]
	if la != lb {
		return la > lb
	}
	return a.Var() < b.Var()
}

// recordClause implements spec §4.D steps 4-6: stores the clause in its
// final shape (binary implication, large clause, unit fact, or the empty
// clause) and checks it for an immediate conflict or unit propagation.
func (s *Solver) recordClause(lits []Lit, learned bool, zhain []int32) ClauseID {
	var tid int32
	if s.tracing {
		tid = s.registerTrace(lits, zhain, learned)
	}

	switch len(lits) {
	case 0:
		if !learned {
			s.oclauses++
		}
		s.unsat = true
		s.emptyClauseTrace = tid
		return 0

	case 1:
		s.unitTraceOf[lits[0].Var()] = tid
		if !learned {
			s.originalUnits = append(s.originalUnits, lits[0])
			s.oclauses++
			s.olits++
		}
		s.enqueue(lits[0], noReason)
		return 0

	case 2:
		s.db.addImpl(lits[0], lits[1], tid)
		if !learned {
			s.bumpJW(lits[0], 2)
			s.bumpJW(lits[1], 2)
			s.oclauses++
			s.olits += 2
			s.originalBinaries = append(s.originalBinaries, [2]Lit{lits[0], lits[1]})
		} else {
			s.llits += 2
		}
		s.checkImplicationForConflictOrUnit(lits[0], lits[1])
		return 0

	default:
		id := s.db.newRecord(lits, learned, &s.mem)
		rec := s.db.at(id)
		rec.traceID = tid

		if learned {
			s.orderLearnedWatch(rec)
		} else {
			s.bumpJWClause(rec.lits)
			s.oclauses++
			s.olits += uint64(len(rec.lits))
		}
		if learned {
			s.lclauses++
			s.llits += uint64(len(rec.lits))
			s.learnedIDs = append(s.learnedIDs, id)
		}

		s.connectWatches(id, rec)
		s.checkClauseForConflictOrUnit(id, rec)

		if learned {
			s.bumpClauseActivity(id)
		}
		return id
	}
}

// orderLearnedWatch swaps the literal with the highest decision level among
// lits[1:] into position 1, so the two watched literals of a freshly learned
// clause are the asserting (UIP) literal and the most-recently-falsified
// literal — the pair the two-watched-literal invariant requires right after
// a backjump.
func (s *Solver) orderLearnedWatch(rec *clauseRecord) {
	maxLevel := int32(-1)
	wl := -1
	for i := 1; i < len(rec.lits); i++ {
		if lv := s.level[rec.lits[i].Var()]; lv > maxLevel {
			maxLevel = lv
			wl = i
		}
	}
	if wl > 0 {
		rec.lits[wl], rec.lits[1] = rec.lits[1], rec.lits[wl]
	}
}

func (s *Solver) connectWatches(id ClauseID, rec *clauseRecord) {
	rec.flags |= clauseConnected
	s.db.watch(id, rec.lits[0].Opposite(), rec.lits[1])
	s.db.watch(id, rec.lits[1].Opposite(), rec.lits[0])
}

func (s *Solver) disconnectWatches(id ClauseID, rec *clauseRecord) {
	if !rec.flags.has(clauseConnected) {
		return
	}
	rec.flags &^= clauseConnected
	s.db.unwatch(id, rec.lits[0].Opposite())
	s.db.unwatch(id, rec.lits[1].Opposite())
}

func (s *Solver) checkClauseForConflictOrUnit(id ClauseID, rec *clauseRecord) {
	lits := rec.lits
	switch s.valueOf(lits[0]) {
	case False:
		s.latchConflictClause(id)
	case Undef:
		for _, l := range lits[1:] {
			if s.valueOf(l) != False {
				return
			}
		}
		s.enqueue(lits[0], clauseReason(id))
	}
}

func (s *Solver) checkImplicationForConflictOrUnit(a, b Lit) {
	va, vb := s.valueOf(a), s.valueOf(b)
	switch {
	case va == True || vb == True:
		return
	case va == False && vb == False:
		s.latchConflictBinary(a, b, s.db.implTraceID(a, b))
	case va == False && vb == Undef:
		s.enqueue(b, binaryReason(a.Opposite()))
	case vb == False && va == Undef:
		s.enqueue(a, binaryReason(b.Opposite()))
	}
}

func (s *Solver) bumpJW(l Lit, size int) {
	s.jwh[l] = s.jwh[l].Add(FltFromBase2(1, -size))
}

func (s *Solver) bumpJWClause(lits []Lit) {
	for _, l := range lits {
		s.bumpJW(l, len(lits))
	}
}
