package sat

import "sort"

// reduceDB implements learned-clause garbage collection (spec §4.J),
// sort learned clauses by activity and
// keep the most active ones, always keeping locked clauses (those that are
// some assigned literal's current reason, which must not be collected out
// from under an active implication). Flt has no division operator (it only
// ever needs Add/Mul to reproduce spec §4.A), so the usual per-clause
// "clauseInc / len(learnts)" floor is replaced with a fixed retention
// fraction of the most active three quarters; see DESIGN.md.
func (s *Solver) reduceDB() {
	ids := s.learnedIDs
	sort.Slice(ids, func(i, j int) bool {
		return s.db.at(ids[i]).activity.Compare(s.db.at(ids[j]).activity) > 0
	})

	keepFrom := len(ids) - len(ids)/4 // the least active quarter is eligible

	kept := ids[:0]
	for i, id := range ids {
		rec := s.db.at(id)
		if rec.flags.has(clauseLocked) || i < keepFrom {
			kept = append(kept, id)
			continue
		}
		s.removeLearnedClause(id, rec)
	}
	s.learnedIDs = kept
}

func (s *Solver) removeLearnedClause(id ClauseID, rec *clauseRecord) {
	s.disconnectWatches(id, rec)
	s.lclauses--
	s.db.freeRecord(id, &s.mem)
}

// simplify implements the root-level cleanup pass (spec §4.J "simplify
// pass"): a learned clause satisfied by a level-0 fact can never become
// unsatisfied again, so it is disconnected and freed. It works on the
// id-based clause store and is
// restricted to learned clauses, since original clauses are kept for Print
// round-tripping (spec §4.M) even once satisfied at level 0.
func (s *Solver) simplify() {
	kept := s.learnedIDs[:0]
	for _, id := range s.learnedIDs {
		rec := s.db.at(id)
		if s.clauseSatisfied(rec.lits) {
			s.removeLearnedClause(id, rec)
			continue
		}
		kept = append(kept, id)
	}
	s.learnedIDs = kept
}

func (s *Solver) clauseSatisfied(lits []Lit) bool {
	for _, l := range lits {
		if s.valueOf(l) == True {
			return true
		}
	}
	return false
}

// shouldReduce reports whether the learned-clause budget for the current
// reduction window has been exceeded, or the configurable byte ceiling has
// been crossed (spec §4.J).
func (s *Solver) shouldReduce() bool {
	if s.memoryCeiling > 0 && s.mem.currentBytes() >= s.memoryCeiling {
		return true
	}
	return int64(s.lclauses)-int64(len(s.trail)) >= s.reduceLimit
}
