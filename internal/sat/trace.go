package sat

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// traceEntry is one node of the resolution DAG spec §4.L builds while
// learning clauses: either the literals of a clause supplied directly (an
// original, unsimplified input clause), or the ids of the antecedent
// clauses resolved together to derive it, compressed the way the original
// zhain does (as a run of small deltas against a running id, since
// antecedents are almost always clauses learned recently) -- here kept as a
// plain slice, since Go's GC makes the original's hand-rolled byte-packing
// a poor fit; the interesting property readers care about (one entry per
// resolution step, in the order they were resolved) is preserved. An entry
// has lits set xor antecedents set: a clause is either asserted outright or
// derived, never both.
type traceEntry struct {
	lits []Lit
	antecedents []int32
	core bool
}

// registerTrace allocates a fresh trace id for a clause about to be
// recorded. learned clauses (those derived by resolution, including an
// input clause simplified against a level-0 fact) file away zhain as their
// antecedents; anything else files away its own literals, so Trace can
// print it as a leaf rather than a derivation. Returns 0, a no-op id, when
// tracing is disabled.
func (s *Solver) registerTrace(lits []Lit, zhain []int32, learned bool) int32 {
	if !s.tracing {
		return 0
	}
	s.nextTraceID++
	id := s.nextTraceID
	e := &traceEntry{}
	if learned {
		e.antecedents = zhain
	} else {
		e.lits = append([]Lit(nil), lits...)
	}
	s.traceEntries[id] = e
	return id
}

// EnableTraceGeneration turns on the bookkeeping needed for Trace and Core.
// It must be called before any clause is added; it is a no-op otherwise
// the way picosat_enable_trace_generation documents.
func (s *Solver) EnableTraceGeneration() {
	if s.addedOriginalClauses() > 0 {
		return
	}
	s.tracing = true
	if s.traceEntries == nil {
		s.traceEntries = make(map[int32]*traceEntry)
	}
}

func (s *Solver) addedOriginalClauses() int { return int(s.oclauses) }

// markCore walks the resolution DAG backward from the empty clause,
// flagging every clause and unit fact on the path to an input clause -- the
// unsatisfiable core. The empty clause is its only root: an unsat result
// caused by failed assumptions marks nothing.
func (s *Solver) markCore() {
	if !s.tracing {
		return
	}
	roots := []int32{s.emptyClauseTrace}
	visited := make(map[int32]bool)
	for len(roots) > 0 {
		id := roots[len(roots)-1]
		roots = roots[:len(roots)-1]
		if id == 0 || visited[id] {
			continue
		}
		visited[id] = true
		e, ok := s.traceEntries[id]
		if !ok {
			continue
		}
		e.core = true
		roots = append(roots, e.antecedents...)
	}
}

// Trace writes every core-flagged clause's resolution step, one per line,
// in the DIMACS "trace" format PicoSAT's -T option produces: an input
// clause is written "<id> <lits...> 0 0", a clause derived by resolution
// (whether conflict-learned or an input clause simplified against a level-0
// fact) is written "<id> * <antecedent ids...> 0".
func (s *Solver) Trace(w io.Writer) error {
	if !s.tracing {
		contractViolation("Trace", "trace generation was not enabled before the first clause")
	}
	if s.state != stateUnsatisfiable {
		contractViolation("Trace", "only valid after a Sat call returns Unsatisfiable")
	}
	s.markCore()
	bw := bufio.NewWriter(w)
	ids := make([]int32, 0, len(s.traceEntries))
	for id, e := range s.traceEntries {
		if e.core {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		e := s.traceEntries[id]
		if e.lits != nil {
			fmt.Fprintf(bw, "%d", id)
			for _, l := range e.lits {
				fmt.Fprintf(bw, " %d", dimacsLit(l))
			}
			fmt.Fprintln(bw, " 0 0")
			continue
		}
		fmt.Fprintf(bw, "%d *", id)
		for _, a := range e.antecedents {
			fmt.Fprintf(bw, " %d", a)
		}
		fmt.Fprintln(bw, " 0")
	}
	return bw.Flush()
}

// Core writes the DIMACS clauses that are part of the unsatisfiable core:
// every original clause whose trace id is reachable from the empty clause.
func (s *Solver) Core(w io.Writer) error {
	if !s.tracing {
		contractViolation("Core", "trace generation was not enabled before the first clause")
	}
	if s.state != stateUnsatisfiable {
		contractViolation("Core", "only valid after a Sat call returns Unsatisfiable")
	}
	s.markCore()
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", s.NumVariables(), s.countCoreClauses())
	for _, rec := range s.originalClauseLits() {
		for _, l := range rec {
			fmt.Fprintf(bw, "%d ", dimacsLit(l))
		}
		fmt.Fprintln(bw, "0")
	}
	return bw.Flush()
}

func (s *Solver) countCoreClauses() int {
	n := 0
	for range s.originalClauseLits() {
		n++
	}
	return n
}

// originalClauseLits enumerates the literal slices of every core-flagged
// original (non-learned) clause, whatever shape it is stored in: units and
// binaries never get a clauseRecord, so they are walked from the same
// originalUnits/originalBinaries slices Print uses.
func (s *Solver) originalClauseLits() [][]Lit {
	var out [][]Lit
	for _, l := range s.originalUnits {
		if e, ok := s.traceEntries[s.unitTraceOf[l.Var()]]; ok && e.core {
			out = append(out, []Lit{l})
		}
	}
	for _, b := range s.originalBinaries {
		if tid := s.db.implTraceID(b[0], b[1]); tid != 0 {
			if e, ok := s.traceEntries[tid]; ok && e.core {
				out = append(out, []Lit{b[0], b[1]})
			}
		}
	}
	for i := 1; i < len(s.db.records); i++ {
		rec := &s.db.records[i]
		if rec.isCollected() || rec.isLearned() {
			continue
		}
		if e, ok := s.traceEntries[rec.traceID]; ok && e.core {
			out = append(out, rec.lits)
		}
	}
	return out
}

func dimacsLit(l Lit) int {
	v := int(l.Var()) + 1
	if l.IsPositive() {
		return v
	}
	return -v
}
