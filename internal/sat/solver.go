package sat

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
)

// Solver is a single incremental CDCL instance (spec §3). Every field here
// is named after the "Variable record" / "Large clause" / "Solver"
// tables; the struct-of-arrays layout (one slice per attribute rather than
// one slice of structs) keeps the hot loops (propagate, analyze) touching
// only the one or two attributes of many variables they actually need, not
// every attribute of one variable.
type Solver struct {
	// Variable tables, indexed by Var.
	level []int32
	reason []Reason
	phase []LBool
	flags []varFlag

	// Literal tables, indexed by Lit (2*Var + polarity).
	value []LBool
	jwh []Flt

	seen *resetSet
	heap *activityHeap
	db *clauseDB
	mem arena

	// Trail.
	trail []Lit
	trailLim []int32
	tail1 int // next unprocessed large-clause cursor
	tail2 int // next unprocessed binary-implication cursor
	conflict *conflictInfo

	unsat bool
	state solverState

	// Clause construction scratch (spec §4.D).
	addedLits []Lit
	dedupBuf map[Lit]bool

	// Original-clause bookkeeping, kept for Print/Core round-tripping.
	originalUnits []Lit
	originalBinaries [][2]Lit
	learnedIDs []ClauseID

	// Activity tuning (spec §4.G).
	varInc Flt
	varDecay Flt
	clauseInc Flt
	clauseDecayInv Flt

	// Restart/reduce scheduling (spec §4.I, §4.J).
	restartLimit int64
	conflictsSinceRestart int64
	reduceLimit int64

	// Decision heuristic scratch (spec §4.G).
	rngState uint64
	randomSpreadPct uint32

	// Incremental solving (spec §4.K).
	assumeQueue *Queue[Lit]
	assumptionLits []Lit
	failedAssumptions map[Lit]bool

	// Conflict analysis scratch (spec §4.H), pre-allocated and reused across
	// every analyze call rather than allocated fresh each time.
	analyzeBuf []Lit
	explainScratch []Lit
	explainScratch2 []Lit
	minimizeOut []Lit
	minimizeStack []Var
	minimizeTouched []Var
	zhainBuf []int32

	// Proof tracing (spec §4.L).
	tracing bool
	nextTraceID int32
	traceEntries map[int32]*traceEntry
	emptyClauseTrace int32
	unitTraceOf []int32

	// Statistics (spec §4.M, "external collaborator").
	oclauses int64
	olits uint64
	llits uint64
	lclauses int64
	fixed int64
	decisions int64
	conflicts int64
	restarts int64
	propagations int64
	startTime time.Time

	verbosity int
	output io.Writer
	log zerolog.Logger

	// memoryCeiling is the configurable byte ceiling (spec §4.J, Open
	// Question resolved in SPEC_FULL.md: exposed as runtime configuration
	// rather than PicoSAT's compile-time 1.3 GB constant) past which
	// shouldReduce forces a reduction regardless of the learned-clause-count
	// trigger. Zero means no byte-based trigger.
	memoryCeiling int64
}

// NewSolver returns a ready-to-use Solver with no variables and no clauses,
// the way picosat_init does.
func NewSolver() *Solver {
	s := &Solver{
		db: newClauseDB(),
		heap: newActivityHeap(),
		seen: &resetSet{},
		assumeQueue: NewQueue[Lit](8),
		failedAssumptions: make(map[Lit]bool),
		dedupBuf: make(map[Lit]bool),
		traceEntries: make(map[int32]*traceEntry),
		varInc: FltFromBase2(1, 0),
		varDecay: FltFromASCII("1.05"),
		clauseInc: FltFromBase2(1, 0),
		clauseDecayInv: FltFromASCII("1.001"),
		randomSpreadPct: 5,
		rngState: 1,
		output: io.Discard,
		log: zerolog.Nop(),
		startTime: time.Now(),
	}
	return s
}

var (
	fltActivityCeiling = FltFromBase2(fltMaxMantissa, 100)
	fltActivityRescale = FltFromBase2(1, -100)
)

// SetOutput directs diagnostic and statistics output, the way picosat_set_output
// does; it also upgrades the zerolog logger to write to the same sink.
func (s *Solver) SetOutput(w io.Writer) {
	s.output = w
	s.log = zerolog.New(w).With().Timestamp().Logger().Level(verbosityLevel(s.verbosity))
}

// EnableVerbosity sets the logging level (ambient "-v" flag, see
// SPEC_FULL.md): 0 is silent, higher values progressively enable info and
// debug-level search statistics.
func (s *Solver) EnableVerbosity(level int) {
	s.verbosity = level
	s.log = s.log.Level(verbosityLevel(level))
}

func verbosityLevel(v int) zerolog.Level {
	switch {
	case v <= 0:
		return zerolog.Disabled
	case v == 1:
		return zerolog.InfoLevel
	default:
		return zerolog.DebugLevel
	}
}

// SetSeed reseeds the decision-phase LCG (spec §4.G), the way picosat_set_seed
// reseeds PicoSAT's own RNG.
func (s *Solver) SetSeed(seed uint64) {
	if seed == 0 {
		seed = 1
	}
	s.rngState = seed
}

// SetVarDecay and SetClauseDecay override the default activity growth
// factors, read from the --config file's [activity] table. The variable
// increment is multiplied by its factor (default 1.05) after every variable
// bump, not once per conflict; the clause increment by its factor (default
// 1.001) once per learned clause.
func (s *Solver) SetVarDecay(f Flt) { s.varDecay = f }
func (s *Solver) SetClauseDecay(f Flt) { s.clauseDecayInv = f }

// SetMemoryCeiling sets the byte budget that forces a learned-clause
// reduction independently of the learned-clause-count trigger (spec §4.J); 0
// disables the byte-based trigger.
func (s *Solver) SetMemoryCeiling(bytes int64) { s.memoryCeiling = bytes }

// Variables returns every currently declared variable, 1-based DIMACS
// numbering, in ascending order.
func (s *Solver) Variables() []int {
	out := make([]int, s.NumVariables())
	for i := range out {
		out[i] = i + 1
	}
	return out
}

// AddedOriginalClauses returns the number of original (non-learned) clauses
// added so far, matching picosat_added_original_clauses.
func (s *Solver) AddedOriginalClauses() int { return int(s.oclauses) }

// Conflicts, Decisions, Restarts and Propagations expose the search
// counters of spec §4.M for external reporting (picosat_stats).
func (s *Solver) Conflicts() int64 { return s.conflicts }
func (s *Solver) Decisions() int64 { return s.decisions }
func (s *Solver) Restarts() int64 { return s.restarts }
func (s *Solver) Propagations() int64 { return s.propagations }

// MaxBytesAllocated returns the high-water mark of clause-arena memory.
func (s *Solver) MaxBytesAllocated() int64 { return s.mem.maxBytes() }

// Seconds returns the wall-clock time elapsed since the solver was created.
func (s *Solver) Seconds() float64 { return time.Since(s.startTime).Seconds() }

// TimeStamp is an alias of Seconds kept for parity with picosat_time_stamp,
// which samples the clock without the side effect of resetting anything.
func (s *Solver) TimeStamp() float64 { return s.Seconds() }

// Deref returns the DIMACS-style truth value of lit in the current
// assignment: 1 true, -1 false, 0 unknown. Valid only after a Sat call has
// returned Satisfiable or Unsatisfiable (spec §6): calling it before any
// solve, or while a later Add/Assume has invalidated the previous result,
// is a contract violation.
func (s *Solver) Deref(lit int) int {
	if s.state != stateSatisfiable && s.state != stateUnsatisfiable {
		contractViolation("Deref", "no completed Sat call to derive a value from")
	}
	v := Var(absInt(lit) - 1)
	if v < 0 || int(v) >= s.NumVariables() {
		return 0
	}
	l := s.litFromDimacs(lit)
	switch s.valueOf(l) {
	case True:
		return 1
	case False:
		return -1
	default:
		return 0
	}
}

// Sat runs the CDCL search loop (spec §4.M) until the formula (together
// with any staged assumptions) is decided, or limit decisions have been
// made without a verdict (limit <= 0 means unlimited, matching
// picosat_sat's -1 convention). It is the single place decide, propagate,
// analyze, restart and reduce are wired together; every other file in this
// package implements one piece this loop calls.
func (s *Solver) Sat(limit int) Status {
	if s.state != stateSatisfiable && s.state != stateUnsatisfiable {
		s.initRestartSchedule()
	}
	s.resetAssumptions()

	if s.unsat {
		s.state = stateUnsatisfiable
		return Unsatisfiable
	}

	iterations := 0
	for {
		s.propagate()

		if s.hasConflict() {
			s.conflicts++
			s.conflictsSinceRestart++

			if s.decisionLevel() == 0 {
				s.unsat = true
				s.undoUntil(0)
				s.state = stateUnsatisfiable
				return Unsatisfiable
			}

			learned, backtrackLevel := s.analyze()
			s.learnClause(learned, backtrackLevel)
			if s.unsat {
				s.state = stateUnsatisfiable
				return Unsatisfiable
			}
			continue
		}

		if limit > 0 && iterations >= limit {
			s.state = stateUnknown
			return Unknown
		}

		if s.shouldRestart() {
			s.log.Debug().Int64("conflicts", s.conflicts).Msg("restart")
			s.restart()
			continue
		}

		if s.decisionLevel() == 0 {
			s.simplify()
		}

		if s.shouldReduce() {
			s.log.Debug().Int("learned", len(s.learnedIDs)).Msg("reduce")
			s.reduceDB()
		}

		lit, ok := s.decide()
		if !ok {
			if len(s.failedAssumptions) > 0 {
				s.undoUntil(0)
				s.state = stateUnsatisfiable
				return Unsatisfiable
			}
			s.state = stateSatisfiable
			return Satisfiable
		}

		iterations++
		s.pushDecision(lit)
	}
}

// Print writes every original clause still in the database in DIMACS CNF
// form, the round-trip feature of spec §4.M's "external collaborator":
// parse a formula, add it, and be able to write back out exactly what was
// asserted.
func (s *Solver) Print(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", s.NumVariables(), s.countOriginalClauses())

	for _, l := range s.originalUnits {
		fmt.Fprintf(bw, "%d 0\n", dimacsLit(l))
	}
	for _, b := range s.originalBinaries {
		fmt.Fprintf(bw, "%d %d 0\n", dimacsLit(b[0]), dimacsLit(b[1]))
	}
	for i := 1; i < len(s.db.records); i++ {
		rec := &s.db.records[i]
		if rec.isCollected() || rec.isLearned() {
			continue
		}
		for _, l := range rec.lits {
			fmt.Fprintf(bw, "%d ", dimacsLit(l))
		}
		fmt.Fprintln(bw, "0")
	}
	return bw.Flush()
}

func (s *Solver) countOriginalClauses() int {
	n := len(s.originalUnits) + len(s.originalBinaries)
	for i := 1; i < len(s.db.records); i++ {
		rec := &s.db.records[i]
		if !rec.isCollected() && !rec.isLearned() {
			n++
		}
	}
	return n
}
