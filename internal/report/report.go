// Package report formats solver statistics and satisfying assignments the
// way the CLI driver prints them, kept separate from internal/sat because
// the core engine has no notion of an output format, only of io.Writer
// sinks for logging, trace and core output (spec.md's "external
// collaborator" carve-out for statistics reporting).
package report

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/rhartert/picosolve/internal/sat"
)

// Summary writes the picosat_stats-style block of solver counters that
// picosolve prints after every run: variables, original clauses, search
// effort and timing.
func Summary(w io.Writer, s *sat.Solver, elapsed time.Duration) {
	fmt.Fprintf(w, "c variables: %d\n", s.NumVariables())
	fmt.Fprintf(w, "c original: %d\n", s.AddedOriginalClauses())
	fmt.Fprintf(w, "c conflicts: %d\n", s.Conflicts())
	fmt.Fprintf(w, "c decisions: %d\n", s.Decisions())
	fmt.Fprintf(w, "c restarts: %d\n", s.Restarts())
	fmt.Fprintf(w, "c propagations: %d\n", s.Propagations())
	fmt.Fprintf(w, "c max bytes: %d\n", s.MaxBytesAllocated())
	fmt.Fprintf(w, "c seconds: %.3f\n", elapsed.Seconds())
	if elapsed > 0 {
		fmt.Fprintf(w, "c conflicts/sec: %.1f\n", float64(s.Conflicts())/elapsed.Seconds())
	}
}

// Status writes the DIMACS-style one-line verdict ("s SATISFIABLE" etc.).
func Status(w io.Writer, status sat.Status) {
	fmt.Fprintf(w, "s %s\n", status.String())
}

// Model writes the satisfying assignment as "v <lits> 0" lines wrapped to
// roughly 80 columns, the format the DIMACS output convention and
// picosat's own -v0 model dump both use.
func Model(w io.Writer, s *sat.Solver) error {
	bw := bufio.NewWriter(w)
	const width = 78

	fmt.Fprint(bw, "v")
	col := 1
	for _, v := range s.Variables() {
		val := s.Deref(v)
		lit := v
		if val < 0 {
			lit = -v
		}
		tok := fmt.Sprintf(" %d", lit)
		if col+len(tok) > width {
			fmt.Fprint(bw, "\nv")
			col = 1
		}
		fmt.Fprint(bw, tok)
		col += len(tok)
	}
	fmt.Fprint(bw, " 0\n")
	return bw.Flush()
}
