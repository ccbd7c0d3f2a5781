package sat

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"testing"
)

func addClause(s *Solver, lits ...int) {
	for _, l := range lits {
		s.Add(l)
	}
	s.Add(0)
}

func TestSat_endToEndScenarios(t *testing.T) {
	tests := []struct {
		name string
		clauses [][]int
		want Status
	}{
		{
			name: "two variables, all four binary clauses",
			clauses: [][]int{
				{1, 2}, {-1, 2}, {1, -2}, {-1, -2},
			},
			want: Unsatisfiable,
		},
		{
			name: "implication chain ending in a negated unit",
			clauses: [][]int{
				{1, 2}, {-1, 3}, {-2, 3}, {-3},
			},
			want: Unsatisfiable,
		},
		{
			name: "exactly one of three, satisfiable",
			clauses: [][]int{
				{1, 2, 3}, {-1, -2}, {-2, -3}, {-1, -3},
			},
			want: Satisfiable,
		},
		{
			name: "unit propagation chain, satisfiable",
			clauses: [][]int{
				{1}, {-1, 2}, {-2, 3},
			},
			want: Satisfiable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := NewSolver()
			for _, c := range tc.clauses {
				addClause(s, c...)
			}
			got := s.Sat(-1)
			if got != tc.want {
				t.Fatalf("Sat = %v, want %v", got, tc.want)
			}
			if got == Satisfiable {
				for _, c := range tc.clauses {
					if !clauseHolds(s, c) {
						t.Errorf("model does not satisfy clause %v", c)
					}
				}
			}
		})
	}
}

func clauseHolds(s *Solver, lits []int) bool {
	for _, l := range lits {
		if s.Deref(l) > 0 {
			return true
		}
	}
	return false
}

func TestSat_unitChainExactValues(t *testing.T) {
	s := NewSolver()
	addClause(s, 1)
	addClause(s, -1, 2)
	addClause(s, -2, 3)

	if got := s.Sat(-1); got != Satisfiable {
		t.Fatalf("Sat = %v, want Satisfiable", got)
	}
	for _, v := range []int{1, 2, 3} {
		if got := s.Deref(v); got != 1 {
			t.Errorf("Deref(%d) = %d, want 1", v, got)
		}
	}
}

func TestSat_emptyFormula(t *testing.T) {
	s := NewSolver()
	if got := s.Sat(-1); got != Satisfiable {
		t.Fatalf("Sat on empty formula = %v, want Satisfiable", got)
	}
	if n := s.NumVariables(); n != 0 {
		t.Errorf("NumVariables = %d, want 0", n)
	}
}

func TestSat_singleEmptyClause(t *testing.T) {
	s := NewSolver()
	s.Add(0)
	if got := s.Sat(-1); got != Unsatisfiable {
		t.Fatalf("Sat on empty clause = %v, want Unsatisfiable", got)
	}
}

func TestSat_unitAndNegationConflictAtLevelZero(t *testing.T) {
	s := NewSolver()
	addClause(s, 1)
	addClause(s, -1)
	if got := s.Sat(-1); got != Unsatisfiable {
		t.Fatalf("Sat = %v, want Unsatisfiable", got)
	}
}

func TestDeref_unassignedBeyondMaxVar(t *testing.T) {
	s := NewSolver()
	addClause(s, 1)
	if got := s.Sat(-1); got != Satisfiable {
		t.Fatalf("Sat = %v, want Satisfiable", got)
	}
	if got := s.Deref(7); got != 0 {
		t.Errorf("Deref(7) = %d, want 0", got)
	}
}

func TestAdd_duplicateLiteralRemoved(t *testing.T) {
	s := NewSolver()
	addClause(s, 1, 1, 2)
	if got := len(s.originalBinaries); got != 1 {
		t.Errorf("clause {1, 1, 2} stored as %d binary clauses, want 1 (duplicate 1 dropped)", got)
	}
	if got := s.Sat(-1); got != Satisfiable {
		t.Fatalf("Sat = %v, want Satisfiable", got)
	}
}

func TestAdd_tautologyDiscarded(t *testing.T) {
	s := NewSolver()
	addClause(s, 1, -1)
	addClause(s, 2)
	addClause(s, -2)
	// The tautology (1 ∨ ¬1) must not be added; the formula is otherwise
	// UNSAT purely from the unit conflict on variable 2.
	if got := s.Sat(-1); got != Unsatisfiable {
		t.Fatalf("Sat = %v, want Unsatisfiable", got)
	}
}

func TestAssumeAndFailed(t *testing.T) {
	s := NewSolver()
	addClause(s, -1, 2)
	addClause(s, 1)

	s.Assume(-1)
	if got := s.Sat(-1); got != Unsatisfiable {
		t.Fatalf("Sat with failing assumption = %v, want Unsatisfiable", got)
	}
	if !s.Failed(-1) {
		t.Errorf("Failed(-1) = false, want true")
	}

	// A fresh Sat call without the assumption must succeed: Assume only
	// applies to the next call (spec §4.K).
	if got := s.Sat(-1); got != Satisfiable {
		t.Fatalf("Sat after assumption cleared = %v, want Satisfiable", got)
	}
}

func TestIncremental_addAfterSolveInvalidatesResult(t *testing.T) {
	s := NewSolver()
	addClause(s, 1, 2)
	if got := s.Sat(-1); got != Satisfiable {
		t.Fatalf("Sat = %v, want Satisfiable", got)
	}
	addClause(s, -1)
	addClause(s, -2)
	if got := s.Sat(-1); got != Unsatisfiable {
		t.Fatalf("Sat after adding conflicting clauses = %v, want Unsatisfiable", got)
	}
}

func TestPrint_roundTripsOriginalClauses(t *testing.T) {
	s := NewSolver()
	addClause(s, 1, 2, 3)
	addClause(s, -1, 2)
	addClause(s, 3)

	var buf fakeWriter
	if err := s.Print(&buf); err != nil {
		t.Fatalf("Print: %v", err)
	}
	if buf.n == 0 {
		t.Errorf("Print wrote nothing")
	}

	var out strings.Builder
	if err := s.Print(&out); err != nil {
		t.Fatalf("Print: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if lines[0] != "p cnf 3 3" {
		t.Errorf("Print header = %q, want %q", lines[0], "p cnf 3 3")
	}
	written := map[string]bool{}
	for _, line := range lines[1:] {
		fields := strings.Fields(line)
		lits := []int{}
		for _, f := range fields[:len(fields)-1] { // drop the 0 terminator
			n, err := strconv.Atoi(f)
			if err != nil {
				t.Fatalf("Print line %q: %v", line, err)
			}
			lits = append(lits, n)
		}
		sort.Ints(lits)
		written[fmt.Sprint(lits)] = true
	}
	for _, want := range [][]int{{1, 2, 3}, {-1, 2}, {3}} {
		if !written[fmt.Sprint(want)] {
			t.Errorf("Print output %q lacks clause %v", out.String(), want)
		}
	}
}

type fakeWriter struct{ n int }

func (f *fakeWriter) Write(p []byte) (int, error) {
	f.n += len(p)
	return len(p), nil
}

func TestSat_pigeonholeTwoIntoOneIsUnsatisfiable(t *testing.T) {
	// Two pigeons, one hole: each pigeon must take the hole, but not both.
	// Both units are assigned as they are added, so (¬1 ∨ ¬2) simplifies to
	// the empty clause before Sat searches at all.
	s := NewSolver()
	addClause(s, 1)
	addClause(s, 2)
	addClause(s, -1, -2)
	if got := s.Sat(-1); got != Unsatisfiable {
		t.Fatalf("Sat = %v, want Unsatisfiable", got)
	}
}

func TestSat_chainedImplicationsRefutedAtLevelZero(t *testing.T) {
	// The unit ¬5 propagates ¬1..¬4 at level 0, falsifying (1 ∨ 2 ∨ 3 ∨ 4)
	// before any decision is made.
	s := NewSolver()
	addClause(s, 1, 2, 3, 4)
	addClause(s, -1, 5)
	addClause(s, -2, 5)
	addClause(s, -3, 5)
	addClause(s, -4, 5)
	addClause(s, -5)
	if got := s.Sat(-1); got != Unsatisfiable {
		t.Fatalf("Sat = %v, want Unsatisfiable", got)
	}
}

func TestDeref_beforeSolve_isContractViolation(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("Deref before Sat: want panic, got none")
		}
		if _, ok := r.(*ContractError); !ok {
			t.Fatalf("Deref before Sat: panic = %v, want *ContractError", r)
		}
	}()
	s := NewSolver()
	addClause(s, 1)
	s.Deref(1)
}
