package dimacs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// recorder collects the literals and clause boundaries Load streams into it,
// so tests can assert on the clause shape without a full sat.Solver.
type recorder struct {
	clauses [][]int
	current []int
}

func (r *recorder) Add(lit int) {
	if lit == 0 {
		r.clauses = append(r.clauses, r.current)
		r.current = nil
		return
	}
	r.current = append(r.current, lit)
}

var wantClauses = [][]int{
	{1, 2, 3},
	{-1, -2},
	{2, -3},
}

func TestLoadDIMACS_cnf(t *testing.T) {
	got := &recorder{}
	hdr, err := LoadDIMACS("testdata/test_instance.cnf", false, false, got)
	if err != nil {
		t.Fatalf("LoadDIMACS: want no error, got %s", err)
	}
	if hdr.Variables != 3 || hdr.Clauses != 3 {
		t.Errorf("LoadDIMACS: header = %+v, want {3 3}", hdr)
	}
	if diff := cmp.Diff(wantClauses, got.clauses); diff != "" {
		t.Errorf("LoadDIMACS: mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACS_gzip(t *testing.T) {
	got := &recorder{}
	_, err := LoadDIMACS("testdata/test_instance.cnf.gz", true, false, got)
	if err != nil {
		t.Fatalf("LoadDIMACS: want no error, got %s", err)
	}
	if diff := cmp.Diff(wantClauses, got.clauses); diff != "" {
		t.Errorf("LoadDIMACS: mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadDIMACS_noFile(t *testing.T) {
	got := &recorder{}
	_, err := LoadDIMACS("testdata/does-not-exist.cnf", false, false, got)
	if err == nil {
		t.Errorf("LoadDIMACS: want error, got none")
	}
}

func TestLoadDIMACS_gzip_notGzipFile(t *testing.T) {
	got := &recorder{}
	_, err := LoadDIMACS("testdata/test_instance.cnf", true, false, got)
	if err == nil {
		t.Errorf("LoadDIMACS: want error, got none")
	}
}

func TestLoadReader_malformedHeaderRejected(t *testing.T) {
	got := &recorder{}
	_, err := LoadReader(strings.NewReader("p bad 3 3\n1 2 0\n"), false, got)
	if err == nil {
		t.Errorf("LoadReader: want error for malformed header, got none")
	}
}

func TestLoadReader_forceModeTolerance(t *testing.T) {
	got := &recorder{}
	src := "p bad header garbage\n1 2 x 3 0\n-1 -2 0\n"
	_, err := LoadReader(strings.NewReader(src), true, got)
	if err != nil {
		t.Fatalf("LoadReader(force): want no error, got %s", err)
	}
	want := [][]int{{1, 2, 3}, {-1, -2}}
	if diff := cmp.Diff(want, got.clauses); diff != "" {
		t.Errorf("LoadReader(force): mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadReader_commentsAndBlankLines(t *testing.T) {
	got := &recorder{}
	src := "c header comment\np cnf 2 1\nc a clause comment\n\n1 -2 0\n"
	hdr, err := LoadReader(strings.NewReader(src), false, got)
	if err != nil {
		t.Fatalf("LoadReader: want no error, got %s", err)
	}
	if hdr.Variables != 2 || hdr.Clauses != 1 {
		t.Errorf("LoadReader: header = %+v, want {2 1}", hdr)
	}
	want := [][]int{{1, -2}}
	if diff := cmp.Diff(want, got.clauses); diff != "" {
		t.Errorf("LoadReader: mismatch (-want +got):\n%s", diff)
	}
}
