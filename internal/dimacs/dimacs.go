// Package dimacs streams a DIMACS CNF file into anything that accepts
// clauses one literal at a time, the incremental convention sat.Solver.Add
// follows, so that large benchmark instances never need to be held in
// memory as a parsed clause list.
package dimacs

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	extdimacs "github.com/rhartert/dimacs"
)

// Adder accepts one DIMACS literal at a time, a 0 terminating the clause
// under construction.
type Adder interface {
	Add(lit int)
}

// Header is the parsed "p cnf <vars> <clauses>" line.
type Header struct {
	Variables int
	Clauses int
}

func openReader(filename string, gzipped bool) (io.ReadCloser, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	if !gzipped && !strings.HasSuffix(filename, ".gz") {
		return file, nil
	}
	gz, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return gz, nil
}

// LoadDIMACS opens filename (transparently gunzipping it when gzipped is
// true or the name ends in ".gz") and streams it into dw. force selects the
// tolerant scanner documented on LoadReader.
func LoadDIMACS(filename string, gzipped bool, force bool, dw Adder) (Header, error) {
	r, err := openReader(filename, gzipped)
	if err != nil {
		return Header{}, fmt.Errorf("opening %q: %w", filename, err)
	}
	defer r.Close()
	return LoadReader(r, force, dw)
}

// adderBuilder adapts an Adder to the github.com/rhartert/dimacs Builder
// interface, the parsing library this package delegates the well-formed
// (non-force) path to.
type adderBuilder struct {
	dw Adder
	hdr Header
}

func (b *adderBuilder) Problem(problem string, nVars, nClauses int) error {
	if problem != "cnf" {
		return fmt.Errorf("unsupported problem type %q, want cnf", problem)
	}
	b.hdr = Header{Variables: nVars, Clauses: nClauses}
	return nil
}

func (b *adderBuilder) Comment(string) error { return nil }

func (b *adderBuilder) Clause(lits []int) error {
	for _, l := range lits {
		b.dw.Add(l)
	}
	b.dw.Add(0)
	return nil
}

// LoadReader streams DIMACS CNF text from r into dw. When force is false,
// parsing is delegated to github.com/rhartert/dimacs's strict reader. When
// force is true (picosat_init's "-f" mode), a tolerant line scanner is used
// instead: a missing or malformed "p cnf" line, or an unparseable literal
// token, is skipped rather than rejected, so that corrupted competition
// instances still load as much of the formula as possible.
func LoadReader(r io.Reader, force bool, dw Adder) (Header, error) {
	if !force {
		b := &adderBuilder{dw: dw}
		if err := extdimacs.ReadBuilder(r, b); err != nil {
			return b.hdr, err
		}
		return b.hdr, nil
	}
	return loadForce(r, dw)
}

func loadForce(r io.Reader, dw Adder) (Header, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16<<20)

	var hdr Header
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == 'c' {
			continue
		}
		if line[0] == 'p' {
			parts := strings.Fields(line)
			if len(parts) >= 4 && parts[1] == "cnf" {
				hdr.Variables, _ = strconv.Atoi(parts[2])
				hdr.Clauses, _ = strconv.Atoi(parts[3])
			}
			continue
		}
		for _, p := range strings.Fields(line) {
			lit, err := strconv.Atoi(p)
			if err != nil {
				continue
			}
			dw.Add(lit)
		}
	}
	return hdr, scanner.Err()
}
