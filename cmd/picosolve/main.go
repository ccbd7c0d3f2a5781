// Command picosolve is the CLI driver for the picosolve CDCL SAT engine: it
// parses a DIMACS CNF instance, runs the solver, and prints the verdict,
// model, statistics, trace and/or core the flags below ask for.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/rhartert/picosolve/internal/dimacs"
	"github.com/rhartert/picosolve/internal/report"
	"github.com/rhartert/picosolve/internal/sat"
)

// version is overridden at release-build time via -ldflags.
var version = "dev"

var (
	flagVersion = flag.Bool("version", false, "print version and exit")
	flagConfig = flag.String("config", "", "TOML file of tunable constants (see SPEC_FULL.md §2)")
	flagVerbosity = flag.Int("v", 0, "verbosity level (0 silent, 1 info, 2+ debug)")
	flagForce = flag.Bool("f", false, "force mode: tolerate a malformed DIMACS header/literals")
	flagNoAssign = flag.Bool("n", false, "suppress printing the satisfying assignment")
	flagLimit = flag.Int("l", -1, "decision limit (-1 unlimited)")
	flagSeed = flag.Uint64("s", 0, "RNG seed (0 keeps the default)")
	flagOutputPath = flag.String("o", "", "write output to this path instead of stdout")
	flagTracePath = flag.String("t", "", "write a resolution trace to this path (requires UNSAT)")
	flagCorePath = flag.String("c", "", "write the unsatisfiable core to this path (requires UNSAT)")
)

// assumptionList collects every -a flag occurrence, since flag.Var is the
// stdlib's documented way to accept a flag multiple times.
type assumptionList []int

func (a *assumptionList) String() string { return fmt.Sprint([]int(*a)) }

func (a *assumptionList) Set(s string) error {
	var lit int
	if _, err := fmt.Sscanf(s, "%d", &lit); err != nil {
		return fmt.Errorf("invalid assumption literal %q: %w", s, err)
	}
	*a = append(*a, lit)
	return nil
}

var flagAssumptions assumptionList

func init() {
	flag.Var(&flagAssumptions, "a", "assumption literal (repeatable)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: picosolve [flags] <instance.cnf>[.gz]\n\n")
		flag.PrintDefaults()
	}
}

// tunables mirrors the [activity]/[memory] tables a --config TOML
// file may override (memory-ceiling Open Question, resolved in
// SPEC_FULL.md as runtime configuration rather than a compile-time constant).
type tunables struct {
	Activity struct {
		VarDecay string `toml:"var_decay"`
		ClauseDecay string `toml:"clause_decay"`
	} `toml:"activity"`
	Memory struct {
		CeilingBytes int64 `toml:"ceiling_bytes"`
	} `toml:"memory"`
}

func loadConfig(path string) (tunables, error) {
	var cfg tunables
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

func openOutput(path string) (*os.File, func(), error) {
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// run parses the flags, loads the instance, solves it and writes the
// requested outputs, returning the process exit code. The sat.ContractError
// panics of spec.md §7.1's programmer-error regime are not caught here:
// main recovers them, printing a diagnostic on stderr and exiting with 1.
func run() (exitCode int, err error) {
	flag.Parse()

	if *flagVersion {
		fmt.Printf("picosolve %s\n", version)
		return 0, nil
	}
	if flag.NArg() != 1 {
		flag.Usage()
		return 1, fmt.Errorf("expected exactly one instance path")
	}

	cfg, err := loadConfig(*flagConfig)
	if err != nil {
		return 1, fmt.Errorf("loading config: %w", err)
	}

	out, closeOut, err := openOutput(*flagOutputPath)
	if err != nil {
		return 1, fmt.Errorf("opening output: %w", err)
	}
	defer closeOut()

	s := sat.NewSolver()
	s.SetOutput(out)
	s.EnableVerbosity(*flagVerbosity)
	if *flagSeed != 0 {
		s.SetSeed(*flagSeed)
	}
	if cfg.Activity.VarDecay != "" {
		s.SetVarDecay(sat.FltFromASCII(cfg.Activity.VarDecay))
	}
	if cfg.Activity.ClauseDecay != "" {
		s.SetClauseDecay(sat.FltFromASCII(cfg.Activity.ClauseDecay))
	}
	if cfg.Memory.CeilingBytes > 0 {
		s.SetMemoryCeiling(cfg.Memory.CeilingBytes)
	}
	if *flagTracePath != "" || *flagCorePath != "" {
		s.EnableTraceGeneration()
	}

	instancePath := flag.Arg(0)
	hdr, err := dimacs.LoadDIMACS(instancePath, strings.HasSuffix(instancePath, ".gz"), *flagForce, s)
	if err != nil {
		return 1, fmt.Errorf("parsing %q: %w", instancePath, err)
	}
	fmt.Fprintf(out, "c picosolve %s\n", version)
	fmt.Fprintf(out, "c instance: %s\n", instancePath)
	fmt.Fprintf(out, "c header: p cnf %d %d\n", hdr.Variables, hdr.Clauses)

	for _, lit := range flagAssumptions {
		s.Assume(lit)
	}

	start := time.Now()
	status := s.Sat(*flagLimit)
	elapsed := time.Since(start)

	report.Summary(out, s, elapsed)
	report.Status(out, status)

	if status == sat.Satisfiable && !*flagNoAssign {
		if err := report.Model(out, s); err != nil {
			return 1, fmt.Errorf("writing model: %w", err)
		}
	}

	if status == sat.Unsatisfiable {
		if *flagTracePath != "" {
			if err := writeTo(*flagTracePath, s.Trace); err != nil {
				return 1, fmt.Errorf("writing trace: %w", err)
			}
		}
		if *flagCorePath != "" {
			if err := writeTo(*flagCorePath, s.Core); err != nil {
				return 1, fmt.Errorf("writing core: %w", err)
			}
		}
	}

	return int(status), nil
}

func writeTo(path string, write func(w io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return write(f)
}

func main() {
	defer func() {
		if r := recover(); r != nil {
			if ce, ok := r.(*sat.ContractError); ok {
				fmt.Fprintf(os.Stderr, "picosolve: fatal: %s\n", ce.Error())
				os.Exit(1)
			}
			panic(r)
		}
	}()

	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "picosolve: %s\n", err)
		if code == 0 {
			code = 1
		}
	}
	os.Exit(code)
}
