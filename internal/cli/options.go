// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"rfold/internal/version"
)

// Rate model names
const (
	RateMetropolis = "metropolis"
	RateKawasaki   = "kawasaki"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Input
	ConfigFile string
	Sequence   string
	Start      string
	Target     string

	// Energy model
	ParamFile   string
	Temperature float64
	MinHairpin  int

	// Kinetics
	RateModel   string
	K0          float64
	Shifts      bool
	Seed        int64
	TimeHorizon float64
	MaxSteps    int
	MaxSpan     int

	// Transcription
	TxRate    float64 // residues per time unit; 0 = refolding only
	TxInitial int

	// Ensemble / performance
	Runs    int
	Threads int

	// Output
	Output string
	Trace  bool
	Header bool // true unless --no-header

	// Logging
	LogFile  string
	LogLevel string
	Quiet    bool

	Version bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: stochastic RNA folding kinetics

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Input
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML run configuration (flags override file values)")
	fs.StringVar(&opt.Sequence, "sequence", "", "RNA sequence (5'→3') [*]")
	fs.StringVar(&opt.Start, "start", "", "start structure in dot-bracket (default: open chain)")
	fs.StringVar(&opt.Target, "target", "", "halt when this dot-bracket structure is reached")

	// Energy model
	fs.StringVar(&opt.ParamFile, "params", "", "energy parameter file (default: built-in Turner 2004)")
	fs.Float64Var(&opt.Temperature, "temperature", 37.0, "temperature in °C [37]")
	fs.IntVar(&opt.MinHairpin, "min-hairpin", 3, "minimum hairpin loop size [3]")

	// Kinetics
	fs.StringVar(&opt.RateModel, "rate-model", RateMetropolis, "rate model: metropolis | kawasaki ["+RateMetropolis+"]")
	fs.Float64Var(&opt.K0, "k0", 1.0, "attempt frequency (rate unit) [1.0]")
	fs.BoolVar(&opt.Shifts, "shifts", false, "enable shift moves [false]")
	fs.Int64Var(&opt.Seed, "seed", 1, "random seed; run k uses seed+k [1]")
	fs.Float64Var(&opt.TimeHorizon, "time", 0, "simulation time horizon (0 = unbounded) [0]")
	fs.IntVar(&opt.MaxSteps, "max-steps", 0, "maximum applied moves per run (0 = unbounded) [0]")
	fs.IntVar(&opt.MaxSpan, "max-span", 0, "maximum distance between paired positions (0 = unbounded) [0]")

	// Transcription
	fs.Float64Var(&opt.TxRate, "tx-rate", 0, "transcription rate in residues per time unit (0 = full chain from the start) [0]")
	fs.IntVar(&opt.TxInitial, "tx-initial", 1, "residues present at time zero when transcribing [1]")

	// Ensemble / performance
	fs.IntVar(&opt.Runs, "runs", 1, "number of independent trajectories [1]")
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", "text", "output format: text | jsonl [text]")
	fs.BoolVar(&opt.Trace, "trace", false, "emit every trajectory record, not just run summaries [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text output [false]")

	// Logging
	fs.StringVar(&opt.LogFile, "log-file", "", "also log to this file (rotated)")
	fs.StringVar(&opt.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "suppress warnings and progress logs [false]")

	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	if opt.Version {
		return opt, nil
	}
	opt.Header = !noHeader

	return opt, opt.Validate()
}

// Validate checks flag consistency. Sequence presence is deferred so a
// config file can supply it.
func (opt *Options) Validate() error {
	if opt.Sequence == "" && opt.ConfigFile == "" {
		return errors.New("provide --sequence or --config")
	}
	if opt.RateModel != RateMetropolis && opt.RateModel != RateKawasaki {
		return fmt.Errorf("invalid --rate-model %q", opt.RateModel)
	}
	if opt.K0 <= 0 {
		return errors.New("--k0 must be > 0")
	}
	if opt.MinHairpin < 0 {
		return errors.New("--min-hairpin must be ≥ 0")
	}
	if opt.TimeHorizon < 0 {
		return errors.New("--time must be ≥ 0")
	}
	if opt.MaxSteps < 0 {
		return errors.New("--max-steps must be ≥ 0")
	}
	if opt.MaxSpan < 0 {
		return errors.New("--max-span must be ≥ 0")
	}
	if opt.TxRate < 0 {
		return errors.New("--tx-rate must be ≥ 0")
	}
	if opt.TxInitial < 1 {
		return errors.New("--tx-initial must be ≥ 1")
	}
	if opt.Runs < 1 {
		return errors.New("--runs must be ≥ 1")
	}
	if opt.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if opt.Output != "text" && opt.Output != "jsonl" {
		return fmt.Errorf("invalid --output %q", opt.Output)
	}
	return nil
}

// Parse parses argv with a discard-output FlagSet, for tests and callers
// that render usage themselves.
func Parse(argv []string) (Options, error) {
	fs := NewFlagSet("rfold")
	fs.SetOutput(io.Discard)
	return ParseArgs(fs, argv)
}
