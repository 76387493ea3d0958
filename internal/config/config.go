// internal/config/config.go
// YAML run configuration. A file supplies the same settings as the CLI
// flags; flags the user set explicitly win over file values.
package config

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"rfold/internal/cli"
)

// Event mirrors one transcription step in the schedule.
type Event struct {
	Time     float64 `yaml:"time"`
	Residues int     `yaml:"residues"`
}

// Transcription configures chain growth. Either an explicit event list or a
// uniform rate; events win when both are given.
type Transcription struct {
	Rate    float64 `yaml:"rate"`
	Initial int     `yaml:"initial"`
	Events  []Event `yaml:"events"`
}

// File is the on-disk run configuration. Pointer fields distinguish "absent"
// from zero values.
type File struct {
	Sequence string `yaml:"sequence"`
	Start    string `yaml:"start"`
	Target   string `yaml:"target"`

	Params      string   `yaml:"params"`
	Temperature *float64 `yaml:"temperature"`
	MinHairpin  *int     `yaml:"min-hairpin"`

	RateModel string   `yaml:"rate-model"`
	K0        *float64 `yaml:"k0"`
	Shifts    *bool    `yaml:"shifts"`
	Seed      *int64   `yaml:"seed"`
	Time      *float64 `yaml:"time"`
	MaxSteps  *int     `yaml:"max-steps"`
	MaxSpan   *int     `yaml:"max-span"`

	Runs    *int `yaml:"runs"`
	Threads *int `yaml:"threads"`

	Output string `yaml:"output"`

	Transcription *Transcription `yaml:"transcription"`
}

// Load reads and strictly decodes a configuration file: unknown keys are
// errors, so typos do not silently fall back to defaults.
func Load(path string) (*File, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &f, nil
}

// Apply overlays file values onto opts. set names the flags given on the
// command line; those keep their CLI values.
func (f *File) Apply(opt *cli.Options, set map[string]bool) {
	str := func(flag string, dst *string, v string) {
		if v != "" && !set[flag] {
			*dst = v
		}
	}
	str("sequence", &opt.Sequence, f.Sequence)
	str("start", &opt.Start, f.Start)
	str("target", &opt.Target, f.Target)
	str("params", &opt.ParamFile, f.Params)
	str("rate-model", &opt.RateModel, f.RateModel)
	str("output", &opt.Output, f.Output)

	if f.Temperature != nil && !set["temperature"] {
		opt.Temperature = *f.Temperature
	}
	if f.MinHairpin != nil && !set["min-hairpin"] {
		opt.MinHairpin = *f.MinHairpin
	}
	if f.K0 != nil && !set["k0"] {
		opt.K0 = *f.K0
	}
	if f.Shifts != nil && !set["shifts"] {
		opt.Shifts = *f.Shifts
	}
	if f.Seed != nil && !set["seed"] {
		opt.Seed = *f.Seed
	}
	if f.Time != nil && !set["time"] {
		opt.TimeHorizon = *f.Time
	}
	if f.MaxSteps != nil && !set["max-steps"] {
		opt.MaxSteps = *f.MaxSteps
	}
	if f.MaxSpan != nil && !set["max-span"] {
		opt.MaxSpan = *f.MaxSpan
	}
	if f.Runs != nil && !set["runs"] {
		opt.Runs = *f.Runs
	}
	if f.Threads != nil && !set["threads"] {
		opt.Threads = *f.Threads
	}
	if f.Transcription != nil {
		if f.Transcription.Rate > 0 && !set["tx-rate"] {
			opt.TxRate = f.Transcription.Rate
		}
		if f.Transcription.Initial > 0 && !set["tx-initial"] {
			opt.TxInitial = f.Transcription.Initial
		}
	}
}
