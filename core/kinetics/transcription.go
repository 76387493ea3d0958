// core/kinetics/transcription.go
// Cotranscriptional folding: the chain grows at scheduled times while the
// simulation clock keeps running. Residues appear unpaired at the 3' end;
// pairs formed on the existing prefix are never touched by growth.
package kinetics

import (
	"context"
	"fmt"
	"math"

	"rfold-core/energy"
)

// TranscriptionEvent appends Residues bases at simulation time Time.
type TranscriptionEvent struct {
	Time     float64 `json:"time" yaml:"time"`
	Residues int     `json:"residues" yaml:"residues"`
}

// TranscriptionConfig drives a growing-chain simulation. Sequence is the
// full transcript; InitialLength residues are present at time zero and the
// schedule appends the rest. A Start structure, if given, must match the
// initial length; a Target is only checked once the chain is complete.
type TranscriptionConfig struct {
	Config
	InitialLength int
	Schedule      []TranscriptionEvent
}

// UniformSchedule emits one residue every interval time units until the
// chain is complete.
func UniformSchedule(total, initial int, interval float64) []TranscriptionEvent {
	var events []TranscriptionEvent
	for k := 1; k <= total-initial; k++ {
		events = append(events, TranscriptionEvent{Time: float64(k) * interval, Residues: 1})
	}
	return events
}

func (cfg *TranscriptionConfig) validate(fullLen int) error {
	if cfg.InitialLength < 1 || cfg.InitialLength > fullLen {
		return fmt.Errorf("initial length %d outside 1..%d", cfg.InitialLength, fullLen)
	}
	prev := 0.0
	total := cfg.InitialLength
	for k, ev := range cfg.Schedule {
		if ev.Time < prev {
			return fmt.Errorf("event %d: time %g before previous event at %g", k, ev.Time, prev)
		}
		if ev.Residues < 1 {
			return fmt.Errorf("event %d: residue count %d", k, ev.Residues)
		}
		prev = ev.Time
		total += ev.Residues
	}
	if total < fullLen {
		return fmt.Errorf("schedule emits %d of %d residues", total, fullLen)
	}
	return nil
}

// Transcribe runs a cotranscriptional trajectory.
func Transcribe(ctx context.Context, cfg TranscriptionConfig) (*Trajectory, error) {
	full, err := energy.ParseSequence(cfg.Sequence)
	if err != nil {
		return nil, fmt.Errorf("sequence: %w", err)
	}
	if err := cfg.validate(len(full)); err != nil {
		return nil, err
	}

	sub := cfg.Config
	sub.Sequence = cfg.Sequence[:cfg.InitialLength]
	sub.Target = "" // only meaningful at full length
	e, err := NewEngine(sub)
	if err != nil {
		return nil, err
	}

	horizon := cfg.TimeHorizon
	if horizon <= 0 {
		horizon = math.Inf(1)
	}

	for _, ev := range cfg.Schedule {
		if e.ls.Len() == len(full) {
			break
		}
		segEnd := math.Min(ev.Time, horizon)
		halt, err := e.RunUntil(ctx, segEnd)
		if err != nil {
			return nil, err
		}
		switch halt {
		case HaltTimeHorizon:
			if segEnd == horizon && ev.Time > horizon {
				return e.finish(HaltTimeHorizon), nil
			}
		case HaltTrapped:
			// nothing to do until more chain arrives
			e.t = segEnd
			if segEnd == horizon && ev.Time > horizon {
				return e.finish(HaltTimeHorizon), nil
			}
		default:
			return e.finish(halt), nil
		}
		at := e.ls.Len()
		add := ev.Residues
		if at+add > len(full) {
			add = len(full) - at
		}
		if err := e.ls.Grow(full[at : at+add]); err != nil {
			return nil, err
		}
		e.record()
	}

	if e.ls.Len() == len(full) {
		e.cfg.Target = cfg.Target
	}
	halt, err := e.RunUntil(ctx, horizon)
	if err != nil {
		return nil, err
	}
	return e.finish(halt), nil
}
