// core/kinetics/engine.go
// Exact stochastic simulation of folding kinetics. Each step draws two
// uniform variates: the first sets the waiting time from the total outgoing
// rate, the second picks the move by cumulative sum over a deterministically
// ordered move set, so a fixed seed reproduces a trajectory exactly.
package kinetics

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sort"

	"rfold-core/energy"
	"rfold-core/structure"
)

// HaltReason says why a trajectory stopped.
type HaltReason uint8

const (
	HaltNone HaltReason = iota
	HaltTimeHorizon
	HaltTargetReached
	HaltTrapped
	HaltStepCap
	HaltCancelled
)

func (h HaltReason) String() string {
	switch h {
	case HaltTimeHorizon:
		return "time-horizon"
	case HaltTargetReached:
		return "target-reached"
	case HaltTrapped:
		return "trapped"
	case HaltStepCap:
		return "step-cap"
	case HaltCancelled:
		return "cancelled"
	}
	return "none"
}

// Config describes one simulation.
type Config struct {
	Sequence string // required
	Start    string // dot-bracket start structure; empty = open chain
	Target   string // halt when this structure is reached; empty = none

	Model energy.Model // nil = DefaultModel
	Rates RateModel    // nil = Metropolis with k0=1 at the model temperature

	Seed        int64
	TimeHorizon float64 // <= 0 = unbounded
	MaxSteps    int     // 0 = unbounded
	MaxSpan     int     // max j-i of an added pair; 0 = unbounded
	AllowShifts bool
}

// Record is one trajectory sample: the state after the step-th applied
// move (step 0 is the initial state).
type Record struct {
	Step      int     `json:"step"`
	Time      float64 `json:"time"`
	Energy    int     `json:"energy"`
	Structure string  `json:"structure"`
}

// Trajectory is the full output of one simulation.
type Trajectory struct {
	Records []Record   `json:"records"`
	Halt    HaltReason `json:"-"`
	Time    float64    `json:"time"`
	Steps   int        `json:"steps"`
}

// Engine runs one trajectory. It is not safe for concurrent use.
type Engine struct {
	cfg     Config
	model   energy.Model
	rates   RateModel
	ls      *LoopStructure
	rng     *rand.Rand
	t       float64
	steps   int
	records []Record
}

// NewEngine validates the configuration and prepares the initial state.
func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Sequence == "" {
		return nil, fmt.Errorf("empty sequence")
	}
	if cfg.MaxSpan < 0 {
		return nil, fmt.Errorf("max span must be >= 0, got %d", cfg.MaxSpan)
	}
	seq, err := energy.ParseSequence(cfg.Sequence)
	if err != nil {
		return nil, fmt.Errorf("sequence: %w", err)
	}
	model := cfg.Model
	if model == nil {
		model = energy.DefaultModel()
	}
	rates := cfg.Rates
	if rates == nil {
		rates, err = NewMetropolis(1.0, model.TemperatureC())
		if err != nil {
			return nil, err
		}
	}
	start := structure.New(len(seq))
	if cfg.Start != "" {
		start, err = parseStructure(model, seq, cfg.Start)
		if err != nil {
			return nil, fmt.Errorf("start structure: %w", err)
		}
	}
	if cfg.Target != "" {
		if _, err := parseStructure(model, seq, cfg.Target); err != nil {
			return nil, fmt.Errorf("target structure: %w", err)
		}
	}
	ls, err := NewLoopStructure(model, seq, start)
	if err != nil {
		return nil, err
	}
	e := &Engine{
		cfg:   cfg,
		model: model,
		rates: rates,
		ls:    ls,
		rng:   rand.New(rand.NewSource(cfg.Seed)),
	}
	e.record()
	return e, nil
}

// parseStructure parses a dot-bracket string and re-validates every pair
// against the model: complementarity, minimum hairpin size, no crossings.
func parseStructure(model energy.Model, seq []energy.Base, s string) (structure.PairTable, error) {
	if len(s) != len(seq) {
		return nil, fmt.Errorf("structure length %d != sequence length %d", len(s), len(seq))
	}
	parsed, err := structure.FromDotBracket(s)
	if err != nil {
		return nil, err
	}
	type pair struct{ i, j int }
	var pairs []pair
	for i, j := range parsed {
		if j > i {
			pairs = append(pairs, pair{i, j})
		}
	}
	// innermost first, so each CanAdd sees its enclosed pairs
	sort.Slice(pairs, func(a, b int) bool {
		return pairs[a].j-pairs[a].i < pairs[b].j-pairs[b].i
	})
	pt := structure.New(len(seq))
	for _, p := range pairs {
		if !model.CanPair(seq[p.i], seq[p.j]) {
			return nil, fmt.Errorf("pair (%d,%d): %s and %s cannot pair", p.i, p.j, seq[p.i], seq[p.j])
		}
		if err := pt.Add(p.i, p.j, model.MinHairpin()); err != nil {
			return nil, err
		}
	}
	return pt, nil
}

func (e *Engine) record() {
	e.records = append(e.records, Record{
		Step:      e.steps,
		Time:      e.t,
		Energy:    e.ls.Energy(),
		Structure: e.ls.DotBracket(),
	})
}

// Moves lists every admissible elementary move with its energy change, in
// the fixed order removals (ascending i), additions (ascending (i,j)),
// shifts (ascending (i,j,k,l)).
func (e *Engine) Moves() ([]Move, error) {
	pt := e.ls.Pairs()
	seq := e.ls.Sequence()
	n := len(pt)
	var out []Move

	for i := 0; i < n; i++ {
		if j := pt[i]; j > i {
			d, err := e.ls.RemoveDelta(i)
			if err != nil {
				return nil, fmt.Errorf("remove (%d,%d): %w", i, j, err)
			}
			out = append(out, Move{Kind: RemoveMove, I: i, J: j, DeltaE: d})
		}
	}

	minLoop := e.model.MinHairpin()
	for i := 0; i < n; i++ {
		if pt.Paired(i) {
			continue
		}
		jMax := n - 1
		if e.cfg.MaxSpan > 0 && i+e.cfg.MaxSpan < jMax {
			jMax = i + e.cfg.MaxSpan
		}
		for j := i + minLoop + 1; j <= jMax; j++ {
			if pt.Paired(j) || e.ls.loopOf[j] != e.ls.loopOf[i] || !e.model.CanPair(seq[i], seq[j]) {
				continue
			}
			d, err := e.ls.AddDelta(i, j)
			if err != nil {
				return nil, fmt.Errorf("add (%d,%d): %w", i, j, err)
			}
			out = append(out, Move{Kind: AddMove, I: i, J: j, DeltaE: d})
		}
	}

	if e.cfg.AllowShifts {
		var shifts []Move
		for i := 0; i < n; i++ {
			j := pt[i]
			if j <= i {
				continue
			}
			for _, c := range [4][2]int{{i, j - 1}, {i, j + 1}, {i - 1, j}, {i + 1, j}} {
				k, l := c[0], c[1]
				if k < 0 || l >= n || l-k-1 < minLoop {
					continue
				}
				if e.cfg.MaxSpan > 0 && l-k > e.cfg.MaxSpan {
					continue
				}
				moved := k
				if k == i {
					moved = l
				}
				if pt.Paired(moved) || !e.model.CanPair(seq[k], seq[l]) {
					continue
				}
				d, err := e.ls.ShiftDelta(i, j, k, l)
				if err != nil {
					continue // structurally invalid target
				}
				shifts = append(shifts, Move{Kind: ShiftMove, I: i, J: j, K: k, L: l, DeltaE: d})
			}
		}
		sort.Slice(shifts, func(a, b int) bool {
			x, y := shifts[a], shifts[b]
			if x.I != y.I {
				return x.I < y.I
			}
			if x.J != y.J {
				return x.J < y.J
			}
			if x.K != y.K {
				return x.K < y.K
			}
			return x.L < y.L
		})
		out = append(out, shifts...)
	}
	return out, nil
}

func (e *Engine) apply(m Move) error {
	switch m.Kind {
	case AddMove:
		return e.ls.ApplyAdd(m.I, m.J)
	case RemoveMove:
		return e.ls.ApplyRemove(m.I)
	default:
		return e.ls.ApplyShift(m.I, m.J, m.K, m.L)
	}
}

// step advances by one applied move, or reports why it cannot.
func (e *Engine) step(horizon float64) (HaltReason, error) {
	moves, err := e.Moves()
	if err != nil {
		return HaltNone, err
	}
	total := 0.0
	rates := make([]float64, len(moves))
	for i, m := range moves {
		rates[i] = e.rates.Rate(m.DeltaE)
		total += rates[i]
	}
	if total <= 0 {
		return HaltTrapped, nil
	}

	dt := -math.Log(1-e.rng.Float64()) / total
	if e.t+dt > horizon {
		e.t = horizon
		return HaltTimeHorizon, nil
	}

	pick := e.rng.Float64() * total
	chosen := len(moves) - 1
	acc := 0.0
	for i, r := range rates {
		acc += r
		if pick < acc {
			chosen = i
			break
		}
	}
	if err := e.apply(moves[chosen]); err != nil {
		return HaltNone, fmt.Errorf("apply %s: %w", moves[chosen], err)
	}
	e.t += dt
	e.steps++
	e.record()

	if e.cfg.Target != "" && e.ls.DotBracket() == e.cfg.Target {
		return HaltTargetReached, nil
	}
	if e.cfg.MaxSteps > 0 && e.steps >= e.cfg.MaxSteps {
		return HaltStepCap, nil
	}
	return HaltNone, nil
}

// RunUntil advances the simulation to the given time horizon, stopping
// early on target, trap, step cap, or context cancellation. The context is
// checked between steps only.
func (e *Engine) RunUntil(ctx context.Context, horizon float64) (HaltReason, error) {
	if e.cfg.Target != "" && e.ls.DotBracket() == e.cfg.Target {
		return HaltTargetReached, nil
	}
	for {
		if ctx.Err() != nil {
			return HaltCancelled, nil
		}
		halt, err := e.step(horizon)
		if err != nil {
			return HaltNone, err
		}
		if halt != HaltNone {
			return halt, nil
		}
	}
}

// Run executes the whole trajectory per the configuration.
func (e *Engine) Run(ctx context.Context) (*Trajectory, error) {
	horizon := e.cfg.TimeHorizon
	if horizon <= 0 {
		horizon = math.Inf(1)
	}
	halt, err := e.RunUntil(ctx, horizon)
	if err != nil {
		return nil, err
	}
	return e.finish(halt), nil
}

func (e *Engine) finish(halt HaltReason) *Trajectory {
	return &Trajectory{Records: e.records, Halt: halt, Time: e.t, Steps: e.steps}
}

// Time is the current simulation clock.
func (e *Engine) Time() float64 { return e.t }

// Energy is the current structure energy.
func (e *Engine) Energy() int { return e.ls.Energy() }

// DotBracket renders the current structure.
func (e *Engine) DotBracket() string { return e.ls.DotBracket() }
