// internal/ensemble/ensemble.go
// Runs many independent trajectories across a worker pool. Run k derives
// its seed from the base seed plus k, so an ensemble is reproducible as a
// whole while every trajectory stays independent. A failed run is logged
// and skipped; it never takes the ensemble down.
package ensemble

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"rfold-core/kinetics"
)

// TranscribeSpec turns the runs into cotranscriptional simulations.
type TranscribeSpec struct {
	InitialLength int
	Events        []kinetics.TranscriptionEvent
}

// Spec describes an ensemble.
type Spec struct {
	Base       kinetics.Config // per-run config; Seed is the base seed
	Transcribe *TranscribeSpec // nil = refolding of the full chain
	Runs       int
	Threads    int // >=1
}

// Result is the outcome of one trajectory.
type Result struct {
	RunID          string            `json:"run_id"`
	Index          int               `json:"index"`
	Seed           int64             `json:"seed"`
	Halt           string            `json:"halt"`
	Time           float64           `json:"time"`
	Steps          int               `json:"steps"`
	FinalStructure string            `json:"final_structure"`
	FinalEnergy    int               `json:"final_energy"`
	Records        []kinetics.Record `json:"records,omitempty"`
}

func runOne(ctx context.Context, spec Spec, idx int) (Result, error) {
	cfg := spec.Base
	cfg.Seed = spec.Base.Seed + int64(idx)

	var (
		traj *kinetics.Trajectory
		err  error
	)
	if spec.Transcribe != nil {
		traj, err = kinetics.Transcribe(ctx, kinetics.TranscriptionConfig{
			Config:        cfg,
			InitialLength: spec.Transcribe.InitialLength,
			Schedule:      spec.Transcribe.Events,
		})
	} else {
		var e *kinetics.Engine
		if e, err = kinetics.NewEngine(cfg); err == nil {
			traj, err = e.Run(ctx)
		}
	}
	if err != nil {
		return Result{}, err
	}
	last := traj.Records[len(traj.Records)-1]
	return Result{
		RunID:          uuid.NewString(),
		Index:          idx,
		Seed:           cfg.Seed,
		Halt:           traj.Halt.String(),
		Time:           traj.Time,
		Steps:          traj.Steps,
		FinalStructure: last.Structure,
		FinalEnergy:    last.Energy,
		Records:        traj.Records,
	}, nil
}

// Run executes the ensemble and streams results to visit from a single
// collector goroutine. It returns the number of completed runs and the
// first visit/cancellation error.
func Run(ctx context.Context, log *logrus.Logger, spec Spec, visit func(Result) error) (int, error) {
	if spec.Threads < 1 {
		spec.Threads = 1
	}

	jobs := make(chan int, spec.Threads*2)
	results := make(chan Result, spec.Threads*2)

	var wg sync.WaitGroup
	wg.Add(spec.Threads)
	for w := 0; w < spec.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case idx, ok := <-jobs:
					if !ok {
						return
					}
					res, err := runOne(ctx, spec, idx)
					if err != nil {
						log.WithError(err).WithField("run", idx).Error("trajectory failed")
						continue
					}
					log.WithFields(logrus.Fields{
						"run":   idx,
						"halt":  res.Halt,
						"steps": res.Steps,
						"time":  res.Time,
					}).Debug("trajectory done")
					select {
					case results <- res:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}

	var (
		cerr  error
		cwg   sync.WaitGroup
		total int
	)
	cwg.Add(1)
	go func() {
		defer cwg.Done()
		for res := range results {
			if cerr != nil {
				continue
			}
			if err := visit(res); err != nil {
				cerr = err
				continue
			}
			total++
		}
	}()

feed:
	for i := 0; i < spec.Runs; i++ {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}

	close(jobs)
	wg.Wait()
	close(results)
	cwg.Wait()

	if ctx.Err() != nil {
		return total, ctx.Err()
	}
	return total, cerr
}
