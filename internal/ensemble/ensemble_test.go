// internal/ensemble/ensemble_test.go
package ensemble

import (
	"context"
	"io"
	"sort"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfold-core/kinetics"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestRunCollectsAllTrajectories(t *testing.T) {
	spec := Spec{
		Base:    kinetics.Config{Sequence: "GAAAC", Target: "(...)", Seed: 100},
		Runs:    4,
		Threads: 2,
	}
	var results []Result
	total, err := Run(context.Background(), quietLogger(), spec, func(r Result) error {
		results = append(results, r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 4, total)
	require.Len(t, results, 4)

	sort.Slice(results, func(a, b int) bool { return results[a].Index < results[b].Index })
	seen := map[string]bool{}
	for i, r := range results {
		assert.Equal(t, i, r.Index)
		assert.Equal(t, int64(100+i), r.Seed)
		assert.Equal(t, "target-reached", r.Halt)
		assert.Equal(t, "(...)", r.FinalStructure)
		assert.NotEmpty(t, r.RunID)
		assert.False(t, seen[r.RunID], "run ids must be unique")
		seen[r.RunID] = true
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	// an unparseable start structure fails every run, but Run itself returns cleanly
	spec := Spec{
		Base:    kinetics.Config{Sequence: "GAAAC", Start: "(..x)"},
		Runs:    2,
		Threads: 1,
	}
	total, err := Run(context.Background(), quietLogger(), spec, func(Result) error {
		t.Fatal("no result expected")
		return nil
	})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestRunHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	spec := Spec{
		Base:    kinetics.Config{Sequence: "GAAAC"},
		Runs:    3,
		Threads: 1,
	}
	_, err := Run(ctx, quietLogger(), spec, func(Result) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunTranscribing(t *testing.T) {
	spec := Spec{
		Base: kinetics.Config{Sequence: "GGGAAACCC", TimeHorizon: 3, Seed: 9},
		Transcribe: &TranscribeSpec{
			InitialLength: 1,
			Events:        kinetics.UniformSchedule(9, 1, 0.25),
		},
		Runs:    2,
		Threads: 2,
	}
	var results []Result
	total, err := Run(context.Background(), quietLogger(), spec, func(r Result) error {
		results = append(results, r)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	for _, r := range results {
		assert.Equal(t, "time-horizon", r.Halt)
		assert.Len(t, r.FinalStructure, 9)
	}
}
