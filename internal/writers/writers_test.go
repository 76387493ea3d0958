// internal/writers/writers_test.go
package writers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfold-core/kinetics"
	"rfold/internal/ensemble"
)

func sample() ensemble.Result {
	return ensemble.Result{
		RunID:          "00000000-0000-0000-0000-000000000001",
		Index:          0,
		Seed:           7,
		Halt:           "target-reached",
		Time:           1.25,
		Steps:          2,
		FinalStructure: "(...)",
		FinalEnergy:    540,
		Records: []kinetics.Record{
			{Step: 0, Time: 0, Energy: 0, Structure: "....."},
			{Step: 1, Time: 1.25, Energy: 540, Structure: "(...)"},
		},
	}
}

func runWriter(t *testing.T, f Factory, results ...ensemble.Result) string {
	t.Helper()
	var buf bytes.Buffer
	in, done := f.Start(&buf, 4)
	for _, r := range results {
		in <- r
	}
	close(in)
	require.NoError(t, <-done)
	return buf.String()
}

func TestRegistry(t *testing.T) {
	for _, format := range []string{"text", "jsonl"} {
		_, err := New(format, true, false)
		assert.NoError(t, err, format)
	}
	_, err := New("xml", true, false)
	assert.Error(t, err)
	assert.Contains(t, Formats(), "text")
}

func TestTextSummary(t *testing.T) {
	f, err := New("text", true, false)
	require.NoError(t, err)
	out := runWriter(t, f, sample())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "run\tseed\thalt\ttime\tsteps\tenergy\tstructure", lines[0])
	assert.Equal(t, "0\t7\ttarget-reached\t1.25\t2\t540\t(...)", lines[1])
}

func TestTextTrace(t *testing.T) {
	f, err := New("text", false, true)
	require.NoError(t, err)
	out := runWriter(t, f, sample())
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "0\t0\t0\t0\t.....", lines[0])
	assert.Equal(t, "0\t1\t1.25\t540\t(...)", lines[1])
}

func TestJSONLDropsRecordsUnlessTracing(t *testing.T) {
	f, err := New("jsonl", false, false)
	require.NoError(t, err)
	out := runWriter(t, f, sample())

	var decoded ensemble.Result
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "target-reached", decoded.Halt)
	assert.Empty(t, decoded.Records)

	f, err = New("jsonl", false, true)
	require.NoError(t, err)
	out = runWriter(t, f, sample())
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Len(t, decoded.Records, 2)
}
