// internal/app/app_test.go
package app

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rfold/internal/ensemble"
)

func runApp(t *testing.T, argv ...string) (int, string, string) {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := Run(argv, &out, &errBuf)
	return code, out.String(), errBuf.String()
}

func TestVersionFlag(t *testing.T) {
	code, out, _ := runApp(t, "--version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "rfold version")
}

func TestHelp(t *testing.T) {
	code, out, _ := runApp(t, "-h")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage of rfold")

	code, out, _ = runApp(t)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "Usage of rfold")
}

func TestBadFlagIsUsageError(t *testing.T) {
	code, _, msg := runApp(t, "--bogus")
	assert.Equal(t, 2, code)
	assert.NotEmpty(t, msg)

	code, _, msg = runApp(t, "--sequence", "GAAAC", "--rate-model", "arrhenius")
	assert.Equal(t, 2, code)
	assert.Contains(t, msg, "rate-model")
}

func TestBadStructureFailsFast(t *testing.T) {
	code, _, msg := runApp(t, "--sequence", "GAAAC", "--start", "((((", "--quiet")
	assert.Equal(t, 2, code)
	assert.NotEmpty(t, msg)
}

func TestTextSummaries(t *testing.T) {
	code, out, _ := runApp(t,
		"--sequence", "GAAAC", "--target", "(...)",
		"--runs", "2", "--threads", "1", "--seed", "5", "--quiet")
	require.Equal(t, 0, code)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "run\tseed\thalt\ttime\tsteps\tenergy\tstructure", lines[0])
	for i, line := range lines[1:] {
		fields := strings.Split(line, "\t")
		require.Len(t, fields, 7)
		assert.Equal(t, []string{"5", "6"}[i], fields[1])
		assert.Equal(t, "target-reached", fields[2])
		assert.Equal(t, "(...)", fields[6])
	}

	code, out, _ = runApp(t,
		"--sequence", "GAAAC", "--target", "(...)",
		"--threads", "1", "--quiet", "--no-header")
	require.Equal(t, 0, code)
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 1)
}

func TestJSONLTrace(t *testing.T) {
	code, out, _ := runApp(t,
		"--sequence", "GAAAC", "--target", "(...)",
		"--threads", "1", "--output", "jsonl", "--trace", "--quiet")
	require.Equal(t, 0, code)

	sc := bufio.NewScanner(strings.NewReader(out))
	require.True(t, sc.Scan())
	var res ensemble.Result
	require.NoError(t, json.Unmarshal(sc.Bytes(), &res))
	assert.Equal(t, "target-reached", res.Halt)
	assert.Equal(t, "(...)", res.FinalStructure)
	assert.NotEmpty(t, res.RunID)
	require.Len(t, res.Records, 2)
	assert.Equal(t, ".....", res.Records[0].Structure)
	assert.False(t, sc.Scan())
}

func TestConfigFileRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
sequence: GAAAC
target: "(...)"
runs: 2
threads: 1
seed: 11
`), 0o644))

	code, out, _ := runApp(t, "--config", path, "--quiet")
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "target-reached")

	// explicit flags still win over the file
	code, out, _ = runApp(t, "--config", path, "--runs", "1", "--quiet")
	require.Equal(t, 0, code)
	assert.Len(t, strings.Split(strings.TrimRight(out, "\n"), "\n"), 2)
}

func TestTranscriptionRun(t *testing.T) {
	code, out, _ := runApp(t,
		"--sequence", "GGGAAACCC", "--tx-rate", "10", "--time", "5",
		"--threads", "1", "--seed", "3", "--quiet")
	require.Equal(t, 0, code)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 2)
	fields := strings.Split(lines[1], "\t")
	require.Len(t, fields, 7)
	assert.Equal(t, "time-horizon", fields[2])
	assert.Len(t, fields[6], 9)
}
