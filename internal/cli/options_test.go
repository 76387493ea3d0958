// internal/cli/options_test.go
package cli

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	opt, err := Parse([]string{"--sequence", "GGGAAACCC"})
	require.NoError(t, err)
	assert.Equal(t, "GGGAAACCC", opt.Sequence)
	assert.Equal(t, 37.0, opt.Temperature)
	assert.Equal(t, 3, opt.MinHairpin)
	assert.Equal(t, RateMetropolis, opt.RateModel)
	assert.Equal(t, 1.0, opt.K0)
	assert.Equal(t, 1, opt.Runs)
	assert.Equal(t, "text", opt.Output)
	assert.True(t, opt.Header)
}

func TestParseHelp(t *testing.T) {
	_, err := Parse([]string{"-h"})
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestParseValidation(t *testing.T) {
	cases := map[string][]string{
		"no input":        {},
		"bad rate model":  {"--sequence", "GGG", "--rate-model", "arrhenius"},
		"bad output":      {"--sequence", "GGG", "--output", "xml"},
		"zero k0":         {"--sequence", "GGG", "--k0", "0"},
		"zero runs":       {"--sequence", "GGG", "--runs", "0"},
		"negative time":   {"--sequence", "GGG", "--time", "-1"},
		"tx initial zero": {"--sequence", "GGG", "--tx-initial", "0"},
		"negative span":   {"--sequence", "GGG", "--max-span", "-1"},
	}
	for name, argv := range cases {
		_, err := Parse(argv)
		assert.Error(t, err, name)
	}
}

func TestParseNoHeader(t *testing.T) {
	opt, err := Parse([]string{"--sequence", "GGG", "--no-header"})
	require.NoError(t, err)
	assert.False(t, opt.Header)
}

func TestConfigOnlyIsAccepted(t *testing.T) {
	opt, err := Parse([]string{"--config", "run.yaml"})
	require.NoError(t, err)
	assert.Empty(t, opt.Sequence)
	assert.Equal(t, "run.yaml", opt.ConfigFile)
}
