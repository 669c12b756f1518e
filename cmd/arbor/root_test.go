package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRuleFlags(t *testing.T) {
	rules, err := parseRuleFlags([]string{"X=F+[[X]-X]-F[-FX]+X", "F=FF"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"X": "F+[[X]-X]-F[-FX]+X", "F": "FF"}, rules)

	_, err = parseRuleFlags([]string{"F=FF", "F=F"})
	require.ErrorContains(t, err, "duplicate")

	_, err = parseRuleFlags([]string{"FFF"})
	require.ErrorContains(t, err, "SYMBOL=BODY")
}

func TestExpandCommandPrintsGrowth(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"expand", "--generations", "2", "--predict", "1"})
	require.NoError(t, rootCmd.Execute())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, []string{"gen", "length", "X", "F", "+", "-", "[", "]"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"0", "2", "2", "0", "0", "0", "0", "0"}, strings.Fields(lines[1]))
	assert.Equal(t, "36", strings.Fields(lines[2])[1])
	assert.Equal(t, "178", strings.Fields(lines[3])[1])
	assert.Equal(t, "3~", strings.Fields(lines[4])[0])
}
