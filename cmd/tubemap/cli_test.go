package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var londonMap = filepath.Join("..", "..", "data", "london.json")

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--map", londonMap, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestPathCommand(t *testing.T) {
	out, err := run(t, "path", "Stockwell", "South Kensington")
	require.NoError(t, err)
	assert.Contains(t, out, "Stockwell -> Vauxhall -> Pimlico -> Victoria -> Sloane Square -> South Kensington")
	assert.Contains(t, out, "Total time: 10 min")
}

func TestPathCommandLegs(t *testing.T) {
	out, err := run(t, "path", "--legs", "Hammersmith", "Barons Court")
	require.NoError(t, err)
	assert.Contains(t, out, "Hammersmith -> Barons Court  District Line  1 min")
}

func TestPathCommandByID(t *testing.T) {
	out, err := run(t, "path", "--by-id", "245", "236")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Stockwell -> "))

	_, err = run(t, "path", "--by-id", "245", "401")
	assert.Error(t, err)
}

func TestPathCommandErrors(t *testing.T) {
	_, err := run(t, "path", "Stockwell", "Atlantis")
	assert.ErrorContains(t, err, "station not found")

	_, err = run(t, "path", "Stockwell", "Ongar")
	assert.ErrorContains(t, err, "no route")

	_, err = run(t, "path", "Stockwell")
	assert.Error(t, err)
}

func TestMissingMap(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--map", "nope.json", "--log-level", "error", "stations"})
	assert.ErrorContains(t, cmd.Execute(), "failed to load map")
}

func TestGraphCommand(t *testing.T) {
	out, err := run(t, "graph", "--station", "110")
	require.NoError(t, err)

	var dump graphDump
	require.NoError(t, json.Unmarshal([]byte(out), &dump))
	require.Len(t, dump.Graph, 1)
	assert.Len(t, dump.Graph["110"], 4)
	assert.Len(t, dump.Graph["110"]["17"], 2)
	assert.Equal(t, 31, dump.Summary["connections"])
	assert.Equal(t, 24, dump.Summary["graphNodes"])

	_, err = run(t, "graph", "--station", "400")
	assert.Error(t, err)
}

func TestGraphCommandToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "graph.json")
	_, err := run(t, "graph", "--out", path)
	require.NoError(t, err)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	var dump graphDump
	require.NoError(t, json.Unmarshal(b, &dump))
	assert.Len(t, dump.Graph, 24)
}

func TestStationsCommand(t *testing.T) {
	out, err := run(t, "stations")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 26)
	assert.Contains(t, lines[0], "ZONES")
	assert.Contains(t, out, "Turnham Green")
	assert.Contains(t, out, "2,3")
}

func TestStationsCommandZoneFilter(t *testing.T) {
	out, err := run(t, "stations", "--zone", "3")
	require.NoError(t, err)
	assert.Contains(t, out, "Turnham Green")
	assert.Contains(t, out, "Chiswick Park")
	assert.NotContains(t, out, "Stockwell")

	all, err := run(t, "stations")
	require.NoError(t, err)
	assert.Less(t, len(strings.Split(out, "\n")), len(strings.Split(all, "\n")))
}

func TestEmptyMapIsLoaded(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"stations":[],"lines":[],"connections":[]}`), 0o644))

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--map", path, "--log-level", "error", "stations"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "ID  NAME  ZONES", strings.TrimSpace(out.String()))
}
