package harness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/graphview/ctxlog"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func TestScenarios(t *testing.T) {
	scenarios, err := LoadDir("testdata/scenarios")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	for _, s := range scenarios {
		t.Run(s.Name, func(t *testing.T) {
			res := RunWithGolden(t, s)
			assert.True(t, res.Passed())
		})
	}
}

func TestRejectedOperations(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: rejected
steps:
  - do: create_node
    node: a
    position: [0, 0]
  - do: connect
    edge: loop
    source: a
    target: a
  - input: click
    at: [0, 0]
  - input: key
    key: c
expect:
  nodes: 1
  edges: 0
  selected: [a]
  sounds: [create, select, error]
  rejected: 2
`))
	require.NoError(t, err)

	res, err := Run(testContext(), s)
	require.NoError(t, err)
	assert.Empty(t, res.Failures)
	require.Len(t, res.Snapshot.Rejected, 2)
	assert.Contains(t, res.Snapshot.Rejected[0], "self loop")
}

func TestDeleteKeyCascades(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: delete_key
steps:
  - do: create_node
    node: a
    position: [0, 0]
  - do: create_node
    node: b
    position: [4, 0]
  - do: connect
    edge: ab
    source: a
    target: b
  - input: click
    at: [4, 0]
  - input: key
    key: delete
expect:
  nodes: 1
  edges: 0
  selected: []
  sounds: [create, create, select, delete]
`))
	require.NoError(t, err)

	res, err := Run(testContext(), s)
	require.NoError(t, err)
	assert.Empty(t, res.Failures)

	_, ok := res.Snapshot.Node("b")
	assert.False(t, ok)
	a, ok := res.Snapshot.Node("a")
	require.True(t, ok)
	assert.Equal(t, "a", a.Label)
}

func TestCheckReportsMismatches(t *testing.T) {
	s, err := ParseScenario([]byte(`
name: mismatch
steps:
  - do: create_node
    node: a
    position: [1, 2]
expect:
  nodes: 2
  positions:
    a: [1, 3]
    ghost: [0, 0]
  labels:
    a: Alpha
`))
	require.NoError(t, err)

	res, err := Run(testContext(), s)
	require.NoError(t, err)
	assert.False(t, res.Passed())
	assert.Len(t, res.Failures, 4)
}

func TestRunStepErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "unknown event",
			src: `
name: bad
steps:
  - event: NoSuchEvent
`,
		},
		{
			name: "unknown operation",
			src: `
name: bad
steps:
  - do: teleport
`,
		},
		{
			name: "bad cell",
			src: `
name: bad
steps:
  - input: click
    at: [1]
`,
		},
		{
			name: "unknown key",
			src: `
name: bad
steps:
  - input: key
    key: f13
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseScenario([]byte(tt.src))
			require.NoError(t, err)
			_, err = Run(testContext(), s)
			assert.Error(t, err)
		})
	}
}

func TestParseScenarioValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"missing name", "steps:\n  - ticks: 1\n", "name is required"},
		{"no steps", "name: x\n", "steps list is required"},
		{"two kinds", "name: x\nsteps:\n  - ticks: 1\n    do: layout\n", "exactly one of"},
		{"unknown field", "name: x\nsteps:\n  - tick: 1\n", "field tick not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestParseScenarioDefaults(t *testing.T) {
	s, err := ParseScenario([]byte("name: x\nsteps:\n  - ticks: 3\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultGraph, s.Graph)
	assert.Equal(t, 3, s.Steps[0].Ticks)
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yml"), []byte("name: b\nsteps:\n  - ticks: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("name: a\nsteps:\n  - ticks: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	scenarios, err := LoadDir(dir)
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "a", scenarios[0].Name)
	assert.Equal(t, "b", scenarios[1].Name)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.yaml"), []byte("steps: []\n"), 0o644))
	_, err = LoadDir(dir)
	assert.ErrorContains(t, err, "c.yaml")
}

func TestRunRejectsMissingGraph(t *testing.T) {
	// Built directly, so ParseScenario never fills in DefaultGraph
	s := &Scenario{Name: "no_graph", Steps: []Step{{Ticks: 1}}}

	res, err := Run(testContext(), s)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.Contains(t, err.Error(), "graph id is required")
}
