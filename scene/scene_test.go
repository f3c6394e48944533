package scene

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/ctxlog"
	"github.com/lixenwraith/graphview/domain"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/parameter"
	"github.com/lixenwraith/graphview/system"
	"github.com/lixenwraith/graphview/vmath"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func TestLoad(t *testing.T) {
	s, err := Load(testContext(), "testdata/services.hcl")
	require.NoError(t, err)

	require.Len(t, s.Graphs, 2)
	assert.Equal(t, 3, s.NodeCount())
	assert.Equal(t, 2, s.EdgeCount())

	g := s.Graphs[0]
	assert.Equal(t, "services", g.Name)
	assert.Equal(t, core.GraphIDFromName("services"), g.ID)

	api := g.Nodes[0]
	assert.Equal(t, "API", api.Label)
	assert.Equal(t, core.NodeIDFromName(g.ID, "api"), api.ID)
	assert.Equal(t, map[string]string{
		"tier":     "edge",
		"replicas": "3",
		"public":   "true",
		"ports":    "[80,443]",
	}, api.Metadata)

	worker := g.Nodes[1]
	assert.Equal(t, "worker", worker.Label, "label defaults to the node name")
	assert.Equal(t, vmath.V3(12, 6, 0), worker.Position)
	assert.Nil(t, worker.Metadata)

	first := g.Edges[0]
	assert.Zero(t, first.Weight)
	assert.Equal(t, api.ID, first.SourceID)
	assert.Equal(t, worker.ID, first.TargetID)

	second := g.Edges[1]
	assert.Equal(t, 2.5, second.Weight)
	assert.True(t, second.Highlighted)
	assert.Equal(t, "tcp", second.Metadata["protocol"])

	assert.Empty(t, s.Graphs[1].Nodes)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(testContext(), "testdata/bad_edge.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown target node "missing"`)

	_, err = Load(testContext(), "testdata/does_not_exist.hcl")
	assert.Error(t, err)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "duplicate node",
			src: `graph "g" {
  node "a" {}
  node "a" {}
}`,
			want: `duplicate node "a"`,
		},
		{
			name: "duplicate graph",
			src:  "graph \"g\" {\n}\ngraph \"g\" {\n}\n",
			want: `duplicate graph "g"`,
		},
		{
			name: "bad position",
			src: `graph "g" {
  node "a" { position = [1] }
}`,
			want: "position needs 2 or 3 numbers",
		},
		{
			name: "metadata not an object",
			src: `graph "g" {
  node "a" { metadata = "x" }
}`,
			want: "metadata must be an object",
		},
		{
			name: "non positive weight",
			src: `graph "g" {
  node "a" {}
  node "b" {}
  edge "ab" {
    source = "a"
    target = "b"
    weight = 0
  }
}`,
			want: "weight must be positive",
		},
		{
			name: "missing edge source",
			src: `graph "g" {
  node "a" {}
  edge "e" { target = "a" }
}`,
			want: "source",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.src), "inline.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestApply(t *testing.T) {
	ctx := testContext()
	s, err := Load(ctx, "testdata/services.hcl")
	require.NoError(t, err)

	q := event.NewQueue()
	svc := domain.NewService(q, domain.WithLogger(ctxlog.Discard()))
	require.NoError(t, s.Apply(ctx, svc))

	g, ok := svc.Snapshot(core.GraphIDFromName("services"))
	require.True(t, ok)
	assert.Len(t, g.Nodes, 3)
	assert.Len(t, g.Edges, 2)

	apiID := core.NodeIDFromName(g.ID, "api")
	assert.Equal(t, "API", g.Nodes[apiID].Metadata["label"])
	assert.Equal(t, "edge", g.Nodes[apiID].Metadata["tier"])

	e, ok := g.Edge(core.EdgeIDFromName(g.ID, "api_worker"))
	require.True(t, ok)
	assert.Equal(t, domain.DefaultEdgeWeight, e.Weight)

	hot, ok := g.Edge(core.EdgeIDFromName(g.ID, "worker_db"))
	require.True(t, ok)
	assert.True(t, hot.Highlighted)

	_, ok = svc.Snapshot(core.GraphIDFromName("empty"))
	assert.True(t, ok)

	// Nodes are published before edges
	var sawEdge bool
	for _, ev := range q.Consume() {
		switch ev.Type {
		case event.EventEdgeCreated:
			sawEdge = true
		case event.EventNodeCreated:
			assert.False(t, sawEdge, "node created after an edge")
		}
	}
	assert.True(t, sawEdge)

	// Applying twice fails on the existing nodes
	assert.ErrorIs(t, s.Apply(ctx, svc), domain.ErrInvalidArgument)
}

func TestApplyLargeSceneReachesWorld(t *testing.T) {
	const nodes = 1200

	var src strings.Builder
	src.WriteString("graph \"big\" {\n")
	for i := 0; i < nodes; i++ {
		fmt.Fprintf(&src, "  node \"n%d\" {\n    position = [%d, %d]\n    label = \"Node %d\"\n  }\n", i, i%40, i/40, i)
	}
	for i := 1; i < nodes; i++ {
		fmt.Fprintf(&src, "  edge \"e%d\" {\n    source = \"n%d\"\n    target = \"n%d\"\n  }\n", i, i-1, i)
	}
	src.WriteString("}\n")

	s, err := Parse([]byte(src.String()), "big.hcl")
	require.NoError(t, err)
	require.Equal(t, nodes, s.NodeCount())

	world := engine.NewWorld()
	world.Resources.Log = ctxlog.Discard()
	system.RegisterAll(world, nil)
	sched := engine.NewScheduler(world, engine.NewManualClock(time.Unix(0, 0)), 0)
	sched.Setup()

	svc := domain.NewService(world.Resources.Inbound,
		domain.WithLogger(ctxlog.Discard()),
		domain.WithDrain(parameter.EventQueueSize/2, func() { sched.Drain() }),
	)
	require.NoError(t, s.Apply(testContext(), svc))
	for i := 0; i < 4; i++ {
		sched.Tick()
	}

	assert.Zero(t, world.Resources.Inbound.Dropped())
	assert.Equal(t, nodes, world.Components.NodeVisual.Count())
	assert.Equal(t, nodes-1, world.Components.EdgeVisual.Count())

	g := core.GraphIDFromName("big")
	for _, name := range []string{"n0", "n1199"} {
		e, ok := world.Index.Node(core.NodeIDFromName(g, name))
		require.True(t, ok, name)
		nv, _ := world.Components.NodeVisual.Get(e)
		assert.Equal(t, "Node "+strings.TrimPrefix(name, "n"), nv.Label)
	}
}
