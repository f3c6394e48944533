package system

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/vmath"
)

func TestNodeCreated_SpawnsWithLabel(t *testing.T) {
	f := newFixture(t)
	id := core.NewNodeID()

	f.emit(event.EventNodeCreated, &event.NodeCreatedPayload{
		NodeID: id, GraphID: f.graph, Position: vmath.V3(1, 2, 0), Label: "alpha",
	})
	f.tick()

	e, ok := f.world.Index.Node(id)
	require.True(t, ok)
	nv, _ := f.world.Components.NodeVisual.Get(e)
	assert.Equal(t, "alpha", nv.Label)
	tr, _ := f.world.Components.Transform.Get(e)
	assert.Equal(t, vmath.V3(1, 2, 0), tr.Translation)
	assert.Equal(t, []core.SoundType{core.SoundCreate}, f.audio.played)
}

func TestNodeCreated_Idempotent(t *testing.T) {
	f := newFixture(t)
	id := core.NewNodeID()
	payload := &event.NodeCreatedPayload{NodeID: id, GraphID: f.graph, Position: vmath.V3(0, 0, 0)}

	f.emit(event.EventNodeCreated, payload)
	f.emit(event.EventNodeCreated, payload)
	f.tick()
	f.emit(event.EventNodeCreated, payload)
	f.tick()

	assert.Equal(t, 1, f.world.EntityCount())
	assert.Equal(t, 1, f.world.Index.NodeCount())
	assert.Len(t, f.audio.played, 1)
}

func TestNodeRemoved_UnknownIsNoop(t *testing.T) {
	f := newFixture(t)
	f.addNode(vmath.V3(0, 0, 0))

	f.emit(event.EventNodeRemoved, &event.NodeRemovedPayload{NodeID: core.NewNodeID(), GraphID: f.graph})
	f.tick()

	assert.Equal(t, 1, f.world.EntityCount())
}

func TestNodeRemoved_CascadesEdges(t *testing.T) {
	f := newFixture(t)
	a, _ := f.addNode(vmath.V3(0, 0, 0))
	b, eb := f.addNode(vmath.V3(5, 0, 0))
	c, _ := f.addNode(vmath.V3(0, 5, 0))
	_, ab := f.addEdge(a, b)
	_, bc := f.addEdge(b, c)
	require.NotEqual(t, core.NoEntity, ab)
	require.NotEqual(t, core.NoEntity, bc)

	f.emit(event.EventNodeRemoved, &event.NodeRemovedPayload{NodeID: b, GraphID: f.graph})
	f.tick()

	assert.False(t, f.world.Alive(eb))
	assert.False(t, f.world.Alive(ab))
	assert.False(t, f.world.Alive(bc))
	assert.Equal(t, 2, f.world.EntityCount())
	assert.Zero(t, f.world.Index.EdgeCount())

	// Second delivery changes nothing
	f.emit(event.EventNodeRemoved, &event.NodeRemovedPayload{NodeID: b, GraphID: f.graph})
	f.tick()
	assert.Equal(t, 2, f.world.EntityCount())
}

func TestEdgeCreated_MissingEndpointDropped(t *testing.T) {
	f := newFixture(t)
	a, _ := f.addNode(vmath.V3(0, 0, 0))

	id, e := f.addEdge(a, core.NewNodeID())

	assert.Equal(t, core.NoEntity, e)
	_, ok := f.world.Index.Edge(id)
	assert.False(t, ok)
	assert.Equal(t, 1, f.world.EntityCount())
}

func TestEdgeCreated_SameTickAsNodes(t *testing.T) {
	f := newFixture(t)
	a, b := core.NewNodeID(), core.NewNodeID()
	edge := core.NewEdgeID()

	f.emit(event.EventNodeCreated, &event.NodeCreatedPayload{NodeID: a, GraphID: f.graph})
	f.emit(event.EventNodeCreated, &event.NodeCreatedPayload{NodeID: b, GraphID: f.graph})
	f.emit(event.EventEdgeCreated, &event.EdgeCreatedPayload{EdgeID: edge, GraphID: f.graph, SourceID: a, TargetID: b, Weight: 3})
	f.tick()

	e, ok := f.world.Index.Edge(edge)
	require.True(t, ok)
	ev, _ := f.world.Components.EdgeVisual.Get(e)
	assert.Equal(t, 3.0, ev.Weight)
	assert.Equal(t, a, ev.SourceID)
	assert.Equal(t, b, ev.TargetID)
}

func TestEdgeUpdates(t *testing.T) {
	f := newFixture(t)
	a, _ := f.addNode(vmath.V3(0, 0, 0))
	b, _ := f.addNode(vmath.V3(5, 0, 0))
	id, e := f.addEdge(a, b)

	f.emit(event.EventEdgeHighlightChanged, &event.EdgeHighlightChangedPayload{EdgeID: id, GraphID: f.graph, Highlighted: true})
	f.emit(event.EventEdgeWeightChanged, &event.EdgeWeightChangedPayload{EdgeID: id, GraphID: f.graph, Weight: 0.25})
	f.tick()

	assert.True(t, f.world.Components.Highlight.Has(e))
	ev, _ := f.world.Components.EdgeVisual.Get(e)
	assert.Equal(t, 0.25, ev.Weight)

	f.emit(event.EventEdgeRemoved, &event.EdgeRemovedPayload{EdgeID: id, GraphID: f.graph})
	f.tick()
	assert.False(t, f.world.Alive(e))
	assert.False(t, f.world.Components.Highlight.Has(e))
}

func TestPositionChanged(t *testing.T) {
	f := newFixture(t)
	id, e := f.addNode(vmath.V3(0, 0, 0))

	f.emit(event.EventNodePositionChanged, &event.NodePositionChangedPayload{NodeID: id, GraphID: f.graph, NewPosition: vmath.V3(9, 9, 1)})
	f.emit(event.EventNodePositionChanged, &event.NodePositionChangedPayload{NodeID: core.NewNodeID(), NewPosition: vmath.V3(1, 1, 1)})
	f.tick()

	tr, _ := f.world.Components.Transform.Get(e)
	assert.Equal(t, vmath.V3(9, 9, 1), tr.Translation)
	assert.Equal(t, 1, f.world.Components.Transform.Count())
}

func TestMetadataChanged_RevisionOnlyOnChange(t *testing.T) {
	f := newFixture(t)
	id, e := f.addNode(vmath.V3(0, 0, 0))
	md := map[string]string{"label": "hub", "kind": "router"}

	f.emit(event.EventNodeMetadataChanged, &event.NodeMetadataChangedPayload{NodeID: id, GraphID: f.graph, Metadata: md})
	f.tick()

	got, _ := f.world.Components.Metadata.Get(e)
	assert.Equal(t, uint64(1), got.Revision)
	assert.Equal(t, md, got.Values)
	nv, _ := f.world.Components.NodeVisual.Get(e)
	assert.Equal(t, "hub", nv.Label)

	// Identical map is a no-op
	f.emit(event.EventNodeMetadataChanged, &event.NodeMetadataChangedPayload{NodeID: id, GraphID: f.graph, Metadata: map[string]string{"kind": "router", "label": "hub"}})
	f.tick()
	got, _ = f.world.Components.Metadata.Get(e)
	assert.Equal(t, uint64(1), got.Revision)

	// Caller mutation after delivery does not leak into the component
	md["kind"] = "switch"
	got, _ = f.world.Components.Metadata.Get(e)
	assert.Equal(t, "router", got.Values["kind"])
}

func TestMetadataChanged_DroppedLabelFallsBackToShortID(t *testing.T) {
	f := newFixture(t)
	id, e := f.addNode(vmath.V3(0, 0, 0))

	f.emit(event.EventNodeMetadataChanged, &event.NodeMetadataChangedPayload{NodeID: id, GraphID: f.graph, Metadata: map[string]string{"label": "hub"}})
	f.tick()
	nv, _ := f.world.Components.NodeVisual.Get(e)
	require.Equal(t, "hub", nv.Label)

	f.emit(event.EventNodeMetadataChanged, &event.NodeMetadataChangedPayload{NodeID: id, GraphID: f.graph, Metadata: map[string]string{"kind": "router"}})
	f.tick()
	nv, _ = f.world.Components.NodeVisual.Get(e)
	assert.Equal(t, id.Short(), nv.Label)
}

func TestEdgeMetadataChanged(t *testing.T) {
	f := newFixture(t)
	a, _ := f.addNode(vmath.V3(0, 0, 0))
	b, _ := f.addNode(vmath.V3(5, 0, 0))
	id, e := f.addEdge(a, b)

	f.emit(event.EventEdgeMetadataChanged, &event.EdgeMetadataChangedPayload{EdgeID: id, GraphID: f.graph, Metadata: map[string]string{"proto": "tcp"}})
	f.tick()

	got, _ := f.world.Components.Metadata.Get(e)
	assert.Equal(t, uint64(1), got.Revision)
	assert.Equal(t, "tcp", got.Values["proto"])
}

func TestSelectionChanged(t *testing.T) {
	f := newFixture(t)
	a, ea := f.addNode(vmath.V3(0, 0, 0))
	b, eb := f.addNode(vmath.V3(5, 0, 0))
	c, ec := f.addNode(vmath.V3(0, 5, 0))
	f.audio.played = nil

	f.emit(event.EventSelectionChanged, &event.SelectionChangedPayload{GraphID: f.graph, Selected: []core.NodeID{a, b}})
	f.tick()
	assert.True(t, f.world.Components.Selected.Has(ea))
	assert.True(t, f.world.Components.Selected.Has(eb))
	assert.Equal(t, []core.SoundType{core.SoundSelect}, f.audio.played)

	// Re-delivery flips nothing and stays silent
	f.emit(event.EventSelectionChanged, &event.SelectionChangedPayload{GraphID: f.graph, Selected: []core.NodeID{a, b}})
	f.tick()
	assert.Equal(t, 2, f.world.Components.Selected.Count())
	assert.Equal(t, []core.SoundType{core.SoundSelect}, f.audio.played)

	f.emit(event.EventSelectionChanged, &event.SelectionChangedPayload{GraphID: f.graph, Selected: []core.NodeID{c}, Exclusive: true})
	f.tick()
	assert.False(t, f.world.Components.Selected.Has(ea))
	assert.False(t, f.world.Components.Selected.Has(eb))
	assert.True(t, f.world.Components.Selected.Has(ec))

	f.emit(event.EventSelectionChanged, &event.SelectionChangedPayload{GraphID: f.graph, Deselected: []core.NodeID{c}})
	f.tick()
	assert.Zero(t, f.world.Components.Selected.Count())
}

func TestGraphCleared(t *testing.T) {
	f := newFixture(t)
	a, _ := f.addNode(vmath.V3(0, 0, 0))
	b, _ := f.addNode(vmath.V3(5, 0, 0))
	f.addEdge(a, b)

	other := core.NewGraphID()
	f.emit(event.EventNodeCreated, &event.NodeCreatedPayload{NodeID: core.NewNodeID(), GraphID: other})
	f.tick()
	require.Equal(t, 4, f.world.EntityCount())

	f.emit(event.EventGraphCleared, &event.GraphClearedPayload{GraphID: f.graph})
	f.tick()

	assert.Equal(t, 1, f.world.EntityCount())
	assert.Equal(t, 1, f.world.Index.NodeCount())
	assert.Zero(t, f.world.Index.EdgeCount())
	assert.Empty(t, f.world.Index.GraphEntities(f.graph))
}

func TestAudioSystem_NilPlayer(t *testing.T) {
	f := newFixture(t)
	f.world.Resources.Audio = nil
	s := NewAudioSystem(f.world)

	assert.NotPanics(t, func() {
		s.(*AudioSystem).HandleEvent(event.GraphEvent{
			Type:    event.EventSoundRequest,
			Payload: &event.SoundRequestPayload{SoundType: core.SoundError},
		})
	})
}
