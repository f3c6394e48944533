package system

import (
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/morphism"
	"github.com/lixenwraith/graphview/parameter"
)

// GraphSystem despawns every visual owned by a cleared graph
type GraphSystem struct {
	world *engine.World
	nodes morphism.NodeMorphism
	edges morphism.EdgeMorphism
}

func NewGraphSystem(world *engine.World, nodes morphism.NodeMorphism, edges morphism.EdgeMorphism) engine.System {
	if nodes == nil {
		nodes = morphism.StandardNodeMorphism{}
	}
	if edges == nil {
		edges = morphism.StandardEdgeMorphism{}
	}
	return &GraphSystem{world: world, nodes: nodes, edges: edges}
}

func (s *GraphSystem) Init() {}

func (s *GraphSystem) Name() string {
	return "graph"
}

func (s *GraphSystem) Priority() int {
	return parameter.PriorityGraph
}

func (s *GraphSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventGraphCleared}
}

func (s *GraphSystem) HandleEvent(ev event.GraphEvent) {
	payload, ok := ev.Payload.(*event.GraphClearedPayload)
	if !ok {
		return
	}

	entities := s.world.Index.GraphEntities(payload.GraphID)
	if len(entities) == 0 {
		return
	}

	// Edges first so node cascades find nothing left to do
	for _, e := range entities {
		if s.world.Components.EdgeVisual.Has(e) {
			s.edges.DeleteVisual(s.world, e)
		}
	}
	for _, e := range entities {
		if s.world.Components.NodeVisual.Has(e) {
			s.nodes.DeleteVisual(s.world, e)
		}
	}

	s.world.Resources.Log.Debug("graph cleared", "graph", payload.GraphID.Short(), "entities", len(entities))
}

func (s *GraphSystem) Update() {}
