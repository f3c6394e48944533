package system

import (
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/morphism"
	"github.com/lixenwraith/graphview/parameter"
)

// EdgeVisualSystem spawns, updates and despawns edge visuals
// An edge whose endpoints are not both visible is dropped, not deferred
type EdgeVisualSystem struct {
	world *engine.World
	morph morphism.EdgeMorphism
}

// NewEdgeVisualSystem creates an edge visual system; nil morph uses the standard one
func NewEdgeVisualSystem(world *engine.World, morph morphism.EdgeMorphism) engine.System {
	if morph == nil {
		morph = morphism.StandardEdgeMorphism{}
	}
	return &EdgeVisualSystem{
		world: world,
		morph: morph,
	}
}

func (s *EdgeVisualSystem) Init() {}

func (s *EdgeVisualSystem) Name() string {
	return "edge_visual"
}

func (s *EdgeVisualSystem) Priority() int {
	return parameter.PriorityEdge
}

// EventTypes returns the event types EdgeVisualSystem handles
func (s *EdgeVisualSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventEdgeCreated,
		event.EventEdgeRemoved,
		event.EventEdgeHighlightChanged,
		event.EventEdgeWeightChanged,
	}
}

// HandleEvent processes edge lifecycle and update events
func (s *EdgeVisualSystem) HandleEvent(ev event.GraphEvent) {
	switch ev.Type {
	case event.EventEdgeCreated:
		if payload, ok := ev.Payload.(*event.EdgeCreatedPayload); ok {
			s.handleCreated(payload)
		}

	case event.EventEdgeRemoved:
		if payload, ok := ev.Payload.(*event.EdgeRemovedPayload); ok {
			if e, found := s.world.Index.Edge(payload.EdgeID); found {
				s.morph.DeleteVisual(s.world, e)
			}
		}

	case event.EventEdgeHighlightChanged:
		if payload, ok := ev.Payload.(*event.EdgeHighlightChangedPayload); ok {
			s.update(payload.EdgeID, morphism.UpdateHighlighted(payload.Highlighted))
		}

	case event.EventEdgeWeightChanged:
		if payload, ok := ev.Payload.(*event.EdgeWeightChangedPayload); ok {
			s.update(payload.EdgeID, morphism.UpdateWeight(payload.Weight))
		}
	}
}

func (s *EdgeVisualSystem) Update() {}

func (s *EdgeVisualSystem) handleCreated(p *event.EdgeCreatedPayload) {
	if _, exists := s.world.Index.Edge(p.EdgeID); exists {
		return
	}

	source, okSrc := s.world.Index.Node(p.SourceID)
	target, okDst := s.world.Index.Node(p.TargetID)
	if !okSrc || !okDst {
		s.world.Resources.Log.Debug("edge dropped, endpoint missing",
			"edge", p.EdgeID.Short(), "source", okSrc, "target", okDst)
		return
	}

	e := s.morph.CreateVisual(s.world, p.EdgeID, p.GraphID, source, target)
	if e == core.NoEntity {
		return
	}
	if p.Weight > 0 {
		s.morph.UpdateVisual(s.world, e, morphism.UpdateWeight(p.Weight))
	}
}

func (s *EdgeVisualSystem) update(id core.EdgeID, u morphism.EdgeUpdate) {
	e, ok := s.world.Index.Edge(id)
	if !ok {
		s.world.Resources.Log.Debug("edge visual missing", "edge", id.Short(), "update", u.String())
		return
	}
	s.morph.UpdateVisual(s.world, e, u)
}
