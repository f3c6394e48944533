package system

import (
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/morphism"
	"github.com/lixenwraith/graphview/parameter"
)

// NodeVisualSystem spawns and despawns node visuals from domain events
// Re-delivered creations and removals of unknown nodes are no-ops
type NodeVisualSystem struct {
	world *engine.World
	morph morphism.NodeMorphism
}

// NewNodeVisualSystem creates a node visual system; nil morph uses the standard one
func NewNodeVisualSystem(world *engine.World, morph morphism.NodeMorphism) engine.System {
	if morph == nil {
		morph = morphism.StandardNodeMorphism{}
	}
	return &NodeVisualSystem{
		world: world,
		morph: morph,
	}
}

func (s *NodeVisualSystem) Init() {}

func (s *NodeVisualSystem) Name() string {
	return "node_visual"
}

func (s *NodeVisualSystem) Priority() int {
	return parameter.PriorityNode
}

// EventTypes returns the event types NodeVisualSystem handles
func (s *NodeVisualSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventNodeCreated,
		event.EventNodeRemoved,
	}
}

// HandleEvent processes node lifecycle events
func (s *NodeVisualSystem) HandleEvent(ev event.GraphEvent) {
	switch ev.Type {
	case event.EventNodeCreated:
		if payload, ok := ev.Payload.(*event.NodeCreatedPayload); ok {
			s.handleCreated(payload)
		}

	case event.EventNodeRemoved:
		if payload, ok := ev.Payload.(*event.NodeRemovedPayload); ok {
			s.handleRemoved(payload)
		}
	}
}

func (s *NodeVisualSystem) Update() {}

func (s *NodeVisualSystem) handleCreated(p *event.NodeCreatedPayload) {
	if _, exists := s.world.Index.Node(p.NodeID); exists {
		s.world.Resources.Log.Debug("node visual exists", "node", p.NodeID.Short())
		return
	}

	e := s.morph.CreateVisual(s.world, p.NodeID, p.GraphID, p.Position)
	if e == core.NoEntity {
		return
	}

	if p.Label != "" {
		if nv, ok := s.world.Components.NodeVisual.Get(e); ok {
			nv.Label = p.Label
			s.world.Components.NodeVisual.Set(e, nv)
		}
	}

	s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundCreate})
}

func (s *NodeVisualSystem) handleRemoved(p *event.NodeRemovedPayload) {
	e, ok := s.world.Index.Node(p.NodeID)
	if !ok {
		s.world.Resources.Log.Debug("node visual missing", "node", p.NodeID.Short())
		return
	}

	s.morph.DeleteVisual(s.world, e)
	s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundDelete})
}
