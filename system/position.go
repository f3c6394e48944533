package system

import (
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/morphism"
	"github.com/lixenwraith/graphview/parameter"
)

// PositionSystem overwrites node transforms with authoritative domain positions
type PositionSystem struct {
	world *engine.World
	morph morphism.NodeMorphism
}

func NewPositionSystem(world *engine.World, morph morphism.NodeMorphism) engine.System {
	if morph == nil {
		morph = morphism.StandardNodeMorphism{}
	}
	return &PositionSystem{world: world, morph: morph}
}

func (s *PositionSystem) Init() {}

func (s *PositionSystem) Name() string {
	return "position"
}

func (s *PositionSystem) Priority() int {
	return parameter.PriorityPosition
}

func (s *PositionSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventNodePositionChanged}
}

func (s *PositionSystem) HandleEvent(ev event.GraphEvent) {
	payload, ok := ev.Payload.(*event.NodePositionChangedPayload)
	if !ok {
		return
	}
	e, ok := s.world.Index.Node(payload.NodeID)
	if !ok {
		return
	}
	s.morph.UpdateVisual(s.world, e, morphism.UpdatePosition(payload.NewPosition))
}

func (s *PositionSystem) Update() {}
