package system

import (
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/morphism"
	"github.com/lixenwraith/graphview/parameter"
)

// SelectionSystem applies selection changes to node visuals
type SelectionSystem struct {
	world *engine.World
	morph morphism.NodeMorphism
}

func NewSelectionSystem(world *engine.World, morph morphism.NodeMorphism) engine.System {
	if morph == nil {
		morph = morphism.StandardNodeMorphism{}
	}
	return &SelectionSystem{world: world, morph: morph}
}

func (s *SelectionSystem) Init() {}

func (s *SelectionSystem) Name() string {
	return "selection"
}

func (s *SelectionSystem) Priority() int {
	return parameter.PrioritySelection
}

func (s *SelectionSystem) EventTypes() []event.EventType {
	return []event.EventType{event.EventSelectionChanged}
}

// HandleEvent applies Exclusive clearing, then Deselected, then Selected
// The select cue plays only when a node actually becomes selected
func (s *SelectionSystem) HandleEvent(ev event.GraphEvent) {
	payload, ok := ev.Payload.(*event.SelectionChangedPayload)
	if !ok {
		return
	}

	keep := make(map[core.NodeID]struct{}, len(payload.Selected))
	for _, id := range payload.Selected {
		keep[id] = struct{}{}
	}

	if payload.Exclusive {
		selected := s.world.Query().
			With(s.world.Components.Selected).
			With(s.world.Components.NodeVisual).
			Execute()
		for _, e := range selected {
			nv, _ := s.world.Components.NodeVisual.Get(e)
			// Empty GraphID clears across graphs
			if payload.GraphID != "" && nv.GraphID != payload.GraphID {
				continue
			}
			if _, kept := keep[nv.NodeID]; !kept {
				s.set(e, false)
			}
		}
	}

	for _, id := range payload.Deselected {
		if e, ok := s.world.Index.Node(id); ok {
			s.set(e, false)
		}
	}

	flipped := 0
	for _, id := range payload.Selected {
		if e, ok := s.world.Index.Node(id); ok && s.set(e, true) {
			flipped++
		}
	}

	if flipped > 0 {
		s.world.PushEvent(event.EventSoundRequest, &event.SoundRequestPayload{SoundType: core.SoundSelect})
	}
}

// set applies the marker through the morphism and reports whether it changed
func (s *SelectionSystem) set(e core.Entity, on bool) bool {
	was := s.world.Components.Selected.Has(e)
	s.morph.UpdateVisual(s.world, e, morphism.UpdateSelected(on))
	return s.world.Components.Selected.Has(e) != was
}

func (s *SelectionSystem) Update() {}
