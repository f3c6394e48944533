package system

import (
	"maps"

	"github.com/lixenwraith/graphview/component"
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/parameter"
)

// MetadataSystem mirrors domain metadata onto node and edge visuals
// Each payload replaces the whole map; an identical map leaves Revision untouched
type MetadataSystem struct {
	world *engine.World
}

func NewMetadataSystem(world *engine.World) engine.System {
	return &MetadataSystem{world: world}
}

func (s *MetadataSystem) Init() {}

func (s *MetadataSystem) Name() string {
	return "metadata"
}

func (s *MetadataSystem) Priority() int {
	return parameter.PriorityMetadata
}

func (s *MetadataSystem) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventNodeMetadataChanged,
		event.EventEdgeMetadataChanged,
	}
}

func (s *MetadataSystem) HandleEvent(ev event.GraphEvent) {
	switch ev.Type {
	case event.EventNodeMetadataChanged:
		payload, ok := ev.Payload.(*event.NodeMetadataChangedPayload)
		if !ok {
			return
		}
		e, ok := s.world.Index.Node(payload.NodeID)
		if !ok {
			return
		}
		if s.apply(e, payload.Metadata) {
			s.syncLabel(e, payload.Metadata)
		}

	case event.EventEdgeMetadataChanged:
		payload, ok := ev.Payload.(*event.EdgeMetadataChangedPayload)
		if !ok {
			return
		}
		if e, ok := s.world.Index.Edge(payload.EdgeID); ok {
			s.apply(e, payload.Metadata)
		}
	}
}

func (s *MetadataSystem) Update() {}

// apply stores a copy of values and reports whether anything changed
func (s *MetadataSystem) apply(e core.Entity, values map[string]string) bool {
	md, _ := s.world.Components.Metadata.Get(e)
	if md.Values != nil && md.SameValues(values) {
		return false
	}

	next := maps.Clone(values)
	if next == nil {
		next = map[string]string{}
	}
	s.world.Components.Metadata.Set(e, component.MetadataComponent{
		Values:   next,
		Revision: md.Revision + 1,
	})
	return true
}

// syncLabel mirrors the label key into the node visual, falling back to the short node ID
func (s *MetadataSystem) syncLabel(e core.Entity, values map[string]string) {
	nv, ok := s.world.Components.NodeVisual.Get(e)
	if !ok {
		return
	}
	label := values[component.MetadataLabelKey]
	if label == "" {
		label = nv.NodeID.Short()
	}
	if nv.Label != label {
		nv.Label = label
		s.world.Components.NodeVisual.Set(e, nv)
	}
}
