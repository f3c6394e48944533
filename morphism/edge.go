package morphism

import (
	"github.com/lixenwraith/graphview/component"
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
)

// StandardEdgeMorphism spawns a line visual between two node visuals
type StandardEdgeMorphism struct{}

// CreateVisual spawns and indexes an edge visual with the default weight
func (StandardEdgeMorphism) CreateVisual(w *engine.World, edgeID core.EdgeID, graphID core.GraphID, source, target core.Entity) core.Entity {
	if e, ok := w.Index.Edge(edgeID); ok {
		return e
	}

	src, ok := w.Components.NodeVisual.Get(source)
	if !ok {
		return core.NoEntity
	}
	dst, ok := w.Components.NodeVisual.Get(target)
	if !ok {
		return core.NoEntity
	}

	e := engine.With(
		engine.With(
			w.NewEntity(),
			w.Components.EdgeVisual, component.EdgeVisualComponent{
				EdgeID:   edgeID,
				GraphID:  graphID,
				Source:   source,
				Target:   target,
				SourceID: src.NodeID,
				TargetID: dst.NodeID,
				Weight:   component.DefaultEdgeWeight,
			},
		),
		w.Components.Metadata, component.MetadataComponent{Values: map[string]string{}},
	).Build()

	w.Index.PutEdge(edgeID, graphID, e, source, target)
	return e
}

// DeleteVisual despawns an edge visual
func (StandardEdgeMorphism) DeleteVisual(w *engine.World, e core.Entity) {
	despawnEdge(w, e)
}

// UpdateVisual applies a highlight or weight change
func (StandardEdgeMorphism) UpdateVisual(w *engine.World, e core.Entity, update EdgeUpdate) {
	ev, ok := w.Components.EdgeVisual.Get(e)
	if !ok {
		return
	}

	switch update.Kind {
	case EdgeUpdateHighlighted:
		if update.Highlighted {
			w.Components.Highlight.Set(e, component.HighlightComponent{})
		} else {
			w.Components.Highlight.Remove(e)
		}
	case EdgeUpdateWeight:
		ev.Weight = update.Weight
		w.Components.EdgeVisual.Set(e, ev)
	}
}

// despawnEdge unindexes and destroys an edge visual; shared with node cascade
func despawnEdge(w *engine.World, e core.Entity) {
	ev, ok := w.Components.EdgeVisual.Get(e)
	if !ok {
		return
	}
	w.Index.DropEdge(ev.EdgeID, ev.GraphID, ev.Source, ev.Target)
	w.DestroyEntity(e)
}
