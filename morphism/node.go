package morphism

import (
	"github.com/lixenwraith/graphview/component"
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/vmath"
)

// StandardNodeMorphism spawns a node visual with transform and empty metadata
type StandardNodeMorphism struct{}

// CreateVisual spawns and indexes a node visual
func (StandardNodeMorphism) CreateVisual(w *engine.World, nodeID core.NodeID, graphID core.GraphID, pos vmath.Vec3) core.Entity {
	if e, ok := w.Index.Node(nodeID); ok {
		return e
	}

	e := engine.With(
		engine.With(
			engine.With(
				w.NewEntity(),
				w.Components.NodeVisual, component.NodeVisualComponent{
					NodeID:  nodeID,
					GraphID: graphID,
					Label:   nodeID.Short(),
				},
			),
			w.Components.Transform, component.TransformComponent{Translation: pos},
		),
		w.Components.Metadata, component.MetadataComponent{Values: map[string]string{}},
	).Build()

	w.Index.PutNode(nodeID, graphID, e)
	return e
}

// DeleteVisual despawns a node visual and every edge visual touching it
func (StandardNodeMorphism) DeleteVisual(w *engine.World, e core.Entity) {
	nv, ok := w.Components.NodeVisual.Get(e)
	if !ok {
		return
	}

	_, incident, _ := w.Index.DropNode(nv.NodeID, nv.GraphID)
	for _, edge := range incident {
		despawnEdge(w, edge)
	}
	w.DestroyEntity(e)
}

// UpdateVisual applies a position or selection change
func (StandardNodeMorphism) UpdateVisual(w *engine.World, e core.Entity, update NodeUpdate) {
	if !w.Components.NodeVisual.Has(e) {
		return
	}

	switch update.Kind {
	case NodeUpdatePosition:
		w.Components.Transform.Set(e, component.TransformComponent{Translation: update.Position})
	case NodeUpdateSelected:
		if update.Selected {
			w.Components.Selected.Set(e, component.SelectedComponent{})
		} else {
			w.Components.Selected.Remove(e)
		}
	}
}
