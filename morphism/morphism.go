// Package morphism holds the mappings between the domain graph model and
// its visual entities, in both directions.
//
// Node and edge morphisms turn domain changes into entity mutations.
// The interaction morphism turns clicks, drags and key presses into
// domain-side payloads and commands. Every operation that names an entity
// which no longer exists is a silent no-op.
package morphism

import (
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/vmath"
)

// NodeMorphism maps domain node operations to visual node operations
type NodeMorphism interface {
	// CreateVisual spawns a node visual and indexes it
	// Returns the existing entity when the node is already indexed
	CreateVisual(w *engine.World, nodeID core.NodeID, graphID core.GraphID, pos vmath.Vec3) core.Entity

	// DeleteVisual despawns a node visual together with its incident edge visuals
	DeleteVisual(w *engine.World, e core.Entity)

	// UpdateVisual applies one update variant
	UpdateVisual(w *engine.World, e core.Entity, update NodeUpdate)
}

// EdgeMorphism maps domain edge operations to visual edge operations
type EdgeMorphism interface {
	// CreateVisual spawns a line visual between two node visuals and indexes it
	// Returns core.NoEntity when either endpoint is not a node visual
	CreateVisual(w *engine.World, edgeID core.EdgeID, graphID core.GraphID, source, target core.Entity) core.Entity

	// DeleteVisual despawns an edge visual
	DeleteVisual(w *engine.World, e core.Entity)

	// UpdateVisual applies one update variant
	UpdateVisual(w *engine.World, e core.Entity, update EdgeUpdate)
}

// InteractionMorphism maps visual interactions to domain payloads
type InteractionMorphism interface {
	// MapClick maps a click at worldPos on entity e (NoEntity for empty space)
	MapClick(worldPos vmath.Vec3, e core.Entity) event.SelectionChangedPayload

	// MapDrag maps dragging entity e by delta world units
	MapDrag(e core.Entity, delta vmath.Vec3) event.NodePositionChangedPayload

	// MapKeyboard maps a key press; false means the key has no command
	MapKeyboard(key KeyCode, mods Modifiers) (DomainCommand, bool)
}

// CursorTracker is implemented by interaction morphisms that place created nodes at the pointer
type CursorTracker interface {
	SetCursor(worldPos vmath.Vec3)
}
