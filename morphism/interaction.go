package morphism

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/vmath"
)

// StandardInteractionMorphism resolves entities against a world
// and applies the default key map:
//
//	n          create node at cursor
//	x, Delete  delete selected
//	c          connect selected
//	l          layout graph
type StandardInteractionMorphism struct {
	world *engine.World

	mu     sync.Mutex
	cursor vmath.Vec3
}

// NewStandardInteractionMorphism creates an interaction morphism bound to w
func NewStandardInteractionMorphism(w *engine.World) *StandardInteractionMorphism {
	return &StandardInteractionMorphism{world: w}
}

// SetCursor records the pointer position used by CreateNode
func (m *StandardInteractionMorphism) SetCursor(worldPos vmath.Vec3) {
	m.mu.Lock()
	m.cursor = worldPos
	m.mu.Unlock()
}

// MapClick selects the clicked node exclusively; empty space clears the selection
func (m *StandardInteractionMorphism) MapClick(worldPos vmath.Vec3, e core.Entity) event.SelectionChangedPayload {
	nv, ok := m.world.Components.NodeVisual.Get(e)
	if !ok {
		return event.SelectionChangedPayload{Exclusive: true, WorldPos: worldPos}
	}
	return event.SelectionChangedPayload{
		GraphID:   nv.GraphID,
		Selected:  []core.NodeID{nv.NodeID},
		Exclusive: true,
		WorldPos:  worldPos,
	}
}

// MapDrag offsets the node's current translation by delta
// A non-node entity yields a zero payload
func (m *StandardInteractionMorphism) MapDrag(e core.Entity, delta vmath.Vec3) event.NodePositionChangedPayload {
	nv, ok := m.world.Components.NodeVisual.Get(e)
	if !ok {
		return event.NodePositionChangedPayload{}
	}
	tr, _ := m.world.Components.Transform.Get(e)
	return event.NodePositionChangedPayload{
		NodeID:      nv.NodeID,
		GraphID:     nv.GraphID,
		NewPosition: vmath.V3Add(tr.Translation, delta),
	}
}

// MapKeyboard maps the default key bindings; modified presses carry no command
func (m *StandardInteractionMorphism) MapKeyboard(key KeyCode, mods Modifiers) (DomainCommand, bool) {
	if mods.Ctrl || mods.Alt {
		return DomainCommand{}, false
	}

	switch key.Key {
	case tcell.KeyDelete:
		return DeleteSelected(), true
	case tcell.KeyRune:
		switch key.Rune {
		case 'n':
			m.mu.Lock()
			pos := m.cursor
			m.mu.Unlock()
			return CreateNode(pos), true
		case 'x':
			return DeleteSelected(), true
		case 'c':
			return ConnectSelected(), true
		case 'l':
			return LayoutGraph(), true
		}
	}
	return DomainCommand{}, false
}
