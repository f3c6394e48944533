package system

import (
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/event"
	"github.com/lixenwraith/graphview/input"
	"github.com/lixenwraith/graphview/morphism"
	"github.com/lixenwraith/graphview/parameter"
	"github.com/lixenwraith/graphview/vmath"
)

// Picker resolves terminal cells against the current view
type Picker interface {
	CellToWorld(cell core.Point) vmath.Vec3
	EntityAt(cell core.Point) core.Entity
}

// InteractionSystem maps input intents to outbound domain requests
// Clicks become selection requests, drags become move requests, keys become commands
// Drag motion within one tick is folded into a single move request
type InteractionSystem struct {
	world  *engine.World
	morph  morphism.InteractionMorphism
	picker Picker

	mu      sync.Mutex
	pending []input.Intent

	dragActive bool
	dragEntity core.Entity
	dragDelta  vmath.Vec3
}

// NewInteractionSystem creates an interaction system; nil morph uses the standard one
func NewInteractionSystem(world *engine.World, morph morphism.InteractionMorphism, picker Picker) *InteractionSystem {
	if morph == nil {
		morph = morphism.NewStandardInteractionMorphism(world)
	}
	return &InteractionSystem{
		world:  world,
		morph:  morph,
		picker: picker,
	}
}

// Init resets drag state and drops queued intents
func (s *InteractionSystem) Init() {
	s.mu.Lock()
	s.pending = s.pending[:0]
	s.mu.Unlock()
	s.endDrag()
}

func (s *InteractionSystem) Name() string {
	return "interaction"
}

func (s *InteractionSystem) Priority() int {
	return parameter.PriorityInput
}

// Submit queues an intent for the next Update; safe from the input goroutine
func (s *InteractionSystem) Submit(it input.Intent) {
	s.mu.Lock()
	s.pending = append(s.pending, it)
	s.mu.Unlock()
}

// Update maps every queued intent in arrival order
func (s *InteractionSystem) Update() {
	s.mu.Lock()
	intents := s.pending
	s.pending = nil
	s.mu.Unlock()

	// Headless worlds have no view to resolve cells against
	if s.picker == nil {
		return
	}

	for _, it := range intents {
		switch it.Type {
		case input.IntentHover:
			s.trackCursor(it.Cell)
		case input.IntentClick:
			s.handleClick(it)
		case input.IntentDrag:
			s.handleDrag(it)
		case input.IntentDragEnd:
			s.flushDrag()
			s.endDrag()
		case input.IntentKey:
			s.handleKey(it)
		}
	}

	s.flushDrag()
}

func (s *InteractionSystem) trackCursor(cell core.Point) vmath.Vec3 {
	pos := s.picker.CellToWorld(cell)
	if tracker, ok := s.morph.(morphism.CursorTracker); ok {
		tracker.SetCursor(pos)
	}
	return pos
}

func (s *InteractionSystem) handleClick(it input.Intent) {
	pos := s.trackCursor(it.Cell)
	e := s.picker.EntityAt(it.Cell)
	sel := s.morph.MapClick(pos, e)

	// Shift toggles the clicked node without touching the rest of the selection
	if it.Modifiers.Shift && len(sel.Selected) > 0 {
		sel.Exclusive = false
		if s.world.Components.Selected.Has(e) {
			sel.Deselected = sel.Selected
			sel.Selected = nil
		}
	}

	s.world.PushOutbound(event.EventSelectionRequest, &sel)
}

func (s *InteractionSystem) handleDrag(it input.Intent) {
	if !s.dragActive {
		s.dragActive = true
		s.dragEntity = s.picker.EntityAt(it.From)
		if !s.world.Components.NodeVisual.Has(s.dragEntity) {
			s.dragEntity = core.NoEntity
		}
	}
	if s.dragEntity == core.NoEntity {
		return
	}

	step := vmath.V3Sub(s.picker.CellToWorld(it.To), s.picker.CellToWorld(it.From))
	s.dragDelta = vmath.V3Add(s.dragDelta, step)
}

func (s *InteractionSystem) flushDrag() {
	if s.dragEntity == core.NoEntity || vmath.V3Equal(s.dragDelta, vmath.Vec3{}) {
		return
	}
	move := s.morph.MapDrag(s.dragEntity, s.dragDelta)
	s.dragDelta = vmath.Vec3{}
	if move.NodeID == "" {
		return
	}
	s.world.PushOutbound(event.EventMoveRequest, &move)
}

func (s *InteractionSystem) endDrag() {
	s.dragActive = false
	s.dragEntity = core.NoEntity
	s.dragDelta = vmath.Vec3{}
}

func (s *InteractionSystem) handleKey(it input.Intent) {
	if it.Key.Key == tcell.KeyCtrlA {
		s.selectAll()
		return
	}

	cmd, ok := s.morph.MapKeyboard(it.Key, it.Modifiers)
	if !ok {
		return
	}
	s.world.PushOutbound(event.EventDomainCommand, cmd)
}

// selectAll requests an exclusive selection of every node, one request per graph
func (s *InteractionSystem) selectAll() {
	byGraph := make(map[core.GraphID][]core.NodeID)
	var order []core.GraphID
	for _, e := range s.world.Components.NodeVisual.All() {
		nv, ok := s.world.Components.NodeVisual.Get(e)
		if !ok {
			continue
		}
		if _, seen := byGraph[nv.GraphID]; !seen {
			order = append(order, nv.GraphID)
		}
		byGraph[nv.GraphID] = append(byGraph[nv.GraphID], nv.NodeID)
	}

	for _, g := range order {
		s.world.PushOutbound(event.EventSelectionRequest, &event.SelectionChangedPayload{
			GraphID:   g,
			Selected:  byGraph[g],
			Exclusive: true,
		})
	}
}
