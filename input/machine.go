package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/morphism"
)

// Machine is the input state machine
// Parses tcell events into semantic Intent
//
// Mouse states: idle -> pressed (button-1 down) -> dragging (moved while held)
// Release from pressed is a click, release from dragging ends the drag
type Machine struct {
	pressed  bool
	dragging bool

	pressCell core.Point
	lastCell  core.Point
	pressMods morphism.Modifiers
}

// NewMachine creates a new input machine
func NewMachine() *Machine {
	return &Machine{}
}

// Reset clears all pending mouse state
func (m *Machine) Reset() {
	m.pressed = false
	m.dragging = false
}

// Dragging reports whether a drag is in progress
func (m *Machine) Dragging() bool {
	return m.dragging
}

// Process parses a tcell event and returns an Intent
// Returns nil if input is incomplete or ignored
func (m *Machine) Process(ev tcell.Event) *Intent {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		return &Intent{Type: IntentResize, Cell: core.Point{X: w, Y: h}}
	case *tcell.EventKey:
		return m.processKey(ev)
	case *tcell.EventMouse:
		return m.processMouse(ev)
	}
	return nil
}

func (m *Machine) processKey(ev *tcell.EventKey) *Intent {
	mods := morphism.ModifiersFromMask(ev.Modifiers())

	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC, tcell.KeyCtrlQ:
		return &Intent{Type: IntentQuit}
	case tcell.KeyRune:
		return &Intent{Type: IntentKey, Key: morphism.RuneKey(ev.Rune()), Modifiers: mods}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		// Terminals without a Delete key send backspace
		return &Intent{Type: IntentKey, Key: morphism.SpecialKey(tcell.KeyDelete), Modifiers: mods}
	default:
		return &Intent{Type: IntentKey, Key: morphism.SpecialKey(ev.Key()), Modifiers: mods}
	}
}

func (m *Machine) processMouse(ev *tcell.EventMouse) *Intent {
	x, y := ev.Position()
	cell := core.Point{X: x, Y: y}
	held := ev.Buttons()&tcell.Button1 != 0

	switch {
	case held && !m.pressed:
		m.pressed = true
		m.dragging = false
		m.pressCell = cell
		m.lastCell = cell
		m.pressMods = morphism.ModifiersFromMask(ev.Modifiers())
		return nil

	case held && m.pressed:
		if cell == m.lastCell {
			return nil
		}
		from := m.lastCell
		m.lastCell = cell
		m.dragging = true
		return &Intent{Type: IntentDrag, From: from, To: cell, Modifiers: m.pressMods}

	case !held && m.pressed:
		wasDragging := m.dragging
		m.Reset()
		if wasDragging {
			return &Intent{Type: IntentDragEnd, Cell: cell, Modifiers: m.pressMods}
		}
		return &Intent{Type: IntentClick, Cell: m.pressCell, Modifiers: m.pressMods}

	default:
		return &Intent{Type: IntentHover, Cell: cell}
	}
}
