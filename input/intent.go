package input

import (
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/morphism"
)

// IntentType discriminates semantic actions
type IntentType uint8

const (
	IntentNone IntentType = iota

	IntentQuit   // Esc, Ctrl+C, Ctrl+Q
	IntentResize // Terminal resize event; Cell holds the new size

	// Mouse
	IntentHover   // Pointer moved with no button held
	IntentClick   // Button-1 press and release on the same cell
	IntentDrag    // Button-1 held while the pointer moved From -> To
	IntentDragEnd // Button-1 released after a drag

	// Keyboard
	IntentKey // Any other key press, mapped by the interaction morphism
)

// Intent represents a parsed user action
type Intent struct {
	Type      IntentType
	Cell      core.Point
	From      core.Point
	To        core.Point
	Key       morphism.KeyCode
	Modifiers morphism.Modifiers
}
