package morphism

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/graphview/vmath"
)

// Modifiers holds the modifier keys active during an interaction
type Modifiers struct {
	Shift bool
	Ctrl  bool
	Alt   bool
}

// ModifiersFromMask converts a tcell modifier mask
func ModifiersFromMask(m tcell.ModMask) Modifiers {
	return Modifiers{
		Shift: m&tcell.ModShift != 0,
		Ctrl:  m&tcell.ModCtrl != 0,
		Alt:   m&tcell.ModAlt != 0,
	}
}

// KeyCode identifies a pressed key; Rune is set only when Key is tcell.KeyRune
type KeyCode struct {
	Key  tcell.Key
	Rune rune
}

// RuneKey builds a KeyCode for a printable key
func RuneKey(r rune) KeyCode {
	return KeyCode{Key: tcell.KeyRune, Rune: r}
}

// SpecialKey builds a KeyCode for a non-printable key
func SpecialKey(k tcell.Key) KeyCode {
	return KeyCode{Key: k}
}

// CommandKind tags the variant carried by a DomainCommand
type CommandKind uint8

const (
	CommandCreateNode      CommandKind = iota // Create a node at Position
	CommandDeleteSelected                     // Remove every selected node
	CommandConnectSelected                    // Chain edges through the selected nodes
	CommandLayoutGraph                        // Arrange nodes on a ring
)

var commandNames = [...]string{
	CommandCreateNode:      "CreateNode",
	CommandDeleteSelected:  "DeleteSelected",
	CommandConnectSelected: "ConnectSelected",
	CommandLayoutGraph:     "LayoutGraph",
}

func (k CommandKind) String() string {
	if int(k) < len(commandNames) {
		return commandNames[k]
	}
	return "Unknown"
}

// DomainCommand is a closed variant of commands sent from the view to the domain
type DomainCommand struct {
	Kind     CommandKind
	Position vmath.Vec3 // CommandCreateNode only
}

// CreateNode builds a create-node command
func CreateNode(pos vmath.Vec3) DomainCommand {
	return DomainCommand{Kind: CommandCreateNode, Position: pos}
}

// DeleteSelected builds a delete-selected command
func DeleteSelected() DomainCommand {
	return DomainCommand{Kind: CommandDeleteSelected}
}

// ConnectSelected builds a connect-selected command
func ConnectSelected() DomainCommand {
	return DomainCommand{Kind: CommandConnectSelected}
}

// LayoutGraph builds a layout command
func LayoutGraph() DomainCommand {
	return DomainCommand{Kind: CommandLayoutGraph}
}

func (c DomainCommand) String() string {
	return c.Kind.String()
}
