package morphism

import (
	"fmt"

	"github.com/lixenwraith/graphview/vmath"
)

// NodeUpdateKind tags the variant carried by a NodeUpdate
type NodeUpdateKind uint8

const (
	NodeUpdatePosition NodeUpdateKind = iota // Overwrite transform translation
	NodeUpdateSelected                       // Insert or remove the selection marker
)

// NodeUpdate is a closed variant of visual node changes
// Only the field matching Kind is meaningful
type NodeUpdate struct {
	Kind     NodeUpdateKind
	Position vmath.Vec3
	Selected bool
}

// UpdatePosition builds a position node update
func UpdatePosition(pos vmath.Vec3) NodeUpdate {
	return NodeUpdate{Kind: NodeUpdatePosition, Position: pos}
}

// UpdateSelected builds a selection node update
func UpdateSelected(selected bool) NodeUpdate {
	return NodeUpdate{Kind: NodeUpdateSelected, Selected: selected}
}

func (u NodeUpdate) String() string {
	switch u.Kind {
	case NodeUpdatePosition:
		return fmt.Sprintf("Position(%.2f,%.2f,%.2f)", u.Position.X, u.Position.Y, u.Position.Z)
	case NodeUpdateSelected:
		return fmt.Sprintf("Selected(%t)", u.Selected)
	default:
		return fmt.Sprintf("NodeUpdate(%d)", u.Kind)
	}
}

// EdgeUpdateKind tags the variant carried by an EdgeUpdate
type EdgeUpdateKind uint8

const (
	EdgeUpdateHighlighted EdgeUpdateKind = iota // Insert or remove the highlight marker
	EdgeUpdateWeight                            // Overwrite edge weight
)

// EdgeUpdate is a closed variant of visual edge changes
type EdgeUpdate struct {
	Kind        EdgeUpdateKind
	Highlighted bool
	Weight      float64
}

// UpdateHighlighted builds a highlight edge update
func UpdateHighlighted(highlighted bool) EdgeUpdate {
	return EdgeUpdate{Kind: EdgeUpdateHighlighted, Highlighted: highlighted}
}

// UpdateWeight builds a weight edge update
func UpdateWeight(weight float64) EdgeUpdate {
	return EdgeUpdate{Kind: EdgeUpdateWeight, Weight: weight}
}

func (u EdgeUpdate) String() string {
	switch u.Kind {
	case EdgeUpdateHighlighted:
		return fmt.Sprintf("Highlighted(%t)", u.Highlighted)
	case EdgeUpdateWeight:
		return fmt.Sprintf("Weight(%.3f)", u.Weight)
	default:
		return fmt.Sprintf("EdgeUpdate(%d)", u.Kind)
	}
}
