package event

import (
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/vmath"
)

// NodeCreatedPayload describes a domain node that needs a visual
type NodeCreatedPayload struct {
	NodeID   core.NodeID  `json:"node_id"`
	GraphID  core.GraphID `json:"graph_id"`
	Position vmath.Vec3   `json:"position"`
	Label    string       `json:"label,omitempty"`
}

// NodeRemovedPayload identifies a deleted domain node
type NodeRemovedPayload struct {
	NodeID  core.NodeID  `json:"node_id"`
	GraphID core.GraphID `json:"graph_id"`
}

// EdgeCreatedPayload describes a domain edge by its endpoint node IDs
type EdgeCreatedPayload struct {
	EdgeID   core.EdgeID  `json:"edge_id"`
	GraphID  core.GraphID `json:"graph_id"`
	SourceID core.NodeID  `json:"source_id"`
	TargetID core.NodeID  `json:"target_id"`
	Weight   float64      `json:"weight,omitempty"` // 0 = default weight
}

// EdgeRemovedPayload identifies a deleted domain edge
type EdgeRemovedPayload struct {
	EdgeID  core.EdgeID  `json:"edge_id"`
	GraphID core.GraphID `json:"graph_id"`
}

// NodePositionChangedPayload carries the authoritative node position
type NodePositionChangedPayload struct {
	NodeID      core.NodeID  `json:"node_id"`
	GraphID     core.GraphID `json:"graph_id"`
	NewPosition vmath.Vec3   `json:"new_position"`
}

// NodeMetadataChangedPayload carries the full replacement metadata of a node
type NodeMetadataChangedPayload struct {
	NodeID   core.NodeID       `json:"node_id"`
	GraphID  core.GraphID      `json:"graph_id"`
	Metadata map[string]string `json:"metadata"`
}

// EdgeMetadataChangedPayload carries the full replacement metadata of an edge
type EdgeMetadataChangedPayload struct {
	EdgeID   core.EdgeID       `json:"edge_id"`
	GraphID  core.GraphID      `json:"graph_id"`
	Metadata map[string]string `json:"metadata"`
}

// EdgeHighlightChangedPayload sets the highlight flag of an edge
type EdgeHighlightChangedPayload struct {
	EdgeID      core.EdgeID  `json:"edge_id"`
	GraphID     core.GraphID `json:"graph_id"`
	Highlighted bool         `json:"highlighted"`
}

// EdgeWeightChangedPayload sets the weight of an edge
type EdgeWeightChangedPayload struct {
	EdgeID  core.EdgeID  `json:"edge_id"`
	GraphID core.GraphID `json:"graph_id"`
	Weight  float64      `json:"weight"`
}

// SelectionChangedPayload lists nodes whose selection flag changes
// Exclusive clears every other selection in the graph before applying Selected
type SelectionChangedPayload struct {
	GraphID    core.GraphID  `json:"graph_id"`
	Selected   []core.NodeID `json:"selected,omitempty"`
	Deselected []core.NodeID `json:"deselected,omitempty"`
	Exclusive  bool          `json:"exclusive,omitempty"`
	WorldPos   vmath.Vec3    `json:"world_pos"`
}

// GraphClearedPayload identifies a graph whose visuals must all go
type GraphClearedPayload struct {
	GraphID core.GraphID `json:"graph_id"`
}

// SoundRequestPayload selects an audio cue
type SoundRequestPayload struct {
	SoundType core.SoundType `json:"sound_type"`
}
