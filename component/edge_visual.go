package component

import "github.com/lixenwraith/graphview/core"

// EdgeVisualComponent binds a visual line entity to its domain edge
// Source and Target are the endpoint node entities resolved at spawn time
type EdgeVisualComponent struct {
	EdgeID   core.EdgeID
	GraphID  core.GraphID
	Source   core.Entity
	Target   core.Entity
	SourceID core.NodeID
	TargetID core.NodeID
	Weight   float64
}

// DefaultEdgeWeight is assigned when the domain event carries none
const DefaultEdgeWeight = 1.0
