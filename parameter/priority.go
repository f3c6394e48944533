package parameter

// System Execution Priorities (lower runs first)
const (
	PriorityGraph     = 10 // Graph-wide clears before per-entity work
	PriorityNode      = 20 // Node spawn before edges resolve endpoints
	PriorityEdge      = 30
	PriorityPosition  = 40
	PriorityMetadata  = 50
	PrioritySelection = 60
	PriorityInput     = 70 // After state mirrors, reads final hit-test targets
	PriorityAudio     = 900
)
