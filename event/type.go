package event

// EventType represents the type of graph event
type EventType int

const (
	// EventNone is the zero value, never dispatched
	EventNone EventType = iota

	// === Domain → Visual (inbound) ===

	// EventNodeCreated requests a visual for a newly created domain node
	// Trigger: domain.Service, journal replay, scenarios
	// Consumer: NodeVisualSystem | Payload: *NodeCreatedPayload
	EventNodeCreated

	// EventNodeRemoved requests despawn of a node visual and its incident edges
	// Trigger: domain.Service
	// Consumer: NodeVisualSystem | Payload: *NodeRemovedPayload
	EventNodeRemoved

	// EventEdgeCreated requests a line visual between two node visuals
	// Trigger: domain.Service
	// Consumer: EdgeVisualSystem | Payload: *EdgeCreatedPayload
	EventEdgeCreated

	// EventEdgeRemoved requests despawn of an edge visual
	// Trigger: domain.Service
	// Consumer: EdgeVisualSystem | Payload: *EdgeRemovedPayload
	EventEdgeRemoved

	// EventNodePositionChanged overwrites the transform of a node visual
	// Trigger: domain.Service (move, layout)
	// Consumer: PositionSystem | Payload: *NodePositionChangedPayload
	EventNodePositionChanged

	// EventNodeMetadataChanged replaces the metadata mirror of a node visual
	// Trigger: domain.Service
	// Consumer: MetadataSystem | Payload: *NodeMetadataChangedPayload
	EventNodeMetadataChanged

	// EventEdgeMetadataChanged replaces the metadata mirror of an edge visual
	// Trigger: domain.Service
	// Consumer: MetadataSystem | Payload: *EdgeMetadataChangedPayload
	EventEdgeMetadataChanged

	// EventEdgeHighlightChanged toggles the highlight marker of an edge visual
	// Trigger: domain.Service
	// Consumer: EdgeVisualSystem | Payload: *EdgeHighlightChangedPayload
	EventEdgeHighlightChanged

	// EventEdgeWeightChanged overwrites the weight of an edge visual
	// Trigger: domain.Service
	// Consumer: EdgeVisualSystem | Payload: *EdgeWeightChangedPayload
	EventEdgeWeightChanged

	// EventSelectionChanged applies selection flags to node visuals
	// Trigger: domain.Service after a selection command
	// Consumer: SelectionSystem | Payload: *SelectionChangedPayload
	EventSelectionChanged

	// EventGraphCleared despawns every visual owned by a graph
	// Trigger: domain.Service, scene reload
	// Consumer: GraphSystem | Payload: *GraphClearedPayload
	EventGraphCleared

	// === Visual → Domain (outbound) ===

	// EventDomainCommand carries a command mapped from a key press
	// Trigger: InteractionSystem
	// Consumer: domain.Service | Payload: morphism.DomainCommand
	EventDomainCommand

	// EventSelectionRequest carries a selection mapped from a click
	// Trigger: InteractionSystem
	// Consumer: domain.Service | Payload: *SelectionChangedPayload
	EventSelectionRequest

	// EventMoveRequest carries a position mapped from a drag
	// Trigger: InteractionSystem
	// Consumer: domain.Service | Payload: *NodePositionChangedPayload
	EventMoveRequest

	// === Feedback ===

	// EventSoundRequest requests an audio cue
	// Trigger: systems on spawn/despawn/select
	// Consumer: AudioSystem | Payload: *SoundRequestPayload
	EventSoundRequest
)

// GraphEvent represents a single graph event with metadata
type GraphEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
