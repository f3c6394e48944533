package event

// GraphIDOf extracts the owning graph from any inbound payload
// Returns empty when the payload carries no graph
func GraphIDOf(payload any) string {
	switch p := payload.(type) {
	case *NodeCreatedPayload:
		return string(p.GraphID)
	case *NodeRemovedPayload:
		return string(p.GraphID)
	case *EdgeCreatedPayload:
		return string(p.GraphID)
	case *EdgeRemovedPayload:
		return string(p.GraphID)
	case *NodePositionChangedPayload:
		return string(p.GraphID)
	case *NodeMetadataChangedPayload:
		return string(p.GraphID)
	case *EdgeMetadataChangedPayload:
		return string(p.GraphID)
	case *EdgeHighlightChangedPayload:
		return string(p.GraphID)
	case *EdgeWeightChangedPayload:
		return string(p.GraphID)
	case *SelectionChangedPayload:
		return string(p.GraphID)
	case *GraphClearedPayload:
		return string(p.GraphID)
	default:
		return ""
	}
}
