package component

import "maps"

// MetadataComponent mirrors the last-seen domain metadata of a node or edge
// Revision increments only when Values actually changes
type MetadataComponent struct {
	Values   map[string]string
	Revision uint64
}

// MetadataLabelKey is copied into NodeVisualComponent.Label when present
const MetadataLabelKey = "label"

// SameValues reports whether m already holds exactly values
func (m MetadataComponent) SameValues(values map[string]string) bool {
	return maps.Equal(m.Values, values)
}
