package core

import (
	"fmt"

	"github.com/google/uuid"
)

// NodeID identifies a node in the domain graph, independent of any visual entity
type NodeID string

// EdgeID identifies an edge in the domain graph
type EdgeID string

// GraphID identifies a graph that owns nodes and edges
type GraphID string

// newID returns a time-sortable UUIDv7 string
func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// NewNodeID allocates a fresh node identifier
func NewNodeID() NodeID { return NodeID(newID()) }

// NewEdgeID allocates a fresh edge identifier
func NewEdgeID() EdgeID { return EdgeID(newID()) }

// NewGraphID allocates a fresh graph identifier
func NewGraphID() GraphID { return GraphID(newID()) }

// ParseNodeID validates s as a UUID and returns it as a NodeID
// Scene files may use symbolic names; those go through NodeIDFromName
func ParseNodeID(s string) (NodeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse node id %q: %w", s, err)
	}
	return NodeID(u.String()), nil
}

// ParseEdgeID validates s as a UUID and returns it as an EdgeID
func ParseEdgeID(s string) (EdgeID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse edge id %q: %w", s, err)
	}
	return EdgeID(u.String()), nil
}

// ParseGraphID validates s as a UUID and returns it as a GraphID
func ParseGraphID(s string) (GraphID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("parse graph id %q: %w", s, err)
	}
	return GraphID(u.String()), nil
}

// nameSpace scopes name-derived IDs so the same label in two graphs maps to two IDs
var nameSpace = uuid.MustParse("6f1c7a52-3d0e-4b8e-9a3f-1f2e3d4c5b6a")

// GraphIDFromName derives a stable GraphID from a human-readable name (UUIDv5)
func GraphIDFromName(name string) GraphID {
	return GraphID(uuid.NewSHA1(nameSpace, []byte(name)).String())
}

// NodeIDFromName derives a stable NodeID for a named node inside graph g
func NodeIDFromName(g GraphID, name string) NodeID {
	return NodeID(uuid.NewSHA1(nameSpace, []byte(string(g)+"/node/"+name)).String())
}

// EdgeIDFromName derives a stable EdgeID for a named edge inside graph g
func EdgeIDFromName(g GraphID, name string) EdgeID {
	return EdgeID(uuid.NewSHA1(nameSpace, []byte(string(g)+"/edge/"+name)).String())
}

// Short returns the first 8 characters, used in logs and labels
func (id NodeID) Short() string { return short(string(id)) }

// Short returns the first 8 characters, used in logs and labels
func (id EdgeID) Short() string { return short(string(id)) }

// Short returns the first 8 characters, used in logs and labels
func (id GraphID) Short() string { return short(string(id)) }

func short(s string) string {
	if len(s) > 8 {
		return s[:8]
	}
	return s
}
