// Package domain holds the logical graph model and the service that mutates it.
// Every successful mutation is published as a graph event for the visual side.
package domain

import (
	"maps"
	"slices"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/vmath"
)

// DefaultEdgeWeight is applied when an edge is created without a positive weight
const DefaultEdgeWeight = 1.0

// Node is a vertex of a domain graph
type Node struct {
	ID       core.NodeID       `json:"id"`
	Position vmath.Vec3        `json:"position"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Edge is a directed connection between two nodes
type Edge struct {
	ID          core.EdgeID       `json:"id"`
	Source      core.NodeID       `json:"source"`
	Target      core.NodeID       `json:"target"`
	Weight      float64           `json:"weight"`
	Highlighted bool              `json:"highlighted,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Graph is a directed graph keyed by stable IDs
type Graph struct {
	ID    core.GraphID
	Nodes map[core.NodeID]*Node
	Edges map[core.EdgeID]*Edge

	// Adjacency: node -> incident edge IDs, both directions
	Outbound map[core.NodeID]map[core.EdgeID]struct{}
	Inbound  map[core.NodeID]map[core.EdgeID]struct{}

	// Selection in the order nodes were selected
	selection []core.NodeID
}

// NewGraph creates an empty graph
func NewGraph(id core.GraphID) *Graph {
	return &Graph{
		ID:       id,
		Nodes:    make(map[core.NodeID]*Node),
		Edges:    make(map[core.EdgeID]*Edge),
		Outbound: make(map[core.NodeID]map[core.EdgeID]struct{}),
		Inbound:  make(map[core.NodeID]map[core.EdgeID]struct{}),
	}
}

// Node retrieves a node by ID
func (g *Graph) Node(id core.NodeID) (*Node, bool) {
	n, ok := g.Nodes[id]
	return n, ok
}

// Edge retrieves an edge by ID
func (g *Graph) Edge(id core.EdgeID) (*Edge, bool) {
	e, ok := g.Edges[id]
	return e, ok
}

// FindEdge returns the edge from source to target, if any
func (g *Graph) FindEdge(source, target core.NodeID) (*Edge, bool) {
	for id := range g.Outbound[source] {
		if e := g.Edges[id]; e != nil && e.Target == target {
			return e, true
		}
	}
	return nil, false
}

func (g *Graph) addNode(n *Node) {
	g.Nodes[n.ID] = n
}

func (g *Graph) addEdge(e *Edge) {
	g.Edges[e.ID] = e
	if g.Outbound[e.Source] == nil {
		g.Outbound[e.Source] = make(map[core.EdgeID]struct{})
	}
	g.Outbound[e.Source][e.ID] = struct{}{}

	if g.Inbound[e.Target] == nil {
		g.Inbound[e.Target] = make(map[core.EdgeID]struct{})
	}
	g.Inbound[e.Target][e.ID] = struct{}{}
}

func (g *Graph) removeEdge(id core.EdgeID) (*Edge, bool) {
	e, ok := g.Edges[id]
	if !ok {
		return nil, false
	}
	delete(g.Edges, id)
	delete(g.Outbound[e.Source], id)
	delete(g.Inbound[e.Target], id)
	return e, true
}

func (g *Graph) removeNode(id core.NodeID) {
	delete(g.Nodes, id)
	delete(g.Outbound, id)
	delete(g.Inbound, id)
	g.deselect(id)
}

// IncidentEdges returns every edge touching a node, sorted by ID
func (g *Graph) IncidentEdges(id core.NodeID) []core.EdgeID {
	seen := make(map[core.EdgeID]struct{}, len(g.Outbound[id])+len(g.Inbound[id]))
	maps.Copy(seen, g.Outbound[id])
	maps.Copy(seen, g.Inbound[id])
	return slices.Sorted(maps.Keys(seen))
}

// NodeIDs returns all node IDs sorted
func (g *Graph) NodeIDs() []core.NodeID {
	return slices.Sorted(maps.Keys(g.Nodes))
}

// EdgeIDs returns all edge IDs sorted
func (g *Graph) EdgeIDs() []core.EdgeID {
	return slices.Sorted(maps.Keys(g.Edges))
}

// Selection returns the selected nodes in selection order
func (g *Graph) Selection() []core.NodeID {
	return slices.Clone(g.selection)
}

// IsSelected reports whether a node is selected
func (g *Graph) IsSelected(id core.NodeID) bool {
	return slices.Contains(g.selection, id)
}

func (g *Graph) selectNode(id core.NodeID) bool {
	if g.IsSelected(id) {
		return false
	}
	g.selection = append(g.selection, id)
	return true
}

func (g *Graph) deselect(id core.NodeID) bool {
	i := slices.Index(g.selection, id)
	if i < 0 {
		return false
	}
	g.selection = slices.Delete(g.selection, i, i+1)
	return true
}

func (g *Graph) clearSelection() []core.NodeID {
	prev := g.selection
	g.selection = nil
	return prev
}

// Clone returns a deep copy safe to read without the service lock
func (g *Graph) Clone() *Graph {
	c := NewGraph(g.ID)
	for id, n := range g.Nodes {
		cn := *n
		cn.Metadata = maps.Clone(n.Metadata)
		c.Nodes[id] = &cn
	}
	for _, e := range g.Edges {
		ce := *e
		ce.Metadata = maps.Clone(e.Metadata)
		c.addEdge(&ce)
	}
	c.selection = slices.Clone(g.selection)
	return c
}
