package engine

import (
	"sync"

	"github.com/lixenwraith/graphview/core"
)

// Index maps stable domain IDs to visual entities
// Replaces per-event scans over the visual stores with O(1) lookups
// Also tracks incident edges per node entity and entity membership per graph
// so recursive despawn and graph clears never walk the whole world
type Index struct {
	mu sync.RWMutex

	nodes map[core.NodeID]core.Entity
	edges map[core.EdgeID]core.Entity

	// node entity -> edge entities touching it
	incident map[core.Entity]map[core.Entity]struct{}

	// graph -> every visual entity it owns
	graphs map[core.GraphID]map[core.Entity]struct{}
}

// NewIndex creates an empty domain index
func NewIndex() *Index {
	return &Index{
		nodes:    make(map[core.NodeID]core.Entity),
		edges:    make(map[core.EdgeID]core.Entity),
		incident: make(map[core.Entity]map[core.Entity]struct{}),
		graphs:   make(map[core.GraphID]map[core.Entity]struct{}),
	}
}

// Node returns the visual entity of a node
func (ix *Index) Node(id core.NodeID) (core.Entity, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	e, ok := ix.nodes[id]
	return e, ok
}

// Edge returns the visual entity of an edge
func (ix *Index) Edge(id core.EdgeID) (core.Entity, bool) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	e, ok := ix.edges[id]
	return e, ok
}

// PutNode records a node visual; returns false if the node is already indexed
func (ix *Index) PutNode(id core.NodeID, graph core.GraphID, e core.Entity) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, exists := ix.nodes[id]; exists {
		return false
	}
	ix.nodes[id] = e
	ix.addToGraph(graph, e)
	return true
}

// PutEdge records an edge visual and links it to both endpoints
// Returns false if the edge is already indexed
func (ix *Index) PutEdge(id core.EdgeID, graph core.GraphID, e, source, target core.Entity) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if _, exists := ix.edges[id]; exists {
		return false
	}
	ix.edges[id] = e
	ix.link(source, e)
	ix.link(target, e)
	ix.addToGraph(graph, e)
	return true
}

// DropNode removes a node mapping and returns the edges still incident to it
func (ix *Index) DropNode(id core.NodeID, graph core.GraphID) (core.Entity, []core.Entity, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	e, ok := ix.nodes[id]
	if !ok {
		return core.NoEntity, nil, false
	}
	delete(ix.nodes, id)

	var edges []core.Entity
	for edge := range ix.incident[e] {
		edges = append(edges, edge)
	}
	delete(ix.incident, e)
	ix.removeFromGraph(graph, e)
	return e, edges, true
}

// DropEdge removes an edge mapping and unlinks it from both endpoints
func (ix *Index) DropEdge(id core.EdgeID, graph core.GraphID, source, target core.Entity) (core.Entity, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	e, ok := ix.edges[id]
	if !ok {
		return core.NoEntity, false
	}
	delete(ix.edges, id)
	ix.unlink(source, e)
	ix.unlink(target, e)
	ix.removeFromGraph(graph, e)
	return e, true
}

// Incident returns the edge entities touching a node entity
func (ix *Index) Incident(node core.Entity) []core.Entity {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	set := ix.incident[node]
	out := make([]core.Entity, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	return out
}

// GraphEntities returns every visual entity owned by a graph
func (ix *Index) GraphEntities(graph core.GraphID) []core.Entity {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	set := ix.graphs[graph]
	out := make([]core.Entity, 0, len(set))
	for e := range set {
		out = append(out, e)
	}
	return out
}

// NodeCount returns the number of indexed node visuals
func (ix *Index) NodeCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.nodes)
}

// EdgeCount returns the number of indexed edge visuals
func (ix *Index) EdgeCount() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.edges)
}

// Clear drops every mapping
func (ix *Index) Clear() {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.nodes = make(map[core.NodeID]core.Entity)
	ix.edges = make(map[core.EdgeID]core.Entity)
	ix.incident = make(map[core.Entity]map[core.Entity]struct{})
	ix.graphs = make(map[core.GraphID]map[core.Entity]struct{})
}

func (ix *Index) link(node, edge core.Entity) {
	if node == core.NoEntity {
		return
	}
	set, ok := ix.incident[node]
	if !ok {
		set = make(map[core.Entity]struct{})
		ix.incident[node] = set
	}
	set[edge] = struct{}{}
}

func (ix *Index) unlink(node, edge core.Entity) {
	if set, ok := ix.incident[node]; ok {
		delete(set, edge)
		if len(set) == 0 {
			delete(ix.incident, node)
		}
	}
}

func (ix *Index) addToGraph(graph core.GraphID, e core.Entity) {
	set, ok := ix.graphs[graph]
	if !ok {
		set = make(map[core.Entity]struct{})
		ix.graphs[graph] = set
	}
	set[e] = struct{}{}
}

func (ix *Index) removeFromGraph(graph core.GraphID, e core.Entity) {
	if set, ok := ix.graphs[graph]; ok {
		delete(set, e)
		if len(set) == 0 {
			delete(ix.graphs, graph)
		}
	}
}
