package harness

import (
	"encoding/json"
	"fmt"
	"maps"
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/vmath"
)

// Snapshot is the settled visual state of a world, sorted for stable output
type Snapshot struct {
	Scenario string      `json:"scenario"`
	Nodes    []NodeState `json:"nodes"`
	Edges    []EdgeState `json:"edges"`
	Sounds   []string    `json:"sounds,omitempty"`
	Rejected []string    `json:"rejected,omitempty"`
}

// NodeState is one node visual
type NodeState struct {
	ID       string            `json:"id"`
	Graph    string            `json:"graph"`
	Label    string            `json:"label"`
	Position vmath.Vec3        `json:"position"`
	Selected bool              `json:"selected,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// EdgeState is one edge visual
type EdgeState struct {
	ID          string            `json:"id"`
	Graph       string            `json:"graph"`
	Source      string            `json:"source"`
	Target      string            `json:"target"`
	Weight      float64           `json:"weight"`
	Highlighted bool              `json:"highlighted,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// JSON returns the indented snapshot with a trailing newline
func (s *Snapshot) JSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// Node returns the node state by ID
func (s *Snapshot) Node(id string) (NodeState, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return NodeState{}, false
}

// Edge returns the edge state by ID
func (s *Snapshot) Edge(id string) (EdgeState, bool) {
	for _, e := range s.Edges {
		if e.ID == id {
			return e, true
		}
	}
	return EdgeState{}, false
}

func (r *runner) snapshot() *Snapshot {
	snap := &Snapshot{
		Scenario: r.scenario.Name,
		Nodes:    []NodeState{},
		Edges:    []EdgeState{},
	}

	r.world.RunSafe(func() {
		c := r.world.Components

		// Generated IDs are random; alias them by entity so output stays stable
		alias := func(id string, e core.Entity) string {
			if _, err := core.ParseNodeID(id); err == nil {
				return fmt.Sprintf("#%d", e)
			}
			return id
		}
		nodeName := make(map[core.Entity]string)

		for _, e := range c.NodeVisual.All() {
			nv, _ := c.NodeVisual.Get(e)
			tr, _ := c.Transform.Get(e)
			ns := NodeState{
				ID:       alias(string(nv.NodeID), e),
				Graph:    string(nv.GraphID),
				Label:    nv.Label,
				Position: roundVec(tr.Translation),
				Selected: c.Selected.Has(e),
			}
			if md, ok := c.Metadata.Get(e); ok && len(md.Values) > 0 {
				ns.Metadata = maps.Clone(md.Values)
			}
			// Labels of generated nodes are short IDs
			if ns.ID != string(nv.NodeID) && strings.HasPrefix(string(nv.NodeID), nv.Label) {
				ns.Label = ns.ID
			}
			nodeName[e] = ns.ID
			snap.Nodes = append(snap.Nodes, ns)
		}

		for _, e := range c.EdgeVisual.All() {
			ev, _ := c.EdgeVisual.Get(e)
			es := EdgeState{
				ID:          alias(string(ev.EdgeID), e),
				Graph:       string(ev.GraphID),
				Source:      nodeName[ev.Source],
				Target:      nodeName[ev.Target],
				Weight:      ev.Weight,
				Highlighted: c.Highlight.Has(e),
			}
			if md, ok := c.Metadata.Get(e); ok && len(md.Values) > 0 {
				es.Metadata = maps.Clone(md.Values)
			}
			snap.Edges = append(snap.Edges, es)
		}
	})

	sort.Slice(snap.Nodes, func(i, j int) bool { return snap.Nodes[i].ID < snap.Nodes[j].ID })
	sort.Slice(snap.Edges, func(i, j int) bool { return snap.Edges[i].ID < snap.Edges[j].ID })

	for _, s := range r.sounds.played {
		snap.Sounds = append(snap.Sounds, s.String())
	}
	snap.Rejected = slices.Clone(r.rejected)
	return snap
}

// roundVec trims float noise from trigonometric layouts
func roundVec(v vmath.Vec3) vmath.Vec3 {
	const scale = 1e6
	r := func(f float64) float64 {
		out := math.Round(f*scale) / scale
		if out == 0 {
			return 0 // drop negative zero
		}
		return out
	}
	return vmath.V3(r(v.X), r(v.Y), r(v.Z))
}
