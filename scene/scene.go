// Package scene loads graph definitions from HCL files and applies them to the domain.
//
// A scene file holds one or more graph blocks:
//
//	graph "services" {
//	  node "api" {
//	    position = [0, 0]
//	    label    = "API"
//	    metadata = { tier = "edge", replicas = 3 }
//	  }
//	  node "db" { position = [10, 4, 0] }
//	  edge "api_db" {
//	    source = "api"
//	    target = "db"
//	    weight = 2.5
//	  }
//	}
//
// Names are local to their graph; stable IDs are derived from them.
package scene

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	ctyjson "github.com/zclconf/go-cty/cty/json"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/ctxlog"
	"github.com/lixenwraith/graphview/vmath"
)

// Scene is a decoded scene file
type Scene struct {
	Path   string
	Graphs []Graph
}

// Graph is one graph block with its derived ID
type Graph struct {
	Name  string
	ID    core.GraphID
	Nodes []Node
	Edges []Edge
}

// Node is one node block
type Node struct {
	Name     string
	ID       core.NodeID
	Position vmath.Vec3
	Label    string
	Metadata map[string]string
}

// Edge is one edge block; Source and Target are node names in the same graph
type Edge struct {
	Name        string
	ID          core.EdgeID
	Source      string
	Target      string
	SourceID    core.NodeID
	TargetID    core.NodeID
	Weight      float64
	Highlighted bool
	Metadata    map[string]string
}

// NodeCount returns the number of nodes over all graphs
func (s *Scene) NodeCount() int {
	n := 0
	for _, g := range s.Graphs {
		n += len(g.Nodes)
	}
	return n
}

// EdgeCount returns the number of edges over all graphs
func (s *Scene) EdgeCount() int {
	n := 0
	for _, g := range s.Graphs {
		n += len(g.Edges)
	}
	return n
}

// hclSceneFile is the top-level structure of a scene file for decoding
type hclSceneFile struct {
	Graphs []*hclGraph `hcl:"graph,block"`
}

type hclGraph struct {
	Name  string     `hcl:"name,label"`
	Nodes []*hclNode `hcl:"node,block"`
	Edges []*hclEdge `hcl:"edge,block"`
}

type hclNode struct {
	Name     string    `hcl:"name,label"`
	Position []float64 `hcl:"position,optional"`
	Label    *string   `hcl:"label,optional"`
	Metadata cty.Value `hcl:"metadata,optional"`
}

type hclEdge struct {
	Name        string    `hcl:"name,label"`
	Source      string    `hcl:"source"`
	Target      string    `hcl:"target"`
	Weight      *float64  `hcl:"weight,optional"`
	Highlighted *bool     `hcl:"highlighted,optional"`
	Metadata    cty.Value `hcl:"metadata,optional"`
}

// Load parses and validates a scene file
func Load(ctx context.Context, path string) (*Scene, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading scene", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scene file %s: %w", path, diags)
	}

	s, err := decode(file.Body, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("Scene loaded", "path", path, "graphs", len(s.Graphs), "nodes", s.NodeCount(), "edges", s.EdgeCount())
	return s, nil
}

// Parse decodes scene source held in memory; filename is used in diagnostics
func Parse(src []byte, filename string) (*Scene, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse scene %s: %w", filename, diags)
	}
	return decode(file.Body, filename)
}

func decode(body hcl.Body, path string) (*Scene, error) {
	var parsed hclSceneFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode scene %s: %w", path, diags)
	}

	s := &Scene{Path: path}
	seen := make(map[string]bool)
	for _, hg := range parsed.Graphs {
		if seen[hg.Name] {
			return nil, fmt.Errorf("%s: duplicate graph %q", path, hg.Name)
		}
		seen[hg.Name] = true

		g, err := newGraph(hg)
		if err != nil {
			return nil, fmt.Errorf("%s: graph %q: %w", path, hg.Name, err)
		}
		s.Graphs = append(s.Graphs, g)
	}
	return s, nil
}

func newGraph(hg *hclGraph) (Graph, error) {
	g := Graph{Name: hg.Name, ID: core.GraphIDFromName(hg.Name)}

	nodes := make(map[string]core.NodeID, len(hg.Nodes))
	for _, hn := range hg.Nodes {
		if _, dup := nodes[hn.Name]; dup {
			return g, fmt.Errorf("duplicate node %q", hn.Name)
		}
		pos, err := position(hn.Position)
		if err != nil {
			return g, fmt.Errorf("node %q: %w", hn.Name, err)
		}
		meta, err := metadata(hn.Metadata)
		if err != nil {
			return g, fmt.Errorf("node %q: %w", hn.Name, err)
		}

		n := Node{
			Name:     hn.Name,
			ID:       core.NodeIDFromName(g.ID, hn.Name),
			Position: pos,
			Label:    hn.Name,
			Metadata: meta,
		}
		if hn.Label != nil {
			n.Label = *hn.Label
		}
		nodes[hn.Name] = n.ID
		g.Nodes = append(g.Nodes, n)
	}

	edges := make(map[string]bool, len(hg.Edges))
	for _, he := range hg.Edges {
		if edges[he.Name] {
			return g, fmt.Errorf("duplicate edge %q", he.Name)
		}
		edges[he.Name] = true

		src, ok := nodes[he.Source]
		if !ok {
			return g, fmt.Errorf("edge %q: unknown source node %q", he.Name, he.Source)
		}
		dst, ok := nodes[he.Target]
		if !ok {
			return g, fmt.Errorf("edge %q: unknown target node %q", he.Name, he.Target)
		}
		meta, err := metadata(he.Metadata)
		if err != nil {
			return g, fmt.Errorf("edge %q: %w", he.Name, err)
		}

		e := Edge{
			Name:     he.Name,
			ID:       core.EdgeIDFromName(g.ID, he.Name),
			Source:   he.Source,
			Target:   he.Target,
			SourceID: src,
			TargetID: dst,
			Metadata: meta,
		}
		if he.Weight != nil {
			if *he.Weight <= 0 {
				return g, fmt.Errorf("edge %q: weight must be positive", he.Name)
			}
			e.Weight = *he.Weight
		}
		if he.Highlighted != nil {
			e.Highlighted = *he.Highlighted
		}
		g.Edges = append(g.Edges, e)
	}
	return g, nil
}

// position accepts [x, y] or [x, y, z]; absent means origin
func position(v []float64) (vmath.Vec3, error) {
	switch len(v) {
	case 0:
		return vmath.Vec3{}, nil
	case 2:
		return vmath.V3(v[0], v[1], 0), nil
	case 3:
		return vmath.V3(v[0], v[1], v[2]), nil
	default:
		return vmath.Vec3{}, fmt.Errorf("position needs 2 or 3 numbers, got %d", len(v))
	}
}

// metadata flattens an object or map to strings
// Primitives convert directly, collections are JSON-encoded
func metadata(v cty.Value) (map[string]string, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}
	t := v.Type()
	if !t.IsObjectType() && !t.IsMapType() {
		return nil, fmt.Errorf("metadata must be an object, got %s", t.FriendlyName())
	}

	out := make(map[string]string, v.LengthInt())
	for it := v.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		key := k.AsString()
		if ev.IsNull() {
			continue
		}

		if ev.Type().IsPrimitiveType() {
			sv, err := convert.Convert(ev, cty.String)
			if err != nil {
				return nil, fmt.Errorf("metadata %q: %w", key, err)
			}
			out[key] = sv.AsString()
			continue
		}

		raw, err := ctyjson.Marshal(ev, ev.Type())
		if err != nil {
			return nil, fmt.Errorf("metadata %q: %w", key, err)
		}
		out[key] = string(raw)
	}
	return out, nil
}
