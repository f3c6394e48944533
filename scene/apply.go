package scene

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/lixenwraith/graphview/component"
	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/vmath"
)

// Target receives the scene through domain operations; *domain.Service satisfies it
type Target interface {
	AddGraph(id core.GraphID) error
	CreateNode(ctx context.Context, graphID core.GraphID, id core.NodeID, pos vmath.Vec3, label string) (core.NodeID, error)
	SetNodeMetadata(ctx context.Context, graphID core.GraphID, id core.NodeID, metadata map[string]string) error
	Connect(ctx context.Context, graphID core.GraphID, id core.EdgeID, source, target core.NodeID, weight float64) (core.EdgeID, error)
	SetEdgeMetadata(ctx context.Context, graphID core.GraphID, id core.EdgeID, metadata map[string]string) error
	HighlightEdge(ctx context.Context, graphID core.GraphID, id core.EdgeID, on bool) error
}

// Apply creates every graph's nodes, then its edges
// A node failure stops the apply; edge failures are joined after all edges are tried
// Elements created before a failure stay
func (s *Scene) Apply(ctx context.Context, target Target) error {
	for _, g := range s.Graphs {
		if err := applyGraph(ctx, target, g); err != nil {
			return fmt.Errorf("apply graph %q: %w", g.Name, err)
		}
	}
	return nil
}

func applyGraph(ctx context.Context, target Target, g Graph) error {
	if err := target.AddGraph(g.ID); err != nil {
		return err
	}

	for _, n := range g.Nodes {
		if _, err := target.CreateNode(ctx, g.ID, n.ID, n.Position, n.Label); err != nil {
			return fmt.Errorf("node %q: %w", n.Name, err)
		}
		if len(n.Metadata) == 0 {
			continue
		}
		meta := maps.Clone(n.Metadata)
		if n.Label != "" {
			meta[component.MetadataLabelKey] = n.Label
		}
		if err := target.SetNodeMetadata(ctx, g.ID, n.ID, meta); err != nil {
			return fmt.Errorf("node %q metadata: %w", n.Name, err)
		}
	}

	var errs []error
	for _, e := range g.Edges {
		if _, err := target.Connect(ctx, g.ID, e.ID, e.SourceID, e.TargetID, e.Weight); err != nil {
			errs = append(errs, fmt.Errorf("edge %q: %w", e.Name, err))
			continue
		}
		if len(e.Metadata) > 0 {
			if err := target.SetEdgeMetadata(ctx, g.ID, e.ID, e.Metadata); err != nil {
				return fmt.Errorf("edge %q metadata: %w", e.Name, err)
			}
		}
		if e.Highlighted {
			if err := target.HighlightEdge(ctx, g.ID, e.ID, true); err != nil {
				return fmt.Errorf("edge %q highlight: %w", e.Name, err)
			}
		}
	}
	return errors.Join(errs...)
}
