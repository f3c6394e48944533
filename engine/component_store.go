package engine

import (
	"github.com/lixenwraith/graphview/component"
)

// ComponentStore provides cached pointers to typed component stores
// Initialized once per world to eliminate runtime map lookup
type ComponentStore struct {
	NodeVisual *Store[component.NodeVisualComponent]
	EdgeVisual *Store[component.EdgeVisualComponent]
	Transform  *Store[component.TransformComponent]
	Selected   *Store[component.SelectedComponent]
	Highlight  *Store[component.HighlightComponent]
	Metadata   *Store[component.MetadataComponent]
}

// initComponentStores allocates every store and registers it for lifecycle operations
func initComponentStores(w *World) {
	w.Components = ComponentStore{
		NodeVisual: NewStore[component.NodeVisualComponent](),
		EdgeVisual: NewStore[component.EdgeVisualComponent](),
		Transform:  NewStore[component.TransformComponent](),
		Selected:   NewStore[component.SelectedComponent](),
		Highlight:  NewStore[component.HighlightComponent](),
		Metadata:   NewStore[component.MetadataComponent](),
	}

	w.allStores = []AnyStore{
		w.Components.NodeVisual,
		w.Components.EdgeVisual,
		w.Components.Transform,
		w.Components.Selected,
		w.Components.Highlight,
		w.Components.Metadata,
	}
}
