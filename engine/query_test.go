package engine

import (
	"testing"

	"github.com/lixenwraith/graphview/component"
	"github.com/lixenwraith/graphview/vmath"
)

// TestQueryBuilder verifies store intersection
func TestQueryBuilder(t *testing.T) {
	w := NewWorld()

	e1 := w.CreateEntity()
	w.Components.NodeVisual.Set(e1, component.NodeVisualComponent{Label: "a"})
	w.Components.Selected.Set(e1, component.SelectedComponent{})

	e2 := w.CreateEntity()
	w.Components.NodeVisual.Set(e2, component.NodeVisualComponent{Label: "b"})

	e3 := w.CreateEntity()
	w.Components.Transform.Set(e3, component.TransformComponent{Translation: vmath.V3(1, 1, 0)})

	results := w.Query().
		With(w.Components.NodeVisual).
		With(w.Components.Selected).
		Execute()

	if len(results) != 1 {
		t.Errorf("Expected 1 result, got %d", len(results))
	}
	if len(results) > 0 && results[0] != e1 {
		t.Errorf("Expected entity %d, got %d", e1, results[0])
	}

	nodeResults := w.Query().
		With(w.Components.NodeVisual).
		Execute()
	if len(nodeResults) != 2 {
		t.Errorf("Expected 2 node results, got %d", len(nodeResults))
	}

	emptyResults := w.Query().Execute()
	if len(emptyResults) != 0 {
		t.Errorf("Expected 0 empty results, got %d", len(emptyResults))
	}

	disjoint := w.Query().
		With(w.Components.Transform).
		With(w.Components.NodeVisual).
		Execute()
	if len(disjoint) != 0 {
		t.Errorf("Expected no overlap, got %v", disjoint)
	}
}

// TestQueryBuilder_Cached verifies repeated Execute returns the same slice
func TestQueryBuilder_Cached(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	w.Components.Selected.Set(e, component.SelectedComponent{})

	q := w.Query().With(w.Components.Selected)
	first := q.Execute()
	w.Components.Selected.Remove(e)
	second := q.Execute()

	if len(first) != 1 || len(second) != 1 {
		t.Errorf("Expected cached single result, got %v then %v", first, second)
	}
}

// TestQueryBuilder_Panic verifies panic behavior
func TestQueryBuilder_Panic(t *testing.T) {
	w := NewWorld()

	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when modifying executed query")
		}
	}()

	q := w.Query()
	q.Execute()
	q.With(w.Components.Selected)
}
