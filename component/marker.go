package component

// SelectedComponent tags a node visual as selected
type SelectedComponent struct{}

// HighlightComponent tags an edge visual as highlighted
type HighlightComponent struct{}
