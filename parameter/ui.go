package parameter

// View projection
const (
	// DefaultViewScale is cells per world unit on X; Y is halved for cell aspect
	DefaultViewScale = 1.0

	// CellAspect compensates for terminal cells being roughly twice as tall as wide
	CellAspect = 0.5

	// StatusBarHeight is the bottom row reserved for mode/selection info
	StatusBarHeight = 1

	// PanStep is the number of cells an arrow key moves the view
	PanStep = 4
)

// Glyphs
const (
	NodeGlyph          = '●'
	NodeSelectedGlyph  = '◉'
	EdgeGlyph          = '·'
	EdgeHighlightGlyph = '•'

	// MaxLabelWidth is the display width budget for node labels
	MaxLabelWidth = 16
)

// Layout
const (
	// LayoutRadiusPerNode grows the ring radius with node count
	LayoutRadiusPerNode = 2.0

	// LayoutMinRadius keeps tiny graphs readable
	LayoutMinRadius = 6.0
)
