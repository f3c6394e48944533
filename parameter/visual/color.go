package visual

// Hex colors for the terminal view, parsed with go-colorful
const (
	HexBackground   = "#101418"
	HexNode         = "#5aa9ff"
	HexNodeSelected = "#ffd24a"
	HexLabel        = "#c8d0d8"
	HexEdgeLight    = "#3a5f7a" // Weight 0
	HexEdgeHeavy    = "#ff7a3a" // Weight >= EdgeWeightCeiling
	HexEdgeHighlit  = "#f5f542"
	HexStatusFg     = "#101418"
	HexStatusBg     = "#8fa3b5"
	HexStatusError  = "#ff5a5a"
)

// EdgeWeightCeiling maps to the heavy end of the edge gradient
const EdgeWeightCeiling = 5.0

// 256-color palette indices used when truecolor is unavailable
// Index = 16 + 36*r + 6*g + b, r,g,b in [0,5]
const (
	Node256         = 75
	NodeSelected256 = 220
	Label256        = 252
	EdgeHighlit256  = 226
	StatusFg256     = 233
	StatusBg256     = 109
	StatusError256  = 203
)

// Edge256LUT is the weight gradient for 256-color mode, light to heavy
var Edge256LUT = [6]uint8{
	24,  // Steel blue
	31,  // Teal
	73,  // Cadet
	179, // Tan
	208, // Orange
	202, // Red-orange
}
