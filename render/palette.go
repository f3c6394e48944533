package render

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/lixenwraith/graphview/parameter/visual"
)

// ColorMode selects how palette colors reach the terminal
type ColorMode uint8

const (
	ColorModeAuto ColorMode = iota
	ColorModeTrueColor
	ColorMode256
)

// ParseColorMode maps a config string to a ColorMode, unknown values mean auto
func ParseColorMode(s string) ColorMode {
	switch strings.ToLower(s) {
	case "truecolor", "true", "24bit":
		return ColorModeTrueColor
	case "256":
		return ColorMode256
	default:
		return ColorModeAuto
	}
}

// Palette holds resolved styles for one color mode
type Palette struct {
	mode ColorMode

	Background   tcell.Style
	Node         tcell.Style
	NodeSelected tcell.Style
	Label        tcell.Style
	EdgeHighlit  tcell.Style
	Status       tcell.Style
	StatusError  tcell.Style

	edgeLight colorful.Color
	edgeHeavy colorful.Color
}

// NewPalette resolves the palette; auto picks truecolor when the screen reports 16M colors
func NewPalette(mode ColorMode, screenColors int) Palette {
	if mode == ColorModeAuto {
		if screenColors >= 1<<24 {
			mode = ColorModeTrueColor
		} else {
			mode = ColorMode256
		}
	}

	p := Palette{
		mode:      mode,
		edgeLight: mustHex(visual.HexEdgeLight),
		edgeHeavy: mustHex(visual.HexEdgeHeavy),
	}

	bg := hexColor(visual.HexBackground)
	base := tcell.StyleDefault.Background(bg)
	p.Background = base

	if mode == ColorModeTrueColor {
		p.Node = base.Foreground(hexColor(visual.HexNode))
		p.NodeSelected = base.Foreground(hexColor(visual.HexNodeSelected)).Bold(true)
		p.Label = base.Foreground(hexColor(visual.HexLabel))
		p.EdgeHighlit = base.Foreground(hexColor(visual.HexEdgeHighlit)).Bold(true)
		p.Status = tcell.StyleDefault.Foreground(hexColor(visual.HexStatusFg)).Background(hexColor(visual.HexStatusBg))
		p.StatusError = p.Status.Foreground(hexColor(visual.HexStatusError))
		return p
	}

	base = tcell.StyleDefault.Background(tcell.ColorDefault)
	p.Background = base
	p.Node = base.Foreground(tcell.PaletteColor(visual.Node256))
	p.NodeSelected = base.Foreground(tcell.PaletteColor(visual.NodeSelected256)).Bold(true)
	p.Label = base.Foreground(tcell.PaletteColor(visual.Label256))
	p.EdgeHighlit = base.Foreground(tcell.PaletteColor(visual.EdgeHighlit256)).Bold(true)
	p.Status = tcell.StyleDefault.Foreground(tcell.PaletteColor(visual.StatusFg256)).Background(tcell.PaletteColor(visual.StatusBg256))
	p.StatusError = p.Status.Foreground(tcell.PaletteColor(visual.StatusError256))
	return p
}

// Mode returns the resolved color mode
func (p Palette) Mode() ColorMode {
	return p.mode
}

// Edge returns the style of an edge of the given weight
// Truecolor blends in Lab space between the light and heavy ends
func (p Palette) Edge(weight float64) tcell.Style {
	t := weight / visual.EdgeWeightCeiling
	t = max(0, min(1, t))

	if p.mode == ColorModeTrueColor {
		c := p.edgeLight.BlendLab(p.edgeHeavy, t).Clamped()
		r, g, b := c.RGB255()
		return p.Background.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
	}

	idx := int(t * float64(len(visual.Edge256LUT)-1))
	return p.Background.Foreground(tcell.PaletteColor(int(visual.Edge256LUT[idx])))
}

func hexColor(hex string) tcell.Color {
	r, g, b := mustHex(hex).RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// mustHex parses a palette constant; a bad constant is a programming error
func mustHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic(fmt.Sprintf("palette color %q: %v", hex, err))
	}
	return c
}
