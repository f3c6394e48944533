// Package render draws the visual entities of a world onto a tcell screen
// and answers hit-test queries for the input layer.
package render

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/graphview/core"
	"github.com/lixenwraith/graphview/engine"
	"github.com/lixenwraith/graphview/parameter"
	"github.com/lixenwraith/graphview/vmath"
)

// View projects transforms to cells and paints edges then nodes in one pass
// Callers hold the world lock around Draw and hit tests
type View struct {
	world   *engine.World
	screen  tcell.Screen
	palette Palette

	status      string
	statusError bool
}

// NewView creates a view over screen; the world's config receives the screen size
func NewView(world *engine.World, screen tcell.Screen, mode ColorMode) *View {
	v := &View{
		world:   world,
		screen:  screen,
		palette: NewPalette(mode, screen.Colors()),
	}
	w, h := screen.Size()
	v.Resize(w, h)
	return v
}

// Resize records new screen dimensions
func (v *View) Resize(width, height int) {
	cfg := v.world.Resources.Config
	cfg.ScreenWidth = width
	cfg.ScreenHeight = height
}

// SetStatus sets the message shown on the status bar
func (v *View) SetStatus(msg string, isError bool) {
	v.status = msg
	v.statusError = isError
}

func (v *View) scales() (float64, float64) {
	cfg := v.world.Resources.Config
	scale := cfg.ViewScale
	if scale <= 0 {
		scale = parameter.DefaultViewScale
	}
	return scale, scale * parameter.CellAspect
}

// WorldToCell projects a world position to its terminal cell
func (v *View) WorldToCell(p vmath.Vec3) core.Point {
	cfg := v.world.Resources.Config
	sx, sy := v.scales()
	return core.Point{
		X: int(math.Round((p.X - cfg.OriginX) * sx)),
		Y: int(math.Round((p.Y - cfg.OriginY) * sy)),
	}
}

// CellToWorld inverts WorldToCell on the Z=0 plane
func (v *View) CellToWorld(c core.Point) vmath.Vec3 {
	cfg := v.world.Resources.Config
	sx, sy := v.scales()
	return vmath.V3(float64(c.X)/sx+cfg.OriginX, float64(c.Y)/sy+cfg.OriginY, 0)
}

// EntityAt returns the node drawn at cell, the last painted one on overlap
func (v *View) EntityAt(c core.Point) core.Entity {
	hit := core.NoEntity
	for _, e := range v.world.Components.NodeVisual.All() {
		tr, ok := v.world.Components.Transform.Get(e)
		if !ok {
			continue
		}
		if v.WorldToCell(tr.Translation) == c {
			hit = e
		}
	}
	return hit
}

// Center moves the origin so the node centroid sits mid-screen
func (v *View) Center() {
	var points []vmath.Vec3
	for _, e := range v.world.Components.NodeVisual.All() {
		if tr, ok := v.world.Components.Transform.Get(e); ok {
			points = append(points, tr.Translation)
		}
	}
	c := vmath.V3Centroid(points)

	cfg := v.world.Resources.Config
	sx, sy := v.scales()
	viewH := cfg.ScreenHeight - parameter.StatusBarHeight
	cfg.OriginX = c.X - float64(cfg.ScreenWidth)/2/sx
	cfg.OriginY = c.Y - float64(viewH)/2/sy
}

// Pan shifts the origin by whole cells
func (v *View) Pan(dx, dy int) {
	cfg := v.world.Resources.Config
	sx, sy := v.scales()
	cfg.OriginX += float64(dx) / sx
	cfg.OriginY += float64(dy) / sy
}

// Draw paints one frame and shows it
func (v *View) Draw() {
	v.screen.SetStyle(v.palette.Background)
	v.screen.Clear()

	width, height := v.screen.Size()
	viewH := height - parameter.StatusBarHeight

	v.drawEdges(width, viewH)
	v.drawNodes(width, viewH)
	v.drawStatus(width, height)

	v.screen.Show()
}

func (v *View) drawEdges(width, height int) {
	w := v.world
	for _, e := range w.Components.EdgeVisual.All() {
		ev, ok := w.Components.EdgeVisual.Get(e)
		if !ok {
			continue
		}
		src, okSrc := w.Components.Transform.Get(ev.Source)
		dst, okDst := w.Components.Transform.Get(ev.Target)
		if !okSrc || !okDst {
			continue
		}

		a := v.WorldToCell(src.Translation)
		b := v.WorldToCell(dst.Translation)

		glyph := parameter.EdgeGlyph
		style := v.palette.Edge(ev.Weight)
		if w.Components.Highlight.Has(e) {
			glyph = parameter.EdgeHighlightGlyph
			style = v.palette.EdgeHighlit
		}

		vmath.Traverse(a.X, a.Y, b.X, b.Y, func(x, y int) bool {
			if (x == a.X && y == a.Y) || (x == b.X && y == b.Y) {
				return true
			}
			if x >= 0 && x < width && y >= 0 && y < height {
				v.screen.SetContent(x, y, glyph, nil, style)
			}
			return true
		})
	}
}

func (v *View) drawNodes(width, height int) {
	w := v.world
	for _, e := range w.Components.NodeVisual.All() {
		nv, ok := w.Components.NodeVisual.Get(e)
		if !ok {
			continue
		}
		tr, ok := w.Components.Transform.Get(e)
		if !ok {
			continue
		}

		c := v.WorldToCell(tr.Translation)
		if c.X < 0 || c.X >= width || c.Y < 0 || c.Y >= height {
			continue
		}

		glyph, style := parameter.NodeGlyph, v.palette.Node
		if w.Components.Selected.Has(e) {
			glyph, style = parameter.NodeSelectedGlyph, v.palette.NodeSelected
		}
		v.screen.SetContent(c.X, c.Y, glyph, nil, style)

		label := runewidth.Truncate(nv.Label, parameter.MaxLabelWidth, "…")
		v.drawText(c.X+2, c.Y, width, label, v.palette.Label)
	}
}

func (v *View) drawStatus(width, height int) {
	y := height - parameter.StatusBarHeight
	if y < 0 {
		return
	}

	style := v.palette.Status
	for x := 0; x < width; x++ {
		v.screen.SetContent(x, y, ' ', nil, style)
	}

	ix := v.world.Index
	info := fmt.Sprintf(" nodes %d  edges %d  selected %d ",
		ix.NodeCount(), ix.EdgeCount(), v.world.Components.Selected.Count())
	x := v.drawText(0, y, width, info, style)

	msg := v.status
	if msg == "" {
		msg = "n:new  x:delete  c:connect  l:layout  ^A:all  esc:quit"
	}
	if v.statusError {
		style = v.palette.StatusError
	}
	v.drawText(x+1, y, width, msg, style)
}

// drawText writes s from x respecting rune display width, returns the next free column
func (v *View) drawText(x, y, width int, s string, style tcell.Style) int {
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if x+rw > width {
			break
		}
		v.screen.SetContent(x, y, r, nil, style)
		x += rw
	}
	return x
}
