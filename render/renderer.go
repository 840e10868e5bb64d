// Package render draws a bound physics world, menus and the HUD onto a tcell screen.
package render

import (
	"errors"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/jakecoffman/cp"
	"github.com/lixenwraith/gthrower/config"
	"github.com/lixenwraith/gthrower/event"
	"github.com/lixenwraith/gthrower/physics"
)

var (
	ErrNoScreen     = errors.New("no screen")
	ErrWorldInvalid = errors.New("world not drawable")
	ErrAlreadyBound = errors.New("renderer already bound")
)

// hudRows is reserved at the bottom of the screen
const hudRows = 1

// Renderer is the render target of a session
// The world area fills the screen above the HUD line
type Renderer struct {
	screen tcell.Screen
	hub    *event.Hub
	canvas config.Canvas
	view   Viewport
	world  *physics.World

	buttons []placedButton
}

func NewRenderer(screen tcell.Screen, hub *event.Hub, canvas config.Canvas) *Renderer {
	r := &Renderer{screen: screen, hub: hub, canvas: canvas}
	r.Resize()
	return r
}

// Bind attaches the world drawn by DrawWorld
func (r *Renderer) Bind(w *physics.World) error {
	if r.screen == nil {
		return ErrNoScreen
	}
	if w == nil || !w.Active() {
		return ErrWorldInvalid
	}
	if r.world != nil && r.world != w {
		return ErrAlreadyBound
	}
	r.world = w
	return nil
}

func (r *Renderer) Unbind() {
	r.world = nil
}

func (r *Renderer) Bound() bool {
	return r.world != nil
}

// Resize recomputes the viewport from the screen size
func (r *Renderer) Resize() {
	cols, rows := 80, 24
	if r.screen != nil {
		cols, rows = r.screen.Size()
	}
	r.view = NewViewport(r.canvas.Width, r.canvas.Height, cols, rows-hudRows)
}

func (r *Renderer) Viewport() Viewport {
	return r.view
}

// Clear blanks the screen and forgets menu buttons
func (r *Renderer) Clear() {
	r.screen.Fill(' ', styleBase)
	r.buttons = r.buttons[:0]
}

func (r *Renderer) Show() {
	r.screen.Show()
}

// ProbeRadius is how far from a cell center a shape may lie and still paint the cell
func (r *Renderer) ProbeRadius() float64 {
	cellW, cellH := r.view.CellSize()
	return 0.75 * math.Min(cellW, cellH)
}

// DrawWorld samples every cell center against the bound world then runs after-render hooks
// The probe reaches past the canvas edge so edge cells show the walls
func (r *Renderer) DrawWorld() {
	w := r.world
	if w == nil || !w.Active() {
		return
	}
	probe := r.ProbeRadius()

	for y := 0; y < r.view.Rows(); y++ {
		for x := 0; x < r.view.Cols(); x++ {
			obj, ok := w.ObjectAt(r.view.CellToWorld(x, y), probe)
			if !ok {
				continue
			}
			glyph, style := cellFor(obj)
			r.screen.SetContent(x, y, glyph, nil, style)
		}
	}

	if r.hub != nil {
		r.hub.Emit(event.Event{Type: event.EventAfterRender, Canvas: r, Timestamp: w.Timestamp()})
	}
}

func cellFor(obj *physics.Object) (rune, tcell.Style) {
	switch obj.Tag().Kind {
	case physics.KindWall:
		return RuneWall, styleBase.Foreground(RgbWall)
	case physics.KindPeg:
		return RunePeg, styleBase.Foreground(RgbPeg)
	case physics.KindObstacle:
		return RuneObstacle, styleBase.Foreground(RgbObstacle)
	case physics.KindMovable:
		if obj.Sleeping() {
			return RuneGlyphAsleep, styleBase.Foreground(RgbGlyphAsleep)
		}
		return RuneGlyph, styleBase.Foreground(RgbGlyph).Bold(true)
	default:
		return '?', styleText
	}
}

// StrokeCircle outlines a world-space circle on empty cells
func (r *Renderer) StrokeCircle(center cp.Vector, radius float64) {
	if radius <= 0 {
		return
	}
	cellW, cellH := r.view.CellSize()
	steps := max(16, int(4*math.Pi*radius/math.Min(cellW, cellH)))
	for i := 0; i < steps; i++ {
		a := 2 * math.Pi * float64(i) / float64(steps)
		p := cp.Vector{X: center.X + radius*math.Cos(a), Y: center.Y + radius*math.Sin(a)}
		x, y, ok := r.view.WorldToCell(p)
		if !ok {
			continue
		}
		if cur, _, _, _ := r.screen.GetContent(x, y); cur != ' ' {
			continue
		}
		r.screen.SetContent(x, y, RuneZone, nil, styleZone)
	}
}

// CellToWorld maps a screen cell to the world, false on the HUD line or off-grid
func (r *Renderer) CellToWorld(x, y int) (cp.Vector, bool) {
	if x < 0 || y < 0 || x >= r.view.Cols() || y >= r.view.Rows() {
		return cp.Vector{}, false
	}
	return r.view.CellToWorld(x, y), true
}

// DrawHUD writes text on the bottom line, truncated to the screen width
func (r *Renderer) DrawHUD(text string) {
	cols, rows := r.screen.Size()
	y := rows - hudRows
	if y < 0 {
		return
	}
	for x := 0; x < cols; x++ {
		r.screen.SetContent(x, y, ' ', nil, styleHUD)
	}
	drawText(r.screen, 0, y, cols, text, styleHUD)
}

// drawText writes s from (x, y), clipped to limit columns
func drawText(s tcell.Screen, x, y, limit int, text string, style tcell.Style) int {
	col := x
	for _, ch := range text {
		if col >= limit {
			break
		}
		s.SetContent(col, y, ch, nil, style)
		col++
	}
	return col
}
