package render

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// Button is a clickable label that requests a scene by name
type Button struct {
	Label  string
	Target string
}

// Menu is a non-game screen: a title, text lines and a row of buttons
type Menu struct {
	Title   string
	Lines   []string
	Buttons []Button
}

type placedButton struct {
	x, y, width int
	target      string
}

// DrawMenu centers the menu on the world area and records button hit boxes
func (r *Renderer) DrawMenu(m Menu) {
	cols, _ := r.screen.Size()
	rows := r.view.Rows()
	height := 2 + len(m.Lines) + 2
	y := max((rows-height)/2, 0)

	r.centered(cols, y, m.Title, styleTitle)
	y += 2
	for _, line := range m.Lines {
		r.centered(cols, y, line, styleText)
		y++
	}
	y++

	total := 0
	for i, b := range m.Buttons {
		total += utf8.RuneCountInString(b.Label) + 4
		if i > 0 {
			total += 2
		}
	}
	x := max((cols-total)/2, 0)
	for _, b := range m.Buttons {
		label := "[ " + b.Label + " ]"
		end := drawText(r.screen, x, y, cols, label, styleButton)
		r.buttons = append(r.buttons, placedButton{x: x, y: y, width: end - x, target: b.Target})
		x = end + 2
	}
}

func (r *Renderer) centered(cols, y int, text string, style tcell.Style) {
	x := max((cols-utf8.RuneCountInString(text))/2, 0)
	drawText(r.screen, x, y, cols, text, style)
}

// ButtonAt returns the scene requested by the button under cell (x, y)
func (r *Renderer) ButtonAt(x, y int) (string, bool) {
	for _, b := range r.buttons {
		if y == b.y && x >= b.x && x < b.x+b.width {
			return b.target, true
		}
	}
	return "", false
}
