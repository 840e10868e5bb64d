package render

import "github.com/jakecoffman/cp"

// Viewport maps world coordinates onto a cols x rows cell grid
// Cell (0,0) covers the world's top-left corner; y grows downward in both
type Viewport struct {
	worldW, worldH float64
	cols, rows     int
	cellW, cellH   float64
}

func NewViewport(worldW, worldH float64, cols, rows int) Viewport {
	cols, rows = max(cols, 1), max(rows, 1)
	return Viewport{
		worldW: worldW,
		worldH: worldH,
		cols:   cols,
		rows:   rows,
		cellW:  worldW / float64(cols),
		cellH:  worldH / float64(rows),
	}
}

func (v Viewport) Cols() int { return v.cols }
func (v Viewport) Rows() int { return v.rows }

// CellSize returns the world extent of one cell
func (v Viewport) CellSize() (w, h float64) {
	return v.cellW, v.cellH
}

// CellToWorld returns the world point at the center of cell (x, y)
func (v Viewport) CellToWorld(x, y int) cp.Vector {
	return cp.Vector{
		X: (float64(x) + 0.5) * v.cellW,
		Y: (float64(y) + 0.5) * v.cellH,
	}
}

// WorldToCell returns the cell containing p and whether it lies on the grid
func (v Viewport) WorldToCell(p cp.Vector) (int, int, bool) {
	if p.X < 0 || p.Y < 0 || p.X >= v.worldW || p.Y >= v.worldH {
		return 0, 0, false
	}
	x := min(int(p.X/v.cellW), v.cols-1)
	y := min(int(p.Y/v.cellH), v.rows-1)
	return x, y, true
}
