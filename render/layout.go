// Package render draws the day view on a tcell screen and translates terminal input into scene events
package render

import (
	"math"

	"github.com/lixenwraith/taskfall/parameter"
	"github.com/lixenwraith/taskfall/vmath"
)

// minSceneCols is the narrowest scene that keeps its gutters
const minSceneCols = 20

// Grid maps terminal cells to screen-space world units: one column is one unit wide,
// one row is Aspect units tall
type Grid struct {
	Aspect float64
}

// CellCenter returns the world point at the center of cell (col, row)
func (g Grid) CellCenter(col, row int) vmath.Vec2 {
	return vmath.V(float64(col)+0.5, (float64(row)+0.5)*g.Aspect)
}

// Cell returns the cell containing world point p
func (g Grid) Cell(p vmath.Vec2) (col, row int) {
	return int(math.Floor(p.X)), int(math.Floor(p.Y / g.Aspect))
}

// CellSpan returns the inclusive cell range covering r
func (g Grid) CellSpan(r vmath.Rect) (c0, r0, c1, r1 int) {
	c0, r0 = g.Cell(r.Min())
	c1, r1 = g.Cell(r.Max())
	return
}

// Layout places the scene inside a cols x rows terminal: gutters on both sides,
// the status line below, and everything in world units
func Layout(cols, rows int, gutter, aspect float64) vmath.Rect {
	sceneRows := rows - parameter.StatusRows
	if sceneRows < 1 {
		sceneRows = 1
	}
	if float64(cols)-2*gutter < minSceneCols {
		gutter = 0
	}
	w := float64(cols) - 2*gutter
	if w < 1 {
		w = 1
	}
	return vmath.R(gutter, 0, w, float64(sceneRows)*aspect)
}
