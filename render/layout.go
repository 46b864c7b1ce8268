// Package render computes the visual encoding of the board and the
// analysis overlay for a raster drawing surface. Everything here is a
// pure function of its inputs; nothing in this package holds game
// state.
package render

import (
	"math"

	"kataview/types"
)

// edgePadding is the fraction of the board span reserved as margin on
// each side of the playable grid.
const edgePadding = 0.055

// Layout is the affine map between board cells and positions on the
// logical board raster: pixel = origin + cell*step. The raster is
// square; a non-square surface is centered on its smaller dimension.
type Layout struct {
	Size    int // board dimension N
	Span    float64
	originX float64
	originY float64
	step    float64
}

// NewLayout derives the cell grid geometry from the drawing-surface
// size and the board dimension. The playable span covers N-1 intervals.
func NewLayout(width, height float64, size int) Layout {
	span := math.Min(width, height)
	inset := span * edgePadding
	step := (span - 2*inset) / float64(size-1)
	return Layout{
		Size:    size,
		Span:    span,
		originX: (width-span)/2 + inset,
		originY: (height-span)/2 + inset,
		step:    step,
	}
}

// Step returns the pixel distance between adjacent intersections.
func (l Layout) Step() float64 {
	return l.step
}

// CellCenter returns the pixel position of an intersection.
func (l Layout) CellCenter(p types.Point) (float64, float64) {
	return l.originX + float64(p.X)*l.step, l.originY + float64(p.Y)*l.step
}

// CellAt resolves a pixel position to the nearest intersection. Input
// outside the board raster (beyond half a step from any intersection)
// yields ok=false; there is no exception path.
func (l Layout) CellAt(px, py float64) (types.Point, bool) {
	x := int(math.Round((px - l.originX) / l.step))
	y := int(math.Round((py - l.originY) / l.step))
	if x < 0 || x >= l.Size || y < 0 || y >= l.Size {
		return types.Point{}, false
	}
	cx, cy := l.CellCenter(types.Point{X: x, Y: y})
	if math.Abs(px-cx) > l.step/2 || math.Abs(py-cy) > l.step/2 {
		return types.Point{}, false
	}
	return types.Point{X: x, Y: y}, true
}
