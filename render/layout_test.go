package render

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kataview/types"
)

func TestCellPixelRoundTrip(t *testing.T) {
	for _, size := range []int{9, 13, 19} {
		l := NewLayout(800, 800, size)
		for y := 0; y < size; y++ {
			for x := 0; x < size; x++ {
				p := types.Point{X: x, Y: y}
				px, py := l.CellCenter(p)
				got, ok := l.CellAt(px, py)
				require.True(t, ok, "cell center must resolve back to a cell")
				require.Equal(t, p, got, "round trip for %v on %dx%d", p, size, size)
			}
		}
	}
}

func TestCellAtOutOfRange(t *testing.T) {
	l := NewLayout(800, 800, 19)
	for _, px := range [][2]float64{{-50, -50}, {4000, 400}, {400, -1}, {799.9, 799.9}} {
		_, ok := l.CellAt(px[0], px[1])
		require.False(t, ok, "pixel %v should not resolve to a cell", px)
	}
}

func TestCellAtToleratesHalfStep(t *testing.T) {
	l := NewLayout(800, 800, 9)
	px, py := l.CellCenter(types.Point{X: 4, Y: 4})

	p, ok := l.CellAt(px+l.Step()*0.4, py-l.Step()*0.4)
	require.True(t, ok)
	require.Equal(t, types.Point{X: 4, Y: 4}, p, "clicks within half a step snap to the cell")
}

func TestNonSquareSurfaceIsCentered(t *testing.T) {
	l := NewLayout(1200, 800, 19)
	px, _ := l.CellCenter(types.Point{X: 9, Y: 9})
	require.InDelta(t, 600, px, 1e-9, "the board centers on the wider axis")
}
