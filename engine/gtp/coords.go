// Package gtp converts between board coordinates and the textual
// vertex notation exchanged with the analysis server.
package gtp

import (
	"fmt"
	"strconv"
	"strings"

	"kataview/types"
)

// Vertex notation:
// - Columns: A-T, skipping I to avoid confusion with 1
// - Rows: numbered from the bottom of the board
// - Example: D4, Q16, K10
//
// kataview coordinates:
// - X: 0..size-1 (left to right)
// - Y: 0..size-1 (top to bottom)
// - Example: (3, 15) for D4 on a 19x19 board

// Pass is the vertex sentinel for a pass; it is never a coordinate.
const Pass = "pass"

// ToVertex converts board coordinates (0-indexed, top-left origin) to
// vertex notation. For a 19x19 board: (0, 18) -> A1, (3, 15) -> D4.
func ToVertex(x, y, size int) string {
	// Column: A-T, skipping I
	col := 'A' + rune(x)
	if x >= 8 {
		col++ // Skip 'I'
	}

	// Row: counted from the bottom, so invert Y
	row := size - y

	return fmt.Sprintf("%c%d", col, row)
}

// FromVertex converts vertex notation to board coordinates. The
// conversion is partial: malformed or out-of-range text yields ok=false
// and callers must branch on it. "pass" is not a coordinate and also
// yields ok=false; use IsPass to detect it.
func FromVertex(vertex string, size int) (types.Point, bool) {
	vertex = strings.TrimSpace(strings.ToUpper(vertex))
	if len(vertex) < 2 || vertex == "PASS" {
		return types.Point{}, false
	}

	// Parse column (A-T, no I)
	col := int(vertex[0] - 'A')
	if col < 0 || col > 19 || vertex[0] == 'I' {
		return types.Point{}, false
	}
	if col > 7 {
		col-- // Account for skipped 'I'
	}

	// Parse row
	row, err := strconv.Atoi(vertex[1:])
	if err != nil {
		return types.Point{}, false
	}

	// Convert row to Y coordinate (invert from bottom-up to top-down)
	y := size - row

	if col >= size || y < 0 || y >= size {
		return types.Point{}, false
	}

	return types.Point{X: col, Y: y}, true
}

// IsPass reports whether the vertex text encodes a pass.
func IsPass(vertex string) bool {
	return strings.EqualFold(strings.TrimSpace(vertex), Pass)
}

// MoveToWire converts a logged move to the wire pair format.
func MoveToWire(m types.Move, size int) types.WireMove {
	if m.Pass {
		return types.WireMove{m.Color.Wire(), Pass}
	}
	return types.WireMove{m.Color.Wire(), ToVertex(m.Point.X, m.Point.Y, size)}
}

// MoveFromWire converts a wire pair back to a logged move.
func MoveFromWire(w types.WireMove, size int) (types.Move, bool) {
	c, ok := w.Color()
	if !ok {
		return types.Move{}, false
	}
	if w.IsPass() {
		return types.Move{Color: c, Pass: true}, true
	}
	p, ok := FromVertex(w.Vertex(), size)
	if !ok {
		return types.Move{}, false
	}
	return types.Move{Color: c, Point: p}, true
}
