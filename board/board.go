// Package board implements the rules engine and move history for a game
// of Go: stone placement with capture and suicide resolution, and a
// replay-based history navigator.
package board

import "kataview/types"

// Board holds the grid of stone colors for one position. It is a pure
// function of the initial stones and the move prefix replayed onto it;
// there is no hidden state beyond the grid and the last-move marker.
// Board is indexed as grid[y][x].
type Board struct {
	size    int
	grid    [][]types.Color
	last    types.Point
	hasLast bool
}

// NewBoard creates an empty board of the given size (9, 13 or 19).
func NewBoard(size int) *Board {
	grid := make([][]types.Color, size)
	for i := range grid {
		grid[i] = make([]types.Color, size)
	}
	return &Board{size: size, grid: grid, last: types.Point{X: -1, Y: -1}}
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

// Clone returns an independent copy of the board, used to preview
// continuations without touching the displayed position.
func (b *Board) Clone() *Board {
	c := NewBoard(b.size)
	for y := range b.grid {
		copy(c.grid[y], b.grid[y])
	}
	c.last = b.last
	c.hasLast = b.hasLast
	return c
}

// InRange reports whether (x, y) is on the board.
func (b *Board) InRange(x, y int) bool {
	return x >= 0 && x < b.size && y >= 0 && y < b.size
}

// At returns the cell state at (x, y), or Empty when out of range.
func (b *Board) At(x, y int) types.Color {
	if !b.InRange(x, y) {
		return types.Empty
	}
	return b.grid[y][x]
}

// LastMove returns the marker for the most recent stone placement.
// The marker is cleared by a pass.
func (b *Board) LastMove() (types.Point, bool) {
	return b.last, b.hasLast
}

// setStone places a stone without rule checks. Used for seeding an
// initial layout, where stones are facts rather than moves.
func (b *Board) setStone(c types.Color, x, y int) {
	if b.InRange(x, y) {
		b.grid[y][x] = c
	}
}

// TryMove attempts to play a stone of color c at (x, y).
//
// The cell must be empty and in range. The stone is placed tentatively,
// then each adjacent opponent group without liberties is captured.
// Captures are resolved before the suicide check: only if the placed
// stone's own group still has no liberties afterwards is the move
// illegal, in which case the placement is reverted and the board is
// left unchanged. Ko is not enforced.
func (b *Board) TryMove(c types.Color, x, y int) bool {
	if c != types.Black && c != types.White {
		return false
	}
	if !b.InRange(x, y) || b.grid[y][x] != types.Empty {
		return false
	}

	b.grid[y][x] = c
	opp := c.Opponent()
	for _, n := range b.neighbors(x, y) {
		if b.grid[n.Y][n.X] != opp {
			continue
		}
		g := b.groupAt(n.X, n.Y)
		if g.liberties == 0 {
			b.removeGroup(g)
		}
	}

	if b.groupAt(x, y).liberties == 0 {
		// Suicide. Nothing was captured (a capture would have freed
		// at least one liberty), so reverting the stone restores the
		// exact prior position.
		b.grid[y][x] = types.Empty
		return false
	}

	b.last = types.Point{X: x, Y: y}
	b.hasLast = true
	return true
}

// notePass clears the last-move marker. The pass itself is recorded by
// the game's move log, not by the board.
func (b *Board) notePass() {
	b.last = types.Point{X: -1, Y: -1}
	b.hasLast = false
}

// group is a maximal set of same-colored, orthogonally connected
// stones together with its liberty count.
type group struct {
	color     types.Color
	stones    []types.Point
	liberties int
}

// groupAt flood-fills the group containing (x, y) using 4-connectivity.
// Shared liberties are counted once via a per-query seen set.
func (b *Board) groupAt(x, y int) group {
	color := b.grid[y][x]
	g := group{color: color}
	if color == types.Empty {
		return g
	}

	seen := make(map[types.Point]bool)
	libs := make(map[types.Point]bool)
	stack := []types.Point{{X: x, Y: y}}
	seen[stack[0]] = true

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		g.stones = append(g.stones, p)

		for _, n := range b.neighbors(p.X, p.Y) {
			switch b.grid[n.Y][n.X] {
			case types.Empty:
				libs[n] = true
			case color:
				if !seen[n] {
					seen[n] = true
					stack = append(stack, n)
				}
			}
		}
	}

	g.liberties = len(libs)
	return g
}

// removeGroup clears every stone of the group off the grid.
func (b *Board) removeGroup(g group) {
	for _, p := range g.stones {
		b.grid[p.Y][p.X] = types.Empty
	}
}

// neighbors returns the in-range orthogonal neighbors of (x, y).
func (b *Board) neighbors(x, y int) []types.Point {
	buf := make([]types.Point, 0, 4)
	for _, d := range [4]types.Point{{X: 0, Y: -1}, {X: 0, Y: 1}, {X: -1, Y: 0}, {X: 1, Y: 0}} {
		nx, ny := x+d.X, y+d.Y
		if b.InRange(nx, ny) {
			buf = append(buf, types.Point{X: nx, Y: ny})
		}
	}
	return buf
}
