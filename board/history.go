package board

import (
	"fmt"
	"sync/atomic"

	"kataview/event"
	"kataview/types"
)

// Game owns the full move log and a view cursor into it. The displayed
// board is always the deterministic replay of the first ViewIndex moves
// over the initial stone layout. Editing below the head truncates the
// tail first (branching): navigating back and playing a different move
// discards the previously explored continuation.
type Game struct {
	size    int
	initial []types.Move // seeded stones, not part of the move log
	first   types.Color  // color to move before any log entry
	moves   []types.Move
	view    int
	board   *Board
	bus     *event.Bus

	// sig mirrors the displayed position's signature. Mutations happen
	// on the UI loop only, but the analysis client compares signatures
	// on its socket reader goroutine, so the published copy is atomic.
	sig atomic.Value // string
}

// NewGame creates a game over an empty board with black to move.
func NewGame(size int, bus *event.Bus) *Game {
	return NewGameFromStones(size, nil, types.Black, bus)
}

// NewGameFromStones creates a game seeded with an initial stone layout,
// e.g. from board-photo recognition, and a designated next-to-move
// color. Stones outside the board are ignored.
func NewGameFromStones(size int, initial []types.Move, first types.Color, bus *event.Bus) *Game {
	if first != types.White {
		first = types.Black
	}
	g := &Game{
		size:    size,
		initial: initial,
		first:   first,
		bus:     bus,
	}
	g.board = g.replay(0)
	g.storeSignature()
	return g
}

// Board returns the board at the current view position.
func (g *Game) Board() *Board {
	return g.board
}

// Size returns the board dimension.
func (g *Game) Size() int {
	return g.size
}

// Len returns the total length of the move log.
func (g *Game) Len() int {
	return len(g.moves)
}

// ViewIndex returns the view cursor position in [0, Len()].
func (g *Game) ViewIndex() int {
	return g.view
}

// AtHead reports whether the view cursor sits at the end of the log.
func (g *Game) AtHead() bool {
	return g.view == len(g.moves)
}

// ToMove returns the color whose turn it is at the view position.
func (g *Game) ToMove() types.Color {
	if g.view == 0 {
		return g.first
	}
	return g.moves[g.view-1].Color.Opponent()
}

// InitialStones returns the seeded stone layout.
func (g *Game) InitialStones() []types.Move {
	return g.initial
}

// FirstToMove returns the color to move before any log entry.
func (g *Game) FirstToMove() types.Color {
	return g.first
}

// Moves returns the move prefix up to the view cursor.
func (g *Game) Moves() []types.Move {
	return g.moves[:g.view]
}

// Signature identifies the currently displayed position. Analysis
// requests are tagged with it so that late responses for a position the
// user has since left can be recognized and dropped. Unlike the other
// accessors it may be called from any goroutine.
func (g *Game) Signature() string {
	return g.sig.Load().(string)
}

// storeSignature refreshes the published signature. Called after every
// mutation, on the mutating (UI) goroutine.
func (g *Game) storeSignature() {
	last := types.Point{X: -1, Y: -1}
	pass := false
	if g.view > 0 {
		m := g.moves[g.view-1]
		last, pass = m.Point, m.Pass
	}
	g.sig.Store(fmt.Sprintf("%d:%d,%d:%t", g.view, last.X, last.Y, pass))
}

// Play attempts a move for the side to move at (x, y). On success the
// tail beyond the view cursor is discarded, the move is appended and
// the cursor advances. On failure the game is unchanged.
func (g *Game) Play(x, y int) bool {
	c := g.ToMove()
	if !g.board.TryMove(c, x, y) {
		g.publish(event.IllegalMove{Color: c, Point: types.Point{X: x, Y: y}})
		return false
	}
	g.truncate()
	g.moves = append(g.moves, types.Move{Color: c, Point: types.Point{X: x, Y: y}})
	g.view = len(g.moves)
	g.storeSignature()
	g.publish(event.MoveCommitted{Move: g.moves[g.view-1], Index: g.view - 1})
	return true
}

// Pass records a pass for the side to move. It always succeeds.
func (g *Game) Pass() {
	c := g.ToMove()
	g.truncate()
	g.board.notePass()
	g.moves = append(g.moves, types.Move{Color: c, Pass: true})
	g.view = len(g.moves)
	g.storeSignature()
	g.publish(event.MoveCommitted{Move: g.moves[g.view-1], Index: g.view - 1})
}

// NavigateTo moves the view cursor to idx, clamped to [0, Len()], and
// rebuilds the board by full replay. Navigating to the current position
// is a no-op with no side effects.
func (g *Game) NavigateTo(idx int) {
	if idx < 0 {
		idx = 0
	}
	if idx > len(g.moves) {
		idx = len(g.moves)
	}
	if idx == g.view {
		return
	}
	g.view = idx
	g.board = g.replay(idx)
	g.storeSignature()
	g.publish(event.NavigationChanged{ViewIndex: g.view, Length: len(g.moves)})
}

// Undo removes the final move of the log. It is only valid while the
// view sits at the head: undoing mid-history would silently delete a
// move the user is not even looking at. Reports false on an empty log
// or away from the head; navigate forward first.
func (g *Game) Undo() bool {
	if len(g.moves) == 0 || !g.AtHead() {
		return false
	}
	g.moves = g.moves[:len(g.moves)-1]
	g.view = len(g.moves)
	g.board = g.replay(g.view)
	g.storeSignature()
	g.publish(event.NavigationChanged{ViewIndex: g.view, Length: len(g.moves)})
	return true
}

// replay builds a fresh board from the initial layout plus the first n
// log entries. Captures are not separately logged, so exact
// reconstruction requires replaying from the start.
func (g *Game) replay(n int) *Board {
	b := NewBoard(g.size)
	for _, s := range g.initial {
		b.setStone(s.Color, s.Point.X, s.Point.Y)
	}
	for _, m := range g.moves[:n] {
		if m.Pass {
			b.notePass()
			continue
		}
		// Logged moves were legal when committed, so this cannot fail.
		b.TryMove(m.Color, m.Point.X, m.Point.Y)
	}
	return b
}

// truncate discards the log tail beyond the view cursor.
func (g *Game) truncate() {
	if g.view < len(g.moves) {
		g.moves = g.moves[:g.view]
	}
}

func (g *Game) publish(e event.Event) {
	if g.bus != nil {
		g.bus.Publish(e)
	}
}
