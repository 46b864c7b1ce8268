package board

import (
	"testing"

	"kataview/event"
	"kataview/types"
)

func TestReplayDeterminism(t *testing.T) {
	moves := []types.Point{{X: 4, Y: 4}, {X: 3, Y: 3}, {X: 5, Y: 5}, {X: 2, Y: 6}}

	play := func() *Game {
		g := NewGame(9, nil)
		for _, m := range moves {
			if !g.Play(m.X, m.Y) {
				t.Fatalf("move %v should succeed", m)
			}
		}
		return g
	}

	a, b := play(), play()
	if snapshot(a.Board()) != snapshot(b.Board()) {
		t.Fatal("replaying the same prefix twice must yield identical grids")
	}

	// Navigating away and back reproduces the same position.
	a.NavigateTo(0)
	a.NavigateTo(len(moves))
	if snapshot(a.Board()) != snapshot(b.Board()) {
		t.Fatal("navigation replay must reproduce the same grid")
	}
}

func TestAlternatingColors(t *testing.T) {
	g := NewGame(9, nil)
	if g.ToMove() != types.Black {
		t.Fatal("black moves first on an empty board")
	}
	g.Play(4, 4)
	if g.ToMove() != types.White {
		t.Fatal("white should be to move after black")
	}
	g.Pass()
	if g.ToMove() != types.Black {
		t.Fatal("a pass switches the active color")
	}
}

func TestBranchTruncation(t *testing.T) {
	g := NewGame(9, nil)
	for i := 0; i < 5; i++ {
		if !g.Play(i, 0) {
			t.Fatalf("setup move %d should succeed", i)
		}
	}

	g.NavigateTo(2)
	if !g.Play(7, 7) {
		t.Fatal("branching move should succeed")
	}

	if g.Len() != 3 {
		t.Fatalf("history should have length 3 after branching, got %d", g.Len())
	}
	last := g.Moves()[2]
	if last.Point != (types.Point{X: 7, Y: 7}) {
		t.Fatalf("new move should sit at index 2, got %v", last.Point)
	}
	if g.ViewIndex() != 3 {
		t.Fatalf("view cursor should be at the new head, got %d", g.ViewIndex())
	}
}

func TestNavigationIdempotence(t *testing.T) {
	bus := event.NewBus()
	var events int
	bus.Subscribe(func(event.Event) { events++ })

	g := NewGame(9, bus)
	g.Play(4, 4)
	g.Play(3, 3)
	fired := events

	ptrBefore := g.Board()
	g.NavigateTo(g.ViewIndex())
	if g.Board() != ptrBefore {
		t.Fatal("navigating to the current index must not rebuild the board")
	}
	if events != fired {
		t.Fatal("navigating to the current index must not publish events")
	}
}

func TestNavigateClamps(t *testing.T) {
	g := NewGame(9, nil)
	g.Play(4, 4)
	g.Play(3, 3)

	g.NavigateTo(99)
	if g.ViewIndex() != 2 {
		t.Fatalf("navigation should clamp to length, got %d", g.ViewIndex())
	}
	g.NavigateTo(-5)
	if g.ViewIndex() != 0 {
		t.Fatalf("navigation should clamp to zero, got %d", g.ViewIndex())
	}
	if snapshot(g.Board()) != snapshot(NewBoard(9)) {
		t.Fatal("index 0 should show the initial layout")
	}
}

func TestUndo(t *testing.T) {
	g := NewGame(9, nil)
	g.Play(4, 4)
	g.Play(3, 3)

	if !g.Undo() {
		t.Fatal("undo with history should succeed")
	}
	if g.Len() != 1 || g.ViewIndex() != 1 {
		t.Fatalf("undo should drop the final move, len=%d view=%d", g.Len(), g.ViewIndex())
	}
	if g.Board().At(3, 3) != types.Empty {
		t.Fatal("undone stone should be gone")
	}

	g.Undo()
	if g.Undo() {
		t.Fatal("undo on an empty log should report false")
	}
}

func TestUndoRejectedAwayFromHead(t *testing.T) {
	g := NewGame(9, nil)
	g.Play(4, 4)
	g.Play(3, 3)
	g.Play(5, 5)

	g.NavigateTo(1)
	if g.Undo() {
		t.Fatal("undo away from the head must be rejected")
	}
	if g.Len() != 3 {
		t.Fatalf("rejected undo must not shorten the log, len=%d", g.Len())
	}
	if g.ViewIndex() != 1 {
		t.Fatalf("rejected undo must not move the view cursor, view=%d", g.ViewIndex())
	}

	// Back at the head undo works again.
	g.NavigateTo(3)
	if !g.Undo() {
		t.Fatal("undo at the head should succeed")
	}
	if g.Len() != 2 {
		t.Fatalf("undo at the head should drop one move, len=%d", g.Len())
	}
}

func TestCapturesRestoredByReplay(t *testing.T) {
	g := NewGame(9, nil)
	g.Play(1, 0) // B
	g.Play(0, 0) // W takes the corner
	g.Play(0, 1) // B captures it

	if g.Board().At(0, 0) != types.Empty {
		t.Fatal("corner stone should be captured")
	}

	// Captures are not logged separately; replay must reproduce them.
	g.NavigateTo(0)
	g.NavigateTo(3)
	if g.Board().At(0, 0) != types.Empty {
		t.Fatal("replay should reproduce the capture")
	}
	if g.Board().At(1, 0) != types.Black || g.Board().At(0, 1) != types.Black {
		t.Fatal("replay should restore the committed stones")
	}

	// One step earlier the white stone is still on the board.
	g.NavigateTo(2)
	if g.Board().At(0, 0) != types.White {
		t.Fatal("white stone should be present before the capturing move")
	}
}

func TestInitialStonesSeedTheBoard(t *testing.T) {
	initial := []types.Move{
		{Color: types.Black, Point: types.Point{X: 2, Y: 2}},
		{Color: types.White, Point: types.Point{X: 6, Y: 6}},
	}
	g := NewGameFromStones(9, initial, types.White, nil)

	if g.Board().At(2, 2) != types.Black || g.Board().At(6, 6) != types.White {
		t.Fatal("initial stones should be on the board before any move")
	}
	if g.ToMove() != types.White {
		t.Fatal("designated first color should be to move")
	}
	if g.Len() != 0 {
		t.Fatal("initial stones are not log entries")
	}
}

func TestSignatureTracksPosition(t *testing.T) {
	g := NewGame(9, nil)
	s0 := g.Signature()
	g.Play(4, 4)
	s1 := g.Signature()
	if s0 == s1 {
		t.Fatal("signature must change when a move is committed")
	}
	g.NavigateTo(0)
	if g.Signature() != s0 {
		t.Fatal("signature must match the displayed position, not the log head")
	}
	g.NavigateTo(1)
	if g.Signature() != s1 {
		t.Fatal("returning to a position must restore its signature")
	}
}

// The analysis client compares signatures on its socket reader
// goroutine while the UI loop mutates the game. Run with -race.
func TestSignatureReadableWhileMutating(t *testing.T) {
	g := NewGame(9, nil)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			if g.Signature() == "" {
				t.Error("signature must never be empty")
				return
			}
		}
	}()

	for i := 0; i < 200; i++ {
		g.Play(i%9, (i/9)%9)
		g.NavigateTo(0)
		g.NavigateTo(g.Len())
		g.Undo()
	}
	<-done
}

func TestCenterThenAdjacentOnSmallBoard(t *testing.T) {
	g := NewGame(9, nil)
	// E5 is the center of a 9x9 board: (4,4) with the top-left origin.
	if !g.Play(4, 4) {
		t.Fatal("black center move should succeed")
	}
	if !g.Play(4, 3) {
		t.Fatal("white adjacent move should succeed")
	}
	p, ok := g.Board().LastMove()
	if !ok || p != (types.Point{X: 4, Y: 3}) {
		t.Fatalf("last-move marker should match white's cell, got %v", p)
	}
	if g.Len() != 2 || g.ViewIndex() != 2 {
		t.Fatalf("expected len=2 view=2, got len=%d view=%d", g.Len(), g.ViewIndex())
	}
}
