package board

import (
	"testing"

	"kataview/types"
)

func TestTryMoveRejectsOccupiedAndOutOfRange(t *testing.T) {
	b := NewBoard(9)
	if !b.TryMove(types.Black, 4, 4) {
		t.Fatal("move on empty cell should succeed")
	}
	if b.TryMove(types.White, 4, 4) {
		t.Fatal("move on occupied cell should fail")
	}
	if b.TryMove(types.White, -1, 0) {
		t.Fatal("out-of-range move should fail")
	}
	if b.TryMove(types.White, 9, 3) {
		t.Fatal("out-of-range move should fail")
	}
	if b.TryMove(types.Empty, 0, 0) {
		t.Fatal("empty color should fail")
	}
}

func TestSingleStoneCapture(t *testing.T) {
	b := NewBoard(9)
	// White stone at (4,4), black fills three liberties.
	b.setStone(types.White, 4, 4)
	b.setStone(types.Black, 4, 3)
	b.setStone(types.Black, 3, 4)
	b.setStone(types.Black, 5, 4)

	if !b.TryMove(types.Black, 4, 5) {
		t.Fatal("enclosing move should succeed")
	}
	if b.At(4, 4) != types.Empty {
		t.Fatal("surrounded white stone should be captured")
	}
}

func TestGroupCapturedOnlyAtLastLiberty(t *testing.T) {
	b := NewBoard(9)
	// Connected white pair at (4,4)-(5,4) sharing liberties.
	b.setStone(types.White, 4, 4)
	b.setStone(types.White, 5, 4)
	for _, p := range []types.Point{{X: 4, Y: 3}, {X: 5, Y: 3}, {X: 3, Y: 4}, {X: 6, Y: 4}, {X: 4, Y: 5}} {
		b.setStone(types.Black, p.X, p.Y)
	}

	// One shared liberty remains at (5,5); the group must survive a
	// move elsewhere.
	if !b.TryMove(types.Black, 0, 0) {
		t.Fatal("unrelated move should succeed")
	}
	if b.At(4, 4) != types.White || b.At(5, 4) != types.White {
		t.Fatal("group with a liberty left must not be captured")
	}

	if !b.TryMove(types.Black, 5, 5) {
		t.Fatal("move filling the last liberty should succeed")
	}
	if b.At(4, 4) != types.Empty || b.At(5, 4) != types.Empty {
		t.Fatal("group should be captured when its last liberty is filled")
	}
}

func TestSuicideRejectedWithoutStateChange(t *testing.T) {
	b := NewBoard(9)
	// Black surrounds (4,4) leaving it as a one-point eye.
	for _, p := range []types.Point{{X: 4, Y: 3}, {X: 3, Y: 4}, {X: 5, Y: 4}, {X: 4, Y: 5}} {
		b.setStone(types.Black, p.X, p.Y)
	}

	before := snapshot(b)
	if b.TryMove(types.White, 4, 4) {
		t.Fatal("suicide move should be rejected")
	}
	if snapshot(b) != before {
		t.Fatal("rejected move must leave the board unchanged")
	}
	if _, ok := b.LastMove(); ok {
		t.Fatal("rejected move must not set the last-move marker")
	}
}

func TestCaptureResolvedBeforeSuicideCheck(t *testing.T) {
	b := NewBoard(9)
	// Black stone in the corner with both orthogonal neighbors white:
	// white completing the enclosure captures the corner stone rather
	// than committing suicide itself.
	b.setStone(types.Black, 0, 0)
	b.setStone(types.White, 1, 0)

	if !b.TryMove(types.White, 0, 1) {
		t.Fatal("capturing move should not be treated as suicide")
	}
	if b.At(0, 0) != types.Empty {
		t.Fatal("corner black stone should be captured")
	}
	if b.At(0, 1) != types.White {
		t.Fatal("capturing stone should remain on the board")
	}
}

func TestLastMoveMarker(t *testing.T) {
	b := NewBoard(9)
	b.TryMove(types.Black, 2, 2)
	p, ok := b.LastMove()
	if !ok || p != (types.Point{X: 2, Y: 2}) {
		t.Fatalf("last move should be (2,2), got %v ok=%v", p, ok)
	}

	b.notePass()
	if _, ok := b.LastMove(); ok {
		t.Fatal("pass should clear the last-move marker")
	}
}

func TestSharedLibertiesCountedOnce(t *testing.T) {
	b := NewBoard(9)
	b.setStone(types.White, 4, 4)
	b.setStone(types.White, 5, 4)
	g := b.groupAt(4, 4)
	if len(g.stones) != 2 {
		t.Fatalf("expected 2 stones in group, got %d", len(g.stones))
	}
	// 3 liberties around each stone minus the shared cells: 6 total.
	if g.liberties != 6 {
		t.Fatalf("expected 6 distinct liberties, got %d", g.liberties)
	}
}

// snapshot flattens the grid for byte-for-byte comparison.
func snapshot(b *Board) string {
	out := make([]byte, 0, b.Size()*b.Size())
	for y := 0; y < b.Size(); y++ {
		for x := 0; x < b.Size(); x++ {
			out = append(out, byte('0'+b.At(x, y)))
		}
	}
	return string(out)
}
