// Package ui specifies custom controls for tview for the analysis
// board in the terminal.
package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"kataview/board"
	"kataview/config"
	"kataview/engine"
	"kataview/engine/gtp"
	"kataview/render"
	"kataview/types"
)

// GoBoardUI renders the game board plus the analysis overlay and holds
// the keyboard selection cursor.
type GoBoardUI struct {
	Box  *tview.Box
	Game *board.Game

	hint      *tview.TextView
	cfg       *config.Config
	styles    []tcell.Color
	infoPanel *AnalysisPanel

	selX int
	selY int

	analysis      *engine.Analysis
	overlay       render.Overlay
	layout        render.Layout
	showOwnership bool
	focusMode     bool

	// OnPositionChanged is invoked after any accepted mutation or
	// navigation, once the board reflects the new position. The app
	// uses it to request fresh analysis.
	OnPositionChanged func()
}

// NewGoBoard creates the board widget over a game.
func NewGoBoard(c *config.Config, game *board.Game, hint *tview.TextView) *GoBoardUI {
	g := &GoBoardUI{
		Box:           tview.NewBox(),
		Game:          game,
		hint:          hint,
		selX:          -1,
		selY:          -1,
		showOwnership: c.Engine.IncludeOwnership,
	}
	g.SetConfig(c)
	g.layout = render.NewLayout(800, 800, game.Size())
	g.Box.SetDrawFunc(g.draw)
	g.Box.SetMouseCapture(g.handleMouse)
	return g
}

// SetConfig applies theme colors.
func (g *GoBoardUI) SetConfig(c *config.Config) {
	g.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),        // 0
		tcell.PaletteColor(c.Theme.Colors.BlackColor),        // 1
		tcell.PaletteColor(c.Theme.Colors.WhiteColor),        // 2
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG),     // 3
		tcell.PaletteColor(c.Theme.Colors.LastPlayedColorBG), // 4
		tcell.PaletteColor(c.Theme.Colors.LineColor),         // 5
	}
	g.cfg = c
}

// SetAnalysis installs a fresh analysis payload and recomputes the
// overlay. Called from the UI loop only.
func (g *GoBoardUI) SetAnalysis(a *engine.Analysis) {
	g.analysis = a
	g.rebuildOverlay()
	g.refreshAll()
}

// ClearAnalysis drops the overlay, e.g. because the position changed
// and the held payload no longer applies.
func (g *GoBoardUI) ClearAnalysis() {
	g.analysis = nil
	g.overlay = render.Overlay{}
	if g.infoPanel != nil {
		g.infoPanel.SetAnalysis(nil)
	}
}

// ToggleOwnership flips the ownership heat-map and returns the state.
func (g *GoBoardUI) ToggleOwnership() bool {
	g.showOwnership = !g.showOwnership
	return g.showOwnership
}

// ToggleFocusMode toggles the minimal-hint mode and returns the state.
func (g *GoBoardUI) ToggleFocusMode() bool {
	g.focusMode = !g.focusMode
	g.refreshHint()
	return g.focusMode
}

func (g *GoBoardUI) rebuildOverlay() {
	g.overlay = render.BuildOverlay(g.analysis, g.layout, -1, -1, true)
	if g.infoPanel != nil {
		g.infoPanel.SetAnalysis(g.analysis)
	}
}

// SelectedTile returns the keyboard cursor cell, if any.
func (g *GoBoardUI) SelectedTile() *types.Point {
	if g.selX == -1 && g.selY == -1 {
		return nil
	}
	return &types.Point{X: g.selX, Y: g.selY}
}

// MoveSelection moves the keyboard cursor, starting it at the last
// move or the board center when unset.
func (g *GoBoardUI) MoveSelection(h, v int) {
	size := g.Game.Size()
	if g.SelectedTile() == nil {
		if last, ok := g.Game.Board().LastMove(); ok {
			g.selX, g.selY = last.X, last.Y
		} else {
			g.selX, g.selY = size/2, size/2
		}
		return
	}
	if g.selX+h < 0 || g.selX+h >= size || g.selY+v < 0 || g.selY+v >= size {
		return
	}
	g.selX += h
	g.selY += v
}

func (g *GoBoardUI) ResetSelection() {
	g.selX = -1
	g.selY = -1
}

// PlayMove plays at the given cell for the side to move. Illegal moves
// are rejected by the game and surfaced through the hint line.
func (g *GoBoardUI) PlayMove(x, y int) {
	if !g.Game.Play(x, y) {
		g.flashHint(fmt.Sprintf("  illegal move at %s", gtp.ToVertex(x, y, g.Game.Size())))
		return
	}
	g.positionChanged()
}

// Pass records a pass for the side to move.
func (g *GoBoardUI) Pass() {
	g.Game.Pass()
	g.positionChanged()
}

// Undo drops the final move.
func (g *GoBoardUI) Undo() {
	if g.Game.Undo() {
		g.positionChanged()
	}
}

// Navigate moves the view cursor by delta moves.
func (g *GoBoardUI) Navigate(delta int) {
	before := g.Game.ViewIndex()
	g.Game.NavigateTo(before + delta)
	if g.Game.ViewIndex() != before {
		g.positionChanged()
	}
}

// PlayBest plays the top analysis candidate, if one is on screen.
func (g *GoBoardUI) PlayBest() {
	if g.analysis == nil || len(g.analysis.Moves) == 0 {
		return
	}
	best := g.analysis.Moves[0]
	if gtp.IsPass(best.Move) {
		g.Pass()
		return
	}
	if p, ok := gtp.FromVertex(best.Move, g.Game.Size()); ok {
		g.PlayMove(p.X, p.Y)
	}
}

// positionChanged invalidates transient analysis data and notifies the
// app. Every state-mutating operation funnels through here.
func (g *GoBoardUI) positionChanged() {
	g.ClearAnalysis()
	g.refreshAll()
	if g.OnPositionChanged != nil {
		g.OnPositionChanged()
	}
}

// handleMouse resolves terminal mouse clicks to board cells. A click
// on a candidate marker resolves to that marker's cell, so clicking a
// suggestion plays it.
func (g *GoBoardUI) handleMouse(action tview.MouseAction, event *tcell.EventMouse) (tview.MouseAction, *tcell.EventMouse) {
	if action != tview.MouseLeftClick {
		return action, event
	}
	mx, my := event.Position()
	rx, ry, _, _ := g.Box.GetInnerRect()

	// 2 characters per board cell, offset by the coordinate gutter.
	bx := (mx - rx - gutterWidth) / 2
	by := my - ry
	if !g.Game.Board().InRange(bx, by) {
		return action, event
	}
	g.selX, g.selY = bx, by
	g.PlayMove(bx, by)
	return action, nil
}

// gutterWidth is the character width reserved for row numbers.
const gutterWidth = 4

func (g *GoBoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	size := g.Game.Size()
	b := g.Game.Board()
	boardW, boardH := size*2, size

	ownership := g.ownershipByCell()
	markers := g.markersByCell()
	last, hasLast := b.LastMove()

	for by := 0; by < size; by++ {
		for bx := 0; bx < size; bx++ {
			stone := b.At(bx, by)
			cell := types.Point{X: bx, Y: by}

			bg := g.styles[0]
			fg := g.styles[5]
			var drawRune rune

			switch stone {
			case types.Black:
				drawRune = g.cfg.Theme.Symbols.BlackStone
				fg = g.styles[1]
			case types.White:
				drawRune = g.cfg.Theme.Symbols.WhiteStone
				fg = g.styles[2]
			default:
				drawRune = getGridRune(bx, by, size, size, isHoshiPoint(bx, by, size))
			}

			// Ownership tint sits behind everything else.
			if own, ok := ownership[cell]; ok && g.showOwnership && stone == types.Empty {
				drawRune = g.cfg.Theme.Symbols.Ownership
				fg = ownershipColor(own)
			}

			// Candidate markers replace the grid rune on empty cells.
			marker, hasMarker := markers[cell]
			if hasMarker && stone == types.Empty {
				drawRune = g.cfg.Theme.Symbols.Candidate
				fg = markerColor(marker)
			}

			if bx == g.selX && by == g.selY {
				if g.cfg.Theme.DrawCursorBackground {
					bg = g.styles[3]
				}
			} else if hasLast && bx == last.X && by == last.Y {
				bg = g.styles[4]
			}

			style := tcell.StyleDefault.Background(bg).Foreground(fg)
			if hasMarker && marker.Highlight {
				style = style.Bold(true)
			}

			hasStoneRight := bx < size-1 && b.At(bx+1, by) != types.Empty
			if stone == types.Empty && !hasMarker {
				drawGridCell(screen, style, drawRune, bx, by, x+gutterWidth, y, size, hasStoneRight)
			} else {
				drawStoneCell(screen, style, drawRune, bx, by, x+gutterWidth, y)
			}
		}
	}
	drawCoordinates(screen, x, y, g)
	return x, y, boardW + gutterWidth, boardH + 2
}

// ownershipByCell indexes the overlay's ownership marks for drawing.
func (g *GoBoardUI) ownershipByCell() map[types.Point]render.OwnershipMark {
	out := make(map[types.Point]render.OwnershipMark, len(g.overlay.Ownership))
	for _, m := range g.overlay.Ownership {
		out[m.Point] = m
	}
	return out
}

// markersByCell indexes the candidate markers for drawing. The overlay
// emits worst first, so later entries win the map slot, which keeps
// the best candidate on top exactly like raster draw order would.
func (g *GoBoardUI) markersByCell() map[types.Point]render.Marker {
	out := make(map[types.Point]render.Marker, len(g.overlay.Markers))
	for _, m := range g.overlay.Markers {
		out[m.Point] = m
	}
	return out
}

// markerColor converts the overlay's gradient color for the terminal.
func markerColor(m render.Marker) tcell.Color {
	r, gg, b := m.Color.RGB255()
	return tcell.NewRGBColor(int32(r), int32(gg), int32(b))
}

// ownershipColor shades toward black or white with the signal strength.
func ownershipColor(m render.OwnershipMark) tcell.Color {
	// Gray ramp: strong black ownership is dark, strong white bright.
	var v int32
	if m.Owner == types.Black {
		v = int32(90 - 80*m.Strength)
	} else {
		v = int32(165 + 80*m.Strength)
	}
	return tcell.NewRGBColor(v, v, v)
}

func (g *GoBoardUI) refreshAll() {
	if g.infoPanel != nil {
		g.infoPanel.SetGame(g.Game)
	}
	g.refreshHint()
}

func (g *GoBoardUI) refreshHint() {
	if g.focusMode {
		g.hint.SetText("  f to toggle")
		return
	}

	toMove := "● Black"
	if g.Game.ToMove() == types.White {
		toMove = "○ White"
	}
	position := fmt.Sprintf("move %d/%d", g.Game.ViewIndex(), g.Game.Len())

	statusLine := fmt.Sprintf("  %s to play · %s\n", toMove, position)
	controlsLine := "  hjkl/↑↓←→ move  ⏎ play  p pass  u undo  [ ] navigate  o ownership  b best  v vars  q quit"
	g.hint.SetText(statusLine + controlsLine)
}

func (g *GoBoardUI) flashHint(msg string) {
	g.hint.SetText(msg + "\n  (rejected — board unchanged)")
}

// drawStoneCell draws a stone cell (2 characters wide)
func drawStoneCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t int) {
	s.SetContent(l+x*2, t+y, r, nil, c)
	s.SetContent(l+x*2+1, t+y, ' ', nil, c)
}

// drawGridCell draws a cell using box-drawing characters for grid lines
func drawGridCell(s tcell.Screen, c tcell.Style, r rune, x, y, l, t, boardWidth int, hasStoneRight bool) {
	s.SetContent(l+x*2, t+y, r, nil, c)

	// Right connector: space if at right edge or if there's a stone to the right
	rightConn := '─'
	if x == boardWidth-1 || hasStoneRight {
		rightConn = ' '
	}
	s.SetContent(l+x*2+1, t+y, rightConn, nil, c)
}

// getGridRune returns the appropriate box-drawing character for a grid position
func getGridRune(x, y, width, height int, isHoshi bool) rune {
	if isHoshi {
		return '◦'
	}

	isTop := y == 0
	isBottom := y == height-1
	isLeft := x == 0
	isRight := x == width-1

	switch {
	case isTop && isLeft:
		return '┌'
	case isTop && isRight:
		return '┐'
	case isBottom && isLeft:
		return '└'
	case isBottom && isRight:
		return '┘'
	case isTop:
		return '┬'
	case isBottom:
		return '┴'
	case isLeft:
		return '├'
	case isRight:
		return '┤'
	default:
		return '┼'
	}
}

// isHoshiPoint checks if a position is a hoshi (star point) on the board
func isHoshiPoint(x, y, boardSize int) bool {
	var hoshiPositions [][2]int

	switch boardSize {
	case 9:
		hoshiPositions = [][2]int{
			{2, 2}, {2, 6},
			{4, 4},
			{6, 2}, {6, 6},
		}
	case 13:
		hoshiPositions = [][2]int{
			{3, 3}, {3, 9},
			{6, 6},
			{9, 3}, {9, 9},
		}
	case 19:
		hoshiPositions = [][2]int{
			{3, 3}, {3, 9}, {3, 15},
			{9, 3}, {9, 9}, {9, 15},
			{15, 3}, {15, 9}, {15, 15},
		}
	default:
		return false
	}

	for _, pos := range hoshiPositions {
		if x == pos[0] && y == pos[1] {
			return true
		}
	}
	return false
}

func drawCoordinates(s tcell.Screen, x, y int, ui *GoBoardUI) {
	hCoord := int('A')
	size := ui.Game.Size()
	if ui.cfg.Theme.FullWidthLetters {
		hCoord = int('Ａ')
	}

	style := tcell.StyleDefault
	highlight := tcell.StyleDefault.Background(ui.styles[3])

	last, hasLast := ui.Game.Board().LastMove()
	lpHighlight := tcell.StyleDefault.Background(ui.styles[4])

	for ix := 0; ix < size; ix++ {
		_style := style
		if ix == ui.selX {
			_style = highlight
		} else if hasLast && ix == last.X {
			_style = lpHighlight
		}
		// Column letters skip I, like the vertex notation.
		letter := ix
		if ix >= 8 {
			letter++
		}
		s.SetContent(x+gutterWidth+(ix*2), y+size+1, rune(hCoord+letter), nil, _style)
		s.SetContent(x+gutterWidth+(ix*2)+1, y+size+1, ' ', nil, _style)
	}

	for iy := 0; iy < size; iy++ {
		iyInv := size - iy - 1 // Board coordinates start top left, row numbers bottom left
		_style := style
		if iyInv == ui.selY {
			_style = highlight
		} else if hasLast && iyInv == last.Y {
			_style = lpHighlight
		}
		displayNum := iy + 1
		tensRune := ' '
		if displayNum >= 10 {
			tensRune = rune('0' + int((displayNum-(displayNum%10))/10))
		}
		s.SetContent(x+1, y+size-iy-1, tensRune, nil, _style)
		s.SetContent(x+2, y+size-iy-1, rune('0'+(displayNum%10)), nil, _style)
	}
}
