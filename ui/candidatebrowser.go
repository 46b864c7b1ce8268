package ui

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"kataview/board"
	"kataview/engine"
	"kataview/engine/gtp"
	"kataview/render"
	"kataview/types"
)

// CandidateBrowserUI is the variation explorer: a list of the ranked
// candidates on the left and a preview board on the right showing the
// selected candidate's principal variation played out.
type CandidateBrowserUI struct {
	flex     *tview.Flex
	list     *tview.List
	preview  *tview.Box
	hint     *tview.TextView
	game     *board.Game
	analysis *engine.Analysis
	selected int
	onDone   func()
	onPlay   func(types.Point)
}

// NewCandidateBrowser creates the variation explorer screen. onPlay is
// invoked when the user commits the selected candidate.
func NewCandidateBrowser(onDone func(), onPlay func(types.Point)) *CandidateBrowserUI {
	cb := &CandidateBrowserUI{
		onDone: onDone,
		onPlay: onPlay,
	}

	cb.list = tview.NewList()
	cb.list.SetBorder(true)
	cb.list.SetTitle(" Candidates ")
	cb.list.ShowSecondaryText(true)
	cb.list.SetHighlightFullLine(true)
	cb.list.SetMainTextStyle(tcell.StyleDefault.Foreground(PanelColors.Label))
	cb.list.SetSelectedStyle(tcell.StyleDefault.
		Foreground(PanelColors.ButtonText).
		Background(PanelColors.ButtonFocus))

	cb.preview = tview.NewBox()
	cb.preview.SetBorder(true)
	cb.preview.SetTitle(" Variation ")
	cb.preview.SetDrawFunc(cb.drawPreview)

	cb.hint = tview.NewTextView()
	cb.hint.SetDynamicColors(true)
	cb.hint.SetBorder(false)
	cb.hint.SetText("  [dimgray]⏎[-] play  [dimgray]q[-] back")

	cb.list.SetChangedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cb.selected = index
	})
	cb.list.SetSelectedFunc(func(index int, mainText, secondaryText string, shortcut rune) {
		cb.playSelected()
	})
	cb.list.SetInputCapture(cb.handleInput)

	topRow := tview.NewFlex().SetDirection(tview.FlexColumn).
		AddItem(cb.list, 38, 0, true).
		AddItem(cb.preview, 0, 1, false)

	cb.flex = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(topRow, 0, 1, true).
		AddItem(cb.hint, 1, 0, false)

	return cb
}

// Flex returns the flex container for this UI.
func (cb *CandidateBrowserUI) Flex() *tview.Flex {
	return cb.flex
}

// SetPosition loads the game and analysis this browser explores.
func (cb *CandidateBrowserUI) SetPosition(g *board.Game, a *engine.Analysis) {
	cb.game = g
	cb.analysis = a
	cb.selected = 0
	cb.populate()
}

// populate fills the list from the candidate ranking.
func (cb *CandidateBrowserUI) populate() {
	cb.list.Clear()
	if cb.analysis == nil || len(cb.analysis.Moves) == 0 {
		cb.list.AddItem("[dimgray]No analysis for this position[-]", "", 0, nil)
		return
	}

	best := cb.analysis.Moves[0].ScoreLead
	for i, c := range cb.analysis.Moves {
		delta := math.Abs(c.ScoreLead - best)
		hex := render.ScoreColor(delta).Hex()
		label := fmt.Sprintf("[%s]◆[-] %-5s %.1f%%", hex, c.Move, c.Winrate*100)
		detail := fmt.Sprintf("   lead %+.1f · %s visits · pv %d",
			c.ScoreLead, render.FormatVisits(c.Visits), len(c.PV))
		cb.list.AddItem(label, detail, 0, nil)
		if i >= 14 {
			break
		}
	}
}

// handleInput processes keyboard input for the browser.
func (cb *CandidateBrowserUI) handleInput(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		if cb.onDone != nil {
			cb.onDone()
		}
		return nil
	case tcell.KeyRune:
		if event.Rune() == 'q' {
			if cb.onDone != nil {
				cb.onDone()
			}
			return nil
		}
	}
	return event
}

// playSelected commits the highlighted candidate to the game.
func (cb *CandidateBrowserUI) playSelected() {
	if cb.analysis == nil || cb.selected < 0 || cb.selected >= len(cb.analysis.Moves) {
		return
	}
	c := cb.analysis.Moves[cb.selected]
	p, ok := gtp.FromVertex(c.Move, cb.game.Size())
	if !ok {
		return
	}
	if cb.onPlay != nil {
		cb.onPlay(p)
	}
	if cb.onDone != nil {
		cb.onDone()
	}
}

// variationBoard plays the selected candidate's PV onto a copy of the
// displayed board. Unparseable or illegal PV entries end the preview
// early rather than failing.
func (cb *CandidateBrowserUI) variationBoard() (*board.Board, int) {
	b := cb.game.Board().Clone()
	if cb.analysis == nil || cb.selected < 0 || cb.selected >= len(cb.analysis.Moves) {
		return b, 0
	}

	c := cb.analysis.Moves[cb.selected]
	color := cb.game.ToMove()
	depth := 0
	for _, vertex := range c.PV {
		if gtp.IsPass(vertex) {
			color = color.Opponent()
			continue
		}
		p, ok := gtp.FromVertex(vertex, b.Size())
		if !ok || !b.TryMove(color, p.X, p.Y) {
			break
		}
		color = color.Opponent()
		depth++
	}
	return b, depth
}

// drawPreview renders the variation board and its depth.
func (cb *CandidateBrowserUI) drawPreview(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if cb.game == nil {
		return x, y, width, height
	}

	b, depth := cb.variationBoard()
	size := b.Size()
	startX := x + 2
	startY := y + 1

	if width < size+4 || height < size+4 {
		return x, y, width, height
	}

	emptyStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(240))
	blackStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(255)).Bold(true)
	whiteStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))

	for by := 0; by < size; by++ {
		for bx := 0; bx < size; bx++ {
			ch := '·'
			style := emptyStyle
			switch b.At(bx, by) {
			case types.Black:
				ch = '●'
				style = blackStyle
			case types.White:
				ch = '○'
				style = whiteStyle
			}
			screen.SetContent(startX+bx, startY+by, ch, nil, style)
		}
	}

	infoY := startY + size + 1
	infoStyle := tcell.StyleDefault.Foreground(tcell.PaletteColor(250))
	drawText(screen, startX, infoY, fmt.Sprintf("%d variation moves shown", depth), infoStyle)

	return x, y, width, height
}

// drawText writes a string to the screen at the given position.
func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range text {
		screen.SetContent(x+i, y, ch, nil, style)
	}
}
