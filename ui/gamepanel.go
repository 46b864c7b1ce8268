package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/rivo/tview"

	"kataview/board"
	"kataview/engine"
	"kataview/engine/gtp"
	"kataview/render"
	"kataview/types"
)

// AnalysisPanel displays the engine evaluation and the move log
// alongside the board.
type AnalysisPanel struct {
	box      *tview.TextView
	game     *board.Game
	analysis *engine.Analysis
	komi     float64
}

// NewAnalysisPanel creates the side panel.
func NewAnalysisPanel(komi float64) *AnalysisPanel {
	panel := &AnalysisPanel{
		box:  tview.NewTextView(),
		komi: komi,
	}

	panel.box.SetDynamicColors(true)
	panel.box.SetBorder(false)
	panel.box.SetTextAlign(tview.AlignLeft)

	return panel
}

// Box returns the underlying tview component.
func (p *AnalysisPanel) Box() *tview.TextView {
	return p.box
}

// SetGame updates the panel with the current game state.
func (p *AnalysisPanel) SetGame(g *board.Game) {
	p.game = g
	p.refresh()
}

// SetAnalysis installs the evaluation to display; nil clears it.
func (p *AnalysisPanel) SetAnalysis(a *engine.Analysis) {
	p.analysis = a
	p.refresh()
}

// refresh updates the panel text.
func (p *AnalysisPanel) refresh() {
	if p.game == nil {
		p.box.SetText("")
		return
	}

	var text string

	text += "[white::b]Game Info[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"
	text += fmt.Sprintf("[white]Komi:[-:-:-] %.1f\n", p.komi)
	text += fmt.Sprintf("[white]Move:[-:-:-] %d/%d\n", p.game.ViewIndex(), p.game.Len())

	if p.analysis != nil {
		text += "\n[white::b]Analysis[-:-:-]\n"
		text += "[dimgray]──────────────────────[-:-:-]\n"
		text += fmt.Sprintf("[white]Black:[-:-:-] %s %.1f%%\n", winrateBar(p.analysis.Winrate), p.analysis.Winrate*100)
		text += fmt.Sprintf("[white]Lead:[-:-:-]  %+.1f\n", p.analysis.ScoreLead)
		text += fmt.Sprintf("[dimgray]%s visits[-]\n", render.FormatVisits(p.analysis.Visits))
		text += p.candidateLines()
	} else {
		text += "\n[dimgray]analyzing…[-]\n"
	}

	text += p.moveLines()
	p.box.SetText(text)
}

// winrateBar renders black's win probability as a small bar.
func winrateBar(winrate float64) string {
	const width = 10
	filled := int(math.Round(winrate * width))
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[white]" + strings.Repeat("█", filled) + "[dimgray]" + strings.Repeat("░", width-filled) + "[-]"
}

// candidateLines lists the top suggestions with their gradient colors.
func (p *AnalysisPanel) candidateLines() string {
	const maxShown = 5
	if len(p.analysis.Moves) == 0 {
		return ""
	}
	best := p.analysis.Moves[0].ScoreLead

	var text string
	for i, c := range p.analysis.Moves {
		if i >= maxShown {
			break
		}
		delta := math.Abs(c.ScoreLead - best)
		hex := render.ScoreColor(delta).Hex()
		text += fmt.Sprintf("[%s]◆[-] %-4s [dimgray]%.1f%% %s[-]\n",
			hex, c.Move, c.Winrate*100, render.FormatVisits(c.Visits))
	}
	return text
}

// moveLines renders the tail of the move log with the view cursor.
func (p *AnalysisPanel) moveLines() string {
	moves := p.game.Moves()
	if len(moves) == 0 && p.game.Len() == 0 {
		return ""
	}

	text := "\n[white::b]Moves[-:-:-]\n"
	text += "[dimgray]──────────────────────[-:-:-]\n"

	const maxVisible = 10
	start := 0
	if len(moves) > maxVisible {
		start = len(moves) - maxVisible
	}

	size := p.game.Size()
	for i := start; i < len(moves); i++ {
		m := moves[i]

		colorStr := "[white]B[-]"
		if m.Color == types.White {
			colorStr = "[dimgray]W[-]"
		}

		coord := gtp.Pass
		if !m.Pass {
			coord = gtp.ToVertex(m.Point.X, m.Point.Y, size)
		}

		marker := " "
		if i == p.game.ViewIndex()-1 {
			marker = "[white]>[-]"
		}

		text += fmt.Sprintf("%s[dimgray]%3d.[-] %s %s\n", marker, i+1, colorStr, coord)
	}

	if start > 0 {
		text += fmt.Sprintf("[dimgray]  ··· %d earlier[-]\n", start)
	}
	if tail := p.game.Len() - len(moves); tail > 0 {
		text += fmt.Sprintf("[dimgray]  ··· %d ahead[-]\n", tail)
	}
	return text
}

// CreateGameLayout creates the main game layout with board and side panel.
func CreateGameLayout(boardUI *GoBoardUI, panel *AnalysisPanel, hint *tview.TextView) *tview.Flex {
	boardUI.infoPanel = panel
	panel.SetGame(boardUI.Game)

	// Horizontal flex: board | info panel
	boardRow := tview.NewFlex().SetDirection(tview.FlexColumn)
	boardRow.AddItem(boardUI.Box, 0, 1, true)
	boardRow.AddItem(panel.Box(), 26, 0, false)

	// Main vertical flex: board area on top, compact status bar at bottom
	mainFlex := tview.NewFlex().SetDirection(tview.FlexRow)
	mainFlex.AddItem(boardRow, 0, 1, true)
	mainFlex.AddItem(hint, 3, 0, false)

	return mainFlex
}
