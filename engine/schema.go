package engine

import (
	"sort"

	"kataview/board"
	"kataview/engine/gtp"
	"kataview/types"
)

// Query is the analysis request payload. Moves and initial stones use
// the ["B","D4"] pair format; Signature tags the request with the board
// position it was computed for and is echoed back with the response.
type Query struct {
	ID               string           `json:"id"`
	Signature        string           `json:"-"`
	Moves            []types.WireMove `json:"moves"`
	BoardSize        int              `json:"boardSize"`
	Komi             float64          `json:"komi"`
	MaxVisits        int              `json:"maxVisits"`
	IncludeOwnership bool             `json:"includeOwnership,omitempty"`
	InitialStones    []types.WireMove `json:"initialStones,omitempty"`
	InitialPlayer    string           `json:"initialPlayer,omitempty"`
}

// Candidate is one ranked move suggestion. Order 0 is the engine's
// preferred move; PV is the expected continuation in vertex text.
type Candidate struct {
	Move      string   `json:"move"`
	Visits    int      `json:"visits"`
	Winrate   float64  `json:"winrate"`
	ScoreLead float64  `json:"scoreLead"`
	Order     int      `json:"order"`
	PV        []string `json:"pv"`
	Prior     float64  `json:"prior"`
}

// Analysis is the evaluated position. Winrate and ScoreLead are from
// black's perspective. Ownership, when requested, is one value per
// intersection in [-1, +1], row-major; positive values lean black.
type Analysis struct {
	ID            string      `json:"id"`
	CurrentPlayer string      `json:"currentPlayer"`
	Winrate       float64     `json:"winrate"`
	ScoreLead     float64     `json:"scoreLead"`
	Visits        int         `json:"visits"`
	Moves         []Candidate `json:"moves"`
	Ownership     []float64   `json:"ownership,omitempty"`
	Error         string      `json:"error,omitempty"`
}

// Sanitize validates a response in place against the board size:
// candidates whose move text is neither a pass nor a resolvable vertex
// are dropped, the remainder is ordered by rank, and an ownership grid
// of the wrong shape is discarded. A response can end up with no
// candidates; the renderer then simply shows no overlay.
func (a *Analysis) Sanitize(size int) {
	kept := a.Moves[:0]
	for _, c := range a.Moves {
		if gtp.IsPass(c.Move) {
			kept = append(kept, c)
			continue
		}
		if _, ok := gtp.FromVertex(c.Move, size); ok {
			kept = append(kept, c)
		}
	}
	a.Moves = kept
	sort.SliceStable(a.Moves, func(i, j int) bool {
		return a.Moves[i].Order < a.Moves[j].Order
	})
	if a.Ownership != nil && len(a.Ownership) != size*size {
		a.Ownership = nil
	}
}

// BuildQuery assembles an analysis request for the game's currently
// displayed position. Visits above zero override the settings default.
func BuildQuery(g *board.Game, s Settings, visits int) Query {
	if visits <= 0 {
		visits = s.MaxVisits
	}
	size := g.Size()

	moves := make([]types.WireMove, 0, len(g.Moves()))
	for _, m := range g.Moves() {
		moves = append(moves, gtp.MoveToWire(m, size))
	}

	var initial []types.WireMove
	for _, st := range g.InitialStones() {
		initial = append(initial, gtp.MoveToWire(st, size))
	}

	q := Query{
		Signature:        g.Signature(),
		Moves:            moves,
		BoardSize:        size,
		Komi:             s.Komi,
		MaxVisits:        visits,
		IncludeOwnership: s.IncludeOwnership,
		InitialStones:    initial,
	}
	if len(initial) > 0 {
		q.InitialPlayer = g.FirstToMove().Wire()
	}
	return q
}
