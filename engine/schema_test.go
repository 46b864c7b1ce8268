package engine

import (
	"testing"

	"github.com/stretchr/testify/require"

	"kataview/board"
	"kataview/types"
)

func TestSanitizeDropsUnparseableCandidates(t *testing.T) {
	a := &Analysis{Moves: []Candidate{
		{Move: "Q16", Order: 1},
		{Move: "", Order: 2},
		{Move: "Z99", Order: 3},
		{Move: "pass", Order: 4},
		{Move: "D4", Order: 0},
	}}
	a.Sanitize(19)

	require.Len(t, a.Moves, 3)
	require.Equal(t, "D4", a.Moves[0].Move, "candidates are ordered by rank")
	require.Equal(t, "Q16", a.Moves[1].Move)
	require.Equal(t, "pass", a.Moves[2].Move, "a pass candidate is renderable metadata")
}

func TestSanitizeDropsMisshapenOwnership(t *testing.T) {
	a := &Analysis{Ownership: make([]float64, 100)}
	a.Sanitize(19)
	require.Nil(t, a.Ownership)

	a = &Analysis{Ownership: make([]float64, 361)}
	a.Sanitize(19)
	require.Len(t, a.Ownership, 361, "a well-shaped grid is kept")
}

func TestBuildQueryWireShape(t *testing.T) {
	g := board.NewGame(9, nil)
	require.True(t, g.Play(4, 4)) // B E5
	require.True(t, g.Play(4, 3)) // W E6
	g.Pass()                      // B

	s := Settings{Komi: 7.5, MaxVisits: 3000, IncludeOwnership: true}
	q := BuildQuery(g, s, 0)

	require.Equal(t, 9, q.BoardSize)
	require.InDelta(t, 7.5, q.Komi, 1e-9)
	require.Equal(t, 3000, q.MaxVisits)
	require.True(t, q.IncludeOwnership)
	require.Equal(t, []types.WireMove{
		{"B", "E5"},
		{"W", "E6"},
		{"B", "pass"},
	}, q.Moves)
	require.Empty(t, q.InitialStones)
	require.Empty(t, q.InitialPlayer)
	require.Equal(t, g.Signature(), q.Signature)
}

func TestBuildQueryVisitsOverride(t *testing.T) {
	g := board.NewGame(9, nil)
	s := Settings{Komi: 6.5, MaxVisits: 3000}
	require.Equal(t, 100, BuildQuery(g, s, 100).MaxVisits,
		"an explicit budget overrides the default")
	require.Equal(t, 3000, BuildQuery(g, s, 0).MaxVisits)
}

func TestBuildQueryForSeededGame(t *testing.T) {
	initial := []types.Move{
		{Color: types.Black, Point: types.Point{X: 3, Y: 5}},
		{Color: types.White, Point: types.Point{X: 5, Y: 3}},
	}
	g := board.NewGameFromStones(9, initial, types.White, nil)
	q := BuildQuery(g, Settings{Komi: 7.5, MaxVisits: 100}, 0)

	require.Equal(t, []types.WireMove{{"B", "D4"}, {"W", "F6"}}, q.InitialStones)
	require.Equal(t, "W", q.InitialPlayer, "the designated next color rides along")
}

func TestBuildQueryCoversViewPrefixOnly(t *testing.T) {
	g := board.NewGame(9, nil)
	g.Play(4, 4)
	g.Play(3, 3)
	g.Play(5, 5)
	g.NavigateTo(1)

	q := BuildQuery(g, Settings{MaxVisits: 10}, 0)
	require.Len(t, q.Moves, 1, "analysis covers the displayed position, not the log head")
}
