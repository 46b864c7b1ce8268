package render

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"kataview/engine"
	"kataview/types"
)

func candidates(n int) []engine.Candidate {
	out := make([]engine.Candidate, n)
	for i := range out {
		out[i] = engine.Candidate{
			Move:      fmt.Sprintf("%c%d", 'A'+i%8, 1+i/8),
			Visits:    1000 - i*10,
			ScoreLead: 3.0 - float64(i)*0.3,
			Order:     i,
		}
	}
	return out
}

func TestOverlayEmptyPayload(t *testing.T) {
	l := NewLayout(800, 800, 19)
	require.Empty(t, BuildOverlay(nil, l, -1, -1, false).Markers,
		"no payload, no overlay")
	require.Empty(t, BuildOverlay(&engine.Analysis{}, l, -1, -1, false).Markers,
		"an empty candidate list renders nothing rather than failing")
}

func TestOverlayCapsAtFifteenCandidates(t *testing.T) {
	l := NewLayout(800, 800, 19)
	a := &engine.Analysis{Moves: candidates(25)}
	o := BuildOverlay(a, l, -1, -1, false)
	require.Len(t, o.Markers, 15, "only the first 15 ranked candidates are drawn")
}

func TestOverlayReverseRankOrder(t *testing.T) {
	l := NewLayout(800, 800, 19)
	a := &engine.Analysis{Moves: candidates(5)}
	o := BuildOverlay(a, l, -1, -1, false)

	require.Len(t, o.Markers, 5)
	for i, m := range o.Markers {
		require.Equal(t, 4-i, m.Rank, "markers are emitted worst first, best last")
	}
	require.True(t, o.Markers[len(o.Markers)-1].Highlight,
		"the best candidate carries the highlight stroke")
}

func TestOverlaySkipsUnrenderableCandidates(t *testing.T) {
	l := NewLayout(800, 800, 19)
	a := &engine.Analysis{Moves: []engine.Candidate{
		{Move: "D4", ScoreLead: 2.0, Order: 0},
		{Move: "pass", ScoreLead: 1.5, Order: 1},
		{Move: "garbage", ScoreLead: 1.0, Order: 2},
		{Move: "Q16", ScoreLead: 0.5, Order: 3},
	}}
	o := BuildOverlay(a, l, -1, -1, false)
	require.Len(t, o.Markers, 2, "pass and malformed vertices are skipped")
}

func TestOverlayColorTracksScoreDelta(t *testing.T) {
	l := NewLayout(800, 800, 19)
	a := &engine.Analysis{Moves: []engine.Candidate{
		{Move: "D4", ScoreLead: 2.0, Order: 0},
		{Move: "Q16", ScoreLead: -8.0, Order: 1},
	}}
	o := BuildOverlay(a, l, -1, -1, false)

	require.Len(t, o.Markers, 2)
	worst, best := o.Markers[0], o.Markers[1]
	require.Equal(t, 0, best.Rank)
	require.InDelta(t, 0, best.Delta, 1e-9)
	require.InDelta(t, 0, best.Color.DistanceRgb(ScoreColor(0)), 1e-9)
	require.InDelta(t, 10.0, worst.Delta, 1e-9)
	require.InDelta(t, 0, worst.Color.DistanceRgb(ScoreColor(5)), 1e-9,
		"deltas beyond the scale saturate at the purple endpoint")
}

func TestOverlayHoverHighlight(t *testing.T) {
	l := NewLayout(800, 800, 19)
	a := &engine.Analysis{Moves: candidates(4)}
	o := BuildOverlay(a, l, 2, -1, false)
	for _, m := range o.Markers {
		require.Equal(t, m.Rank == 0 || m.Rank == 2, m.Highlight,
			"hover emphasis applies to rank 2, rank %d got %v", m.Rank, m.Highlight)
	}
}

func TestMarkerLabels(t *testing.T) {
	require.Equal(t, "0", markerLabel(0.01, 1234, true),
		"compact layout shows the lead delta only")
	require.Equal(t, "-1.5", markerLabel(1.5, 1234, true))
	require.Equal(t, "-1.5 1.2k", markerLabel(1.5, 1234, false),
		"full layout appends the visit count")
	require.Equal(t, "0 987", markerLabel(0.0, 987, false))
}

func TestFormatVisits(t *testing.T) {
	require.Equal(t, "5", FormatVisits(5))
	require.Equal(t, "999", FormatVisits(999))
	require.Equal(t, "1.0k", FormatVisits(1000))
	require.Equal(t, "12.3k", FormatVisits(12345))
}

func TestOwnershipFloorAndSign(t *testing.T) {
	l := NewLayout(800, 800, 9)
	values := make([]float64, 81)
	values[0] = 0.95   // strong black at (0,0)
	values[10] = -0.4  // white lean at (1,1)
	values[20] = 0.05  // below the floor, not rendered
	values[30] = -0.09 // below the floor, not rendered

	a := &engine.Analysis{
		Moves:     candidates(1),
		Ownership: values,
	}
	o := BuildOverlay(a, l, -1, -1, false)

	require.Len(t, o.Ownership, 2, "weak signals below 0.1 are not rendered")
	require.Equal(t, 0, o.Ownership[0].Point.X)
	require.Equal(t, 0, o.Ownership[0].Point.Y)
	require.InDelta(t, 0.95, o.Ownership[0].Strength, 1e-9)
	require.Equal(t, types.Black, o.Ownership[0].Owner, "positive values lean black")
	require.Equal(t, types.White, o.Ownership[1].Owner, "negative values lean white")
	require.Equal(t, 1, o.Ownership[1].Point.X)
	require.Equal(t, 1, o.Ownership[1].Point.Y)
	require.InDelta(t, 0.4, o.Ownership[1].Strength, 1e-9)
}

func TestOwnershipWrongShapeIgnored(t *testing.T) {
	l := NewLayout(800, 800, 19)
	a := &engine.Analysis{Moves: candidates(1), Ownership: make([]float64, 81)}
	o := BuildOverlay(a, l, -1, -1, false)
	require.Empty(t, o.Ownership, "a grid of the wrong shape is discarded")
}
