package render

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"kataview/engine"
	"kataview/engine/gtp"
	"kataview/types"
)

// maxCandidates bounds how many ranked candidates are rendered.
const maxCandidates = 15

// ownershipFloor is the minimum |ownership| that produces a tint;
// weaker signals are noise and are not rendered.
const ownershipFloor = 0.1

// Marker is one candidate's visual encoding. All markers are the same
// size; candidates are distinguished by color and adornment only, never
// by size. Markers are emitted worst-first so that drawing them in
// order leaves the best candidate on top.
type Marker struct {
	Point     types.Point
	Px, Py    float64 // cell center on the logical raster
	Color     colorful.Color
	Rank      int
	Delta     float64 // score-lead loss versus the best candidate
	Label     string
	Highlight bool // stroke emphasis: best, hovered, or selected
}

// OwnershipMark tints one intersection toward its projected owner.
// Strength is the signal magnitude in [ownershipFloor, 1].
type OwnershipMark struct {
	Point    types.Point
	Px, Py   float64
	Owner    types.Color
	Strength float64
}

// Overlay is the complete computed analysis layer for one position.
type Overlay struct {
	Markers   []Marker
	Ownership []OwnershipMark
}

// BuildOverlay computes the overlay for an analysis payload. hover and
// selected are candidate ranks supplied by the interaction layer (-1
// for none); they affect stroke emphasis only. compact selects the
// short label form used on small displays. A nil or empty payload
// yields an empty overlay; unrenderable candidates are skipped.
func BuildOverlay(a *engine.Analysis, layout Layout, hover, selected int, compact bool) Overlay {
	var o Overlay
	if a == nil || len(a.Moves) == 0 {
		return o
	}

	candidates := a.Moves
	if len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}
	best := candidates[0].ScoreLead

	// Reverse rank order: worst first, best last, so the best marker
	// and its highlight stroke are never occluded.
	for rank := len(candidates) - 1; rank >= 0; rank-- {
		c := candidates[rank]
		p, ok := gtp.FromVertex(c.Move, layout.Size)
		if !ok {
			continue
		}
		px, py := layout.CellCenter(p)
		delta := math.Abs(c.ScoreLead - best)
		o.Markers = append(o.Markers, Marker{
			Point:     p,
			Px:        px,
			Py:        py,
			Color:     ScoreColor(delta),
			Rank:      rank,
			Delta:     delta,
			Label:     markerLabel(delta, c.Visits, compact),
			Highlight: rank == 0 || rank == hover || rank == selected,
		})
	}

	o.Ownership = buildOwnership(a.Ownership, layout)
	return o
}

func buildOwnership(values []float64, layout Layout) []OwnershipMark {
	if len(values) != layout.Size*layout.Size {
		return nil
	}
	var marks []OwnershipMark
	for y := 0; y < layout.Size; y++ {
		for x := 0; x < layout.Size; x++ {
			v := values[y*layout.Size+x]
			if math.Abs(v) < ownershipFloor {
				continue
			}
			owner := types.Black
			if v < 0 {
				owner = types.White
			}
			p := types.Point{X: x, Y: y}
			px, py := layout.CellCenter(p)
			marks = append(marks, OwnershipMark{
				Point:    p,
				Px:       px,
				Py:       py,
				Owner:    owner,
				Strength: math.Min(math.Abs(v), 1),
			})
		}
	}
	return marks
}

// markerLabel renders the score-lead delta, plus the visit count in the
// full layout. Visit counts of a thousand and up are abbreviated.
func markerLabel(delta float64, visits int, compact bool) string {
	lead := "0"
	if delta >= 0.05 {
		lead = fmt.Sprintf("-%.1f", delta)
	}
	if compact {
		return lead
	}
	return lead + " " + FormatVisits(visits)
}

// FormatVisits abbreviates large visit counts with a "k" suffix.
func FormatVisits(visits int) string {
	if visits >= 1000 {
		return fmt.Sprintf("%.1fk", float64(visits)/1000)
	}
	return fmt.Sprintf("%d", visits)
}
