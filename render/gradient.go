package render

import "github.com/lucasb-eyer/go-colorful"

// Candidate markers are colored by how many points a move gives up
// against the engine's best: green for no loss, shading through
// yellow-green, orange and red to purple at a loss of five points or
// more. The scale is a 4-segment piecewise curve in HSL space; adjacent
// segments share their endpoint stops, so the gradient is continuous.
//
// Hues are kept on a single unwrapped axis (descending through 0 into
// negative values) so that each segment interpolates along the short
// way around the hue circle.
type hslStop struct {
	h, s, l float64
}

var gradientStops = [5]hslStop{
	{120, 0.61, 0.50}, // green
	{75, 0.70, 0.48},  // yellow-green
	{35, 0.85, 0.52},  // orange
	{-5, 0.72, 0.50},  // red (355)
	{-72, 0.48, 0.46}, // purple (288)
}

// scoreScale is the score-lead delta mapped to the far (purple) end.
const scoreScale = 5.0

// ScoreColor maps the absolute score-lead delta between a candidate and
// the best candidate to its marker color. Deltas at or beyond
// scoreScale saturate at the purple endpoint.
func ScoreColor(delta float64) colorful.Color {
	if delta < 0 {
		delta = -delta
	}
	t := delta / scoreScale
	if t > 1 {
		t = 1
	}

	seg := int(t * 4)
	if seg > 3 {
		seg = 3
	}
	f := t*4 - float64(seg)

	a, b := gradientStops[seg], gradientStops[seg+1]
	h := a.h + (b.h-a.h)*f
	s := a.s + (b.s-a.s)*f
	l := a.l + (b.l-a.l)*f
	if h < 0 {
		h += 360
	}
	return colorful.Hsl(h, s, l)
}
