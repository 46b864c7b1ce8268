package render

const (
	// MinScale and MaxScale bound the zoom factor.
	MinScale = 1.0
	MaxScale = 3.5

	// snapBackScale is the threshold below which the viewport resets
	// to the identity transform.
	snapBackScale = 1.05
)

// Viewport describes how the logical board raster maps onto the
// physical drawing surface: screen = logical*Scale + Pan. Pan is
// clamped so the visible surface never reveals area outside the
// raster.
type Viewport struct {
	Width  float64
	Height float64
	Scale  float64
	PanX   float64
	PanY   float64
}

// NewViewport creates an identity viewport over a surface.
func NewViewport(width, height float64) *Viewport {
	return &Viewport{Width: width, Height: height, Scale: MinScale}
}

// Apply maps a logical position to the screen.
func (v *Viewport) Apply(x, y float64) (float64, float64) {
	return x*v.Scale + v.PanX, y*v.Scale + v.PanY
}

// Invert maps a screen position back to logical coordinates.
func (v *Viewport) Invert(sx, sy float64) (float64, float64) {
	return (sx - v.PanX) / v.Scale, (sy - v.PanY) / v.Scale
}

// Zoomed reports whether the viewport is meaningfully zoomed in.
func (v *Viewport) Zoomed() bool {
	return v.Scale > snapBackScale
}

// SetScale applies a new scale factor, clamped to [MinScale, MaxScale],
// holding the screen anchor point fixed: whatever logical position lay
// under the anchor stays under it.
func (v *Viewport) SetScale(scale, anchorX, anchorY float64) {
	if scale < MinScale {
		scale = MinScale
	}
	if scale > MaxScale {
		scale = MaxScale
	}
	lx, ly := v.Invert(anchorX, anchorY)
	v.Scale = scale
	v.PanX = anchorX - lx*scale
	v.PanY = anchorY - ly*scale
	v.clampPan()
}

// PanBy translates the viewport by a screen-space delta.
func (v *Viewport) PanBy(dx, dy float64) {
	v.PanX += dx
	v.PanY += dy
	v.clampPan()
}

// SnapBack resets the transform to identity when the scale has dropped
// back near 1. Returns true if a reset happened.
func (v *Viewport) SnapBack() bool {
	if v.Scale > snapBackScale {
		return false
	}
	v.Reset()
	return true
}

// Reset restores the identity transform.
func (v *Viewport) Reset() {
	v.Scale = MinScale
	v.PanX = 0
	v.PanY = 0
}

// clampPan keeps the scaled raster covering the whole surface. At
// scale 1 the only valid pan is zero.
func (v *Viewport) clampPan() {
	v.PanX = clamp(v.PanX, v.Width-v.Width*v.Scale, 0)
	v.PanY = clamp(v.PanY, v.Height-v.Height*v.Scale, 0)
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
