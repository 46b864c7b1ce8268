// Package input translates raw pointer and touch events into board
// coordinates and move-intent events. The controller resolves input and
// emits intent only; the rules engine remains the sole authority on
// move legality.
package input

import (
	"math"
	"time"

	"kataview/render"
	"kataview/types"
)

// Device classifies the input source. Precise pointers commit on a
// single activation; touch uses two-step confirmation.
type Device int

const (
	Mouse Device = iota
	Touch
)

// Kind is the pointer event type.
type Kind int

const (
	Down Kind = iota
	Move
	Up
)

// PointerEvent is one raw input sample in screen coordinates. ID
// distinguishes simultaneous touch contacts; mouse events use ID 0.
type PointerEvent struct {
	Kind   Kind
	Device Device
	ID     int
	X, Y   float64
	Time   time.Time
}

// Sink receives the controller's output. All methods are invoked
// synchronously from Handle.
type Sink interface {
	// MoveIntent is emitted when input commits to a board coordinate.
	MoveIntent(p types.Point)

	// HoverChanged tracks the cell under a precise pointer, for the
	// semi-transparent preview stone. ok=false clears the preview.
	HoverChanged(p types.Point, ok bool)

	// PendingChanged tracks the armed cell of the touch two-step
	// confirmation. ok=false clears it.
	PendingChanged(p types.Point, ok bool)

	// ViewportChanged fires after any zoom or pan adjustment.
	ViewportChanged()
}

const (
	// tapSlop cancels tap semantics for an un-zoomed single touch.
	tapSlop = 10.0

	// sessionSlop is the coarser threshold once a pinch/pan session
	// is active.
	sessionSlop = 5.0

	// doubleTapWindow is the time allowed between two taps for a
	// zoom reset.
	doubleTapWindow = 350 * time.Millisecond
)

type contact struct {
	startX, startY float64
	x, y           float64
	moved          bool
}

// Controller is the pointer/touch state machine. It owns no game
// state: it maps screen positions through the viewport and layout to
// cells and decides when an activation becomes an intent.
//
// Candidate markers need no special casing here: a marker sits on its
// board cell, so activating the marker resolves to that cell and the
// emitted intent plays the suggestion.
type Controller struct {
	layout render.Layout
	view   *render.Viewport
	sink   Sink

	contacts map[int]*contact

	hasHover bool
	hover    types.Point

	hasPending bool
	pending    types.Point

	// pinch/pan session state
	session    bool
	pinching   bool
	pinchIDs   [2]int
	pinchDist  float64
	pinchScale float64

	lastTapAt time.Time
}

// NewController creates a controller over the given geometry.
func NewController(layout render.Layout, view *render.Viewport, sink Sink) *Controller {
	return &Controller{
		layout:   layout,
		view:     view,
		sink:     sink,
		contacts: make(map[int]*contact),
	}
}

// SetLayout swaps the cell geometry, e.g. after a surface resize or a
// board-size change.
func (c *Controller) SetLayout(layout render.Layout) {
	c.layout = layout
}

// Pending returns the armed two-step confirmation cell, if any.
func (c *Controller) Pending() (types.Point, bool) {
	return c.pending, c.hasPending
}

// Handle feeds one raw event through the state machine.
func (c *Controller) Handle(ev PointerEvent) {
	switch ev.Device {
	case Mouse:
		c.handleMouse(ev)
	case Touch:
		c.handleTouch(ev)
	}
}

func (c *Controller) handleMouse(ev PointerEvent) {
	switch ev.Kind {
	case Move:
		ct := c.contacts[ev.ID]
		if ct == nil {
			// Unpressed motion: hover preview.
			c.updateHover(ev.X, ev.Y)
			return
		}
		c.trackMotion(ct, ev.X, ev.Y)
	case Down:
		c.contacts[ev.ID] = &contact{startX: ev.X, startY: ev.Y, x: ev.X, y: ev.Y}
	case Up:
		ct := c.contacts[ev.ID]
		delete(c.contacts, ev.ID)
		if ct == nil || ct.moved {
			c.endSessionIfIdle()
			return
		}
		// Single activation commits immediately on precise pointers.
		if p, ok := c.resolve(ev.X, ev.Y); ok {
			c.sink.MoveIntent(p)
		}
	}
}

func (c *Controller) handleTouch(ev PointerEvent) {
	switch ev.Kind {
	case Down:
		c.contacts[ev.ID] = &contact{startX: ev.X, startY: ev.Y, x: ev.X, y: ev.Y}
		if len(c.contacts) == 2 {
			c.beginPinch()
		}
	case Move:
		ct := c.contacts[ev.ID]
		if ct == nil {
			return
		}
		c.trackMotion(ct, ev.X, ev.Y)
		if c.pinching {
			c.updatePinch()
		}
	case Up:
		ct := c.contacts[ev.ID]
		delete(c.contacts, ev.ID)
		if c.pinching && len(c.contacts) < 2 {
			c.pinching = false
			if c.view.SnapBack() {
				c.sink.ViewportChanged()
			}
		}
		if ct == nil || ct.moved {
			c.endSessionIfIdle()
			return
		}
		c.touchTap(ev)
		c.endSessionIfIdle()
	}
}

// trackMotion updates a contact, flags it once it exceeds the movement
// threshold, and pans a zoomed view on single-contact drag. Any
// movement beyond the threshold cancels tap/commit semantics for this
// contact sequence.
func (c *Controller) trackMotion(ct *contact, x, y float64) {
	dx, dy := x-ct.x, y-ct.y
	ct.x, ct.y = x, y

	if !ct.moved {
		slop := tapSlop
		if c.session || c.view.Zoomed() {
			slop = sessionSlop
		}
		if math.Hypot(x-ct.startX, y-ct.startY) > slop {
			ct.moved = true
		}
	}

	if ct.moved && !c.pinching && len(c.contacts) <= 1 && c.view.Zoomed() {
		c.session = true
		c.view.PanBy(dx, dy)
		c.sink.ViewportChanged()
	}
}

// touchTap runs the two-step confirmation: the first activation arms a
// cell as pending, a second activation on the same cell commits it, an
// activation elsewhere re-arms. A quick second tap on a zoomed view
// resets the zoom instead.
func (c *Controller) touchTap(ev PointerEvent) {
	if c.view.Zoomed() && !c.lastTapAt.IsZero() && ev.Time.Sub(c.lastTapAt) <= doubleTapWindow {
		c.lastTapAt = time.Time{}
		c.view.Reset()
		c.session = false
		c.clearPending()
		c.sink.ViewportChanged()
		return
	}
	c.lastTapAt = ev.Time

	p, ok := c.resolve(ev.X, ev.Y)
	if !ok {
		c.clearPending()
		return
	}
	if c.hasPending && c.pending == p {
		c.clearPending()
		c.sink.MoveIntent(p)
		return
	}
	c.pending = p
	c.hasPending = true
	c.sink.PendingChanged(p, true)
}

func (c *Controller) beginPinch() {
	i := 0
	for id := range c.contacts {
		c.pinchIDs[i] = id
		i++
	}
	a, b := c.contacts[c.pinchIDs[0]], c.contacts[c.pinchIDs[1]]
	c.pinchDist = math.Hypot(a.x-b.x, a.y-b.y)
	c.pinchScale = c.view.Scale
	c.pinching = true
	c.session = true
	// A second finger always cancels tap semantics for both contacts.
	a.moved = true
	b.moved = true
	c.clearPending()
}

// updatePinch recomputes scale from the contact distance ratio and
// anchors the transform at the gesture midpoint: the logical point
// under the midpoint stays fixed while zooming.
func (c *Controller) updatePinch() {
	a, ok1 := c.contacts[c.pinchIDs[0]]
	b, ok2 := c.contacts[c.pinchIDs[1]]
	if !ok1 || !ok2 || c.pinchDist == 0 {
		return
	}
	dist := math.Hypot(a.x-b.x, a.y-b.y)
	scale := c.pinchScale * dist / c.pinchDist
	midX, midY := (a.x+b.x)/2, (a.y+b.y)/2
	c.view.SetScale(scale, midX, midY)
	c.sink.ViewportChanged()
}

// resolve maps a screen position through the viewport transform and
// the cell layout.
func (c *Controller) resolve(sx, sy float64) (types.Point, bool) {
	px, py := c.view.Invert(sx, sy)
	return c.layout.CellAt(px, py)
}

func (c *Controller) updateHover(sx, sy float64) {
	p, ok := c.resolve(sx, sy)
	if ok == c.hasHover && p == c.hover {
		return
	}
	c.hover, c.hasHover = p, ok
	c.sink.HoverChanged(p, ok)
}

func (c *Controller) clearPending() {
	if !c.hasPending {
		return
	}
	c.hasPending = false
	c.sink.PendingChanged(types.Point{}, false)
}

// endSessionIfIdle closes the pinch/pan session once all contacts are
// lifted and the view is back at identity.
func (c *Controller) endSessionIfIdle() {
	if len(c.contacts) == 0 && !c.view.Zoomed() {
		c.session = false
	}
}
