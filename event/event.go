// Package event provides the typed event bus connecting the game core
// to its consumers. Components publish what happened; interested parties
// subscribe instead of being hand-wired through callbacks.
package event

import "kataview/types"

// Event is implemented by all published payload types.
type Event interface {
	event()
}

// MoveCommitted is published after a move or pass is accepted.
type MoveCommitted struct {
	Move  types.Move
	Index int // position of the move in the log
}

// IllegalMove is published when a move intent was rejected by the rules.
type IllegalMove struct {
	Color types.Color
	Point types.Point
}

// NavigationChanged is published when the view cursor moved without a
// new move being committed (navigation, undo).
type NavigationChanged struct {
	ViewIndex int
	Length    int
}

// AnalysisApplied is published when a fresh analysis response was
// accepted for the current position.
type AnalysisApplied struct {
	Signature string
}

// AnalysisDiscarded is published when a late response no longer matched
// the board position it was requested for.
type AnalysisDiscarded struct {
	Signature string
}

func (MoveCommitted) event()     {}
func (IllegalMove) event()       {}
func (NavigationChanged) event() {}
func (AnalysisApplied) event()   {}
func (AnalysisDiscarded) event() {}

// Bus is a minimal synchronous publish/subscribe hub. Subscriptions are
// registered during wiring, before any publisher runs, so the handler
// list needs no locking.
type Bus struct {
	handlers []func(Event)
}

func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a handler for all subsequent events.
func (b *Bus) Subscribe(fn func(Event)) {
	b.handlers = append(b.handlers, fn)
}

// Publish delivers e to every subscriber in registration order.
func (b *Bus) Publish(e Event) {
	for _, fn := range b.handlers {
		fn(e)
	}
}
