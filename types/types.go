// Package types contains shared data structures for kataview.
package types

import (
	"strings"
)

// Color identifies the contents of a board intersection.
// The numeric values match the wire format used by the recognition
// service: 0=empty, 1=black, 2=white.
type Color int8

const (
	Empty Color = iota
	Black
	White
)

// Opponent returns the other stone color. Empty maps to Empty.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return Empty
}

// Wire returns the single-letter color code used by the analysis server.
func (c Color) Wire() string {
	if c == White {
		return "W"
	}
	return "B"
}

func (c Color) String() string {
	switch c {
	case Black:
		return "black"
	case White:
		return "white"
	}
	return "empty"
}

// ColorFromWire parses a "B"/"W" (or "black"/"white") color code.
func ColorFromWire(s string) (Color, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "B", "BLACK":
		return Black, true
	case "W", "WHITE":
		return White, true
	}
	return Empty, false
}

// Point is a board intersection, 0-indexed with the origin at the
// top-left corner. X grows rightward, Y grows downward.
type Point struct {
	X int
	Y int
}

// Move is one entry of the move log. A pass carries no point.
// Moves are immutable once appended to a game.
type Move struct {
	Color Color
	Point Point
	Pass  bool
}

// WireMove is the ["B","D4"] color/vertex pair exchanged with the
// analysis server. A pass uses the literal vertex "pass".
type WireMove [2]string

// Color returns the move's color half of the pair.
func (m WireMove) Color() (Color, bool) {
	return ColorFromWire(m[0])
}

// Vertex returns the move's coordinate half of the pair.
func (m WireMove) Vertex() string {
	return m[1]
}

// IsPass reports whether the pair encodes a pass.
func (m WireMove) IsPass() bool {
	return strings.EqualFold(strings.TrimSpace(m[1]), "pass")
}
