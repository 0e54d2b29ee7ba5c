// Package core provides the engine for the beam puzzle: tiles, the layered
// grid, beam propagation and piece dragging.
// This package is UI-agnostic and deterministic.
package core

import (
	"fmt"
	"math"
)

// Dir represents the travel direction of the beam.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// String returns the string representation of a direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "Up"
	case DirRight:
		return "Right"
	case DirDown:
		return "Down"
	case DirLeft:
		return "Left"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for moving one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the opposite direction.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// Vertical reports whether the direction travels along the Y axis.
func (d Dir) Vertical() bool {
	return d == DirUp || d == DirDown
}

// Vec returns the unit vector for this direction in screen coordinates.
func (d Dir) Vec() Vec2 {
	dx, dy := d.Delta()
	return V(float64(dx), float64(dy))
}

// Vec2 is a point or offset in continuous logical units.
// One grid cell spans CellSize units on each axis.
type Vec2 struct {
	X float64
	Y float64
}

// V is a convenience constructor for Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by k.
func (v Vec2) Scale(k float64) Vec2 {
	return Vec2{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// String returns a string representation of the vector.
func (v Vec2) String() string {
	return fmt.Sprintf("(%.1f,%.1f)", v.X, v.Y)
}
