package game

import (
	"fmt"
	"math"
)

// MinAngleDif is the heading tolerance used when aligning with a waypoint.
// It is a bit more than a tank can turn in one tick.
const MinAngleDif = 3 * math.Pi / 180

// Vec2 is a continuous position or direction in tile units.
// The vertical axis grows downward, as on screen.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{x, y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (v Vec2) Add(o Vec2) Vec2         { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2         { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2    { return Vec2{v.X * s, v.Y * s} }
func (v Vec2) Len() float64            { return math.Hypot(v.X, v.Y) }
func (v Vec2) Dist(o Vec2) float64     { return v.Sub(o).Len() }
func (v Vec2) Angle() float64          { return math.Atan2(v.Y, v.X) }
func (v Vec2) Perpendicular() Vec2     { return Vec2{-v.Y, v.X} }
func (v Vec2) Eq(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

func (c Cell) String() string { return fmt.Sprintf("(%d,%d)", c.X, c.Y) }

// Add offsets the cell.
func (c Cell) Add(dx, dy int) Cell { return Cell{c.X + dx, c.Y + dy} }

// Center returns the continuous position of the middle of the cell.
func (c Cell) Center() Vec2 { return Vec2{float64(c.X) + 0.5, float64(c.Y) + 0.5} }

// Manhattan returns the 4-connected grid distance between two cells.
func (c Cell) Manhattan(o Cell) int {
	dx, dy := c.X-o.X, c.Y-o.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// CellOf truncates a continuous position to the cell containing it.
func CellOf(p Vec2) Cell {
	return Cell{int(p.X), int(p.Y)}
}

// Forward returns the unit vector a body with the given angle is facing.
// Angle zero faces down the screen (+Y).
func Forward(angle float64) Vec2 {
	a := angle + math.Pi/2
	return Vec2{math.Cos(a), math.Sin(a)}
}

// HeadingTo returns the body angle that faces from `from` toward `to`.
// The difference vector is taken from-to and rotated a quarter turn so the
// result matches the Forward convention in a y-down frame.
func HeadingTo(from, to Vec2) float64 {
	return from.Sub(to).Perpendicular().Angle()
}

// AngleDelta is the periodic difference of two angles: each is reduced
// into [0, 2π) before subtracting. The result is not folded into [-π, π];
// callers branch on magnitudes beyond π.
func AngleDelta(a, b float64) float64 {
	return wrapTwoPi(a) - wrapTwoPi(b)
}

// wrapTwoPi reduces a into [0, 2π). math.Mod keeps the sign of a, so
// negative remainders are shifted up.
func wrapTwoPi(a float64) float64 {
	r := math.Mod(a, 2*math.Pi)
	if r < 0 {
		r += 2 * math.Pi
	}
	if r >= 2*math.Pi {
		r = 0
	}
	return r
}
