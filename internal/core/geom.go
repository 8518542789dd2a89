// Package core provides the terminal-agnostic building blocks shared by the
// gameplay engine and the platform backends. It has no dependency on any
// terminal library so the engine stays testable without a TTY.
package core

import "math"

// Rect is an axis-aligned rectangle in cell coordinates.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the last column inside the rectangle.
func (r Rect) Right() int {
	return r.X + r.W - 1
}

// Bottom returns the y-coordinate of the last row inside the rectangle.
func (r Rect) Bottom() int {
	return r.Y + r.H - 1
}

// Contains reports whether the cell (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x <= r.Right() && y >= r.Y && y <= r.Bottom()
}

// Inset shrinks the rectangle by n cells on every side.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: r.W - 2*n, H: r.H - 2*n}
}

// Center returns the center cell of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// CenteredRect returns a w x h rectangle centered inside an outer area of
// outerW x outerH cells. The result is clipped to the outer area.
func CenteredRect(outerW, outerH, w, h int) Rect {
	w = Clamp(w, 1, Max(1, outerW))
	h = Clamp(h, 1, Max(1, outerH))
	return Rect{X: (outerW - w) / 2, Y: (outerH - h) / 2, W: w, H: h}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, val))
}

// Round rounds half away from zero and returns an int cell coordinate.
func Round(v float64) int {
	return int(math.Round(v))
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
