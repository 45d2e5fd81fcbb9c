// Package geom holds the small geometry values shared by assets, scenes and
// the renderer.
package geom

import "image"

// Rect is an axis-aligned rectangle in pixels.
// JSON tags match the sprite frame format of the asset manifest.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Point is a position in pixels.
type Point struct {
	X, Y float64
}

// NewRect creates a rectangle from its origin and size.
func NewRect(x, y, w, h float64) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Contains reports whether p lies strictly inside the rectangle.
// Points on the border are outside, so two adjacent buttons never both match.
func (r Rect) Contains(p Point) bool {
	return p.X > r.X && p.X < r.X+r.W && p.Y > r.Y && p.Y < r.Y+r.H
}

// Center returns the center of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Image converts the rectangle to integer image bounds, for sub-image lookups.
func (r Rect) Image() image.Rectangle {
	return image.Rect(int(r.X), int(r.Y), int(r.X+r.W), int(r.Y+r.H))
}
