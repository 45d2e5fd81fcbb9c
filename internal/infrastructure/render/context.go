// Package render provides a 2D drawing context in the style of an HTML canvas
// on top of ebiten: a current state (transform, alpha, colors, text settings)
// with a save/restore stack, and primitives that turn that state into
// ebiten draw calls.
package render

import (
	"image"
	"image/color"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// Surface is anything images can be drawn onto. *ebiten.Image implements it.
type Surface interface {
	DrawImage(img *ebiten.Image, options *ebiten.DrawImageOptions)
}

// TextAlign is the horizontal anchor of drawn text.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// TextBaseline is the vertical anchor of drawn text.
type TextBaseline int

const (
	BaselineAlphabetic TextBaseline = iota
	BaselineTop
	BaselineMiddle
	BaselineBottom
)

// State is the drawing state saved and restored by Save and Restore.
type State struct {
	GeoM         ebiten.GeoM
	Alpha        float64
	FillColor    color.Color
	StrokeColor  color.Color
	LineWidth    float64
	Font         text.Face
	TextAlign    TextAlign
	TextBaseline TextBaseline
	Smoothing    bool
}

// DefaultState returns the state of a fresh context.
func DefaultState() State {
	return State{
		Alpha:       1,
		FillColor:   color.Black,
		StrokeColor: color.Black,
		LineWidth:   1,
		Smoothing:   true,
	}
}

// Context is a stateful 2D drawing context bound to a Surface.
// It is not safe for concurrent use; it belongs to the frame goroutine.
type Context struct {
	surface Surface
	width   int
	height  int
	state   State
	stack   []State
}

// NewContext creates a context for a viewport of the given size.
func NewContext(width, height int) *Context {
	return &Context{
		width:  width,
		height: height,
		state:  DefaultState(),
	}
}

// Bind sets the surface subsequent draw calls go to.
func (c *Context) Bind(s Surface) {
	c.surface = s
}

// Surface returns the bound surface.
func (c *Context) Surface() Surface {
	return c.surface
}

// Width returns the viewport width.
func (c *Context) Width() int {
	return c.width
}

// Height returns the viewport height.
func (c *Context) Height() int {
	return c.height
}

// Save pushes the current state.
func (c *Context) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore pops the last saved state. Without a saved state it does nothing.
func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.state = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Depth returns the number of saved states.
func (c *Context) Depth() int {
	return len(c.stack)
}

// State returns a copy of the current state.
func (c *Context) State() State {
	return c.state
}

// Translate moves the origin, in current user space.
func (c *Context) Translate(x, y float64) {
	var m ebiten.GeoM
	m.Translate(x, y)
	c.Transform(m)
}

// Rotate rotates user space clockwise by theta radians.
func (c *Context) Rotate(theta float64) {
	var m ebiten.GeoM
	m.Rotate(theta)
	c.Transform(m)
}

// Scale scales user space.
func (c *Context) Scale(x, y float64) {
	var m ebiten.GeoM
	m.Scale(x, y)
	c.Transform(m)
}

// Transform multiplies the current transform by m, so m is applied to
// coordinates before the existing transform.
func (c *Context) Transform(m ebiten.GeoM) {
	m.Concat(c.state.GeoM)
	c.state.GeoM = m
}

// ResetTransform sets the identity transform.
func (c *Context) ResetTransform() {
	c.state.GeoM.Reset()
}

// SetAlpha sets the global alpha, clamped to [0, 1].
func (c *Context) SetAlpha(a float64) {
	switch {
	case a < 0:
		a = 0
	case a > 1:
		a = 1
	}
	c.state.Alpha = a
}

// Alpha returns the global alpha.
func (c *Context) Alpha() float64 {
	return c.state.Alpha
}

func (c *Context) SetFillColor(clr color.Color)   { c.state.FillColor = clr }
func (c *Context) SetStrokeColor(clr color.Color) { c.state.StrokeColor = clr }
func (c *Context) SetLineWidth(w float64)         { c.state.LineWidth = w }
func (c *Context) SetFont(face text.Face)         { c.state.Font = face }
func (c *Context) SetTextAlign(a TextAlign)       { c.state.TextAlign = a }
func (c *Context) SetTextBaseline(b TextBaseline) { c.state.TextBaseline = b }

// SetSmoothing selects linear (true) or nearest (false) filtering for images.
func (c *Context) SetSmoothing(enabled bool) {
	c.state.Smoothing = enabled
}

// DrawImage draws the src region of img into the destination rectangle
// (dx, dy, dw, dh) in user space. Negative dw or dh mirror the image.
func (c *Context) DrawImage(img *ebiten.Image, src image.Rectangle, dx, dy, dw, dh float64) {
	if c.surface == nil || img == nil || src.Empty() || dw == 0 || dh == 0 {
		return
	}

	sub := img
	if src != img.Bounds() {
		sub = img.SubImage(src).(*ebiten.Image)
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(dw/float64(src.Dx()), dh/float64(src.Dy()))
	op.GeoM.Translate(dx, dy)
	op.GeoM.Concat(c.state.GeoM)
	op.ColorScale.ScaleAlpha(float32(c.state.Alpha))
	op.Filter = c.filter()
	c.surface.DrawImage(sub, op)
}

// FillRect fills a rectangle with the fill color.
func (c *Context) FillRect(x, y, w, h float64) {
	c.fill(x, y, w, h, c.state.FillColor)
}

// StrokeRect outlines a rectangle with the stroke color, centering the line
// on the rectangle edges.
func (c *Context) StrokeRect(x, y, w, h float64) {
	lw := c.state.LineWidth
	clr := c.state.StrokeColor
	half := lw / 2
	c.fill(x-half, y-half, w+lw, lw, clr)
	c.fill(x-half, y+h-half, w+lw, lw, clr)
	c.fill(x-half, y+half, lw, h-lw, clr)
	c.fill(x+w-half, y+half, lw, h-lw, clr)
}

// Clear fills the whole viewport with clr, ignoring transform and alpha.
func (c *Context) Clear(clr color.Color) {
	if c.surface == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(c.width), float64(c.height))
	op.ColorScale.ScaleWithColor(clr)
	c.surface.DrawImage(whitePixel(), op)
}

// Fill paints the whole viewport with the fill color and alpha. The
// transform does not apply.
func (c *Context) Fill() {
	if c.surface == nil || c.state.FillColor == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(c.width), float64(c.height))
	op.ColorScale.ScaleWithColor(c.state.FillColor)
	op.ColorScale.ScaleAlpha(float32(c.state.Alpha))
	c.surface.DrawImage(whitePixel(), op)
}

func (c *Context) fill(x, y, w, h float64, clr color.Color) {
	if c.surface == nil || w == 0 || h == 0 || clr == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.GeoM.Concat(c.state.GeoM)
	op.ColorScale.ScaleWithColor(clr)
	op.ColorScale.ScaleAlpha(float32(c.state.Alpha))
	c.surface.DrawImage(whitePixel(), op)
}

func (c *Context) filter() ebiten.Filter {
	if c.state.Smoothing {
		return ebiten.FilterLinear
	}
	return ebiten.FilterNearest
}

var (
	whiteOnce  sync.Once
	whiteImage *ebiten.Image
)

// whitePixel returns a 1x1 white image cut from the center of a 3x3 one, so
// linear filtering never samples transparent edges.
func whitePixel() *ebiten.Image {
	whiteOnce.Do(func() {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whiteImage = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteImage
}
