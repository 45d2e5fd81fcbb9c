package render

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/gamert/internal/domain/geom"
)

// Transform describes how an image region is placed: rotation in radians
// about the region center, per-axis scale (negative mirrors) and opacity.
type Transform struct {
	Rotation float64
	ScaleX   float64
	ScaleY   float64
	Opacity  float64
}

// Identity returns a transform that draws the region unchanged.
func Identity() Transform {
	return Transform{ScaleX: 1, ScaleY: 1, Opacity: 1}
}

// Scaled returns an opaque, unrotated transform with a uniform scale.
func Scaled(s float64) Transform {
	return Transform{ScaleX: s, ScaleY: s, Opacity: 1}
}

// DrawTransformed draws the src region of img with its top-left corner at
// (x, y), transformed by t.
//
// The drawn area always covers [x, x+w*|sx|] x [y, y+h*|sy|]: a negative scale
// flips the region inside that area instead of moving it. Rotation is about
// the center of the area. The context state is restored on return.
func (c *Context) DrawTransformed(img *ebiten.Image, src geom.Rect, x, y float64, t Transform) {
	c.Save()
	defer c.Restore()

	c.SetAlpha(t.Opacity)

	w := src.W * math.Abs(t.ScaleX)
	h := src.H * math.Abs(t.ScaleY)
	cx, cy := x+w/2, y+h/2
	c.Translate(cx, cy)
	c.Rotate(t.Rotation)
	c.Translate(-cx, -cy)

	dx, dy := x, y
	if t.ScaleX < 0 {
		dx = x + w
	}
	if t.ScaleY < 0 {
		dy = y + h
	}

	c.DrawImage(img, src.Image(), dx, dy, src.W*t.ScaleX, src.H*t.ScaleY)
}
