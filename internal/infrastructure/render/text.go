package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// FillText draws s at (x, y) with the current font, fill color, alignment and
// baseline. Without a font nothing is drawn.
func (c *Context) FillText(s string, x, y float64) {
	face := c.state.Font
	if c.surface == nil || face == nil || s == "" {
		return
	}

	y += c.baselineOffset(face)
	layout := &text.LayoutOptions{
		PrimaryAlign:   c.primaryAlign(),
		SecondaryAlign: c.secondaryAlign(),
	}

	for _, g := range text.AppendGlyphs(nil, s, face, layout) {
		if g.Image == nil {
			continue
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(x+g.X, y+g.Y)
		op.GeoM.Concat(c.state.GeoM)
		op.ColorScale.ScaleWithColor(c.state.FillColor)
		op.ColorScale.ScaleAlpha(float32(c.state.Alpha))
		op.Filter = c.filter()
		c.surface.DrawImage(g.Image, op)
	}
}

// MeasureText returns the size of s in the current font, before transform.
func (c *Context) MeasureText(s string) (width, height float64) {
	if c.state.Font == nil {
		return 0, 0
	}
	return text.Measure(s, c.state.Font, 0)
}

func (c *Context) primaryAlign() text.Align {
	switch c.state.TextAlign {
	case AlignCenter:
		return text.AlignCenter
	case AlignRight:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

func (c *Context) secondaryAlign() text.Align {
	switch c.state.TextBaseline {
	case BaselineMiddle:
		return text.AlignCenter
	case BaselineBottom:
		return text.AlignEnd
	default:
		return text.AlignStart
	}
}

// baselineOffset moves an alphabetic baseline from the line top to the glyph
// baseline.
func (c *Context) baselineOffset(face text.Face) float64 {
	if c.state.TextBaseline != BaselineAlphabetic {
		return 0
	}
	return -face.Metrics().HAscent
}
