package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/gamert/internal/domain/geom"
)

// drawCall is a recorded DrawImage call
type drawCall struct {
	bounds image.Rectangle
	geoM   ebiten.GeoM
	filter ebiten.Filter
	alpha  float32
}

// recordingSurface is a test double for Surface
type recordingSurface struct {
	calls []drawCall
}

func (s *recordingSurface) DrawImage(img *ebiten.Image, op *ebiten.DrawImageOptions) {
	s.calls = append(s.calls, drawCall{
		bounds: img.Bounds(),
		geoM:   op.GeoM,
		filter: op.Filter,
		alpha:  op.ColorScale.A(),
	})
}

// corners maps the source rectangle corners of a call to screen space and
// returns the axis-aligned box covering them.
func (c drawCall) screenBox() (minX, minY, maxX, maxY float64) {
	w, h := float64(c.bounds.Dx()), float64(c.bounds.Dy())
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, p := range [][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}} {
		x, y := c.geoM.Apply(p[0], p[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return
}

func newBoundContext() (*Context, *recordingSurface) {
	surface := &recordingSurface{}
	ctx := NewContext(800, 600)
	ctx.Bind(surface)
	return ctx, surface
}

func TestContext_SaveRestore(t *testing.T) {
	ctx := NewContext(100, 100)

	ctx.Save()
	ctx.SetAlpha(0.5)
	ctx.Translate(10, 20)
	ctx.SetFillColor(color.White)
	assert.Equal(t, 1, ctx.Depth())

	ctx.Restore()
	assert.Equal(t, 0, ctx.Depth())
	assert.Equal(t, 1.0, ctx.Alpha())
	assert.Equal(t, DefaultState().FillColor, ctx.State().FillColor)
	geoM := ctx.State().GeoM
	x, y := geoM.Apply(0, 0)
	assert.Equal(t, 0.0, x)
	assert.Equal(t, 0.0, y)
}

func TestContext_RestoreWithoutSaveIsNoop(t *testing.T) {
	ctx := NewContext(100, 100)
	ctx.SetAlpha(0.3)
	ctx.Restore()
	assert.Equal(t, 0.3, ctx.Alpha())
}

func TestContext_TransformsComposeLikeCanvas(t *testing.T) {
	ctx := NewContext(100, 100)
	ctx.Translate(10, 0)
	ctx.Rotate(math.Pi / 2)

	// Rotation applies first, then the translation.
	geoM := ctx.State().GeoM
	x, y := geoM.Apply(1, 0)
	assert.InDelta(t, 10.0, x, 1e-9)
	assert.InDelta(t, 1.0, y, 1e-9)
}

func TestContext_SetAlphaClamps(t *testing.T) {
	ctx := NewContext(100, 100)
	ctx.SetAlpha(2)
	assert.Equal(t, 1.0, ctx.Alpha())
	ctx.SetAlpha(-1)
	assert.Equal(t, 0.0, ctx.Alpha())
}

func TestContext_DrawTransformed_PositiveScale(t *testing.T) {
	ctx, surface := newBoundContext()
	img := ebiten.NewImage(40, 20)

	ctx.DrawTransformed(img, geom.NewRect(0, 0, 10, 20), 5, 7, Scaled(3))

	require.Len(t, surface.calls, 1)
	minX, minY, maxX, maxY := surface.calls[0].screenBox()
	assert.InDelta(t, 5.0, minX, 1e-9)
	assert.InDelta(t, 7.0, minY, 1e-9)
	assert.InDelta(t, 35.0, maxX, 1e-9)
	assert.InDelta(t, 67.0, maxY, 1e-9)
	assert.Equal(t, 0, ctx.Depth(), "state restored after drawing")
}

func TestContext_DrawTransformed_MirrorKeepsArea(t *testing.T) {
	img := ebiten.NewImage(10, 10)
	src := geom.NewRect(0, 0, 10, 10)

	for _, tr := range []Transform{
		{ScaleX: -2, ScaleY: 2, Opacity: 1},
		{ScaleX: 2, ScaleY: -2, Opacity: 1},
		{ScaleX: -2, ScaleY: -2, Opacity: 1},
	} {
		ctx, surface := newBoundContext()
		ctx.DrawTransformed(img, src, 100, 50, tr)

		require.Len(t, surface.calls, 1)
		minX, minY, maxX, maxY := surface.calls[0].screenBox()
		assert.InDelta(t, 100.0, minX, 1e-9)
		assert.InDelta(t, 50.0, minY, 1e-9)
		assert.InDelta(t, 120.0, maxX, 1e-9)
		assert.InDelta(t, 70.0, maxY, 1e-9)
	}
}

func TestContext_DrawTransformed_MirrorFlipsPixels(t *testing.T) {
	ctx, surface := newBoundContext()
	img := ebiten.NewImage(10, 10)

	ctx.DrawTransformed(img, geom.NewRect(0, 0, 10, 10), 5, 0, Transform{ScaleX: -1, ScaleY: 1, Opacity: 1})

	require.Len(t, surface.calls, 1)
	x0, _ := surface.calls[0].geoM.Apply(0, 0)
	x10, _ := surface.calls[0].geoM.Apply(10, 0)
	assert.InDelta(t, 15.0, x0, 1e-9, "left source edge lands on the right")
	assert.InDelta(t, 5.0, x10, 1e-9)
}

func TestContext_DrawTransformed_RotatesAboutCenter(t *testing.T) {
	ctx, surface := newBoundContext()
	img := ebiten.NewImage(10, 10)

	ctx.DrawTransformed(img, geom.NewRect(0, 0, 10, 10), 0, 0, Transform{Rotation: math.Pi, ScaleX: 1, ScaleY: 1, Opacity: 1})

	require.Len(t, surface.calls, 1)
	cx, cy := surface.calls[0].geoM.Apply(5, 5)
	assert.InDelta(t, 5.0, cx, 1e-9)
	assert.InDelta(t, 5.0, cy, 1e-9)
	x, y := surface.calls[0].geoM.Apply(0, 0)
	assert.InDelta(t, 10.0, x, 1e-9)
	assert.InDelta(t, 10.0, y, 1e-9)
}

func TestContext_DrawTransformed_AppliesOpacity(t *testing.T) {
	ctx, surface := newBoundContext()
	img := ebiten.NewImage(4, 4)

	ctx.DrawTransformed(img, geom.NewRect(0, 0, 4, 4), 0, 0, Transform{ScaleX: 1, ScaleY: 1, Opacity: 0.25})

	require.Len(t, surface.calls, 1)
	assert.InDelta(t, 0.25, surface.calls[0].alpha, 1e-6)
	assert.Equal(t, 1.0, ctx.Alpha())
}

func TestContext_DrawTransformed_ZeroScaleDrawsNothing(t *testing.T) {
	ctx, surface := newBoundContext()
	img := ebiten.NewImage(4, 4)

	ctx.DrawTransformed(img, geom.NewRect(0, 0, 4, 4), 0, 0, Transform{ScaleX: 0, ScaleY: 1, Opacity: 1})

	assert.Empty(t, surface.calls)
	assert.Equal(t, 0, ctx.Depth())
}

func TestContext_DrawImage_UsesSubRegion(t *testing.T) {
	ctx, surface := newBoundContext()
	img := ebiten.NewImage(100, 100)

	ctx.DrawImage(img, image.Rect(10, 20, 30, 40), 0, 0, 20, 20)

	require.Len(t, surface.calls, 1)
	assert.Equal(t, image.Rect(10, 20, 30, 40), surface.calls[0].bounds)
}

func TestContext_SmoothingSelectsFilter(t *testing.T) {
	ctx, surface := newBoundContext()
	img := ebiten.NewImage(4, 4)

	ctx.DrawImage(img, img.Bounds(), 0, 0, 4, 4)
	ctx.SetSmoothing(false)
	ctx.DrawImage(img, img.Bounds(), 0, 0, 4, 4)

	require.Len(t, surface.calls, 2)
	assert.Equal(t, ebiten.FilterLinear, surface.calls[0].filter)
	assert.Equal(t, ebiten.FilterNearest, surface.calls[1].filter)
}

func TestContext_FillRectFollowsTransform(t *testing.T) {
	ctx, surface := newBoundContext()
	ctx.Translate(20, 30)
	ctx.FillRect(0, 0, 100, 10)

	require.Len(t, surface.calls, 1)
	x, y := surface.calls[0].geoM.Apply(1, 1)
	assert.InDelta(t, 120.0, x, 1e-9)
	assert.InDelta(t, 40.0, y, 1e-9)
}

func TestContext_FillCoversViewportIgnoringTransform(t *testing.T) {
	ctx, surface := newBoundContext()
	ctx.Translate(50, 50)
	ctx.SetAlpha(0.5)
	ctx.Fill()

	require.Len(t, surface.calls, 1)
	x, y := surface.calls[0].geoM.Apply(1, 1)
	assert.InDelta(t, float64(ctx.Width()), x, 1e-9)
	assert.InDelta(t, float64(ctx.Height()), y, 1e-9)
	assert.InDelta(t, 0.5, surface.calls[0].alpha, 1e-6)
}

func TestContext_StrokeRectDrawsFourEdges(t *testing.T) {
	ctx, surface := newBoundContext()
	ctx.SetLineWidth(4)
	ctx.StrokeRect(20, 20, 100, 20)
	assert.Len(t, surface.calls, 4)
}

func TestContext_UnboundDrawsAreIgnored(t *testing.T) {
	ctx := NewContext(10, 10)
	assert.NotPanics(t, func() {
		ctx.FillRect(0, 0, 10, 10)
		ctx.FillText("hi", 0, 0)
		ctx.Clear(color.Black)
	})
}
