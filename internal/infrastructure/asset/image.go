package asset

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/gamert/internal/domain/geom"
	"github.com/younwookim/gamert/internal/infrastructure/render"
)

// Image is a decoded raster image.
type Image struct {
	id  string
	img *ebiten.Image
}

// ID returns the registry id.
func (i *Image) ID() string {
	return i.id
}

// Ebiten returns the underlying ebiten image.
func (i *Image) Ebiten() *ebiten.Image {
	return i.img
}

// Size returns the image size in pixels.
func (i *Image) Size() (w, h int) {
	b := i.img.Bounds()
	return b.Dx(), b.Dy()
}

// Draw draws the whole image with its top-left corner at (x, y).
func (i *Image) Draw(ctx *render.Context, x, y float64, t render.Transform) {
	w, h := i.Size()
	ctx.DrawTransformed(i.img, geom.NewRect(0, 0, float64(w), float64(h)), x, y, t)
}

func decodeImage(data []byte) (*ebiten.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return ebiten.NewImageFromImage(src), nil
}
