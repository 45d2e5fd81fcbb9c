package asset

import (
	"maps"
	"slices"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/gamert/internal/domain/geom"
	"github.com/younwookim/gamert/internal/infrastructure/render"
)

// Sprite is a sprite sheet: one image and named regions inside it.
type Sprite struct {
	id     string
	img    *ebiten.Image
	frames map[string]geom.Rect
}

func newSprite(id string, img *ebiten.Image, frames map[string]geom.Rect) *Sprite {
	return &Sprite{id: id, img: img, frames: maps.Clone(frames)}
}

// ID returns the registry id.
func (s *Sprite) ID() string {
	return s.id
}

// Ebiten returns the sheet image.
func (s *Sprite) Ebiten() *ebiten.Image {
	return s.img
}

// Frame returns the region registered under name.
func (s *Sprite) Frame(name string) (geom.Rect, bool) {
	r, ok := s.frames[name]
	return r, ok
}

// Frames returns the sorted region names.
func (s *Sprite) Frames() []string {
	return slices.Sorted(maps.Keys(s.frames))
}

// Draw draws region name with its top-left corner at (x, y).
// An unknown region is reported as a *LookupError and nothing is drawn.
func (s *Sprite) Draw(ctx *render.Context, name string, x, y float64, t render.Transform) error {
	r, ok := s.frames[name]
	if !ok {
		return &LookupError{Kind: KindSprite, ID: s.id, Region: name}
	}
	ctx.DrawTransformed(s.img, r, x, y, t)
	return nil
}
