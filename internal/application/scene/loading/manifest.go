package loading

import (
	"context"

	"github.com/younwookim/gamert/internal/infrastructure/asset"
	"github.com/younwookim/gamert/internal/infrastructure/config"
)

// Issue starts one load per manifest entry and returns them in manifest
// order: images, sprites, sounds, fonts.
func Issue(ctx context.Context, reg *asset.Registry, m *config.Manifest) []*asset.Pending {
	loads := make([]*asset.Pending, 0, m.Len())
	for _, e := range m.Images {
		loads = append(loads, reg.LoadImage(ctx, e.ID, e.Src))
	}
	for _, e := range m.Sprites {
		loads = append(loads, reg.LoadSprite(ctx, e.ID, e.Src, e.Regions()))
	}
	for _, e := range m.Sounds {
		loads = append(loads, reg.LoadSound(ctx, e.ID, e.Src, e.Loop, e.Volume))
	}
	for _, e := range m.Fonts {
		loads = append(loads, reg.LoadFont(ctx, e.ID, e.Family, e.Src))
	}
	return loads
}
