package config

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/younwookim/gamert/internal/domain/geom"
)

// Regions returns the named regions of the sprite: the grid cells first,
// then the explicit frames.
func (e SpriteEntry) Regions() map[string]geom.Rect {
	regions := make(map[string]geom.Rect, len(e.Frames))
	if g := e.Grid; g != nil {
		n := g.cells()
		for i := range n {
			col, row := i%g.Cols, i/g.Cols
			name := g.Prefix + strconv.Itoa(g.Start+i)
			regions[name] = geom.NewRect(float64(col)*g.Width, float64(row)*g.Height, g.Width, g.Height)
		}
	}
	for name, r := range e.Frames {
		regions[name] = r
	}
	return regions
}

func (g *GridConfig) cells() int {
	total := g.Cols * g.Rows
	if g.Count > 0 && g.Count < total {
		return g.Count
	}
	return total
}

// Validate checks that ids are unique per kind and that every entry can be
// loaded.
func (m *Manifest) Validate() error {
	var errs []error
	check := func(kind string, seen map[string]bool, id, src string, needSrc bool) {
		switch {
		case id == "":
			errs = append(errs, fmt.Errorf("%s without id", kind))
		case seen[id]:
			errs = append(errs, fmt.Errorf("duplicate %s %q", kind, id))
		case needSrc && src == "":
			errs = append(errs, fmt.Errorf("%s %q has no src", kind, id))
		}
		seen[id] = true
	}

	seen := map[string]bool{}
	for _, e := range m.Images {
		check("image", seen, e.ID, e.Src, true)
	}
	seen = map[string]bool{}
	for _, e := range m.Sprites {
		check("sprite", seen, e.ID, e.Src, true)
		if g := e.Grid; g != nil && (g.Cols <= 0 || g.Rows <= 0 || g.Width <= 0 || g.Height <= 0) {
			errs = append(errs, fmt.Errorf("sprite %q has an empty grid", e.ID))
		}
	}
	seen = map[string]bool{}
	for _, e := range m.Sounds {
		check("sound", seen, e.ID, e.Src, true)
	}
	seen = map[string]bool{}
	for _, e := range m.Fonts {
		check("font", seen, e.ID, e.Src, false)
	}
	return errors.Join(errs...)
}
