package config

import "github.com/younwookim/gamert/internal/domain/geom"

// GameConfig is the root config for game.json
type GameConfig struct {
	Display  DisplayConfig  `json:"display"`
	Scroller ScrollerConfig `json:"scroller"`
	Netplay  NetplayConfig  `json:"netplay"`
}

type DisplayConfig struct {
	ScreenWidth  int    `json:"screenWidth"`
	ScreenHeight int    `json:"screenHeight"`
	Scale        int    `json:"scale"`
	Framerate    int    `json:"framerate"`
	Title        string `json:"title"`
}

// ScrollerConfig tunes the pokemon scroller scene.
type ScrollerConfig struct {
	Count             int     `json:"count"`
	ItemScale         float64 `json:"itemScale"`
	ItemSize          float64 `json:"itemSize"` // source size of one sheet cell
	TransitionSeconds float64 `json:"transitionSeconds"`
	DittoFrameSeconds float64 `json:"dittoFrameSeconds"`
	MusicVolume       float64 `json:"musicVolume"`
}

// NetplayConfig holds the defaults for the -host and -join flags.
type NetplayConfig struct {
	RetrySeconds float64 `json:"retrySeconds"`
}

// Manifest lists every asset a loading scene fetches, per kind.
type Manifest struct {
	Images  []ImageEntry  `json:"images"`
	Sprites []SpriteEntry `json:"sprites"`
	Sounds  []SoundEntry  `json:"sounds"`
	Fonts   []FontEntry   `json:"fonts"`
}

// Len returns the number of loads the manifest describes.
func (m *Manifest) Len() int {
	return len(m.Images) + len(m.Sprites) + len(m.Sounds) + len(m.Fonts)
}

type ImageEntry struct {
	ID  string `json:"id"`
	Src string `json:"src"`
}

// SpriteEntry names regions either explicitly (Frames) or as a grid of equal
// cells (Grid). Explicit frames win on name clashes.
type SpriteEntry struct {
	ID     string               `json:"id"`
	Src    string               `json:"src"`
	Frames map[string]geom.Rect `json:"frames,omitempty"`
	Grid   *GridConfig          `json:"grid,omitempty"`
}

// GridConfig describes a sheet of equally sized cells named Prefix+index,
// numbered row by row from Start.
type GridConfig struct {
	Cols   int     `json:"cols"`
	Rows   int     `json:"rows"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Prefix string  `json:"prefix"`
	Start  int     `json:"start"`
	Count  int     `json:"count,omitempty"` // 0 means Cols*Rows
}

type SoundEntry struct {
	ID     string  `json:"id"`
	Src    string  `json:"src"`
	Loop   bool    `json:"loop"`
	Volume float64 `json:"volume"`
}

// FontEntry selects a font file; an empty Src uses the built-in face.
type FontEntry struct {
	ID     string `json:"id"`
	Family string `json:"family"`
	Src    string `json:"src,omitempty"`
}
