package config

// DefaultGameConfig returns the configuration used for missing values.
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Display: DisplayConfig{
			ScreenWidth:  800,
			ScreenHeight: 600,
			Scale:        1,
			Framerate:    60,
			Title:        "Scroller",
		},
		Scroller: ScrollerConfig{
			Count:             649,
			ItemScale:         3,
			ItemSize:          96,
			TransitionSeconds: 1,
			DittoFrameSeconds: 0.15,
			MusicVolume:       0.5,
		},
		Netplay: NetplayConfig{
			RetrySeconds: 1,
		},
	}
}

func (c *GameConfig) applyDefaults() {
	def := DefaultGameConfig()
	if c.Display.ScreenWidth <= 0 {
		c.Display.ScreenWidth = def.Display.ScreenWidth
	}
	if c.Display.ScreenHeight <= 0 {
		c.Display.ScreenHeight = def.Display.ScreenHeight
	}
	if c.Display.Scale <= 0 {
		c.Display.Scale = def.Display.Scale
	}
	if c.Display.Framerate <= 0 {
		c.Display.Framerate = def.Display.Framerate
	}
	if c.Scroller.Count <= 0 {
		c.Scroller.Count = def.Scroller.Count
	}
	if c.Scroller.TransitionSeconds <= 0 {
		c.Scroller.TransitionSeconds = def.Scroller.TransitionSeconds
	}
	if c.Netplay.RetrySeconds <= 0 {
		c.Netplay.RetrySeconds = def.Netplay.RetrySeconds
	}
}
