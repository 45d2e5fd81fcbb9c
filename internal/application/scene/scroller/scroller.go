// Package scroller provides the demo scene: a carousel of sprite sheet cells
// moved with the arrow keys or the on-screen arrows.
package scroller

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/gamert/internal/application/scene"
	"github.com/younwookim/gamert/internal/domain/carousel"
	"github.com/younwookim/gamert/internal/domain/geom"
	"github.com/younwookim/gamert/internal/domain/input"
	"github.com/younwookim/gamert/internal/infrastructure/asset"
	"github.com/younwookim/gamert/internal/infrastructure/config"
	"github.com/younwookim/gamert/internal/infrastructure/render"
)

// Registry ids of the assets the scene draws.
const (
	BackImage    = "back"
	ArrowsSprite = "arrows"
	DittoSprite  = "ditto"
	ItemSprite   = "pkm"
	Music        = "pkm"
	UIFont       = "ui"
)

const (
	arrowScale  = 0.3
	arrowInset  = 20
	arrowTop    = 200
	dittoScale  = 4
	dittoFrames = 4
	fpsSize     = 20
	fpsTop      = 15
	fpsInterval = 1.0
)

var colorFPS = color.RGBA{255, 255, 255, 255}

// Peer exchanges selections with other players.
type Peer interface {
	Send(v any) error
	OnData(h func(data any))
}

// Scene shows one item of the sheet at a time and slides to its neighbours.
type Scene struct {
	cfg  config.ScrollerConfig
	peer Peer

	carousel *carousel.Carousel
	back     *asset.Image
	arrows   *asset.Sprite
	ditto    *asset.Sprite
	items    *asset.Sprite
	font     *asset.Font
	music    *asset.Sound

	leftArrow  geom.Rect
	rightArrow geom.Rect

	dittoFrame     float64
	fps            float64
	fpsLastUpdated float64

	// remote is a selection received from the peer, applied once idle.
	remote int
	// echo is set while a transition started by the peer runs, so its
	// commit is not sent back.
	echo bool
}

var (
	_ scene.Initializer    = (*Scene)(nil)
	_ scene.Updater        = (*Scene)(nil)
	_ scene.Drawer         = (*Scene)(nil)
	_ scene.Destroyer      = (*Scene)(nil)
	_ scene.MouseUpHandler = (*Scene)(nil)
	_ scene.KeyUpHandler   = (*Scene)(nil)
)

// New creates the scene. Zero fields of cfg take their defaults; peer may be
// nil.
func New(cfg config.ScrollerConfig, peer Peer) *Scene {
	def := config.DefaultGameConfig().Scroller
	if cfg.Count <= 0 {
		cfg.Count = def.Count
	}
	if cfg.ItemSize <= 0 {
		cfg.ItemSize = def.ItemSize
	}
	if cfg.ItemScale <= 0 {
		cfg.ItemScale = def.ItemScale
	}
	if cfg.DittoFrameSeconds <= 0 {
		cfg.DittoFrameSeconds = def.DittoFrameSeconds
	}
	return &Scene{cfg: cfg, peer: peer}
}

// Init looks up the assets, resets the carousel and starts the music.
func (s *Scene) Init(rt scene.Runtime) error {
	if err := s.lookup(rt.Assets()); err != nil {
		return err
	}

	w := float64(rt.Width())
	size := s.itemSize()
	c, err := carousel.New(carousel.Config{
		Count:     s.cfg.Count,
		ItemWidth: size,
		ViewWidth: w,
		Anchor:    (w - size) / 2,
		Duration:  s.cfg.TransitionSeconds,
	})
	if err != nil {
		return err
	}
	s.carousel = c

	left, _ := s.arrows.Frame("left")
	right, _ := s.arrows.Frame("right")
	s.leftArrow = geom.NewRect(arrowInset, arrowTop, left.W*arrowScale, left.H*arrowScale)
	s.rightArrow = geom.NewRect(w-arrowInset-right.W*arrowScale, arrowTop, right.W*arrowScale, right.H*arrowScale)

	s.dittoFrame = 1
	s.fps = 0
	s.fpsLastUpdated = 2
	s.remote = 0
	s.echo = false

	if s.peer != nil {
		s.peer.OnData(func(data any) {
			index, ok := ParseSelect(data)
			if !ok {
				log.Printf("Scroller: ignoring peer payload %v", data)
				return
			}
			rt.Post(func() { s.remote = index })
		})
	}

	s.music.Play(rt.Audio())
	return nil
}

func (s *Scene) lookup(reg *asset.Registry) error {
	var err error
	if s.back, err = reg.Image(BackImage); err != nil {
		return err
	}
	if s.arrows, err = reg.Sprite(ArrowsSprite); err != nil {
		return err
	}
	if s.ditto, err = reg.Sprite(DittoSprite); err != nil {
		return err
	}
	if s.items, err = reg.Sprite(ItemSprite); err != nil {
		return err
	}
	if s.font, err = reg.Font(UIFont); err != nil {
		return err
	}
	music, err := reg.Sound(Music)
	if err != nil {
		return err
	}
	s.music = music.Clone()
	s.music.SetVolume(s.cfg.MusicVolume)
	return nil
}

func (s *Scene) itemSize() float64 {
	return s.cfg.ItemSize * s.cfg.ItemScale
}

// Destroy stops the music and detaches from the peer.
func (s *Scene) Destroy(_ scene.Runtime) error {
	if s.music != nil {
		s.music.Stop()
	}
	if s.peer != nil {
		s.peer.OnData(nil)
	}
	return nil
}

// Current returns the id of the item at rest.
func (s *Scene) Current() int {
	return s.carousel.Current()
}

// Carousel returns the transition state machine.
func (s *Scene) Carousel() *carousel.Carousel {
	return s.carousel
}

// FPS returns the last sampled frame rate.
func (s *Scene) FPS() float64 {
	return s.fps
}

// DittoFrame returns the name of the ditto frame drawn next.
func (s *Scene) DittoFrame() string {
	return fmt.Sprintf("p-%d", int(s.dittoFrame))
}

// Update advances the animations and the carousel.
func (s *Scene) Update(_ scene.Runtime, dt float64) error {
	s.dittoFrame += dt / s.cfg.DittoFrameSeconds
	if s.dittoFrame >= dittoFrames {
		s.dittoFrame = 0
	}

	if s.remote != 0 && !s.carousel.Transitioning() {
		if s.carousel.Jump(s.remote) {
			s.echo = true
		}
		s.remote = 0
	}

	if s.carousel.Update(dt) {
		s.commit()
	}

	s.fpsLastUpdated += dt
	if s.fpsLastUpdated > fpsInterval && dt > 0 {
		s.fps = 1 / dt
		s.fpsLastUpdated = 0
	}
	return nil
}

func (s *Scene) commit() {
	if s.echo {
		s.echo = false
		return
	}
	if s.peer == nil {
		return
	}
	if err := s.peer.Send(SelectMessage(s.carousel.Current())); err != nil {
		log.Printf("Scroller: failed to send selection: %v", err)
	}
}

// Draw renders the background, the arrows, the ditto, the items and the FPS.
func (s *Scene) Draw(rt scene.Runtime, _ float64) error {
	ctx := rt.Context()
	w, h := float64(rt.Width()), float64(rt.Height())

	s.back.Draw(ctx, 0, 0, render.Identity())

	if err := s.arrows.Draw(ctx, "left", s.leftArrow.X, s.leftArrow.Y, render.Scaled(arrowScale)); err != nil {
		return err
	}
	if err := s.arrows.Draw(ctx, "right", s.rightArrow.X, s.rightArrow.Y, render.Scaled(arrowScale)); err != nil {
		return err
	}

	// Sprites below are scaled up pixel art.
	ctx.SetSmoothing(false)

	if err := s.ditto.Draw(ctx, s.DittoFrame(), 0, 0, render.Scaled(dittoScale)); err != nil {
		return err
	}

	y := (h - s.itemSize()) / 2
	if tr, ok := s.carousel.Transition(); ok {
		if err := s.drawItem(ctx, tr.From.ID, tr.From.X, y); err != nil {
			return err
		}
		if err := s.drawItem(ctx, tr.To.ID, tr.To.X, y); err != nil {
			return err
		}
	} else if err := s.drawItem(ctx, s.carousel.Current(), (w-s.itemSize())/2, y); err != nil {
		return err
	}

	s.font.Draw(ctx, fmt.Sprintf("FPS: %.2f", s.fps), w, fpsTop, asset.Style{
		Size:     fpsSize,
		Color:    colorFPS,
		Align:    render.AlignRight,
		Baseline: render.BaselineTop,
	})
	return nil
}

func (s *Scene) drawItem(ctx *render.Context, id int, x, y float64) error {
	return s.items.Draw(ctx, ItemFrame(id), x, y, render.Scaled(s.cfg.ItemScale))
}

// ItemFrame returns the sheet region name of item id.
func ItemFrame(id int) string {
	return fmt.Sprintf("PKM-%d", id)
}

// MouseUp moves the carousel when an arrow was clicked.
func (s *Scene) MouseUp(_ scene.Runtime, ev *input.Event) error {
	if s.carousel.Transitioning() {
		return nil
	}
	p := geom.Point{X: float64(ev.X), Y: float64(ev.Y)}
	switch {
	case s.leftArrow.Contains(p):
		s.carousel.Previous()
	case s.rightArrow.Contains(p):
		s.carousel.Next()
	}
	return nil
}

// KeyUp moves the carousel on ArrowLeft and ArrowRight. ArrowLeft steps back
// to the previous item, which slides in from the right edge so that item 1
// wraps to the last one moving left. This reverses the slide direction the
// arrows had in the original demo.
func (s *Scene) KeyUp(_ scene.Runtime, ev *input.Event) error {
	if s.carousel.Transitioning() {
		return nil
	}
	switch ev.Key {
	case ebiten.KeyArrowLeft:
		s.carousel.Previous()
	case ebiten.KeyArrowRight:
		s.carousel.Next()
	}
	return nil
}
