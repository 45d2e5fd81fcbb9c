// Package game provides the runtime that owns the current scene, schedules
// frames and routes input.
package game

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/gamert/internal/application/replay"
	"github.com/younwookim/gamert/internal/application/scene"
	"github.com/younwookim/gamert/internal/domain/input"
	"github.com/younwookim/gamert/internal/infrastructure/asset"
	"github.com/younwookim/gamert/internal/infrastructure/audio"
	"github.com/younwookim/gamert/internal/infrastructure/render"
)

// InputSource yields the events of one tick.
type InputSource interface {
	Poll() []input.Dispatch
}

// Game implements ebiten.Game and scene.Runtime.
type Game struct {
	assets  *asset.Registry
	ctx     *render.Context
	audio   asset.Output
	current scene.Scene
	screenW int
	screenH int

	now  func() time.Time
	last time.Time

	mu     sync.Mutex
	posted []func()

	source   InputSource
	recorder *replay.Recorder

	// err is the first error of a Draw, returned by the next Update.
	err error
}

var _ scene.Runtime = (*Game)(nil)

// Option configures a Game.
type Option func(*Game)

// WithClock replaces the wall clock used for frame deltas.
func WithClock(now func() time.Time) Option {
	return func(g *Game) { g.now = now }
}

// WithAudio sets the output sounds play through. The default discards
// everything.
func WithAudio(out asset.Output) Option {
	return func(g *Game) { g.audio = out }
}

// WithInput sets where Update reads events from, such as an InputSystem or a
// Replayer.
func WithInput(src InputSource) Option {
	return func(g *Game) { g.source = src }
}

// WithRecorder records every dispatched event.
func WithRecorder(r *replay.Recorder) Option {
	return func(g *Game) { g.recorder = r }
}

// New creates a Game with no scene. Call SetScene to start one.
func New(assets *asset.Registry, screenW, screenH int, opts ...Option) *Game {
	g := &Game{
		assets:  assets,
		ctx:     render.NewContext(screenW, screenH),
		audio:   &audio.Silent{},
		screenW: screenW,
		screenH: screenH,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	g.last = g.now()
	return g
}

func (g *Game) Context() *render.Context { return g.ctx }
func (g *Game) Assets() *asset.Registry  { return g.assets }
func (g *Game) Audio() asset.Output      { return g.audio }
func (g *Game) Width() int               { return g.screenW }
func (g *Game) Height() int              { return g.screenH }

// Scene returns the current scene.
func (g *Game) Scene() scene.Scene {
	return g.current
}

// SetScene destroys the current scene, then initializes next.
func (g *Game) SetScene(next scene.Scene) error {
	log.Printf("Changing scene: %T", next)

	if d, ok := g.current.(scene.Destroyer); ok {
		if err := d.Destroy(g); err != nil {
			return fmt.Errorf("failed to destroy %T: %w", g.current, err)
		}
	}
	g.current = next
	if i, ok := next.(scene.Initializer); ok {
		if err := i.Init(g); err != nil {
			return fmt.Errorf("failed to init %T: %w", next, err)
		}
	}
	return nil
}

// Post queues fn to run on the frame goroutine at the start of the next tick.
func (g *Game) Post(fn func()) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.posted = append(g.posted, fn)
}

// Await runs fn with the outcome of p at the start of the first tick after p
// settled.
func (g *Game) Await(p *asset.Pending, fn func(err error)) {
	if p.Settled() {
		g.Post(func() { fn(p.Err()) })
		return
	}
	go func() {
		<-p.Done()
		g.Post(func() { fn(p.Err()) })
	}()
}

func (g *Game) runPosted() {
	g.mu.Lock()
	posted := g.posted
	g.posted = nil
	g.mu.Unlock()

	for _, fn := range posted {
		fn()
	}
}

// Tick runs one frame on surface: queued continuations, then Update, then
// Draw. The render context is restored afterwards even when the scene fails.
func (g *Game) Tick(surface render.Surface) error {
	g.runPosted()

	now := g.now()
	delta := now.Sub(g.last).Seconds()
	defer func() { g.last = g.now() }()

	g.ctx.Bind(surface)
	g.ctx.Save()
	defer g.ctx.Restore()

	if u, ok := g.current.(scene.Updater); ok {
		if err := u.Update(g, delta); err != nil {
			return fmt.Errorf("failed to update %T: %w", g.current, err)
		}
	}
	// Update may have switched scenes; only the current one is drawn.
	if d, ok := g.current.(scene.Drawer); ok {
		if err := d.Draw(g, delta); err != nil {
			return fmt.Errorf("failed to draw %T: %w", g.current, err)
		}
	}
	return nil
}

// Dispatch delivers ev to the current scene's handler for its kind, if any.
func (g *Game) Dispatch(ev *input.Event, preventDefault bool) error {
	if preventDefault {
		ev.PreventDefault()
	}
	if g.recorder != nil {
		g.recorder.Record(input.Dispatch{Event: ev, PreventDefault: preventDefault})
	}

	if _, err := scene.Dispatch(g.current, g, ev); err != nil {
		return fmt.Errorf("failed to handle %s in %T: %w", ev.Kind, g.current, err)
	}
	return nil
}

// Update polls input and dispatches it.
// Implements ebiten.Game interface.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if g.source != nil {
		for _, d := range g.source.Poll() {
			if err := g.Dispatch(d.Event, d.PreventDefault); err != nil {
				return err
			}
		}
	}
	if g.recorder != nil {
		g.recorder.EndFrame()
	}
	return nil
}

// Draw runs a frame on screen. Scenes update here rather than in Update so
// that each frame sees one wall-clock delta for both phases.
// Implements ebiten.Game interface.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.err != nil {
		return
	}
	if err := g.Tick(screen); err != nil {
		log.Printf("Frame failed: %v", err)
		g.err = err
	}
}

// Layout returns the game's logical screen dimensions.
// Implements ebiten.Game interface.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}
