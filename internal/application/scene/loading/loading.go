// Package loading provides the scene that loads the asset manifest and hands
// over to the first playable scene.
package loading

import (
	"context"
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/gamert/internal/application/scene"
	"github.com/younwookim/gamert/internal/application/state"
	"github.com/younwookim/gamert/internal/domain/input"
	"github.com/younwookim/gamert/internal/infrastructure/asset"
	"github.com/younwookim/gamert/internal/infrastructure/config"
	"github.com/younwookim/gamert/internal/infrastructure/render"
)

// Colors for rendering
var (
	colorLoadingBG = color.RGBA{128, 0, 0, 255}
	colorReadyBG   = color.RGBA{51, 51, 51, 255}
	colorFailedBG  = color.RGBA{26, 26, 46, 255}
	colorText      = color.RGBA{255, 255, 255, 255}
	colorError     = color.RGBA{255, 100, 100, 255}
)

const (
	textSize = 40
	errSize  = 16
	barLine  = 4
	barH     = 20
	barInset = 20
)

// Scene loads every manifest entry, shows the progress and switches to next
// on the first click once everything is loaded.
type Scene struct {
	manifest *config.Manifest
	next     scene.Scene

	progress *Progress
	phase    state.Phase
	err      error
	font     *asset.Font

	// gen invalidates continuations of an earlier Init.
	gen    int
	cancel context.CancelFunc
}

var (
	_ scene.Initializer    = (*Scene)(nil)
	_ scene.Drawer         = (*Scene)(nil)
	_ scene.Destroyer      = (*Scene)(nil)
	_ scene.MouseUpHandler = (*Scene)(nil)
	_ scene.KeyUpHandler   = (*Scene)(nil)
)

// New creates a loading scene for manifest that continues with next.
func New(manifest *config.Manifest, next scene.Scene) *Scene {
	if manifest == nil {
		manifest = &config.Manifest{}
	}
	return &Scene{
		manifest: manifest,
		next:     next,
		progress: NewProgress(manifest.Len()),
	}
}

// Init issues the loads.
func (s *Scene) Init(rt scene.Runtime) error {
	font, err := asset.Builtin()
	if err != nil {
		return fmt.Errorf("failed to load builtin font: %w", err)
	}
	s.font = font

	s.gen++
	gen := s.gen
	s.phase = state.PhaseLoading
	s.err = nil
	s.progress = NewProgress(s.manifest.Len())

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	loads := Issue(ctx, rt.Assets(), s.manifest)
	if len(loads) == 0 {
		s.phase = s.phase.Next(true, nil)
		return nil
	}

	for _, p := range loads {
		rt.Await(p, func(err error) {
			if gen != s.gen || err != nil {
				return
			}
			s.progress.Step()
		})
	}
	rt.Await(asset.All(loads...), func(err error) {
		if gen != s.gen {
			return
		}
		if err != nil {
			s.fail(err)
			return
		}
		s.progress.Complete()
		s.phase = s.phase.Next(true, nil)
	})

	log.Printf("Loading %d assets", len(loads))
	return nil
}

func (s *Scene) fail(err error) {
	s.phase = s.phase.Next(false, err)
	s.err = err
	log.Printf("Loading failed: %v", err)
}

// Destroy cancels loads still in flight.
func (s *Scene) Destroy(_ scene.Runtime) error {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return nil
}

// Progress returns the completion percentage.
func (s *Scene) Progress() float64 {
	return s.progress.Value()
}

// Phase returns the loading phase.
func (s *Scene) Phase() state.Phase {
	return s.phase
}

// Err returns the first load failure.
func (s *Scene) Err() error {
	return s.err
}

// Ready reports whether the start gesture is accepted.
func (s *Scene) Ready() bool {
	return s.phase != state.PhaseFailed && s.progress.Done()
}

// Draw renders the progress bar, the start prompt or the failure.
func (s *Scene) Draw(rt scene.Runtime, _ float64) error {
	ctx := rt.Context()
	w, h := float64(rt.Width()), float64(rt.Height())
	st := asset.Style{
		Size:     textSize,
		Color:    colorText,
		Align:    render.AlignCenter,
		Baseline: render.BaselineMiddle,
	}

	switch {
	case s.phase == state.PhaseFailed:
		ctx.SetFillColor(colorFailedBG)
		ctx.Fill()
		s.font.Draw(ctx, "Loading failed", w/2, h/2-50, st)
		st.Size, st.Color = errSize, colorError
		s.font.Draw(ctx, s.err.Error(), w/2, h/2+10, st)

	case !s.progress.Done():
		ctx.SetFillColor(colorLoadingBG)
		ctx.Fill()
		s.font.Draw(ctx, "Loading...", w/2, h/2-50, st)

		ctx.SetFillColor(colorText)
		ctx.SetStrokeColor(colorText)
		ctx.SetLineWidth(barLine)
		ctx.StrokeRect(barInset, h/2+50, w-2*barInset, barH)
		ctx.FillRect(barInset, h/2+50, (w-2*barInset)*s.progress.Value()/100, barH)

	default:
		ctx.SetFillColor(colorReadyBG)
		ctx.Fill()
		s.font.Draw(ctx, "Click to start", w/2, h/2, st)
	}
	return nil
}

// MouseUp starts the next scene once loading finished.
func (s *Scene) MouseUp(rt scene.Runtime, _ *input.Event) error {
	return s.start(rt)
}

// KeyUp accepts Enter and Space as the start gesture.
func (s *Scene) KeyUp(rt scene.Runtime, ev *input.Event) error {
	if ev.Key != ebiten.KeyEnter && ev.Key != ebiten.KeySpace {
		return nil
	}
	return s.start(rt)
}

func (s *Scene) start(rt scene.Runtime) error {
	if !s.Ready() || s.next == nil {
		return nil
	}
	return rt.SetScene(s.next)
}
