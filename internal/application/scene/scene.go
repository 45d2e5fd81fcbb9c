// Package scene defines the capabilities a game screen can implement.
//
// A scene is any value. The runtime checks for each capability with a type
// assertion and skips the ones a scene does not implement, so a scene only
// declares the hooks it needs.
package scene

import (
	"github.com/younwookim/gamert/internal/domain/input"
	"github.com/younwookim/gamert/internal/infrastructure/asset"
	"github.com/younwookim/gamert/internal/infrastructure/render"
)

// Scene is a game screen (loading, title, playing, etc.)
type Scene any

// Runtime is the view of the game a scene receives in every hook.
// It must only be used from the frame goroutine, except Post and Await.
type Runtime interface {
	// Context returns the render context of the current frame.
	Context() *render.Context
	// Assets returns the resource registry.
	Assets() *asset.Registry
	// Audio returns the output sounds play through.
	Audio() asset.Output
	// Width and Height return the logical screen size.
	Width() int
	Height() int
	// SetScene destroys the current scene and initializes next before it
	// returns.
	SetScene(next Scene) error
	// Post queues fn to run on the frame goroutine before the next frame.
	// It is safe to call from any goroutine.
	Post(fn func())
	// Await calls fn with the outcome of p on the frame goroutine once p
	// settled.
	Await(p *asset.Pending, fn func(err error))
}

// Initializer is called when the scene becomes current.
// Use this for initialization that should happen each time the scene is entered.
type Initializer interface {
	Init(rt Runtime) error
}

// Updater advances the scene. dt is the time since the previous frame in
// seconds.
type Updater interface {
	Update(rt Runtime, dt float64) error
}

// Drawer renders the scene to rt.Context().
type Drawer interface {
	Draw(rt Runtime, dt float64) error
}

// Destroyer is called when the scene stops being current.
// Use this for cleanup such as stopping sounds.
type Destroyer interface {
	Destroy(rt Runtime) error
}

// Input handlers, one per event kind.

type MouseMoveHandler interface {
	MouseMove(rt Runtime, ev *input.Event) error
}

type MouseDownHandler interface {
	MouseDown(rt Runtime, ev *input.Event) error
}

type MouseUpHandler interface {
	MouseUp(rt Runtime, ev *input.Event) error
}

type MouseEnterHandler interface {
	MouseEnter(rt Runtime, ev *input.Event) error
}

type MouseLeaveHandler interface {
	MouseLeave(rt Runtime, ev *input.Event) error
}

type ClickHandler interface {
	Click(rt Runtime, ev *input.Event) error
}

type KeyUpHandler interface {
	KeyUp(rt Runtime, ev *input.Event) error
}

type KeyDownHandler interface {
	KeyDown(rt Runtime, ev *input.Event) error
}

type KeyPressHandler interface {
	KeyPress(rt Runtime, ev *input.Event) error
}

// Dispatch calls the handler of s matching ev.Kind. It reports whether s
// handles that kind; a scene without the handler is left alone.
func Dispatch(s Scene, rt Runtime, ev *input.Event) (handled bool, err error) {
	switch ev.Kind {
	case input.MouseMove:
		if h, ok := s.(MouseMoveHandler); ok {
			return true, h.MouseMove(rt, ev)
		}
	case input.MouseDown:
		if h, ok := s.(MouseDownHandler); ok {
			return true, h.MouseDown(rt, ev)
		}
	case input.MouseUp:
		if h, ok := s.(MouseUpHandler); ok {
			return true, h.MouseUp(rt, ev)
		}
	case input.MouseEnter:
		if h, ok := s.(MouseEnterHandler); ok {
			return true, h.MouseEnter(rt, ev)
		}
	case input.MouseLeave:
		if h, ok := s.(MouseLeaveHandler); ok {
			return true, h.MouseLeave(rt, ev)
		}
	case input.Click:
		if h, ok := s.(ClickHandler); ok {
			return true, h.Click(rt, ev)
		}
	case input.KeyUp:
		if h, ok := s.(KeyUpHandler); ok {
			return true, h.KeyUp(rt, ev)
		}
	case input.KeyDown:
		if h, ok := s.(KeyDownHandler); ok {
			return true, h.KeyDown(rt, ev)
		}
	case input.KeyPress:
		if h, ok := s.(KeyPressHandler); ok {
			return true, h.KeyPress(rt, ev)
		}
	}
	return false, nil
}
