package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/younwookim/gamert/internal/domain/input"
)

// InputSystem turns the polled ebiten input state into scene events
type InputSystem struct {
	screenW, screenH int

	// Cursor state of the previous poll
	hasCursor bool
	lastX     int
	lastY     int
	inside    bool
}

// NewInputSystem creates a new input system for a screen of the given size
func NewInputSystem(screenW, screenH int) *InputSystem {
	return &InputSystem{screenW: screenW, screenH: screenH}
}

// InputState holds the input changes of one tick
type InputState struct {
	MouseX          int
	MouseY          int
	ButtonsPressed  []ebiten.MouseButton
	ButtonsReleased []ebiten.MouseButton
	KeysPressed     []ebiten.Key
	KeysReleased    []ebiten.Key
	Chars           []rune
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	mx, my := ebiten.CursorPosition()
	st := InputState{
		MouseX:       mx,
		MouseY:       my,
		KeysPressed:  inpututil.AppendJustPressedKeys(nil),
		KeysReleased: inpututil.AppendJustReleasedKeys(nil),
		Chars:        ebiten.AppendInputChars(nil),
	}
	for b := ebiten.MouseButton0; b <= ebiten.MouseButtonMax; b++ {
		if inpututil.IsMouseButtonJustPressed(b) {
			st.ButtonsPressed = append(st.ButtonsPressed, b)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			st.ButtonsReleased = append(st.ButtonsReleased, b)
		}
	}
	return st
}

// Poll reads the input state and returns the resulting events
func (s *InputSystem) Poll() []input.Dispatch {
	return s.Events(s.GetInput())
}

// Events converts one tick of input into events, in the order a browser
// would fire them: enter/leave, move, buttons, keys, typed characters.
// Releasing the left button also clicks; releasing the right one clicks with
// the default action (the context menu) prevented.
func (s *InputSystem) Events(st InputState) []input.Dispatch {
	var out []input.Dispatch
	add := func(ev *input.Event, preventDefault bool) {
		out = append(out, input.Dispatch{Event: ev, PreventDefault: preventDefault})
	}
	pointer := func(kind input.Kind, b ebiten.MouseButton) *input.Event {
		return input.NewPointerEvent(kind, st.MouseX, st.MouseY, b)
	}

	inside := st.MouseX >= 0 && st.MouseY >= 0 && st.MouseX < s.screenW && st.MouseY < s.screenH
	moved := !s.hasCursor || st.MouseX != s.lastX || st.MouseY != s.lastY
	switch {
	case inside && !s.inside:
		add(pointer(input.MouseEnter, ebiten.MouseButtonLeft), false)
	case !inside && s.inside:
		add(pointer(input.MouseLeave, ebiten.MouseButtonLeft), false)
	}
	if inside && moved && s.hasCursor {
		add(pointer(input.MouseMove, ebiten.MouseButtonLeft), false)
	}
	s.hasCursor, s.lastX, s.lastY, s.inside = true, st.MouseX, st.MouseY, inside

	for _, b := range st.ButtonsPressed {
		if inside {
			add(pointer(input.MouseDown, b), false)
		}
	}
	for _, b := range st.ButtonsReleased {
		if !inside {
			continue
		}
		add(pointer(input.MouseUp, b), false)
		switch b {
		case ebiten.MouseButtonLeft:
			add(pointer(input.Click, b), false)
		case ebiten.MouseButtonRight:
			add(pointer(input.Click, b), true)
		}
	}

	for _, k := range st.KeysPressed {
		add(input.NewKeyEvent(input.KeyDown, k), false)
	}
	for _, k := range st.KeysReleased {
		add(input.NewKeyEvent(input.KeyUp, k), false)
	}
	for _, r := range st.Chars {
		add(input.NewCharEvent(r), false)
	}
	return out
}
