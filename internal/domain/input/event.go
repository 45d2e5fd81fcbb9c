// Package input defines the pointer and keyboard events dispatched to scenes.
package input

import "github.com/hajimehoshi/ebiten/v2"

// Kind identifies the type of an input event.
type Kind int

const (
	MouseMove Kind = iota
	MouseDown
	MouseUp
	MouseEnter
	MouseLeave
	Click
	KeyUp
	KeyDown
	KeyPress
)

// String returns the string representation of the event kind
func (k Kind) String() string {
	switch k {
	case MouseMove:
		return "mouseMove"
	case MouseDown:
		return "mouseDown"
	case MouseUp:
		return "mouseUp"
	case MouseEnter:
		return "mouseEnter"
	case MouseLeave:
		return "mouseLeave"
	case Click:
		return "click"
	case KeyUp:
		return "keyUp"
	case KeyDown:
		return "keyDown"
	case KeyPress:
		return "keyPress"
	default:
		return "unknown"
	}
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k := MouseMove; k <= KeyPress; k++ {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// IsPointer reports whether the event carries a cursor position.
func (k Kind) IsPointer() bool {
	return k <= Click
}

// Event is a single input event.
//
// Pointer events fill X, Y and Button; key events fill Key (and Char for
// KeyPress).
type Event struct {
	Kind   Kind
	X, Y   int
	Button ebiten.MouseButton
	Key    ebiten.Key
	Char   rune

	defaultPrevented bool
}

// NewPointerEvent creates a pointer event at the given position.
func NewPointerEvent(kind Kind, x, y int, button ebiten.MouseButton) *Event {
	return &Event{Kind: kind, X: x, Y: y, Button: button}
}

// NewKeyEvent creates a keyboard event.
func NewKeyEvent(kind Kind, key ebiten.Key) *Event {
	return &Event{Kind: kind, Key: key}
}

// NewCharEvent creates a KeyPress event for a typed character.
func NewCharEvent(char rune) *Event {
	return &Event{Kind: KeyPress, Char: char}
}

// KeyName returns the key identity in the DOM naming style ("ArrowLeft",
// "Enter", "A").
func (e *Event) KeyName() string {
	if e.Kind == KeyPress && e.Char != 0 {
		return string(e.Char)
	}
	return e.Key.String()
}

// PreventDefault suppresses the platform default action for this event.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// Dispatch is an event queued for a scene together with whether its default
// action is suppressed.
type Dispatch struct {
	Event          *Event
	PreventDefault bool
}

// ParseKey returns the key whose String() is name.
func ParseKey(name string) (ebiten.Key, bool) {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if k.String() == name {
			return k, true
		}
	}
	return 0, false
}
