package replay

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/gamert/internal/domain/input"
)

// EventRecord records one dispatched event
type EventRecord struct {
	F   int    `json:"f"`             // Frame number
	K   string `json:"k"`             // Event kind
	X   int    `json:"x,omitempty"`   // Cursor X
	Y   int    `json:"y,omitempty"`   // Cursor Y
	B   int    `json:"b,omitempty"`   // Mouse button
	Key string `json:"key,omitempty"` // Key name
	Ch  string `json:"ch,omitempty"`  // Typed character
	P   bool   `json:"p,omitempty"`   // PreventDefault
}

// Journal contains all data needed to replay an input session
type Journal struct {
	Version   string        `json:"version"`
	StartTime string        `json:"startTime"`
	Frames    int           `json:"frames"`
	Events    []EventRecord `json:"events"`
}

func newRecord(frame int, d input.Dispatch) EventRecord {
	ev := d.Event
	rec := EventRecord{F: frame, K: ev.Kind.String(), P: d.PreventDefault}
	if ev.Kind.IsPointer() {
		rec.X, rec.Y, rec.B = ev.X, ev.Y, int(ev.Button)
		return rec
	}
	if ev.Char != 0 {
		rec.Ch = string(ev.Char)
	} else {
		rec.Key = ev.Key.String()
	}
	return rec
}

// Dispatch rebuilds the dispatched event.
func (r EventRecord) Dispatch() (input.Dispatch, error) {
	kind, ok := input.ParseKind(r.K)
	if !ok {
		return input.Dispatch{}, fmt.Errorf("frame %d: unknown event kind %q", r.F, r.K)
	}

	var ev *input.Event
	switch {
	case kind.IsPointer():
		ev = input.NewPointerEvent(kind, r.X, r.Y, ebiten.MouseButton(r.B))
	case r.Ch != "":
		ev = input.NewCharEvent([]rune(r.Ch)[0])
	default:
		key, ok := input.ParseKey(r.Key)
		if !ok {
			return input.Dispatch{}, fmt.Errorf("frame %d: unknown key %q", r.F, r.Key)
		}
		ev = input.NewKeyEvent(kind, key)
	}
	return input.Dispatch{Event: ev, PreventDefault: r.P}, nil
}
