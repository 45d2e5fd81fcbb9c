package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/younwookim/gamert/internal/domain/input"
)

// Replayer feeds recorded events back frame by frame
type Replayer struct {
	frames int
	events [][]input.Dispatch // indexed by frame
	frame  int
}

// NewReplayer creates a new replayer from a journal
func NewReplayer(data Journal) (*Replayer, error) {
	frames := data.Frames
	for _, rec := range data.Events {
		frames = max(frames, rec.F+1)
	}

	events := make([][]input.Dispatch, frames)
	for _, rec := range data.Events {
		if rec.F < 0 {
			return nil, fmt.Errorf("negative frame %d", rec.F)
		}
		d, err := rec.Dispatch()
		if err != nil {
			return nil, err
		}
		events[rec.F] = append(events[rec.F], d)
	}

	return &Replayer{frames: frames, events: events}, nil
}

// LoadJournal loads a journal from a file
func LoadJournal(filename string) (*Journal, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var data Journal
	decoder := json.NewDecoder(file)
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode journal: %w", err)
	}

	return &data, nil
}

// Poll returns the events of the current frame and advances. Past the last
// frame it returns nothing.
func (r *Replayer) Poll() []input.Dispatch {
	if r.frame >= r.frames {
		return nil
	}
	recorded := r.events[r.frame]
	r.frame++

	// Copies, so dispatching never alters the recording.
	out := make([]input.Dispatch, len(recorded))
	for i, d := range recorded {
		ev := *d.Event
		out[i] = input.Dispatch{Event: &ev, PreventDefault: d.PreventDefault}
	}
	return out
}

// Done reports whether every recorded frame was replayed
func (r *Replayer) Done() bool {
	return r.frame >= r.frames
}

// CurrentFrame returns the current frame number
func (r *Replayer) CurrentFrame() int {
	return r.frame
}

// TotalFrames returns the total number of frames
func (r *Replayer) TotalFrames() int {
	return r.frames
}

// Reset resets the replayer to the beginning
func (r *Replayer) Reset() {
	r.frame = 0
}
