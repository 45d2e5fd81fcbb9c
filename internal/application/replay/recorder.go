package replay

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/younwookim/gamert/internal/domain/input"
)

// Version is written into every journal
const Version = "1.0"

// Recorder handles input recording
type Recorder struct {
	data      Journal
	recording bool
	frame     int
}

// NewRecorder creates a new recorder
func NewRecorder() *Recorder {
	return &Recorder{
		data: Journal{
			Version:   Version,
			StartTime: time.Now().Format(time.RFC3339),
			Events:    make([]EventRecord, 0, 256),
		},
		recording: true,
	}
}

// Record records an event dispatched in the current frame
func (r *Recorder) Record(d input.Dispatch) {
	if !r.recording || d.Event == nil {
		return
	}
	r.data.Events = append(r.data.Events, newRecord(r.frame, d))
}

// EndFrame closes the current frame
func (r *Recorder) EndFrame() {
	if !r.recording {
		return
	}
	r.frame++
	r.data.Frames = r.frame
}

// Journal returns a copy of the recorded data
func (r *Recorder) Journal() Journal {
	data := r.data
	data.Events = append([]EventRecord(nil), r.data.Events...)
	return data
}

// Save writes the journal to a file
func (r *Recorder) Save(filename string) error {
	if r.data.Frames == 0 {
		return fmt.Errorf("no frames to save")
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(r.data); err != nil {
		return fmt.Errorf("failed to encode journal: %w", err)
	}

	return nil
}

// Stop stops recording
func (r *Recorder) Stop() {
	r.recording = false
}

// IsRecording returns whether recording is active
func (r *Recorder) IsRecording() bool {
	return r.recording
}

// FrameCount returns the number of recorded frames
func (r *Recorder) FrameCount() int {
	return r.data.Frames
}

// EventCount returns the number of recorded events
func (r *Recorder) EventCount() int {
	return len(r.data.Events)
}

// GenerateFilename creates a filename based on current time
func GenerateFilename() string {
	return fmt.Sprintf("journal_%s.json", time.Now().Format("20060102_150405"))
}
