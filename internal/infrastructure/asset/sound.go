package asset

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"
)

// Output plays streamers. Lock and Unlock guard streamers that are being
// played while their state changes.
type Output interface {
	Play(s beep.Streamer, format beep.Format)
	Lock()
	Unlock()
}

// Sound is a fully buffered audio clip with its own playback state.
type Sound struct {
	id     string
	buffer *beep.Buffer

	mu     sync.Mutex
	loop   bool
	volume float64
	played bool
	out    Output
	pb     *playback
}

// playback is one run of a sound through an Output.
type playback struct {
	seeker beep.StreamSeeker
	gain   *effects.Volume
	ctrl   *beep.Ctrl
	done   chan struct{}
	ended  atomic.Bool
}

func newSound(id string, buffer *beep.Buffer, loop bool, volume float64) *Sound {
	return &Sound{id: id, buffer: buffer, loop: loop, volume: clampVolume(volume)}
}

// ID returns the registry id.
func (s *Sound) ID() string {
	return s.id
}

// Format returns the sample format of the clip.
func (s *Sound) Format() beep.Format {
	return s.buffer.Format()
}

// Duration returns the clip length.
func (s *Sound) Duration() time.Duration {
	return s.buffer.Format().SampleRate.D(s.buffer.Len())
}

// Clone returns a sound sharing the samples but none of the playback state,
// so the same clip can play several times at once.
func (s *Sound) Clone() *Sound {
	s.mu.Lock()
	defer s.mu.Unlock()
	return newSound(s.id, s.buffer, s.loop, s.volume)
}

// Loop reports whether the sound repeats.
func (s *Sound) Loop() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop
}

// SetLoop changes looping for the next Play.
func (s *Sound) SetLoop(loop bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop = loop
}

// Played reports whether Play was ever called.
func (s *Sound) Played() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}

// Volume returns the linear volume in [0, 1].
func (s *Sound) Volume() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume
}

// SetVolume sets the linear volume, clamped to [0, 1].
func (s *Sound) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.volume = clampVolume(v)
	if s.pb != nil {
		s.withOutput(func() { applyVolume(s.pb.gain, s.volume) })
	}
}

// Play starts playback on out, or resumes a paused playback. The returned
// channel is closed when a non-looping sound reaches its end; for a looping
// sound it never closes.
func (s *Sound) Play(out Output) <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.played = true
	if s.pb != nil && !s.pb.ended.Load() && s.out == out {
		s.withOutput(func() { s.pb.ctrl.Paused = false })
		return s.pb.done
	}

	pb := &playback{
		seeker: s.buffer.Streamer(0, s.buffer.Len()),
		done:   make(chan struct{}),
	}

	var stream beep.Streamer
	if s.loop {
		stream = beep.Loop(-1, pb.seeker)
	} else {
		stream = beep.Seq(pb.seeker, beep.Callback(func() {
			pb.ended.Store(true)
			close(pb.done)
		}))
	}
	pb.gain = &effects.Volume{Streamer: stream, Base: 2}
	applyVolume(pb.gain, s.volume)
	pb.ctrl = &beep.Ctrl{Streamer: pb.gain}

	s.pb = pb
	s.out = out
	out.Play(pb.ctrl, s.buffer.Format())
	return pb.done
}

// Pause pauses playback, keeping the position.
func (s *Sound) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pb == nil {
		return
	}
	s.withOutput(func() { s.pb.ctrl.Paused = true })
}

// Resume continues a paused playback. It does nothing when the sound was
// never played or already ended.
func (s *Sound) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pb == nil || s.pb.ended.Load() {
		return
	}
	s.withOutput(func() { s.pb.ctrl.Paused = false })
}

// Stop pauses playback and rewinds to the start.
func (s *Sound) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pb == nil {
		return
	}
	s.withOutput(func() {
		s.pb.ctrl.Paused = true
		_ = s.pb.seeker.Seek(0)
	})
}

// IsPlaying reports whether the sound is currently audible.
func (s *Sound) IsPlaying() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pb == nil || s.pb.ended.Load() {
		return false
	}
	playing := false
	s.withOutput(func() { playing = !s.pb.ctrl.Paused })
	return playing
}

// CurrentTime returns the playback position.
func (s *Sound) CurrentTime() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pb == nil {
		return 0
	}
	var pos int
	s.withOutput(func() { pos = s.pb.seeker.Position() })
	return s.buffer.Format().SampleRate.D(pos)
}

// SetCurrentTime moves the playback position, clamped to the clip.
func (s *Sound) SetCurrentTime(d time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pb == nil {
		return nil
	}

	n := s.buffer.Format().SampleRate.N(d)
	n = max(0, min(n, s.buffer.Len()))
	var err error
	s.withOutput(func() { err = s.pb.seeker.Seek(n) })
	return err
}

func (s *Sound) withOutput(fn func()) {
	if s.out != nil {
		s.out.Lock()
		defer s.out.Unlock()
	}
	fn()
}

func clampVolume(v float64) float64 {
	return max(0, min(v, 1))
}

// applyVolume maps a linear volume onto beep's logarithmic gain.
func applyVolume(g *effects.Volume, v float64) {
	g.Silent = v <= 0
	if !g.Silent {
		g.Volume = math.Log2(v)
	}
}

var errUnknownAudioFormat = errors.New("unknown audio format")

// decodeSound decodes WAV or MP3 data into a memory buffer.
func decodeSound(data []byte) (*beep.Buffer, error) {
	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
		err      error
	)
	switch {
	case isWAV(data):
		streamer, format, err = wav.Decode(bytes.NewReader(data))
	case isMP3(data):
		streamer, format, err = mp3.Decode(io.NopCloser(bytes.NewReader(data)))
	default:
		return nil, errUnknownAudioFormat
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio: %w", err)
	}
	defer func() { _ = streamer.Close() }()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to buffer audio: %w", err)
	}
	return buffer, nil
}

func isWAV(data []byte) bool {
	return len(data) >= 12 && string(data[:4]) == "RIFF" && string(data[8:12]) == "WAVE"
}

func isMP3(data []byte) bool {
	if len(data) >= 3 && string(data[:3]) == "ID3" {
		return true
	}
	return len(data) >= 2 && data[0] == 0xFF && data[1]&0xE0 == 0xE0
}
