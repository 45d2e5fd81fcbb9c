package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// SampleRate is the rate the speaker runs at. Clips of other rates are
// resampled on play.
const SampleRate = beep.SampleRate(48000)

// resampleQuality trades CPU for fidelity when converting sample rates.
const resampleQuality = 4

// Speaker plays sounds through the system audio device. All streamers share
// one mixer.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker creates a speaker; Initialize opens the device.
func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device with a 100ms buffer.
func (s *Speaker) Initialize() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}
	if err := speaker.Init(SampleRate, SampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	return nil
}

// Play mixes st into the output, resampling from format when needed.
func (s *Speaker) Play(st beep.Streamer, format beep.Format) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	if format.SampleRate != SampleRate {
		st = beep.Resample(resampleQuality, format.SampleRate, SampleRate, st)
	}
	speaker.Lock()
	s.mixer.Add(st)
	speaker.Unlock()
}

// Lock blocks the audio goroutine so playing streamers can be changed.
func (s *Speaker) Lock() {
	speaker.Lock()
}

// Unlock releases Lock.
func (s *Speaker) Unlock() {
	speaker.Unlock()
}

// Close clears the mixer and releases the device.
func (s *Speaker) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return
	}
	speaker.Lock()
	s.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	s.initialized = false
}

// Silent is an output that discards everything. It is used when no audio
// device is available and in tests.
type Silent struct {
	mu sync.Mutex
}

func (*Silent) Play(beep.Streamer, beep.Format) {}

func (s *Silent) Lock() {
	s.mu.Lock()
}

func (s *Silent) Unlock() {
	s.mu.Unlock()
}
