package asset

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/stretchr/testify/require"
)

// fakeFetcher serves fixed payloads and counts fetches per source. When gate
// is set, every fetch blocks until it is closed.
type fakeFetcher struct {
	mu    sync.Mutex
	data  map[string][]byte
	calls map[string]int
	gate  chan struct{}
}

func newFakeFetcher(data map[string][]byte) *fakeFetcher {
	return &fakeFetcher{data: data, calls: make(map[string]int)}
}

func (f *fakeFetcher) Fetch(ctx context.Context, src string) ([]byte, error) {
	f.mu.Lock()
	f.calls[src]++
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	data, ok := f.data[src]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no such source %s", src)
	}
	return data, nil
}

func (f *fakeFetcher) Calls(src string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[src]
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := range w {
		for y := range h {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// wavBytes encodes n samples of silence at 8kHz mono.
func wavBytes(t *testing.T, n int) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.wav")
	f, err := os.Create(path)
	require.NoError(t, err)

	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(n), format))
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// fakeOutput records what it was asked to play.
type fakeOutput struct {
	mu      sync.Mutex
	played  []beep.Streamer
	locks   int
	formats []beep.Format
}

func (o *fakeOutput) Play(s beep.Streamer, format beep.Format) {
	o.played = append(o.played, s)
	o.formats = append(o.formats, format)
}

func (o *fakeOutput) Lock() {
	o.mu.Lock()
	o.locks++
}

func (o *fakeOutput) Unlock() {
	o.mu.Unlock()
}

// drain pulls n samples from the last played streamer.
func (o *fakeOutput) drain(n int) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	s := o.played[len(o.played)-1]
	buf := make([][2]float64, n)
	got, _ := s.Stream(buf)
	return got
}
