package scroller

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/gamert/internal/application/game"
	"github.com/younwookim/gamert/internal/domain/carousel"
	"github.com/younwookim/gamert/internal/domain/geom"
	"github.com/younwookim/gamert/internal/domain/input"
	"github.com/younwookim/gamert/internal/infrastructure/asset"
	"github.com/younwookim/gamert/internal/infrastructure/config"
)

const (
	screenW = 800
	screenH = 600
)

// countingOutput counts started playbacks.
type countingOutput struct {
	mu    sync.Mutex
	plays int
}

func (o *countingOutput) Play(beep.Streamer, beep.Format) { o.plays++ }
func (o *countingOutput) Lock()                           { o.mu.Lock() }
func (o *countingOutput) Unlock()                         { o.mu.Unlock() }

// countingSurface counts draw calls.
type countingSurface struct {
	draws int
}

func (s *countingSurface) DrawImage(_ *ebiten.Image, _ *ebiten.DrawImageOptions) {
	s.draws++
}

// fakePeer records sent payloads and exposes the installed handler.
type fakePeer struct {
	mu      sync.Mutex
	sent    []any
	handler func(data any)
}

func (p *fakePeer) Send(v any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, v)
	return nil
}

func (p *fakePeer) OnData(h func(data any)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handler = h
}

func (p *fakePeer) deliver(data any) {
	p.mu.Lock()
	h := p.handler
	p.mu.Unlock()
	h(data)
}

// fakeClock advances only when told to.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(seconds float64) {
	c.now = c.now.Add(time.Duration(math.Round(seconds * float64(time.Second))))
}

func testPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 64, 64))))
	return buf.Bytes()
}

func testWAV(t *testing.T) []byte {
	t.Helper()
	path := filepath.Join(t.TempDir(), "music.wav")
	f, err := os.Create(path)
	require.NoError(t, err)
	format := beep.Format{SampleRate: 8000, NumChannels: 1, Precision: 2}
	require.NoError(t, wav.Encode(f, beep.Silence(800), format))
	require.NoError(t, f.Close())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

// loadedRegistry registers every asset the scene needs.
func loadedRegistry(t *testing.T) *asset.Registry {
	t.Helper()
	pngData, wavData := testPNG(t), testWAV(t)
	reg := asset.NewRegistry(asset.FetcherFunc(func(_ context.Context, src string) ([]byte, error) {
		if strings.HasSuffix(src, ".wav") {
			return wavData, nil
		}
		return pngData, nil
	}))

	ctx := context.Background()
	items := config.SpriteEntry{Grid: &config.GridConfig{
		Cols: 31, Rows: 21, Width: 2, Height: 2, Prefix: "PKM-", Start: 1, Count: 649,
	}}
	ditto := config.SpriteEntry{Grid: &config.GridConfig{
		Cols: 4, Rows: 1, Width: 8, Height: 8, Prefix: "p-",
	}}
	loads := []*asset.Pending{
		reg.LoadImage(ctx, BackImage, "back.png"),
		reg.LoadSprite(ctx, ArrowsSprite, "arrows.png", map[string]geom.Rect{
			"left":  geom.NewRect(0, 0, 26, 26),
			"right": geom.NewRect(26, 0, 26, 26),
		}),
		reg.LoadSprite(ctx, DittoSprite, "ditto.png", ditto.Regions()),
		reg.LoadSprite(ctx, ItemSprite, "pkm.png", items.Regions()),
		reg.LoadSound(ctx, Music, "music.wav", true, 0.5),
		reg.LoadFont(ctx, UIFont, "", ""),
	}
	require.NoError(t, asset.All(loads...).Wait(ctx))
	return reg
}

func newScene(t *testing.T, peer Peer) (*game.Game, *Scene, *fakeClock, *countingOutput) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(0, 0)}
	out := &countingOutput{}
	g := game.New(loadedRegistry(t), screenW, screenH, game.WithClock(clock.Now), game.WithAudio(out))

	s := New(config.DefaultGameConfig().Scroller, peer)
	require.NoError(t, g.SetScene(s))
	return g, s, clock, out
}

// step advances the clock by dt and runs one frame.
func step(t *testing.T, g *game.Game, clock *fakeClock, dt float64) {
	t.Helper()
	clock.Advance(dt)
	require.NoError(t, g.Tick(nil))
}

func TestScene_InitPlaysMusicClone(t *testing.T) {
	g, s, _, out := newScene(t, nil)

	assert.Equal(t, 1, out.plays)
	assert.Equal(t, 1, s.Current())
	assert.False(t, s.Carousel().Transitioning())

	registered, err := g.Assets().Sound(Music)
	require.NoError(t, err)
	assert.False(t, registered.Played(), "the registered sound must stay untouched")
}

func TestScene_InitFailsWithoutAssets(t *testing.T) {
	g := game.New(asset.NewRegistry(asset.FetcherFunc(nil)), screenW, screenH)
	err := g.SetScene(New(config.ScrollerConfig{}, nil))

	var lookupErr *asset.LookupError
	require.ErrorAs(t, err, &lookupErr)
}

func TestScene_ArrowLeftWrapsToLast(t *testing.T) {
	g, s, clock, _ := newScene(t, nil)

	require.NoError(t, g.Dispatch(input.NewKeyEvent(input.KeyUp, ebiten.KeyArrowLeft), false))
	tr, ok := s.Carousel().Transition()
	require.True(t, ok)
	assert.Equal(t, 649, tr.To.ID)
	assert.Equal(t, carousel.DirLeft, tr.Dir)
	assert.Equal(t, float64(g.Width()), tr.To.X, "the previous item enters from the right")

	// ignored while transitioning
	require.NoError(t, g.Dispatch(input.NewKeyEvent(input.KeyUp, ebiten.KeyArrowRight), false))
	tr, _ = s.Carousel().Transition()
	assert.Equal(t, 649, tr.To.ID)

	for i := 0; i < 3; i++ {
		step(t, g, clock, 0.4)
	}
	assert.False(t, s.Carousel().Transitioning())
	assert.Equal(t, 649, s.Current())
}

func TestScene_ArrowClicks(t *testing.T) {
	g, s, _, _ := newScene(t, nil)

	// outside both arrows
	require.NoError(t, g.Dispatch(input.NewPointerEvent(input.MouseUp, 400, 300, ebiten.MouseButtonLeft), false))
	assert.False(t, s.Carousel().Transitioning())

	require.NoError(t, g.Dispatch(input.NewPointerEvent(input.MouseUp, screenW-22, 203, ebiten.MouseButtonLeft), false))
	tr, ok := s.Carousel().Transition()
	require.True(t, ok)
	assert.Equal(t, 2, tr.To.ID)
	assert.Equal(t, carousel.DirRight, tr.Dir)

	g2, s2, _, _ := newScene(t, nil)
	require.NoError(t, g2.Dispatch(input.NewPointerEvent(input.MouseUp, 22, 202, ebiten.MouseButtonLeft), false))
	tr, ok = s2.Carousel().Transition()
	require.True(t, ok)
	assert.Equal(t, 649, tr.To.ID)
}

func TestScene_DittoFrameCycles(t *testing.T) {
	g, s, clock, _ := newScene(t, nil)
	assert.Equal(t, "p-1", s.DittoFrame())

	step(t, g, clock, 0.16)
	assert.Equal(t, "p-2", s.DittoFrame())

	step(t, g, clock, 0.35)
	assert.Equal(t, "p-0", s.DittoFrame())
}

func TestScene_FPSSampledOncePerSecond(t *testing.T) {
	g, s, clock, _ := newScene(t, nil)
	assert.Equal(t, 0.0, s.FPS())

	step(t, g, clock, 0.02)
	assert.InDelta(t, 50.0, s.FPS(), 1e-6)

	step(t, g, clock, 0.5)
	assert.InDelta(t, 50.0, s.FPS(), 1e-6)

	step(t, g, clock, 0.6)
	assert.InDelta(t, 1/0.6, s.FPS(), 1e-6)
}

func TestScene_DrawIdleAndTransitioning(t *testing.T) {
	g, _, clock, _ := newScene(t, nil)
	surface := &countingSurface{}

	clock.Advance(0.016)
	require.NoError(t, g.Tick(surface))
	idle := surface.draws
	assert.Greater(t, idle, 0)

	require.NoError(t, g.Dispatch(input.NewKeyEvent(input.KeyUp, ebiten.KeyArrowRight), false))
	surface.draws = 0
	clock.Advance(0.016)
	require.NoError(t, g.Tick(surface))
	assert.Greater(t, surface.draws, idle, "both participants are drawn")
	assert.Equal(t, 0, g.Context().Depth())
}

func TestScene_CommitSendsSelection(t *testing.T) {
	peer := &fakePeer{}
	g, _, clock, _ := newScene(t, peer)

	require.NoError(t, g.Dispatch(input.NewKeyEvent(input.KeyUp, ebiten.KeyArrowRight), false))
	step(t, g, clock, 0.6)
	assert.Empty(t, peer.sent)
	step(t, g, clock, 0.6)

	require.Len(t, peer.sent, 1)
	assert.Equal(t, SelectMessage(2), peer.sent[0])
}

func TestScene_RemoteSelectionIsAppliedNotEchoed(t *testing.T) {
	peer := &fakePeer{}
	g, s, clock, _ := newScene(t, peer)

	peer.deliver(map[string]any{"type": "select", "index": 10.0})
	assert.False(t, s.Carousel().Transitioning(), "applied on the frame goroutine only")

	step(t, g, clock, 0.016)
	tr, ok := s.Carousel().Transition()
	require.True(t, ok)
	assert.Equal(t, 10, tr.To.ID)

	step(t, g, clock, 0.6)
	step(t, g, clock, 0.6)
	assert.Equal(t, 10, s.Current())
	assert.Empty(t, peer.sent)

	peer.deliver("garbage")
	step(t, g, clock, 0.016)
	assert.False(t, s.Carousel().Transitioning())
}

func TestScene_DestroyDetachesPeer(t *testing.T) {
	peer := &fakePeer{}
	g, _, _, _ := newScene(t, peer)
	require.NotNil(t, peer.handler)

	require.NoError(t, g.SetScene(nil))
	assert.Nil(t, peer.handler)
}

func TestParseSelect(t *testing.T) {
	tests := []struct {
		name  string
		data  any
		want  int
		valid bool
	}{
		{"wire number", map[string]any{"type": "select", "index": 3.0}, 3, true},
		{"local int", SelectMessage(649), 649, true},
		{"fraction", map[string]any{"type": "select", "index": 1.5}, 0, false},
		{"zero", map[string]any{"type": "select", "index": 0.0}, 0, false},
		{"wrong type", map[string]any{"type": "chat", "index": 3.0}, 0, false},
		{"missing index", map[string]any{"type": "select"}, 0, false},
		{"not an object", []any{1.0}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseSelect(tt.data)
			assert.Equal(t, tt.valid, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
