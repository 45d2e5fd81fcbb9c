package asset

import (
	"context"
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/younwookim/gamert/internal/domain/geom"
	"golang.org/x/image/font/gofont/goregular"
)

// Sound readiness is polled this often, this many times, before a load
// gives up with ErrTimeout.
const (
	SoundPollInterval = 100 * time.Millisecond
	SoundPollAttempts = 50
)

// Registry holds every loaded resource, one namespace per kind.
type Registry struct {
	fetcher Fetcher

	images  *namespace[*Image]
	sprites *namespace[*Sprite]
	sounds  *namespace[*Sound]
	fonts   *namespace[*Font]

	pollInterval time.Duration
	pollAttempts int
}

// Option configures a Registry.
type Option func(*Registry)

// WithSoundPoll overrides the sound readiness poll budget.
func WithSoundPoll(interval time.Duration, attempts int) Option {
	return func(r *Registry) {
		r.pollInterval = interval
		r.pollAttempts = attempts
	}
}

// NewRegistry creates an empty registry that fetches sources with fetcher.
func NewRegistry(fetcher Fetcher, opts ...Option) *Registry {
	r := &Registry{
		fetcher:      fetcher,
		images:       newNamespace[*Image](KindImage),
		sprites:      newNamespace[*Sprite](KindSprite),
		sounds:       newNamespace[*Sound](KindSound),
		fonts:        newNamespace[*Font](KindFont),
		pollInterval: SoundPollInterval,
		pollAttempts: SoundPollAttempts,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// LoadImage loads the image at src under id.
func (r *Registry) LoadImage(ctx context.Context, id, src string) *Pending {
	return r.images.load(ctx, id, func(ctx context.Context) (*Image, error) {
		data, err := r.fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		img, err := decodeImage(data)
		if err != nil {
			return nil, err
		}
		return &Image{id: id, img: img}, nil
	})
}

// LoadSprite loads the sheet at src under id with the given named regions.
func (r *Registry) LoadSprite(ctx context.Context, id, src string, frames map[string]geom.Rect) *Pending {
	return r.sprites.load(ctx, id, func(ctx context.Context) (*Sprite, error) {
		data, err := r.fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		img, err := decodeImage(data)
		if err != nil {
			return nil, err
		}
		return newSprite(id, img, frames), nil
	})
}

// LoadSound loads the clip at src under id. The load fails with ErrTimeout
// when the clip is not playable within the poll budget.
func (r *Registry) LoadSound(ctx context.Context, id, src string, loop bool, volume float64) *Pending {
	return r.sounds.load(ctx, id, func(ctx context.Context) (*Sound, error) {
		buffer, err := r.awaitSound(ctx, src)
		if err != nil {
			return nil, err
		}
		return newSound(id, buffer, loop, volume), nil
	})
}

type decoded struct {
	buffer *beep.Buffer
	err    error
}

// awaitSound fetches and decodes src in the background and polls for the
// result until the budget runs out.
func (r *Registry) awaitSound(ctx context.Context, src string) (*beep.Buffer, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ready := make(chan decoded, 1)
	go func() {
		data, err := r.fetcher.Fetch(ctx, src)
		if err != nil {
			ready <- decoded{err: err}
			return
		}
		buffer, err := decodeSound(data)
		ready <- decoded{buffer: buffer, err: err}
	}()

	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	for attempt := 0; ; {
		select {
		case d := <-ready:
			return d.buffer, d.err
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
			attempt++
			if attempt >= r.pollAttempts {
				return nil, fmt.Errorf("%w after %d polls of %v", ErrTimeout, attempt, r.pollInterval)
			}
		}
	}
}

// LoadFont loads the font at src under id. An empty src selects the built-in
// Go Regular face.
func (r *Registry) LoadFont(ctx context.Context, id, family, src string) *Pending {
	return r.fonts.load(ctx, id, func(ctx context.Context) (*Font, error) {
		data := goregular.TTF
		if src != "" {
			var err error
			if data, err = r.fetcher.Fetch(ctx, src); err != nil {
				return nil, err
			}
		}
		face, err := parseFont(data)
		if err != nil {
			return nil, err
		}
		if family == "" {
			family = id
		}
		return &Font{id: id, family: family, source: face}, nil
	})
}

// Image returns the image registered under id.
func (r *Registry) Image(id string) (*Image, error) {
	return r.images.lookup(id)
}

// Sprite returns the sprite registered under id.
func (r *Registry) Sprite(id string) (*Sprite, error) {
	return r.sprites.lookup(id)
}

// Sound returns the sound registered under id.
func (r *Registry) Sound(id string) (*Sound, error) {
	return r.sounds.lookup(id)
}

// Font returns the font registered under id.
func (r *Registry) Font(id string) (*Font, error) {
	return r.fonts.lookup(id)
}

// Has reports whether id is registered in the namespace of kind.
func (r *Registry) Has(kind Kind, id string) bool {
	switch kind {
	case KindImage:
		_, ok := r.images.get(id)
		return ok
	case KindSprite:
		_, ok := r.sprites.get(id)
		return ok
	case KindSound:
		_, ok := r.sounds.get(id)
		return ok
	case KindFont:
		_, ok := r.fonts.get(id)
		return ok
	default:
		return false
	}
}

// Len returns the number of entries of kind.
func (r *Registry) Len(kind Kind) int {
	switch kind {
	case KindImage:
		return r.images.len()
	case KindSprite:
		return r.sprites.len()
	case KindSound:
		return r.sounds.len()
	case KindFont:
		return r.fonts.len()
	default:
		return 0
	}
}

// IDs returns the sorted ids of kind.
func (r *Registry) IDs(kind Kind) []string {
	switch kind {
	case KindImage:
		return r.images.ids()
	case KindSprite:
		return r.sprites.ids()
	case KindSound:
		return r.sounds.ids()
	case KindFont:
		return r.fonts.ids()
	default:
		return nil
	}
}

// StopAllSounds stops every registered sound.
func (r *Registry) StopAllSounds() {
	for _, s := range r.sounds.values() {
		s.Stop()
	}
}
