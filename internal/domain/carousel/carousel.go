// Package carousel implements a time-driven transition between two items of a
// numbered collection: the outgoing item slides off screen while the incoming
// one slides into its place.
package carousel

import (
	"fmt"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultDuration is the transition length in seconds.
const DefaultDuration = 1.0

// Direction of item movement on screen.
const (
	DirLeft  = -1
	DirRight = 1
)

// Config describes the collection and the viewport it is shown in.
type Config struct {
	Count     int     // item ids run from 1 to Count
	ItemWidth float64 // drawn width of one item in pixels
	ViewWidth float64 // viewport width in pixels
	Anchor    float64 // resting x of the current item
	Duration  float64 // transition length in seconds, 0 = DefaultDuration
}

// Item is one participant of a transition.
type Item struct {
	ID int
	X  float64
}

// Transition is the state of an active transition.
type Transition struct {
	Elapsed float64
	From    Item
	To      Item
	Dir     int
}

type transition struct {
	Transition
	fromTween *gween.Tween
	toTween   *gween.Tween
}

// Carousel is a two-state machine: Idle, or Transitioning between the current
// item and the next one.
type Carousel struct {
	cfg     Config
	current int
	active  *transition
}

// New creates a carousel showing item 1.
func New(cfg Config) (*Carousel, error) {
	if cfg.Count < 1 {
		return nil, fmt.Errorf("carousel: item count must be positive, got %d", cfg.Count)
	}
	if cfg.Duration <= 0 {
		cfg.Duration = DefaultDuration
	}
	return &Carousel{cfg: cfg, current: 1}, nil
}

// Current returns the id of the item at rest.
func (c *Carousel) Current() int {
	return c.current
}

// Count returns the number of items.
func (c *Carousel) Count() int {
	return c.cfg.Count
}

// Speed returns the horizontal speed of both participants in pixels per second.
func (c *Carousel) Speed() float64 {
	return (c.cfg.ViewWidth + c.cfg.ItemWidth) / 2
}

// Transitioning reports whether a transition is active.
func (c *Carousel) Transitioning() bool {
	return c.active != nil
}

// Transition returns a copy of the active transition.
func (c *Carousel) Transition() (Transition, bool) {
	if c.active == nil {
		return Transition{}, false
	}
	return c.active.Transition, true
}

// Previous starts a transition to the item before the current one, wrapping
// from the first item to the last. The incoming item enters from the right.
// It returns false while a transition is active.
func (c *Carousel) Previous() bool {
	return c.start(c.wrap(c.current-1), DirLeft)
}

// Next starts a transition to the item after the current one, wrapping from
// the last item to the first. The incoming item enters from the left.
// It returns false while a transition is active.
func (c *Carousel) Next() bool {
	return c.start(c.wrap(c.current+1), DirRight)
}

// Jump starts a transition straight to id, moving in the direction of the
// shorter way around the collection.
func (c *Carousel) Jump(id int) bool {
	if id < 1 || id > c.cfg.Count || id == c.current {
		return false
	}
	forward := (id - c.current + c.cfg.Count) % c.cfg.Count
	if forward <= c.cfg.Count/2 {
		return c.start(id, DirRight)
	}
	return c.start(id, DirLeft)
}

// Update advances the active transition by dt seconds. It returns true on the
// update that commits the transition.
func (c *Carousel) Update(dt float64) bool {
	if c.active == nil {
		return false
	}

	a := c.active
	fromX, _ := a.fromTween.Update(float32(dt))
	toX, _ := a.toTween.Update(float32(dt))
	a.From.X = float64(fromX)
	a.To.X = float64(toX)
	a.Elapsed += dt

	if a.Elapsed > c.cfg.Duration {
		c.current = a.To.ID
		c.active = nil
		return true
	}
	return false
}

func (c *Carousel) start(to, dir int) bool {
	if c.active != nil {
		return false
	}

	from := Item{ID: c.current, X: c.cfg.Anchor}
	next := Item{ID: to, X: -c.cfg.ItemWidth}
	if dir == DirLeft {
		next.X = c.cfg.ViewWidth
	}

	travel := c.Speed() * c.cfg.Duration * float64(dir)
	d := float32(c.cfg.Duration)
	c.active = &transition{
		Transition: Transition{From: from, To: next, Dir: dir},
		fromTween:  gween.New(float32(from.X), float32(from.X+travel), d, ease.Linear),
		toTween:    gween.New(float32(next.X), float32(next.X+travel), d, ease.Linear),
	}
	return true
}

func (c *Carousel) wrap(id int) int {
	switch {
	case id < 1:
		return c.cfg.Count
	case id > c.cfg.Count:
		return 1
	default:
		return id
	}
}
