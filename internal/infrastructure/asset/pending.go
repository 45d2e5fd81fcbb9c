package asset

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Pending is the result of an asynchronous load. It settles exactly once.
type Pending struct {
	done chan struct{}
	once sync.Once
	err  error
}

func newPending() *Pending {
	return &Pending{done: make(chan struct{})}
}

// Resolved returns a Pending that already succeeded.
func Resolved() *Pending {
	p := newPending()
	p.settle(nil)
	return p
}

// Failed returns a Pending that already failed with err.
func Failed(err error) *Pending {
	p := newPending()
	p.settle(err)
	return p
}

func (p *Pending) settle(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Done is closed once the load settled.
func (p *Pending) Done() <-chan struct{} {
	return p.done
}

// Settled reports whether the load has finished, without blocking.
func (p *Pending) Settled() bool {
	select {
	case <-p.done:
		return true
	default:
		return false
	}
}

// Err returns the load error. It is nil until the load settled.
func (p *Pending) Err() error {
	select {
	case <-p.done:
		return p.err
	default:
		return nil
	}
}

// Wait blocks until the load settled or ctx is done.
func (p *Pending) Wait(ctx context.Context) error {
	select {
	case <-p.done:
		return p.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// All settles once every pending settled: with the first error observed, or
// nil when all succeeded. Settlement order of ps does not matter.
func All(ps ...*Pending) *Pending {
	out := newPending()
	go func() {
		var g errgroup.Group
		for _, p := range ps {
			g.Go(func() error {
				<-p.Done()
				return p.Err()
			})
		}
		out.settle(g.Wait())
	}()
	return out
}
