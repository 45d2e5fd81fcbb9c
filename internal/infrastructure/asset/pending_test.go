package asset

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPending_SettlesOnce(t *testing.T) {
	p := newPending()
	assert.False(t, p.Settled())
	assert.NoError(t, p.Err())

	first := errors.New("first")
	p.settle(first)
	p.settle(nil)

	assert.True(t, p.Settled())
	assert.Equal(t, first, p.Err())
}

func TestPending_WaitHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := newPending().Wait(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAll(t *testing.T) {
	t.Run("all succeed in any order", func(t *testing.T) {
		a, b, c := newPending(), newPending(), newPending()
		all := All(a, b, c)

		c.settle(nil)
		a.settle(nil)
		assert.False(t, all.Settled())
		b.settle(nil)

		require.NoError(t, waitLoad(t, all))
	})

	t.Run("error", func(t *testing.T) {
		boom := errors.New("boom")
		all := All(Resolved(), Failed(boom))
		assert.ErrorIs(t, waitLoad(t, all), boom)
	})

	t.Run("empty", func(t *testing.T) {
		require.NoError(t, waitLoad(t, All()))
	})
}

func TestAll_WaitsForStragglers(t *testing.T) {
	slow := newPending()
	all := All(Failed(errors.New("fast")), slow)

	time.Sleep(10 * time.Millisecond)
	assert.False(t, all.Settled(), "settles only once every load finished")

	slow.settle(nil)
	assert.Error(t, waitLoad(t, all))
}
