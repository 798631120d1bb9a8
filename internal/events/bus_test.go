package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
)

func newTestBus(t *testing.T) EventBus {
	t.Helper()
	return NewBus(hclog.NewNullLogger(), 16)
}

func TestPublishAndSubscribe(t *testing.T) {
	bus := newTestBus(t)
	assert.NoError(t, bus.Start(context.Background()))

	var mu sync.Mutex
	var got []Event
	done := make(chan struct{})
	bus.Subscribe(EventMovieCreated, func(e Event) {
		mu.Lock()
		got = append(got, e)
		mu.Unlock()
		close(done)
	})

	assert.NoError(t, bus.PublishAsync(New(EventMovieCreated, "test", map[string]interface{}{"id": 1})))

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Len(t, got, 1)
	assert.Equal(t, EventMovieCreated, got[0].Type)
	assert.NotEmpty(t, got[0].ID)
}

func TestWildcardSubscription(t *testing.T) {
	bus := newTestBus(t)
	assert.NoError(t, bus.Start(context.Background()))

	delivered := make(chan Event, 2)
	bus.Subscribe("", func(e Event) { delivered <- e })

	bus.PublishAsync(New(EventMovieCreated, "test", nil))
	bus.PublishAsync(New(EventSeriesDeleted, "test", nil))

	types := map[EventType]bool{}
	for i := 0; i < 2; i++ {
		select {
		case e := <-delivered:
			types[e.Type] = true
		case <-time.After(time.Second):
			t.Fatal("missing event delivery")
		}
	}
	assert.True(t, types[EventMovieCreated])
	assert.True(t, types[EventSeriesDeleted])
}

func TestPublishWhileStoppedCountsAsDropped(t *testing.T) {
	bus := newTestBus(t)

	assert.NoError(t, bus.PublishAsync(New(EventMovieCreated, "test", nil)))

	stats := bus.GetStats()
	assert.Equal(t, uint64(0), stats.Published)
	assert.Equal(t, uint64(1), stats.Dropped)
	assert.False(t, stats.Running)
}

func TestStopDrainsPendingEvents(t *testing.T) {
	bus := newTestBus(t)
	assert.NoError(t, bus.Start(context.Background()))

	for i := 0; i < 5; i++ {
		bus.PublishAsync(New(EventProgressUpdated, "test", nil))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, bus.Stop(ctx))

	stats := bus.GetStats()
	assert.Equal(t, uint64(5), stats.Delivered)
	assert.Equal(t, uint64(5), stats.ByType[EventProgressUpdated])
}

func TestRecentNewestFirst(t *testing.T) {
	bus := newTestBus(t)
	assert.NoError(t, bus.Start(context.Background()))

	bus.PublishAsync(New(EventMovieCreated, "test", nil))
	bus.PublishAsync(New(EventMovieUpdated, "test", nil))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.NoError(t, bus.Stop(ctx))

	recent := bus.Recent(10)
	assert.Len(t, recent, 2)
	assert.Equal(t, EventMovieUpdated, recent[0].Type)
	assert.Equal(t, EventMovieCreated, recent[1].Type)

	assert.Len(t, bus.Recent(1), 1)
}

func TestDoubleStartFails(t *testing.T) {
	bus := newTestBus(t)
	assert.NoError(t, bus.Start(context.Background()))
	assert.Error(t, bus.Start(context.Background()))
}
