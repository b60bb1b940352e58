package event

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modconsole.com/internal/model"
)

func TestPublishDeliversToEverySubscriber(t *testing.T) {
	bus := NewBus(8)
	defer bus.Shutdown()

	got := make(chan Event, 1)
	bus.Subscribe("record.banned", func(ctx context.Context, ev Event) error {
		return errors.New("ignored")
	})
	bus.Subscribe("record.banned", func(ctx context.Context, ev Event) error {
		got <- ev
		return nil
	})
	assert.Equal(t, 2, bus.SubscriberCount("record.banned"))

	require.True(t, bus.Publish(Event{Type: "record.banned", Action: model.ModerationAction{RecordID: 42}}))

	select {
	case ev := <-got:
		assert.Equal(t, 42, ev.Action.RecordID)
		assert.False(t, ev.At.IsZero())
	case <-time.After(2 * time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestShutdownDrainsQueueAndRejectsLateEvents(t *testing.T) {
	bus := NewBus(16)
	var mu sync.Mutex
	var seen []int
	bus.Subscribe("x", func(ctx context.Context, ev Event) error {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, ev.Action.RecordID)
		return nil
	})

	for i := 1; i <= 5; i++ {
		bus.Publish(Event{Type: "x", Action: model.ModerationAction{RecordID: i}})
	}
	bus.Shutdown()
	bus.Shutdown()

	assert.Equal(t, []int{1, 2, 3, 4, 5}, seen)
	assert.False(t, bus.Publish(Event{Type: "x"}))
	assert.EqualValues(t, 1, bus.Dropped())
}

func TestFullQueueDrops(t *testing.T) {
	bus := NewBus(1)
	release := make(chan struct{})
	started := make(chan struct{}, 1)
	bus.Subscribe("slow", func(ctx context.Context, ev Event) error {
		started <- struct{}{}
		<-release
		return nil
	})

	require.True(t, bus.Publish(Event{Type: "slow"}))
	<-started
	require.True(t, bus.Publish(Event{Type: "slow"}))
	assert.False(t, bus.Publish(Event{Type: "slow"}))
	assert.EqualValues(t, 1, bus.Dropped())

	close(release)
	bus.Shutdown()
}

func TestHandlerPanicDoesNotStopBus(t *testing.T) {
	bus := NewBus(4)
	done := make(chan struct{})
	bus.Subscribe("p", func(ctx context.Context, ev Event) error {
		if ev.Action.RecordID == 1 {
			panic("boom")
		}
		close(done)
		return nil
	})

	bus.Publish(Event{Type: "p", Action: model.ModerationAction{RecordID: 1}})
	bus.Publish(Event{Type: "p", Action: model.ModerationAction{RecordID: 2}})

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("bus stopped after a handler panic")
	}
	bus.Shutdown()
}
