package watch_test

import (
	"testing"
	"time"

	"github.com/Mubina-Mulla/Pigmi/internal/watch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_PublishReachesAllSubscribers(t *testing.T) {
	b := watch.NewBroker()

	ch1, cancel1 := b.Subscribe()
	defer cancel1()
	ch2, cancel2 := b.Subscribe()
	defer cancel2()

	b.Publish(watch.Path("customers", "ACC1700000000000042"), watch.OpUpdate)

	for _, ch := range []<-chan watch.Event{ch1, ch2} {
		select {
		case ev := <-ch:
			assert.Equal(t, "customers/ACC1700000000000042", ev.Path)
			assert.Equal(t, watch.OpUpdate, ev.Op)
			assert.NotZero(t, ev.Timestamp)
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for event")
		}
	}
}

func TestBroker_CancelReleasesSubscriber(t *testing.T) {
	b := watch.NewBroker()

	ch, cancel := b.Subscribe()
	require.Equal(t, 1, b.SubscriberCount())

	cancel()
	assert.Equal(t, 0, b.SubscriberCount())

	// Channel is closed after cancel.
	_, open := <-ch
	assert.False(t, open)

	// Double cancel is a no-op.
	cancel()

	// Publishing after cancel must not panic or deliver.
	b.Publish("agents/ramesh", watch.OpDelete)
}

func TestBroker_SlowSubscriberDoesNotBlockPublish(t *testing.T) {
	b := watch.NewBroker()

	_, cancel := b.Subscribe()
	defer cancel()

	done := make(chan struct{})
	go func() {
		// Overflow the subscriber buffer without anyone draining it.
		for i := 0; i < 200; i++ {
			b.Publish("customers/ACC1700000000000001", watch.OpUpdate)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestPath(t *testing.T) {
	assert.Equal(t, "transactions/ACC1/TXN1", watch.Path("transactions", "ACC1", "TXN1"))
}
