// Package watch is an in-process change-notification broker. Services publish
// path-shaped events after successful writes and dashboard sessions subscribe
// to stream them out over SSE.
package watch

import (
	"strings"
	"sync"
	"time"
)

// Event describes one committed change. Path follows the collection layout,
// e.g. "customers/ACC1700000000000042" or "agents/ramesh".
type Event struct {
	Path      string `json:"path"`
	Op        string `json:"op"` // create, update, delete
	Timestamp int64  `json:"timestamp"`
}

const (
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// subscriberBuffer bounds each subscriber channel. A subscriber that falls
// this far behind starts losing events rather than blocking writers.
const subscriberBuffer = 64

// Broker fans published events out to all current subscribers.
type Broker struct {
	mu   sync.RWMutex
	subs map[int]chan Event
	next int
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[int]chan Event)}
}

// Subscribe registers a listener. The returned cancel func releases the
// subscription and closes the channel; it is safe to call more than once.
func (b *Broker) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	id := b.next
	b.next++
	ch := make(chan Event, subscriberBuffer)
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Publish delivers an event to every subscriber. Delivery is best effort;
// a full subscriber channel drops the event for that subscriber only.
func (b *Broker) Publish(path, op string) {
	ev := Event{Path: path, Op: op, Timestamp: time.Now().UnixMilli()}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}

// SubscriberCount reports the number of active subscriptions.
func (b *Broker) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

// Path joins collection segments into an event path.
func Path(segments ...string) string {
	return strings.Join(segments, "/")
}
