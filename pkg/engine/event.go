package engine

import (
	"sync"
	"time"

	"github.com/germanamz/scorer/pkg/catalog"
)

// EventKind identifies the type of engine event.
type EventKind string

const (
	EventModelsLoaded   EventKind = "models_loaded"
	EventScoreStarted   EventKind = "score_started"
	EventScoreSucceeded EventKind = "score_succeeded"
	EventScoreFailed    EventKind = "score_failed"
)

// Event is an immutable notification of engine activity. Data holds a
// ModelList for EventModelsLoaded, a scoring.Result for EventScoreSucceeded
// and the error for EventScoreFailed.
type Event struct {
	Kind      EventKind
	Provider  catalog.Provider
	Model     string
	Timestamp time.Time
	Data      any
}

// Subscription receives events from an EventBus.
type Subscription struct {
	C  <-chan Event
	ch chan Event
}

// EventBus fans out events to all active subscribers. It is safe for
// concurrent use.
type EventBus struct {
	mu   sync.RWMutex
	subs map[*Subscription]struct{}
}

// NewEventBus creates an EventBus ready for use.
func NewEventBus() *EventBus {
	return &EventBus{
		subs: make(map[*Subscription]struct{}),
	}
}

// Subscribe creates a new subscription with the given channel buffer size.
// The caller should read from sub.C and eventually call Unsubscribe.
func (b *EventBus) Subscribe(bufSize int) *Subscription {
	ch := make(chan Event, bufSize)
	sub := &Subscription{C: ch, ch: ch}

	b.mu.Lock()
	b.subs[sub] = struct{}{}
	b.mu.Unlock()

	return sub
}

// Unsubscribe removes the subscription and closes its channel.
func (b *EventBus) Unsubscribe(sub *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subs[sub]; ok {
		delete(b.subs, sub)
		close(sub.ch)
	}
}

// Publish sends an event to all subscribers. A subscriber whose buffer is
// full misses the event; scoring never waits on a slow consumer.
func (b *EventBus) Publish(e Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs {
		select {
		case sub.ch <- e:
		default:
		}
	}
}
