package broadcast

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Event types and actions carried over the notification channel
const (
	EventConnected     = "connected"
	EventArticleChange = "article_change"

	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
	ActionReordered = "reordered"
)

// Event is the fixed JSON shape delivered to subscribers. Events are
// invalidation signals, not a payload of truth: receivers re-fetch state.
type Event struct {
	Type      string    `json:"type"`
	Action    string    `json:"action,omitempty"`
	ArticleID string    `json:"article_id,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Subscriber is a registered receiver handle
type Subscriber struct {
	id uint64
	ch chan Event
	b  *Broadcaster
}

// Events returns the receive channel. Delivery is FIFO per subscriber.
func (s *Subscriber) Events() <-chan Event {
	return s.ch
}

// Unsubscribe removes the receiver from the broadcaster and closes its channel
func (s *Subscriber) Unsubscribe() {
	s.b.remove(s.id)
}

// Broadcaster fans out article mutation events to every subscribed
// receiver. Delivery is best-effort and at-most-once: a subscriber whose
// queue is full is dropped rather than blocked on, so a slow receiver
// never stalls the write path. There is no persistence or replay.
//
// The broadcaster is constructed once per process and injected; the
// subscriber set is in-memory only and not shared across instances.
type Broadcaster struct {
	mu      sync.Mutex
	subs    map[uint64]*Subscriber
	nextID  uint64
	bufSize int
	closed  bool
	log     zerolog.Logger
}

// New creates a broadcaster with the given per-subscriber queue depth
func New(bufSize int, log zerolog.Logger) *Broadcaster {
	if bufSize < 1 {
		bufSize = 1
	}
	return &Broadcaster{
		subs:    make(map[uint64]*Subscriber),
		bufSize: bufSize,
		log:     log.With().Str("component", "broadcast").Logger(),
	}
}

// Subscribe registers a new receiver and immediately queues a connected
// acknowledgement for it.
func (b *Broadcaster) Subscribe() *Subscriber {
	b.mu.Lock()
	defer b.mu.Unlock()

	sub := &Subscriber{
		id: b.nextID,
		ch: make(chan Event, b.bufSize),
		b:  b,
	}
	b.nextID++

	if b.closed {
		close(sub.ch)
		return sub
	}

	b.subs[sub.id] = sub
	sub.ch <- Event{Type: EventConnected, Timestamp: time.Now()}
	return sub
}

// Publish delivers the event to every currently subscribed receiver.
// Subscribers that cannot accept the event are dropped; failures never
// propagate to the caller.
func (b *Broadcaster) Publish(event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for id, sub := range b.subs {
		select {
		case sub.ch <- event:
		default:
			// Receiver is bufSize events behind: drop it instead of blocking
			delete(b.subs, id)
			close(sub.ch)
			b.log.Warn().Uint64("subscriber_id", id).Msg("Dropped slow subscriber")
		}
	}
}

// NotifyArticleChange publishes an article_change event for a mutation
func (b *Broadcaster) NotifyArticleChange(action, articleID string) {
	b.Publish(Event{
		Type:      EventArticleChange,
		Action:    action,
		ArticleID: articleID,
		Timestamp: time.Now(),
	})
}

// SubscriberCount returns the current number of receivers
func (b *Broadcaster) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Shutdown closes every subscriber channel and rejects further publishes
func (b *Broadcaster) Shutdown() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true

	for id, sub := range b.subs {
		delete(b.subs, id)
		close(sub.ch)
	}
	b.log.Info().Msg("Broadcaster shut down")
}

func (b *Broadcaster) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if sub, ok := b.subs[id]; ok {
		delete(b.subs, id)
		close(sub.ch)
	}
}
