package broadcast_test

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/broadcast"
)

func newBroadcaster(buf int) *broadcast.Broadcaster {
	return broadcast.New(buf, zerolog.Nop())
}

func receive(t *testing.T, sub *broadcast.Subscriber) broadcast.Event {
	t.Helper()
	select {
	case event, ok := <-sub.Events():
		if !ok {
			t.Fatal("Subscriber channel closed unexpectedly")
		}
		return event
	case <-time.After(time.Second):
		t.Fatal("Timed out waiting for event")
	}
	return broadcast.Event{}
}

func TestSubscribe_DeliversConnectedAck(t *testing.T) {
	b := newBroadcaster(4)
	defer b.Shutdown()

	sub := b.Subscribe()
	event := receive(t, sub)

	if event.Type != broadcast.EventConnected {
		t.Errorf("Expected connected ack, got %q", event.Type)
	}
}

func TestPublish_FansOutToAllSubscribers(t *testing.T) {
	b := newBroadcaster(4)
	defer b.Shutdown()

	sub1 := b.Subscribe()
	sub2 := b.Subscribe()
	receive(t, sub1) // connected acks
	receive(t, sub2)

	b.NotifyArticleChange(broadcast.ActionCreated, "article-1")

	for _, sub := range []*broadcast.Subscriber{sub1, sub2} {
		event := receive(t, sub)
		if event.Type != broadcast.EventArticleChange {
			t.Errorf("Expected article_change, got %q", event.Type)
		}
		if event.Action != broadcast.ActionCreated {
			t.Errorf("Expected created action, got %q", event.Action)
		}
		if event.ArticleID != "article-1" {
			t.Errorf("Expected article-1, got %q", event.ArticleID)
		}
		if event.Timestamp.IsZero() {
			t.Error("Expected event timestamp to be set")
		}
	}
}

func TestPublish_FIFOPerSubscriber(t *testing.T) {
	b := newBroadcaster(8)
	defer b.Shutdown()

	sub := b.Subscribe()
	receive(t, sub)

	actions := []string{
		broadcast.ActionCreated,
		broadcast.ActionUpdated,
		broadcast.ActionReordered,
		broadcast.ActionDeleted,
	}
	for _, action := range actions {
		b.NotifyArticleChange(action, "a")
	}

	for i, want := range actions {
		event := receive(t, sub)
		if event.Action != want {
			t.Errorf("Event %d: expected %q, got %q", i, want, event.Action)
		}
	}
}

func TestUnsubscribe_RemovesReceiver(t *testing.T) {
	b := newBroadcaster(4)
	defer b.Shutdown()

	sub := b.Subscribe()
	if b.SubscriberCount() != 1 {
		t.Fatalf("Expected 1 subscriber, got %d", b.SubscriberCount())
	}

	sub.Unsubscribe()
	if b.SubscriberCount() != 0 {
		t.Errorf("Expected 0 subscribers after unsubscribe, got %d", b.SubscriberCount())
	}

	// Channel is closed so readers drain and stop
	for range sub.Events() {
	}
}

func TestUnsubscribe_Twice(t *testing.T) {
	b := newBroadcaster(4)
	defer b.Shutdown()

	sub := b.Subscribe()
	sub.Unsubscribe()
	sub.Unsubscribe() // must not panic
}

func TestPublish_SlowSubscriberDroppedWithoutBlocking(t *testing.T) {
	b := newBroadcaster(2)
	defer b.Shutdown()

	slow := b.Subscribe() // never reads; connected ack occupies one slot
	live := b.Subscribe()
	receive(t, live)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			b.NotifyArticleChange(broadcast.ActionUpdated, "a")
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Publisher blocked on a slow subscriber")
	}

	if b.SubscriberCount() != 1 {
		t.Errorf("Expected slow subscriber to be dropped, count = %d", b.SubscriberCount())
	}

	// The live subscriber still gets events (some may have been published
	// before it could drain; at least one must arrive)
	event := receive(t, live)
	if event.Type != broadcast.EventArticleChange {
		t.Errorf("Expected article_change for live subscriber, got %q", event.Type)
	}

	// The dropped subscriber's channel ends
	drained := 0
	for range slow.Events() {
		drained++
	}
	if drained > 3 {
		t.Errorf("Expected the slow subscriber to stop receiving after being dropped, drained %d", drained)
	}
}

func TestNoReplayForLateSubscribers(t *testing.T) {
	b := newBroadcaster(4)
	defer b.Shutdown()

	b.NotifyArticleChange(broadcast.ActionCreated, "before")

	sub := b.Subscribe()
	event := receive(t, sub)
	if event.Type != broadcast.EventConnected {
		t.Errorf("Expected only the connected ack, got %q", event.Type)
	}

	select {
	case event := <-sub.Events():
		t.Errorf("Expected no replayed events, got %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestShutdown_ClosesAllSubscribers(t *testing.T) {
	b := newBroadcaster(4)
	sub := b.Subscribe()
	receive(t, sub)

	b.Shutdown()

	if _, open := <-sub.Events(); open {
		t.Error("Expected subscriber channel to close on shutdown")
	}
	if b.SubscriberCount() != 0 {
		t.Errorf("Expected empty subscriber set after shutdown, got %d", b.SubscriberCount())
	}

	// Publishing after shutdown is a no-op, not a panic
	b.NotifyArticleChange(broadcast.ActionUpdated, "a")
	b.Shutdown()
}

func TestConcurrentSubscribePublishUnsubscribe(t *testing.T) {
	b := newBroadcaster(4)
	defer b.Shutdown()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.NotifyArticleChange(broadcast.ActionUpdated, "a")
		}
		close(done)
	}()

	for i := 0; i < 50; i++ {
		sub := b.Subscribe()
		go func(s *broadcast.Subscriber) {
			for range s.Events() {
			}
		}(sub)
		if i%2 == 0 {
			sub.Unsubscribe()
		}
	}

	<-done
}
