package websocket

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// registerAndSubscribe waits out the async registration handoff before
// subscribing.
func registerAndSubscribe(t *testing.T, m *Manager, client *Client, topic string) {
	t.Helper()
	m.Register <- client
	assert.Eventually(t, func() bool {
		m.Subscribe(client.ID, topic)
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		return m.topics[topic][client.ID] != nil
	}, time.Second, 5*time.Millisecond)
}

func TestBroadcastReachesTopicSubscribers(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	sub := NewClient("sub", nil)
	other := NewClient("other", nil)
	registerAndSubscribe(t, m, sub, "comments")
	registerAndSubscribe(t, m, other, "replies/c1")

	m.Broadcast("comments", []byte(`{"kind":"comments"}`))

	select {
	case msg := <-sub.Send:
		assert.JSONEq(t, `{"kind":"comments"}`, string(msg))
	case <-time.After(time.Second):
		t.Fatal("subscriber never received the broadcast")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("client on another topic received %s", msg)
	default:
	}
}

func TestTopicHooksFireOnFirstAndLastSubscriber(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	firsts := 0
	lasts := 0

	m := NewManager()
	m.SetTopicHooks(
		func(topic string) {
			mu.Lock()
			firsts++
			mu.Unlock()
		},
		func(topic string) {
			mu.Lock()
			lasts++
			mu.Unlock()
		},
	)
	m.Start(ctx)

	a := NewClient("a", nil)
	b := NewClient("b", nil)
	registerAndSubscribe(t, m, a, "comments")
	registerAndSubscribe(t, m, b, "comments")

	mu.Lock()
	assert.Equal(t, 1, firsts)
	mu.Unlock()

	// The upstream feed stays up until the last subscriber leaves.
	m.Unsubscribe("a", "comments")
	mu.Lock()
	assert.Equal(t, 0, lasts)
	mu.Unlock()

	m.Unsubscribe("b", "comments")
	mu.Lock()
	assert.Equal(t, 1, lasts)
	mu.Unlock()

	// Resubscribing restarts the feed.
	registerAndSubscribe(t, m, a, "comments")
	mu.Lock()
	assert.Equal(t, 2, firsts)
	mu.Unlock()
}

func TestUnregisterFiresLastSubscriberHook(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var emptied []string

	m := NewManager()
	m.SetTopicHooks(func(topic string) {}, func(topic string) {
		mu.Lock()
		emptied = append(emptied, topic)
		mu.Unlock()
	})
	m.Start(ctx)

	client := NewClient("a", nil)
	registerAndSubscribe(t, m, client, "comments")
	registerAndSubscribe(t, m, client, "replies/c1")

	m.Unregister <- client

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(emptied) == 2
	}, time.Second, 5*time.Millisecond)
	assert.ElementsMatch(t, []string{"comments", "replies/c1"}, emptied)

	// The client's send channel is closed on removal.
	_, open := <-client.Send
	assert.False(t, open)
}

func TestConcurrentBroadcastsDropSlowClientsSafely(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	// Clients on both topics with full send buffers force every broadcast
	// down the drop path; two topic pumps racing must never hit a closed
	// channel.
	clients := make([]*Client, 0, 64)
	for i := 0; i < 64; i++ {
		client := NewClient(fmt.Sprintf("c%d", i), nil)
		registerAndSubscribe(t, m, client, "comments")
		registerAndSubscribe(t, m, client, "replies/k1")
		for len(client.Send) < cap(client.Send) {
			client.Send <- []byte("backlog")
		}
		clients = append(clients, client)
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		m.Broadcast("comments", []byte("snapshot"))
	}()
	go func() {
		defer wg.Done()
		m.Broadcast("replies/k1", []byte("snapshot"))
	}()
	wg.Wait()

	m.mutex.RLock()
	defer m.mutex.RUnlock()
	for _, client := range clients {
		assert.NotContains(t, m.clients, client.ID)
	}
}

func TestTopicHooksAlternateUnderContention(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string

	m := NewManager()
	m.SetTopicHooks(
		func(topic string) {
			mu.Lock()
			events = append(events, "first")
			mu.Unlock()
		},
		func(topic string) {
			mu.Lock()
			events = append(events, "last")
			mu.Unlock()
		},
	)
	m.Start(ctx)

	a := NewClient("a", nil)
	b := NewClient("b", nil)
	m.Register <- a
	m.Register <- b
	assert.Eventually(t, func() bool {
		m.mutex.RLock()
		defer m.mutex.RUnlock()
		return len(m.clients) == 2
	}, time.Second, 5*time.Millisecond)

	var wg sync.WaitGroup
	for _, id := range []string{"a", "b"} {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				m.Subscribe(id, "comments")
				m.Unsubscribe(id, "comments")
			}
		}(id)
	}
	wg.Wait()

	// Hook order must mirror the topic map's transitions: a stream is
	// never stopped while a fresh subscriber believes it is running.
	mu.Lock()
	defer mu.Unlock()
	assert.NotEmpty(t, events)
	want := "first"
	for i, event := range events {
		assert.Equalf(t, want, event, "event %d out of order", i)
		if want == "first" {
			want = "last"
		} else {
			want = "first"
		}
	}
	assert.Equal(t, "first", want)
}

func TestBroadcastDropsSlowClient(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := NewManager()
	m.Start(ctx)

	client := NewClient("slow", nil)
	registerAndSubscribe(t, m, client, "comments")

	// Nothing drains Send; once the buffer is full the client is dropped
	// instead of stalling the fanout.
	for i := 0; i < cap(client.Send)+1; i++ {
		m.Broadcast("comments", []byte("snapshot"))
	}

	m.mutex.RLock()
	_, registered := m.clients["slow"]
	m.mutex.RUnlock()
	assert.False(t, registered)
}
