package usecase

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"sunstone/internal/domain/entity"
	"sunstone/internal/domain/repository"
	"sunstone/internal/infrastructure/websocket"
)

type fakeSubscription[T any] struct {
	updates  chan []T
	stopOnce sync.Once
	stopped  chan struct{}
}

func newFakeSubscription[T any]() *fakeSubscription[T] {
	return &fakeSubscription[T]{
		updates: make(chan []T, 1),
		stopped: make(chan struct{}),
	}
}

func (s *fakeSubscription[T]) Updates() <-chan []T { return s.updates }

func (s *fakeSubscription[T]) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopped)
		close(s.updates)
	})
}

// feedRepo is a fakeCommentRepo with channel-backed subscriptions.
type feedRepo struct {
	*fakeCommentRepo
	mu          sync.Mutex
	commentSubs []*fakeSubscription[*entity.Comment]
	replySubs   map[string]*fakeSubscription[*entity.Reply]
}

func newFeedRepo() *feedRepo {
	return &feedRepo{
		fakeCommentRepo: newFakeCommentRepo(),
		replySubs:       make(map[string]*fakeSubscription[*entity.Reply]),
	}
}

func (r *feedRepo) SubscribeComments(ctx context.Context) (repository.CommentSubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub := newFakeSubscription[*entity.Comment]()
	r.commentSubs = append(r.commentSubs, sub)
	return sub, nil
}

func (r *feedRepo) SubscribeReplies(ctx context.Context, commentID string) (repository.ReplySubscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub := newFakeSubscription[*entity.Reply]()
	r.replySubs[commentID] = sub
	return sub, nil
}

func (r *feedRepo) commentSub(i int) *fakeSubscription[*entity.Comment] {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i >= len(r.commentSubs) {
		return nil
	}
	return r.commentSubs[i]
}

func startFeed(t *testing.T, repo *feedRepo) (*FeedUseCase, *websocket.Manager, context.CancelFunc) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())

	manager := websocket.NewManager()
	roleUC := NewRoleUseCase(&fakeRoleRepo{roles: map[string]string{"alice": entity.RoleWebDev}})
	feed := NewFeedUseCase(repo, roleUC, manager)
	feed.Start(ctx)
	return feed, manager, cancel
}

// connect registers a client and keeps subscribing until the upstream
// stream comes up, covering the async registration handoff.
func connect(t *testing.T, m *websocket.Manager, id, topic string, started func() bool) *websocket.Client {
	t.Helper()
	client := websocket.NewClient(id, nil)
	m.Register <- client
	assert.Eventually(t, func() bool {
		m.Subscribe(client.ID, topic)
		return started()
	}, time.Second, 5*time.Millisecond)
	return client
}

func TestFeedStartsStreamOnFirstSubscriber(t *testing.T) {
	repo := newFeedRepo()
	_, manager, cancel := startFeed(t, repo)
	defer cancel()

	client := connect(t, manager, "c1", TopicComments, func() bool {
		return repo.commentSub(0) != nil
	})

	// A snapshot flows through as a badge-decorated feed event.
	repo.commentSub(0).updates <- []*entity.Comment{
		{ID: "k1", Text: "hello", AuthorID: "alice"},
		{ID: "k2", Text: "hi", AuthorID: "bob"},
	}

	select {
	case frame := <-client.Send:
		var event FeedEvent
		assert.NoError(t, json.Unmarshal(frame, &event))
		assert.Equal(t, TopicComments, event.Topic)
		assert.Len(t, event.Comments, 2)
		assert.Equal(t, "Web Dev", event.Comments[0].Badge)
		assert.Equal(t, "", event.Comments[1].Badge)
	case <-time.After(time.Second):
		t.Fatal("no feed event received")
	}
}

func TestFeedEmptySnapshotClearsList(t *testing.T) {
	repo := newFeedRepo()
	_, manager, cancel := startFeed(t, repo)
	defer cancel()

	client := connect(t, manager, "c1", TopicComments, func() bool {
		return repo.commentSub(0) != nil
	})

	// Deleting the last comment yields an empty snapshot; the frame must
	// carry an explicit empty array, not a missing field.
	repo.commentSub(0).updates <- []*entity.Comment{}

	select {
	case frame := <-client.Send:
		assert.Contains(t, string(frame), `"comments":[]`)

		var event FeedEvent
		assert.NoError(t, json.Unmarshal(frame, &event))
		assert.NotNil(t, event.Comments)
		assert.Len(t, event.Comments, 0)
	case <-time.After(time.Second):
		t.Fatal("no feed event received")
	}
}

func TestFeedStopsStreamWithLastSubscriber(t *testing.T) {
	repo := newFeedRepo()
	_, manager, cancel := startFeed(t, repo)
	defer cancel()

	connect(t, manager, "c1", TopicComments, func() bool {
		return repo.commentSub(0) != nil
	})

	manager.Unsubscribe("c1", TopicComments)

	select {
	case <-repo.commentSub(0).stopped:
	case <-time.After(time.Second):
		t.Fatal("upstream subscription was not stopped")
	}
}

func TestFeedReplyTopicRouting(t *testing.T) {
	repo := newFeedRepo()
	_, manager, cancel := startFeed(t, repo)
	defer cancel()

	client := connect(t, manager, "c1", ReplyTopic("k1"), func() bool {
		repo.mu.Lock()
		defer repo.mu.Unlock()
		return repo.replySubs["k1"] != nil
	})

	repo.mu.Lock()
	sub := repo.replySubs["k1"]
	repo.mu.Unlock()
	sub.updates <- []*entity.Reply{{ID: "r1", CommentID: "k1", Text: "welcome", AuthorID: "alice"}}

	select {
	case frame := <-client.Send:
		var event FeedEvent
		assert.NoError(t, json.Unmarshal(frame, &event))
		assert.Equal(t, "replies/k1", event.Topic)
		assert.Len(t, event.Replies, 1)
		assert.Equal(t, "Web Dev", event.Replies[0].Badge)
	case <-time.After(time.Second):
		t.Fatal("no feed event received")
	}
}
