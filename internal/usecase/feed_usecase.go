package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"sunstone/internal/domain/entity"
	"sunstone/internal/domain/repository"
	"sunstone/internal/infrastructure/websocket"
	"sunstone/pkg/logger"
)

func badgeFor(roles map[string]string, uid string) string {
	return entity.BadgeLabel(roles[uid])
}

const (
	TopicComments    = "comments"
	topicReplyPrefix = "replies/"
)

// ReplyTopic names the live feed for one comment's replies.
func ReplyTopic(commentID string) string {
	return topicReplyPrefix + commentID
}

// FeedEvent is one websocket frame: the full latest snapshot for a topic.
// Last snapshot wins; clients replace, never merge. The snapshot field for
// the frame's topic is always present, as an empty array when the last
// document was deleted, so "clear the list" is an explicit instruction.
type FeedEvent struct {
	Topic    string         `json:"topic"`
	Comments []*CommentView `json:"comments"`
	Replies  []*ReplyView   `json:"replies"`
}

// FeedUseCase bridges Firestore snapshot listeners to websocket topics. One
// upstream listener runs per topic, started when the first client subscribes
// and stopped when the last one leaves, so idle topics hold no Firestore
// listener.
type FeedUseCase struct {
	commentRepo repository.CommentRepository
	roleUseCase *RoleUseCase
	manager     *websocket.Manager

	ctx     context.Context
	mu      sync.Mutex
	streams map[string]func()
}

func NewFeedUseCase(commentRepo repository.CommentRepository, roleUseCase *RoleUseCase, manager *websocket.Manager) *FeedUseCase {
	return &FeedUseCase{
		commentRepo: commentRepo,
		roleUseCase: roleUseCase,
		manager:     manager,
		streams:     make(map[string]func()),
	}
}

// Start wires the topic lifecycle hooks and runs the connection manager.
func (uc *FeedUseCase) Start(ctx context.Context) {
	uc.ctx = ctx
	uc.manager.SetTopicHooks(uc.startStream, uc.stopStream)
	uc.manager.Start(ctx)
}

func (uc *FeedUseCase) startStream(topic string) {
	uc.mu.Lock()
	if _, running := uc.streams[topic]; running {
		uc.mu.Unlock()
		return
	}
	uc.mu.Unlock()

	switch {
	case topic == TopicComments:
		sub, err := uc.commentRepo.SubscribeComments(uc.ctx)
		if err != nil {
			logger.Error("Failed to subscribe to comments: %v", err)
			return
		}
		uc.track(topic, sub.Stop)
		go uc.pumpComments(topic, sub)

	case strings.HasPrefix(topic, topicReplyPrefix):
		commentID := strings.TrimPrefix(topic, topicReplyPrefix)
		if commentID == "" {
			return
		}
		sub, err := uc.commentRepo.SubscribeReplies(uc.ctx, commentID)
		if err != nil {
			logger.Error("Failed to subscribe to replies of %s: %v", commentID, err)
			return
		}
		uc.track(topic, sub.Stop)
		go uc.pumpReplies(topic, sub)

	default:
		logger.Warn("Ignoring subscription to unknown topic %q", topic)
	}
}

func (uc *FeedUseCase) stopStream(topic string) {
	uc.mu.Lock()
	stop, running := uc.streams[topic]
	delete(uc.streams, topic)
	uc.mu.Unlock()

	if running {
		stop()
	}
}

func (uc *FeedUseCase) track(topic string, stop func()) {
	uc.mu.Lock()
	uc.streams[topic] = stop
	uc.mu.Unlock()
}

func (uc *FeedUseCase) pumpComments(topic string, sub repository.CommentSubscription) {
	for comments := range sub.Updates() {
		uids := make([]string, 0, len(comments))
		for _, c := range comments {
			uids = append(uids, c.AuthorID)
		}
		roles := uc.roleUseCase.ResolveMany(uc.ctx, uids)

		views := make([]*CommentView, 0, len(comments))
		for _, c := range comments {
			views = append(views, &CommentView{Comment: c, Badge: badgeFor(roles, c.AuthorID)})
		}

		uc.broadcast(FeedEvent{Topic: topic, Comments: views})
	}
}

func (uc *FeedUseCase) pumpReplies(topic string, sub repository.ReplySubscription) {
	for replies := range sub.Updates() {
		uids := make([]string, 0, len(replies))
		for _, r := range replies {
			uids = append(uids, r.AuthorID)
		}
		roles := uc.roleUseCase.ResolveMany(uc.ctx, uids)

		views := make([]*ReplyView, 0, len(replies))
		for _, r := range replies {
			views = append(views, &ReplyView{Reply: r, Badge: badgeFor(roles, r.AuthorID)})
		}

		uc.broadcast(FeedEvent{Topic: topic, Replies: views})
	}
}

func (uc *FeedUseCase) broadcast(event FeedEvent) {
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Failed to marshal feed event for %s: %v", event.Topic, err)
		return
	}
	uc.manager.Broadcast(event.Topic, payload)
}
