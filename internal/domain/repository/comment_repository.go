package repository

import (
	"context"

	"sunstone/internal/domain/entity"
)

// CommentSubscription is a live view of the comment list. Updates delivers
// full snapshots in store order, last snapshot wins; Stop tears the listener
// down and closes the channel. Stop is safe to call more than once.
type CommentSubscription interface {
	Updates() <-chan []*entity.Comment
	Stop()
}

// ReplySubscription is the same contract scoped to one comment's replies.
type ReplySubscription interface {
	Updates() <-chan []*entity.Reply
	Stop()
}

type CommentRepository interface {
	Create(ctx context.Context, comment *entity.Comment) error
	GetByID(ctx context.Context, id string) (*entity.Comment, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Comment, int64, error)
	Delete(ctx context.Context, id string) error

	CreateReply(ctx context.Context, reply *entity.Reply) error
	GetReplyByID(ctx context.Context, commentID, replyID string) (*entity.Reply, error)
	ListReplies(ctx context.Context, commentID string) ([]*entity.Reply, error)
	DeleteReply(ctx context.Context, commentID, replyID string) error
	// DeleteAllReplies removes every reply under a comment. Firestore does
	// not cascade subcollection deletes; callers invoke this before
	// deleting the parent document.
	DeleteAllReplies(ctx context.Context, commentID string) error

	SubscribeComments(ctx context.Context) (CommentSubscription, error)
	SubscribeReplies(ctx context.Context, commentID string) (ReplySubscription, error)
}
