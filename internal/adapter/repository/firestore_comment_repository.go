package repository

import (
	"context"
	"sync"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"sunstone/internal/domain/entity"
	"sunstone/internal/domain/repository"
	"sunstone/pkg/errors"
	"sunstone/pkg/logger"
)

type firestoreCommentRepository struct {
	client *firestore.Client
}

func NewFirestoreCommentRepository(client *firestore.Client) repository.CommentRepository {
	return &firestoreCommentRepository{
		client: client,
	}
}

func (r *firestoreCommentRepository) comments() *firestore.CollectionRef {
	return r.client.Collection("comments")
}

func (r *firestoreCommentRepository) replies(commentID string) *firestore.CollectionRef {
	return r.comments().Doc(commentID).Collection("replies")
}

func (r *firestoreCommentRepository) Create(ctx context.Context, comment *entity.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}

	// CreatedAt stays nil so the serverTimestamp tag assigns it on write.
	_, err := r.comments().Doc(comment.ID).Set(ctx, comment)
	if err != nil {
		return errors.Internal("Failed to create comment", err)
	}

	return nil
}

func (r *firestoreCommentRepository) GetByID(ctx context.Context, id string) (*entity.Comment, error) {
	doc, err := r.comments().Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Comment", err)
		}
		return nil, errors.Internal("Failed to get comment", err)
	}

	var comment entity.Comment
	if err := doc.DataTo(&comment); err != nil {
		return nil, errors.Internal("Failed to parse comment data", err)
	}
	comment.ID = doc.Ref.ID

	return &comment, nil
}

func (r *firestoreCommentRepository) List(ctx context.Context, limit, offset int) ([]*entity.Comment, int64, error) {
	query := r.comments().OrderBy("timestamp", firestore.Desc)

	countDocs, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, 0, errors.Internal("Failed to count comments", err)
	}
	total := int64(len(countDocs))

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	iter := query.Documents(ctx)
	var comments []*entity.Comment

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, 0, errors.Internal("Failed to iterate comments", err)
		}

		var comment entity.Comment
		if err := doc.DataTo(&comment); err != nil {
			logger.Warn("Skipping malformed comment document %s: %v", doc.Ref.ID, err)
			continue
		}
		comment.ID = doc.Ref.ID
		comments = append(comments, &comment)
	}

	return comments, total, nil
}

func (r *firestoreCommentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.comments().Doc(id).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete comment", err)
	}

	return nil
}

func (r *firestoreCommentRepository) CreateReply(ctx context.Context, reply *entity.Reply) error {
	if reply.ID == "" {
		reply.ID = uuid.New().String()
	}

	_, err := r.replies(reply.CommentID).Doc(reply.ID).Set(ctx, reply)
	if err != nil {
		return errors.Internal("Failed to create reply", err)
	}

	return nil
}

func (r *firestoreCommentRepository) GetReplyByID(ctx context.Context, commentID, replyID string) (*entity.Reply, error) {
	doc, err := r.replies(commentID).Doc(replyID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, errors.NotFound("Reply", err)
		}
		return nil, errors.Internal("Failed to get reply", err)
	}

	var reply entity.Reply
	if err := doc.DataTo(&reply); err != nil {
		return nil, errors.Internal("Failed to parse reply data", err)
	}
	reply.ID = doc.Ref.ID
	reply.CommentID = commentID

	return &reply, nil
}

func (r *firestoreCommentRepository) ListReplies(ctx context.Context, commentID string) ([]*entity.Reply, error) {
	iter := r.replies(commentID).OrderBy("timestamp", firestore.Desc).Documents(ctx)
	var replies []*entity.Reply

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Internal("Failed to iterate replies", err)
		}

		var reply entity.Reply
		if err := doc.DataTo(&reply); err != nil {
			logger.Warn("Skipping malformed reply document %s: %v", doc.Ref.ID, err)
			continue
		}
		reply.ID = doc.Ref.ID
		reply.CommentID = commentID
		replies = append(replies, &reply)
	}

	return replies, nil
}

func (r *firestoreCommentRepository) DeleteReply(ctx context.Context, commentID, replyID string) error {
	_, err := r.replies(commentID).Doc(replyID).Delete(ctx)
	if err != nil {
		return errors.Internal("Failed to delete reply", err)
	}

	return nil
}

func (r *firestoreCommentRepository) DeleteAllReplies(ctx context.Context, commentID string) error {
	iter := r.replies(commentID).Documents(ctx)

	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return errors.Internal("Failed to iterate replies for delete", err)
		}

		if _, err := doc.Ref.Delete(ctx); err != nil {
			return errors.Internal("Failed to delete reply", err)
		}
	}

	return nil
}

// snapshotSubscription carries one live query's updates. The channel holds
// at most one pending snapshot; a newer snapshot replaces an unconsumed one,
// so a slow consumer always sees the latest state.
type snapshotSubscription[T any] struct {
	updates  chan []T
	cancel   context.CancelFunc
	stopOnce sync.Once
}

func (s *snapshotSubscription[T]) Updates() <-chan []T {
	return s.updates
}

func (s *snapshotSubscription[T]) Stop() {
	s.stopOnce.Do(s.cancel)
}

func (s *snapshotSubscription[T]) push(items []T) {
	select {
	case s.updates <- items:
	default:
		select {
		case <-s.updates:
		default:
		}
		s.updates <- items
	}
}

func (r *firestoreCommentRepository) SubscribeComments(ctx context.Context) (repository.CommentSubscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := &snapshotSubscription[*entity.Comment]{
		updates: make(chan []*entity.Comment, 1),
		cancel:  cancel,
	}

	snaps := r.comments().OrderBy("timestamp", firestore.Desc).Snapshots(ctx)

	go func() {
		defer close(sub.updates)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Error("Comment snapshot stream ended: %v", err)
				}
				return
			}

			var comments []*entity.Comment
			for {
				doc, err := snap.Documents.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					logger.Error("Failed to read comment snapshot: %v", err)
					return
				}

				var comment entity.Comment
				if err := doc.DataTo(&comment); err != nil {
					logger.Warn("Skipping malformed comment document %s: %v", doc.Ref.ID, err)
					continue
				}
				comment.ID = doc.Ref.ID
				comments = append(comments, &comment)
			}

			sub.push(comments)
		}
	}()

	return sub, nil
}

func (r *firestoreCommentRepository) SubscribeReplies(ctx context.Context, commentID string) (repository.ReplySubscription, error) {
	ctx, cancel := context.WithCancel(ctx)
	sub := &snapshotSubscription[*entity.Reply]{
		updates: make(chan []*entity.Reply, 1),
		cancel:  cancel,
	}

	snaps := r.replies(commentID).OrderBy("timestamp", firestore.Desc).Snapshots(ctx)

	go func() {
		defer close(sub.updates)
		defer snaps.Stop()

		for {
			snap, err := snaps.Next()
			if err != nil {
				if status.Code(err) != codes.Canceled {
					logger.Error("Reply snapshot stream ended for comment %s: %v", commentID, err)
				}
				return
			}

			var replies []*entity.Reply
			for {
				doc, err := snap.Documents.Next()
				if err == iterator.Done {
					break
				}
				if err != nil {
					logger.Error("Failed to read reply snapshot: %v", err)
					return
				}

				var reply entity.Reply
				if err := doc.DataTo(&reply); err != nil {
					logger.Warn("Skipping malformed reply document %s: %v", doc.Ref.ID, err)
					continue
				}
				reply.ID = doc.Ref.ID
				reply.CommentID = commentID
				replies = append(replies, &reply)
			}

			sub.push(replies)
		}
	}()

	return sub, nil
}
