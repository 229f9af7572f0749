package usecase

import (
	"context"
	"strings"

	"sunstone/internal/domain/entity"
	"sunstone/internal/domain/repository"
	"sunstone/pkg/errors"
	"sunstone/pkg/logger"
)

type CommentUseCase struct {
	commentRepo  repository.CommentRepository
	roleUseCase  *RoleUseCase
	firebaseAuth FirebaseAuthClient
}

func NewCommentUseCase(commentRepo repository.CommentRepository, roleUseCase *RoleUseCase, firebaseAuth FirebaseAuthClient) *CommentUseCase {
	return &CommentUseCase{
		commentRepo:  commentRepo,
		roleUseCase:  roleUseCase,
		firebaseAuth: firebaseAuth,
	}
}

// CommentView is a comment decorated with the author's badge, resolved in
// one batch for the whole page rather than per rendered row.
type CommentView struct {
	*entity.Comment
	Badge string `json:"badge,omitempty"`
}

type ReplyView struct {
	*entity.Reply
	Badge string `json:"badge,omitempty"`
}

func (uc *CommentUseCase) ListComments(ctx context.Context, limit, offset int) ([]*CommentView, int64, error) {
	comments, total, err := uc.commentRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	uids := make([]string, 0, len(comments))
	for _, c := range comments {
		uids = append(uids, c.AuthorID)
	}
	roles := uc.roleUseCase.ResolveMany(ctx, uids)

	views := make([]*CommentView, 0, len(comments))
	for _, c := range comments {
		views = append(views, &CommentView{
			Comment: c,
			Badge:   entity.BadgeLabel(roles[c.AuthorID]),
		})
	}

	return views, total, nil
}

func (uc *CommentUseCase) PostComment(ctx context.Context, uid, text string) (*entity.Comment, error) {
	if uid == "" {
		return nil, errors.Unauthorized("Sign in to comment", nil)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.BadRequest("Comment text must not be empty", nil)
	}

	identity, err := uc.firebaseAuth.GetIdentity(ctx, uid)
	if err != nil {
		return nil, errors.Internal("Failed to resolve comment author", err)
	}

	comment := &entity.Comment{
		Text:        text,
		AuthorName:  identity.DisplayName,
		AuthorPhoto: identity.PhotoURL,
		AuthorID:    uid,
	}

	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes a comment and its replies. Only the original author
// may delete; anyone else leaves the store untouched.
func (uc *CommentUseCase) DeleteComment(ctx context.Context, uid, commentID string) error {
	comment, err := uc.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != uid {
		return errors.Forbidden("Only the author can delete a comment", nil)
	}

	// Replies first; Firestore leaves subcollections orphaned otherwise.
	if err := uc.commentRepo.DeleteAllReplies(ctx, commentID); err != nil {
		return err
	}

	if err := uc.commentRepo.Delete(ctx, commentID); err != nil {
		return err
	}

	logger.Info("Comment %s deleted by author %s", commentID, uid)
	return nil
}

func (uc *CommentUseCase) ListReplies(ctx context.Context, commentID string) ([]*ReplyView, error) {
	if _, err := uc.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}

	replies, err := uc.commentRepo.ListReplies(ctx, commentID)
	if err != nil {
		return nil, err
	}

	uids := make([]string, 0, len(replies))
	for _, r := range replies {
		uids = append(uids, r.AuthorID)
	}
	roles := uc.roleUseCase.ResolveMany(ctx, uids)

	views := make([]*ReplyView, 0, len(replies))
	for _, r := range replies {
		views = append(views, &ReplyView{
			Reply: r,
			Badge: entity.BadgeLabel(roles[r.AuthorID]),
		})
	}

	return views, nil
}

func (uc *CommentUseCase) PostReply(ctx context.Context, uid, commentID, text string) (*entity.Reply, error) {
	if uid == "" {
		return nil, errors.Unauthorized("Sign in to reply", nil)
	}
	if strings.TrimSpace(text) == "" {
		return nil, errors.BadRequest("Reply text must not be empty", nil)
	}

	// Replies nest exactly one level under an existing comment.
	if _, err := uc.commentRepo.GetByID(ctx, commentID); err != nil {
		return nil, err
	}

	identity, err := uc.firebaseAuth.GetIdentity(ctx, uid)
	if err != nil {
		return nil, errors.Internal("Failed to resolve reply author", err)
	}

	reply := &entity.Reply{
		CommentID:   commentID,
		Text:        text,
		AuthorName:  identity.DisplayName,
		AuthorPhoto: identity.PhotoURL,
		AuthorID:    uid,
	}

	if err := uc.commentRepo.CreateReply(ctx, reply); err != nil {
		return nil, err
	}

	return reply, nil
}

func (uc *CommentUseCase) DeleteReply(ctx context.Context, uid, commentID, replyID string) error {
	reply, err := uc.commentRepo.GetReplyByID(ctx, commentID, replyID)
	if err != nil {
		return err
	}

	if reply.AuthorID != uid {
		return errors.Forbidden("Only the author can delete a reply", nil)
	}

	return uc.commentRepo.DeleteReply(ctx, commentID, replyID)
}
