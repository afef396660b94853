package app

import (
	"context"
	"log/slog"
	"math"

	"gopherblog/internal/model"
	"gopherblog/internal/pkg/validate"
)

const minCommentLength = 2

type CommentService struct {
	comments CommentStore
	posts    PostStore
	cache    cachedPosts
	activity *ActivityLog
}

func NewCommentService(comments CommentStore, posts PostStore, cache PostCache, activity *ActivityLog, logger *slog.Logger) *CommentService {
	return &CommentService{
		comments: comments,
		posts:    posts,
		cache:    newCachedPosts(cache, logger),
		activity: activity,
	}
}

func (s *CommentService) CreateComment(ctx context.Context, postID, authorID, content string) (*model.Comment, error) {
	if !validate.Length(content, minCommentLength, math.MaxInt) {
		return nil, ErrInvalidComment
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		Content:  content,
		AuthorID: authorID,
		PostID:   postID,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}
	s.cache.evict(ctx, postID)

	s.activity.Record(ctx, model.ActionCommentCreated, authorID, "comment", comment.ID)
	return s.loadWithAuthor(ctx, comment.ID)
}

// GetCommentsByPost lists comments newest first. An unknown post yields an
// empty list, not an error.
func (s *CommentService) GetCommentsByPost(ctx context.Context, postID string) ([]model.Comment, error) {
	return s.comments.ListByPostID(ctx, postID)
}

func (s *CommentService) UpdateComment(ctx context.Context, id, requesterID, content string) (*model.Comment, error) {
	if !validate.Length(content, minCommentLength, math.MaxInt) {
		return nil, ErrInvalidComment
	}

	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.AuthorID != requesterID {
		return nil, ErrCommentUpdateForbidden
	}

	if err := s.comments.UpdateContent(ctx, id, content); err != nil {
		return nil, err
	}
	s.cache.evict(ctx, comment.PostID)

	s.activity.Record(ctx, model.ActionCommentUpdated, requesterID, "comment", id)
	return s.loadWithAuthor(ctx, id)
}

func (s *CommentService) DeleteComment(ctx context.Context, id, requesterID string) (*DeleteResult, error) {
	comment, err := s.comments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	if comment.AuthorID != requesterID {
		return nil, ErrCommentDeleteForbidden
	}

	if err := s.comments.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.cache.evict(ctx, comment.PostID)

	s.activity.Record(ctx, model.ActionCommentDeleted, requesterID, "comment", id)
	return &DeleteResult{Message: "Comment deleted successfully", ID: id}, nil
}

func (s *CommentService) loadWithAuthor(ctx context.Context, id string) (*model.Comment, error) {
	comment, err := s.comments.GetWithAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	if comment == nil {
		return nil, ErrCommentNotFound
	}
	return comment, nil
}
