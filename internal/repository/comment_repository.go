package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gopherblog/internal/model"
)

type CommentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	if err := r.db.WithContext(ctx).Omit("Author").Create(comment).Error; err != nil {
		return wrapWriteError("create comment", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	return r.first(r.db.WithContext(ctx), id)
}

func (r *CommentRepository) GetWithAuthor(ctx context.Context, id string) (*model.Comment, error) {
	return r.first(r.db.WithContext(ctx).Preload("Author", selectAuthor), id)
}

func (r *CommentRepository) ListByPostID(ctx context.Context, postID string) ([]model.Comment, error) {
	comments := []model.Comment{}
	err := r.db.WithContext(ctx).
		Preload("Author", selectAuthor).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments failed: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) PostIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("author_id = ?", authorID).Distinct().Pluck("post_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list commented post ids failed: %w", err)
	}
	return ids, nil
}

func (r *CommentRepository) UpdateContent(ctx context.Context, id, content string) error {
	if err := r.db.WithContext(ctx).Model(&model.Comment{ID: id}).Update("content", content).Error; err != nil {
		return wrapWriteError("update comment", err)
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Comment{}).Error; err != nil {
		return fmt.Errorf("delete comment failed: %w", err)
	}
	return nil
}

func (r *CommentRepository) first(q *gorm.DB, id string) (*model.Comment, error) {
	var comment model.Comment
	if err := q.Where("id = ?", id).First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get comment failed: %w", err)
	}
	return &comment, nil
}
