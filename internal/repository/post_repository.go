package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"gopherblog/internal/model"
)

type PostPatch struct {
	Title     *string
	Content   *string
	Slug      *string
	Published *bool
}

// PostFilter narrows a post listing. Nil / empty fields do not filter.
type PostFilter struct {
	Offset    int
	Limit     int
	Published *bool
	AuthorID  string
}

type PostRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	if err := r.db.WithContext(ctx).Omit("Author", "Comments").Create(post).Error; err != nil {
		return wrapWriteError("create post", err)
	}
	return nil
}

// GetByID loads the bare row, without joins. Used for existence and ownership checks.
func (r *PostRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	return r.first(r.db.WithContext(ctx), "id = ?", id)
}

func (r *PostRepository) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	return r.first(r.db.WithContext(ctx).Preload("Author", selectAuthor), "slug = ?", slug)
}

func (r *PostRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check post slug failed: %w", err)
	}
	return count > 0, nil
}

// GetDetail loads a post with its author and its comments, newest comment first.
func (r *PostRepository) GetDetail(ctx context.Context, id string) (*model.Post, error) {
	q := r.db.WithContext(ctx).
		Preload("Author", selectAuthor).
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC")
		}).
		Preload("Comments.Author", selectAuthor)
	return r.first(q, "id = ?", id)
}

func (r *PostRepository) GetWithAuthor(ctx context.Context, id string) (*model.Post, error) {
	return r.first(r.db.WithContext(ctx).Preload("Author", selectAuthor), "id = ?", id)
}

// IDsByAuthor returns the ids of every post written by authorID.
func (r *PostRepository) IDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	var ids []string
	if err := r.db.WithContext(ctx).Model(&model.Post{}).Where("author_id = ?", authorID).Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list post ids failed: %w", err)
	}
	return ids, nil
}

func (r *PostRepository) List(ctx context.Context, filter PostFilter) ([]model.Post, error) {
	q := r.db.WithContext(ctx).
		Model(&model.Post{}).
		Select("posts.*, (SELECT COUNT(*) FROM comments WHERE comments.post_id = posts.id) AS comment_count").
		Preload("Author", selectAuthor)
	if filter.Published != nil {
		q = q.Where("posts.published = ?", *filter.Published)
	}
	if filter.AuthorID != "" {
		q = q.Where("posts.author_id = ?", filter.AuthorID)
	}

	var posts []model.Post
	if err := q.Order("posts.created_at DESC").Offset(filter.Offset).Limit(filter.Limit).Find(&posts).Error; err != nil {
		return nil, fmt.Errorf("list posts failed: %w", err)
	}
	return posts, nil
}

func (r *PostRepository) Update(ctx context.Context, id string, patch PostPatch) error {
	fields := map[string]interface{}{}
	if patch.Title != nil {
		fields["title"] = *patch.Title
	}
	if patch.Content != nil {
		fields["content"] = *patch.Content
	}
	if patch.Slug != nil {
		fields["slug"] = *patch.Slug
	}
	if patch.Published != nil {
		fields["published"] = *patch.Published
	}
	if len(fields) == 0 {
		return nil
	}

	if err := r.db.WithContext(ctx).Model(&model.Post{ID: id}).Updates(fields).Error; err != nil {
		return wrapWriteError("update post", err)
	}
	return nil
}

func (r *PostRepository) Delete(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error; err != nil {
		return fmt.Errorf("delete post failed: %w", err)
	}
	return nil
}

func (r *PostRepository) first(q *gorm.DB, query string, arg interface{}) (*model.Post, error) {
	var post model.Post
	if err := q.Where(query, arg).First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get post failed: %w", err)
	}
	return &post, nil
}

func selectAuthor(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "email")
}
