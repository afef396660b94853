package app

import (
	"context"

	"gopherblog/internal/model"
	"gopherblog/internal/repository"
)

// Lookups return (nil, nil) when the row does not exist. Writes that hit a
// unique constraint return an error matching repository.ErrDuplicateKey.

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, offset, limit int) ([]model.User, error)
	Update(ctx context.Context, id string, patch repository.UserPatch) (*model.User, error)
	Delete(ctx context.Context, id string) error
}

type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	GetBySlug(ctx context.Context, slug string) (*model.Post, error)
	GetDetail(ctx context.Context, id string) (*model.Post, error)
	GetWithAuthor(ctx context.Context, id string) (*model.Post, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	IDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	List(ctx context.Context, filter repository.PostFilter) ([]model.Post, error)
	Update(ctx context.Context, id string, patch repository.PostPatch) error
	Delete(ctx context.Context, id string) error
}

type CommentStore interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	GetWithAuthor(ctx context.Context, id string) (*model.Comment, error)
	ListByPostID(ctx context.Context, postID string) ([]model.Comment, error)
	PostIDsByAuthor(ctx context.Context, authorID string) ([]string, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
}

type ActivityStore interface {
	Create(ctx context.Context, activity *model.Activity) error
	ListByActorID(ctx context.Context, actorID string, limit int) ([]model.Activity, error)
}

// PostCache holds rendered post details for public reads. Ownership checks
// never consult it.
type PostCache interface {
	GetPost(ctx context.Context, id string) (*model.Post, bool, error)
	SetPost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, id string) error
}

type ActivityPublisher interface {
	Publish(ctx context.Context, activity model.Activity) error
}
