package app

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"gopherblog/internal/model"
	"gopherblog/internal/pkg/slug"
	"gopherblog/internal/pkg/validate"
	"gopherblog/internal/repository"
)

const (
	minTitleLength   = 3
	maxTitleLength   = 255
	minContentLength = 10
	excerptLength    = 200
	fallbackSlug     = "post"
)

type PostService struct {
	posts    PostStore
	cache    cachedPosts
	activity *ActivityLog
	now      func() time.Time
}

type CreatePostInput struct {
	Title     string
	Content   string
	Published bool
}

type UpdatePostInput struct {
	Title     *string
	Content   *string
	Published *bool
}

type ListPostsInput struct {
	Skip      int
	Take      int
	Published *bool
	AuthorID  string
}

func NewPostService(posts PostStore, cache PostCache, activity *ActivityLog, logger *slog.Logger) *PostService {
	return &PostService{
		posts:    posts,
		cache:    newCachedPosts(cache, logger),
		activity: activity,
		now:      time.Now,
	}
}

func (s *PostService) CreatePost(ctx context.Context, authorID string, input CreatePostInput) (*model.Post, error) {
	if err := checkTitle(input.Title); err != nil {
		return nil, err
	}
	if !validate.Length(input.Content, minContentLength, math.MaxInt) {
		return nil, ErrInvalidContent
	}

	postSlug, err := s.uniqueSlug(ctx, input.Title)
	if err != nil {
		return nil, err
	}

	post := &model.Post{
		Title:     input.Title,
		Content:   input.Content,
		Slug:      postSlug,
		Published: input.Published,
		AuthorID:  authorID,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrSlugExists.with(err)
		}
		return nil, err
	}

	s.activity.Record(ctx, model.ActionPostCreated, authorID, "post", post.ID)
	return s.loadWithAuthor(ctx, post.ID)
}

// GetPostByID returns the post with its author and comments, newest comment first.
func (s *PostService) GetPostByID(ctx context.Context, id string) (*model.Post, error) {
	if cached, ok := s.cache.get(ctx, id); ok {
		return cached, nil
	}

	post, err := s.posts.GetDetail(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}

	s.cache.set(ctx, post)
	return post, nil
}

func (s *PostService) GetPostBySlug(ctx context.Context, postSlug string) (*model.Post, error) {
	post, err := s.posts.GetBySlug(ctx, postSlug)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

// GetAllPosts lists posts newest first, with author and comment count.
func (s *PostService) GetAllPosts(ctx context.Context, input ListPostsInput) ([]model.Post, error) {
	skip, take := normalizePage(input.Skip, input.Take)
	posts, err := s.posts.List(ctx, repository.PostFilter{
		Offset:    skip,
		Limit:     take,
		Published: input.Published,
		AuthorID:  input.AuthorID,
	})
	if err != nil {
		return nil, err
	}

	for i := range posts {
		posts[i].Excerpt = slug.Truncate(posts[i].Content, excerptLength)
		if posts[i].CommentCount == nil {
			var zero int64
			posts[i].CommentCount = &zero
		}
	}
	return posts, nil
}

func (s *PostService) GetPostsByAuthor(ctx context.Context, authorID string, input ListPostsInput) ([]model.Post, error) {
	input.AuthorID = authorID
	return s.GetAllPosts(ctx, input)
}

// UpdatePost applies the patch when requesterID owns the post. A new title
// recomputes the slug without a collision lookup; a clash with another post
// is reported by the store as a conflict.
func (s *PostService) UpdatePost(ctx context.Context, id, requesterID string, input UpdatePostInput) (*model.Post, error) {
	if input.Title != nil {
		if err := checkTitle(*input.Title); err != nil {
			return nil, err
		}
	}
	if input.Content != nil && !validate.Length(*input.Content, minContentLength, math.MaxInt) {
		return nil, ErrInvalidContent
	}

	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != requesterID {
		return nil, ErrPostUpdateForbidden
	}

	patch := repository.PostPatch{
		Title:     input.Title,
		Content:   input.Content,
		Published: input.Published,
	}
	if input.Title != nil {
		newSlug := slugFor(*input.Title)
		patch.Slug = &newSlug
	}

	if err := s.posts.Update(ctx, id, patch); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrSlugExists.with(err)
		}
		return nil, err
	}
	s.cache.evict(ctx, id)

	s.activity.Record(ctx, model.ActionPostUpdated, requesterID, "post", id)
	return s.loadWithAuthor(ctx, id)
}

func (s *PostService) DeletePost(ctx context.Context, id, requesterID string) (*DeleteResult, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	if post.AuthorID != requesterID {
		return nil, ErrPostDeleteForbidden
	}

	if err := s.posts.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.cache.evict(ctx, id)

	s.activity.Record(ctx, model.ActionPostDeleted, requesterID, "post", id)
	return &DeleteResult{Message: "Post deleted successfully", ID: id}, nil
}

// uniqueSlug derives the slug from title and, if it is taken, makes one
// suffixed attempt with the current timestamp.
func (s *PostService) uniqueSlug(ctx context.Context, title string) (string, error) {
	base := slugFor(title)
	taken, err := s.posts.SlugExists(ctx, base)
	if err != nil {
		return "", err
	}
	if !taken {
		return base, nil
	}
	return slug.WithSuffix(base, s.now()), nil
}

func (s *PostService) loadWithAuthor(ctx context.Context, id string) (*model.Post, error) {
	post, err := s.posts.GetWithAuthor(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func slugFor(title string) string {
	if s := slug.Make(title); s != "" {
		return s
	}
	return fallbackSlug
}

func checkTitle(title string) error {
	if !validate.Length(title, minTitleLength, maxTitleLength) {
		if utf8.RuneCountInString(strings.TrimSpace(title)) > maxTitleLength {
			return ErrTitleTooLong
		}
		return ErrInvalidTitle
	}
	return nil
}
