// Package memory is an in-process persistence gateway. It enforces the same
// unique and foreign key rules as the SQL schema, including cascading deletes,
// and is used by the "memory" database driver and by tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"gopherblog/internal/model"
	"gopherblog/internal/repository"
)

var errForeignKey = errors.New("foreign key constraint failed")

type Store struct {
	mu         sync.RWMutex
	seq        uint64
	order      map[string]uint64
	users      map[string]*model.User
	posts      map[string]*model.Post
	comments   map[string]*model.Comment
	activities []model.Activity
}

func New() *Store {
	return &Store{
		order:    make(map[string]uint64),
		users:    make(map[string]*model.User),
		posts:    make(map[string]*model.Post),
		comments: make(map[string]*model.Comment),
	}
}

func (s *Store) Users() *UserStore { return &UserStore{s: s} }

func (s *Store) Posts() *PostStore { return &PostStore{s: s} }

func (s *Store) Comments() *CommentStore { return &CommentStore{s: s} }

func (s *Store) Activities() *ActivityStore { return &ActivityStore{s: s} }

// stamp assigns id and timestamps. Caller holds the write lock.
func (s *Store) stamp(id *string, createdAt, updatedAt *time.Time) {
	if *id == "" {
		*id = uuid.NewString()
	}
	now := time.Now().UTC()
	*createdAt = now
	*updatedAt = now
	s.seq++
	s.order[*id] = s.seq
}

// newerFirst orders by creation time, then insertion order, newest first.
func (s *Store) newerFirst(idA string, a time.Time, idB string, b time.Time) bool {
	if !a.Equal(b) {
		return a.After(b)
	}
	return s.order[idA] > s.order[idB]
}

func (s *Store) authorOf(id string) *model.Author {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return u.Author()
}

// deletePost removes a post and its comments. Caller holds the write lock.
func (s *Store) deletePost(id string) {
	for cid, c := range s.comments {
		if c.PostID == id {
			s.deleteComment(cid)
		}
	}
	delete(s.posts, id)
	delete(s.order, id)
}

// deleteComment removes one comment. Caller holds the write lock.
func (s *Store) deleteComment(id string) {
	delete(s.comments, id)
	delete(s.order, id)
}

type UserStore struct{ s *Store }

func (r *UserStore) Create(ctx context.Context, user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.Email == user.Email {
			return fmt.Errorf("create user failed: %w", repository.ErrDuplicateKey)
		}
	}
	if _, ok := r.s.users[user.ID]; ok && user.ID != "" {
		return fmt.Errorf("create user failed: %w", repository.ErrDuplicateKey)
	}

	r.s.stamp(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r *UserStore) GetByID(ctx context.Context, id string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	out := *u
	return &out, nil
}

func (r *UserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, u := range r.s.users {
		if u.Email == email {
			out := *u
			return &out, nil
		}
	}
	return nil, nil
}

func (r *UserStore) List(ctx context.Context, offset, limit int) ([]model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := make([]model.User, 0, len(r.s.users))
	for _, u := range r.s.users {
		all = append(all, *u)
	}
	sort.Slice(all, func(i, j int) bool {
		return r.s.newerFirst(all[i].ID, all[i].CreatedAt, all[j].ID, all[j].CreatedAt)
	})
	return page(all, offset, limit), nil
}

func (r *UserStore) Update(ctx context.Context, id string, patch repository.UserPatch) (*model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	if patch.Name != nil {
		u.Name = *patch.Name
	}
	if patch.PasswordHash != nil {
		u.PasswordHash = *patch.PasswordHash
	}
	u.UpdatedAt = time.Now().UTC()

	out := *u
	return &out, nil
}

func (r *UserStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for pid, p := range r.s.posts {
		if p.AuthorID == id {
			r.s.deletePost(pid)
		}
	}
	for cid, c := range r.s.comments {
		if c.AuthorID == id {
			r.s.deleteComment(cid)
		}
	}
	delete(r.s.users, id)
	delete(r.s.order, id)
	return nil
}

type PostStore struct{ s *Store }

func (r *PostStore) Create(ctx context.Context, post *model.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[post.AuthorID]; !ok {
		return fmt.Errorf("create post failed: %w", errForeignKey)
	}
	for _, p := range r.s.posts {
		if p.Slug == post.Slug {
			return fmt.Errorf("create post failed: %w", repository.ErrDuplicateKey)
		}
	}

	r.s.stamp(&post.ID, &post.CreatedAt, &post.UpdatedAt)
	stored := *post
	stored.Author = nil
	stored.Comments = nil
	r.s.posts[post.ID] = &stored
	return nil
}

func (r *PostStore) GetByID(ctx context.Context, id string) (*model.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, nil
	}
	out := *p
	return &out, nil
}

func (r *PostStore) GetBySlug(ctx context.Context, slug string) (*model.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.posts {
		if p.Slug == slug {
			out := *p
			out.Author = r.s.authorOf(p.AuthorID)
			return &out, nil
		}
	}
	return nil, nil
}

func (r *PostStore) GetWithAuthor(ctx context.Context, id string) (*model.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, nil
	}
	out := *p
	out.Author = r.s.authorOf(p.AuthorID)
	return &out, nil
}

func (r *PostStore) GetDetail(ctx context.Context, id string) (*model.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, nil
	}
	out := *p
	out.Author = r.s.authorOf(p.AuthorID)
	out.Comments = r.s.commentsOf(id)
	return &out, nil
}

func (r *PostStore) SlugExists(ctx context.Context, slug string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, p := range r.s.posts {
		if p.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *PostStore) IDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	ids := []string{}
	for id, p := range r.s.posts {
		if p.AuthorID == authorID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *PostStore) List(ctx context.Context, filter repository.PostFilter) ([]model.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	counts := make(map[string]int64, len(r.s.posts))
	for _, c := range r.s.comments {
		counts[c.PostID]++
	}

	matched := []model.Post{}
	for _, p := range r.s.posts {
		if filter.Published != nil && p.Published != *filter.Published {
			continue
		}
		if filter.AuthorID != "" && p.AuthorID != filter.AuthorID {
			continue
		}
		out := *p
		out.Author = r.s.authorOf(p.AuthorID)
		count := counts[p.ID]
		out.CommentCount = &count
		matched = append(matched, out)
	}
	sort.Slice(matched, func(i, j int) bool {
		return r.s.newerFirst(matched[i].ID, matched[i].CreatedAt, matched[j].ID, matched[j].CreatedAt)
	})
	return page(matched, filter.Offset, filter.Limit), nil
}

func (r *PostStore) Update(ctx context.Context, id string, patch repository.PostPatch) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil
	}
	if patch.Slug != nil {
		for otherID, other := range r.s.posts {
			if otherID != id && other.Slug == *patch.Slug {
				return fmt.Errorf("update post failed: %w", repository.ErrDuplicateKey)
			}
		}
		p.Slug = *patch.Slug
	}
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Published != nil {
		p.Published = *patch.Published
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *PostStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.deletePost(id)
	return nil
}

type CommentStore struct{ s *Store }

func (r *CommentStore) Create(ctx context.Context, comment *model.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[comment.PostID]; !ok {
		return fmt.Errorf("create comment failed: %w", errForeignKey)
	}
	if _, ok := r.s.users[comment.AuthorID]; !ok {
		return fmt.Errorf("create comment failed: %w", errForeignKey)
	}

	r.s.stamp(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	stored := *comment
	stored.Author = nil
	r.s.comments[comment.ID] = &stored
	return nil
}

func (r *CommentStore) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (r *CommentStore) GetWithAuthor(ctx context.Context, id string) (*model.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	c, ok := r.s.comments[id]
	if !ok {
		return nil, nil
	}
	out := *c
	out.Author = r.s.authorOf(c.AuthorID)
	return &out, nil
}

func (r *CommentStore) ListByPostID(ctx context.Context, postID string) ([]model.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.s.commentsOf(postID), nil
}

// PostIDsByAuthor returns the distinct posts authorID has commented on.
func (r *CommentStore) PostIDsByAuthor(ctx context.Context, authorID string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	seen := make(map[string]bool)
	ids := []string{}
	for _, c := range r.s.comments {
		if c.AuthorID == authorID && !seen[c.PostID] {
			seen[c.PostID] = true
			ids = append(ids, c.PostID)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *CommentStore) UpdateContent(ctx context.Context, id, content string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if c, ok := r.s.comments[id]; ok {
		c.Content = content
		c.UpdatedAt = time.Now().UTC()
	}
	return nil
}

func (r *CommentStore) Delete(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.deleteComment(id)
	return nil
}

// commentsOf returns a post's comments with authors, newest first. Caller holds a lock.
func (s *Store) commentsOf(postID string) []model.Comment {
	out := []model.Comment{}
	for _, c := range s.comments {
		if c.PostID == postID {
			cp := *c
			cp.Author = s.authorOf(c.AuthorID)
			out = append(out, cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return s.newerFirst(out[i].ID, out[i].CreatedAt, out[j].ID, out[j].CreatedAt)
	})
	return out
}

type ActivityStore struct{ s *Store }

func (r *ActivityStore) Create(ctx context.Context, activity *model.Activity) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	activity.ID = uint(len(r.s.activities) + 1)
	if activity.CreatedAt.IsZero() {
		activity.CreatedAt = time.Now().UTC()
	}
	r.s.activities = append(r.s.activities, *activity)
	return nil
}

func (r *ActivityStore) ListByActorID(ctx context.Context, actorID string, limit int) ([]model.Activity, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	out := []model.Activity{}
	for i := len(r.s.activities) - 1; i >= 0 && len(out) < limit; i-- {
		if r.s.activities[i].ActorID == actorID {
			out = append(out, r.s.activities[i])
		}
	}
	return out, nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	end := len(items)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return items[offset:end]
}
