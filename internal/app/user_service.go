package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"gopherblog/internal/model"
	"gopherblog/internal/pkg/validate"
	"gopherblog/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
	minNameLength   = 1
	maxNameLength   = 128
)

type UserService struct {
	users      UserStore
	bcryptCost int
	activity   *ActivityLog

	// Set by WithPostCache; cached post details that show the user are
	// evicted when the user is renamed or deleted.
	posts    PostStore
	comments CommentStore
	cache    cachedPosts
}

type CreateUserInput struct {
	Email    string
	Password string
	Name     string
}

type UpdateUserInput struct {
	Name     *string
	Password *string
}

func NewUserService(users UserStore, bcryptCost int, activity *ActivityLog) *UserService {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		users:      users,
		bcryptCost: bcryptCost,
		activity:   activity,
	}
}

// WithPostCache makes profile changes evict the cached details of every post
// the user wrote or commented on.
func (s *UserService) WithPostCache(posts PostStore, comments CommentStore, cache PostCache, logger *slog.Logger) *UserService {
	s.posts = posts
	s.comments = comments
	s.cache = newCachedPosts(cache, logger)
	return s
}

// CreateUser stores a new user and returns it without the password hash.
func (s *UserService) CreateUser(ctx context.Context, input CreateUserInput) (*model.User, error) {
	existing, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := s.hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email:        input.Email,
		Name:         strings.TrimSpace(input.Name),
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, ErrEmailExists.with(err)
		}
		return nil, err
	}

	s.activity.Record(ctx, model.ActionUserRegistered, user.ID, "user", user.ID)
	return withoutHash(user), nil
}

// GetUserByEmail returns the full record, hash included, or nil when absent.
// Only login should call it.
func (s *UserService) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.GetByEmail(ctx, email)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return withoutHash(user), nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, input UpdateUserInput) (*model.User, error) {
	var patch repository.UserPatch
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if err := checkName(name); err != nil {
			return nil, err
		}
		patch.Name = &name
	}
	if input.Password != nil && !validate.Password(*input.Password) {
		return nil, ErrWeakPassword
	}

	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	if input.Password != nil {
		hash, err := s.hashPassword(*input.Password)
		if err != nil {
			return nil, err
		}
		patch.PasswordHash = &hash
	}

	var shown []string
	if patch.Name != nil {
		if shown, err = s.postsShowing(ctx, id); err != nil {
			return nil, err
		}
	}

	user, err := s.users.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	s.cache.evict(ctx, shown...)

	s.activity.Record(ctx, model.ActionUserUpdated, id, "user", id)
	return withoutHash(user), nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) (*DeleteResult, error) {
	existing, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}

	shown, err := s.postsShowing(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.cache.evict(ctx, shown...)

	s.activity.Record(ctx, model.ActionUserDeleted, id, "user", id)
	return &DeleteResult{Message: "User deleted successfully", ID: id}, nil
}

// ListUsers returns a page of users, newest first, without password hashes.
func (s *UserService) ListUsers(ctx context.Context, skip, take int) ([]model.User, error) {
	skip, take = normalizePage(skip, take)
	users, err := s.users.List(ctx, skip, take)
	if err != nil {
		return nil, err
	}
	for i := range users {
		users[i].PasswordHash = ""
	}
	return users, nil
}

// CheckPassword reports whether password matches the user's stored hash.
func (s *UserService) CheckPassword(user *model.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password failed: %w", err)
	}
	return string(hash), nil
}

// postsShowing lists the posts whose cached detail embeds the user, as
// author or commenter. Empty when no post cache is wired.
func (s *UserService) postsShowing(ctx context.Context, userID string) ([]string, error) {
	if s.cache.cache == nil || s.posts == nil || s.comments == nil {
		return nil, nil
	}
	authored, err := s.posts.IDsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	commented, err := s.comments.PostIDsByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(authored)+len(commented))
	ids := make([]string, 0, len(authored)+len(commented))
	for _, id := range append(authored, commented...) {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids, nil
}

func checkName(name string) error {
	if validate.Length(name, minNameLength, maxNameLength) {
		return nil
	}
	if validate.IsEmpty(name) {
		return ErrInvalidName
	}
	return ErrNameTooLong
}

func withoutHash(user *model.User) *model.User {
	clean := *user
	clean.PasswordHash = ""
	return &clean
}

func normalizePage(skip, take int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if take <= 0 {
		take = defaultPageSize
	}
	if take > maxPageSize {
		take = maxPageSize
	}
	return skip, take
}
