package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"gopherblog/internal/model"
	"gopherblog/internal/repository/memory"
)

const testSecret = "test-secret"

type testEnv struct {
	store    *memory.Store
	activity *ActivityLog
	users    *UserService
	auth     *AuthService
	posts    *PostService
	comments *CommentService
	cache    *fakeCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	cache := newFakeCache()
	activity := NewActivityLog(nil, store.Activities(), nil)
	users := NewUserService(store.Users(), bcrypt.MinCost, activity).
		WithPostCache(store.Posts(), store.Comments(), cache, nil)
	return &testEnv{
		store:    store,
		activity: activity,
		users:    users,
		auth:     NewAuthService(users, testSecret, time.Hour),
		posts:    NewPostService(store.Posts(), cache, activity, nil),
		comments: NewCommentService(store.Comments(), store.Posts(), cache, activity, nil),
		cache:    cache,
	}
}

func (e *testEnv) mustUser(t *testing.T, email, name string) *model.User {
	t.Helper()
	user, err := e.users.CreateUser(context.Background(), CreateUserInput{
		Email:    email,
		Password: "Secret123",
		Name:     name,
	})
	if err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user
}

func (e *testEnv) mustPost(t *testing.T, authorID, title string) *model.Post {
	t.Helper()
	post, err := e.posts.CreatePost(context.Background(), authorID, CreatePostInput{
		Title:   title,
		Content: "Some sufficiently long content.",
	})
	if err != nil {
		t.Fatalf("create post %q: %v", title, err)
	}
	return post
}

type fakeCache struct {
	mu      sync.Mutex
	posts   map[string]*model.Post
	deletes int
}

func newFakeCache() *fakeCache {
	return &fakeCache{posts: make(map[string]*model.Post)}
}

func (f *fakeCache) GetPost(ctx context.Context, id string) (*model.Post, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	return p, ok, nil
}

func (f *fakeCache) SetPost(ctx context.Context, post *model.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posts[post.ID] = post
	return nil
}

func (f *fakeCache) DeletePost(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.posts, id)
	f.deletes++
	return nil
}

func (f *fakeCache) has(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.posts[id]
	return ok
}
