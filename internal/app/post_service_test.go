package app

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopherblog/internal/model"
)

func TestPostService_CreatePost(t *testing.T) {
	env := newTestEnv(t)
	author := env.mustUser(t, "ann@example.com", "Ann")

	post, err := env.posts.CreatePost(context.Background(), author.ID, CreatePostInput{
		Title:   "Hello, World!",
		Content: "This is my first post.",
	})
	require.NoError(t, err)
	assert.Equal(t, "hello-world", post.Slug)
	assert.False(t, post.Published)
	require.NotNil(t, post.Author)
	assert.Equal(t, author.ID, post.Author.ID)
	assert.Equal(t, "Ann", post.Author.Name)
}

func TestPostService_CreatePost_Validation(t *testing.T) {
	env := newTestEnv(t)
	author := env.mustUser(t, "ann@example.com", "Ann")
	ctx := context.Background()

	_, err := env.posts.CreatePost(ctx, author.ID, CreatePostInput{Title: "Hi", Content: "Long enough content"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Title must be")

	_, err = env.posts.CreatePost(ctx, author.ID, CreatePostInput{Title: "  Hi  ", Content: "Long enough content"})
	assert.ErrorIs(t, err, ErrInvalidTitle)

	_, err = env.posts.CreatePost(ctx, author.ID, CreatePostInput{Title: strings.Repeat("t", 256), Content: "Long enough content"})
	assert.ErrorIs(t, err, ErrTitleTooLong)

	_, err = env.posts.CreatePost(ctx, author.ID, CreatePostInput{Title: "Valid title", Content: "too short"})
	assert.ErrorIs(t, err, ErrInvalidContent)
}

func TestPostService_CreatePost_SlugCollision(t *testing.T) {
	env := newTestEnv(t)
	author := env.mustUser(t, "ann@example.com", "Ann")
	fixed := time.UnixMilli(1700000000123)
	env.posts.now = func() time.Time { return fixed }

	first := env.mustPost(t, author.ID, "Duplicate Title")
	second := env.mustPost(t, author.ID, "Duplicate Title")

	assert.Equal(t, "duplicate-title", first.Slug)
	assert.Equal(t, "duplicate-title-1700000000123", second.Slug)
	assert.True(t, strings.HasPrefix(second.Slug, "duplicate-title-"))

	_, err := env.posts.CreatePost(context.Background(), author.ID, CreatePostInput{Title: "Duplicate Title", Content: "Third time lucky?"})
	assert.ErrorIs(t, err, ErrSlugExists)
}

func TestPostService_CreatePost_SymbolTitleFallsBack(t *testing.T) {
	env := newTestEnv(t)
	author := env.mustUser(t, "ann@example.com", "Ann")

	post := env.mustPost(t, author.ID, "!!! ???")
	assert.Equal(t, fallbackSlug, post.Slug)
}

func TestPostService_GetPostByID(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustUser(t, "ann@example.com", "Ann")
	post := env.mustPost(t, author.ID, "Cached post")

	got, err := env.posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	assert.NotNil(t, got.Comments)
	assert.Empty(t, got.Comments)
	assert.True(t, env.cache.has(post.ID))

	_, err = env.posts.GetPostByID(ctx, "00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_GetPostBySlug(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustUser(t, "ann@example.com", "Ann")
	post := env.mustPost(t, author.ID, "Find me by slug")

	got, err := env.posts.GetPostBySlug(ctx, "find-me-by-slug")
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
	require.NotNil(t, got.Author)

	_, err = env.posts.GetPostBySlug(ctx, "nope")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestPostService_GetAllPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	ann := env.mustUser(t, "ann@example.com", "Ann")
	bob := env.mustUser(t, "bob@example.com", "Bob")

	long := strings.Repeat("x", 250)
	draft, err := env.posts.CreatePost(ctx, ann.ID, CreatePostInput{Title: "Draft", Content: long})
	require.NoError(t, err)
	live, err := env.posts.CreatePost(ctx, bob.ID, CreatePostInput{Title: "Live", Content: "Published content", Published: true})
	require.NoError(t, err)
	_, err = env.comments.CreateComment(ctx, draft.ID, bob.ID, "Nice draft")
	require.NoError(t, err)

	all, err := env.posts.GetAllPosts(ctx, ListPostsInput{Take: 10})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, live.ID, all[0].ID)
	assert.Equal(t, draft.ID, all[1].ID)
	assert.EqualValues(t, 0, *all[0].CommentCount)
	assert.EqualValues(t, 1, *all[1].CommentCount)
	assert.Equal(t, strings.Repeat("x", excerptLength)+"...", all[1].Excerpt)
	assert.Equal(t, "Published content", all[0].Excerpt)

	published := true
	onlyLive, err := env.posts.GetAllPosts(ctx, ListPostsInput{Take: 10, Published: &published})
	require.NoError(t, err)
	require.Len(t, onlyLive, 1)
	assert.Equal(t, live.ID, onlyLive[0].ID)

	byAnn, err := env.posts.GetPostsByAuthor(ctx, ann.ID, ListPostsInput{})
	require.NoError(t, err)
	require.Len(t, byAnn, 1)
	assert.Equal(t, draft.ID, byAnn[0].ID)
}

func TestPostService_UpdatePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustUser(t, "ann@example.com", "Ann")
	post := env.mustPost(t, author.ID, "Original title")
	_, err := env.posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)

	title := "Renamed title"
	published := true
	updated, err := env.posts.UpdatePost(ctx, post.ID, author.ID, UpdatePostInput{Title: &title, Published: &published})
	require.NoError(t, err)
	assert.Equal(t, "Renamed title", updated.Title)
	assert.Equal(t, "renamed-title", updated.Slug)
	assert.True(t, updated.Published)
	assert.Equal(t, post.Content, updated.Content)
	assert.False(t, env.cache.has(post.ID), "update evicts the cached detail")
}

func TestPostService_UpdatePost_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustUser(t, "ann@example.com", "Ann")
	post := env.mustPost(t, author.ID, "Original title")
	env.mustPost(t, author.ID, "Taken title")

	short := "ab"
	_, err := env.posts.UpdatePost(ctx, post.ID, author.ID, UpdatePostInput{Title: &short})
	assert.ErrorIs(t, err, ErrInvalidTitle)

	content := "tiny"
	_, err = env.posts.UpdatePost(ctx, post.ID, author.ID, UpdatePostInput{Content: &content})
	assert.ErrorIs(t, err, ErrInvalidContent)

	title := "Something new"
	_, err = env.posts.UpdatePost(ctx, "missing", author.ID, UpdatePostInput{Title: &title})
	assert.ErrorIs(t, err, ErrPostNotFound)

	taken := "Taken title"
	_, err = env.posts.UpdatePost(ctx, post.ID, author.ID, UpdatePostInput{Title: &taken})
	assert.ErrorIs(t, err, ErrSlugExists)
}

func TestPostService_OwnershipLeavesPostUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustUser(t, "owner@example.com", "Owner")
	intruder := env.mustUser(t, "intruder@example.com", "Intruder")
	post := env.mustPost(t, owner.ID, "Mine alone")

	title := "Hijacked"
	_, err := env.posts.UpdatePost(ctx, post.ID, intruder.ID, UpdatePostInput{Title: &title})
	assert.ErrorIs(t, err, ErrPostUpdateForbidden)
	assert.Equal(t, KindForbidden, KindOf(err))

	_, err = env.posts.DeletePost(ctx, post.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrPostDeleteForbidden)

	after, err := env.posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mine alone", after.Title)
	assert.Equal(t, post.Slug, after.Slug)
}

func TestPostService_DeletePost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustUser(t, "ann@example.com", "Ann")
	post := env.mustPost(t, author.ID, "Short lived")
	comment, err := env.comments.CreateComment(ctx, post.ID, author.ID, "First!")
	require.NoError(t, err)

	result, err := env.posts.DeletePost(ctx, post.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, &DeleteResult{Message: "Post deleted successfully", ID: post.ID}, result)

	_, err = env.posts.GetPostByID(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	_, err = env.comments.UpdateComment(ctx, comment.ID, author.ID, "Still here?")
	assert.ErrorIs(t, err, ErrCommentNotFound)

	_, err = env.posts.DeletePost(ctx, post.ID, author.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)

	acts, err := env.activity.ListForActor(ctx, author.ID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, acts)
	assert.Equal(t, model.ActionPostDeleted, acts[0].Action)
}
