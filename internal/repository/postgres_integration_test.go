//go:build integration

package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"gopherblog/internal/model"
	"gopherblog/internal/platform/postgres"
	"gopherblog/internal/repository"
)

// Run with: BLOG_TEST_POSTGRES_DSN=... go test -tags integration ./internal/repository/
func openPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := os.Getenv("BLOG_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("BLOG_TEST_POSTGRES_DSN not set")
	}

	db, err := postgres.New(context.Background(), dsn, false)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Post{}, &model.Comment{}, &model.Activity{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func seedUser(t *testing.T, users *repository.UserRepository, name string) *model.User {
	t.Helper()
	user := &model.User{Email: uuid.NewString() + "@example.com", Name: name, PasswordHash: "hash"}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func seedPost(t *testing.T, posts *repository.PostRepository, authorID string, published bool) *model.Post {
	t.Helper()
	post := &model.Post{
		Title:     "Integration",
		Content:   "Integration content",
		Slug:      "integration-" + uuid.NewString(),
		Published: published,
		AuthorID:  authorID,
	}
	require.NoError(t, posts.Create(context.Background(), post))
	return post
}

func TestPostRepository_List_CountsAndFilters(t *testing.T) {
	db := openPostgres(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)
	comments := repository.NewCommentRepository(db)

	ann := seedUser(t, users, "Ann")
	bob := seedUser(t, users, "Bob")
	t.Cleanup(func() {
		_ = users.Delete(ctx, ann.ID)
		_ = users.Delete(ctx, bob.ID)
	})

	older := seedPost(t, posts, ann.ID, true)
	newer := seedPost(t, posts, ann.ID, false)
	for _, content := range []string{"first", "second"} {
		require.NoError(t, comments.Create(ctx, &model.Comment{Content: content, AuthorID: bob.ID, PostID: older.ID}))
	}

	listed, err := posts.List(ctx, repository.PostFilter{Limit: 10, AuthorID: ann.ID})
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, newer.ID, listed[0].ID)
	assert.Equal(t, older.ID, listed[1].ID)
	require.NotNil(t, listed[1].CommentCount)
	assert.EqualValues(t, 2, *listed[1].CommentCount)
	require.NotNil(t, listed[0].CommentCount)
	assert.EqualValues(t, 0, *listed[0].CommentCount)
	require.NotNil(t, listed[0].Author)
	assert.Equal(t, "Ann", listed[0].Author.Name)

	published := true
	onlyPublished, err := posts.List(ctx, repository.PostFilter{Limit: 10, AuthorID: ann.ID, Published: &published})
	require.NoError(t, err)
	require.Len(t, onlyPublished, 1)
	assert.Equal(t, older.ID, onlyPublished[0].ID)

	paged, err := posts.List(ctx, repository.PostFilter{Offset: 1, Limit: 10, AuthorID: ann.ID})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, older.ID, paged[0].ID)

	ids, err := posts.IDsByAuthor(ctx, ann.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{older.ID, newer.ID}, ids)

	commented, err := comments.PostIDsByAuthor(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{older.ID}, commented)
}

func TestPostRepository_DuplicateSlug(t *testing.T) {
	db := openPostgres(t)
	ctx := context.Background()
	users := repository.NewUserRepository(db)
	posts := repository.NewPostRepository(db)

	ann := seedUser(t, users, "Ann")
	t.Cleanup(func() { _ = users.Delete(ctx, ann.ID) })
	first := seedPost(t, posts, ann.ID, false)

	err := posts.Create(ctx, &model.Post{Title: "Clash", Content: "Clashing content", Slug: first.Slug, AuthorID: ann.ID})
	assert.ErrorIs(t, err, repository.ErrDuplicateKey)
}
