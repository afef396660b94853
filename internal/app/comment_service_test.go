package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustUser(t, "ann@example.com", "Ann")
	reader := env.mustUser(t, "bob@example.com", "Bob")
	post := env.mustPost(t, author.ID, "Discuss")
	_, err := env.posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)

	comment, err := env.comments.CreateComment(ctx, post.ID, reader.ID, "Great read")
	require.NoError(t, err)
	assert.Equal(t, post.ID, comment.PostID)
	require.NotNil(t, comment.Author)
	assert.Equal(t, "Bob", comment.Author.Name)
	assert.False(t, env.cache.has(post.ID), "new comment evicts the cached post")

	detail, err := env.posts.GetPostByID(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, detail.Comments, 1)
	assert.Equal(t, comment.ID, detail.Comments[0].ID)
}

func TestCommentService_CreateComment_Errors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustUser(t, "ann@example.com", "Ann")
	post := env.mustPost(t, author.ID, "Discuss")

	_, err := env.comments.CreateComment(ctx, post.ID, author.ID, "x")
	assert.ErrorIs(t, err, ErrInvalidComment)

	_, err = env.comments.CreateComment(ctx, post.ID, author.ID, "   ")
	assert.ErrorIs(t, err, ErrInvalidComment)

	_, err = env.comments.CreateComment(ctx, "missing", author.ID, "Hello there")
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestCommentService_GetCommentsByPost(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustUser(t, "ann@example.com", "Ann")
	post := env.mustPost(t, author.ID, "Discuss")

	first, err := env.comments.CreateComment(ctx, post.ID, author.ID, "first")
	require.NoError(t, err)
	second, err := env.comments.CreateComment(ctx, post.ID, author.ID, "second")
	require.NoError(t, err)

	list, err := env.comments.GetCommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	empty, err := env.comments.GetCommentsByPost(ctx, "unknown")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestCommentService_UpdateComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustUser(t, "ann@example.com", "Ann")
	post := env.mustPost(t, author.ID, "Discuss")
	comment, err := env.comments.CreateComment(ctx, post.ID, author.ID, "Tpyo")
	require.NoError(t, err)

	updated, err := env.comments.UpdateComment(ctx, comment.ID, author.ID, "Typo fixed")
	require.NoError(t, err)
	assert.Equal(t, "Typo fixed", updated.Content)
	require.NotNil(t, updated.Author)

	_, err = env.comments.UpdateComment(ctx, comment.ID, author.ID, "x")
	assert.ErrorIs(t, err, ErrInvalidComment)

	_, err = env.comments.UpdateComment(ctx, "missing", author.ID, "Valid text")
	assert.ErrorIs(t, err, ErrCommentNotFound)
}

func TestCommentService_OwnershipLeavesCommentUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	owner := env.mustUser(t, "owner@example.com", "Owner")
	intruder := env.mustUser(t, "intruder@example.com", "Intruder")
	post := env.mustPost(t, owner.ID, "Discuss")
	comment, err := env.comments.CreateComment(ctx, post.ID, owner.ID, "My words")
	require.NoError(t, err)

	_, err = env.comments.UpdateComment(ctx, comment.ID, intruder.ID, "Your words")
	assert.ErrorIs(t, err, ErrCommentUpdateForbidden)

	_, err = env.comments.DeleteComment(ctx, comment.ID, intruder.ID)
	assert.ErrorIs(t, err, ErrCommentDeleteForbidden)
	assert.Equal(t, KindForbidden, KindOf(err))

	list, err := env.comments.GetCommentsByPost(ctx, post.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "My words", list[0].Content)
}

func TestCommentService_DeleteComment(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	author := env.mustUser(t, "ann@example.com", "Ann")
	post := env.mustPost(t, author.ID, "Discuss")
	comment, err := env.comments.CreateComment(ctx, post.ID, author.ID, "Bye soon")
	require.NoError(t, err)

	result, err := env.comments.DeleteComment(ctx, comment.ID, author.ID)
	require.NoError(t, err)
	assert.Equal(t, &DeleteResult{Message: "Comment deleted successfully", ID: comment.ID}, result)

	_, err = env.comments.DeleteComment(ctx, comment.ID, author.ID)
	assert.ErrorIs(t, err, ErrCommentNotFound)
}
