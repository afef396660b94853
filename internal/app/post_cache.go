package app

import (
	"context"
	"log/slog"

	"gopherblog/internal/model"
)

// cachedPosts wraps an optional PostCache. Cache failures are logged and
// never fail the request. A nil cache passes everything through.
type cachedPosts struct {
	cache  PostCache
	logger *slog.Logger
}

func newCachedPosts(cache PostCache, logger *slog.Logger) cachedPosts {
	if logger == nil {
		logger = slog.Default()
	}
	return cachedPosts{cache: cache, logger: logger}
}

func (c cachedPosts) get(ctx context.Context, id string) (*model.Post, bool) {
	if c.cache == nil {
		return nil, false
	}
	post, ok, err := c.cache.GetPost(ctx, id)
	if err != nil {
		c.logger.WarnContext(ctx, "post cache read failed", "post_id", id, "error", err)
		return nil, false
	}
	return post, ok
}

func (c cachedPosts) set(ctx context.Context, post *model.Post) {
	if c.cache == nil {
		return
	}
	if err := c.cache.SetPost(ctx, post); err != nil {
		c.logger.WarnContext(ctx, "post cache write failed", "post_id", post.ID, "error", err)
	}
}

func (c cachedPosts) evict(ctx context.Context, ids ...string) {
	if c.cache == nil {
		return
	}
	for _, id := range ids {
		if err := c.cache.DeletePost(ctx, id); err != nil {
			c.logger.WarnContext(ctx, "post cache evict failed", "post_id", id, "error", err)
		}
	}
}
