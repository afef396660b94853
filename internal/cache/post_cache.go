package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gopherblog/internal/model"
)

const defaultPostTTL = 60 * time.Second

// PostCache keeps post detail payloads in redis for the public read path.
type PostCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewPostCache(client *redisv9.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = defaultPostTTL
	}
	return &PostCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *PostCache) GetPost(ctx context.Context, id string) (*model.Post, bool, error) {
	raw, err := c.client.Get(ctx, postKey(id)).Result()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get post failed: %w", err)
	}

	var post model.Post
	if err := json.Unmarshal([]byte(raw), &post); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached post failed: %w", err)
	}
	return &post, true, nil
}

func (c *PostCache) SetPost(ctx context.Context, post *model.Post) error {
	payload, err := json.Marshal(post)
	if err != nil {
		return fmt.Errorf("marshal post cache failed: %w", err)
	}
	if err := c.client.Set(ctx, postKey(post.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set post failed: %w", err)
	}
	return nil
}

func (c *PostCache) DeletePost(ctx context.Context, id string) error {
	if err := c.client.Del(ctx, postKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete post failed: %w", err)
	}
	return nil
}

func postKey(id string) string {
	return fmt.Sprintf("blog:post:%s", id)
}
