package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
)

const (
	tagCacheKeyPrefix = "post_tags:"
	tagCacheTTL       = 15 * time.Minute
)

type TagCache struct {
	client *Client
	log    *logger.Logger
}

func NewTagCache(client *Client, log *logger.Logger) *TagCache {
	return &TagCache{
		client: client,
		log:    log,
	}
}

func (t *TagCache) GetPostTags(ctx context.Context, postID int64) ([]*model.Tag, error) {
	key := t.getPostTagsKey(postID)

	var tags []*model.Tag
	err := t.client.Get(ctx, key, &tags)
	if err != nil {
		if errors.Is(err, custom_errors.ErrCacheMiss) {
			return nil, custom_errors.ErrCacheMiss
		}
		t.log.Error("Failed to get post tags from cache",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to get post tags from cache: %w", err)
	}

	return tags, nil
}

func (t *TagCache) SetPostTags(ctx context.Context, postID int64, tags []*model.Tag) error {
	key := t.getPostTagsKey(postID)

	if err := t.client.Set(ctx, key, tags, tagCacheTTL); err != nil {
		t.log.Error("Failed to set post tags cache",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to set post tags cache: %w", err)
	}

	return nil
}

func (t *TagCache) DeletePostTags(ctx context.Context, postID int64) error {
	key := t.getPostTagsKey(postID)

	if err := t.client.Delete(ctx, key); err != nil {
		t.log.Error("Failed to delete post tags from cache",
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return fmt.Errorf("failed to delete post tags from cache: %w", err)
	}

	return nil
}

func (t *TagCache) getPostTagsKey(postID int64) string {
	return tagCacheKeyPrefix + strconv.FormatInt(postID, 10)
}
