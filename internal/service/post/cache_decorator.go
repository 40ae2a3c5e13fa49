package post_service

import (
	"context"
	"log/slog"
	"time"

	"tagfeed-service/internal/cache"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/metrics"
	"tagfeed-service/internal/model"
)

// PostServiceCacheDecorator keeps the viewer-independent caches (post
// rows and per-post tag lists) warm and consistent around mutations. The
// feedback service reads these caches on every vote. Viewer-specific
// enrichment is never cached.
type PostServiceCacheDecorator struct {
	service   Service
	postCache cache.PostCache
	tagCache  cache.TagCache
	log       *logger.Logger
	metrics   metrics.MetricsProvider
}

func NewPostServiceCacheDecorator(
	service Service,
	postCache cache.PostCache,
	tagCache cache.TagCache,
	log *logger.Logger,
	metricsProvider metrics.MetricsProvider,
) Service {
	return &PostServiceCacheDecorator{
		service:   service,
		postCache: postCache,
		tagCache:  tagCache,
		log:       log,
		metrics:   metricsProvider,
	}
}

func (d *PostServiceCacheDecorator) CreatePost(ctx context.Context, caller model.Caller, post *model.CreatePostDTO) (*model.PostView, error) {
	result, err := d.service.CreatePost(ctx, caller, post)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	if cacheErr := d.postCache.SetPost(ctx, result.Post); cacheErr != nil {
		d.log.Warn("Failed to cache created post",
			slog.Int64("post_id", result.Post.ID),
			slog.String("error", cacheErr.Error()))
	}
	if cacheErr := d.tagCache.SetPostTags(ctx, result.Post.ID, result.Tags); cacheErr != nil {
		d.log.Warn("Failed to cache tags of created post",
			slog.Int64("post_id", result.Post.ID),
			slog.String("error", cacheErr.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_set", time.Since(start))

	return result, nil
}

func (d *PostServiceCacheDecorator) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	return d.service.CreateTag(ctx, name)
}

func (d *PostServiceCacheDecorator) MapTagsToPost(ctx context.Context, postID int64, tagIDs []int64) error {
	err := d.service.MapTagsToPost(ctx, postID, tagIDs)
	if err != nil {
		return err
	}

	start := time.Now()
	if cacheErr := d.tagCache.DeletePostTags(ctx, postID); cacheErr != nil {
		d.log.Warn("Failed to invalidate tag cache after mapping",
			slog.Int64("post_id", postID),
			slog.String("error", cacheErr.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_tags_invalidate", time.Since(start))

	return nil
}

func (d *PostServiceCacheDecorator) DeletePost(ctx context.Context, caller model.Caller, id int64) error {
	err := d.service.DeletePost(ctx, caller, id)
	if err != nil {
		return err
	}

	start := time.Now()
	if cacheErr := d.postCache.DeletePost(ctx, id); cacheErr != nil {
		d.log.Warn("Failed to invalidate post cache after delete",
			slog.Int64("post_id", id),
			slog.String("error", cacheErr.Error()))
	}
	if cacheErr := d.tagCache.DeletePostTags(ctx, id); cacheErr != nil {
		d.log.Warn("Failed to invalidate tag cache after delete",
			slog.Int64("post_id", id),
			slog.String("error", cacheErr.Error()))
	}
	d.metrics.RecordCacheOperationDuration("post_invalidate", time.Since(start))

	return nil
}

func (d *PostServiceCacheDecorator) GetPost(ctx context.Context, caller model.Caller, id int64) (*model.PostView, error) {
	return d.service.GetPost(ctx, caller, id)
}

func (d *PostServiceCacheDecorator) ListPosts(ctx context.Context, viewerID int64, filters model.FeedFilters) ([]*model.PostView, error) {
	return d.service.ListPosts(ctx, viewerID, filters)
}

func (d *PostServiceCacheDecorator) GetLikedUsers(ctx context.Context, postID int64) ([]string, error) {
	return d.service.GetLikedUsers(ctx, postID)
}
