package feedback_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"tagfeed-service/internal/cache"
	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/metrics"
	"tagfeed-service/internal/model"
	"tagfeed-service/internal/repository/postgres"
)

// FeedbackService applies like/dislike events: it overwrites the (user,
// post) vote row and shifts the user's weight toward every tag of the
// post by +1 or -1. Repeated votes keep shifting; the weight is a running
// counter, not a set-once flag.
type FeedbackService struct {
	uow       postgres.UnitOfWork
	postCache cache.PostCache
	tagCache  cache.TagCache
	log       *logger.Logger
	metrics   metrics.MetricsProvider
}

func NewFeedbackService(
	uow postgres.UnitOfWork,
	postCache cache.PostCache,
	tagCache cache.TagCache,
	log *logger.Logger,
	metricsProvider metrics.MetricsProvider,
) *FeedbackService {
	return &FeedbackService{
		uow:       uow,
		postCache: postCache,
		tagCache:  tagCache,
		log:       log,
		metrics:   metricsProvider,
	}
}

func (s *FeedbackService) Like(ctx context.Context, userID, postID int64) error {
	err := s.applyVote(ctx, userID, postID, true)
	s.metrics.IncrementFeedbackOperations("like", err == nil)
	return err
}

func (s *FeedbackService) Dislike(ctx context.Context, userID, postID int64) error {
	err := s.applyVote(ctx, userID, postID, false)
	s.metrics.IncrementFeedbackOperations("dislike", err == nil)
	return err
}

func (s *FeedbackService) applyVote(ctx context.Context, userID, postID int64, liked bool) (err error) {
	delta := int32(1)
	if !liked {
		delta = -1
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	var txCommitted bool
	defer func() {
		if !txCommitted && tx != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !strings.Contains(rollbackErr.Error(), "tx is closed") {
				s.log.Error("Failed to rollback transaction", slog.String("error", rollbackErr.Error()))
			}
		}
	}()

	postRepo := tx.PostRepository()
	likeRepo := tx.LikeRepository()
	tagRepo := tx.TagRepository()
	weightRepo := tx.WeightRepository()

	if err := s.ensurePostExists(ctx, postRepo, postID); err != nil {
		return err
	}

	_, err = likeRepo.SetVote(ctx, userID, postID, liked)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found when voting", slog.Int64("post_id", postID))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to set vote",
			slog.Int64("user_id", userID),
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	tagIDs, err := s.postTagIDs(ctx, tagRepo, postID)
	if err != nil {
		return err
	}

	if err := weightRepo.AdjustWeights(ctx, userID, tagIDs, delta); err != nil {
		s.log.Error("Failed to adjust tag weights",
			slog.Int64("user_id", userID),
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	err = tx.Commit(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "commit unexpectedly resulted in rollback") {
			s.log.Warn("Transaction commit resulted in rollback", slog.String("error", err.Error()))
			return custom_errors.ErrDatabaseQuery
		}
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return nil
}

// ensurePostExists checks the cache before hitting the store; every vote
// needs this lookup, so it is the hottest read in the service.
func (s *FeedbackService) ensurePostExists(ctx context.Context, postRepo postRepository, postID int64) error {
	if s.postCache != nil {
		if _, cacheErr := s.postCache.GetPost(ctx, postID); cacheErr == nil {
			s.metrics.IncrementCacheHits()
			return nil
		}
		s.metrics.IncrementCacheMisses()
	}

	post, err := postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found when voting", slog.Int64("post_id", postID))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for vote", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if s.postCache != nil {
		if cacheErr := s.postCache.SetPost(ctx, post); cacheErr != nil {
			s.log.Warn("Failed to cache post", slog.Int64("post_id", postID), slog.String("error", cacheErr.Error()))
		}
	}
	return nil
}

func (s *FeedbackService) postTagIDs(ctx context.Context, tagRepo tagRepository, postID int64) ([]int64, error) {
	if s.tagCache == nil {
		ids, err := tagRepo.TagIDsByPost(ctx, postID)
		if err != nil {
			s.log.Error("Failed to get tag ids by post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		return ids, nil
	}

	if tags, cacheErr := s.tagCache.GetPostTags(ctx, postID); cacheErr == nil {
		s.metrics.IncrementCacheHits()
		ids := make([]int64, 0, len(tags))
		for _, tag := range tags {
			ids = append(ids, tag.ID)
		}
		return ids, nil
	}
	s.metrics.IncrementCacheMisses()

	tags, err := tagRepo.FindByPost(ctx, postID)
	if err != nil {
		s.log.Error("Failed to find tags by post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if cacheErr := s.tagCache.SetPostTags(ctx, postID, tags); cacheErr != nil {
		s.log.Warn("Failed to cache post tags", slog.Int64("post_id", postID), slog.String("error", cacheErr.Error()))
	}

	ids := make([]int64, 0, len(tags))
	for _, tag := range tags {
		ids = append(ids, tag.ID)
	}
	return ids, nil
}

// narrow views of the repositories this service reads outside mutation
type postRepository interface {
	GetByID(ctx context.Context, id int64) (*model.Post, error)
}

type tagRepository interface {
	FindByPost(ctx context.Context, postID int64) ([]*model.Tag, error)
	TagIDsByPost(ctx context.Context, postID int64) ([]int64, error)
}
