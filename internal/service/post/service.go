package post_service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	user_client "tagfeed-service/internal/clients/user"
	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/metrics"
	"tagfeed-service/internal/model"
	image_repository "tagfeed-service/internal/repository/image"
	like_repository "tagfeed-service/internal/repository/like"
	post_repository "tagfeed-service/internal/repository/post"
	"tagfeed-service/internal/repository/postgres"
	tag_repository "tagfeed-service/internal/repository/tag"
)

type PostService struct {
	postRepo   post_repository.Repository
	tagRepo    tag_repository.Repository
	imageRepo  image_repository.Repository
	likeRepo   like_repository.Repository
	uow        postgres.UnitOfWork
	log        *logger.Logger
	userClient user_client.Client
	metrics    metrics.MetricsProvider
}

func NewPostService(
	postRepo post_repository.Repository,
	tagRepo tag_repository.Repository,
	imageRepo image_repository.Repository,
	likeRepo like_repository.Repository,
	uow postgres.UnitOfWork,
	log *logger.Logger,
	userClient user_client.Client,
	metricsProvider metrics.MetricsProvider,
) *PostService {
	return &PostService{
		postRepo:   postRepo,
		tagRepo:    tagRepo,
		imageRepo:  imageRepo,
		likeRepo:   likeRepo,
		uow:        uow,
		log:        log,
		userClient: userClient,
		metrics:    metricsProvider,
	}
}

func (s *PostService) CreatePost(ctx context.Context, caller model.Caller, post *model.CreatePostDTO) (result *model.PostView, err error) {
	defer func() { s.metrics.IncrementPostOperations("create", err == nil) }()

	if !caller.Admin {
		s.log.Debug("Non-admin attempted to create post", slog.Int64("user_id", caller.UserID))
		return nil, custom_errors.ErrForbidden
	}
	if post.Description == "" {
		return nil, custom_errors.ErrDescriptionRequired
	}

	tx, err := s.uow.Begin(ctx)
	if err != nil {
		s.log.Error("Failed to start transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
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
	imageRepo := tx.ImageRepository()
	tagRepo := tx.TagRepository()

	newPost := &model.Post{Description: post.Description}
	createdPost, err := postRepo.Create(ctx, newPost)
	if err != nil {
		s.log.Error("Failed to create post", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	if len(post.Images) > 0 {
		if err = imageRepo.Attach(ctx, createdPost.ID, post.Images); err != nil {
			s.log.Error("Failed to attach images to post",
				slog.Int64("post_id", createdPost.ID),
				slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	if len(post.TagIDs) > 0 {
		if err = tagRepo.MapToPost(ctx, createdPost.ID, post.TagIDs); err != nil {
			if errors.Is(err, custom_errors.ErrTagNotFound) {
				s.log.Debug("Tag not found when mapping to new post", slog.String("error", err.Error()))
				return nil, custom_errors.ErrTagNotFound
			}
			s.log.Error("Failed to map tags to post",
				slog.Int64("post_id", createdPost.ID),
				slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
	}

	createdImages, err := imageRepo.GetByPost(ctx, createdPost.ID)
	if err != nil {
		s.log.Error("Failed to get images by post", slog.Int64("post_id", createdPost.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	createdTags, err := tagRepo.FindByPost(ctx, createdPost.ID)
	if err != nil {
		s.log.Error("Failed to find tags by post", slog.Int64("post_id", createdPost.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	err = tx.Commit(ctx)
	if err != nil {
		if strings.Contains(err.Error(), "commit unexpectedly resulted in rollback") {
			s.log.Warn("Transaction commit resulted in rollback", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseQuery
		}
		s.log.Error("Failed to commit transaction", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	txCommitted = true

	return &model.PostView{
		Post:   createdPost,
		Tags:   createdTags,
		Images: createdImages,
	}, nil
}

func (s *PostService) CreateTag(ctx context.Context, name string) (tag *model.Tag, err error) {
	defer func() { s.metrics.IncrementTagOperations("create", err == nil) }()

	if name == "" {
		return nil, custom_errors.ErrTagNameRequired
	}

	tag, err = s.tagRepo.Create(ctx, name)
	if err != nil {
		s.log.Error("Failed to create tag", slog.String("name", name), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return tag, nil
}

func (s *PostService) MapTagsToPost(ctx context.Context, postID int64, tagIDs []int64) (err error) {
	defer func() { s.metrics.IncrementTagOperations("map_to_post", err == nil) }()

	if postID == 0 {
		return custom_errors.ErrPostIDRequired
	}
	if len(tagIDs) == 0 {
		return nil
	}

	if _, err = s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found when mapping tags", slog.Int64("post_id", postID))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for tag mapping", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}

	if err = s.tagRepo.MapToPost(ctx, postID, tagIDs); err != nil {
		if errors.Is(err, custom_errors.ErrTagNotFound) || errors.Is(err, custom_errors.ErrPostNotFound) {
			return err
		}
		s.log.Error("Failed to map tags to post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

// DeletePost removes the post row; image links, tag links and vote rows
// go with it through the store's cascade.
func (s *PostService) DeletePost(ctx context.Context, caller model.Caller, id int64) (err error) {
	defer func() { s.metrics.IncrementPostOperations("delete", err == nil) }()

	if !caller.Admin {
		s.log.Debug("Non-admin attempted to delete post", slog.Int64("user_id", caller.UserID))
		return custom_errors.ErrForbidden
	}

	err = s.postRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for delete", slog.Int64("id", id))
			return custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to delete post", slog.Int64("id", id), slog.String("error", err.Error()))
		return custom_errors.ErrDatabaseQuery
	}
	return nil
}

func (s *PostService) GetPost(ctx context.Context, caller model.Caller, id int64) (view *model.PostView, err error) {
	defer func() { s.metrics.IncrementPostOperations("get", err == nil) }()

	if !caller.Admin {
		s.log.Debug("Non-admin attempted to get post", slog.Int64("user_id", caller.UserID))
		return nil, custom_errors.ErrForbidden
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found", slog.Int64("id", id))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post by id", slog.Int64("id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	images, err := s.imageRepo.GetByPost(ctx, id)
	if err != nil {
		s.log.Error("Failed to get images by post", slog.Int64("post_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	return s.enrichPost(ctx, caller.UserID, post, images)
}

func (s *PostService) ListPosts(ctx context.Context, viewerID int64, filters model.FeedFilters) (views []*model.PostView, err error) {
	defer func() { s.metrics.IncrementPostOperations("list", err == nil) }()

	if filters.Limit <= 0 {
		filters.Limit = model.DefaultFeedLimit
	}
	if filters.Offset < 0 {
		filters.Offset = model.DefaultFeedOffset
	}

	posts, err := s.postRepo.ListRanked(ctx, viewerID, filters)
	if err != nil {
		s.log.Error("Failed to list ranked posts", slog.Int64("viewer_id", viewerID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	// the ranking join can repeat a post, so dedupe before the batch fetch
	seen := make(map[int64]bool, len(posts))
	postIDs := make([]int64, 0, len(posts))
	for _, post := range posts {
		if !seen[post.ID] {
			seen[post.ID] = true
			postIDs = append(postIDs, post.ID)
		}
	}

	imagesByPost, err := s.imageRepo.GetByPosts(ctx, postIDs)
	if err != nil {
		s.log.Error("Failed to get images for feed page", slog.Int64("viewer_id", viewerID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	result := make([]*model.PostView, 0, len(posts))
	for _, post := range posts {
		view, err := s.enrichPost(ctx, viewerID, post, imagesByPost[post.ID])
		if err != nil {
			return nil, err
		}
		result = append(result, view)
	}
	return result, nil
}

func (s *PostService) GetLikedUsers(ctx context.Context, postID int64) (usernames []string, err error) {
	defer func() { s.metrics.IncrementPostOperations("liked_users", err == nil) }()

	if _, err = s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, custom_errors.ErrPostNotFound) {
			s.log.Debug("Post not found for liked users", slog.Int64("post_id", postID))
			return nil, custom_errors.ErrPostNotFound
		}
		s.log.Error("Failed to get post for liked users", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	userIDs, err := s.likeRepo.LikedUserIDs(ctx, postID)
	if err != nil {
		s.log.Error("Failed to get liked user ids", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	users, err := s.userClient.GetUsers(ctx, userIDs)
	if err != nil {
		if errors.Is(err, custom_errors.ErrUserNotFound) {
			s.log.Debug("Liked user no longer exists", slog.Int64("post_id", postID))
			return nil, custom_errors.ErrUserNotFound
		}
		s.log.Error("Failed to resolve liked users", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}

	usernames = make([]string, 0, len(users))
	for _, user := range users {
		usernames = append(usernames, user.Username)
	}
	return usernames, nil
}

// enrichPost builds the viewer-specific view: tags, the supplied images,
// the viewer's own vote, and the viewer-scoped like/dislike counts.
func (s *PostService) enrichPost(ctx context.Context, viewerID int64, post *model.Post, images []*model.PostImage) (*model.PostView, error) {
	tags, err := s.tagRepo.FindByPost(ctx, post.ID)
	if err != nil {
		s.log.Error("Failed to find tags by post", slog.Int64("post_id", post.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	vote, err := s.likeRepo.GetVote(ctx, viewerID, post.ID)
	if err != nil {
		s.log.Error("Failed to get vote", slog.Int64("post_id", post.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	likes, dislikes, err := s.likeRepo.CountVotesByUser(ctx, viewerID, post.ID)
	if err != nil {
		s.log.Error("Failed to count votes", slog.Int64("post_id", post.ID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}

	view := &model.PostView{
		Post:     post,
		Tags:     tags,
		Images:   images,
		Likes:    likes,
		Dislikes: dislikes,
	}
	if vote != nil {
		view.Liked = vote.Liked
	}
	return view, nil
}
