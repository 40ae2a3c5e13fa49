package post_service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cache_memory "tagfeed-service/internal/cache/memory"
	user_memory "tagfeed-service/internal/clients/user/memory"
	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	metrics_memory "tagfeed-service/internal/metrics/memory"
	"tagfeed-service/internal/model"
	repository_memory "tagfeed-service/internal/repository/memory"
	post_service "tagfeed-service/internal/service/post"
)

type decoratorFixture struct {
	service post_service.Service
	uow     *repository_memory.UnitOfWork
	cache   *cache_memory.Cache
}

func setupDecoratorTest(t *testing.T) *decoratorFixture {
	log := logger.New("test")
	uow := repository_memory.NewUnitOfWork(log)
	cache := cache_memory.NewCache()
	metricsProvider := metrics_memory.NewMetricsProvider()

	inner := post_service.NewPostService(
		uow.Posts, uow.Tags, uow.Images, uow.Likes,
		uow, log, user_memory.NewUserClient(), metricsProvider,
	)
	service := post_service.NewPostServiceCacheDecorator(inner, cache, cache, log, metricsProvider)
	return &decoratorFixture{service: service, uow: uow, cache: cache}
}

func TestCacheDecorator_CreatePost_Warms(t *testing.T) {
	f := setupDecoratorTest(t)

	cat, err := f.service.CreateTag(context.Background(), "Cat")
	require.NoError(t, err)

	view, err := f.service.CreatePost(context.Background(), admin, &model.CreatePostDTO{
		Description: "a cat post",
		TagIDs:      []int64{cat.ID},
	})
	require.NoError(t, err)

	cached, err := f.cache.GetPost(context.Background(), view.Post.ID)
	require.NoError(t, err)
	assert.Equal(t, "a cat post", cached.Description)

	cachedTags, err := f.cache.GetPostTags(context.Background(), view.Post.ID)
	require.NoError(t, err)
	require.Len(t, cachedTags, 1)
	assert.Equal(t, "Cat", cachedTags[0].Name)
}

func TestCacheDecorator_CreatePost_FailureLeavesCacheCold(t *testing.T) {
	f := setupDecoratorTest(t)

	_, err := f.service.CreatePost(context.Background(), regular, &model.CreatePostDTO{Description: "denied"})
	require.ErrorIs(t, err, custom_errors.ErrForbidden)

	_, err = f.cache.GetPost(context.Background(), 1)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
}

func TestCacheDecorator_MapTags_Invalidates(t *testing.T) {
	f := setupDecoratorTest(t)

	cat, err := f.service.CreateTag(context.Background(), "Cat")
	require.NoError(t, err)
	dog, err := f.service.CreateTag(context.Background(), "Dog")
	require.NoError(t, err)

	view, err := f.service.CreatePost(context.Background(), admin, &model.CreatePostDTO{
		Description: "a post",
		TagIDs:      []int64{cat.ID},
	})
	require.NoError(t, err)

	require.NoError(t, f.service.MapTagsToPost(context.Background(), view.Post.ID, []int64{dog.ID}))

	_, err = f.cache.GetPostTags(context.Background(), view.Post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss, "the stale tag list is dropped")

	_, err = f.cache.GetPost(context.Background(), view.Post.ID)
	assert.NoError(t, err, "the post row itself stays cached")
}

func TestCacheDecorator_DeletePost_Invalidates(t *testing.T) {
	f := setupDecoratorTest(t)

	view, err := f.service.CreatePost(context.Background(), admin, &model.CreatePostDTO{Description: "a post"})
	require.NoError(t, err)

	require.NoError(t, f.service.DeletePost(context.Background(), admin, view.Post.ID))

	_, err = f.cache.GetPost(context.Background(), view.Post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
	_, err = f.cache.GetPostTags(context.Background(), view.Post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrCacheMiss)
}
