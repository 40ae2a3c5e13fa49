package post_service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	user_memory "tagfeed-service/internal/clients/user/memory"
	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	metrics_memory "tagfeed-service/internal/metrics/memory"
	"tagfeed-service/internal/model"
	repository_memory "tagfeed-service/internal/repository/memory"
	feedback_service "tagfeed-service/internal/service/feedback"
	post_service "tagfeed-service/internal/service/post"
)

var (
	admin   = model.Caller{UserID: 1, Admin: true}
	regular = model.Caller{UserID: 7, Admin: false}
)

type postFixture struct {
	service *post_service.PostService
	uow     *repository_memory.UnitOfWork
	users   *user_memory.UserClient
	metrics *metrics_memory.MetricsProvider
}

func setupPostServiceTest(t *testing.T) *postFixture {
	log := logger.New("test")
	uow := repository_memory.NewUnitOfWork(log)
	users := user_memory.NewUserClient()
	metricsProvider := metrics_memory.NewMetricsProvider()
	service := post_service.NewPostService(
		uow.Posts, uow.Tags, uow.Images, uow.Likes,
		uow, log, users, metricsProvider,
	)
	return &postFixture{service: service, uow: uow, users: users, metrics: metricsProvider}
}

func (f *postFixture) createTag(t *testing.T, name string) *model.Tag {
	t.Helper()
	tag, err := f.service.CreateTag(context.Background(), name)
	require.NoError(t, err)
	return tag
}

// simulatePost marks the post as visible to the repositories that keep
// their own existence index.
func (f *postFixture) simulatePost(postID int64, tagIDs []int64) {
	f.uow.Tags.SimulatePostExists(postID, true)
	f.uow.Images.SimulatePostExists(postID, true)
	f.uow.Likes.SimulatePostExists(postID, true)
	f.uow.Posts.SimulatePostTags(postID, tagIDs)
}

func TestPostService_CreatePost(t *testing.T) {
	f := setupPostServiceTest(t)
	cat := f.createTag(t, "Cat")

	tests := []struct {
		name    string
		caller  model.Caller
		dto     *model.CreatePostDTO
		wantErr error
	}{
		{
			name:   "admin creates tagged post with images",
			caller: admin,
			dto: &model.CreatePostDTO{
				Description: "a cat post",
				TagIDs:      []int64{cat.ID},
				Images:      []string{"cat1.jpg", "cat2.jpg"},
			},
		},
		{
			name:    "non-admin is rejected",
			caller:  regular,
			dto:     &model.CreatePostDTO{Description: "a cat post"},
			wantErr: custom_errors.ErrForbidden,
		},
		{
			name:    "empty description is rejected",
			caller:  admin,
			dto:     &model.CreatePostDTO{},
			wantErr: custom_errors.ErrDescriptionRequired,
		},
		{
			name:   "unknown tag is rejected",
			caller: admin,
			dto: &model.CreatePostDTO{
				Description: "a post",
				TagIDs:      []int64{999},
			},
			wantErr: custom_errors.ErrTagNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := f.service.CreatePost(context.Background(), tt.caller, tt.dto)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, view)
			assert.Equal(t, tt.dto.Description, view.Post.Description)
			assert.Len(t, view.Tags, len(tt.dto.TagIDs))
			assert.Len(t, view.Images, len(tt.dto.Images))
		})
	}
}

func TestPostService_CreateTag(t *testing.T) {
	f := setupPostServiceTest(t)

	tag, err := f.service.CreateTag(context.Background(), "Cat")
	require.NoError(t, err)
	require.NotNil(t, tag)

	again, err := f.service.CreateTag(context.Background(), "Cat")
	require.NoError(t, err)
	assert.Equal(t, tag.ID, again.ID, "tag creation is get-or-create by name")

	_, err = f.service.CreateTag(context.Background(), "")
	assert.ErrorIs(t, err, custom_errors.ErrTagNameRequired)
}

func TestPostService_MapTagsToPost(t *testing.T) {
	f := setupPostServiceTest(t)
	cat := f.createTag(t, "Cat")

	post, err := f.uow.Posts.Create(context.Background(), &model.Post{Description: "post"})
	require.NoError(t, err)
	f.simulatePost(post.ID, nil)

	tests := []struct {
		name    string
		postID  int64
		tagIDs  []int64
		wantErr error
	}{
		{name: "maps tag", postID: post.ID, tagIDs: []int64{cat.ID}},
		{name: "empty list is a no-op", postID: post.ID, tagIDs: nil},
		{name: "zero post id", postID: 0, tagIDs: []int64{cat.ID}, wantErr: custom_errors.ErrPostIDRequired},
		{name: "missing post", postID: 999, tagIDs: []int64{cat.ID}, wantErr: custom_errors.ErrPostNotFound},
		{name: "missing tag", postID: post.ID, tagIDs: []int64{999}, wantErr: custom_errors.ErrTagNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := f.service.MapTagsToPost(context.Background(), tt.postID, tt.tagIDs)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	tags, err := f.uow.Tags.FindByPost(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestPostService_GetPost(t *testing.T) {
	f := setupPostServiceTest(t)

	post, err := f.uow.Posts.Create(context.Background(), &model.Post{Description: "post"})
	require.NoError(t, err)
	f.simulatePost(post.ID, nil)

	_, err = f.service.GetPost(context.Background(), regular, post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrForbidden)

	_, err = f.service.GetPost(context.Background(), admin, 999)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

	view, err := f.service.GetPost(context.Background(), admin, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, view.Post.ID)
	assert.Nil(t, view.Liked)
}

func TestPostService_DeletePost(t *testing.T) {
	f := setupPostServiceTest(t)

	post, err := f.uow.Posts.Create(context.Background(), &model.Post{Description: "post"})
	require.NoError(t, err)

	err = f.service.DeletePost(context.Background(), regular, post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrForbidden)

	require.NoError(t, f.service.DeletePost(context.Background(), admin, post.ID))

	err = f.service.DeletePost(context.Background(), admin, post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

func TestPostService_ListPosts_RankedForViewer(t *testing.T) {
	f := setupPostServiceTest(t)
	cat := f.createTag(t, "Cat")
	dog := f.createTag(t, "Dog")

	catPost, err := f.uow.Posts.Create(context.Background(), &model.Post{Description: "cats"})
	require.NoError(t, err)
	dogPost, err := f.uow.Posts.Create(context.Background(), &model.Post{Description: "dogs"})
	require.NoError(t, err)

	f.simulatePost(catPost.ID, []int64{cat.ID})
	f.simulatePost(dogPost.ID, []int64{dog.ID})
	require.NoError(t, f.uow.Tags.MapToPost(context.Background(), catPost.ID, []int64{cat.ID}))
	require.NoError(t, f.uow.Tags.MapToPost(context.Background(), dogPost.ID, []int64{dog.ID}))

	f.uow.Posts.SimulateViewerWeight(regular.UserID, dog.ID, 4)

	views, err := f.service.ListPosts(context.Background(), regular.UserID, model.FeedFilters{})
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, dogPost.ID, views[0].Post.ID, "the weighted tag ranks its post first")
	assert.Equal(t, catPost.ID, views[1].Post.ID)
	require.Len(t, views[0].Tags, 1)
	assert.Equal(t, "Dog", views[0].Tags[0].Name)
}

func TestPostService_ListPosts_DefaultWindow(t *testing.T) {
	f := setupPostServiceTest(t)

	for i := 0; i < 8; i++ {
		post, err := f.uow.Posts.Create(context.Background(), &model.Post{Description: "post"})
		require.NoError(t, err)
		f.simulatePost(post.ID, nil)
	}

	views, err := f.service.ListPosts(context.Background(), regular.UserID, model.FeedFilters{Offset: -3, Limit: 0})
	require.NoError(t, err)
	assert.Len(t, views, model.DefaultFeedLimit)
}

func TestPostService_ListPosts_ImagesFetchedPerPage(t *testing.T) {
	f := setupPostServiceTest(t)
	cat := f.createTag(t, "Cat")
	dog := f.createTag(t, "Dog")

	twoTags, err := f.uow.Posts.Create(context.Background(), &model.Post{Description: "cats and dogs"})
	require.NoError(t, err)
	plain, err := f.uow.Posts.Create(context.Background(), &model.Post{Description: "plain"})
	require.NoError(t, err)

	f.simulatePost(twoTags.ID, []int64{cat.ID, dog.ID})
	f.simulatePost(plain.ID, nil)
	require.NoError(t, f.uow.Images.Attach(context.Background(), twoTags.ID, []string{"a.jpg", "b.jpg"}))
	require.NoError(t, f.uow.Images.Attach(context.Background(), plain.ID, []string{"c.jpg"}))

	f.uow.Posts.SimulateViewerWeight(regular.UserID, cat.ID, 5)
	f.uow.Posts.SimulateViewerWeight(regular.UserID, dog.ID, -5)

	views, err := f.service.ListPosts(context.Background(), regular.UserID, model.FeedFilters{Limit: 10})
	require.NoError(t, err)
	require.Len(t, views, 3, "the two-tag post occupies two feed slots")

	// every occurrence of a post carries its images exactly once
	for _, view := range views {
		switch view.Post.ID {
		case twoTags.ID:
			assert.Len(t, view.Images, 2)
		case plain.ID:
			assert.Len(t, view.Images, 1)
		}
	}
}

func TestPostService_ListPosts_ViewerVoteAndCounts(t *testing.T) {
	f := setupPostServiceTest(t)

	post, err := f.uow.Posts.Create(context.Background(), &model.Post{Description: "post"})
	require.NoError(t, err)
	f.simulatePost(post.ID, nil)

	_, err = f.uow.Likes.SetVote(context.Background(), regular.UserID, post.ID, true)
	require.NoError(t, err)
	_, err = f.uow.Likes.SetVote(context.Background(), 42, post.ID, true)
	require.NoError(t, err)

	views, err := f.service.ListPosts(context.Background(), regular.UserID, model.FeedFilters{})
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].Liked)
	assert.True(t, *views[0].Liked)
	assert.Equal(t, int64(1), views[0].Likes, "counts cover the viewer's own rows only")
	assert.Equal(t, int64(0), views[0].Dislikes)
}

func TestPostService_GetLikedUsers(t *testing.T) {
	f := setupPostServiceTest(t)
	f.users.AddUser(&model.User{ID: 7, Username: "alice"})
	f.users.AddUser(&model.User{ID: 8, Username: "bob"})

	post, err := f.uow.Posts.Create(context.Background(), &model.Post{Description: "post"})
	require.NoError(t, err)
	f.simulatePost(post.ID, nil)

	_, err = f.uow.Likes.SetVote(context.Background(), 7, post.ID, true)
	require.NoError(t, err)
	_, err = f.uow.Likes.SetVote(context.Background(), 8, post.ID, false)
	require.NoError(t, err)

	usernames, err := f.service.GetLikedUsers(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, usernames)

	_, err = f.service.GetLikedUsers(context.Background(), 999)
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)
}

// TestFeedLifecycle drives both services over one store: tag creation,
// post creation, repeated and flipped votes, and liked-user resolution.
func TestFeedLifecycle(t *testing.T) {
	log := logger.New("test")
	uow := repository_memory.NewUnitOfWork(log)
	users := user_memory.NewUserClient()
	users.AddUser(&model.User{ID: 7, Username: "alice"})
	users.AddUser(&model.User{ID: 8, Username: "bob"})
	metricsProvider := metrics_memory.NewMetricsProvider()

	posts := post_service.NewPostService(
		uow.Posts, uow.Tags, uow.Images, uow.Likes,
		uow, log, users, metricsProvider,
	)
	feedback := feedback_service.NewFeedbackService(uow, nil, nil, log, metricsProvider)

	cat, err := posts.CreateTag(context.Background(), "Cat")
	require.NoError(t, err)
	again, err := posts.CreateTag(context.Background(), "Cat")
	require.NoError(t, err)
	require.Equal(t, cat.ID, again.ID)

	view, err := posts.CreatePost(context.Background(), admin, &model.CreatePostDTO{
		Description: "a cat post",
		TagIDs:      []int64{cat.ID},
	})
	require.NoError(t, err)
	postID := view.Post.ID

	// alice likes twice: one vote row, weight keeps climbing
	require.NoError(t, feedback.Like(context.Background(), 7, postID))
	require.NoError(t, feedback.Like(context.Background(), 7, postID))

	weights, err := uow.Weights.GetByUser(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, weights, 1)
	assert.Equal(t, int32(2), weights[0].Weight)

	likes, dislikes, err := uow.Likes.CountVotesByUser(context.Background(), 7, postID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), likes)
	assert.Equal(t, int64(0), dislikes)

	// bob likes, then changes his mind
	require.NoError(t, feedback.Like(context.Background(), 8, postID))
	require.NoError(t, feedback.Dislike(context.Background(), 8, postID))

	usernames, err := posts.GetLikedUsers(context.Background(), postID)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, usernames)
}

func TestPostService_GetLikedUsers_UnknownVoter(t *testing.T) {
	f := setupPostServiceTest(t)

	post, err := f.uow.Posts.Create(context.Background(), &model.Post{Description: "post"})
	require.NoError(t, err)
	f.simulatePost(post.ID, nil)

	_, err = f.uow.Likes.SetVote(context.Background(), 7, post.ID, true)
	require.NoError(t, err)

	_, err = f.service.GetLikedUsers(context.Background(), post.ID)
	assert.ErrorIs(t, err, custom_errors.ErrUserNotFound)
}
