package feed_http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagfeed-service/internal/custom_errors"
	feed_http "tagfeed-service/internal/delivery/http/feed"
	"tagfeed-service/internal/delivery/http/middleware"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
)

// stubPostService returns whatever the test configures and records the
// arguments of the last call.
type stubPostService struct {
	view       *model.PostView
	views      []*model.PostView
	tag        *model.Tag
	usernames  []string
	err        error
	lastCaller model.Caller
	lastFilter model.FeedFilters
	lastPostID int64
	lastTagIDs []int64
}

func (s *stubPostService) CreatePost(ctx context.Context, caller model.Caller, post *model.CreatePostDTO) (*model.PostView, error) {
	s.lastCaller = caller
	s.lastTagIDs = post.TagIDs
	return s.view, s.err
}

func (s *stubPostService) CreateTag(ctx context.Context, name string) (*model.Tag, error) {
	return s.tag, s.err
}

func (s *stubPostService) MapTagsToPost(ctx context.Context, postID int64, tagIDs []int64) error {
	s.lastPostID = postID
	s.lastTagIDs = tagIDs
	return s.err
}

func (s *stubPostService) DeletePost(ctx context.Context, caller model.Caller, id int64) error {
	s.lastCaller = caller
	s.lastPostID = id
	return s.err
}

func (s *stubPostService) GetPost(ctx context.Context, caller model.Caller, id int64) (*model.PostView, error) {
	s.lastCaller = caller
	s.lastPostID = id
	return s.view, s.err
}

func (s *stubPostService) ListPosts(ctx context.Context, viewerID int64, filters model.FeedFilters) ([]*model.PostView, error) {
	s.lastCaller = model.Caller{UserID: viewerID}
	s.lastFilter = filters
	return s.views, s.err
}

func (s *stubPostService) GetLikedUsers(ctx context.Context, postID int64) ([]string, error) {
	s.lastPostID = postID
	return s.usernames, s.err
}

type stubFeedbackService struct {
	err        error
	lastUserID int64
	lastPostID int64
	lastLiked  bool
}

func (s *stubFeedbackService) Like(ctx context.Context, userID, postID int64) error {
	s.lastUserID, s.lastPostID, s.lastLiked = userID, postID, true
	return s.err
}

func (s *stubFeedbackService) Dislike(ctx context.Context, userID, postID int64) error {
	s.lastUserID, s.lastPostID, s.lastLiked = userID, postID, false
	return s.err
}

func setupRouter(t *testing.T, posts *stubPostService, feedback *stubFeedbackService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.Identity())
	feed_http.NewFeedAPI(posts, feedback, logger.New("test")).RegisterRoutes(router)
	return router
}

func doRequest(router *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)
	return recorder
}

func adminHeaders() map[string]string {
	return map[string]string{"X-User-ID": "1", "X-User-Role": "admin"}
}

func userHeaders(id string) map[string]string {
	return map[string]string{"X-User-ID": id}
}

func TestCreatePost(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		headers    map[string]string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "created",
			body:       gin.H{"description": "a post", "tags": "1, 2", "images": []string{"a.jpg"}},
			headers:    adminHeaders(),
			wantStatus: http.StatusCreated,
		},
		{
			name:       "forbidden for non-admin",
			body:       gin.H{"description": "a post"},
			headers:    userHeaders("7"),
			serviceErr: custom_errors.ErrForbidden,
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "missing description",
			body:       gin.H{"tags": "1"},
			headers:    adminHeaders(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed tag list",
			body:       gin.H{"description": "a post", "tags": "1,x"},
			headers:    adminHeaders(),
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unauthenticated",
			body:       gin.H{"description": "a post"},
			headers:    nil,
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := &stubPostService{
				view: &model.PostView{Post: &model.Post{ID: 1, Description: "a post"}},
				err:  tt.serviceErr,
			}
			router := setupRouter(t, posts, &stubFeedbackService{})

			recorder := doRequest(router, http.MethodPost, "/v1/posts", tt.body, tt.headers)
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusCreated {
				assert.Equal(t, []int64{1, 2}, posts.lastTagIDs, "the comma list is parsed into ids")
				assert.True(t, posts.lastCaller.Admin)
			}
		})
	}
}

func TestCreatePost_ValidationErrorNaming(t *testing.T) {
	router := setupRouter(t, &stubPostService{}, &stubFeedbackService{})

	// a bad images entry must not be reported as a missing description
	recorder := doRequest(router, http.MethodPost, "/v1/posts",
		gin.H{"description": "a post", "images": []string{""}}, adminHeaders())
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	var response struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, custom_errors.ErrValidationFailed.Error(), response.Error)

	recorder = doRequest(router, http.MethodPost, "/v1/posts", gin.H{"images": []string{"a.jpg"}}, adminHeaders())
	require.Equal(t, http.StatusBadRequest, recorder.Code)
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, custom_errors.ErrDescriptionRequired.Error(), response.Error)
}

func TestCreateTag(t *testing.T) {
	posts := &stubPostService{tag: &model.Tag{ID: 3, Name: "Cat"}}
	router := setupRouter(t, posts, &stubFeedbackService{})

	recorder := doRequest(router, http.MethodPost, "/v1/tags", gin.H{"tag": "Cat"}, userHeaders("7"))
	require.Equal(t, http.StatusCreated, recorder.Code)

	var response model.Tag
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, "Cat", response.Name)

	recorder = doRequest(router, http.MethodPost, "/v1/tags", gin.H{"tag": ""}, userHeaders("7"))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestMapTagsToPost(t *testing.T) {
	posts := &stubPostService{}
	router := setupRouter(t, posts, &stubFeedbackService{})

	recorder := doRequest(router, http.MethodPost, "/v1/posts/5/tags", gin.H{"tags": "2,3"}, userHeaders("7"))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, int64(5), posts.lastPostID)
	assert.Equal(t, []int64{2, 3}, posts.lastTagIDs)

	posts.err = custom_errors.ErrTagNotFound
	recorder = doRequest(router, http.MethodPost, "/v1/posts/5/tags", gin.H{"tags": "99"}, userHeaders("7"))
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestVotePost(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		serviceErr error
		wantStatus int
		wantLiked  bool
	}{
		{name: "like", path: "/v1/posts/5/like", wantStatus: http.StatusOK, wantLiked: true},
		{name: "dislike", path: "/v1/posts/5/dislike", wantStatus: http.StatusOK, wantLiked: false},
		{name: "missing post", path: "/v1/posts/5/like", serviceErr: custom_errors.ErrPostNotFound, wantStatus: http.StatusNotFound},
		{name: "bad post id", path: "/v1/posts/abc/like", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			feedback := &stubFeedbackService{err: tt.serviceErr}
			router := setupRouter(t, &stubPostService{}, feedback)

			recorder := doRequest(router, http.MethodPost, tt.path, nil, userHeaders("7"))
			assert.Equal(t, tt.wantStatus, recorder.Code)

			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, int64(7), feedback.lastUserID)
				assert.Equal(t, int64(5), feedback.lastPostID)
				assert.Equal(t, tt.wantLiked, feedback.lastLiked)
			}
		})
	}
}

func TestListPosts(t *testing.T) {
	posts := &stubPostService{views: []*model.PostView{
		{Post: &model.Post{ID: 2, Description: "ranked first"}},
		{Post: &model.Post{ID: 1, Description: "ranked second"}},
	}}
	router := setupRouter(t, posts, &stubFeedbackService{})

	recorder := doRequest(router, http.MethodGet, "/v1/feed", nil, userHeaders("7"))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, model.FeedFilters{Offset: model.DefaultFeedOffset, Limit: model.DefaultFeedLimit}, posts.lastFilter)
	assert.Equal(t, int64(7), posts.lastCaller.UserID)

	recorder = doRequest(router, http.MethodGet, "/v1/feed?off_set=10&limit=3", nil, userHeaders("7"))
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, model.FeedFilters{Offset: 10, Limit: 3}, posts.lastFilter)

	recorder = doRequest(router, http.MethodGet, "/v1/feed?limit=0", nil, userHeaders("7"))
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/v1/feed", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestGetPost(t *testing.T) {
	posts := &stubPostService{view: &model.PostView{Post: &model.Post{ID: 5, Description: "a post"}}}
	router := setupRouter(t, posts, &stubFeedbackService{})

	recorder := doRequest(router, http.MethodGet, "/v1/posts/5", nil, adminHeaders())
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, int64(5), posts.lastPostID)

	posts.err = custom_errors.ErrForbidden
	recorder = doRequest(router, http.MethodGet, "/v1/posts/5", nil, userHeaders("7"))
	assert.Equal(t, http.StatusForbidden, recorder.Code)
}

func TestDeletePost(t *testing.T) {
	posts := &stubPostService{}
	router := setupRouter(t, posts, &stubFeedbackService{})

	recorder := doRequest(router, http.MethodDelete, "/v1/posts/5", nil, adminHeaders())
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, int64(5), posts.lastPostID)

	posts.err = custom_errors.ErrPostNotFound
	recorder = doRequest(router, http.MethodDelete, "/v1/posts/99", nil, adminHeaders())
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestGetLikedUsers(t *testing.T) {
	posts := &stubPostService{usernames: []string{"alice", "bob"}}
	router := setupRouter(t, posts, &stubFeedbackService{})

	// open endpoint, no identity headers needed
	recorder := doRequest(router, http.MethodGet, "/v1/posts/5/likes", nil, nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Users []string `json:"users"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	assert.Equal(t, []string{"alice", "bob"}, response.Users)

	posts.err = custom_errors.ErrPostNotFound
	recorder = doRequest(router, http.MethodGet, "/v1/posts/99/likes", nil, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestIdentityHeaderValidation(t *testing.T) {
	router := setupRouter(t, &stubPostService{}, &stubFeedbackService{})

	recorder := doRequest(router, http.MethodGet, "/v1/feed", nil, map[string]string{"X-User-ID": "not-a-number"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = doRequest(router, http.MethodGet, "/v1/feed", nil, map[string]string{"X-User-ID": "-4"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}
