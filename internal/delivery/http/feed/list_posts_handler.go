package feed_http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tagfeed-service/internal/delivery/http/middleware"
	"tagfeed-service/internal/model"
)

type PostLister interface {
	ListPosts(ctx context.Context, viewerID int64, filters model.FeedFilters) ([]*model.PostView, error)
}

type ListPostsHandler struct {
	postService PostLister
}

func NewListPostsHandler(postService PostLister) *ListPostsHandler {
	return &ListPostsHandler{postService: postService}
}

func (h *ListPostsHandler) Handle(c *gin.Context) {
	caller, _ := middleware.CallerFromContext(c)

	offset, err := strconv.Atoi(c.DefaultQuery("off_set", strconv.Itoa(model.DefaultFeedOffset)))
	if err != nil || offset < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid off_set"})
		return
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(model.DefaultFeedLimit)))
	if err != nil || limit <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	views, err := h.postService.ListPosts(c.Request.Context(), caller.UserID, model.FeedFilters{
		Offset: offset,
		Limit:  limit,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": views})
}
