package feed_http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tagfeed-service/internal/delivery/http/middleware"
	"tagfeed-service/internal/model"
)

type PostGetter interface {
	GetPost(ctx context.Context, caller model.Caller, id int64) (*model.PostView, error)
}

type GetPostHandler struct {
	postService PostGetter
}

func NewGetPostHandler(postService PostGetter) *GetPostHandler {
	return &GetPostHandler{postService: postService}
}

func (h *GetPostHandler) Handle(c *gin.Context) {
	caller, _ := middleware.CallerFromContext(c)

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	view, err := h.postService.GetPost(c.Request.Context(), caller, postID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}
