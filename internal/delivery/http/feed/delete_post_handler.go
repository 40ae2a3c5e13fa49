package feed_http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tagfeed-service/internal/delivery/http/middleware"
	"tagfeed-service/internal/model"
)

type PostDeleter interface {
	DeletePost(ctx context.Context, caller model.Caller, id int64) error
}

type DeletePostHandler struct {
	postService PostDeleter
}

func NewDeletePostHandler(postService PostDeleter) *DeletePostHandler {
	return &DeletePostHandler{postService: postService}
}

func (h *DeletePostHandler) Handle(c *gin.Context) {
	caller, _ := middleware.CallerFromContext(c)

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.postService.DeletePost(c.Request.Context(), caller, postID); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "post deleted"})
}
