package feed_http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

type LikedUsersGetter interface {
	GetLikedUsers(ctx context.Context, postID int64) ([]string, error)
}

type LikedUsersHandler struct {
	postService LikedUsersGetter
}

func NewLikedUsersHandler(postService LikedUsersGetter) *LikedUsersHandler {
	return &LikedUsersHandler{postService: postService}
}

func (h *LikedUsersHandler) Handle(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	usernames, err := h.postService.GetLikedUsers(c.Request.Context(), postID)
	if err != nil {
		writeError(c, err)
		return
	}
	if usernames == nil {
		usernames = []string{}
	}

	c.JSON(http.StatusOK, gin.H{"users": usernames})
}
