package feed_http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type TagMapper interface {
	MapTagsToPost(ctx context.Context, postID int64, tagIDs []int64) error
}

type MapTagsHandler struct {
	postService TagMapper
	validate    *validator.Validate
}

func NewMapTagsHandler(postService TagMapper, validate *validator.Validate) *MapTagsHandler {
	return &MapTagsHandler{
		postService: postService,
		validate:    validate,
	}
}

type mapTagsRequest struct {
	Tags string `json:"tags" validate:"omitempty"`
}

func (h *MapTagsHandler) Handle(c *gin.Context) {
	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req mapTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	tagIDs, err := parseTagIDs(req.Tags)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id list"})
		return
	}

	if err := h.postService.MapTagsToPost(c.Request.Context(), postID, tagIDs); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "tags mapped"})
}
