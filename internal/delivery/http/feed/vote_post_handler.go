package feed_http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tagfeed-service/internal/delivery/http/middleware"
	feedback_service "tagfeed-service/internal/service/feedback"
)

type VotePostHandler struct {
	feedbackService feedback_service.Service
}

func NewVotePostHandler(feedbackService feedback_service.Service) *VotePostHandler {
	return &VotePostHandler{feedbackService: feedbackService}
}

func (h *VotePostHandler) HandleLike(c *gin.Context) {
	h.handle(c, true)
}

func (h *VotePostHandler) HandleDislike(c *gin.Context) {
	h.handle(c, false)
}

func (h *VotePostHandler) handle(c *gin.Context, like bool) {
	caller, _ := middleware.CallerFromContext(c)

	postID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || postID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if like {
		err = h.feedbackService.Like(c.Request.Context(), caller.UserID, postID)
	} else {
		err = h.feedbackService.Dislike(c.Request.Context(), caller.UserID, postID)
	}
	if err != nil {
		writeError(c, err)
		return
	}

	if like {
		c.JSON(http.StatusOK, gin.H{"status": "post liked"})
	} else {
		c.JSON(http.StatusOK, gin.H{"status": "post disliked"})
	}
}
