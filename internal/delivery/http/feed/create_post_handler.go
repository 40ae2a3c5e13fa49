package feed_http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/delivery/http/middleware"
	"tagfeed-service/internal/model"
)

type PostCreator interface {
	CreatePost(ctx context.Context, caller model.Caller, post *model.CreatePostDTO) (*model.PostView, error)
}

type CreatePostHandler struct {
	postService PostCreator
	validate    *validator.Validate
}

func NewCreatePostHandler(postService PostCreator, validate *validator.Validate) *CreatePostHandler {
	return &CreatePostHandler{
		postService: postService,
		validate:    validate,
	}
}

type createPostRequest struct {
	Description string   `json:"description" validate:"required"`
	Tags        string   `json:"tags" validate:"omitempty"`
	Images      []string `json:"images" validate:"omitempty,dive,required"`
}

func (h *CreatePostHandler) Handle(c *gin.Context) {
	caller, _ := middleware.CallerFromContext(c)

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fieldErr := range fieldErrs {
				if fieldErr.Field() == "Description" {
					writeError(c, custom_errors.ErrDescriptionRequired)
					return
				}
			}
		}
		writeError(c, custom_errors.ErrValidationFailed)
		return
	}

	tagIDs, err := parseTagIDs(req.Tags)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tag id list"})
		return
	}

	view, err := h.postService.CreatePost(c.Request.Context(), caller, &model.CreatePostDTO{
		Description: req.Description,
		TagIDs:      tagIDs,
		Images:      req.Images,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, view)
}

// parseTagIDs splits the comma-separated id list used by the wire format.
func parseTagIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
