package feed_http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/model"
)

type TagCreator interface {
	CreateTag(ctx context.Context, name string) (*model.Tag, error)
}

type CreateTagHandler struct {
	postService TagCreator
	validate    *validator.Validate
}

func NewCreateTagHandler(postService TagCreator, validate *validator.Validate) *CreateTagHandler {
	return &CreateTagHandler{
		postService: postService,
		validate:    validate,
	}
}

type createTagRequest struct {
	Tag string `json:"tag" validate:"required"`
}

func (h *CreateTagHandler) Handle(c *gin.Context) {
	var req createTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(c, custom_errors.ErrTagNameRequired)
		return
	}

	tag, err := h.postService.CreateTag(c.Request.Context(), req.Tag)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, tag)
}
