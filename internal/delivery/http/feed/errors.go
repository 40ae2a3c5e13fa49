package feed_http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tagfeed-service/internal/custom_errors"
)

// writeError maps service sentinels onto HTTP statuses.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, custom_errors.ErrDescriptionRequired),
		errors.Is(err, custom_errors.ErrTagNameRequired),
		errors.Is(err, custom_errors.ErrPostIDRequired),
		errors.Is(err, custom_errors.ErrValidationFailed):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, custom_errors.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, custom_errors.ErrPostNotFound),
		errors.Is(err, custom_errors.ErrTagNotFound),
		errors.Is(err, custom_errors.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
