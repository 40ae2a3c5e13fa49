package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tagfeed-service/internal/model"
)

// Authentication happens at the gateway; it forwards the verified
// identity in these headers. This service only materializes them.
const (
	callerContextKey = "caller"

	headerUserID   = "X-User-ID"
	headerUserRole = "X-User-Role"

	roleAdmin = "admin"
)

// Identity materializes the forwarded identity into the request context.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader(headerUserID)
		if rawID == "" {
			c.Next()
			return
		}

		userID, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || userID <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid user id header"})
			return
		}

		c.Set(callerContextKey, model.Caller{
			UserID: userID,
			Admin:  c.GetHeader(headerUserRole) == roleAdmin,
		})
		c.Next()
	}
}

// RequireUser rejects requests that arrived without an identity.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CallerFromContext(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "caller identity required"})
			return
		}
		c.Next()
	}
}

func CallerFromContext(c *gin.Context) (model.Caller, bool) {
	value, exists := c.Get(callerContextKey)
	if !exists {
		return model.Caller{}, false
	}
	caller, ok := value.(model.Caller)
	return caller, ok
}
