package middleware

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/metrics"
)

const requestIDHeader = "X-Request-ID"

// RequestLogger logs every request with a request id and feeds the HTTP
// metrics.
func RequestLogger(log *logger.Logger, metricsProvider metrics.MetricsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)

		start := time.Now()
		c.Next()
		duration := time.Since(start)

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := c.Writer.Status()

		metricsProvider.IncrementHTTPRequests(c.Request.Method, path, strconv.Itoa(status))
		metricsProvider.RecordHTTPRequestDuration(c.Request.Method, path, duration)

		log.Info("request handled",
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", path),
			slog.Int("status", status),
			slog.Duration("duration", duration))
	}
}
