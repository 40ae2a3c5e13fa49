package delivery_http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	feed_http "tagfeed-service/internal/delivery/http/feed"
	"tagfeed-service/internal/delivery/http/middleware"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/metrics"
)

type Server struct {
	feedAPI *feed_http.FeedAPI
	server  *http.Server
	address string
	port    int
	log     *logger.Logger
	metrics metrics.MetricsProvider
}

func NewServer(feedAPI *feed_http.FeedAPI, address string, port int, log *logger.Logger, metricsProvider metrics.MetricsProvider) *Server {
	return &Server{
		feedAPI: feedAPI,
		address: address,
		port:    port,
		log:     log,
		metrics: metricsProvider,
	}
}

func (s *Server) Run() error {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestLogger(s.log, s.metrics),
		middleware.Identity(),
	)

	s.feedAPI.RegisterRoutes(router)

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.address, s.port),
		Handler: router,
	}

	s.log.Info("Starting HTTP server", slog.Int("port", s.port))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
