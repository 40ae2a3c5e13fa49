package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	redis_cache "tagfeed-service/internal/cache/redis"
	user_client_cached "tagfeed-service/internal/clients/user/cached"
	user_client_rest "tagfeed-service/internal/clients/user/rest"
	"tagfeed-service/internal/config"
	delivery_http "tagfeed-service/internal/delivery/http"
	feed_http "tagfeed-service/internal/delivery/http/feed"
	metrics_server "tagfeed-service/internal/delivery/metrics"
	"tagfeed-service/internal/logger"
	prometheus_metrics "tagfeed-service/internal/metrics/prometheus"
	image_postgres "tagfeed-service/internal/repository/image/postgres"
	like_postgres "tagfeed-service/internal/repository/like/postgres"
	post_postgres "tagfeed-service/internal/repository/post/postgres"
	"tagfeed-service/internal/repository/postgres"
	tag_postgres "tagfeed-service/internal/repository/tag/postgres"
	feedback_service "tagfeed-service/internal/service/feedback"
	post_service "tagfeed-service/internal/service/post"
)

func main() {
	cfg := config.MustLoad()
	dsn := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.Database.Username,
		cfg.Database.Password,
		cfg.Database.Host,
		cfg.Database.Port,
		cfg.Database.DbName)
	ctx := context.Background()
	log := logger.New(cfg.Env)

	if err := runMigrations(cfg.Database.MigrationsPath, dsn); err != nil {
		log.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Error("Failed to parse postgres poolConfig", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Error("Failed to create postgres pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	log.Info("Connecting to Redis",
		slog.String("address", cfg.Redis.Address),
		slog.Int("port", cfg.Redis.Port),
		slog.Int("db", cfg.Redis.DB))
	redisClient, err := redis_cache.NewClient(cfg.Redis, log)
	if err != nil {
		log.Error("Failed to create Redis client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error("Failed to close Redis connection", slog.String("error", err.Error()))
		}
	}()

	metrics := prometheus_metrics.NewPrometheusMetricsProvider()
	metrics.SetServiceHealth(true)

	postCache := redis_cache.NewPostCache(redisClient, log)
	tagCache := redis_cache.NewTagCache(redisClient, log)
	userCache := redis_cache.NewUserCache(redisClient, log)

	restUserClient := user_client_rest.NewUserClient(cfg.UserService.BaseURL, log)
	userClient := user_client_cached.NewUserClient(restUserClient, userCache, log, metrics)

	unitOfWork := postgres.NewPostgresUOW(pool, log)
	postRepo := post_postgres.NewPostRepository(pool, log)
	tagRepo := tag_postgres.NewTagRepository(pool, log)
	imageRepo := image_postgres.NewImageRepository(pool, log)
	likeRepo := like_postgres.NewLikeRepository(pool, log)

	basePostService := post_service.NewPostService(postRepo, tagRepo, imageRepo, likeRepo, unitOfWork, log, userClient, metrics)
	postService := post_service.NewPostServiceCacheDecorator(basePostService, postCache, tagCache, log, metrics)
	feedbackService := feedback_service.NewFeedbackService(unitOfWork, postCache, tagCache, log, metrics)

	feedAPI := feed_http.NewFeedAPI(postService, feedbackService, log)
	httpServer := delivery_http.NewServer(feedAPI, cfg.HTTPServer.Address, cfg.HTTPServer.Port, log, metrics)

	metricsServer := metrics_server.NewMetricsServer(cfg.Prometheus.Address, cfg.Prometheus.Port, log)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	done := make(chan bool, 1)
	metricsDone := make(chan bool, 1)

	go func() {
		if err := httpServer.Run(); err != nil {
			log.Error("HTTP server error", slog.String("error", err.Error()))
		}
		done <- true
	}()

	go func() {
		if err := metricsServer.Run(); err != nil {
			log.Error("Metrics server error", slog.String("error", err.Error()))
		}
		metricsDone <- true
	}()

	<-quit
	log.Info("Shutting down servers...")

	metrics.SetServiceHealth(false)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", slog.String("error", err.Error()))
	}

	if err := metricsServer.Shutdown(shutdownCtx); err != nil {
		log.Error("Metrics server shutdown error", slog.String("error", err.Error()))
	}

	<-done
	<-metricsDone

	log.Info("Server exited")
}

func runMigrations(migrationsPath, dsn string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("failed to init migrations: %w", err)
	}
	defer func() {
		_, _ = m.Close()
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	return nil
}
