package user_client_cached

import (
	"context"
	"log/slog"
	"time"

	"tagfeed-service/internal/cache"
	user_client "tagfeed-service/internal/clients/user"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/metrics"
	"tagfeed-service/internal/model"
)

// UserClient is a read-through cache over the user-service client.
type UserClient struct {
	client  user_client.Client
	cache   cache.UserCache
	log     *logger.Logger
	metrics metrics.MetricsProvider
}

func NewUserClient(client user_client.Client, userCache cache.UserCache, log *logger.Logger, metricsProvider metrics.MetricsProvider) *UserClient {
	return &UserClient{
		client:  client,
		cache:   userCache,
		log:     log,
		metrics: metricsProvider,
	}
}

func (c *UserClient) GetUser(ctx context.Context, id int64) (*model.User, error) {
	start := time.Now()
	cached, err := c.cache.GetUser(ctx, id)
	c.metrics.RecordCacheOperationDuration("user_get", time.Since(start))
	if err == nil {
		c.metrics.IncrementCacheHits()
		return cached, nil
	}
	c.metrics.IncrementCacheMisses()

	user, err := c.client.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if cacheErr := c.cache.SetUser(ctx, user); cacheErr != nil {
		c.log.Warn("Failed to cache user",
			slog.Int64("user_id", id),
			slog.String("error", cacheErr.Error()))
	}
	return user, nil
}

func (c *UserClient) GetUsers(ctx context.Context, ids []int64) ([]*model.User, error) {
	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		user, err := c.GetUser(ctx, id)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
