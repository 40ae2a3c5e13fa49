package user_client_rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
)

const requestTimeout = 5 * time.Second

type UserClient struct {
	http *resty.Client
	log  *logger.Logger
}

func NewUserClient(baseURL string, log *logger.Logger) *UserClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(requestTimeout).
		SetRetryCount(2)

	return &UserClient{http: client, log: log}
}

func (c *UserClient) GetUser(ctx context.Context, id int64) (*model.User, error) {
	var user model.User

	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&user).
		Get(fmt.Sprintf("/v1/users/%d", id))
	if err != nil {
		c.log.Error("Failed to request user service", slog.Int64("user_id", id), slog.String("error", err.Error()))
		return nil, custom_errors.ErrExternalServiceError
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		return &user, nil
	case http.StatusNotFound:
		c.log.Debug("User not found in user service", slog.Int64("user_id", id))
		return nil, custom_errors.ErrUserNotFound
	default:
		c.log.Error("Unexpected user service response",
			slog.Int64("user_id", id),
			slog.Int("status", resp.StatusCode()))
		return nil, custom_errors.ErrExternalServiceError
	}
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
