package memory

import (
	"context"
	"sync"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/model"
)

// UserClient is an in-memory double of the user service for tests.
type UserClient struct {
	mu    sync.RWMutex
	users map[int64]*model.User
}

func NewUserClient() *UserClient {
	return &UserClient{users: make(map[int64]*model.User)}
}

func (c *UserClient) AddUser(user *model.User) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users[user.ID] = user
}

func (c *UserClient) GetUser(ctx context.Context, id int64) (*model.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	user, exists := c.users[id]
	if !exists {
		return nil, custom_errors.ErrUserNotFound
	}
	userCopy := *user
	return &userCopy, nil
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
