package memory

import (
	"context"
	"sync"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/model"
)

// Cache is an in-memory stand-in for the redis caches, used in tests.
// It implements all three cache interfaces over plain maps.
type Cache struct {
	mu       sync.RWMutex
	posts    map[int64]*model.Post
	postTags map[int64][]*model.Tag
	users    map[int64]*model.User
}

func NewCache() *Cache {
	return &Cache{
		posts:    make(map[int64]*model.Post),
		postTags: make(map[int64][]*model.Tag),
		users:    make(map[int64]*model.User),
	}
}

func (c *Cache) GetPost(ctx context.Context, postID int64) (*model.Post, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	post, exists := c.posts[postID]
	if !exists {
		return nil, custom_errors.ErrCacheMiss
	}
	postCopy := *post
	return &postCopy, nil
}

func (c *Cache) SetPost(ctx context.Context, post *model.Post) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	postCopy := *post
	c.posts[post.ID] = &postCopy
	return nil
}

func (c *Cache) DeletePost(ctx context.Context, postID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.posts, postID)
	return nil
}

func (c *Cache) GetPostTags(ctx context.Context, postID int64) ([]*model.Tag, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tags, exists := c.postTags[postID]
	if !exists {
		return nil, custom_errors.ErrCacheMiss
	}
	result := make([]*model.Tag, 0, len(tags))
	for _, tag := range tags {
		tagCopy := *tag
		result = append(result, &tagCopy)
	}
	return result, nil
}

func (c *Cache) SetPostTags(ctx context.Context, postID int64, tags []*model.Tag) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	stored := make([]*model.Tag, 0, len(tags))
	for _, tag := range tags {
		tagCopy := *tag
		stored = append(stored, &tagCopy)
	}
	c.postTags[postID] = stored
	return nil
}

func (c *Cache) DeletePostTags(ctx context.Context, postID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.postTags, postID)
	return nil
}

func (c *Cache) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	user, exists := c.users[userID]
	if !exists {
		return nil, custom_errors.ErrCacheMiss
	}
	userCopy := *user
	return &userCopy, nil
}

func (c *Cache) SetUser(ctx context.Context, user *model.User) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	userCopy := *user
	c.users[user.ID] = &userCopy
	return nil
}

func (c *Cache) DeleteUser(ctx context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.users, userID)
	return nil
}
