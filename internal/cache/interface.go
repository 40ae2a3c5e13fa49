package cache

import (
	"context"

	"tagfeed-service/internal/model"
)

// Only viewer-independent data is cached: bare post rows, per-post tag
// lists, and resolved users. Votes, counts, and weights always come from
// the store.

type PostCache interface {
	GetPost(ctx context.Context, postID int64) (*model.Post, error)
	SetPost(ctx context.Context, post *model.Post) error
	DeletePost(ctx context.Context, postID int64) error
}

type TagCache interface {
	GetPostTags(ctx context.Context, postID int64) ([]*model.Tag, error)
	SetPostTags(ctx context.Context, postID int64, tags []*model.Tag) error
	DeletePostTags(ctx context.Context, postID int64) error
}

type UserCache interface {
	GetUser(ctx context.Context, userID int64) (*model.User, error)
	SetUser(ctx context.Context, user *model.User) error
	DeleteUser(ctx context.Context, userID int64) error
}
