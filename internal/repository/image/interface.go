package image_repository

import (
	"context"

	"tagfeed-service/internal/model"
)

type Repository interface {
	Attach(ctx context.Context, postID int64, images []string) error
	GetByPost(ctx context.Context, postID int64) ([]*model.PostImage, error)
	GetByPosts(ctx context.Context, postIDs []int64) (map[int64][]*model.PostImage, error)
}
