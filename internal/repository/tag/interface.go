package tag_repository

import (
	"context"

	"tagfeed-service/internal/model"
)

type Repository interface {
	// Create is get-or-create by name: an existing tag is returned
	// unchanged, never duplicated.
	Create(ctx context.Context, name string) (*model.Tag, error)
	GetByName(ctx context.Context, name string) (*model.Tag, error)
	FindByPost(ctx context.Context, postID int64) ([]*model.Tag, error)
	TagIDsByPost(ctx context.Context, postID int64) ([]int64, error)
	// MapToPost idempotently links every tag id to the post.
	MapToPost(ctx context.Context, postID int64, tagIDs []int64) error
}
