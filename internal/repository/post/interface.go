package post_repository

import (
	"context"

	"tagfeed-service/internal/model"
)

type Repository interface {
	Create(ctx context.Context, post *model.Post) (*model.Post, error)
	GetByID(ctx context.Context, id int64) (*model.Post, error)
	Delete(ctx context.Context, id int64) error
	// ListRanked orders posts for the viewer by descending tag weight
	// over the post_tags x tag_weights join and applies the page window.
	ListRanked(ctx context.Context, viewerID int64, filters model.FeedFilters) ([]*model.Post, error)
}
