package post_service

import (
	"context"

	"tagfeed-service/internal/model"
)

type Service interface {
	CreatePost(ctx context.Context, caller model.Caller, post *model.CreatePostDTO) (*model.PostView, error)
	CreateTag(ctx context.Context, name string) (*model.Tag, error)
	MapTagsToPost(ctx context.Context, postID int64, tagIDs []int64) error
	DeletePost(ctx context.Context, caller model.Caller, id int64) error
	GetPost(ctx context.Context, caller model.Caller, id int64) (*model.PostView, error)
	ListPosts(ctx context.Context, viewerID int64, filters model.FeedFilters) ([]*model.PostView, error)
	GetLikedUsers(ctx context.Context, postID int64) ([]string, error)
}
