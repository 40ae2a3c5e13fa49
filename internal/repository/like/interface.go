package like_repository

import (
	"context"

	"tagfeed-service/internal/model"
)

type Repository interface {
	// SetVote upserts the single (user, post) vote row, overwriting any
	// previous value.
	SetVote(ctx context.Context, userID, postID int64, liked bool) (*model.PostLike, error)
	// GetVote returns (nil, nil) when the user never voted on the post.
	GetVote(ctx context.Context, userID, postID int64) (*model.PostLike, error)
	// CountVotesByUser counts likes and dislikes on a post, scoped to the
	// viewer's own rows.
	CountVotesByUser(ctx context.Context, viewerID, postID int64) (likes, dislikes int64, err error)
	LikedUserIDs(ctx context.Context, postID int64) ([]int64, error)
}
