package feedback_service

import "context"

type Service interface {
	Like(ctx context.Context, userID, postID int64) error
	Dislike(ctx context.Context, userID, postID int64) error
}
