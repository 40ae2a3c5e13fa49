package user_client

import (
	"context"

	"tagfeed-service/internal/model"
)

// Client talks to the external user-management collaborator. Account
// creation and authentication live there; this service only resolves
// identities.
type Client interface {
	GetUser(ctx context.Context, id int64) (*model.User, error)
	GetUsers(ctx context.Context, ids []int64) ([]*model.User, error)
}
