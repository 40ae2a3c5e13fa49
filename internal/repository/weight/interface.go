package weight_repository

import (
	"context"

	"tagfeed-service/internal/model"
)

type Repository interface {
	// AdjustWeights shifts the user's weight toward every tag by delta,
	// creating missing rows at zero first. The increment is atomic per
	// row, so concurrent feedback cannot lose updates.
	AdjustWeights(ctx context.Context, userID int64, tagIDs []int64, delta int32) error
	GetByUser(ctx context.Context, userID int64) ([]*model.TagWeight, error)
}
