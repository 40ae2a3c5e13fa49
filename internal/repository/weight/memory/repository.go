package memory

import (
	"context"
	"sync"

	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
)

type weightKey struct {
	userID int64
	tagID  int64
}

type WeightRepository struct {
	log     *logger.Logger
	mu      sync.RWMutex
	weights map[weightKey]*model.TagWeight
	nextID  int64
}

func NewWeightRepository(log *logger.Logger) *WeightRepository {
	return &WeightRepository{
		log:     log,
		weights: make(map[weightKey]*model.TagWeight),
		nextID:  1,
	}
}

func (w *WeightRepository) AdjustWeights(ctx context.Context, userID int64, tagIDs []int64, delta int32) error {
	if len(tagIDs) == 0 {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	for _, tagID := range tagIDs {
		key := weightKey{userID: userID, tagID: tagID}
		weight, exists := w.weights[key]
		if !exists {
			weight = &model.TagWeight{
				ID:     w.nextID,
				UserID: userID,
				TagID:  tagID,
			}
			w.nextID++
			w.weights[key] = weight
		}
		weight.Weight += delta
	}
	return nil
}

func (w *WeightRepository) GetByUser(ctx context.Context, userID int64) ([]*model.TagWeight, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var result []*model.TagWeight
	for key, weight := range w.weights {
		if key.userID == userID {
			weightCopy := *weight
			result = append(result, &weightCopy)
		}
	}
	return result, nil
}
