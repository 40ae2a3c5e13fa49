package memory

import (
	"context"
	"sync"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
)

type ImageRepository struct {
	log        *logger.Logger
	mu         sync.RWMutex
	images     map[int64][]*model.PostImage
	postExists map[int64]bool
	nextID     int64
}

func NewImageRepository(log *logger.Logger) *ImageRepository {
	return &ImageRepository{
		log:        log,
		images:     make(map[int64][]*model.PostImage),
		postExists: make(map[int64]bool),
		nextID:     1,
	}
}

func (m *ImageRepository) SimulatePostExists(postID int64, exists bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.postExists[postID] = exists
}

func (m *ImageRepository) Attach(ctx context.Context, postID int64, images []string) error {
	if len(images) == 0 {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if exists, found := m.postExists[postID]; !found || !exists {
		return custom_errors.ErrPostNotFound
	}

	for _, image := range images {
		m.images[postID] = append(m.images[postID], &model.PostImage{
			ID:     m.nextID,
			PostID: postID,
			Image:  image,
		})
		m.nextID++
	}
	return nil
}

func (m *ImageRepository) GetByPost(ctx context.Context, postID int64) ([]*model.PostImage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []*model.PostImage
	for _, image := range m.images[postID] {
		imageCopy := *image
		result = append(result, &imageCopy)
	}
	return result, nil
}

func (m *ImageRepository) GetByPosts(ctx context.Context, postIDs []int64) (map[int64][]*model.PostImage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make(map[int64][]*model.PostImage)
	for _, postID := range postIDs {
		for _, image := range m.images[postID] {
			imageCopy := *image
			result[postID] = append(result[postID], &imageCopy)
		}
	}
	return result, nil
}
