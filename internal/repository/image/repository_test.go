package image_repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/repository/image/memory"
)

func setupImageTest(t *testing.T) *memory.ImageRepository {
	log := logger.New("test")
	repo := memory.NewImageRepository(log)
	repo.SimulatePostExists(1, true)
	return repo
}

func TestImageRepository_Attach(t *testing.T) {
	repo := setupImageTest(t)

	require.NoError(t, repo.Attach(context.Background(), 1, []string{"a.jpg", "b.jpg"}))

	images, err := repo.GetByPost(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "a.jpg", images[0].Image)
	assert.Equal(t, int64(1), images[0].PostID)
}

func TestImageRepository_Attach_Errors(t *testing.T) {
	repo := setupImageTest(t)

	err := repo.Attach(context.Background(), 99, []string{"a.jpg"})
	assert.ErrorIs(t, err, custom_errors.ErrPostNotFound)

	// an empty list never touches the store
	assert.NoError(t, repo.Attach(context.Background(), 99, nil))
}

func TestImageRepository_GetByPosts(t *testing.T) {
	repo := setupImageTest(t)
	repo.SimulatePostExists(2, true)

	require.NoError(t, repo.Attach(context.Background(), 1, []string{"a.jpg"}))
	require.NoError(t, repo.Attach(context.Background(), 2, []string{"b.jpg", "c.jpg"}))

	byPost, err := repo.GetByPosts(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Len(t, byPost[1], 1)
	assert.Len(t, byPost[2], 2)
	assert.NotContains(t, byPost, int64(3))
}
