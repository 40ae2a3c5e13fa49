package tag_repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	tag_repository "tagfeed-service/internal/repository/tag"
	"tagfeed-service/internal/repository/tag/memory"
)

func setupTagTest(t *testing.T) (tag_repository.Repository, *memory.TagRepository) {
	log := logger.New("test")
	repo := memory.NewTagRepository(log)
	return repo, repo
}

func TestTagRepository_Create_Idempotent(t *testing.T) {
	repo, _ := setupTagTest(t)

	first, err := repo.Create(context.Background(), "Cat")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "Cat", first.Name)
	assert.NotZero(t, first.ID)

	second, err := repo.Create(context.Background(), "Cat")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "repeated create must return the same tag row")

	// names are case-sensitive, so a different casing is a new tag
	other, err := repo.Create(context.Background(), "cat")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestTagRepository_GetByName(t *testing.T) {
	repo, _ := setupTagTest(t)

	created, err := repo.Create(context.Background(), "Dog")
	require.NoError(t, err)

	got, err := repo.GetByName(context.Background(), "Dog")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)

	_, err = repo.GetByName(context.Background(), "missing")
	assert.ErrorIs(t, err, custom_errors.ErrTagNotFound)
}

func TestTagRepository_MapToPost_Idempotent(t *testing.T) {
	repo, mem := setupTagTest(t)
	mem.SimulatePostExists(1, true)

	tag, err := repo.Create(context.Background(), "Cat")
	require.NoError(t, err)

	err = repo.MapToPost(context.Background(), 1, []int64{tag.ID})
	require.NoError(t, err)
	err = repo.MapToPost(context.Background(), 1, []int64{tag.ID})
	require.NoError(t, err)

	tags, err := repo.FindByPost(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, tags, 1, "repeated mapping must not duplicate the link")
}

func TestTagRepository_MapToPost_Errors(t *testing.T) {
	repo, mem := setupTagTest(t)

	tag, err := repo.Create(context.Background(), "Cat")
	require.NoError(t, err)

	tests := []struct {
		name    string
		postID  int64
		tagIDs  []int64
		wantErr error
	}{
		{
			name:    "missing post",
			postID:  42,
			tagIDs:  []int64{tag.ID},
			wantErr: custom_errors.ErrPostNotFound,
		},
		{
			name:    "missing tag",
			postID:  1,
			tagIDs:  []int64{999},
			wantErr: custom_errors.ErrTagNotFound,
		},
		{
			name:   "empty tag list is a no-op",
			postID: 42,
			tagIDs: nil,
		},
	}

	mem.SimulatePostExists(1, true)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.MapToPost(context.Background(), tt.postID, tt.tagIDs)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTagRepository_TagIDsByPost(t *testing.T) {
	repo, mem := setupTagTest(t)
	mem.SimulatePostExists(1, true)

	cat, err := repo.Create(context.Background(), "Cat")
	require.NoError(t, err)
	dog, err := repo.Create(context.Background(), "Dog")
	require.NoError(t, err)

	require.NoError(t, repo.MapToPost(context.Background(), 1, []int64{cat.ID, dog.ID}))

	ids, err := repo.TagIDsByPost(context.Background(), 1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{cat.ID, dog.ID}, ids)
}
