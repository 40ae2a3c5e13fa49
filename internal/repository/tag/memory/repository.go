package memory

import (
	"context"
	"sync"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
)

type TagRepository struct {
	log        *logger.Logger
	mu         sync.RWMutex
	tags       map[int64]*model.Tag
	tagsByName map[string]*model.Tag
	postTags   map[int64]map[int64]bool
	postExists map[int64]bool
	nextID     int64
}

func NewTagRepository(log *logger.Logger) *TagRepository {
	return &TagRepository{
		log:        log,
		tags:       make(map[int64]*model.Tag),
		tagsByName: make(map[string]*model.Tag),
		postTags:   make(map[int64]map[int64]bool),
		postExists: make(map[int64]bool),
		nextID:     1,
	}
}

func (t *TagRepository) SimulatePostExists(postID int64, exists bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.postExists[postID] = exists
}

func (t *TagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if tag, exists := t.tagsByName[name]; exists {
		tagCopy := *tag
		return &tagCopy, nil
	}

	tag := &model.Tag{
		ID:   t.nextID,
		Name: name,
	}
	t.nextID++

	t.tags[tag.ID] = tag
	t.tagsByName[tag.Name] = tag

	tagCopy := *tag
	return &tagCopy, nil
}

func (t *TagRepository) GetByName(ctx context.Context, name string) (*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tag, exists := t.tagsByName[name]
	if !exists {
		return nil, custom_errors.ErrTagNotFound
	}
	tagCopy := *tag
	return &tagCopy, nil
}

func (t *TagRepository) FindByPost(ctx context.Context, postID int64) ([]*model.Tag, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var result []*model.Tag
	if tagMap, exists := t.postTags[postID]; exists {
		for tagID := range tagMap {
			if tag, found := t.tags[tagID]; found {
				tagCopy := *tag
				result = append(result, &tagCopy)
			}
		}
	}
	return result, nil
}

func (t *TagRepository) TagIDsByPost(ctx context.Context, postID int64) ([]int64, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	var ids []int64
	if tagMap, exists := t.postTags[postID]; exists {
		for tagID := range tagMap {
			ids = append(ids, tagID)
		}
	}
	return ids, nil
}

func (t *TagRepository) MapToPost(ctx context.Context, postID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if exists, found := t.postExists[postID]; !found || !exists {
		return custom_errors.ErrPostNotFound
	}

	if _, exists := t.postTags[postID]; !exists {
		t.postTags[postID] = make(map[int64]bool)
	}

	for _, tagID := range tagIDs {
		if _, exists := t.tags[tagID]; !exists {
			return custom_errors.ErrTagNotFound
		}
		t.postTags[postID][tagID] = true
	}
	return nil
}
