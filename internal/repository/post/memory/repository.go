package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgtype"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
)

type PostRepository struct {
	log      *logger.Logger
	mu       sync.RWMutex
	posts    map[int64]*model.Post
	postTags map[int64][]int64
	weights  map[int64]map[int64]int32
	nextID   int64
}

func NewPostRepository(log *logger.Logger) *PostRepository {
	return &PostRepository{
		log:      log,
		posts:    make(map[int64]*model.Post),
		postTags: make(map[int64][]int64),
		weights:  make(map[int64]map[int64]int32),
		nextID:   1,
	}
}

// SimulatePostTags registers which tags a post carries, for ranking.
func (p *PostRepository) SimulatePostTags(postID int64, tagIDs []int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.postTags[postID] = append([]int64(nil), tagIDs...)
}

// SimulateViewerWeight stores a viewer's weight toward a tag, for ranking.
func (p *PostRepository) SimulateViewerWeight(userID, tagID int64, weight int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.weights[userID] == nil {
		p.weights[userID] = make(map[int64]int32)
	}
	p.weights[userID][tagID] = weight
}

func (p *PostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	created := &model.Post{
		ID:          p.nextID,
		CreatedOn:   pgtype.Timestamptz{Time: time.Now(), Valid: true},
		Description: post.Description,
	}
	p.nextID++
	p.posts[created.ID] = created

	postCopy := *created
	return &postCopy, nil
}

func (p *PostRepository) GetByID(ctx context.Context, id int64) (*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	post, exists := p.posts[id]
	if !exists {
		return nil, custom_errors.ErrPostNotFound
	}
	postCopy := *post
	return &postCopy, nil
}

func (p *PostRepository) Delete(ctx context.Context, id int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.posts[id]; !exists {
		return custom_errors.ErrPostNotFound
	}
	delete(p.posts, id)
	delete(p.postTags, id)
	return nil
}

// ListRanked mirrors the postgres join semantics: one candidate row per
// (post, tag), missing weights count as zero, untagged posts get one row.
func (p *PostRepository) ListRanked(ctx context.Context, viewerID int64, filters model.FeedFilters) ([]*model.Post, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	type rankedRow struct {
		post   *model.Post
		weight int32
	}

	var rows []rankedRow
	for id, post := range p.posts {
		tagIDs := p.postTags[id]
		if len(tagIDs) == 0 {
			rows = append(rows, rankedRow{post: post, weight: 0})
			continue
		}
		for _, tagID := range tagIDs {
			var w int32
			if viewerWeights, ok := p.weights[viewerID]; ok {
				w = viewerWeights[tagID]
			}
			rows = append(rows, rankedRow{post: post, weight: w})
		}
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].weight != rows[j].weight {
			return rows[i].weight > rows[j].weight
		}
		return rows[i].post.ID < rows[j].post.ID
	})

	start := filters.Offset
	if start > len(rows) {
		start = len(rows)
	}
	end := start + filters.Limit
	if end > len(rows) {
		end = len(rows)
	}

	var result []*model.Post
	for _, row := range rows[start:end] {
		postCopy := *row.post
		result = append(result, &postCopy)
	}
	return result, nil
}
