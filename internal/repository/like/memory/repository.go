package memory

import (
	"context"
	"sync"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
)

type voteKey struct {
	userID int64
	postID int64
}

type LikeRepository struct {
	log        *logger.Logger
	mu         sync.RWMutex
	votes      map[voteKey]*model.PostLike
	postExists map[int64]bool
	nextID     int64
}

func NewLikeRepository(log *logger.Logger) *LikeRepository {
	return &LikeRepository{
		log:        log,
		votes:      make(map[voteKey]*model.PostLike),
		postExists: make(map[int64]bool),
		nextID:     1,
	}
}

func (l *LikeRepository) SimulatePostExists(postID int64, exists bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.postExists[postID] = exists
}

func (l *LikeRepository) SetVote(ctx context.Context, userID, postID int64, liked bool) (*model.PostLike, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if exists, found := l.postExists[postID]; !found || !exists {
		return nil, custom_errors.ErrPostNotFound
	}

	key := voteKey{userID: userID, postID: postID}
	vote, exists := l.votes[key]
	if !exists {
		vote = &model.PostLike{
			ID:     l.nextID,
			UserID: userID,
			PostID: postID,
		}
		l.nextID++
		l.votes[key] = vote
	}
	value := liked
	vote.Liked = &value

	voteCopy := *vote
	likedCopy := *vote.Liked
	voteCopy.Liked = &likedCopy
	return &voteCopy, nil
}

func (l *LikeRepository) GetVote(ctx context.Context, userID, postID int64) (*model.PostLike, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	vote, exists := l.votes[voteKey{userID: userID, postID: postID}]
	if !exists {
		return nil, nil
	}
	voteCopy := *vote
	if vote.Liked != nil {
		likedCopy := *vote.Liked
		voteCopy.Liked = &likedCopy
	}
	return &voteCopy, nil
}

func (l *LikeRepository) CountVotesByUser(ctx context.Context, viewerID, postID int64) (int64, int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var likes, dislikes int64
	if vote, exists := l.votes[voteKey{userID: viewerID, postID: postID}]; exists && vote.Liked != nil {
		if *vote.Liked {
			likes++
		} else {
			dislikes++
		}
	}
	return likes, dislikes, nil
}

func (l *LikeRepository) LikedUserIDs(ctx context.Context, postID int64) ([]int64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var userIDs []int64
	for key, vote := range l.votes {
		if key.postID == postID && vote.Liked != nil && *vote.Liked {
			userIDs = append(userIDs, key.userID)
		}
	}
	return userIDs, nil
}
