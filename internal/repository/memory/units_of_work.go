package memory

import (
	"context"

	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
	image_repository "tagfeed-service/internal/repository/image"
	image_memory "tagfeed-service/internal/repository/image/memory"
	like_repository "tagfeed-service/internal/repository/like"
	like_memory "tagfeed-service/internal/repository/like/memory"
	post_repository "tagfeed-service/internal/repository/post"
	post_memory "tagfeed-service/internal/repository/post/memory"
	"tagfeed-service/internal/repository/postgres"
	tag_repository "tagfeed-service/internal/repository/tag"
	tag_memory "tagfeed-service/internal/repository/tag/memory"
	weight_repository "tagfeed-service/internal/repository/weight"
	weight_memory "tagfeed-service/internal/repository/weight/memory"
)

// UnitOfWork is the in-memory counterpart of the postgres unit of work.
// It hands out the shared memory repositories; commit and rollback are
// no-ops, so it gives repository semantics without transactionality.
type UnitOfWork struct {
	Posts   *post_memory.PostRepository
	Tags    *tag_memory.TagRepository
	Images  *image_memory.ImageRepository
	Likes   *like_memory.LikeRepository
	Weights *weight_memory.WeightRepository
}

func NewUnitOfWork(log *logger.Logger) *UnitOfWork {
	return &UnitOfWork{
		Posts:   post_memory.NewPostRepository(log),
		Tags:    tag_memory.NewTagRepository(log),
		Images:  image_memory.NewImageRepository(log),
		Likes:   like_memory.NewLikeRepository(log),
		Weights: weight_memory.NewWeightRepository(log),
	}
}

func (u *UnitOfWork) Begin(ctx context.Context) (postgres.Transaction, error) {
	return &memoryTransaction{uow: u}, nil
}

type memoryTransaction struct {
	uow *UnitOfWork
}

func (t *memoryTransaction) Commit(ctx context.Context) error   { return nil }
func (t *memoryTransaction) Rollback(ctx context.Context) error { return nil }

func (t *memoryTransaction) PostRepository() post_repository.Repository {
	return &linkedPostRepository{Repository: t.uow.Posts, uow: t.uow}
}

func (t *memoryTransaction) TagRepository() tag_repository.Repository {
	return t.uow.Tags
}

func (t *memoryTransaction) ImageRepository() image_repository.Repository {
	return t.uow.Images
}

func (t *memoryTransaction) LikeRepository() like_repository.Repository {
	return t.uow.Likes
}

func (t *memoryTransaction) WeightRepository() weight_repository.Repository {
	return t.uow.Weights
}

// linkedPostRepository keeps the sibling repositories' post-existence
// indexes in step with creates and deletes, the way foreign keys do in
// the real store.
type linkedPostRepository struct {
	post_repository.Repository
	uow *UnitOfWork
}

func (r *linkedPostRepository) Create(ctx context.Context, post *model.Post) (*model.Post, error) {
	created, err := r.Repository.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	r.uow.Tags.SimulatePostExists(created.ID, true)
	r.uow.Images.SimulatePostExists(created.ID, true)
	r.uow.Likes.SimulatePostExists(created.ID, true)
	return created, nil
}

func (r *linkedPostRepository) Delete(ctx context.Context, id int64) error {
	if err := r.Repository.Delete(ctx, id); err != nil {
		return err
	}
	r.uow.Tags.SimulatePostExists(id, false)
	r.uow.Images.SimulatePostExists(id, false)
	r.uow.Likes.SimulatePostExists(id, false)
	return nil
}
