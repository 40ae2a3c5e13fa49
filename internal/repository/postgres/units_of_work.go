package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"tagfeed-service/internal/logger"
	image_repository "tagfeed-service/internal/repository/image"
	image_repository_postgres "tagfeed-service/internal/repository/image/postgres"
	like_repository "tagfeed-service/internal/repository/like"
	like_repository_postgres "tagfeed-service/internal/repository/like/postgres"
	post_repository "tagfeed-service/internal/repository/post"
	post_repository_postgres "tagfeed-service/internal/repository/post/postgres"
	tag_repository "tagfeed-service/internal/repository/tag"
	tag_repository_postgres "tagfeed-service/internal/repository/tag/postgres"
	weight_repository "tagfeed-service/internal/repository/weight"
	weight_repository_postgres "tagfeed-service/internal/repository/weight/postgres"
)

type UnitOfWork interface {
	Begin(ctx context.Context) (Transaction, error)
}

type Transaction interface {
	PostRepository() post_repository.Repository
	TagRepository() tag_repository.Repository
	ImageRepository() image_repository.Repository
	LikeRepository() like_repository.Repository
	WeightRepository() weight_repository.Repository
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

type PostgresUnitOfWork struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

func NewPostgresUOW(pool *pgxpool.Pool, log *logger.Logger) UnitOfWork {
	return &PostgresUnitOfWork{pool: pool, log: log}
}

func (uow *PostgresUnitOfWork) Begin(ctx context.Context) (Transaction, error) {
	tx, err := uow.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("error beginning transaction: %w", err)
	}
	return &PostgresTransaction{tx: tx, log: uow.log}, nil
}

type PostgresTransaction struct {
	tx  pgx.Tx
	log *logger.Logger
}

func (t *PostgresTransaction) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *PostgresTransaction) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *PostgresTransaction) PostRepository() post_repository.Repository {
	return post_repository_postgres.NewPostRepository(t.tx, t.log)
}

func (t *PostgresTransaction) TagRepository() tag_repository.Repository {
	return tag_repository_postgres.NewTagRepository(t.tx, t.log)
}

func (t *PostgresTransaction) ImageRepository() image_repository.Repository {
	return image_repository_postgres.NewImageRepository(t.tx, t.log)
}

func (t *PostgresTransaction) LikeRepository() like_repository.Repository {
	return like_repository_postgres.NewLikeRepository(t.tx, t.log)
}

func (t *PostgresTransaction) WeightRepository() weight_repository.Repository {
	return weight_repository_postgres.NewWeightRepository(t.tx, t.log)
}
