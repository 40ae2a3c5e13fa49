package image_repository_postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
	"tagfeed-service/internal/repository/postgres/db"
)

type ImageRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewImageRepository(db db.PgDB, log *logger.Logger) *ImageRepository {
	return &ImageRepository{db: db, log: log}
}

func (m *ImageRepository) Attach(ctx context.Context, postID int64, images []string) error {
	if len(images) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `INSERT INTO post_images (post_id, image) VALUES (@post_id, @image)`

	for _, image := range images {
		args := pgx.NamedArgs{
			"post_id": postID,
			"image":   image,
		}
		batch.Queue(query, args)
	}

	br := m.db.SendBatch(ctx, batch)
	defer br.Close()

	for range images {
		_, err := br.Exec()
		if err != nil {
			if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23503" {
				return custom_errors.ErrPostNotFound
			}
			m.log.Error("Error attaching image to post",
				slog.Int64("post_id", postID),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to attach image: %w", err)
		}
	}
	return nil
}

func (m *ImageRepository) GetByPost(ctx context.Context, postID int64) ([]*model.PostImage, error) {
	query := `SELECT id, post_id, image FROM post_images WHERE post_id = @post_id`
	args := pgx.NamedArgs{"post_id": postID}

	rows, err := m.db.Query(ctx, query, args)
	if err != nil {
		m.log.Error("Error getting images by post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var images []*model.PostImage
	for rows.Next() {
		var image model.PostImage
		if err := rows.Scan(&image.ID, &image.PostID, &image.Image); err != nil {
			m.log.Error("Error scanning image row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		images = append(images, &image)
	}
	return images, rows.Err()
}

func (m *ImageRepository) GetByPosts(ctx context.Context, postIDs []int64) (map[int64][]*model.PostImage, error) {
	result := make(map[int64][]*model.PostImage)
	if len(postIDs) == 0 {
		return result, nil
	}

	query := `SELECT id, post_id, image FROM post_images WHERE post_id = ANY(@post_ids)`
	args := pgx.NamedArgs{"post_ids": postIDs}

	rows, err := m.db.Query(ctx, query, args)
	if err != nil {
		m.log.Error("Error getting images by posts", slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	for rows.Next() {
		var image model.PostImage
		if err := rows.Scan(&image.ID, &image.PostID, &image.Image); err != nil {
			m.log.Error("Error scanning image row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		result[image.PostID] = append(result[image.PostID], &image)
	}
	return result, rows.Err()
}
