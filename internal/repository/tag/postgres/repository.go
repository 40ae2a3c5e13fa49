package tag_repository_postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
	"tagfeed-service/internal/repository/postgres/db"
)

type TagRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewTagRepository(db db.PgDB, log *logger.Logger) *TagRepository {
	return &TagRepository{db: db, log: log}
}

func (t *TagRepository) Create(ctx context.Context, name string) (*model.Tag, error) {
	query := `
		INSERT INTO tags(name)
		VALUES (@name)
		ON CONFLICT (name) DO NOTHING
		RETURNING id, name`

	args := pgx.NamedArgs{"name": name}

	var tag model.Tag
	err := t.db.QueryRow(ctx, query, args).Scan(&tag.ID, &tag.Name)
	if err == nil {
		return &tag, nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		// Row already existed, the conflict swallowed the insert.
		return t.GetByName(ctx, name)
	}
	if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23505" {
		return t.GetByName(ctx, name)
	}

	t.log.Error("Error creating tag", slog.String("name", name), slog.String("error", err.Error()))
	return nil, fmt.Errorf("failed to create tag: %w", err)
}

func (t *TagRepository) GetByName(ctx context.Context, name string) (*model.Tag, error) {
	query := `SELECT id, name FROM tags WHERE name = @name`
	args := pgx.NamedArgs{"name": name}

	var tag model.Tag
	err := t.db.QueryRow(ctx, query, args).Scan(&tag.ID, &tag.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, custom_errors.ErrTagNotFound
		}
		t.log.Error("Error getting tag by name", slog.String("name", name), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &tag, nil
}

func (t *TagRepository) FindByPost(ctx context.Context, postID int64) ([]*model.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags t
		INNER JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = @post_id`

	args := pgx.NamedArgs{"post_id": postID}

	rows, err := t.db.Query(ctx, query, args)
	if err != nil {
		t.log.Error("Error finding tags by post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var tags []*model.Tag
	for rows.Next() {
		var tag model.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			t.log.Error("Error scanning tag row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

func (t *TagRepository) TagIDsByPost(ctx context.Context, postID int64) ([]int64, error) {
	query := `SELECT tag_id FROM post_tags WHERE post_id = @post_id AND tag_id IS NOT NULL`
	args := pgx.NamedArgs{"post_id": postID}

	rows, err := t.db.Query(ctx, query, args)
	if err != nil {
		t.log.Error("Error finding tag ids by post", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			t.log.Error("Error scanning tag id row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (t *TagRepository) MapToPost(ctx context.Context, postID int64, tagIDs []int64) error {
	if len(tagIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO post_tags (post_id, tag_id)
		VALUES (@post_id, @tag_id)
		ON CONFLICT (post_id, tag_id) DO NOTHING`

	for _, tagID := range tagIDs {
		args := pgx.NamedArgs{
			"post_id": postID,
			"tag_id":  tagID,
		}
		batch.Queue(query, args)
	}

	br := t.db.SendBatch(ctx, batch)
	defer br.Close()

	for range tagIDs {
		_, err := br.Exec()
		if err != nil {
			if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23503" {
				if pgerr.ConstraintName == "post_tags_post_id_fkey" {
					return custom_errors.ErrPostNotFound
				}
				return custom_errors.ErrTagNotFound
			}
			t.log.Error("Error mapping tags to post",
				slog.Int64("post_id", postID),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to map tags to post: %w", err)
		}
	}
	return nil
}
