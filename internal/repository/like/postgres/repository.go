package like_repository_postgres

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"tagfeed-service/internal/custom_errors"
	"tagfeed-service/internal/logger"
	"tagfeed-service/internal/model"
	"tagfeed-service/internal/repository/postgres/db"
)

type LikeRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewLikeRepository(db db.PgDB, log *logger.Logger) *LikeRepository {
	return &LikeRepository{db: db, log: log}
}

func (l *LikeRepository) SetVote(ctx context.Context, userID, postID int64, liked bool) (*model.PostLike, error) {
	args := pgx.NamedArgs{
		"user_id": userID,
		"post_id": postID,
		"liked":   liked,
	}

	query := `
		INSERT INTO post_likes (user_id, post_id, liked)
		VALUES (@user_id, @post_id, @liked)
		ON CONFLICT (user_id, post_id) DO UPDATE SET liked = @liked
		RETURNING id, user_id, post_id, liked`

	var like model.PostLike
	err := l.db.QueryRow(ctx, query, args).Scan(
		&like.ID,
		&like.UserID,
		&like.PostID,
		&like.Liked,
	)
	if err != nil {
		if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23503" {
			return nil, custom_errors.ErrPostNotFound
		}
		l.log.Error("Error setting vote",
			slog.Int64("user_id", userID),
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &like, nil
}

func (l *LikeRepository) GetVote(ctx context.Context, userID, postID int64) (*model.PostLike, error) {
	args := pgx.NamedArgs{
		"user_id": userID,
		"post_id": postID,
	}
	query := `SELECT id, user_id, post_id, liked FROM post_likes
				WHERE user_id = @user_id AND post_id = @post_id`

	var like model.PostLike
	err := l.db.QueryRow(ctx, query, args).Scan(
		&like.ID,
		&like.UserID,
		&like.PostID,
		&like.Liked,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		l.log.Error("Error getting vote",
			slog.Int64("user_id", userID),
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	return &like, nil
}

func (l *LikeRepository) CountVotesByUser(ctx context.Context, viewerID, postID int64) (int64, int64, error) {
	args := pgx.NamedArgs{
		"user_id": viewerID,
		"post_id": postID,
	}
	query := `
		SELECT
			COUNT(*) FILTER (WHERE liked),
			COUNT(*) FILTER (WHERE NOT liked)
		FROM post_likes
		WHERE user_id = @user_id AND post_id = @post_id`

	var likes, dislikes int64
	err := l.db.QueryRow(ctx, query, args).Scan(&likes, &dislikes)
	if err != nil {
		l.log.Error("Error counting votes",
			slog.Int64("user_id", viewerID),
			slog.Int64("post_id", postID),
			slog.String("error", err.Error()))
		return 0, 0, custom_errors.ErrDatabaseQuery
	}
	return likes, dislikes, nil
}

func (l *LikeRepository) LikedUserIDs(ctx context.Context, postID int64) ([]int64, error) {
	args := pgx.NamedArgs{"post_id": postID}
	query := `SELECT user_id FROM post_likes WHERE post_id = @post_id AND liked`

	rows, err := l.db.Query(ctx, query, args)
	if err != nil {
		l.log.Error("Error getting liked user ids", slog.Int64("post_id", postID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var userIDs []int64
	for rows.Next() {
		var userID int64
		if err := rows.Scan(&userID); err != nil {
			l.log.Error("Error scanning liked user id", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		userIDs = append(userIDs, userID)
	}
	return userIDs, rows.Err()
}
