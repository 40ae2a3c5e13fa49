package weight_repository_postgres

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

type WeightRepository struct {
	log *logger.Logger
	db  db.PgDB
}

func NewWeightRepository(db db.PgDB, log *logger.Logger) *WeightRepository {
	return &WeightRepository{db: db, log: log}
}

func (w *WeightRepository) AdjustWeights(ctx context.Context, userID int64, tagIDs []int64, delta int32) error {
	if len(tagIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO tag_weights (user_id, tag_id, weight)
		VALUES (@user_id, @tag_id, @delta)
		ON CONFLICT (user_id, tag_id)
		DO UPDATE SET weight = tag_weights.weight + @delta`

	for _, tagID := range tagIDs {
		args := pgx.NamedArgs{
			"user_id": userID,
			"tag_id":  tagID,
			"delta":   delta,
		}
		batch.Queue(query, args)
	}

	br := w.db.SendBatch(ctx, batch)
	defer br.Close()

	for range tagIDs {
		_, err := br.Exec()
		if err != nil {
			if pgerr, ok := err.(*pgconn.PgError); ok && pgerr.Code == "23503" {
				return custom_errors.ErrTagNotFound
			}
			w.log.Error("Error adjusting tag weights",
				slog.Int64("user_id", userID),
				slog.String("error", err.Error()))
			return fmt.Errorf("failed to adjust tag weights: %w", err)
		}
	}
	return nil
}

func (w *WeightRepository) GetByUser(ctx context.Context, userID int64) ([]*model.TagWeight, error) {
	args := pgx.NamedArgs{"user_id": userID}
	query := `SELECT id, user_id, tag_id, weight FROM tag_weights WHERE user_id = @user_id`

	rows, err := w.db.Query(ctx, query, args)
	if err != nil {
		w.log.Error("Error getting weights by user", slog.Int64("user_id", userID), slog.String("error", err.Error()))
		return nil, custom_errors.ErrDatabaseQuery
	}
	defer rows.Close()

	var weights []*model.TagWeight
	for rows.Next() {
		var weight model.TagWeight
		if err := rows.Scan(&weight.ID, &weight.UserID, &weight.TagID, &weight.Weight); err != nil {
			w.log.Error("Error scanning tag weight row", slog.String("error", err.Error()))
			return nil, custom_errors.ErrDatabaseScan
		}
		weights = append(weights, &weight)
	}
	return weights, rows.Err()
}
