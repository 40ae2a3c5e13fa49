package model

import "github.com/jackc/pgx/v5/pgtype"

type Post struct {
	ID          int64              `json:"id"`
	CreatedOn   pgtype.Timestamptz `json:"created_on"`
	Description string             `json:"description"`
}
