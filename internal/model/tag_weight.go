package model

// TagWeight is a running signed affinity counter of one user toward one
// tag, unbounded in either direction. Only the feedback service mutates it.
type TagWeight struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	TagID  int64 `json:"tag_id"`
	Weight int32 `json:"weight"`
}
