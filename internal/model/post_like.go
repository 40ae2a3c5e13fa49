package model

// PostLike is the per-(user, post) vote row. Liked is tri-state:
// nil means the user never voted, true liked, false disliked.
// At most one row exists per (user, post) pair.
type PostLike struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"user_id"`
	PostID int64 `json:"post_id"`
	Liked  *bool `json:"liked"`
}
