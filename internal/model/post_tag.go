package model

// PostTag links a post to a tag. TagID is nullable: a mapping row may
// outlive its tag resolution.
type PostTag struct {
	ID     int64  `json:"id"`
	PostID int64  `json:"post_id"`
	TagID  *int64 `json:"tag_id,omitempty"`
}
