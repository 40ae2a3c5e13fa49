package model

// PostImage holds a reference to an uploaded image blob. Storage and
// serving of the blob itself belong to the media collaborator.
type PostImage struct {
	ID     int64  `json:"id"`
	PostID int64  `json:"post_id"`
	Image  string `json:"image"`
}
