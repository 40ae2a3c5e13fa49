package model

// PostView is a post enriched for one viewer: its tags and images, the
// viewer's own vote, and the viewer-scoped like/dislike counts.
type PostView struct {
	Post     *Post        `json:"post"`
	Tags     []*Tag       `json:"tags"`
	Images   []*PostImage `json:"images"`
	Liked    *bool        `json:"like"`
	Likes    int64        `json:"likes"`
	Dislikes int64        `json:"dislikes"`
}
