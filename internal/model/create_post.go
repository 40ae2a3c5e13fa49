package model

type CreatePostDTO struct {
	Description string   `json:"description"`
	TagIDs      []int64  `json:"tag_ids,omitempty"`
	Images      []string `json:"images,omitempty"`
}
