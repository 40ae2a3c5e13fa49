package model

const (
	DefaultFeedOffset = 0
	DefaultFeedLimit  = 5
)

type FeedFilters struct {
	Offset int
	Limit  int
}
