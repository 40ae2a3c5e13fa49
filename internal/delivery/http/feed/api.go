package feed_http

import (
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"tagfeed-service/internal/delivery/http/middleware"
	"tagfeed-service/internal/logger"
	feedback_service "tagfeed-service/internal/service/feedback"
	post_service "tagfeed-service/internal/service/post"
)

var validate = validator.New()

type FeedAPI struct {
	log *logger.Logger

	createPostHandler *CreatePostHandler
	createTagHandler  *CreateTagHandler
	mapTagsHandler    *MapTagsHandler
	votePostHandler   *VotePostHandler
	listPostsHandler  *ListPostsHandler
	getPostHandler    *GetPostHandler
	likedUsersHandler *LikedUsersHandler
	deletePostHandler *DeletePostHandler
}

func NewFeedAPI(postService post_service.Service, feedbackService feedback_service.Service, log *logger.Logger) *FeedAPI {
	return &FeedAPI{
		log:               log,
		createPostHandler: NewCreatePostHandler(postService, validate),
		createTagHandler:  NewCreateTagHandler(postService, validate),
		mapTagsHandler:    NewMapTagsHandler(postService, validate),
		votePostHandler:   NewVotePostHandler(feedbackService),
		listPostsHandler:  NewListPostsHandler(postService),
		getPostHandler:    NewGetPostHandler(postService),
		likedUsersHandler: NewLikedUsersHandler(postService),
		deletePostHandler: NewDeletePostHandler(postService),
	}
}

func (a *FeedAPI) RegisterRoutes(router gin.IRouter) {
	v1 := router.Group("/v1")

	// get-liked-users is the only endpoint open to unidentified callers.
	v1.GET("/posts/:id/likes", a.likedUsersHandler.Handle)

	identified := v1.Group("", middleware.RequireUser())
	identified.POST("/tags", a.createTagHandler.Handle)
	identified.POST("/posts", a.createPostHandler.Handle)
	identified.POST("/posts/:id/tags", a.mapTagsHandler.Handle)
	identified.POST("/posts/:id/like", a.votePostHandler.HandleLike)
	identified.POST("/posts/:id/dislike", a.votePostHandler.HandleDislike)
	identified.GET("/feed", a.listPostsHandler.Handle)
	identified.GET("/posts/:id", a.getPostHandler.Handle)
	identified.DELETE("/posts/:id", a.deletePostHandler.Handle)
}
