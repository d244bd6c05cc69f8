package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/artflow-api/internal/interface/http"
	"github.com/oksasatya/artflow-api/pkg/helpers"
)

type FeedModule struct {
	Handler *handlers.FeedHandler
	JWT     *helpers.JWTManager
}

func NewFeedModule(h *handlers.FeedHandler, jwt *helpers.JWTManager) *FeedModule {
	return &FeedModule{Handler: h, JWT: jwt}
}

func (m *FeedModule) Register(rg *gin.RouterGroup) {
	auth := protectedGroup(rg, m.JWT)
	auth.GET("/posts", m.Handler.AllPosts)
	auth.GET("/posts/following", m.Handler.FollowingPosts)
	auth.POST("/posts/like", m.Handler.Like)
	auth.POST("/posts/unlike", m.Handler.Unlike)
	auth.POST("/posts/comment", m.Handler.Comment)
	auth.GET("/posts/:id/comments", m.Handler.Comments)
	auth.DELETE("/posts/:id/comments/:commentId", m.Handler.DeleteComment)
}
