package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/artflow-api/internal/interface/http"
	"github.com/oksasatya/artflow-api/pkg/helpers"
)

type SocialModule struct {
	Handler *handlers.SocialHandler
	JWT     *helpers.JWTManager
}

func NewSocialModule(h *handlers.SocialHandler, jwt *helpers.JWTManager) *SocialModule {
	return &SocialModule{Handler: h, JWT: jwt}
}

func (m *SocialModule) Register(rg *gin.RouterGroup) {
	auth := protectedGroup(rg, m.JWT)
	auth.GET("/artists", m.Handler.Artists)
	auth.GET("/artists/search", m.Handler.Search)
	auth.GET("/artists/:id/posts", m.Handler.ArtistPosts)
	auth.GET("/artists/:id/followers", m.Handler.ArtistFollowers)
	auth.POST("/artists/follow", m.Handler.Follow)
	auth.POST("/artists/unfollow", m.Handler.Unfollow)
	auth.GET("/followings", m.Handler.Followings)
}
