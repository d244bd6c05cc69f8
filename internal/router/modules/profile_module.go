package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/artflow-api/internal/interface/http"
	"github.com/oksasatya/artflow-api/pkg/helpers"
)

// ProfileModule: PUT /api/profile, POST /api/profile/image
type ProfileModule struct {
	Handler *handlers.ProfileHandler
	JWT     *helpers.JWTManager
}

func NewProfileModule(h *handlers.ProfileHandler, jwt *helpers.JWTManager) *ProfileModule {
	return &ProfileModule{Handler: h, JWT: jwt}
}

func (m *ProfileModule) Register(rg *gin.RouterGroup) {
	auth := protectedGroup(rg, m.JWT)
	auth.PUT("/profile", m.Handler.UpdateProfile)
	auth.POST("/profile/image", m.Handler.UploadProfileImage)
}
