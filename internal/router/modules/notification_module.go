package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/artflow-api/internal/interface/http"
	"github.com/oksasatya/artflow-api/pkg/helpers"
)

type NotificationModule struct {
	Handler *handlers.NotificationHandler
	JWT     *helpers.JWTManager
}

func NewNotificationModule(h *handlers.NotificationHandler, jwt *helpers.JWTManager) *NotificationModule {
	return &NotificationModule{Handler: h, JWT: jwt}
}

func (m *NotificationModule) Register(rg *gin.RouterGroup) {
	auth := protectedGroup(rg, m.JWT)
	auth.GET("/notifications", m.Handler.List)
	auth.GET("/notifications/count", m.Handler.Count)
	auth.DELETE("/notifications", m.Handler.ClearSeen)
	auth.DELETE("/notifications/:id", m.Handler.Delete)
}
