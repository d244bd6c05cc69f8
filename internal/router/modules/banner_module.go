package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/artflow-api/internal/container"
	handlers "github.com/oksasatya/artflow-api/internal/interface/http"
	"github.com/oksasatya/artflow-api/internal/interface/middleware"
)

// BannerModule: GET /api/banners (public)
type BannerModule struct {
	Handler *handlers.BannerHandler
}

func NewBannerModule(h *handlers.BannerHandler) *BannerModule {
	return &BannerModule{Handler: h}
}

func (m *BannerModule) Register(rg *gin.RouterGroup) {
	rl := middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByIP(), nil)
	rg.GET("/banners", rl, m.Handler.List)
}
