package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/artflow-api/internal/container"
	"github.com/oksasatya/artflow-api/internal/interface/middleware"
	"github.com/oksasatya/artflow-api/pkg/helpers"
)

// protectedGroup returns a group behind Auth with the softer per-IP and
// per-user limits shared by all signed-in routes.
func protectedGroup(rg *gin.RouterGroup, jwt *helpers.JWTManager) *gin.RouterGroup {
	rdb := container.GetRedis()
	g := rg.Group("/")
	g.Use(middleware.Auth(rdb, jwt))
	g.Use(
		middleware.RateLimit(rdb, 300, time.Minute, middleware.KeyByIP(), nil),
		middleware.RateLimit(rdb, 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	return g
}
