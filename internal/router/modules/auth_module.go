package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/artflow-api/internal/container"
	handlers "github.com/oksasatya/artflow-api/internal/interface/http"
	"github.com/oksasatya/artflow-api/internal/interface/middleware"
	"github.com/oksasatya/artflow-api/pkg/helpers"
)

// AuthModule wires the account lifecycle.
// Public: POST /api/register, /api/otp/verify, /api/otp/resend, /api/login,
// /api/password/forgot, /api/password/update
// Protected: GET /api/me, POST /api/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rdb := container.GetRedis()

	// Public endpoints with IP-based rate limits
	registerLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	otpLimiter := middleware.RateLimit(rdb, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	resendLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(rdb, 10, time.Minute, middleware.KeyByIPAndPath(), nil)
	passwordLimiter := middleware.RateLimit(rdb, 5, time.Minute, middleware.KeyByIPAndPath(), nil)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/otp/verify", otpLimiter, m.Handler.VerifyOtp)
	rg.POST("/otp/resend", resendLimiter, m.Handler.ResendOtp)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/password/forgot", passwordLimiter, m.Handler.ForgotPassword)
	rg.POST("/password/update", passwordLimiter, m.Handler.UpdatePassword)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(rdb, m.JWT))
	{
		auth.GET("/me", m.Handler.Me)
		auth.POST("/logout", m.Handler.Logout)
	}
}
