package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/application"
	"github.com/oksasatya/artflow-api/pkg/response"
)

type BannerHandler struct {
	Svc    *application.BannerService
	Logger *logrus.Logger
}

func NewBannerHandler(svc *application.BannerService, logger *logrus.Logger) *BannerHandler {
	return &BannerHandler{Svc: svc, Logger: logger}
}

// List GET /api/banners
func (h *BannerHandler) List(c *gin.Context) {
	banners, err := h.Svc.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"banners": banners})
}
