package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/application"
	"github.com/oksasatya/artflow-api/internal/interface/middleware"
	"github.com/oksasatya/artflow-api/pkg/response"
)

type NotificationHandler struct {
	Svc    *application.NotificationService
	Logger *logrus.Logger
}

func NewNotificationHandler(svc *application.NotificationService, logger *logrus.Logger) *NotificationHandler {
	return &NotificationHandler{Svc: svc, Logger: logger}
}

// List GET /api/notifications
func (h *NotificationHandler) List(c *gin.Context) {
	list, err := h.Svc.ListForUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"notifications": list})
}

// Count GET /api/notifications/count
func (h *NotificationHandler) Count(c *gin.Context) {
	n, err := h.Svc.CountUnseen(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"count": n.Count, "messagesCount": n.MessagesCount})
}

// ClearSeen DELETE /api/notifications
func (h *NotificationHandler) ClearSeen(c *gin.Context) {
	n, err := h.Svc.ClearSeen(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "all notifications cleared", gin.H{"deleted": n})
}

// Delete DELETE /api/notifications/:id
func (h *NotificationHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id", application.ErrNotificationNotFound)
	if !ok {
		return
	}
	if err := h.Svc.DeleteOne(c.Request.Context(), middleware.UserID(c), id); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "deleted notification successfully", nil)
}
