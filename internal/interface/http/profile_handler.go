package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/application"
	"github.com/oksasatya/artflow-api/internal/interface/middleware"
	"github.com/oksasatya/artflow-api/pkg/helpers"
	"github.com/oksasatya/artflow-api/pkg/response"
)

const maxProfileImageBytes = 5 << 20

type ProfileHandler struct {
	Svc    *application.ProfileService
	Logger *logrus.Logger
}

func NewProfileHandler(svc *application.ProfileService, logger *logrus.Logger) *ProfileHandler {
	return &ProfileHandler{Svc: svc, Logger: logger}
}

type updateProfileRequest struct {
	Name    string `json:"name" binding:"required"`
	Mobile  string `json:"mobile" binding:"omitempty,mobile"`
	Profile string `json:"profile"`
}

// UpdateProfile PUT /api/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.Svc.UpdateProfile(c.Request.Context(), middleware.UserID(c), application.UpdateProfileInput{
		Name:    req.Name,
		Mobile:  req.Mobile,
		Profile: req.Profile,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "profile updated successfully", gin.H{"user": u})
}

// UploadProfileImage POST /api/profile/image (multipart field "image")
func (h *ProfileHandler) UploadProfileImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Invalid(c, map[string]string{"image": "is required"})
		return
	}
	if fh.Size > maxProfileImageBytes {
		response.Invalid(c, map[string]string{"image": "must be at most 5MB"})
		return
	}
	contentType := fh.Header.Get("Content-Type")
	if _, ok := helpers.ImageExt(contentType); !ok {
		response.Invalid(c, map[string]string{"image": "must be a jpeg, png, webp or gif image"})
		return
	}
	f, err := fh.Open()
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	defer func() { _ = f.Close() }()

	u, err := h.Svc.UploadProfileImage(c.Request.Context(), middleware.UserID(c), f, fh.Filename, contentType)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "profile updated successfully", gin.H{"user": u})
}
