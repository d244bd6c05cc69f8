package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/application"
	"github.com/oksasatya/artflow-api/internal/interface/middleware"
	"github.com/oksasatya/artflow-api/pkg/response"
)

type SocialHandler struct {
	Svc    *application.SocialService
	Logger *logrus.Logger
}

func NewSocialHandler(svc *application.SocialService, logger *logrus.Logger) *SocialHandler {
	return &SocialHandler{Svc: svc, Logger: logger}
}

type followRequest struct {
	ArtistID string `json:"artistId" binding:"required,uuid"`
}

// Follow POST /api/artists/follow
func (h *SocialHandler) Follow(c *gin.Context) {
	var req followRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.Follow(c.Request.Context(), middleware.UserID(c), req.ArtistID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", nil)
}

// Unfollow POST /api/artists/unfollow
func (h *SocialHandler) Unfollow(c *gin.Context) {
	var req followRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.Unfollow(c.Request.Context(), middleware.UserID(c), req.ArtistID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", nil)
}

// Artists GET /api/artists?page=N
func (h *SocialHandler) Artists(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	res, err := h.Svc.ListArtists(c.Request.Context(), page)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{
		"artists":     res.Artists,
		"currentPage": res.CurrentPage,
		"totalPages":  res.TotalPages,
	})
}

// Search GET /api/artists/search?q=
func (h *SocialHandler) Search(c *gin.Context) {
	artists, err := h.Svc.SearchArtists(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"artists": artists})
}

// ArtistPosts GET /api/artists/:id/posts
func (h *SocialHandler) ArtistPosts(c *gin.Context) {
	artistID, ok := idParam(c, "id", application.ErrArtistNotFound)
	if !ok {
		return
	}
	posts, err := h.Svc.ListArtistPosts(c.Request.Context(), artistID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"artistPosts": posts})
}

// ArtistFollowers GET /api/artists/:id/followers
func (h *SocialHandler) ArtistFollowers(c *gin.Context) {
	artistID, ok := idParam(c, "id", application.ErrArtistNotFound)
	if !ok {
		return
	}
	users, err := h.Svc.ListArtistFollowers(c.Request.Context(), artistID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"followers": users})
}

// Followings GET /api/followings
func (h *SocialHandler) Followings(c *gin.Context) {
	artists, err := h.Svc.ListUserFollowings(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"followings": artists})
}
