package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/application"
	"github.com/oksasatya/artflow-api/internal/interface/middleware"
	"github.com/oksasatya/artflow-api/pkg/response"
)

type FeedHandler struct {
	Svc    *application.FeedService
	Logger *logrus.Logger
}

func NewFeedHandler(svc *application.FeedService, logger *logrus.Logger) *FeedHandler {
	return &FeedHandler{Svc: svc, Logger: logger}
}

type postRequest struct {
	PostID string `json:"postId" binding:"required,uuid"`
}

type commentRequest struct {
	PostID string `json:"postId" binding:"required,uuid"`
	Text   string `json:"text" binding:"required,max=1000"`
}

// AllPosts GET /api/posts
func (h *FeedHandler) AllPosts(c *gin.Context) {
	posts, err := h.Svc.ListAllPosts(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"posts": posts})
}

// FollowingPosts GET /api/posts/following
func (h *FeedHandler) FollowingPosts(c *gin.Context) {
	posts, err := h.Svc.ListFollowedPosts(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"posts": posts})
}

// Like POST /api/posts/like
func (h *FeedHandler) Like(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.Svc.Like(c.Request.Context(), req.PostID, middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "liked post successfully", gin.H{"post": post})
}

// Unlike POST /api/posts/unlike
func (h *FeedHandler) Unlike(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.Svc.Unlike(c.Request.Context(), req.PostID, middleware.UserID(c))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"post": post})
}

// Comment POST /api/posts/comment
func (h *FeedHandler) Comment(c *gin.Context) {
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}
	post, err := h.Svc.Comment(c.Request.Context(), req.PostID, middleware.UserID(c), req.Text)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"post": post})
}

// Comments GET /api/posts/:id/comments
func (h *FeedHandler) Comments(c *gin.Context) {
	postID, ok := idParam(c, "id", application.ErrPostNotFound)
	if !ok {
		return
	}
	comments, err := h.Svc.GetComments(c.Request.Context(), postID)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"comments": comments})
}

// DeleteComment DELETE /api/posts/:id/comments/:commentId
func (h *FeedHandler) DeleteComment(c *gin.Context) {
	postID, ok := idParam(c, "id", application.ErrPostNotFound)
	if !ok {
		return
	}
	commentID, ok := idParam(c, "commentId", application.ErrCommentNotFound)
	if !ok {
		return
	}
	if err := h.Svc.DeleteComment(c.Request.Context(), postID, commentID); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", nil)
}
