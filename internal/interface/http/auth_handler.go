package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/application"
	"github.com/oksasatya/artflow-api/internal/interface/middleware"
	"github.com/oksasatya/artflow-api/pkg/helpers"
	"github.com/oksasatya/artflow-api/pkg/response"
)

type AuthHandler struct {
	Svc     *application.AuthService
	Logger  *logrus.Logger
	Cookies *helpers.Manager
}

func NewAuthHandler(svc *application.AuthService, logger *logrus.Logger, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{Svc: svc, Logger: logger, Cookies: helpers.NewCookie(cookieDomain, cookieSecure)}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Mobile   string `json:"mobile" binding:"required,mobile"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

type verifyOtpRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type emailRequest struct {
	Email string `json:"email" binding:"omitempty,email"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type updatePasswordRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,pwd"`
}

// Register POST /api/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}
	email, err := h.Svc.Register(c.Request.Context(), application.RegisterInput{
		Name:     req.Name,
		Mobile:   req.Mobile,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "otp sent to mail", gin.H{"email": email})
}

// VerifyOtp POST /api/otp/verify
func (h *AuthHandler) VerifyOtp(c *gin.Context) {
	var req verifyOtpRequest
	if !bindJSON(c, &req) {
		return
	}
	if _, err := h.Svc.VerifyOtp(c.Request.Context(), req.Email, req.OTP); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "otp verified successfully", nil)
}

// ResendOtp POST /api/otp/resend
func (h *AuthHandler) ResendOtp(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.ResendOtp(c.Request.Context(), req.Email); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "otp resent", nil)
}

// Login POST /api/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	h.Cookies.SetToken(c, res.Token, res.ExpiresAt)
	response.OK(c, "login successful", gin.H{"token": res.Token, "user": res.User})
}

// Logout POST /api/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.Svc.Logout(c.Request.Context(), middleware.UserID(c)); err != nil && h.Logger != nil {
		h.Logger.WithError(err).Warn("session delete failed")
	}
	h.Cookies.Clear(c)
	response.OK(c, "logged out", nil)
}

// Me GET /api/me
func (h *AuthHandler) Me(c *gin.Context) {
	u, err := h.Svc.CurrentUser(c.Request.Context(), middleware.UserID(c))
	if errors.Is(err, application.ErrBlocked) {
		response.FailWith(c, err.Error(), gin.H{"currentUser": u})
		return
	}
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "ok", gin.H{"currentUser": u})
}

// ForgotPassword POST /api/password/forgot
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req emailRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.ForgetPasswordRequestOtp(c.Request.Context(), req.Email); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "otp sent to your email", gin.H{"email": req.Email})
}

// UpdatePassword POST /api/password/update
func (h *AuthHandler) UpdatePassword(c *gin.Context) {
	var req updatePasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.Svc.UpdatePassword(c.Request.Context(), req.Email, req.Password); err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.OK(c, "password changed successfully", nil)
}
