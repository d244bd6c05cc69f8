package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/artflow-api/config"
	"github.com/oksasatya/artflow-api/internal/application"
	"github.com/oksasatya/artflow-api/internal/domain/entity"
	repo "github.com/oksasatya/artflow-api/internal/domain/repository"
	"github.com/oksasatya/artflow-api/internal/interface/middleware"
	"github.com/oksasatya/artflow-api/pkg/helpers"
	"github.com/oksasatya/artflow-api/pkg/mailer"
	"github.com/oksasatya/artflow-api/pkg/validation"
)

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.Configure(v)
	}
}

type userStore struct {
	mu    sync.Mutex
	users map[string]*entity.User
	err   error
}

func newUserStore() *userStore { return &userStore{users: map[string]*entity.User{}} }

func (s *userStore) byEmail(email string) *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (s *userStore) Create(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.ID = "11111111-1111-4111-8111-11111111111" + string(rune('0'+len(s.users)))
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *userStore) get(pred func(*entity.User) bool) (*entity.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if pred(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repo.ErrNotFound
}

func (s *userStore) GetByID(_ context.Context, id string) (*entity.User, error) {
	return s.get(func(u *entity.User) bool { return u.ID == id })
}

func (s *userStore) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return s.get(func(u *entity.User) bool { return u.Email == email })
}

func (s *userStore) GetByMobile(_ context.Context, mobile string) (*entity.User, error) {
	return s.get(func(u *entity.User) bool { return u.Mobile == mobile })
}

func (s *userStore) Update(_ context.Context, u *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *userStore) SetOTP(_ context.Context, email, code string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			u.OTP = entity.OTP{Code: code, GeneratedAt: &at}
			return nil
		}
	}
	return repo.ErrNotFound
}

func (s *userStore) DeleteByEmail(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, u := range s.users {
		if u.Email == email {
			delete(s.users, id)
			return nil
		}
	}
	return repo.ErrNotFound
}

type nopMailer struct{}

func (nopMailer) Send(context.Context, mailer.Message) error { return nil }

func newAuthRouter(store *userStore) *gin.Engine {
	cfg := &config.Config{BcryptCost: bcrypt.MinCost, CompanyName: "ArtFlow"}
	jwtm := helpers.NewJWTManager("secret", time.Hour)
	svc := application.NewAuthService(store, helpers.NewOTPIssuer(4, time.Minute), jwtm, nopMailer{}, nil, helpers.NewDiscardLogger(), cfg)
	h := NewAuthHandler(svc, helpers.NewDiscardLogger(), "", false)

	r := gin.New()
	r.POST("/api/register", h.Register)
	r.POST("/api/otp/verify", h.VerifyOtp)
	r.POST("/api/login", h.Login)
	r.POST("/api/password/forgot", h.ForgotPassword)
	r.GET("/api/me", middleware.Auth(nil, jwtm), h.Me)
	r.POST("/api/logout", middleware.Auth(nil, jwtm), h.Logout)
	return r
}

func postJSON(t *testing.T, r http.Handler, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	b, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return w, out
}

var annReg = map[string]string{"name": "Ann", "mobile": "5551234", "email": "ann@x.com", "password": "secret1"}

func TestAuthHandler_RegisterVerifyLogin(t *testing.T) {
	store := newUserStore()
	r := newAuthRouter(store)

	w, body := postJSON(t, r, "/api/register", annReg)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "otp sent to mail", body["success"])
	assert.Equal(t, "ann@x.com", body["email"])

	u := store.byEmail("ann@x.com")
	require.NotNil(t, u)
	_, body = postJSON(t, r, "/api/otp/verify", map[string]string{"email": "ann@x.com", "otp": u.OTP.Code})
	assert.Equal(t, "otp verified successfully", body["success"])

	w, body = postJSON(t, r, "/api/login", map[string]string{"email": "ann@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "login successful", body["success"])
	assert.NotEmpty(t, body["token"])
	user, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ann@x.com", user["email"])
	assert.NotContains(t, user, "password")
	assert.Contains(t, w.Header().Get("Set-Cookie"), helpers.AccessTokenCookie+"=")
}

func TestAuthHandler_MeAndLogout(t *testing.T) {
	store := newUserStore()
	r := newAuthRouter(store)
	postJSON(t, r, "/api/register", annReg)
	u := store.byEmail("ann@x.com")
	require.NotNil(t, u)
	postJSON(t, r, "/api/otp/verify", map[string]string{"email": "ann@x.com", "otp": u.OTP.Code})
	_, body := postJSON(t, r, "/api/login", map[string]string{"email": "ann@x.com", "password": "secret1"})
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/me", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	var me map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	current, ok := me["currentUser"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ann@x.com", current["email"])

	req = httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessTokenCookie, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":"logged out"}`, w.Body.String())
	assert.Contains(t, w.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestAuthHandler_LogicalFailuresAre200(t *testing.T) {
	store := newUserStore()
	r := newAuthRouter(store)
	postJSON(t, r, "/api/register", annReg)

	w, body := postJSON(t, r, "/api/register", annReg)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "email already exists", body["error"])

	_, body = postJSON(t, r, "/api/otp/verify", map[string]string{"email": "ann@x.com"})
	assert.Equal(t, "please enter otp", body["error"])

	_, body = postJSON(t, r, "/api/login", map[string]string{"email": "nobody@x.com", "password": "secret1"})
	assert.Equal(t, "user not found", body["error"])

	_, body = postJSON(t, r, "/api/password/forgot", map[string]string{"email": "nobody@x.com"})
	assert.Equal(t, "otp sent to your email", body["success"])
}

func TestAuthHandler_InvalidPayload(t *testing.T) {
	r := newAuthRouter(newUserStore())

	w, body := postJSON(t, r, "/api/register", map[string]string{"name": "Ann", "mobile": "abc", "email": "nope", "password": strings.Repeat("p", 80)})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "invalid request", body["error"])
	details, ok := body["details"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "must be a valid email", details["email"])
	assert.Equal(t, "must be a valid mobile number", details["mobile"])
	assert.Equal(t, "max length 72", details["password"])
}

func TestAuthHandler_RegisterShortMobileAndPassword(t *testing.T) {
	store := newUserStore()
	r := newAuthRouter(store)

	w, body := postJSON(t, r, "/api/register", map[string]string{"name": "A", "mobile": "555", "email": "a@x.com", "password": "pw"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "otp sent to mail", body["success"])
	assert.Equal(t, "a@x.com", body["email"])
	assert.NotContains(t, body, "error")
	assert.NotNil(t, store.byEmail("a@x.com"))
}

func TestAuthHandler_InfrastructureErrorIs500(t *testing.T) {
	store := newUserStore()
	store.err = errors.New("connection refused")
	r := newAuthRouter(store)

	w, body := postJSON(t, r, "/api/login", map[string]string{"email": "ann@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "internal server error", body["error"])
}

func TestFeedHandler_MalformedIDIsNotFound(t *testing.T) {
	h := NewFeedHandler(application.NewFeedService(nil, nil, nil, nil), nil)
	r := gin.New()
	r.GET("/api/posts/:id/comments", h.Comments)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/posts/not-a-uuid/comments", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error":"post not found"}`, w.Body.String())
}
