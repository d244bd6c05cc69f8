package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/config"
	"github.com/oksasatya/artflow-api/internal/domain/entity"
	repo "github.com/oksasatya/artflow-api/internal/domain/repository"
	"github.com/oksasatya/artflow-api/pkg/helpers"
	"github.com/oksasatya/artflow-api/pkg/mailer"
	"github.com/oksasatya/artflow-api/pkg/mailer/templates"
)

// AuthService implements the OTP-gated account lifecycle:
// Unverified -> Verified, with Blocked as an orthogonal flag.
type AuthService struct {
	Users  repo.UserRepository
	OTP    *helpers.OTPIssuer
	JWT    *helpers.JWTManager
	Mail   mailer.Sender
	Redis  *redis.Client
	Logger *logrus.Logger
	Cfg    *config.Config
	Now    func() time.Time
}

func NewAuthService(users repo.UserRepository, otp *helpers.OTPIssuer, jwt *helpers.JWTManager, mail mailer.Sender, rdb *redis.Client, logger *logrus.Logger, cfg *config.Config) *AuthService {
	return &AuthService{
		Users:  users,
		OTP:    otp,
		JWT:    jwt,
		Mail:   mail,
		Redis:  rdb,
		Logger: logger,
		Cfg:    cfg,
		Now:    time.Now,
	}
}

type RegisterInput struct {
	Name     string
	Mobile   string
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *entity.User
}

func (s *AuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// lookupByEmail translates a repository miss into ErrUserNotFound.
func (s *AuthService) lookupByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// Register creates an unverified account and mails its first OTP.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		return "", ErrDuplicateEmail
	} else if !errors.Is(err, repo.ErrNotFound) {
		return "", fmt.Errorf("get user by email: %w", err)
	}
	if _, err := s.Users.GetByMobile(ctx, in.Mobile); err == nil {
		return "", ErrDuplicatePhone
	} else if !errors.Is(err, repo.ErrNotFound) {
		return "", fmt.Errorf("get user by mobile: %w", err)
	}

	hash, err := helpers.HashPassword(in.Password, s.Cfg.BcryptCost)
	if err != nil {
		return "", err
	}
	code, err := s.OTP.Generate()
	if err != nil {
		return "", err
	}
	issued := s.now()
	u := &entity.User{
		Name:     in.Name,
		Mobile:   in.Mobile,
		Email:    in.Email,
		Password: hash,
		OTP:      entity.OTP{Code: code, GeneratedAt: &issued},
	}
	if err := s.Users.Create(ctx, u); err != nil {
		var dup *repo.ErrDuplicate
		if errors.As(err, &dup) {
			if dup.Field == "mobile" {
				return "", ErrDuplicatePhone
			}
			return "", ErrDuplicateEmail
		}
		return "", fmt.Errorf("create user: %w", err)
	}
	otpIssued.Add(1)

	if err := s.sendOTP(ctx, templates.PurposeRegister, u.Name, u.Email, code, issued); err != nil {
		return "", err
	}
	return u.Email, nil
}

// VerifyOtp accepts code only within the validity window and consumes it.
func (s *AuthService) VerifyOtp(ctx context.Context, email, code string) (*entity.User, error) {
	if email == "" {
		return nil, ErrEmailRequired
	}
	if code == "" {
		return nil, ErrOtpRequired
	}
	u, err := s.lookupByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !u.OTP.Outstanding() || !s.OTP.Valid(*u.OTP.GeneratedAt, s.now()) {
		otpRejected.Add(1)
		return nil, ErrOtpExpired
	}
	if u.OTP.Code != code {
		otpRejected.Add(1)
		return nil, ErrOtpInvalid
	}

	u.IsVerified = true
	u.OTP = entity.OTP{}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	otpVerified.Add(1)
	return u, nil
}

// ResendOtp always issues a fresh code and restarts the window.
// Mail failures are logged, not returned.
func (s *AuthService) ResendOtp(ctx context.Context, email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	u, err := s.lookupByEmail(ctx, email)
	if err != nil {
		return err
	}
	code, issued, err := s.reissueOTP(ctx, u.Email)
	if err != nil {
		return err
	}
	if err := s.sendOTP(ctx, templates.PurposeResend, u.Name, u.Email, code, issued); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("resend otp mail failed")
	}
	return nil
}

// Login authenticates a verified, unblocked user. An unverified account is
// deleted on the attempt and must register again.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	u, err := s.lookupByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidPassword
	}
	if u.IsBlocked {
		return nil, ErrBlocked
	}
	if !u.IsVerified {
		if err := s.Users.DeleteByEmail(ctx, u.Email); err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("delete unverified user: %w", err)
		}
		unverifiedPurge.Add(1)
		return nil, ErrNotVerified
	}

	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}

	if s.Redis != nil {
		err := helpers.WriteSession(ctx, s.Redis, u.ID, map[string]any{
			"user_id":    u.ID,
			"email":      u.Email,
			"name":       u.Name,
			"logged_in":  true,
			"created_at": s.now().Format(time.RFC3339Nano),
		}, s.JWT.TTL)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("write session failed")
		}
	}

	loginsSucceeded.Add(1)
	return &LoginResult{Token: token, ExpiresAt: exp, User: u}, nil
}

// Logout drops the server-side session; the token itself simply expires.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.Redis == nil {
		return nil
	}
	return s.Redis.Del(ctx, helpers.SessionKey(userID)).Err()
}

// CurrentUser returns the caller's record. A blocked user is returned
// together with ErrBlocked.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if u.IsBlocked {
		return u, ErrBlocked
	}
	return u, nil
}

// ForgetPasswordRequestOtp mails a fresh OTP when the address is registered.
// Unknown addresses get the same acknowledgement and no mail.
func (s *AuthService) ForgetPasswordRequestOtp(ctx context.Context, email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	u, err := s.lookupByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		if s.Logger != nil {
			s.Logger.WithField("email", email).Debug("password reset requested for unknown email")
		}
		return nil
	}
	if err != nil {
		return err
	}
	code, issued, err := s.reissueOTP(ctx, u.Email)
	if err != nil {
		return err
	}
	return s.sendOTP(ctx, templates.PurposeForgotPassword, u.Name, u.Email, code, issued)
}

// UpdatePassword overwrites the password. The OTP step is expected to have
// happened before; it is not re-checked here.
func (s *AuthService) UpdatePassword(ctx context.Context, email, password string) error {
	if email == "" {
		return ErrEmailRequired
	}
	u, err := s.lookupByEmail(ctx, email)
	if err != nil {
		return err
	}
	hash, err := helpers.HashPassword(password, s.Cfg.BcryptCost)
	if err != nil {
		return err
	}
	u.Password = hash
	if err := s.Users.Update(ctx, u); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (s *AuthService) reissueOTP(ctx context.Context, email string) (string, time.Time, error) {
	code, err := s.OTP.Generate()
	if err != nil {
		return "", time.Time{}, err
	}
	issued := s.now()
	if err := s.Users.SetOTP(ctx, email, code, issued); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", time.Time{}, ErrUserNotFound
		}
		return "", time.Time{}, fmt.Errorf("set otp: %w", err)
	}
	otpIssued.Add(1)
	return code, issued, nil
}

func (s *AuthService) sendOTP(ctx context.Context, purpose, name, email, code string, issued time.Time) error {
	data := templates.NewOTPData(s.Cfg, purpose, name, email, code,
		templates.WithValidFor(s.OTP.Window),
		templates.WithExpiresAt(issued.Add(s.OTP.Window)),
	)
	subject, text, html, err := templates.Render(templates.OTP, data)
	if err != nil {
		return fmt.Errorf("render otp mail: %w", err)
	}
	msg := mailer.Message{From: s.Cfg.MailgunSender, To: email, Subject: subject, Text: text, HTML: html}
	if err := s.Mail.Send(ctx, msg); err != nil {
		mailFailures.Add(1)
		return fmt.Errorf("send otp mail: %w", err)
	}
	return nil
}
