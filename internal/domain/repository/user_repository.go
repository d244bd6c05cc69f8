package repository

import (
	"context"
	"time"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetByMobile(ctx context.Context, mobile string) (*entity.User, error)
	// Update persists name, mobile, password, profile, flags and the OTP sub-record.
	Update(ctx context.Context, u *entity.User) error
	SetOTP(ctx context.Context, email, code string, at time.Time) error
	DeleteByEmail(ctx context.Context, email string) error
}
