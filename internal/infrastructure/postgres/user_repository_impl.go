package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
	"github.com/oksasatya/artflow-api/internal/domain/repository"
)

const userColumns = `id::text, name, mobile, email, password_hash, is_verified, is_blocked,
		otp_code, otp_generated_at, followings::text[], profile, created_at, updated_at`

var userConstraints = map[string]string{
	"users_email_key":  "email",
	"users_mobile_key": "mobile",
}

type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Name, &u.Mobile, &u.Email, &u.Password, &u.IsVerified, &u.IsBlocked,
		&u.OTP.Code, &u.OTP.GeneratedAt, &u.Followings, &u.Profile, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, notFound(err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO users (name, mobile, email, password_hash, otp_code, otp_generated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, profile, created_at, updated_at
	`, u.Name, u.Mobile, u.Email, u.Password, u.OTP.Code, u.OTP.GeneratedAt)

	if err := row.Scan(&u.ID, &u.Profile, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return uniqueViolation(err, userConstraints)
	}
	if u.Followings == nil {
		u.Followings = []string{}
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *UserRepository) GetByMobile(ctx context.Context, mobile string) (*entity.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE mobile = $1`, mobile))
}

func (r *UserRepository) Update(ctx context.Context, u *entity.User) error {
	u.UpdatedAt = time.Now()

	res, err := r.db.Exec(ctx, `
		UPDATE users
		SET name = $1, mobile = $2, password_hash = $3, is_verified = $4, is_blocked = $5,
		    otp_code = $6, otp_generated_at = $7, profile = $8, updated_at = $9
		WHERE id = $10
	`, u.Name, u.Mobile, u.Password, u.IsVerified, u.IsBlocked, u.OTP.Code, u.OTP.GeneratedAt, u.Profile, u.UpdatedAt, u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", uniqueViolation(err, userConstraints))
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetOTP(ctx context.Context, email, code string, at time.Time) error {
	res, err := r.db.Exec(ctx, `
		UPDATE users SET otp_code = $1, otp_generated_at = $2, updated_at = now()
		WHERE email = $3
	`, code, at, email)
	if err != nil {
		return fmt.Errorf("set otp: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *UserRepository) DeleteByEmail(ctx context.Context, email string) error {
	res, err := r.db.Exec(ctx, `DELETE FROM users WHERE email = $1`, email)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
