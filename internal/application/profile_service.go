package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
	repo "github.com/oksasatya/artflow-api/internal/domain/repository"
	"github.com/oksasatya/artflow-api/pkg/helpers"
)

type ProfileService struct {
	Users     repo.UserRepository
	GCS       *storage.Client
	GCSBucket string
	Redis     *redis.Client
	Logger    *logrus.Logger
}

func NewProfileService(users repo.UserRepository, gcs *storage.Client, bucket string, rdb *redis.Client, logger *logrus.Logger) *ProfileService {
	return &ProfileService{Users: users, GCS: gcs, GCSBucket: bucket, Redis: rdb, Logger: logger}
}

type UpdateProfileInput struct {
	Name    string
	Mobile  string
	Profile string // kept as is when empty
}

func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, in UpdateProfileInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if in.Mobile != "" && in.Mobile != u.Mobile {
		other, err := s.Users.GetByMobile(ctx, in.Mobile)
		if err == nil && other.ID != u.ID {
			return nil, ErrDuplicatePhone
		}
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, fmt.Errorf("get user by mobile: %w", err)
		}
		u.Mobile = in.Mobile
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Profile != "" {
		u.Profile = in.Profile
	}
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UploadProfileImage stores the image in GCS and points the profile at it.
func (s *ProfileService) UploadProfileImage(ctx context.Context, userID string, r io.Reader, filename, contentType string) (*entity.User, error) {
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, ErrStorageUnavailable
	}
	u, err := s.Users.GetByID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, helpers.ProfileObjectPath(userID, filename, contentType), contentType, r)
	if err != nil {
		return nil, fmt.Errorf("upload profile image: %w", err)
	}
	u.Profile = url
	if err := s.save(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *ProfileService) save(ctx context.Context, u *entity.User) error {
	if err := s.Users.Update(ctx, u); err != nil {
		var dup *repo.ErrDuplicate
		if errors.As(err, &dup) && dup.Field == "mobile" {
			return ErrDuplicatePhone
		}
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("update user: %w", err)
	}

	// keep the session hash in step with the profile
	if s.Redis != nil {
		err := helpers.WriteSession(ctx, s.Redis, u.ID, map[string]any{
			"name":       u.Name,
			"profile":    u.Profile,
			"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
		}, 0)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("write session failed")
		}
	}
	return nil
}
