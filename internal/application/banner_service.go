package application

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/internal/domain/entity"
	repo "github.com/oksasatya/artflow-api/internal/domain/repository"
	"github.com/oksasatya/artflow-api/pkg/helpers"
)

const bannersCacheKey = "banners:active"

type BannerService struct {
	Banners  repo.BannerRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	CacheTTL time.Duration
}

func NewBannerService(banners repo.BannerRepository, rdb *redis.Client, logger *logrus.Logger) *BannerService {
	return &BannerService{Banners: banners, Redis: rdb, Logger: logger, CacheTTL: 5 * time.Minute}
}

// List returns non-deleted banners newest first, served from Redis when cached.
func (s *BannerService) List(ctx context.Context) ([]entity.Banner, error) {
	if s.Redis != nil {
		var cached []entity.Banner
		ok, err := helpers.RedisGetJSON(ctx, s.Redis, bannersCacheKey, &cached)
		if err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("banner cache read failed")
		}
		if ok {
			return cached, nil
		}
	}

	banners, err := s.Banners.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list banners: %w", err)
	}
	if banners == nil {
		banners = []entity.Banner{}
	}
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, bannersCacheKey, banners, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("banner cache write failed")
		}
	}
	return banners, nil
}
