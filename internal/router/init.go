package router

import (
	"github.com/oksasatya/artflow-api/internal/application"
	"github.com/oksasatya/artflow-api/internal/container"
	pginfra "github.com/oksasatya/artflow-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/artflow-api/internal/interface/http"
	"github.com/oksasatya/artflow-api/internal/router/modules"
)

// Services bundles the application services built from the container.
type Services struct {
	Auth          *application.AuthService
	Profile       *application.ProfileService
	Social        *application.SocialService
	Feed          *application.FeedService
	Notifications *application.NotificationService
	Banners       *application.BannerService
}

func buildServices() Services {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	db := container.GetPGPool()
	rdb := container.GetRedis()

	users := pginfra.NewUserRepository(db)
	artists := pginfra.NewArtistRepository(db)
	follows := pginfra.NewFollowRepository(db)
	posts := pginfra.NewPostRepository(db)
	notifications := pginfra.NewNotificationRepository(db)
	chats := pginfra.NewChatRepository(db)
	banners := pginfra.NewBannerRepository(db)

	notifier := application.NewNotificationService(notifications, posts, chats, logger)

	// keep a nil *ArtistIndex out of the interface so the fallback check stays simple
	var searcher application.ArtistSearcher
	if idx := container.GetArtistIndex(); idx.Enabled() {
		searcher = idx
	}

	return Services{
		Auth:          application.NewAuthService(users, container.GetOTPIssuer(), container.GetJWT(), container.GetMailer(), rdb, logger, cfg),
		Profile:       application.NewProfileService(users, container.GetGCS(), cfg.GCSBucket, rdb, logger),
		Social:        application.NewSocialService(users, artists, follows, posts, notifier, searcher, logger, cfg.ArtistsPageSize),
		Feed:          application.NewFeedService(users, posts, notifier, logger),
		Notifications: notifier,
		Banners:       application.NewBannerService(banners, rdb, logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	cfg := container.GetConfig()
	logger := container.GetLogger()
	svc := buildServices()

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(svc.Auth, logger, cfg.CookieDomain, cfg.CookieSecure), container.GetJWT()))
	r.Add(modules.NewProfileModule(handlers.NewProfileHandler(svc.Profile, logger), container.GetJWT()))
	r.Add(modules.NewSocialModule(handlers.NewSocialHandler(svc.Social, logger), container.GetJWT()))
	r.Add(modules.NewFeedModule(handlers.NewFeedHandler(svc.Feed, logger), container.GetJWT()))
	r.Add(modules.NewNotificationModule(handlers.NewNotificationHandler(svc.Notifications, logger), container.GetJWT()))
	r.Add(modules.NewBannerModule(handlers.NewBannerHandler(svc.Banners, logger)))
	if cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
