package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/artflow-api/config"
	"github.com/oksasatya/artflow-api/internal/infrastructure/search"
	"github.com/oksasatya/artflow-api/pkg/helpers"
	"github.com/oksasatya/artflow-api/pkg/mailer"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager
	otpIssuer  *helpers.OTPIssuer

	mailSender  mailer.Sender
	rabbitPub   *helpers.RabbitPublisher
	esClient    *elasticsearch.Client
	artistIndex *search.ArtistIndex
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGCS(s *storage.Client)     { gcsClient = s }
func GetGCS() *storage.Client      { return gcsClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }
func GetJWT() *helpers.JWTManager  { return jwtManager }

func SetOTPIssuer(i *helpers.OTPIssuer) { otpIssuer = i }
func GetOTPIssuer() *helpers.OTPIssuer {
	if otpIssuer != nil {
		return otpIssuer
	}
	return helpers.NewOTPIssuer(0, 0)
}

// GetMailer never returns nil; without a configured sender mail is dropped.
func SetMailer(s mailer.Sender) { mailSender = s }
func GetMailer() mailer.Sender {
	if mailSender != nil {
		return mailSender
	}
	return mailer.DisabledSender{Logger: logger}
}

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
func SetArtistIndex(i *search.ArtistIndex)    { artistIndex = i }
func GetArtistIndex() *search.ArtistIndex     { return artistIndex }
