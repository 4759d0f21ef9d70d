package container

import (
	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/oksasatya/ornakala-backend/config"
	repo "github.com/oksasatya/ornakala-backend/internal/domain/repository"
	"github.com/oksasatya/ornakala-backend/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	db          *gorm.DB
	pgPool      *pgxpool.Pool
	redisClient *redis.Client
	gcsClient   *storage.Client

	jwtManager *helpers.JWTManager
	hasher     *helpers.PasswordHasher
	denylist   repo.TokenDenylist

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
)

func SetConfig(c *config.Config)   { cfg = c }
func GetConfig() *config.Config    { return cfg }
func SetLogger(l *logrus.Logger)   { logger = l }
func GetLogger() *logrus.Logger    { return logger }
func SetDB(d *gorm.DB)             { db = d }
func GetDB() *gorm.DB              { return db }
func SetPGPool(p *pgxpool.Pool)    { pgPool = p }
func GetPGPool() *pgxpool.Pool     { return pgPool }
func SetRedis(r *redis.Client)     { redisClient = r }
func GetRedis() *redis.Client      { return redisClient }
func SetGCS(s *storage.Client)     { gcsClient = s }
func GetGCS() *storage.Client      { return gcsClient }
func SetJWT(m *helpers.JWTManager) { jwtManager = m }

// GetJWT falls back to a manager built from the loaded config.
func GetJWT() *helpers.JWTManager {
	if jwtManager == nil && cfg != nil {
		jwtManager = helpers.NewJWTManager(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL, cfg.PasswordResetTTL)
	}
	return jwtManager
}

func SetHasher(h *helpers.PasswordHasher) { hasher = h }

// GetHasher falls back to BCRYPT_COST from the loaded config.
func GetHasher() *helpers.PasswordHasher {
	if hasher == nil {
		cost := 0
		if cfg != nil {
			cost = cfg.BcryptCost
		}
		hasher = helpers.NewPasswordHasher(cost)
	}
	return hasher
}

// SetDenylist installs the token denylist; nil keeps tokens stateless.
func SetDenylist(d repo.TokenDenylist) { denylist = d }
func GetDenylist() repo.TokenDenylist  { return denylist }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }
